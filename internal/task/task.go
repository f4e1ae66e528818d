// Package task holds the plumbing shared by the taskqueue and ratelimiter packages: a task paired with the
// future its result is delivered through, and the strategies used to hand tasks to a full queue.
package task

import (
	"context"
	"errors"

	"github.com/abevier/outcome/futures"
	"github.com/abevier/outcome/results"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RunFunction executes a single task.
type RunFunction[T any, R any] func(ctx context.Context, task T) (R, error)

type Future[T any, R any] struct {
	ID     uuid.UUID
	Ctx    context.Context
	Task   T
	Future *futures.Future[R]
}

func NewFuture[T any, R any](ctx context.Context, task T) Future[T, R] {
	return Future[T, R]{
		ID:     uuid.New(),
		Ctx:    ctx,
		Task:   task,
		Future: futures.NewWithContext[R](ctx),
	}
}

// Run executes the task with run and settles the future with the outcome.  A panic in run only fails this task.
func (tf Future[T, R]) Run(ctx context.Context, run RunFunction[T, R], logger *zap.Logger) {
	res := results.Try(func() (R, error) {
		return run(ctx, tf.Task)
	})

	if e, ok := res.Err(); ok {
		var pe *results.PanicError
		if errors.As(e, &pe) {
			logger.Warn("task panicked", zap.Stringer("task_id", tf.ID), zap.Any("panic", pe.Value))
		}
	}

	tf.Future.Settle(res)
}
