// Package taskqueue runs submitted tasks on a fixed pool of worker go routines.  The outcome of every task is
// reported as a results.Result, including tasks that panic, which fail with a *results.PanicError instead of
// crashing the process.
package taskqueue

import (
	"context"
	"errors"
	"sync"

	"github.com/abevier/outcome/closewaiter"
	"github.com/abevier/outcome/futures"
	"github.com/abevier/outcome/internal/task"
	"github.com/abevier/outcome/results"
	"go.uber.org/zap"
)

type RunFunction[T any, R any] func(ctx context.Context, task T) (R, error)

type TaskQueue[T any, R any] struct {
	run      RunFunction[T, R]
	taskChan chan task.Future[T, R]
	submit   task.SubmitFunction[T, R]

	cw       *closewaiter.CloseWaiter
	waitStop sync.WaitGroup
	logger   *zap.Logger
}

// New creates a TaskQueue and starts its workers.  It panics if opts is invalid.
func New[T any, R any](opts Opts, run RunFunction[T, R]) *TaskQueue[T, R] {
	opts.validate()

	tq := &TaskQueue[T, R]{
		run:      run,
		taskChan: make(chan task.Future[T, R], opts.MaxQueueDepth),
		submit:   task.GetSubmitFunction[T, R](task.FullQueueStrategy(opts.FullQueueStrategy)),
		cw:       closewaiter.New(),
		logger:   opts.logger(),
	}

	for i := 0; i < opts.MaxWorkers; i++ {
		tq.waitStop.Add(1)
		go tq.worker(i)
	}

	return tq
}

func (tq *TaskQueue[T, R]) worker(workerNum int) {
	defer tq.waitStop.Done()

	for tf := range tq.taskChan {
		if err := tf.Ctx.Err(); err != nil {
			tf.Future.Fail(err)
			continue
		}

		tq.logger.Debug("running task", zap.Int("worker", workerNum), zap.Stringer("task_id", tf.ID))
		tf.Run(withTask(tf.Ctx, workerNum, tf.ID), task.RunFunction[T, R](tq.run), tq.logger)
	}
}

// Submit queues task and blocks until it has been run or ctx is canceled.
func (tq *TaskQueue[T, R]) Submit(ctx context.Context, task T) results.Result[R, error] {
	return futures.Await[R](tq.SubmitF(ctx, task))
}

// SubmitF queues task and returns a Future that completes once the task has been run.  The future fails with
// ErrQueueFull, ErrStopped or the context error if the task could not be run.
func (tq *TaskQueue[T, R]) SubmitF(ctx context.Context, t T) *futures.Future[R] {
	tf := task.NewFuture[T, R](ctx, t)

	err := tq.cw.Do(func() error {
		return tq.submit(tq.taskChan, tf)
	})
	if errors.Is(err, closewaiter.ErrClosed) {
		err = ErrStopped
	}
	if err != nil {
		tf.Future.Fail(err)
	}

	return tf.Future
}

// Close stops accepting tasks, lets the workers finish every queued task and waits for them to exit.
// Calling Close more than once is safe.
func (tq *TaskQueue[T, R]) Close() {
	tq.cw.Close(func() {
		close(tq.taskChan)
	})

	tq.waitStop.Wait()
}
