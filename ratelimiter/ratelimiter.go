// Package ratelimiter runs submitted tasks no faster than a configured token bucket rate.  Each task runs on
// its own go routine once a token is available and its outcome is reported as a results.Result.
package ratelimiter

import (
	"context"
	"errors"
	"sync"

	"github.com/abevier/outcome/closewaiter"
	"github.com/abevier/outcome/futures"
	"github.com/abevier/outcome/internal/task"
	"github.com/abevier/outcome/results"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

var (
	ErrStopped = errors.New("rate limiter has been stopped")
)

type RunFunction[T any, R any] func(ctx context.Context, task T) (R, error)

type RateLimiter[T any, R any] struct {
	limiter  *rate.Limiter
	taskChan chan task.Future[T, R]

	submit task.SubmitFunction[T, R]
	run    task.RunFunction[T, R]

	cw      *closewaiter.CloseWaiter
	running sync.WaitGroup
	logger  *zap.Logger
}

// New creates a RateLimiter and starts dispatching tasks.  It panics if opts is invalid.
func New[T any, R any](opts Opts, run RunFunction[T, R]) *RateLimiter[T, R] {
	opts.validate()

	rl := &RateLimiter[T, R]{
		limiter:  rate.NewLimiter(opts.Limit, opts.Burst),
		taskChan: make(chan task.Future[T, R], opts.MaxQueueDepth),
		submit:   task.GetSubmitFunction[T, R](task.FullQueueStrategy(opts.FullQueueStrategy)),
		run:      task.RunFunction[T, R](run),
		cw:       closewaiter.New(),
		logger:   opts.logger(),
	}

	rl.running.Add(1)
	go rl.dispatch()

	return rl
}

func (rl *RateLimiter[T, R]) dispatch() {
	defer rl.running.Done()

	for tf := range rl.taskChan {
		if err := rl.limiter.Wait(tf.Ctx); err != nil {
			tf.Future.Fail(err)
			continue
		}

		rl.running.Add(1)
		go func(tf task.Future[T, R]) {
			defer rl.running.Done()
			tf.Run(tf.Ctx, rl.run, rl.logger)
		}(tf)
	}
}

// Submit queues task and blocks until it has been run or ctx is canceled.
func (rl *RateLimiter[T, R]) Submit(ctx context.Context, task T) results.Result[R, error] {
	return futures.Await[R](rl.SubmitF(ctx, task))
}

// SubmitF queues task and returns a Future that completes once the task has been run.
func (rl *RateLimiter[T, R]) SubmitF(ctx context.Context, t T) *futures.Future[R] {
	tf := task.NewFuture[T, R](ctx, t)

	err := rl.cw.Do(func() error {
		return rl.submit(rl.taskChan, tf)
	})
	if errors.Is(err, closewaiter.ErrClosed) {
		err = ErrStopped
	}
	if err != nil {
		tf.Future.Fail(err)
	}

	return tf.Future
}

// Close stops accepting tasks and waits until every queued task has run.  Calling Close more than once is safe.
func (rl *RateLimiter[T, R]) Close() {
	rl.cw.Close(func() {
		close(rl.taskChan)
	})

	rl.running.Wait()
}
