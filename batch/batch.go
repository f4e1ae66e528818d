// Package batch groups individually submitted tasks into batches so they can be processed by a single call,
// for example one bulk database write.  The batch function reports one results.Result per task, letting some
// tasks in a batch succeed while others fail.
package batch

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/abevier/outcome/futures"
	"github.com/abevier/outcome/results"
	"go.uber.org/zap"
)

var (
	// ErrBatchResultMismatch fails every task of a batch whose run function returned a different number of
	// results than it was given tasks.
	ErrBatchResultMismatch = errors.New("batch returned a different number of results than tasks")
	// ErrClosed is reported for tasks submitted after Close.
	ErrClosed = errors.New("batch executor is closed")
)

// RunBatchFunction processes tasks and returns the result for tasks[i] at index i.  A non-nil error fails every
// task in the batch.
type RunBatchFunction[T any, R any] func(tasks []T) ([]results.Result[R, error], error)

type batch[T any, R any] struct {
	id      int
	tasks   []T
	futures []*futures.Future[R]
	timer   *time.Timer
}

func (b *batch[T, R]) add(ctx context.Context, task T) *futures.Future[R] {
	f := futures.NewWithContext[R](ctx)
	b.tasks = append(b.tasks, task)
	b.futures = append(b.futures, f)
	return f
}

type Executor[T any, R any] struct {
	m            sync.Mutex
	closed       bool
	sequenceNum  int
	currentBatch *batch[T, R]
	running      sync.WaitGroup

	run       RunBatchFunction[T, R]
	maxSize   int
	maxLinger time.Duration
	logger    *zap.Logger
}

// NewExecutor creates an Executor.  It panics if opts is invalid.
func NewExecutor[T any, R any](opts Opts, run RunBatchFunction[T, R]) *Executor[T, R] {
	opts.validate()

	return &Executor[T, R]{
		run:       run,
		maxSize:   opts.MaxSize,
		maxLinger: opts.MaxLinger,
		logger:    opts.logger(),
	}
}

// Submit adds task to the current batch and blocks until the batch has run or ctx is canceled.
func (be *Executor[T, R]) Submit(ctx context.Context, task T) results.Result[R, error] {
	return futures.Await[R](be.SubmitF(ctx, task))
}

// SubmitF adds task to the current batch and returns a Future that completes with the task's result.
func (be *Executor[T, R]) SubmitF(ctx context.Context, task T) *futures.Future[R] {
	be.m.Lock()
	defer be.m.Unlock()

	if be.closed {
		f := futures.New[R]()
		f.Fail(ErrClosed)
		return f
	}

	if be.currentBatch == nil {
		be.currentBatch = be.newBatch()
	}
	f := be.currentBatch.add(ctx, task)

	if len(be.currentBatch.tasks) >= be.maxSize {
		be.currentBatch.timer.Stop()
		be.startBatch(be.currentBatch)
		be.currentBatch = nil
	}

	return f
}

// Close runs the pending batch, if any, and waits for every running batch to finish.  Tasks submitted after
// Close fail with ErrClosed.
func (be *Executor[T, R]) Close() {
	be.m.Lock()
	be.closed = true
	if be.currentBatch != nil {
		be.currentBatch.timer.Stop()
		be.startBatch(be.currentBatch)
		be.currentBatch = nil
	}
	be.m.Unlock()

	be.running.Wait()
}

func (be *Executor[T, R]) newBatch() *batch[T, R] {
	be.sequenceNum++

	b := &batch[T, R]{
		id:    be.sequenceNum,
		tasks: make([]T, 0, be.maxSize),
	}

	b.timer = time.AfterFunc(be.maxLinger, func() { be.expireBatch(b.id) })
	return b
}

func (be *Executor[T, R]) expireBatch(batchID int) {
	be.m.Lock()
	defer be.m.Unlock()

	if be.currentBatch != nil && be.currentBatch.id == batchID {
		be.startBatch(be.currentBatch)
		be.currentBatch = nil
	}
}

// startBatch must be called with be.m held.
func (be *Executor[T, R]) startBatch(b *batch[T, R]) {
	be.running.Add(1)
	go func() {
		defer be.running.Done()
		be.runBatch(b)
	}()
}

func (be *Executor[T, R]) runBatch(b *batch[T, R]) {
	be.logger.Debug("running batch", zap.Int("batch", b.id), zap.Int("size", len(b.tasks)))

	rs, err := results.Unpack(results.Try(func() ([]results.Result[R, error], error) {
		return be.run(b.tasks)
	}))
	if err == nil && len(rs) != len(b.tasks) {
		err = ErrBatchResultMismatch
	}

	if err != nil {
		be.logger.Warn("batch failed", zap.Int("batch", b.id), zap.Error(err))
		for _, f := range b.futures {
			f.Fail(err)
		}
		return
	}

	for i, r := range rs {
		b.futures[i].Settle(r)
	}
}
