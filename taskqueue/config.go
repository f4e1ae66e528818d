package taskqueue

import (
	"github.com/abevier/outcome/internal/task"
	"go.uber.org/zap"
)

// FullQueueStrategy is the behavior that occurs when a task is submitted to a queue that is already full
type FullQueueStrategy task.FullQueueStrategy

const (
	// BlockWhenFull exerts back pressure by blocking the caller until there is room in the queue.
	BlockWhenFull FullQueueStrategy = FullQueueStrategy(task.BlockWhenFull)
	// ErrorWhenFull immediately fails the task with ErrQueueFull.
	ErrorWhenFull FullQueueStrategy = FullQueueStrategy(task.ErrorWhenFull)
)

// Opts is used to configure a TaskQueue via the New function.
type Opts struct {
	// MaxWorkers is the number of go routines running tasks.
	MaxWorkers int
	// MaxQueueDepth is the number of tasks that can wait for a free worker.
	MaxQueueDepth int
	// FullQueueStrategy determines the queue's behavior when MaxQueueDepth is exceeded.
	// By default the caller is blocked.
	FullQueueStrategy FullQueueStrategy
	// Logger receives debug output about task dispatch and warnings about panicking tasks.
	// A nil Logger discards everything.
	Logger *zap.Logger
}

func (o Opts) validate() {
	if o.MaxWorkers < 1 {
		panic("task queue max workers must be 1 or greater")
	}

	if o.MaxQueueDepth < 0 {
		panic("task queue max queue depth must be 0 or greater")
	}
}

func (o Opts) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}
