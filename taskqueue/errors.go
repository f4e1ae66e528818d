package taskqueue

import (
	"errors"

	"github.com/abevier/outcome/internal/task"
)

var (
	ErrQueueFull = task.ErrQueueFull
	ErrStopped   = errors.New("task queue has been stopped")
)
