package taskqueue

import (
	"context"
	"strconv"

	"github.com/google/uuid"
)

type workerIDKey struct{}

type taskIDKey struct{}

func withTask(ctx context.Context, workerNum int, taskID uuid.UUID) context.Context {
	ctx = context.WithValue(ctx, workerIDKey{}, "worker-"+strconv.Itoa(workerNum))
	return context.WithValue(ctx, taskIDKey{}, taskID)
}

// WorkerIDFromContext attempts to retrieve a worker id string from the current context.
// The worker id string is added to the current context by the TaskQueue before invoking the run
// function. This id can be useful for logging.
func WorkerIDFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(workerIDKey{}).(string)
	return v, ok
}

// TaskIDFromContext retrieves the id the TaskQueue assigned to the task being run.
func TaskIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	v, ok := ctx.Value(taskIDKey{}).(uuid.UUID)
	return v, ok
}
