// Package closewaiter guards a resource that must not be used once it has been closed, such as a channel that
// producers send on.  Close waits for every in-flight call to Do before running its close function.
package closewaiter

import (
	"errors"
	"sync"
)

var (
	ErrClosed = errors.New("closed")
)

type CloseWaiter struct {
	m      sync.RWMutex
	closed bool
}

func New() *CloseWaiter {
	return &CloseWaiter{}
}

// Do runs f unless Close has been called, in which case it returns ErrClosed without running f.
// Any number of calls to Do may run concurrently.
func (c *CloseWaiter) Do(f func() error) error {
	c.m.RLock()
	defer c.m.RUnlock()

	if c.closed {
		return ErrClosed
	}

	return f()
}

// Close blocks new calls to Do, waits for the running ones to return and then runs f.
// Only the first call to Close runs f; later calls return once the first has finished.
func (c *CloseWaiter) Close(f func()) {
	c.m.Lock()
	defer c.m.Unlock()

	if c.closed {
		return
	}
	c.closed = true

	f()
}
