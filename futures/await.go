package futures

import (
	"context"

	"github.com/abevier/outcome/results"
)

// Awaitable is anything that produces a value or an error at some point in the future.
// *Future satisfies Awaitable.
type Awaitable[T any] interface {
	Get(ctx context.Context) (T, error)
}

// Await blocks until p settles and returns its outcome as a Result.  The error p fails with is
// carried unchanged as the failure.
//
// Await never gives up on its own: it does not time out, retry or cancel p.  Callers that need a
// deadline should bound p itself, for example with NewWithContext.
func Await[T any](p Awaitable[T]) results.Result[T, error] {
	v, err := p.Get(context.Background())
	return results.New(v, err)
}

// AwaitWith is like Await but converts the error p fails with using handler.
func AwaitWith[T any, E any](p Awaitable[T], handler func(err error) E) results.Result[T, E] {
	v, err := p.Get(context.Background())
	if err != nil {
		return results.Failure[T](handler(err))
	}
	return results.Success[T, E](v)
}

// AwaitF returns a Future that completes with the outcome of p once p settles.  A failure of p does not fail
// the returned Future; it is delivered as a failed Result value.  See AwaitWithF for the panic case.
func AwaitF[T any](p Awaitable[T]) *Future[results.Result[T, error]] {
	return AwaitWithF(p, func(err error) error { return err })
}

// AwaitWithF is like AwaitF but converts the error p fails with using handler.
//
// The returned Future fails in exactly one case: when handler or p.Get panics.  The panic is recovered on the
// waiting go routine and the future fails with a *results.PanicError carrying the panic value.
func AwaitWithF[T any, E any](p Awaitable[T], handler func(err error) E) *Future[results.Result[T, E]] {
	f := New[results.Result[T, E]]()

	go func() {
		f.Settle(results.Try(func() (results.Result[T, E], error) {
			return AwaitWith(p, handler), nil
		}))
	}()

	return f
}
