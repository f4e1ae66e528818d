// Package results provides Result, a value that is either a success carrying a T or a failure
// carrying an E. It replaces panics and trailing errors with an explicit, inspectable outcome
// that can be passed around, stored in slices and sent over channels like any other value.
//
// A Result is built with Success or Failure, or by one of the adapters (Catch, CatchWith, Try,
// TryWith) that run a function and turn a panic or returned error into a Failure.
// A Result is immutable once built and is safe to share between go routines.
package results

import "fmt"

// Result holds exactly one of a success value of type T or a failure value of type E.
// Neither T nor E is constrained, so a failure can carry an error, a string, an error code or
// any other type the caller finds meaningful.
//
// The zero value of Result is a success carrying the zero value of T, mirroring the (T, error)
// convention where a nil error means success.
type Result[T any, E any] struct {
	failed bool
	value  T
	err    E
}

// Success creates a Result that carries val.
func Success[T any, E any](val T) Result[T, E] {
	return Result[T, E]{value: val}
}

// Failure creates a Result that carries err.
func Failure[T any, E any](err E) Result[T, E] {
	return Result[T, E]{failed: true, err: err}
}

// New converts a Go style (value, error) pair into a Result. A non-nil err produces a failure,
// otherwise val is wrapped as a success.
func New[T any](val T, err error) Result[T, error] {
	if err != nil {
		return Failure[T](err)
	}
	return Success[T, error](val)
}

// Unpack converts r back into a (value, error) pair. A failure yields the zero value of T.
func Unpack[T any](r Result[T, error]) (T, error) {
	if r.failed {
		return *new(T), r.err
	}
	return r.value, nil
}

// IsSuccess reports whether r is a success.
func IsSuccess[T any, E any](r Result[T, E]) bool {
	return r.IsSuccess()
}

// IsFailure reports whether r is a failure.
func IsFailure[T any, E any](r Result[T, E]) bool {
	return r.IsFailure()
}

// IsSuccess reports whether r is a success.
func (r Result[T, E]) IsSuccess() bool {
	return !r.failed
}

// IsFailure reports whether r is a failure.
func (r Result[T, E]) IsFailure() bool {
	return r.failed
}

// Ok returns the success value and true when r is a success. A failure returns the zero value
// of T and false.
//
//	if v, ok := r.Ok(); ok {
//		// v is the success value
//	}
func (r Result[T, E]) Ok() (T, bool) {
	if r.failed {
		return *new(T), false
	}
	return r.value, true
}

// Err returns the failure value and true when r is a failure. A success returns the zero value
// of E and false.
func (r Result[T, E]) Err() (E, bool) {
	if !r.failed {
		return *new(E), false
	}
	return r.err, true
}

func (r Result[T, E]) String() string {
	if r.failed {
		return fmt.Sprintf("Failure(%v)", r.err)
	}
	return fmt.Sprintf("Success(%v)", r.value)
}
