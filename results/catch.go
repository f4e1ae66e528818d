package results

import "fmt"

// PanicError is the failure reported by Try when the wrapped function panics.
// Value is the raw value passed to panic.
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("recovered panic: %v", e.Value)
}

// Unwrap returns the panic value when it is an error so errors.Is and errors.As see through it.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// Catch calls op on the current go routine. If op returns, its value is wrapped as a success.
// If op panics, the panic is recovered and the raw panic value becomes the failure.
// Side effects op performed before panicking are not undone.
func Catch[T any](op func() T) Result[T, any] {
	return CatchWith(op, func(raw any) any { return raw })
}

// CatchWith is like Catch but converts the recovered panic value with handler.
// handler runs after the panic has been recovered, so a panic raised by handler itself
// is not caught.
func CatchWith[T any, E any](op func() T, handler func(raw any) E) Result[T, E] {
	val, raw, panicked := invoke(op)
	if panicked {
		return Failure[T](handler(raw))
	}
	return Success[T, E](val)
}

// Try calls op and converts its (value, error) return into a Result. A non-nil error becomes
// the failure. A panic is recovered and reported as a *PanicError.
func Try[T any](op func() (T, error)) Result[T, error] {
	var err error
	val, raw, panicked := invoke(func() T {
		v, e := op()
		err = e
		return v
	})
	if panicked {
		return Failure[T, error](&PanicError{Value: raw})
	}
	return New(val, err)
}

// TryWith is like Try but passes the returned error or the recovered panic value to handler.
func TryWith[T any, E any](op func() (T, error), handler func(raw any) E) Result[T, E] {
	var err error
	val, raw, panicked := invoke(func() T {
		v, e := op()
		err = e
		return v
	})
	switch {
	case panicked:
		return Failure[T](handler(raw))
	case err != nil:
		return Failure[T](handler(err))
	}
	return Success[T, E](val)
}

// invoke runs op inside the only recovery frame in this package so that nothing else the
// caller does is masked.
func invoke[T any](op func() T) (val T, raw any, panicked bool) {
	panicked = true
	defer func() {
		if panicked {
			raw = recover()
		}
	}()

	val = op()
	panicked = false
	return val, nil, false
}
