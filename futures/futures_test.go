package futures

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/abevier/outcome/results"
	"github.com/stretchr/testify/require"
)

var (
	ErrTest = errors.New("test error")
)

func TestFuture(t *testing.T) {
	require := require.New(t)

	f := New[int]()

	go func() {
		time.Sleep(10 * time.Millisecond)
		f.Complete(1)
		f.Complete(2)
		f.Complete(3)
	}()

	v, err := f.Get(context.TODO())
	require.NoError(err)
	require.Equal(1, v)
}

func TestFromFunc(t *testing.T) {
	req := require.New(t)

	f := FromFunc(func() (int, error) {
		time.Sleep(10 * time.Millisecond)
		return 42, nil
	})

	r, err := f.Get(context.Background())
	req.NoError(err)
	req.Equal(42, r)

	f = FromFunc(func() (int, error) {
		time.Sleep(10 * time.Millisecond)
		return 0, ErrTest
	})

	_, err = f.Get(context.Background())
	req.ErrorIs(err, ErrTest)
}

func TestFromFuncPanic(t *testing.T) {
	req := require.New(t)

	f := FromFunc(func() (int, error) {
		panic("boom")
	})

	_, err := f.Get(context.Background())

	var pe *results.PanicError
	req.ErrorAs(err, &pe)
	req.Equal("boom", pe.Value)
}

func TestFromChan(t *testing.T) {
	req := require.New(t)

	c := make(chan int)
	f := FromChan(c)

	go func() {
		time.Sleep(10 * time.Millisecond)
		c <- 5
	}()

	v, err := f.Get(context.Background())
	req.NoError(err)
	req.Equal(5, v)

	c = make(chan int)
	close(c)

	_, err = FromChan(c).Get(context.Background())
	req.ErrorIs(err, ErrClosed)
}

func TestComplete(t *testing.T) {
	require := require.New(t)

	f := New[int]()

	for i := 0; i <= 1000; i++ {
		go func() {
			f.Complete(42)
		}()
	}

	v, err := f.Get(context.TODO())
	require.NoError(err)
	require.Equal(42, v)
}

func TestSettle(t *testing.T) {
	req := require.New(t)

	f := New[int]()
	f.Settle(results.Failure[int](ErrTest))
	f.Settle(results.Success[int, error](1))

	_, err := f.Get(context.Background())
	req.ErrorIs(err, ErrTest)
}

func TestDone(t *testing.T) {
	req := require.New(t)

	f := New[int]()

	select {
	case <-f.Done():
		req.Fail("future reported done before completion")
	default:
	}

	f.Complete(1)

	select {
	case <-f.Done():
	case <-time.After(time.Second):
		req.Fail("future not done after completion")
	}
}

func TestCancel(t *testing.T) {
	require := require.New(t)

	f := New[int]()

	for i := 0; i <= 1000; i++ {
		go func() {
			time.Sleep(10 * time.Millisecond)
			f.Cancel()
		}()
	}

	_, err := f.Get(context.TODO())
	require.ErrorIs(err, ErrCanceled)
}

func TestFail(t *testing.T) {
	require := require.New(t)

	f := New[int]()

	for i := 0; i <= 1000; i++ {
		go func() {
			time.Sleep(10 * time.Millisecond)
			f.Fail(ErrTest)
		}()
	}

	_, err := f.Get(context.TODO())
	require.ErrorIs(err, ErrTest)
}

func TestCancelOnGet(t *testing.T) {
	require := require.New(t)

	f := New[int]()

	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	_, err := f.Get(ctx)
	require.ErrorIs(err, context.Canceled)
}

func TestCancelingContextOnFuture(t *testing.T) {
	require := require.New(t)

	ctx, cancel := context.WithCancel(context.Background())

	f := NewWithContext[int](ctx)

	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	_, err := f.Get(context.Background())
	require.ErrorIs(err, context.Canceled)
}

func TestDeadlineOnGet(t *testing.T) {
	req := require.New(t)

	f := New[int]()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := f.Get(ctx)
	req.ErrorIs(err, context.DeadlineExceeded)
	req.NotErrorIs(err, context.Canceled)
}
