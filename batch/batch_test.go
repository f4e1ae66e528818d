package batch

import (
	"context"
	"errors"
	"math"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/abevier/outcome/results"
	"github.com/stretchr/testify/require"
)

var ErrTest = errors.New("unit test error")

func TestBatch(t *testing.T) {
	require := require.New(t)

	var actualCount uint32 = 0
	itemCount := 10

	wg := sync.WaitGroup{}

	run := func(items []int) ([]results.Result[int, error], error) {
		var rs []results.Result[int, error]

		for _, n := range items {
			if n == 5 {
				rs = append(rs, results.Failure[int](ErrTest))
			} else {
				rs = append(rs, results.Success[int, error](n*2))
			}
			atomic.AddUint32(&actualCount, 1)
		}

		return rs, nil
	}

	be := NewExecutor(Opts{MaxSize: 3, MaxLinger: 10 * time.Millisecond}, run)

	for i := 0; i < itemCount; i++ {
		wg.Add(1)

		go func(n int) {
			defer wg.Done()

			res, err := results.Unpack(be.Submit(context.TODO(), n))
			if n == 5 {
				require.ErrorIs(err, ErrTest)
				return
			}
			require.NoError(err)
			require.Equal(2*n, res)
		}(i)
	}

	wg.Wait()
	be.Close()

	require.Equal(itemCount, int(atomic.LoadUint32(&actualCount)))
}

func TestBatchFailure(t *testing.T) {
	require := require.New(t)

	itemCount := 10
	wg := sync.WaitGroup{}

	run := func(items []int) ([]results.Result[int, error], error) {
		return nil, ErrTest
	}

	be := NewExecutor(Opts{MaxSize: 3, MaxLinger: 10 * time.Millisecond}, run)

	for i := 0; i < itemCount; i++ {
		wg.Add(1)
		go func(val int) {
			defer wg.Done()
			_, err := results.Unpack(be.Submit(context.TODO(), val))
			require.ErrorIs(err, ErrTest)
		}(i)
	}

	wg.Wait()
	be.Close()
}

func TestBatchPanic(t *testing.T) {
	req := require.New(t)

	run := func(items []int) ([]results.Result[int, error], error) {
		panic("batch exploded")
	}

	be := NewExecutor(Opts{MaxSize: 2, MaxLinger: 10 * time.Millisecond}, run)
	defer be.Close()

	r := be.Submit(context.Background(), 1)
	e, ok := r.Err()
	req.True(ok)

	var pe *results.PanicError
	req.ErrorAs(e, &pe)
}

func TestSubmitCancellation(t *testing.T) {
	require := require.New(t)

	run := func(items []int) ([]results.Result[int, error], error) {
		var rs []results.Result[int, error]
		for _, n := range items {
			rs = append(rs, results.Success[int, error](n*2))
		}
		return rs, nil
	}

	be := NewExecutor(Opts{MaxSize: 3, MaxLinger: math.MaxInt64}, run)

	ctx, cancel := context.WithCancel(context.Background())
	cancel() // cancel the context before submitting

	_, err := results.Unpack(be.Submit(ctx, 5))
	require.ErrorIs(err, context.Canceled)

	be.Close()
}

func TestBadRunFunction(t *testing.T) {
	require := require.New(t)

	wg := sync.WaitGroup{}

	run := func(items []int) ([]results.Result[int, error], error) {
		return []results.Result[int, error]{}, nil
	}

	be := NewExecutor(Opts{MaxSize: 3, MaxLinger: 10 * time.Millisecond}, run)

	for i := 0; i < 3; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, err := results.Unpack(be.Submit(context.Background(), n))
			require.ErrorIs(err, ErrBatchResultMismatch)
		}(i)
	}

	wg.Wait()
	be.Close()
}

func TestCloseFlushesPendingBatch(t *testing.T) {
	req := require.New(t)

	run := func(items []int) ([]results.Result[int, error], error) {
		rs := make([]results.Result[int, error], 0, len(items))
		for _, n := range items {
			rs = append(rs, results.Success[int, error](n))
		}
		return rs, nil
	}

	be := NewExecutor(Opts{MaxSize: 10, MaxLinger: time.Hour}, run)

	f := be.SubmitF(context.Background(), 4)
	be.Close()

	v, err := f.Get(context.Background())
	req.NoError(err)
	req.Equal(4, v)

	_, err = results.Unpack(be.Submit(context.Background(), 1))
	req.ErrorIs(err, ErrClosed)
}
