package stream_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/dmitrymomot/streamkit/core/stream"
	"github.com/dmitrymomot/streamkit/core/stream/streamtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func infiniteCounter() stream.Publisher[int] {
	return stream.Generate(func() stream.Source[int] {
		n := 0
		return stream.SourceFunc[int](func(context.Context) (int, bool, error) {
			n++
			return n, true, nil
		})
	})
}

func TestSubscribe_UnboundedDemand(t *testing.T) {
	t.Parallel()

	rec := streamtest.NewRecorder[int]()
	stream.Just(1, 2, 3).Subscribe(context.Background(), rec)
	require.NoError(t, rec.Request(stream.Unbounded))

	assert.Equal(t, []int{1, 2, 3}, rec.Items())
	assert.True(t, rec.Completed())
	assert.NoError(t, rec.Err())
	assert.Equal(t, 1, rec.TerminalCount())
	assert.Zero(t, rec.LateItemCount())
}

func TestSubscribe_SourceFailure(t *testing.T) {
	t.Parallel()

	errProduce := errors.New("production failed")
	pub := stream.Generate(func() stream.Source[int] {
		i := 0
		return stream.SourceFunc[int](func(context.Context) (int, bool, error) {
			i++
			if i == 4 {
				return 0, false, errProduce
			}
			return i, true, nil
		})
	})

	rec := streamtest.NewRecorder[int]()
	pub.Subscribe(context.Background(), rec)
	require.NoError(t, rec.Request(stream.Unbounded))

	assert.Equal(t, []int{1, 2, 3}, rec.Items())
	require.ErrorIs(t, rec.Err(), errProduce)
	assert.False(t, rec.Completed())
	assert.Equal(t, 1, rec.TerminalCount())
	assert.Zero(t, rec.LateItemCount())
}

func TestSubscribe_DemandCapsDelivery(t *testing.T) {
	t.Parallel()

	rec := streamtest.NewRecorder[int]()
	stream.Range(1, 5).Subscribe(context.Background(), rec)

	require.NoError(t, rec.Request(2))
	assert.Equal(t, []int{1, 2}, rec.Items())
	assert.Zero(t, rec.TerminalCount())

	require.NoError(t, rec.Request(3))
	assert.Equal(t, []int{1, 2, 3, 4, 5}, rec.Items())
	// All five elements consumed the demand, so the end of the sequence has
	// not been observed yet. One more unit of demand lets the publisher
	// discover it.
	assert.Zero(t, rec.TerminalCount())

	require.NoError(t, rec.Request(1))
	assert.True(t, rec.Completed())
	assert.Equal(t, []int{1, 2, 3, 4, 5}, rec.Items())
	assert.Equal(t, 1, rec.TerminalCount())
}

func TestRequest_InvalidDemand(t *testing.T) {
	t.Parallel()

	rec := streamtest.NewRecorder[int]()
	stream.Just(1, 2).Subscribe(context.Background(), rec)

	require.ErrorIs(t, rec.Request(0), stream.ErrInvalidDemand)
	require.ErrorIs(t, rec.Request(-7), stream.ErrInvalidDemand)
	assert.Empty(t, rec.Items())
	assert.Zero(t, rec.TerminalCount())

	// The subscription survives invalid requests.
	require.NoError(t, rec.Request(stream.Unbounded))
	assert.Equal(t, []int{1, 2}, rec.Items())
	assert.True(t, rec.Completed())
}

func TestRequest_AfterTerminalIsNoop(t *testing.T) {
	t.Parallel()

	rec := streamtest.NewRecorder[int]()
	stream.Just(1).Subscribe(context.Background(), rec)
	require.NoError(t, rec.Request(stream.Unbounded))
	require.True(t, rec.Completed())

	require.NoError(t, rec.Request(5))
	assert.Equal(t, []int{1}, rec.Items())
	assert.Equal(t, 1, rec.TerminalCount())
	assert.Zero(t, rec.LateItemCount())
}

func TestRequest_ReentrantFromOnNext(t *testing.T) {
	t.Parallel()

	var (
		sub       stream.Subscription
		got       []int
		completed bool
	)
	subscriber := stream.Callbacks[int]{
		OnSubscribe: func(s stream.Subscription) {
			sub = s
			require.NoError(t, s.Request(1))
		},
		OnNext: func(n int) {
			got = append(got, n)
			require.NoError(t, sub.Request(1))
		},
		OnComplete: func() { completed = true },
	}.Build()

	stream.Range(1, 4).Subscribe(context.Background(), subscriber)

	assert.Equal(t, []int{1, 2, 3, 4}, got)
	assert.True(t, completed)
}

func TestCancel_StopsWithoutTerminal(t *testing.T) {
	t.Parallel()

	var (
		sub       stream.Subscription
		got       []int
		completed bool
		failed    bool
	)
	subscriber := stream.Callbacks[int]{
		OnSubscribe: func(s stream.Subscription) {
			sub = s
			require.NoError(t, s.Request(stream.Unbounded))
		},
		OnNext: func(n int) {
			got = append(got, n)
			if len(got) == 2 {
				sub.Cancel()
			}
		},
		OnError:    func(error) { failed = true },
		OnComplete: func() { completed = true },
	}.Build()

	infiniteCounter().Subscribe(context.Background(), subscriber)

	assert.Equal(t, []int{1, 2}, got)
	assert.False(t, completed)
	assert.False(t, failed)

	// Cancel is idempotent and Request afterwards is a no-op.
	sub.Cancel()
	require.NoError(t, sub.Request(10))
	assert.Equal(t, []int{1, 2}, got)
}

func TestSubscribe_ContextCancellation(t *testing.T) {
	t.Parallel()

	t.Run("stops emission without terminal signal", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		var (
			got       []int
			completed bool
			failed    bool
		)
		subscriber := stream.Callbacks[int]{
			OnNext: func(n int) {
				got = append(got, n)
				if len(got) == 3 {
					cancel()
				}
			},
			OnError:    func(error) { failed = true },
			OnComplete: func() { completed = true },
		}.Build()

		infiniteCounter().Subscribe(ctx, subscriber)

		assert.Equal(t, []int{1, 2, 3}, got)
		assert.False(t, completed)
		assert.False(t, failed)
	})

	t.Run("unblocks a source waiting for data", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		ch := make(chan int)
		rec := streamtest.NewRecorder[int]()
		stream.FromChannel(ch).Subscribe(ctx, rec)

		done := make(chan struct{})
		go func() {
			defer close(done)
			_ = rec.Request(1)
		}()

		cancel()
		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("emission did not stop after context cancellation")
		}
		assert.Zero(t, rec.TerminalCount())
		assert.Empty(t, rec.Items())
	})
}

func TestRequest_ConcurrentCallers(t *testing.T) {
	t.Parallel()

	const (
		callers   = 8
		perCaller = 100
		items     = 300
	)

	rec := streamtest.NewRecorder[int]()
	stream.Range(0, items).Subscribe(context.Background(), rec)

	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, rec.Request(perCaller))
		}()
	}
	wg.Wait()

	// Total demand exceeds the sequence length, so emission has fully
	// finished by the time every Request call has returned.
	got := rec.Items()
	require.Len(t, got, items)
	for i, v := range got {
		require.Equal(t, i, v, "serialized delivery must preserve order")
	}
	assert.True(t, rec.Completed())
	assert.Equal(t, 1, rec.TerminalCount())
	assert.Zero(t, rec.LateItemCount())
}

func TestSubscription_DeliveryMatchesDemand(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(0, 40).Draw(rt, "items")
		requests := rapid.SliceOfN(rapid.Int64Range(1, 20), 0, 12).Draw(rt, "requests")

		rec := streamtest.NewRecorder[int]()
		stream.Range(0, n).Subscribe(context.Background(), rec)

		var total int64
		for _, r := range requests {
			require.NoError(rt, rec.Request(r))
			total += r
		}

		delivered := int64(n)
		if total < delivered {
			delivered = total
		}
		require.Len(rt, rec.Items(), int(delivered))
		for i, v := range rec.Items() {
			require.Equal(rt, i, v)
		}

		if total > int64(n) {
			require.True(rt, rec.Completed())
			require.Equal(rt, 1, rec.TerminalCount())
		} else {
			require.Zero(rt, rec.TerminalCount())
		}
		require.Zero(rt, rec.LateItemCount())
	})
}
