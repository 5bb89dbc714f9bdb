package stream

import (
	"context"
	"time"
)

// Source is the pull side of a publisher built with Generate. Next returns
// the next element, or ok=false once the sequence is exhausted, or an error
// when production fails. A non-nil error terminates the stream via OnError;
// ok=false terminates it via OnComplete.
//
// Next is called from a single goroutine at a time and only while demand is
// outstanding, so implementations need no internal locking. Termination is
// discovered by pulling: even an empty source completes only once the first
// demand arrives.
//
// A Source that also implements io.Closer is closed exactly once when its
// subscription terminates or is cancelled.
type Source[T any] interface {
	Next(ctx context.Context) (T, bool, error)
}

// SourceFunc adapts a plain function to the Source interface.
type SourceFunc[T any] func(ctx context.Context) (T, bool, error)

// Next calls f(ctx).
func (f SourceFunc[T]) Next(ctx context.Context) (T, bool, error) {
	return f(ctx)
}

// Generate builds a cold Publisher from a source factory. Every Subscribe
// call invokes the factory once, so each subscriber replays the sequence
// from the beginning with its own state.
//
// Example:
//
//	pub := stream.Generate(func() stream.Source[int] {
//	    next := 0
//	    return stream.SourceFunc[int](func(ctx context.Context) (int, bool, error) {
//	        next++
//	        return next, true, nil // infinite counter, paced by demand
//	    })
//	})
func Generate[T any](factory func() Source[T]) Publisher[T] {
	return &coldPublisher[T]{factory: factory}
}

type coldPublisher[T any] struct {
	factory func() Source[T]
}

func (p *coldPublisher[T]) Subscribe(ctx context.Context, s Subscriber[T]) {
	sub := newSourceSubscription(ctx, p.factory(), s)
	s.OnSubscribe(sub)
}

// FromSlice returns a cold Publisher emitting the elements of items in
// order. The slice is copied, so later mutation by the caller does not leak
// into active subscriptions.
func FromSlice[T any](items []T) Publisher[T] {
	owned := make([]T, len(items))
	copy(owned, items)
	return Generate(func() Source[T] {
		i := 0
		return SourceFunc[T](func(context.Context) (T, bool, error) {
			if i >= len(owned) {
				var zero T
				return zero, false, nil
			}
			item := owned[i]
			i++
			return item, true, nil
		})
	})
}

// Just returns a cold Publisher emitting exactly the given elements in order.
func Just[T any](items ...T) Publisher[T] {
	return FromSlice(items)
}

// Range returns a cold Publisher emitting count consecutive integers starting
// at start. A non-positive count yields an empty stream.
func Range(start, count int) Publisher[int] {
	return Generate(func() Source[int] {
		i := 0
		return SourceFunc[int](func(context.Context) (int, bool, error) {
			if i >= count {
				return 0, false, nil
			}
			item := start + i
			i++
			return item, true, nil
		})
	})
}

// Empty returns a Publisher that completes without emitting once the first
// demand arrives.
func Empty[T any]() Publisher[T] {
	return Generate(func() Source[T] {
		return SourceFunc[T](func(context.Context) (T, bool, error) {
			var zero T
			return zero, false, nil
		})
	})
}

// Fail returns a Publisher that terminates with err via OnError once the
// first demand arrives, emitting nothing.
func Fail[T any](err error) Publisher[T] {
	return Generate(func() Source[T] {
		return SourceFunc[T](func(context.Context) (T, bool, error) {
			var zero T
			return zero, false, err
		})
	})
}

// FromChannel returns a Publisher that emits values received from ch and
// completes when ch is closed. With demand outstanding and nothing buffered,
// emission blocks until a value arrives or the subscription context is done,
// so pair it with a context you cancel.
//
// Each subscriber receives from the same channel: concurrent subscriptions
// split the values between them rather than duplicating the stream. Use a
// broadcaster to fan a channel out to several subscribers.
func FromChannel[T any](ch <-chan T) Publisher[T] {
	return Generate(func() Source[T] {
		return SourceFunc[T](func(ctx context.Context) (T, bool, error) {
			var zero T
			select {
			case item, ok := <-ch:
				if !ok {
					return zero, false, nil
				}
				return item, true, nil
			case <-ctx.Done():
				return zero, false, ctx.Err()
			}
		})
	})
}

// Tick returns a Publisher emitting the current time at the given interval,
// paced by both the ticker and subscriber demand. Intervals are dropped, not
// queued, while the subscriber has no demand outstanding. The underlying
// ticker is released when the subscription terminates.
//
// Panics if interval is not positive.
func Tick(interval time.Duration) Publisher[time.Time] {
	if interval <= 0 {
		panic("stream: tick interval must be positive")
	}
	return Generate(func() Source[time.Time] {
		return &tickSource{ticker: time.NewTicker(interval)}
	})
}

type tickSource struct {
	ticker *time.Ticker
}

func (t *tickSource) Next(ctx context.Context) (time.Time, bool, error) {
	select {
	case tm := <-t.ticker.C:
		return tm, true, nil
	case <-ctx.Done():
		return time.Time{}, false, ctx.Err()
	}
}

func (t *tickSource) Close() error {
	t.ticker.Stop()
	return nil
}
