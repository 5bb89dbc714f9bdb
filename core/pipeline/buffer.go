package pipeline

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/dmitrymomot/streamkit/core/stream"
)

// Buffer returns a Publisher that groups upstream elements into slices of
// size and emits each full batch as one downstream element. One unit of
// downstream demand translates to size units upstream. On completion a
// partial batch is flushed before OnComplete; on failure it is discarded and
// only the error is delivered.
//
// Panics if size is not positive.
func Buffer[T any](src stream.Publisher[T], size int) stream.Publisher[[]T] {
	if size <= 0 {
		panic("pipeline: buffer size must be positive")
	}
	return stream.PublisherFunc[[]T](func(ctx context.Context, s stream.Subscriber[[]T]) {
		src.Subscribe(ctx, &bufferSubscriber[T]{next: s, size: size})
	})
}

type bufferSubscriber[T any] struct {
	next stream.Subscriber[[]T]
	size int
	sub  stream.Subscription
	buf  []T
	done atomic.Bool
}

func (b *bufferSubscriber[T]) OnSubscribe(sub stream.Subscription) {
	b.sub = sub
	b.buf = make([]T, 0, b.size)
	b.next.OnSubscribe(&scaledSubscription{sub: sub, factor: int64(b.size)})
}

func (b *bufferSubscriber[T]) OnNext(item T) {
	if b.done.Load() {
		return
	}
	b.buf = append(b.buf, item)
	if len(b.buf) == b.size {
		batch := b.buf
		b.buf = make([]T, 0, b.size)
		b.next.OnNext(batch)
	}
}

func (b *bufferSubscriber[T]) OnError(err error) {
	if b.done.Swap(true) {
		return
	}
	b.buf = nil
	b.next.OnError(err)
}

func (b *bufferSubscriber[T]) OnComplete() {
	if b.done.Swap(true) {
		return
	}
	if len(b.buf) > 0 {
		batch := b.buf
		b.buf = nil
		b.next.OnNext(batch)
	}
	b.next.OnComplete()
}

// scaledSubscription multiplies downstream demand by the batch size,
// saturating at Unbounded.
type scaledSubscription struct {
	sub    stream.Subscription
	factor int64
}

func (s *scaledSubscription) Request(n int64) error {
	if n <= 0 {
		return fmt.Errorf("%w: requested %d", stream.ErrInvalidDemand, n)
	}
	if n > stream.Unbounded/s.factor {
		return s.sub.Request(stream.Unbounded)
	}
	return s.sub.Request(n * s.factor)
}

func (s *scaledSubscription) Cancel() {
	s.sub.Cancel()
}
