package pipeline

import (
	"context"

	"github.com/dmitrymomot/streamkit/core/stream"
)

// Tap returns a Publisher that invokes observe for every element before
// passing it downstream unchanged. Useful for logging, metrics, and
// debugging without disturbing demand or termination.
//
// Example:
//
//	audited := pipeline.Tap(orders, func(o Order) {
//	    logger.InfoContext(ctx, "order seen", slog.String("id", o.ID))
//	})
func Tap[T any](src stream.Publisher[T], observe func(T)) stream.Publisher[T] {
	return stream.PublisherFunc[T](func(ctx context.Context, s stream.Subscriber[T]) {
		src.Subscribe(ctx, &tapSubscriber[T]{next: s, observe: observe})
	})
}

type tapSubscriber[T any] struct {
	next    stream.Subscriber[T]
	observe func(T)
}

func (t *tapSubscriber[T]) OnSubscribe(sub stream.Subscription) {
	t.next.OnSubscribe(sub)
}

func (t *tapSubscriber[T]) OnNext(item T) {
	t.observe(item)
	t.next.OnNext(item)
}

func (t *tapSubscriber[T]) OnError(err error) {
	t.next.OnError(err)
}

func (t *tapSubscriber[T]) OnComplete() {
	t.next.OnComplete()
}
