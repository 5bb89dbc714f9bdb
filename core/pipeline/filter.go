package pipeline

import (
	"context"

	"github.com/dmitrymomot/streamkit/core/stream"
)

// Filter returns a Publisher passing through only the elements keep reports
// true for. Downstream demand counts kept elements: every dropped element is
// compensated by requesting one more upstream, so n requested downstream
// still yields n elements (source permitting).
func Filter[T any](src stream.Publisher[T], keep func(T) bool) stream.Publisher[T] {
	return stream.PublisherFunc[T](func(ctx context.Context, s stream.Subscriber[T]) {
		src.Subscribe(ctx, &filterSubscriber[T]{next: s, keep: keep})
	})
}

type filterSubscriber[T any] struct {
	next stream.Subscriber[T]
	keep func(T) bool
	sub  stream.Subscription
}

func (f *filterSubscriber[T]) OnSubscribe(sub stream.Subscription) {
	f.sub = sub
	f.next.OnSubscribe(sub)
}

func (f *filterSubscriber[T]) OnNext(item T) {
	if f.keep(item) {
		f.next.OnNext(item)
		return
	}
	// The dropped element consumed one unit of upstream demand without
	// producing anything downstream; replenish it.
	_ = f.sub.Request(1)
}

func (f *filterSubscriber[T]) OnError(err error) {
	f.next.OnError(err)
}

func (f *filterSubscriber[T]) OnComplete() {
	f.next.OnComplete()
}
