package pipeline

import (
	"context"
	"sync/atomic"

	"github.com/dmitrymomot/streamkit/core/stream"
)

// Map returns a Publisher that transforms every upstream element with fn
// before passing it downstream. Demand is forwarded one to one.
//
// A transform error is terminal: the upstream subscription is cancelled and
// the error is delivered downstream via OnError.
func Map[In, Out any](src stream.Publisher[In], fn func(In) (Out, error)) stream.Publisher[Out] {
	return stream.PublisherFunc[Out](func(ctx context.Context, s stream.Subscriber[Out]) {
		src.Subscribe(ctx, &mapSubscriber[In, Out]{next: s, fn: fn})
	})
}

type mapSubscriber[In, Out any] struct {
	next stream.Subscriber[Out]
	fn   func(In) (Out, error)
	sub  stream.Subscription
	done atomic.Bool
}

func (m *mapSubscriber[In, Out]) OnSubscribe(sub stream.Subscription) {
	m.sub = sub
	m.next.OnSubscribe(sub)
}

func (m *mapSubscriber[In, Out]) OnNext(item In) {
	if m.done.Load() {
		return
	}
	out, err := m.fn(item)
	if err != nil {
		if !m.done.Swap(true) {
			m.sub.Cancel()
			m.next.OnError(err)
		}
		return
	}
	m.next.OnNext(out)
}

func (m *mapSubscriber[In, Out]) OnError(err error) {
	if !m.done.Swap(true) {
		m.next.OnError(err)
	}
}

func (m *mapSubscriber[In, Out]) OnComplete() {
	if !m.done.Swap(true) {
		m.next.OnComplete()
	}
}
