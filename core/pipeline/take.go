package pipeline

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/dmitrymomot/streamkit/core/stream"
)

// Take returns a Publisher that emits at most limit elements from src, then
// completes and cancels the upstream subscription. Because the bound is
// known in advance, completion is eager: it needs no extra demand to be
// observed, and upstream demand is capped at limit no matter how much the
// downstream requests.
//
// A non-positive limit completes immediately after OnSubscribe.
func Take[T any](src stream.Publisher[T], limit int64) stream.Publisher[T] {
	return stream.PublisherFunc[T](func(ctx context.Context, s stream.Subscriber[T]) {
		sub := &takeSubscriber[T]{next: s, limit: limit}
		sub.remaining.Store(limit)
		src.Subscribe(ctx, sub)
	})
}

type takeSubscriber[T any] struct {
	next      stream.Subscriber[T]
	limit     int64
	remaining atomic.Int64
	sub       stream.Subscription
	done      atomic.Bool
}

func (t *takeSubscriber[T]) OnSubscribe(sub stream.Subscription) {
	t.sub = sub
	t.next.OnSubscribe(&cappedSubscription[T]{t: t})
	if t.limit <= 0 && !t.done.Swap(true) {
		sub.Cancel()
		t.next.OnComplete()
	}
}

func (t *takeSubscriber[T]) OnNext(item T) {
	if t.done.Load() {
		return
	}
	left := t.remaining.Add(-1)
	if left < 0 {
		return
	}
	t.next.OnNext(item)
	if left == 0 && !t.done.Swap(true) {
		t.sub.Cancel()
		t.next.OnComplete()
	}
}

func (t *takeSubscriber[T]) OnError(err error) {
	if !t.done.Swap(true) {
		t.next.OnError(err)
	}
}

func (t *takeSubscriber[T]) OnComplete() {
	if !t.done.Swap(true) {
		t.next.OnComplete()
	}
}

// cappedSubscription forwards demand upstream only until the cumulative
// forwarded amount reaches the take limit; anything beyond that would pull
// elements destined to be discarded.
type cappedSubscription[T any] struct {
	t         *takeSubscriber[T]
	forwarded atomic.Int64
}

func (c *cappedSubscription[T]) Request(n int64) error {
	if n <= 0 {
		return fmt.Errorf("%w: requested %d", stream.ErrInvalidDemand, n)
	}
	for {
		cur := c.forwarded.Load()
		if cur >= c.t.limit {
			return nil
		}
		want := n
		if rest := c.t.limit - cur; want > rest {
			want = rest
		}
		if c.forwarded.CompareAndSwap(cur, cur+want) {
			return c.t.sub.Request(want)
		}
	}
}

func (c *cappedSubscription[T]) Cancel() {
	c.t.done.Store(true)
	c.t.sub.Cancel()
}
