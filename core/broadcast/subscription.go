package broadcast

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/dmitrymomot/streamkit/core/stream"
)

// fanout is the per-subscriber side of the hub: a bounded FIFO queue, the
// subscriber's own demand counter, and a single worker goroutine that
// delivers signals. One worker per subscriber keeps delivery serialized.
type fanout[T any] struct {
	id   uuid.UUID
	hub  *Broadcaster[T]
	ctx  context.Context
	next stream.Subscriber[T]

	demand stream.Demand
	// wake is a one-slot doorbell: enqueuing, requesting, terminating, and
	// cancelling all ring it, and the worker drains whatever it finds.
	wake chan struct{}

	mu         sync.Mutex
	queue      []T
	terminated bool
	failure    error

	canceled atomic.Bool
	finished atomic.Bool
}

// Request implements stream.Subscription.
func (f *fanout[T]) Request(n int64) error {
	if n <= 0 {
		return fmt.Errorf("%w: requested %d", stream.ErrInvalidDemand, n)
	}
	if f.finished.Load() || f.canceled.Load() {
		return nil
	}
	f.demand.Add(n)
	f.notify()
	return nil
}

// Cancel implements stream.Subscription.
func (f *fanout[T]) Cancel() {
	if !f.canceled.Swap(true) {
		f.notify()
	}
}

func (f *fanout[T]) notify() {
	select {
	case f.wake <- struct{}{}:
	default:
	}
}

// offer enqueues item for delivery. It reports false only when the item was
// dropped because the queue is full; offers to an ending subscription are
// silently discarded and not counted as drops.
func (f *fanout[T]) offer(item T) bool {
	f.mu.Lock()
	if f.terminated || f.canceled.Load() {
		f.mu.Unlock()
		return true
	}
	if len(f.queue) >= f.hub.bufferSize {
		f.mu.Unlock()
		return false
	}
	f.queue = append(f.queue, item)
	f.mu.Unlock()
	f.notify()
	return true
}

// terminate marks the pending terminal signal. The worker delivers it once
// the queue is drained.
func (f *fanout[T]) terminate(cause error) {
	f.mu.Lock()
	if f.terminated {
		f.mu.Unlock()
		return
	}
	f.terminated = true
	f.failure = cause
	f.mu.Unlock()
	f.notify()
}

// run is the delivery worker. It is the only goroutine invoking the
// subscriber's OnNext/OnError/OnComplete hooks.
func (f *fanout[T]) run() {
	for {
		select {
		case <-f.ctx.Done():
			f.finished.Store(true)
			f.hub.unregister(f.id)
			return
		case <-f.wake:
			if f.deliver() {
				return
			}
		}
	}
}

// deliver drains queued elements under demand and reports true once the
// subscription is finished. A pending terminal signal is delivered as soon
// as the queue empties, demand or not.
func (f *fanout[T]) deliver() bool {
	for {
		if f.canceled.Load() || f.ctx.Err() != nil {
			f.finished.Store(true)
			f.hub.unregister(f.id)
			return true
		}

		f.mu.Lock()
		if len(f.queue) == 0 {
			terminated, cause := f.terminated, f.failure
			f.mu.Unlock()
			if !terminated {
				return false
			}
			f.finished.Store(true)
			f.hub.unregister(f.id)
			if cause != nil {
				f.next.OnError(cause)
			} else {
				f.next.OnComplete()
			}
			return true
		}
		if !f.demand.Claim() {
			f.mu.Unlock()
			return false
		}
		item := f.queue[0]
		f.queue = f.queue[1:]
		f.mu.Unlock()

		f.next.OnNext(item)
	}
}
