// Package streamtest provides test doubles for exercising publishers and
// subscribers without writing one-off subscriber types in every test.
package streamtest

import (
	"sync"
	"time"

	"github.com/dmitrymomot/streamkit/core/stream"
)

// Recorder is a Subscriber that records every signal it receives and exposes
// the transcript for assertions. It requests nothing by itself: tests pull
// the Subscription out with Subscription() and drive demand explicitly.
//
// Beyond the happy path, the Recorder counts protocol violations a correct
// publisher must never produce: extra terminal signals and elements arriving
// after a terminal. Tests assert those counters stay at their expected
// values instead of trusting the publisher blindly.
type Recorder[T any] struct {
	mu        sync.Mutex
	sub       stream.Subscription
	items     []T
	err       error
	completed bool
	terminals int
	lateItems int

	terminal chan struct{}
}

// NewRecorder returns a Recorder ready to pass to Publisher.Subscribe.
func NewRecorder[T any]() *Recorder[T] {
	return &Recorder[T]{terminal: make(chan struct{})}
}

// OnSubscribe implements stream.Subscriber.
func (r *Recorder[T]) OnSubscribe(sub stream.Subscription) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sub = sub
}

// OnNext implements stream.Subscriber.
func (r *Recorder[T]) OnNext(item T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.terminals > 0 {
		r.lateItems++
		return
	}
	r.items = append(r.items, item)
}

// OnError implements stream.Subscriber.
func (r *Recorder[T]) OnError(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.err = err
	r.terminals++
	if r.terminals == 1 {
		close(r.terminal)
	}
}

// OnComplete implements stream.Subscriber.
func (r *Recorder[T]) OnComplete() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.completed = true
	r.terminals++
	if r.terminals == 1 {
		close(r.terminal)
	}
}

// Subscription returns the subscription received via OnSubscribe, or nil if
// the recorder has not been subscribed yet.
func (r *Recorder[T]) Subscription() stream.Subscription {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sub
}

// Request drives demand on the recorded subscription.
func (r *Recorder[T]) Request(n int64) error {
	return r.Subscription().Request(n)
}

// Items returns a copy of the elements received so far.
func (r *Recorder[T]) Items() []T {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]T, len(r.items))
	copy(out, r.items)
	return out
}

// Err returns the error received via OnError, if any.
func (r *Recorder[T]) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

// Completed reports whether OnComplete was received.
func (r *Recorder[T]) Completed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.completed
}

// TerminalCount reports how many terminal signals arrived. A conforming
// publisher delivers at most one.
func (r *Recorder[T]) TerminalCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.terminals
}

// LateItemCount reports how many elements arrived after a terminal signal.
// A conforming publisher delivers none.
func (r *Recorder[T]) LateItemCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lateItems
}

// AwaitTerminal waits up to d for a terminal signal and reports whether one
// arrived. Synchronous publishers terminate before Subscribe returns, so
// this is mainly for asynchronous ones.
func (r *Recorder[T]) AwaitTerminal(d time.Duration) bool {
	select {
	case <-r.terminal:
		return true
	case <-time.After(d):
		return false
	}
}
