package stream

import (
	"context"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
)

// Subscription states. A subscription leaves stateActive exactly once, which
// is what guarantees at most one terminal signal per subscriber.
const (
	stateActive int32 = iota
	stateCompleted
	stateFailed
	stateCanceled
)

// sourceSubscription drives a Source against a Subscriber under demand.
// It is the engine behind every publisher built with Generate.
//
// All subscriber hooks are invoked from the drain loop, which at most one
// goroutine runs at a time, so delivery is serialized without holding a lock
// across user code.
type sourceSubscription[T any] struct {
	ctx        context.Context
	source     Source[T]
	subscriber Subscriber[T]

	demand  Demand
	state   atomic.Int32
	wip     atomic.Int64
	release sync.Once
}

func newSourceSubscription[T any](ctx context.Context, src Source[T], sub Subscriber[T]) *sourceSubscription[T] {
	return &sourceSubscription[T]{
		ctx:        ctx,
		source:     src,
		subscriber: sub,
	}
}

// Request implements Subscription.
func (s *sourceSubscription[T]) Request(n int64) error {
	if n <= 0 {
		return fmt.Errorf("%w: requested %d", ErrInvalidDemand, n)
	}
	if s.state.Load() != stateActive {
		return nil
	}
	s.demand.Add(n)
	s.drain()
	return nil
}

// Cancel implements Subscription. The first call moves the subscription out
// of the active state; emission stops at the next loop check and no terminal
// signal is delivered.
func (s *sourceSubscription[T]) Cancel() {
	if s.state.CompareAndSwap(stateActive, stateCanceled) {
		s.drain()
	}
}

// drain is the serialization point. The goroutine that bumps wip from zero
// becomes the emitter; everyone else leaves their increment behind as a
// wake-up for the emitter to loop again. Reentrant Request calls from inside
// OnNext therefore never recurse into emit.
func (s *sourceSubscription[T]) drain() {
	if s.wip.Add(1) != 1 {
		return
	}
	// A panicking subscriber hook cancels the subscription and releases the
	// source before the panic propagates.
	defer func() {
		if r := recover(); r != nil {
			s.state.CompareAndSwap(stateActive, stateCanceled)
			s.releaseSource()
			panic(r)
		}
	}()
	missed := int64(1)
	for {
		s.emit()
		if s.state.Load() != stateActive {
			s.releaseSource()
		}
		missed = s.wip.Add(-missed)
		if missed == 0 {
			return
		}
	}
}

// emit pulls from the source while the subscription is active and demand is
// outstanding. It returns when demand runs dry, the context is done, or the
// stream terminates.
func (s *sourceSubscription[T]) emit() {
	for s.state.Load() == stateActive {
		if s.ctx.Err() != nil {
			s.state.CompareAndSwap(stateActive, stateCanceled)
			return
		}
		if !s.demand.Claim() {
			return
		}
		item, ok, err := s.source.Next(s.ctx)
		if err != nil {
			if s.ctx.Err() != nil {
				// Context cancellation surfaced through the source
				// counts as cancellation, not stream failure.
				s.state.CompareAndSwap(stateActive, stateCanceled)
				return
			}
			if s.state.CompareAndSwap(stateActive, stateFailed) {
				s.subscriber.OnError(err)
			}
			return
		}
		if !ok {
			if s.state.CompareAndSwap(stateActive, stateCompleted) {
				s.subscriber.OnComplete()
			}
			return
		}
		s.subscriber.OnNext(item)
	}
}

// releaseSource closes the source at most once, after the subscription left
// the active state. Sources that do not implement io.Closer need no release.
func (s *sourceSubscription[T]) releaseSource() {
	s.release.Do(func() {
		if closer, ok := s.source.(io.Closer); ok {
			_ = closer.Close()
		}
	})
}
