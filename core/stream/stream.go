package stream

import "context"

// Publisher is a provider of a potentially unbounded number of sequenced
// elements, publishing them according to the demand received from its
// Subscriber.
//
// Subscribe is a factory method: a Publisher can serve multiple Subscribers,
// each call starting a new Subscription. Cold publishers restart their
// sequence for every subscription.
//
// Cancelling the context is equivalent to calling Cancel on the Subscription:
// emission stops cooperatively and no terminal signal is delivered.
type Publisher[T any] interface {
	// Subscribe requests the Publisher to start streaming data to s.
	// The Subscriber's OnSubscribe hook is invoked synchronously before
	// Subscribe returns; emission itself only happens under demand.
	Subscribe(ctx context.Context, s Subscriber[T])
}

// Subscriber consumes the elements of a stream under explicit demand.
// It receives exactly one OnSubscribe call per subscription, followed by any
// number of OnNext calls (never exceeding the demand it requested), followed
// by at most one terminal signal: either OnError or OnComplete, never both.
// No OnNext is delivered after a terminal signal.
//
// Signal delivery is serialized: the Publisher never invokes two hooks of the
// same Subscriber concurrently.
type Subscriber[T any] interface {
	// OnSubscribe hands the Subscriber the Subscription that controls the
	// stream. Implementations typically issue their first Request here.
	OnSubscribe(s Subscription)

	// OnNext delivers the next element of the stream.
	OnNext(item T)

	// OnError signals that the stream terminated due to a production
	// failure. No further signals follow.
	OnError(err error)

	// OnComplete signals that the stream terminated successfully.
	// No further signals follow.
	OnComplete()
}

// Subscription represents the one-to-one lifecycle of a Subscriber
// subscribing to a Publisher. It carries the outstanding demand and is the
// only channel through which the Subscriber controls the stream.
type Subscription interface {
	// Request adds n to the outstanding demand, allowing the Publisher to
	// emit up to n additional elements. Demand saturates at Unbounded.
	//
	// n must be positive; otherwise Request returns ErrInvalidDemand and
	// delivers no signal. Requesting on a terminated or cancelled
	// subscription is a no-op returning nil.
	//
	// Request is safe to call from any goroutine, including reentrantly
	// from inside OnNext.
	Request(n int64) error

	// Cancel asks the Publisher to stop emitting. Cancellation is
	// cooperative and idempotent: signals already in flight may still be
	// delivered, but no terminal signal is owed after Cancel.
	Cancel()
}

// Processor is both a Subscriber and a Publisher, consuming elements of type
// In and emitting elements of type Out. It is the building block for
// operators and for hubs that sit between two streams.
type Processor[In, Out any] interface {
	Subscriber[In]
	Publisher[Out]
}

// PublisherFunc adapts a plain function to the Publisher interface.
//
// Example:
//
//	pub := stream.PublisherFunc[int](func(ctx context.Context, s stream.Subscriber[int]) {
//	    stream.Just(1, 2, 3).Subscribe(ctx, s)
//	})
type PublisherFunc[T any] func(ctx context.Context, s Subscriber[T])

// Subscribe calls f(ctx, s).
func (f PublisherFunc[T]) Subscribe(ctx context.Context, s Subscriber[T]) {
	f(ctx, s)
}
