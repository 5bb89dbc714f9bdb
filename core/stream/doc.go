// Package stream implements a demand-driven subscription protocol between
// publishers and subscribers, with explicit backpressure and cooperative
// cancellation. Publishers emit nothing until the subscriber requests it, so
// a slow consumer paces a fast producer instead of being buried by it.
//
// # Core Components
//
// Publisher emits a bounded or unbounded sequence of elements to each
// Subscriber that subscribes. Publishers built with Generate are cold: every
// subscription replays the sequence from the beginning.
//
// Subscriber consumes elements through four hooks: OnSubscribe, OnNext,
// OnError, and OnComplete. Per subscription it receives exactly one
// OnSubscribe, then elements never exceeding its requested demand, then at
// most one terminal signal, which is either OnError or OnComplete, never
// both. No OnNext follows a terminal signal, and hook invocations never
// overlap.
//
// Subscription links one Publisher to one Subscriber and carries the demand
// protocol: Request(n) lets n more elements flow, Cancel stops the stream
// without a terminal signal. Demand accumulates and saturates at Unbounded.
//
// Source is the pull interface behind Generate. Implement Next, or wrap a
// closure in SourceFunc, and the package drives it under demand with
// serialized delivery and single release of io.Closer sources.
//
// Callbacks assembles a Subscriber from inline hooks with sensible defaults,
// and StepSubscriber consumes one element (or one configured stride) at a
// time for strict backpressure.
//
// # Basic Usage
//
// Subscribe with inline callbacks and unbounded demand:
//
//	import (
//		"context"
//		"fmt"
//
//		"github.com/dmitrymomot/streamkit/core/stream"
//	)
//
//	func main() {
//		ctx := context.Background()
//
//		stream.Just("a", "b", "c").Subscribe(ctx, stream.Callbacks[string]{
//			OnNext:     func(s string) { fmt.Println(s) },
//			OnComplete: func() { fmt.Println("done") },
//		}.Build())
//	}
//
// The default OnSubscribe hook requests Unbounded demand, so emission runs
// to completion synchronously inside Subscribe.
//
// # Backpressure
//
// Request less and the publisher waits. A StepSubscriber requests one
// element, processes it, then requests the next, so production never runs
// ahead of the handler:
//
//	sub := stream.NewStepSubscriber(func(job Job) error {
//		return process(job) // next element is requested only after this returns
//	})
//	jobs.Subscribe(ctx, sub)
//
// A handler error cancels the upstream subscription and is reported through
// the error hook, configurable with WithErrorFunc.
//
// # Custom Sources
//
// Generate turns any pull-based producer into a Publisher. The factory runs
// once per subscription, giving each subscriber independent state:
//
//	rows := stream.Generate(func() stream.Source[Row] {
//		cursor := db.OpenCursor()
//		return stream.SourceFunc[Row](func(ctx context.Context) (Row, bool, error) {
//			return cursor.Fetch(ctx)
//		})
//	})
//
// Return ok=false to complete the stream, or an error to fail it. A Source
// that implements io.Closer is closed exactly once when the subscription
// ends, whether by completion, failure, or cancellation.
//
// # Error Handling
//
// Production failures are terminal: the subscriber receives the error once
// via OnError and nothing further. Invalid demand is not a stream failure;
// Request(n) with n <= 0 returns ErrInvalidDemand to the caller and the
// subscription stays usable:
//
//	if err := sub.Request(0); errors.Is(err, stream.ErrInvalidDemand) {
//		// caller bug, stream unaffected
//	}
//
// # Cancellation
//
// Cancellation is cooperative. Calling Cancel, or cancelling the context
// passed to Subscribe, stops emission at the next demand check; signals
// already in flight may still arrive, and no terminal signal follows.
// Request on a cancelled or terminated subscription is a no-op.
//
// # Concurrency
//
// Signal delivery to a subscriber is serialized without holding locks across
// user code, so hooks may themselves call Request or Cancel, including
// synchronously from inside OnNext. Request and Cancel are safe from any
// goroutine.
package stream
