// Package broadcast provides a hot multicast hub that fans one stream of
// elements out to many subscribers, each paced by its own demand.
//
// A cold publisher replays its sequence per subscription; a Broadcaster does
// the opposite: elements are published once and every current subscriber
// receives its own copy. Subscribers joining late see only what is published
// after they join. Slow consumers never block the hub: each subscriber has a
// bounded queue and overflow is dropped for that subscriber alone, counted
// in Stats.
//
// # Feeding the Hub
//
// Feed elements directly:
//
//	hub := broadcast.NewBroadcaster[Event]()
//	defer hub.Close()
//
//	if err := hub.Publish(ctx, evt); err != nil {
//	    // broadcast.ErrClosed after Close
//	}
//
// Or plug the hub into an upstream publisher; it is a stream.Processor, so
// it subscribes like any other subscriber and republishes what it receives:
//
//	ticks := stream.Tick(time.Second)
//	hub := broadcast.NewBroadcaster[time.Time]()
//	ticks.Subscribe(ctx, hub)
//
//	hub.Subscribe(ctx, dashboardFeed)
//	hub.Subscribe(ctx, auditLog)
//
// Upstream termination propagates: OnComplete closes the hub, OnError closes
// it with the error delivered to every subscriber.
//
// # Demand and Drops
//
// The hub consumes its upstream with unbounded demand and buffers per
// subscriber. A subscriber's queue fills when it requests slower than the
// hub publishes; once full, new elements are dropped for that subscriber
// until it drains. Size the buffer with WithBufferSize to absorb bursts.
//
// # Lifecycle
//
// Close is terminal: subscribers receive OnComplete after draining their
// queues, late subscribers receive it immediately, and Publish returns
// ErrClosed. Subscribers leave individually by cancelling their subscription
// or their context; both unregister them without affecting the hub.
package broadcast
