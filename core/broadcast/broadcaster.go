package broadcast

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/dmitrymomot/streamkit/core/stream"
)

const (
	// DefaultBufferSize is the default per-subscriber queue capacity.
	DefaultBufferSize = 100
)

// Broadcaster is a hot hub that multicasts elements to any number of
// subscribers, each consuming at its own pace under its own demand. It is a
// stream.Processor[T, T]: feed it directly with Publish, or subscribe it to
// an upstream publisher and let it fan the stream out.
//
// Delivery to a subscriber is decoupled from the hub through a bounded
// per-subscriber queue. A subscriber whose queue is full has elements
// dropped rather than blocking the hub or its peers; drops are counted in
// Stats. Elements that made it into the queue are delivered strictly in
// order under the subscriber's demand.
//
// Unlike a cold publisher, a Broadcaster's terminal signal does not wait for
// demand: once the hub closes and a subscriber's queue is drained, the
// subscriber receives OnComplete (or OnError when the hub failed) even if it
// never requested anything further.
//
// Example:
//
//	hub := broadcast.NewBroadcaster[string](
//	    broadcast.WithBufferSize(64),
//	    broadcast.WithLogger(logger),
//	)
//	defer hub.Close()
//
//	hub.Subscribe(ctx, subscriberA)
//	hub.Subscribe(ctx, subscriberB)
//	hub.Publish(ctx, "hello")
type Broadcaster[T any] struct {
	bufferSize int
	logger     *slog.Logger

	mu      sync.RWMutex
	subs    map[uuid.UUID]*fanout[T]
	closed  bool
	failure error

	feedMu sync.Mutex
	feed   stream.Subscription

	published atomic.Int64
	dropped   atomic.Int64
}

// NewBroadcaster creates a hub with no subscribers.
func NewBroadcaster[T any](opts ...BroadcasterOption) *Broadcaster[T] {
	options := broadcasterOptions{
		bufferSize: DefaultBufferSize,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(&options)
	}
	return &Broadcaster[T]{
		bufferSize: options.bufferSize,
		logger:     options.logger,
		subs:       make(map[uuid.UUID]*fanout[T]),
	}
}

// Publish offers item to every current subscriber. It never blocks on slow
// consumers: a full subscriber queue drops the item for that subscriber and
// the drop is counted in Stats. Returns ErrClosed after the hub has closed.
func (b *Broadcaster[T]) Publish(ctx context.Context, item T) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	b.mu.RLock()
	if b.closed {
		b.mu.RUnlock()
		return ErrClosed
	}
	b.published.Add(1)
	for _, f := range b.subs {
		if !f.offer(item) {
			b.dropped.Add(1)
			b.logger.DebugContext(ctx, "element dropped for slow subscriber",
				slog.String("subscriber_id", f.id.String()))
		}
	}
	b.mu.RUnlock()
	return nil
}

// Subscribe implements stream.Publisher. The subscriber receives elements
// published from this point on; it is unregistered automatically when ctx is
// cancelled or its subscription is cancelled. Subscribing to a closed hub
// yields the terminal signal immediately.
func (b *Broadcaster[T]) Subscribe(ctx context.Context, s stream.Subscriber[T]) {
	f := &fanout[T]{
		id:   uuid.New(),
		hub:  b,
		ctx:  ctx,
		next: s,
		wake: make(chan struct{}, 1),
	}

	b.mu.Lock()
	if b.closed {
		f.terminated = true
		f.failure = b.failure
	} else {
		b.subs[f.id] = f
	}
	b.mu.Unlock()

	s.OnSubscribe(f)
	go f.run()
	f.notify()
	b.logger.Debug("subscriber registered", slog.String("subscriber_id", f.id.String()))
}

// OnSubscribe implements stream.Subscriber. The hub accepts one upstream
// feed at a time and consumes it with unbounded demand; per-subscriber
// pacing happens on the fan-out side.
func (b *Broadcaster[T]) OnSubscribe(sub stream.Subscription) {
	b.feedMu.Lock()
	if b.feed != nil || b.isClosed() {
		b.feedMu.Unlock()
		sub.Cancel()
		return
	}
	b.feed = sub
	b.feedMu.Unlock()
	_ = sub.Request(stream.Unbounded)
}

// OnNext implements stream.Subscriber.
func (b *Broadcaster[T]) OnNext(item T) {
	_ = b.Publish(context.Background(), item)
}

// OnError implements stream.Subscriber. An upstream failure closes the hub
// and propagates the error to every subscriber once their queues drain.
func (b *Broadcaster[T]) OnError(err error) {
	_ = b.shutdown(err)
}

// OnComplete implements stream.Subscriber. Upstream completion closes the
// hub normally.
func (b *Broadcaster[T]) OnComplete() {
	_ = b.Close()
}

// Close shuts the hub down: publishing stops and every subscriber receives
// OnComplete once its queue is drained. Returns ErrClosed if the hub is
// already closed.
func (b *Broadcaster[T]) Close() error {
	return b.shutdown(nil)
}

func (b *Broadcaster[T]) shutdown(cause error) error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return ErrClosed
	}
	b.closed = true
	b.failure = cause
	targets := make([]*fanout[T], 0, len(b.subs))
	for _, f := range b.subs {
		targets = append(targets, f)
	}
	b.mu.Unlock()

	b.feedMu.Lock()
	if b.feed != nil {
		b.feed.Cancel()
	}
	b.feedMu.Unlock()

	for _, f := range targets {
		f.terminate(cause)
	}

	if cause != nil {
		b.logger.Error("broadcaster failed", slog.Any("error", cause))
	} else {
		b.logger.Info("broadcaster closed")
	}
	return nil
}

func (b *Broadcaster[T]) isClosed() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.closed
}

func (b *Broadcaster[T]) unregister(id uuid.UUID) {
	b.mu.Lock()
	delete(b.subs, id)
	b.mu.Unlock()
	b.logger.Debug("subscriber unregistered", slog.String("subscriber_id", id.String()))
}

// BroadcasterStats is a snapshot of hub activity.
type BroadcasterStats struct {
	Subscribers int
	Published   int64
	Dropped     int64
}

// Stats returns current hub counters. Published counts elements accepted by
// the hub; Dropped counts per-subscriber deliveries skipped because of a
// full queue.
func (b *Broadcaster[T]) Stats() BroadcasterStats {
	b.mu.RLock()
	n := len(b.subs)
	b.mu.RUnlock()
	return BroadcasterStats{
		Subscribers: n,
		Published:   b.published.Load(),
		Dropped:     b.dropped.Load(),
	}
}
