package websocket

import (
	"context"
	"sync/atomic"

	"github.com/gorilla/websocket"

	"github.com/dmitrymomot/streamkit/core/stream"
)

// Publisher returns a publisher of message payloads read from a WebSocket
// connection. A gorilla connection permits one concurrent reader, so the
// publisher accepts a single subscription for the life of the connection;
// any later subscription fails with stream.ErrAlreadySubscribed.
//
// A normal close from the peer (going away included) completes the stream;
// any other read failure fails it. The connection is closed when the
// subscription ends, whichever side ends it.
func Publisher(conn *websocket.Conn) stream.Publisher[[]byte] {
	var claimed atomic.Bool
	return stream.PublisherFunc[[]byte](func(ctx context.Context, s stream.Subscriber[[]byte]) {
		if !claimed.CompareAndSwap(false, true) {
			stream.Fail[[]byte](stream.ErrAlreadySubscribed).Subscribe(ctx, s)
			return
		}
		stream.Generate(func() stream.Source[[]byte] {
			return &connSource{conn: conn, done: make(chan struct{})}
		}).Subscribe(ctx, s)
	})
}

type connSource struct {
	conn    *websocket.Conn
	done    chan struct{}
	watched bool
}

func (s *connSource) Next(ctx context.Context) ([]byte, bool, error) {
	if !s.watched {
		s.watched = true
		// ReadMessage cannot watch a context; closing the connection is the
		// only way to unblock it when ctx is cancelled.
		go func() {
			select {
			case <-ctx.Done():
				_ = s.conn.Close()
			case <-s.done:
			}
		}()
	}

	_, payload, err := s.conn.ReadMessage()
	if err != nil {
		if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
			return nil, false, nil
		}
		if ctx.Err() != nil {
			return nil, false, ctx.Err()
		}
		return nil, false, err
	}
	return payload, true, nil
}

func (s *connSource) Close() error {
	close(s.done)
	return s.conn.Close()
}

// SinkOption configures a Sink.
type SinkOption func(*sinkOptions)

type sinkOptions struct {
	messageType int
	stream      []stream.StepOption
}

// WithTextMessages makes the sink send text frames instead of the default
// binary frames.
func WithTextMessages() SinkOption {
	return func(o *sinkOptions) {
		o.messageType = websocket.TextMessage
	}
}

// WithStreamOptions forwards options to the underlying step subscriber, for
// example stream.WithErrorFunc to observe write failures.
func WithStreamOptions(opts ...stream.StepOption) SinkOption {
	return func(o *sinkOptions) {
		o.stream = append(o.stream, opts...)
	}
}

// Sink returns a subscriber that writes each element as a WebSocket message.
// It consumes one element at a time, matching the connection's one-writer
// rule; a write failure cancels the subscription upstream. When the stream
// completes, the sink sends a normal close frame.
func Sink(conn *websocket.Conn, opts ...SinkOption) stream.Subscriber[[]byte] {
	options := sinkOptions{messageType: websocket.BinaryMessage}
	for _, opt := range opts {
		opt(&options)
	}

	streamOpts := append([]stream.StepOption{
		stream.WithCompleteFunc(func() {
			_ = conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		}),
	}, options.stream...)

	return stream.NewStepSubscriber(func(payload []byte) error {
		return conn.WriteMessage(options.messageType, payload)
	}, streamOpts...)
}
