package redis

import (
	"context"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/streamkit/core/stream"
)

// Publisher returns a publisher of raw message payloads from a Redis pub/sub
// channel. Every subscription opens its own SUBSCRIBE, established on first
// demand and confirmed before any payload is emitted, so each subscriber
// receives all messages published after its subscription is live.
//
// The stream is hot: messages published while no demand is outstanding are
// buffered by the go-redis subscription up to its internal limit and dropped
// beyond it. The stream completes if the subscription is closed externally
// and fails on receive errors.
func Publisher(client *redis.Client, channel string) stream.Publisher[[]byte] {
	return stream.Generate(func() stream.Source[[]byte] {
		return &channelSource{client: client, channel: channel}
	})
}

type channelSource struct {
	client  *redis.Client
	channel string
	pubsub  *redis.PubSub
	msgs    <-chan *redis.Message
}

func (s *channelSource) Next(ctx context.Context) ([]byte, bool, error) {
	if s.pubsub == nil {
		s.pubsub = s.client.Subscribe(ctx, s.channel)
		// Wait for the SUBSCRIBE confirmation so nothing published after
		// this point is missed.
		if _, err := s.pubsub.Receive(ctx); err != nil {
			return nil, false, err
		}
		s.msgs = s.pubsub.Channel()
	}

	select {
	case msg, ok := <-s.msgs:
		if !ok {
			return nil, false, nil
		}
		return []byte(msg.Payload), true, nil
	case <-ctx.Done():
		return nil, false, ctx.Err()
	}
}

func (s *channelSource) Close() error {
	if s.pubsub == nil {
		return nil
	}
	return s.pubsub.Close()
}

// Sink returns a subscriber that publishes each element to a Redis channel.
// It consumes one element at a time, so the stream can never outrun Redis; a
// publish failure cancels the subscription and is reported through the error
// hook. The ctx bounds the individual publish calls.
func Sink(ctx context.Context, client *redis.Client, channel string, opts ...stream.StepOption) stream.Subscriber[[]byte] {
	return stream.NewStepSubscriber(func(payload []byte) error {
		return client.Publish(ctx, channel, payload).Err()
	}, opts...)
}
