package pg

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/streamkit/core/stream"
)

// Publisher returns a publisher of notification payloads from a PostgreSQL
// channel. Every subscription acquires its own connection from the pool and
// holds it in LISTEN for the life of the subscription, established on first
// demand. The channel name is quoted as an identifier, so any name is safe.
//
// The stream is hot: notifications sent before the LISTEN is live are not
// replayed, and PostgreSQL delivers notifications only on transaction
// commit. The stream fails on connection errors.
func Publisher(pool *pgxpool.Pool, channel string) stream.Publisher[[]byte] {
	return stream.Generate(func() stream.Source[[]byte] {
		return &notifySource{pool: pool, channel: channel}
	})
}

type notifySource struct {
	pool    *pgxpool.Pool
	channel string
	conn    *pgxpool.Conn
}

func (s *notifySource) Next(ctx context.Context) ([]byte, bool, error) {
	if s.conn == nil {
		conn, err := s.pool.Acquire(ctx)
		if err != nil {
			return nil, false, err
		}
		if _, err := conn.Exec(ctx, "listen "+pgx.Identifier{s.channel}.Sanitize()); err != nil {
			conn.Release()
			return nil, false, err
		}
		s.conn = conn
	}

	notification, err := s.conn.Conn().WaitForNotification(ctx)
	if err != nil {
		return nil, false, err
	}
	return []byte(notification.Payload), true, nil
}

func (s *notifySource) Close() error {
	if s.conn == nil {
		return nil
	}
	// Clear the LISTEN state so the connection goes back to the pool clean.
	// If the connection died the exec fails fast and Release discards it.
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_, err := s.conn.Exec(ctx, "unlisten "+pgx.Identifier{s.channel}.Sanitize())
	s.conn.Release()
	s.conn = nil
	return err
}

// Sink returns a subscriber that sends each element as a notification on a
// PostgreSQL channel via pg_notify. It consumes one element at a time; a
// failed notify cancels the subscription and is reported through the error
// hook. The ctx bounds the individual notify calls.
//
// NOTIFY payloads are text and limited to roughly 8KB by PostgreSQL; larger
// elements fail the notify.
func Sink(ctx context.Context, pool *pgxpool.Pool, channel string, opts ...stream.StepOption) stream.Subscriber[[]byte] {
	return stream.NewStepSubscriber(func(payload []byte) error {
		_, err := pool.Exec(ctx, "select pg_notify($1, $2)", channel, string(payload))
		return err
	}, opts...)
}
