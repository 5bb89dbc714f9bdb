package broadcast

import "log/slog"

// BroadcasterOption configures a Broadcaster.
type BroadcasterOption func(*broadcasterOptions)

type broadcasterOptions struct {
	bufferSize int
	logger     *slog.Logger
}

// WithBufferSize sets the per-subscriber queue capacity. Default is 100.
// When a subscriber's queue is full, new elements are dropped for that
// subscriber rather than blocking the hub. Non-positive values are ignored.
func WithBufferSize(size int) BroadcasterOption {
	return func(o *broadcasterOptions) {
		if size > 0 {
			o.bufferSize = size
		}
	}
}

// WithLogger configures structured logging for hub operations.
// Use slog.New(slog.NewTextHandler(io.Discard, nil)) to disable logging.
func WithLogger(logger *slog.Logger) BroadcasterOption {
	return func(o *broadcasterOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}
