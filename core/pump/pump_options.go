package pump

import (
	"log/slog"
	"time"
)

// PumpOption configures a Pump.
type PumpOption func(*pumpOptions)

type pumpOptions struct {
	concurrency     int
	shutdownTimeout time.Duration
	staleThreshold  time.Duration
	logger          *slog.Logger
}

// WithConcurrency sets how many handlers may run at once. It is also the
// demand the pump keeps outstanding on its subscription, so it bounds both
// goroutines and in-flight elements. Default is 1, which processes the
// stream strictly in order. Non-positive values are ignored.
func WithConcurrency(n int) PumpOption {
	return func(o *pumpOptions) {
		if n > 0 {
			o.concurrency = n
		}
	}
}

// WithShutdownTimeout configures the maximum wait for active handlers during
// Stop. Default is 30 seconds.
func WithShutdownTimeout(d time.Duration) PumpOption {
	return func(o *pumpOptions) {
		if d > 0 {
			o.shutdownTimeout = d
		}
	}
}

// WithStaleThreshold configures the duration after which a pump with no
// activity is considered stale in health checks. Default is 5 minutes.
func WithStaleThreshold(d time.Duration) PumpOption {
	return func(o *pumpOptions) {
		if d > 0 {
			o.staleThreshold = d
		}
	}
}

// WithLogger configures structured logging for pump operations.
// Use slog.New(slog.NewTextHandler(io.Discard, nil)) to disable logging.
func WithLogger(logger *slog.Logger) PumpOption {
	return func(o *pumpOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}
