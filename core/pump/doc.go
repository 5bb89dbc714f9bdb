// Package pump drives a stream publisher into a handler function with
// bounded concurrency and lifecycle management. It is the bridge between the
// subscription protocol and plain worker code: the pump owns the subscriber
// callbacks, translates handler capacity into demand, and exposes the
// Start/Stop/Run lifecycle used across this repository.
//
// # Features
//
//   - Demand-driven consumption: at most `concurrency` elements in flight
//   - Graceful shutdown with configurable timeout for active handlers
//   - Panic recovery so one bad element cannot crash the pump
//   - Stats and Healthcheck for observability
//   - errgroup-compatible Run() for coordinated lifecycles
//
// # Basic Usage
//
// Create a pump over any publisher and start it:
//
//	import (
//		"github.com/dmitrymomot/streamkit/core/pump"
//		"github.com/dmitrymomot/streamkit/core/stream"
//	)
//
//	source := stream.Range(1, 100)
//
//	p, err := pump.NewPump(source, func(ctx context.Context, n int) error {
//		return store.Save(ctx, n)
//	})
//	if err != nil {
//		return err
//	}
//
//	// Blocks until the stream completes, fails, or ctx is cancelled.
//	err = p.Start(ctx)
//
// Start returns nil when the source completes and all in-flight handlers
// have finished, the stream error when the source fails, and ctx.Err() on
// cancellation.
//
// # Concurrency and Backpressure
//
// The pump requests exactly as many elements as it has idle handler slots.
// With WithConcurrency(n) the initial demand is n, and each handler
// completion requests one more element. A slow handler therefore slows the
// source down instead of letting a backlog build up:
//
//	p, err := pump.NewPump(source, handler,
//		pump.WithConcurrency(8),
//		pump.WithShutdownTimeout(10*time.Second),
//	)
//
// With concurrency above 1, handlers run in parallel and completion order is
// not element order. Use the default concurrency of 1 when ordering matters.
//
// # Handler Errors
//
// A handler error marks that element as failed in Stats() and is logged, but
// the stream keeps flowing. Consumption failures are local to the element;
// only a source failure terminates the pump:
//
//	p, _ := pump.NewPump(source, func(ctx context.Context, item Order) error {
//		if err := process(ctx, item); err != nil {
//			return fmt.Errorf("order %s: %w", item.ID, err)
//		}
//		return nil
//	}, pump.WithLogger(logger))
//
//	stats := p.Stats()
//	log.Printf("processed=%d failed=%d", stats.Processed, stats.Failed)
//
// There are no retries at this layer; wrap the handler if an element must be
// retried.
//
// # Lifecycle Management
//
// Run() integrates with errgroup for coordinated shutdown:
//
//	g, ctx := errgroup.WithContext(context.Background())
//	g.Go(p.Run(ctx))
//	g.Go(otherComponent.Run(ctx))
//	if err := g.Wait(); err != nil {
//		log.Fatal(err)
//	}
//
// Or start in a goroutine and stop explicitly:
//
//	go p.Start(context.Background())
//	// ...
//	if err := p.Stop(); err != nil {
//		log.Printf("shutdown: %v", err)
//	}
//
// Stop cancels the subscription and waits up to the shutdown timeout for
// active handlers before returning.
//
// # Configuration
//
// Load settings from environment variables:
//
//	var cfg pump.Config
//	if err := config.Load(&cfg); err != nil {
//		log.Fatal(err)
//	}
//	p, err := pump.NewPumpFromConfig(cfg, source, handler)
//
// # Health Monitoring
//
// Healthcheck reports whether the pump is running, has free handler slots,
// and has seen recent activity:
//
//	if err := p.Healthcheck(ctx); err != nil {
//		switch {
//		case errors.Is(err, pump.ErrPumpNotRunning):
//			// restart it
//		case errors.Is(err, pump.ErrPumpOverloaded):
//			// all slots busy, consider raising concurrency
//		case errors.Is(err, pump.ErrPumpStale):
//			// no activity within the stale threshold
//		}
//	}
package pump
