package pump

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/streamkit/core/stream"
)

// Handler processes one element from the stream. A non-nil error marks the
// element as failed in stats; the stream itself continues, since consumption
// failures are not production failures. There are no retries at this layer.
type Handler[T any] func(ctx context.Context, item T) error

// Pump subscribes to a publisher and feeds each element to a handler with
// bounded concurrency. Demand tracks handler capacity: the pump keeps at
// most its concurrency outstanding, requesting one more element only when a
// handler finishes, so a slow handler backpressures the source instead of
// accumulating a backlog.
type Pump[T any] struct {
	source  stream.Publisher[T]
	handler Handler[T]
	pumpID  uuid.UUID

	concurrency     int
	shutdownTimeout time.Duration
	staleThreshold  time.Duration
	logger          *slog.Logger

	sem chan struct{}
	wg  sync.WaitGroup

	mu     sync.RWMutex
	cancel context.CancelFunc
	sub    stream.Subscription

	processed      atomic.Int64
	failed         atomic.Int64
	active         atomic.Int32
	lastActivityAt atomic.Int64
}

// PumpStats provides observability metrics for monitoring and debugging.
type PumpStats struct {
	Processed      int64     // Total elements handled successfully
	Failed         int64     // Total elements whose handler returned an error or panicked
	Active         int32     // Handlers currently running
	IsRunning      bool      // Whether the pump is currently running
	LastActivityAt time.Time // When a handler last finished
}

// NewPump creates a pump draining source into handler.
func NewPump[T any](source stream.Publisher[T], handler Handler[T], opts ...PumpOption) (*Pump[T], error) {
	if source == nil {
		return nil, ErrNilSource
	}
	if handler == nil {
		return nil, ErrNilHandler
	}

	options := &pumpOptions{
		concurrency:     1,
		shutdownTimeout: 30 * time.Second,
		staleThreshold:  5 * time.Minute,
		logger:          slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(options)
	}

	return &Pump[T]{
		source:          source,
		handler:         handler,
		pumpID:          uuid.New(),
		concurrency:     options.concurrency,
		shutdownTimeout: options.shutdownTimeout,
		staleThreshold:  options.staleThreshold,
		logger:          options.logger,
		sem:             make(chan struct{}, options.concurrency),
	}, nil
}

// NewPumpFromConfig creates a Pump from configuration. Additional options
// override config values.
func NewPumpFromConfig[T any](cfg Config, source stream.Publisher[T], handler Handler[T], opts ...PumpOption) (*Pump[T], error) {
	allOpts := append([]PumpOption{
		WithConcurrency(cfg.Concurrency),
		WithShutdownTimeout(cfg.ShutdownTimeout),
		WithStaleThreshold(cfg.StaleThreshold),
	}, opts...)

	return NewPump(source, handler, allOpts...)
}

// Start subscribes to the source and blocks until the stream terminates or
// ctx is cancelled. It returns nil when the stream completes (after all
// in-flight handlers finish), the stream error when it fails, and ctx.Err()
// on cancellation. Use Run() for errgroup pattern or call this in a
// goroutine and Stop() to shut down.
func (p *Pump[T]) Start(ctx context.Context) error {
	p.mu.Lock()
	if p.cancel != nil {
		p.mu.Unlock()
		return ErrPumpAlreadyStarted
	}
	runCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.mu.Unlock()

	p.touch()
	p.logger.InfoContext(runCtx, "pump started",
		slog.String("pump_id", p.pumpID.String()),
		slog.Int("concurrency", p.concurrency))

	sub := &pumpSubscriber[T]{pump: p, ctx: runCtx, terminal: make(chan error, 1)}
	p.source.Subscribe(runCtx, sub)

	select {
	case err := <-sub.terminal:
		// The stream is done; drain in-flight handlers before returning.
		p.wg.Wait()
		p.teardown()
		if err != nil {
			p.logger.ErrorContext(context.Background(), "pump stream failed",
				slog.String("pump_id", p.pumpID.String()),
				slog.Any("error", err))
			return err
		}
		p.logger.InfoContext(context.Background(), "pump drained",
			slog.String("pump_id", p.pumpID.String()),
			slog.Int64("processed", p.processed.Load()),
			slog.Int64("failed", p.failed.Load()))
		return nil
	case <-runCtx.Done():
		return runCtx.Err()
	}
}

// Stop gracefully shuts down the pump: the subscription is cancelled and
// active handlers get up to the shutdown timeout to finish. Returns an error
// if the pump is not running or the timeout is exceeded.
func (p *Pump[T]) Stop() error {
	p.mu.Lock()
	if p.cancel == nil {
		p.mu.Unlock()
		return ErrPumpNotStarted
	}
	cancel := p.cancel
	sub := p.sub
	p.cancel = nil
	p.sub = nil
	p.mu.Unlock()

	if sub != nil {
		sub.Cancel()
	}
	cancel()

	p.logger.InfoContext(context.Background(), "pump stopping, waiting for active handlers",
		slog.String("pump_id", p.pumpID.String()),
		slog.Duration("timeout", p.shutdownTimeout))

	ctx, ctxCancel := context.WithTimeout(context.Background(), p.shutdownTimeout)
	defer ctxCancel()

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		p.logger.InfoContext(context.Background(), "pump stopped cleanly",
			slog.String("pump_id", p.pumpID.String()))
		return nil
	case <-ctx.Done():
		p.logger.WarnContext(context.Background(), "pump shutdown timeout exceeded - some handlers may be abandoned",
			slog.String("pump_id", p.pumpID.String()),
			slog.Duration("timeout", p.shutdownTimeout))
		return fmt.Errorf("shutdown timeout exceeded after %s", p.shutdownTimeout)
	}
}

// Run provides errgroup compatibility for coordinated lifecycle management.
// Returns a function that starts the pump, monitors context cancellation,
// and performs graceful shutdown when the context is cancelled.
func (p *Pump[T]) Run(ctx context.Context) func() error {
	return func() error {
		errCh := make(chan error, 1)
		go func() {
			errCh <- p.Start(ctx)
		}()

		select {
		case <-ctx.Done():
			_ = p.Stop()
			<-errCh
			return nil
		case err := <-errCh:
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil
			}
			return err
		}
	}
}

// Stats returns current pump statistics for observability and monitoring.
func (p *Pump[T]) Stats() PumpStats {
	p.mu.RLock()
	isRunning := p.cancel != nil
	p.mu.RUnlock()

	var lastActivity time.Time
	if nanos := p.lastActivityAt.Load(); nanos > 0 {
		lastActivity = time.Unix(0, nanos)
	}

	return PumpStats{
		Processed:      p.processed.Load(),
		Failed:         p.failed.Load(),
		Active:         p.active.Load(),
		IsRunning:      isRunning,
		LastActivityAt: lastActivity,
	}
}

// Healthcheck validates that the pump is operational and not overloaded.
// Returns nil if healthy. The returned error can be checked with errors.Is
// against ErrPumpNotRunning, ErrPumpOverloaded, and ErrPumpStale.
func (p *Pump[T]) Healthcheck(ctx context.Context) error {
	stats := p.Stats()

	if !stats.IsRunning {
		return errors.Join(ErrHealthcheckFailed, ErrPumpNotRunning)
	}

	if stats.Active >= int32(p.concurrency) {
		return errors.Join(ErrHealthcheckFailed, ErrPumpOverloaded,
			fmt.Errorf("%d/%d slots busy", stats.Active, p.concurrency))
	}

	if !stats.LastActivityAt.IsZero() && time.Since(stats.LastActivityAt) > p.staleThreshold {
		return errors.Join(ErrHealthcheckFailed, ErrPumpStale,
			fmt.Errorf("last activity at %s", stats.LastActivityAt.Format(time.RFC3339)))
	}

	return nil
}

func (p *Pump[T]) teardown() {
	p.mu.Lock()
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	p.sub = nil
	p.mu.Unlock()
}

func (p *Pump[T]) setSubscription(sub stream.Subscription) {
	p.mu.Lock()
	p.sub = sub
	p.mu.Unlock()
}

func (p *Pump[T]) requestMore(n int64) {
	p.mu.RLock()
	sub := p.sub
	p.mu.RUnlock()
	if sub != nil {
		_ = sub.Request(n)
	}
}

func (p *Pump[T]) touch() {
	p.lastActivityAt.Store(time.Now().UnixNano())
}

// process executes the handler for one element with panic recovery, so a
// single bad element cannot crash the pump.
func (p *Pump[T]) process(ctx context.Context, item T) {
	p.active.Add(1)
	defer p.active.Add(-1)
	defer p.touch()
	defer func() {
		if r := recover(); r != nil {
			p.failed.Add(1)
			p.logger.ErrorContext(ctx, "handler panicked",
				slog.String("pump_id", p.pumpID.String()),
				slog.Any("panic", r))
		}
	}()

	if err := p.handler(ctx, item); err != nil {
		p.failed.Add(1)
		p.logger.ErrorContext(ctx, "handler failed",
			slog.String("pump_id", p.pumpID.String()),
			slog.Any("error", err))
		return
	}
	p.processed.Add(1)
}

// pumpSubscriber adapts the pump to the subscriber contract. Its initial
// demand equals the pump concurrency; every handler completion requests one
// more element.
type pumpSubscriber[T any] struct {
	pump     *Pump[T]
	ctx      context.Context
	terminal chan error
}

func (s *pumpSubscriber[T]) OnSubscribe(sub stream.Subscription) {
	s.pump.setSubscription(sub)
	_ = sub.Request(int64(s.pump.concurrency))
}

func (s *pumpSubscriber[T]) OnNext(item T) {
	p := s.pump

	select {
	case p.sem <- struct{}{}:
	case <-s.ctx.Done():
		return
	}

	// Verify the pump is still running and register with the waitgroup
	// atomically, otherwise Stop() might wait on an incomplete count.
	p.mu.RLock()
	if p.cancel == nil {
		p.mu.RUnlock()
		<-p.sem
		return
	}
	p.wg.Add(1)
	p.mu.RUnlock()

	go func() {
		defer p.wg.Done()

		p.process(s.ctx, item)

		// Free the slot before requesting more, so the next element never
		// waits on capacity that is already available.
		<-p.sem
		if s.ctx.Err() == nil {
			p.requestMore(1)
		}
	}()
}

func (s *pumpSubscriber[T]) OnError(err error) {
	s.terminal <- err
}

func (s *pumpSubscriber[T]) OnComplete() {
	s.terminal <- nil
}
