package stream

import (
	"log/slog"
	"sync"
)

// StepOption configures a StepSubscriber.
type StepOption func(*stepOptions)

type stepOptions struct {
	stride     int64
	onError    func(error)
	onComplete func()
}

// WithStride sets how many elements the subscriber requests up front and
// again after processing each batch. The default stride of 1 yields strict
// one-at-a-time backpressure. Non-positive values are ignored.
func WithStride(n int64) StepOption {
	return func(o *stepOptions) {
		if n > 0 {
			o.stride = n
		}
	}
}

// WithErrorFunc sets the hook invoked when the stream fails or the handler
// returns an error. The default logs through slog.Default.
func WithErrorFunc(fn func(error)) StepOption {
	return func(o *stepOptions) {
		if fn != nil {
			o.onError = fn
		}
	}
}

// WithCompleteFunc sets the hook invoked when the stream completes.
func WithCompleteFunc(fn func()) StepOption {
	return func(o *stepOptions) {
		if fn != nil {
			o.onComplete = fn
		}
	}
}

// StepSubscriber consumes a stream in fixed-size demand steps: it requests
// its stride at OnSubscribe and again after each processed element, so the
// publisher can never run ahead of the handler. A handler error cancels the
// upstream subscription and is reported through the error hook.
//
// A StepSubscriber is single-use: it rejects any subscription after its
// first. Create a new one per Subscribe call.
//
// Example:
//
//	sub := stream.NewStepSubscriber(func(order Order) error {
//	    return svc.Process(order)
//	})
//	orders.Subscribe(ctx, sub)
type StepSubscriber[T any] struct {
	handle     func(T) error
	stride     int64
	onError    func(error)
	onComplete func()

	mu       sync.Mutex
	upstream Subscription
	canceled bool
}

// NewStepSubscriber returns a StepSubscriber that forwards each element to
// handle, requesting one element at a time unless WithStride overrides it.
//
// Panics if handle is nil.
func NewStepSubscriber[T any](handle func(T) error, opts ...StepOption) *StepSubscriber[T] {
	if handle == nil {
		panic("stream: step subscriber requires a handler")
	}
	options := stepOptions{
		stride: 1,
		onError: func(err error) {
			slog.Default().Error("unhandled stream error", slog.Any("error", err))
		},
		onComplete: func() {},
	}
	for _, opt := range opts {
		opt(&options)
	}
	return &StepSubscriber[T]{
		handle:     handle,
		stride:     options.stride,
		onError:    options.onError,
		onComplete: options.onComplete,
	}
}

// OnSubscribe implements Subscriber. The first subscription is accepted and
// primed with one stride of demand; any later one is cancelled immediately.
func (s *StepSubscriber[T]) OnSubscribe(sub Subscription) {
	s.mu.Lock()
	if s.canceled || s.upstream != nil {
		s.mu.Unlock()
		sub.Cancel()
		return
	}
	s.upstream = sub
	s.mu.Unlock()
	_ = sub.Request(s.stride)
}

// OnNext implements Subscriber. It runs the handler and replenishes demand,
// or cancels the upstream when the handler fails.
func (s *StepSubscriber[T]) OnNext(item T) {
	if err := s.handle(item); err != nil {
		s.Cancel()
		s.onError(err)
		return
	}

	s.mu.Lock()
	sub := s.upstream
	canceled := s.canceled
	s.mu.Unlock()
	if sub != nil && !canceled {
		_ = sub.Request(s.stride)
	}
}

// OnError implements Subscriber.
func (s *StepSubscriber[T]) OnError(err error) {
	s.onError(err)
}

// OnComplete implements Subscriber.
func (s *StepSubscriber[T]) OnComplete() {
	s.onComplete()
}

// Cancel stops the subscription from the consumer side. It is idempotent and
// safe to call before the subscriber is ever subscribed, in which case any
// future subscription is rejected.
func (s *StepSubscriber[T]) Cancel() {
	s.mu.Lock()
	sub := s.upstream
	s.canceled = true
	s.mu.Unlock()
	if sub != nil {
		sub.Cancel()
	}
}
