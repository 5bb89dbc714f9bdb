package stream

import "log/slog"

// Callbacks assembles a Subscriber from optional inline hooks, for the common
// case where defining a dedicated type is overkill. Nil hooks are filled with
// defaults by Build:
//
//   - OnSubscribe requests Unbounded demand, so the stream flows freely
//   - OnNext discards the element
//   - OnError logs the error through slog.Default
//   - OnComplete does nothing
//
// Example:
//
//	stream.Just(1, 2, 3).Subscribe(ctx, stream.Callbacks[int]{
//	    OnNext: func(n int) { fmt.Println(n) },
//	}.Build())
type Callbacks[T any] struct {
	OnSubscribe func(Subscription)
	OnNext      func(T)
	OnError     func(error)
	OnComplete  func()
}

// Build fills in any nil hooks and returns the assembled Subscriber.
// The receiver is copied, so a Callbacks value can be reused to build
// independent subscribers.
func (c Callbacks[T]) Build() Subscriber[T] {
	if c.OnSubscribe == nil {
		c.OnSubscribe = func(s Subscription) { _ = s.Request(Unbounded) }
	}
	if c.OnNext == nil {
		c.OnNext = func(T) {}
	}
	if c.OnError == nil {
		c.OnError = func(err error) {
			slog.Default().Error("unhandled stream error", slog.Any("error", err))
		}
	}
	if c.OnComplete == nil {
		c.OnComplete = func() {}
	}
	return &callbackSubscriber[T]{hooks: c}
}

type callbackSubscriber[T any] struct {
	hooks Callbacks[T]
}

func (s *callbackSubscriber[T]) OnSubscribe(sub Subscription) { s.hooks.OnSubscribe(sub) }
func (s *callbackSubscriber[T]) OnNext(item T)                { s.hooks.OnNext(item) }
func (s *callbackSubscriber[T]) OnError(err error)            { s.hooks.OnError(err) }
func (s *callbackSubscriber[T]) OnComplete()                  { s.hooks.OnComplete() }

// Discard returns a Subscriber that requests Unbounded demand and drops
// every signal. Useful to exhaust a stream for its side effects.
func Discard[T any]() Subscriber[T] {
	return Callbacks[T]{}.Build()
}
