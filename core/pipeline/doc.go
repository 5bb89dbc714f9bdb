// Package pipeline provides composable operators over stream publishers:
// transform, filter, limit, observe, and batch elements while preserving the
// demand protocol end to end.
//
// Every operator takes an upstream stream.Publisher and returns a new one;
// nothing runs until a subscriber arrives, and each subscription composes a
// fresh operator chain, so a composed publisher is as cold as its source.
// Demand flows through unchanged unless the operator says otherwise: Filter
// replenishes one element upstream per dropped element, Take caps upstream
// demand at its limit, Buffer multiplies demand by its batch size.
//
// # Composition
//
//	evens := pipeline.Filter(stream.Range(1, 100), func(n int) bool { return n%2 == 0 })
//	labels := pipeline.Map(evens, func(n int) (string, error) {
//	    return fmt.Sprintf("item-%d", n), nil
//	})
//	first := pipeline.Take(labels, 10)
//
//	first.Subscribe(ctx, stream.Callbacks[string]{
//	    OnNext: func(s string) { fmt.Println(s) },
//	}.Build())
//
// # Error Semantics
//
// Upstream failures pass through every operator untouched. A Map transform
// returning an error fails the stream: the upstream subscription is
// cancelled and the error is delivered downstream as the terminal signal.
// Buffer discards its partial batch on failure and flushes it on normal
// completion.
package pipeline
