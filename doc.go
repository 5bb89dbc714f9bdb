// Package streamkit provides a demand-driven reactive streams toolkit: publishers
// emit elements only under explicit subscriber demand, so a slow consumer always
// backpressures its producer instead of buffering unboundedly. The library
// implements modern Go patterns including generics for type safety, functional
// options for configuration, and interface-based design for flexibility and
// testability.
//
// # LLM Assistant Note
//
// This file serves as a comprehensive index of all packages in the streamkit library,
// designed to help LLMs understand the complete codebase structure and functionality.
// Each package entry includes the full import path and a concise description of its purpose.
//
// # Package Organization
//
// The streamkit library is organized into two main categories:
//
//   - Core: The subscription protocol, operators, and consumption engines
//   - Integrations: Bridges between the protocol and external systems
//
// # Getting Documentation
//
// For detailed documentation on any package, use the go doc command:
//
//	go doc github.com/dmitrymomot/streamkit/core/stream
//	go doc -all github.com/dmitrymomot/streamkit/core/pump
//
// # Core Packages
//
// These packages provide the protocol and the machinery around it:
//
//	github.com/dmitrymomot/streamkit/core/stream            - Publisher/Subscriber/Subscription contract, demand accounting, sources
//	github.com/dmitrymomot/streamkit/core/stream/streamtest - Signal-recording subscriber for testing stream code
//	github.com/dmitrymomot/streamkit/core/pipeline          - Composable operators: Map, Filter, Take, Tap, Buffer
//	github.com/dmitrymomot/streamkit/core/broadcast         - Hot multicast hub with per-subscriber demand and drop accounting
//	github.com/dmitrymomot/streamkit/core/pump              - Demand-driven consumption engine with lifecycle management
//	github.com/dmitrymomot/streamkit/core/config            - Type-safe environment variable loading
//
// # Integration Packages
//
// Production-ready bridges to external systems:
//
//	github.com/dmitrymomot/streamkit/integration/redis     - Redis pub/sub bridge with retry logic and health checking
//	github.com/dmitrymomot/streamkit/integration/pg        - PostgreSQL LISTEN/NOTIFY bridge with pooling
//	github.com/dmitrymomot/streamkit/integration/websocket - WebSocket connection bridge (one reader, one writer)
//
// # Architecture Patterns
//
// The streamkit library follows these key architectural patterns:
//
//   - Demand before data: an element is delivered only against a prior request
//   - Exactly one terminal signal per subscription, then silence
//   - Cold sources by default; the broadcast hub for hot multicast
//   - Generics for type safety across publishers, operators, and subscribers
//   - Functional options for flexible configuration
//
// # Example Usage
//
//	import (
//		"context"
//		"log"
//
//		"github.com/dmitrymomot/streamkit/core/pipeline"
//		"github.com/dmitrymomot/streamkit/core/pump"
//		"github.com/dmitrymomot/streamkit/core/stream"
//	)
//
//	func main() {
//		// A cold source: each subscriber gets the full sequence.
//		numbers := stream.Range(1, 1000)
//
//		// Operators compose publishers into new publishers.
//		squares := pipeline.Map(numbers, func(n int) (int, error) {
//			return n * n, nil
//		})
//		evens := pipeline.Filter(squares, func(n int) bool {
//			return n%2 == 0
//		})
//
//		// The pump consumes under bounded demand: at most 4 elements
//		// are in flight, and the source waits for the handlers.
//		p, err := pump.NewPump(evens, func(ctx context.Context, n int) error {
//			return store(ctx, n)
//		}, pump.WithConcurrency(4))
//		if err != nil {
//			log.Fatal(err)
//		}
//
//		if err := p.Start(context.Background()); err != nil {
//			log.Fatal(err)
//		}
//	}
//
// For complete examples and detailed usage instructions, refer to the individual
// package documentation using the go doc command.
package streamkit
