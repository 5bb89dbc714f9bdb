// Package redis bridges Redis pub/sub into the stream subscription contract
// and provides production-ready client initialization with health checking.
//
// The package wraps the go-redis client with connection validation and
// exponential backoff retry logic, then exposes Redis channels as demand-
// driven publishers and subscribers so downstream code never has to touch
// the pub/sub API directly.
//
// # Key Features
//
//   - Connect: Creates a Redis client with retry logic and connection verification
//   - Healthcheck: Returns a health check function for monitoring Redis connectivity
//   - Publisher: Exposes a Redis pub/sub channel as a stream.Publisher of payloads
//   - Sink: Exposes a Redis channel as a stream.Subscriber that publishes each element
//
// # Configuration
//
// All configuration is handled through the Config struct with environment
// variable mapping:
//
//	type Config struct {
//		ConnectionURL  string        `env:"REDIS_URL,required" envDefault:"redis://localhost:6379/0"`
//		RetryAttempts  int           `env:"REDIS_RETRY_ATTEMPTS" envDefault:"3"`
//		RetryInterval  time.Duration `env:"REDIS_RETRY_INTERVAL" envDefault:"5s"`
//		ConnectTimeout time.Duration `env:"REDIS_CONNECT_TIMEOUT" envDefault:"30s"`
//	}
//
// Both redis:// and rediss:// (TLS) URL schemes are supported.
//
// # Consuming a Channel
//
// Publisher turns a Redis channel into a publisher of raw payloads. Each
// subscription opens its own SUBSCRIBE, so two subscribers both see every
// message (Redis channel semantics, not queue semantics):
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer client.Close()
//
//	events := redis.Publisher(client, "orders.created")
//
//	p, err := pump.NewPump(events, func(ctx context.Context, payload []byte) error {
//		return handleOrder(ctx, payload)
//	}, pump.WithConcurrency(4))
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := p.Start(ctx); err != nil {
//		log.Printf("stream ended: %v", err)
//	}
//
// The stream is hot: messages published before the subscription is live are
// not replayed.
//
// # Publishing a Stream
//
// Sink consumes any stream and publishes each element to a channel, one
// element at a time so the stream cannot outrun Redis:
//
//	sink := redis.Sink(ctx, client, "orders.created",
//		stream.WithErrorFunc(func(err error) {
//			log.Printf("publish failed: %v", err)
//		}),
//	)
//	source.Subscribe(ctx, sink)
//
// A failed publish cancels the upstream subscription.
//
// # Health Checking
//
// The health check function fits Kubernetes probes or HTTP health endpoints:
//
//	healthCheck := redis.Healthcheck(client)
//
//	http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
//		if err := healthCheck(r.Context()); err != nil {
//			http.Error(w, "Redis unhealthy", http.StatusServiceUnavailable)
//			return
//		}
//		w.WriteHeader(http.StatusOK)
//	})
//
// # Error Handling
//
// The package defines domain-specific errors that can be checked using
// errors.Is():
//
//   - ErrEmptyConnectionURL: Returned when no connection URL is provided
//   - ErrFailedToParseConnString: Returned when the Redis connection URL is malformed
//   - ErrNotReady: Returned when Redis doesn't become ready within the timeout period
//   - ErrHealthcheckFailed: Returned when the health check ping fails
package redis
