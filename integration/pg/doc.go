// Package pg bridges PostgreSQL LISTEN/NOTIFY into the stream subscription
// contract and provides production-ready connection pool management with
// health checking.
//
// The package wraps the pgx driver with application-level retry logic and
// pool configuration, then exposes notification channels as demand-driven
// publishers and subscribers.
//
// # Key Features
//
//   - Connect: Creates a connection pool with retry logic and connection verification
//   - Healthcheck: Returns a health check function for monitoring connectivity
//   - Publisher: Exposes a LISTEN channel as a stream.Publisher of payloads
//   - Sink: Exposes a channel as a stream.Subscriber sending pg_notify per element
//
// # Configuration
//
// All configuration is handled through the Config struct with environment
// variable mapping:
//
//	type Config struct {
//		ConnectionString  string        `env:"PG_CONN_URL,required"`
//		MaxOpenConns      int32         `env:"PG_MAX_OPEN_CONNS" envDefault:"10"`
//		MaxIdleConns      int32         `env:"PG_MAX_IDLE_CONNS" envDefault:"5"`
//		HealthCheckPeriod time.Duration `env:"PG_HEALTHCHECK_PERIOD" envDefault:"1m"`
//		MaxConnIdleTime   time.Duration `env:"PG_MAX_CONN_IDLE_TIME" envDefault:"10m"`
//		MaxConnLifetime   time.Duration `env:"PG_MAX_CONN_LIFETIME" envDefault:"30m"`
//		RetryAttempts     int           `env:"PG_RETRY_ATTEMPTS" envDefault:"3"`
//		RetryInterval     time.Duration `env:"PG_RETRY_INTERVAL" envDefault:"5s"`
//	}
//
// # Consuming Notifications
//
// Publisher turns a notification channel into a publisher. Each subscription
// holds its own pooled connection in LISTEN, so size the pool with one
// connection per concurrent subscription in mind:
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer pool.Close()
//
//	changes := pg.Publisher(pool, "orders_changed")
//
//	p, err := pump.NewPump(changes, func(ctx context.Context, payload []byte) error {
//		return invalidateCache(ctx, payload)
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := p.Start(ctx); err != nil {
//		log.Printf("stream ended: %v", err)
//	}
//
// PostgreSQL delivers a notification to every listening connection, on
// transaction commit, with no replay for late listeners.
//
// # Publishing a Stream
//
// Sink sends each stream element as a notification:
//
//	sink := pg.Sink(ctx, pool, "orders_changed")
//	source.Subscribe(ctx, sink)
//
// Payloads are subject to the PostgreSQL NOTIFY size limit of roughly 8KB;
// for larger data, notify a key and fetch the row.
//
// # Health Checking
//
// The health check function fits Kubernetes probes or HTTP health endpoints:
//
//	healthCheck := pg.Healthcheck(pool)
//
//	http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
//		if err := healthCheck(r.Context()); err != nil {
//			http.Error(w, "Database unhealthy", http.StatusServiceUnavailable)
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
//   - ErrEmptyConnectionString: Returned when no connection string is provided
//   - ErrFailedToParseDBConfig: Returned when the connection string is malformed
//   - ErrFailedToOpenDBConnection: Returned when the database is unreachable after retries
//   - ErrHealthcheckFailed: Returned when the health check ping fails
package pg
