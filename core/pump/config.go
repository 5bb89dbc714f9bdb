package pump

import "time"

// Config holds pump configuration for environment-based setup.
type Config struct {
	Concurrency     int           `env:"PUMP_CONCURRENCY" envDefault:"1"`
	ShutdownTimeout time.Duration `env:"PUMP_SHUTDOWN_TIMEOUT" envDefault:"30s"`
	StaleThreshold  time.Duration `env:"PUMP_STALE_THRESHOLD" envDefault:"5m"`
}

// DefaultConfig returns sensible defaults for production use.
func DefaultConfig() Config {
	return Config{
		Concurrency:     1,
		ShutdownTimeout: 30 * time.Second,
		StaleThreshold:  5 * time.Minute,
	}
}
