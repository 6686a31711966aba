package runner

import "time"

const (
	DefaultConcurrency    = 10
	DefaultDuration       = 20 * time.Second
	DefaultRequestTimeout = 60 * time.Second
)

type Config struct {
	// Concurrency is the number of workers started per backend.
	Concurrency int
	// Duration is the wall clock budget per backend. Zero still runs one pass per worker.
	Duration time.Duration
	// RequestTimeout bounds a single query execution; zero disables it.
	RequestTimeout time.Duration
	Observer       Observer
}

func DefaultConfig() Config {
	return Config{
		Concurrency:    DefaultConcurrency,
		Duration:       DefaultDuration,
		RequestTimeout: DefaultRequestTimeout,
	}
}
