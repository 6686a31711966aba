package runner

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/DjordjeVuckovic/search-bench/internal/bench/catalog"
	"github.com/DjordjeVuckovic/search-bench/internal/bench/engine"
	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/errgroup"
)

type Runner struct {
	config  Config
	catalog *catalog.Catalog
}

func New(cfg Config, cat *catalog.Catalog) *Runner {
	if cfg.Concurrency < 1 {
		cfg.Concurrency = 1
	}
	if cfg.Duration < 0 {
		cfg.Duration = 0
	}
	return &Runner{config: cfg, catalog: cat}
}

func (r *Runner) Config() Config { return r.config }

// Run benchmarks one backend with the configured number of workers and returns the
// merged records. Worker failures are reported as a combined error next to the
// records that were gathered.
func (r *Runner) Run(ctx context.Context, backend engine.Backend) ([]Outcome, error) {
	deadline := time.Now().Add(r.config.Duration)
	slots := make([][]Outcome, r.config.Concurrency)
	errs := make([]error, r.config.Concurrency)

	var g errgroup.Group
	for i := range slots {
		w := NewWorker(i, backend, r.catalog, r.config)
		g.Go(func() error {
			slots[i], errs[i] = w.Run(ctx, deadline)
			return nil
		})
	}
	_ = g.Wait()

	var merr *multierror.Error
	for _, err := range errs {
		if err != nil {
			merr = multierror.Append(merr, err)
		}
	}

	total := 0
	for _, s := range slots {
		total += len(s)
	}
	records := make([]Outcome, 0, total)
	for _, s := range slots {
		records = append(records, s...)
	}

	return records, merr.ErrorOrNil()
}

// RunAll benchmarks backends one after another, in order.
func (r *Runner) RunAll(ctx context.Context, backends []engine.Backend) (*BenchmarkResult, error) {
	br := &BenchmarkResult{Config: r.config}
	names := r.catalog.Names()

	for _, b := range backends {
		if err := ctx.Err(); err != nil {
			return br, fmt.Errorf("benchmark interrupted before %s: %w", b.Name(), err)
		}

		slog.Info("Benchmarking backend",
			"backend", b.Name(),
			"type", b.Type(),
			"clients", r.config.Concurrency,
			"duration", r.config.Duration)

		start := time.Now()
		records, err := r.Run(ctx, b)
		elapsed := time.Since(start)
		if err != nil {
			slog.Warn("Backend run finished with worker failures",
				"backend", b.Name(),
				"error", err)
		}

		// An interrupted run covers only the time it actually ran.
		window := r.config.Duration
		interrupted := ctx.Err()
		if interrupted != nil {
			err = multierror.Append(err, fmt.Errorf("interrupted after %s: %w", elapsed, interrupted)).ErrorOrNil()
			if elapsed < window {
				window = elapsed
			}
		}

		res := &BackendResult{
			Backend:  b.Name(),
			Type:     b.Type(),
			Endpoint: b.Endpoint(),
			Records:  records,
			Stats:    Aggregate(records, names, window.Seconds()),
			Elapsed:  elapsed,
			Err:      err,
		}
		br.Backends = append(br.Backends, res)
		if ro, ok := r.config.Observer.(RunObserver); ok {
			ro.ObserveRun(b.Name(), elapsed)
		}

		if interrupted != nil {
			slog.Warn("Benchmark interrupted",
				"backend", b.Name(),
				"requests", len(records),
				"elapsed", elapsed)
			return br, fmt.Errorf("benchmark interrupted during %s: %w", b.Name(), interrupted)
		}

		slog.Info("Backend done",
			"backend", b.Name(),
			"requests", len(records),
			"elapsed", elapsed)
	}

	return br, nil
}
