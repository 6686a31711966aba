package runner

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/DjordjeVuckovic/search-bench/internal/bench/catalog"
	"github.com/DjordjeVuckovic/search-bench/internal/bench/engine"
)

// Observer receives every outcome as soon as it is produced.
// Implementations must be safe for concurrent use.
type Observer interface {
	Observe(backend engine.Backend, o Outcome)
}

// RunObserver is implemented by observers that also track whole backend runs.
type RunObserver interface {
	ObserveRun(backend string, elapsed time.Duration)
}

type Worker struct {
	id             int
	backend        engine.Backend
	queries        []catalog.Query
	requestTimeout time.Duration
	observer       Observer
}

func NewWorker(id int, backend engine.Backend, cat *catalog.Catalog, cfg Config) *Worker {
	return &Worker{
		id:             id,
		backend:        backend,
		queries:        cat.Queries(),
		requestTimeout: cfg.RequestTimeout,
		observer:       cfg.Observer,
	}
}

// Run executes full catalog passes until deadline has passed. The deadline and ctx are
// checked only between passes, so the first pass always runs to completion.
// A panic inside a pass is returned as an error together with the records produced so far.
func (w *Worker) Run(ctx context.Context, deadline time.Time) (records []Outcome, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("worker %d on %s panicked: %v", w.id, w.backend.Name(), r)
		}
	}()

	passes := 0
	for {
		for _, q := range w.queries {
			records = append(records, w.execute(ctx, q))
		}
		passes++

		if ctx.Err() != nil || !time.Now().Before(deadline) {
			break
		}
	}

	slog.Debug("Worker finished",
		"backend", w.backend.Name(),
		"worker", w.id,
		"passes", passes,
		"records", len(records))
	return records, nil
}

func (w *Worker) execute(ctx context.Context, q catalog.Query) Outcome {
	out := w.search(ctx, q)
	if w.observer != nil {
		w.observer.Observe(w.backend, out)
	}
	return out
}

func (w *Worker) search(ctx context.Context, q catalog.Query) Outcome {
	out := Outcome{Backend: w.backend.Name(), Query: q.Name}

	if w.requestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, w.requestTimeout)
		defer cancel()
	}

	exec, err := w.backend.Search(ctx, q)
	if err != nil {
		slog.Warn("Query failed",
			"backend", w.backend.Name(),
			"query", q.Name,
			"error", err)
		out.Error = err.Error()
		return out
	}

	ms := float64(exec.Latency) / float64(time.Millisecond)
	out.Success = true
	out.Latency = &ms
	out.Hits = exec.Hits
	return out
}
