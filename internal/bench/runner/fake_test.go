package runner

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/DjordjeVuckovic/search-bench/internal/bench/catalog"
	"github.com/DjordjeVuckovic/search-bench/internal/bench/engine"
)

var errBackendDown = errors.New("connection refused")

type fakeBackend struct {
	name    string
	delay   time.Duration
	fail    bool
	panicOn string
	calls   atomic.Int64
	// inFlight and peak may be shared between backends to track overlapping calls.
	inFlight *atomic.Int64
	peak     *atomic.Int64
	sawDL    atomic.Bool
}

func (f *fakeBackend) Search(ctx context.Context, q catalog.Query) (*engine.Execution, error) {
	f.calls.Add(1)
	if f.panicOn != "" && q.Name == f.panicOn {
		panic("boom")
	}
	if _, ok := ctx.Deadline(); ok {
		f.sawDL.Store(true)
	}
	if f.inFlight != nil {
		cur := f.inFlight.Add(1)
		defer f.inFlight.Add(-1)
		for {
			p := f.peak.Load()
			if cur <= p || f.peak.CompareAndSwap(p, cur) {
				break
			}
		}
	}
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	if f.fail {
		return nil, errBackendDown
	}
	hits := int64(len(q.Name))
	return &engine.Execution{Hits: &hits, Latency: f.delay + time.Microsecond}, nil
}

func (f *fakeBackend) Name() string     { return f.name }
func (f *fakeBackend) Type() string     { return "fake" }
func (f *fakeBackend) Endpoint() string { return "fake://" + f.name }
func (f *fakeBackend) Close() error     { return nil }

type recordingObserver struct {
	mu       sync.Mutex
	outcomes []Outcome
	runs     []string
}

func (r *recordingObserver) ObserveRun(backend string, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.runs = append(r.runs, backend)
}

func (r *recordingObserver) Observe(_ engine.Backend, o Outcome) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outcomes = append(r.outcomes, o)
}

func (r *recordingObserver) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.outcomes)
}
