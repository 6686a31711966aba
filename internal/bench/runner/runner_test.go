package runner

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/DjordjeVuckovic/search-bench/internal/bench/catalog"
	"github.com/DjordjeVuckovic/search-bench/internal/bench/engine"
	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_NormalizesConfig(t *testing.T) {
	r := New(Config{Concurrency: 0, Duration: -time.Second}, catalog.Default())
	assert.Equal(t, 1, r.Config().Concurrency)
	assert.Zero(t, r.Config().Duration)
}

func TestRunner_Run_ZeroDuration(t *testing.T) {
	cat := catalog.Default()
	r := New(Config{Concurrency: 3}, cat)

	records, err := r.Run(context.Background(), &fakeBackend{name: "es"})
	require.NoError(t, err)
	assert.Len(t, records, 3*cat.Len())
}

func TestRunner_Run_FastBackend(t *testing.T) {
	if testing.Short() {
		t.Skip("timed run")
	}
	cat := catalog.Default()
	cfg := Config{Concurrency: 5, Duration: time.Second}
	r := New(cfg, cat)

	records, err := r.Run(context.Background(), &fakeBackend{name: "es", delay: time.Millisecond})
	require.NoError(t, err)

	stats := Aggregate(records, cat.Names(), cfg.Duration.Seconds())
	require.Len(t, stats, cat.Len())

	first := stats[cat.Names()[0]].TotalRequests
	assert.GreaterOrEqual(t, first, cfg.Concurrency)
	for _, name := range cat.Names() {
		s := stats[name]
		assert.Equal(t, first, s.TotalRequests, name)
		assert.Zero(t, s.ErrorRate, name)
		assert.Positive(t, s.RequestsPerSecond, name)
		assert.InDelta(t, float64(s.SuccessfulRequests), s.RequestsPerSecond*cfg.Duration.Seconds(), 1e-9)
	}
}

func TestRunner_Run_WorkerPanics(t *testing.T) {
	cat := catalog.Default()
	r := New(Config{Concurrency: 2}, cat)

	records, err := r.Run(context.Background(), &fakeBackend{name: "es", panicOn: cat.Names()[3]})
	require.Error(t, err)

	var merr *multierror.Error
	require.ErrorAs(t, err, &merr)
	assert.Len(t, merr.Errors, 2)
	assert.Len(t, records, 2*3)
}

func TestRunner_RunAll(t *testing.T) {
	cat := catalog.Default()
	var inFlight, peak atomic.Int64
	es := &fakeBackend{name: "elasticsearch", delay: time.Millisecond, inFlight: &inFlight, peak: &peak}
	osb := &fakeBackend{name: "opensearch", fail: true, inFlight: &inFlight, peak: &peak}

	obs := &recordingObserver{}
	r := New(Config{Concurrency: 1, Duration: 20 * time.Millisecond, Observer: obs}, cat)
	res, err := r.RunAll(context.Background(), []engine.Backend{es, osb})
	require.NoError(t, err)

	assert.Equal(t, []string{"elasticsearch", "opensearch"}, obs.runs)
	assert.Equal(t, len(esRecords(res))+len(osRecords(res)), obs.count())

	assert.Equal(t, []string{"elasticsearch", "opensearch"}, res.BackendNames())
	assert.Equal(t, int64(1), peak.Load(), "backends must not overlap")

	esRes, ok := res.Get("elasticsearch")
	require.True(t, ok)
	assert.Equal(t, "fake", esRes.Type)
	assert.Equal(t, "fake://elasticsearch", esRes.Endpoint)
	assert.NoError(t, esRes.Err)
	assert.Positive(t, esRes.Elapsed)
	require.Len(t, esRes.Stats, cat.Len())
	for _, s := range esRes.Stats {
		assert.Zero(t, s.ErrorRate)
		assert.True(t, s.HasLatency())
	}

	osRes, ok := res.Get("opensearch")
	require.True(t, ok)
	require.Len(t, osRes.Stats, cat.Len())
	for _, s := range osRes.Stats {
		assert.Equal(t, 100.0, s.ErrorRate)
		assert.False(t, s.HasLatency())
		assert.Nil(t, s.AvgLatency)
		assert.Nil(t, s.P95Latency)
		assert.Nil(t, s.P99Latency)
		assert.Zero(t, s.RequestsPerSecond)
	}

	_, ok = res.Get("postgres")
	assert.False(t, ok)
}

func TestRunner_RunAll_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := New(Config{Concurrency: 1}, catalog.Default())
	res, err := r.RunAll(ctx, []engine.Backend{&fakeBackend{name: "es"}})
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, res.Backends)
}

func TestRunner_RunAll_CancelledMidRun(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	time.AfterFunc(50*time.Millisecond, cancel)

	es := &fakeBackend{name: "elasticsearch", delay: time.Millisecond}
	osb := &fakeBackend{name: "opensearch", delay: time.Millisecond}

	r := New(Config{Concurrency: 2, Duration: 10 * time.Second}, catalog.Default())
	res, err := r.RunAll(ctx, []engine.Backend{es, osb})
	require.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, osb.calls.Load())

	require.Len(t, res.Backends, 1)
	b := res.Backends[0]
	assert.Equal(t, "elasticsearch", b.Backend)
	assert.Less(t, b.Elapsed, 5*time.Second)
	require.ErrorIs(t, b.Err, context.Canceled)
	assert.Contains(t, b.Err.Error(), "interrupted after")

	require.NotEmpty(t, b.Stats)
	for name, s := range b.Stats {
		want := float64(s.SuccessfulRequests) / b.Elapsed.Seconds()
		assert.InDelta(t, want, s.RequestsPerSecond, 1e-6, name)
	}
}

func esRecords(res *BenchmarkResult) []Outcome {
	b, _ := res.Get("elasticsearch")
	return b.Records
}

func osRecords(res *BenchmarkResult) []Outcome {
	b, _ := res.Get("opensearch")
	return b.Records
}
