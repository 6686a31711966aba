package observability

import (
	"net/http"
	"time"

	"github.com/DjordjeVuckovic/search-bench/internal/bench/engine"
	"github.com/DjordjeVuckovic/search-bench/internal/bench/runner"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	statusOK    = "ok"
	statusError = "error"
)

// Metrics exposes live benchmark progress. It implements runner.Observer.
type Metrics struct {
	Registry      *prometheus.Registry
	QueryDuration *prometheus.HistogramVec
	QueryTotal    *prometheus.CounterVec
	QueryHits     *prometheus.GaugeVec
	RunDuration   *prometheus.GaugeVec
}

func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()

	queryDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "searchbench_query_duration_seconds",
		Help:    "Latency of successful benchmark queries in seconds.",
		Buckets: []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
	}, []string{"backend", "query"})

	queryTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "searchbench_query_total",
		Help: "Total number of benchmark query executions.",
	}, []string{"backend", "type", "query", "status"})

	queryHits := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "searchbench_query_hits",
		Help: "Hit count reported by the last successful execution of a query.",
	}, []string{"backend", "query"})

	runDuration := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "searchbench_backend_run_seconds",
		Help: "Wall clock duration of the last run per backend.",
	}, []string{"backend"})

	reg.MustRegister(
		queryDuration,
		queryTotal,
		queryHits,
		runDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &Metrics{
		Registry:      reg,
		QueryDuration: queryDuration,
		QueryTotal:    queryTotal,
		QueryHits:     queryHits,
		RunDuration:   runDuration,
	}
}

func (m *Metrics) Observe(backend engine.Backend, o runner.Outcome) {
	status := statusOK
	if !o.Success {
		status = statusError
	}
	m.QueryTotal.WithLabelValues(o.Backend, backend.Type(), o.Query, status).Inc()

	if !o.Success {
		return
	}
	m.QueryDuration.WithLabelValues(o.Backend, o.Query).Observe(o.LatencyMs() / 1000)
	if o.Hits != nil {
		m.QueryHits.WithLabelValues(o.Backend, o.Query).Set(float64(*o.Hits))
	}
}

func (m *Metrics) ObserveRun(backend string, elapsed time.Duration) {
	m.RunDuration.WithLabelValues(backend).Set(elapsed.Seconds())
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{Registry: m.Registry})
}
