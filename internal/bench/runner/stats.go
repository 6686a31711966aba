package runner

import (
	"sort"
)

// QueryStats summarizes all outcomes of one query on one backend. Latencies are in
// milliseconds and absent when no request succeeded.
type QueryStats struct {
	TotalRequests      int      `json:"total_requests"`
	SuccessfulRequests int      `json:"successful_requests"`
	ErrorRate          float64  `json:"error_rate"`
	AvgLatency         *float64 `json:"avg_latency,omitempty"`
	MinLatency         *float64 `json:"min_latency,omitempty"`
	MaxLatency         *float64 `json:"max_latency,omitempty"`
	P50Latency         *float64 `json:"p50_latency,omitempty"`
	P95Latency         *float64 `json:"p95_latency,omitempty"`
	P99Latency         *float64 `json:"p99_latency,omitempty"`
	RequestsPerSecond  float64  `json:"requests_per_second"`
}

func (s QueryStats) HasLatency() bool {
	return s.SuccessfulRequests > 0 && s.AvgLatency != nil
}

// Aggregate reduces records into per query statistics for every name in queryNames.
// Queries without records are left out. Throughput is successful requests over
// durationSeconds and is zero when the duration is not positive.
func Aggregate(records []Outcome, queryNames []string, durationSeconds float64) map[string]QueryStats {
	byQuery := make(map[string][]Outcome, len(queryNames))
	for _, r := range records {
		byQuery[r.Query] = append(byQuery[r.Query], r)
	}

	stats := make(map[string]QueryStats, len(queryNames))
	for _, name := range queryNames {
		rs := byQuery[name]
		if len(rs) == 0 {
			continue
		}
		stats[name] = summarize(rs, durationSeconds)
	}
	return stats
}

// AggregateByBackend partitions records by backend and aggregates each partition.
func AggregateByBackend(records []Outcome, queryNames []string, durationSeconds float64) map[string]map[string]QueryStats {
	byBackend := make(map[string][]Outcome)
	for _, r := range records {
		byBackend[r.Backend] = append(byBackend[r.Backend], r)
	}

	out := make(map[string]map[string]QueryStats, len(byBackend))
	for backend, rs := range byBackend {
		out[backend] = Aggregate(rs, queryNames, durationSeconds)
	}
	return out
}

func summarize(rs []Outcome, durationSeconds float64) QueryStats {
	latencies := make([]float64, 0, len(rs))
	for _, r := range rs {
		if r.Success {
			latencies = append(latencies, r.LatencyMs())
		}
	}

	total := len(rs)
	ok := len(latencies)
	s := QueryStats{
		TotalRequests:      total,
		SuccessfulRequests: ok,
		ErrorRate:          float64(total-ok) / float64(total) * 100,
	}
	if ok == 0 {
		return s
	}

	sort.Float64s(latencies)
	var sum float64
	for _, l := range latencies {
		sum += l
	}

	s.AvgLatency = ptr(sum / float64(ok))
	s.MinLatency = ptr(latencies[0])
	s.MaxLatency = ptr(latencies[ok-1])
	s.P50Latency = ptr(percentile(latencies, 50))
	s.P95Latency = ptr(percentile(latencies, 95))
	s.P99Latency = ptr(percentile(latencies, 99))
	if durationSeconds > 0 {
		s.RequestsPerSecond = float64(ok) / durationSeconds
	}
	return s
}

// percentile picks sorted[floor(pct*n/100)] clamped to the last index, without interpolation.
func percentile(sorted []float64, pct int) float64 {
	if len(sorted) == 0 {
		return 0
	}
	idx := pct * len(sorted) / 100
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}

func ptr(v float64) *float64 { return &v }
