package report

import (
	"fmt"

	"github.com/DjordjeVuckovic/search-bench/internal/bench/runner"
)

type Indicator string

const (
	Better  Indicator = "🟢"
	Worse   Indicator = "🔴"
	Neutral Indicator = "⚪"
)

// Compare rates other against baseline.
func Compare(baseline, other float64, lowerIsBetter bool) Indicator {
	switch {
	case other == baseline:
		return Neutral
	case (other < baseline) == lowerIsBetter:
		return Better
	default:
		return Worse
	}
}

type Row struct {
	Metric  string
	Cluster string
	Value   string
	Unit    string
	Status  Indicator
}

// Summary holds the per backend summary. ErrorRate is the unweighted mean of the per
// query error rates and RequestsPerSecond their sum.
type Summary struct {
	TotalRequests      int
	SuccessfulRequests int
	ErrorRate          float64
	RequestsPerSecond  float64
}

func Summarize(stats map[string]runner.QueryStats) Summary {
	var s Summary
	if len(stats) == 0 {
		return s
	}
	var rates float64
	for _, qs := range stats {
		s.TotalRequests += qs.TotalRequests
		s.SuccessfulRequests += qs.SuccessfulRequests
		s.RequestsPerSecond += qs.RequestsPerSecond
		rates += qs.ErrorRate
	}
	s.ErrorRate = rates / float64(len(stats))
	return s
}

type metric struct {
	label         string
	unit          string
	lowerIsBetter bool
	value         func(runner.QueryStats) *float64
}

var queryMetrics = []metric{
	{label: "Average Latency", unit: "ms", lowerIsBetter: true, value: func(s runner.QueryStats) *float64 { return s.AvgLatency }},
	{label: "Minimum Latency", unit: "ms", lowerIsBetter: true, value: func(s runner.QueryStats) *float64 { return s.MinLatency }},
	{label: "Maximum Latency", unit: "ms", lowerIsBetter: true, value: func(s runner.QueryStats) *float64 { return s.MaxLatency }},
	{label: "Median Latency", unit: "ms", lowerIsBetter: true, value: func(s runner.QueryStats) *float64 { return s.P50Latency }},
	{label: "95th Percentile Latency", unit: "ms", lowerIsBetter: true, value: func(s runner.QueryStats) *float64 { return s.P95Latency }},
	{label: "99th Percentile Latency", unit: "ms", lowerIsBetter: true, value: func(s runner.QueryStats) *float64 { return s.P99Latency }},
	{label: "Requests per Second", unit: "ops/sec", value: func(s runner.QueryStats) *float64 { return &s.RequestsPerSecond }},
	{label: "Error Rate", unit: "%", lowerIsBetter: true, value: func(s runner.QueryStats) *float64 { return &s.ErrorRate }},
}

// BuildRows lays out the comparison table: per query metrics for every backend, then
// per backend summaries and the run settings. Rows of the first backend are neutral.
func BuildRows(r *Run) []Row {
	baseline, ok := r.Baseline()
	if !ok {
		return nil
	}

	var rows []Row
	for _, query := range r.QueryNames() {
		base, hasBase := r.Stats[baseline.Name][query]
		for _, b := range r.Backends {
			qs, found := r.Stats[b.Name][query]
			if !found {
				continue
			}
			for _, m := range queryMetrics {
				row := Row{
					Metric:  fmt.Sprintf("%s - %s", query, m.label),
					Cluster: b.Name,
					Value:   "N/A",
					Unit:    m.unit,
					Status:  Neutral,
				}
				v := m.value(qs)
				if v == nil {
					rows = append(rows, row)
					continue
				}
				row.Value = fmt.Sprintf("%.2f", *v)
				if b.Name != baseline.Name && hasBase {
					if bv := m.value(base); bv != nil {
						row.Status = Compare(*bv, *v, m.lowerIsBetter)
					}
				}
				rows = append(rows, row)
			}
		}
	}

	baseSummary := Summarize(r.Stats[baseline.Name])
	for _, b := range r.Backends {
		s := Summarize(r.Stats[b.Name])
		errStatus, rpsStatus := Neutral, Neutral
		if b.Name != baseline.Name {
			errStatus = Compare(baseSummary.ErrorRate, s.ErrorRate, true)
			rpsStatus = Compare(baseSummary.RequestsPerSecond, s.RequestsPerSecond, false)
		}
		rows = append(rows,
			Row{Metric: "Total Requests", Cluster: b.Name, Value: fmt.Sprintf("%d", s.TotalRequests), Unit: "requests", Status: Neutral},
			Row{Metric: "Successful Requests", Cluster: b.Name, Value: fmt.Sprintf("%d", s.SuccessfulRequests), Unit: "requests", Status: Neutral},
			Row{Metric: "Overall Error Rate", Cluster: b.Name, Value: fmt.Sprintf("%.2f", s.ErrorRate), Unit: "%", Status: errStatus},
			Row{Metric: "Average Requests per Second", Cluster: b.Name, Value: fmt.Sprintf("%.2f", s.RequestsPerSecond), Unit: "ops/sec", Status: rpsStatus},
		)
	}

	rows = append(rows,
		Row{Metric: "Test Duration", Cluster: "All", Value: fmt.Sprintf("%g", r.TestDuration), Unit: "seconds", Status: Neutral},
		Row{Metric: "Number of Clients", Cluster: "All", Value: fmt.Sprintf("%d", r.NumClients), Unit: "clients", Status: Neutral},
	)
	return rows
}
