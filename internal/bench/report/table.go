package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/DjordjeVuckovic/search-bench/internal/bench/runner"
)

// WriteTable prints a terminal summary of r, one section per backend.
func WriteTable(r *Run, w io.Writer) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "\n=== Search Benchmark (%d clients, %gs) ===\n", r.NumClients, r.TestDuration)

	queries := r.QueryNames()
	for _, b := range r.Backends {
		fmt.Fprintf(tw, "\n--- %s (%s) %s ---\n\n", b.Name, b.Type, b.Endpoint)
		writeBackendTable(tw, queries, r.Stats[b.Name])

		s := Summarize(r.Stats[b.Name])
		fmt.Fprintf(tw, "Total: %d requests, %d ok, %.2f%% errors, %.2f req/s, elapsed %.2fs\n",
			s.TotalRequests, s.SuccessfulRequests, s.ErrorRate, s.RequestsPerSecond, r.Elapsed[b.Name])
		if msg, ok := r.Failures[b.Name]; ok {
			fmt.Fprintf(tw, "Worker failures: %s\n", msg)
		}
	}

	tw.Flush()
}

func writeBackendTable(tw *tabwriter.Writer, queries []string, stats map[string]runner.QueryStats) {
	header := []string{"Query", "Requests", "OK", "Err%", "Avg", "Min", "p50", "p95", "p99", "Max", "RPS"}
	fmt.Fprintln(tw, strings.Join(header, "\t"))

	sep := make([]string, len(header))
	for i := range sep {
		sep[i] = "---"
	}
	fmt.Fprintln(tw, strings.Join(sep, "\t"))

	for _, q := range queries {
		s, ok := stats[q]
		if !ok {
			continue
		}
		row := []string{
			q,
			fmt.Sprintf("%d", s.TotalRequests),
			fmt.Sprintf("%d", s.SuccessfulRequests),
			fmt.Sprintf("%.2f", s.ErrorRate),
			fmtMs(s.AvgLatency),
			fmtMs(s.MinLatency),
			fmtMs(s.P50Latency),
			fmtMs(s.P95Latency),
			fmtMs(s.P99Latency),
			fmtMs(s.MaxLatency),
			fmt.Sprintf("%.2f", s.RequestsPerSecond),
		}
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}

	fmt.Fprintln(tw)
}

func fmtMs(v *float64) string {
	if v == nil {
		return "-"
	}
	if *v < 1 {
		return fmt.Sprintf("%.1fµs", *v*1000)
	}
	if *v < 1000 {
		return fmt.Sprintf("%.2fms", *v)
	}
	return fmt.Sprintf("%.2fs", *v/1000)
}
