package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
)

// WriteMarkdown renders the human readable comparison report for r.
func WriteMarkdown(r *Run, w io.Writer) error {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s Performance Benchmark Report\n", strings.Join(r.BackendNames(), " vs "))
	b.WriteString("## Combined Performance Analysis\n")
	fmt.Fprintf(&b, "Date: %s\n\n", r.Timestamp.Format("2006-01-02 15:04:05"))

	b.WriteString("This report presents the results of search performance tests conducted on:\n")
	for _, be := range r.Backends {
		fmt.Fprintf(&b, "- %s (%s)\n", be.Name, be.Type)
	}

	b.WriteString("\n## Test Configuration\n")
	fmt.Fprintf(&b, "- Run: %s\n", r.RunID)
	fmt.Fprintf(&b, "- Index: %s\n", r.IndexName)
	fmt.Fprintf(&b, "- Test duration: %g seconds per backend\n", r.TestDuration)
	if r.RequestTimeoutMs > 0 {
		fmt.Fprintf(&b, "- Request timeout: %d ms\n", r.RequestTimeoutMs)
	}
	fmt.Fprintf(&b, "- Search operations tested (%s catalog):\n", r.Catalog)
	for _, q := range r.Queries {
		if q.Description != "" {
			fmt.Fprintf(&b, "  - %s (%s)\n", q.Name, q.Description)
		} else {
			fmt.Fprintf(&b, "  - %s\n", q.Name)
		}
	}
	fmt.Fprintf(&b, "- Client concurrency: %d concurrent clients\n", r.NumClients)
	for _, be := range r.Backends {
		fmt.Fprintf(&b, "- %s Endpoint: %s\n", be.Name, be.Endpoint)
	}
	for _, name := range r.BackendNames() {
		if msg, ok := r.Failures[name]; ok {
			fmt.Fprintf(&b, "- %s worker failures: %s\n", name, msg)
		}
	}

	b.WriteString("\n## Performance Metrics\n\n### Query Performance Metrics\n")
	b.WriteString(metricsTable(BuildRows(r)))
	b.WriteString("\n\n")

	baseline, _ := r.Baseline()
	b.WriteString("### Legend\n")
	fmt.Fprintf(&b, "- %s Better performance than the baseline (%s)\n", Better, baseline.Name)
	fmt.Fprintf(&b, "- %s Worse performance than the baseline (%s)\n", Worse, baseline.Name)
	fmt.Fprintf(&b, "- %s Neutral (no direct comparison or equal performance)\n", Neutral)

	b.WriteString(`
## Conclusions and Recommendations

*[Fill this section after analyzing the benchmark results]*

- Performance analysis for each query type
- Cost considerations
- Scalability observations
- Recommended configuration changes or optimizations

## Raw Results
`)
	fmt.Fprintf(&b, "The complete benchmark results are available in: %s\n", ArtifactFile)

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("write markdown report: %w", err)
	}
	return nil
}

func metricsTable(rows []Row) string {
	tw := table.NewWriter()
	tw.AppendHeader(table.Row{"Metric", "Cluster", "Value", "Unit", "Status"})
	for _, r := range rows {
		tw.AppendRow(table.Row{r.Metric, r.Cluster, r.Value, r.Unit, string(r.Status)})
	}
	return tw.RenderMarkdown()
}
