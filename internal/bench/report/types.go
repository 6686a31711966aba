package report

import (
	"os"
	"runtime"
	"sort"
	"time"

	"github.com/DjordjeVuckovic/search-bench/internal/bench/catalog"
	"github.com/DjordjeVuckovic/search-bench/internal/bench/runner"
	"github.com/google/uuid"
)

const (
	ArtifactFile = "combined_benchmark_results.json"
	ReportFile   = "benchmark_report.md"
)

// Run is the persisted artifact of one benchmark invocation.
type Run struct {
	RunID            string                                  `json:"run_id"`
	Timestamp        time.Time                               `json:"timestamp"`
	TestDuration     float64                                 `json:"test_duration"`
	NumClients       int                                     `json:"num_clients"`
	IndexName        string                                  `json:"index_name"`
	RequestTimeoutMs int64                                   `json:"request_timeout_ms"`
	Catalog          string                                  `json:"catalog"`
	Queries          []QueryInfo                             `json:"queries"`
	Backends         []BackendInfo                           `json:"backends"`
	Stats            map[string]map[string]runner.QueryStats `json:"stats"`
	RawResults       map[string][]runner.Outcome             `json:"raw_results"`
	Elapsed          map[string]float64                      `json:"elapsed"`
	Failures         map[string]string                       `json:"failures,omitempty"`
	Environment      EnvironmentInfo                         `json:"environment"`
}

type QueryInfo struct {
	Name        string `json:"name"`
	Kind        string `json:"kind"`
	Description string `json:"description,omitempty"`
}

type BackendInfo struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Endpoint string `json:"endpoint"`
}

type EnvironmentInfo struct {
	GoVersion string `json:"go_version"`
	OS        string `json:"os"`
	Arch      string `json:"arch"`
	NumCPU    int    `json:"num_cpu"`
	Hostname  string `json:"hostname,omitempty"`
}

func NewEnvironmentInfo() EnvironmentInfo {
	// best effort, left empty on error
	host, _ := os.Hostname()
	return EnvironmentInfo{
		GoVersion: runtime.Version(),
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
		NumCPU:    runtime.NumCPU(),
		Hostname:  host,
	}
}

func NewRun(br *runner.BenchmarkResult, cat *catalog.Catalog, indexName string) *Run {
	r := &Run{
		RunID:            uuid.NewString(),
		Timestamp:        time.Now().UTC(),
		TestDuration:     br.Config.Duration.Seconds(),
		NumClients:       br.Config.Concurrency,
		IndexName:        indexName,
		RequestTimeoutMs: br.Config.RequestTimeout.Milliseconds(),
		Catalog:          cat.Name(),
		Stats:            make(map[string]map[string]runner.QueryStats, len(br.Backends)),
		RawResults:       make(map[string][]runner.Outcome, len(br.Backends)),
		Elapsed:          make(map[string]float64, len(br.Backends)),
		Environment:      NewEnvironmentInfo(),
	}

	for _, q := range cat.Queries() {
		r.Queries = append(r.Queries, QueryInfo{Name: q.Name, Kind: string(q.Kind), Description: q.Description})
	}

	for _, b := range br.Backends {
		r.Backends = append(r.Backends, BackendInfo{Name: b.Backend, Type: b.Type, Endpoint: b.Endpoint})
		r.Stats[b.Backend] = b.Stats
		r.RawResults[b.Backend] = b.Records
		r.Elapsed[b.Backend] = b.Elapsed.Seconds()
		if b.Err != nil {
			if r.Failures == nil {
				r.Failures = make(map[string]string)
			}
			r.Failures[b.Backend] = b.Err.Error()
		}
	}

	return r
}

// Baseline is the first backend of the run, the one every other backend is compared to.
func (r *Run) Baseline() (BackendInfo, bool) {
	if len(r.Backends) == 0 {
		return BackendInfo{}, false
	}
	return r.Backends[0], true
}

// QueryNames returns every query with statistics on any backend, sorted.
func (r *Run) QueryNames() []string {
	seen := make(map[string]bool)
	var names []string
	for _, stats := range r.Stats {
		for name := range stats {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	sort.Strings(names)
	return names
}

func (r *Run) BackendNames() []string {
	names := make([]string, 0, len(r.Backends))
	for _, b := range r.Backends {
		names = append(names, b.Name)
	}
	return names
}
