package runner

import (
	"time"
)

// Outcome is the result of one query execution against one backend.
// Latency is in milliseconds and set only on success.
type Outcome struct {
	Backend string   `json:"cluster"`
	Query   string   `json:"query"`
	Success bool     `json:"success"`
	Latency *float64 `json:"latency,omitempty"`
	Hits    *int64   `json:"hits,omitempty"`
	Error   string   `json:"error,omitempty"`
}

func (o Outcome) LatencyMs() float64 {
	if o.Latency == nil {
		return 0
	}
	return *o.Latency
}

type BackendResult struct {
	Backend  string
	Type     string
	Endpoint string
	Records  []Outcome
	Stats    map[string]QueryStats
	Elapsed  time.Duration
	// Err holds worker failures. Records are still the partial set gathered before them.
	Err error
}

type BenchmarkResult struct {
	Backends []*BackendResult
	Config   Config
}

func (br *BenchmarkResult) BackendNames() []string {
	names := make([]string, 0, len(br.Backends))
	for _, b := range br.Backends {
		names = append(names, b.Backend)
	}
	return names
}

func (br *BenchmarkResult) Get(name string) (*BackendResult, bool) {
	for _, b := range br.Backends {
		if b.Backend == name {
			return b, true
		}
	}
	return nil, false
}
