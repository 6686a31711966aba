package engine

import (
	"context"
	"errors"
	"time"

	"github.com/DjordjeVuckovic/search-bench/internal/bench/catalog"
)

// ErrUnsupportedQuery is returned when a query carries no body the backend can run.
var ErrUnsupportedQuery = errors.New("query not supported by backend")

// Backend is a search cluster under test.
type Backend interface {
	// Search runs q once. Latency covers only the round trip to the backend.
	Search(ctx context.Context, q catalog.Query) (*Execution, error)
	Name() string
	Type() string
	Endpoint() string
	Close() error
}

type Execution struct {
	// Hits is the total match count reported by the backend, nil when unknown.
	Hits    *int64
	Latency time.Duration
}
