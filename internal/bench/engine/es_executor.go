package engine

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/DjordjeVuckovic/search-bench/internal/bench/catalog"
	"github.com/DjordjeVuckovic/search-bench/internal/storage"
	"github.com/DjordjeVuckovic/search-bench/internal/storage/es"
	"github.com/elastic/go-elasticsearch/v8"
)

type EsExecutor struct {
	name      string
	addresses []string
	index     string
	client    *elasticsearch.TypedClient
}

func NewEsExecutor(name string, cfg es.ClientConfig) (*EsExecutor, error) {
	client, err := es.NewTypedClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("es create client: %w", err)
	}

	return &EsExecutor{
		name:      name,
		addresses: cfg.Addresses,
		index:     cfg.IndexName,
		client:    client,
	}, nil
}

func (e *EsExecutor) Search(ctx context.Context, q catalog.Query) (*Execution, error) {
	if !q.HasDSL() {
		return nil, fmt.Errorf("%w: %q has no search body", ErrUnsupportedQuery, q.Name)
	}

	req := e.client.Search().
		Index(e.index).
		Raw(bytes.NewReader(q.DSL()))

	start := time.Now()
	res, err := req.Do(ctx)
	latency := time.Since(start)
	if err != nil {
		return nil, fmt.Errorf("es search: %w", err)
	}

	var hits *int64
	if res.Hits.Total != nil {
		v := res.Hits.Total.Value
		hits = &v
	}

	return &Execution{Hits: hits, Latency: latency}, nil
}

func (e *EsExecutor) Name() string     { return e.name }
func (e *EsExecutor) Type() string     { return string(storage.ES) }
func (e *EsExecutor) Endpoint() string { return strings.Join(e.addresses, ",") }
func (e *EsExecutor) Close() error     { return nil }
