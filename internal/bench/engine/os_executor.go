package engine

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/DjordjeVuckovic/search-bench/internal/bench/catalog"
	"github.com/DjordjeVuckovic/search-bench/internal/storage"
	"github.com/DjordjeVuckovic/search-bench/internal/storage/opensearch"
	"github.com/opensearch-project/opensearch-go/v4/opensearchapi"
)

type OsExecutor struct {
	name      string
	addresses []string
	index     string
	client    *opensearchapi.Client
}

func NewOsExecutor(name string, cfg opensearch.ClientConfig) (*OsExecutor, error) {
	client, err := opensearch.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("opensearch create client: %w", err)
	}

	return &OsExecutor{
		name:      name,
		addresses: cfg.Addresses,
		index:     cfg.IndexName,
		client:    client,
	}, nil
}

func (e *OsExecutor) Search(ctx context.Context, q catalog.Query) (*Execution, error) {
	if !q.HasDSL() {
		return nil, fmt.Errorf("%w: %q has no search body", ErrUnsupportedQuery, q.Name)
	}

	req := &opensearchapi.SearchReq{
		Indices: []string{e.index},
		Body:    bytes.NewReader(q.DSL()),
	}

	start := time.Now()
	res, err := e.client.Search(ctx, req)
	latency := time.Since(start)
	if err != nil {
		return nil, fmt.Errorf("opensearch search: %w", err)
	}

	hits := int64(res.Hits.Total.Value)
	return &Execution{Hits: &hits, Latency: latency}, nil
}

func (e *OsExecutor) Name() string     { return e.name }
func (e *OsExecutor) Type() string     { return string(storage.OpenSearch) }
func (e *OsExecutor) Endpoint() string { return strings.Join(e.addresses, ",") }
func (e *OsExecutor) Close() error     { return nil }
