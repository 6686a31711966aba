package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/DjordjeVuckovic/search-bench/internal/bench/catalog"
	"github.com/DjordjeVuckovic/search-bench/internal/storage"
	"github.com/DjordjeVuckovic/search-bench/internal/storage/pg"
	"github.com/jackc/pgx/v5"
)

type PgExecutor struct {
	name     string
	endpoint string
	table    string
	pool     *pg.ConnectionPool
	executor storage.RawExecutor
}

// NewPgExecutor runs catalog SQL against pool. {{index}} in the SQL is
// replaced by the quoted table name.
func NewPgExecutor(name, endpoint, table string, pool *pg.ConnectionPool) *PgExecutor {
	return &PgExecutor{
		name:     name,
		endpoint: endpoint,
		table:    pgx.Identifier{table}.Sanitize(),
		pool:     pool,
		executor: pg.NewRawExecutor(pool),
	}
}

func (e *PgExecutor) Search(ctx context.Context, q catalog.Query) (*Execution, error) {
	if !q.HasSQL() {
		return nil, fmt.Errorf("%w: %q has no sql", ErrUnsupportedQuery, q.Name)
	}

	sql, err := q.RenderSQL(catalog.TemplateParams{"index": e.table})
	if err != nil {
		return nil, fmt.Errorf("pg render: %w", err)
	}

	start := time.Now()
	result, err := e.executor.Exec(ctx, sql, q.Params, nil)
	latency := time.Since(start)
	if err != nil {
		return nil, fmt.Errorf("pg exec: %w", err)
	}

	hits := result.Rows
	return &Execution{Hits: &hits, Latency: latency}, nil
}

func (e *PgExecutor) Name() string     { return e.name }
func (e *PgExecutor) Type() string     { return string(storage.PG) }
func (e *PgExecutor) Endpoint() string { return e.endpoint }

func (e *PgExecutor) Close() error {
	if e.pool != nil {
		e.pool.Close()
	}
	return nil
}
