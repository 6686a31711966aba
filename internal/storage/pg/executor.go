package pg

import (
	"context"
	"time"

	"github.com/DjordjeVuckovic/search-bench/internal/storage"
	"github.com/jackc/pgx/v5/pgxpool"
)

type RawExecutor struct {
	db *pgxpool.Pool
}

func NewRawExecutor(pool *ConnectionPool) *RawExecutor {
	return &RawExecutor{db: pool.GetConn()}
}

// Exec runs query and drains the result set, counting rows without decoding them.
func (e *RawExecutor) Exec(
	ctx context.Context,
	query string,
	params []any,
	opts *storage.ExecOptions) (*storage.ExecuteResult, error) {
	queryCtx, cancel := e.newQueryCtx(ctx, opts)
	defer cancel()

	rows, err := e.db.Query(queryCtx, query, params...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var n int64
	for rows.Next() {
		n++
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &storage.ExecuteResult{Rows: n}, nil
}

func (e *RawExecutor) newQueryCtx(ctx context.Context, opts *storage.ExecOptions) (context.Context, context.CancelFunc) {
	if opts != nil && opts.TimeoutSeconds > 0 {
		return context.WithTimeout(ctx, time.Duration(opts.TimeoutSeconds)*time.Second)
	}
	return ctx, func() {
		// no-op
	}
}

var _ storage.RawExecutor = (*RawExecutor)(nil)
