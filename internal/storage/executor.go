package storage

import (
	"context"
)

type ExecOptions struct {
	TimeoutSeconds int
}

type ExecuteResult struct {
	Rows int64
}

// RawExecutor executes backend-native query text.
type RawExecutor interface {
	// Exec runs query with positional params; their order must match the placeholders.
	Exec(ctx context.Context, query string, params []any, opts *ExecOptions) (*ExecuteResult, error)
}
