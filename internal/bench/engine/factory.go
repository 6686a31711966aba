package engine

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/DjordjeVuckovic/search-bench/internal/storage"
	"github.com/DjordjeVuckovic/search-bench/internal/storage/es"
	"github.com/DjordjeVuckovic/search-bench/internal/storage/opensearch"
	"github.com/DjordjeVuckovic/search-bench/internal/storage/pg"
	"github.com/hashicorp/go-multierror"
	"github.com/jackc/pgx/v5"
)

// Spec describes one backend to construct.
type Spec struct {
	Name      string
	Type      storage.Type
	Addresses []string
	// Connection is the Postgres connection string.
	Connection string
	Username   string
	Password   string
	Index      string
	Transport  storage.TransportConfig
	Compress   bool
}

// CreateFromSpecs builds backends in the given order. On failure every
// backend created so far is closed.
func CreateFromSpecs(ctx context.Context, specs []Spec) ([]Backend, error) {
	backends := make([]Backend, 0, len(specs))

	for _, s := range specs {
		b, err := create(ctx, s)
		if err != nil {
			if cerr := CloseAll(backends); cerr != nil {
				slog.Warn("Failed to close backends after setup error", "error", cerr)
			}
			return nil, fmt.Errorf("create backend %q: %w", s.Name, err)
		}
		slog.Info("Enabled backend", "name", b.Name(), "type", b.Type(), "endpoint", b.Endpoint())
		backends = append(backends, b)
	}

	return backends, nil
}

func create(ctx context.Context, s Spec) (Backend, error) {
	switch s.Type {
	case storage.ES:
		return NewEsExecutor(s.Name, es.ClientConfig{
			Addresses: s.Addresses,
			IndexName: s.Index,
			Username:  s.Username,
			Password:  s.Password,
			Transport: s.Transport,
			Compress:  s.Compress,
		})

	case storage.OpenSearch:
		return NewOsExecutor(s.Name, opensearch.ClientConfig{
			Addresses: s.Addresses,
			IndexName: s.Index,
			Username:  s.Username,
			Password:  s.Password,
			Transport: s.Transport,
			Compress:  s.Compress,
		})

	case storage.PG:
		pool, err := pg.NewConnectionPool(ctx, pg.PoolConfig{
			ConnStr:  s.Connection,
			MaxConns: int32(s.Transport.MaxIdleConnsPerHost),
		})
		if err != nil {
			return nil, err
		}
		return NewPgExecutor(s.Name, redactConnString(s.Connection), s.Index, pool), nil

	default:
		return nil, fmt.Errorf("unsupported backend type %q", s.Type)
	}
}

// CloseAll closes every backend and reports all failures.
func CloseAll(backends []Backend) error {
	var result *multierror.Error
	for _, b := range backends {
		if err := b.Close(); err != nil {
			result = multierror.Append(result, fmt.Errorf("close %s: %w", b.Name(), err))
		}
	}
	return result.ErrorOrNil()
}

// redactConnString keeps host, port and database so credentials never reach
// logs or the results artifact.
func redactConnString(conn string) string {
	cfg, err := pgx.ParseConfig(conn)
	if err != nil {
		return "postgres"
	}
	return fmt.Sprintf("postgres://%s:%d/%s", cfg.Host, cfg.Port, cfg.Database)
}
