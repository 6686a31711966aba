package pg

import (
	"context"
	"flag"
	"os"
	"testing"

	"github.com/DjordjeVuckovic/search-bench/internal/storage"
	pkgtesting "github.com/DjordjeVuckovic/search-bench/pkg/testing"
	"github.com/testcontainers/testcontainers-go"
)

var (
	testCtx      context.Context
	testPool     *ConnectionPool
	testExecutor *RawExecutor
)

func TestMain(m *testing.M) {
	flag.Parse()
	if testing.Short() {
		os.Exit(0)
	}

	testCtx = context.Background()

	pg, err := pkgtesting.NewPGContainer(testCtx, pkgtesting.PGConfig{
		Database: "bench_test_db",
		Username: "test",
		Password: "test",
	})
	if err != nil {
		panic(err)
	}

	testPool, err = NewConnectionPool(testCtx, PoolConfig{ConnStr: pg.ConnString, MaxConns: 4})
	if err != nil {
		_ = testcontainers.TerminateContainer(pg.Container)
		panic(err)
	}

	testExecutor = NewRawExecutor(testPool)

	code := m.Run()

	testPool.Close()
	_ = testcontainers.TerminateContainer(pg.Container)
	os.Exit(code)
}

func TestNewRawExecutor(t *testing.T) {
	if testExecutor == nil {
		t.Fatal("expected non-nil executor")
	}
	if testExecutor.db == nil {
		t.Fatal("expected non-nil db field")
	}
}

func TestConnectionPool_Ping(t *testing.T) {
	if err := testPool.Ping(testCtx); err != nil {
		t.Fatalf("ping failed: %v", err)
	}
}

func TestRawExecutor_Exec_CountsRows(t *testing.T) {
	result, err := testExecutor.Exec(testCtx, "SELECT * FROM "+pkgtesting.CompaniesTable, nil, nil)
	if err != nil {
		t.Fatalf("failed to execute query: %v", err)
	}

	if result.Rows != 5 {
		t.Errorf("expected 5 rows, got %d", result.Rows)
	}
}

func TestRawExecutor_Exec_ParameterizedQuery(t *testing.T) {
	result, err := testExecutor.Exec(testCtx,
		"SELECT company_name FROM "+pkgtesting.CompaniesTable+" WHERE country = $1 AND employee_count >= $2",
		[]any{"United States", 2}, nil)
	if err != nil {
		t.Fatalf("failed to execute query: %v", err)
	}

	if result.Rows != 2 {
		t.Errorf("expected 2 rows, got %d", result.Rows)
	}
}

func TestRawExecutor_Exec_NoRows(t *testing.T) {
	result, err := testExecutor.Exec(testCtx,
		"SELECT * FROM "+pkgtesting.CompaniesTable+" WHERE country = $1", []any{"Atlantis"}, nil)
	if err != nil {
		t.Fatalf("failed to execute query: %v", err)
	}

	if result.Rows != 0 {
		t.Errorf("expected 0 rows, got %d", result.Rows)
	}
}

func TestRawExecutor_Exec_InvalidQuery(t *testing.T) {
	_, err := testExecutor.Exec(testCtx, "SELECT * FROM missing_table", nil, nil)
	if err == nil {
		t.Fatal("expected error for missing table")
	}
}

func TestRawExecutor_Exec_WithTimeout(t *testing.T) {
	_, err := testExecutor.Exec(testCtx, "SELECT pg_sleep(3)", nil, &storage.ExecOptions{TimeoutSeconds: 1})
	if err == nil {
		t.Fatal("expected timeout error")
	}
}
