package engine

import (
	"context"
	"testing"

	"github.com/DjordjeVuckovic/search-bench/internal/bench/catalog"
	"github.com/DjordjeVuckovic/search-bench/internal/storage"
	pkgtesting "github.com/DjordjeVuckovic/search-bench/pkg/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntegration_DefaultCatalog(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	ctx := context.Background()

	esc := pkgtesting.NewESContainer(ctx, t)
	esc.SeedCompanies(ctx, t, "sample-companies")
	pgc := pkgtesting.NewPGContainerWithCleanup(ctx, t)

	backends, err := CreateFromSpecs(ctx, []Spec{
		{Name: "elasticsearch", Type: storage.ES, Addresses: []string{esc.Address}, Index: "sample-companies"},
		{Name: "postgres", Type: storage.PG, Connection: pgc.ConnString, Index: pkgtesting.CompaniesTable},
	})
	require.NoError(t, err)
	defer func() { _ = CloseAll(backends) }()

	for _, b := range backends {
		for _, q := range catalog.Default().Queries() {
			t.Run(b.Name()+"/"+q.Name, func(t *testing.T) {
				res, err := b.Search(ctx, q)
				require.NoError(t, err)
				require.NotNil(t, res.Hits)
				assert.GreaterOrEqual(t, *res.Hits, int64(0))
				assert.Positive(t, res.Latency)
			})
		}
	}
}
