package catalog

import (
	"fmt"

	"github.com/DjordjeVuckovic/search-bench/internal/apperr"
)

// Catalog is an ordered, immutable set of uniquely named queries.
// It is safe for concurrent use by any number of workers.
type Catalog struct {
	name    string
	queries []Query
	index   map[string]int
}

func New(name string, queries []Query) (*Catalog, error) {
	if len(queries) == 0 {
		return nil, apperr.NewValidation("catalog has no queries")
	}

	c := &Catalog{
		name:    name,
		queries: make([]Query, 0, len(queries)),
		index:   make(map[string]int, len(queries)),
	}

	for i, q := range queries {
		if q.Name == "" {
			return nil, apperr.NewValidation(fmt.Sprintf("query at index %d has no name", i))
		}
		if _, dup := c.index[q.Name]; dup {
			return nil, apperr.NewValidation(fmt.Sprintf("duplicate query name %q", q.Name))
		}
		if q.Kind != "" && !q.Kind.Valid() {
			return nil, apperr.NewValidation(fmt.Sprintf("query %q has invalid kind %q", q.Name, q.Kind))
		}
		if len(q.Body) == 0 && q.SQL == "" {
			return nil, apperr.NewValidation(fmt.Sprintf("query %q has neither body nor sql", q.Name))
		}
		if err := q.compile(); err != nil {
			return nil, apperr.NewValidationWrap("invalid query body", err)
		}

		c.index[q.Name] = len(c.queries)
		c.queries = append(c.queries, q)
	}

	return c, nil
}

func (c *Catalog) Name() string { return c.name }
func (c *Catalog) Len() int     { return len(c.queries) }

// Queries returns the queries in catalog order. The slice is a copy.
func (c *Catalog) Queries() []Query {
	out := make([]Query, len(c.queries))
	copy(out, c.queries)
	return out
}

func (c *Catalog) Names() []string {
	names := make([]string, len(c.queries))
	for i, q := range c.queries {
		names[i] = q.Name
	}
	return names
}

func (c *Catalog) Get(name string) (Query, bool) {
	i, ok := c.index[name]
	if !ok {
		return Query{}, false
	}
	return c.queries[i], true
}
