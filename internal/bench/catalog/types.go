package catalog

import (
	"encoding/json"
	"fmt"
)

// Kind tags the access pattern a query exercises.
type Kind string

const (
	MatchKind       Kind = "match"
	FilterKind      Kind = "filter"
	TermKind        Kind = "term"
	CompoundKind    Kind = "compound"
	AggregationKind Kind = "aggregation"
)

func (k Kind) Valid() bool {
	switch k {
	case MatchKind, FilterKind, TermKind, CompoundKind, AggregationKind:
		return true
	default:
		return false
	}
}

// Document is an opaque search request body. Its shape depends on the query
// family, so it is kept as a generic tree and only serialized once.
type Document map[string]any

// Query is one named entry of the catalog.
type Query struct {
	Name        string   `yaml:"name"`
	Kind        Kind     `yaml:"kind"`
	Description string   `yaml:"description,omitempty"`
	Body        Document `yaml:"body,omitempty"`
	SQL         string   `yaml:"sql,omitempty"`
	Params      []any    `yaml:"params,omitempty"`

	dsl []byte
}

// DSL returns the JSON encoded body. It is nil for SQL-only queries.
func (q Query) DSL() []byte {
	return q.dsl
}

func (q Query) HasDSL() bool { return len(q.dsl) > 0 }
func (q Query) HasSQL() bool { return q.SQL != "" }

func (q *Query) compile() error {
	if len(q.Body) == 0 {
		q.dsl = nil
		return nil
	}
	data, err := json.Marshal(q.Body)
	if err != nil {
		return fmt.Errorf("encode body of query %q: %w", q.Name, err)
	}
	q.dsl = data
	return nil
}
