package catalog

// DefaultName names the built-in catalog.
const DefaultName = "companies"

// Default returns the built-in catalog run against a company directory index
// (fields company_name, country, rics_100, employee_count).
func Default() *Catalog {
	c, err := New(DefaultName, defaultQueries())
	if err != nil {
		panic("default catalog: " + err.Error())
	}
	return c
}

func defaultQueries() []Query {
	return []Query{
		{
			Name:        "company-name-search",
			Kind:        MatchKind,
			Description: `Company name search (match query for "consulting")`,
			Body: Document{
				"query": map[string]any{
					"match": map[string]any{"company_name": "consulting"},
				},
			},
			SQL:    `SELECT company_name FROM {{index}} WHERE to_tsvector('english', company_name) @@ plainto_tsquery('english', $1)`,
			Params: []any{"consulting"},
		},
		{
			Name:        "country-filter-search",
			Kind:        FilterKind,
			Description: `Country filter search (filter for "United States")`,
			Body: Document{
				"query": map[string]any{
					"bool": map[string]any{
						"must":   []any{map[string]any{"match_all": map[string]any{}}},
						"filter": []any{map[string]any{"term": map[string]any{"country": "United States"}}},
					},
				},
			},
			SQL:    `SELECT company_name FROM {{index}} WHERE country = $1`,
			Params: []any{"United States"},
		},
		{
			Name:        "industry-search",
			Kind:        TermKind,
			Description: "Industry search (term query on rics_100)",
			Body: Document{
				"query": map[string]any{
					"term": map[string]any{"rics_100": "Management Consulting Services"},
				},
			},
			SQL:    `SELECT company_name FROM {{index}} WHERE rics_100 = $1`,
			Params: []any{"Management Consulting Services"},
		},
		{
			Name:        "complex-search",
			Kind:        CompoundKind,
			Description: "Complex search (company name + country filter + employee count range)",
			Body: Document{
				"query": map[string]any{
					"bool": map[string]any{
						"must": []any{map[string]any{"match": map[string]any{"company_name": "consulting"}}},
						"filter": []any{
							map[string]any{"term": map[string]any{"country": "United States"}},
							map[string]any{"range": map[string]any{"employee_count": map[string]any{"gte": 2}}},
						},
					},
				},
			},
			SQL: `SELECT company_name FROM {{index}}
WHERE to_tsvector('english', company_name) @@ plainto_tsquery('english', $1)
  AND country = $2 AND employee_count >= $3`,
			Params: []any{"consulting", "United States", 2},
		},
		{
			Name:        "industry-aggregation",
			Kind:        AggregationKind,
			Description: "Industry aggregation (terms aggregation with sub-aggregations)",
			Body: Document{
				"size": 0,
				"aggs": map[string]any{
					"industries": map[string]any{
						"terms": map[string]any{"field": "rics_100", "size": 20},
						"aggs": map[string]any{
							"avg_employees": map[string]any{
								"avg": map[string]any{"field": "employee_count"},
							},
							"countries": map[string]any{
								"terms": map[string]any{"field": "country", "size": 10},
							},
						},
					},
				},
			},
			SQL: `SELECT rics_100, count(*) AS companies, avg(employee_count) AS avg_employees
FROM {{index}} GROUP BY rics_100 ORDER BY companies DESC LIMIT 20`,
		},
	}
}
