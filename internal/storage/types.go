package storage

// Type identifies a search backend implementation.
type Type string

const (
	ES         Type = "elasticsearch"
	OpenSearch Type = "opensearch"
	PG         Type = "postgres"
)

func (t Type) Valid() bool {
	switch t {
	case ES, OpenSearch, PG:
		return true
	default:
		return false
	}
}

func SupportedTypes() []Type {
	return []Type{ES, OpenSearch, PG}
}
