package opensearch

import (
	"github.com/DjordjeVuckovic/search-bench/internal/storage"
	"github.com/opensearch-project/opensearch-go/v4"
	"github.com/opensearch-project/opensearch-go/v4/opensearchapi"
)

type ClientConfig struct {
	Addresses []string
	IndexName string
	Username  string
	Password  string
	Transport storage.TransportConfig
	Compress  bool
}

func NewClient(config ClientConfig) (*opensearchapi.Client, error) {
	cfg := opensearch.Config{
		Addresses:           config.Addresses,
		Transport:           storage.NewHTTPTransport(config.Transport),
		CompressRequestBody: config.Compress,
	}

	if config.Username != "" && config.Password != "" {
		cfg.Username = config.Username
		cfg.Password = config.Password
	}

	return opensearchapi.NewClient(opensearchapi.Config{Client: cfg})
}
