package es

import (
	"github.com/DjordjeVuckovic/search-bench/internal/storage"
	"github.com/elastic/go-elasticsearch/v8"
)

type ClientConfig struct {
	Addresses []string
	IndexName string
	Username  string
	Password  string
	Transport storage.TransportConfig
	Compress  bool
}

func NewTypedClient(config ClientConfig) (*elasticsearch.TypedClient, error) {
	cfg := elasticsearch.Config{
		Addresses:           config.Addresses,
		Transport:           storage.NewHTTPTransport(config.Transport),
		CompressRequestBody: config.Compress,
	}

	if config.Username != "" && config.Password != "" {
		cfg.Username = config.Username
		cfg.Password = config.Password
	}

	return elasticsearch.NewTypedClient(cfg)
}
