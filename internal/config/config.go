package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/DjordjeVuckovic/search-bench/internal/apperr"
	"github.com/DjordjeVuckovic/search-bench/internal/bench/engine"
	"github.com/DjordjeVuckovic/search-bench/internal/bench/runner"
	"github.com/DjordjeVuckovic/search-bench/internal/storage"
)

type Cluster struct {
	Hosts    []string `mapstructure:"hosts"`
	User     string   `mapstructure:"user"`
	Password string   `mapstructure:"password"`
	// Compress gzips request bodies.
	Compress bool `mapstructure:"compress"`
}

type Postgres struct {
	Conn string `mapstructure:"conn"`
	// Table defaults to the index name.
	Table string `mapstructure:"table"`
}

type Config struct {
	Elasticsearch Cluster  `mapstructure:"elasticsearch"`
	OpenSearch    Cluster  `mapstructure:"opensearch"`
	Postgres      Postgres `mapstructure:"postgres"`
	// Backends lists the enabled backends in run order. The first one is the report baseline.
	Backends []string `mapstructure:"backends"`

	IndexName string `mapstructure:"index_name"`
	// TestDuration and RequestTimeout are in seconds.
	TestDuration       float64 `mapstructure:"test_duration"`
	NumClients         int     `mapstructure:"num_clients"`
	RequestTimeout     float64 `mapstructure:"request_timeout"`
	InsecureSkipVerify bool    `mapstructure:"insecure_skip_verify"`

	CatalogPath string `mapstructure:"catalog"`
	ResultsDir  string `mapstructure:"results_dir"`
	MetricsAddr string `mapstructure:"metrics_addr"`
	ServeAddr   string `mapstructure:"serve_addr"`

	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
}

func (c *Config) Validate() error {
	if c.TestDuration < 0 {
		return apperr.NewFieldValidation("test_duration", "must be >= 0, got %g", c.TestDuration)
	}
	if c.NumClients < 1 {
		return apperr.NewFieldValidation("num_clients", "must be at least 1, got %d", c.NumClients)
	}
	if c.RequestTimeout < 0 {
		return apperr.NewFieldValidation("request_timeout", "must be >= 0, got %g", c.RequestTimeout)
	}
	if c.IndexName == "" {
		return apperr.NewFieldValidation("index_name", "must not be empty")
	}
	if len(c.Backends) == 0 {
		return apperr.NewFieldValidation("backends", "at least one backend must be enabled")
	}

	seen := make(map[string]bool, len(c.Backends))
	for _, b := range c.Backends {
		t := storage.Type(b)
		if !t.Valid() {
			return apperr.NewFieldValidation("backends", "unknown backend %q, supported: %s", b, joinTypes(storage.SupportedTypes()))
		}
		if seen[b] {
			return apperr.NewFieldValidation("backends", "backend %q listed twice", b)
		}
		seen[b] = true

		switch t {
		case storage.ES:
			if len(c.Elasticsearch.Hosts) == 0 {
				return apperr.NewFieldValidation("elasticsearch.hosts", "required when elasticsearch is enabled")
			}
		case storage.OpenSearch:
			if len(c.OpenSearch.Hosts) == 0 {
				return apperr.NewFieldValidation("opensearch.hosts", "required when opensearch is enabled")
			}
		case storage.PG:
			if c.Postgres.Conn == "" {
				return apperr.NewFieldValidation("postgres.conn", "required when postgres is enabled")
			}
		}
	}

	switch c.LogFormat {
	case "", "text", "json":
	default:
		return apperr.NewFieldValidation("log_format", "must be text or json, got %q", c.LogFormat)
	}
	return nil
}

func (c *Config) Duration() time.Duration {
	return time.Duration(c.TestDuration * float64(time.Second))
}

func (c *Config) Timeout() time.Duration {
	return time.Duration(c.RequestTimeout * float64(time.Second))
}

func (c *Config) RunnerConfig() runner.Config {
	return runner.Config{
		Concurrency:    c.NumClients,
		Duration:       c.Duration(),
		RequestTimeout: c.Timeout(),
	}
}

// BackendSpecs describes the enabled backends in configured order.
func (c *Config) BackendSpecs() []engine.Spec {
	transport := storage.TransportConfig{
		InsecureSkipVerify:  c.InsecureSkipVerify,
		MaxIdleConnsPerHost: c.NumClients,
	}

	specs := make([]engine.Spec, 0, len(c.Backends))
	for _, b := range c.Backends {
		s := engine.Spec{
			Name:      b,
			Type:      storage.Type(b),
			Index:     c.IndexName,
			Transport: transport,
		}
		switch s.Type {
		case storage.ES:
			s.Addresses, s.Username, s.Password = c.Elasticsearch.Hosts, c.Elasticsearch.User, c.Elasticsearch.Password
			s.Compress = c.Elasticsearch.Compress
		case storage.OpenSearch:
			s.Addresses, s.Username, s.Password = c.OpenSearch.Hosts, c.OpenSearch.User, c.OpenSearch.Password
			s.Compress = c.OpenSearch.Compress
		case storage.PG:
			s.Connection = c.Postgres.Conn
			if c.Postgres.Table != "" {
				s.Index = c.Postgres.Table
			}
		}
		specs = append(specs, s)
	}
	return specs
}

func joinTypes(types []storage.Type) string {
	s := make([]string, len(types))
	for i, t := range types {
		s[i] = string(t)
	}
	return strings.Join(s, ", ")
}

func (c *Config) String() string {
	return fmt.Sprintf("backends=%v index=%s duration=%gs clients=%d timeout=%gs",
		c.Backends, c.IndexName, c.TestDuration, c.NumClients, c.RequestTimeout)
}
