package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/DjordjeVuckovic/search-bench/internal/storage"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var defaults = map[string]any{
	"elasticsearch.hosts":    []string{"https://your-elasticsearch-cluster.com"},
	"elasticsearch.user":     "your-username",
	"elasticsearch.password": "your-password",
	"elasticsearch.compress": false,
	"opensearch.hosts":       []string{"https://your-opensearch-cluster.amazonaws.com"},
	"opensearch.user":        "",
	"opensearch.password":    "",
	"opensearch.compress":    true,
	"postgres.conn":          "",
	"postgres.table":         "",
	"index_name":             "sample-companies",
	"test_duration":          20,
	"num_clients":            10,
	"request_timeout":        60,
	"insecure_skip_verify":   true,
	"catalog":                "",
	"results_dir":            ".",
	"metrics_addr":           "",
	"serve_addr":             ":8080",
	"log_level":              "info",
	"log_format":             "text",
}

// envNames keeps the historical variable names that do not follow the key layout.
var envNames = map[string]string{
	"postgres.conn": "PG_CONNECTION_STRING",
	"catalog":       "CATALOG_PATH",
	"backends":      "BACKENDS",
}

func SetDefaults(v *viper.Viper) {
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
}

func bindEnv(v *viper.Viper) error {
	keys := append(make([]string, 0, len(defaults)+1), "backends")
	for k := range defaults {
		keys = append(keys, k)
	}
	for _, k := range keys {
		name, ok := envNames[k]
		if !ok {
			name = strings.ToUpper(strings.NewReplacer(".", "_").Replace(k))
		}
		if err := v.BindEnv(k, name); err != nil {
			return fmt.Errorf("bind env %s: %w", name, err)
		}
	}
	return nil
}

// AddRunFlags registers the benchmark flags on cmd.
func AddRunFlags(cmd *cobra.Command) {
	f := cmd.Flags()

	f.StringSlice("backends", nil, "backends to benchmark in order, the first is the baseline (elasticsearch, opensearch, postgres)")
	f.String("index", "", "index or table name to query")
	f.Float64("duration", 0, "test duration per backend in seconds")
	f.Int("clients", 0, "number of concurrent clients per backend")
	f.Float64("request-timeout", 0, "per request timeout in seconds, 0 disables it")
	f.String("catalog", "", "query catalog YAML file (default built-in catalog)")
	f.String("results-dir", "", "directory for the results artifact and report")
	f.String("metrics-addr", "", "serve live metrics on this address while running")
}

// BindRunFlags binds the flags added by AddRunFlags to v. Viper keeps a single flag
// per key, so bind from the command that is actually executing.
func BindRunFlags(cmd *cobra.Command, v *viper.Viper) {
	BindFlags(cmd, v, map[string]string{
		"backends":        "backends",
		"index_name":      "index",
		"test_duration":   "duration",
		"num_clients":     "clients",
		"request_timeout": "request-timeout",
		"catalog":         "catalog",
		"results_dir":     "results-dir",
		"metrics_addr":    "metrics-addr",
	})
}

// BindFlags binds config keys to the named flags of cmd, skipping flags cmd does not have.
func BindFlags(cmd *cobra.Command, v *viper.Viper, keys map[string]string) {
	for key, flag := range keys {
		if f := cmd.Flags().Lookup(flag); f != nil {
			_ = v.BindPFlag(key, f)
		}
	}
}

// BindCommonFlags binds flags shared by every command.
func BindCommonFlags(cmd *cobra.Command, v *viper.Viper) {
	f := cmd.PersistentFlags()

	f.String("config", "", "config file path (yaml)")
	f.String("log-level", "", "log level (debug, info, warn, error)")
	f.String("log-format", "", "log format (json, text)")

	_ = v.BindPFlag("log_level", f.Lookup("log-level"))
	_ = v.BindPFlag("log_format", f.Lookup("log-format"))
}

// Load resolves configuration like Resolve and validates it for a benchmark run.
func Load(v *viper.Viper, configFile string) (*Config, error) {
	cfg, err := Resolve(v, configFile)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Resolve reads configuration from flags, environment, an optional config file and
// defaults, in that order of precedence.
func Resolve(v *viper.Viper, configFile string) (*Config, error) {
	SetDefaults(v)
	if err := bindEnv(v); err != nil {
		return nil, err
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("searchbench")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || configFile != "" {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if !v.IsSet("backends") {
		cfg.Backends = defaultBackends(&cfg)
	}
	cfg.Backends = normalize(cfg.Backends)
	return &cfg, nil
}

// defaultBackends enables Elasticsearch and OpenSearch, plus Postgres when a
// connection string is configured.
func defaultBackends(cfg *Config) []string {
	backends := []string{string(storage.ES), string(storage.OpenSearch)}
	if cfg.Postgres.Conn != "" {
		backends = append(backends, string(storage.PG))
	}
	return backends
}

// normalize splits comma separated entries and drops blanks.
func normalize(in []string) []string {
	var out []string
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if p := strings.ToLower(strings.TrimSpace(part)); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}
