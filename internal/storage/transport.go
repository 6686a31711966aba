package storage

import (
	"crypto/tls"
	"net/http"
)

// TransportConfig tunes the HTTP transport shared by HTTP based clients.
type TransportConfig struct {
	InsecureSkipVerify bool
	// MaxIdleConnsPerHost should be at least the number of concurrent workers.
	MaxIdleConnsPerHost int
}

func NewHTTPTransport(cfg TransportConfig) *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()
	if cfg.InsecureSkipVerify {
		t.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec
	}
	if cfg.MaxIdleConnsPerHost > 0 {
		t.MaxIdleConnsPerHost = cfg.MaxIdleConnsPerHost
		if t.MaxIdleConns < cfg.MaxIdleConnsPerHost {
			t.MaxIdleConns = cfg.MaxIdleConnsPerHost
		}
	}
	return t
}
