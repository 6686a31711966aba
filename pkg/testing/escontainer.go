package testing

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/elasticsearch"
	"github.com/testcontainers/testcontainers-go/wait"
)

// ESContainer represents a running Elasticsearch test container
type ESContainer struct {
	Container testcontainers.Container
	Address   string
}

// NewESContainer starts an Elasticsearch test container
func NewESContainer(ctx context.Context, tb testing.TB) *ESContainer {
	tb.Helper()

	esContainer, err := elasticsearch.Run(ctx,
		"docker.elastic.co/elasticsearch/elasticsearch:8.12.0",
		elasticsearch.WithPassword(""),
		testcontainers.WithWaitStrategy(
			wait.ForHTTP("/").
				WithPort("9200").
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		tb.Fatalf("failed to start elasticsearch container: %v", err)
	}

	tb.Cleanup(func() {
		if err := testcontainers.TerminateContainer(esContainer); err != nil {
			tb.Logf("failed to terminate elasticsearch container: %v", err)
		}
	})

	host, err := esContainer.Host(ctx)
	if err != nil {
		tb.Fatalf("failed to get elasticsearch host: %v", err)
	}

	port, err := esContainer.MappedPort(ctx, "9200")
	if err != nil {
		tb.Fatalf("failed to get elasticsearch port: %v", err)
	}

	return &ESContainer{
		Container: esContainer,
		Address:   fmt.Sprintf("http://%s:%s", host, port.Port()),
	}
}

const companiesMapping = `{
  "mappings": {
    "properties": {
      "company_name":   {"type": "text"},
      "country":        {"type": "keyword"},
      "rics_100":       {"type": "keyword"},
      "employee_count": {"type": "integer"}
    }
  }
}`

// SeedCompanies creates index with the companies mapping, bulk loads a few documents
// and refreshes it.
func (c *ESContainer) SeedCompanies(ctx context.Context, tb testing.TB, index string) {
	tb.Helper()

	c.do(ctx, tb, http.MethodPut, "/"+index, "application/json", bytes.NewBufferString(companiesMapping))

	var body bytes.Buffer
	docs := []string{
		`{"company_name":"Acme Consulting","country":"United States","rics_100":"Management Consulting Services","employee_count":12}`,
		`{"company_name":"Blue Ridge Consulting","country":"United States","rics_100":"Management Consulting Services","employee_count":1}`,
		`{"company_name":"Harbor Logistics","country":"United States","rics_100":"Freight Transportation","employee_count":300}`,
	}
	for _, d := range docs {
		body.WriteString(`{"index":{}}` + "\n" + d + "\n")
	}

	c.do(ctx, tb, http.MethodPost, "/"+index+"/_bulk?refresh=true", "application/x-ndjson", &body)
}

func (c *ESContainer) do(ctx context.Context, tb testing.TB, method, path, contentType string, body io.Reader) {
	tb.Helper()

	req, err := http.NewRequestWithContext(ctx, method, c.Address+path, body)
	if err != nil {
		tb.Fatalf("failed to build %s %s: %v", method, path, err)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		tb.Fatalf("failed to seed elasticsearch: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		tb.Fatalf("seed elasticsearch %s %s: unexpected status %d", method, path, resp.StatusCode)
	}
}
