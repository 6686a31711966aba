package router

import (
	"bytes"
	"errors"
	"io/fs"
	"net/http"
	"path/filepath"

	"github.com/DjordjeVuckovic/search-bench/internal/apperr"
	"github.com/DjordjeVuckovic/search-bench/internal/bench/report"
	"github.com/DjordjeVuckovic/search-bench/internal/bench/runner"
	"github.com/DjordjeVuckovic/search-bench/pkg/server"
	"github.com/labstack/echo/v4"
)

// ResultsRouter serves the latest benchmark artifact from a results directory.
type ResultsRouter struct {
	e       *echo.Echo
	dir     string
	metrics http.Handler
	health  server.HealthChecker
}

func NewResultsRouter(e *echo.Echo, dir string, metrics http.Handler, health server.HealthChecker) *ResultsRouter {
	if health == nil {
		health = server.NewOkHealthChecker()
	}
	return &ResultsRouter{
		e:       e,
		dir:     dir,
		metrics: metrics,
		health:  health,
	}
}

func (r *ResultsRouter) Bind() {
	r.e.GET("/health", r.healthHandler)
	if r.metrics != nil {
		r.e.GET("/metrics", echo.WrapHandler(r.metrics))
	}
	r.e.GET("/results", r.resultsHandler)
	r.e.GET("/results/:backend", r.backendHandler)
	r.e.GET("/report", r.reportHandler)
}

func (r *ResultsRouter) healthHandler(c echo.Context) error {
	if !r.health.Healthy(c.Request().Context()) {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "unhealthy"})
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (r *ResultsRouter) resultsHandler(c echo.Context) error {
	run, err := r.load()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, run)
}

type backendResults struct {
	Backend  report.BackendInfo           `json:"backend"`
	Baseline bool                         `json:"baseline"`
	Stats    map[string]runner.QueryStats `json:"stats"`
	Summary  report.Summary               `json:"summary"`
	Elapsed  float64                      `json:"elapsed"`
	Failure  string                       `json:"failure,omitempty"`
}

func (r *ResultsRouter) backendHandler(c echo.Context) error {
	name := c.Param("backend")
	run, err := r.load()
	if err != nil {
		return err
	}

	for i, b := range run.Backends {
		if b.Name != name {
			continue
		}
		return c.JSON(http.StatusOK, backendResults{
			Backend:  b,
			Baseline: i == 0,
			Stats:    run.Stats[name],
			Summary:  report.Summarize(run.Stats[name]),
			Elapsed:  run.Elapsed[name],
			Failure:  run.Failures[name],
		})
	}
	return apperr.NewNotFound("backend "+name, nil)
}

func (r *ResultsRouter) reportHandler(c echo.Context) error {
	run, err := r.load()
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := report.WriteMarkdown(run, &buf); err != nil {
		return err
	}
	return c.Blob(http.StatusOK, "text/markdown; charset=utf-8", buf.Bytes())
}

func (r *ResultsRouter) load() (*report.Run, error) {
	run, err := report.ReadJSON(filepath.Join(r.dir, report.ArtifactFile))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, apperr.NewNotFound("results", err)
		}
		return nil, err
	}
	return run, nil
}
