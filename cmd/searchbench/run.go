package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/DjordjeVuckovic/search-bench/internal/bench/catalog"
	"github.com/DjordjeVuckovic/search-bench/internal/bench/engine"
	"github.com/DjordjeVuckovic/search-bench/internal/bench/report"
	"github.com/DjordjeVuckovic/search-bench/internal/bench/runner"
	"github.com/DjordjeVuckovic/search-bench/internal/config"
	"github.com/DjordjeVuckovic/search-bench/internal/observability"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newRunCmd(v *viper.Viper) *cobra.Command {
	var writeReport bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Benchmark the enabled backends",
		RunE: func(cmd *cobra.Command, _ []string) error {
			config.BindRunFlags(cmd, v)
			cfg, err := config.Load(v, configFile(cmd))
			if err != nil {
				return err
			}
			return runBenchmark(cmd.Context(), cfg, writeReport)
		},
	}

	config.AddRunFlags(cmd)
	cmd.Flags().BoolVar(&writeReport, "report", false, "also write the markdown report")

	return cmd
}

func runBenchmark(ctx context.Context, cfg *config.Config, writeReport bool) error {
	cat, err := catalog.LoadFromFile(cfg.CatalogPath)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	if err := os.MkdirAll(cfg.ResultsDir, 0755); err != nil {
		return fmt.Errorf("create results dir: %w", err)
	}

	metrics := observability.NewMetrics()
	if cfg.MetricsAddr != "" {
		srvCtx, cancel := context.WithCancel(ctx)
		defer cancel()
		go func() {
			if err := serve(srvCtx, cfg.MetricsAddr, cfg.ResultsDir, metrics); err != nil {
				slog.Error("Metrics server failed", "addr", cfg.MetricsAddr, "error", err)
			}
		}()
	}

	backends, err := engine.CreateFromSpecs(ctx, cfg.BackendSpecs())
	if err != nil {
		return err
	}
	defer func() {
		if err := engine.CloseAll(backends); err != nil {
			slog.Warn("Failed to close backends", "error", err)
		}
	}()

	slog.Info("Starting benchmark",
		"catalog", cat.Name(),
		"queries", cat.Len(),
		"config", cfg.String())

	rc := cfg.RunnerConfig()
	rc.Observer = metrics
	result, runErr := runner.New(rc, cat).RunAll(ctx, backends)
	if len(result.Backends) == 0 {
		return runErr
	}

	run := report.NewRun(result, cat, cfg.IndexName)
	artifact := filepath.Join(cfg.ResultsDir, report.ArtifactFile)
	if err := report.WriteJSON(run, artifact); err != nil {
		return errors.Join(runErr, err)
	}
	slog.Info("Results written", "path", artifact, "run_id", run.RunID)

	report.WriteTable(run, os.Stdout)

	if writeReport {
		if err := writeMarkdown(run, filepath.Join(cfg.ResultsDir, report.ReportFile)); err != nil {
			return errors.Join(runErr, err)
		}
	}
	return runErr
}
