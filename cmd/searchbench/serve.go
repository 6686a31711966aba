package main

import (
	"context"

	"github.com/DjordjeVuckovic/search-bench/internal/config"
	"github.com/DjordjeVuckovic/search-bench/internal/observability"
	"github.com/DjordjeVuckovic/search-bench/internal/router"
	"github.com/DjordjeVuckovic/search-bench/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newServeCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve results, report and metrics over HTTP",
		RunE: func(cmd *cobra.Command, _ []string) error {
			config.BindFlags(cmd, v, map[string]string{"serve_addr": "addr", "results_dir": "results-dir"})
			cfg, err := resolve(cmd, v)
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg.ServeAddr, cfg.ResultsDir, observability.NewMetrics())
		},
	}

	cmd.Flags().String("addr", "", "listen address (default :8080)")
	cmd.Flags().String("results-dir", "", "directory holding the results artifact")

	return cmd
}

func serve(ctx context.Context, addr, resultsDir string, metrics *observability.Metrics) error {
	cfg, err := server.NewConfig(addr)
	if err != nil {
		return err
	}

	e := echo.New()
	router.NewResultsRouter(e, resultsDir, metrics.Handler(), nil).Bind()

	return server.NewServer(e, cfg).Start(ctx)
}
