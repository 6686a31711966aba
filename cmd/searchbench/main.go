package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/DjordjeVuckovic/search-bench/internal/config"
	"github.com/DjordjeVuckovic/search-bench/internal/observability"
	"github.com/DjordjeVuckovic/search-bench/pkg/config/env"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	v := viper.New()

	rootCmd := &cobra.Command{
		Use:   "searchbench",
		Short: "Search backend query benchmark",
		Long: `searchbench - fixed duration query benchmark for search backends.

Commands:
  searchbench run        Benchmark every enabled backend and write the results artifact
  searchbench report     Render the markdown comparison report from a results artifact
  searchbench serve      Serve results, report and metrics over HTTP
  searchbench catalog    List the query catalog`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := env.LoadDotEnv(".env"); err != nil {
				return err
			}
			cfg, err := resolve(cmd, v)
			if err != nil {
				return err
			}
			observability.SetupLogger(cfg.LogLevel, cfg.LogFormat, os.Stderr)
			return nil
		},
	}

	config.BindCommonFlags(rootCmd, v)

	rootCmd.AddCommand(newRunCmd(v))
	rootCmd.AddCommand(newReportCmd(v))
	rootCmd.AddCommand(newServeCmd(v))
	rootCmd.AddCommand(newCatalogCmd(v))

	return rootCmd.ExecuteContext(ctx)
}

func configFile(cmd *cobra.Command) string {
	f, _ := cmd.Flags().GetString("config")
	return f
}

func resolve(cmd *cobra.Command, v *viper.Viper) (*config.Config, error) {
	return config.Resolve(v, configFile(cmd))
}
