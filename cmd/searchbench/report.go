package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/DjordjeVuckovic/search-bench/internal/bench/report"
	"github.com/DjordjeVuckovic/search-bench/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newReportCmd(v *viper.Viper) *cobra.Command {
	var (
		input     string
		output    string
		showTable bool
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Render the markdown report from a results artifact",
		RunE: func(cmd *cobra.Command, _ []string) error {
			config.BindFlags(cmd, v, map[string]string{"results_dir": "results-dir"})
			cfg, err := resolve(cmd, v)
			if err != nil {
				return err
			}
			if input == "" {
				input = filepath.Join(cfg.ResultsDir, report.ArtifactFile)
			}
			if output == "" {
				output = filepath.Join(filepath.Dir(input), report.ReportFile)
			}

			run, err := report.ReadJSON(input)
			if err != nil {
				return err
			}
			if showTable {
				report.WriteTable(run, os.Stdout)
			}
			return writeMarkdown(run, output)
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "results artifact (default <results_dir>/"+report.ArtifactFile+")")
	cmd.Flags().StringVarP(&output, "output", "o", "", "report file (default next to the artifact)")
	cmd.Flags().BoolVar(&showTable, "table", false, "also print the terminal summary")
	cmd.Flags().String("results-dir", "", "directory holding the results artifact")

	return cmd
}

func writeMarkdown(run *report.Run, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	defer f.Close()

	if err := report.WriteMarkdown(run, f); err != nil {
		return err
	}
	slog.Info("Report generated", "path", path)
	return nil
}
