package main

import (
	"fmt"
	"io"
	"os"

	"github.com/DjordjeVuckovic/search-bench/internal/bench/catalog"
	"github.com/DjordjeVuckovic/search-bench/internal/config"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newCatalogCmd(v *viper.Viper) *cobra.Command {
	var showBody bool

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List the query catalog",
		RunE: func(cmd *cobra.Command, _ []string) error {
			config.BindFlags(cmd, v, map[string]string{"catalog": "catalog"})
			cfg, err := resolve(cmd, v)
			if err != nil {
				return err
			}
			cat, err := catalog.LoadFromFile(cfg.CatalogPath)
			if err != nil {
				return err
			}
			return printCatalog(os.Stdout, cat, showBody)
		},
	}

	cmd.Flags().String("catalog", "", "query catalog YAML file (default built-in catalog)")
	cmd.Flags().BoolVar(&showBody, "body", false, "print the search body of every query")

	return cmd
}

func printCatalog(w io.Writer, cat *catalog.Catalog, showBody bool) error {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleLight)
	tw.SetTitle(fmt.Sprintf("catalog %s (%d queries)", cat.Name(), cat.Len()))
	tw.AppendHeader(table.Row{"Name", "Kind", "DSL", "SQL", "Description"})

	for _, q := range cat.Queries() {
		tw.AppendRow(table.Row{q.Name, q.Kind, yesNo(q.HasDSL()), yesNo(q.HasSQL()), q.Description})
	}
	if _, err := io.WriteString(w, tw.Render()+"\n"); err != nil {
		return err
	}

	if !showBody {
		return nil
	}
	for _, q := range cat.Queries() {
		if q.HasDSL() {
			fmt.Fprintf(w, "\n%s:\n%s\n", q.Name, q.DSL())
		}
		if q.HasSQL() {
			fmt.Fprintf(w, "\n%s (sql):\n%s\n", q.Name, q.SQL)
		}
	}
	return nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "-"
}
