package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/arxiv-search/internal/category"
	"github.com/pdiddy/arxiv-search/internal/present"
)

var searchCmd = &cobra.Command{
	Use:   "search [text...]",
	Short: "Search arXiv once and print the ranked results",
	Long: `Search sends the text to the arXiv query API, ranks the returned papers by
title similarity to the text, and keeps only those in the selected category.
With no text the configured default query is used.`,
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg := loadConfig(viper.GetViper())
	log := setupLogger(cfg.Log, os.Stderr)

	facet, err := category.ParseFacet(viper.GetString("search.category"))
	if err != nil {
		return err
	}

	res, err := newPipeline(cfg, log).Run(cmd.Context(), strings.Join(args, " "), facet)
	if err != nil {
		return err
	}

	if exportPath, _ := cmd.Flags().GetString("export"); exportPath != "" {
		if err := present.WriteExport(exportPath, res.Query, facet, res.Papers); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Exported %d papers to %s\n", len(res.Papers), exportPath)
	}

	rows := present.Rows(res.Papers, time.Now())
	if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
		return present.FormatJSON(rows, os.Stdout)
	}
	present.FormatTable(rows, os.Stdout)
	return nil
}

func init() {
	searchCmd.Flags().String("category", "all", "subject category (see \"categories\")")
	searchCmd.Flags().Int("max-results", 20, "maximum number of results requested from arXiv")
	searchCmd.Flags().Bool("json", false, "output results as JSON")
	searchCmd.Flags().String("export", "", "also write the results to a YAML file")

	viper.BindPFlag("search.category", searchCmd.Flags().Lookup("category"))
	viper.BindPFlag("search.max_results", searchCmd.Flags().Lookup("max-results"))

	rootCmd.AddCommand(searchCmd)
}
