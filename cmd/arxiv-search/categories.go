package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/arxiv-search/internal/category"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List the subject categories accepted by --category",
	Run: func(cmd *cobra.Command, args []string) {
		for _, o := range category.Facets() {
			fmt.Printf("%-8s  %s\n", o.Facet, o.Label)
		}
	},
}

func init() {
	rootCmd.AddCommand(categoriesCmd)
}
