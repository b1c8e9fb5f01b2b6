// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/arxiv-search/internal/library"
	"github.com/pdiddy/arxiv-search/internal/present"
)

var libraryCmd = &cobra.Command{
	Use:   "library",
	Short: "Manage the reading list of bookmarked papers",
	Long: `Library manages the local SQLite reading list. Papers are added from the
interactive screen with Ctrl-B.`,
}

// --- list subcommand ---

var libraryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List bookmarked papers, newest first",
	RunE:  runLibraryList,
}

func runLibraryList(cmd *cobra.Command, args []string) error {
	store, err := library.Open(loadConfig(viper.GetViper()).Library)
	if err != nil {
		return err
	}
	defer store.Close()

	entries, err := store.List(cmd.Context())
	if err != nil {
		return err
	}

	if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	if len(entries) == 0 {
		fmt.Println("Reading list is empty.")
		return nil
	}
	now := time.Now()
	for _, e := range entries {
		row := present.NewRow(e.Paper, now)
		fmt.Printf("%-18s  %s\n", row.ID, row.Title)
		fmt.Printf("%-18s  %s · %s · saved %s\n", "", row.PrimaryAuthorLabel, row.Category,
			present.RelativeTime(e.SavedAt.Format(time.RFC3339), now))
	}
	return nil
}

// --- remove subcommand ---

var libraryRemoveCmd = &cobra.Command{
	Use:   "remove ID",
	Short: "Remove a paper from the reading list by arXiv id",
	Args:  cobra.ExactArgs(1),
	RunE:  runLibraryRemove,
}

func runLibraryRemove(cmd *cobra.Command, args []string) error {
	store, err := library.Open(loadConfig(viper.GetViper()).Library)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Remove(cmd.Context(), args[0]); err != nil {
		return err
	}
	fmt.Printf("Removed %s\n", args[0])
	return nil
}

func init() {
	libraryListCmd.Flags().Bool("json", false, "output entries as JSON")

	libraryCmd.AddCommand(libraryListCmd)
	libraryCmd.AddCommand(libraryRemoveCmd)
	rootCmd.AddCommand(libraryCmd)
}
