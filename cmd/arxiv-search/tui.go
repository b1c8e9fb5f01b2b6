package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/arxiv-search/internal/actions"
	"github.com/pdiddy/arxiv-search/internal/library"
	"github.com/pdiddy/arxiv-search/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Search interactively as you type",
	Long: `Tui opens a full-screen search box. Results refresh shortly after you stop
typing; only the latest search is ever shown.

Keys: Ctrl-T next category, Up/Down select, Ctrl-O open PDF,
Ctrl-Y copy authors, Ctrl-B add to reading list, Ctrl-C quit.`,
	RunE: runTUI,
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg := loadConfig(viper.GetViper())

	// The screen owns stdout, so logs go to a file or nowhere.
	var logOut io.Writer = io.Discard
	if path, _ := cmd.Flags().GetString("log-file"); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		defer f.Close()
		logOut = f
	}
	log := setupLogger(cfg.Log, logOut)

	var bookmarks tui.Bookmarker
	store, err := library.Open(cfg.Library)
	if err != nil {
		log.Warn("reading list disabled", "error", err)
	} else {
		defer store.Close()
		bookmarks = store
	}

	ui, err := tui.New(cmd.Context(), newPipeline(cfg, log), cfg.Search, actions.NewDesktop(), bookmarks, log)
	if err != nil {
		return err
	}
	return ui.Run()
}

func init() {
	tuiCmd.Flags().String("log-file", "", "write logs to this file")

	rootCmd.AddCommand(tuiCmd)
}
