// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the arxiv-search CLI.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/arxiv-search/internal/arxiv"
	"github.com/pdiddy/arxiv-search/internal/pipeline"
	"github.com/pdiddy/arxiv-search/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the arxiv-search CLI.
var rootCmd = &cobra.Command{
	Use:   "arxiv-search",
	Short: "Search arXiv papers from the terminal",
	Long: `arxiv-search queries the arXiv API, re-ranks the returned papers by title
similarity to the query, and narrows them to a subject category.

Run "search" for a one-shot result table, "tui" for an interactive screen
that searches as you type, or "serve" to expose the same pipeline over HTTP.`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./arxiv-search.yaml or ~/.config/arxiv-search/arxiv-search.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("log-format", "", "log format: text or json")

	viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("log.format", rootCmd.PersistentFlags().Lookup("log-format"))
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("search.base_url", arxiv.DefaultBaseURL)
	v.SetDefault("search.default_query", "Attention Is All You Need Noam")
	v.SetDefault("search.max_results", 20)
	v.SetDefault("search.timeout", 30*time.Second)
	v.SetDefault("search.user_agent", "arxiv-search/"+version)
	v.SetDefault("search.debounce", 300*time.Millisecond)
	v.SetDefault("serve.addr", "127.0.0.1:8080")
	v.SetDefault("library.path", defaultLibraryPath())
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

func initConfig() {
	setDefaults(viper.GetViper())

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("arxiv-search")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "arxiv-search"))
		}
	}

	viper.SetEnvPrefix("ARXIV_SEARCH")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func defaultLibraryPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "library.db"
	}
	return filepath.Join(home, ".config", "arxiv-search", "library.db")
}

// loadConfig builds the configuration tree from v.
func loadConfig(v *viper.Viper) types.Config {
	return types.Config{
		Search: types.SearchConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   v.GetDuration("search.timeout"),
				UserAgent: v.GetString("search.user_agent"),
			},
			BaseURL:      v.GetString("search.base_url"),
			DefaultQuery: v.GetString("search.default_query"),
			MaxResults:   v.GetInt("search.max_results"),
			Debounce:     v.GetDuration("search.debounce"),
		},
		Serve: types.ServeConfig{
			Addr: v.GetString("serve.addr"),
		},
		Library: types.LibraryConfig{
			Path: expandHome(v.GetString("library.path")),
		},
		Log: types.LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
	}
}

func expandHome(path string) string {
	rest, ok := strings.CutPrefix(path, "~/")
	if !ok {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, rest)
}

// setupLogger returns a logger writing to w at the configured level.
func setupLogger(cfg types.LogConfig, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(cfg.Level)}
	if strings.EqualFold(cfg.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// newPipeline wires the arXiv client into a search pipeline.
func newPipeline(cfg types.Config, log *slog.Logger) *pipeline.Pipeline {
	return pipeline.New(arxiv.NewClient(cfg.Search), cfg.Search, log)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
