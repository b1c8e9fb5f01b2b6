package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/arxiv-search/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the search pipeline over HTTP",
	Long: `Serve exposes GET /api/search?q=TEXT&category=FACET and GET /api/categories
as JSON, plus GET /healthz. It stops cleanly on SIGINT or SIGTERM.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := loadConfig(viper.GetViper())
	log := setupLogger(cfg.Log, os.Stderr)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.New(newPipeline(cfg, log), log).ListenAndServe(ctx, cfg.Serve.Addr)
}

func init() {
	serveCmd.Flags().String("addr", "127.0.0.1:8080", "listen address")

	viper.BindPFlag("serve.addr", serveCmd.Flags().Lookup("addr"))

	rootCmd.AddCommand(serveCmd)
}
