package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonwraymond/docsearch/mcpserver"
	"github.com/jonwraymond/docsearch/metrics"
	"github.com/jonwraymond/docsearch/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP search API",
	Long: `The serve command starts an HTTP server exposing GET /search, /healthz,
/metrics and the streamable MCP endpoint at /mcp.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	metrics.Register()

	tools, err := mcpserver.New(a.searcher, mcpserver.Options{
		Name:    a.cfg.MCP.Name,
		Version: a.cfg.MCP.Version,
		Logger:  a.log,
	})
	if err != nil {
		return err
	}

	srv, err := server.New(server.Options{
		Searcher:    a.searcher,
		MCP:         tools.HTTPHandler(),
		Fingerprint: a.adapter.Fingerprint(),
		Logger:      a.log,
	})
	if err != nil {
		return err
	}

	return srv.ListenAndServe(ctx, fmt.Sprintf(":%d", a.cfg.HTTP.Port), server.Timeouts{
		Read:     time.Duration(a.cfg.HTTP.ReadTimeoutSec) * time.Second,
		Write:    time.Duration(a.cfg.HTTP.WriteTimeoutSec) * time.Second,
		Shutdown: time.Duration(a.cfg.HTTP.ShutdownSec) * time.Second,
	})
}
