package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonwraymond/docsearch/mcpserver"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the search_docs tool over MCP stdio",
	Args:  cobra.NoArgs,
	RunE:  runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	srv, err := mcpserver.New(a.searcher, mcpserver.Options{
		Name:    a.cfg.MCP.Name,
		Version: a.cfg.MCP.Version,
		Logger:  a.log,
	})
	if err != nil {
		return err
	}

	tool := srv.Tool()
	a.log.Info("Serving MCP over stdio", zap.String("tool", tool.ToolID()))
	return srv.ServeStdio(ctx)
}
