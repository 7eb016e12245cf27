package main

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/aretw0/wayfinder/internal/cli"
	"github.com/aretw0/wayfinder/pkg/adapters/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Exposes maze tools to MCP clients.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup(cmd)
		if err != nil {
			return err
		}
		if ro, _ := cmd.Flags().GetBool("read-only"); ro {
			cfg.Store.ReadOnly = true
		}
		backend, err := cli.NewBackend(cfg, logger)
		if err != nil {
			return err
		}
		defer backend.Close()

		transport, _ := cmd.Flags().GetString("transport")
		addr, _ := cmd.Flags().GetString("addr")

		srv := mcp.NewServer(backend.Service, mcp.WithLogger(logger))

		switch transport {
		case "stdio":
			// Logs go to stderr (see cli.NewLogger) so JSON-RPC on stdout stays clean.
			logger.Info("Starting Wayfinder MCP server (stdio)")
			return srv.ServeStdio()
		case "sse":
			ctx := cli.NewSignalContext(cmd.Context())
			defer ctx.Cancel()

			logger.Info("Starting Wayfinder MCP server (SSE)", "addr", addr)
			if err := srv.ServeSSE(ctx, addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			logger.Info("MCP server stopped gracefully")
			return nil
		default:
			return fmt.Errorf("unknown transport %q (supported: stdio, sse)", transport)
		}
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
	mcpCmd.Flags().Bool("read-only", false, "Refuse every change to stored mazes")

	mcpCmd.Flags().String("transport", "stdio", "Transport protocol to use: 'stdio' or 'sse'")
	mcpCmd.Flags().String("addr", ":8081", "Listen address (only for SSE)")
}
