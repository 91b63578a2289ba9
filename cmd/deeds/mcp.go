package main

import (
	"fmt"
	"log"
	"os"

	"github.com/aretw0/deeds/internal/cli"
	"github.com/aretw0/deeds/pkg/adapters/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Exposes the FAQ tree to AI agents as MCP tools (list_children, lookup, ask)
and as the deeds://tree resource.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Enabled with --sse <addr>.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		sseAddr, _ := cmd.Flags().GetString("sse")
		baseURL, _ := cmd.Flags().GetString("base-url")

		cfg, logger, err := setup(cmd, nil)
		if err != nil {
			return err
		}

		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()

		stores, err := cli.OpenStores(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer stores.Close()

		engine, err := cli.NewEngine(cfg, logger, stores)
		if err != nil {
			return err
		}
		if cfg.Document.Watch {
			go func() {
				if err := engine.Watch(ctx); err != nil {
					logger.Error("watcher stopped", "err", err)
				}
			}()
		}

		srv := mcp.NewServer(engine, mcp.WithLogger(logger))

		if sseAddr == "" {
			// Ensure logs don't corrupt JSON-RPC on Stdout
			log.SetOutput(os.Stderr)
			logger.Info("Starting deeds MCP Server (Stdio)")
			return srv.ServeStdio()
		}

		if baseURL == "" {
			baseURL = fmt.Sprintf("http://localhost%s", sseAddr)
		}
		err = srv.ServeSSE(ctx, sseAddr, baseURL)
		logger.Info("MCP Server stopped")
		return err
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
	mcpCmd.Flags().String("sse", "", "Serve the SSE transport on this address instead of stdio (e.g. :8081)")
	mcpCmd.Flags().String("base-url", "", "Public base URL announced to SSE clients")
}
