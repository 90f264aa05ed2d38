package cmd

import (
	"fmt"

	"github.com/mj1618/grabtext/internal/server"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start an MCP server exposing grabtext tools",
	Long: `Start a Model Context Protocol (MCP) server that exposes text grabbing as
tools: grab_text, cursor and list_windows.

Supported transports:
  stdio             Standard I/O (default, for local MCP clients)
  streamable-http   Streamable HTTP transport (for remote agents)

Examples:
  grabtext serve
  grabtext serve --transport streamable-http --port 8080`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("transport", "stdio", "Transport: stdio, streamable-http")
	serveCmd.Flags().Int("port", 8080, "HTTP port for streamable-http transport")
}

func runServe(cmd *cobra.Command, args []string) error {
	transport, _ := cmd.Flags().GetString("transport")
	port, _ := cmd.Flags().GetInt("port")
	if transport != "stdio" && transport != "streamable-http" {
		return fmt.Errorf("unsupported transport: %s (use stdio or streamable-http)", transport)
	}

	eng := newEngine()
	defer closeEngine(eng)

	srv := server.New(eng, server.Config{
		Transport:       transport,
		Port:            port,
		SnapshotPadding: cfg.Snapshot.Padding,
	}, logger)
	return srv.Serve()
}
