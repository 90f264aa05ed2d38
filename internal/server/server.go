// Package server exposes text resolution to AI agents as MCP tools.
package server

import (
	"fmt"
	"image"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/mj1618/grabtext/internal/model"
	"github.com/mj1618/grabtext/internal/version"
	"go.uber.org/zap"
)

// Engine is the part of engine.Engine the tools use.
type Engine interface {
	Enabled() bool
	Resolve(p model.Point) model.ResolvedText
	Cursor() model.Point
	Windows() ([]model.Window, error)
	Capture(r model.Rect) (image.Image, error)
}

// Config holds MCP server configuration.
type Config struct {
	Transport       string
	Port            int
	SnapshotPadding int
}

// Server wraps the MCP server around an engine.
type Server struct {
	engine Engine
	cfg    Config
	log    *zap.Logger
	mcp    *mcpserver.MCPServer
}

// New creates a server with all tools registered.
func New(engine Engine, cfg Config, log *zap.Logger) *Server {
	s := &Server{engine: engine, cfg: cfg, log: log}
	s.mcp = mcpserver.NewMCPServer("grabtext", version.Version)
	s.registerTools()
	return s
}

// Serve blocks serving the configured transport.
func (s *Server) Serve() error {
	switch s.cfg.Transport {
	case "", "stdio":
		s.log.Debug("serving MCP on stdio")
		return mcpserver.ServeStdio(s.mcp)
	case "streamable-http":
		addr := fmt.Sprintf(":%d", s.cfg.Port)
		s.log.Info("serving MCP over streamable HTTP", zap.String("addr", addr))
		return mcpserver.NewStreamableHTTPServer(s.mcp).Start(addr)
	default:
		return fmt.Errorf("unsupported transport: %s (use stdio or streamable-http)", s.cfg.Transport)
	}
}

func (s *Server) registerTools() {
	s.mcp.AddTool(
		mcp.NewTool("grab_text",
			mcp.WithDescription("Return the text an application renders at a screen point, with the bounding rectangle of the element it came from. Defaults to the mouse cursor position."),
			mcp.WithNumber("x", mcp.Description("X coordinate in global desktop pixels (requires y)")),
			mcp.WithNumber("y", mcp.Description("Y coordinate in global desktop pixels (requires x)")),
			mcp.WithBoolean("snapshot", mcp.Description("Also return a PNG of the element with its rectangle highlighted")),
		),
		s.handleGrabText,
	)

	s.mcp.AddTool(
		mcp.NewTool("cursor",
			mcp.WithDescription("Return the current mouse cursor position"),
		),
		s.handleCursor,
	)

	s.mcp.AddTool(
		mcp.NewTool("list_windows",
			mcp.WithDescription("List on-screen top-level windows front-to-back with handle, owning PID and title"),
		),
		s.handleListWindows,
	)
}
