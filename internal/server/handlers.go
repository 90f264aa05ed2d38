package server

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mj1618/grabtext/internal/highlight"
	"github.com/mj1618/grabtext/internal/model"
	"github.com/mj1618/grabtext/internal/output"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// toText serializes v to YAML for an MCP response.
func toText(v interface{}) string {
	b, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}
	return string(b)
}

func (s *Server) handleGrabText(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	_, hasX := params["x"]
	_, hasY := params["y"]
	if hasX != hasY {
		return mcp.NewToolResultError("x and y must be given together"), nil
	}

	p := s.engine.Cursor()
	if hasX {
		p = model.Point{X: intParam(params, "x", 0), Y: intParam(params, "y", 0)}
	}
	res := s.engine.Resolve(p)
	result := output.NewGrabResult("grab", p, res)
	s.log.Debug("grab_text", zap.Stringer("point", p), zap.Bool("ok", result.OK))

	if !boolParam(params, "snapshot", false) || res.IsEmpty() {
		return mcp.NewToolResultText(toText(result)), nil
	}

	img, err := highlight.Snapshot(s.engine, res, s.cfg.SnapshotPadding)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("%s\nsnapshot: %v", toText(result), err)), nil
	}
	data, err := highlight.EncodePNG(img)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: toText(result)},
			mcp.ImageContent{
				Type:     "image",
				Data:     base64.StdEncoding.EncodeToString(data),
				MIMEType: "image/png",
			},
		},
	}, nil
}

func (s *Server) handleCursor(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if !s.engine.Enabled() {
		return mcp.NewToolResultError("text grabbing is disabled on this platform"), nil
	}
	return mcp.NewToolResultText(toText(s.engine.Cursor())), nil
}

func (s *Server) handleListWindows(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	windows, err := s.engine.Windows()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if windows == nil {
		windows = []model.Window{}
	}
	return mcp.NewToolResultText(toText(windows)), nil
}

// Parameter extraction helpers for tool arguments

func intParam(params map[string]interface{}, key string, defaultVal int) int {
	if v, ok := params[key]; ok {
		switch n := v.(type) {
		case int:
			return n
		case float64:
			return int(n)
		case int64:
			return int(n)
		}
	}
	return defaultVal
}

func boolParam(params map[string]interface{}, key string, defaultVal bool) bool {
	if v, ok := params[key]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return defaultVal
}
