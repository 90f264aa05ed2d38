package server

import (
	"context"
	"errors"
	"image"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mj1618/grabtext/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type fakeEngine struct {
	enabled bool
	cursor  model.Point
	texts   map[model.Point]model.ResolvedText
	windows []model.Window
	asked   []model.Point
}

func (f *fakeEngine) Enabled() bool { return f.enabled }

func (f *fakeEngine) Resolve(p model.Point) model.ResolvedText {
	f.asked = append(f.asked, p)
	if r, ok := f.texts[p]; ok {
		return r
	}
	return model.Empty()
}

func (f *fakeEngine) Cursor() model.Point { return f.cursor }

func (f *fakeEngine) Windows() ([]model.Window, error) {
	if !f.enabled {
		return nil, errors.New("disabled")
	}
	return f.windows, nil
}

func (f *fakeEngine) Capture(r model.Rect) (image.Image, error) {
	return image.NewRGBA(image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height)), nil
}

func newTestServer(e *fakeEngine) *Server {
	return New(e, Config{SnapshotPadding: 4}, zap.NewNop())
}

func call(args map[string]interface{}) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

func textOf(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	tc, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "first content is %T", res.Content[0])
	return tc.Text
}

type grabOut struct {
	OK    bool        `yaml:"ok"`
	Text  string      `yaml:"text"`
	Point model.Point `yaml:"point"`
	Rect  model.Rect  `yaml:"rect"`
}

func TestHandleGrabText_AtCursor(t *testing.T) {
	hello := model.NewResolvedText("Hello", model.Rect{X: 100, Y: 100, Width: 60, Height: 20})
	e := &fakeEngine{enabled: true, cursor: model.Point{X: 110, Y: 105}, texts: map[model.Point]model.ResolvedText{
		{X: 110, Y: 105}: hello,
	}}
	s := newTestServer(e)

	res, err := s.handleGrabText(context.Background(), call(nil))
	require.NoError(t, err)
	assert.False(t, res.IsError)

	var out grabOut
	require.NoError(t, yaml.Unmarshal([]byte(textOf(t, res)), &out))
	assert.True(t, out.OK)
	assert.Equal(t, "Hello", out.Text)
	assert.Equal(t, hello.Rect, out.Rect)
}

func TestHandleGrabText_ExplicitPoint(t *testing.T) {
	e := &fakeEngine{enabled: true, cursor: model.Point{X: 1, Y: 1}}
	s := newTestServer(e)

	res, err := s.handleGrabText(context.Background(), call(map[string]interface{}{"x": 300.0, "y": 40.0}))
	require.NoError(t, err)
	assert.Equal(t, []model.Point{{X: 300, Y: 40}}, e.asked)

	var out grabOut
	require.NoError(t, yaml.Unmarshal([]byte(textOf(t, res)), &out))
	assert.False(t, out.OK)
	assert.Equal(t, "", out.Text)
	assert.Equal(t, model.Rect{}, out.Rect)
}

func TestHandleGrabText_HalfPoint(t *testing.T) {
	s := newTestServer(&fakeEngine{enabled: true})
	res, err := s.handleGrabText(context.Background(), call(map[string]interface{}{"x": 3.0}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestHandleGrabText_Snapshot(t *testing.T) {
	hello := model.NewResolvedText("Hello", model.Rect{X: 10, Y: 10, Width: 30, Height: 10})
	e := &fakeEngine{enabled: true, cursor: model.Point{X: 12, Y: 12}, texts: map[model.Point]model.ResolvedText{
		{X: 12, Y: 12}: hello,
	}}
	s := newTestServer(e)

	res, err := s.handleGrabText(context.Background(), call(map[string]interface{}{"snapshot": true}))
	require.NoError(t, err)
	require.Len(t, res.Content, 2)
	img, ok := res.Content[1].(mcp.ImageContent)
	require.True(t, ok)
	assert.Equal(t, "image/png", img.MIMEType)
	assert.NotEmpty(t, img.Data)
}

func TestHandleCursor_Disabled(t *testing.T) {
	s := newTestServer(&fakeEngine{})
	res, err := s.handleCursor(context.Background(), call(nil))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestHandleListWindows(t *testing.T) {
	e := &fakeEngine{enabled: true, windows: []model.Window{
		{Handle: 2, PID: 20, Title: "Editor"},
		{Handle: 1, PID: 10, Title: "Terminal"},
	}}
	s := newTestServer(e)

	res, err := s.handleListWindows(context.Background(), call(nil))
	require.NoError(t, err)

	var got []model.Window
	require.NoError(t, yaml.Unmarshal([]byte(textOf(t, res)), &got))
	assert.Equal(t, e.windows, got)
}

func TestHandleListWindows_Disabled(t *testing.T) {
	s := newTestServer(&fakeEngine{})
	res, err := s.handleListWindows(context.Background(), call(nil))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestServe_UnknownTransport(t *testing.T) {
	s := New(&fakeEngine{}, Config{Transport: "carrier-pigeon"}, zap.NewNop())
	assert.Error(t, s.Serve())
}
