// Package engine binds one platform provider at startup and answers
// "what text is under this point" for the CLI, the hotkey daemon and the
// MCP server.
package engine

import (
	"errors"
	"fmt"
	"image"
	"sync"

	"github.com/mj1618/grabtext/internal/model"
	"github.com/mj1618/grabtext/internal/platform"
	"github.com/mj1618/grabtext/internal/resolve"
	"github.com/mj1618/grabtext/internal/sanitize"
	"go.uber.org/zap"
)

// ErrDisabled is returned by operations other than Resolve when the engine
// started without a provider.
var ErrDisabled = errors.New("text grabbing is disabled on this platform")

// Options configures an Engine.
type Options struct {
	// MaxTextLength caps resolved text, in code points. 0 disables the cap.
	MaxTextLength int
	// MaxDepth bounds the accessibility tree search.
	MaxDepth int
	// OnStartupError receives the startup failure exactly once.
	OnStartupError func(error)
}

// Engine resolves text at screen points. A disabled engine always returns
// the empty result.
type Engine struct {
	mu         sync.Mutex
	provider   *platform.Provider
	resolver   resolve.Resolver
	opts       Options
	log        *zap.Logger
	startupErr error
}

// New binds the provider registered for the host OS. On failure the
// returned engine is disabled and the error is also returned; it is never
// reported again.
func New(opts Options, log *zap.Logger) (*Engine, error) {
	p, err := platform.NewProvider()
	if err != nil {
		return newDisabled(opts, log, err), err
	}
	return NewWithProvider(p, opts, log)
}

// NewWithProvider binds p.
func NewWithProvider(p *platform.Provider, opts Options, log *zap.Logger) (*Engine, error) {
	r, err := resolve.For(p, opts.MaxDepth, log)
	if err != nil {
		return newDisabled(opts, log, err), err
	}
	log.Debug("platform provider bound",
		zap.String("provider", p.Name),
		zap.Stringer("strategy", p.Strategy))
	return &Engine{provider: p, resolver: r, opts: opts, log: log}, nil
}

func newDisabled(opts Options, log *zap.Logger, err error) *Engine {
	log.Debug("text grabbing disabled", zap.Error(err))
	if opts.OnStartupError != nil {
		opts.OnStartupError(err)
	}
	return &Engine{opts: opts, log: log, startupErr: err}
}

// StartupError returns the error that disabled the engine, or nil.
func (e *Engine) StartupError() error {
	return e.startupErr
}

// Enabled reports whether a provider is bound.
func (e *Engine) Enabled() bool {
	return e.startupErr == nil
}

// ProviderName returns the bound provider's name, or "" when disabled.
func (e *Engine) ProviderName() string {
	if e.provider == nil {
		return ""
	}
	return e.provider.Name
}

// Resolve returns the sanitized text at p. Calls are serialized.
func (e *Engine) Resolve(p model.Point) model.ResolvedText {
	if !e.Enabled() {
		return model.Empty()
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	res := sanitize.Result(e.resolver.Resolve(p), e.opts.MaxTextLength)
	e.log.Debug("resolved",
		zap.Stringer("point", p),
		zap.String("text", res.Text),
		zap.Stringer("rect", res.Rect))
	return res
}

// Cursor returns the current pointer position, or (0,0) when disabled.
func (e *Engine) Cursor() model.Point {
	if !e.Enabled() {
		return model.Point{}
	}
	return e.provider.Cursor.Locate()
}

// ResolveAtCursor reads the pointer position and resolves the text there.
func (e *Engine) ResolveAtCursor() (model.Point, model.ResolvedText) {
	p := e.Cursor()
	if !e.Enabled() {
		return p, model.Empty()
	}
	return p, e.Resolve(p)
}

// Windows lists top-level windows front-to-back.
func (e *Engine) Windows() ([]model.Window, error) {
	if !e.Enabled() {
		return nil, ErrDisabled
	}
	if e.provider.Windows == nil {
		return nil, fmt.Errorf("%s: window listing not supported", e.provider.Name)
	}
	ws := e.provider.Windows.Windows()
	out := make([]model.Window, len(ws))
	for i, w := range ws {
		out[len(ws)-1-i] = w
	}
	return out, nil
}

// Capture returns the screen pixels inside r.
func (e *Engine) Capture(r model.Rect) (image.Image, error) {
	if !e.Enabled() {
		return nil, ErrDisabled
	}
	if e.provider.Screenshotter == nil {
		return nil, fmt.Errorf("%s: screen capture not supported", e.provider.Name)
	}
	return e.provider.Screenshotter.CaptureRect(r)
}

// Clipboard returns the clipboard collaborator.
func (e *Engine) Clipboard() (platform.ClipboardManager, error) {
	if !e.Enabled() {
		return nil, ErrDisabled
	}
	if e.provider.Clipboard == nil {
		return nil, fmt.Errorf("%s: clipboard not supported", e.provider.Name)
	}
	return e.provider.Clipboard, nil
}

// Close releases the provider.
func (e *Engine) Close() error {
	if e.provider == nil || e.provider.Close == nil {
		return nil
	}
	return e.provider.Close()
}
