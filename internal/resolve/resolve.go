// Package resolve finds the text an application renders at a screen point.
//
// Two strategies exist. FlatResolver lets the OS hit-test the point down to
// the innermost element in one call. StackResolver walks top-level windows
// front-to-back and searches each owning application's accessibility tree.
// Both return model.Empty() rather than an error when nothing is found or
// the accessibility layer misbehaves.
package resolve

import (
	"fmt"
	"strings"

	"github.com/mj1618/grabtext/internal/model"
	"github.com/mj1618/grabtext/internal/platform"
	"go.uber.org/zap"
)

// Resolver maps a screen point to the text rendered there.
type Resolver interface {
	Resolve(p model.Point) model.ResolvedText
}

// NodeError is a failure reported by the accessibility layer for one node.
// It abandons the current branch only.
type NodeError struct {
	Op  string
	Err error
}

func (e *NodeError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *NodeError) Unwrap() error {
	return e.Err
}

// For picks the resolver matching the provider's strategy.
func For(p *platform.Provider, maxDepth int, log *zap.Logger) (Resolver, error) {
	switch p.Strategy {
	case platform.StrategyFlat:
		return NewFlatResolver(p.Lookup, log), nil
	case platform.StrategyStack:
		return NewStackResolver(p.Windows, p.Tree, maxDepth, log), nil
	default:
		return nil, fmt.Errorf("no resolver for strategy %v", p.Strategy)
	}
}

// recoverEmpty turns a panic escaping a traversal into the empty result.
func recoverEmpty(log *zap.Logger, p model.Point, out *model.ResolvedText) {
	if r := recover(); r != nil {
		log.Error("text resolution aborted", zap.Stringer("point", p), zap.Any("panic", r))
		*out = model.Empty()
	}
}

func release(e platform.Element) {
	if r, ok := e.(platform.Releaser); ok {
		r.Release()
	}
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
