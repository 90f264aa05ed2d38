package resolve

import (
	"github.com/mj1618/grabtext/internal/model"
	"github.com/mj1618/grabtext/internal/platform"
	"go.uber.org/zap"
)

// FlatResolver resolves text with a single OS hit-test.
type FlatResolver struct {
	lookup platform.PointLookup
	log    *zap.Logger
}

// NewFlatResolver creates a resolver over lookup.
func NewFlatResolver(lookup platform.PointLookup, log *zap.Logger) *FlatResolver {
	return &FlatResolver{lookup: lookup, log: log}
}

// Resolve reads the name of the innermost element at p, falling back to
// its current value.
func (r *FlatResolver) Resolve(p model.Point) (out model.ResolvedText) {
	defer recoverEmpty(r.log, p, &out)

	el, err := r.lookup.ElementAtPoint(p)
	if err != nil {
		r.log.Debug("no element at point", zap.Stringer("point", p), zap.Error(err))
		return model.Empty()
	}
	if el == nil {
		return model.Empty()
	}
	defer release(el)

	text, ok := r.text(el)
	if !ok {
		r.log.Debug("element has no name or value", zap.Stringer("point", p))
		return model.Empty()
	}

	rect, err := el.Extents()
	if err != nil {
		r.log.Debug("element extents unavailable", zap.Error(err))
		return model.Empty()
	}
	return model.NewResolvedText(text, rect)
}

func (r *FlatResolver) text(el platform.Element) (string, bool) {
	name, err := el.Name()
	if err == nil && !blank(name) {
		return name, true
	}
	if err != nil {
		r.log.Debug("name query failed", zap.Error(err))
	}

	value, err := el.TextValue()
	if err != nil {
		r.log.Debug("value query failed", zap.Error(err))
		return "", false
	}
	if blank(value) {
		return "", false
	}
	return value, true
}
