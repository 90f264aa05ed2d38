package resolve

import (
	"errors"
	"testing"

	"github.com/mj1618/grabtext/internal/logging"
	"github.com/mj1618/grabtext/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestFlatResolver_Name(t *testing.T) {
	el := &fakeNode{name: "OK", value: "ignored", rect: model.Rect{X: 1, Y: 2, Width: 30, Height: 40}}
	r := NewFlatResolver(&fakeLookup{el: el}, logging.Nop())

	got := r.Resolve(at)
	assert.Equal(t, model.ResolvedText{Text: "OK", Rect: el.rect}, got)
	assert.True(t, el.released, "element should be released")
}

func TestFlatResolver_ValueFallback(t *testing.T) {
	el := &fakeNode{name: " ", value: "typed text", rect: model.Rect{X: 1, Y: 2, Width: 30, Height: 40}}
	r := NewFlatResolver(&fakeLookup{el: el}, logging.Nop())

	assert.Equal(t, "typed text", r.Resolve(at).Text)
}

func TestFlatResolver_NoText(t *testing.T) {
	el := &fakeNode{role: "pane", rect: model.Rect{X: 1, Y: 2, Width: 30, Height: 40}}
	r := NewFlatResolver(&fakeLookup{el: el}, logging.Nop())

	assert.Equal(t, model.Empty(), r.Resolve(at))
}

func TestFlatResolver_LookupError(t *testing.T) {
	r := NewFlatResolver(&fakeLookup{err: errors.New("E_FAIL")}, logging.Nop())
	assert.Equal(t, model.Empty(), r.Resolve(at))

	r = NewFlatResolver(&fakeLookup{}, logging.Nop())
	assert.Equal(t, model.Empty(), r.Resolve(at))
}

func TestFlatResolver_ExtentsError(t *testing.T) {
	el := &fakeNode{name: "OK", extentsErr: errStale}
	r := NewFlatResolver(&fakeLookup{el: el}, logging.Nop())

	assert.Equal(t, model.Empty(), r.Resolve(at))
}

func TestFlatResolver_Panic(t *testing.T) {
	el := &fakeNode{panicOnName: true}
	r := NewFlatResolver(&fakeLookup{el: el}, logging.Nop())

	assert.NotPanics(t, func() { assert.Equal(t, model.Empty(), r.Resolve(at)) })
}

func TestNodeError_Unwrap(t *testing.T) {
	err := &NodeError{Op: "name", Err: errStale}
	assert.ErrorIs(t, err, errStale)
	assert.Equal(t, "name: stale node", err.Error())
}
