package resolve

import (
	"errors"

	"github.com/mj1618/grabtext/internal/model"
	"github.com/mj1618/grabtext/internal/platform"
)

var errStale = errors.New("stale node")

// fakeNode is an in-memory accessibility node. ChildAtPoint returns the
// first child whose rect contains the point, visible or not, like a real
// toolkit does.
type fakeNode struct {
	name     string
	role     string
	value    string
	rect     model.Rect
	hidden   bool
	children []*fakeNode

	noGeometry  bool // Contains fails, as for application roots
	childAtErr  error
	childrenErr error
	nameErr     error
	extentsErr  error
	visibleErr  error
	panicOnName bool

	released bool
}

func (n *fakeNode) Name() (string, error) {
	if n.panicOnName {
		panic("boom")
	}
	return n.name, n.nameErr
}

func (n *fakeNode) TextValue() (string, error) { return n.value, nil }
func (n *fakeNode) RoleName() (string, error)  { return n.role, nil }

func (n *fakeNode) Extents() (model.Rect, error) {
	if n.extentsErr != nil {
		return model.Rect{}, n.extentsErr
	}
	return n.rect, nil
}

func (n *fakeNode) Visible() (bool, error) {
	if n.visibleErr != nil {
		return false, n.visibleErr
	}
	return !n.hidden, nil
}

func (n *fakeNode) Contains(p model.Point) (bool, error) {
	if n.noGeometry {
		return false, errors.New("component interface not implemented")
	}
	return n.rect.Contains(p), nil
}

func (n *fakeNode) ChildAtPoint(p model.Point) (platform.Node, error) {
	if n.childAtErr != nil {
		return nil, n.childAtErr
	}
	for _, c := range n.children {
		if c.rect.Contains(p) {
			return c, nil
		}
	}
	return nil, nil
}

func (n *fakeNode) Children() ([]platform.Node, error) {
	if n.childrenErr != nil {
		return nil, n.childrenErr
	}
	out := make([]platform.Node, len(n.children))
	for i, c := range n.children {
		out[i] = c
	}
	return out, nil
}

func (n *fakeNode) Release() { n.released = true }

// app wraps frames in an application root without geometry.
func app(frames ...*fakeNode) *fakeNode {
	return &fakeNode{role: "application", noGeometry: true, children: frames}
}

type fakeWindows struct {
	backToFront []model.WindowHandle
	pids        map[model.WindowHandle]int
	frames      map[model.WindowHandle]model.Rect
}

func (w *fakeWindows) StackingOrder() []model.WindowHandle { return w.backToFront }

func (w *fakeWindows) OwnerPID(h model.WindowHandle) (int, bool) {
	pid, ok := w.pids[h]
	return pid, ok
}

func (w *fakeWindows) Geometry(h model.WindowHandle) (model.Rect, bool) {
	r, ok := w.frames[h]
	return r, ok
}

func (w *fakeWindows) Windows() []model.Window {
	out := make([]model.Window, 0, len(w.backToFront))
	for _, h := range w.backToFront {
		out = append(out, model.Window{Handle: h, PID: w.pids[h]})
	}
	return out
}

type fakeTree struct {
	byPID map[int][]*fakeNode
	order []int // pid order for Applications(0)
	err   error
}

func (t *fakeTree) Applications(pid int) ([]platform.Node, error) {
	if t.err != nil {
		return nil, t.err
	}
	var nodes []*fakeNode
	if pid == 0 {
		for _, p := range t.order {
			nodes = append(nodes, t.byPID[p]...)
		}
	} else {
		nodes = t.byPID[pid]
	}
	out := make([]platform.Node, len(nodes))
	for i, n := range nodes {
		out[i] = n
	}
	return out, nil
}

type fakeLookup struct {
	el  platform.Element
	err error
}

func (l *fakeLookup) ElementAtPoint(model.Point) (platform.Element, error) {
	return l.el, l.err
}
