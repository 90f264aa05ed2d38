package resolve

import (
	"reflect"

	"github.com/mj1618/grabtext/internal/model"
	"github.com/mj1618/grabtext/internal/platform"
	"go.uber.org/zap"
)

// DefaultMaxDepth bounds the tree search when no limit is configured.
const DefaultMaxDepth = 256

// StackResolver searches applications in window stacking order.
type StackResolver struct {
	windows  platform.WindowStack
	tree     platform.Tree
	maxDepth int
	log      *zap.Logger
}

// NewStackResolver creates a resolver over the given window stack and tree.
// windows may be nil, in which case every query runs in degraded mode and
// scans all applications in tree order.
func NewStackResolver(windows platform.WindowStack, tree platform.Tree, maxDepth int, log *zap.Logger) *StackResolver {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return &StackResolver{windows: windows, tree: tree, maxDepth: maxDepth, log: log}
}

// Resolve returns the first candidate found in the front-most window that
// covers p and yields one. Windows of unknown geometry are searched through
// their whole application, once per process.
func (r *StackResolver) Resolve(p model.Point) (out model.ResolvedText) {
	defer recoverEmpty(r.log, p, &out)

	s := &search{point: p, maxDepth: r.maxDepth, log: r.log}
	defer s.report()

	order := r.stackOrder()
	if len(order) == 0 {
		r.log.Debug("stacking order unavailable, scanning all applications")
		apps, err := r.tree.Applications(0)
		if err != nil {
			r.log.Debug("list applications failed", zap.Error(err))
			return model.Empty()
		}
		return s.firstOf(apps)
	}

	seen := make(map[int]bool)
	for _, h := range order {
		frame, framed := r.windows.Geometry(h)
		if framed && !frame.Contains(p) {
			continue
		}
		pid, ok := r.windows.OwnerPID(h)
		if !ok || pid <= 0 {
			r.log.Debug("window owner unknown, skipped", zap.Uint64("window", uint64(h)))
			continue
		}
		if !framed {
			if seen[pid] {
				continue
			}
			seen[pid] = true
		}

		apps, err := r.tree.Applications(pid)
		if err != nil {
			r.log.Debug("list applications failed", zap.Int("pid", pid), zap.Error(err))
			continue
		}
		var res model.ResolvedText
		if framed {
			res = s.inWindow(apps, frame)
		} else {
			res = s.firstOf(apps)
		}
		if !res.IsEmpty() {
			return res
		}
	}
	return model.Empty()
}

func (r *StackResolver) stackOrder() model.StackOrder {
	if r.windows == nil {
		return nil
	}
	return model.FrontToBack(r.windows.StackingOrder())
}

type outcome int

const (
	notFound outcome = iota
	found
	failed
)

// branch is the result of searching one subtree.
type branch struct {
	outcome outcome
	result  model.ResolvedText
	err     error
}

func (b branch) ok() bool { return b.outcome == found }

// search holds the state of one Resolve call.
type search struct {
	point    model.Point
	maxDepth int
	log      *zap.Logger

	failures int
	lastErr  error
}

// settle records a failed branch and reports whether b holds a candidate.
func (s *search) settle(b branch) bool {
	if b.outcome == failed {
		s.failures++
		s.lastErr = b.err
	}
	return b.ok()
}

func (s *search) report() {
	if s.failures == 0 {
		return
	}
	s.log.Debug("branches abandoned during search",
		zap.Stringer("point", s.point),
		zap.Int("failures", s.failures),
		zap.NamedError("last", s.lastErr))
}

func (s *search) firstOf(apps []platform.Node) model.ResolvedText {
	for _, app := range apps {
		if v := s.visit(app, 0); s.settle(v) {
			return v.result
		}
	}
	return model.Empty()
}

func (s *search) inWindow(apps []platform.Node, w model.Rect) model.ResolvedText {
	for _, app := range apps {
		if v := s.window(app, w); s.settle(v) {
			return v.result
		}
	}
	return model.Empty()
}

// window searches the top-level frames of app that overlap the window
// rectangle w the most. An application none of whose frames report
// overlapping extents is searched whole.
func (s *search) window(app platform.Node, w model.Rect) branch {
	visible, err := app.Visible()
	if err != nil {
		return s.abandon("visible", err)
	}
	if !visible {
		return branch{}
	}
	children, err := app.Children()
	if err != nil {
		return s.abandon("children", err)
	}

	frames := closestFrames(children, w)
	if len(frames) == 0 {
		s.log.Debug("no frame matches window, searching whole application", zap.Stringer("window", w))
		return s.visit(app, 0)
	}
	for _, f := range frames {
		if v := s.visit(f, 1); s.settle(v) {
			return v
		}
	}
	return branch{}
}

// closestFrames returns the frames with the largest overlap with w.
// Frames without readable extents are ignored.
func closestFrames(frames []platform.Node, w model.Rect) []platform.Node {
	var best []platform.Node
	bestArea := 0
	for _, f := range frames {
		ext, err := f.Extents()
		if err != nil {
			continue
		}
		area := ext.Intersect(w).Area()
		switch {
		case area == 0 || area < bestArea:
		case area > bestArea:
			best, bestArea = []platform.Node{f}, area
		default:
			best = append(best, f)
		}
	}
	return best
}

// visit searches the branch rooted at n. It descends through ChildAtPoint
// one level at a time and falls back to scanning every child of the current
// node when hit-testing fails or leads nowhere.
func (s *search) visit(n platform.Node, depth int) branch {
	if n == nil {
		return branch{}
	}
	if depth > s.maxDepth {
		s.log.Debug("search depth exceeded", zap.Int("depth", depth))
		return branch{}
	}

	visible, err := n.Visible()
	if err != nil {
		return s.abandon("visible", err)
	}
	if !visible {
		return branch{}
	}

	// A node that cannot answer Contains (application roots usually have
	// no geometry) is still searched but never becomes a candidate itself.
	inside, err := n.Contains(s.point)
	known := err == nil
	if known && !inside {
		return branch{}
	}

	child, err := n.ChildAtPoint(s.point)
	switch {
	case err != nil:
		s.settle(s.abandon("child at point", err))
		child = nil
	case child == nil:
		if !known {
			return s.scan(n, depth, nil)
		}
		return s.evaluate(n)
	default:
		if v := s.visit(child, depth+1); s.settle(v) {
			return v
		}
	}

	if v := s.scan(n, depth, child); s.settle(v) {
		return v
	}
	if known {
		return s.evaluate(n)
	}
	return branch{}
}

// scan tries every child of n in order except tried, which has already
// been searched; the first candidate wins.
func (s *search) scan(n platform.Node, depth int, tried platform.Node) branch {
	children, err := n.Children()
	if err != nil {
		return s.abandon("children", err)
	}
	for _, c := range children {
		if sameNode(c, tried) {
			continue
		}
		if v := s.visit(c, depth+1); s.settle(v) {
			return v
		}
	}
	return branch{}
}

// evaluate reads the candidate text of n: its name, or its role as a last
// resort. The text value is deliberately not consulted here.
func (s *search) evaluate(n platform.Node) branch {
	text, err := n.Name()
	if err != nil {
		s.settle(s.abandon("name", err))
		text = ""
	}
	if blank(text) {
		role, err := n.RoleName()
		if err != nil {
			return s.abandon("role", err)
		}
		text = role
	}
	if blank(text) {
		return branch{}
	}

	rect, err := n.Extents()
	if err != nil {
		return s.abandon("extents", err)
	}
	res := model.NewResolvedText(text, rect)
	if res.IsEmpty() {
		return branch{}
	}
	return branch{outcome: found, result: res}
}

// sameNode reports whether a and b are the same handle. Handles of
// non-comparable types are never considered equal.
func sameNode(a, b platform.Node) bool {
	if a == nil || b == nil {
		return false
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb || !ta.Comparable() {
		return false
	}
	return a == b
}

func (s *search) abandon(op string, err error) branch {
	nerr := &NodeError{Op: op, Err: err}
	s.log.Debug("accessibility query failed, branch abandoned", zap.Error(nerr))
	return branch{outcome: failed, err: nerr}
}
