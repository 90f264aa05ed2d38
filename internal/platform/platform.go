package platform

import (
	"image"

	"github.com/mj1618/grabtext/internal/model"
)

// CursorLocator reads the current pointer position.
type CursorLocator interface {
	// Locate returns the pointer position in global desktop coordinates.
	// It never fails; (0,0) is returned when the position cannot be read.
	Locate() model.Point
}

// WindowStack reports the window manager's stacking order.
type WindowStack interface {
	// StackingOrder returns on-screen top-level windows back-to-front.
	// It returns an empty slice when the order cannot be queried.
	StackingOrder() []model.WindowHandle

	// OwnerPID returns the process owning a window, if known.
	OwnerPID(h model.WindowHandle) (int, bool)

	// Geometry returns the on-screen frame of a window, if known.
	Geometry(h model.WindowHandle) (model.Rect, bool)

	// Windows returns the windows of StackingOrder with titles attached.
	Windows() []model.Window
}

// Element is a node of the accessibility tree that can be read.
// Every method may fail for a stale or zombie node.
type Element interface {
	Name() (string, error)
	// TextValue returns editable or selectable text content, which some
	// elements expose separately from their accessible name.
	TextValue() (string, error)
	RoleName() (string, error)
	Extents() (model.Rect, error)
	Visible() (bool, error)
}

// Node is an Element that can also be navigated and hit-tested.
type Node interface {
	Element
	Contains(p model.Point) (bool, error)
	// ChildAtPoint returns the direct child whose region contains p,
	// or (nil, nil) when there is none.
	ChildAtPoint(p model.Point) (Node, error)
	Children() ([]Node, error)
}

// Tree enumerates top-level accessible applications.
type Tree interface {
	// Applications returns the applications owned by pid, or all of them
	// when pid is 0.
	Applications(pid int) ([]Node, error)
}

// PointLookup hit-tests a screen point down to the innermost element in a
// single OS call.
type PointLookup interface {
	ElementAtPoint(p model.Point) (Element, error)
}

// Releaser is implemented by elements that hold OS resources.
type Releaser interface {
	Release()
}

// Screenshotter captures a region of the screen.
type Screenshotter interface {
	// CaptureRect returns the pixels of r. The image bounds are in global
	// desktop coordinates.
	CaptureRect(r model.Rect) (image.Image, error)
}

// ClipboardManager reads and writes the system clipboard.
type ClipboardManager interface {
	GetText() (string, error)
	SetText(text string) error
}
