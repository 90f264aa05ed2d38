//go:build linux

package linux

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/xwindow"
	"github.com/mj1618/grabtext/internal/model"
)

// Display implements platform.CursorLocator, platform.WindowStack and
// platform.Screenshotter on top of an X11 connection.
type Display struct {
	XUtil *xgbutil.XUtil
	Root  xproto.Window
}

// OpenDisplay connects to the X server named by $DISPLAY.
func OpenDisplay() (*Display, error) {
	xu, err := xgbutil.NewConn()
	if err != nil {
		return nil, fmt.Errorf("connect to X11: %w", err)
	}
	return &Display{XUtil: xu, Root: xu.RootWin()}, nil
}

// Close disconnects from the X server.
func (d *Display) Close() error {
	d.XUtil.Conn().Close()
	return nil
}

// Locate returns the pointer position relative to the root window.
func (d *Display) Locate() model.Point {
	reply, err := xproto.QueryPointer(d.XUtil.Conn(), d.Root).Reply()
	if err != nil {
		return model.Point{}
	}
	return model.Point{X: int(reply.RootX), Y: int(reply.RootY)}
}

// StackingOrder returns the managed client windows bottom-most first, as
// published in _NET_CLIENT_LIST_STACKING. Minimized windows are left out.
func (d *Display) StackingOrder() []model.WindowHandle {
	clients, err := ewmh.ClientListStackingGet(d.XUtil)
	if err != nil {
		return nil
	}
	order := make([]model.WindowHandle, 0, len(clients))
	for _, win := range clients {
		if d.hidden(win) {
			continue
		}
		order = append(order, model.WindowHandle(win))
	}
	return order
}

// OwnerPID reads _NET_WM_PID. Windows of remote X clients usually do not
// set it.
func (d *Display) OwnerPID(h model.WindowHandle) (int, bool) {
	pid, err := ewmh.WmPidGet(d.XUtil, xproto.Window(h))
	if err != nil || pid == 0 {
		return 0, false
	}
	return int(pid), true
}

// Geometry returns the window's frame in root coordinates, window manager
// decorations included.
func (d *Display) Geometry(h model.WindowHandle) (model.Rect, bool) {
	geom, err := xwindow.New(d.XUtil, xproto.Window(h)).DecorGeometry()
	if err != nil {
		return model.Rect{}, false
	}
	r := model.NewRect(geom.X(), geom.Y(), geom.Width(), geom.Height())
	return r, !r.IsZero()
}

// Windows returns the stacking order with owners and titles attached.
func (d *Display) Windows() []model.Window {
	order := d.StackingOrder()
	windows := make([]model.Window, 0, len(order))
	for _, h := range order {
		pid, _ := d.OwnerPID(h)
		windows = append(windows, model.Window{
			Handle: h,
			PID:    pid,
			Title:  d.title(xproto.Window(h)),
		})
	}
	return windows
}

func (d *Display) hidden(win xproto.Window) bool {
	states, err := ewmh.WmStateGet(d.XUtil, win)
	if err != nil {
		return false
	}
	for _, state := range states {
		if state == "_NET_WM_STATE_HIDDEN" {
			return true
		}
	}
	return false
}

func (d *Display) title(win xproto.Window) string {
	if title, err := ewmh.WmNameGet(d.XUtil, win); err == nil {
		if title = strings.TrimSpace(title); title != "" {
			return title
		}
	}
	if title, err := icccm.WmNameGet(d.XUtil, win); err == nil {
		return strings.TrimSpace(title)
	}
	return ""
}

// CaptureRect reads r from the root window. Only 24 and 32 bit TrueColor
// visuals are supported, which covers every current X server.
func (d *Display) CaptureRect(r model.Rect) (image.Image, error) {
	bounds := image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height).Intersect(d.screenBounds())
	if bounds.Empty() {
		return nil, fmt.Errorf("capture %v: region is off screen", r)
	}

	reply, err := xproto.GetImage(d.XUtil.Conn(), xproto.ImageFormatZPixmap,
		xproto.Drawable(d.Root),
		int16(bounds.Min.X), int16(bounds.Min.Y),
		uint16(bounds.Dx()), uint16(bounds.Dy()),
		0xffffffff).Reply()
	if err != nil {
		return nil, fmt.Errorf("capture %v: %w", r, err)
	}
	if reply.Depth != 24 && reply.Depth != 32 {
		return nil, fmt.Errorf("capture %v: unsupported depth %d", r, reply.Depth)
	}
	return bgrxToRGBA(reply.Data, bounds)
}

func (d *Display) screenBounds() image.Rectangle {
	screen := d.XUtil.Screen()
	return image.Rect(0, 0, int(screen.WidthInPixels), int(screen.HeightInPixels))
}

// bgrxToRGBA converts a ZPixmap reply with 4 bytes per pixel in B,G,R,x
// order into an RGBA image positioned at bounds.
func bgrxToRGBA(data []byte, bounds image.Rectangle) (*image.RGBA, error) {
	want := bounds.Dx() * bounds.Dy() * 4
	if len(data) < want {
		return nil, fmt.Errorf("short image data: got %d bytes, want %d", len(data), want)
	}
	img := image.NewRGBA(bounds)
	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			img.SetRGBA(x, y, color.RGBA{R: data[i+2], G: data[i+1], B: data[i], A: 0xff})
			i += 4
		}
	}
	return img, nil
}
