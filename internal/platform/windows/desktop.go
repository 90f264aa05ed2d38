//go:build windows && (amd64 || arm64)

package windows

import (
	"strings"
	"sync"
	"unsafe"

	"github.com/mj1618/grabtext/internal/model"
	"golang.org/x/sys/windows"
)

var (
	user32             = windows.NewLazySystemDLL("user32.dll")
	procGetCursorPos   = user32.NewProc("GetCursorPos")
	procGetWindowTextW = user32.NewProc("GetWindowTextW")
	procGetWindowRect  = user32.NewProc("GetWindowRect")
)

var (
	enumOnce     sync.Once
	enumCallback uintptr
)

// collectWindow appends each enumerated handle to the slice passed as the
// EnumWindows parameter.
func collectWindow(hwnd windows.HWND, param uintptr) uintptr {
	list := (*[]windows.HWND)(unsafe.Pointer(param))
	*list = append(*list, hwnd)
	return 1
}

// Desktop implements platform.CursorLocator and platform.WindowStack.
type Desktop struct{}

// NewDesktop returns a new Desktop instance.
func NewDesktop() *Desktop {
	return &Desktop{}
}

// Locate returns the cursor position in virtual-screen coordinates.
func (d *Desktop) Locate() model.Point {
	var pt struct{ X, Y int32 }
	if err := procGetCursorPos.Find(); err != nil {
		return model.Point{}
	}
	ok, _, _ := procGetCursorPos.Call(uintptr(unsafe.Pointer(&pt)))
	if ok == 0 {
		return model.Point{}
	}
	return model.Point{X: int(pt.X), Y: int(pt.Y)}
}

// StackingOrder returns visible top-level windows bottom-most first.
// EnumWindows reports them in Z order from the top.
func (d *Desktop) StackingOrder() []model.WindowHandle {
	enumOnce.Do(func() { enumCallback = windows.NewCallback(collectWindow) })

	var hwnds []windows.HWND
	if err := windows.EnumWindows(enumCallback, unsafe.Pointer(&hwnds)); err != nil && len(hwnds) == 0 {
		return nil
	}
	order := make([]model.WindowHandle, 0, len(hwnds))
	for i := len(hwnds) - 1; i >= 0; i-- {
		if !windows.IsWindowVisible(hwnds[i]) {
			continue
		}
		order = append(order, model.WindowHandle(hwnds[i]))
	}
	return order
}

// OwnerPID returns the process that created the window.
func (d *Desktop) OwnerPID(h model.WindowHandle) (int, bool) {
	var pid uint32
	if _, err := windows.GetWindowThreadProcessId(windows.HWND(h), &pid); err != nil || pid == 0 {
		return 0, false
	}
	return int(pid), true
}

// Geometry returns the window rectangle in virtual-screen coordinates.
func (d *Desktop) Geometry(h model.WindowHandle) (model.Rect, bool) {
	var rc struct{ Left, Top, Right, Bottom int32 }
	if err := procGetWindowRect.Find(); err != nil {
		return model.Rect{}, false
	}
	ok, _, _ := procGetWindowRect.Call(uintptr(h), uintptr(unsafe.Pointer(&rc)))
	if ok == 0 {
		return model.Rect{}, false
	}
	r := model.RectFromEdges(int(rc.Left), int(rc.Top), int(rc.Right), int(rc.Bottom))
	return r, !r.IsZero()
}

// Windows returns the stacking order with owners and titles attached.
func (d *Desktop) Windows() []model.Window {
	order := d.StackingOrder()
	out := make([]model.Window, 0, len(order))
	for _, h := range order {
		pid, _ := d.OwnerPID(h)
		out = append(out, model.Window{Handle: h, PID: pid, Title: windowTitle(windows.HWND(h))})
	}
	return out
}

func windowTitle(hwnd windows.HWND) string {
	buf := make([]uint16, 512)
	n, _, _ := procGetWindowTextW.Call(uintptr(hwnd), uintptr(unsafe.Pointer(&buf[0])), uintptr(len(buf)))
	if n == 0 {
		return ""
	}
	return strings.TrimSpace(windows.UTF16ToString(buf[:n]))
}
