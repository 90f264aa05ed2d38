package model

// WindowHandle is an opaque platform window identifier
// (an X11 window ID or a Win32 HWND).
type WindowHandle uint64

// Window describes a top-level window as seen by the window manager.
type Window struct {
	Handle WindowHandle `yaml:"handle"          json:"handle"`
	PID    int          `yaml:"pid,omitempty"   json:"pid,omitempty"` // 0 when the owner process is unknown
	Title  string       `yaml:"title,omitempty" json:"title,omitempty"`
}

// StackOrder is a front-to-back sequence of windows.
type StackOrder []WindowHandle

// FrontToBack reverses a back-to-front list as reported by the OS.
func FrontToBack(backToFront []WindowHandle) StackOrder {
	order := make(StackOrder, len(backToFront))
	for i, h := range backToFront {
		order[len(backToFront)-1-i] = h
	}
	return order
}
