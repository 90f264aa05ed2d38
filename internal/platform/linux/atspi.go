//go:build linux

package linux

import (
	"errors"
	"fmt"
	"sync"

	"github.com/godbus/dbus/v5"
	"github.com/mj1618/grabtext/internal/model"
	"github.com/mj1618/grabtext/internal/platform"
)

const (
	a11yBusName  = "org.a11y.Bus"
	a11yBusPath  = "/org/a11y/bus"
	registryName = "org.a11y.atspi.Registry"
	rootPath     = dbus.ObjectPath("/org/a11y/atspi/accessible/root")
	nullPath     = dbus.ObjectPath("/org/a11y/atspi/null")

	ifaceAccessible = "org.a11y.atspi.Accessible"
	ifaceComponent  = "org.a11y.atspi.Component"
	ifaceText       = "org.a11y.atspi.Text"

	// coordTypeScreen asks for global desktop coordinates.
	coordTypeScreen uint32 = 0
)

// AT-SPI state bits, see atspi-constants.h.
const (
	stateDefunct = 6
	stateShowing = 25
	stateVisible = 30
)

// errNoGeometry is returned by Contains on application roots, which have no
// component interface.
var errNoGeometry = errors.New("application has no geometry")

// Accessibility implements platform.Tree over the AT-SPI bus.
type Accessibility struct {
	conn *dbus.Conn

	mu   sync.Mutex
	pids map[string]int // bus name -> pid
}

// ConnectAccessibility asks the session bus for the address of the
// accessibility bus and connects to it.
func ConnectAccessibility() (*Accessibility, error) {
	session, err := dbus.SessionBus()
	if err != nil {
		return nil, fmt.Errorf("connect to session bus: %w", err)
	}
	var addr string
	err = session.Object(a11yBusName, a11yBusPath).Call(a11yBusName+".GetAddress", 0).Store(&addr)
	if err != nil {
		return nil, fmt.Errorf("locate accessibility bus: %w", err)
	}
	conn, err := dbus.Connect(addr)
	if err != nil {
		return nil, fmt.Errorf("connect to accessibility bus %s: %w", addr, err)
	}
	return &Accessibility{conn: conn, pids: make(map[string]int)}, nil
}

// Close disconnects from the accessibility bus.
func (a *Accessibility) Close() error {
	return a.conn.Close()
}

// Applications returns the registered applications owned by pid, or all of
// them when pid is 0.
func (a *Accessibility) Applications(pid int) ([]platform.Node, error) {
	desktop := node{a: a, name: registryName, path: rootPath, app: true}
	refs, err := desktop.childRefs()
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	a.forgetExcept(refs)
	apps := make([]platform.Node, 0, len(refs))
	for _, ref := range refs {
		if pid != 0 {
			owner, err := a.pidOf(ref.Name)
			if err != nil || owner != pid {
				continue
			}
		}
		apps = append(apps, node{a: a, name: ref.Name, path: ref.Path, app: true})
	}
	return apps, nil
}

func (a *Accessibility) pidOf(name string) (int, error) {
	a.mu.Lock()
	pid, ok := a.pids[name]
	a.mu.Unlock()
	if ok {
		return pid, nil
	}

	var upid uint32
	err := a.conn.BusObject().Call("org.freedesktop.DBus.GetConnectionUnixProcessID", 0, name).Store(&upid)
	if err != nil {
		return 0, err
	}
	a.mu.Lock()
	a.pids[name] = int(upid)
	a.mu.Unlock()
	return int(upid), nil
}

// forgetExcept drops cached pids of bus names that are no longer
// registered. Unique bus names are never reused.
func (a *Accessibility) forgetExcept(live []objRef) {
	names := make(map[string]bool, len(live))
	for _, ref := range live {
		names[ref.Name] = true
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	for name := range a.pids {
		if !names[name] {
			delete(a.pids, name)
		}
	}
}

// objRef is the (so) pair AT-SPI uses to address an accessible.
type objRef struct {
	Name string
	Path dbus.ObjectPath
}

// node implements platform.Node. It is a plain value so that two handles
// to the same accessible compare equal.
type node struct {
	a    *Accessibility
	name string
	path dbus.ObjectPath
	app  bool
}

func (n node) obj() dbus.BusObject {
	return n.a.conn.Object(n.name, n.path)
}

func (n node) Name() (string, error) {
	v, err := n.obj().GetProperty(ifaceAccessible + ".Name")
	if err != nil {
		return "", err
	}
	s, _ := v.Value().(string)
	return s, nil
}

func (n node) TextValue() (string, error) {
	var s string
	err := n.obj().Call(ifaceText+".GetText", 0, int32(0), int32(-1)).Store(&s)
	return s, err
}

func (n node) RoleName() (string, error) {
	var s string
	err := n.obj().Call(ifaceAccessible+".GetRoleName", 0).Store(&s)
	return s, err
}

func (n node) Extents() (model.Rect, error) {
	if n.app {
		return model.Rect{}, errNoGeometry
	}
	var ext struct{ X, Y, Width, Height int32 }
	if err := n.obj().Call(ifaceComponent+".GetExtents", 0, coordTypeScreen).Store(&ext); err != nil {
		return model.Rect{}, err
	}
	return model.NewRect(int(ext.X), int(ext.Y), int(ext.Width), int(ext.Height)), nil
}

// Visible requires VISIBLE and SHOWING on ordinary nodes. Application roots
// carry neither and only need to be alive.
func (n node) Visible() (bool, error) {
	var words []uint32
	if err := n.obj().Call(ifaceAccessible+".GetState", 0).Store(&words); err != nil {
		return false, err
	}
	s := stateSet(words)
	if s.has(stateDefunct) {
		return false, nil
	}
	if n.app {
		return true, nil
	}
	return s.has(stateVisible) && s.has(stateShowing), nil
}

func (n node) Contains(p model.Point) (bool, error) {
	if n.app {
		return false, errNoGeometry
	}
	var inside bool
	err := n.obj().Call(ifaceComponent+".Contains", 0, int32(p.X), int32(p.Y), coordTypeScreen).Store(&inside)
	return inside, err
}

func (n node) ChildAtPoint(p model.Point) (platform.Node, error) {
	if n.app {
		return nil, nil
	}
	var ref objRef
	err := n.obj().Call(ifaceComponent+".GetAccessibleAtPoint", 0, int32(p.X), int32(p.Y), coordTypeScreen).Store(&ref)
	if err != nil {
		return nil, err
	}
	if ref.Path == "" || ref.Path == nullPath || (ref.Name == n.name && ref.Path == n.path) {
		return nil, nil
	}
	return node{a: n.a, name: ref.Name, path: ref.Path}, nil
}

func (n node) Children() ([]platform.Node, error) {
	refs, err := n.childRefs()
	if err != nil {
		return nil, err
	}
	children := make([]platform.Node, 0, len(refs))
	for _, ref := range refs {
		if ref.Path == nullPath {
			continue
		}
		children = append(children, node{a: n.a, name: ref.Name, path: ref.Path})
	}
	return children, nil
}

func (n node) childRefs() ([]objRef, error) {
	var refs []objRef
	err := n.obj().Call(ifaceAccessible+".GetChildren", 0).Store(&refs)
	return refs, err
}

// stateSet is the AT-SPI state bitfield, split over 32-bit words.
type stateSet []uint32

func (s stateSet) has(bit uint) bool {
	word := bit / 32
	if int(word) >= len(s) {
		return false
	}
	return s[word]&(1<<(bit%32)) != 0
}
