//go:build windows && (amd64 || arm64)

package windows

import (
	"fmt"
	"unsafe"

	"github.com/go-ole/go-ole"
	"github.com/mj1618/grabtext/internal/model"
	"github.com/mj1618/grabtext/internal/platform"
)

var (
	clsidCUIAutomation           = ole.NewGUID("{FF48DBA4-60EF-4201-AA87-54103EEF594E}")
	iidIUIAutomation             = ole.NewGUID("{30CBE57D-D9D0-452A-AB13-7AC5AC4825EE}")
	iidIUIAutomationValuePattern = ole.NewGUID("{A94CD8B1-0844-4CD6-9D2D-640537AB39E9}")
)

const uiaValuePatternID = 10002

// IUIAutomation vtable slots.
const automationElementFromPoint = 7

// IUIAutomationElement vtable slots.
const (
	elementGetCurrentPatternAs         = 14
	elementCurrentLocalizedControlType = 22
	elementCurrentName                 = 23
	elementCurrentIsOffscreen          = 38
	elementCurrentBoundingRectangle    = 43
)

// IUIAutomationValuePattern vtable slots.
const valuePatternCurrentValue = 4

// Automation implements platform.PointLookup with UI Automation.
type Automation struct {
	com *comThread
	uia *ole.IUnknown
}

// NewAutomation creates the CUIAutomation object on a dedicated COM thread.
func NewAutomation() (*Automation, error) {
	com, err := startCOM()
	if err != nil {
		return nil, err
	}
	a := &Automation{com: com}
	err = com.do(func() error {
		unk, err := ole.CreateInstance(clsidCUIAutomation, iidIUIAutomation)
		if err != nil {
			return fmt.Errorf("create CUIAutomation: %w", err)
		}
		a.uia = unk
		return nil
	})
	if err != nil {
		com.stop()
		return nil, err
	}
	return a, nil
}

// Close releases the automation object and stops the COM thread.
func (a *Automation) Close() error {
	err := a.com.do(func() error {
		release(unsafe.Pointer(a.uia))
		return nil
	})
	a.com.stop()
	return err
}

// ElementAtPoint hit-tests p down to the innermost element.
func (a *Automation) ElementAtPoint(p model.Point) (platform.Element, error) {
	var elem unsafe.Pointer
	err := a.com.do(func() error {
		pt := uintptr(uint32(int32(p.X))) | uintptr(uint32(int32(p.Y)))<<32
		return vcall(unsafe.Pointer(a.uia), automationElementFromPoint, pt, uintptr(unsafe.Pointer(&elem)))
	})
	if err != nil {
		return nil, fmt.Errorf("element from point %v: %w", p, err)
	}
	if elem == nil {
		return nil, nil
	}
	return &element{com: a.com, ptr: elem}, nil
}

// element wraps an IUIAutomationElement. It must be released.
type element struct {
	com *comThread
	ptr unsafe.Pointer
}

func (e *element) Name() (string, error) {
	var s string
	err := e.com.do(func() (err error) {
		s, err = bstrProp(e.ptr, elementCurrentName)
		return err
	})
	return s, err
}

// TextValue reads the value pattern. Elements without one have no text
// value and return "".
func (e *element) TextValue() (string, error) {
	var s string
	err := e.com.do(func() error {
		var pattern unsafe.Pointer
		err := vcall(e.ptr, elementGetCurrentPatternAs,
			uintptr(uiaValuePatternID),
			uintptr(unsafe.Pointer(iidIUIAutomationValuePattern)),
			uintptr(unsafe.Pointer(&pattern)))
		if err != nil || pattern == nil {
			return err
		}
		defer release(pattern)
		s, err = bstrProp(pattern, valuePatternCurrentValue)
		return err
	})
	return s, err
}

func (e *element) RoleName() (string, error) {
	var s string
	err := e.com.do(func() (err error) {
		s, err = bstrProp(e.ptr, elementCurrentLocalizedControlType)
		return err
	})
	return s, err
}

func (e *element) Extents() (model.Rect, error) {
	var r struct{ Left, Top, Right, Bottom int32 }
	err := e.com.do(func() error {
		return vcall(e.ptr, elementCurrentBoundingRectangle, uintptr(unsafe.Pointer(&r)))
	})
	if err != nil {
		return model.Rect{}, err
	}
	return model.RectFromEdges(int(r.Left), int(r.Top), int(r.Right), int(r.Bottom)), nil
}

func (e *element) Visible() (bool, error) {
	var offscreen int32
	err := e.com.do(func() error {
		return vcall(e.ptr, elementCurrentIsOffscreen, uintptr(unsafe.Pointer(&offscreen)))
	})
	return offscreen == 0, err
}

func (e *element) Release() {
	if e.ptr == nil {
		return
	}
	ptr := e.ptr
	e.ptr = nil
	_ = e.com.do(func() error {
		release(ptr)
		return nil
	})
}
