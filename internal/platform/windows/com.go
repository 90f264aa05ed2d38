//go:build windows && (amd64 || arm64)

package windows

import (
	"fmt"
	"runtime"
	"syscall"
	"unsafe"

	"github.com/go-ole/go-ole"
)

// comThread runs every COM call on one locked OS thread.
type comThread struct {
	calls chan func()
}

func startCOM() (*comThread, error) {
	t := &comThread{calls: make(chan func())}
	ready := make(chan error, 1)
	go t.loop(ready)
	if err := <-ready; err != nil {
		return nil, err
	}
	return t, nil
}

func (t *comThread) loop(ready chan<- error) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if err := ole.CoInitializeEx(0, ole.COINIT_MULTITHREADED); err != nil {
		ready <- fmt.Errorf("CoInitializeEx: %w", err)
		return
	}
	defer ole.CoUninitialize()
	ready <- nil

	for f := range t.calls {
		f()
	}
}

// do runs f on the COM thread and waits for it. A panic in f is returned
// as an error so the thread survives.
func (t *comThread) do(f func() error) error {
	errc := make(chan error, 1)
	t.calls <- func() {
		defer func() {
			if r := recover(); r != nil {
				errc <- fmt.Errorf("com call panicked: %v", r)
			}
		}()
		errc <- f()
	}
	return <-errc
}

func (t *comThread) stop() {
	close(t.calls)
}

// vcall invokes method idx of the COM object obj.
func vcall(obj unsafe.Pointer, idx int, args ...uintptr) error {
	vtbl := *(*uintptr)(obj)
	fn := *(*uintptr)(unsafe.Pointer(vtbl + uintptr(idx)*unsafe.Sizeof(uintptr(0))))
	hr, _, _ := syscall.SyscallN(fn, append([]uintptr{uintptr(obj)}, args...)...)
	if int32(hr) < 0 {
		return ole.NewError(hr)
	}
	return nil
}

func release(obj unsafe.Pointer) {
	if obj != nil {
		(*ole.IUnknown)(obj).Release()
	}
}

// bstrProp reads a BSTR-valued property getter.
func bstrProp(obj unsafe.Pointer, idx int) (string, error) {
	var bstr *uint16
	if err := vcall(obj, idx, uintptr(unsafe.Pointer(&bstr))); err != nil {
		return "", err
	}
	if bstr == nil {
		return "", nil
	}
	defer ole.SysFreeString((*int16)(unsafe.Pointer(bstr)))
	return ole.BstrToString(bstr), nil
}
