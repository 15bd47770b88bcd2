//go:build windows

package display

// Windows display enumeration via EnumDisplayMonitors. The HMONITOR handle is
// used as the display id; it is stable for a given monitor across a run.

import (
	"fmt"
	"image"
	"sync"
	"syscall"
	"unsafe"
)

var (
	user32                  = syscall.NewLazyDLL("user32.dll")
	procEnumDisplayMonitors = user32.NewProc("EnumDisplayMonitors")
	procGetMonitorInfoW     = user32.NewProc("GetMonitorInfoW")
)

const monitorInfoPrimary = 0x1

type winRect struct {
	Left, Top, Right, Bottom int32
}

// MONITORINFOEXW layout.
type monitorInfoEx struct {
	CbSize  uint32
	Monitor winRect
	Work    winRect
	Flags   uint32
	Device  [32]uint16
}

// NewCallback may only be created a bounded number of times per process, so a
// single package-level callback appends into a shared slice under enumMu.
var (
	enumMu  sync.Mutex
	enumOut []Descriptor
	enumCB  = syscall.NewCallback(appendMonitor)
)

func appendMonitor(hMonitor, hdc, lprcMonitor, lparam uintptr) uintptr {
	var mi monitorInfoEx
	mi.CbSize = uint32(unsafe.Sizeof(mi))
	ok, _, _ := procGetMonitorInfoW.Call(hMonitor, uintptr(unsafe.Pointer(&mi)))
	if ok == 0 {
		return 1 // skip this monitor, keep enumerating
	}
	enumOut = append(enumOut, Descriptor{
		ID:      int64(hMonitor),
		Name:    syscall.UTF16ToString(mi.Device[:]),
		Primary: mi.Flags&monitorInfoPrimary != 0,
		Bounds: image.Rect(
			int(mi.Monitor.Left), int(mi.Monitor.Top),
			int(mi.Monitor.Right), int(mi.Monitor.Bottom),
		),
	})
	return 1
}

type systemEnumerator struct{}

func defaultEnumerator() Enumerator { return systemEnumerator{} }

func (systemEnumerator) Displays() ([]Descriptor, error) {
	enumMu.Lock()
	defer enumMu.Unlock()
	enumOut = nil
	ok, _, _ := procEnumDisplayMonitors.Call(0, 0, enumCB, 0)
	if ok == 0 {
		return nil, fmt.Errorf("display: EnumDisplayMonitors failed")
	}
	out := make([]Descriptor, len(enumOut))
	copy(out, enumOut)
	enumOut = nil
	return out, nil
}
