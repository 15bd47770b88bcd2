//go:build windows

package source

// Windows window enumeration via EnumWindows. The HWND is used as the source
// id. Only visible, titled, top-level windows are reported; size and
// self-ownership filtering is the catalog's policy, not the backend's.

import (
	"context"
	"fmt"
	"image"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	user32                       = windows.NewLazySystemDLL("user32.dll")
	procEnumWindows              = user32.NewProc("EnumWindows")
	procIsWindowVisible          = user32.NewProc("IsWindowVisible")
	procGetWindowTextW           = user32.NewProc("GetWindowTextW")
	procGetWindowRect            = user32.NewProc("GetWindowRect")
	procGetWindowThreadProcessId = user32.NewProc("GetWindowThreadProcessId")
)

type winRect struct {
	Left, Top, Right, Bottom int32
}

// Single package-level callback shared across enumerations; see the display
// package for the NewCallback constraint.
var (
	enumMu  sync.Mutex
	enumOut []Source
	enumCB  = syscall.NewCallback(appendWindow)
)

func appendWindow(hwnd, lparam uintptr) uintptr {
	if visible, _, _ := procIsWindowVisible.Call(hwnd); visible == 0 {
		return 1
	}

	var title [256]uint16
	n, _, _ := procGetWindowTextW.Call(hwnd, uintptr(unsafe.Pointer(&title[0])), uintptr(len(title)))
	if n == 0 {
		return 1 // untitled windows are not offered as capture candidates
	}

	var r winRect
	if ok, _, _ := procGetWindowRect.Call(hwnd, uintptr(unsafe.Pointer(&r))); ok == 0 {
		return 1
	}

	var pid uint32
	procGetWindowThreadProcessId.Call(hwnd, uintptr(unsafe.Pointer(&pid)))

	enumOut = append(enumOut, Source{
		ID:       int64(hwnd),
		Title:    syscall.UTF16ToString(title[:n]),
		AppName:  processName(pid),
		OwnerPID: int(pid),
		Bounds:   image.Rect(int(r.Left), int(r.Top), int(r.Right), int(r.Bottom)),
	})
	return 1
}

// processName resolves the owning application's name from its pid. Failures
// degrade to an empty name rather than dropping the window.
func processName(pid uint32) string {
	h, err := windows.OpenProcess(windows.PROCESS_QUERY_LIMITED_INFORMATION, false, pid)
	if err != nil {
		return ""
	}
	defer windows.CloseHandle(h)
	var buf [windows.MAX_PATH]uint16
	size := uint32(len(buf))
	if err := windows.QueryFullProcessImageName(h, 0, &buf[0], &size); err != nil {
		return ""
	}
	name := filepath.Base(windows.UTF16ToString(buf[:size]))
	return strings.TrimSuffix(name, ".exe")
}

type systemLister struct{}

func defaultLister() Lister { return systemLister{} }

func (systemLister) Sources(ctx context.Context) ([]Source, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	enumMu.Lock()
	defer enumMu.Unlock()
	enumOut = nil
	ok, _, _ := procEnumWindows.Call(enumCB, 0)
	if ok == 0 {
		return nil, fmt.Errorf("source: EnumWindows failed")
	}
	out := make([]Source, len(enumOut))
	copy(out, enumOut)
	enumOut = nil
	return out, nil
}
