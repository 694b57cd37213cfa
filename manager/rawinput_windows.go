//go:build windows

package manager

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	moduser32           = windows.NewLazySystemDLL("user32.dll")
	procGetRawInputData = moduser32.NewProc("GetRawInputData")
)

const (
	ridInput    = 0x10000003
	ribInput    = 0x10000003
	rawInputHID = 0
)

// HandleWMInput handles a WM_INPUT message's lParam: it fetches the raw
// input record via GetRawInputData and injects the decoded packet.
func (m *Manager) HandleWMInput(lParam uintptr) error {
	var size uint32
	procGetRawInputData.Call(
		lParam,
		uintptr(ridInput),
		0,
		uintptr(unsafe.Pointer(&size)),
		uintptr(rawInputHeaderSize),
	)
	if size == 0 {
		return nil
	}

	buf := make([]byte, size)
	headerSize := uint32(rawInputHeaderSize)
	got, _, _ := procGetRawInputData.Call(
		lParam,
		uintptr(ridInput),
		uintptr(unsafe.Pointer(&buf[0])),
		uintptr(unsafe.Pointer(&size)),
		uintptr(headerSize),
	)
	if int32(got) <= 0 {
		return nil
	}
	return m.HandleRawInputBytes(buf)
}
