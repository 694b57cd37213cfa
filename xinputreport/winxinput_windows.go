//go:build windows

package xinputreport

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

const errorDeviceNotConnected = 1167

var (
	modxinput = windows.NewLazySystemDLL("xinput1_4.dll")

	procXInputGetState = modxinput.NewProc("XInputGetState")
)

type xinputGamepad struct {
	Buttons      uint16
	LeftTrigger  byte
	RightTrigger byte
	ThumbLX      int16
	ThumbLY      int16
	ThumbRX      int16
	ThumbRY      int16
}

type xinputState struct {
	PacketNumber uint32
	Gamepad      xinputGamepad
}

const (
	xinputGamepadDPadUp        = 0x0001
	xinputGamepadDPadDown      = 0x0002
	xinputGamepadDPadLeft      = 0x0004
	xinputGamepadDPadRight     = 0x0008
	xinputGamepadStart         = 0x0010
	xinputGamepadBack          = 0x0020
	xinputGamepadLeftThumb     = 0x0040
	xinputGamepadRightThumb    = 0x0080
	xinputGamepadLeftShoulder  = 0x0100
	xinputGamepadRightShoulder = 0x0200
	xinputGamepadA             = 0x1000
	xinputGamepadB             = 0x2000
	xinputGamepadX             = 0x4000
	xinputGamepadY             = 0x8000
)

// PollSlot queries one XInput controller slot (0..3) and returns its
// decoded State. A disconnected slot returns State{Connected: false}, nil.
func PollSlot(slot int) (State, error) {
	var raw xinputState
	r, _, _ := procXInputGetState.Call(uintptr(slot), uintptr(unsafe.Pointer(&raw)))
	if r == errorDeviceNotConnected {
		return State{Connected: false}, nil
	}
	if r != 0 {
		return State{}, &xinputError{code: uint32(r)}
	}

	g := raw.Gamepad
	return State{
		Connected:    true,
		ThumbLX:      g.ThumbLX,
		ThumbLY:      g.ThumbLY,
		ThumbRX:      g.ThumbRX,
		ThumbRY:      g.ThumbRY,
		LeftTrigger:  g.LeftTrigger,
		RightTrigger: g.RightTrigger,
		DPadUp:       g.Buttons&xinputGamepadDPadUp != 0,
		DPadDown:     g.Buttons&xinputGamepadDPadDown != 0,
		DPadLeft:     g.Buttons&xinputGamepadDPadLeft != 0,
		DPadRight:    g.Buttons&xinputGamepadDPadRight != 0,
		A:            g.Buttons&xinputGamepadA != 0,
		B:            g.Buttons&xinputGamepadB != 0,
		X:            g.Buttons&xinputGamepadX != 0,
		Y:            g.Buttons&xinputGamepadY != 0,
		LB:           g.Buttons&xinputGamepadLeftShoulder != 0,
		RB:           g.Buttons&xinputGamepadRightShoulder != 0,
		Back:         g.Buttons&xinputGamepadBack != 0,
		Start:        g.Buttons&xinputGamepadStart != 0,
		LThumb:       g.Buttons&xinputGamepadLeftThumb != 0,
		RThumb:       g.Buttons&xinputGamepadRightThumb != 0,
	}, nil
}

type xinputError struct {
	code uint32
}

func (e *xinputError) Error() string {
	return "XInputGetState failed"
}
