package manager

import "encoding/binary"

// Raw Input record layout, as delivered by Windows' GetRawInputData for
// RID_INPUT: a 24-byte RAWINPUTHEADER (on 64-bit) followed by a
// RAWMOUSE or RAWKEYBOARD union member, decoded here by fixed offset
// rather than through cgo or unsafe struct overlay, so the same decoder
// is exercised from tests without a Windows build.
const (
	rawInputHeaderSize = 24

	rimTypeMouse    = 0
	rimTypeKeyboard = 1

	riKeyBreak = 0x0001
	riKeyE0    = 0x0002

	riMouseLeftDown   = 0x0001
	riMouseLeftUp     = 0x0002
	riMouseRightDown  = 0x0004
	riMouseRightUp    = 0x0008
	riMouseMiddleDown = 0x0010
	riMouseMiddleUp   = 0x0020
	riMouseButton4Down = 0x0040
	riMouseButton4Up   = 0x0080
	riMouseButton5Down = 0x0100
	riMouseButton5Up   = 0x0200
	riMouseWheel      = 0x0400
	riMouseHWheel     = 0x0800
)

// HandleRawInputBytes decodes one Raw Input record already extracted by
// the host (e.g. via GetRawInputData) and injects the resulting packet.
// Malformed or truncated records are dropped silently, per the injected-
// input error policy.
func (m *Manager) HandleRawInputBytes(b []byte) error {
	if len(b) < rawInputHeaderSize {
		return nil
	}
	dwType := binary.LittleEndian.Uint32(b[0:4])
	handle := uintptr(binary.LittleEndian.Uint64(b[8:16]))
	body := b[rawInputHeaderSize:]

	switch dwType {
	case rimTypeKeyboard:
		if len(body) < 16 {
			return nil
		}
		makeCode := binary.LittleEndian.Uint16(body[0:2])
		flags := binary.LittleEndian.Uint16(body[2:4])
		m.InjectKeyboardPacket(RawKeyboardPacket{
			Handle:   handle,
			Scancode: makeCode,
			Extended: flags&riKeyE0 != 0,
			Pressed:  flags&riKeyBreak == 0,
		})
	case rimTypeMouse:
		if len(body) < 20 {
			return nil
		}
		buttonFlags := binary.LittleEndian.Uint16(body[4:6])
		buttonData := int16(binary.LittleEndian.Uint16(body[6:8]))
		lastX := int32(binary.LittleEndian.Uint32(body[12:16]))
		lastY := int32(binary.LittleEndian.Uint32(body[16:20]))

		pkt := RawMousePacket{Handle: handle, DX: lastX, DY: lastY}
		if buttonFlags&(riMouseWheel|riMouseHWheel) != 0 {
			pkt.WheelDelta = buttonData
			pkt.HWheel = buttonFlags&riMouseHWheel != 0
		}
		pkt.ButtonDown[0] = buttonFlags&riMouseLeftDown != 0
		pkt.ButtonUp[0] = buttonFlags&riMouseLeftUp != 0
		pkt.ButtonDown[1] = buttonFlags&riMouseRightDown != 0
		pkt.ButtonUp[1] = buttonFlags&riMouseRightUp != 0
		pkt.ButtonDown[2] = buttonFlags&riMouseMiddleDown != 0
		pkt.ButtonUp[2] = buttonFlags&riMouseMiddleUp != 0
		pkt.ButtonDown[3] = buttonFlags&riMouseButton4Down != 0
		pkt.ButtonUp[3] = buttonFlags&riMouseButton4Up != 0
		pkt.ButtonDown[4] = buttonFlags&riMouseButton5Down != 0
		pkt.ButtonUp[4] = buttonFlags&riMouseButton5Up != 0
		m.InjectMousePacket(pkt)
	}
	return nil
}
