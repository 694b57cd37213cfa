package backend

import "testing"

func TestAcceptHIDDevice(t *testing.T) {
	tests := []struct {
		name      string
		usagePage uint16
		usage     uint16
		path      string
		want      bool
	}{
		{"generic desktop joystick", 0x01, 0x04, "hidraw0", true},
		{"generic desktop gamepad", 0x01, usageGamepad, "hidraw0", true},
		{"generic desktop gamepad, xinput-compat path", 0x01, usageGamepad, `\\?\HID#VID_045E&PID_028E&IG_00#7&abc`, false},
		{"generic desktop mouse", 0x01, usageMouse, "hidraw0", false},
		{"generic desktop keyboard", 0x01, usageKeyboard, "hidraw0", false},
		{"simulation controls", 0x02, 0xBA, "hidraw0", true},
		{"physical interface device", 0x0F, 0x01, "hidraw0", true},
		{"vendor defined", 0xFF00, 0x01, "hidraw0", true},
		{"vendor defined high byte", 0xFF01, 0x01, "hidraw0", true},
		{"unrelated page", 0x0C, 0x01, "hidraw0", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := acceptHIDDevice(tt.usagePage, tt.usage, tt.path); got != tt.want {
				t.Errorf("acceptHIDDevice(%#x, %#x, %q) = %v, want %v", tt.usagePage, tt.usage, tt.path, got, tt.want)
			}
		})
	}
}

func TestXInputSlotFingerprint(t *testing.T) {
	for slot := 0; slot < 4; slot++ {
		vid, pid, serial, path := xinputSlotFingerprint(slot)
		if vid != 0x045e || pid != 0x0000 {
			t.Errorf("slot %d: unexpected vid:pid %#04x:%#04x", slot, vid, pid)
		}
		wantSerial := "xinput:" + string(rune('0'+slot))
		if serial != wantSerial || path != wantSerial {
			t.Errorf("slot %d: got serial=%q path=%q, want %q", slot, serial, path, wantSerial)
		}
	}
}
