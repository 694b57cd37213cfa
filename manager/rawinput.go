package manager

import (
	"fmt"

	"github.com/ardnew/stickup/model"
)

// RawKeyboardPacket is one decoded Raw Input keyboard record.
type RawKeyboardPacket struct {
	Handle    uintptr
	Scancode  uint16
	Extended  bool
	Pressed   bool
}

// RawMousePacket is one decoded Raw Input mouse record.
type RawMousePacket struct {
	Handle     uintptr
	DX, DY     int32
	WheelDelta int16
	HWheel     bool // true if WheelDelta is a horizontal-wheel tick
	ButtonDown [5]bool
	ButtonUp   [5]bool
}

// mouse channel layout, fixed at registration.
var mouseAxisNames = []string{"dx", "dy", "wheel", "hwheel"}
var mouseButtonNames = []string{"L", "R", "M", "X1", "X2"}

// virtualDevice backs a raw-input-registered id: it has no OS handle and
// no real Poll; its state changes only through injected events.
type virtualDevice struct {
	id    string
	name  string
	meta  model.Meta
	descs []model.ChannelDesc
}

func (v *virtualDevice) Poll() ([]model.Event, error)      { return nil, nil }
func (v *virtualDevice) Name() string                      { return v.name }
func (v *virtualDevice) ID() string                        { return v.id }
func (v *virtualDevice) Metadata() model.Meta               { return v.meta }
func (v *virtualDevice) Describe() []model.ChannelDesc      { return v.descs }
func (v *virtualDevice) Close() error                       { return nil }

func rawKeyboardID(handle uintptr) string {
	if handle == 0 {
		return "rawkbd:0"
	}
	return fmt.Sprintf("rawkbd:%x", handle)
}

func rawMouseID(handle uintptr) string {
	if handle == 0 {
		return "rawmouse:0"
	}
	return fmt.Sprintf("rawmouse:%x", handle)
}

// packKeyIndex packs a scancode and its E0/E1 extended flag into one
// channel index: scancode in bits 0..14, extended in bit 15.
func packKeyIndex(scancode uint16, extended bool) uint16 {
	idx := scancode & 0x7FFF
	if extended {
		idx |= 0x8000
	}
	return idx
}

func (m *Manager) ensureRawDevice(id, name string, bus model.Bus) *deviceEntry {
	if e, ok := m.entries[id]; ok {
		return e
	}
	vdev := &virtualDevice{id: id, name: name, meta: model.Meta{Bus: bus, Interface: -1}}
	entry := newDeviceEntry(vdev)
	m.order = append(m.order, id)
	m.entries[id] = entry
	m.states[id] = model.NewDeviceState()
	return entry
}

// ensureKeyChannel lazily adds a button channel for a newly observed key
// index, seeding its label and neutral state if this is the first time
// the key has been seen on this device.
func ensureKeyChannel(e *deviceEntry, st model.DeviceState, idx uint16) string {
	if label, ok := e.buttonLabel[idx]; ok {
		return label
	}
	label := fmt.Sprintf("key_%04x", idx)
	e.buttonLabel[idx] = label
	e.descs = append(e.descs, model.ChannelDesc{Kind: model.ChannelButton, Idx: idx, Name: label})
	if _, ok := st.Buttons[label]; !ok {
		st.Buttons[label] = false
	}
	return label
}

func ensureMouseChannels(e *deviceEntry, st model.DeviceState) {
	if len(e.descs) > 0 {
		return
	}
	for i, name := range mouseAxisNames {
		e.axisLabel[uint16(i)] = name
		e.descs = append(e.descs, model.ChannelDesc{Kind: model.ChannelAxis, Idx: uint16(i), Name: name})
		st.Axes[name] = 0
	}
	for i, name := range mouseButtonNames {
		e.buttonLabel[uint16(i)] = name
		e.descs = append(e.descs, model.ChannelDesc{Kind: model.ChannelButton, Idx: uint16(i), Name: name})
		st.Buttons[name] = false
	}
}

// InjectKeyboardPacket enqueues a Pressed/Released event for pkt's key,
// registering its device lazily on first sight.
func (m *Manager) InjectKeyboardPacket(pkt RawKeyboardPacket) {
	id := rawKeyboardID(pkt.Handle)
	entry := m.ensureRawDevice(id, id, model.BusRawInput)
	st := m.states[id]

	idx := packKeyIndex(pkt.Scancode, pkt.Extended)
	ensureKeyChannel(entry, st, idx)

	var ev model.Event
	if pkt.Pressed {
		ev = model.ButtonPressed(idx)
	} else {
		ev = model.ButtonReleased(idx)
	}
	m.injected = append(m.injected, IDEvent{ID: id, Event: ev})
}

// InjectMousePacket enqueues axis events for non-zero deltas/wheel ticks
// and button edges for pkt's flag bits, registering its device lazily on
// first sight with the fixed mouse channel shape.
func (m *Manager) InjectMousePacket(pkt RawMousePacket) {
	id := rawMouseID(pkt.Handle)
	entry := m.ensureRawDevice(id, id, model.BusRawInput)
	st := m.states[id]
	ensureMouseChannels(entry, st)

	if pkt.DX != 0 {
		m.injected = append(m.injected, IDEvent{ID: id, Event: model.AxisMoved(0, float32(pkt.DX))})
	}
	if pkt.DY != 0 {
		m.injected = append(m.injected, IDEvent{ID: id, Event: model.AxisMoved(1, float32(pkt.DY))})
	}
	if pkt.WheelDelta != 0 {
		ticks := float32(pkt.WheelDelta) / 120
		if pkt.HWheel {
			m.injected = append(m.injected, IDEvent{ID: id, Event: model.AxisMoved(3, ticks)})
		} else {
			m.injected = append(m.injected, IDEvent{ID: id, Event: model.AxisMoved(2, ticks)})
		}
	}
	for i := range pkt.ButtonDown {
		if pkt.ButtonDown[i] {
			m.injected = append(m.injected, IDEvent{ID: id, Event: model.ButtonPressed(uint16(i))})
		}
		if pkt.ButtonUp[i] {
			m.injected = append(m.injected, IDEvent{ID: id, Event: model.ButtonReleased(uint16(i))})
		}
	}
}
