package manager

import (
	"testing"

	"github.com/ardnew/stickup/backend"
	"github.com/ardnew/stickup/model"
)

type fakeDevice struct {
	id     string
	name   string
	meta   model.Meta
	descs  []model.ChannelDesc
	events [][]model.Event // one slice per Poll() call, consumed in order
	closed bool
}

func (f *fakeDevice) Poll() ([]model.Event, error) {
	if len(f.events) == 0 {
		return nil, nil
	}
	next := f.events[0]
	f.events = f.events[1:]
	return next, nil
}

func (f *fakeDevice) Name() string                 { return f.name }
func (f *fakeDevice) ID() string                    { return f.id }
func (f *fakeDevice) Metadata() model.Meta           { return f.meta }
func (f *fakeDevice) Describe() []model.ChannelDesc { return f.descs }
func (f *fakeDevice) Close() error                   { f.closed = true; return nil }

func joyDescs() []model.ChannelDesc {
	return []model.ChannelDesc{
		{Kind: model.ChannelAxis, Idx: 0, Name: "X"},
		{Kind: model.ChannelButton, Idx: 0, Name: "Trigger"},
	}
}

func TestManager_DiscoverSeedsNeutralState(t *testing.T) {
	dev := &fakeDevice{id: "dev1", name: "Joystick", descs: joyDescs()}
	m := FromDevices([]backend.Device{dev})

	snap := m.Snapshot()
	st, ok := snap["dev1"]
	if !ok {
		t.Fatal("expected dev1 in snapshot")
	}
	if st.Axes["X"] != 0 {
		t.Errorf("expected neutral axis, got %v", st.Axes["X"])
	}
	if st.Buttons["Trigger"] != false {
		t.Errorf("expected neutral button, got %v", st.Buttons["Trigger"])
	}
}

func TestManager_PollEventsAppliesAndOrders(t *testing.T) {
	dev1 := &fakeDevice{id: "dev1", descs: joyDescs(), events: [][]model.Event{
		{model.AxisMoved(0, 0.5), model.ButtonPressed(0)},
	}}
	dev2 := &fakeDevice{id: "dev2", descs: joyDescs(), events: [][]model.Event{
		{model.ButtonPressed(0)},
	}}
	m := FromDevices([]backend.Device{dev1, dev2})

	events := m.PollEvents()
	if len(events) != 3 {
		t.Fatalf("expected 3 events, got %d: %+v", len(events), events)
	}
	if events[0].ID != "dev1" || events[1].ID != "dev1" || events[2].ID != "dev2" {
		t.Errorf("events not grouped in device order: %+v", events)
	}

	snap := m.Snapshot()
	if snap["dev1"].Axes["X"] != 0.5 {
		t.Errorf("dev1 axis not applied: %v", snap["dev1"].Axes["X"])
	}
	if !snap["dev1"].Buttons["Trigger"] {
		t.Error("dev1 button not applied")
	}
	if !snap["dev2"].Buttons["Trigger"] {
		t.Error("dev2 button not applied")
	}
}

func TestManager_InjectedQueueDrainedOnlyByPollEvents(t *testing.T) {
	dev := &fakeDevice{id: "dev1", descs: joyDescs()}
	m := FromDevices([]backend.Device{dev})

	m.InjectKeyboardPacket(RawKeyboardPacket{Handle: 1, Scancode: 0x1E, Pressed: true})

	shared := m.PollEventsShared()
	if len(shared) != 0 {
		t.Fatalf("PollEventsShared should not include injected events, got %+v", shared)
	}

	full := m.PollEvents()
	if len(full) != 1 {
		t.Fatalf("expected 1 injected event drained by PollEvents, got %+v", full)
	}
	if full[0].ID != "rawkbd:1" {
		t.Errorf("unexpected injected device id: %q", full[0].ID)
	}

	// second call: queue now empty.
	again := m.PollEvents()
	for _, ev := range again {
		if ev.ID == "rawkbd:1" {
			t.Fatal("injected queue should be empty after drain")
		}
	}
}

func TestManager_RescanPreservesSurvivorsAndReports(t *testing.T) {
	dev1 := &fakeDevice{id: "dev1", descs: joyDescs()}
	dev2 := &fakeDevice{id: "dev2", descs: joyDescs()}
	m := FromDevices([]backend.Device{dev1, dev2})

	m.ApplyEvent("dev1", model.AxisMoved(0, 0.9))

	dev1Again := &fakeDevice{id: "dev1", descs: joyDescs()}
	dev3 := &fakeDevice{id: "dev3", descs: joyDescs()}
	report := m.rescanWith([]backend.Device{dev1Again, dev3})

	if len(report.Added) != 1 || report.Added[0] != "dev3" {
		t.Errorf("expected dev3 added, got %+v", report.Added)
	}
	if len(report.Removed) != 1 || report.Removed[0] != "dev2" {
		t.Errorf("expected dev2 removed, got %+v", report.Removed)
	}
	if !dev2.closed {
		t.Error("expected removed device to be closed")
	}

	snap := m.Snapshot()
	if snap["dev1"].Axes["X"] != 0.9 {
		t.Errorf("survivor state not preserved: %v", snap["dev1"].Axes["X"])
	}
	if _, ok := snap["dev2"]; ok {
		t.Error("removed device should not appear in snapshot")
	}
	if snap["dev3"].Axes["X"] != 0 {
		t.Error("new device should be seeded neutral")
	}
}

func TestManager_MouseInjectionFixedShape(t *testing.T) {
	m := FromDevices(nil)
	m.InjectMousePacket(RawMousePacket{Handle: 7, DX: 10, DY: -5, WheelDelta: 120})

	events := m.PollEvents()
	if len(events) != 3 {
		t.Fatalf("expected dx, dy, wheel events, got %+v", events)
	}

	snap := m.Snapshot()
	st, ok := snap["rawmouse:7"]
	if !ok {
		t.Fatal("expected rawmouse:7 registered")
	}
	if st.Axes["dx"] != 10 || st.Axes["dy"] != -5 || st.Axes["wheel"] != 1 {
		t.Errorf("unexpected mouse axis state: %+v", st.Axes)
	}
}

func TestManager_HandleRawInputBytesTooShortDropped(t *testing.T) {
	m := FromDevices(nil)
	if err := m.HandleRawInputBytes([]byte{1, 2, 3}); err != nil {
		t.Fatalf("expected nil error for malformed record, got %v", err)
	}
	if len(m.injected) != 0 {
		t.Error("malformed record should not enqueue anything")
	}
}
