package manager

import (
	"time"

	"github.com/ardnew/stickup/internal/obs"
)

// PollEvents polls every managed device once, in discovery order, applies
// each event to labeled state, then drains the injected-event queue and
// applies those too. The returned slice orders device events first
// (grouped per device in device order, each device's own events in
// parser-emission order), followed by injected events in injection order.
func (m *Manager) PollEvents() []IDEvent {
	out := m.pollDevices()
	for _, ie := range m.injected {
		m.ApplyEvent(ie.ID, ie.Event)
		out = append(out, ie)
	}
	m.injected = m.injected[:0]
	return out
}

// PollEventsShared polls devices identically to PollEvents but does not
// drain the injected queue. Hosts that rely on injected raw-input events
// should use PollEvents instead.
func (m *Manager) PollEventsShared() []IDEvent {
	return m.pollDevices()
}

// PollEventsTimed is PollEventsShared with every event stamped with one
// shared time, taken after all devices have been polled.
func (m *Manager) PollEventsTimed() []TimedIDEvent {
	return m.stampNow(m.pollDevices())
}

// PollEventsTimedShared is equivalent to PollEventsTimed. The two names
// are kept distinct for API symmetry with PollEventsShared; both skip the
// injected-queue drain.
func (m *Manager) PollEventsTimedShared() []TimedIDEvent {
	return m.stampNow(m.pollDevices())
}

func (m *Manager) pollDevices() []IDEvent {
	var out []IDEvent
	for _, id := range m.order {
		e := m.entries[id]
		events, err := e.dev.Poll()
		if err != nil {
			obs.LogWarn(obs.ComponentManager, "device poll failed", "device", id, "err", err)
			continue
		}
		for _, ev := range events {
			m.ApplyEvent(id, ev)
			out = append(out, IDEvent{ID: id, Event: ev})
		}
	}
	return out
}

func (m *Manager) stampNow(events []IDEvent) []TimedIDEvent {
	now := time.Now()
	out := make([]TimedIDEvent, len(events))
	for i, ev := range events {
		out[i] = TimedIDEvent{ID: ev.ID, Event: ev.Event, When: now}
	}
	return out
}
