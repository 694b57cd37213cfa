// Package manager provides the single-threaded façade over device
// discovery, polling, labeled state, and raw-input injection. A Manager
// and every device it owns are pinned to one goroutine for their
// lifetime; there is no internal mutex.
package manager

import (
	"time"

	"github.com/ardnew/stickup/backend"
	"github.com/ardnew/stickup/internal/obs"
	"github.com/ardnew/stickup/model"
)

// IDEvent pairs a device id with one event it produced.
type IDEvent struct {
	ID    string
	Event model.Event
}

// TimedIDEvent is an IDEvent stamped with the time its poll completed.
type TimedIDEvent struct {
	ID    string
	Event model.Event
	When  time.Time
}

type deviceEntry struct {
	dev         backend.Device
	info        model.ManagedInfo
	descs       []model.ChannelDesc
	axisLabel   map[uint16]string
	buttonLabel map[uint16]string
	hatLabel    map[uint16]string
}

func newDeviceEntry(dev backend.Device) *deviceEntry {
	descs := dev.Describe()
	e := &deviceEntry{
		dev:  dev,
		descs: descs,
		info: model.ManagedInfo{ID: dev.ID(), Name: dev.Name(), Meta: dev.Metadata()},
		axisLabel:   make(map[uint16]string),
		buttonLabel: make(map[uint16]string),
		hatLabel:    make(map[uint16]string),
	}
	for _, d := range descs {
		switch d.Kind {
		case model.ChannelAxis:
			e.axisLabel[d.Idx] = d.Label()
		case model.ChannelButton:
			e.buttonLabel[d.Idx] = d.Label()
		case model.ChannelHat:
			e.hatLabel[d.Idx] = d.Label()
		}
	}
	return e
}

func (e *deviceEntry) labelFor(ev model.Event) (string, bool) {
	switch ev.ChannelKind() {
	case model.ChannelAxis:
		l, ok := e.axisLabel[ev.Index]
		return l, ok
	case model.ChannelHat:
		l, ok := e.hatLabel[ev.Index]
		return l, ok
	default:
		l, ok := e.buttonLabel[ev.Index]
		return l, ok
	}
}

// Manager is the single-threaded façade over a set of devices. It is not
// safe for concurrent use; hosts wanting fan-out must serialize access
// through a dedicated goroutine that owns the Manager.
type Manager struct {
	prober   backend.Prober
	order    []string
	entries  map[string]*deviceEntry
	states   model.Snapshot
	injected []IDEvent
}

// Discover probes the platform backend and builds a Manager from the
// devices it finds.
func Discover() (*Manager, error) {
	prober := backend.NewProber()
	devices, err := prober.Discover()
	if err != nil {
		return nil, obs.NewBackendError("Discover", "platform probe failed", err)
	}
	m := FromDevices(devices)
	m.prober = prober
	return m, nil
}

// FromDevices builds a Manager directly from an already-discovered device
// list, useful for tests and hosts that assemble devices themselves.
func FromDevices(devices []backend.Device) *Manager {
	m := &Manager{
		entries: make(map[string]*deviceEntry),
		states:  make(model.Snapshot),
	}
	m.reset(devices)
	return m
}

func (m *Manager) reset(devices []backend.Device) {
	m.order = m.order[:0]
	m.entries = make(map[string]*deviceEntry, len(devices))
	m.states = make(model.Snapshot, len(devices))

	for _, dev := range devices {
		entry := newDeviceEntry(dev)
		id := entry.info.ID
		m.order = append(m.order, id)
		m.entries[id] = entry

		st := model.NewDeviceState()
		st.SeedChannels(entry.descs)
		m.states[id] = st
	}
}

// Devices returns a summary of every currently managed device, in
// discovery order.
func (m *Manager) Devices() []model.ManagedInfo {
	out := make([]model.ManagedInfo, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.entries[id].info)
	}
	return out
}

// Channels returns the channel descriptors for one managed device.
func (m *Manager) Channels(id string) ([]model.ChannelDesc, bool) {
	e, ok := m.entries[id]
	if !ok {
		return nil, false
	}
	out := make([]model.ChannelDesc, len(e.descs))
	copy(out, e.descs)
	return out, true
}

// Snapshot returns an owned clone of the labeled state for every managed
// device, reflecting the last poll (or discovery, if never polled).
func (m *Manager) Snapshot() model.Snapshot {
	return m.states.Clone()
}

// ApplyEvent writes ev into the labeled state for device id. If id is not
// currently managed (a race with removal), the event is ignored.
func (m *Manager) ApplyEvent(id string, ev model.Event) {
	e, ok := m.entries[id]
	if !ok {
		return
	}
	label, ok := e.labelFor(ev)
	if !ok {
		return
	}
	st := m.states[id]
	st.ApplyLabeled(label, ev)
}

// Rescan re-probes the platform backend, carrying forward DeviceState for
// devices that survive and seeding neutral state only for channels newly
// described. No Poll is in flight during a Rescan by construction.
func (m *Manager) Rescan() model.RescanReport {
	if m.prober == nil {
		m.prober = backend.NewProber()
	}
	devices, err := m.prober.Discover()
	if err != nil {
		obs.LogWarn(obs.ComponentManager, "rescan probe failed", "err", err)
		devices = nil
	}
	return m.rescanWith(devices)
}

func (m *Manager) rescanWith(devices []backend.Device) model.RescanReport {
	newIDs := make(map[string]struct{}, len(devices))
	newEntries := make(map[string]*deviceEntry, len(devices))
	newOrder := make([]string, 0, len(devices))
	newStates := make(model.Snapshot, len(devices))

	var report model.RescanReport

	for _, dev := range devices {
		entry := newDeviceEntry(dev)
		id := entry.info.ID
		newIDs[id] = struct{}{}
		newEntries[id] = entry
		newOrder = append(newOrder, id)

		if prior, existed := m.states[id]; existed {
			prior.SeedChannels(entry.descs)
			newStates[id] = prior
		} else {
			st := model.NewDeviceState()
			st.SeedChannels(entry.descs)
			newStates[id] = st
			report.Added = append(report.Added, id)
		}
	}

	for _, id := range m.order {
		if _, still := newIDs[id]; !still {
			report.Removed = append(report.Removed, id)
			if e, ok := m.entries[id]; ok {
				if err := e.dev.Close(); err != nil {
					obs.LogWarn(obs.ComponentManager, "device close failed on rescan", "device", id, "err", err)
				}
			}
		}
	}

	m.order = newOrder
	m.entries = newEntries
	m.states = newStates
	return report
}

// Close releases every managed device's OS handle.
func (m *Manager) Close() error {
	var firstErr error
	for _, id := range m.order {
		if err := m.entries[id].dev.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
