package model

// DeviceState is the labeled last-known-state snapshot for one device.
// Hats use -1 for neutral and 0..7 for the eight clockwise-from-up
// directions. Once a device is discovered, every channel in its
// descriptor has a key in the matching sub-map; values update
// monotonically as events are applied.
type DeviceState struct {
	Axes    map[string]float32
	Buttons map[string]bool
	Hats    map[string]int16
}

// NewDeviceState returns an empty, non-nil DeviceState.
func NewDeviceState() DeviceState {
	return DeviceState{
		Axes:    make(map[string]float32),
		Buttons: make(map[string]bool),
		Hats:    make(map[string]int16),
	}
}

// SeedChannels adds neutral entries (axes=0.0, buttons=false, hats=-1) for
// every channel in descs whose label is not already present. Used both at
// discovery (full seed) and at rescan (seed only newly described
// channels, preserving survivors).
func (s *DeviceState) SeedChannels(descs []ChannelDesc) {
	for _, d := range descs {
		label := d.Label()
		switch d.Kind {
		case ChannelAxis:
			if _, ok := s.Axes[label]; !ok {
				s.Axes[label] = 0
			}
		case ChannelButton:
			if _, ok := s.Buttons[label]; !ok {
				s.Buttons[label] = false
			}
		case ChannelHat:
			if _, ok := s.Hats[label]; !ok {
				s.Hats[label] = HatNeutral
			}
		}
	}
}

// ApplyLabeled writes ev into the sub-map matching its kind, under label.
func (s *DeviceState) ApplyLabeled(label string, ev Event) {
	switch ev.Kind {
	case EventAxisMoved:
		s.Axes[label] = ev.Value
	case EventButtonPressed:
		s.Buttons[label] = true
	case EventButtonReleased:
		s.Buttons[label] = false
	case EventHatChanged:
		s.Hats[label] = ev.HatValue
	}
}

// Clone returns an owned deep copy of s.
func (s DeviceState) Clone() DeviceState {
	out := DeviceState{
		Axes:    make(map[string]float32, len(s.Axes)),
		Buttons: make(map[string]bool, len(s.Buttons)),
		Hats:    make(map[string]int16, len(s.Hats)),
	}
	for k, v := range s.Axes {
		out.Axes[k] = v
	}
	for k, v := range s.Buttons {
		out.Buttons[k] = v
	}
	for k, v := range s.Hats {
		out.Hats[k] = v
	}
	return out
}

// Snapshot is an owned, read-only copy of every managed device's labeled
// state at the moment it was taken.
type Snapshot map[string]DeviceState

// Clone returns a deep copy of snap.
func (snap Snapshot) Clone() Snapshot {
	out := make(Snapshot, len(snap))
	for id, st := range snap {
		out[id] = st.Clone()
	}
	return out
}

// RescanReport summarizes the diff a Manager.Rescan produced: device ids
// newly present and device ids no longer present.
type RescanReport struct {
	Added   []string
	Removed []string
}

// ManagedInfo is the summary of one device the Manager currently tracks.
type ManagedInfo struct {
	ID   string
	Name string
	Meta Meta
}
