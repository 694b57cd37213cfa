// Package backend wraps one physical or synthesized input device: a
// non-blocking OS handle paired with the report parser that turns its raw
// reads into model.Event deltas.
package backend

import "github.com/ardnew/stickup/model"

// MaxReportsPerTick bounds how many reports Poll drains from a device's
// handle in one call, so one noisy device cannot starve the others.
const MaxReportsPerTick = 32

// Device is the closed set of device kinds a Manager polls: HID-descriptor
// devices and XInput slot devices. Both variants are small enough, and the
// set is closed enough, that an interface with two concrete
// implementations fits better than an invented sum type.
type Device interface {
	// Poll drains up to MaxReportsPerTick pending reports and returns the
	// resulting event deltas in read order.
	Poll() ([]model.Event, error)

	// Name returns a human-readable device name, when known.
	Name() string

	// ID returns the device's fingerprint string, stable for its
	// lifetime and unique among concurrently managed devices.
	ID() string

	// Metadata returns the device's descriptive snapshot.
	Metadata() model.Meta

	// Describe returns the device's channel descriptors, delegated to
	// its parser.
	Describe() []model.ChannelDesc

	// Close releases the device's OS handle.
	Close() error
}
