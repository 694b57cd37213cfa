// Package hidreport implements the descriptor-driven HID report parser:
// given a device's button/value capability tables, it assigns stable
// channel indices and decodes raw input reports into model.Event deltas.
//
// Construction is split from capability acquisition on purpose. Acquiring
// the capability tables requires the Windows HidP syscalls wrapped in
// winhidp_windows.go; building a Parser from already-acquired tables and
// running Parse against report bytes is pure and platform-independent, so
// it is exercised directly in tests without a Windows build.
package hidreport

import (
	"time"

	"github.com/ardnew/stickup/model"
)

// ButtonCapInput is one button capability as read from the device's
// preparsed data, before index assignment.
type ButtonCapInput struct {
	ReportID       uint8
	UsagePage      uint16
	LinkCollection uint16
	// Usages is the expanded set of usage codes this cap covers (a usage
	// range is expanded to its concrete codes before reaching the
	// parser).
	Usages []uint16
}

// ValueCapInput is one value capability as read from the device's
// preparsed data, before index assignment and hat classification.
type ValueCapInput struct {
	ReportID       uint8
	UsagePage      uint16
	Usage          uint16
	LinkCollection uint16
	LogicalMin     int32
	LogicalMax     int32
}

// ParseCtx carries the per-report context a backend passes into Parse.
type ParseCtx struct {
	ReportID    uint8
	Now         time.Time
	Meta        model.Meta
	Fingerprint model.Fingerprint
}

// UsageQuerier is the OS collaborator that answers per-report questions
// about a zero-padded report buffer: which usages in a button cap are
// currently pressed, and what raw value a value cap currently holds. The
// Windows implementation (winhidp_windows.go) backs this with
// HidP_GetUsages / HidP_GetUsageValue; tests back it with a fake.
type UsageQuerier interface {
	// GetUsages returns the usage codes currently asserted within the
	// given report id / usage page / link collection.
	GetUsages(reportID uint8, usagePage uint16, linkCollection uint16, report []byte) ([]uint16, error)

	// GetUsageValue returns the raw integer value of the given usage
	// within the given report id / usage page / link collection.
	GetUsageValue(reportID uint8, usagePage, usage uint16, linkCollection uint16, report []byte) (uint32, error)
}
