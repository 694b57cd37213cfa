// Package model holds the device-agnostic data types shared by backend,
// hidreport, xinputreport, manager and binding: device identity and
// metadata, channel descriptors, the InputKind event union, and the
// labeled per-device state snapshot.
package model

import (
	"fmt"
	"strings"
)

// Fingerprint is the stable identity of a device: vendor/product id plus
// whichever of serial number or OS path is available. Its String form is
// the canonical id used to key devices, bindings and persisted state.
type Fingerprint struct {
	VendorID  uint16
	ProductID uint16
	Serial    string // "" if unknown
	Path      string // "" if unknown
}

// String returns the canonical fingerprint string:
//
//	vid:pid:serial   when Serial is known
//	vid:pid@segment  when only Path is known (last path segment)
//	vid:pid          otherwise
//
// It is a pure function of the fingerprint's fields, so it is stable
// across polls and, when Serial is present, across reconnects.
func (f Fingerprint) String() string {
	switch {
	case f.Serial != "":
		return fmt.Sprintf("%04x:%04x:%s", f.VendorID, f.ProductID, f.Serial)
	case f.Path != "":
		return fmt.Sprintf("%04x:%04x@%s", f.VendorID, f.ProductID, lastPathSegment(f.Path))
	default:
		return fmt.Sprintf("%04x:%04x", f.VendorID, f.ProductID)
	}
}

// lastPathSegment returns the final component of an OS device path,
// accepting either '/' or '\' as separators since Windows device
// interface paths and POSIX hidraw paths disagree on the character.
func lastPathSegment(path string) string {
	path = strings.TrimRight(path, `/\`)
	if i := strings.LastIndexAny(path, `/\`); i >= 0 {
		return path[i+1:]
	}
	return path
}
