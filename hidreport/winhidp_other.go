//go:build !windows

package hidreport

import "github.com/ardnew/stickup/internal/obs"

// NewFromHandle is unavailable outside Windows; the HidP capability
// acquisition it depends on is a Win32-only facility.
func NewFromHandle(handle uintptr, vendorID, productID uint16) (*Parser, error) {
	return nil, obs.ErrBackendUnavailable
}
