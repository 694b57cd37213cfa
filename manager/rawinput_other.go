//go:build !windows

package manager

import "github.com/ardnew/stickup/internal/obs"

// HandleWMInput is unavailable outside Windows; WM_INPUT is a Win32-only
// message. Use HandleRawInputBytes directly where a record has already
// been extracted by other means.
func (m *Manager) HandleWMInput(lParam uintptr) error {
	return obs.ErrBackendUnavailable
}
