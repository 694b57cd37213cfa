//go:build !windows

package xinputreport

import "github.com/ardnew/stickup/internal/obs"

// PollSlot is unavailable outside Windows; XInputGetState is a Win32-only
// facility.
func PollSlot(slot int) (State, error) {
	return State{}, obs.ErrBackendUnavailable
}
