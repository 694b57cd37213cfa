//go:build !windows

package backend

import "github.com/ardnew/stickup/internal/obs"

// otherProber is the unsupported-platform Prober: there is no portable
// equivalent of HidP_* or XInputGetState, so it reports every call
// unavailable rather than guessing at a partial implementation.
type otherProber struct{}

// NewProber returns the platform Prober.
func NewProber() Prober { return &otherProber{} }

func (p *otherProber) Discover() ([]Device, error) {
	return nil, obs.ErrBackendUnavailable
}
