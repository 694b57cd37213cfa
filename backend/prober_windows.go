//go:build windows

package backend

import (
	"fmt"

	"github.com/karalabe/hid"
	"golang.org/x/sys/windows"

	"github.com/ardnew/stickup/hidreport"
	"github.com/ardnew/stickup/internal/obs"
	"github.com/ardnew/stickup/model"
	"github.com/ardnew/stickup/xinputreport"
)

// winProber is the real Prober, backed by karalabe/hid enumeration for
// HID descriptor devices and XInputGetState for the four fixed
// controller slots.
type winProber struct{}

// NewProber returns the platform Prober.
func NewProber() Prober { return &winProber{} }

func (p *winProber) Discover() ([]Device, error) {
	var devices []Device

	hidDevices, err := p.discoverHID()
	if err != nil {
		obs.LogWarn(obs.ComponentBackend, "hid enumeration failed", "err", err)
	} else {
		devices = append(devices, hidDevices...)
	}

	devices = append(devices, p.discoverXInput()...)
	return devices, nil
}

func (p *winProber) discoverHID() ([]Device, error) {
	infos, err := hid.Enumerate(0, 0)
	if err != nil {
		return nil, err
	}

	var out []Device
	for _, info := range infos {
		if !acceptHIDDevice(info.UsagePage, info.Usage, info.Path) {
			continue
		}

		parser, err := p.buildParser(info)
		if err != nil {
			obs.LogWarn(obs.ComponentBackend, "hid parser construction failed",
				"path", info.Path, "vid", info.VendorID, "pid", info.ProductID, "err", err)
			continue
		}

		handle, err := info.Open()
		if err != nil {
			obs.LogWarn(obs.ComponentBackend, "hid open failed", "path", info.Path, "err", err)
			continue
		}

		up, us := info.UsagePage, info.Usage
		meta := model.Meta{
			Bus: model.BusHID, VendorID: info.VendorID, ProductID: info.ProductID,
			Product: info.Product, Serial: info.Serial, Interface: info.Interface,
			UsagePage: &up, Usage: &us, Path: info.Path,
		}
		fp := model.Fingerprint{VendorID: info.VendorID, ProductID: info.ProductID, Serial: info.Serial, Path: info.Path}

		out = append(out, newHIDDevice(handle, parser, meta, fp, info.Product))
	}
	return out, nil
}

func (p *winProber) buildParser(info hid.DeviceInfo) (*hidreport.Parser, error) {
	pathPtr, err := windows.UTF16PtrFromString(info.Path)
	if err != nil {
		return nil, fmt.Errorf("convert device path: %w", err)
	}
	handle, err := windows.CreateFile(
		pathPtr,
		windows.GENERIC_READ|windows.GENERIC_WRITE,
		windows.FILE_SHARE_READ|windows.FILE_SHARE_WRITE,
		nil,
		windows.OPEN_EXISTING,
		windows.FILE_ATTRIBUTE_NORMAL,
		0,
	)
	if err != nil {
		return nil, fmt.Errorf("open device for capability query: %w", err)
	}
	defer windows.CloseHandle(handle)

	return hidreport.NewFromHandle(uintptr(handle), info.VendorID, info.ProductID)
}

func (p *winProber) discoverXInput() []Device {
	var out []Device
	for slot := 0; slot < 4; slot++ {
		vid, pid, serial, path := xinputSlotFingerprint(slot)
		fp := model.Fingerprint{VendorID: vid, ProductID: pid, Serial: serial, Path: path}
		meta := model.Meta{Bus: model.BusXInput, VendorID: vid, ProductID: pid, Serial: serial, Path: path, Interface: -1}
		out = append(out, newXInputDevice(slot, meta, fp, fmt.Sprintf("XInput Controller %d", slot), xinputreport.PollSlot))
	}
	return out
}
