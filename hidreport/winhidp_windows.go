//go:build windows

package hidreport

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	modhid = windows.NewLazySystemDLL("hid.dll")

	procHidDGetPreparsedData  = modhid.NewProc("HidD_GetPreparsedData")
	procHidDFreePreparsedData = modhid.NewProc("HidD_FreePreparsedData")
	procHidPGetCaps           = modhid.NewProc("HidP_GetCaps")
	procHidPGetButtonCaps     = modhid.NewProc("HidP_GetButtonCaps")
	procHidPGetValueCaps      = modhid.NewProc("HidP_GetValueCaps")
	procHidPGetUsages         = modhid.NewProc("HidP_GetUsages")
	procHidPGetUsageValue     = modhid.NewProc("HidP_GetUsageValue")
)

const (
	hidpInput        = 0
	hidpStatusSuccess = 0x00110000
)

type hidpCaps struct {
	Usage                     uint16
	UsagePage                 uint16
	InputReportByteLength     uint16
	OutputReportByteLength    uint16
	FeatureReportByteLength   uint16
	Reserved                  [17]uint16
	NumberLinkCollectionNodes uint16
	NumberInputButtonCaps     uint16
	NumberInputValueCaps      uint16
	NumberInputDataIndices    uint16
	NumberOutputButtonCaps    uint16
	NumberOutputValueCaps     uint16
	NumberOutputDataIndices   uint16
	NumberFeatureButtonCaps   uint16
	NumberFeatureValueCaps    uint16
	NumberFeatureDataIndices  uint16
}

type hidpButtonCapsRaw struct {
	UsagePage      uint16
	ReportID       byte
	IsAlias        byte
	BitField       uint16
	LinkCollection uint16
	LinkUsage      uint16
	LinkUsagePage  uint16
	IsRange        byte
	IsStringRange  byte
	IsDesignatorRange byte
	IsAbsolute     byte

	// Range union, first 5 uint16 fields used either way.
	UsageMin, UsageMax                     uint16
	StringMin, StringMax                   uint16
	DesignatorMin, DesignatorMax           uint16
	DataIndexMin, DataIndexMax             uint16

	Reserved [10]uint32
}

type hidpValueCapsRaw struct {
	UsagePage      uint16
	ReportID       byte
	IsAlias        byte
	BitField       uint16
	LinkCollection uint16
	LinkUsage      uint16
	LinkUsagePage  uint16
	IsRange        byte
	IsStringRange  byte
	IsDesignatorRange byte
	IsAbsolute     byte
	HasNull        byte
	_              byte
	BitSize        uint16
	ReportCount    uint16
	Reserved2      [5]uint16
	UnitsExp       uint32
	Units          uint32
	LogicalMin     int32
	LogicalMax     int32
	PhysicalMin    int32
	PhysicalMax    int32

	UsageMin, UsageMax           uint16
	StringMin, StringMax        uint16
	DesignatorMin, DesignatorMax uint16
	DataIndexMin, DataIndexMax  uint16
}

// acquireCaps fetches preparsed data from an open HID device handle and
// returns button/value capability inputs suitable for NewParser, along
// with the device's fixed input report length.
func acquireCaps(handle windows.Handle) ([]ButtonCapInput, []ValueCapInput, int, *preparsedData, error) {
	pp, err := getPreparsedData(handle)
	if err != nil {
		return nil, nil, 0, nil, err
	}

	caps, err := getCaps(pp)
	if err != nil {
		pp.free()
		return nil, nil, 0, nil, err
	}

	btnRaw, err := getButtonCaps(pp, caps.NumberInputButtonCaps)
	if err != nil {
		pp.free()
		return nil, nil, 0, nil, err
	}
	valRaw, err := getValueCaps(pp, caps.NumberInputValueCaps)
	if err != nil {
		pp.free()
		return nil, nil, 0, nil, err
	}

	var buttonCaps []ButtonCapInput
	for _, bc := range btnRaw {
		var usages []uint16
		if bc.IsRange != 0 {
			for u := bc.UsageMin; u <= bc.UsageMax; u++ {
				usages = append(usages, u)
			}
		} else {
			usages = []uint16{bc.UsageMin}
		}
		buttonCaps = append(buttonCaps, ButtonCapInput{
			ReportID:       bc.ReportID,
			UsagePage:      bc.UsagePage,
			LinkCollection: bc.LinkCollection,
			Usages:         usages,
		})
	}

	var valueCaps []ValueCapInput
	for _, vc := range valRaw {
		usage := vc.UsageMin
		valueCaps = append(valueCaps, ValueCapInput{
			ReportID:       vc.ReportID,
			UsagePage:      vc.UsagePage,
			Usage:          usage,
			LinkCollection: vc.LinkCollection,
			LogicalMin:     vc.LogicalMin,
			LogicalMax:     vc.LogicalMax,
		})
	}

	return buttonCaps, valueCaps, int(caps.InputReportByteLength), pp, nil
}

type preparsedData struct {
	handle uintptr
}

func (p *preparsedData) free() {
	if p.handle != 0 {
		procHidDFreePreparsedData.Call(p.handle)
		p.handle = 0
	}
}

func getPreparsedData(handle windows.Handle) (*preparsedData, error) {
	var pp uintptr
	r, _, _ := procHidDGetPreparsedData.Call(uintptr(handle), uintptr(unsafe.Pointer(&pp)))
	if r == 0 {
		return nil, fmt.Errorf("HidD_GetPreparsedData failed")
	}
	return &preparsedData{handle: pp}, nil
}

func getCaps(pp *preparsedData) (hidpCaps, error) {
	var caps hidpCaps
	r, _, _ := procHidPGetCaps.Call(pp.handle, uintptr(unsafe.Pointer(&caps)))
	if r != hidpStatusSuccess {
		return caps, fmt.Errorf("HidP_GetCaps failed: status=0x%x", r)
	}
	return caps, nil
}

func getButtonCaps(pp *preparsedData, count uint16) ([]hidpButtonCapsRaw, error) {
	if count == 0 {
		return nil, nil
	}
	caps := make([]hidpButtonCapsRaw, count)
	n := count
	r, _, _ := procHidPGetButtonCaps.Call(
		uintptr(hidpInput),
		uintptr(unsafe.Pointer(&caps[0])),
		uintptr(unsafe.Pointer(&n)),
		pp.handle,
	)
	if r != hidpStatusSuccess {
		return nil, fmt.Errorf("HidP_GetButtonCaps failed: status=0x%x", r)
	}
	return caps[:n], nil
}

func getValueCaps(pp *preparsedData, count uint16) ([]hidpValueCapsRaw, error) {
	if count == 0 {
		return nil, nil
	}
	caps := make([]hidpValueCapsRaw, count)
	n := count
	r, _, _ := procHidPGetValueCaps.Call(
		uintptr(hidpInput),
		uintptr(unsafe.Pointer(&caps[0])),
		uintptr(unsafe.Pointer(&n)),
		pp.handle,
	)
	if r != hidpStatusSuccess {
		return nil, fmt.Errorf("HidP_GetValueCaps failed: status=0x%x", r)
	}
	return caps[:n], nil
}

// winUsageQuerier is the real UsageQuerier backed by Win32 HidP calls
// against preparsed descriptor data fixed at device-open time.
type winUsageQuerier struct {
	pp *preparsedData
}

func newWinUsageQuerier(pp *preparsedData) *winUsageQuerier {
	return &winUsageQuerier{pp: pp}
}

func (w *winUsageQuerier) GetUsages(reportID uint8, usagePage uint16, linkCollection uint16, report []byte) ([]uint16, error) {
	const maxUsages = 64
	buf := make([]uint16, maxUsages)
	n := uint32(maxUsages)
	if len(report) == 0 {
		return nil, fmt.Errorf("empty report")
	}
	r, _, _ := procHidPGetUsages.Call(
		uintptr(hidpInput),
		uintptr(usagePage),
		uintptr(linkCollection),
		uintptr(unsafe.Pointer(&buf[0])),
		uintptr(unsafe.Pointer(&n)),
		w.pp.handle,
		uintptr(unsafe.Pointer(&report[0])),
		uintptr(len(report)),
	)
	if r != hidpStatusSuccess {
		return nil, fmt.Errorf("HidP_GetUsages failed: status=0x%x", r)
	}
	return buf[:n], nil
}

// NewFromHandle acquires capability tables from an open HID device handle
// and builds a Parser backed by the real Win32 HidP usage queries.
// vendorID/productID select per-device capability quirks.
func NewFromHandle(handle uintptr, vendorID, productID uint16) (*Parser, error) {
	buttonCaps, valueCaps, inputReportLen, pp, err := acquireCaps(windows.Handle(handle))
	if err != nil {
		return nil, err
	}
	applyLinkCollectionQuirk(vendorID, productID, buttonCaps, valueCaps)
	return NewParser(inputReportLen, buttonCaps, valueCaps, newWinUsageQuerier(pp))
}

func (w *winUsageQuerier) GetUsageValue(reportID uint8, usagePage, usage uint16, linkCollection uint16, report []byte) (uint32, error) {
	var value uint32
	if len(report) == 0 {
		return 0, fmt.Errorf("empty report")
	}
	r, _, _ := procHidPGetUsageValue.Call(
		uintptr(hidpInput),
		uintptr(usagePage),
		uintptr(linkCollection),
		uintptr(usage),
		uintptr(unsafe.Pointer(&value)),
		w.pp.handle,
		uintptr(unsafe.Pointer(&report[0])),
		uintptr(len(report)),
	)
	if r != hidpStatusSuccess {
		return 0, fmt.Errorf("HidP_GetUsageValue failed: status=0x%x", r)
	}
	return value, nil
}
