package hidreport

import (
	"sort"

	"github.com/ardnew/stickup/internal/obs"
	"github.com/ardnew/stickup/model"
)

// Hat usage: Generic Desktop page, Hat Switch usage.
const (
	hatUsagePage = 0x01
	hatUsage     = 0x39
)

// Hat neutral sentinels seen in the wild across vendors.
var hatNeutralSentinels = map[int64]struct{}{
	-1:     {},
	8:      {},
	15:     {},
	255:    {},
	0xFFFF: {},
}

type buttonKey struct {
	reportID       uint8
	usagePage      uint16
	usage          uint16
	linkCollection uint16
}

type buttonCapRef struct {
	reportID       uint8
	usagePage      uint16
	linkCollection uint16
}

type valueCapState struct {
	reportID       uint8
	usagePage      uint16
	usage          uint16
	linkCollection uint16 // mutable: rewritten to 0 by the link-collection quirk
	logicalMin     int32
	logicalMax     int32

	isHat      bool
	hatDegrees bool

	// exactly one of axisIdx/hatIdx is meaningful, selected by isHat.
	axisIdx uint16
	hatIdx  uint16

	axisInit  bool
	lastAxis  float32
	hatInit   bool
	lastHat   int16
}

// Parser decodes raw HID input reports for one device into model.Event
// deltas, using cap tables fixed at construction time.
type Parser struct {
	inputReportMaxLen int
	onlyRID0          bool
	epsilon           float32

	buttonCaps  []buttonCapRef
	buttonIndex map[buttonKey]uint16

	valueCaps []valueCapState

	query UsageQuerier

	lastPressed map[uint16]struct{}

	descs []model.ChannelDesc
}

// NewParser builds a Parser from a device's button and value capability
// tables. Either table may be empty, but not both — if both are empty,
// construction fails per the report parser's reject rule, and the caller
// should drop the device.
func NewParser(inputReportMaxLen int, buttonCaps []ButtonCapInput, valueCaps []ValueCapInput, query UsageQuerier) (*Parser, error) {
	if len(buttonCaps) == 0 && len(valueCaps) == 0 {
		return nil, obs.ErrParserConstruction
	}

	p := &Parser{
		inputReportMaxLen: inputReportMaxLen,
		query:             query,
		lastPressed:       make(map[uint16]struct{}),
		buttonIndex:       make(map[buttonKey]uint16),
	}

	ridSet := map[uint8]struct{}{}
	for _, bc := range buttonCaps {
		ridSet[bc.ReportID] = struct{}{}
	}
	for _, vc := range valueCaps {
		ridSet[vc.ReportID] = struct{}{}
	}
	p.onlyRID0 = len(ridSet) == 1
	if p.onlyRID0 {
		if _, ok := ridSet[0]; !ok {
			p.onlyRID0 = false
		}
	}

	var maxSpan int32 = 1
	for _, vc := range valueCaps {
		if span := vc.LogicalMax - vc.LogicalMin; span > maxSpan {
			maxSpan = span
		}
	}
	p.epsilon = float32((2.0 / float64(maxSpan)) * 2.0)

	// Axes then hats, both in descriptor order, skipping the other kind.
	var axisIdx, hatIdx uint16
	for _, vc := range valueCaps {
		isHat := vc.UsagePage == hatUsagePage && vc.Usage == hatUsage
		if isHat {
			continue
		}
		p.valueCaps = append(p.valueCaps, valueCapState{
			reportID: vc.ReportID, usagePage: vc.UsagePage, usage: vc.Usage,
			linkCollection: vc.LinkCollection, logicalMin: vc.LogicalMin, logicalMax: vc.LogicalMax,
			axisIdx: axisIdx,
		})
		up, us := vc.UsagePage, vc.Usage
		p.descs = append(p.descs, model.ChannelDesc{
			Kind: model.ChannelAxis, Idx: axisIdx,
			LogicalMin: vc.LogicalMin, LogicalMax: vc.LogicalMax,
			UsagePage: &up, Usage: &us,
		})
		axisIdx++
	}
	for _, vc := range valueCaps {
		isHat := vc.UsagePage == hatUsagePage && vc.Usage == hatUsage
		if !isHat {
			continue
		}
		degrees := !(isSlotRange(vc.LogicalMin, vc.LogicalMax))
		p.valueCaps = append(p.valueCaps, valueCapState{
			reportID: vc.ReportID, usagePage: vc.UsagePage, usage: vc.Usage,
			linkCollection: vc.LinkCollection, logicalMin: vc.LogicalMin, logicalMax: vc.LogicalMax,
			isHat: true, hatDegrees: degrees, hatIdx: hatIdx,
		})
		up, us := vc.UsagePage, vc.Usage
		p.descs = append(p.descs, model.ChannelDesc{
			Kind: model.ChannelHat, Idx: hatIdx,
			LogicalMin: vc.LogicalMin, LogicalMax: vc.LogicalMax,
			UsagePage: &up, Usage: &us,
		})
		hatIdx++
	}

	var btnIdx uint16
	for _, bc := range buttonCaps {
		p.buttonCaps = append(p.buttonCaps, buttonCapRef{
			reportID: bc.ReportID, usagePage: bc.UsagePage, linkCollection: bc.LinkCollection,
		})
		usages := append([]uint16(nil), bc.Usages...)
		sort.Slice(usages, func(i, j int) bool { return usages[i] < usages[j] })
		for _, u := range usages {
			key := buttonKey{bc.ReportID, bc.UsagePage, u, bc.LinkCollection}
			p.buttonIndex[key] = btnIdx
			up, us := bc.UsagePage, u
			p.descs = append(p.descs, model.ChannelDesc{
				Kind: model.ChannelButton, Idx: btnIdx,
				UsagePage: &up, Usage: &us,
			})
			btnIdx++
		}
	}

	return p, nil
}

func isSlotRange(lo, hi int32) bool {
	return (lo == 0 && hi == 7) || (lo == 1 && hi == 8)
}

// InputReportLen returns the device's fixed input report length, if known.
func (p *Parser) InputReportLen() (int, bool) {
	if p.inputReportMaxLen <= 0 {
		return 0, false
	}
	return p.inputReportMaxLen, true
}

// ExpectsReportIDPrefix reports whether raw read buffers begin with a
// report-id byte for this device.
func (p *Parser) ExpectsReportIDPrefix() bool {
	return !p.onlyRID0
}

// Describe returns the device's channel descriptors in deterministic
// order: axes, then hats, then buttons (grouped by cap, usages ascending).
func (p *Parser) Describe() []model.ChannelDesc {
	out := make([]model.ChannelDesc, len(p.descs))
	copy(out, p.descs)
	return out
}

// Parse decodes one input report, appending any resulting events to out.
func (p *Parser) Parse(ctx ParseCtx, payload []byte, out *[]model.Event) error {
	effectiveRID := ctx.ReportID
	body := payload
	if p.onlyRID0 && ctx.ReportID != 0 {
		effectiveRID = 0
		body = make([]byte, 0, len(payload)+1)
		body = append(body, ctx.ReportID)
		body = append(body, payload...)
	}

	report := make([]byte, p.inputReportMaxLen)
	if len(report) > 0 {
		report[0] = effectiveRID
		copy(report[1:], body)
	}

	p.parseButtons(effectiveRID, report, out)
	p.parseValues(effectiveRID, report, out)
	return nil
}

func (p *Parser) parseButtons(effectiveRID uint8, report []byte, out *[]model.Event) {
	pressed := make(map[uint16]struct{})
	for _, bc := range p.buttonCaps {
		if bc.reportID != 0 && bc.reportID != effectiveRID {
			continue
		}
		usages, err := p.query.GetUsages(effectiveRID, bc.usagePage, bc.linkCollection, report)
		if err != nil {
			obs.LogWarn(obs.ComponentParser, "button usage query failed",
				"report_id", effectiveRID, "usage_page", bc.usagePage, "err", err)
			continue
		}
		for _, u := range usages {
			idx, ok := p.buttonIndex[buttonKey{effectiveRID, bc.usagePage, u, bc.linkCollection}]
			if !ok {
				idx, ok = p.buttonIndex[buttonKey{0, bc.usagePage, u, bc.linkCollection}]
			}
			if !ok {
				continue
			}
			pressed[idx] = struct{}{}
		}
	}

	var newlyPressed, newlyReleased []uint16
	for idx := range pressed {
		if _, was := p.lastPressed[idx]; !was {
			newlyPressed = append(newlyPressed, idx)
		}
	}
	for idx := range p.lastPressed {
		if _, still := pressed[idx]; !still {
			newlyReleased = append(newlyReleased, idx)
		}
	}
	sort.Slice(newlyPressed, func(i, j int) bool { return newlyPressed[i] < newlyPressed[j] })
	sort.Slice(newlyReleased, func(i, j int) bool { return newlyReleased[i] < newlyReleased[j] })

	for _, idx := range newlyPressed {
		*out = append(*out, model.ButtonPressed(idx))
	}
	for _, idx := range newlyReleased {
		*out = append(*out, model.ButtonReleased(idx))
	}
	p.lastPressed = pressed
}

func (p *Parser) parseValues(effectiveRID uint8, report []byte, out *[]model.Event) {
	for i := range p.valueCaps {
		vc := &p.valueCaps[i]
		if vc.reportID != 0 && vc.reportID != effectiveRID {
			continue
		}

		raw, err := p.query.GetUsageValue(effectiveRID, vc.usagePage, vc.usage, vc.linkCollection, report)
		if err != nil && vc.linkCollection != 0 {
			if retryRaw, retryErr := p.query.GetUsageValue(effectiveRID, vc.usagePage, vc.usage, 0, report); retryErr == nil {
				vc.linkCollection = 0
				raw, err = retryRaw, nil
			}
		}
		if err != nil {
			obs.LogWarn(obs.ComponentParser, "value query failed",
				"report_id", effectiveRID, "usage_page", vc.usagePage, "usage", vc.usage, "err", err)
			continue
		}

		if vc.isHat {
			slot := decodeHat(vc, raw)
			if !vc.hatInit || slot != vc.lastHat {
				*out = append(*out, model.HatChanged(vc.hatIdx, slot))
			}
			vc.lastHat = slot
			vc.hatInit = true
			continue
		}

		n := normalizeAxis(int32(raw), vc.logicalMin, vc.logicalMax)
		if !vc.axisInit || absF32(n-vc.lastAxis) > p.epsilon {
			*out = append(*out, model.AxisMoved(vc.axisIdx, n))
		}
		vc.lastAxis = n
		vc.axisInit = true
	}
}

func normalizeAxis(raw, lo, hi int32) float32 {
	if lo == hi {
		return 0
	}
	t := float64(raw-lo) / float64(hi-lo)
	n := 2*t - 1
	if n < -1 {
		n = -1
	}
	if n > 1 {
		n = 1
	}
	return float32(n)
}

func decodeHat(vc *valueCapState, raw uint32) int16 {
	rawI := int64(int32(raw))
	if _, neutral := hatNeutralSentinels[rawI]; neutral {
		return model.HatNeutral
	}
	if int32(rawI) < vc.logicalMin || int32(rawI) > vc.logicalMax {
		return model.HatNeutral
	}
	if vc.hatDegrees {
		deg := float64(rawI)
		slot := int64((deg + 22.5) / 45)
		slot %= 8
		if slot < 0 {
			slot += 8
		}
		return int16(slot)
	}
	if rawI < 0 || rawI > 7 {
		return model.HatNeutral
	}
	return int16(rawI)
}

func absF32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
