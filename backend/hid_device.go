package backend

import (
	"time"

	"github.com/karalabe/hid"

	"github.com/ardnew/stickup/hidreport"
	"github.com/ardnew/stickup/internal/obs"
	"github.com/ardnew/stickup/model"
)

// hidDevice wraps one open HID handle and its descriptor-driven parser.
type hidDevice struct {
	handle hid.Device
	parser *hidreport.Parser
	meta   model.Meta
	fp     model.Fingerprint
	name   string
}

func newHIDDevice(handle hid.Device, parser *hidreport.Parser, meta model.Meta, fp model.Fingerprint, name string) *hidDevice {
	return &hidDevice{handle: handle, parser: parser, meta: meta, fp: fp, name: name}
}

func (d *hidDevice) Poll() ([]model.Event, error) {
	var events []model.Event
	buf := make([]byte, 256)
	if n, ok := d.parser.InputReportLen(); ok && n > len(buf) {
		buf = make([]byte, n)
	}

	now := time.Now()
	for i := 0; i < MaxReportsPerTick; i++ {
		n, err := d.handle.ReadTimeout(buf, 0)
		if err != nil {
			obs.LogWarn(obs.ComponentBackend, "hid read failed", "device", d.fp.String(), "err", err)
			break
		}
		if n == 0 {
			break
		}

		var reportID uint8
		payload := buf[:n]
		if d.parser.ExpectsReportIDPrefix() && n >= 1 {
			reportID = buf[0]
			payload = buf[1:n]
		}

		ctx := hidreport.ParseCtx{ReportID: reportID, Now: now, Meta: d.meta, Fingerprint: d.fp}
		if err := d.parser.Parse(ctx, payload, &events); err != nil {
			obs.LogWarn(obs.ComponentBackend, "hid parse failed", "device", d.fp.String(), "err", err)
		}
	}
	return events, nil
}

func (d *hidDevice) Name() string                 { return d.name }
func (d *hidDevice) ID() string                    { return d.fp.String() }
func (d *hidDevice) Metadata() model.Meta          { return d.meta }
func (d *hidDevice) Describe() []model.ChannelDesc { return d.parser.Describe() }
func (d *hidDevice) Close() error                  { return d.handle.Close() }
