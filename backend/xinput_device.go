package backend

import (
	"github.com/ardnew/stickup/model"
	"github.com/ardnew/stickup/xinputreport"
)

// xinputDevice wraps one XInput controller slot (0..3).
type xinputDevice struct {
	slot   int
	parser *xinputreport.Parser
	meta   model.Meta
	fp     model.Fingerprint
	name   string
	poll   func(slot int) (xinputreport.State, error)
}

func newXInputDevice(slot int, meta model.Meta, fp model.Fingerprint, name string, poll func(int) (xinputreport.State, error)) *xinputDevice {
	return &xinputDevice{
		slot:   slot,
		parser: xinputreport.NewParser(),
		meta:   meta,
		fp:     fp,
		name:   name,
		poll:   poll,
	}
}

func (d *xinputDevice) Poll() ([]model.Event, error) {
	st, err := d.poll(d.slot)
	if err != nil {
		return nil, err
	}
	var events []model.Event
	d.parser.Parse(st, &events)
	return events, nil
}

func (d *xinputDevice) Name() string                 { return d.name }
func (d *xinputDevice) ID() string                    { return d.fp.String() }
func (d *xinputDevice) Metadata() model.Meta          { return d.meta }
func (d *xinputDevice) Describe() []model.ChannelDesc { return d.parser.Describe() }
func (d *xinputDevice) Close() error                  { return nil }
