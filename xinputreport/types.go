// Package xinputreport decodes XInput controller slot state into
// model.Event deltas. Unlike hidreport, there is no descriptor to parse:
// the channel layout is fixed by the XInput API itself.
package xinputreport

import "github.com/ardnew/stickup/model"

// Fixed channel indices, in the order Describe() reports them.
const (
	AxisLX = iota
	AxisLY
	AxisRX
	AxisRY
	AxisLT
	AxisRT
)

const (
	ButtonA = iota
	ButtonB
	ButtonX
	ButtonY
	ButtonLB
	ButtonRB
	ButtonBack
	ButtonStart
	ButtonLThumb
	ButtonRThumb
)

// HatIndex is the single DPad-derived hat channel every slot exposes.
const HatIndex = 0

// axisChangeThreshold is the minimum normalized delta that emits an
// AxisMoved event.
const axisChangeThreshold = 0.001

// State is one XInputGetState poll result, already demarshaled from the
// Win32 XINPUT_STATE/XINPUT_GAMEPAD structs.
type State struct {
	Connected bool

	ThumbLX, ThumbLY int16
	ThumbRX, ThumbRY int16
	LeftTrigger      byte
	RightTrigger     byte

	DPadUp, DPadDown, DPadLeft, DPadRight bool
	A, B, X, Y                            bool
	LB, RB                                bool
	Back, Start                           bool
	LThumb, RThumb                        bool
}

var channelNames = []struct {
	kind model.ChannelKind
	idx  uint16
	name string
}{
	{model.ChannelAxis, AxisLX, "LX"},
	{model.ChannelAxis, AxisLY, "LY"},
	{model.ChannelAxis, AxisRX, "RX"},
	{model.ChannelAxis, AxisRY, "RY"},
	{model.ChannelAxis, AxisLT, "LT"},
	{model.ChannelAxis, AxisRT, "RT"},
	{model.ChannelButton, ButtonA, "A"},
	{model.ChannelButton, ButtonB, "B"},
	{model.ChannelButton, ButtonX, "X"},
	{model.ChannelButton, ButtonY, "Y"},
	{model.ChannelButton, ButtonLB, "LB"},
	{model.ChannelButton, ButtonRB, "RB"},
	{model.ChannelButton, ButtonBack, "Back"},
	{model.ChannelButton, ButtonStart, "Start"},
	{model.ChannelButton, ButtonLThumb, "LThumb"},
	{model.ChannelButton, ButtonRThumb, "RThumb"},
	{model.ChannelHat, HatIndex, ""},
}
