package xinputreport

import "github.com/ardnew/stickup/model"

// Parser decodes successive XInput slot polls into model.Event deltas,
// tracking last-known state so only changes are emitted.
type Parser struct {
	axisInit [6]bool
	lastAxis [6]float32

	buttonState [10]bool

	hatInit bool
	lastHat int16

	connected    bool
	everPolled   bool
}

// NewParser returns a Parser with no prior state.
func NewParser() *Parser {
	return &Parser{lastHat: model.HatNeutral}
}

// Describe returns the fixed XInput channel layout.
func (p *Parser) Describe() []model.ChannelDesc {
	descs := make([]model.ChannelDesc, 0, len(channelNames))
	for _, c := range channelNames {
		descs = append(descs, model.ChannelDesc{Kind: c.kind, Idx: c.idx, Name: c.name})
	}
	return descs
}

// Parse decodes one State poll, appending deltas to out. If st.Connected
// is false, Parse records the disconnection and appends nothing — the
// caller's last-known state (in model.DeviceState) is left untouched.
func (p *Parser) Parse(st State, out *[]model.Event) {
	p.everPolled = true
	if !st.Connected {
		p.connected = false
		return
	}
	p.connected = true

	axes := [6]float32{
		normalizeThumb(st.ThumbLX),
		-normalizeThumb(st.ThumbLY),
		normalizeThumb(st.ThumbRX),
		-normalizeThumb(st.ThumbRY),
		normalizeTrigger(st.LeftTrigger),
		normalizeTrigger(st.RightTrigger),
	}
	for i, v := range axes {
		if !p.axisInit[i] || absF32(v-p.lastAxis[i]) > axisChangeThreshold {
			*out = append(*out, model.AxisMoved(uint16(i), v))
		}
		p.lastAxis[i] = v
		p.axisInit[i] = true
	}

	buttons := [10]bool{
		st.A, st.B, st.X, st.Y,
		st.LB, st.RB, st.Back, st.Start,
		st.LThumb, st.RThumb,
	}
	for i, pressed := range buttons {
		if pressed == p.buttonState[i] {
			continue
		}
		p.buttonState[i] = pressed
		if pressed {
			*out = append(*out, model.ButtonPressed(uint16(i)))
		} else {
			*out = append(*out, model.ButtonReleased(uint16(i)))
		}
	}

	hat := decodeDPad(st)
	if !p.hatInit || hat != p.lastHat {
		*out = append(*out, model.HatChanged(HatIndex, hat))
	}
	p.lastHat = hat
	p.hatInit = true
}

func normalizeThumb(raw int16) float32 {
	if raw >= 0 {
		return float32(raw) / 32767
	}
	return float32(raw) / 32768
}

func normalizeTrigger(raw byte) float32 {
	n := (float32(raw)/255)*2 - 1
	if n < -1 {
		n = -1
	}
	if n > 1 {
		n = 1
	}
	return n
}

func decodeDPad(st State) int16 {
	up, down, left, right := st.DPadUp, st.DPadDown, st.DPadLeft, st.DPadRight
	if up && down {
		up, down = false, false
	}
	if left && right {
		left, right = false, false
	}
	switch {
	case up && right:
		return 1
	case down && right:
		return 3
	case down && left:
		return 5
	case up && left:
		return 7
	case up:
		return 0
	case right:
		return 2
	case down:
		return 4
	case left:
		return 6
	default:
		return model.HatNeutral
	}
}

func absF32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
