package binding

// Wire document shapes for the three persistence codecs (YAML, TOML,
// JSON). Unknown fields are ignored by the underlying decoders; missing
// fields take the documented AxisTransform defaults. Gain/Gamma accept
// the legacy aliases "scale"/"p" for backward compatibility with older
// profiles.

type controlPathDoc struct {
	Device string `yaml:"device" toml:"device" json:"device"`
	Control string `yaml:"control" toml:"control" json:"control"`
	Kind    string `yaml:"kind" toml:"kind" json:"kind"` // "axis" or "button"
}

type axisTransformDoc struct {
	Deadzone   *float64 `yaml:"deadzone,omitempty" toml:"deadzone,omitempty" json:"deadzone,omitempty"`
	Invert     bool     `yaml:"invert,omitempty" toml:"invert,omitempty" json:"invert,omitempty"`
	Curve      string   `yaml:"curve,omitempty" toml:"curve,omitempty" json:"curve,omitempty"`
	Gamma      *float64 `yaml:"gamma,omitempty" toml:"gamma,omitempty" json:"gamma,omitempty"`
	GammaAlias *float64 `yaml:"p,omitempty" toml:"p,omitempty" json:"p,omitempty"`
	Gain       *float64 `yaml:"gain,omitempty" toml:"gain,omitempty" json:"gain,omitempty"`
	GainAlias  *float64 `yaml:"scale,omitempty" toml:"scale,omitempty" json:"scale,omitempty"`
	Min        *float64 `yaml:"min,omitempty" toml:"min,omitempty" json:"min,omitempty"`
	Max        *float64 `yaml:"max,omitempty" toml:"max,omitempty" json:"max,omitempty"`
}

type bindingDoc struct {
	Kind string `yaml:"kind" toml:"kind" json:"kind"`
	Action string `yaml:"action" toml:"action" json:"action"`

	// axis1d / button
	Input              *controlPathDoc   `yaml:"input,omitempty" toml:"input,omitempty" json:"input,omitempty"`
	Transform          *axisTransformDoc `yaml:"transform,omitempty" toml:"transform,omitempty" json:"transform,omitempty"`
	AxisPressThreshold *float64          `yaml:"axis_press_threshold,omitempty" toml:"axis_press_threshold,omitempty" json:"axis_press_threshold,omitempty"`

	// axis2d
	X              *controlPathDoc   `yaml:"x,omitempty" toml:"x,omitempty" json:"x,omitempty"`
	Y              *controlPathDoc   `yaml:"y,omitempty" toml:"y,omitempty" json:"y,omitempty"`
	XTransform     *axisTransformDoc `yaml:"x_transform,omitempty" toml:"x_transform,omitempty" json:"x_transform,omitempty"`
	YTransform     *axisTransformDoc `yaml:"y_transform,omitempty" toml:"y_transform,omitempty" json:"y_transform,omitempty"`
	RadialDeadzone *float64          `yaml:"radial_deadzone,omitempty" toml:"radial_deadzone,omitempty" json:"radial_deadzone,omitempty"`
}

type profileDoc struct {
	Version     int          `yaml:"version" toml:"version" json:"version"`
	Name        string       `yaml:"name" toml:"name" json:"name"`
	Description string       `yaml:"description,omitempty" toml:"description,omitempty" json:"description,omitempty"`
	Bindings    []bindingDoc `yaml:"bindings" toml:"bindings" json:"bindings"`
}

func controlKindString(k ControlKind) string {
	if k == ControlButton {
		return "button"
	}
	return "axis"
}

func parseControlKind(s string) ControlKind {
	if s == "button" {
		return ControlButton
	}
	return ControlAxis
}

func toControlPathDoc(p ControlPath) controlPathDoc {
	return controlPathDoc{Device: p.DeviceID, Control: p.ControlID, Kind: controlKindString(p.Kind)}
}

func (d controlPathDoc) toControlPath() ControlPath {
	return ControlPath{DeviceID: d.Device, ControlID: d.Control, Kind: parseControlKind(d.Kind)}
}

func curveKindString(c CurveKind) string {
	if c == CurvePower {
		return "power"
	}
	return "linear"
}

func parseCurveKind(s string) CurveKind {
	if s == "power" {
		return CurvePower
	}
	return CurveLinear
}

func toAxisTransformDoc(t AxisTransform) axisTransformDoc {
	dz, gain, gamma := t.Deadzone, t.Gain, t.Gamma
	min, max := t.Min, t.Max
	return axisTransformDoc{
		Deadzone: &dz, Invert: t.Invert, Curve: curveKindString(t.Curve),
		Gamma: &gamma, Gain: &gain, Min: &min, Max: &max,
	}
}

func (d *axisTransformDoc) toAxisTransform() AxisTransform {
	t := NewAxisTransform()
	if d == nil {
		return t
	}
	if d.Deadzone != nil {
		t.Deadzone = *d.Deadzone
	}
	t.Invert = d.Invert
	if d.Curve != "" {
		t.Curve = parseCurveKind(d.Curve)
	}
	if d.Gamma != nil {
		t.Gamma = *d.Gamma
	} else if d.GammaAlias != nil {
		t.Gamma = *d.GammaAlias
	}
	if d.Gain != nil {
		t.Gain = *d.Gain
	} else if d.GainAlias != nil {
		t.Gain = *d.GainAlias
	}
	if d.Min != nil {
		t.Min = *d.Min
	}
	if d.Max != nil {
		t.Max = *d.Max
	}
	return t
}

func toProfileDoc(p BindingProfile) profileDoc {
	doc := profileDoc{Version: p.Version, Name: p.Name, Description: p.Description}
	for _, rule := range p.Bindings {
		switch rule.Kind {
		case RuleAxis1d:
			if rule.Axis1d == nil {
				continue
			}
			input := toControlPathDoc(rule.Axis1d.Input)
			transform := toAxisTransformDoc(rule.Axis1d.Transform)
			doc.Bindings = append(doc.Bindings, bindingDoc{
				Kind: "axis1d", Action: rule.Axis1d.Action,
				Input: &input, Transform: &transform,
			})
		case RuleButton:
			if rule.Button == nil {
				continue
			}
			input := toControlPathDoc(rule.Button.Input)
			b := bindingDoc{Kind: "button", Action: rule.Button.Action, Input: &input}
			if rule.Button.AxisPressThreshold > 0 {
				thresh := rule.Button.AxisPressThreshold
				b.AxisPressThreshold = &thresh
			}
			doc.Bindings = append(doc.Bindings, b)
		case RuleAxis2d:
			if rule.Axis2d == nil {
				continue
			}
			x := toControlPathDoc(rule.Axis2d.X)
			y := toControlPathDoc(rule.Axis2d.Y)
			xt := toAxisTransformDoc(rule.Axis2d.XTransform)
			yt := toAxisTransformDoc(rule.Axis2d.YTransform)
			doc.Bindings = append(doc.Bindings, bindingDoc{
				Kind: "axis2d", Action: rule.Axis2d.Action,
				X: &x, Y: &y, XTransform: &xt, YTransform: &yt,
				RadialDeadzone: rule.Axis2d.RadialDeadzone,
			})
		}
	}
	return doc
}

func fromProfileDoc(doc profileDoc) BindingProfile {
	p := BindingProfile{Version: doc.Version, Name: doc.Name, Description: doc.Description}
	for _, b := range doc.Bindings {
		switch b.Kind {
		case "axis1d":
			if b.Input == nil {
				continue
			}
			p.Bindings = append(p.Bindings, BindingRule{
				Kind: RuleAxis1d,
				Axis1d: &Axis1dSpec{
					Action:    b.Action,
					Input:     b.Input.toControlPath(),
					Transform: b.Transform.toAxisTransform(),
				},
			})
		case "button":
			if b.Input == nil {
				continue
			}
			spec := &ButtonSpec{Action: b.Action, Input: b.Input.toControlPath()}
			if b.AxisPressThreshold != nil {
				spec.AxisPressThreshold = *b.AxisPressThreshold
			}
			p.Bindings = append(p.Bindings, BindingRule{Kind: RuleButton, Button: spec})
		case "axis2d":
			if b.X == nil || b.Y == nil {
				continue
			}
			p.Bindings = append(p.Bindings, BindingRule{
				Kind: RuleAxis2d,
				Axis2d: &Axis2dSpec{
					Action:         b.Action,
					X:              b.X.toControlPath(),
					Y:              b.Y.toControlPath(),
					XTransform:     b.XTransform.toAxisTransform(),
					YTransform:     b.YTransform.toAxisTransform(),
					RadialDeadzone: b.RadialDeadzone,
				},
			})
		}
	}
	return p
}
