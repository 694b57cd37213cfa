// Package binding maps device-local input state onto named application
// actions. Resolve is a pure function: given a profile and the current
// labeled device state, it returns the resolved action outputs with no
// side effects.
package binding

// ControlKind distinguishes whether a ControlPath reads an axis or a
// button from a device's labeled state.
type ControlKind int

// Control kinds.
const (
	ControlAxis ControlKind = iota
	ControlButton
)

// ControlPath names one control on one managed device.
type ControlPath struct {
	DeviceID  string      `yaml:"device" toml:"device" json:"device"`
	ControlID string      `yaml:"control" toml:"control" json:"control"`
	Kind      ControlKind `yaml:"-" toml:"-" json:"-"`
}

// CurveKind selects the axis response curve.
type CurveKind int

// Curve kinds.
const (
	CurveLinear CurveKind = iota
	CurvePower
)

// AxisTransform shapes a raw axis reading into its final output value.
// Zero value is NOT the default; use NewAxisTransform or rely on the
// persistence codecs, which fill in documented defaults for missing
// fields.
type AxisTransform struct {
	Deadzone float64
	Invert   bool
	Curve    CurveKind
	Gamma    float64
	Gain     float64
	Min      float64
	Max      float64
}

// NewAxisTransform returns an AxisTransform with the documented defaults:
// deadzone 0.05, linear curve with gamma 1.0, gain 1.0, range [-1, 1].
func NewAxisTransform() AxisTransform {
	return AxisTransform{
		Deadzone: 0.05,
		Curve:    CurveLinear,
		Gamma:    1.0,
		Gain:     1.0,
		Min:      -1,
		Max:      1,
	}
}

// Axis1dSpec resolves one control through the axis shaping pipeline into
// a scalar action.
type Axis1dSpec struct {
	Action    string
	Input     ControlPath
	Transform AxisTransform
}

// ButtonSpec resolves one control into a boolean action. If Input names
// an axis control, AxisPressThreshold (default 0.5, capped at 0.99)
// converts magnitude into a boolean edge.
type ButtonSpec struct {
	Action             string
	Input              ControlPath
	AxisPressThreshold float64
}

// Axis2dSpec resolves two controls through independent shaping pipelines
// into a 2-vector action, optionally passed through a radial deadzone.
type Axis2dSpec struct {
	Action           string
	X, Y             ControlPath
	XTransform       AxisTransform
	YTransform       AxisTransform
	RadialDeadzone   *float64
}

// RuleKind distinguishes the three kinds of BindingRule.
type RuleKind int

// Rule kinds.
const (
	RuleAxis1d RuleKind = iota
	RuleButton
	RuleAxis2d
)

// BindingRule is one entry in a BindingProfile. The rule kind set is
// closed, so a tagged struct carries exactly one of Axis1d/Button/Axis2d,
// selected by Kind — the same shape persistence codecs serialize under
// the "kind" discriminator.
type BindingRule struct {
	Kind   RuleKind
	Axis1d *Axis1dSpec
	Button *ButtonSpec
	Axis2d *Axis2dSpec
}

// BindingProfile is a named, versioned collection of binding rules.
type BindingProfile struct {
	Version     int
	Name        string
	Description string
	Bindings    []BindingRule
}

// Output is the resolved action state for one BindingProfile evaluation.
// Absent keys mean the corresponding rule's device or control was
// missing, not zero.
type Output struct {
	Axis    map[string]float32
	Buttons map[string]bool
	Vec2    map[string][2]float32
}

// NewOutput returns an empty, non-nil Output.
func NewOutput() Output {
	return Output{
		Axis:    make(map[string]float32),
		Buttons: make(map[string]bool),
		Vec2:    make(map[string][2]float32),
	}
}
