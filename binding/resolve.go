package binding

import "github.com/ardnew/stickup/model"

const defaultAxisPressThreshold = 0.5
const maxAxisPressThreshold = 0.99

// Resolve evaluates every rule in profile against devices and returns the
// combined action output. Resolve has no side effects and is
// deterministic for a given (profile, devices) pair.
func Resolve(profile BindingProfile, devices map[string]model.DeviceState) Output {
	out := NewOutput()
	for _, rule := range profile.Bindings {
		switch rule.Kind {
		case RuleAxis1d:
			resolveAxis1d(rule.Axis1d, devices, &out)
		case RuleButton:
			resolveButton(rule.Button, devices, &out)
		case RuleAxis2d:
			resolveAxis2d(rule.Axis2d, devices, &out)
		}
	}
	return out
}

func readAxis(path ControlPath, devices map[string]model.DeviceState) (float64, bool) {
	st, ok := devices[path.DeviceID]
	if !ok {
		return 0, false
	}
	switch path.Kind {
	case ControlButton:
		if st.Buttons[path.ControlID] {
			return 1, true
		}
		return 0, true
	default:
		return float64(st.Axes[path.ControlID]), true
	}
}

func readButton(path ControlPath, devices map[string]model.DeviceState) (bool, bool) {
	st, ok := devices[path.DeviceID]
	if !ok {
		return false, false
	}
	if path.Kind == ControlButton {
		return st.Buttons[path.ControlID], true
	}
	return false, false
}

func resolveAxis1d(spec *Axis1dSpec, devices map[string]model.DeviceState, out *Output) {
	if spec == nil {
		return
	}
	if _, exists := devices[spec.Input.DeviceID]; !exists {
		return
	}
	raw, _ := readAxis(spec.Input, devices)
	out.Axis[spec.Action] = float32(spec.Transform.Apply(raw))
}

func resolveButton(spec *ButtonSpec, devices map[string]model.DeviceState, out *Output) {
	if spec == nil {
		return
	}
	if _, exists := devices[spec.Input.DeviceID]; !exists {
		return
	}

	if spec.Input.Kind == ControlButton {
		pressed, _ := readButton(spec.Input, devices)
		out.Buttons[spec.Action] = pressed
		return
	}

	threshold := spec.AxisPressThreshold
	if threshold <= 0 {
		threshold = defaultAxisPressThreshold
	}
	if threshold > maxAxisPressThreshold {
		threshold = maxAxisPressThreshold
	}
	raw, _ := readAxis(spec.Input, devices)
	out.Buttons[spec.Action] = abs(raw) >= threshold
}

func resolveAxis2d(spec *Axis2dSpec, devices map[string]model.DeviceState, out *Output) {
	if spec == nil {
		return
	}
	if _, exists := devices[spec.X.DeviceID]; !exists {
		return
	}
	if _, exists := devices[spec.Y.DeviceID]; !exists {
		return
	}

	rawX, _ := readAxis(spec.X, devices)
	rawY, _ := readAxis(spec.Y, devices)
	x := spec.XTransform.Apply(rawX)
	y := spec.YTransform.Apply(rawY)

	if spec.RadialDeadzone != nil {
		x, y = radialDeadzone(x, y, *spec.RadialDeadzone)
	}

	out.Vec2[spec.Action] = [2]float32{float32(x), float32(y)}
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
