package param

// Range describes what the hardware reports for one parameter:
// bounds, step, factory default and the value currently held.
type Range struct {
	Min     int `json:"min"`
	Max     int `json:"max"`
	Step    int `json:"step"`
	Default int `json:"default"`
	Current int `json:"current"`
}

// Supported reports whether the range describes a genuinely adjustable
// control. Hardware signals "not supported" with a degenerate range
// (min == max), not with an error, so this check is load-bearing for the
// whole capability-detection path.
func (r Range) Supported() bool {
	return r.Min != r.Max
}

// EffectiveStep returns the step size to quantize values with.
// Hardware occasionally reports step 0 for controls it considers
// continuous; treat that as 1.
func (r Range) EffectiveStep() int {
	if r.Step <= 0 {
		return 1
	}
	return r.Step
}

// Quantize rounds v to the nearest step multiple and clamps it into
// [Min, Max]. Order is fixed: round first, clamp second. Clamping before
// rounding can step the result back outside the bounds.
func (r Range) Quantize(v int) int {
	step := r.EffectiveStep()
	q := v
	if step > 1 {
		half := step / 2
		if v >= 0 {
			q = ((v + half) / step) * step
		} else {
			q = ((v - half) / step) * step
		}
	}
	if q < r.Min {
		return r.Min
	}
	if q > r.Max {
		return r.Max
	}
	return q
}

// DefaultInRange reports whether the hardware default is usable, i.e.
// inside the reported bounds. Resets fall back to the static catalog
// default otherwise.
func (r Range) DefaultInRange() bool {
	return r.Default >= r.Min && r.Default <= r.Max
}
