package engine

import (
	"fmt"

	"github.com/inspectra/go-scopecam/internal/log"
	"github.com/inspectra/go-scopecam/pkg/hardware"
	"github.com/inspectra/go-scopecam/pkg/param"
)

// SetAuto handles a user-initiated auto/manual toggle with
// verify-and-rollback semantics: the hardware write happens first, and a
// rejected write reverts the UI toggle so the panel never shows a state
// the hardware refused. A confirming pull is always deferred because the
// hardware may adjust the dependent value itself on a mode change.
func (e *Engine) SetAuto(toggle param.ID, auto bool) error {
	if e.guard.Load() {
		return nil
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	manual, autoCode, ok := toggle.ModeCodes()
	if !ok {
		return fmt.Errorf("%w: %s is not a mode toggle", param.ErrUnknownParameter, toggle)
	}
	if e.mode == hardware.ModeNone {
		return param.ErrNoCamera
	}
	if _, ok := e.activeRange(toggle); !ok {
		return fmt.Errorf("%w: %s", param.ErrUnsupported, toggle)
	}

	// The two toggles use different hardware encodings; the codes come
	// from the catalog, never from the other parameter.
	target := manual
	if auto {
		target = autoCode
	}

	tctl := e.controls[toggle]
	prior := tctl.Value

	if err := e.coord.write(toggle, target); err != nil {
		tctl.Value = prior
		e.applyEnableRules()
		log.Warn("mode toggle rejected, reverting",
			"param", toggle.String(), "target", target, "error", err)
		e.notifyLocked()
		e.scheduleResync()
		return err
	}

	tctl.Value = target
	e.lastKnown[toggle] = target
	e.applyEnableRules()

	if !auto {
		// Entering manual: the hardware does not infer a manual value
		// from its prior auto reading, so push the slider's displayed
		// value as an explicit write. A rejection here is left for the
		// deferred pull to correct.
		if dep, ok := toggle.DependentValue(); ok {
			e.pushDependentLocked(dep)
		}
	}

	e.notifyLocked()
	e.scheduleResync()
	return nil
}

func (e *Engine) pushDependentLocked(dep param.ID) {
	r, ok := e.activeRange(dep)
	if !ok {
		return
	}
	q := r.Quantize(e.controls[dep].Value)
	if err := e.coord.write(dep, q); err != nil {
		log.Warn("manual value push failed", "param", dep.String(), "value", q, "error", err)
		return
	}
	e.controls[dep].Value = q
	e.lastKnown[dep] = q
}

// exposurePresets is the single-button exposure cycle:
// auto -> 50 -> 100 -> 300 -> 500 -> 1000 -> 1500 -> auto.
var exposurePresets = []int{50, 100, 300, 500, 1000, 1500}

// CycleExposurePreset advances the exposure preset cycle one step and
// returns a short label describing the new state.
func (e *Engine) CycleExposurePreset() (string, error) {
	snap := e.Snapshot()
	toggle, ok := snap.Control(param.AutoExposure.String())
	if !ok || !toggle.Visible {
		return "", fmt.Errorf("%w: %s", param.ErrUnsupported, param.AutoExposure)
	}
	expo, _ := snap.Control(param.ExposureTime.String())

	if toggle.Value == param.ExposureAuto {
		if err := e.SetAuto(param.AutoExposure, false); err != nil {
			return "", err
		}
		if err := e.SetValue(param.ExposureTime, float64(exposurePresets[0])); err != nil {
			return "", err
		}
		return fmt.Sprintf("exposure %d", exposurePresets[0]), nil
	}

	idx := nearestPresetIndex(expo.Value) + 1
	if idx >= len(exposurePresets) {
		if err := e.SetAuto(param.AutoExposure, true); err != nil {
			return "", err
		}
		return "auto exposure", nil
	}
	if err := e.SetValue(param.ExposureTime, float64(exposurePresets[idx])); err != nil {
		return "", err
	}
	return fmt.Sprintf("exposure %d", exposurePresets[idx]), nil
}

func nearestPresetIndex(value int) int {
	best, bestDist := 0, -1
	for i, p := range exposurePresets {
		d := value - p
		if d < 0 {
			d = -d
		}
		if bestDist < 0 || d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}
