package engine

import (
	"github.com/inspectra/go-scopecam/internal/log"
	"github.com/inspectra/go-scopecam/pkg/hardware"
	"github.com/inspectra/go-scopecam/pkg/param"
)

// Reset restores every supported parameter to its default: the
// hardware-reported default when it lies inside the reported bounds, the
// static catalog default otherwise. Unsupported parameters are excluded
// entirely. Value sliders are written first in catalog order, then the
// white-balance mode, and the exposure mode is always reset to Auto last.
// Afterwards the capability cache is invalidated and a pull cycle
// re-reads what the hardware actually settled on.
//
// Individual write rejections are logged and skipped; the first one is
// returned after the reset completes.
func (e *Engine) Reset() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.mode == hardware.ModeNone {
		return param.ErrNoCamera
	}

	var firstErr error
	for _, id := range param.All {
		if id.IsModeToggle() {
			continue
		}
		if err := e.resetOneLocked(id); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	// Mode toggles after their dependent values, exposure mode last.
	for _, id := range []param.ID{param.AutoWhiteBal, param.AutoExposure} {
		if err := e.resetOneLocked(id); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	e.cache.invalidateAll()
	e.lastKnown = make(map[param.ID]int)
	e.pullLocked()
	log.Info("parameters reset to defaults", "mode", string(e.mode))
	return firstErr
}

func (e *Engine) resetOneLocked(id param.ID) error {
	r, ok := e.activeRange(id)
	if !ok {
		return nil // not supported, not an error
	}
	if _, auto, ok := id.ModeCodes(); ok {
		// Mode toggles always land in the auto position on reset.
		if err := e.coord.write(id, auto); err != nil {
			log.Warn("reset write failed", "param", id.String(), "value", auto, "error", err)
			return err
		}
		return nil
	}
	value := r.Default
	if !r.DefaultInRange() {
		static, err := param.StaticDefault(id)
		if err != nil {
			return err
		}
		value = r.Quantize(static)
	}
	if err := e.coord.write(id, value); err != nil {
		log.Warn("reset write failed", "param", id.String(), "value", value, "error", err)
		return err
	}
	return nil
}
