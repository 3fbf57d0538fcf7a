// Package engine implements the camera parameter synchronization engine:
// the reconciliation loop that keeps a control surface and one or two
// camera sensors consistent under polling, user edits, operating-mode
// changes and partial hardware support.
//
// The engine pulls hardware state into the bound control table on a
// fixed-interval tick and pushes user edits back to the hardware. A
// reentrancy guard suppresses pushes while the engine is itself applying
// hardware-sourced values, which is what prevents write feedback loops
// between bound controls and their change handlers.
package engine

import (
	"fmt"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/inspectra/go-scopecam/internal/log"
	"github.com/inspectra/go-scopecam/pkg/hardware"
	"github.com/inspectra/go-scopecam/pkg/param"
)

// DefaultPollInterval is the cadence of the pull cycle.
const DefaultPollInterval = time.Second

// resyncDelay is how long after a mode toggle the confirming pull runs.
// The hardware may adjust dependent values itself on a mode change, so
// the pull is deferred rather than nested into the toggle call.
const resyncDelay = 300 * time.Millisecond

// UpdateFunc receives a state snapshot after every cycle that changed
// UI-visible state. Handlers may call back into the engine synchronously;
// the reentrancy guard turns such echoes into no-ops.
type UpdateFunc func(Snapshot)

// Engine is the reconciler bound to one parameter panel. All entry points
// are serialized by one mutex: a pull in progress completes before a
// queued push runs, and vice versa.
type Engine struct {
	backend  hardware.Backend
	interval time.Duration

	// guard is set while the engine is publishing hardware-sourced state
	// to the UI. It is checked before the mutex so a bound control's
	// change handler can re-enter SetValue synchronously without
	// deadlocking, and without re-issuing the write it just received.
	guard atomic.Bool

	mu        sync.Mutex
	mode      hardware.Mode
	coord     coordinator
	cache     *capabilityCache
	controls  controlStates
	lastKnown map[param.ID]int
	onUpdate  UpdateFunc
	resync    *time.Timer
	closed    bool

	stop     chan struct{}
	stopOnce sync.Once
}

// New creates an engine over the given backend in the given operating
// mode. Run starts the poll loop; the engine is usable (pull/push) before
// Run is called, which tests rely on.
func New(backend hardware.Backend, mode hardware.Mode, interval time.Duration) *Engine {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Engine{
		backend:   backend,
		interval:  interval,
		mode:      mode,
		coord:     coordinatorFor(backend, mode),
		cache:     newCapabilityCache(backend),
		controls:  newControlStates(),
		lastKnown: make(map[param.ID]int),
		stop:      make(chan struct{}),
	}
}

// SetOnUpdate installs the change-notification hook the UI layer binds to.
func (e *Engine) SetOnUpdate(fn UpdateFunc) {
	e.mu.Lock()
	e.onUpdate = fn
	e.mu.Unlock()
}

// Run executes an initial pull and then polls at the configured interval
// until Close is called. Blocks; run it in a goroutine.
func (e *Engine) Run() {
	e.Pull()
	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()
	for {
		select {
		case <-e.stop:
			return
		case <-ticker.C:
			e.Pull()
		}
	}
}

// Close stops the poll loop and cancels any deferred resync. In-flight
// pull state is discarded; no partial hardware writes are left pending
// because every cycle runs to completion under the mutex.
func (e *Engine) Close() {
	e.stopOnce.Do(func() { close(e.stop) })
	e.mu.Lock()
	e.closed = true
	if e.resync != nil {
		e.resync.Stop()
		e.resync = nil
	}
	e.mu.Unlock()
}

// Mode returns the current operating mode.
func (e *Engine) Mode() hardware.Mode {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.mode
}

// SetMode reacts to an operating-mode change from the camera session:
// capability can differ between modes, so the cache is cleared and a
// pull re-discovers everything against the new sensor set.
func (e *Engine) SetMode(mode hardware.Mode) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if mode == e.mode {
		return
	}
	log.Info("camera mode changed", "from", string(e.mode), "to", string(mode))
	e.mode = mode
	e.coord = coordinatorFor(e.backend, mode)
	e.cache.invalidateAll()
	e.lastKnown = make(map[param.ID]int)
	e.pullLocked()
}

// Pull runs one hardware-to-UI synchronization pass. Also the entry point
// for the external "parameter changed" notification, outside the normal
// timer cadence. Idempotent: with unchanged hardware state it mutates
// nothing and notifies nobody.
func (e *Engine) Pull() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.pullLocked()
}

func (e *Engine) pullLocked() {
	e.guard.Store(true)
	defer e.guard.Store(false)

	changed := false
	for _, id := range param.All {
		ctl := e.controls[id]
		r, ok := e.activeRange(id)
		if !ok {
			// Unsupported on every active sensor: hide the control and
			// exclude it from push and reset.
			if ctl.Visible || ctl.Enabled {
				ctl.Visible = false
				ctl.Enabled = false
				changed = true
			}
			delete(e.lastKnown, id)
			continue
		}
		if !ctl.Visible {
			ctl.Visible = true
			changed = true
		}
		step := r.EffectiveStep()
		if ctl.Min != r.Min || ctl.Max != r.Max || ctl.Step != step {
			ctl.Min, ctl.Max, ctl.Step = r.Min, r.Max, step
			changed = true
		}
		if v, ok := e.coord.read(id); ok {
			if ctl.Value != v {
				ctl.Value = v
				changed = true
			}
			e.lastKnown[id] = v
		}
	}
	if e.applyEnableRules() {
		changed = true
	}
	if changed {
		e.notifyLocked()
	}
}

// applyEnableRules derives the enabled flags: plain controls follow
// visibility, a dependent value slider is additionally gated on its mode
// toggle sitting in the manual position.
func (e *Engine) applyEnableRules() bool {
	changed := false
	for _, id := range param.All {
		ctl := e.controls[id]
		enabled := ctl.Visible
		if enabled {
			if toggle, gated := modeToggleFor(id); gated {
				tctl := e.controls[toggle]
				if tctl.Visible {
					manual, _, _ := toggle.ModeCodes()
					enabled = tctl.Value == manual
				}
			}
		}
		if ctl.Enabled != enabled {
			ctl.Enabled = enabled
			changed = true
		}
	}
	return changed
}

// modeToggleFor returns the toggle gating a dependent value slider.
func modeToggleFor(id param.ID) (param.ID, bool) {
	switch id {
	case param.ExposureTime:
		return param.AutoExposure, true
	case param.WhiteBalance:
		return param.AutoWhiteBal, true
	}
	return 0, false
}

// activeRange finds the capability entry for id against the active roles,
// canonical role first.
func (e *Engine) activeRange(id param.ID) (param.Range, bool) {
	for _, role := range e.coord.roles() {
		if e.cache.isSupported(role, id) {
			r, _ := e.cache.getRange(role, id)
			return r, true
		}
	}
	return param.Range{}, false
}

// SetValue handles a user edit on a bound value control: round to the
// nearest integer, quantize to the hardware step, clamp into range, skip
// the write when the hardware already holds the value, otherwise write.
// On write failure the displayed value is left as the user set it; the
// next pull cycle is the source-of-truth correction.
//
// No-ops while the reentrancy guard is set: that is what keeps the pull
// cycle's own UI writes from re-entering this path.
func (e *Engine) SetValue(id param.ID, value float64) error {
	if e.guard.Load() {
		return nil
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	if !id.Valid() {
		return fmt.Errorf("%w: id %d", param.ErrUnknownParameter, int(id))
	}
	if id.IsModeToggle() {
		return fmt.Errorf("%s is a mode toggle, use SetAuto", id)
	}
	if e.mode == hardware.ModeNone {
		return param.ErrNoCamera
	}
	r, ok := e.activeRange(id)
	if !ok {
		return fmt.Errorf("%w: %s", param.ErrUnsupported, id)
	}

	q := r.Quantize(int(math.Round(value)))
	ctl := e.controls[id]
	display := ctl.Value
	ctl.Value = q
	if last, have := e.lastKnown[id]; have && last == q {
		// Hardware already holds this value; no redundant I/O.
		if display != q {
			e.notifyLocked()
		}
		return nil
	}

	if err := e.coord.write(id, q); err != nil {
		log.Warn("parameter write failed", "param", id.String(), "value", q, "error", err)
		e.notifyLocked()
		return err
	}
	e.lastKnown[id] = q
	log.Debug("parameter written", "param", id.String(), "value", q)
	e.notifyLocked()
	return nil
}

// SetValueByName is SetValue keyed by the canonical parameter name.
func (e *Engine) SetValueByName(name string, value float64) error {
	id, err := param.IDOf(name)
	if err != nil {
		return err
	}
	return e.SetValue(id, value)
}

// Snapshot returns the current control-surface state.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.controls.snapshot(e.mode)
}

// notifyLocked publishes a snapshot with the guard held so a handler that
// echoes values back into SetValue is suppressed instead of deadlocked.
func (e *Engine) notifyLocked() {
	if e.onUpdate == nil {
		return
	}
	was := e.guard.Swap(true)
	e.onUpdate(e.controls.snapshot(e.mode))
	e.guard.Store(was)
}

// scheduleResync queues a confirming pull strictly after the current
// call returns. Mode toggles use this: the hardware may adjust the
// dependent value itself, and nesting the pull into the toggle would
// re-enter the capability cache mid-mutation.
func (e *Engine) scheduleResync() {
	if e.closed {
		return
	}
	if e.resync != nil {
		e.resync.Stop()
	}
	e.resync = time.AfterFunc(resyncDelay, e.Pull)
}
