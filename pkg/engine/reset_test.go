package engine

import (
	"errors"
	"testing"
	"time"

	"github.com/inspectra/go-scopecam/pkg/hardware"
	"github.com/inspectra/go-scopecam/pkg/param"
)

func TestReset_RestoresHardwareDefaults(t *testing.T) {
	e, m := newSingleEngine(t)
	m.values[hardware.RoleSingle][param.Brightness] = 40
	m.values[hardware.RoleSingle][param.Saturation] = 10
	e.Pull()

	if err := e.Reset(); err != nil {
		t.Fatalf("Reset: %v", err)
	}

	if got := m.values[hardware.RoleSingle][param.Brightness]; got != 0 {
		t.Errorf("brightness after reset = %d, want hardware default 0", got)
	}
	if got := m.values[hardware.RoleSingle][param.Saturation]; got != 64 {
		t.Errorf("saturation after reset = %d, want hardware default 64", got)
	}
	if got := control(t, e, param.Brightness).Value; got != 0 {
		t.Errorf("UI brightness after reset = %d, want 0", got)
	}
}

func TestReset_StaticFallbackWhenHardwareDefaultUnusable(t *testing.T) {
	e, m := newSingleEngine(t)
	// Hardware reports a default outside its own bounds.
	m.ranges[hardware.RoleSingle][param.Contrast] = param.Range{Min: 0, Max: 95, Step: 1, Default: 200}
	e.Pull()

	if err := e.Reset(); err != nil {
		t.Fatalf("Reset: %v", err)
	}

	// Static catalog default for contrast is 2.
	calls := m.setsFor(param.Contrast)
	if len(calls) != 1 || calls[0].value != 2 {
		t.Errorf("contrast writes = %+v, want one write of static default 2", calls)
	}
}

func TestReset_SkipsUnsupported(t *testing.T) {
	e, m := newSingleEngine(t)
	m.ranges[hardware.RoleSingle][param.Gain] = param.Range{Min: 0, Max: 0}
	e.Pull()

	if err := e.Reset(); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if calls := m.setsFor(param.Gain); len(calls) != 0 {
		t.Errorf("unsupported parameter written during reset: %+v", calls)
	}
}

func TestReset_ExposureModeWrittenLastAsAuto(t *testing.T) {
	e, m := newSingleEngine(t)
	m.values[hardware.RoleSingle][param.AutoExposure] = param.ExposureManual
	e.Pull()

	if err := e.Reset(); err != nil {
		t.Fatalf("Reset: %v", err)
	}

	if len(m.setCalls) == 0 {
		t.Fatal("reset issued no writes")
	}
	last := m.setCalls[len(m.setCalls)-1]
	if last.id != param.AutoExposure || last.value != param.ExposureAuto {
		t.Errorf("last write = %+v, want auto_exposure=%d", last, param.ExposureAuto)
	}

	// White-balance mode is written after the value sliders too.
	var wbModeIdx, wbValueIdx int
	for i, c := range m.setCalls {
		switch c.id {
		case param.AutoWhiteBal:
			wbModeIdx = i
		case param.WhiteBalance:
			wbValueIdx = i
		}
	}
	if wbModeIdx < wbValueIdx {
		t.Errorf("white-balance mode written at %d before its value at %d", wbModeIdx, wbValueIdx)
	}
}

func TestReset_InvalidatesCapabilityCache(t *testing.T) {
	e, m := newSingleEngine(t)
	e.Pull()
	before := m.rangeCalls

	e.Pull() // memoized, no new queries
	if m.rangeCalls != before {
		t.Fatalf("pull after pull queried ranges again (%d -> %d)", before, m.rangeCalls)
	}

	if err := e.Reset(); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if m.rangeCalls == before {
		t.Error("reset did not invalidate the capability cache")
	}
}

func TestReset_NoCamera(t *testing.T) {
	e := New(newMockBackend(), hardware.ModeNone, time.Hour)
	defer e.Close()
	if err := e.Reset(); !errors.Is(err, param.ErrNoCamera) {
		t.Errorf("error = %v, want ErrNoCamera", err)
	}
}

func TestReset_ReportsFirstRejection(t *testing.T) {
	e, m := newSingleEngine(t)
	m.values[hardware.RoleSingle][param.Brightness] = 40
	e.Pull()
	m.rejectSet[hardware.RoleSingle][param.Brightness] = true

	err := e.Reset()
	if !errors.Is(err, param.ErrWriteRejected) {
		t.Fatalf("error = %v, want ErrWriteRejected", err)
	}
	// The rest of the catalog is still reset.
	if calls := m.setsFor(param.Saturation); len(calls) == 0 {
		t.Error("rejection of one parameter aborted the rest of the reset")
	}
}
