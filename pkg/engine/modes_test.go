package engine

import (
	"errors"
	"fmt"
	"testing"

	"github.com/inspectra/go-scopecam/pkg/hardware"
	"github.com/inspectra/go-scopecam/pkg/param"
)

func TestSetAuto_ToManualPushesSliderValue(t *testing.T) {
	e, m := newSingleEngine(t)
	e.Pull()

	if err := e.SetAuto(param.AutoExposure, false); err != nil {
		t.Fatalf("SetAuto: %v", err)
	}

	// Mode write first, then the explicit push of the displayed value:
	// the hardware does not infer a manual value from its auto reading.
	if len(m.setCalls) != 2 {
		t.Fatalf("set calls = %+v, want mode write then value write", m.setCalls)
	}
	if m.setCalls[0].id != param.AutoExposure || m.setCalls[0].value != param.ExposureManual {
		t.Errorf("first write = %+v, want auto_exposure=%d", m.setCalls[0], param.ExposureManual)
	}
	if m.setCalls[1].id != param.ExposureTime || m.setCalls[1].value != 100 {
		t.Errorf("second write = %+v, want exposure_time=100", m.setCalls[1])
	}

	if got := control(t, e, param.ExposureTime); !got.Enabled {
		t.Error("exposure slider should be enabled in manual mode")
	}
}

func TestSetAuto_ToAutoDisablesSlider(t *testing.T) {
	e, m := newSingleEngine(t)
	m.values[hardware.RoleSingle][param.AutoExposure] = param.ExposureManual
	e.Pull()

	if err := e.SetAuto(param.AutoExposure, true); err != nil {
		t.Fatalf("SetAuto: %v", err)
	}

	// Going auto writes the mode only; no dependent value push.
	if len(m.setCalls) != 1 || m.setCalls[0].value != param.ExposureAuto {
		t.Errorf("set calls = %+v, want single auto_exposure=%d write", m.setCalls, param.ExposureAuto)
	}
	if got := control(t, e, param.ExposureTime); got.Enabled {
		t.Error("exposure slider should be disabled in auto mode")
	}
}

func TestSetAuto_RollbackOnRejectedWrite(t *testing.T) {
	e, m := newSingleEngine(t)
	e.Pull()
	m.rejectSet[hardware.RoleSingle][param.AutoExposure] = true

	err := e.SetAuto(param.AutoExposure, false)
	if !errors.Is(err, param.ErrWriteRejected) {
		t.Fatalf("error = %v, want ErrWriteRejected", err)
	}

	// The toggle must end where the hardware is, not where the user
	// asked: back in the auto position, slider still disabled.
	if got := control(t, e, param.AutoExposure).Value; got != param.ExposureAuto {
		t.Errorf("toggle value = %d, want %d (reverted to auto)", got, param.ExposureAuto)
	}
	if got := control(t, e, param.ExposureTime); got.Enabled {
		t.Error("exposure slider must stay disabled after rollback")
	}

	// A resynchronizing pull is queued, never run inline.
	e.mu.Lock()
	scheduled := e.resync != nil
	e.mu.Unlock()
	if !scheduled {
		t.Error("no resync pull scheduled after rejected toggle")
	}
}

func TestSetAuto_WhiteBalanceEncoding(t *testing.T) {
	e, m := newSingleEngine(t)
	e.Pull()

	if err := e.SetAuto(param.AutoWhiteBal, false); err != nil {
		t.Fatalf("SetAuto manual: %v", err)
	}
	if calls := m.setsFor(param.AutoWhiteBal); len(calls) != 1 || calls[0].value != param.WhiteBalanceManual {
		t.Errorf("manual writes = %+v, want auto_white_balance=0", calls)
	}

	if err := e.SetAuto(param.AutoWhiteBal, true); err != nil {
		t.Fatalf("SetAuto auto: %v", err)
	}
	calls := m.setsFor(param.AutoWhiteBal)
	if calls[len(calls)-1].value != param.WhiteBalanceAuto {
		t.Errorf("auto write = %+v, want auto_white_balance=1", calls[len(calls)-1])
	}
}

func TestSetAuto_NonToggleRejected(t *testing.T) {
	e, _ := newSingleEngine(t)
	e.Pull()
	if err := e.SetAuto(param.Brightness, true); !errors.Is(err, param.ErrUnknownParameter) {
		t.Errorf("error = %v, want ErrUnknownParameter", err)
	}
}

func TestSetAuto_UnsupportedToggle(t *testing.T) {
	e, m := newSingleEngine(t)
	m.ranges[hardware.RoleSingle][param.AutoExposure] = param.Range{Min: 3, Max: 3}
	e.Pull()

	if err := e.SetAuto(param.AutoExposure, false); !errors.Is(err, param.ErrUnsupported) {
		t.Errorf("error = %v, want ErrUnsupported", err)
	}
	if calls := m.setsFor(param.AutoExposure); len(calls) != 0 {
		t.Errorf("unsupported toggle was written: %+v", calls)
	}
}

func TestCycleExposurePreset_FullCycle(t *testing.T) {
	e, _ := newSingleEngine(t)
	e.Pull()

	// auto -> 50 -> 100 -> 300 -> 500 -> 1000 -> 1500 -> auto
	want := []string{
		"exposure 50", "exposure 100", "exposure 300",
		"exposure 500", "exposure 1000", "exposure 1500",
		"auto exposure",
	}
	for i, expect := range want {
		label, err := e.CycleExposurePreset()
		if err != nil {
			t.Fatalf("cycle step %d: %v", i, err)
		}
		if label != expect {
			t.Fatalf("cycle step %d = %q, want %q", i, label, expect)
		}
	}

	if got := control(t, e, param.AutoExposure).Value; got != param.ExposureAuto {
		t.Errorf("toggle after full cycle = %d, want auto (%d)", got, param.ExposureAuto)
	}
}

func TestCycleExposurePreset_ResumesFromNearest(t *testing.T) {
	e, m := newSingleEngine(t)
	m.values[hardware.RoleSingle][param.AutoExposure] = param.ExposureManual
	m.values[hardware.RoleSingle][param.ExposureTime] = 320
	e.Pull()

	label, err := e.CycleExposurePreset()
	if err != nil {
		t.Fatalf("cycle: %v", err)
	}
	// 320 is nearest preset 300; the cycle advances to 500.
	if label != fmt.Sprintf("exposure %d", 500) {
		t.Errorf("label = %q, want \"exposure 500\"", label)
	}
}
