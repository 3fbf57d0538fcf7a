package hardware

import (
	"testing"

	"github.com/inspectra/go-scopecam/pkg/param"
)

func TestSim_DefaultsAndRanges(t *testing.T) {
	s := NewSim()

	r, ok := s.GetRange(RoleSingle, param.Brightness)
	if !ok {
		t.Fatal("brightness range unavailable")
	}
	if r.Min != -64 || r.Max != 64 || r.Default != 0 {
		t.Errorf("brightness range = %+v, want [-64, 64] default 0", r)
	}
	if got := s.Get(RoleSingle, param.Brightness); got != 0 {
		t.Errorf("initial brightness = %d, want default 0", got)
	}
}

func TestSim_RejectsOutOfRange(t *testing.T) {
	s := NewSim()
	if s.Set(RoleSingle, param.Brightness, 500) {
		t.Error("out-of-range write accepted")
	}
	if !s.Set(RoleSingle, param.Brightness, 64) {
		t.Error("in-range write rejected")
	}
}

func TestSim_RolesAreIndependent(t *testing.T) {
	s := NewSim()
	if !s.Set(RoleLeft, param.Gamma, 150) {
		t.Fatal("left write rejected")
	}
	if got := s.Get(RoleRight, param.Gamma); got != 100 {
		t.Errorf("right gamma = %d, want untouched default 100", got)
	}
}

func TestSim_NoneRoleUnavailable(t *testing.T) {
	s := NewSim()
	if got := s.Get(RoleNone, param.Brightness); got != Unavailable {
		t.Errorf("Get(none) = %d, want sentinel %d", got, Unavailable)
	}
	if s.Set(RoleNone, param.Brightness, 0) {
		t.Error("Set(none) accepted")
	}
	if _, ok := s.GetRange(RoleNone, param.Brightness); ok {
		t.Error("GetRange(none) answered")
	}
}

func TestMode_Roles(t *testing.T) {
	if got := ModeSingle.Roles(); len(got) != 1 || got[0] != RoleSingle {
		t.Errorf("single roles = %v", got)
	}
	got := ModeStereo.Roles()
	if len(got) != 2 || got[0] != RoleLeft || got[1] != RoleRight {
		t.Errorf("stereo roles = %v, want left then right", got)
	}
	if ModeNone.Roles() != nil {
		t.Error("none mode should expose no roles")
	}
}
