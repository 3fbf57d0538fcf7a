package engine

import (
	"fmt"

	"github.com/inspectra/go-scopecam/internal/log"
	"github.com/inspectra/go-scopecam/pkg/hardware"
	"github.com/inspectra/go-scopecam/pkg/param"
)

// coordinator hides the single/stereo branching behind one read/write
// capability set. The no-camera case short-circuits before touching the
// hardware layer.
type coordinator interface {
	// read returns the current hardware value, false when unavailable.
	read(id param.ID) (int, bool)

	// write applies a value to every active sensor.
	write(id param.ID, value int) error

	// roles lists the hardware roles this coordinator targets, canonical
	// role first.
	roles() []hardware.Role
}

func coordinatorFor(backend hardware.Backend, mode hardware.Mode) coordinator {
	switch mode {
	case hardware.ModeSingle:
		return &singleCoordinator{backend: backend}
	case hardware.ModeStereo:
		return &stereoCoordinator{backend: backend}
	}
	return noneCoordinator{}
}

// noneCoordinator rejects every operation without invoking the backend.
type noneCoordinator struct{}

func (noneCoordinator) read(param.ID) (int, bool) { return 0, false }
func (noneCoordinator) write(param.ID, int) error { return param.ErrNoCamera }
func (noneCoordinator) roles() []hardware.Role    { return nil }

// singleCoordinator passes through to the one active handle.
type singleCoordinator struct {
	backend hardware.Backend
}

func (c *singleCoordinator) read(id param.ID) (int, bool) {
	v := c.backend.Get(hardware.RoleSingle, id)
	if v == hardware.Unavailable {
		return 0, false
	}
	return v, true
}

func (c *singleCoordinator) write(id param.ID, value int) error {
	if !c.backend.Set(hardware.RoleSingle, id, value) {
		return fmt.Errorf("%w: %s=%d", param.ErrWriteRejected, id, value)
	}
	return nil
}

func (c *singleCoordinator) roles() []hardware.Role {
	return []hardware.Role{hardware.RoleSingle}
}

// stereoCoordinator keeps the two sensors parameter-consistent. Writes go
// to both sides; reads prefer Left, which is canonical when available.
type stereoCoordinator struct {
	backend hardware.Backend
}

func (c *stereoCoordinator) read(id param.ID) (int, bool) {
	if v := c.backend.Get(hardware.RoleLeft, id); v != hardware.Unavailable {
		return v, true
	}
	if v := c.backend.Get(hardware.RoleRight, id); v != hardware.Unavailable {
		return v, true
	}
	return 0, false
}

// write issues the value to both sensors and succeeds only when both
// accept it. A partial failure is surfaced, not undone: the succeeded
// side keeps its new value and the next pull cycle re-reads each side,
// making the mismatch visible.
func (c *stereoCoordinator) write(id param.ID, value int) error {
	leftOK := c.backend.Set(hardware.RoleLeft, id, value)
	rightOK := c.backend.Set(hardware.RoleRight, id, value)
	switch {
	case leftOK && rightOK:
		return nil
	case !leftOK && !rightOK:
		return fmt.Errorf("%w: %s=%d on both sensors", param.ErrWriteRejected, id, value)
	default:
		failed := hardware.RoleLeft
		if leftOK {
			failed = hardware.RoleRight
		}
		log.Warn("partial stereo write", "param", id.String(), "value", value, "failed", string(failed))
		return fmt.Errorf("%w: %s=%d failed on %s sensor", param.ErrPartialStereoWrite, id, value, failed)
	}
}

func (c *stereoCoordinator) roles() []hardware.Role {
	return []hardware.Role{hardware.RoleLeft, hardware.RoleRight}
}
