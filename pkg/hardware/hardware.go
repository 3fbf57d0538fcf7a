// Package hardware abstracts the camera sensor layer behind a narrow
// get/set/range interface. The synchronization engine never talks to a
// device directly; it targets one or two Backend handles selected by the
// current operating mode.
package hardware

import "github.com/inspectra/go-scopecam/pkg/param"

// Role names the hardware handle a logical operation targets.
type Role string

const (
	RoleNone   Role = "none"
	RoleSingle Role = "single"
	RoleLeft   Role = "left"
	RoleRight  Role = "right"
)

// Mode is the camera session's operating mode. It is owned by the camera
// session collaborator; the parameter engine only reads it and reacts to
// changes.
type Mode string

const (
	ModeNone   Mode = "none"
	ModeSingle Mode = "single"
	ModeStereo Mode = "stereo"
)

// Roles returns the hardware roles active in this mode, in read-preference
// order (Left is canonical in stereo).
func (m Mode) Roles() []Role {
	switch m {
	case ModeSingle:
		return []Role{RoleSingle}
	case ModeStereo:
		return []Role{RoleLeft, RoleRight}
	}
	return nil
}

// Sentinel returned by Get when a value is unavailable or unknown.
// The hardware API reserves -1 for this; it is never a real value.
const Unavailable = -1

// Backend is the ioctl-equivalent surface of one or more camera sensors.
// Calls are synchronous and fast; implementations must be safe for use
// from a single goroutine at a time.
type Backend interface {
	// Get returns the current value of a parameter, or Unavailable.
	Get(role Role, id param.ID) int

	// Set writes a parameter value. A false return means the hardware
	// rejected the write.
	Set(role Role, id param.ID, value int) bool

	// GetRange queries bounds, step, default and current value.
	// ok is false when the hardware cannot answer at all; a degenerate
	// range (min == max) with ok true means "present but not adjustable".
	GetRange(role Role, id param.ID) (r param.Range, ok bool)
}
