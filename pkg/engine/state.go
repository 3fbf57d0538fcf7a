package engine

import (
	"github.com/inspectra/go-scopecam/pkg/hardware"
	"github.com/inspectra/go-scopecam/pkg/param"
)

// Control is the UI-visible bound state of one parameter: the displayed
// value, the hardware bounds the slider should adopt, and the
// enabled/visible flags the panel renders from.
type Control struct {
	Name    string `json:"name"`
	Value   int    `json:"value"`
	Min     int    `json:"min"`
	Max     int    `json:"max"`
	Step    int    `json:"step"`
	Enabled bool   `json:"enabled"`
	Visible bool   `json:"visible"`
}

// Snapshot is the full control-surface state at one instant. It is what
// the web layer serves and what the hub broadcasts after each change.
type Snapshot struct {
	Mode     string    `json:"mode"`
	Controls []Control `json:"controls"`
}

// controlStates is the per-panel visibility/capability table, keyed by
// parameter in catalog order. Populated once at engine construction;
// the pull cycle mutates entries in place instead of probing for the
// existence of optional controls at runtime.
type controlStates map[param.ID]*Control

func newControlStates() controlStates {
	cs := make(controlStates, len(param.All))
	for _, id := range param.All {
		cs[id] = &Control{Name: id.String()}
	}
	return cs
}

// snapshot copies the control table into catalog order.
func (cs controlStates) snapshot(mode hardware.Mode) Snapshot {
	s := Snapshot{Mode: string(mode), Controls: make([]Control, 0, len(param.All))}
	for _, id := range param.All {
		s.Controls = append(s.Controls, *cs[id])
	}
	return s
}

// Control returns the snapshot entry for a named parameter.
func (s Snapshot) Control(name string) (Control, bool) {
	for _, c := range s.Controls {
		if c.Name == name {
			return c, true
		}
	}
	return Control{}, false
}
