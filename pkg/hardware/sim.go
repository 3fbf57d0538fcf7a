package hardware

import (
	"sync"

	"github.com/inspectra/go-scopecam/pkg/param"
)

// simRanges mirrors the control set of the UVC sensors the scope ships
// with. Backlight is a two-state switch; the mode toggles report the
// span of their hardware encodings.
var simRanges = map[param.ID]param.Range{
	param.Brightness:   {Min: -64, Max: 64, Step: 1, Default: 0},
	param.Contrast:     {Min: 0, Max: 95, Step: 1, Default: 2},
	param.Saturation:   {Min: 0, Max: 100, Step: 1, Default: 64},
	param.Gain:         {Min: 0, Max: 100, Step: 1, Default: 0},
	param.ExposureTime: {Min: 3, Max: 2047, Step: 1, Default: 100},
	param.WhiteBalance: {Min: 2800, Max: 6500, Step: 10, Default: 4600},
	param.Gamma:        {Min: 100, Max: 300, Step: 1, Default: 100},
	param.Backlight:    {Min: 0, Max: 1, Step: 1, Default: 1},
	param.AutoExposure: {Min: 0, Max: 3, Step: 1, Default: param.ExposureAuto},
	param.AutoWhiteBal: {Min: 0, Max: 1, Step: 1, Default: param.WhiteBalanceAuto},
}

// Sim is an in-memory Backend used by the daemon when no physical camera
// is attached, and by integration-style tests. Each role keeps its own
// value table so stereo mismatches are observable.
type Sim struct {
	mu     sync.Mutex
	values map[Role]map[param.ID]int
}

// NewSim returns a Sim with every role holding factory defaults.
func NewSim() *Sim {
	return &Sim{values: make(map[Role]map[param.ID]int)}
}

func (s *Sim) roleValues(role Role) map[param.ID]int {
	vals, ok := s.values[role]
	if !ok {
		vals = make(map[param.ID]int, len(simRanges))
		for id, r := range simRanges {
			vals[id] = r.Default
		}
		s.values[role] = vals
	}
	return vals
}

// Get implements Backend.
func (s *Sim) Get(role Role, id param.ID) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if role == RoleNone {
		return Unavailable
	}
	v, ok := s.roleValues(role)[id]
	if !ok {
		return Unavailable
	}
	return v
}

// Set implements Backend. Values outside the simulated bounds are
// rejected the way a real sensor rejects them.
func (s *Sim) Set(role Role, id param.ID, value int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if role == RoleNone {
		return false
	}
	r, ok := simRanges[id]
	if !ok || value < r.Min || value > r.Max {
		return false
	}
	s.roleValues(role)[id] = value
	return true
}

// GetRange implements Backend.
func (s *Sim) GetRange(role Role, id param.ID) (param.Range, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if role == RoleNone {
		return param.Range{}, false
	}
	r, ok := simRanges[id]
	if !ok {
		return param.Range{}, false
	}
	r.Current = s.roleValues(role)[id]
	return r, true
}
