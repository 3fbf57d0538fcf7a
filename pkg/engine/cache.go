package engine

import (
	"github.com/inspectra/go-scopecam/pkg/hardware"
	"github.com/inspectra/go-scopecam/pkg/param"
)

type capabilityEntry struct {
	r  param.Range
	ok bool
}

// capabilityCache memoizes hardware-reported ranges per (role, parameter).
// Hardware capability can differ between camera-mode transitions, so the
// cache is cleared on every mode change and after each reset. It is owned
// by one Engine and never persisted.
type capabilityCache struct {
	backend hardware.Backend
	entries map[hardware.Role]map[param.ID]capabilityEntry
}

func newCapabilityCache(backend hardware.Backend) *capabilityCache {
	return &capabilityCache{
		backend: backend,
		entries: make(map[hardware.Role]map[param.ID]capabilityEntry),
	}
}

// getRange returns the memoized range for (role, id), querying the
// hardware once per entry until invalidated.
func (c *capabilityCache) getRange(role hardware.Role, id param.ID) (param.Range, bool) {
	roleEntries, ok := c.entries[role]
	if !ok {
		roleEntries = make(map[param.ID]capabilityEntry, len(param.All))
		c.entries[role] = roleEntries
	}
	if e, ok := roleEntries[id]; ok {
		return e.r, e.ok
	}
	r, ok := c.backend.GetRange(role, id)
	roleEntries[id] = capabilityEntry{r: r, ok: ok}
	return r, ok
}

// isSupported reports whether the parameter is genuinely adjustable on
// this role: a range was obtainable and it is not degenerate.
func (c *capabilityCache) isSupported(role hardware.Role, id param.ID) bool {
	r, ok := c.getRange(role, id)
	return ok && r.Supported()
}

// invalidate clears the entries for one role.
func (c *capabilityCache) invalidate(role hardware.Role) {
	delete(c.entries, role)
}

// invalidateAll clears every entry.
func (c *capabilityCache) invalidateAll() {
	c.entries = make(map[hardware.Role]map[param.ID]capabilityEntry)
}
