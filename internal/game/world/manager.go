package world

import (
	"fmt"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// Manager provides lookup over the ordered zone list.
type Manager struct {
	zones  []*Zone
	byName map[string]*Zone
	home   *Zone
	first  string
}

// NewManager creates a Manager from zones in travel order.
//
// Precondition: zones must be non-empty; home must name one of them.
// Postcondition: Returns a Manager, or an error on duplicate names or a
// missing home zone.
func NewManager(zones []*Zone, home string) (*Manager, error) {
	if len(zones) == 0 {
		return nil, fmt.Errorf("world: no zones")
	}
	m := &Manager{byName: make(map[string]*Zone, len(zones))}
	for _, z := range zones {
		k := strings.ToLower(z.Name)
		if _, exists := m.byName[k]; exists {
			return nil, fmt.Errorf("duplicate zone name: %q", z.Name)
		}
		m.byName[k] = z
		m.zones = append(m.zones, z)
	}
	h, ok := m.byName[strings.ToLower(home)]
	if !ok {
		return nil, fmt.Errorf("home zone %q is not defined", home)
	}
	m.home = h
	for _, z := range m.zones {
		if z != h {
			m.first = z.Name
			break
		}
	}
	return m, nil
}

// Resolve finds a zone by case-insensitive, space-trimmed name.
//
// Postcondition: Returns (zone, true) if found, or (nil, false) otherwise.
func (m *Manager) Resolve(name string) (*Zone, bool) {
	z, ok := m.byName[strings.ToLower(strings.TrimSpace(name))]
	return z, ok
}

// Home returns the home (safe respawn) zone.
func (m *Manager) Home() *Zone {
	return m.home
}

// IsHome reports whether name resolves to the home zone.
func (m *Manager) IsHome(name string) bool {
	z, ok := m.Resolve(name)
	return ok && z == m.home
}

// IsSafe reports whether name resolves to a safe zone. Unknown zones are not
// safe.
func (m *Manager) IsSafe(name string) bool {
	z, ok := m.Resolve(name)
	return ok && (z.Safe || z == m.home)
}

// Zones returns the zones in travel order.
func (m *Manager) Zones() []*Zone {
	return append([]*Zone(nil), m.zones...)
}

// Previous returns the zone a "Return to" choice leads back to: the first
// wilderness zone leads home, any other zone leads to the one listed before
// it.
//
// Postcondition: Returns (nil, false) for the home zone, the first zone in
// the list and unknown zones.
func (m *Manager) Previous(name string) (*Zone, bool) {
	z, ok := m.Resolve(name)
	if !ok || z == m.home {
		return nil, false
	}
	if strings.EqualFold(z.Name, m.first) {
		return m.home, true
	}
	for i, c := range m.zones {
		if c == z && i > 0 {
			return m.zones[i-1], true
		}
	}
	return nil, false
}

// suggestLimit returns the largest edit distance accepted for a name of n
// runes.
func suggestLimit(n int) int {
	switch {
	case n <= 4:
		return 1
	case n <= 8:
		return 2
	default:
		return 3
	}
}

// Suggest returns the known zone names closest to name by edit distance,
// nearest first, within a length-dependent limit.
//
// Postcondition: Returns nil when nothing is close enough.
func (m *Manager) Suggest(name string) []string {
	q := strings.ToLower(strings.TrimSpace(name))
	limit := suggestLimit(len([]rune(q)))
	type cand struct {
		name string
		d    int
	}
	var cs []cand
	for _, z := range m.zones {
		if d := levenshtein.ComputeDistance(q, strings.ToLower(z.Name)); d <= limit {
			cs = append(cs, cand{z.Name, d})
		}
	}
	sort.SliceStable(cs, func(i, j int) bool { return cs[i].d < cs[j].d })
	var out []string
	for _, c := range cs {
		out = append(out, c.name)
	}
	return out
}
