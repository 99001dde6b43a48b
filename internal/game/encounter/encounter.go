// Package encounter tracks the live real-time entities of a zone: monsters,
// loot crates and exclamation markers.
package encounter

import (
	"math"

	"github.com/google/uuid"

	"github.com/cory-johannsen/wildlands/internal/game/combat"
	"github.com/cory-johannsen/wildlands/internal/game/dice"
)

const (
	// EdgeBuffer keeps spawned entities away from the arena border.
	EdgeBuffer = 80.0
	// MarkerReach is the distance at which the player touches a marker.
	MarkerReach = 32.0
	// DiscoveryText is shown when the player touches a marker.
	DiscoveryText = "You discovered something interesting!"
)

// Bounds is the playable rectangle of a zone, anchored at the origin.
type Bounds struct {
	Width, Height float64
}

// Crate is a breakable loot container.
type Crate struct {
	ID       string
	Pos      combat.Vec
	Health   int
	Breaking bool
}

// Hit removes one point of health from c.
//
// Postcondition: returns true exactly once, on the hit that starts breaking
// the crate; hits on a breaking crate are ignored.
func (c *Crate) Hit() bool {
	if c.Breaking {
		return false
	}
	c.Health--
	if c.Health <= 0 {
		c.Breaking = true
		return true
	}
	return false
}

// Marker is an exclamation point that opens the narrative flow when touched.
type Marker struct {
	ID  string
	Pos combat.Vec
}

// Registry holds the entities of the active zone.
type Registry struct {
	monsters []*combat.Monster
	crates   []*Crate
	markers  []*Marker
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Clear removes every entity.
//
// Postcondition: Count() == 0.
func (r *Registry) Clear() {
	r.monsters = nil
	r.crates = nil
	r.markers = nil
}

// Count returns the total number of live entities.
func (r *Registry) Count() int {
	return len(r.monsters) + len(r.crates) + len(r.markers)
}

// Monsters returns the live monsters. The slice is shared with the registry.
func (r *Registry) Monsters() []*combat.Monster { return r.monsters }

// Crates returns the crates. The slice is shared with the registry.
func (r *Registry) Crates() []*Crate { return r.crates }

// Markers returns the markers. The slice is shared with the registry.
func (r *Registry) Markers() []*Marker { return r.markers }

// AddMonster registers m.
func (r *Registry) AddMonster(m *combat.Monster) { r.monsters = append(r.monsters, m) }

// AddCrate registers c.
func (r *Registry) AddCrate(c *Crate) { r.crates = append(r.crates, c) }

// AddMarker registers m.
func (r *Registry) AddMarker(m *Marker) { r.markers = append(r.markers, m) }

// Reap drops dead monsters and broken crates.
//
// Postcondition: returns the number of entities removed.
func (r *Registry) Reap() int {
	n := 0
	alive := r.monsters[:0]
	for _, m := range r.monsters {
		if m.Alive() {
			alive = append(alive, m)
		} else {
			n++
		}
	}
	r.monsters = alive
	intact := r.crates[:0]
	for _, c := range r.crates {
		if !c.Breaking {
			intact = append(intact, c)
		} else {
			n++
		}
	}
	r.crates = intact
	return n
}

// NearestCrate returns the closest intact crate strictly within reach of pos.
//
// Postcondition: returns nil when none qualifies.
func (r *Registry) NearestCrate(pos combat.Vec, reach float64) *Crate {
	var best *Crate
	bestD := math.Inf(1)
	for _, c := range r.crates {
		if c.Breaking {
			continue
		}
		if d := c.Pos.Dist(pos); d < reach && d < bestD {
			best, bestD = c, d
		}
	}
	return best
}

// TouchMarker removes and returns the first marker within MarkerReach of pos.
//
// Postcondition: returns nil and leaves the registry unchanged when no
// marker is in reach.
func (r *Registry) TouchMarker(pos combat.Vec) *Marker {
	for i, m := range r.markers {
		if m.Pos.Dist(pos) <= MarkerReach {
			r.markers = append(r.markers[:i], r.markers[i+1:]...)
			return m
		}
	}
	return nil
}

// Spawner places entities at random positions.
type Spawner struct {
	roller *dice.Roller
}

// NewSpawner creates a Spawner.
//
// Precondition: roller must not be nil.
func NewSpawner(roller *dice.Roller) *Spawner {
	return &Spawner{roller: roller}
}

func (s *Spawner) position(b Bounds) combat.Vec {
	return combat.Vec{
		X: float64(s.roller.Between("spawn.x", int(EdgeBuffer), max(int(EdgeBuffer), int(b.Width-EdgeBuffer)))),
		Y: float64(s.roller.Between("spawn.y", int(EdgeBuffer), max(int(EdgeBuffer), int(b.Height-EdgeBuffer)))),
	}
}

// CrateCount returns how many crates spawn for base at playerLevel.
func CrateCount(base, playerLevel int) int {
	return base + int(math.Floor(float64(playerLevel-1)*0.5))
}

// CrateHealthRange returns the inclusive crate health bounds at playerLevel.
func CrateHealthRange(playerLevel int) (lo, hi int) {
	l := float64(playerLevel - 1)
	return 2 + int(math.Floor(l*0.5)), 6 + int(math.Floor(l*0.8))
}

// Populate fills r for a non-safe zone: CrateCount(crates) crates, markers
// markers and monsters monsters, all scaled to playerLevel.
//
// Precondition: r must not be nil.
// Postcondition: safe zones receive nothing.
func (s *Spawner) Populate(r *Registry, b Bounds, safe bool, playerLevel, crates, markers, monsters int) {
	if safe {
		return
	}
	lo, hi := CrateHealthRange(playerLevel)
	for i := 0; i < CrateCount(crates, playerLevel); i++ {
		r.AddCrate(&Crate{
			ID:     uuid.NewString(),
			Pos:    s.position(b),
			Health: s.roller.Between("crate.health", lo, hi),
		})
	}
	for i := 0; i < markers; i++ {
		r.AddMarker(&Marker{ID: uuid.NewString(), Pos: s.position(b)})
	}
	for i := 0; i < monsters; i++ {
		r.AddMonster(combat.NewMonster(uuid.NewString(), s.position(b), playerLevel))
	}
}
