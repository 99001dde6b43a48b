// Package stats holds the canonical player-state record and its clamping
// mutation rules.
package stats

import "strings"

const (
	// GaugeMin is the lower bound of every survival gauge.
	GaugeMin = 0
	// GaugeMax is the upper bound of every survival gauge.
	GaugeMax = 100
	// DefaultOromozi is the purse granted when a session starts without one.
	DefaultOromozi = 1000
)

// Stat names one mutable field of PlayerStats.
type Stat string

const (
	Health     Stat = "health"
	Stamina    Stat = "stamina"
	Hunger     Stat = "hunger"
	Thirst     Stat = "thirst"
	Oromozi    Stat = "oromozi"
	Experience Stat = "experience"
)

// All lists every Stat in display order.
var All = []Stat{Health, Stamina, Hunger, Thirst, Oromozi, Experience}

// IsGauge reports whether s is one of the four [0,100] survival gauges.
func (s Stat) IsGauge() bool {
	switch s {
	case Health, Stamina, Hunger, Thirst:
		return true
	default:
		return false
	}
}

// ParseStat maps a case-insensitive stat name to a Stat. "exp" is accepted as
// an alias of experience.
//
// Postcondition: Returns (stat, true) for a known name, or ("", false).
func ParseStat(name string) (Stat, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "health":
		return Health, true
	case "stamina":
		return Stamina, true
	case "hunger":
		return Hunger, true
	case "thirst":
		return Thirst, true
	case "oromozi":
		return Oromozi, true
	case "experience", "exp":
		return Experience, true
	default:
		return "", false
	}
}

// PlayerStats is the single mutable player-state record of a play session.
//
// Invariant: every gauge is in [GaugeMin, GaugeMax]; Oromozi >= 0;
// Experience >= 0; Level >= 1.
type PlayerStats struct {
	Health      int
	Stamina     int
	Hunger      int
	Thirst      int
	Oromozi     int
	Level       int
	Experience  int
	CurrentZone string
}

// New returns fresh stats at zone: full gauges, level 1, no experience and
// the given purse. A non-positive purse falls back to DefaultOromozi.
//
// Postcondition: all invariants hold.
func New(zone string, oromozi int) *PlayerStats {
	if oromozi <= 0 {
		oromozi = DefaultOromozi
	}
	return &PlayerStats{
		Health:      GaugeMax,
		Stamina:     GaugeMax,
		Hunger:      GaugeMax,
		Thirst:      GaugeMax,
		Oromozi:     oromozi,
		Level:       1,
		CurrentZone: zone,
	}
}

// ClampGauge clamps v into [GaugeMin, GaugeMax].
func ClampGauge(v int) int {
	if v < GaugeMin {
		return GaugeMin
	}
	if v > GaugeMax {
		return GaugeMax
	}
	return v
}

// Get returns the current value of stat s.
func (p *PlayerStats) Get(s Stat) int {
	switch s {
	case Health:
		return p.Health
	case Stamina:
		return p.Stamina
	case Hunger:
		return p.Hunger
	case Thirst:
		return p.Thirst
	case Oromozi:
		return p.Oromozi
	case Experience:
		return p.Experience
	default:
		return 0
	}
}

// ApplyDelta adds delta to stat s in place. Gauges clamp to [0,100]; currency
// and experience floor at 0. Unknown stats are ignored.
//
// Precondition: p must not be nil.
// Postcondition: all invariants hold; returns the value actually applied
// (after clamping), which may be smaller in magnitude than delta.
func (p *PlayerStats) ApplyDelta(s Stat, delta int) int {
	before := p.Get(s)
	switch s {
	case Health:
		p.Health = ClampGauge(p.Health + delta)
	case Stamina:
		p.Stamina = ClampGauge(p.Stamina + delta)
	case Hunger:
		p.Hunger = ClampGauge(p.Hunger + delta)
	case Thirst:
		p.Thirst = ClampGauge(p.Thirst + delta)
	case Oromozi:
		p.Oromozi = floorZero(p.Oromozi + delta)
	case Experience:
		p.Experience = floorZero(p.Experience + delta)
	default:
		return 0
	}
	return p.Get(s) - before
}

// RestoreGauges fills every gauge to GaugeMax.
func (p *PlayerStats) RestoreGauges() {
	p.Health = GaugeMax
	p.Stamina = GaugeMax
	p.Hunger = GaugeMax
	p.Thirst = GaugeMax
}

// IsDead reports whether health has reached zero.
func (p *PlayerStats) IsDead() bool {
	return p.Health <= 0
}

// Clone returns an independent copy of p.
func (p *PlayerStats) Clone() *PlayerStats {
	cp := *p
	return &cp
}

func floorZero(v int) int {
	if v < 0 {
		return 0
	}
	return v
}
