// Package survival applies per-outcome gauge decay, low-gauge health
// penalties and timed stamina regeneration.
package survival

import "github.com/cory-johannsen/wildlands/internal/game/stats"

const (
	// Decay is subtracted from thirst, hunger and stamina on every tick.
	Decay = 5
	// CriticalThreshold selects the severe penalty tier.
	CriticalThreshold = 10
	// CriticalPenalty is the health lost in the severe tier.
	CriticalPenalty = 8
	// LowThreshold selects the mild penalty tier.
	LowThreshold = 25
	// LowPenalty is the health lost in the mild tier.
	LowPenalty = 3
	// RegenAmount is the stamina restored per regeneration interval.
	RegenAmount = 5
)

// Result describes one tick.
type Result struct {
	// Skipped is true when the tick ran inside the safe zone.
	Skipped bool
	// Penalty is the health penalty requested (0, LowPenalty or CriticalPenalty).
	Penalty int
}

// Tick decays thirst, hunger and stamina and then charges a single health
// penalty based on the lowest post-decay gauge. Nothing happens in the safe
// zone.
//
// Precondition: p must not be nil.
// Postcondition: all StatModel invariants hold.
func Tick(p *stats.PlayerStats, safeZone bool) Result {
	if safeZone {
		return Result{Skipped: true}
	}
	p.ApplyDelta(stats.Thirst, -Decay)
	p.ApplyDelta(stats.Hunger, -Decay)
	p.ApplyDelta(stats.Stamina, -Decay)

	low := min(p.Thirst, p.Hunger, p.Stamina)
	var penalty int
	switch {
	case low <= CriticalThreshold:
		penalty = CriticalPenalty
	case low <= LowThreshold:
		penalty = LowPenalty
	}
	if penalty > 0 {
		p.ApplyDelta(stats.Health, -penalty)
	}
	return Result{Penalty: penalty}
}

// Regenerate restores RegenAmount stamina.
//
// Postcondition: Returns the stamina actually restored.
func Regenerate(p *stats.PlayerStats) int {
	return p.ApplyDelta(stats.Stamina, RegenAmount)
}
