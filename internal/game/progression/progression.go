// Package progression implements experience thresholds and level-up.
package progression

import "github.com/cory-johannsen/wildlands/internal/game/stats"

// Threshold returns the experience needed to leave level.
//
// Precondition: level >= 1.
func Threshold(level int) int {
	return level * 100
}

// CheckLevelUp promotes p while its experience meets the current level's
// threshold. Each promotion subtracts the threshold, carrying the remainder,
// and restores health to full.
//
// Precondition: p must not be nil.
// Postcondition: p.Experience < Threshold(p.Level); returns the number of
// levels gained (zero when experience was insufficient).
func CheckLevelUp(p *stats.PlayerStats) int {
	if p.Level < 1 {
		p.Level = 1
	}
	gained := 0
	for p.Experience >= Threshold(p.Level) {
		p.Experience -= Threshold(p.Level)
		p.Level++
		p.Health = stats.GaugeMax
		gained++
	}
	return gained
}

// Grant adds exp to p and then runs CheckLevelUp.
//
// Precondition: p must not be nil; exp >= 0.
// Postcondition: Returns the number of levels gained.
func Grant(p *stats.PlayerStats, exp int) int {
	p.ApplyDelta(stats.Experience, exp)
	return CheckLevelUp(p)
}
