package combat

import (
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/wildlands/internal/game/progression"
	"github.com/cory-johannsen/wildlands/internal/game/stats"
)

// Hit records one monster struck by a swing.
type Hit struct {
	MonsterID string
	Damage    int
	Killed    bool
}

// SwingResult is the aggregate outcome of one player swing.
type SwingResult struct {
	Hits         []Hit
	Experience   int
	Loot         []string
	LevelsGained int
}

// Swing strikes every living monster inside the swing region with a single
// damage roll and grants kill rewards.
//
// Precondition: p.Stats and pack must be non-nil.
// Postcondition: dead monsters have Health <= 0; each kill grants
// 10+[0,5) experience and a MonsterLootChance loot roll; a level check runs
// once after all rewards.
func (r *Resolver) Swing(monsters []*Monster, from Vec, dir Direction, zone string, p Player, pack Pack) SwingResult {
	var out SwingResult
	var targets []*Monster
	for _, m := range monsters {
		if m.Alive() && InSwing(from, dir, m.Pos) {
			targets = append(targets, m)
		}
	}
	if len(targets) == 0 {
		return out
	}
	dmg := SwingBase(p.Stats.Level) + r.roller.Between("swing.damage", -2, 3)
	for _, m := range targets {
		killed := m.TakeDamage(dmg)
		out.Hits = append(out.Hits, Hit{MonsterID: m.ID, Damage: dmg, Killed: killed})
		if !killed {
			continue
		}
		exp := 10 + r.roller.Intn("monster.kill_exp", 5)
		out.Experience += exp
		p.Stats.ApplyDelta(stats.Experience, exp)
		if item, ok := r.loot.RollWithChance(zone, p.Stats.Level, MonsterLootChance); ok {
			pack.Grant(item)
			out.Loot = append(out.Loot, item)
		}
		r.logger.Info("monster slain",
			zap.String("monster_id", m.ID),
			zap.Int("experience", exp),
		)
	}
	out.LevelsGained = progression.CheckLevelUp(p.Stats)
	return out
}

// Strike advances every living monster by one tick and applies landed strikes
// to p.
//
// Precondition: p.Stats must be non-nil.
// Postcondition: returns the total damage applied this tick.
func (r *Resolver) Strike(monsters []*Monster, now, dt time.Duration, playerPos Vec, p Player) int {
	defense := p.BattleStats().Defense
	total := 0
	for _, m := range monsters {
		if !m.Alive() {
			continue
		}
		dmg := m.Tick(now, dt, playerPos, defense)
		if dmg == 0 || p.Stats.Health <= 0 {
			continue
		}
		total -= p.Stats.ApplyDelta(stats.Health, -dmg)
	}
	return total
}
