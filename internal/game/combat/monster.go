package combat

import (
	"math"
	"time"
)

// Vec is a point or offset on the exploration plane.
type Vec struct {
	X, Y float64
}

// Sub returns v - o.
func (v Vec) Sub(o Vec) Vec { return Vec{v.X - o.X, v.Y - o.Y} }

// Add returns v + o.
func (v Vec) Add(o Vec) Vec { return Vec{v.X + o.X, v.Y + o.Y} }

// Scale returns v scaled by k.
func (v Vec) Scale(k float64) Vec { return Vec{v.X * k, v.Y * k} }

// Len returns the Euclidean length of v.
func (v Vec) Len() float64 { return math.Hypot(v.X, v.Y) }

// Dist returns the distance between v and o.
func (v Vec) Dist(o Vec) float64 { return v.Sub(o).Len() }

// MonsterState is the real-time monster behaviour state.
type MonsterState int

const (
	MonsterIdle MonsterState = iota
	MonsterPursuing
	MonsterAttacking
)

// String returns a human-readable state label.
func (s MonsterState) String() string {
	switch s {
	case MonsterIdle:
		return "idle"
	case MonsterPursuing:
		return "pursuing"
	case MonsterAttacking:
		return "attacking"
	default:
		return "unknown"
	}
}

const (
	// MonsterAttackRange is the distance at which a monster stops and strikes.
	MonsterAttackRange = 40.0
	// MinAttackCooldown floors the scaled monster cooldown.
	MinAttackCooldown = 800 * time.Millisecond
	// MonsterLootChance is the probability of a loot roll on a monster kill.
	MonsterLootChance = 0.4
)

// Monster is one spawned real-time enemy.
//
// Invariant: AttackRange < DetectionRange.
type Monster struct {
	ID             string
	Pos            Vec
	Level          int
	Health         int
	MaxHealth      int
	Damage         int
	Speed          float64
	DetectionRange float64
	AttackRange    float64
	AttackCooldown time.Duration
	LastAttack     time.Duration
	State          MonsterState
}

// NewMonster scales a monster to playerLevel at spawn time.
//
// Precondition: playerLevel >= 1.
func NewMonster(id string, pos Vec, playerLevel int) *Monster {
	l := float64(playerLevel - 1)
	hp := int(math.Floor(80 * (1 + 0.2*l)))
	cooldown := max(MinAttackCooldown, time.Duration(1000-50*(playerLevel-1))*time.Millisecond)
	return &Monster{
		ID:             id,
		Pos:            pos,
		Level:          playerLevel,
		Health:         hp,
		MaxHealth:      hp,
		Damage:         5 + int(math.Floor(1.2*l)),
		Speed:          50 + 5*l,
		DetectionRange: 200 + 10*l,
		AttackRange:    MonsterAttackRange,
		AttackCooldown: cooldown,
	}
}

// MonsterHitDamage returns the damage one monster strike deals through
// playerDefense.
func MonsterHitDamage(monsterDamage, playerDefense int) int {
	return max(1, monsterDamage-int(math.Floor(float64(playerDefense)*0.3)))
}

// Tick advances m by dt at game time now against a player at target.
//
// Postcondition: State reflects the distance band; returns the damage of a
// strike that landed this tick, or 0.
func (m *Monster) Tick(now, dt time.Duration, target Vec, playerDefense int) int {
	d := m.Pos.Dist(target)
	switch {
	case d <= m.AttackRange:
		m.State = MonsterAttacking
		if now > m.LastAttack+m.AttackCooldown {
			m.LastAttack = now
			return MonsterHitDamage(m.Damage, playerDefense)
		}
	case d <= m.DetectionRange:
		m.State = MonsterPursuing
		step := m.Speed * dt.Seconds()
		if step >= d-m.AttackRange {
			step = d - m.AttackRange
		}
		if d > 0 && step > 0 {
			m.Pos = m.Pos.Add(target.Sub(m.Pos).Scale(step / d))
		}
	default:
		m.State = MonsterIdle
	}
	return 0
}

// TakeDamage lowers health by dmg.
//
// Postcondition: returns true iff the monster died from this hit.
func (m *Monster) TakeDamage(dmg int) bool {
	if m.Health <= 0 {
		return false
	}
	m.Health -= dmg
	return m.Health <= 0
}

// Alive reports whether m still has health.
func (m *Monster) Alive() bool {
	return m.Health > 0
}

// Direction is the player's facing.
type Direction int

const (
	Down Direction = iota
	Up
	Left
	Right
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "down"
	}
}

// Unit returns the facing as a unit vector (screen coordinates, y grows down).
func (d Direction) Unit() Vec {
	switch d {
	case Up:
		return Vec{0, -1}
	case Left:
		return Vec{-1, 0}
	case Right:
		return Vec{1, 0}
	default:
		return Vec{0, 1}
	}
}

const (
	// SwingReach is how far forward a swing connects.
	SwingReach = 120.0
	// SwingHalfWidth is the half-width of the swing's hit band.
	SwingHalfWidth = 50.0
	// CrateReach is the radius within which a swing strikes a crate.
	CrateReach = 60.0
)

// InSwing reports whether target lies in the rectangular region in front of a
// player at from facing dir.
func InSwing(from Vec, dir Direction, target Vec) bool {
	off := target.Sub(from)
	u := dir.Unit()
	forward := off.X*u.X + off.Y*u.Y
	perp := math.Abs(off.X*u.Y - off.Y*u.X)
	return forward > 0 && forward < SwingReach && perp < SwingHalfWidth
}

// SwingBase returns the unrandomised swing damage at playerLevel.
func SwingBase(playerLevel int) int {
	return 10 + 2*(playerLevel-1)
}
