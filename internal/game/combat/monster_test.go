package combat_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/wildlands/internal/game/combat"
	"github.com/cory-johannsen/wildlands/internal/game/inventory"
	"github.com/cory-johannsen/wildlands/internal/game/loot"
	"github.com/cory-johannsen/wildlands/internal/game/stats"
	"github.com/cory-johannsen/wildlands/internal/testutil"
)

func TestNewMonster_Scaling(t *testing.T) {
	m := combat.NewMonster("m1", combat.Vec{}, 1)
	assert.Equal(t, 80, m.MaxHealth)
	assert.Equal(t, 5, m.Damage)
	assert.Equal(t, 50.0, m.Speed)
	assert.Equal(t, 200.0, m.DetectionRange)
	assert.Equal(t, time.Second, m.AttackCooldown)

	m = combat.NewMonster("m5", combat.Vec{}, 5)
	assert.Equal(t, 144, m.MaxHealth)
	assert.Equal(t, 9, m.Damage)
	assert.Equal(t, 800*time.Millisecond, m.AttackCooldown)

	m = combat.NewMonster("m10", combat.Vec{}, 10)
	assert.Equal(t, combat.MinAttackCooldown, m.AttackCooldown)
	assert.Less(t, m.AttackRange, m.DetectionRange)
}

func TestMonsterHitDamage(t *testing.T) {
	assert.Equal(t, 5, combat.MonsterHitDamage(5, 3))
	assert.Equal(t, 3, combat.MonsterHitDamage(6, 10))
	assert.Equal(t, 1, combat.MonsterHitDamage(2, 40))
}

func TestMonster_TickStates(t *testing.T) {
	m := combat.NewMonster("m", combat.Vec{}, 1)

	assert.Zero(t, m.Tick(0, time.Second, combat.Vec{X: 300}, 3))
	assert.Equal(t, combat.MonsterIdle, m.State)

	assert.Zero(t, m.Tick(time.Second, time.Second, combat.Vec{X: 100}, 3))
	assert.Equal(t, combat.MonsterPursuing, m.State)
	assert.InDelta(t, 50.0, m.Pos.X, 1e-9)

	// The step stops at attack range rather than overshooting.
	assert.Zero(t, m.Tick(2*time.Second, time.Second, combat.Vec{X: 100}, 3))
	assert.InDelta(t, 60.0, m.Pos.X, 1e-9)

	assert.Equal(t, 5, m.Tick(3*time.Second, time.Second, combat.Vec{X: 100}, 3))
	assert.Equal(t, combat.MonsterAttacking, m.State)
	assert.Zero(t, m.Tick(3*time.Second+500*time.Millisecond, 500*time.Millisecond, combat.Vec{X: 100}, 3))
	assert.Equal(t, 5, m.Tick(4*time.Second+time.Millisecond, 500*time.Millisecond, combat.Vec{X: 100}, 3))
}

func TestInSwing(t *testing.T) {
	o := combat.Vec{}
	assert.True(t, combat.InSwing(o, combat.Right, combat.Vec{X: 100, Y: 30}))
	assert.False(t, combat.InSwing(o, combat.Right, combat.Vec{X: 130}))
	assert.False(t, combat.InSwing(o, combat.Right, combat.Vec{X: -10}))
	assert.False(t, combat.InSwing(o, combat.Right, combat.Vec{X: 50, Y: 60}))
	assert.True(t, combat.InSwing(o, combat.Up, combat.Vec{Y: -100}))
	assert.False(t, combat.InSwing(o, combat.Down, combat.Vec{Y: -100}))
	assert.True(t, combat.InSwing(o, combat.Left, combat.Vec{X: -119, Y: -49}))
}

func TestSwing_KillGrantsRewards(t *testing.T) {
	src := testutil.NewFixedSource([]int{2, 3}, nil)
	r := newResolver(src)
	weak := combat.NewMonster("weak", combat.Vec{X: 50}, 1)
	weak.Health = 5
	tough := combat.NewMonster("tough", combat.Vec{X: 80, Y: 10}, 1)
	behind := combat.NewMonster("behind", combat.Vec{X: -50}, 1)
	ps := stats.New("Shady Grove", 100)
	pack := combat.InventoryPack{Inventory: inventory.New(), Registry: inventory.NewRegistry()}

	res := r.Swing([]*combat.Monster{weak, tough, behind}, combat.Vec{}, combat.Right, "Shady Grove", combat.Player{Stats: ps}, pack)
	require.Len(t, res.Hits, 2)
	assert.True(t, res.Hits[0].Killed)
	assert.False(t, res.Hits[1].Killed)
	assert.Equal(t, 10, res.Hits[0].Damage)
	assert.Equal(t, 70, tough.Health)
	assert.Equal(t, 80, behind.Health)
	assert.Equal(t, 13, res.Experience)
	assert.Equal(t, 13, ps.Experience)
	assert.Equal(t, []string{loot.FallbackItem}, res.Loot)
	assert.Equal(t, 1, pack.Inventory.Count(loot.FallbackItem))
}

func TestSwing_NothingInRange(t *testing.T) {
	r := newResolver(testutil.NewFixedSource(nil, nil))
	ps := stats.New("Z", 100)
	res := r.Swing([]*combat.Monster{combat.NewMonster("m", combat.Vec{Y: 500}, 1)}, combat.Vec{}, combat.Down,
		"Z", combat.Player{Stats: ps}, combat.InventoryPack{Inventory: inventory.New(), Registry: inventory.NewRegistry()})
	assert.Empty(t, res.Hits)
}

func TestStrike_AppliesDamageToPlayer(t *testing.T) {
	r := newResolver(testutil.NewFixedSource(nil, nil))
	ps := stats.New("Z", 100)
	m := combat.NewMonster("m", combat.Vec{X: 30}, 1)
	dealt := r.Strike([]*combat.Monster{m}, 2*time.Second, 100*time.Millisecond, combat.Vec{}, combat.Player{Stats: ps})
	assert.Equal(t, 5, dealt)
	assert.Equal(t, 95, ps.Health)
}

// TestMonster_TickProperty verifies that pursuit never moves a monster
// closer than its attack range and the state matches the distance band.
func TestMonster_TickProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		m := combat.NewMonster("m", combat.Vec{
			X: rapid.Float64Range(-400, 400).Draw(rt, "x"),
			Y: rapid.Float64Range(-400, 400).Draw(rt, "y"),
		}, rapid.IntRange(1, 15).Draw(rt, "level"))
		target := combat.Vec{}
		before := m.Pos.Dist(target)
		m.Tick(0, time.Duration(rapid.IntRange(1, 5000).Draw(rt, "dt_ms"))*time.Millisecond, target, 3)
		after := m.Pos.Dist(target)
		switch {
		case before <= m.AttackRange:
			assert.Equal(rt, combat.MonsterAttacking, m.State)
		case before <= m.DetectionRange:
			assert.Equal(rt, combat.MonsterPursuing, m.State)
			assert.GreaterOrEqual(rt, after, m.AttackRange-1e-6)
			assert.LessOrEqual(rt, after, before+1e-6)
		default:
			assert.Equal(rt, combat.MonsterIdle, m.State)
			assert.Equal(rt, before, after)
		}
	})
}
