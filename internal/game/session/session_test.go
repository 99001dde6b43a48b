package session_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/wildlands/internal/game/combat"
	"github.com/cory-johannsen/wildlands/internal/game/inventory"
	"github.com/cory-johannsen/wildlands/internal/game/session"
	"github.com/cory-johannsen/wildlands/internal/game/stats"
)

func TestNew(t *testing.T) {
	s := session.New(stats.New("Village", 50), []inventory.Line{{Name: "Bread", Quantity: 1}})
	assert.NotEmpty(t, s.ID)
	assert.Equal(t, 1, s.Inventory.Count("Bread"))
	assert.Equal(t, session.ScreenNone, s.Screen)
	assert.Zero(t, s.Encounters.Count())
}

func TestAcquireRelease(t *testing.T) {
	s := session.New(stats.New("Village", 50), nil)
	require.NoError(t, s.Acquire(session.ScreenBattle))
	assert.ErrorIs(t, s.Acquire(session.ScreenPrompt), session.ErrBusy)
	assert.Equal(t, session.ScreenBattle, s.Screen)
	s.Release()
	assert.False(t, s.Busy())

	s.Dying = true
	assert.ErrorIs(t, s.Acquire(session.ScreenPrompt), session.ErrBusy)
}

func TestMove_BlockedWhileBusy(t *testing.T) {
	s := session.New(stats.New("Shady Grove", 50), nil)
	s.Pos = combat.Vec{X: 10, Y: 10}
	assert.True(t, s.Move(combat.Left, 25, 100, 100))
	assert.Equal(t, combat.Vec{X: 0, Y: 10}, s.Pos)
	assert.Equal(t, combat.Left, s.Facing)

	s.Screen = session.ScreenPrompt
	assert.False(t, s.Move(combat.Down, 25, 100, 100))
	assert.Equal(t, combat.Vec{X: 0, Y: 10}, s.Pos)
}

func TestScreen_IsNarrative(t *testing.T) {
	assert.True(t, session.ScreenChoices.IsNarrative())
	assert.False(t, session.ScreenBattle.IsNarrative())
	assert.Equal(t, "camp", session.ScreenCamp.String())
}

func TestPlayer_UsesEquipmentBonus(t *testing.T) {
	reg := inventory.NewRegistry()
	require.NoError(t, reg.RegisterItem(&inventory.ItemDef{Name: "Iron Sword", Kind: inventory.KindEquipment, Combat: inventory.CombatEffects{Attack: 4}}))
	s := session.New(stats.New("Shady Grove", 50), []inventory.Line{{Name: "Iron Sword", Quantity: 1}})
	require.NoError(t, s.Equipment.Equip("Iron Sword", s.Inventory, reg))
	assert.Equal(t, 12, s.Player(reg).BattleStats().Attack)
}
