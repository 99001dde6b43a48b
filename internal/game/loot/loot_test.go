package loot_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/wildlands/internal/game/dice"
	"github.com/cory-johannsen/wildlands/internal/game/loot"
	"github.com/cory-johannsen/wildlands/internal/testutil"
)

func grove() loot.Table {
	return loot.Table{
		"Shady Grove": {
			{Name: "Herbs"},
			{Name: "Wood"},
			{Name: "Moonpetal", Rarity: "rare"},
		},
	}
}

func TestRoll_NoLootBand(t *testing.T) {
	src := testutil.NewFixedSource(nil, []float64{0.10})
	r := loot.NewResolver(grove(), testutil.Roller(src))
	_, ok := r.Roll("Shady Grove", 10)
	assert.False(t, ok)
}

// A zone with no candidates yields FallbackItem before the roll is taken, so
// the no-loot band does not apply to it.
func TestRoll_EmptyZoneFallsBackEvenInNoLootBand(t *testing.T) {
	src := testutil.NewFixedSource(nil, []float64{0.10})
	r := loot.NewResolver(grove(), testutil.Roller(src))
	item, ok := r.Roll("Nowhere", 1)
	require.True(t, ok)
	assert.Equal(t, loot.FallbackItem, item)
}

func TestRoll_RareBandRequiresLevel(t *testing.T) {
	src := testutil.NewFixedSource([]int{0}, []float64{0.99})
	r := loot.NewResolver(grove(), testutil.Roller(src))
	item, ok := r.Roll("Shady Grove", 3)
	require.True(t, ok)
	assert.Equal(t, "Moonpetal", item)

	src.PushFloats(0.99)
	src.PushInts(0)
	item, ok = r.Roll("Shady Grove", 2)
	require.True(t, ok)
	assert.Equal(t, "Herbs", item)
}

func TestRoll_RareBandWithoutRareCandidates(t *testing.T) {
	table := loot.Table{"Outer Grasslands": {{Name: "Stick"}, {Name: "Cloth"}}}
	src := testutil.NewFixedSource([]int{1}, []float64{0.99})
	r := loot.NewResolver(table, testutil.Roller(src))
	item, ok := r.Roll("Outer Grasslands", 5)
	require.True(t, ok)
	assert.Equal(t, "Cloth", item)
}

func TestRollWithChance_Miss(t *testing.T) {
	src := testutil.NewFixedSource(nil, []float64{0.8})
	r := loot.NewResolver(grove(), testutil.Roller(src))
	_, ok := r.RollWithChance("Shady Grove", 1, 0.75)
	assert.False(t, ok)
}

func TestTable_Validate(t *testing.T) {
	assert.NoError(t, grove().Validate())
	assert.Error(t, loot.Table{"Z": {{Name: " "}}}.Validate())
}

// TestRoll_Property verifies that any roll is either nothing or a member of
// the zone's candidate list.
func TestRoll_Property(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		seed := rapid.Int64().Draw(rt, "seed")
		level := rapid.IntRange(1, 20).Draw(rt, "level")
		r := loot.NewResolver(grove(), testutil.Roller(dice.NewSeededSource(seed)))
		item, ok := r.Roll("Shady Grove", level)
		if !ok {
			return
		}
		names := map[string]bool{"Herbs": true, "Wood": true, "Moonpetal": true}
		assert.True(rt, names[item], "unexpected item %q", item)
	})
}
