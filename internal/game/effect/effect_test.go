package effect_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/wildlands/internal/game/effect"
	"github.com/cory-johannsen/wildlands/internal/game/stats"
)

func TestParse_AllTagsInOrder(t *testing.T) {
	ds := effect.Parse("You slip. (-10 Health) [type=fire] then drink (+15 thirst) and learn (+5 EXP)")
	require.Len(t, ds, 3)
	assert.Equal(t, effect.Delta{Stat: stats.Health, Value: -10, DamageType: "fire"}, ds[0])
	assert.Equal(t, effect.Delta{Stat: stats.Thirst, Value: 15}, ds[1])
	assert.Equal(t, effect.Delta{Stat: stats.Experience, Value: 5}, ds[2])
}

func TestParse_NoTags(t *testing.T) {
	ds := effect.Parse("Nothing happens.")
	assert.NotNil(t, ds)
	assert.Empty(t, ds)
}

func TestApply_FireResistanceMitigates(t *testing.T) {
	p := stats.New("Arid Desert", 100)
	effect.Apply(p, "(-10 health) [type=fire]", effect.Resistance{"fire": 5})
	assert.Equal(t, 95, p.Health)
}

func TestApply_MitigationCappedAtSeventyPercent(t *testing.T) {
	p := stats.New("Arid Desert", 100)
	effect.Apply(p, "(-10 health) [type=fire]", effect.Resistance{"fire": 100})
	assert.Equal(t, 97, p.Health)
}

func TestApply_SmallTypedHitStillLands(t *testing.T) {
	for _, tc := range []struct {
		text string
		want int
	}{
		{"(-3 health) [type=fire]", 99},
		{"(-1 health) [type=fire]", 99},
		{"(-5 health) [type=fire]", 98},
	} {
		p := stats.New("Arid Desert", 100)
		effect.Apply(p, tc.text, effect.Resistance{"fire": 100})
		assert.Equal(t, tc.want, p.Health, tc.text)
	}
}

func TestApply_UntypedDamageIgnoresResistance(t *testing.T) {
	p := stats.New("Arid Desert", 100)
	effect.Apply(p, "(-10 health)", effect.Resistance{"fire": 100})
	assert.Equal(t, 90, p.Health)
}

func TestApply_MismatchedTypeMitigatesNothing(t *testing.T) {
	p := stats.New("Arid Desert", 100)
	effect.Apply(p, "(-10 health) [type=cold]", effect.Resistance{"fire": 100})
	assert.Equal(t, 90, p.Health)
}

func TestApply_StacksEveryTag(t *testing.T) {
	p := stats.New("Shady Grove", 100)
	p.Hunger = 50
	applied := effect.Apply(p, "(+10 hunger) (+10 hunger) (-5 stamina)", nil)
	require.Len(t, applied, 3)
	assert.Equal(t, 70, p.Hunger)
	assert.Equal(t, 95, p.Stamina)
}

func TestApply_ClampReportsActual(t *testing.T) {
	p := stats.New("Shady Grove", 100)
	applied := effect.Apply(p, "(+20 health)", nil)
	require.Len(t, applied, 1)
	assert.Equal(t, 20, applied[0].Requested)
	assert.Equal(t, 0, applied[0].Actual)
}

func TestMarkers(t *testing.T) {
	assert.True(t, effect.HasLoot("You find a cache (+LOOT)"))
	assert.False(t, effect.HasLoot("(+5 health)"))

	zone, ok := effect.TravelTarget("The path winds on. (Travel to Shady Grove)")
	require.True(t, ok)
	assert.Equal(t, "Shady Grove", zone)

	_, ok = effect.TravelTarget("No travel here.")
	assert.False(t, ok)
}

func TestStrip(t *testing.T) {
	assert.Equal(t, "You rest.", effect.Strip("You rest. (+10 stamina) (+Loot)"))
}

// TestMitigate_Property verifies that a typed hit always lands at least one
// point and mitigation never absorbs more than seventy percent of the raw
// damage.
func TestMitigate_Property(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		dmg := rapid.IntRange(1, 200).Draw(rt, "dmg")
		res := rapid.IntRange(0, 300).Draw(rt, "res")
		got := effect.Mitigate(effect.Delta{Stat: stats.Health, Value: -dmg, DamageType: "fire"}, effect.Resistance{"fire": res})
		assert.LessOrEqual(rt, got, -1)
		assert.GreaterOrEqual(rt, got, -dmg)
		assert.LessOrEqual(rt, float64(-got), float64(dmg))
		assert.GreaterOrEqual(rt, float64(-got)+1, float64(dmg)*0.3)
	})
}
