package content_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/wildlands/internal/content"
	"github.com/cory-johannsen/wildlands/internal/gameclock"
)

func sources() content.Sources {
	return content.Sources{
		content.DocZones: []byte(`
home: Village
zones:
  - {name: Village, safe: true, spawn_x: 10, spawn_y: 10, width: 800, height: 600}
  - {name: Outer Grasslands, spawn_x: 10, spawn_y: 10, width: 800, height: 600}
  - {name: Shady Grove, spawn_x: 10, spawn_y: 10, width: 800, height: 600}
`),
		content.DocItems: []byte(`
items:
  - {name: Stick, kind: material}
  - {name: Wood, kind: material}
  - {name: Club, kind: equipment, combat_effects: {attack: 2}}
  - {name: Bread, kind: consumable, stat_effects: {health: 10, hunger: 20}}
`),
		content.DocLoot: []byte(`
loot:
  Outer Grasslands:
    - {name: Stick}
    - {name: Bread, rarity: rare}
`),
		content.DocNarrative: []byte(`
prologues:
  Outer Grasslands: [Grass everywhere.]
prompts:
  Outer Grasslands:
    - text: A path.
      time_of_day: evening
      options: [Walk, Wait]
      outcomes: ["(Travel to Shady Grove)", "(+5 stamina)"]
`),
		content.DocRecipes: []byte(`
recipes:
  - {result: Club, ingredients: [Wood, Stick]}
inventions:
  - {result: Club, items: [Wood, Wood, Stick]}
`),
	}
}

func TestLoad_Valid(t *testing.T) {
	st, err := content.Load(sources())
	require.NoError(t, err)

	assert.Equal(t, "Village", st.World.Home().Name)
	assert.Len(t, st.World.Zones(), 3)

	d, ok := st.Items.Item("club")
	require.True(t, ok)
	assert.Equal(t, 2, d.Combat.Attack)

	require.Len(t, st.Loot["Outer Grasslands"], 2)
	assert.True(t, st.Loot["Outer Grasslands"][1].IsRare())

	prompts := st.Narrative.Prompts["Outer Grasslands"]
	require.Len(t, prompts, 1)
	assert.Equal(t, gameclock.Evening, prompts[0].TimeOfDay)
	assert.Equal(t, []string{"Grass everywhere."}, st.Narrative.Prologues["Outer Grasslands"])

	r, ok := st.Recipes.Recipe("Club")
	require.True(t, ok)
	assert.Equal(t, []string{"Wood", "Stick"}, r.Ingredients)
	assert.Empty(t, st.Lint())
}

func TestLoad_SchemaViolations(t *testing.T) {
	cases := map[string]struct {
		doc  string
		data string
	}{
		"unknown item kind":      {content.DocItems, `items: [{name: X, kind: weapon}]`},
		"item without name":      {content.DocItems, `items: [{kind: material}]`},
		"zone with zero width":   {content.DocZones, `{home: V, zones: [{name: V, width: 0, height: 1}]}`},
		"invention of two":       {content.DocRecipes, `inventions: [{result: X, items: [A, B]}]`},
		"unknown time of day":    {content.DocNarrative, `prompts: {Z: [{text: t, time_of_day: noon, options: [a], outcomes: [a]}]}`},
		"loot entry as string":   {content.DocLoot, `loot: {Z: [Stick]}`},
		"unknown top-level key":  {content.DocLoot, `{loot: {}, extra: 1}`},
		"fractional stat effect": {content.DocItems, `items: [{name: X, kind: consumable, stat_effects: {health: 2.5}}]`},
		"negative item value":    {content.DocItems, `items: [{name: X, kind: material, value: -1}]`},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			src := sources()
			src[tc.doc] = []byte(tc.data)
			_, err := content.Load(src)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.doc+" does not match schema")
		})
	}
}

func TestLoad_MismatchedOutcomes(t *testing.T) {
	src := sources()
	src[content.DocNarrative] = []byte(`prompts: {Z: [{text: t, options: [a, b], outcomes: [a]}]}`)
	_, err := content.Load(src)
	assert.ErrorContains(t, err, "2 options but 1 outcomes")
}

func TestLoad_MissingDocument(t *testing.T) {
	src := sources()
	delete(src, content.DocRecipes)
	_, err := content.Load(src)
	assert.ErrorContains(t, err, `missing content document "recipes"`)
}

func TestLoad_DuplicateItem(t *testing.T) {
	src := sources()
	src[content.DocItems] = []byte(`items: [{name: Stick, kind: material}, {name: stick, kind: material}]`)
	_, err := content.Load(src)
	assert.ErrorContains(t, err, "already registered")
}

func TestLint_ReportsBrokenReferences(t *testing.T) {
	src := sources()
	src[content.DocLoot] = []byte(`loot: {Shady Grov: [{name: Acorn}]}`)
	src[content.DocNarrative] = []byte(`prompts: {Outer Grasslands: [{text: t, options: [a], outcomes: ["(Travel to Shady Grov)"]}]}`)
	src[content.DocRecipes] = []byte(`recipes: [{result: Club, ingredients: [Wood, Nail]}]`)
	st, err := content.Load(src)
	require.NoError(t, err)

	var got []string
	for _, f := range st.Lint() {
		got = append(got, f.String())
	}
	assert.Equal(t, []string{
		`loot: unknown zone "Shady Grov" (did you mean Shady Grove?)`,
		`loot: zone Shady Grov references unknown item "Acorn"`,
		`narrative: zone Outer Grasslands: travel marker names unknown zone "Shady Grov" (did you mean Shady Grove?)`,
		`recipes: recipe Club references unknown item "Nail"`,
	}, got)
}

func TestLoadDir_ShippedContent(t *testing.T) {
	st, err := content.LoadDir(filepath.Join("..", "..", "content"))
	require.NoError(t, err)
	assert.Empty(t, st.Lint())
	assert.Equal(t, "Village", st.World.Home().Name)
	assert.Len(t, st.Recipes.Recipes, 10)
	assert.Len(t, st.Recipes.Inventions, 7)
	for _, z := range st.World.Zones() {
		if !z.Safe {
			assert.NotEmpty(t, st.Loot[z.Name], "zone %s has no loot", z.Name)
			assert.NotEmpty(t, st.Narrative.Prompts[z.Name], "zone %s has no prompts", z.Name)
		}
	}
}

func TestLoadDir_MissingDir(t *testing.T) {
	_, err := content.LoadDir(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}
