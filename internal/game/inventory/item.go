package inventory

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cory-johannsen/wildlands/internal/game/stats"
)

// Kind constants for ItemDef.Kind.
const (
	KindConsumable = "consumable"
	KindMaterial   = "material"
	KindEquipment  = "equipment"
	KindTrinket    = "trinket"
)

var validKinds = map[string]bool{
	KindConsumable: true,
	KindMaterial:   true,
	KindEquipment:  true,
	KindTrinket:    true,
}

// CombatEffects are flat battle-stat bonuses granted while an item is equipped.
type CombatEffects struct {
	Attack  int `yaml:"attack" json:"attack,omitempty"`
	Defense int `yaml:"defense" json:"defense,omitempty"`
	Evasion int `yaml:"evasion" json:"evasion,omitempty"`
}

// Add returns the component-wise sum of c and o.
func (c CombatEffects) Add(o CombatEffects) CombatEffects {
	return CombatEffects{Attack: c.Attack + o.Attack, Defense: c.Defense + o.Defense, Evasion: c.Evasion + o.Evasion}
}

// ItemDef is the static metadata of a named item.
type ItemDef struct {
	Name        string         `yaml:"name" json:"name"`
	Description string         `yaml:"description" json:"description,omitempty"`
	Kind        string         `yaml:"kind" json:"kind"`
	Rarity      string         `yaml:"rarity" json:"rarity,omitempty"`
	Value       int            `yaml:"value" json:"value,omitempty"`
	StatEffects map[string]int `yaml:"stat_effects" json:"stat_effects,omitempty"`
	Resist      map[string]int `yaml:"resist" json:"resist,omitempty"`
	Combat      CombatEffects  `yaml:"combat_effects" json:"combat_effects,omitempty"`
}

// Validate checks that the ItemDef satisfies its invariants.
//
// Precondition: d is non-nil.
// Postcondition: returns nil iff all fields are valid.
func (d *ItemDef) Validate() error {
	var errs []error
	if strings.TrimSpace(d.Name) == "" {
		errs = append(errs, errors.New("name must not be empty"))
	}
	if !validKinds[d.Kind] {
		errs = append(errs, fmt.Errorf("kind must be one of consumable, material, equipment, trinket; got %q", d.Kind))
	}
	for k := range d.StatEffects {
		if _, ok := stats.ParseStat(k); !ok {
			errs = append(errs, fmt.Errorf("stat_effects: unknown stat %q", k))
		}
	}
	if d.Value < 0 {
		errs = append(errs, errors.New("value must be >= 0"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("item %q validation failed: %w", d.Name, errors.Join(errs...))
	}
	return nil
}

// Healing returns the health restored by consuming the item.
func (d *ItemDef) Healing() int {
	return d.StatEffects[string(stats.Health)]
}

// IsHealing reports whether the item restores health.
func (d *ItemDef) IsHealing() bool {
	return d.Healing() > 0
}

// Equippable reports whether the item can occupy the equipped set.
func (d *ItemDef) Equippable() bool {
	return d.Kind == KindEquipment || d.Kind == KindTrinket
}

// Consume applies the item's stat effects to p.
//
// Precondition: p must not be nil.
// Postcondition: all StatModel invariants hold; returns the per-stat change
// actually applied.
func (d *ItemDef) Consume(p *stats.PlayerStats) map[stats.Stat]int {
	out := make(map[stats.Stat]int, len(d.StatEffects))
	for k, v := range d.StatEffects {
		s, ok := stats.ParseStat(k)
		if !ok {
			continue
		}
		out[s] = p.ApplyDelta(s, v)
	}
	return out
}
