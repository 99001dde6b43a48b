// Package loot resolves zone loot rolls against a rarity-tagged table.
package loot

import (
	"fmt"
	"strings"

	"github.com/cory-johannsen/wildlands/internal/game/dice"
)

const (
	// FallbackItem is granted when a zone has no candidates.
	FallbackItem = "Stick"
	// NothingBelow is the upper edge of the no-loot band.
	NothingBelow = 0.15
	// RareAbove is the lower edge of the rare band.
	RareAbove = 0.95
	// RareMinLevel is the lowest player level that can reach the rare band.
	RareMinLevel = 3
	// RarityRare marks a candidate as rare.
	RarityRare = "rare"
)

// Entry is one candidate in a zone's loot list.
type Entry struct {
	Name   string `yaml:"name"`
	Rarity string `yaml:"rarity,omitempty"`
}

// IsRare reports whether the entry is tagged rare.
func (e Entry) IsRare() bool {
	return strings.EqualFold(e.Rarity, RarityRare)
}

// Table maps a zone name to its candidate list.
type Table map[string][]Entry

// Validate checks that every entry has a name.
//
// Postcondition: Returns nil iff every candidate in every zone is named.
func (t Table) Validate() error {
	for zone, entries := range t {
		for i, e := range entries {
			if strings.TrimSpace(e.Name) == "" {
				return fmt.Errorf("loot table: zone %q entry[%d] must have a non-empty name", zone, i)
			}
		}
	}
	return nil
}

// Resolver draws loot from a Table.
type Resolver struct {
	table  Table
	roller *dice.Roller
}

// NewResolver creates a Resolver.
//
// Precondition: roller must not be nil.
func NewResolver(table Table, roller *dice.Roller) *Resolver {
	if table == nil {
		table = Table{}
	}
	return &Resolver{table: table, roller: roller}
}

// Roll draws at most one item for zone at playerLevel.
//
// Postcondition: Returns FallbackItem without rolling when the zone has no
// candidates; otherwise ("", false) in the no-loot band, else a uniformly
// chosen candidate, restricted to rare ones in the rare band when the player
// is at least RareMinLevel.
func (r *Resolver) Roll(zone string, playerLevel int) (string, bool) {
	candidates := r.table[zone]
	if len(candidates) == 0 {
		return FallbackItem, true
	}
	roll := r.roller.Float("loot.band")
	if roll < NothingBelow {
		return "", false
	}
	if roll > RareAbove && playerLevel >= RareMinLevel {
		var rare []Entry
		for _, c := range candidates {
			if c.IsRare() {
				rare = append(rare, c)
			}
		}
		if len(rare) > 0 {
			return rare[r.roller.Intn("loot.rare", len(rare))].Name, true
		}
	}
	return candidates[r.roller.Intn("loot.pick", len(candidates))].Name, true
}

// RollWithChance first draws against chance and only then calls Roll.
//
// Postcondition: Returns ("", false) when the chance draw fails.
func (r *Resolver) RollWithChance(zone string, playerLevel int, chance float64) (string, bool) {
	if !r.roller.Chance("loot.chance", chance) {
		return "", false
	}
	return r.Roll(zone, playerLevel)
}

// Candidates returns a copy of the zone's candidate list.
func (r *Resolver) Candidates(zone string) []Entry {
	return append([]Entry(nil), r.table[zone]...)
}
