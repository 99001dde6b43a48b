// Package combat resolves turn-based battles and real-time monster skirmishes
// against the player's stats.
package combat

import (
	"math"

	"github.com/cory-johannsen/wildlands/internal/game/inventory"
	"github.com/cory-johannsen/wildlands/internal/game/stats"
)

// BattleStats are the player's derived combat numbers.
type BattleStats struct {
	Attack  int
	Defense int
	Evasion int
}

// PlayerBattleStats derives battle stats from level plus equipment bonus.
//
// Precondition: level >= 1.
// Postcondition: each field equals its level formula plus the matching bonus.
func PlayerBattleStats(level int, bonus inventory.CombatEffects) BattleStats {
	l := level - 1
	return BattleStats{
		Attack:  8 + 2*l + bonus.Attack,
		Defense: 3 + int(math.Floor(0.7*float64(l))) + bonus.Defense,
		Evasion: 5 + int(math.Floor(0.5*float64(l))) + bonus.Evasion,
	}
}

// Player bundles the state a fight reads and mutates.
type Player struct {
	Stats *stats.PlayerStats
	Bonus inventory.CombatEffects
}

// BattleStats returns p's derived battle stats.
func (p Player) BattleStats() BattleStats {
	return PlayerBattleStats(p.Stats.Level, p.Bonus)
}

// Pack is the inventory capability a battle needs: listing and consuming
// healing items.
type Pack interface {
	// HealingItems lists the held items that restore health.
	HealingItems() []HealingItem
	// Consume removes one unit of name and applies its effects to p.
	Consume(name string, p *stats.PlayerStats) (healed int, err error)
	// Grant adds one unit of name.
	Grant(name string)
}

// HealingItem is one entry of the battle item menu.
type HealingItem struct {
	Name     string
	Heals    int
	Quantity int
}

// InventoryPack adapts an Inventory and Registry to Pack.
type InventoryPack struct {
	Inventory *inventory.Inventory
	Registry  *inventory.Registry
}

// HealingItems implements Pack.
func (ip InventoryPack) HealingItems() []HealingItem {
	lines := ip.Inventory.Healing(ip.Registry)
	out := make([]HealingItem, 0, len(lines))
	for _, l := range lines {
		d, _ := ip.Registry.Item(l.Name)
		out = append(out, HealingItem{Name: l.Name, Heals: d.Healing(), Quantity: l.Quantity})
	}
	return out
}

// Consume implements Pack.
//
// Postcondition: on error neither the inventory nor p is modified.
func (ip InventoryPack) Consume(name string, p *stats.PlayerStats) (int, error) {
	d, ok := ip.Registry.Item(name)
	if !ok || !d.IsHealing() {
		return 0, ErrNotUsable
	}
	if err := ip.Inventory.Remove(d.Name, 1); err != nil {
		return 0, err
	}
	return d.Consume(p)[stats.Health], nil
}

// Grant implements Pack.
func (ip InventoryPack) Grant(name string) {
	ip.Inventory.Add(name, 1)
}
