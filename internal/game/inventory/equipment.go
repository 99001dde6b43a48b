package inventory

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cory-johannsen/wildlands/internal/game/effect"
)

// Equipment is the set of equipped item names.
type Equipment struct {
	names []string
}

// NewEquipment returns an empty Equipment set.
func NewEquipment() *Equipment {
	return &Equipment{}
}

// IsEquipped reports whether name is in the set.
func (e *Equipment) IsEquipped(name string) bool {
	for _, n := range e.names {
		if strings.EqualFold(n, name) {
			return true
		}
	}
	return false
}

// Equip adds name to the set.
//
// Precondition: reg must not be nil.
// Postcondition: returns an error and leaves the set unchanged if name is not
// held in inv, is unknown, is not equippable or is already equipped.
func (e *Equipment) Equip(name string, inv *Inventory, reg *Registry) error {
	d, ok := reg.Item(name)
	if !ok {
		return fmt.Errorf("inventory: unknown item %q", name)
	}
	if !d.Equippable() {
		return fmt.Errorf("inventory: %s cannot be equipped", d.Name)
	}
	if !inv.Has(d.Name, 1) {
		return fmt.Errorf("inventory: %s is not in the inventory", d.Name)
	}
	if e.IsEquipped(d.Name) {
		return fmt.Errorf("inventory: %s is already equipped", d.Name)
	}
	e.names = append(e.names, d.Name)
	return nil
}

// Unequip removes name from the set.
//
// Postcondition: returns false if name was not equipped.
func (e *Equipment) Unequip(name string) bool {
	for i, n := range e.names {
		if strings.EqualFold(n, name) {
			e.names = append(e.names[:i], e.names[i+1:]...)
			return true
		}
	}
	return false
}

// Prune drops equipped names no longer held in inv.
func (e *Equipment) Prune(inv *Inventory) {
	kept := e.names[:0]
	for _, n := range e.names {
		if inv.Has(n, 1) {
			kept = append(kept, n)
		}
	}
	e.names = kept
}

// Clear empties the set.
func (e *Equipment) Clear() {
	e.names = nil
}

// Names returns the equipped names sorted alphabetically.
func (e *Equipment) Names() []string {
	out := append([]string(nil), e.names...)
	sort.Strings(out)
	return out
}

// Resistance sums the resist maps of every equipped item.
//
// Postcondition: the result is a fresh map; unknown names contribute nothing.
func (e *Equipment) Resistance(reg *Registry) effect.Resistance {
	out := effect.Resistance{}
	for _, n := range e.names {
		d, ok := reg.Item(n)
		if !ok {
			continue
		}
		for typ, v := range d.Resist {
			out[strings.ToLower(typ)] += v
		}
	}
	return out
}

// CombatBonus sums the combat effects of every equipped item.
func (e *Equipment) CombatBonus(reg *Registry) CombatEffects {
	var out CombatEffects
	for _, n := range e.names {
		if d, ok := reg.Item(n); ok {
			out = out.Add(d.Combat)
		}
	}
	return out
}
