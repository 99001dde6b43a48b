package inventory

import (
	"fmt"
	"strings"
)

// Line is one named stack in the player's inventory.
type Line struct {
	Name     string `yaml:"name" mapstructure:"name"`
	Quantity int    `yaml:"quantity" mapstructure:"quantity"`
}

// Inventory is an ordered list of lines, one per distinct item name.
//
// Invariant: every line has Quantity >= 1 and names are unique
// (case-insensitive).
type Inventory struct {
	lines []Line
}

// New returns an Inventory seeded with lines. Non-positive quantities are
// dropped and duplicate names are merged.
func New(lines ...Line) *Inventory {
	inv := &Inventory{}
	for _, l := range lines {
		inv.Add(l.Name, l.Quantity)
	}
	return inv
}

func (inv *Inventory) index(name string) int {
	for i, l := range inv.lines {
		if strings.EqualFold(l.Name, name) {
			return i
		}
	}
	return -1
}

// Add adds qty of name, appending a new line if needed.
//
// Postcondition: a non-positive qty is a no-op.
func (inv *Inventory) Add(name string, qty int) {
	if qty <= 0 || strings.TrimSpace(name) == "" {
		return
	}
	if i := inv.index(name); i >= 0 {
		inv.lines[i].Quantity += qty
		return
	}
	inv.lines = append(inv.lines, Line{Name: name, Quantity: qty})
}

// Remove takes qty of name. It is atomic: if fewer than qty are held nothing
// changes. A line whose quantity reaches zero is removed.
//
// Postcondition: returns an error iff the inventory was not modified.
func (inv *Inventory) Remove(name string, qty int) error {
	if qty <= 0 {
		return fmt.Errorf("inventory: quantity must be > 0, got %d", qty)
	}
	i := inv.index(name)
	if i < 0 || inv.lines[i].Quantity < qty {
		return fmt.Errorf("inventory: need %d %s, have %d", qty, name, inv.Count(name))
	}
	inv.lines[i].Quantity -= qty
	if inv.lines[i].Quantity == 0 {
		inv.lines = append(inv.lines[:i], inv.lines[i+1:]...)
	}
	return nil
}

// Count returns the quantity held of name.
func (inv *Inventory) Count(name string) int {
	if i := inv.index(name); i >= 0 {
		return inv.lines[i].Quantity
	}
	return 0
}

// Has reports whether at least qty of name is held.
func (inv *Inventory) Has(name string, qty int) bool {
	return inv.Count(name) >= qty
}

// HasAll reports whether every requirement is met.
func (inv *Inventory) HasAll(req map[string]int) bool {
	for name, qty := range req {
		if !inv.Has(name, qty) {
			return false
		}
	}
	return true
}

// RemoveAll removes every requirement atomically.
//
// Postcondition: on error the inventory is unchanged.
func (inv *Inventory) RemoveAll(req map[string]int) error {
	if !inv.HasAll(req) {
		return fmt.Errorf("inventory: missing required items")
	}
	for name, qty := range req {
		if err := inv.Remove(name, qty); err != nil {
			return err
		}
	}
	return nil
}

// Lines returns a copy of the inventory lines in insertion order.
func (inv *Inventory) Lines() []Line {
	return append([]Line(nil), inv.lines...)
}

// Len returns the number of distinct lines.
func (inv *Inventory) Len() int {
	return len(inv.lines)
}

// Clear removes every line.
func (inv *Inventory) Clear() {
	inv.lines = nil
}

// Healing returns the lines whose items restore health, in inventory order.
func (inv *Inventory) Healing(reg *Registry) []Line {
	var out []Line
	for _, l := range inv.lines {
		if d, ok := reg.Item(l.Name); ok && d.IsHealing() {
			out = append(out, l)
		}
	}
	return out
}

// Describe renders a line as "Name [rarity] xN".
func Describe(l Line, reg *Registry) string {
	if d, ok := reg.Item(l.Name); ok && d.Rarity != "" {
		return fmt.Sprintf("%s [%s] x%d", l.Name, d.Rarity, l.Quantity)
	}
	return fmt.Sprintf("%s x%d", l.Name, l.Quantity)
}
