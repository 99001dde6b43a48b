package inventory

import (
	"fmt"
	"sort"
	"strings"
)

// Registry holds item metadata indexed by case-insensitive name.
type Registry struct {
	items map[string]*ItemDef
}

// NewRegistry returns an empty Registry.
//
// Postcondition: the internal map is initialised.
func NewRegistry() *Registry {
	return &Registry{items: make(map[string]*ItemDef)}
}

func key(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// RegisterItem adds d to the registry.
//
// Precondition: d must not be nil.
// Postcondition: Item(d.Name) returns (d, true); returns error if the name is
// already registered.
func (r *Registry) RegisterItem(d *ItemDef) error {
	k := key(d.Name)
	if _, exists := r.items[k]; exists {
		return fmt.Errorf("inventory: Registry.RegisterItem: item %q already registered", d.Name)
	}
	r.items[k] = d
	return nil
}

// Item returns the ItemDef for name and whether it was found.
//
// Postcondition: ok is true iff the name is registered.
func (r *Registry) Item(name string) (*ItemDef, bool) {
	d, ok := r.items[key(name)]
	return d, ok
}

// AllItems returns every registered ItemDef sorted by name.
func (r *Registry) AllItems() []*ItemDef {
	out := make([]*ItemDef, 0, len(r.items))
	for _, d := range r.items {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
