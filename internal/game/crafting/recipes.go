package crafting

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// InventionSize is the number of items combined by an invention attempt.
const InventionSize = 3

// Recipe turns one of each ingredient into one Result.
type Recipe struct {
	Result      string   `yaml:"result" json:"result"`
	Description string   `yaml:"description" json:"description,omitempty"`
	Ingredients []string `yaml:"ingredients" json:"ingredients"`
}

// Requirements returns the ingredient multiset of r.
func (r Recipe) Requirements() map[string]int {
	return requirements(r.Ingredients)
}

// Invention is a secret combination of exactly InventionSize items.
type Invention struct {
	Result string   `yaml:"result" json:"result"`
	Items  []string `yaml:"items" json:"items"`
}

// Book holds every known recipe and invention.
type Book struct {
	Recipes    []Recipe    `yaml:"recipes" json:"recipes"`
	Inventions []Invention `yaml:"inventions" json:"inventions"`
}

// Validate checks that every recipe has ingredients and every invention
// names exactly InventionSize items, with no duplicate results.
func (b *Book) Validate() error {
	var errs []error
	seen := make(map[string]bool)
	for i, r := range b.Recipes {
		if strings.TrimSpace(r.Result) == "" {
			errs = append(errs, fmt.Errorf("recipes[%d]: result must not be empty", i))
		}
		if len(r.Ingredients) == 0 {
			errs = append(errs, fmt.Errorf("recipe %q: no ingredients", r.Result))
		}
		k := strings.ToLower(r.Result)
		if seen[k] {
			errs = append(errs, fmt.Errorf("recipe %q: duplicate result", r.Result))
		}
		seen[k] = true
	}
	for i, inv := range b.Inventions {
		if strings.TrimSpace(inv.Result) == "" {
			errs = append(errs, fmt.Errorf("inventions[%d]: result must not be empty", i))
		}
		if len(inv.Items) != InventionSize {
			errs = append(errs, fmt.Errorf("invention %q: want %d items, got %d", inv.Result, InventionSize, len(inv.Items)))
		}
	}
	return errors.Join(errs...)
}

// Recipe finds a recipe by case-insensitive result name.
func (b *Book) Recipe(result string) (Recipe, bool) {
	for _, r := range b.Recipes {
		if strings.EqualFold(r.Result, result) {
			return r, true
		}
	}
	return Recipe{}, false
}

// Match returns the invention whose item multiset equals items.
func (b *Book) Match(items []string) (Invention, bool) {
	want := sortedKey(items)
	for _, inv := range b.Inventions {
		if sortedKey(inv.Items) == want {
			return inv, true
		}
	}
	return Invention{}, false
}

func sortedKey(items []string) string {
	cp := make([]string, len(items))
	for i, it := range items {
		cp[i] = strings.ToLower(strings.TrimSpace(it))
	}
	sort.Strings(cp)
	return strings.Join(cp, "\x00")
}

// requirements counts names case-insensitively, since inventory lookups
// ignore case.
func requirements(names []string) map[string]int {
	req := make(map[string]int, len(names))
	for _, n := range names {
		req[strings.ToLower(strings.TrimSpace(n))]++
	}
	return req
}
