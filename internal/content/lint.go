package content

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cory-johannsen/wildlands/internal/game/effect"
)

// Finding is one cross-reference problem in a loaded Store.
type Finding struct {
	Document string
	Message  string
}

// String formats the finding as "document: message".
func (f Finding) String() string {
	return f.Document + ": " + f.Message
}

// Lint reports references that the schemas cannot check: loot and recipe
// items missing from the item registry, zone keys naming unknown zones and
// travel markers naming unknown zones.
//
// Postcondition: findings are sorted by document, then message.
func (s *Store) Lint() []Finding {
	var out []Finding
	add := func(doc, format string, args ...any) {
		out = append(out, Finding{Document: doc, Message: fmt.Sprintf(format, args...)})
	}
	item := func(doc, ctx, name string) {
		if _, ok := s.Items.Item(name); !ok {
			add(doc, "%s references unknown item %q", ctx, name)
		}
	}
	zone := func(doc, name string) {
		if _, ok := s.World.Resolve(name); !ok {
			add(doc, "unknown zone %q%s", name, s.suggestion(name))
		}
	}

	for z, entries := range s.Loot {
		zone(DocLoot, z)
		for _, e := range entries {
			item(DocLoot, "zone "+z, e.Name)
		}
	}
	for _, r := range s.Recipes.Recipes {
		item(DocRecipes, "recipe "+r.Result, r.Result)
		for _, ing := range r.Ingredients {
			item(DocRecipes, "recipe "+r.Result, ing)
		}
	}
	for _, inv := range s.Recipes.Inventions {
		item(DocRecipes, "invention "+inv.Result, inv.Result)
		for _, it := range inv.Items {
			item(DocRecipes, "invention "+inv.Result, it)
		}
	}
	for z := range s.Narrative.Prologues {
		zone(DocNarrative, z)
	}
	for z, prompts := range s.Narrative.Prompts {
		zone(DocNarrative, z)
		for _, p := range prompts {
			for _, o := range p.Outcomes {
				target, ok := effect.TravelTarget(o)
				if !ok {
					continue
				}
				if _, found := s.World.Resolve(target); !found {
					add(DocNarrative, "zone %s: travel marker names unknown zone %q%s", z, target, s.suggestion(target))
				}
			}
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Document != out[j].Document {
			return out[i].Document < out[j].Document
		}
		return out[i].Message < out[j].Message
	})
	return out
}

func (s *Store) suggestion(name string) string {
	sug := s.World.Suggest(name)
	if len(sug) == 0 {
		return ""
	}
	return " (did you mean " + strings.Join(sug, ", ") + "?)"
}
