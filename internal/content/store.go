// Package content loads the game's static content: zones, items, loot
// tables, narrative prompts and recipes. Every document is YAML validated
// against an embedded JSON Schema before it is converted.
package content

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/wildlands/internal/game/crafting"
	"github.com/cory-johannsen/wildlands/internal/game/inventory"
	"github.com/cory-johannsen/wildlands/internal/game/loot"
	"github.com/cory-johannsen/wildlands/internal/game/narrative"
	"github.com/cory-johannsen/wildlands/internal/game/world"
	"github.com/cory-johannsen/wildlands/internal/gameclock"
)

// Store is the loaded, validated content.
type Store struct {
	World     *world.Manager
	Items     *inventory.Registry
	Loot      loot.Table
	Narrative *narrative.Library
	Recipes   *crafting.Book
}

type itemsFile struct {
	Items []*inventory.ItemDef `yaml:"items"`
}

type lootFile struct {
	Loot loot.Table `yaml:"loot"`
}

type yamlPrompt struct {
	Text      string   `yaml:"text"`
	TimeOfDay string   `yaml:"time_of_day"`
	Options   []string `yaml:"options"`
	Outcomes  []string `yaml:"outcomes"`
}

type narrativeFile struct {
	Prologues map[string][]string     `yaml:"prologues"`
	Prompts   map[string][]yamlPrompt `yaml:"prompts"`
}

// Sources holds the raw bytes of each document keyed by document name.
type Sources map[string][]byte

// ReadDir reads <doc>.yaml for every document from dir.
//
// Postcondition: returns an error naming the first unreadable file.
func ReadDir(dir string) (Sources, error) {
	src := make(Sources, len(Documents))
	for _, doc := range Documents {
		path := filepath.Join(dir, doc+".yaml")
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading content file %s: %w", path, err)
		}
		src[doc] = data
	}
	return src, nil
}

// LoadDir reads and loads the content store rooted at dir.
//
// Postcondition: Returns a fully validated Store or a non-nil error.
func LoadDir(dir string) (*Store, error) {
	src, err := ReadDir(dir)
	if err != nil {
		return nil, err
	}
	return Load(src)
}

// Load builds a Store from raw documents. A missing document is an error.
//
// Postcondition: Returns a Store, or an error joining every document that
// failed schema validation or conversion.
func Load(src Sources) (*Store, error) {
	var errs []error
	for _, doc := range Documents {
		data, ok := src[doc]
		if !ok {
			errs = append(errs, fmt.Errorf("missing content document %q", doc))
			continue
		}
		if err := validateYAML(doc, data); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	st := &Store{}
	var err error
	if st.World, err = world.LoadManagerFromBytes(src[DocZones]); err != nil {
		errs = append(errs, err)
	}
	if st.Items, err = loadItems(src[DocItems]); err != nil {
		errs = append(errs, err)
	}
	if st.Loot, err = loadLoot(src[DocLoot]); err != nil {
		errs = append(errs, err)
	}
	if st.Narrative, err = loadNarrative(src[DocNarrative]); err != nil {
		errs = append(errs, err)
	}
	if st.Recipes, err = loadRecipes(src[DocRecipes]); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return st, nil
}

func loadItems(data []byte) (*inventory.Registry, error) {
	var f itemsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing items YAML: %w", err)
	}
	reg := inventory.NewRegistry()
	for _, d := range f.Items {
		if err := d.Validate(); err != nil {
			return nil, err
		}
		if err := reg.RegisterItem(d); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

func loadLoot(data []byte) (loot.Table, error) {
	var f lootFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing loot YAML: %w", err)
	}
	if f.Loot == nil {
		f.Loot = loot.Table{}
	}
	if err := f.Loot.Validate(); err != nil {
		return nil, err
	}
	return f.Loot, nil
}

func loadNarrative(data []byte) (*narrative.Library, error) {
	var f narrativeFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing narrative YAML: %w", err)
	}
	lib := &narrative.Library{
		Prologues: f.Prologues,
		Prompts:   make(map[string][]narrative.Prompt, len(f.Prompts)),
	}
	if lib.Prologues == nil {
		lib.Prologues = map[string][]string{}
	}
	for zone, ps := range f.Prompts {
		for _, yp := range ps {
			p := narrative.Prompt{Text: yp.Text, Options: yp.Options, Outcomes: yp.Outcomes}
			if yp.TimeOfDay != "" {
				tod, ok := gameclock.ParseTimeOfDay(yp.TimeOfDay)
				if !ok {
					return nil, fmt.Errorf("zone %q prompt %q: unknown time_of_day %q", zone, yp.Text, yp.TimeOfDay)
				}
				p.TimeOfDay = tod
			}
			lib.Prompts[zone] = append(lib.Prompts[zone], p)
		}
	}
	if err := lib.Validate(); err != nil {
		return nil, err
	}
	return lib, nil
}

func loadRecipes(data []byte) (*crafting.Book, error) {
	var b crafting.Book
	if err := yaml.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("parsing recipes YAML: %w", err)
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return &b, nil
}
