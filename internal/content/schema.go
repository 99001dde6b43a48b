package content

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

//go:embed schemas/*.schema.json
var schemaFS embed.FS

// Document names, each with a matching schema and a <name>.yaml file.
const (
	DocZones     = "zones"
	DocItems     = "items"
	DocLoot      = "loot"
	DocNarrative = "narrative"
	DocRecipes   = "recipes"
)

// Documents lists every content document in load order.
var Documents = []string{DocZones, DocItems, DocLoot, DocNarrative, DocRecipes}

// compileSchema compiles the embedded schema for doc.
func compileSchema(doc string) (*jsonschema.Schema, error) {
	name := "schemas/" + doc + ".schema.json"
	raw, err := schemaFS.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("content: reading schema %s: %w", name, err)
	}
	s, err := jsonschema.CompileString(name, string(raw))
	if err != nil {
		return nil, fmt.Errorf("content: compiling schema %s: %w", name, err)
	}
	return s, nil
}

// validateYAML checks a YAML document against doc's schema. The document is
// normalised through JSON so the validator sees JSON types.
//
// Postcondition: returns nil iff data parses and conforms.
func validateYAML(doc string, data []byte) error {
	s, err := compileSchema(doc)
	if err != nil {
		return err
	}
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("parsing %s YAML: %w", doc, err)
	}
	if raw == nil {
		raw = map[string]any{}
	}
	js, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("normalising %s: %w", doc, err)
	}
	dec := json.NewDecoder(bytes.NewReader(js))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return fmt.Errorf("normalising %s: %w", doc, err)
	}
	if err := s.Validate(v); err != nil {
		return fmt.Errorf("%s does not match schema: %w", doc, err)
	}
	return nil
}
