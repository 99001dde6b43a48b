package world

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// yamlZonesFile is the top-level YAML structure of the zones document.
type yamlZonesFile struct {
	Home  string     `yaml:"home"`
	Zones []yamlZone `yaml:"zones"`
}

type yamlZone struct {
	Name        string  `yaml:"name"`
	Description string  `yaml:"description"`
	Safe        bool    `yaml:"safe"`
	SpawnX      float64 `yaml:"spawn_x"`
	SpawnY      float64 `yaml:"spawn_y"`
	Width       float64 `yaml:"width"`
	Height      float64 `yaml:"height"`
	Script      string  `yaml:"script"`
}

// LoadManagerFromBytes parses the zones document and builds a Manager.
//
// Precondition: data must be YAML with a "home" name and a "zones" list.
// Postcondition: Returns a Manager over validated zones or a non-nil error.
func LoadManagerFromBytes(data []byte) (*Manager, error) {
	var file yamlZonesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing zones YAML: %w", err)
	}
	zones := make([]*Zone, 0, len(file.Zones))
	for _, yz := range file.Zones {
		z := &Zone{
			Name:        yz.Name,
			Description: yz.Description,
			Safe:        yz.Safe,
			SpawnX:      yz.SpawnX,
			SpawnY:      yz.SpawnY,
			Width:       yz.Width,
			Height:      yz.Height,
			Script:      yz.Script,
		}
		if err := z.Validate(); err != nil {
			return nil, fmt.Errorf("validating zone: %w", err)
		}
		zones = append(zones, z)
	}
	return NewManager(zones, file.Home)
}

// LoadManagerFromFile reads the zones document at path.
//
// Precondition: path must point to a readable zones YAML file.
// Postcondition: Returns a Manager or a non-nil error.
func LoadManagerFromFile(path string) (*Manager, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading zones file %s: %w", path, err)
	}
	return LoadManagerFromBytes(data)
}
