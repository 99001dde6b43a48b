// Package world provides the zone model: ordered zone definitions, the home
// zone and zone-name resolution.
package world

import (
	"errors"
	"fmt"
	"strings"
)

// Zone is one named exploration area.
type Zone struct {
	Name        string
	Description string
	// Safe zones are exempt from survival decay and spawns.
	Safe   bool
	SpawnX float64
	SpawnY float64
	Width  float64
	Height float64
	// Script is the zone's Lua script file name, relative to the scripting dir.
	Script string
}

// Validate checks the zone's invariants.
//
// Postcondition: Returns nil iff the name is set, the arena has a positive
// size and the spawn point lies inside it.
func (z *Zone) Validate() error {
	var errs []error
	if strings.TrimSpace(z.Name) == "" {
		errs = append(errs, errors.New("zone name must not be empty"))
	}
	if z.Width <= 0 || z.Height <= 0 {
		errs = append(errs, fmt.Errorf("zone %q: width and height must be > 0", z.Name))
	}
	if z.SpawnX < 0 || z.SpawnX > z.Width || z.SpawnY < 0 || z.SpawnY > z.Height {
		errs = append(errs, fmt.Errorf("zone %q: spawn (%.0f,%.0f) outside arena", z.Name, z.SpawnX, z.SpawnY))
	}
	return errors.Join(errs...)
}
