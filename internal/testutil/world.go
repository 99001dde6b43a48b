package testutil

import "github.com/cory-johannsen/wildlands/internal/game/world"

// Zone names used by the fixture world.
const (
	HomeZone   = "Village"
	FirstZone  = "Outer Grasslands"
	SecondZone = "Shady Grove"
	ThirdZone  = "Arid Desert"
)

// World returns a four-zone world with Village as the safe home zone.
func World() *world.Manager {
	zone := func(name string, safe bool) *world.Zone {
		return &world.Zone{Name: name, Safe: safe, SpawnX: 100, SpawnY: 100, Width: 800, Height: 600}
	}
	m, err := world.NewManager([]*world.Zone{
		zone(HomeZone, true),
		zone(FirstZone, false),
		zone(SecondZone, false),
		zone(ThirdZone, false),
	}, HomeZone)
	if err != nil {
		panic(err)
	}
	return m
}
