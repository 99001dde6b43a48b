// Package scene defines the port through which game logic drives the
// presentation layer, and the payload carried across zone restarts.
package scene

import (
	"time"

	"github.com/cory-johannsen/wildlands/internal/game/inventory"
	"github.com/cory-johannsen/wildlands/internal/game/stats"
)

// EncounterKind names an encounter the presentation layer must host.
type EncounterKind string

const (
	EncounterBattle  EncounterKind = "battle"
	EncounterFishing EncounterKind = "fishing"
	EncounterCamping EncounterKind = "camping"
)

// EntryMode says how a zone is being entered.
type EntryMode int

const (
	// NewSession starts from fresh stats.
	NewSession EntryMode = iota
	// Travel carries stats and inventory into another zone.
	Travel
	// Respawn follows a death at the home zone.
	Respawn
)

// String returns a human-readable mode label.
func (m EntryMode) String() string {
	switch m {
	case NewSession:
		return "new session"
	case Travel:
		return "travel"
	case Respawn:
		return "respawn"
	default:
		return "unknown"
	}
}

// Handoff is the in-memory payload passed between zone restarts. It is the
// only state that survives a restart.
type Handoff struct {
	Mode      EntryMode
	Zone      string
	Stats     *stats.PlayerStats
	Inventory []inventory.Line
	// Equipped lists equipped item names carried across travel.
	Equipped []string
	// Oromozi seeds a NewSession purse.
	Oromozi     int
	PromptCount int
	FromDeath   bool
}

// Scene is the presentation capability game logic depends on. It owns no
// game state.
type Scene interface {
	StartEncounter(kind EncounterKind, payload any)
	RestartAtZone(zone string, h Handoff)
	ShowText(msg string)
	HideText()
	FlashScreen()
	ShakeCamera()
	// ScheduleDelayed runs fn once after d unless the returned cancel is
	// called first.
	ScheduleDelayed(d time.Duration, fn func()) (cancel func())
}
