// Package session holds the explicit state of one play session: the player
// record, inventory, equipment, live encounters and the screen flag that
// serialises multi-step mutations.
package session

import (
	"errors"

	"github.com/google/uuid"

	"github.com/cory-johannsen/wildlands/internal/game/combat"
	"github.com/cory-johannsen/wildlands/internal/game/encounter"
	"github.com/cory-johannsen/wildlands/internal/game/inventory"
	"github.com/cory-johannsen/wildlands/internal/game/stats"
)

// ErrBusy is returned when an operation needs the screen flag while another
// sequence holds it.
var ErrBusy = errors.New("session: another interaction is in progress")

// Screen is the active interaction. Only ScreenNone permits free movement
// and new interactions.
type Screen int

const (
	ScreenNone Screen = iota
	ScreenPrologue
	ScreenPrompt
	ScreenChoices
	ScreenOutcome
	ScreenBattle
	ScreenCraft
	ScreenCamp
	ScreenDying
)

// String returns a human-readable screen label.
func (s Screen) String() string {
	switch s {
	case ScreenNone:
		return "none"
	case ScreenPrologue:
		return "prologue"
	case ScreenPrompt:
		return "prompt"
	case ScreenChoices:
		return "choices"
	case ScreenOutcome:
		return "outcome"
	case ScreenBattle:
		return "battle"
	case ScreenCraft:
		return "craft"
	case ScreenCamp:
		return "camp"
	case ScreenDying:
		return "dying"
	default:
		return "unknown"
	}
}

// IsNarrative reports whether s belongs to the narrative flow.
func (s Screen) IsNarrative() bool {
	return s >= ScreenPrologue && s <= ScreenOutcome
}

// Session is the mutable state of one play session.
type Session struct {
	ID         string
	Stats      *stats.PlayerStats
	Inventory  *inventory.Inventory
	Equipment  *inventory.Equipment
	Encounters *encounter.Registry
	Screen     Screen
	Battle     *combat.Battle
	// PromptCount counts completed narrative prompts in the current zone.
	PromptCount int
	Pos         combat.Vec
	Facing      combat.Direction
	// Dying is set for the whole death sequence.
	Dying bool
}

// New creates a session around p with the given inventory lines.
//
// Precondition: p must not be nil.
// Postcondition: Screen is ScreenNone and no encounters are live.
func New(p *stats.PlayerStats, lines []inventory.Line) *Session {
	return &Session{
		ID:         uuid.NewString(),
		Stats:      p,
		Inventory:  inventory.New(lines...),
		Equipment:  inventory.NewEquipment(),
		Encounters: encounter.NewRegistry(),
	}
}

// Busy reports whether an interaction holds the screen flag.
func (s *Session) Busy() bool {
	return s.Screen != ScreenNone || s.Dying
}

// Acquire sets the screen flag to screen if it is free.
//
// Postcondition: returns ErrBusy and leaves the flag unchanged when another
// interaction holds it.
func (s *Session) Acquire(screen Screen) error {
	if s.Busy() {
		return ErrBusy
	}
	s.Screen = screen
	return nil
}

// Release clears the screen flag.
func (s *Session) Release() {
	s.Screen = ScreenNone
}

// Player returns the combat view of the session.
func (s *Session) Player(reg *inventory.Registry) combat.Player {
	return combat.Player{Stats: s.Stats, Bonus: s.Equipment.CombatBonus(reg)}
}

// Pack returns the combat inventory view of the session.
func (s *Session) Pack(reg *inventory.Registry) combat.InventoryPack {
	return combat.InventoryPack{Inventory: s.Inventory, Registry: reg}
}

// Move shifts the player by delta inside an arena of w by h. Movement is
// ignored while any interaction holds the screen flag.
//
// Postcondition: returns false when the move was blocked.
func (s *Session) Move(dir combat.Direction, step, w, h float64) bool {
	if s.Busy() {
		return false
	}
	s.Facing = dir
	next := s.Pos.Add(dir.Unit().Scale(step))
	next.X = min(max(next.X, 0), w)
	next.Y = min(max(next.Y, 0), h)
	s.Pos = next
	return true
}
