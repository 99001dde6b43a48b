// Package crafting implements recipe crafting, secret inventions and the
// night camp with its cancellable setup countdown.
package crafting

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/wildlands/internal/game/scene"
	"github.com/cory-johannsen/wildlands/internal/game/session"
	"github.com/cory-johannsen/wildlands/internal/gameclock"
)

var (
	// ErrInsufficientResources is returned when required items are missing.
	ErrInsufficientResources = errors.New("crafting: insufficient resources")
	// ErrUnknownRecipe is returned for a recipe name not in the book.
	ErrUnknownRecipe = errors.New("crafting: unknown recipe")
	// ErrNotNight is returned when camping is attempted during the day.
	ErrNotNight = errors.New("crafting: it is not nighttime")
	// ErrInventionFailed is returned when the combined items match no
	// invention. The items are still consumed.
	ErrInventionFailed = errors.New("crafting: the invention failed")
	// ErrNoCamp is returned when there is no camp setup to cancel.
	ErrNoCamp = errors.New("crafting: no camp is being set up")
)

// User-facing messages.
const (
	MsgMissingItems   = "You don't have all the required items!"
	MsgNoCampMaterial = "You don't have enough materials to camp!"
	MsgNotNight       = "It's not nighttime yet."
	MsgCampPrompt     = "It's night. Do you want to set up camp?"
	MsgSettingUpCamp  = "Setting up camp..."
	MsgCampCancelled  = "You pack up your materials."
	MsgInventionFail  = "Your invention sputters and falls apart."
)

// CampCost is consumed when a camp is set up.
var CampCost = map[string]int{"Stick": 2, "Cloth": 1}

// Clock reports the current game hour.
type Clock interface {
	CurrentHour() gameclock.GameHour
}

// Workshop performs crafting actions against a session.
type Workshop struct {
	book      *Book
	clock     Clock
	scene     scene.Scene
	countdown time.Duration
	logger    *zap.Logger

	cancelCamp func()
	campFor    *session.Session
}

// NewWorkshop creates a Workshop whose camp setup takes countdown.
//
// Precondition: every argument must be non-nil.
func NewWorkshop(book *Book, clock Clock, sc scene.Scene, countdown time.Duration, logger *zap.Logger) *Workshop {
	return &Workshop{book: book, clock: clock, scene: sc, countdown: countdown, logger: logger}
}

// Book returns the recipe book.
func (w *Workshop) Book() *Book {
	return w.book
}

// Craft makes one unit of the named recipe.
//
// Postcondition: on any error the inventory is unchanged. On success one of
// each ingredient is consumed and the result added.
func (w *Workshop) Craft(s *session.Session, name string) (string, error) {
	if s.Busy() {
		return "", session.ErrBusy
	}
	r, ok := w.book.Recipe(name)
	if !ok {
		return "", fmt.Errorf("%q: %w", name, ErrUnknownRecipe)
	}
	if err := s.Inventory.RemoveAll(r.Requirements()); err != nil {
		w.scene.ShowText(MsgMissingItems)
		return "", fmt.Errorf("craft %s: %w", r.Result, ErrInsufficientResources)
	}
	s.Inventory.Add(r.Result, 1)
	w.logger.Info("crafted", zap.String("session", s.ID), zap.String("item", r.Result))
	msg := fmt.Sprintf("Crafted %s!", r.Result)
	w.scene.ShowText(msg)
	return msg, nil
}

// Invent combines exactly InventionSize held items.
//
// Postcondition: returns ErrInsufficientResources with no mutation when any
// item is missing. Otherwise the items are consumed; a matching invention
// adds its result, anything else returns ErrInventionFailed.
func (w *Workshop) Invent(s *session.Session, items []string) (string, error) {
	if s.Busy() {
		return "", session.ErrBusy
	}
	if len(items) != InventionSize {
		return "", fmt.Errorf("invent: want %d items, got %d: %w", InventionSize, len(items), ErrInsufficientResources)
	}
	if err := s.Inventory.RemoveAll(requirements(items)); err != nil {
		w.scene.ShowText(MsgMissingItems)
		return "", fmt.Errorf("invent: %w", ErrInsufficientResources)
	}
	inv, ok := w.book.Match(items)
	if !ok {
		w.logger.Info("invention failed", zap.String("session", s.ID), zap.Strings("items", items))
		w.scene.ShowText(MsgInventionFail)
		return MsgInventionFail, ErrInventionFailed
	}
	s.Inventory.Add(inv.Result, 1)
	w.logger.Info("invented", zap.String("session", s.ID), zap.String("item", inv.Result))
	msg := fmt.Sprintf("You invented %s!", inv.Result)
	w.scene.ShowText(msg)
	return msg, nil
}

// Camp sets up a camp for the night. The materials are consumed immediately
// and the camping encounter starts once the countdown elapses.
//
// Postcondition: on error nothing is consumed and the screen flag is
// unchanged. On success the screen is ScreenCamp until the countdown fires
// or CancelCamp is called.
func (w *Workshop) Camp(s *session.Session) error {
	if s.Busy() {
		return session.ErrBusy
	}
	if !w.clock.CurrentHour().IsNight() {
		w.scene.ShowText(MsgNotNight)
		return ErrNotNight
	}
	if !s.Inventory.HasAll(CampCost) {
		w.scene.ShowText(MsgNoCampMaterial)
		return fmt.Errorf("camp: %w", ErrInsufficientResources)
	}
	if err := s.Acquire(session.ScreenCamp); err != nil {
		return err
	}
	if err := s.Inventory.RemoveAll(CampCost); err != nil {
		s.Release()
		return fmt.Errorf("camp: %w", ErrInsufficientResources)
	}
	w.campFor = s
	w.scene.ShowText(MsgSettingUpCamp)
	w.logger.Info("camp setup started", zap.String("session", s.ID), zap.Duration("countdown", w.countdown))
	w.cancelCamp = w.scene.ScheduleDelayed(w.countdown, func() {
		w.cancelCamp = nil
		w.campFor = nil
		if s.Screen != session.ScreenCamp {
			return
		}
		s.Release()
		w.scene.HideText()
		w.logger.Info("camp set up", zap.String("session", s.ID))
		w.scene.StartEncounter(scene.EncounterCamping, scene.Handoff{
			Mode:      scene.Travel,
			Zone:      s.Stats.CurrentZone,
			Stats:     s.Stats,
			Inventory: s.Inventory.Lines(),
		})
	})
	return nil
}

// CampPending reports whether a camp countdown is running.
func (w *Workshop) CampPending() bool {
	return w.cancelCamp != nil
}

// CancelCamp stops a running camp countdown and refunds the materials.
//
// Postcondition: returns ErrNoCamp when no countdown is running for s.
func (w *Workshop) CancelCamp(s *session.Session) error {
	if w.cancelCamp == nil || w.campFor != s {
		return ErrNoCamp
	}
	w.cancelCamp()
	w.cancelCamp = nil
	w.campFor = nil
	for name, qty := range CampCost {
		s.Inventory.Add(name, qty)
	}
	if s.Screen == session.ScreenCamp {
		s.Release()
	}
	w.scene.ShowText(MsgCampCancelled)
	w.logger.Info("camp setup cancelled", zap.String("session", s.ID))
	return nil
}
