// Package narrative runs the prompt/choice/outcome flow and resolves chosen
// outcomes into stat changes, loot, level-ups and zone travel.
package narrative

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/wildlands/internal/game/dice"
	"github.com/cory-johannsen/wildlands/internal/game/effect"
	"github.com/cory-johannsen/wildlands/internal/game/inventory"
	"github.com/cory-johannsen/wildlands/internal/game/loot"
	"github.com/cory-johannsen/wildlands/internal/game/progression"
	"github.com/cory-johannsen/wildlands/internal/game/scene"
	"github.com/cory-johannsen/wildlands/internal/game/session"
	"github.com/cory-johannsen/wildlands/internal/game/survival"
	"github.com/cory-johannsen/wildlands/internal/game/world"
	"github.com/cory-johannsen/wildlands/internal/gameclock"
)

// ErrInvalidChoice is returned for a choice index outside the active menu.
var ErrInvalidChoice = errors.New("narrative: invalid choice")

// FishingMarker in an outcome starts the fishing encounter.
const FishingMarker = "transition to fishing scene"

// NoOutcome is displayed for an empty outcome string.
const NoOutcome = "No specific outcome."

// DeathChecker runs the death sequence when health has reached zero.
type DeathChecker interface {
	// CheckDeath reports whether a death sequence owns the session.
	CheckDeath(s *session.Session) bool
}

// OutcomeHook may append flavour text to a resolved outcome.
type OutcomeHook interface {
	OnOutcome(zone string, choice int, text string) string
}

// Clock reports the current game hour.
type Clock interface {
	CurrentHour() gameclock.GameHour
}

// ChoiceKind distinguishes entries of the choice menu.
type ChoiceKind int

const (
	ChoiceOption ChoiceKind = iota
	ChoiceReturn
	ChoiceBack
)

// Choice is one entry of the choice menu.
type Choice struct {
	Label string
	Kind  ChoiceKind
	// Zone is the destination of a ChoiceReturn entry.
	Zone string
}

// Config tunes the coordinator.
type Config struct {
	OutcomeDelay        time.Duration
	PromptsBeforeReturn int
}

// Coordinator drives the narrative flow of one session.
type Coordinator struct {
	lib      *Library
	world    *world.Manager
	items    *inventory.Registry
	loot     *loot.Resolver
	roller   *dice.Roller
	clock    Clock
	scene    scene.Scene
	death    DeathChecker
	hook     OutcomeHook
	cfg      Config
	logger   *zap.Logger
	active   *Prompt
	choices  []Choice
	resolved string
}

// NewCoordinator creates a Coordinator. hook may be nil.
//
// Precondition: every other argument must be non-nil.
func NewCoordinator(lib *Library, w *world.Manager, items *inventory.Registry, lootResolver *loot.Resolver,
	roller *dice.Roller, clock Clock, sc scene.Scene, death DeathChecker, hook OutcomeHook, cfg Config, logger *zap.Logger) *Coordinator {
	return &Coordinator{
		lib:    lib,
		world:  w,
		items:  items,
		loot:   lootResolver,
		roller: roller,
		clock:  clock,
		scene:  sc,
		death:  death,
		hook:   hook,
		cfg:    cfg,
		logger: logger,
	}
}

// Active returns the active prompt, or nil.
func (c *Coordinator) Active() *Prompt {
	return c.active
}

// LastOutcome returns the most recently displayed outcome text.
func (c *Coordinator) LastOutcome() string {
	return c.resolved
}

// Begin opens the narrative flow with a prologue, or straight at a prompt
// when the zone has none.
//
// Postcondition: returns session.ErrBusy if another interaction holds the
// screen flag.
func (c *Coordinator) Begin(s *session.Session) error {
	if err := s.Acquire(session.ScreenPrologue); err != nil {
		return err
	}
	zone := s.Stats.CurrentZone
	prologues := c.lib.Prologues[zone]
	if len(prologues) == 0 {
		c.showPrompt(s)
		return nil
	}
	text := prologues[c.roller.Intn("narrative.prologue", len(prologues))]
	c.scene.ShowText(text + "\n\n(Press SPACE to continue)")
	return nil
}

func (c *Coordinator) showPrompt(s *session.Session) {
	zone := s.Stats.CurrentZone
	tod := c.clock.CurrentHour().TimeOfDay()
	available := c.lib.ForTime(zone, tod)
	if len(available) == 0 {
		c.logger.Debug("no prompts for zone", zap.String("zone", zone))
		c.active = nil
		c.scene.HideText()
		s.Release()
		return
	}
	p := available[c.roller.Intn("narrative.prompt", len(available))]
	c.active = &p
	s.Screen = session.ScreenPrompt
	c.scene.ShowText(fmt.Sprintf("--- %s (%s) ---\n\n%s\n\n(Press SPACE to see choices)", zone, tod, p.Text))
}

// Continue handles the confirm input for the current narrative screen.
//
// Postcondition: a no-op outside the narrative screens and while an outcome
// is still being processed.
func (c *Coordinator) Continue(s *session.Session) {
	switch s.Screen {
	case session.ScreenPrologue:
		c.scene.HideText()
		c.showPrompt(s)
	case session.ScreenPrompt:
		c.showChoices(s)
	case session.ScreenOutcome:
		if c.active == nil {
			c.EndFlow(s)
		}
	}
}

// Choices returns the menu for the active prompt: its options, a
// "Return to" entry once enough prompts have been completed, and "Back".
func (c *Coordinator) Choices(s *session.Session) []Choice {
	if c.active == nil {
		return nil
	}
	out := make([]Choice, 0, len(c.active.Options)+2)
	for _, opt := range c.active.Options {
		out = append(out, Choice{Label: opt, Kind: ChoiceOption})
	}
	if s.PromptCount >= c.cfg.PromptsBeforeReturn {
		if prev, ok := c.world.Previous(s.Stats.CurrentZone); ok {
			out = append(out, Choice{Label: "Return to " + prev.Name, Kind: ChoiceReturn, Zone: prev.Name})
		}
	}
	return append(out, Choice{Label: "Back", Kind: ChoiceBack})
}

func (c *Coordinator) showChoices(s *session.Session) {
	s.Screen = session.ScreenChoices
	c.choices = c.Choices(s)
	c.scene.ShowText("Pick one choice:")
}

// Choose selects entry idx of the choice menu.
//
// Postcondition: an out-of-range idx ends the flow without mutation and
// returns ErrInvalidChoice.
func (c *Coordinator) Choose(s *session.Session, idx int) error {
	if s.Screen != session.ScreenChoices || c.active == nil || idx < 0 || idx >= len(c.choices) {
		c.abandon(s)
		return fmt.Errorf("choice %d: %w", idx, ErrInvalidChoice)
	}
	ch := c.choices[idx]
	switch ch.Kind {
	case ChoiceBack:
		c.showPrompt(s)
		return nil
	case ChoiceReturn:
		c.travel(s, ch.Zone)
		return nil
	default:
		return c.ApplyOutcome(s, idx)
	}
}

// ApplyOutcome resolves option choiceIndex of the active prompt after the
// configured processing delay.
//
// Postcondition: an out-of-range index ends the flow without mutation and
// returns ErrInvalidChoice.
func (c *Coordinator) ApplyOutcome(s *session.Session, choiceIndex int) error {
	if c.active == nil || choiceIndex < 0 || choiceIndex >= len(c.active.Outcomes) {
		c.abandon(s)
		return fmt.Errorf("outcome %d: %w", choiceIndex, ErrInvalidChoice)
	}
	s.Screen = session.ScreenOutcome
	prompt := c.active
	c.scene.ShowText("...")
	c.scene.ScheduleDelayed(c.cfg.OutcomeDelay, func() {
		c.resolve(s, prompt, choiceIndex)
	})
	return nil
}

// ApplyPromptOutcome selects prompt promptIndex of the current zone and
// resolves its option choiceIndex, without walking through the prologue and
// choice screens.
//
// Postcondition: returns session.ErrBusy when a non-narrative interaction
// holds the screen flag, and ErrInvalidChoice without mutation for an index
// outside the zone's prompts or the prompt's options.
func (c *Coordinator) ApplyPromptOutcome(s *session.Session, promptIndex, choiceIndex int) error {
	if s.Busy() && !s.Screen.IsNarrative() {
		return session.ErrBusy
	}
	prompts := c.lib.Prompts[s.Stats.CurrentZone]
	if promptIndex < 0 || promptIndex >= len(prompts) {
		return fmt.Errorf("prompt %d: %w", promptIndex, ErrInvalidChoice)
	}
	p := prompts[promptIndex]
	if choiceIndex < 0 || choiceIndex >= len(p.Outcomes) {
		return fmt.Errorf("outcome %d: %w", choiceIndex, ErrInvalidChoice)
	}
	c.active = &p
	c.choices = nil
	return c.ApplyOutcome(s, choiceIndex)
}

func (c *Coordinator) abandon(s *session.Session) {
	c.active = nil
	c.choices = nil
	if s.Screen.IsNarrative() {
		s.Release()
		c.scene.HideText()
	}
}

func (c *Coordinator) resolve(s *session.Session, prompt *Prompt, choiceIndex int) {
	if c.active != prompt || s.Screen != session.ScreenOutcome {
		return
	}
	text := prompt.Outcomes[choiceIndex]
	if strings.TrimSpace(text) == "" {
		text = NoOutcome
	}
	zone := s.Stats.CurrentZone
	safe := c.world.IsSafe(zone)
	var lines []string

	applied := effect.Apply(s.Stats, text, s.Equipment.Resistance(c.items))
	tick := survival.Tick(s.Stats, safe)
	c.logger.Info("outcome applied",
		zap.String("zone", zone),
		zap.Int("choice", choiceIndex),
		zap.Int("tags", len(applied)),
		zap.Int("survival_penalty", tick.Penalty),
	)
	if tick.Penalty > 0 {
		c.scene.ShakeCamera()
	}
	if c.death.CheckDeath(s) {
		c.active = nil
		return
	}

	if effect.HasLoot(text) {
		if item, ok := c.loot.Roll(zone, s.Stats.Level); ok {
			s.Inventory.Add(item, 1)
			lines = append(lines, "Found: "+item)
		} else {
			lines = append(lines, "No loot found")
		}
	}

	gained := 0
	if !safe {
		gained = progression.Grant(s.Stats, 5+c.roller.Intn("narrative.explore_exp", 5))
	}
	gained += progression.CheckLevelUp(s.Stats)
	if gained > 0 {
		c.scene.FlashScreen()
		lines = append(lines, fmt.Sprintf("LEVEL UP! You are now level %d", s.Stats.Level))
		c.logger.Info("level up", zap.Int("level", s.Stats.Level), zap.Int("levels_gained", gained))
	}

	if target, ok := effect.TravelTarget(text); ok {
		if z, found := c.world.Resolve(target); found {
			c.travel(s, z.Name)
			return
		}
		c.logger.Warn("travel marker names unknown zone",
			zap.String("target", target),
			zap.Strings("suggestions", c.world.Suggest(target)),
		)
	}

	if strings.Contains(strings.ToLower(text), FishingMarker) {
		c.active = nil
		s.PromptCount++
		s.Release()
		c.scene.StartEncounter(scene.EncounterFishing, scene.Handoff{
			Mode:      scene.Travel,
			Zone:      zone,
			Stats:     s.Stats,
			Inventory: s.Inventory.Lines(),
		})
		return
	}

	if c.hook != nil {
		if extra := c.hook.OnOutcome(zone, choiceIndex, text); extra != "" {
			lines = append(lines, extra)
		}
	}

	display := "Outcome:\n\n" + text
	if len(lines) > 0 {
		display += "\n\n" + strings.Join(lines, "\n")
	}
	c.resolved = display
	c.active = nil
	c.choices = nil
	c.scene.ShowText(display + "\n\n(Press SPACE to continue)")
}

// travel ends the flow and restarts the scene at zone with stats and
// inventory carried over.
func (c *Coordinator) travel(s *session.Session, zone string) {
	c.active = nil
	c.choices = nil
	s.Release()
	c.scene.HideText()
	c.logger.Info("zone travel", zap.String("from", s.Stats.CurrentZone), zap.String("to", zone))
	c.scene.RestartAtZone(zone, scene.Handoff{
		Mode:      scene.Travel,
		Zone:      zone,
		Stats:     s.Stats,
		Inventory: s.Inventory.Lines(),
		Equipped:  s.Equipment.Names(),
	})
}

// EndFlow closes the narrative screen and counts the completed prompt.
func (c *Coordinator) EndFlow(s *session.Session) {
	c.active = nil
	c.choices = nil
	if s.Screen.IsNarrative() {
		s.Release()
	}
	c.scene.HideText()
	s.PromptCount++
}
