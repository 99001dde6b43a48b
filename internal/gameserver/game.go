// Package gameserver wires the game coordinators into one serialised Game
// facade driven by player input, scheduled continuations and a real-time
// tick.
package gameserver

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/wildlands/internal/config"
	"github.com/cory-johannsen/wildlands/internal/content"
	"github.com/cory-johannsen/wildlands/internal/game/combat"
	"github.com/cory-johannsen/wildlands/internal/game/crafting"
	"github.com/cory-johannsen/wildlands/internal/game/death"
	"github.com/cory-johannsen/wildlands/internal/game/dice"
	"github.com/cory-johannsen/wildlands/internal/game/encounter"
	"github.com/cory-johannsen/wildlands/internal/game/inventory"
	"github.com/cory-johannsen/wildlands/internal/game/loot"
	"github.com/cory-johannsen/wildlands/internal/game/narrative"
	"github.com/cory-johannsen/wildlands/internal/game/progression"
	"github.com/cory-johannsen/wildlands/internal/game/scene"
	"github.com/cory-johannsen/wildlands/internal/game/session"
	"github.com/cory-johannsen/wildlands/internal/game/stats"
	"github.com/cory-johannsen/wildlands/internal/game/survival"
	"github.com/cory-johannsen/wildlands/internal/gameclock"
)

// MoveStep is the distance covered by one movement input.
const MoveStep = 10.0

var (
	// ErrBusy is returned when another interaction holds the screen flag.
	ErrBusy = session.ErrBusy
	// ErrNoSession is returned before the first Enter.
	ErrNoSession = errors.New("gameserver: no active session")
	// ErrNoBattle is returned for a battle action outside a battle.
	ErrNoBattle = errors.New("gameserver: no battle in progress")
	// ErrUnknownItem is returned for an item name not in the registry.
	ErrUnknownItem = errors.New("gameserver: unknown item")
	// ErrNotHeld is returned for an item the player does not carry.
	ErrNotHeld = errors.New("gameserver: item not in inventory")
	// ErrNotConsumable is returned when using a non-consumable item.
	ErrNotConsumable = errors.New("gameserver: item cannot be used")
	// ErrNothingHere is returned when there is nothing in reach to interact with.
	ErrNothingHere = errors.New("gameserver: nothing to interact with")
)

// Hooks are the zone script callbacks. The scripting manager implements it.
type Hooks interface {
	narrative.OutcomeHook
	OnVictory(zone, enemy string, level int) string
}

// Game is the single-player game facade. Every exported method, every
// scheduled continuation and every tick runs under one mutex, so game state
// is only ever mutated by one sequence at a time.
type Game struct {
	mu       sync.Mutex
	cfg      config.Config
	store    *content.Store
	roller   *dice.Roller
	clock    *gameclock.GameClock
	scene    *lockedScene
	loot     *loot.Resolver
	combat   *combat.Resolver
	spawner  *encounter.Spawner
	story    *narrative.Coordinator
	death    *death.Coordinator
	workshop *crafting.Workshop
	hooks    Hooks
	logger   *zap.Logger

	sess       *session.Session
	now        time.Duration
	sinceRegen time.Duration
}

// NewGame assembles a Game over store. hooks may be nil.
//
// Precondition: store, roller, sc and logger must be non-nil; cfg must be
// valid.
// Postcondition: no session is active until Enter is called.
func NewGame(store *content.Store, cfg config.Config, roller *dice.Roller, sc scene.Scene, hooks Hooks, logger *zap.Logger) *Game {
	g := &Game{
		cfg:     cfg,
		store:   store,
		roller:  roller,
		clock:   gameclock.NewGameClock(cfg.Game.DayLength()),
		hooks:   hooks,
		logger:  logger,
		spawner: encounter.NewSpawner(roller),
	}
	g.scene = &lockedScene{Scene: sc, game: g}
	g.loot = loot.NewResolver(store.Loot, roller)
	g.combat = combat.NewResolver(roller, g.loot, logger)
	g.death = death.NewCoordinator(store.World, g.scene, cfg.Game.DeathDelay, logger)
	var hook narrative.OutcomeHook
	if hooks != nil {
		hook = hooks
	}
	g.story = narrative.NewCoordinator(store.Narrative, store.World, store.Items, g.loot, roller, g.clock,
		g.scene, g.death, hook, narrative.Config{
			OutcomeDelay:        cfg.Game.OutcomeDelay,
			PromptsBeforeReturn: cfg.Game.PromptsBeforeReturn,
		}, logger)
	g.workshop = crafting.NewWorkshop(store.Recipes, g.clock, g.scene, cfg.Game.CampCountdown, logger)
	return g
}

// lockedScene forwards to the presentation scene. Scheduled continuations
// take the game lock before running, and zone restarts re-enter the game
// synchronously.
type lockedScene struct {
	scene.Scene
	game *Game
}

// ScheduleDelayed implements scene.Scene.
func (l *lockedScene) ScheduleDelayed(d time.Duration, fn func()) func() {
	return l.Scene.ScheduleDelayed(d, func() {
		l.game.mu.Lock()
		defer l.game.mu.Unlock()
		fn()
	})
}

// RestartAtZone implements scene.Scene. It is only called by coordinators
// that already hold the game lock.
func (l *lockedScene) RestartAtZone(zone string, h scene.Handoff) {
	l.Scene.RestartAtZone(zone, h)
	l.game.enter(h)
}

// Clock returns the game clock.
func (g *Game) Clock() *gameclock.GameClock {
	return g.clock
}

// Enter starts play at a zone according to h.Mode.
//
// Postcondition: the session is at the zone's spawn point with the screen
// free, the prompt counter set from h and encounters respawned for a
// non-safe zone.
func (g *Game) Enter(h scene.Handoff) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.enter(h)
}

func (g *Game) enter(h scene.Handoff) {
	name := h.Zone
	switch {
	case h.Mode == scene.Respawn:
		name = g.store.World.Home().Name
	case name == "":
		name = g.cfg.Game.StartingZone
	}
	z, ok := g.store.World.Resolve(name)
	if !ok {
		g.logger.Warn("entering unknown zone, using home",
			zap.String("zone", name),
			zap.Strings("suggestions", g.store.World.Suggest(name)),
		)
		z = g.store.World.Home()
	}

	p := h.Stats
	lines := h.Inventory
	if h.Mode == scene.NewSession {
		if p == nil {
			oromozi := h.Oromozi
			if oromozi == 0 {
				oromozi = g.cfg.Game.StartingOromozi
			}
			p = stats.New(z.Name, oromozi)
		}
		if lines == nil {
			lines = g.cfg.Game.StartingInventory
		}
	}
	if p == nil {
		p = stats.New(z.Name, g.cfg.Game.StartingOromozi)
	}
	p.CurrentZone = z.Name

	s := session.New(p, lines)
	if g.sess != nil {
		s.ID = g.sess.ID
	}
	for _, item := range h.Equipped {
		if err := s.Equipment.Equip(item, s.Inventory, g.store.Items); err != nil {
			g.logger.Debug("dropping equipped item on entry", zap.String("item", item), zap.Error(err))
		}
	}
	s.PromptCount = h.PromptCount
	s.Pos = combat.Vec{X: z.SpawnX, Y: z.SpawnY}
	s.Facing = combat.Down
	g.spawner.Populate(s.Encounters, encounter.Bounds{Width: z.Width, Height: z.Height}, z.Safe, p.Level,
		g.cfg.Spawn.Crates, g.cfg.Spawn.Markers, g.cfg.Spawn.Monsters)

	g.sess = s
	g.now = 0
	g.logger.Info("zone entered",
		zap.String("session", s.ID),
		zap.String("zone", z.Name),
		zap.Stringer("mode", h.Mode),
		zap.Int("encounters", s.Encounters.Count()),
	)
	if g.store.World.IsHome(z.Name) {
		if err := g.story.Begin(s); err != nil {
			g.logger.Debug("narrative not started on entry", zap.Error(err))
		}
	}
}

func (g *Game) session() (*session.Session, error) {
	if g.sess == nil {
		return nil, ErrNoSession
	}
	return g.sess, nil
}

// Do runs fn with the live session under the game lock.
//
// Postcondition: returns ErrNoSession before the first Enter.
func (g *Game) Do(fn func(s *session.Session)) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	s, err := g.session()
	if err != nil {
		return err
	}
	fn(s)
	return nil
}

// StatReader returns a lookup of the current player's stats by name. The
// lookup does not lock; it is meant for script hooks, which the game only
// runs while it already holds its lock.
func (g *Game) StatReader() func(name string) (int, bool) {
	return func(name string) (int, bool) {
		if g.sess == nil {
			return 0, false
		}
		st, ok := stats.ParseStat(name)
		if !ok {
			return 0, false
		}
		return g.sess.Stats.Get(st), true
	}
}

// Begin opens the narrative flow.
func (g *Game) Begin() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	s, err := g.session()
	if err != nil {
		return err
	}
	return g.story.Begin(s)
}

// Continue handles the confirm input: it advances the narrative screens and
// dismisses any other message while the screen is free.
func (g *Game) Continue() {
	g.mu.Lock()
	defer g.mu.Unlock()
	s, err := g.session()
	if err != nil {
		return
	}
	switch {
	case s.Screen.IsNarrative():
		g.story.Continue(s)
	case s.Screen == session.ScreenNone && !s.Dying:
		g.scene.HideText()
	}
}

// Choices returns the active choice menu.
func (g *Game) Choices() []narrative.Choice {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.sess == nil || g.sess.Screen != session.ScreenChoices {
		return nil
	}
	return g.story.Choices(g.sess)
}

// Choose selects entry idx of the choice menu.
func (g *Game) Choose(idx int) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	s, err := g.session()
	if err != nil {
		return err
	}
	return g.story.Choose(s, idx)
}

// ApplyOutcome resolves option choiceIndex of prompt promptIndex of the
// current zone.
func (g *Game) ApplyOutcome(promptIndex, choiceIndex int) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	s, err := g.session()
	if err != nil {
		return err
	}
	return g.story.ApplyPromptOutcome(s, promptIndex, choiceIndex)
}

// Interact touches a narrative marker in reach and opens the narrative flow.
//
// Postcondition: returns ErrNothingHere when no marker is in reach.
func (g *Game) Interact() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	s, err := g.session()
	if err != nil {
		return err
	}
	if s.Busy() {
		return ErrBusy
	}
	if s.Encounters.TouchMarker(s.Pos) == nil {
		return ErrNothingHere
	}
	return g.story.Begin(s)
}

// Move steps the player one MoveStep in dir.
//
// Postcondition: returns false when an interaction blocks movement.
func (g *Game) Move(dir combat.Direction) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.sess == nil {
		return false
	}
	z, ok := g.store.World.Resolve(g.sess.Stats.CurrentZone)
	if !ok {
		return false
	}
	return g.sess.Move(dir, MoveStep, z.Width, z.Height)
}

// StartBattle opens a turn-based battle against an enemy near the player's
// level.
func (g *Game) StartBattle() (*combat.Battle, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	s, err := g.session()
	if err != nil {
		return nil, err
	}
	if err := s.Acquire(session.ScreenBattle); err != nil {
		return nil, err
	}
	s.Battle = g.combat.Start(s.Stats.Level)
	g.scene.HideText()
	g.scene.StartEncounter(scene.EncounterBattle, s.Battle)
	return s.Battle, nil
}

// BattleAction performs one player turn of the running battle.
//
// Postcondition: when the battle resolves the screen is released and the
// result message is shown; returns ErrNoBattle outside a battle.
func (g *Game) BattleAction(a combat.Action) (combat.Rewards, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	s, err := g.session()
	if err != nil {
		return combat.Rewards{}, err
	}
	if s.Screen != session.ScreenBattle || s.Battle == nil {
		return combat.Rewards{}, ErrNoBattle
	}
	b := s.Battle
	zone := s.Stats.CurrentZone
	r, err := g.combat.Act(b, zone, s.Player(g.store.Items), s.Pack(g.store.Items), a)
	if err != nil {
		return r, err
	}
	if b.State != combat.StateResolved {
		return r, nil
	}

	lines := []string{r.Message()}
	if r.LevelsGained > 0 {
		g.scene.FlashScreen()
		lines = append(lines, fmt.Sprintf("LEVEL UP! You are now level %d", s.Stats.Level))
	}
	if r.Result == combat.ResultVictory && g.hooks != nil {
		if extra := g.hooks.OnVictory(zone, b.Enemy.Name, b.Enemy.Level); extra != "" {
			lines = append(lines, extra)
		}
	}
	if r.Result == combat.ResultDefeat {
		g.scene.ShakeCamera()
	}
	s.Battle = nil
	s.Release()
	g.scene.ShowText(strings.Join(lines, "\n"))
	return r, nil
}

// CheckLevelUp applies any pending level-ups.
//
// Postcondition: returns the number of levels gained.
func (g *Game) CheckLevelUp() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.sess == nil {
		return 0
	}
	gained := progression.CheckLevelUp(g.sess.Stats)
	if gained > 0 {
		g.scene.FlashScreen()
		g.scene.ShowText(fmt.Sprintf("LEVEL UP! You are now level %d", g.sess.Stats.Level))
	}
	return gained
}

// RollLoot draws one item from zone's loot table at playerLevel.
func (g *Game) RollLoot(zone string, playerLevel int) (string, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.loot.Roll(zone, playerLevel)
}

// UseItem consumes one consumable item outside battle.
//
// Postcondition: on error neither stats nor inventory change.
func (g *Game) UseItem(name string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	s, err := g.session()
	if err != nil {
		return "", err
	}
	if s.Busy() {
		return "", ErrBusy
	}
	d, ok := g.store.Items.Item(name)
	if !ok {
		return "", fmt.Errorf("%q: %w", name, ErrUnknownItem)
	}
	if d.Kind != inventory.KindConsumable {
		return "", fmt.Errorf("%s: %w", d.Name, ErrNotConsumable)
	}
	if err := s.Inventory.Remove(d.Name, 1); err != nil {
		return "", fmt.Errorf("%s: %w", d.Name, ErrNotHeld)
	}
	changes := d.Consume(s.Stats)
	parts := make([]string, 0, len(changes))
	for _, st := range stats.All {
		if v, ok := changes[st]; ok && v != 0 {
			parts = append(parts, fmt.Sprintf("%+d %s", v, st))
		}
	}
	msg := "Used " + d.Name + "."
	if len(parts) > 0 {
		msg += " (" + strings.Join(parts, ", ") + ")"
	}
	g.logger.Info("item used", zap.String("session", s.ID), zap.String("item", d.Name))
	g.scene.ShowText(msg)
	return msg, nil
}

// Equip adds a held equippable item to the equipped set.
func (g *Game) Equip(name string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	s, err := g.session()
	if err != nil {
		return err
	}
	if s.Busy() {
		return ErrBusy
	}
	return s.Equipment.Equip(name, s.Inventory, g.store.Items)
}

// Unequip removes an item from the equipped set.
func (g *Game) Unequip(name string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.sess == nil || g.sess.Busy() {
		return false
	}
	return g.sess.Equipment.Unequip(name)
}

// SwingReport is the outcome of one real-time swing.
type SwingReport struct {
	combat.SwingResult
	// CrateHit is set when a crate was in reach.
	CrateHit    bool
	CrateBroken bool
	CrateLoot   string
}

// Swing attacks in the facing direction, striking monsters in the swing
// region and the nearest crate in reach.
func (g *Game) Swing() (SwingReport, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	s, err := g.session()
	if err != nil {
		return SwingReport{}, err
	}
	if s.Busy() {
		return SwingReport{}, ErrBusy
	}
	zone := s.Stats.CurrentZone
	out := SwingReport{
		SwingResult: g.combat.Swing(s.Encounters.Monsters(), s.Pos, s.Facing, zone,
			s.Player(g.store.Items), s.Pack(g.store.Items)),
	}
	var lines []string
	for _, h := range out.Hits {
		if h.Killed {
			lines = append(lines, "Monster defeated!")
		}
	}
	for _, item := range out.Loot {
		lines = append(lines, "Received: "+item)
	}
	if c := s.Encounters.NearestCrate(s.Pos, combat.CrateReach); c != nil {
		out.CrateHit = true
		g.scene.ShakeCamera()
		if c.Hit() {
			out.CrateBroken = true
			if item, ok := g.loot.Roll(zone, s.Stats.Level); ok {
				s.Inventory.Add(item, 1)
				out.CrateLoot = item
				lines = append(lines, "Found: "+item)
			} else {
				lines = append(lines, "No loot found")
			}
		}
	}
	if out.LevelsGained > 0 {
		g.scene.FlashScreen()
		lines = append(lines, fmt.Sprintf("LEVEL UP! You are now level %d", s.Stats.Level))
	}
	s.Encounters.Reap()
	if len(lines) > 0 {
		g.scene.ShowText(strings.Join(lines, "\n"))
	}
	return out, nil
}

// Craft builds one recipe result.
func (g *Game) Craft(name string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	s, err := g.session()
	if err != nil {
		return "", err
	}
	msg, err := g.workshop.Craft(s, name)
	s.Equipment.Prune(s.Inventory)
	return msg, err
}

// Invent combines items into a secret invention.
func (g *Game) Invent(items []string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	s, err := g.session()
	if err != nil {
		return "", err
	}
	msg, err := g.workshop.Invent(s, items)
	s.Equipment.Prune(s.Inventory)
	return msg, err
}

// Recipes returns the recipe book.
func (g *Game) Recipes() *crafting.Book {
	return g.workshop.Book()
}

// Camp starts the night camp countdown.
func (g *Game) Camp() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	s, err := g.session()
	if err != nil {
		return err
	}
	return g.workshop.Camp(s)
}

// CancelCamp stops a running camp countdown.
func (g *Game) CancelCamp() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	s, err := g.session()
	if err != nil {
		return err
	}
	return g.workshop.CancelCamp(s)
}

// Tick advances real time by dt: the game clock, stamina regeneration and
// the monster loop. Monsters hold still while an interaction owns the
// screen, and nothing but the clock moves during a death sequence.
func (g *Game) Tick(dt time.Duration) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.clock.Advance(dt)
	s := g.sess
	if s == nil || s.Dying {
		return
	}
	g.sinceRegen += dt
	for g.sinceRegen >= g.cfg.Game.RegenInterval {
		g.sinceRegen -= g.cfg.Game.RegenInterval
		survival.Regenerate(s.Stats)
	}
	if s.Busy() {
		return
	}
	g.now += dt
	if dmg := g.combat.Strike(s.Encounters.Monsters(), g.now, dt, s.Pos, s.Player(g.store.Items)); dmg > 0 {
		g.scene.ShakeCamera()
		g.death.CheckDeath(s)
	}
}

// Run drives Tick from a Ticker at the configured monster tick until ctx is
// cancelled.
//
// Postcondition: the returned channel is closed once ticking has stopped.
func (g *Game) Run(ctx context.Context) <-chan struct{} {
	t := NewTicker(g.cfg.Game.MonsterTick)
	t.Register("game", g.Tick)
	g.logger.Info("game loop started", zap.Duration("tick", t.Interval()))
	return t.Start(ctx)
}
