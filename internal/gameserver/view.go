package gameserver

import (
	"github.com/cory-johannsen/wildlands/internal/game/combat"
	"github.com/cory-johannsen/wildlands/internal/game/encounter"
	"github.com/cory-johannsen/wildlands/internal/game/inventory"
	"github.com/cory-johannsen/wildlands/internal/game/narrative"
	"github.com/cory-johannsen/wildlands/internal/game/progression"
	"github.com/cory-johannsen/wildlands/internal/game/session"
	"github.com/cory-johannsen/wildlands/internal/game/stats"
	"github.com/cory-johannsen/wildlands/internal/gameclock"
)

// MonsterView is the renderable state of one monster.
type MonsterView struct {
	Pos       combat.Vec
	Health    int
	MaxHealth int
	State     combat.MonsterState
}

// BattleView is the renderable state of the running battle.
type BattleView struct {
	Enemy combat.Enemy
	Turn  int
	State combat.State
	Log   []string
	// Healing lists the usable healing items.
	Healing []combat.HealingItem
}

// View is a copy of everything the presentation layer draws. It shares no
// memory with the live game.
type View struct {
	SessionID   string
	Zone        string
	Safe        bool
	Width       float64
	Height      float64
	Stats       stats.PlayerStats
	NextLevel   int
	Inventory   []inventory.Line
	Equipped    []string
	Screen      session.Screen
	Dying       bool
	Hour        gameclock.GameHour
	Pos         combat.Vec
	Facing      combat.Direction
	Monsters    []MonsterView
	Crates      []combat.Vec
	Markers     []combat.Vec
	NearMarker  bool
	Battle      *BattleView
	Choices     []narrative.Choice
	CampPending bool
}

// View snapshots the current game state.
//
// Postcondition: the zero View is returned before the first Enter.
func (g *Game) View() View {
	g.mu.Lock()
	defer g.mu.Unlock()
	s := g.sess
	if s == nil {
		return View{Hour: g.clock.CurrentHour()}
	}
	v := View{
		SessionID:   s.ID,
		Zone:        s.Stats.CurrentZone,
		Stats:       *s.Stats,
		NextLevel:   progression.Threshold(s.Stats.Level),
		Inventory:   s.Inventory.Lines(),
		Equipped:    s.Equipment.Names(),
		Screen:      s.Screen,
		Dying:       s.Dying,
		Hour:        g.clock.CurrentHour(),
		Pos:         s.Pos,
		Facing:      s.Facing,
		CampPending: g.workshop.CampPending(),
	}
	if z, ok := g.store.World.Resolve(s.Stats.CurrentZone); ok {
		v.Safe, v.Width, v.Height = z.Safe, z.Width, z.Height
	}
	for _, m := range s.Encounters.Monsters() {
		v.Monsters = append(v.Monsters, MonsterView{Pos: m.Pos, Health: m.Health, MaxHealth: m.MaxHealth, State: m.State})
	}
	for _, c := range s.Encounters.Crates() {
		v.Crates = append(v.Crates, c.Pos)
	}
	for _, m := range s.Encounters.Markers() {
		v.Markers = append(v.Markers, m.Pos)
		if m.Pos.Dist(s.Pos) <= encounter.MarkerReach {
			v.NearMarker = true
		}
	}
	if b := s.Battle; b != nil {
		v.Battle = &BattleView{
			Enemy:   b.Enemy,
			Turn:    b.Turn,
			State:   b.State,
			Log:     b.RecentLog(),
			Healing: s.Pack(g.store.Items).HealingItems(),
		}
	}
	if s.Screen == session.ScreenChoices {
		v.Choices = g.story.Choices(s)
	}
	return v
}
