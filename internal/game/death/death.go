// Package death runs the death and respawn sequence.
package death

import (
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/wildlands/internal/game/scene"
	"github.com/cory-johannsen/wildlands/internal/game/session"
	"github.com/cory-johannsen/wildlands/internal/game/world"
)

// Message is shown while the death sequence runs.
const Message = "You have died!\nYou wake up in Village Commons...\nAll your loot has been lost!"

// Coordinator detects zero health and respawns the player at the home zone.
type Coordinator struct {
	world  *world.Manager
	scene  scene.Scene
	delay  time.Duration
	logger *zap.Logger
}

// NewCoordinator creates a Coordinator that respawns after delay.
//
// Precondition: w, sc and logger must be non-nil.
func NewCoordinator(w *world.Manager, sc scene.Scene, delay time.Duration, logger *zap.Logger) *Coordinator {
	return &Coordinator{world: w, scene: sc, delay: delay, logger: logger}
}

// CheckDeath starts the death sequence when health has reached zero.
//
// Postcondition: Returns true iff a death sequence owns the session, either
// started by this call or already running. Starting one clears every live
// encounter at once. A running sequence is never
// started a second time.
func (c *Coordinator) CheckDeath(s *session.Session) bool {
	if s.Dying {
		return true
	}
	if !s.Stats.IsDead() {
		return false
	}
	s.Dying = true
	s.Screen = session.ScreenDying
	s.Battle = nil
	s.Encounters.Clear()
	c.logger.Info("player died",
		zap.String("session", s.ID),
		zap.String("zone", s.Stats.CurrentZone),
		zap.Int("level", s.Stats.Level),
	)
	c.scene.ShakeCamera()
	c.scene.FlashScreen()
	c.scene.ShowText(Message)
	c.scene.ScheduleDelayed(c.delay, func() { c.respawn(s) })
	return true
}

// respawn restores the gauges at the home zone, keeping level, experience
// and oromozi, and empties the inventory and equipped set.
func (c *Coordinator) respawn(s *session.Session) {
	home := c.world.Home().Name
	c.scene.HideText()
	s.Stats.RestoreGauges()
	s.Stats.CurrentZone = home
	s.Inventory.Clear()
	s.Equipment.Clear()
	s.PromptCount = 0
	c.logger.Info("player respawned",
		zap.String("session", s.ID),
		zap.String("zone", home),
		zap.Int("oromozi", s.Stats.Oromozi),
	)
	c.scene.RestartAtZone(home, scene.Handoff{
		Mode:      scene.Respawn,
		Zone:      home,
		Stats:     s.Stats,
		FromDeath: true,
	})
}
