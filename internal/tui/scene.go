// Package tui is the terminal presentation layer: a scene.Scene that records
// what the game asks to show, and a bubbletea model that renders it and maps
// keys onto game operations.
package tui

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/wildlands/internal/game/scene"
)

const (
	flashFor = 300 * time.Millisecond
	shakeFor = 250 * time.Millisecond
	// noticeLimit bounds the retained notice log.
	noticeLimit = 6
)

var encounterNotices = map[scene.EncounterKind]string{
	scene.EncounterBattle:  "An enemy blocks your path!",
	scene.EncounterFishing: "You find a quiet bank and cast your line.",
	scene.EncounterCamping: "Your camp is ready. You rest by the fire.",
}

// Scene implements scene.Scene for the terminal. Game code calls it while
// holding the game lock, so it only records state; the model reads that
// state when rendering.
type Scene struct {
	mu         sync.Mutex
	text       string
	visible    bool
	flashUntil time.Time
	shakeUntil time.Time
	notices    []string
	now        func() time.Time
	sched      *scene.TimerScheduler
	logger     *zap.Logger
}

// NewScene returns an empty Scene whose delayed calls run on timer
// goroutines.
func NewScene(logger *zap.Logger) *Scene {
	return &Scene{
		now:    time.Now,
		sched:  scene.NewTimerScheduler(nil),
		logger: logger,
	}
}

func (s *Scene) notice(msg string) {
	s.notices = append(s.notices, msg)
	if len(s.notices) > noticeLimit {
		s.notices = s.notices[len(s.notices)-noticeLimit:]
	}
}

// StartEncounter implements scene.Scene.
func (s *Scene) StartEncounter(kind scene.EncounterKind, _ any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logger.Debug("encounter started", zap.String("kind", string(kind)))
	if msg, ok := encounterNotices[kind]; ok {
		s.notice(msg)
	}
}

// RestartAtZone implements scene.Scene.
func (s *Scene) RestartAtZone(zone string, h scene.Handoff) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logger.Debug("zone restart", zap.String("zone", zone), zap.Stringer("mode", h.Mode))
	s.notice("Entered " + zone + ".")
}

// ShowText implements scene.Scene.
func (s *Scene) ShowText(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.text = msg
	s.visible = true
}

// HideText implements scene.Scene.
func (s *Scene) HideText() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.visible = false
}

// FlashScreen implements scene.Scene.
func (s *Scene) FlashScreen() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flashUntil = s.now().Add(flashFor)
}

// ShakeCamera implements scene.Scene.
func (s *Scene) ShakeCamera() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shakeUntil = s.now().Add(shakeFor)
}

// ScheduleDelayed implements scene.Scene.
func (s *Scene) ScheduleDelayed(d time.Duration, fn func()) func() {
	return s.sched.ScheduleDelayed(d, fn)
}

// Frame is the presentation state read by one render.
type Frame struct {
	Text     string
	Visible  bool
	Flashing bool
	Shaking  bool
	Notices  []string
}

// Frame snapshots the recorded presentation state.
func (s *Scene) Frame() Frame {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	return Frame{
		Text:     s.text,
		Visible:  s.visible,
		Flashing: now.Before(s.flashUntil),
		Shaking:  now.Before(s.shakeUntil),
		Notices:  append([]string(nil), s.notices...),
	}
}
