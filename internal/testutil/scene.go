package testutil

import (
	"sync"
	"time"

	"github.com/cory-johannsen/wildlands/internal/game/scene"
)

// Encounter is one recorded StartEncounter call.
type Encounter struct {
	Kind    scene.EncounterKind
	Payload any
}

// Restart is one recorded RestartAtZone call.
type Restart struct {
	Zone    string
	Handoff scene.Handoff
}

// Pending is a scheduled continuation held by a SceneRecorder.
type Pending struct {
	Delay     time.Duration
	fn        func()
	cancelled bool
}

// SceneRecorder is a scene.Scene that records every call and holds scheduled
// continuations until the test fires them.
type SceneRecorder struct {
	mu         sync.Mutex
	Texts      []string
	Hides      int
	Flashes    int
	Shakes     int
	Encounters []Encounter
	Restarts   []Restart
	pending    []*Pending
}

// NewSceneRecorder returns an empty recorder.
func NewSceneRecorder() *SceneRecorder {
	return &SceneRecorder{}
}

// StartEncounter implements scene.Scene.
func (r *SceneRecorder) StartEncounter(kind scene.EncounterKind, payload any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Encounters = append(r.Encounters, Encounter{Kind: kind, Payload: payload})
}

// RestartAtZone implements scene.Scene.
func (r *SceneRecorder) RestartAtZone(zone string, h scene.Handoff) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Restarts = append(r.Restarts, Restart{Zone: zone, Handoff: h})
}

// ShowText implements scene.Scene.
func (r *SceneRecorder) ShowText(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Texts = append(r.Texts, msg)
}

// HideText implements scene.Scene.
func (r *SceneRecorder) HideText() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Hides++
}

// FlashScreen implements scene.Scene.
func (r *SceneRecorder) FlashScreen() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Flashes++
}

// ShakeCamera implements scene.Scene.
func (r *SceneRecorder) ShakeCamera() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Shakes++
}

// ScheduleDelayed implements scene.Scene. The continuation is held until
// RunPending.
func (r *SceneRecorder) ScheduleDelayed(d time.Duration, fn func()) func() {
	r.mu.Lock()
	defer r.mu.Unlock()
	p := &Pending{Delay: d, fn: fn}
	r.pending = append(r.pending, p)
	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		p.cancelled = true
	}
}

// PendingCount returns the number of held, uncancelled continuations.
func (r *SceneRecorder) PendingCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, p := range r.pending {
		if !p.cancelled {
			n++
		}
	}
	return n
}

// PendingDelays returns the delays of held, uncancelled continuations.
func (r *SceneRecorder) PendingDelays() []time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []time.Duration
	for _, p := range r.pending {
		if !p.cancelled {
			out = append(out, p.Delay)
		}
	}
	return out
}

// RunPending fires every held continuation in scheduling order, including
// ones scheduled while running, and returns how many ran.
func (r *SceneRecorder) RunPending() int {
	ran := 0
	for {
		r.mu.Lock()
		if len(r.pending) == 0 {
			r.mu.Unlock()
			return ran
		}
		p := r.pending[0]
		r.pending = r.pending[1:]
		cancelled := p.cancelled
		r.mu.Unlock()
		if cancelled {
			continue
		}
		p.fn()
		ran++
	}
}

// LastText returns the most recent ShowText message, or "".
func (r *SceneRecorder) LastText() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.Texts) == 0 {
		return ""
	}
	return r.Texts[len(r.Texts)-1]
}
