// Package gameclock tracks in-game time of day.
package gameclock

import (
	"fmt"
	"sync"
	"time"
)

// StartHour is the hour at which a fresh clock reads.
const StartHour = 6

// TimeOfDay is the coarse period used to tag narrative prompts.
type TimeOfDay string

const (
	Morning   TimeOfDay = "morning"
	Afternoon TimeOfDay = "afternoon"
	Evening   TimeOfDay = "evening"
)

// ParseTimeOfDay maps a tag to a TimeOfDay.
//
// Postcondition: Returns ("", false) for an unknown tag.
func ParseTimeOfDay(s string) (TimeOfDay, bool) {
	switch TimeOfDay(s) {
	case Morning, Afternoon, Evening:
		return TimeOfDay(s), true
	default:
		return "", false
	}
}

// GameHour is a game-clock hour in [0, 23].
type GameHour int

// TimeOfDay returns the period for this hour: morning before noon, afternoon
// before 18:00, evening otherwise.
//
// Precondition: h is in [0, 23].
func (h GameHour) TimeOfDay() TimeOfDay {
	switch {
	case h < 12:
		return Morning
	case h < 18:
		return Afternoon
	default:
		return Evening
	}
}

// IsNight reports whether h is at or after 18:00 or before 06:00.
func (h GameHour) IsNight() bool {
	return h >= 18 || h < 6
}

// String returns the hour in "HH:00" format.
func (h GameHour) String() string {
	return fmt.Sprintf("%02d:00", int(h))
}

// GameClock accumulates elapsed game time and maps it onto a day of
// secondsPerDay real seconds.
type GameClock struct {
	mu             sync.Mutex
	elapsed        time.Duration
	secondsPerHour float64
}

// NewGameClock creates a clock at StartHour.
//
// Precondition: dayLength > 0.
// Postcondition: CurrentHour() == StartHour.
func NewGameClock(dayLength time.Duration) *GameClock {
	if dayLength <= 0 {
		panic("gameclock.NewGameClock: dayLength must be > 0")
	}
	return &GameClock{secondsPerHour: dayLength.Seconds() / 24}
}

// Advance moves the clock forward by dt. Negative values are ignored.
func (c *GameClock) Advance(dt time.Duration) {
	if dt <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.elapsed += dt
}

// Set replaces the elapsed game time.
func (c *GameClock) Set(elapsed time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.elapsed = max(0, elapsed)
}

// Elapsed returns the accumulated game time.
func (c *GameClock) Elapsed() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.elapsed
}

// CurrentHour returns (StartHour + floor(elapsed / secondsPerHour)) mod 24.
//
// Postcondition: result is in [0, 23].
func (c *GameClock) CurrentHour() GameHour {
	c.mu.Lock()
	defer c.mu.Unlock()
	hours := int(c.elapsed.Seconds() / c.secondsPerHour)
	return GameHour((StartHour + hours) % 24)
}
