package gameclock_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/wildlands/internal/gameclock"
)

func TestGameHour_TimeOfDay(t *testing.T) {
	assert.Equal(t, gameclock.Morning, gameclock.GameHour(6).TimeOfDay())
	assert.Equal(t, gameclock.Morning, gameclock.GameHour(11).TimeOfDay())
	assert.Equal(t, gameclock.Afternoon, gameclock.GameHour(12).TimeOfDay())
	assert.Equal(t, gameclock.Evening, gameclock.GameHour(18).TimeOfDay())
	assert.Equal(t, gameclock.Evening, gameclock.GameHour(23).TimeOfDay())
	// Small hours count as morning.
	assert.Equal(t, gameclock.Morning, gameclock.GameHour(2).TimeOfDay())
}

func TestGameHour_IsNight(t *testing.T) {
	assert.True(t, gameclock.GameHour(18).IsNight())
	assert.True(t, gameclock.GameHour(0).IsNight())
	assert.True(t, gameclock.GameHour(5).IsNight())
	assert.False(t, gameclock.GameHour(6).IsNight())
	assert.False(t, gameclock.GameHour(17).IsNight())
	assert.Equal(t, "07:00", gameclock.GameHour(7).String())
}

func TestGameClock_Advance(t *testing.T) {
	// 240s per day gives 10s per hour.
	c := gameclock.NewGameClock(240 * time.Second)
	assert.Equal(t, gameclock.GameHour(6), c.CurrentHour())
	c.Advance(59 * time.Second)
	assert.Equal(t, gameclock.GameHour(11), c.CurrentHour())
	c.Advance(time.Second)
	assert.Equal(t, gameclock.GameHour(12), c.CurrentHour())
	c.Advance(-time.Hour)
	assert.Equal(t, 60*time.Second, c.Elapsed())
	c.Set(180 * time.Second)
	assert.Equal(t, gameclock.GameHour(0), c.CurrentHour())
}

func TestParseTimeOfDay(t *testing.T) {
	tod, ok := gameclock.ParseTimeOfDay("evening")
	assert.True(t, ok)
	assert.Equal(t, gameclock.Evening, tod)
	_, ok = gameclock.ParseTimeOfDay("dusk")
	assert.False(t, ok)
}

func TestGameClock_HourInRange(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		c := gameclock.NewGameClock(time.Duration(rapid.IntRange(24, 10000).Draw(rt, "day")) * time.Second)
		c.Set(time.Duration(rapid.Int64Range(0, 1<<40).Draw(rt, "elapsed")))
		h := c.CurrentHour()
		assert.GreaterOrEqual(rt, int(h), 0)
		assert.Less(rt, int(h), 24)
	})
}
