// Package testutil provides deterministic collaborators for package tests.
package testutil

import (
	"sync"

	"go.uber.org/zap"

	"github.com/cory-johannsen/wildlands/internal/game/dice"
)

// FixedSource is a dice.Source that replays scripted values.
//
// Ints and floats are consumed from independent queues. When a queue is
// exhausted the matching default is returned. Intn clamps its scripted value
// into [0, n) so a script never produces an out-of-range roll.
type FixedSource struct {
	mu           sync.Mutex
	ints         []int
	floats       []float64
	DefaultInt   int
	DefaultFloat float64
}

// NewFixedSource returns a FixedSource replaying ints and floats in order.
//
// Postcondition: DefaultInt and DefaultFloat are zero.
func NewFixedSource(ints []int, floats []float64) *FixedSource {
	return &FixedSource{ints: append([]int(nil), ints...), floats: append([]float64(nil), floats...)}
}

// Intn returns the next scripted int clamped into [0, n).
func (f *FixedSource) Intn(n int) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	v := f.DefaultInt
	if len(f.ints) > 0 {
		v = f.ints[0]
		f.ints = f.ints[1:]
	}
	if v >= n {
		v = n - 1
	}
	if v < 0 {
		v = 0
	}
	return v
}

// Float64 returns the next scripted float.
func (f *FixedSource) Float64() float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.floats) == 0 {
		return f.DefaultFloat
	}
	v := f.floats[0]
	f.floats = f.floats[1:]
	return v
}

// PushInts appends values to the int queue.
func (f *FixedSource) PushInts(vs ...int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ints = append(f.ints, vs...)
}

// PushFloats appends values to the float queue.
func (f *FixedSource) PushFloats(vs ...float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.floats = append(f.floats, vs...)
}

// Roller wraps src in a dice.Roller with a no-op logger.
func Roller(src dice.Source) *dice.Roller {
	return dice.NewLoggedRoller(src, zap.NewNop())
}
