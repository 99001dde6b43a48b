package gameserver

import (
	"context"
	"sort"
	"sync"
	"time"
)

// TickFunc receives the real time elapsed since the previous tick.
type TickFunc func(dt time.Duration)

// Ticker runs registered callbacks on a fixed real-time interval.
// Callbacks run sequentially on the ticker goroutine, in name order.
//
// Invariant: every callback is invoked at most once per interval.
type Ticker struct {
	interval time.Duration
	mu       sync.Mutex
	ticks    map[string]TickFunc
}

// NewTicker returns a ticker that fires every interval.
//
// Precondition: interval must be > 0.
func NewTicker(interval time.Duration) *Ticker {
	if interval <= 0 {
		panic("gameserver.NewTicker: interval must be > 0")
	}
	return &Ticker{
		interval: interval,
		ticks:    make(map[string]TickFunc),
	}
}

// Interval returns the tick period.
func (t *Ticker) Interval() time.Duration {
	return t.interval
}

// Register installs fn under name, replacing any existing callback.
func (t *Ticker) Register(name string, fn TickFunc) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.ticks[name] = fn
}

// Unregister removes the callback registered under name.
func (t *Ticker) Unregister(name string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.ticks, name)
}

// Len returns the number of registered callbacks.
func (t *Ticker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.ticks)
}

func (t *Ticker) snapshot() []TickFunc {
	t.mu.Lock()
	defer t.mu.Unlock()
	names := make([]string, 0, len(t.ticks))
	for name := range t.ticks {
		names = append(names, name)
	}
	sort.Strings(names)
	out := make([]TickFunc, len(names))
	for i, name := range names {
		out[i] = t.ticks[name]
	}
	return out
}

// Start begins the tick loop and runs until ctx is cancelled.
//
// Postcondition: the returned channel is closed once the loop has exited.
func (t *Ticker) Start(ctx context.Context) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		ticker := time.NewTicker(t.interval)
		defer ticker.Stop()
		last := time.Now()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				dt := now.Sub(last)
				last = now
				for _, fn := range t.snapshot() {
					fn(dt)
				}
			}
		}
	}()
	return done
}
