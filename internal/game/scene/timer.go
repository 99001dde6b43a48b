package scene

import (
	"sync"
	"time"
)

// Timer fires a callback after a duration unless stopped.
// It is safe for concurrent use.
type Timer struct {
	mu      sync.Mutex
	timer   *time.Timer
	stopped bool
}

// NewTimer creates and starts a timer that calls onFire after d. onFire runs
// in a separate goroutine.
//
// Precondition: onFire must not be nil.
// Postcondition: onFire will be called unless Stop is called first.
func NewTimer(d time.Duration, onFire func()) *Timer {
	t := &Timer{}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.timer = time.AfterFunc(d, func() {
		t.mu.Lock()
		stopped := t.stopped
		t.stopped = true
		t.mu.Unlock()
		if !stopped {
			onFire()
		}
	})
	return t
}

// Stop prevents the callback from firing. Safe to call multiple times.
//
// Postcondition: returns true iff this call prevented the callback.
func (t *Timer) Stop() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stopped {
		return false
	}
	t.stopped = true
	t.timer.Stop()
	return true
}

// TimerScheduler implements ScheduleDelayed with real timers, handing each
// due callback to dispatch.
type TimerScheduler struct {
	dispatch func(fn func())
}

// NewTimerScheduler returns a scheduler. A nil dispatch calls fn directly on
// the timer goroutine.
func NewTimerScheduler(dispatch func(fn func())) *TimerScheduler {
	if dispatch == nil {
		dispatch = func(fn func()) { fn() }
	}
	return &TimerScheduler{dispatch: dispatch}
}

// ScheduleDelayed runs fn through dispatch after d.
//
// Postcondition: calling the returned cancel before d elapses prevents fn.
func (s *TimerScheduler) ScheduleDelayed(d time.Duration, fn func()) func() {
	t := NewTimer(d, func() { s.dispatch(fn) })
	return func() { t.Stop() }
}
