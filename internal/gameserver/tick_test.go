package gameserver_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/wildlands/internal/gameserver"
)

func TestTicker_StartsAndStops(t *testing.T) {
	tk := gameserver.NewTicker(10 * time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	done := tk.Start(ctx)
	time.Sleep(30 * time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("ticker did not stop after cancel")
	}
}

func TestTicker_CallbackReceivesElapsed(t *testing.T) {
	tk := gameserver.NewTicker(20 * time.Millisecond)
	got := make(chan time.Duration, 1)
	tk.Register("game", func(dt time.Duration) {
		select {
		case got <- dt:
		default:
		}
	})
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	tk.Start(ctx)
	select {
	case dt := <-got:
		assert.Greater(t, dt, time.Duration(0))
	case <-ctx.Done():
		t.Fatal("tick callback not invoked within timeout")
	}
}

func TestTicker_RunsCallbacksInNameOrder(t *testing.T) {
	tk := gameserver.NewTicker(10 * time.Millisecond)
	var mu sync.Mutex
	var order []string
	record := func(name string) gameserver.TickFunc {
		return func(time.Duration) {
			mu.Lock()
			defer mu.Unlock()
			order = append(order, name)
		}
	}
	tk.Register("c", record("c"))
	tk.Register("a", record("a"))
	tk.Register("b", record("b"))
	require.Equal(t, 3, tk.Len())

	ctx, cancel := context.WithCancel(context.Background())
	done := tk.Start(ctx)
	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(order) >= 3
	}, time.Second, 5*time.Millisecond)
	cancel()
	<-done

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"a", "b", "c"}, order[:3])
}

func TestTicker_UnregisterStopsCallback(t *testing.T) {
	tk := gameserver.NewTicker(10 * time.Millisecond)
	var count atomic.Int64
	tk.Register("z1", func(time.Duration) { count.Add(1) })
	ctx, cancel := context.WithCancel(context.Background())
	done := tk.Start(ctx)
	assert.Eventually(t, func() bool { return count.Load() > 0 }, time.Second, 5*time.Millisecond)

	tk.Unregister("z1")
	assert.Zero(t, tk.Len())
	before := count.Load()
	time.Sleep(50 * time.Millisecond)
	cancel()
	<-done
	assert.LessOrEqual(t, count.Load(), before+1)
}

func TestNewTicker_PanicsOnNonPositiveInterval(t *testing.T) {
	assert.Panics(t, func() { gameserver.NewTicker(0) })
}
