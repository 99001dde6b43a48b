package lifecycle_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/cory-johannsen/wildlands/internal/lifecycle"
)

type blockingService struct {
	started atomic.Bool
	stopped atomic.Bool
	onStop  func()
}

func (b *blockingService) Run(ctx context.Context) error {
	b.started.Store(true)
	<-ctx.Done()
	if b.onStop != nil {
		b.onStop()
	}
	b.stopped.Store(true)
	return ctx.Err()
}

func runAsync(lc *lifecycle.Lifecycle, ctx context.Context) <-chan error {
	done := make(chan error, 1)
	go func() { done <- lc.Run(ctx) }()
	return done
}

func TestLifecycle_CancelStopsAllServices(t *testing.T) {
	lc := lifecycle.NewLifecycle(zaptest.NewLogger(t))
	svc1, svc2 := &blockingService{}, &blockingService{}
	lc.Add("svc1", svc1)
	lc.Add("svc2", svc2)

	ctx, cancel := context.WithCancel(context.Background())
	done := runAsync(lc, ctx)
	require.Eventually(t, func() bool { return svc1.started.Load() && svc2.started.Load() },
		2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("lifecycle did not shut down in time")
	}
	assert.True(t, svc1.stopped.Load())
	assert.True(t, svc2.stopped.Load())
}

func TestLifecycle_ServiceExitStopsOthersInReverseOrder(t *testing.T) {
	lc := lifecycle.NewLifecycle(zaptest.NewLogger(t))
	var mu sync.Mutex
	var order []string
	record := func(name string) func() {
		return func() {
			mu.Lock()
			defer mu.Unlock()
			order = append(order, name)
		}
	}
	lc.Add("first", &blockingService{onStop: record("first")})
	lc.Add("second", &blockingService{onStop: record("second")})
	lc.Add("ui", lifecycle.ServiceFunc(func(context.Context) error { return nil }))

	select {
	case err := <-runAsync(lc, context.Background()):
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("lifecycle did not shut down in time")
	}
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"second", "first"}, order)
}

func TestLifecycle_ReturnsFirstServiceError(t *testing.T) {
	lc := lifecycle.NewLifecycle(zaptest.NewLogger(t))
	boom := errors.New("boom")
	lc.Add("loop", &blockingService{})
	lc.Add("broken", lifecycle.ServiceFunc(func(context.Context) error { return boom }))

	select {
	case err := <-runAsync(lc, context.Background()):
		require.Error(t, err)
		assert.ErrorIs(t, err, boom)
		assert.Contains(t, err.Error(), "broken")
	case <-time.After(5 * time.Second):
		t.Fatal("lifecycle did not shut down in time")
	}
}

func TestServiceFunc(t *testing.T) {
	called := false
	svc := lifecycle.ServiceFunc(func(ctx context.Context) error {
		called = true
		return nil
	})
	assert.NoError(t, svc.Run(context.Background()))
	assert.True(t, called)
}
