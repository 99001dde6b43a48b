// Package lifecycle runs the process's long-lived components together and
// shuts them down when any one of them exits or a termination signal arrives.
package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"
)

// Service is a long-running component. Run blocks until ctx is cancelled or
// the component finishes on its own.
type Service interface {
	Run(ctx context.Context) error
}

// ServiceFunc adapts a function into a Service.
type ServiceFunc func(ctx context.Context) error

// Run calls f.
func (f ServiceFunc) Run(ctx context.Context) error { return f(ctx) }

// Lifecycle starts services in registration order and stops them in reverse.
type Lifecycle struct {
	logger   *zap.Logger
	mu       sync.Mutex
	services []namedService
}

type namedService struct {
	name    string
	service Service
}

type running struct {
	name   string
	cancel context.CancelFunc
	done   chan struct{}
}

// NewLifecycle creates an empty Lifecycle.
//
// Precondition: logger must be non-nil.
func NewLifecycle(logger *zap.Logger) *Lifecycle {
	return &Lifecycle{logger: logger}
}

// Add registers a named service.
//
// Precondition: name must be non-empty; svc must be non-nil.
func (l *Lifecycle) Add(name string, svc Service) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.services = append(l.services, namedService{name: name, service: svc})
}

// Run starts every service and blocks until one of them returns, ctx is
// cancelled, or SIGINT/SIGTERM arrives.
//
// Postcondition: every service has returned; the result is the first error a
// service reported, context cancellation excluded.
func (l *Lifecycle) Run(ctx context.Context) error {
	start := time.Now()
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	l.mu.Lock()
	services := append([]namedService(nil), l.services...)
	l.mu.Unlock()

	var (
		errMu    sync.Mutex
		firstErr error
	)
	exited := make(chan string, len(services))
	runs := make([]running, 0, len(services))
	for _, ns := range services {
		svcCtx, cancel := context.WithCancel(ctx)
		r := running{name: ns.name, cancel: cancel, done: make(chan struct{})}
		runs = append(runs, r)
		l.logger.Info("starting service", zap.String("service", ns.name))
		go func() {
			defer close(r.done)
			svcStart := time.Now()
			err := ns.service.Run(svcCtx)
			if err != nil && !errors.Is(err, context.Canceled) {
				l.logger.Error("service failed",
					zap.String("service", ns.name),
					zap.Error(err),
					zap.Duration("uptime", time.Since(svcStart)),
				)
				errMu.Lock()
				if firstErr == nil {
					firstErr = fmt.Errorf("service %s: %w", ns.name, err)
				}
				errMu.Unlock()
			}
			exited <- ns.name
		}()
	}
	l.logger.Info("all services started",
		zap.Int("count", len(runs)),
		zap.Duration("startup", time.Since(start)),
	)

	select {
	case name := <-exited:
		l.logger.Info("service exited, shutting down", zap.String("service", name))
	case <-ctx.Done():
		l.logger.Info("context cancelled, shutting down")
	}

	l.shutdown(runs)
	l.logger.Info("shutdown complete", zap.Duration("total_uptime", time.Since(start)))

	errMu.Lock()
	defer errMu.Unlock()
	return firstErr
}

func (l *Lifecycle) shutdown(runs []running) {
	shutdownStart := time.Now()
	for i := len(runs) - 1; i >= 0; i-- {
		r := runs[i]
		svcStart := time.Now()
		r.cancel()
		<-r.done
		l.logger.Info("service stopped",
			zap.String("service", r.name),
			zap.Duration("elapsed", time.Since(svcStart)),
		)
	}
	l.logger.Info("all services stopped", zap.Duration("shutdown_elapsed", time.Since(shutdownStart)))
}
