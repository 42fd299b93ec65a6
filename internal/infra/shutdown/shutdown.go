// Package shutdown provides graceful shutdown handling.
package shutdown

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/hashicorp/go-multierror"
)

// Handler handles graceful shutdown and reload signals.
type Handler struct {
	timeout time.Duration
	hooks   []func(context.Context) error
	reloads []func()
	mu      sync.Mutex
	done    chan struct{}
}

// NewHandler creates a new shutdown handler.
func NewHandler(timeout time.Duration) *Handler {
	return &Handler{
		timeout: timeout,
		hooks:   make([]func(context.Context) error, 0),
		done:    make(chan struct{}),
	}
}

// OnShutdown registers a shutdown hook.
// Hooks are called in reverse order of registration.
func (h *Handler) OnShutdown(hook func(context.Context) error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.hooks = append(h.hooks, hook)
}

// OnReload registers a callback run on SIGHUP.
func (h *Handler) OnReload(fn func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.reloads = append(h.reloads, fn)
}

// Wait waits for a shutdown signal and executes hooks.
func (h *Handler) Wait() error {
	return h.WaitContext(context.Background())
}

// WaitContext waits for SIGINT, SIGTERM or cancellation of ctx, then runs
// the shutdown hooks. SIGHUP runs the reload callbacks and keeps waiting.
// Errors from all hooks are combined.
func (h *Handler) WaitContext(ctx context.Context) error {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigCh)

wait:
	for {
		select {
		case sig := <-sigCh:
			if sig == syscall.SIGHUP {
				h.reload()
				continue
			}
			break wait
		case <-ctx.Done():
			break wait
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), h.timeout)
	defer cancel()

	h.mu.Lock()
	hooks := make([]func(context.Context) error, len(h.hooks))
	copy(hooks, h.hooks)
	h.mu.Unlock()

	var result *multierror.Error
	for i := len(hooks) - 1; i >= 0; i-- {
		if err := hooks[i](shutdownCtx); err != nil {
			result = multierror.Append(result, err)
		}
	}

	close(h.done)
	return result.ErrorOrNil()
}

func (h *Handler) reload() {
	h.mu.Lock()
	reloads := make([]func(), len(h.reloads))
	copy(reloads, h.reloads)
	h.mu.Unlock()

	for _, fn := range reloads {
		fn()
	}
}

// Done returns a channel that closes when shutdown is complete.
func (h *Handler) Done() <-chan struct{} {
	return h.done
}
