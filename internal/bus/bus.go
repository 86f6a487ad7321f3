// Package bus is the in-process event manager. Delivery is at most once and
// fire-and-forget: each handler runs in its own goroutine and Publish returns
// immediately, so a slow or failing subscriber never blocks the publisher or
// its siblings.
package bus

import (
	"context"
	"log/slog"
	"sync"

	"github.com/jcmexdev/storefront/internal/core/ports"
)

var _ ports.EventManager = (*Manager)(nil)

// Manager dispatches events to subscribed handlers.
type Manager struct {
	mu       sync.RWMutex
	handlers map[string][]ports.EventHandler
	log      *slog.Logger
}

func NewManager(log *slog.Logger) *Manager {
	return &Manager{
		handlers: make(map[string][]ports.EventHandler),
		log:      log,
	}
}

// Subscribe registers a handler for one event kind. Handlers are dispatched
// in registration order.
func (m *Manager) Subscribe(kind string, handler ports.EventHandler) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[kind] = append(m.handlers[kind], handler)
}

// Publish invokes every handler registered for kind, each in its own
// goroutine. The dispatch context is detached from the caller's cancellation
// so an already-answered request does not kill in-flight side effects.
func (m *Manager) Publish(ctx context.Context, kind string, payload any) {
	m.mu.RLock()
	handlers := make([]ports.EventHandler, len(m.handlers[kind]))
	copy(handlers, m.handlers[kind])
	m.mu.RUnlock()

	dispatchCtx := context.WithoutCancel(ctx)
	for _, handler := range handlers {
		go m.dispatch(dispatchCtx, kind, handler, payload)
	}
}

func (m *Manager) dispatch(ctx context.Context, kind string, handler ports.EventHandler, payload any) {
	defer func() {
		if r := recover(); r != nil {
			m.log.ErrorContext(ctx, "event handler panicked", "kind", kind, "panic", r)
		}
	}()
	if err := handler(ctx, payload); err != nil {
		m.log.ErrorContext(ctx, "event handler failed", "kind", kind, "error", err)
	}
}

// Clear drops every subscription. Intended for test isolation.
func (m *Manager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers = make(map[string][]ports.EventHandler)
}
