// Package events carries toast and API-error notifications from the session
// client to whatever presents them.
package events

import (
	"log/slog"
	"sync"

	"github.com/waabox/clubinho/internal/domain"
)

// Observer receives the notifications published by the session client.
// Implementations must not block: they are called on the goroutine that
// finished the request.
type Observer interface {
	OnToast(domain.Toast)
	OnAPIError(domain.ClassifiedError)
}

// Funcs adapts plain functions to Observer. Nil fields are skipped.
type Funcs struct {
	Toast    func(domain.Toast)
	APIError func(domain.ClassifiedError)
}

func (f Funcs) OnToast(t domain.Toast) {
	if f.Toast != nil {
		f.Toast(t)
	}
}

func (f Funcs) OnAPIError(e domain.ClassifiedError) {
	if f.APIError != nil {
		f.APIError(e)
	}
}

// Bus fans notifications out to registered observers.
type Bus struct {
	mu        sync.RWMutex
	nextID    int
	observers map[int]Observer
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{observers: make(map[int]Observer)}
}

// Subscribe registers o and returns a func that removes it again.
func (b *Bus) Subscribe(o Observer) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := b.nextID
	b.nextID++
	b.observers[id] = o
	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.observers, id)
	}
}

// PublishToast delivers t to every observer.
func (b *Bus) PublishToast(t domain.Toast) {
	for _, o := range b.snapshot() {
		o.OnToast(t)
	}
}

// PublishAPIError delivers e to every observer.
func (b *Bus) PublishAPIError(e domain.ClassifiedError) {
	for _, o := range b.snapshot() {
		o.OnAPIError(e)
	}
}

func (b *Bus) snapshot() []Observer {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]Observer, 0, len(b.observers))
	for _, o := range b.observers {
		out = append(out, o)
	}
	return out
}

// LogObserver writes every notification to a structured logger.
type LogObserver struct {
	Logger *slog.Logger
}

func (l LogObserver) OnToast(t domain.Toast) {
	l.logger().Debug("toast", "variant", string(t.Variant), "message", t.Message)
}

func (l LogObserver) OnAPIError(e domain.ClassifiedError) {
	l.logger().Warn("api error",
		"category", string(e.Category),
		"code", e.Code,
		"status", e.HTTPStatus,
		"field", e.Field,
		"message", e.Message,
	)
}

func (l LogObserver) logger() *slog.Logger {
	if l.Logger != nil {
		return l.Logger
	}
	return slog.Default()
}
