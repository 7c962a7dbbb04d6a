// Package memhost provides an in-process stand-in for the host application:
// a named-object scene, a clipboard and a notification sink. It backs the
// standalone binary and the tests.
package memhost

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/scenebridge/scenebridge/domain/entities"
	"github.com/scenebridge/scenebridge/domain/ports"
)

// Host implements ports.Host in memory.
type Host struct {
	mu            sync.Mutex
	objects       []string
	taken         map[string]struct{}
	clipboard     string
	notifications []entities.Notification
	sceneErr      error
	logger        *slog.Logger
}

var _ ports.Host = (*Host)(nil)

// Option configures a Host.
type Option func(*Host)

// WithObjects seeds the scene with the given object names, in order.
func WithObjects(names ...string) Option {
	return func(h *Host) {
		for _, name := range names {
			h.addLocked(name)
		}
	}
}

// WithLogger routes notifications to logger as well as recording them.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Host) {
		h.logger = logger
	}
}

// New creates an empty in-memory host.
func New(opts ...Option) *Host {
	h := &Host{taken: make(map[string]struct{})}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// ObjectNames returns object names in insertion order.
func (h *Host) ObjectNames(_ context.Context) ([]string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.sceneErr != nil {
		return nil, h.sceneErr
	}
	names := make([]string, len(h.objects))
	copy(names, h.objects)
	return names, nil
}

// AddPrimitive inserts a primitive named after its kind; clashes get the
// host's numeric suffix (Cube, Cube.001, Cube.002, ...).
func (h *Host) AddPrimitive(_ context.Context, kind entities.Primitive) (string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.sceneErr != nil {
		return "", h.sceneErr
	}
	return h.addLocked(kind.BaseName()), nil
}

func (h *Host) addLocked(base string) string {
	name := base
	for i := 1; ; i++ {
		if _, exists := h.taken[name]; !exists {
			break
		}
		name = fmt.Sprintf("%s.%03d", base, i)
	}
	h.taken[name] = struct{}{}
	h.objects = append(h.objects, name)
	return name
}

// ReadClipboard returns the clipboard text.
func (h *Host) ReadClipboard(_ context.Context) (string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.clipboard, nil
}

// WriteClipboard replaces the clipboard text.
func (h *Host) WriteClipboard(_ context.Context, text string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clipboard = text
	return nil
}

// Notify records a notification banner.
func (h *Host) Notify(ctx context.Context, level entities.NotificationLevel, message string) {
	h.mu.Lock()
	h.notifications = append(h.notifications, entities.Notification{Level: level, Message: message})
	logger := h.logger
	h.mu.Unlock()

	if logger != nil {
		lvl := slog.LevelInfo
		switch level {
		case entities.LevelWarning:
			lvl = slog.LevelWarn
		case entities.LevelError:
			lvl = slog.LevelError
		}
		logger.Log(ctx, lvl, message, "source", "notification")
	}
}

// Notifications returns a copy of every recorded notification.
func (h *Host) Notifications() []entities.Notification {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]entities.Notification, len(h.notifications))
	copy(out, h.notifications)
	return out
}

// SetSceneError makes scene queries and edits fail with err; nil restores them.
func (h *Host) SetSceneError(err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sceneErr = err
}

// Reset replaces the scene with names, as on loading a new document.
func (h *Host) Reset(names ...string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.objects = nil
	h.taken = make(map[string]struct{})
	for _, name := range names {
		h.addLocked(name)
	}
}
