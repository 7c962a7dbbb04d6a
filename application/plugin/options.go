package plugin

import (
	"log/slog"

	"github.com/scenebridge/scenebridge/infrastructure/listener"
)

// Option configures a Plugin.
type Option func(*Plugin)

// WithLogger sets the logger shared by every plugin component.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Plugin) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithListenerOptions appends listener options after the ones derived
// from the config, so they take precedence.
func WithListenerOptions(opts ...listener.Option) Option {
	return func(p *Plugin) {
		p.listenerOps = append(p.listenerOps, opts...)
	}
}
