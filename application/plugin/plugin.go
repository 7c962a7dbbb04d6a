// Package plugin owns the plugin session: the host function registry, the
// script executor, the panel and the optional command listener.
package plugin

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"strconv"
	"sync"

	"github.com/scenebridge/scenebridge/application/config"
	"github.com/scenebridge/scenebridge/application/panel"
	"github.com/scenebridge/scenebridge/application/schema"
	"github.com/scenebridge/scenebridge/application/validation"
	"github.com/scenebridge/scenebridge/domain/entities"
	"github.com/scenebridge/scenebridge/domain/ports"
	"github.com/scenebridge/scenebridge/host"
	"github.com/scenebridge/scenebridge/hostfuncs"
	"github.com/scenebridge/scenebridge/infrastructure/listener"
)

// Plugin is one plugin session against a host. The listener handle is
// nil until Register and again after Unregister.
type Plugin struct {
	host        ports.Host
	cfg         entities.Config
	logger      *slog.Logger
	listenerOps []listener.Option

	mu       sync.Mutex
	registry *hostfuncs.HandlerRegistry
	exec     *host.Executor
	panel    *panel.Panel
	server   *listener.Server
}

// New creates an unregistered plugin for h.
func New(h ports.Host, cfg entities.Config, opts ...Option) *Plugin {
	p := &Plugin{
		host:   h,
		cfg:    cfg,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Register validates the config, builds the panel and starts the listener.
// Registering an already registered plugin is a no-op.
func (p *Plugin) Register(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.server != nil {
		return nil
	}

	if err := config.Validate(&p.cfg); err != nil {
		return err
	}

	if p.registry == nil {
		reg, err := hostfuncs.NewRegistry(
			hostfuncs.WithMiddleware(
				hostfuncs.PanicRecoveryMiddleware(),
				hostfuncs.LoggingMiddleware(p.logger),
			),
			hostfuncs.WithBundle(hostfuncs.HostBundle(p.host)),
		)
		if err != nil {
			return fmt.Errorf("failed to build host function registry: %w", err)
		}
		exec, err := host.NewExecutor(
			host.WithHostFunctions(reg),
			host.WithTimeout(p.cfg.EvalTimeout),
			host.WithMaxPrintBytes(p.cfg.MaxPrintBytes),
			host.WithLogger(p.logger),
		)
		if err != nil {
			return fmt.Errorf("failed to build executor: %w", err)
		}
		p.registry, p.exec = reg, exec
	}

	validator, err := validation.NewPayloadValidator(schema.ExecuteRequest)
	if err != nil {
		return fmt.Errorf("failed to compile request schema: %w", err)
	}

	pnl := panel.New(p.exec, p.registry,
		panel.WithVariant(p.cfg.PanelVariant),
		panel.WithLogCapacity(p.cfg.LogCapacity),
		panel.WithLogger(p.logger),
	)

	opts := append([]listener.Option{
		listener.WithAddress(net.JoinHostPort(p.cfg.ListenAddress, strconv.Itoa(p.cfg.Port))),
		listener.WithMaxRequestBytes(p.cfg.MaxRequestBytes),
		listener.WithPayloadValidator(validator),
		listener.WithLogger(p.logger),
	}, p.listenerOps...)
	server := listener.New(p.exec, p.registry, opts...)
	if err := server.Start(ctx); err != nil {
		return err
	}

	pnl.SetListening(server.Addr())
	p.panel, p.server = pnl, server
	p.logger.Info("plugin registered", "addr", server.Addr(), "panel_variant", pnl.Variant())
	return nil
}

// Unregister stops and discards the listener and the panel. Unregistering
// an unregistered plugin is a no-op.
func (p *Plugin) Unregister(ctx context.Context) error {
	p.mu.Lock()
	server := p.server
	p.server, p.panel = nil, nil
	p.mu.Unlock()

	if server == nil {
		return nil
	}

	if p.cfg.ShutdownTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.cfg.ShutdownTimeout)
		defer cancel()
	}
	err := server.Stop(ctx)
	p.logger.Info("plugin unregistered")
	return err
}

// Reload resets the panel fields and activity log, as the host does when
// a new document is loaded.
func (p *Plugin) Reload() {
	p.mu.Lock()
	pnl := p.panel
	p.mu.Unlock()
	if pnl != nil {
		pnl.Reset()
	}
}

// Panel returns the registered panel, or nil.
func (p *Plugin) Panel() *panel.Panel {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.panel
}

// Listener returns the held listener, or nil.
func (p *Plugin) Listener() *listener.Server {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.server
}

// Running reports whether a listener is held and serving.
func (p *Plugin) Running() bool {
	s := p.Listener()
	return s != nil && s.Running()
}
