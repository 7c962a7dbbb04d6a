package plugin_test

import (
	"context"
	"encoding/json"
	stdErrors "errors"
	"net"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scenebridge/scenebridge/application/panel"
	"github.com/scenebridge/scenebridge/application/plugin"
	"github.com/scenebridge/scenebridge/domain/entities"
	domainerrors "github.com/scenebridge/scenebridge/domain/errors"
	"github.com/scenebridge/scenebridge/infrastructure/listener"
	"github.com/scenebridge/scenebridge/infrastructure/memhost"
)

func newPlugin(h *memhost.Host, opts ...entities.ConfigOption) *plugin.Plugin {
	return plugin.New(h, entities.NewConfig(opts...),
		plugin.WithListenerOptions(listener.WithAddress("127.0.0.1:0")))
}

func TestPlugin_RegisterUnregister(t *testing.T) {
	ctx := context.Background()
	p := newPlugin(memhost.New())

	assert.Nil(t, p.Listener())
	assert.Nil(t, p.Panel())
	assert.False(t, p.Running())
	require.NoError(t, p.Unregister(ctx), "unregister before register")

	require.NoError(t, p.Register(ctx))
	server := p.Listener()
	require.NotNil(t, server)
	assert.True(t, p.Running())
	require.NotNil(t, p.Panel())
	assert.Equal(t, "Listening on "+server.Addr(), p.Panel().Snapshot().Status)

	require.NoError(t, p.Register(ctx), "second register")
	assert.Same(t, server, p.Listener(), "second register keeps the single listener")

	addr := server.Addr()
	require.NoError(t, p.Unregister(ctx))
	assert.Nil(t, p.Listener())
	assert.Nil(t, p.Panel())
	assert.False(t, server.Running())
	require.NoError(t, p.Unregister(ctx), "second unregister")

	_, err := net.Dial("tcp", addr)
	assert.Error(t, err)
}

func TestPlugin_ReRegister(t *testing.T) {
	ctx := context.Background()
	p := newPlugin(memhost.New())

	require.NoError(t, p.Register(ctx))
	first := p.Listener()
	require.NoError(t, p.Unregister(ctx))
	require.NoError(t, p.Register(ctx))
	defer p.Unregister(ctx) //nolint:errcheck

	assert.NotSame(t, first, p.Listener())
	assert.True(t, p.Running())
}

func TestPlugin_ListenerAndPanelShareHost(t *testing.T) {
	ctx := context.Background()
	h := memhost.New()
	p := newPlugin(h)
	require.NoError(t, p.Register(ctx))
	defer p.Unregister(ctx) //nolint:errcheck

	base := "http://" + p.Listener().Addr()
	resp, err := http.Post(base+listener.PathExecute, "application/json",
		strings.NewReader(`{"code": "bpy.ops.mesh.primitive_cube_add()"}`))
	require.NoError(t, err)
	_ = resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	require.NoError(t, p.Panel().Invoke(ctx, panel.OpCreateCube))
	require.NoError(t, p.Panel().Invoke(ctx, panel.OpGetSceneInfo))
	log := p.Panel().Snapshot().Log
	assert.Equal(t, "Objects: ['Cube', 'Cube.001']", log[len(log)-1])

	resp, err = http.Get(base + listener.PathSceneInfo)
	require.NoError(t, err)
	defer resp.Body.Close()
	var info entities.SceneInfoResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&info))
	assert.Equal(t, []string{"Cube", "Cube.001"}, info.Objects)
}

func TestPlugin_SchemaValidatedRequests(t *testing.T) {
	ctx := context.Background()
	p := newPlugin(memhost.New())
	require.NoError(t, p.Register(ctx))
	defer p.Unregister(ctx) //nolint:errcheck

	resp, err := http.Post("http://"+p.Listener().Addr()+listener.PathExecute, "application/json",
		strings.NewReader(`{"code": ["x = 1"]}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestPlugin_Reload(t *testing.T) {
	ctx := context.Background()
	p := newPlugin(memhost.New())
	p.Reload()

	require.NoError(t, p.Register(ctx))
	defer p.Unregister(ctx) //nolint:errcheck

	pnl := p.Panel()
	pnl.SetPrompt("hello")
	require.NoError(t, pnl.Invoke(ctx, panel.OpSendPrompt))
	p.Reload()

	state := pnl.Snapshot()
	assert.Empty(t, state.Log)
	assert.Empty(t, state.Prompt)
	assert.True(t, p.Running())
}

func TestPlugin_ConfigFlowsToPanel(t *testing.T) {
	ctx := context.Background()
	p := newPlugin(memhost.New(), entities.WithPanelVariant(entities.PanelVariantResponse))
	require.NoError(t, p.Register(ctx))
	defer p.Unregister(ctx) //nolint:errcheck

	assert.Equal(t, entities.PanelVariantResponse, p.Panel().Variant())
}

func TestPlugin_RegisterFailsOnBusyPort(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	p := plugin.New(memhost.New(), entities.DefaultConfig(),
		plugin.WithListenerOptions(listener.WithAddress(ln.Addr().String())))
	assert.Error(t, p.Register(context.Background()))
	assert.Nil(t, p.Listener())
	assert.Nil(t, p.Panel())
}

func TestPlugin_RegisterRejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name  string
		cfg   entities.Config
		field string
	}{
		{"wildcard address", entities.NewConfig(func(c *entities.Config) { c.ListenAddress = "0.0.0.0" }), "listen_address"},
		{"zero config", entities.Config{}, "listen_address"},
		{"port out of range", entities.NewConfig(entities.WithPort(70000)), "port"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := plugin.New(memhost.New(), tt.cfg)
			err := p.Register(context.Background())

			var cfgErr *domainerrors.ConfigError
			require.True(t, stdErrors.As(err, &cfgErr), "got %v", err)
			assert.Equal(t, tt.field, cfgErr.Field)
			assert.Nil(t, p.Listener())
			assert.False(t, p.Running())
		})
	}
}

func TestPlugin_RegisterRejectsNonLoopbackOverride(t *testing.T) {
	p := plugin.New(memhost.New(), entities.DefaultConfig(),
		plugin.WithListenerOptions(listener.WithAddress("0.0.0.0:0")))

	err := p.Register(context.Background())
	assert.ErrorIs(t, err, listener.ErrNotLoopback)
	assert.Nil(t, p.Listener())
}
