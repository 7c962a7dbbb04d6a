package console_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scenebridge/scenebridge/application/panel"
	"github.com/scenebridge/scenebridge/domain/entities"
	"github.com/scenebridge/scenebridge/host"
	"github.com/scenebridge/scenebridge/hostfuncs"
	"github.com/scenebridge/scenebridge/infrastructure/console"
	"github.com/scenebridge/scenebridge/infrastructure/memhost"
)

func newPanel(t *testing.T, h *memhost.Host, opts ...panel.Option) *panel.Panel {
	t.Helper()
	reg, err := hostfuncs.NewRegistry(hostfuncs.WithBundle(hostfuncs.HostBundle(h)))
	require.NoError(t, err)
	exec, err := host.NewExecutor(host.WithHostFunctions(reg))
	require.NoError(t, err)
	return panel.New(exec, reg, opts...)
}

func TestConsole_Run(t *testing.T) {
	h := memhost.New()
	p := newPanel(t, h)

	in := strings.NewReader(strings.Join([]string{
		"prompt add a cube",
		"send",
		"cube",
		"scene",
		"script",
		"a = 1",
		"b = a + 1",
		".",
		"run",
		"quit",
		"send",
	}, "\n"))
	out := &bytes.Buffer{}

	require.NoError(t, console.New(p, in, out).Run(context.Background()))

	output := out.String()
	assert.Contains(t, output, "Claude MCP (Not Connected)")
	assert.Contains(t, output, "Prompt sent: add a cube")
	assert.Contains(t, output, "Cube created.")
	assert.Contains(t, output, "Objects: ['Cube']")
	assert.Contains(t, output, "{'a': 1, 'b': 2}")

	assert.Equal(t, []string{
		"Prompt sent: add a cube",
		"Cube created.",
		"Objects: ['Cube']",
		"{'a': 1, 'b': 2}",
	}, p.Snapshot().Log, "input after quit is ignored")
}

func TestConsole_ResponseVariant(t *testing.T) {
	p := newPanel(t, memhost.New(), panel.WithVariant(entities.PanelVariantResponse))

	in := strings.NewReader("script x = 3\nrun\ncube\nshow\n")
	out := &bytes.Buffer{}
	require.NoError(t, console.New(p, in, out).Run(context.Background()))

	output := out.String()
	assert.Contains(t, output, "Response: {'x': 3}")
	assert.Contains(t, output, panel.ErrOperatorUnavailable.Error())
	assert.Contains(t, output, "Script: x = 3")
}

func TestConsole_CopyPromptOnFullLog(t *testing.T) {
	h := memhost.New()
	p := newPanel(t, h, panel.WithLogCapacity(1))

	in := strings.NewReader("send\ncopy\n")
	out := &bytes.Buffer{}
	require.NoError(t, console.New(p, in, out).Run(context.Background()))

	assert.Equal(t, 1, strings.Count(out.String(), "Prompt sent: "))
	assert.Len(t, h.Notifications(), 1)
}

func TestConsole_Help(t *testing.T) {
	p := newPanel(t, memhost.New())
	out := &bytes.Buffer{}
	require.NoError(t, console.New(p, strings.NewReader("help\n"), out).Run(context.Background()))

	assert.Contains(t, out.String(), "Create Cube")
	assert.Contains(t, out.String(), "Get Scene Info")
}

func TestConsole_UnknownCommand(t *testing.T) {
	p := newPanel(t, memhost.New())
	out := &bytes.Buffer{}
	require.NoError(t, console.New(p, strings.NewReader("dance\n"), out).Run(context.Background()))
	assert.Contains(t, out.String(), panel.ErrUnknownOperator.Error())
}

func TestConsole_IsInteractive(t *testing.T) {
	c := console.New(newPanel(t, memhost.New()), strings.NewReader(""), &bytes.Buffer{})
	assert.False(t, c.IsInteractive())
}

func TestConsole_Reload(t *testing.T) {
	h := memhost.New(memhost.WithObjects("Cube"))
	p := newPanel(t, h)

	reloaded := 0
	in := strings.NewReader("send\nreload\nshow\n")
	out := &bytes.Buffer{}
	c := console.New(p, in, out, console.WithReload(func() {
		reloaded++
		p.Reset()
	}))
	require.NoError(t, c.Run(context.Background()))

	assert.Equal(t, 1, reloaded)
	assert.Contains(t, out.String(), "Document reloaded.")
	assert.Empty(t, p.Snapshot().Log)
}
