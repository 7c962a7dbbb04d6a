package panel_test

import (
	"context"
	stdErrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scenebridge/scenebridge/application/panel"
	"github.com/scenebridge/scenebridge/domain/entities"
	"github.com/scenebridge/scenebridge/host"
	"github.com/scenebridge/scenebridge/hostfuncs"
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

func TestPanel_LogVariant(t *testing.T) {
	ctx := context.Background()
	h := memhost.New(memhost.WithObjects("Camera"))
	p := newPanel(t, h)

	p.SetPrompt("make it blue")
	p.SetScript("x = 1 + 1")

	require.NoError(t, p.Invoke(ctx, panel.OpSendPrompt))
	require.NoError(t, p.Invoke(ctx, panel.OpRunScript))
	require.NoError(t, p.Invoke(ctx, panel.OpCreateCube))
	require.NoError(t, p.Invoke(ctx, panel.OpGetSceneInfo))

	p.SetScript("y = 1/0")
	require.NoError(t, p.Invoke(ctx, panel.OpRunScript))

	log := p.Snapshot().Log
	require.Len(t, log, 5)
	assert.Equal(t, "Prompt sent: make it blue", log[0])
	assert.Equal(t, "{'x': 2}", log[1])
	assert.Equal(t, "Cube created.", log[2])
	assert.Equal(t, "Objects: ['Camera', 'Cube']", log[3])
	assert.Contains(t, log[4], "Error: ")
	assert.Contains(t, log[4], "division by zero")

	notes := h.Notifications()
	require.Len(t, notes, 1)
	assert.Equal(t, entities.LevelError, notes[0].Level)
}

func TestPanel_ResponseVariant(t *testing.T) {
	ctx := context.Background()
	h := memhost.New()
	p := newPanel(t, h, panel.WithVariant(entities.PanelVariantResponse))

	p.SetScript("name = 'cube'")
	require.NoError(t, p.Invoke(ctx, panel.OpRunScript))
	assert.Equal(t, "{'name': 'cube'}", p.Snapshot().Response)

	p.SetScript("1/0")
	require.NoError(t, p.Invoke(ctx, panel.OpRunScript))
	state := p.Snapshot()
	assert.Contains(t, state.Response, "division by zero")
	assert.Empty(t, state.Log)

	notes := h.Notifications()
	require.Len(t, notes, 1)
	assert.Equal(t, entities.LevelError, notes[0].Level)
	assert.Equal(t, state.Response, notes[0].Message)

	for _, id := range []string{panel.OpSendPrompt, panel.OpCreateCube, panel.OpGetSceneInfo} {
		err := p.Invoke(ctx, id)
		assert.True(t, stdErrors.Is(err, panel.ErrOperatorUnavailable), id)
	}
}

func TestPanel_CopyPrompt(t *testing.T) {
	ctx := context.Background()
	h := memhost.New()
	p := newPanel(t, h)

	p.SetPrompt("hello")
	require.NoError(t, p.Invoke(ctx, panel.OpCopyPrompt))

	text, err := h.ReadClipboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, "hello", text)
	assert.Equal(t, []entities.Notification{
		{Level: entities.LevelInfo, Message: "Prompt copied to clipboard."},
	}, h.Notifications())
	assert.Empty(t, p.Snapshot().Log)
}

func TestPanel_CreateCubeFailure(t *testing.T) {
	h := memhost.New()
	h.SetSceneError(stdErrors.New("no active scene"))
	p := newPanel(t, h)

	require.NoError(t, p.Invoke(context.Background(), panel.OpCreateCube))
	log := p.Snapshot().Log
	require.Len(t, log, 1)
	assert.Contains(t, log[0], "Error: ")
	assert.Contains(t, log[0], "no active scene")
}

func TestPanel_LogBounded(t *testing.T) {
	p := newPanel(t, memhost.New())
	for i := 0; i < 60; i++ {
		p.SetPrompt(fmt.Sprint(i))
		require.NoError(t, p.Invoke(context.Background(), panel.OpSendPrompt))
	}

	log := p.Snapshot().Log
	require.Len(t, log, entities.DefaultLogCapacity)
	assert.Equal(t, "Prompt sent: 10", log[0])
	assert.Equal(t, "Prompt sent: 59", log[49])
}

func TestPanel_Operators(t *testing.T) {
	logPanel := newPanel(t, memhost.New())
	respPanel := newPanel(t, memhost.New(), panel.WithVariant(entities.PanelVariantResponse))

	ids := func(ops []panel.Operator) []string {
		out := make([]string, len(ops))
		for i, op := range ops {
			out[i] = op.ID
		}
		return out
	}

	assert.Equal(t, []string{
		panel.OpSendPrompt, panel.OpRunScript, panel.OpCopyPrompt, panel.OpCreateCube, panel.OpGetSceneInfo,
	}, ids(logPanel.Operators()))
	assert.Equal(t, []string{panel.OpRunScript, panel.OpCopyPrompt}, ids(respPanel.Operators()))
}

func TestPanel_UnknownOperator(t *testing.T) {
	p := newPanel(t, memhost.New())
	err := p.Invoke(context.Background(), "claude.fly")
	assert.True(t, stdErrors.Is(err, panel.ErrUnknownOperator))
}

func TestPanel_StatusAndReset(t *testing.T) {
	p := newPanel(t, memhost.New())
	assert.Equal(t, panel.StatusNotConnected, p.Snapshot().Status)

	p.SetListening("127.0.0.1:8765")
	assert.Equal(t, "Listening on 127.0.0.1:8765", p.Snapshot().Status)

	p.SetPrompt("p")
	p.SetScript("s")
	require.NoError(t, p.Invoke(context.Background(), panel.OpSendPrompt))
	p.Reset()

	state := p.Snapshot()
	assert.Empty(t, state.Prompt)
	assert.Empty(t, state.Script)
	assert.Empty(t, state.Log)
	assert.Equal(t, "Listening on 127.0.0.1:8765", state.Status)

	p.SetListening("")
	assert.Equal(t, panel.StatusNotConnected, p.Snapshot().Status)
}
