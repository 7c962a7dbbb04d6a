package hostfuncs

import (
	"context"
	"errors"
	"testing"

	"github.com/scenebridge/scenebridge/domain/entities"
	domainerrors "github.com/scenebridge/scenebridge/domain/errors"
	"github.com/scenebridge/scenebridge/infrastructure/memhost"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHostRegistry(t *testing.T, host *memhost.Host) *HandlerRegistry {
	t.Helper()
	reg, err := NewRegistry(
		WithMiddleware(PanicRecoveryMiddleware()),
		WithBundle(HostBundle(host)),
	)
	require.NoError(t, err)
	return reg
}

func TestHostBundle_Names(t *testing.T) {
	reg := newHostRegistry(t, memhost.New())
	assert.Equal(t, []string{
		FuncAddPrimitive,
		FuncClipboardGet,
		FuncClipboardSet,
		FuncNotify,
		FuncSceneObjects,
	}, reg.Names())
}

func TestCall_SceneFunctions(t *testing.T) {
	ctx := context.Background()
	host := memhost.New(memhost.WithObjects("Camera"))
	reg := newHostRegistry(t, host)

	added, err := Call[AddPrimitiveRequest, AddPrimitiveResponse](ctx, reg, FuncAddPrimitive, AddPrimitiveRequest{})
	require.NoError(t, err)
	assert.Equal(t, "Cube", added.Name)

	added, err = Call[AddPrimitiveRequest, AddPrimitiveResponse](ctx, reg, FuncAddPrimitive, AddPrimitiveRequest{Kind: "cone"})
	require.NoError(t, err)
	assert.Equal(t, "Cone", added.Name)

	objs, err := Call[SceneObjectsRequest, SceneObjectsResponse](ctx, reg, FuncSceneObjects, SceneObjectsRequest{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Camera", "Cube", "Cone"}, objs.Objects)
}

func TestCall_UnknownPrimitive(t *testing.T) {
	reg := newHostRegistry(t, memhost.New())

	_, err := Call[AddPrimitiveRequest, AddPrimitiveResponse](context.Background(), reg, FuncAddPrimitive, AddPrimitiveRequest{Kind: "teapot"})
	var hostErr *domainerrors.HostCallError
	require.True(t, errors.As(err, &hostErr))
	assert.Equal(t, FuncAddPrimitive, hostErr.Function)
	assert.Contains(t, hostErr.Message, "teapot")
}

func TestCall_SceneFailure(t *testing.T) {
	host := memhost.New()
	host.SetSceneError(errors.New("no active scene"))
	reg := newHostRegistry(t, host)

	_, err := Call[SceneObjectsRequest, SceneObjectsResponse](context.Background(), reg, FuncSceneObjects, SceneObjectsRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no active scene")
}

func TestCall_ClipboardAndNotify(t *testing.T) {
	ctx := context.Background()
	host := memhost.New()
	reg := newHostRegistry(t, host)

	_, err := Call[ClipboardSetRequest, ClipboardResponse](ctx, reg, FuncClipboardSet, ClipboardSetRequest{Text: "copied"})
	require.NoError(t, err)

	got, err := Call[ClipboardGetRequest, ClipboardResponse](ctx, reg, FuncClipboardGet, ClipboardGetRequest{})
	require.NoError(t, err)
	assert.Equal(t, "copied", got.Text)

	resp, err := Call[NotifyRequest, NotifyResponse](ctx, reg, FuncNotify, NotifyRequest{Message: "hi"})
	require.NoError(t, err)
	assert.Equal(t, "INFO", resp.Level)
	assert.Equal(t, []entities.Notification{{Level: entities.LevelInfo, Message: "hi"}}, host.Notifications())

	_, err = Call[NotifyRequest, NotifyResponse](ctx, reg, FuncNotify, NotifyRequest{Level: "LOUD", Message: "x"})
	assert.Error(t, err)
}

func TestCall_NotFound(t *testing.T) {
	reg := newHostRegistry(t, memhost.New())

	_, err := Call[SceneObjectsRequest, SceneObjectsResponse](context.Background(), reg, "render", SceneObjectsRequest{})
	var hostErr *domainerrors.HostCallError
	require.True(t, errors.As(err, &hostErr))
	assert.Equal(t, "NOT_FOUND", hostErr.Kind)
}

