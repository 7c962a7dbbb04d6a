package appclient_test

import (
	"context"
	stdErrors "errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scenebridge/scenebridge/host"
	"github.com/scenebridge/scenebridge/hostfuncs"
	"github.com/scenebridge/scenebridge/infrastructure/appclient"
	"github.com/scenebridge/scenebridge/infrastructure/listener"
	"github.com/scenebridge/scenebridge/infrastructure/memhost"
)

func newClient(t *testing.T, h *memhost.Host) *appclient.Client {
	t.Helper()
	reg, err := hostfuncs.NewRegistry(hostfuncs.WithBundle(hostfuncs.HostBundle(h)))
	require.NoError(t, err)
	exec, err := host.NewExecutor(host.WithHostFunctions(reg))
	require.NoError(t, err)

	srv := httptest.NewServer(listener.New(exec, reg).Handler())
	t.Cleanup(srv.Close)
	return appclient.NewWithClient(srv.URL, srv.Client())
}

func TestClient_Execute(t *testing.T) {
	c := newClient(t, memhost.New())

	out, err := c.Execute(context.Background(), "x = 1 + 1")
	require.NoError(t, err)
	assert.Equal(t, "{'x': 2}", out)
}

func TestClient_ExecuteFailure(t *testing.T) {
	c := newClient(t, memhost.New())

	_, err := c.Execute(context.Background(), "1/0")
	var reqErr *appclient.RequestError
	require.True(t, stdErrors.As(err, &reqErr))
	assert.Equal(t, http.StatusInternalServerError, reqErr.StatusCode)
	assert.Contains(t, reqErr.Message, "division by zero")
	assert.NotEmpty(t, reqErr.Traceback)
}

func TestClient_SceneObjects(t *testing.T) {
	c := newClient(t, memhost.New(memhost.WithObjects("Cube", "Light")))

	objects, err := c.SceneObjects(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Cube", "Light"}, objects)
}

func TestClient_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	_, err := appclient.NewWithClient(srv.URL, srv.Client()).SceneObjects(context.Background())
	var reqErr *appclient.RequestError
	require.True(t, stdErrors.As(err, &reqErr))
	assert.Equal(t, http.StatusNotFound, reqErr.StatusCode)
}

func TestClient_UnaryTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	c := appclient.NewWithClient(srv.URL, srv.Client()).WithUnaryTimeout(50 * time.Millisecond)
	_, err := c.SceneObjects(context.Background())
	assert.Error(t, err)
}

func TestNew_DefaultsAndScheme(t *testing.T) {
	assert.Equal(t, "http://127.0.0.1:8765", appclient.New("").BaseURL())
	assert.Equal(t, "http://localhost:9000", appclient.New("localhost:9000/").BaseURL())
}
