package hostfuncs

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPanicRecoveryMiddleware(t *testing.T) {
	panicHandler := func(ctx context.Context, payload []byte) ([]byte, error) {
		panic("test panic")
	}

	wrapped := PanicRecoveryMiddleware()(panicHandler)

	resp, err := wrapped(context.Background(), []byte("{}"))
	require.NoError(t, err)
	require.NotNil(t, resp)

	var errResp ErrorResponse
	require.NoError(t, json.Unmarshal(resp, &errResp))
	assert.Equal(t, "INTERNAL_ERROR", errResp.Error)
	assert.Equal(t, 500, errResp.Code)
	assert.Contains(t, errResp.Message, "test panic")
}

func TestPanicRecoveryMiddleware_NoPanic(t *testing.T) {
	normalHandler := func(ctx context.Context, payload []byte) ([]byte, error) {
		return []byte(`{"result":"ok"}`), nil
	}

	resp, err := PanicRecoveryMiddleware()(normalHandler)(context.Background(), []byte("{}"))
	require.NoError(t, err)
	assert.Equal(t, `{"result":"ok"}`, string(resp))
}

func TestMiddlewareOrder_FIFO(t *testing.T) {
	var callOrder []string

	tag := func(name string) Middleware {
		return func(next ByteHandler) ByteHandler {
			return func(ctx context.Context, payload []byte) ([]byte, error) {
				callOrder = append(callOrder, name+"-before")
				resp, err := next(ctx, payload)
				callOrder = append(callOrder, name+"-after")
				return resp, err
			}
		}
	}

	handler := func(ctx context.Context, payload []byte) ([]byte, error) {
		callOrder = append(callOrder, "handler")
		return nil, nil
	}

	reg, err := NewRegistry(
		WithMiddleware(tag("mw1"), tag("mw2")),
		WithByteHandler("test", handler),
	)
	require.NoError(t, err)

	_, err = reg.Invoke(context.Background(), "test", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"mw1-before", "mw2-before", "handler", "mw2-after", "mw1-after"}, callOrder)
}

func TestLoggingMiddleware(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	ok := func(ctx context.Context, payload []byte) ([]byte, error) {
		return []byte(`{}`), nil
	}
	failing := func(ctx context.Context, payload []byte) ([]byte, error) {
		return NewInternalError("scene gone").ToJSON(), nil
	}
	broken := func(ctx context.Context, payload []byte) ([]byte, error) {
		return nil, errors.New("marshal failure")
	}

	reg, err := NewRegistry(
		WithMiddleware(LoggingMiddleware(logger)),
		WithByteHandler("ok", ok),
		WithByteHandler("failing", failing),
		WithByteHandler("broken", broken),
	)
	require.NoError(t, err)

	ctx := WithCaller(context.Background(), "panel")
	_, _ = reg.Invoke(ctx, "ok", nil)
	_, _ = reg.Invoke(ctx, "failing", nil)
	_, _ = reg.Invoke(ctx, "broken", nil)

	out := buf.String()
	assert.Contains(t, out, "host function completed")
	assert.Contains(t, out, "function=ok")
	assert.Contains(t, out, "caller=panel")
	assert.Contains(t, out, "host function returned error")
	assert.Contains(t, out, "scene gone")
	assert.Contains(t, out, "host function failed")
}
