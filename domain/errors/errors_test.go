package errors

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/scenebridge/scenebridge/domain/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestError(t *testing.T) {
	baseErr := fmt.Errorf("unexpected end of JSON input")
	err := &RequestError{Reason: "malformed request body", Err: baseErr}

	assert.Equal(t, "malformed request body: unexpected end of JSON input", err.Error())
	assert.True(t, errors.Is(err, baseErr))
	assert.Equal(t, err.Error(), Traceback(err))
}

func TestEvalError(t *testing.T) {
	err := &EvalError{
		Message:   "division by zero",
		Traceback: "Traceback (most recent call last):\n  <snippet>:1:2: in <toplevel>\nError: floating-point division by zero",
	}

	assert.Equal(t, "division by zero", err.Error())
	assert.Contains(t, Traceback(fmt.Errorf("exec: %w", err)), "Traceback")

	detail := ToErrorDetail(err)
	assert.Equal(t, "eval", detail.Type)
	assert.Equal(t, err.Traceback, detail.Traceback)
}

func TestEvalError_FallsBackToCause(t *testing.T) {
	cause := errors.New("boom")
	err := &EvalError{Err: cause}
	assert.Equal(t, "boom", err.Error())
	assert.True(t, errors.Is(err, cause))
}

func TestSceneError(t *testing.T) {
	err := &SceneError{Operation: "list_objects", Err: errors.New("no active scene")}
	assert.Equal(t, "scene list_objects failed: no active scene", err.Error())

	var sceneErr *SceneError
	require.True(t, errors.As(fmt.Errorf("wrap: %w", err), &sceneErr))
	assert.Equal(t, "scene", ToErrorDetail(err).Type)
	assert.Empty(t, Traceback(err))
}

func TestHostCallError(t *testing.T) {
	err := &HostCallError{Function: "clipboard_set", Kind: "INTERNAL_ERROR", Message: "clipboard locked"}
	assert.Equal(t, "clipboard_set: clipboard locked (INTERNAL_ERROR)", err.Error())

	plain := &HostCallError{Function: "notify", Message: "ui unavailable"}
	assert.Equal(t, "notify: ui unavailable", plain.Error())
}

func TestTimeoutError(t *testing.T) {
	err := &TimeoutError{Operation: "eval", Duration: 2 * time.Second}

	assert.Equal(t, "eval timeout after 2s", err.Error())
	assert.True(t, err.Timeout())
	assert.True(t, ToErrorDetail(err).IsTimeout)
}

func TestConfigError(t *testing.T) {
	baseErr := fmt.Errorf("must be loopback")
	err := &ConfigError{Field: "listen_address", Err: baseErr}

	assert.Equal(t, "config validation failed for field 'listen_address': must be loopback", err.Error())
	assert.True(t, errors.Is(err, baseErr))

	noField := &ConfigError{Err: baseErr}
	assert.Equal(t, "config validation failed: must be loopback", noField.Error())
}

func TestToErrorDetail(t *testing.T) {
	assert.Nil(t, ToErrorDetail(nil))

	generic := ToErrorDetail(errors.New("plain"))
	assert.Equal(t, "internal", generic.Type)
	assert.Equal(t, "plain", generic.Message)

	existing := entities.NewErrorDetail("scene", "gone")
	assert.Same(t, existing, ToErrorDetail(fmt.Errorf("wrapped: %w", existing)))
}
