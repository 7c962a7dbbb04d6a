package hostfuncs

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/scenebridge/scenebridge/domain/errors"
)

// Invoker dispatches a named host function; *HandlerRegistry implements it.
type Invoker interface {
	Invoke(ctx context.Context, name string, payload []byte) ([]byte, error)
}

// Call invokes a typed host function through inv. An ErrorResponse body is
// returned as *errors.HostCallError.
func Call[Req any, Resp any](ctx context.Context, inv Invoker, name string, req Req) (Resp, error) {
	var resp Resp

	payload, err := json.Marshal(req)
	if err != nil {
		return resp, fmt.Errorf("failed to marshal %s request: %w", name, err)
	}

	out, err := inv.Invoke(ctx, name, payload)
	if err != nil {
		return resp, fmt.Errorf("host function %s: %w", name, err)
	}

	if errResp, ok := AsErrorResponse(out); ok {
		return resp, &errors.HostCallError{Function: name, Kind: errResp.Error, Message: errResp.Message}
	}

	if err := json.Unmarshal(out, &resp); err != nil {
		return resp, fmt.Errorf("failed to unmarshal %s response: %w", name, err)
	}
	return resp, nil
}
