package hostfuncs

import (
	"context"
	"log/slog"
	"time"
)

// Middleware is a function that wraps a ByteHandler to add cross-cutting behavior.
// Middleware executes in FIFO order (first registered wraps first, onion model).
type Middleware func(next ByteHandler) ByteHandler

// RegistryOption is a functional option for configuring a HandlerRegistry.
type RegistryOption func(*registryBuilder)

// PanicRecoveryMiddleware returns a middleware that catches panics and converts
// them to structured ErrorResponse JSON instead of crashing the host.
func PanicRecoveryMiddleware() Middleware {
	return func(next ByteHandler) ByteHandler {
		return func(ctx context.Context, payload []byte) (resp []byte, err error) {
			defer func() {
				if r := recover(); r != nil {
					resp = NewPanicError(r).ToJSON()
					err = nil
				}
			}()
			return next(ctx, payload)
		}
	}
}

// LoggingMiddleware logs each host function invocation at debug level and
// failures at warn level.
func LoggingMiddleware(logger *slog.Logger) Middleware {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next ByteHandler) ByteHandler {
		return func(ctx context.Context, payload []byte) ([]byte, error) {
			funcName, caller := "unknown", "unknown"
			if hc, ok := ctx.(HostContext); ok {
				funcName = hc.FunctionName()
				caller = hc.Caller()
			}
			start := time.Now()
			resp, err := next(ctx, payload)
			attrs := []any{"function", funcName, "caller", caller, "duration", time.Since(start)}
			switch {
			case err != nil:
				logger.WarnContext(ctx, "host function failed", append(attrs, "error", err)...)
			default:
				if errResp, isErr := AsErrorResponse(resp); isErr {
					logger.WarnContext(ctx, "host function returned error", append(attrs, "kind", errResp.Error, "message", errResp.Message)...)
				} else {
					logger.DebugContext(ctx, "host function completed", attrs...)
				}
			}
			return resp, err
		}
	}
}
