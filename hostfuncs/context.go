package hostfuncs

import (
	"context"
)

// HostContext wraps a context.Context with the name of the invoked host
// function and the caller that triggered it (listener, panel, ...).
type HostContext interface {
	context.Context

	// FunctionName returns the name of the host function being invoked.
	FunctionName() string

	// Caller returns the label set with WithCaller, or "unknown".
	Caller() string
}

type callerKey struct{}

// WithCaller labels ctx with the component issuing host calls.
func WithCaller(ctx context.Context, caller string) context.Context {
	return context.WithValue(ctx, callerKey{}, caller)
}

type hostContext struct {
	context.Context
	funcName string
}

// NewHostContext creates a new HostContext wrapping the given context.
func NewHostContext(ctx context.Context, funcName string) HostContext {
	return &hostContext{
		Context:  ctx,
		funcName: funcName,
	}
}

func (c *hostContext) FunctionName() string {
	return c.funcName
}

func (c *hostContext) Caller() string {
	if caller, ok := c.Value(callerKey{}).(string); ok && caller != "" {
		return caller
	}
	return "unknown"
}

// HostContextFrom returns ctx as a HostContext for funcName. An existing
// HostContext for a different function is re-wrapped so nested calls report
// their own name.
func HostContextFrom(ctx context.Context, funcName string) HostContext {
	if hc, ok := ctx.(HostContext); ok && hc.FunctionName() == funcName {
		return hc
	}
	return NewHostContext(ctx, funcName)
}
