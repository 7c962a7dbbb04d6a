package host

import (
	"log/slog"
	"time"

	"github.com/scenebridge/scenebridge/hostfuncs"
)

// Option defines a functional option for configuring the Executor.
type Option func(*Executor)

// WithHostFunctions configures the executor with a host function registry.
func WithHostFunctions(registry hostfuncs.Invoker) Option {
	return func(e *Executor) {
		e.registry = registry
	}
}

// WithTimeout cancels evaluations running longer than d. Zero disables it.
func WithTimeout(d time.Duration) Option {
	return func(e *Executor) {
		if d >= 0 {
			e.timeout = d
		}
	}
}

// WithMaxPrintBytes bounds the print() output kept per evaluation.
func WithMaxPrintBytes(n int) Option {
	return func(e *Executor) {
		if n >= 0 {
			e.maxPrint = n
		}
	}
}

// WithLogger sets the logger used for evaluation records.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Executor) {
		if logger != nil {
			e.logger = logger
		}
	}
}
