package host

import (
	"context"
	stdErrors "errors"
	"fmt"
	"log/slog"
	"time"

	"go.starlark.net/resolve"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/scenebridge/scenebridge/domain/entities"
	"github.com/scenebridge/scenebridge/domain/errors"
	"github.com/scenebridge/scenebridge/domain/ports"
	"github.com/scenebridge/scenebridge/hostfuncs"
)

// snippetName is the file name reported in tracebacks.
const snippetName = "<snippet>"

// fileOptions enables the Python-like statements scripts routinely use at
// top level.
var fileOptions = &syntax.FileOptions{
	Set:             true,
	While:           true,
	TopLevelControl: true,
	GlobalReassign:  true,
	Recursion:       true,
}

// Executor evaluates scripts with the bpy control handle in scope.
type Executor struct {
	registry hostfuncs.Invoker
	logger   *slog.Logger
	timeout  time.Duration
	maxPrint int
}

var _ ports.Evaluator = (*Executor)(nil)

// NewExecutor creates a new executor with the given options.
func NewExecutor(opts ...Option) (*Executor, error) {
	e := &Executor{
		logger:   slog.Default(),
		maxPrint: entities.DefaultMaxPrintBytes,
	}
	for _, opt := range opts {
		opt(e)
	}

	// Default registry if not provided
	if e.registry == nil {
		reg, err := hostfuncs.NewRegistry()
		if err != nil {
			return nil, fmt.Errorf("failed to create default registry: %w", err)
		}
		e.registry = reg
	}

	return e, nil
}

// Exec compiles and runs code. On success the result's Output renders the
// top-level bindings the snippet produced. Any failure, including a compile
// error or a cancelled run, is returned as *errors.EvalError.
//
// Without a configured timeout, Exec returns only when the snippet does or
// ctx is cancelled.
func (e *Executor) Exec(ctx context.Context, code string) (*entities.ExecResult, error) {
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	printed := hostfuncs.NewBoundedBuffer(e.maxPrint)
	thread := &starlark.Thread{
		Name: "exec",
		Print: func(_ *starlark.Thread, msg string) {
			printed.WriteLine(msg)
		},
	}

	predeclared := starlark.StringDict{
		"bpy": newHandle(ctx, e.registry),
	}

	file, prog, err := starlark.SourceProgramOptions(fileOptions, snippetName, code, predeclared.Has)
	if err != nil {
		return nil, compileError(err)
	}

	stop := e.watch(ctx, thread)
	start := time.Now()
	globals, err := prog.Init(thread, predeclared)
	stop()

	if printed.Len() > 0 {
		e.logger.InfoContext(ctx, "script output", "printed", printed.String(), "truncated", printed.Truncated)
	}

	if err != nil {
		evalErr := runtimeError(err)
		if stdErrors.Is(ctx.Err(), context.DeadlineExceeded) && e.timeout > 0 {
			timeout := &errors.TimeoutError{Operation: "eval", Duration: e.timeout}
			evalErr.Message = timeout.Error()
			evalErr.Err = timeout
		}
		e.logger.DebugContext(ctx, "script failed", "error", evalErr.Message, "duration", time.Since(start))
		return nil, evalErr
	}

	names := bindingOrder(file, globals)
	e.logger.DebugContext(ctx, "script completed", "bindings", len(names), "duration", time.Since(start))

	return &entities.ExecResult{
		Output:    reprBindings(names, globals),
		Printed:   printed.String(),
		Bindings:  names,
		Truncated: printed.Truncated,
	}, nil
}

// watch cancels thread when ctx is done. The returned func stops watching.
func (e *Executor) watch(ctx context.Context, thread *starlark.Thread) func() {
	if ctx.Done() == nil {
		return func() {}
	}
	done := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			thread.Cancel(ctx.Err().Error())
		case <-done:
		}
	}()
	return func() { close(done) }
}

func compileError(err error) *errors.EvalError {
	msg := err.Error()
	var synErr syntax.Error
	var resErrs resolve.ErrorList
	switch {
	case stdErrors.As(err, &synErr):
		msg = synErr.Msg
	case stdErrors.As(err, &resErrs) && len(resErrs) > 0:
		msg = resErrs[0].Msg
	}
	return &errors.EvalError{Err: err, Message: msg, Traceback: err.Error()}
}

// zeroDivision maps the interpreter's division and modulo by zero
// messages to the host console's ZeroDivisionError text.
var zeroDivision = map[string]string{
	"floating-point division by zero": "division by zero",
	"floored division by zero":        "division by zero",
	"floating-point modulo by zero":   "division by zero",
	"integer modulo by zero":          "division by zero",
}

func runtimeError(err error) *errors.EvalError {
	var evalErr *starlark.EvalError
	if stdErrors.As(err, &evalErr) {
		msg := evalErr.Msg
		if m, ok := zeroDivision[msg]; ok {
			msg = m
		}
		return &errors.EvalError{Err: err, Message: msg, Traceback: evalErr.Backtrace()}
	}
	return &errors.EvalError{Err: err, Message: err.Error(), Traceback: err.Error()}
}
