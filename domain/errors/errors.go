// Package errors provides domain-specific error types for the scene bridge.
// All error types support error unwrapping via errors.As() and errors.Is().
package errors

import (
	stdErrors "errors"
	"fmt"
	"time"

	"github.com/scenebridge/scenebridge/domain/entities"
)

// ErrorDetail is an alias to entities.ErrorDetail for convenience.
type ErrorDetail = entities.ErrorDetail

// DetailedError is an interface for custom error types that can convert
// themselves to a structured ErrorDetail.
type DetailedError interface {
	error
	ToErrorDetail() *entities.ErrorDetail
}

// ToErrorDetail converts a Go error to our structured ErrorDetail.
// This function recognizes custom error types and categorizes them appropriately.
func ToErrorDetail(err error) *entities.ErrorDetail {
	if err == nil {
		return nil
	}

	var e *entities.ErrorDetail
	if stdErrors.As(err, &e) {
		return e
	}

	var de DetailedError
	if stdErrors.As(err, &de) {
		return de.ToErrorDetail()
	}

	return &entities.ErrorDetail{
		Message: err.Error(),
		Type:    "internal",
	}
}

// Traceback returns the evaluation traceback carried by err, if any.
func Traceback(err error) string {
	var ee *EvalError
	if stdErrors.As(err, &ee) {
		return ee.Traceback
	}
	var re *RequestError
	if stdErrors.As(err, &re) && re.Err != nil {
		return re.Error()
	}
	return ""
}

// RequestError represents a request body that could not be read or decoded.
type RequestError struct {
	Err    error
	Reason string
}

func (e *RequestError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("invalid request: %v", e.Err)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// ToErrorDetail implements DetailedError.
func (e *RequestError) ToErrorDetail() *entities.ErrorDetail {
	return &entities.ErrorDetail{Message: e.Error(), Type: "request"}
}

// EvalError represents a failure raised while compiling or running a script.
// Message is the bare evaluation message; Traceback is the formatted stack.
type EvalError struct {
	Err       error
	Message   string
	Traceback string
}

func (e *EvalError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "evaluation failed"
}

func (e *EvalError) Unwrap() error {
	return e.Err
}

// ToErrorDetail implements DetailedError.
func (e *EvalError) ToErrorDetail() *entities.ErrorDetail {
	return &entities.ErrorDetail{Message: e.Error(), Type: "eval", Traceback: e.Traceback}
}

// SceneError represents a failure querying or editing the host scene.
type SceneError struct {
	Err       error
	Operation string
}

func (e *SceneError) Error() string {
	if e.Operation != "" {
		return fmt.Sprintf("scene %s failed: %v", e.Operation, e.Err)
	}
	return fmt.Sprintf("scene unavailable: %v", e.Err)
}

func (e *SceneError) Unwrap() error {
	return e.Err
}

// ToErrorDetail implements DetailedError.
func (e *SceneError) ToErrorDetail() *entities.ErrorDetail {
	return &entities.ErrorDetail{Message: e.Error(), Type: "scene", Code: e.Operation}
}

// HostCallError represents a host function that reported a failure to a script.
type HostCallError struct {
	Function string
	Kind     string
	Message  string
}

func (e *HostCallError) Error() string {
	if e.Kind != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Function, e.Message, e.Kind)
	}
	return fmt.Sprintf("%s: %s", e.Function, e.Message)
}

// ToErrorDetail implements DetailedError.
func (e *HostCallError) ToErrorDetail() *entities.ErrorDetail {
	return &entities.ErrorDetail{Message: e.Message, Type: "host_call", Code: e.Function}
}

// TimeoutError represents an evaluation cancelled at its deadline.
type TimeoutError struct {
	Operation string
	Duration  time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s timeout after %v", e.Operation, e.Duration)
}

func (e *TimeoutError) Timeout() bool {
	return true
}

// ToErrorDetail implements DetailedError.
func (e *TimeoutError) ToErrorDetail() *entities.ErrorDetail {
	return &entities.ErrorDetail{Message: e.Error(), Type: "timeout", Code: e.Operation, IsTimeout: true}
}

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Err   error
	Field string
}

func (e *ConfigError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("config validation failed for field '%s': %v", e.Field, e.Err)
	}
	return fmt.Sprintf("config validation failed: %v", e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// ToErrorDetail implements DetailedError.
func (e *ConfigError) ToErrorDetail() *entities.ErrorDetail {
	return &entities.ErrorDetail{Message: e.Error(), Type: "config", Code: e.Field}
}
