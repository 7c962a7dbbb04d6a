package ports

import (
	"context"

	"github.com/scenebridge/scenebridge/domain/entities"
)

// Evaluator runs a script snippet with the host control handle in scope.
// Failures are returned as *errors.EvalError (or a wrapping of it).
type Evaluator interface {
	Exec(ctx context.Context, code string) (*entities.ExecResult, error)
}
