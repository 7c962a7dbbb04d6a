package ports

import (
	"context"

	"github.com/scenebridge/scenebridge/domain/entities"
)

// Scene is the host's live document as seen by the bridge.
type Scene interface {
	// ObjectNames returns the names of the current scene's objects in host
	// iteration order.
	ObjectNames(ctx context.Context) ([]string, error)

	// AddPrimitive inserts a default mesh primitive and returns the name the
	// host assigned to the new object.
	AddPrimitive(ctx context.Context, kind entities.Primitive) (string, error)
}
