package hostfuncs

import (
	"context"

	"github.com/scenebridge/scenebridge/domain/entities"
	"github.com/scenebridge/scenebridge/domain/errors"
	"github.com/scenebridge/scenebridge/domain/ports"
)

// SceneObjectsRequest is the request type for scene_objects.
type SceneObjectsRequest struct{}

// SceneObjectsResponse lists object names in host iteration order.
type SceneObjectsResponse struct {
	Objects []string `json:"objects"`
}

// AddPrimitiveRequest is the request type for add_primitive.
type AddPrimitiveRequest struct {
	// Kind is the primitive to insert (e.g. "cube"); empty means cube.
	Kind string `json:"kind"`
}

// AddPrimitiveResponse carries the name of the inserted object.
type AddPrimitiveResponse struct {
	Name string `json:"name"`
}

// SceneObjects binds scene_objects to a scene.
func SceneObjects(scene ports.Scene) HostFunc[SceneObjectsRequest, SceneObjectsResponse] {
	return func(ctx context.Context, _ SceneObjectsRequest) (SceneObjectsResponse, error) {
		names, err := scene.ObjectNames(ctx)
		if err != nil {
			return SceneObjectsResponse{}, &errors.SceneError{Operation: "list_objects", Err: err}
		}
		if names == nil {
			names = []string{}
		}
		return SceneObjectsResponse{Objects: names}, nil
	}
}

// AddPrimitive binds add_primitive to a scene.
func AddPrimitive(scene ports.Scene) HostFunc[AddPrimitiveRequest, AddPrimitiveResponse] {
	return func(ctx context.Context, req AddPrimitiveRequest) (AddPrimitiveResponse, error) {
		kind := entities.PrimitiveCube
		if req.Kind != "" {
			p, err := entities.ParsePrimitive(req.Kind)
			if err != nil {
				return AddPrimitiveResponse{}, err
			}
			kind = p
		}
		name, err := scene.AddPrimitive(ctx, kind)
		if err != nil {
			return AddPrimitiveResponse{}, &errors.SceneError{Operation: "add_primitive", Err: err}
		}
		return AddPrimitiveResponse{Name: name}, nil
	}
}
