package host

import (
	"context"
	"fmt"
	"hash/fnv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/starlarkstruct"

	"github.com/scenebridge/scenebridge/domain/entities"
	"github.com/scenebridge/scenebridge/hostfuncs"
)

// newHandle builds the bpy control handle for one evaluation. Every member
// closes over ctx so host calls carry the evaluation's deadline.
//
//	bpy.context.scene.objects                  live list of scene objects
//	bpy.context.window_manager.clipboard       readable and assignable
//	bpy.ops.mesh.primitive_cube_add()          and the other primitives
//	bpy.ops.mesh.primitive_add(kind)
//	bpy.notify(message, level="INFO")
//	bpy.report({'WARNING'}, message)
func newHandle(ctx context.Context, inv hostfuncs.Invoker) *starlarkstruct.Module {
	h := &handle{ctx: ctx, inv: inv}

	mesh := starlark.StringDict{
		"primitive_add": starlark.NewBuiltin("primitive_add", h.primitiveAdd),
	}
	for _, kind := range []entities.Primitive{
		entities.PrimitiveCube,
		entities.PrimitivePlane,
		entities.PrimitiveSphere,
		entities.PrimitiveCylinder,
		entities.PrimitiveCone,
		entities.PrimitiveTorus,
	} {
		name := "primitive_" + string(kind) + "_add"
		mesh[name] = starlark.NewBuiltin(name, h.primitiveOp(kind))
	}

	return &starlarkstruct.Module{
		Name: "bpy",
		Members: starlark.StringDict{
			"context": &starlarkstruct.Module{
				Name: "bpy.context",
				Members: starlark.StringDict{
					"scene":          &sceneValue{h: h},
					"window_manager": &windowManagerValue{h: h},
				},
			},
			"ops": &starlarkstruct.Module{
				Name: "bpy.ops",
				Members: starlark.StringDict{
					"mesh": &starlarkstruct.Module{Name: "bpy.ops.mesh", Members: mesh},
				},
			},
			"notify": starlark.NewBuiltin("notify", h.notify),
			"report": starlark.NewBuiltin("report", h.report),
		},
	}
}

type handle struct {
	ctx context.Context
	inv hostfuncs.Invoker
}

func (h *handle) objects() (starlark.Value, error) {
	resp, err := hostfuncs.Call[hostfuncs.SceneObjectsRequest, hostfuncs.SceneObjectsResponse](
		hostfuncs.WithCaller(h.ctx, "script"), h.inv, hostfuncs.FuncSceneObjects, hostfuncs.SceneObjectsRequest{})
	if err != nil {
		return nil, err
	}
	elems := make([]starlark.Value, len(resp.Objects))
	for i, name := range resp.Objects {
		elems[i] = objectValue(name)
	}
	return starlark.NewList(elems), nil
}

func (h *handle) addPrimitive(kind entities.Primitive) (starlark.Value, error) {
	_, err := hostfuncs.Call[hostfuncs.AddPrimitiveRequest, hostfuncs.AddPrimitiveResponse](
		hostfuncs.WithCaller(h.ctx, "script"), h.inv, hostfuncs.FuncAddPrimitive, hostfuncs.AddPrimitiveRequest{Kind: string(kind)})
	if err != nil {
		return nil, err
	}
	return finished(), nil
}

// primitiveOp returns an operator builtin for kind. Operator properties
// (size, location, ...) are accepted as keywords and not modeled.
func (h *handle) primitiveOp(kind entities.Primitive) func(*starlark.Thread, *starlark.Builtin, starlark.Tuple, []starlark.Tuple) (starlark.Value, error) {
	return func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, _ []starlark.Tuple) (starlark.Value, error) {
		if len(args) > 0 {
			return nil, fmt.Errorf("%s: takes no positional arguments", b.Name())
		}
		return h.addPrimitive(kind)
	}
}

func (h *handle) primitiveAdd(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var kind string
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "kind", &kind); err != nil {
		return nil, err
	}
	p, err := entities.ParsePrimitive(kind)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", b.Name(), err)
	}
	return h.addPrimitive(p)
}

func (h *handle) notify(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var message string
	level := string(entities.LevelInfo)
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "message", &message, "level?", &level); err != nil {
		return nil, err
	}
	return h.send(level, message)
}

// report follows the operator report convention: the level is a set such as
// {'INFO'} or a plain string.
func (h *handle) report(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var levels starlark.Value
	var message string
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "type", &levels, "message", &message); err != nil {
		return nil, err
	}

	level := string(entities.LevelInfo)
	switch v := levels.(type) {
	case starlark.String:
		level = string(v)
	case *starlark.Set:
		iter := v.Iterate()
		var elem starlark.Value
		if iter.Next(&elem) {
			if s, ok := starlark.AsString(elem); ok {
				level = s
			}
		}
		iter.Done()
	default:
		return nil, fmt.Errorf("%s: type must be a set or string, got %s", b.Name(), levels.Type())
	}
	return h.send(level, message)
}

func (h *handle) send(level, message string) (starlark.Value, error) {
	_, err := hostfuncs.Call[hostfuncs.NotifyRequest, hostfuncs.NotifyResponse](
		hostfuncs.WithCaller(h.ctx, "script"), h.inv, hostfuncs.FuncNotify,
		hostfuncs.NotifyRequest{Level: strings.ToUpper(level), Message: message})
	if err != nil {
		return nil, err
	}
	return starlark.None, nil
}

// finished mirrors the host operator result set {'FINISHED'}.
func finished() *starlark.Set {
	s := new(starlark.Set)
	_ = s.Insert(starlark.String("FINISHED"))
	return s
}

// sceneValue is bpy.context.scene. Its objects attribute queries the host
// on every access.
type sceneValue struct{ h *handle }

var _ starlark.HasAttrs = (*sceneValue)(nil)

func (s *sceneValue) String() string        { return "bpy.data.scenes['Scene']" }
func (s *sceneValue) Type() string          { return "Scene" }
func (s *sceneValue) Freeze()               {}
func (s *sceneValue) Truth() starlark.Bool  { return starlark.True }
func (s *sceneValue) Hash() (uint32, error) { return 0, fmt.Errorf("unhashable type: %s", s.Type()) }
func (s *sceneValue) AttrNames() []string   { return []string{"objects"} }

func (s *sceneValue) Attr(name string) (starlark.Value, error) {
	if name == "objects" {
		return s.h.objects()
	}
	return nil, nil
}

// windowManagerValue is bpy.context.window_manager.
type windowManagerValue struct{ h *handle }

var _ starlark.HasSetField = (*windowManagerValue)(nil)

func (w *windowManagerValue) String() string        { return "bpy.data.window_managers['WinMan']" }
func (w *windowManagerValue) Type() string          { return "WindowManager" }
func (w *windowManagerValue) Freeze()               {}
func (w *windowManagerValue) Truth() starlark.Bool  { return starlark.True }
func (w *windowManagerValue) Hash() (uint32, error) { return 0, fmt.Errorf("unhashable type: %s", w.Type()) }
func (w *windowManagerValue) AttrNames() []string   { return []string{"clipboard"} }

func (w *windowManagerValue) Attr(name string) (starlark.Value, error) {
	if name != "clipboard" {
		return nil, nil
	}
	resp, err := hostfuncs.Call[hostfuncs.ClipboardGetRequest, hostfuncs.ClipboardResponse](
		hostfuncs.WithCaller(w.h.ctx, "script"), w.h.inv, hostfuncs.FuncClipboardGet, hostfuncs.ClipboardGetRequest{})
	if err != nil {
		return nil, err
	}
	return starlark.String(resp.Text), nil
}

func (w *windowManagerValue) SetField(name string, val starlark.Value) error {
	if name != "clipboard" {
		return starlark.NoSuchAttrError(fmt.Sprintf("%s has no .%s field", w.Type(), name))
	}
	text, ok := starlark.AsString(val)
	if !ok {
		return fmt.Errorf("clipboard: got %s, want string", val.Type())
	}
	_, err := hostfuncs.Call[hostfuncs.ClipboardSetRequest, hostfuncs.ClipboardResponse](
		hostfuncs.WithCaller(w.h.ctx, "script"), w.h.inv, hostfuncs.FuncClipboardSet, hostfuncs.ClipboardSetRequest{Text: text})
	return err
}

// objectValue is a scene object referenced by name.
type objectValue string

var _ starlark.HasAttrs = objectValue("")

func (o objectValue) String() string       { return fmt.Sprintf("bpy.data.objects[%s]", pyQuote(string(o))) }
func (o objectValue) Type() string         { return "Object" }
func (o objectValue) Freeze()              {}
func (o objectValue) Truth() starlark.Bool { return starlark.True }
func (o objectValue) AttrNames() []string  { return []string{"name"} }

func (o objectValue) Hash() (uint32, error) {
	h := fnv.New32a()
	_, _ = h.Write([]byte(o))
	return h.Sum32(), nil
}

func (o objectValue) Attr(name string) (starlark.Value, error) {
	if name == "name" {
		return starlark.String(string(o)), nil
	}
	return nil, nil
}
