package hostfuncs

import (
	"github.com/scenebridge/scenebridge/domain/ports"
)

// Host function names.
const (
	FuncSceneObjects = "scene_objects"
	FuncAddPrimitive = "add_primitive"
	FuncClipboardGet = "clipboard_get"
	FuncClipboardSet = "clipboard_set"
	FuncNotify       = "notify"
)

// HostFuncBundle is a pre-configured set of related host functions.
// Bundles allow registering multiple handlers at once.
type HostFuncBundle interface {
	// Handlers returns a map of handler names to ByteHandler functions.
	Handlers() map[string]ByteHandler
}

type staticBundle struct {
	handlers map[string]ByteHandler
}

func (b *staticBundle) Handlers() map[string]ByteHandler {
	return b.handlers
}

// SceneBundle returns the scene host functions: scene_objects, add_primitive.
func SceneBundle(scene ports.Scene) HostFuncBundle {
	return &staticBundle{
		handlers: map[string]ByteHandler{
			FuncSceneObjects: NewJSONHandler(SceneObjects(scene)),
			FuncAddPrimitive: NewJSONHandler(AddPrimitive(scene)),
		},
	}
}

// ClipboardBundle returns the clipboard host functions: clipboard_get, clipboard_set.
func ClipboardBundle(clipboard ports.Clipboard) HostFuncBundle {
	return &staticBundle{
		handlers: map[string]ByteHandler{
			FuncClipboardGet: NewJSONHandler(ClipboardGet(clipboard)),
			FuncClipboardSet: NewJSONHandler(ClipboardSet(clipboard)),
		},
	}
}

// UIBundle returns the notification host function: notify.
func UIBundle(notifier ports.Notifier) HostFuncBundle {
	return &staticBundle{
		handlers: map[string]ByteHandler{
			FuncNotify: NewJSONHandler(Notify(notifier)),
		},
	}
}

type compositeBundle struct {
	bundles []HostFuncBundle
}

func (b *compositeBundle) Handlers() map[string]ByteHandler {
	result := make(map[string]ByteHandler)
	for _, bundle := range b.bundles {
		for name, handler := range bundle.Handlers() {
			result[name] = handler
		}
	}
	return result
}

// HostBundle returns every host function bound to a single host.
func HostBundle(host ports.Host) HostFuncBundle {
	return &compositeBundle{
		bundles: []HostFuncBundle{
			SceneBundle(host),
			ClipboardBundle(host),
			UIBundle(host),
		},
	}
}
