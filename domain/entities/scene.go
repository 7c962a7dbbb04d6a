package entities

import "fmt"

// Primitive names a mesh primitive the host can insert into the scene.
type Primitive string

const (
	PrimitiveCube     Primitive = "cube"
	PrimitivePlane    Primitive = "plane"
	PrimitiveSphere   Primitive = "uv_sphere"
	PrimitiveCylinder Primitive = "cylinder"
	PrimitiveCone     Primitive = "cone"
	PrimitiveTorus    Primitive = "torus"
)

var knownPrimitives = map[Primitive]string{
	PrimitiveCube:     "Cube",
	PrimitivePlane:    "Plane",
	PrimitiveSphere:   "Sphere",
	PrimitiveCylinder: "Cylinder",
	PrimitiveCone:     "Cone",
	PrimitiveTorus:    "Torus",
}

// ParsePrimitive validates a primitive name.
func ParsePrimitive(s string) (Primitive, error) {
	p := Primitive(s)
	if _, ok := knownPrimitives[p]; !ok {
		return "", fmt.Errorf("unknown primitive %q", s)
	}
	return p, nil
}

// BaseName returns the default object name the host gives a new primitive.
func (p Primitive) BaseName() string {
	if name, ok := knownPrimitives[p]; ok {
		return name
	}
	return string(p)
}

// NotificationLevel is the severity of a host notification banner.
type NotificationLevel string

const (
	LevelInfo    NotificationLevel = "INFO"
	LevelWarning NotificationLevel = "WARNING"
	LevelError   NotificationLevel = "ERROR"
)

// ParseNotificationLevel accepts the host's report levels.
func ParseNotificationLevel(s string) (NotificationLevel, error) {
	switch l := NotificationLevel(s); l {
	case LevelInfo, LevelWarning, LevelError:
		return l, nil
	default:
		return "", fmt.Errorf("unknown notification level %q", s)
	}
}

// Notification is a banner shown by the host UI.
type Notification struct {
	Level   NotificationLevel `json:"level"`
	Message string            `json:"message"`
}
