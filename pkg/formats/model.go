package formats

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Faultbox/blockmodel/pkg/math"
)

// ErrInvalidModel is returned for documents that do not match the model shape.
var ErrInvalidModel = errors.New("invalid model document")

// Rotation is a whole-element rotation about a pivot point.
type Rotation struct {
	Angle  float64    `json:"angle"`  // Degrees, continuous
	Axis   Axis       `json:"axis"`   // Global rotation axis
	Origin [3]float64 `json:"origin"` // Pivot point
}

// Face is one textured side of an element.
type Face struct {
	UV       [4]float64 `json:"uv"`                 // u0, v0, u1, v1 in texels
	Texture  string     `json:"texture"`            // "#id" reference into Model.Textures
	Rotation int        `json:"rotation,omitempty"` // UV rotation: 0, 90, 180 or 270
	Cullface *Direction `json:"cullface,omitempty"` // Neighbor culling hint (recorded only)
}

// Faces holds the optional face for each direction.
type Faces struct {
	North *Face `json:"north,omitempty"`
	East  *Face `json:"east,omitempty"`
	South *Face `json:"south,omitempty"`
	West  *Face `json:"west,omitempty"`
	Up    *Face `json:"up,omitempty"`
	Down  *Face `json:"down,omitempty"`
}

// Get returns the face for a direction, or nil if it is disabled.
func (f *Faces) Get(d Direction) *Face {
	switch d {
	case North:
		return f.North
	case East:
		return f.East
	case South:
		return f.South
	case West:
		return f.West
	case Up:
		return f.Up
	case Down:
		return f.Down
	default:
		return nil
	}
}

// Each calls fn for every enabled face in emission order.
// Iteration stops at the first error.
func (f *Faces) Each(fn func(Direction, *Face) error) error {
	for _, d := range AllDirections {
		face := f.Get(d)
		if face == nil {
			continue
		}
		if err := fn(d, face); err != nil {
			return err
		}
	}
	return nil
}

// Element is an axis-aligned cuboid with optional faces and rotation.
type Element struct {
	From     [3]float64 `json:"from"`
	To       [3]float64 `json:"to"`
	Faces    Faces      `json:"faces"`
	Rotation *Rotation  `json:"rotation,omitempty"`
}

// FacesEnabled returns the number of faces the element declares.
func (e *Element) FacesEnabled() int {
	count := 0
	for _, d := range AllDirections {
		if e.Faces.Get(d) != nil {
			count++
		}
	}
	return count
}

// Box returns the element's min and max corners.
// From and To are corners in any order.
func (e *Element) Box() (min, max [3]float64) {
	for i := 0; i < 3; i++ {
		min[i], max[i] = math.MinMax(e.From[i], e.To[i])
	}
	return min, max
}

// Transform is a display preset transform.
type Transform struct {
	Rotation    [3]float64 `json:"rotation"`
	Translation [3]float64 `json:"translation"`
	Scale       [3]float64 `json:"scale"`
}

// Display maps preset names (e.g. "firstperson_righthand") to transforms.
// Presets are carried through parsing but never applied to geometry.
type Display map[string]Transform

// Display preset names.
const (
	DisplayFirstPersonRightHand = "firstperson_righthand"
	DisplayFirstPersonLeftHand  = "firstperson_lefthand"
	DisplayThirdPersonRightHand = "thirdperson_righthand"
	DisplayThirdPersonLeftHand  = "thirdperson_lefthand"
	DisplayGUI                  = "gui"
	DisplayHead                 = "head"
	DisplayGround               = "ground"
	DisplayFixed                = "fixed"
)

// Model is a parsed block/item model document.
type Model struct {
	Parent   string      `json:"parent"`
	Display  Display     `json:"display,omitempty"`
	Textures *TextureMap `json:"textures"`
	Elements []Element   `json:"elements"`
}

// FaceCount returns the total number of enabled faces across all elements.
func (m *Model) FaceCount() int {
	total := 0
	for i := range m.Elements {
		total += m.Elements[i].FacesEnabled()
	}
	return total
}

// TextureCount returns the number of declared textures.
func (m *Model) TextureCount() int {
	return m.Textures.Len()
}

func missingField(object, field string) error {
	return fmt.Errorf("%w: %s is missing required field %q", ErrInvalidModel, object, field)
}

// UnmarshalJSON decodes a model, rejecting documents without required fields.
func (m *Model) UnmarshalJSON(data []byte) error {
	var raw struct {
		Parent   *string     `json:"parent"`
		Display  Display     `json:"display"`
		Textures *TextureMap `json:"textures"`
		Elements *[]Element  `json:"elements"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch {
	case raw.Parent == nil:
		return missingField("model", "parent")
	case raw.Textures == nil:
		return missingField("model", "textures")
	case raw.Elements == nil:
		return missingField("model", "elements")
	}
	*m = Model{
		Parent:   *raw.Parent,
		Display:  raw.Display,
		Textures: raw.Textures,
		Elements: *raw.Elements,
	}
	return nil
}

// UnmarshalJSON decodes an element, rejecting documents without required fields.
func (e *Element) UnmarshalJSON(data []byte) error {
	var raw struct {
		From     *[3]float64 `json:"from"`
		To       *[3]float64 `json:"to"`
		Faces    *Faces      `json:"faces"`
		Rotation *Rotation   `json:"rotation"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch {
	case raw.From == nil:
		return missingField("element", "from")
	case raw.To == nil:
		return missingField("element", "to")
	case raw.Faces == nil:
		return missingField("element", "faces")
	}
	*e = Element{
		From:     *raw.From,
		To:       *raw.To,
		Faces:    *raw.Faces,
		Rotation: raw.Rotation,
	}
	return nil
}

// UnmarshalJSON decodes a face, rejecting documents without required fields.
// A missing rotation defaults to 0.
func (f *Face) UnmarshalJSON(data []byte) error {
	var raw struct {
		UV       *[4]float64 `json:"uv"`
		Texture  *string     `json:"texture"`
		Rotation int         `json:"rotation"`
		Cullface *Direction  `json:"cullface"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch {
	case raw.UV == nil:
		return missingField("face", "uv")
	case raw.Texture == nil:
		return missingField("face", "texture")
	}
	*f = Face{
		UV:       *raw.UV,
		Texture:  *raw.Texture,
		Rotation: raw.Rotation,
		Cullface: raw.Cullface,
	}
	return nil
}

// UnmarshalJSON decodes a rotation, rejecting documents without required fields.
func (r *Rotation) UnmarshalJSON(data []byte) error {
	var raw struct {
		Angle  *float64    `json:"angle"`
		Axis   *Axis       `json:"axis"`
		Origin *[3]float64 `json:"origin"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch {
	case raw.Angle == nil:
		return missingField("rotation", "angle")
	case raw.Axis == nil:
		return missingField("rotation", "axis")
	case raw.Origin == nil:
		return missingField("rotation", "origin")
	}
	*r = Rotation{Angle: *raw.Angle, Axis: *raw.Axis, Origin: *raw.Origin}
	return nil
}
