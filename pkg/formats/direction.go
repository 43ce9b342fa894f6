package formats

import (
	"fmt"
	"image/color"
)

// Direction is one of the six cuboid face directions.
type Direction int

const (
	North Direction = iota // -Z
	East                   // +X
	South                  // +Z
	West                   // -X
	Up                     // +Y
	Down                   // -Y
)

// AllDirections lists directions in face emission order.
var AllDirections = [6]Direction{North, East, South, West, Up, Down}

var directionNames = [6]string{"north", "east", "south", "west", "up", "down"}

// String returns the lowercase document name of the direction.
func (d Direction) String() string {
	if d < North || d > Down {
		return fmt.Sprintf("Direction(%d)", int(d))
	}
	return directionNames[d]
}

// ParseDirection converts a document name to a Direction.
func ParseDirection(s string) (Direction, error) {
	for i, name := range directionNames {
		if name == s {
			return Direction(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown direction %q", ErrInvalidModel, s)
}

// MarshalText implements encoding.TextMarshaler.
func (d Direction) MarshalText() ([]byte, error) {
	if d < North || d > Down {
		return nil, fmt.Errorf("%w: invalid direction %d", ErrInvalidModel, int(d))
	}
	return []byte(directionNames[d]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Direction) UnmarshalText(text []byte) error {
	parsed, err := ParseDirection(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Shading returns the fixed brightness multiplier for faces in this direction.
// These are the block-game side constants, not a lighting model.
func (d Direction) Shading() float32 {
	switch d {
	case North, South:
		return 0.8
	case East, West:
		return 0.6
	case Up:
		return 1.0
	case Down:
		return 0.5
	default:
		return 1.0
	}
}

// ShadingColor returns the shading multiplier as an opaque sRGB gray.
func (d Direction) ShadingColor() color.RGBA {
	g := uint8(d.Shading() * 255)
	return color.RGBA{R: g, G: g, B: g, A: 255}
}

// Axis is a global rotation axis.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// String returns the lowercase document name of the axis.
func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	default:
		return fmt.Sprintf("Axis(%d)", int(a))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (a Axis) MarshalText() ([]byte, error) {
	if a < AxisX || a > AxisZ {
		return nil, fmt.Errorf("%w: invalid axis %d", ErrInvalidModel, int(a))
	}
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Axis) UnmarshalText(text []byte) error {
	switch string(text) {
	case "x":
		*a = AxisX
	case "y":
		*a = AxisY
	case "z":
		*a = AxisZ
	default:
		return fmt.Errorf("%w: unknown axis %q", ErrInvalidModel, string(text))
	}
	return nil
}
