package convert

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/Faultbox/blockmodel/internal/mesh"
	"github.com/Faultbox/blockmodel/pkg/formats"
	"github.com/Faultbox/blockmodel/pkg/math"
)

// corner selects the min (0) or max (1) coordinate of a box on each axis.
type corner [3]uint8

// faceCorners lists corners A, B, C, D of each box face, counter-clockwise
// seen from outside. Indexed by formats.Direction.
var faceCorners = [6][4]corner{
	formats.North: {{0, 0, 0}, {0, 1, 0}, {1, 1, 0}, {1, 0, 0}},
	formats.East:  {{1, 0, 0}, {1, 1, 0}, {1, 1, 1}, {1, 0, 1}},
	formats.South: {{1, 0, 1}, {1, 1, 1}, {0, 1, 1}, {0, 0, 1}},
	formats.West:  {{0, 0, 1}, {0, 1, 1}, {0, 1, 0}, {0, 0, 0}},
	formats.Up:    {{1, 1, 1}, {1, 1, 0}, {0, 1, 0}, {0, 1, 1}},
	formats.Down:  {{1, 0, 0}, {1, 0, 1}, {0, 0, 1}, {0, 0, 0}},
}

// quadOrder is the corner sequence of the two triangles of a face.
var quadOrder = [6]int{0, 1, 2, 2, 3, 0}

// Emitter turns cuboid elements into triangles on an assembler.
type Emitter struct {
	uv  *UVResolver
	asm *mesh.Assembler
}

// NewEmitter creates an emitter writing into asm.
func NewEmitter(uv *UVResolver, asm *mesh.Assembler) *Emitter {
	return &Emitter{uv: uv, asm: asm}
}

// EmitElement emits every enabled face of el as two triangles.
// Faces are emitted north, east, south, west, up, down.
func (e *Emitter) EmitElement(el *formats.Element) error {
	p0, p1 := el.Box()
	box := [2]mgl64.Vec3{p0, p1}

	pivot, rotated := elementPivot(el.Rotation)

	return el.Faces.Each(func(dir formats.Direction, face *formats.Face) error {
		swap, uv, err := e.uv.Resolve(face)
		if err != nil {
			return err
		}
		u0, v0, u1, v1 := uv[0], uv[1], uv[2], uv[3]

		var uvs [4][2]float64
		if swap {
			uvs = [4][2]float64{{u1, v0}, {u0, v0}, {u0, v1}, {u1, v1}}
		} else {
			uvs = [4][2]float64{{u1, v0}, {u1, v1}, {u0, v1}, {u0, v0}}
		}

		c := dir.ShadingColor()
		corners := faceCorners[dir]
		for _, i := range quadOrder {
			sel := corners[i]
			p := mgl64.Vec3{box[sel[0]][0], box[sel[1]][1], box[sel[2]][2]}
			if rotated {
				p = pivot.Apply(p)
			}
			e.asm.Push(p[0], p[1], p[2], uvs[i][0], uvs[i][1], c)
		}
		return nil
	})
}

// elementPivot returns the transform for an element rotation, if any.
func elementPivot(rot *formats.Rotation) (math.Pivot, bool) {
	if rot == nil {
		return math.IdentityPivot(), false
	}
	var r mgl64.Mat3
	switch rot.Axis {
	case formats.AxisX:
		r = math.RotateX(rot.Angle)
	case formats.AxisY:
		r = math.RotateY(rot.Angle)
	default:
		r = math.RotateZ(rot.Angle)
	}
	return math.Pivot{R: r, Origin: mgl64.Vec3(rot.Origin)}, true
}
