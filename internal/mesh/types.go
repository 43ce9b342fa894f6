// Package mesh assembles deduplicated triangle meshes from emitted vertices.
package mesh

import (
	"errors"
	"fmt"
	"image/color"
	gomath "math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/Faultbox/blockmodel/pkg/math"
)

// ErrTooManyVertices is returned when no index width can address every vertex.
var ErrTooManyVertices = errors.New("too many vertices")

// VertexKey identifies a vertex by the raw bit patterns of its coordinates.
// Two vertices are equal only if every float is bit-identical, so 0.0 and -0.0
// are distinct and no epsilon is applied.
type VertexKey struct {
	X, Y, Z uint64
	U, V    uint64
	Color   color.RGBA
}

// NewVertexKey builds a key from vertex attributes.
func NewVertexKey(x, y, z, u, v float64, c color.RGBA) VertexKey {
	return VertexKey{
		X:     gomath.Float64bits(x),
		Y:     gomath.Float64bits(y),
		Z:     gomath.Float64bits(z),
		U:     gomath.Float64bits(u),
		V:     gomath.Float64bits(v),
		Color: c,
	}
}

// Position returns the vertex position.
func (k VertexKey) Position() mgl64.Vec3 {
	return mgl64.Vec3{
		gomath.Float64frombits(k.X),
		gomath.Float64frombits(k.Y),
		gomath.Float64frombits(k.Z),
	}
}

// UV returns the vertex texture coordinates.
func (k VertexKey) UV() (u, v float64) {
	return gomath.Float64frombits(k.U), gomath.Float64frombits(k.V)
}

// IndexWidth is the element size of an index buffer.
type IndexWidth int

const (
	IndexNone IndexWidth = iota // No vertices, no indices
	Index8                      // Up to 255 vertices
	Index16                     // Up to 65535 vertices
	Index32                     // Up to 2^32-1 vertices
)

// String returns a human-readable width name.
func (w IndexWidth) String() string {
	switch w {
	case IndexNone:
		return "none"
	case Index8:
		return "u8"
	case Index16:
		return "u16"
	case Index32:
		return "u32"
	default:
		return fmt.Sprintf("IndexWidth(%d)", int(w))
	}
}

// Bytes returns the size of one index in bytes.
func (w IndexWidth) Bytes() int {
	switch w {
	case Index8:
		return 1
	case Index16:
		return 2
	case Index32:
		return 4
	default:
		return 0
	}
}

// SelectIndexWidth returns the narrowest index width able to address n vertices.
func SelectIndexWidth(n int) (IndexWidth, error) {
	switch {
	case n <= 0:
		return IndexNone, nil
	case n <= gomath.MaxUint8:
		return Index8, nil
	case n <= gomath.MaxUint16:
		return Index16, nil
	case uint64(n) <= gomath.MaxUint32:
		return Index32, nil
	default:
		return IndexNone, fmt.Errorf("%w: %d", ErrTooManyVertices, n)
	}
}

// Indices is an index buffer stored at its selected width.
// Exactly one of U8, U16 or U32 is populated, matching Width.
type Indices struct {
	Width IndexWidth
	U8    []uint8
	U16   []uint16
	U32   []uint32
}

// NewIndices narrows idx to the given width.
func NewIndices(width IndexWidth, idx []uint32) Indices {
	out := Indices{Width: width}
	switch width {
	case Index8:
		out.U8 = make([]uint8, len(idx))
		for i, v := range idx {
			out.U8[i] = uint8(v)
		}
	case Index16:
		out.U16 = make([]uint16, len(idx))
		for i, v := range idx {
			out.U16[i] = uint16(v)
		}
	case Index32:
		out.U32 = append([]uint32(nil), idx...)
	}
	return out
}

// Len returns the number of indices.
func (ix Indices) Len() int {
	switch ix.Width {
	case Index8:
		return len(ix.U8)
	case Index16:
		return len(ix.U16)
	case Index32:
		return len(ix.U32)
	default:
		return 0
	}
}

// At returns the i-th index widened to uint32.
func (ix Indices) At(i int) uint32 {
	switch ix.Width {
	case Index8:
		return uint32(ix.U8[i])
	case Index16:
		return uint32(ix.U16[i])
	default:
		return ix.U32[i]
	}
}

// Mesh holds the final vertex buffers, in first-seen vertex order.
type Mesh struct {
	Positions []mgl64.Vec3
	UVs       []mgl32.Vec2
	Colors    []color.RGBA
	Normals   []mgl32.Vec3
	Tangents  []mgl32.Vec4 // XYZ tangent, W handedness (+1 or -1)
	Indices   Indices
	Bounds    math.Box3
}

// VertexCount returns the number of unique vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Positions)
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return m.Indices.Len() / 3
}

// Triangle returns the vertex indices of triangle t.
func (m *Mesh) Triangle(t int) (a, b, c uint32) {
	return m.Indices.At(3 * t), m.Indices.At(3*t + 1), m.Indices.At(3*t + 2)
}
