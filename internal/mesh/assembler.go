package mesh

import (
	"fmt"
	"image/color"

	"cogentcore.org/core/base/ordmap"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/Faultbox/blockmodel/pkg/math"
)

// Assembler collects emitted vertices into a deduplicated vertex table and an
// index list. Vertices keep the order in which they were first pushed.
type Assembler struct {
	vertices *ordmap.Map[VertexKey, struct{}]
	indices  []uint32
}

// NewAssembler creates an empty assembler.
func NewAssembler() *Assembler {
	return &Assembler{
		vertices: ordmap.New[VertexKey, struct{}](),
	}
}

// Push records one emitted vertex and returns its index. A vertex that is
// bit-identical to an earlier one reuses that vertex's index.
func (a *Assembler) Push(x, y, z, u, v float64, c color.RGBA) uint32 {
	key := NewVertexKey(x, y, z, u, v, c)
	idx, ok := a.vertices.IndexByKeyTry(key)
	if !ok {
		idx = a.vertices.Len()
		a.vertices.Add(key, struct{}{})
	}
	a.indices = append(a.indices, uint32(idx))
	return uint32(idx)
}

// Len returns the number of unique vertices pushed so far.
func (a *Assembler) Len() int {
	return a.vertices.Len()
}

// IndexCount returns the number of pushes so far.
func (a *Assembler) IndexCount() int {
	return len(a.indices)
}

// Finalize flattens the vertex table into a Mesh. Normals and tangents are
// derived from the triangles, and the index buffer is stored at the narrowest
// width that can address every vertex.
func (a *Assembler) Finalize() (*Mesh, error) {
	n := a.vertices.Len()
	width, err := SelectIndexWidth(n)
	if err != nil {
		return nil, err
	}
	if len(a.indices)%3 != 0 {
		return nil, fmt.Errorf("index count %d is not a multiple of 3", len(a.indices))
	}

	m := &Mesh{
		Positions: make([]mgl64.Vec3, n),
		UVs:       make([]mgl32.Vec2, n),
		Colors:    make([]color.RGBA, n),
		Indices:   NewIndices(width, a.indices),
		Bounds:    math.EmptyBox(),
	}
	for i, kv := range a.vertices.Order {
		p := kv.Key.Position()
		u, v := kv.Key.UV()
		m.Positions[i] = p
		m.UVs[i] = mgl32.Vec2{float32(u), float32(v)}
		m.Colors[i] = kv.Key.Color
		m.Bounds.Extend(p)
	}

	m.Normals = ComputeNormals(m.Positions, a.indices)
	m.Tangents = ComputeTangents(m.Positions, m.UVs, m.Normals, a.indices)
	return m, nil
}
