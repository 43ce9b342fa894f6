package mesh

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
)

// Degenerate vector threshold.
const epsilon = 1e-12

// ComputeNormals returns one unit normal per vertex: the normalized sum of the
// unit normals of every triangle referencing it. Triangles are counter-clockwise
// when seen from outside. Vertices with no usable triangle get +Y.
func ComputeNormals(positions []mgl64.Vec3, indices []uint32) []mgl32.Vec3 {
	sum := make([]mgl64.Vec3, len(positions))
	for t := 0; t+2 < len(indices); t += 3 {
		i0, i1, i2 := indices[t], indices[t+1], indices[t+2]
		p0 := positions[i0]
		e1 := positions[i1].Sub(p0)
		e2 := positions[i2].Sub(p0)
		n := e1.Cross(e2)
		if n.Len() < epsilon {
			continue
		}
		n = n.Normalize()
		sum[i0] = sum[i0].Add(n)
		sum[i1] = sum[i1].Add(n)
		sum[i2] = sum[i2].Add(n)
	}

	out := make([]mgl32.Vec3, len(positions))
	for i, n := range sum {
		out[i] = toVec3(normalizeOr(n, mgl64.Vec3{0, 1, 0}))
	}
	return out
}

// ComputeTangents returns one tangent per vertex aligned with increasing U.
// The tangent is orthogonalized against the vertex normal; W holds the
// handedness of the (tangent, bitangent, normal) frame.
func ComputeTangents(positions []mgl64.Vec3, uvs []mgl32.Vec2, normals []mgl32.Vec3, indices []uint32) []mgl32.Vec4 {
	tan := make([]mgl64.Vec3, len(positions))
	bitan := make([]mgl64.Vec3, len(positions))

	for t := 0; t+2 < len(indices); t += 3 {
		i0, i1, i2 := indices[t], indices[t+1], indices[t+2]
		e1 := positions[i1].Sub(positions[i0])
		e2 := positions[i2].Sub(positions[i0])
		du1 := float64(uvs[i1][0] - uvs[i0][0])
		dv1 := float64(uvs[i1][1] - uvs[i0][1])
		du2 := float64(uvs[i2][0] - uvs[i0][0])
		dv2 := float64(uvs[i2][1] - uvs[i0][1])

		det := du1*dv2 - du2*dv1
		if det > -epsilon && det < epsilon {
			continue
		}
		r := 1 / det
		sdir := e1.Mul(dv2).Sub(e2.Mul(dv1)).Mul(r)
		tdir := e2.Mul(du1).Sub(e1.Mul(du2)).Mul(r)
		for _, i := range [3]uint32{i0, i1, i2} {
			tan[i] = tan[i].Add(sdir)
			bitan[i] = bitan[i].Add(tdir)
		}
	}

	out := make([]mgl32.Vec4, len(positions))
	for i := range positions {
		n := toVec64(normals[i])
		// Gram-Schmidt
		t := tan[i].Sub(n.Mul(n.Dot(tan[i])))
		t = normalizeOr(t, perpendicular(n))
		w := 1.0
		if n.Cross(t).Dot(bitan[i]) < 0 {
			w = -1
		}
		out[i] = mgl32.Vec4{float32(t[0]), float32(t[1]), float32(t[2]), float32(w)}
	}
	return out
}

// perpendicular returns a unit vector orthogonal to unit vector n.
func perpendicular(n mgl64.Vec3) mgl64.Vec3 {
	axis := mgl64.Vec3{1, 0, 0}
	if n[0] > 0.9 || n[0] < -0.9 {
		axis = mgl64.Vec3{0, 1, 0}
	}
	return normalizeOr(axis.Sub(n.Mul(n.Dot(axis))), axis)
}

func normalizeOr(v, fallback mgl64.Vec3) mgl64.Vec3 {
	l := v.Len()
	if l < epsilon {
		return fallback
	}
	return v.Mul(1 / l)
}

func toVec3(v mgl64.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{float32(v[0]), float32(v[1]), float32(v[2])}
}

func toVec64(v mgl32.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{float64(v[0]), float64(v[1]), float64(v[2])}
}
