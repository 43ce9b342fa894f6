// Package math provides float64 geometry helpers for model conversion.
package math

import (
	"github.com/go-gl/mathgl/mgl64"
)

// RotateX returns a rotation matrix around the global X axis.
// angle is in degrees.
func RotateX(angle float64) mgl64.Mat3 {
	return mgl64.Rotate3DX(mgl64.DegToRad(angle))
}

// RotateY returns a rotation matrix around the global Y axis.
// angle is in degrees.
func RotateY(angle float64) mgl64.Mat3 {
	return mgl64.Rotate3DY(mgl64.DegToRad(angle))
}

// RotateZ returns a rotation matrix around the global Z axis.
// angle is in degrees.
func RotateZ(angle float64) mgl64.Mat3 {
	return mgl64.Rotate3DZ(mgl64.DegToRad(angle))
}

// Pivot rotates points about an origin: R * (p - origin) + origin.
type Pivot struct {
	R      mgl64.Mat3
	Origin mgl64.Vec3
}

// IdentityPivot returns a pivot that leaves points unchanged.
func IdentityPivot() Pivot {
	return Pivot{R: mgl64.Ident3()}
}

// Apply transforms a point.
func (p Pivot) Apply(v mgl64.Vec3) mgl64.Vec3 {
	return p.R.Mul3x1(v.Sub(p.Origin)).Add(p.Origin)
}
