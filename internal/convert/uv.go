package convert

import (
	"fmt"
	"strings"

	"github.com/Faultbox/blockmodel/internal/atlas"
	"github.com/Faultbox/blockmodel/pkg/formats"
)

// textureSigil prefixes every face texture reference.
const textureSigil = "#"

// UVResolver maps a face's texel-space UV rectangle into normalized atlas
// coordinates.
type UVResolver struct {
	atlas *atlas.Atlas
	size  float64
	bleed float64
}

// NewUVResolver creates a resolver over a built atlas. referenceTexels is the
// texel size of one block edge and scales the inward bleed.
func NewUVResolver(a *atlas.Atlas, referenceTexels int) *UVResolver {
	size := float64(a.Size)
	return &UVResolver{
		atlas: a,
		size:  size,
		bleed: 1 / (size * float64(referenceTexels)),
	}
}

// Resolve returns the atlas UVs [u0, v0, u1, v1] for a face, and whether the
// face's texture is rotated a quarter turn so that U and V spans are swapped.
// Faces whose texture is not in the atlas sample the fallback tile.
func (r *UVResolver) Resolve(face *formats.Face) (swap bool, uv [4]float64, err error) {
	id, ok := strings.CutPrefix(face.Texture, textureSigil)
	if !ok {
		return false, uv, fmt.Errorf("%w: %q", ErrMalformedReference, face.Texture)
	}
	rect := r.atlas.Resolve(id)

	u0, v1, u1, v0 := face.UV[0], face.UV[1], face.UV[2], face.UV[3]
	switch face.Rotation {
	case 0:
	case 90:
		swap = true
		v0, v1 = v1, v0
	case 180:
		u0, u1 = u1, u0
		v0, v1 = v1, v0
	case 270:
		swap = true
		u0, u1 = u1, u0
	default:
		return false, uv, fmt.Errorf("%w: %d", ErrUnsupportedRotation, face.Rotation)
	}

	minX, minY := float64(rect.Min.X), float64(rect.Min.Y)
	u0 = (minX + u0) / r.size
	v0 = (minY + v0) / r.size
	u1 = (minX + u1) / r.size
	v1 = (minY + v1) / r.size

	u0, u1 = r.inset(u0, u1)
	v0, v1 = r.inset(v0, v1)
	return swap, [4]float64{u0, v0, u1, v1}, nil
}

// inset moves a and b toward each other by the bleed distance.
func (r *UVResolver) inset(a, b float64) (float64, float64) {
	if a < b {
		return a + r.bleed, b - r.bleed
	}
	return a - r.bleed, b + r.bleed
}
