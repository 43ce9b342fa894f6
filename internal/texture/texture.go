// Package texture provides image decoding and texture loading utilities.
package texture

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/png" // Register PNG decoder

	"golang.org/x/image/draw"

	"github.com/Faultbox/blockmodel/internal/assets"
)

// ErrTextureLoad is returned when a texture file is missing or undecodable.
// Conversion treats it as recoverable.
var ErrTextureLoad = errors.New("texture load failed")

// Extension is appended to texture path fragments to form file names.
const Extension = ".png"

// Loader loads a texture image by its path fragment (without extension).
type Loader interface {
	Load(path string) (*image.RGBA, error)
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(path string) (*image.RGBA, error)

// Load calls f(path).
func (f LoaderFunc) Load(path string) (*image.RGBA, error) {
	return f(path)
}

// AssetLoader loads PNG textures through an asset manager.
type AssetLoader struct {
	assets *assets.Manager
}

// NewAssetLoader creates a loader backed by the given asset manager.
func NewAssetLoader(m *assets.Manager) *AssetLoader {
	return &AssetLoader{assets: m}
}

// NewDirLoader creates a loader that reads textures from a single directory.
func NewDirLoader(dir string) *AssetLoader {
	return NewAssetLoader(assets.NewManager(dir))
}

// Load reads and decodes <root>/<path>.png.
func (l *AssetLoader) Load(path string) (*image.RGBA, error) {
	data, err := l.assets.Load(path + Extension)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTextureLoad, err)
	}
	img, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrTextureLoad, path, err)
	}
	return img, nil
}

// Decode decodes an encoded image into RGBA with a zero origin.
func Decode(data []byte) (*image.RGBA, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return ImageToRGBA(img), nil
}

// ImageToRGBA converts any image.Image to *image.RGBA with bounds at the origin.
func ImageToRGBA(img image.Image) *image.RGBA {
	bounds := img.Bounds()
	if rgba, ok := img.(*image.RGBA); ok && bounds.Min == (image.Point{}) {
		return rgba
	}

	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)
	return rgba
}

// Checkerboard fills r with a two-color checkerboard: a where (x+y) is even,
// b otherwise. Coordinates are absolute image coordinates.
func Checkerboard(img *image.RGBA, r image.Rectangle, a, b color.RGBA) {
	r = r.Intersect(img.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if (x+y)%2 == 0 {
				img.SetRGBA(x, y, a)
			} else {
				img.SetRGBA(x, y, b)
			}
		}
	}
}
