// Package atlas packs model textures into a single fixed-size bitmap.
package atlas

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/image/draw"

	"github.com/Faultbox/blockmodel/internal/texture"
	"github.com/Faultbox/blockmodel/pkg/formats"
)

// Atlas errors.
var (
	ErrAtlasExhausted = errors.New("atlas exhausted")
	ErrInvalidConfig  = errors.New("invalid atlas config")
)

// Default canvas dimensions.
const (
	DefaultSize         = 2048
	DefaultFallbackSize = 16
)

// Fallback checkerboard colors.
var (
	FallbackPrimary   = color.RGBA{R: 255, G: 0, B: 255, A: 255}
	FallbackSecondary = color.RGBA{R: 0, G: 0, B: 0, A: 255}
)

// aliasSigil marks a texture map value that refers to another texture id.
const aliasSigil = "#"

// Config holds atlas dimensions.
type Config struct {
	Size         int // Canvas width and height in pixels
	FallbackSize int // Side of the fallback checkerboard tile
}

// DefaultConfig returns the standard 2048x2048 atlas with a 16x16 fallback.
func DefaultConfig() Config {
	return Config{
		Size:         DefaultSize,
		FallbackSize: DefaultFallbackSize,
	}
}

// Validate checks that the dimensions are usable.
func (c Config) Validate() error {
	if c.Size <= 0 {
		return fmt.Errorf("%w: size must be positive, got %d", ErrInvalidConfig, c.Size)
	}
	if c.FallbackSize <= 0 {
		return fmt.Errorf("%w: fallback size must be positive, got %d", ErrInvalidConfig, c.FallbackSize)
	}
	return nil
}

// Atlas is a packed texture bitmap plus the id to rectangle mapping.
type Atlas struct {
	Image       *image.RGBA     // Size x Size RGBA canvas
	Size        int             // Canvas side in pixels
	Fallback    Rect            // Checkerboard used for unresolved textures
	Allocations map[string]Rect // Texture id -> region (aliases included)
	Order       []string        // Ids placed on the canvas, in placement order
	Missing     []string        // Ids that could not be loaded
	Utilization float64         // Fraction of the canvas in use
}

// Lookup returns the region for a texture id.
func (a *Atlas) Lookup(id string) (Rect, bool) {
	r, ok := a.Allocations[id]
	return r, ok
}

// Resolve returns the region for a texture id, or the fallback region.
func (a *Atlas) Resolve(id string) Rect {
	if r, ok := a.Allocations[id]; ok {
		return r
	}
	return a.Fallback
}

// Build packs the model's textures into a new atlas.
//
// The fallback checkerboard is always allocated first. Textures are then loaded
// and placed in declaration order. A texture that fails to load is logged and
// left unmapped; a texture that does not fit aborts the build.
func Build(textures *formats.TextureMap, loader texture.Loader, cfg Config, log *zap.Logger) (*Atlas, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if loader == nil {
		return nil, fmt.Errorf("%w: nil texture loader", ErrInvalidConfig)
	}
	if log == nil {
		log = zap.NewNop()
	}

	alloc := NewAllocator(cfg.Size, cfg.Size)
	a := &Atlas{
		Image:       image.NewRGBA(image.Rect(0, 0, cfg.Size, cfg.Size)),
		Size:        cfg.Size,
		Allocations: make(map[string]Rect, textures.Len()),
	}

	fallback, ok := alloc.Allocate(cfg.FallbackSize, cfg.FallbackSize)
	if !ok {
		return nil, fmt.Errorf("%w: unable to allocate %dx%d fallback tile", ErrAtlasExhausted, cfg.FallbackSize, cfg.FallbackSize)
	}
	texture.Checkerboard(a.Image, fallback.Image(), FallbackPrimary, FallbackSecondary)
	a.Fallback = fallback

	var aliases []string
	if textures != nil {
		for _, kv := range textures.Order {
			id, path := kv.Key, kv.Value
			if strings.HasPrefix(path, aliasSigil) {
				aliases = append(aliases, id)
				continue
			}

			img, err := loader.Load(StripNamespace(path))
			if err != nil {
				log.Warn("unable to open texture",
					zap.String("texture", id),
					zap.String("path", path),
					zap.Error(err))
				a.Missing = append(a.Missing, id)
				continue
			}

			w, h := img.Bounds().Dx(), img.Bounds().Dy()
			r, ok := alloc.Allocate(w, h)
			if !ok {
				return nil, fmt.Errorf("%w: unable to store %s image (%dx%d) from %s", ErrAtlasExhausted, id, w, h, path)
			}
			draw.Draw(a.Image, r.Image(), img, img.Bounds().Min, draw.Src)
			a.Allocations[id] = r
			a.Order = append(a.Order, id)

			log.Debug("packed texture",
				zap.String("texture", id),
				zap.Int("x", r.Min.X),
				zap.Int("y", r.Min.Y),
				zap.Int("w", w),
				zap.Int("h", h))
		}
	}

	for _, id := range aliases {
		target, ok := resolveAlias(textures, id)
		if !ok {
			log.Warn("unresolved texture alias", zap.String("texture", id))
			a.Missing = append(a.Missing, id)
			continue
		}
		r, ok := a.Allocations[target]
		if !ok {
			a.Missing = append(a.Missing, id)
			continue
		}
		a.Allocations[id] = r
	}

	a.Utilization = alloc.Utilization()
	return a, nil
}

// resolveAlias follows "#id" references to a concrete texture id.
// Dangling references and cycles do not resolve.
func resolveAlias(textures *formats.TextureMap, id string) (string, bool) {
	seen := make(map[string]bool)
	for {
		if seen[id] {
			return "", false
		}
		seen[id] = true

		path, ok := textures.Get(id)
		if !ok {
			return "", false
		}
		if !strings.HasPrefix(path, aliasSigil) {
			return id, true
		}
		id = strings.TrimPrefix(path, aliasSigil)
	}
}

// StripNamespace removes a resource namespace prefix such as "minecraft:".
func StripNamespace(path string) string {
	i := strings.IndexByte(path, ':')
	if i < 0 || strings.ContainsAny(path[:i], `/\`) {
		return path
	}
	return path[i+1:]
}
