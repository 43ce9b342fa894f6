// Package convert turns block model documents into a textured triangle mesh.
//
// A conversion packs the model's textures into an atlas, resolves each face's
// UV rectangle into atlas space, emits two triangles per enabled face and
// deduplicates the resulting vertices. It is all-or-nothing: any fatal error
// discards the partial mesh and atlas.
package convert

import (
	"errors"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/Faultbox/blockmodel/internal/assets"
	"github.com/Faultbox/blockmodel/internal/atlas"
	"github.com/Faultbox/blockmodel/internal/mesh"
	"github.com/Faultbox/blockmodel/internal/texture"
	"github.com/Faultbox/blockmodel/pkg/formats"
)

// Conversion errors.
var (
	ErrMalformedReference  = errors.New("texture reference must start with '#'")
	ErrUnsupportedRotation = errors.New("unsupported face rotation")
	ErrInvalidOption       = errors.New("invalid converter option")
)

// DefaultReferenceTexels is the texel size of one block edge.
const DefaultReferenceTexels = 16

// Converter holds conversion settings. The zero value is not usable; use New.
type Converter struct {
	Atlas           atlas.Config
	ReferenceTexels int
	Log             *zap.Logger
}

// Option configures a Converter.
type Option func(*Converter)

// WithAtlas sets the atlas dimensions.
func WithAtlas(cfg atlas.Config) Option {
	return func(c *Converter) { c.Atlas = cfg }
}

// WithReferenceTexels sets the texel size of one block edge.
func WithReferenceTexels(n int) Option {
	return func(c *Converter) { c.ReferenceTexels = n }
}

// WithLogger sets the logger. A nil logger discards output.
func WithLogger(log *zap.Logger) Option {
	return func(c *Converter) { c.Log = log }
}

// New creates a converter with default settings.
func New(opts ...Option) *Converter {
	c := &Converter{
		Atlas:           atlas.DefaultConfig(),
		ReferenceTexels: DefaultReferenceTexels,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.Log == nil {
		c.Log = zap.NewNop()
	}
	return c
}

// Result is the output of a conversion.
type Result struct {
	Mesh  *mesh.Mesh
	Atlas *atlas.Atlas
}

// Convert builds the atlas and mesh for a model.
func (c *Converter) Convert(m *formats.Model, loader texture.Loader) (*Result, error) {
	if m == nil {
		return nil, fmt.Errorf("%w: nil model", formats.ErrInvalidModel)
	}
	if c.ReferenceTexels <= 0 {
		return nil, fmt.Errorf("%w: reference texels must be positive, got %d", ErrInvalidOption, c.ReferenceTexels)
	}
	if loader == nil {
		return nil, fmt.Errorf("%w: nil texture loader", ErrInvalidOption)
	}
	log := c.logger()

	a, err := atlas.Build(m.Textures, loader, c.Atlas, log)
	if err != nil {
		return nil, fmt.Errorf("building atlas: %w", err)
	}
	log.Debug("atlas built",
		zap.Int("textures", len(a.Order)),
		zap.Int("missing", len(a.Missing)),
		zap.Float64("utilization", a.Utilization))

	asm := mesh.NewAssembler()
	emitter := NewEmitter(NewUVResolver(a, c.ReferenceTexels), asm)
	for i := range m.Elements {
		if err := emitter.EmitElement(&m.Elements[i]); err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
	}

	msh, err := asm.Finalize()
	if err != nil {
		return nil, fmt.Errorf("assembling mesh: %w", err)
	}
	log.Debug("mesh assembled",
		zap.Int("elements", len(m.Elements)),
		zap.Int("vertices", msh.VertexCount()),
		zap.Int("triangles", msh.TriangleCount()),
		zap.Stringer("index_width", msh.Indices.Width))

	return &Result{Mesh: msh, Atlas: a}, nil
}

// TextureManager returns an asset manager searching the model's directory
// first and then extraRoots in order. Roots that are not directories are
// skipped with a warning.
func (c *Converter) TextureManager(modelPath string, extraRoots ...string) *assets.Manager {
	log := c.logger()
	roots := append([]string{filepath.Dir(modelPath)}, extraRoots...)

	// Last added root wins.
	m := assets.NewManager()
	for i := len(roots) - 1; i >= 0; i-- {
		if err := m.AddRoot(roots[i]); err != nil {
			log.Warn("skipping texture root", zap.String("root", roots[i]), zap.Error(err))
		}
	}
	log.Debug("texture roots", zap.Strings("roots", m.Roots()))
	return m
}

// ConvertFile parses a model file and converts it, loading textures relative
// to the model's directory first and then from extraRoots in order.
func (c *Converter) ConvertFile(path string, extraRoots ...string) (*Result, error) {
	m, err := formats.ParseModelFile(path)
	if err != nil {
		return nil, err
	}

	manager := c.TextureManager(path, extraRoots...)
	res, err := c.Convert(m, texture.NewAssetLoader(manager))
	if err != nil {
		return nil, err
	}

	hits, misses := manager.Cache().Stats()
	c.logger().Debug("texture files read",
		zap.String("model", path),
		zap.Int("cache_hits", hits),
		zap.Int("cache_misses", misses))
	return res, nil
}

func (c *Converter) logger() *zap.Logger {
	if c.Log == nil {
		return zap.NewNop()
	}
	return c.Log
}
