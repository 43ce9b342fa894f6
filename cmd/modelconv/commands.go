package main

import (
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/blockmodel/internal/atlas"
	"github.com/Faultbox/blockmodel/internal/config"
	"github.com/Faultbox/blockmodel/internal/convert"
	"github.com/Faultbox/blockmodel/internal/export"
	"github.com/Faultbox/blockmodel/internal/logger"
	"github.com/Faultbox/blockmodel/internal/texture"
	"github.com/Faultbox/blockmodel/pkg/formats"
)

// errOutputExists is returned when an output file exists and overwrite is off.
var errOutputExists = errors.New("output file exists (use -overwrite)")

func newConverter(cfg *config.Config) *convert.Converter {
	return convert.New(
		convert.WithAtlas(cfg.AtlasSettings()),
		convert.WithReferenceTexels(cfg.Atlas.ReferenceTexels),
		convert.WithLogger(logger.Named("convert")),
	)
}

// baseName strips directories and the .json extension from a model path.
func baseName(path string) string {
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}

func checkOverwrite(cfg *config.Config, paths ...string) error {
	if cfg.Output.Overwrite {
		return nil
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return fmt.Errorf("%w: %s", errOutputExists, p)
		}
	}
	return nil
}

func cmdInfo(cfg *config.Config, path string, out io.Writer) error {
	m, err := formats.ParseModelFile(path)
	if err != nil {
		return err
	}

	manager := newConverter(cfg).TextureManager(path, cfg.Textures.Paths...)

	fmt.Fprintf(out, "Model:    %s\n", path)
	if m.Parent != "" {
		fmt.Fprintf(out, "Parent:   %s\n", m.Parent)
	}
	fmt.Fprintf(out, "Elements: %d\n", len(m.Elements))
	fmt.Fprintf(out, "Faces:    %d\n", m.FaceCount())
	fmt.Fprintf(out, "Textures: %d\n", m.TextureCount())

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Texture roots:")
	for _, root := range manager.Roots() {
		fmt.Fprintf(out, "  %s\n", root)
	}

	if m.Textures.Len() > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Textures:")
		for _, kv := range m.Textures.Order {
			status := "alias"
			if !strings.HasPrefix(kv.Value, "#") {
				status = "ok"
				if _, err := manager.Load(texturePath(kv.Value)); err != nil {
					status = "missing"
				}
			}
			fmt.Fprintf(out, "  %-16s %-40s %s\n", kv.Key, kv.Value, status)
		}
	}

	if len(m.Display) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Display:")
		for _, name := range slices.Sorted(maps.Keys(m.Display)) {
			t := m.Display[name]
			fmt.Fprintf(out, "  %-24s rot=%v trans=%v scale=%v\n", name, t.Rotation, t.Translation, t.Scale)
		}
	}
	return nil
}

// texturePath maps a texture map value to its file path relative to a root.
func texturePath(value string) string {
	return atlas.StripNamespace(value) + texture.Extension
}

func cmdConvert(cfg *config.Config, path string, out io.Writer) error {
	base := baseName(path)
	dir := cfg.Output.Dir
	if err := checkOverwrite(cfg,
		filepath.Join(dir, base+export.OBJExt),
		filepath.Join(dir, base+export.MTLExt),
		filepath.Join(dir, base+export.AtlasSuffix),
	); err != nil {
		return err
	}

	res, err := newConverter(cfg).ConvertFile(path, cfg.Textures.Paths...)
	if err != nil {
		return err
	}
	files, err := export.SaveOBJ(dir, base, res)
	if err != nil {
		return err
	}

	logger.Info("converted model",
		zap.String("model", path),
		zap.Int("vertices", res.Mesh.VertexCount()),
		zap.Int("triangles", res.Mesh.TriangleCount()),
		zap.Strings("missing", res.Atlas.Missing))

	fmt.Fprintf(out, "%s -> %s (%d vertices, %d triangles, %s indices)\n",
		path, files.OBJ, res.Mesh.VertexCount(), res.Mesh.TriangleCount(), res.Mesh.Indices.Width)
	return nil
}

func cmdAtlas(cfg *config.Config, path string, out io.Writer) error {
	target := filepath.Join(cfg.Output.Dir, baseName(path)+export.AtlasSuffix)
	if err := checkOverwrite(cfg, target); err != nil {
		return err
	}

	res, err := newConverter(cfg).ConvertFile(path, cfg.Textures.Paths...)
	if err != nil {
		return err
	}
	if err := export.SavePNG(target, res.Atlas.Image); err != nil {
		return err
	}

	fmt.Fprintf(out, "%s -> %s (%d textures, %.1f%% used)\n",
		path, target, len(res.Atlas.Order), res.Atlas.Utilization*100)
	return nil
}

func cmdConfig(cfg *config.Config, args []string, out io.Writer) error {
	if len(args) == 0 {
		if src := cfg.Source(); src != "" {
			fmt.Fprintf(out, "# loaded from %s\n", src)
		}
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return err
		}
		_, err = out.Write(data)
		return err
	}

	if args[0] != "save" || len(args) > 2 {
		fmt.Fprintln(out, "Usage: modelconv [flags] config [save [file]]")
		return errUsage
	}

	var (
		path string
		err  error
	)
	if len(args) == 2 {
		path = args[1]
		err = cfg.SaveTo(path)
	} else {
		path, err = cfg.Save()
	}
	if err != nil {
		return err
	}
	logger.Info("saved config", zap.String("path", path))
	fmt.Fprintf(out, "Saved config to %s\n", path)
	return nil
}
