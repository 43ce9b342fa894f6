package export

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/blockmodel/internal/atlas"
	"github.com/Faultbox/blockmodel/internal/convert"
	"github.com/Faultbox/blockmodel/internal/mesh"
	"github.com/Faultbox/blockmodel/internal/texture"
	"github.com/Faultbox/blockmodel/pkg/formats"
)

func quadMesh(t *testing.T) *mesh.Mesh {
	t.Helper()
	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	a := mesh.NewAssembler()
	a.Push(1, 1, 1, 1, 0, white)
	a.Push(1, 1, 0, 1, 0.25, white)
	a.Push(0, 1, 0, 0, 0.25, white)
	a.Push(0, 1, 0, 0, 0.25, white)
	a.Push(0, 1, 1, 0, 0, white)
	a.Push(1, 1, 1, 1, 0, white)
	m, err := a.Finalize()
	require.NoError(t, err)
	return m
}

func linesWithPrefix(s, prefix string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		if strings.HasPrefix(line, prefix) {
			out = append(out, line)
		}
	}
	return out
}

func TestWriteOBJ(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteOBJ(&buf, quadMesh(t), "quad"))
	out := buf.String()

	assert.Len(t, linesWithPrefix(out, "v "), 4)
	assert.Len(t, linesWithPrefix(out, "vt "), 4)
	assert.Len(t, linesWithPrefix(out, "vn "), 4)
	faces := linesWithPrefix(out, "f ")
	require.Len(t, faces, 2)
	assert.Equal(t, "f 1/1/1 2/2/2 3/3/3", faces[0])
	assert.Equal(t, "f 3/3/3 4/4/4 1/1/1", faces[1])

	assert.Contains(t, out, "mtllib quad.mtl\n")
	assert.Contains(t, out, "usemtl quad\n")
	assert.Equal(t, "v 1 1 1 1 1 1", linesWithPrefix(out, "v ")[0])
	assert.Equal(t, "vt 1 0.75", linesWithPrefix(out, "vt ")[1], "V is flipped")
	assert.Equal(t, "vn 0 1 0", linesWithPrefix(out, "vn ")[0])
}

func TestWriteOBJWithoutMaterial(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteOBJ(&buf, quadMesh(t), ""))
	assert.NotContains(t, buf.String(), "mtllib")
	assert.NotContains(t, buf.String(), "usemtl")
}

func TestWriteMTL(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteMTL(&buf, "furnace", "furnace_atlas.png"))
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "newmtl furnace\n"))
	assert.Contains(t, out, "map_Kd furnace_atlas.png\n")
}

func TestSavePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "out.png")
	img := image.NewRGBA(image.Rect(0, 0, 4, 2))
	img.SetRGBA(1, 1, color.RGBA{R: 10, G: 20, B: 30, A: 255})

	require.NoError(t, SavePNG(path, img))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	decoded, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, img.Bounds(), decoded.Bounds())
	assert.Equal(t, color.RGBA{R: 10, G: 20, B: 30, A: 255}, texture.ImageToRGBA(decoded).RGBAAt(1, 1))
}

func TestSaveOBJ(t *testing.T) {
	tm := formats.NewTextureMap()
	tm.Set("top", "block/top")
	m := &formats.Model{
		Textures: tm,
		Elements: []formats.Element{{
			From:  [3]float64{0, 0, 0},
			To:    [3]float64{16, 16, 16},
			Faces: formats.Faces{Up: &formats.Face{UV: [4]float64{0, 0, 16, 16}, Texture: "#top"}},
		}},
	}
	loader := texture.LoaderFunc(func(string) (*image.RGBA, error) {
		return image.NewRGBA(image.Rect(0, 0, 16, 16)), nil
	})
	res, err := convert.New(convert.WithAtlas(atlas.Config{Size: 64, FallbackSize: 16})).Convert(m, loader)
	require.NoError(t, err)

	dir := filepath.Join(t.TempDir(), "out")
	files, err := SaveOBJ(dir, "top", res)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "top.obj"), files.OBJ)
	assert.Equal(t, filepath.Join(dir, "top.mtl"), files.MTL)
	assert.Equal(t, filepath.Join(dir, "top_atlas.png"), files.Atlas)

	mtl, err := os.ReadFile(files.MTL)
	require.NoError(t, err)
	assert.Contains(t, string(mtl), "map_Kd top_atlas.png")

	obj, err := os.ReadFile(files.OBJ)
	require.NoError(t, err)
	assert.Len(t, linesWithPrefix(string(obj), "f "), 2)

	f, err := os.Open(files.Atlas)
	require.NoError(t, err)
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	require.NoError(t, err)
	assert.Equal(t, 64, cfg.Width)
	assert.Equal(t, 64, cfg.Height)
}
