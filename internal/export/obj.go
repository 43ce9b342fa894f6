package export

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/Faultbox/blockmodel/internal/convert"
	"github.com/Faultbox/blockmodel/internal/mesh"
)

// File name suffixes written by SaveOBJ.
const (
	OBJExt      = ".obj"
	MTLExt      = ".mtl"
	AtlasSuffix = "_atlas.png"
)

// Files lists the paths written by SaveOBJ.
type Files struct {
	OBJ   string
	MTL   string
	Atlas string
}

// WriteOBJ writes m as a Wavefront OBJ referencing material mtlName.
// Vertex colors follow positions on each "v" line. Texture V is flipped to
// OBJ's bottom-left origin. An empty mtlName omits the material statements.
func WriteOBJ(w io.Writer, m *mesh.Mesh, mtlName string) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "# vertices %d, triangles %d\n", m.VertexCount(), m.TriangleCount())
	if mtlName != "" {
		fmt.Fprintf(bw, "mtllib %s%s\n", mtlName, MTLExt)
	}

	for i, p := range m.Positions {
		c := m.Colors[i]
		fmt.Fprintf(bw, "v %g %g %g %g %g %g\n", p[0], p[1], p[2],
			float32(c.R)/255, float32(c.G)/255, float32(c.B)/255)
	}
	for _, uv := range m.UVs {
		fmt.Fprintf(bw, "vt %g %g\n", uv[0], 1-uv[1])
	}
	for _, n := range m.Normals {
		fmt.Fprintf(bw, "vn %g %g %g\n", n[0], n[1], n[2])
	}

	if mtlName != "" {
		fmt.Fprintf(bw, "usemtl %s\n", mtlName)
	}
	for t := 0; t < m.TriangleCount(); t++ {
		a, b, c := m.Triangle(t)
		// OBJ indices are 1-based
		a, b, c = a+1, b+1, c+1
		fmt.Fprintf(bw, "f %d/%d/%d %d/%d/%d %d/%d/%d\n", a, a, a, b, b, b, c, c, c)
	}

	return bw.Flush()
}

// WriteMTL writes a single unlit material sampling the given texture file.
func WriteMTL(w io.Writer, name, texture string) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "newmtl %s\n", name)
	fmt.Fprintln(bw, "Ka 1 1 1")
	fmt.Fprintln(bw, "Kd 1 1 1")
	fmt.Fprintln(bw, "Ks 0 0 0")
	fmt.Fprintln(bw, "d 1")
	fmt.Fprintln(bw, "illum 1")
	fmt.Fprintf(bw, "map_Kd %s\n", texture)
	return bw.Flush()
}

// SaveOBJ writes <base>.obj, <base>.mtl and <base>_atlas.png into dir.
func SaveOBJ(dir, base string, res *convert.Result) (Files, error) {
	files := Files{
		OBJ:   filepath.Join(dir, base+OBJExt),
		MTL:   filepath.Join(dir, base+MTLExt),
		Atlas: filepath.Join(dir, base+AtlasSuffix),
	}

	if err := SavePNG(files.Atlas, res.Atlas.Image); err != nil {
		return files, fmt.Errorf("saving atlas: %w", err)
	}
	if err := writeFile(files.MTL, func(w io.Writer) error {
		return WriteMTL(w, base, filepath.Base(files.Atlas))
	}); err != nil {
		return files, fmt.Errorf("saving material: %w", err)
	}
	if err := writeFile(files.OBJ, func(w io.Writer) error {
		return WriteOBJ(w, res.Mesh, base)
	}); err != nil {
		return files, fmt.Errorf("saving mesh: %w", err)
	}
	return files, nil
}

func writeFile(path string, fn func(io.Writer) error) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	if err := fn(file); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
