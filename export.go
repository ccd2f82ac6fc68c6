package shellforge

import (
	"errors"
	"io"
	"os"
	"path/filepath"

	"github.com/shellforge/shellforge/render"
	"gonum.org/v1/gonum/spatial/r3"
)

// MeshFormat selects the export encoding for one part.
type MeshFormat int

const (
	FormatSTL MeshFormat = iota // binary STL triangle list
	Format3MF                   // packaged 3MF model
	FormatBoth
)

var meshFormatNames = map[MeshFormat]string{
	FormatSTL:  "stl",
	Format3MF:  "3mf",
	FormatBoth: "both",
}

func (f MeshFormat) String() string               { return enumString(meshFormatNames, f) }
func (f MeshFormat) MarshalText() ([]byte, error) { return []byte(f.String()), nil }
func (f *MeshFormat) UnmarshalText(b []byte) error {
	v, err := enumParse("mesh format", meshFormatNames, b)
	*f = v
	return err
}

// DefaultMeshCells is the octree cell count along the longest axis used
// when the caller does not pick a mesh quality.
const DefaultMeshCells = 200

var errEmptyMesh = errors.New("meshing produced no triangles")

func meshCells(cells int) int {
	if cells < 2 {
		return DefaultMeshCells
	}
	return cells
}

// ExportSTL meshes the part and streams it to w as binary STL.
func ExportSTL(w io.Writer, p *Part, cells int) error {
	model, err := render.RenderAll(render.NewOctreeRenderer(p.Solid, meshCells(cells)))
	if err != nil {
		return &PartError{Part: p.Name, Op: "export", Err: err}
	}
	if err := render.WriteSTL(w, model); err != nil {
		return &PartError{Part: p.Name, Op: "export", Err: err}
	}
	return nil
}

// Export3MF meshes the part and writes it to w as a 3MF package.
func Export3MF(w io.Writer, p *Part, cells int) error {
	model, err := render.RenderAll(render.NewOctreeRenderer(p.Solid, meshCells(cells)))
	if err != nil {
		return &PartError{Part: p.Name, Op: "export", Err: err}
	}
	if err := render.Write3MF(w, model); err != nil {
		return &PartError{Part: p.Name, Op: "export", Err: err}
	}
	return nil
}

// ExportFiles writes every successful part in the result under dir,
// one file per part per selected encoding, and returns the paths
// written. The first failing part aborts the export.
func ExportFiles(dir string, res *Result, format MeshFormat, cells int) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	var paths []string
	for i := range res.Parts {
		p := &res.Parts[i]
		if format == FormatSTL || format == FormatBoth {
			path := filepath.Join(dir, p.Name.String()+".stl")
			if err := exportFile(path, p, FormatSTL, cells); err != nil {
				return paths, err
			}
			paths = append(paths, path)
		}
		if format == Format3MF || format == FormatBoth {
			path := filepath.Join(dir, p.Name.String()+".3mf")
			if err := exportFile(path, p, Format3MF, cells); err != nil {
				return paths, err
			}
			paths = append(paths, path)
		}
	}
	return paths, nil
}

func exportFile(path string, p *Part, format MeshFormat, cells int) error {
	r := render.NewOctreeRenderer(p.Solid, meshCells(cells))
	var err error
	if format == Format3MF {
		err = render.Create3MF(path, r)
	} else {
		err = render.CreateSTL(path, r)
	}
	if err != nil {
		return &PartError{Part: p.Name, Op: "export", Err: err}
	}
	return nil
}

// MeshBounds meshes the part and measures the triangle soup's bounding
// box. The result tracks the reported part size to within the meshing
// resolution.
func MeshBounds(p *Part, cells int) (r3.Box, error) {
	model, err := render.RenderAll(render.NewOctreeRenderer(p.Solid, meshCells(cells)))
	if err != nil {
		return r3.Box{}, err
	}
	if len(model) == 0 {
		return r3.Box{}, &PartError{Part: p.Name, Op: "export", Err: errEmptyMesh}
	}
	bb := r3.Box{Min: model[0].V[0], Max: model[0].V[0]}
	for _, t := range model {
		for _, v := range t.V {
			bb.Min = r3.Vec{X: min(bb.Min.X, v.X), Y: min(bb.Min.Y, v.Y), Z: min(bb.Min.Z, v.Z)}
			bb.Max = r3.Vec{X: max(bb.Max.X, v.X), Y: max(bb.Max.Y, v.Y), Z: max(bb.Max.Z, v.Z)}
		}
	}
	return bb, nil
}
