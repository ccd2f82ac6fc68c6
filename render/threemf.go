package render

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"io"
	"os"

	"gonum.org/v1/gonum/spatial/r3"
)

// 3MF files are OPC packages: a zip archive holding content types, a
// relationship part and the model document itself.
const (
	threemfContentTypes = `<?xml version="1.0" encoding="UTF-8"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
 <Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
 <Default Extension="model" ContentType="application/vnd.ms-package.3dmanufacturing-3dmodel+xml"/>
</Types>`

	threemfRels = `<?xml version="1.0" encoding="UTF-8"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
 <Relationship Target="/3D/3dmodel.model" Id="rel0" Type="http://schemas.microsoft.com/3dmanufacturing/2013/01/3dmodel"/>
</Relationships>`

	threemfNamespace = "http://schemas.microsoft.com/3dmanufacturing/core/2015/02"
)

type threemfModel struct {
	XMLName   xml.Name         `xml:"model"`
	Unit      string           `xml:"unit,attr"`
	Namespace string           `xml:"xmlns,attr"`
	Resources threemfResources `xml:"resources"`
	Build     threemfBuild     `xml:"build"`
}

type threemfResources struct {
	Objects []threemfObject `xml:"object"`
}

type threemfObject struct {
	ID   int         `xml:"id,attr"`
	Type string      `xml:"type,attr"`
	Mesh threemfMesh `xml:"mesh"`
}

type threemfMesh struct {
	Vertices  []threemfVertex   `xml:"vertices>vertex"`
	Triangles []threemfTriangle `xml:"triangles>triangle"`
}

type threemfVertex struct {
	X float64 `xml:"x,attr"`
	Y float64 `xml:"y,attr"`
	Z float64 `xml:"z,attr"`
}

type threemfTriangle struct {
	V1 int `xml:"v1,attr"`
	V2 int `xml:"v2,attr"`
	V3 int `xml:"v3,attr"`
}

// Create3MF renders the contents of r as a 3MF file at path. Unlike
// STL output the whole mesh is held in memory so shared vertices can
// be indexed.
func Create3MF(path string, r Renderer) error {
	model, err := RenderAll(r)
	if err != nil {
		return err
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return Write3MF(file, model)
}

// Write3MF writes model triangles to w in 3MF format with millimeter
// units.
func Write3MF(w io.Writer, model []Triangle3) error {
	if len(model) == 0 {
		return errors.New("empty triangle slice")
	}
	mesh := indexMesh(model)
	doc := threemfModel{
		Unit:      "millimeter",
		Namespace: threemfNamespace,
		Resources: threemfResources{
			Objects: []threemfObject{{ID: 1, Type: "model", Mesh: mesh}},
		},
		Build: threemfBuild{Items: []threemfItem{{ObjectID: 1}}},
	}
	zw := zip.NewWriter(w)
	parts := []struct {
		name string
		body string
	}{
		{"[Content_Types].xml", threemfContentTypes},
		{"_rels/.rels", threemfRels},
	}
	for _, part := range parts {
		pw, err := zw.Create(part.name)
		if err != nil {
			return err
		}
		if _, err := io.WriteString(pw, part.body); err != nil {
			return err
		}
	}
	mw, err := zw.Create("3D/3dmodel.model")
	if err != nil {
		return err
	}
	if _, err := io.WriteString(mw, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(mw)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return zw.Close()
}

type threemfBuild struct {
	Items []threemfItem `xml:"item"`
}

type threemfItem struct {
	ObjectID int `xml:"objectid,attr"`
}

// indexMesh deduplicates shared triangle vertices into an indexed mesh.
func indexMesh(model []Triangle3) threemfMesh {
	var mesh threemfMesh
	index := make(map[r3.Vec]int, 3*len(model))
	vertexOf := func(v r3.Vec) int {
		if i, ok := index[v]; ok {
			return i
		}
		i := len(mesh.Vertices)
		index[v] = i
		mesh.Vertices = append(mesh.Vertices, threemfVertex{X: v.X, Y: v.Y, Z: v.Z})
		return i
	}
	mesh.Triangles = make([]threemfTriangle, 0, len(model))
	for _, t := range model {
		mesh.Triangles = append(mesh.Triangles, threemfTriangle{
			V1: vertexOf(t.V[0]),
			V2: vertexOf(t.V[1]),
			V3: vertexOf(t.V[2]),
		})
	}
	return mesh
}
