package render_test

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/shellforge/shellforge/render"
	"github.com/shellforge/shellforge/sdf/form3"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestSTLCreateWriteRead(t *testing.T) {
	const quality = 20
	box := form3.Box(r3.Vec{X: 3, Y: 2, Z: 1}, 0.5)
	path := filepath.Join(t.TempDir(), "box.stl")
	err := render.CreateSTL(path, render.NewOctreeRenderer(box, quality))
	if err != nil {
		t.Fatal(err)
	}
	bfile, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	model, err := render.RenderAll(render.NewOctreeRenderer(box, quality))
	if err != nil {
		t.Fatal(err)
	}
	var b bytes.Buffer
	err = render.WriteSTL(&b, model)
	if err != nil {
		t.Fatal(err)
	}
	if b.Len() != len(bfile) {
		t.Fatal("WriteSTL and CreateSTL output length mismatch")
	}
	if b.String() != string(bfile) {
		t.Fatal("WriteSTL and CreateSTL output mismatch")
	}
}

func Test3MFWrite(t *testing.T) {
	const quality = 20
	box := form3.Box(r3.Vec{X: 3, Y: 2, Z: 1}, 0.5)
	model, err := render.RenderAll(render.NewOctreeRenderer(box, quality))
	if err != nil {
		t.Fatal(err)
	}
	var b bytes.Buffer
	if err := render.Write3MF(&b, model); err != nil {
		t.Fatal(err)
	}
	zr, err := zip.NewReader(bytes.NewReader(b.Bytes()), int64(b.Len()))
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]bool{
		"[Content_Types].xml": false,
		"_rels/.rels":         false,
		"3D/3dmodel.model":    false,
	}
	var modelFile *zip.File
	for _, f := range zr.File {
		if _, ok := want[f.Name]; !ok {
			t.Errorf("unexpected archive entry %q", f.Name)
			continue
		}
		want[f.Name] = true
		if f.Name == "3D/3dmodel.model" {
			modelFile = f
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("archive entry %q missing", name)
		}
	}
	if modelFile == nil {
		t.Fatal("no model document in archive")
	}
	rc, err := modelFile.Open()
	if err != nil {
		t.Fatal(err)
	}
	defer rc.Close()
	doc, err := io.ReadAll(rc)
	if err != nil {
		t.Fatal(err)
	}
	var parsed struct {
		Unit      string `xml:"unit,attr"`
		Resources struct {
			Object struct {
				Mesh struct {
					Vertices []struct {
						X float64 `xml:"x,attr"`
					} `xml:"vertices>vertex"`
					Triangles []struct {
						V1 int `xml:"v1,attr"`
						V2 int `xml:"v2,attr"`
						V3 int `xml:"v3,attr"`
					} `xml:"triangles>triangle"`
				} `xml:"mesh"`
			} `xml:"object"`
		} `xml:"resources"`
	}
	if err := xml.Unmarshal(doc, &parsed); err != nil {
		t.Fatal(err)
	}
	if parsed.Unit != "millimeter" {
		t.Errorf("model unit got %q, want millimeter", parsed.Unit)
	}
	mesh := parsed.Resources.Object.Mesh
	if len(mesh.Triangles) != len(model) {
		t.Errorf("triangle count got %d, want %d", len(mesh.Triangles), len(model))
	}
	if len(mesh.Vertices) == 0 || len(mesh.Vertices) >= 3*len(model) {
		t.Errorf("vertex indexing did not deduplicate: %d vertices for %d triangles", len(mesh.Vertices), len(model))
	}
	for _, tri := range mesh.Triangles {
		for _, v := range [3]int{tri.V1, tri.V2, tri.V3} {
			if v < 0 || v >= len(mesh.Vertices) {
				t.Fatalf("triangle vertex index %d out of range", v)
			}
		}
	}
}
