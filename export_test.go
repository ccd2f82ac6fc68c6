package shellforge

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/shellforge/shellforge/render"
)

func TestExportRoundTripBounds(t *testing.T) {
	res, err := Generate(scenarioRequest())
	if err != nil {
		t.Fatal(err)
	}
	base := res.Part(PartBase)
	bb, err := MeshBounds(base, 64)
	if err != nil {
		t.Fatal(err)
	}
	d := res.Dimensions
	if !near(bb.Max.X-bb.Min.X, d.Outer.X, 0.01) {
		t.Errorf("mesh width %v, reported %v", bb.Max.X-bb.Min.X, d.Outer.X)
	}
	if !near(bb.Max.Y-bb.Min.Y, d.Outer.Y, 0.01) {
		t.Errorf("mesh depth %v, reported %v", bb.Max.Y-bb.Min.Y, d.Outer.Y)
	}
	if !near(bb.Max.Z-bb.Min.Z, d.Outer.Z, 0.01) {
		t.Errorf("mesh height %v, reported %v", bb.Max.Z-bb.Min.Z, d.Outer.Z)
	}
}

func TestExportSTLStream(t *testing.T) {
	res, err := Generate(scenarioRequest())
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := ExportSTL(&buf, res.Part(PartLid), 32); err != nil {
		t.Fatal(err)
	}
	tris, err := render.ReadSTL(bytes.NewReader(buf.Bytes()))
	if err != nil && !errors.Is(err, render.ErrNormalMismatch) {
		t.Fatal(err)
	}
	if len(tris) == 0 {
		t.Fatal("empty STL stream")
	}
}

func TestExportFiles(t *testing.T) {
	res, err := Generate(scenarioRequest())
	if err != nil {
		t.Fatal(err)
	}
	dir := t.TempDir()
	paths, err := ExportFiles(dir, res, FormatBoth, 32)
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) != 2*len(res.Parts) {
		t.Fatalf("got %d files, want %d", len(paths), 2*len(res.Parts))
	}
	for _, name := range []string{"base.stl", "base.3mf", "lid.stl", "lid.3mf"} {
		fi, err := os.Stat(filepath.Join(dir, name))
		if err != nil {
			t.Errorf("missing %s: %v", name, err)
			continue
		}
		if fi.Size() == 0 {
			t.Errorf("%s is empty", name)
		}
	}
}

func TestMeshFormatText(t *testing.T) {
	var f MeshFormat
	if err := f.UnmarshalText([]byte("3mf")); err != nil || f != Format3MF {
		t.Errorf("parse 3mf: %v %v", f, err)
	}
	if err := f.UnmarshalText([]byte("dxf")); err == nil {
		t.Error("unknown format accepted")
	}
	if FormatBoth.String() != "both" {
		t.Errorf("both renders as %q", FormatBoth.String())
	}
}
