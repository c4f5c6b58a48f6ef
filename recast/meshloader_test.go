package recast

import (
	"os"
	"path/filepath"
	"testing"
)

const testOBJ = `
v -1.0 0.0 -1.0
v  1.0 0.0 -1.0
v  1.0 0.0  1.0
v -1.0 0.0  1.0
f 1 2 3 4
`

func writeTestOBJ(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "quad.obj")
	if err := os.WriteFile(path, []byte(testOBJ), 0644); err != nil {
		t.Fatalf("could not write test OBJ file: %v", err)
	}
	return path
}

func TestLoadInputGeom(t *testing.T) {
	path := writeTestOBJ(t)

	geom, err := LoadInputGeom(path, 1.0)
	if err != nil {
		t.Fatalf("LoadInputGeom failed: %v", err)
	}

	if geom.VertCount != 4 {
		t.Fatalf("expected 4 vertices, got %d", geom.VertCount)
	}
	// a quad face fan-triangulates into 2 triangles.
	if geom.TriCount != 2 {
		t.Fatalf("expected 2 triangles, got %d", geom.TriCount)
	}
	if len(geom.Normals) != int(geom.TriCount)*3 {
		t.Fatalf("expected %d normal components, got %d", geom.TriCount*3, len(geom.Normals))
	}
	// the quad is flat and level: every face normal should be vertical.
	for i := int32(0); i < geom.TriCount; i++ {
		n := geom.Normals[i*3 : i*3+3]
		abs := n[1]
		if abs < 0 {
			abs = -abs
		}
		if abs < 0.99 {
			t.Fatalf("triangle %d normal should be vertical, got %v", i, n)
		}
	}
}

func TestLoadInputGeomScale(t *testing.T) {
	path := writeTestOBJ(t)

	geom, err := LoadInputGeom(path, 2.0)
	if err != nil {
		t.Fatalf("LoadInputGeom failed: %v", err)
	}
	if geom.Verts[0] != -2.0 {
		t.Fatalf("expected scaled vertex x = -2.0, got %v", geom.Verts[0])
	}
}

func TestInputGeomCalcBounds(t *testing.T) {
	path := writeTestOBJ(t)

	geom, err := LoadInputGeom(path, 1.0)
	if err != nil {
		t.Fatalf("LoadInputGeom failed: %v", err)
	}

	bmin, bmax := geom.CalcBounds()
	want := [3]float32{-1, 0, -1}
	if bmin != want {
		t.Fatalf("bmin = %v, want %v", bmin, want)
	}
	want = [3]float32{1, 0, 1}
	if bmax != want {
		t.Fatalf("bmax = %v, want %v", bmax, want)
	}
}

func TestLoadInputGeomMissingFile(t *testing.T) {
	if _, err := LoadInputGeom(filepath.Join(t.TempDir(), "nope.obj"), 1.0); err == nil {
		t.Fatalf("expected an error loading a nonexistent file")
	}
}
