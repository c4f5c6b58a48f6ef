package recast

import "testing"

// flatGroundPlane returns a simple two-triangle, 20x20 unit ground plane
// centered at the origin, flat and level, along with its (trivially
// walkable) per-triangle areas.
func flatGroundPlane() (verts []float32, tris []int32, areas []uint8) {
	verts = []float32{
		-10, 0, -10,
		10, 0, -10,
		10, 0, 10,
		-10, 0, 10,
	}
	tris = []int32{
		0, 1, 2,
		0, 2, 3,
	}
	areas = []uint8{WalkableArea, WalkableArea}
	return
}

func bakeConfig(verts []float32, nv int32) *Config {
	cfg := DefaultConfig()
	cfg.BMin, cfg.BMax = CalcBounds(verts, nv)
	cfg.Width, cfg.Height = CalcGridSize(cfg.BMin, cfg.BMax, cfg.Cs)
	return cfg
}

func TestBakeFlatGround(t *testing.T) {
	verts, tris, areas := flatGroundPlane()
	cfg := bakeConfig(verts, 4)
	if err := cfg.Validate(); err != nil {
		t.Fatalf("config should validate: %v", err)
	}

	ctx := NewContext(true)
	result, ok := Bake(ctx, cfg, verts, tris, areas, nil)
	if !ok {
		for i := 0; i < ctx.LogCount(); i++ {
			t.Log(ctx.LogText(int32(i)))
		}
		t.Fatalf("Bake failed on a flat, fully walkable ground plane")
	}

	if result.Heightfield == nil {
		t.Fatalf("expected a populated Heightfield")
	}
	if result.CompactHeightfield == nil || result.CompactHeightfield.SpanCount == 0 {
		t.Fatalf("expected a non-empty CompactHeightfield")
	}
	if result.ContourSet == nil || result.ContourSet.NConts == 0 {
		t.Fatalf("expected at least one contour")
	}
	if result.PolyMesh == nil || result.PolyMesh.NPolys == 0 {
		t.Fatalf("expected at least one polygon in the poly mesh")
	}
	if result.PolyMeshDetail == nil || result.PolyMeshDetail.NMeshes == 0 {
		t.Fatalf("expected a non-empty detail mesh")
	}

	// Every polygon's vertex slots must be either a real vertex index or
	// NullIdx, never something else.
	nvp := cfg.MaxVertsPerPoly
	for i := int32(0); i < result.PolyMesh.NPolys; i++ {
		p := result.PolyMesh.Polys[i*nvp*2 : i*nvp*2+nvp]
		for _, v := range p {
			if v != NullIdx && v >= uint16(result.PolyMesh.NVerts) {
				t.Fatalf("poly %d references out-of-range vertex %d", i, v)
			}
		}
	}
}

func TestBakeRejectsMismatchedAreas(t *testing.T) {
	verts, tris, _ := flatGroundPlane()
	cfg := bakeConfig(verts, 4)

	ctx := NewContext(true)
	_, ok := Bake(ctx, cfg, verts, tris, []uint8{WalkableArea}, nil) // only 1 area for 2 tris
	if ok {
		t.Fatalf("Bake should fail when areas does not match the triangle count")
	}
}

func TestBakeAllUnwalkable(t *testing.T) {
	verts, tris, _ := flatGroundPlane()
	areas := []uint8{NullArea, NullArea}
	cfg := bakeConfig(verts, 4)

	ctx := NewContext(true)
	result, ok := Bake(ctx, cfg, verts, tris, areas, nil)
	// Rasterization with no walkable area yields an empty compact heightfield,
	// and the pipeline should fail gracefully further down rather than panic.
	if ok && result.PolyMesh.NPolys != 0 {
		t.Fatalf("an all-unwalkable input should not produce any polygons")
	}
}
