package recast

import "testing"

func buildTestCompactHeightfield(t *testing.T, verts []float32, tris []int32, areas []uint8, cfg *Config) *CompactHeightfield {
	t.Helper()

	ctx := NewContext(false)

	hf := NewHeightfield()
	if !hf.Create(cfg.Width, cfg.Height, cfg.BMin, cfg.BMax, cfg.Cs, cfg.Ch) {
		t.Fatalf("could not create heightfield")
	}

	nt := int32(len(tris)) / 3
	if !RasterizeTriangles(ctx, verts, tris, areas, nt, hf, 1) {
		t.Fatalf("rasterization failed")
	}

	FilterLowHangingWalkableObstacles(ctx, cfg.WalkableClimb, hf)
	FilterLedgeSpans(ctx, cfg.WalkableHeight, cfg.WalkableClimb, hf)
	FilterWalkableLowHeightSpans(ctx, cfg.WalkableHeight, hf)

	chf, ok := BuildCompactHeightfield(ctx, cfg.WalkableHeight, cfg.WalkableClimb, hf)
	if !ok {
		t.Fatalf("could not build compact heightfield")
	}
	return chf
}

func TestBuildHeightfieldLayersFlatGround(t *testing.T) {
	verts, tris, areas := flatGroundPlane()
	cfg := bakeConfig(verts, 4)

	chf := buildTestCompactHeightfield(t, verts, tris, areas, cfg)

	ctx := NewContext(true)
	lset, ok := BuildHeightfieldLayers(ctx, chf, cfg.BorderSize, cfg.WalkableHeight)
	if !ok {
		t.Fatalf("BuildHeightfieldLayers failed on a flat ground plane")
	}
	if len(lset.Layers) != 1 {
		t.Fatalf("a single flat surface should yield exactly one layer, got %d", len(lset.Layers))
	}
}

func TestBuildHeightfieldLayersStackedSurfaces(t *testing.T) {
	// A ground plane plus a platform floating well above it, with enough
	// vertical clearance on both sides that a single column holds two
	// disjoint walkable spans.
	verts := []float32{
		// ground, y=0, spans the whole tile
		-10, 0, -10,
		10, 0, -10,
		10, 0, 10,
		-10, 0, 10,
		// platform, y=3, smaller footprint fully inside the ground's XZ extent
		-2, 3, -2,
		2, 3, -2,
		2, 3, 2,
		-2, 3, 2,
	}
	tris := []int32{
		0, 1, 2,
		0, 2, 3,
		4, 5, 6,
		4, 6, 7,
	}
	areas := []uint8{WalkableArea, WalkableArea, WalkableArea, WalkableArea}

	cfg := bakeConfig(verts, 8)
	chf := buildTestCompactHeightfield(t, verts, tris, areas, cfg)

	ctx := NewContext(true)
	lset, ok := BuildHeightfieldLayers(ctx, chf, cfg.BorderSize, cfg.WalkableHeight)
	if !ok {
		t.Fatalf("BuildHeightfieldLayers failed on a stacked-surface tile")
	}
	if len(lset.Layers) < 2 {
		t.Fatalf("a ground plane plus an overhead platform should yield at least 2 layers, got %d", len(lset.Layers))
	}

	for i, l := range lset.Layers {
		if l.Hmin > l.Hmax {
			t.Fatalf("layer %d has an inverted vertical extent: hmin=%d hmax=%d", i, l.Hmin, l.Hmax)
		}
	}
}
