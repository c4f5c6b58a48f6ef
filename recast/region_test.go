package recast

import "testing"

func TestBuildDistanceFieldAndRegionsMonotone(t *testing.T) {
	verts, tris, areas := flatGroundPlane()
	cfg := bakeConfig(verts, 4)
	chf := buildTestCompactHeightfield(t, verts, tris, areas, cfg)

	ctx := NewContext(false)
	if !BuildDistanceField(ctx, chf) {
		t.Fatalf("BuildDistanceField failed")
	}
	if chf.MaxDistance == 0 {
		t.Fatalf("a flat walkable plane with no border erosion should have a positive max distance")
	}

	if !BuildRegionsMonotone(ctx, chf, cfg.BorderSize, cfg.MinRegionArea, cfg.MergeRegionArea) {
		t.Fatalf("BuildRegionsMonotone failed")
	}

	sawRegion := false
	for i := int32(0); i < chf.SpanCount; i++ {
		if chf.Spans[i].Reg != NullRegion {
			sawRegion = true
			break
		}
	}
	if !sawRegion {
		t.Fatalf("expected at least one span to be assigned a region")
	}
}

func TestBuildRegionsWatershed(t *testing.T) {
	verts, tris, areas := flatGroundPlane()
	cfg := bakeConfig(verts, 4)
	chf := buildTestCompactHeightfield(t, verts, tris, areas, cfg)

	ctx := NewContext(false)
	if !BuildDistanceField(ctx, chf) {
		t.Fatalf("BuildDistanceField failed")
	}
	if !BuildRegions(ctx, chf, cfg.BorderSize, cfg.MinRegionArea, cfg.MergeRegionArea) {
		t.Fatalf("BuildRegions failed")
	}

	regions := make(map[uint16]bool)
	for i := int32(0); i < chf.SpanCount; i++ {
		if chf.Spans[i].Reg&regionIDMask != 0 {
			regions[chf.Spans[i].Reg&regionIDMask] = true
		}
	}
	if len(regions) == 0 {
		t.Fatalf("expected at least one non-null region after watershed partitioning")
	}
}
