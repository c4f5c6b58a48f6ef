package recast

import (
	"testing"
	"time"
)

// buildTestPolyMesh carries a flat ground plane all the way through to a
// poly mesh, the shared setup every BuildPolyMeshDetail test needs.
func buildTestPolyMesh(t *testing.T, verts []float32, tris []int32, areas []uint8, cfg *Config) (*CompactHeightfield, *PolyMesh) {
	t.Helper()

	chf := buildTestCompactHeightfield(t, verts, tris, areas, cfg)
	ctx := NewContext(false)

	if !ErodeWalkableArea(ctx, cfg.WalkableRadius, chf) {
		t.Fatalf("could not erode walkable area")
	}
	if !BuildDistanceField(ctx, chf) {
		t.Fatalf("could not build distance field")
	}
	if !BuildRegions(ctx, chf, cfg.BorderSize, cfg.MinRegionArea, cfg.MergeRegionArea) {
		t.Fatalf("could not build regions")
	}

	cset := &ContourSet{}
	if ok := BuildContours(ctx, chf, cfg.MaxSimplificationError, cfg.MaxEdgeLen,
		cset, ContourTessWallEdges|ContourTessAreaEdges); !ok || cset.NConts == 0 {
		t.Fatalf("could not build contours")
	}

	pmesh, ok := BuildPolyMesh(ctx, cset, cfg.MaxVertsPerPoly)
	if !ok {
		t.Fatalf("could not triangulate contours")
	}
	return chf, pmesh
}

func TestBuildPolyMeshDetailNoDeadline(t *testing.T) {
	verts, tris, areas := flatGroundPlane()
	cfg := bakeConfig(verts, 4)
	chf, pmesh := buildTestPolyMesh(t, verts, tris, areas, cfg)

	ctx := NewContext(true)
	dmesh, ok := BuildPolyMeshDetail(ctx, pmesh, chf, cfg.DetailSampleDist, cfg.DetailSampleMaxError, nil)
	if !ok {
		t.Fatalf("BuildPolyMeshDetail failed on a flat ground plane")
	}
	if dmesh.Truncated {
		t.Fatalf("a run with no deadline should never be truncated")
	}
	if dmesh.NMeshes != pmesh.NPolys {
		t.Fatalf("expected one submesh per polygon, got %d meshes for %d polys", dmesh.NMeshes, pmesh.NPolys)
	}
}

func TestBuildPolyMeshDetailGlobalDeadlineAlreadyExpired(t *testing.T) {
	verts, tris, areas := flatGroundPlane()
	cfg := bakeConfig(verts, 4)
	chf, pmesh := buildTestPolyMesh(t, verts, tris, areas, cfg)
	if pmesh.NPolys == 0 {
		t.Fatalf("expected at least one polygon to exercise the deadline against")
	}

	ctx := NewContext(true)
	deadline := &Deadline{At: time.Now().Add(-time.Hour)}
	dmesh, ok := BuildPolyMeshDetail(ctx, pmesh, chf, cfg.DetailSampleDist, cfg.DetailSampleMaxError, deadline)
	if !ok {
		t.Fatalf("an expired deadline should still return a partial mesh, not fail")
	}
	if !dmesh.Truncated {
		t.Fatalf("expected Truncated to be set when the deadline already expired")
	}
	if dmesh.NMeshes != pmesh.NPolys {
		t.Fatalf("Truncated must not change the reported submesh count")
	}
	if dmesh.NVerts != 0 || dmesh.NTris != 0 {
		t.Fatalf("an already-expired global deadline should stop before the first polygon")
	}
}

func TestBuildPolyMeshDetailPerPolygonBudgetNeverExceeded(t *testing.T) {
	verts, tris, areas := flatGroundPlane()
	cfg := bakeConfig(verts, 4)
	chf, pmesh := buildTestPolyMesh(t, verts, tris, areas, cfg)

	ctx := NewContext(true)
	deadline := &Deadline{PerPolygon: time.Hour}
	dmesh, ok := BuildPolyMeshDetail(ctx, pmesh, chf, cfg.DetailSampleDist, cfg.DetailSampleMaxError, deadline)
	if !ok {
		t.Fatalf("BuildPolyMeshDetail failed with a generous per-polygon budget")
	}
	if dmesh.Truncated {
		t.Fatalf("a per-polygon budget no real polygon could exceed should never truncate")
	}
}
