package recast

// BakeResult holds the intermediate and final artifacts of a full bake run,
// kept around so a caller (or the debug dumpers named in a build's external
// collaborators) can inspect any stage after the fact.
type BakeResult struct {
	Heightfield        *Heightfield
	CompactHeightfield *CompactHeightfield
	ContourSet         *ContourSet
	PolyMesh           *PolyMesh
	PolyMeshDetail     *PolyMeshDetail
}

// Bake runs the full seven-stage pipeline over a single tile's worth of
// geometry: rasterize, filter, compact, partition into regions, trace and
// simplify contours, polygonize, then build the height-sampled detail mesh.
// It is the single-tile building block a tiled bake loops over per tile, and
// the whole of what a solo (untiled) bake needs.
//
// deadline bounds only the detail-mesh stage, the one stage whose cost
// scales with height-sampling density rather than input size; it may be
// nil. Every earlier stage runs to completion or fails outright.
func Bake(ctx *Context, cfg *Config, verts []float32, tris []int32, areas []uint8, deadline *Deadline) (*BakeResult, bool) {
	nt := int32(len(tris)) / 3
	if int32(len(areas)) != nt {
		ctx.Errorf("Bake: areas length %d does not match triangle count %d", len(areas), nt)
		return nil, false
	}

	result := &BakeResult{Heightfield: NewHeightfield()}
	if !result.Heightfield.Create(cfg.Width, cfg.Height, cfg.BMin, cfg.BMax, cfg.Cs, cfg.Ch) {
		ctx.Errorf("Bake: could not create heightfield.")
		return nil, false
	}

	flagMergeThr := int32(1)
	if !RasterizeTriangles(ctx, verts, tris, areas, nt, result.Heightfield, flagMergeThr) {
		ctx.Errorf("Bake: rasterization failed.")
		return nil, false
	}

	FilterLowHangingWalkableObstacles(ctx, cfg.WalkableClimb, result.Heightfield)
	FilterLedgeSpans(ctx, cfg.WalkableHeight, cfg.WalkableClimb, result.Heightfield)
	FilterWalkableLowHeightSpans(ctx, cfg.WalkableHeight, result.Heightfield)

	chf, ok := BuildCompactHeightfield(ctx, cfg.WalkableHeight, cfg.WalkableClimb, result.Heightfield)
	if !ok {
		ctx.Errorf("Bake: could not build compact heightfield.")
		return nil, false
	}
	result.CompactHeightfield = chf

	if !ErodeWalkableArea(ctx, cfg.WalkableRadius, chf) {
		ctx.Errorf("Bake: could not erode walkable area.")
		return nil, false
	}

	if !BuildDistanceField(ctx, chf) {
		ctx.Errorf("Bake: could not build distance field.")
		return nil, false
	}
	if !BuildRegions(ctx, chf, cfg.BorderSize, cfg.MinRegionArea, cfg.MergeRegionArea) {
		ctx.Errorf("Bake: could not build regions.")
		return nil, false
	}

	cset := &ContourSet{}
	if ok := BuildContours(ctx, chf, cfg.MaxSimplificationError, cfg.MaxEdgeLen,
		cset, ContourTessWallEdges|ContourTessAreaEdges); !ok || cset.NConts == 0 {
		ctx.Errorf("Bake: could not build contours.")
		return nil, false
	}
	result.ContourSet = cset

	pmesh, ok := BuildPolyMesh(ctx, cset, cfg.MaxVertsPerPoly)
	if !ok {
		ctx.Errorf("Bake: could not triangulate contours.")
		return nil, false
	}
	result.PolyMesh = pmesh

	dmesh, ok := BuildPolyMeshDetail(ctx, pmesh, chf, cfg.DetailSampleDist, cfg.DetailSampleMaxError, deadline)
	if !ok {
		ctx.Errorf("Bake: could not build detail mesh.")
		return nil, false
	}
	result.PolyMeshDetail = dmesh

	return result, true
}
