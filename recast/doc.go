// Package recast implements an offline navigation-mesh baking pipeline: it
// turns a triangle soup of world geometry into a compact convex-polygon
// navigation mesh suitable for agent pathfinding.
//
// The pipeline is a directed chain of stages, each a pure transformer from
// the previous stage's data structure to the next:
//
//  - Prepare the input triangle mesh (see LoadInputGeom, MarkWalkableTriangles).
//  - Rasterize triangles into a Heightfield.
//  - Filter the Heightfield (low obstacles, ledges, low ceilings).
//  - Compact it into a CompactHeightfield with 4-neighbor links.
//  - Erode the walkable area and build its distance field.
//  - Partition it into regions (BuildRegions or BuildRegionsMonotone).
//  - Trace and simplify contours into a ContourSet.
//  - Polygonize contours into a PolyMesh (triangulate + greedy convex merge).
//  - Build a PolyMeshDetail that restores sampled height.
//
// Bake runs this whole chain for a single tile. BuildHeightfieldLayers is an
// alternate path between the compact heightfield and the rest of the
// pipeline, splitting a tile with vertically stacked walkable surfaces (a
// bridge over a corridor, multiple floors) into independent non-overlapping
// layers. The region, contour and polygon builders take a CompactHeightfield;
// this package has no function that runs them on a HeightfieldLayer.
//
// Consuming the resulting PolyMesh/PolyMeshDetail to build a runtime
// pathfinding structure, and multi-tile stitching via the portal-encoded
// neighbor slots in PolyMesh.Polys, are outside this package's scope.
package recast
