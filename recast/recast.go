package recast

import (
	"github.com/aurelien-rainone/gogeo/f32/d3"
	"github.com/aurelien-rainone/math32"
)

// CalcBounds computes the axis-aligned bounding box of the given vertex
// array and writes it to bmin, bmax.
func CalcBounds(verts []float32, nv int32) (bmin, bmax [3]float32) {
	copy(bmin[:], verts[:3])
	copy(bmax[:], verts[:3])
	for i := int32(1); i < nv; i++ {
		v := verts[i*3:]
		d3.Vec3Min(bmin[:], v)
		d3.Vec3Max(bmax[:], v)
	}
	return
}

// CalcGridSize computes the voxel grid dimensions spanning [bmin, bmax]
// with cell size cs.
func CalcGridSize(bmin, bmax [3]float32, cs float32) (w, h int32) {
	w = int32(math32.Ceil((bmax[0] - bmin[0]) / cs))
	h = int32(math32.Ceil((bmax[2] - bmin[2]) / cs))
	return
}

func calcTriNormal(v0, v1, v2 d3.Vec3, norm d3.Vec3) {
	d3.Vec3Cross(norm, v1.Sub(v0), v2.Sub(v0))
	norm.Normalize()
}

// MarkWalkableTriangles sets the area id of every triangle whose slope is
// strictly below walkableSlopeAngle (in degrees) to WalkableArea. Triangles
// at or above the slope keep whatever area id they already have; steep
// triangles already marked walkable are demoted only by
// ClearUnwalkableTriangles.
func MarkWalkableTriangles(walkableSlopeAngle float32, verts []float32, tris []int32, nt int32, areas []uint8) {
	walkableThr := math32.Cos(walkableSlopeAngle / 180.0 * math32.Pi)

	var norm [3]float32
	for i := int32(0); i < nt; i++ {
		tri := tris[i*3:]
		calcTriNormal(verts[tri[0]*3:], verts[tri[1]*3:], verts[tri[2]*3:], norm[:])
		if norm[1] > walkableThr {
			areas[i] = WalkableArea
		}
	}
}

// ClearUnwalkableTriangles resets the area id of every triangle whose slope
// is at or above walkableSlopeAngle (in degrees) to NullArea. It never promotes a
// flat triangle; it is the symmetric counterpart to MarkWalkableTriangles.
func ClearUnwalkableTriangles(walkableSlopeAngle float32, verts []float32, tris []int32, nt int32, areas []uint8) {
	walkableThr := math32.Cos(walkableSlopeAngle / 180.0 * math32.Pi)

	var norm [3]float32
	for i := int32(0); i < nt; i++ {
		tri := tris[i*3:]
		calcTriNormal(verts[tri[0]*3:], verts[tri[1]*3:], verts[tri[2]*3:], norm[:])
		if norm[1] <= walkableThr {
			areas[i] = NullArea
		}
	}
}

var dirOffsetX = [4]int32{-1, 0, 1, 0}
var dirOffsetY = [4]int32{0, 1, 0, -1}

// SetCon sets the neighbor connection data of s for direction dir (0..3) to
// i, the neighbor's in-cell span index.
func SetCon(s *CompactSpan, dir, i int32) {
	shift := uint32(dir * 6)
	s.Con = (s.Con &^ (0x3f << shift)) | ((uint32(i) & 0x3f) << shift)
}

// GetCon returns the neighbor connection data of s for direction dir, or
// NotConnected if there is no neighbor in that direction.
func GetCon(s *CompactSpan, dir int32) int32 {
	shift := uint32(dir * 6)
	return int32((s.Con >> shift) & 0x3f)
}

// GetDirOffsetX returns the x-axis cell offset of direction dir (0..3).
func GetDirOffsetX(dir int32) int32 { return dirOffsetX[dir&0x3] }

// GetDirOffsetY returns the z-axis cell offset of direction dir (0..3).
func GetDirOffsetY(dir int32) int32 { return dirOffsetY[dir&0x3] }

// GetDirForOffset returns the direction (0..3) whose cell offset is (x, y),
// the inverse of GetDirOffsetX/GetDirOffsetY. x and y must each be in
// {-1, 0, 1} and not both nonzero.
func GetDirForOffset(x, y int32) int32 {
	dirs := [5]int32{3, 0, -1, 2, 1}
	return dirs[((y+1)<<1)+x]
}

func iMin(a, b int32) int32 {
	if a < b {
		return a
	}
	return b
}

func iMax(a, b int32) int32 {
	if a > b {
		return a
	}
	return b
}

func iAbs(a int32) int32 {
	if a < 0 {
		return -a
	}
	return a
}
