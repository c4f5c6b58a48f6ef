package recast

import (
	"github.com/aurelien-rainone/gobj"
	"github.com/aurelien-rainone/math32"
)

// InputGeom is the triangle soup a bake run rasterizes into a Heightfield,
// loaded from an OBJ file via gobj.
type InputGeom struct {
	Filename string
	Scale    float32

	Verts   []float32 // [Form: (x, y, z) * #vertCount]
	Tris    []int32   // [Form: (vertA, vertB, vertC) * #triCount]
	Normals []float32 // per-triangle face normal, [Form: (x, y, z) * #triCount]

	VertCount int32
	TriCount  int32
}

// LoadInputGeom reads an OBJ file and triangulates every face as a fan (an
// n-sided polygon becomes n-2 triangles sharing its first vertex).
//
// gobj resolves each face's vertex references to actual coordinates rather
// than handing back the original "v" indices, so a face's vertices are
// mapped back to a vertex index by value; when several vertices share the
// same coordinates, the last of them is used.
func LoadInputGeom(filename string, scale float32) (*InputGeom, error) {
	obj, err := gobj.Load(filename)
	if err != nil {
		return nil, err
	}

	geom := &InputGeom{Filename: filename, Scale: scale}

	verts := obj.Verts()
	geom.VertCount = int32(len(verts))
	geom.Verts = make([]float32, geom.VertCount*3)
	vertIndex := make(map[gobj.Vertex]int32, len(verts))
	for i, v := range verts {
		geom.Verts[i*3+0] = float32(v[0]) * scale
		geom.Verts[i*3+1] = float32(v[1]) * scale
		geom.Verts[i*3+2] = float32(v[2]) * scale
		vertIndex[v] = int32(i)
	}

	for _, p := range obj.Polys() {
		for i := 2; i < len(p); i++ {
			a, aok := vertIndex[p[0]]
			b, bok := vertIndex[p[i-1]]
			c, cok := vertIndex[p[i]]
			if !aok || !bok || !cok {
				continue
			}
			geom.Tris = append(geom.Tris, a, b, c)
			geom.TriCount++
		}
	}

	geom.Normals = make([]float32, geom.TriCount*3)
	for i := int32(0); i < geom.TriCount; i++ {
		v0 := geom.Verts[geom.Tris[i*3+0]*3:]
		v1 := geom.Verts[geom.Tris[i*3+1]*3:]
		v2 := geom.Verts[geom.Tris[i*3+2]*3:]

		var e0, e1 [3]float32
		for j := 0; j < 3; j++ {
			e0[j] = v1[j] - v0[j]
			e1[j] = v2[j] - v0[j]
		}

		n := geom.Normals[i*3 : i*3+3]
		n[0] = e0[1]*e1[2] - e0[2]*e1[1]
		n[1] = e0[2]*e1[0] - e0[0]*e1[2]
		n[2] = e0[0]*e1[1] - e0[1]*e1[0]
		if d := math32.Sqrt(n[0]*n[0] + n[1]*n[1] + n[2]*n[2]); d > 0 {
			inv := 1.0 / d
			n[0] *= inv
			n[1] *= inv
			n[2] *= inv
		}
	}

	return geom, nil
}

// CalcBounds derives an AABB tight to the loaded geometry, the natural
// starting point for Config.BMin/BMax before any manual expansion.
func (g *InputGeom) CalcBounds() (bmin, bmax [3]float32) {
	if g.VertCount == 0 {
		return bmin, bmax
	}
	bmin = [3]float32{g.Verts[0], g.Verts[1], g.Verts[2]}
	bmax = bmin
	for i := int32(1); i < g.VertCount; i++ {
		v := g.Verts[i*3:]
		for j := 0; j < 3; j++ {
			if v[j] < bmin[j] {
				bmin[j] = v[j]
			}
			if v[j] > bmax[j] {
				bmax[j] = v[j]
			}
		}
	}
	return bmin, bmax
}
