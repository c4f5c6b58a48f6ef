package recast

// HeightfieldLayer is one 2-D slab of a HeightfieldLayerSet: a projected
// view of the spans belonging to a single non-overlapping group of
// monotone regions, used when a tile has vertically stacked walkable
// surfaces that a single compact heightfield cannot represent.
type HeightfieldLayer struct {
	BMin, BMax    [3]float32
	Cs, Ch        float32
	Width, Height int32 // dimensions of the source CompactHeightfield's grid.
	Minx, Maxx    int32 // cell rectangle the layer's grids cover; each grid is
	Miny, Maxy    int32 // row-major with rows of Maxx-Minx+1 cells.
	Hmin, Hmax    int32    // vertical extent, in cell units above BMin.
	Heights       []uint8  // height above Hmin (at most 254), per cell, or unsetLayerHeight.
	Areas         []uint8  // area id, per cell.
	Cons          []uint8  // per-cell 4-bit neighbor connection mask.
}

// HeightfieldLayerSet is the output of BuildHeightfieldLayers: every layer
// shares the source CompactHeightfield's XZ grid but owns an independent
// vertical slab.
type HeightfieldLayerSet struct {
	Layers []HeightfieldLayer
}

const unsetLayerHeight uint8 = 0xff

// maxStackedLayers bounds the number of layer ids the DFS assignment in
// BuildHeightfieldLayers may hand out, before merging; needing more fails
// the call. The monotone region count that feeds into it is unbounded.
const maxStackedLayers = 63

type layerRegion struct {
	layers  []uint16
	neis    []uint16
	ymin    uint16
	ymax    uint16
	layerID uint8 // 0xff until assigned
}

func addUniqueLayerRegion(regs []uint16, v uint16) []uint16 {
	for _, r := range regs {
		if r == v {
			return regs
		}
	}
	return append(regs, v)
}

// BuildHeightfieldLayers partitions chf into a set of non-overlapping
// height layers, one per group of monotone regions that never stack on top
// of each other, so a single tile can hold multiple walkable stories. The
// package has no function that builds regions, contours or polygons from a
// HeightfieldLayer.
func BuildHeightfieldLayers(ctx *Context, chf *CompactHeightfield, borderSize, walkableHeight int32) (*HeightfieldLayerSet, bool) {
	ctx.StartTimer(TimerBuildLayers)
	defer ctx.StopTimer(TimerBuildLayers)

	w := chf.Width
	h := chf.Height

	// Partition the walkable surface into simple, monotone-increasing-X
	// regions: the same row-sweep BuildRegionsMonotone uses, but without
	// border painting — region ids here only group spans that can never
	// be vertically stacked, they never reach the contour tracer.
	srcReg := make([]uint16, chf.SpanCount)
	id := uint16(1)
	nsweeps := iMax(w, h)
	sweeps := make([]sweepSpan, nsweeps+1)
	prev := make([]int32, 256)

	for y := borderSize; y < h-borderSize; y++ {
		if int(id)+1 > len(prev) {
			prev = make([]int32, id+1)
		} else {
			for i := range prev {
				prev[i] = 0
			}
		}
		rid := uint16(1)

		for x := borderSize; x < w-borderSize; x++ {
			c := chf.Cells[x+y*w]
			for i := int32(c.Index); i < int32(c.Index)+int32(c.Count); i++ {
				s := &chf.Spans[i]
				if chf.Areas[i] == NullArea {
					continue
				}

				previd := uint16(0)
				if GetCon(s, 0) != NotConnected {
					ax := x + GetDirOffsetX(0)
					ay := y + GetDirOffsetY(0)
					ai := int32(chf.Cells[ax+ay*w].Index) + GetCon(s, 0)
					if srcReg[ai] != 0 && chf.Areas[i] == chf.Areas[ai] {
						previd = srcReg[ai]
					}
				}

				if previd == 0 {
					previd = rid
					rid++
					sweeps[previd].ns = 0
					sweeps[previd].nei = 0
				}

				if GetCon(s, 3) != NotConnected {
					ax := x + GetDirOffsetX(3)
					ay := y + GetDirOffsetY(3)
					ai := int32(chf.Cells[ax+ay*w].Index) + GetCon(s, 3)
					if srcReg[ai] != 0 && chf.Areas[i] == chf.Areas[ai] {
						nr := srcReg[ai]
						if sweeps[previd].nei == 0 || sweeps[previd].nei == nr {
							sweeps[previd].nei = nr
							sweeps[previd].ns++
							prev[nr]++
						} else {
							sweeps[previd].nei = nullNeighbour
						}
					}
				}

				srcReg[i] = previd
			}
		}

		for i := uint16(1); i < rid; i++ {
			if sweeps[i].nei != nullNeighbour && sweeps[i].nei != 0 && prev[sweeps[i].nei] == int32(sweeps[i].ns) {
				sweeps[i].id = sweeps[i].nei
			} else {
				sweeps[i].id = id
				id++
			}
		}

		for x := borderSize; x < w-borderSize; x++ {
			c := chf.Cells[x+y*w]
			for i := int32(c.Index); i < int32(c.Index)+int32(c.Count); i++ {
				if srcReg[i] > 0 && srcReg[i] < rid {
					srcReg[i] = sweeps[srcReg[i]].id
				}
			}
		}
	}

	nregions := int32(id)
	regs := make([]layerRegion, nregions)
	for i := range regs {
		regs[i].ymin = 0xffff
		regs[i].layerID = 0xff
	}

	// Compute each region's vertical extent and its connections: which
	// regions sit directly below/above it in the same column (overlaps,
	// can never share a layer) versus beside it (neighbors, can merge).
	for y := int32(0); y < h; y++ {
		for x := int32(0); x < w; x++ {
			c := chf.Cells[x+y*w]
			var lregs []uint16

			for i := int32(c.Index); i < int32(c.Index)+int32(c.Count); i++ {
				s := &chf.Spans[i]
				ri := srcReg[i]
				if ri == 0 {
					continue
				}

				reg := &regs[ri]
				reg.ymin = minU16(reg.ymin, s.Y)
				reg.ymax = uint16(iMax(int32(reg.ymax), int32(s.Y)+int32(s.H)))

				lregs = append(lregs, ri)

				for dir := int32(0); dir < 4; dir++ {
					if GetCon(s, dir) == NotConnected {
						continue
					}
					ax := x + GetDirOffsetX(dir)
					ay := y + GetDirOffsetY(dir)
					ai := int32(chf.Cells[ax+ay*w].Index) + GetCon(s, dir)
					rai := srcReg[ai]
					if rai != 0 && rai != ri {
						reg.neis = addUniqueLayerRegion(reg.neis, rai)
					}
				}
			}

			// Any two regions found in the same column overlap vertically
			// and must never be merged into a single layer.
			for i := range lregs {
				for j := i + 1; j < len(lregs); j++ {
					if lregs[i] == lregs[j] {
						continue
					}
					regs[lregs[i]].layers = addUniqueLayerRegion(regs[lregs[i]].layers, lregs[j])
					regs[lregs[j]].layers = addUniqueLayerRegion(regs[lregs[j]].layers, lregs[i])
				}
			}
		}
	}

	// Assign layer ids with a DFS over the neighbor graph (region ids start
	// at 1), skipping every region that overlaps a region already in the
	// current layer; root collects those overlaps.
	var layerID uint8
	stack := make([]int32, 0, nregions)

	for i := int32(1); i < nregions; i++ {
		if regs[i].layerID != 0xff {
			continue
		}
		if int32(layerID) >= maxStackedLayers {
			ctx.Errorf("BuildHeightfieldLayers: Too many layers (max: %d)", maxStackedLayers)
			return nil, false
		}

		var root layerRegion
		stack = stack[:0]
		stack = append(stack, i)

		for len(stack) > 0 {
			ri := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			reg := &regs[ri]
			if reg.layerID != 0xff || regionOverlapsLayer(&root, uint16(ri)) {
				continue
			}
			reg.layerID = layerID
			for _, l := range reg.layers {
				root.layers = addUniqueLayerRegion(root.layers, l)
			}

			for _, nei := range reg.neis {
				if regionOverlapsLayer(&root, nei) {
					continue
				}
				if regs[nei].layerID == 0xff {
					stack = append(stack, int32(nei))
				}
			}
		}
		layerID++
	}
	nlayers := int32(layerID)

	// Merge layers whose height ranges overlap or come within
	// mergeHeight*walkableHeight cells of each other, and whose region sets
	// do not conflict.
	const mergeHeight = 4
	for i := int32(0); i < nlayers; i++ {
		for j := i + 1; j < nlayers; j++ {
			if !layersCanMerge(regs, uint8(i), uint8(j), walkableHeight*mergeHeight) {
				continue
			}
			for k := range regs {
				if regs[k].layerID == uint8(j) {
					regs[k].layerID = uint8(i)
				}
			}
		}
	}

	// Compact layer ids to 0..n-1.
	remap := make([]int8, 256)
	for i := range remap {
		remap[i] = -1
	}
	var ncompact int8
	for i := range regs {
		id := regs[i].layerID
		if id == 0xff {
			continue
		}
		if remap[id] == -1 {
			remap[id] = ncompact
			ncompact++
		}
	}
	if ncompact == 0 {
		return &HeightfieldLayerSet{}, true
	}

	lset := &HeightfieldLayerSet{Layers: make([]HeightfieldLayer, ncompact)}

	bounds := make([]int32, ncompact*4)
	for i := range bounds {
		if i%4 == 0 || i%4 == 2 {
			bounds[i] = w
		}
	}
	hbounds := make([][2]int32, ncompact)
	for i := range hbounds {
		hbounds[i] = [2]int32{0xffff, 0}
	}

	for y := int32(0); y < h; y++ {
		for x := int32(0); x < w; x++ {
			c := chf.Cells[x+y*w]
			for i := int32(c.Index); i < int32(c.Index)+int32(c.Count); i++ {
				ri := srcReg[i]
				if ri == 0 {
					continue
				}
				lid := remap[regs[ri].layerID]
				if lid < 0 {
					continue
				}
				bounds[lid*4+0] = iMin(bounds[lid*4+0], x)
				bounds[lid*4+1] = iMax(bounds[lid*4+1], x)
				bounds[lid*4+2] = iMin(bounds[lid*4+2], y)
				bounds[lid*4+3] = iMax(bounds[lid*4+3], y)

				s := &chf.Spans[i]
				hbounds[lid][0] = iMin(hbounds[lid][0], int32(s.Y))
				hbounds[lid][1] = iMax(hbounds[lid][1], int32(s.Y)+int32(s.H))
			}
		}
	}

	for li := int8(0); li < ncompact; li++ {
		layer := &lset.Layers[li]
		minx, maxx := bounds[li*4+0], bounds[li*4+1]
		miny, maxy := bounds[li*4+2], bounds[li*4+3]
		if minx > maxx || miny > maxy {
			continue
		}

		lw := maxx - minx + 1
		lh := maxy - miny + 1

		layer.Width = w
		layer.Height = h
		layer.Minx = minx
		layer.Maxx = maxx
		layer.Miny = miny
		layer.Maxy = maxy
		layer.Hmin = hbounds[li][0]
		layer.Hmax = hbounds[li][1]
		layer.Cs = chf.Cs
		layer.Ch = chf.Ch
		layer.BMin = chf.BMin
		layer.BMax = chf.BMax
		layer.BMin[1] = chf.BMin[1] + float32(layer.Hmin)*chf.Ch
		layer.BMax[1] = chf.BMin[1] + float32(layer.Hmax)*chf.Ch

		layer.Heights = make([]uint8, lw*lh)
		layer.Areas = make([]uint8, lw*lh)
		layer.Cons = make([]uint8, lw*lh)
		for i := range layer.Heights {
			layer.Heights[i] = unsetLayerHeight
		}

		for y := miny; y <= maxy; y++ {
			for x := minx; x <= maxx; x++ {
				c := chf.Cells[x+y*w]
				for i := int32(c.Index); i < int32(c.Index)+int32(c.Count); i++ {
					ri := srcReg[i]
					if ri == 0 {
						continue
					}
					if remap[regs[ri].layerID] != li {
						continue
					}
					s := &chf.Spans[i]
					lidx := (x - minx) + (y-miny)*lw
					layer.Heights[lidx] = uint8(iMin(int32(s.Y)-layer.Hmin, int32(unsetLayerHeight)-1))
					layer.Areas[lidx] = chf.Areas[i]

					var con uint8
					for dir := int32(0); dir < 4; dir++ {
						if GetCon(s, dir) == NotConnected {
							continue
						}
						ax := x + GetDirOffsetX(dir)
						ay := y + GetDirOffsetY(dir)
						ai := int32(chf.Cells[ax+ay*w].Index) + GetCon(s, dir)
						rai := srcReg[ai]
						if rai != 0 && remap[regs[rai].layerID] == li {
							con |= 1 << uint(dir)
						}
					}
					layer.Cons[lidx] = con
				}
			}
		}
	}

	return lset, true
}

func regionOverlapsLayer(reg *layerRegion, nei uint16) bool {
	for _, l := range reg.layers {
		if l == nei {
			return true
		}
	}
	return false
}

// layersCanMerge reports whether layers a and b may be folded into one:
// their height ranges must overlap or lie within mergeHeight cells of each
// other, and no region in a may be recorded as overlapping a region in b.
func layersCanMerge(regs []layerRegion, a, b uint8, mergeHeight int32) bool {
	var amin, amax, bmin, bmax uint16 = 0xffff, 0, 0xffff, 0
	for i := range regs {
		if regs[i].layerID == a {
			amin = minU16(amin, regs[i].ymin)
			amax = uint16(iMax(int32(amax), int32(regs[i].ymax)))
		}
		if regs[i].layerID == b {
			bmin = minU16(bmin, regs[i].ymin)
			bmax = uint16(iMax(int32(bmax), int32(regs[i].ymax)))
		}
	}

	if int32(amin) > int32(bmax)+mergeHeight || int32(bmin) > int32(amax)+mergeHeight {
		return false
	}

	for i := range regs {
		if regs[i].layerID != a {
			continue
		}
		for _, nei := range regs[i].layers {
			if regs[nei].layerID == b {
				return false
			}
		}
	}
	return true
}

