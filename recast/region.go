package recast

// BuildDistanceField computes, for every walkable span in chf, a chamfer
// distance (2 per cardinal step, 3 per diagonal step) to the nearest span
// that lacks a connected same-area neighbor in one of the four directions.
// chf.MaxDistance receives the largest raw distance and chf.Dist the
// box-blurred field. The watershed region builder requires this field;
// BuildRegionsMonotone does not.
func BuildDistanceField(ctx *Context, chf *CompactHeightfield) bool {
	ctx.StartTimer(TimerBuildDistanceField)
	defer ctx.StopTimer(TimerBuildDistanceField)

	src := make([]uint16, chf.SpanCount)

	ctx.StartTimer(TimerBuildDistanceFieldDist)
	calculateDistanceField(chf, src)
	maxDist := uint16(0)
	for _, d := range src {
		if d > maxDist {
			maxDist = d
		}
	}
	ctx.StopTimer(TimerBuildDistanceFieldDist)

	ctx.StartTimer(TimerBuildDistanceFieldBlur)
	dst := boxBlur(chf, 1, src)
	ctx.StopTimer(TimerBuildDistanceFieldBlur)

	chf.MaxDistance = maxDist
	chf.Dist = dst
	return true
}

func calculateDistanceField(chf *CompactHeightfield, src []uint16) {
	w := chf.Width
	h := chf.Height

	for i := range src {
		src[i] = 0xffff
	}

	// Mark boundary cells.
	for y := int32(0); y < h; y++ {
		for x := int32(0); x < w; x++ {
			c := chf.Cells[x+y*w]
			ni := int32(c.Index) + int32(c.Count)
			for i := int32(c.Index); i < ni; i++ {
				s := &chf.Spans[i]
				area := chf.Areas[i]

				nc := 0
				for dir := int32(0); dir < 4; dir++ {
					if GetCon(s, dir) != NotConnected {
						ax := x + GetDirOffsetX(dir)
						ay := y + GetDirOffsetY(dir)
						ai := int32(chf.Cells[ax+ay*w].Index) + GetCon(s, dir)
						if chf.Areas[ai] == area {
							nc++
						}
					}
				}
				if nc != 4 {
					src[i] = 0
				}
			}
		}
	}

	var nd uint16

	// Pass 1.
	for y := int32(0); y < h; y++ {
		for x := int32(0); x < w; x++ {
			c := chf.Cells[x+y*w]
			ni := int32(c.Index) + int32(c.Count)
			for i := int32(c.Index); i < ni; i++ {
				s := &chf.Spans[i]

				if GetCon(s, 0) != NotConnected {
					ax := x + GetDirOffsetX(0)
					ay := y + GetDirOffsetY(0)
					ai := int32(chf.Cells[ax+ay*w].Index) + GetCon(s, 0)
					as := &chf.Spans[ai]
					nd = minU16(src[ai]+2, 65535)
					if nd < src[i] {
						src[i] = nd
					}
					if GetCon(as, 3) != NotConnected {
						aax := ax + GetDirOffsetX(3)
						aay := ay + GetDirOffsetY(3)
						aai := int32(chf.Cells[aax+aay*w].Index) + GetCon(as, 3)
						nd = minU16(src[aai]+3, 65535)
						if nd < src[i] {
							src[i] = nd
						}
					}
				}
				if GetCon(s, 3) != NotConnected {
					ax := x + GetDirOffsetX(3)
					ay := y + GetDirOffsetY(3)
					ai := int32(chf.Cells[ax+ay*w].Index) + GetCon(s, 3)
					as := &chf.Spans[ai]
					nd = minU16(src[ai]+2, 65535)
					if nd < src[i] {
						src[i] = nd
					}
					if GetCon(as, 2) != NotConnected {
						aax := ax + GetDirOffsetX(2)
						aay := ay + GetDirOffsetY(2)
						aai := int32(chf.Cells[aax+aay*w].Index) + GetCon(as, 2)
						nd = minU16(src[aai]+3, 65535)
						if nd < src[i] {
							src[i] = nd
						}
					}
				}
			}
		}
	}

	// Pass 2.
	for y := h - 1; y >= 0; y-- {
		for x := w - 1; x >= 0; x-- {
			c := chf.Cells[x+y*w]
			ni := int32(c.Index) + int32(c.Count)
			for i := int32(c.Index); i < ni; i++ {
				s := &chf.Spans[i]

				if GetCon(s, 2) != NotConnected {
					ax := x + GetDirOffsetX(2)
					ay := y + GetDirOffsetY(2)
					ai := int32(chf.Cells[ax+ay*w].Index) + GetCon(s, 2)
					as := &chf.Spans[ai]
					nd = minU16(src[ai]+2, 65535)
					if nd < src[i] {
						src[i] = nd
					}
					if GetCon(as, 1) != NotConnected {
						aax := ax + GetDirOffsetX(1)
						aay := ay + GetDirOffsetY(1)
						aai := int32(chf.Cells[aax+aay*w].Index) + GetCon(as, 1)
						nd = minU16(src[aai]+3, 65535)
						if nd < src[i] {
							src[i] = nd
						}
					}
				}
				if GetCon(s, 1) != NotConnected {
					ax := x + GetDirOffsetX(1)
					ay := y + GetDirOffsetY(1)
					ai := int32(chf.Cells[ax+ay*w].Index) + GetCon(s, 1)
					as := &chf.Spans[ai]
					nd = minU16(src[ai]+2, 65535)
					if nd < src[i] {
						src[i] = nd
					}
					if GetCon(as, 0) != NotConnected {
						aax := ax + GetDirOffsetX(0)
						aay := ay + GetDirOffsetY(0)
						aai := int32(chf.Cells[aax+aay*w].Index) + GetCon(as, 0)
						nd = minU16(src[aai]+3, 65535)
						if nd < src[i] {
							src[i] = nd
						}
					}
				}
			}
		}
	}
}

func minU16(a, b uint16) uint16 {
	if a < b {
		return a
	}
	return b
}

func boxBlur(chf *CompactHeightfield, thr int32, src []uint16) []uint16 {
	w := chf.Width
	h := chf.Height
	dst := make([]uint16, chf.SpanCount)

	thr2 := thr * 2

	for y := int32(0); y < h; y++ {
		for x := int32(0); x < w; x++ {
			c := chf.Cells[x+y*w]
			ni := int32(c.Index) + int32(c.Count)
			for i := int32(c.Index); i < ni; i++ {
				cd := src[i]
				if int32(cd) <= thr {
					dst[i] = cd
					continue
				}

				s := &chf.Spans[i]
				d := int32(cd)
				for dir := int32(0); dir < 4; dir++ {
					if GetCon(s, dir) != NotConnected {
						ax := x + GetDirOffsetX(dir)
						ay := y + GetDirOffsetY(dir)
						ai := int32(chf.Cells[ax+ay*w].Index) + GetCon(s, dir)
						d += int32(src[ai])

						as := &chf.Spans[ai]
						dir2 := (dir + 1) & 0x3
						if GetCon(as, dir2) != NotConnected {
							ax2 := ax + GetDirOffsetX(dir2)
							ay2 := ay + GetDirOffsetY(dir2)
							ai2 := int32(chf.Cells[ax2+ay2*w].Index) + GetCon(as, dir2)
							d += int32(src[ai2])
						} else {
							d += int32(cd)
						}
					} else {
						d += 2 * int32(cd)
					}
				}
				dst[i] = uint16((d + thr2/2) / (thr2 + 1))
			}
		}
	}

	return dst
}

// BuildRegionsMonotone builds region data for chf using simple monotone
// partitioning: spans are swept row by row and assigned contiguous region
// ids, with no distance field required.
//
// Non-null regions consist of connected, non-overlapping walkable spans
// forming a single contour; each contour forms a simple polygon. If
// multiple regions together span fewer than minRegionArea cells, all of
// their spans are reassigned to the null region. mergeRegionArea asks that
// regions smaller than this be merged into a larger neighbor when possible,
// to offset monotone partitioning's tendency to produce slivers.
//
// Region assignment is stored in chf.MaxRegions and each CompactSpan.Reg.
func BuildRegionsMonotone(ctx *Context, chf *CompactHeightfield,
	borderSize, minRegionArea, mergeRegionArea int32) bool {
	ctx.StartTimer(TimerBuildRegions)
	defer ctx.StopTimer(TimerBuildRegions)

	w := chf.Width
	h := chf.Height
	id := uint16(1)

	srcReg := make([]uint16, chf.SpanCount)
	nsweeps := iMax(chf.Width, chf.Height)
	sweeps := make([]sweepSpan, nsweeps+1)

	if borderSize > 0 {
		bw := iMin(w, borderSize)
		bh := iMin(h, borderSize)
		paintRectRegion(0, bw, 0, h, id|BorderReg, chf, srcReg)
		id++
		paintRectRegion(w-bw, w, 0, h, id|BorderReg, chf, srcReg)
		id++
		paintRectRegion(0, w, 0, bh, id|BorderReg, chf, srcReg)
		id++
		paintRectRegion(0, w, h-bh, h, id|BorderReg, chf, srcReg)
		id++

		chf.BorderSize = borderSize
	}

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
			c := &chf.Cells[x+y*w]

			i := int32(c.Index)
			for ni := int32(c.Index) + int32(c.Count); i < ni; i++ {
				s := &chf.Spans[i]
				if chf.Areas[i] == NullArea {
					continue
				}

				previd := uint16(0)
				if GetCon(s, 0) != NotConnected {
					ax := x + GetDirOffsetX(0)
					ay := y + GetDirOffsetY(0)
					ai := int32(chf.Cells[ax+ay*w].Index) + GetCon(s, 0)
					if (srcReg[ai]&BorderReg) == 0 && chf.Areas[i] == chf.Areas[ai] {
						previd = srcReg[ai]
					}
				}

				if previd == 0 {
					previd = rid
					rid++
					sweeps[previd].rid = previd
					sweeps[previd].ns = 0
					sweeps[previd].nei = 0
				}

				if GetCon(s, 3) != NotConnected {
					ax := x + GetDirOffsetX(3)
					ay := y + GetDirOffsetY(3)
					ai := int32(chf.Cells[ax+ay*w].Index) + GetCon(s, 3)
					if srcReg[ai] != 0 && (srcReg[ai]&BorderReg) == 0 && chf.Areas[i] == chf.Areas[ai] {
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
			c := &chf.Cells[x+y*w]
			i := int32(c.Index)
			for ni := int32(c.Index) + int32(c.Count); i < ni; i++ {
				if srcReg[i] > 0 && srcReg[i] < rid {
					srcReg[i] = sweeps[srcReg[i]].id
				}
			}
		}
	}

	ctx.StartTimer(TimerBuildRegionsFilter)
	overlaps := make([]int32, 0)
	chf.MaxRegions = id
	if !mergeAndFilterRegions(ctx, minRegionArea, mergeRegionArea, &chf.MaxRegions, chf, srcReg, &overlaps) {
		ctx.StopTimer(TimerBuildRegionsFilter)
		return false
	}
	ctx.StopTimer(TimerBuildRegionsFilter)

	for i := int32(0); i < chf.SpanCount; i++ {
		chf.Spans[i].Reg = srcReg[i]
	}

	return true
}

// BuildRegions builds region data for chf using watershed partitioning,
// growing regions outward from local distance-field maxima found via
// BuildDistanceField. Watershed partitioning gives tighter regions than
// monotone partitioning, especially along diagonal corridors, at higher
// cost; mergeRegionArea still helps fold slivers into their neighbors.
//
// The distance field must already be populated via BuildDistanceField.
func BuildRegions(ctx *Context, chf *CompactHeightfield,
	borderSize, minRegionArea, mergeRegionArea int32) bool {
	ctx.StartTimer(TimerBuildRegions)
	defer ctx.StopTimer(TimerBuildRegions)

	w := chf.Width
	h := chf.Height

	buf := make([]uint16, chf.SpanCount*4)
	ctx.StartTimer(TimerBuildRegionsWatershed)

	const (
		logNbStacks = 3
		nbStacks    = 1 << logNbStacks
	)

	lvlStacks := make([][]int32, nbStacks)
	for i := range lvlStacks {
		lvlStacks[i] = make([]int32, 0, 256)
	}
	stack := make([]int32, 0, 256)

	srcReg := buf[:chf.SpanCount]
	srcDist := buf[chf.SpanCount : chf.SpanCount*2]
	dstReg := buf[chf.SpanCount*2 : chf.SpanCount*3]
	dstDist := buf[chf.SpanCount*3:]

	regionID := uint16(1)
	level := (chf.MaxDistance + 1) &^ 1

	const expandIters int32 = 8

	if borderSize > 0 {
		bw := iMin(w, borderSize)
		bh := iMin(h, borderSize)

		paintRectRegion(0, bw, 0, h, regionID|BorderReg, chf, srcReg)
		regionID++
		paintRectRegion(w-bw, w, 0, h, regionID|BorderReg, chf, srcReg)
		regionID++
		paintRectRegion(0, w, 0, bh, regionID|BorderReg, chf, srcReg)
		regionID++
		paintRectRegion(0, w, h-bh, h, regionID|BorderReg, chf, srcReg)
		regionID++

		chf.BorderSize = borderSize
	}

	sID := -1
	for level > 0 {
		if level >= 2 {
			level -= 2
		} else {
			level = 0
		}
		sID = (sID + 1) & (nbStacks - 1)

		if sID == 0 {
			sortCellsByLevel(int32(level), chf, srcReg, nbStacks, lvlStacks, 1)
		} else {
			lvlStacks[sID] = appendStacks(lvlStacks[sID-1], lvlStacks[sID], srcReg)
		}

		ctx.StartTimer(TimerBuildRegionsExpand)
		if swapped := expandRegions(expandIters, int32(level), chf, &srcReg, &srcDist, &dstReg, &dstDist, &lvlStacks[sID], false); swapped {
			srcReg, dstReg = dstReg, srcReg
			srcDist, dstDist = dstDist, srcDist
		}
		ctx.StopTimer(TimerBuildRegionsExpand)

		ctx.StartTimer(TimerBuildRegionsFlood)
		for j := 0; j < len(lvlStacks[sID]); j += 3 {
			x := lvlStacks[sID][j]
			y := lvlStacks[sID][j+1]
			i := lvlStacks[sID][j+2]
			if i >= 0 && srcReg[i] == 0 {
				if floodRegion(x, y, i, level, regionID, chf, srcReg, srcDist, &stack) {
					if regionID == 0xffff {
						ctx.Errorf("BuildRegions: region id overflow")
						ctx.StopTimer(TimerBuildRegionsFlood)
						return false
					}
					regionID++
				}
			}
		}
		ctx.StopTimer(TimerBuildRegionsFlood)
	}

	if swapped := expandRegions(expandIters*8, 0, chf, &srcReg, &srcDist, &dstReg, &dstDist, &stack, true); swapped {
		srcReg, dstReg = dstReg, srcReg
		srcDist, dstDist = dstDist, srcDist
	}
	ctx.StopTimer(TimerBuildRegionsWatershed)

	ctx.StartTimer(TimerBuildRegionsFilter)
	var overlaps []int32
	chf.MaxRegions = regionID
	if !mergeAndFilterRegions(ctx, minRegionArea, mergeRegionArea, &chf.MaxRegions, chf, srcReg, &overlaps) {
		ctx.StopTimer(TimerBuildRegionsFilter)
		return false
	}
	if len(overlaps) > 0 {
		ctx.Errorf("BuildRegions: %d overlapping regions", len(overlaps))
	}
	ctx.StopTimer(TimerBuildRegionsFilter)

	for i := int32(0); i < chf.SpanCount; i++ {
		chf.Spans[i].Reg = srcReg[i]
	}

	return true
}

func paintRectRegion(minx, maxx, miny, maxy int32, regID uint16, chf *CompactHeightfield, srcReg []uint16) {
	w := chf.Width
	for y := miny; y < maxy; y++ {
		for x := minx; x < maxx; x++ {
			c := &chf.Cells[x+y*w]
			i := int32(c.Index)
			for ni := int32(c.Index) + int32(c.Count); i < ni; i++ {
				if chf.Areas[i] != NullArea {
					srcReg[i] = regID
				}
			}
		}
	}
}

func floodRegion(x, y, i int32, level, r uint16,
	chf *CompactHeightfield, srcReg, srcDist []uint16, stack *[]int32) bool {
	w := chf.Width
	area := chf.Areas[i]

	*stack = (*stack)[:0]
	*stack = append(*stack, x, y, i)
	srcReg[i] = r
	srcDist[i] = 0

	var lev uint16
	if level >= 2 {
		lev = level - 2
	}
	count := int32(0)

	for len(*stack) > 0 {
		ci := (*stack)[len(*stack)-1]
		cy := (*stack)[len(*stack)-2]
		cx := (*stack)[len(*stack)-3]
		*stack = (*stack)[:len(*stack)-3]

		cs := &chf.Spans[ci]

		var ar uint16
		for dir := int32(0); dir < 4; dir++ {
			if GetCon(cs, dir) != NotConnected {
				ax := cx + GetDirOffsetX(dir)
				ay := cy + GetDirOffsetY(dir)
				ai := int32(chf.Cells[ax+ay*w].Index) + GetCon(cs, dir)
				if chf.Areas[ai] != area {
					continue
				}
				nr := srcReg[ai]
				if (nr & BorderReg) != 0 {
					continue
				}
				if nr != 0 && nr != r {
					ar = nr
					break
				}

				as := &chf.Spans[ai]
				dir2 := (dir + 1) & 0x3
				if GetCon(as, dir2) != NotConnected {
					ax2 := ax + GetDirOffsetX(dir2)
					ay2 := ay + GetDirOffsetY(dir2)
					ai2 := int32(chf.Cells[ax2+ay2*w].Index) + GetCon(as, dir2)
					if chf.Areas[ai2] != area {
						continue
					}
					nr2 := srcReg[ai2]
					if nr2 != 0 && nr2 != r {
						ar = nr2
						break
					}
				}
			}
		}
		if ar != 0 {
			srcReg[ci] = 0
			continue
		}

		count++

		for dir := int32(0); dir < 4; dir++ {
			if GetCon(cs, dir) != NotConnected {
				ax := cx + GetDirOffsetX(dir)
				ay := cy + GetDirOffsetY(dir)
				ai := int32(chf.Cells[ax+ay*w].Index) + GetCon(cs, dir)
				if chf.Areas[ai] != area {
					continue
				}
				if chf.Dist[ai] >= lev && srcReg[ai] == 0 {
					srcReg[ai] = r
					srcDist[ai] = 0
					*stack = append(*stack, ax, ay, ai)
				}
			}
		}
	}

	return count > 0
}

func expandRegions(maxIter int32, level int32,
	chf *CompactHeightfield,
	srcReg, srcDist, dstReg, dstDist *[]uint16,
	stack *[]int32, fillStack bool) (swapped bool) {
	w := chf.Width
	h := chf.Height

	if fillStack {
		*stack = (*stack)[:0]
		for y := int32(0); y < h; y++ {
			for x := int32(0); x < w; x++ {
				c := chf.Cells[x+y*w]
				i := int32(c.Index)
				for ni := int32(c.Index) + int32(c.Count); i < ni; i++ {
					if int32(chf.Dist[i]) >= level && (*srcReg)[i] == 0 && chf.Areas[i] != NullArea {
						*stack = append(*stack, x, y, i)
					}
				}
			}
		}
	} else {
		for j := 0; j < len(*stack); j += 3 {
			i := (*stack)[j+2]
			if (*srcReg)[i] != 0 {
				(*stack)[j+2] = -1
			}
		}
	}

	var iter int32
	for len(*stack) > 0 {
		failed := 0

		copy(*dstReg, (*srcReg)[:chf.SpanCount])
		copy(*dstDist, (*srcDist)[:chf.SpanCount])

		for j := 0; j < len(*stack); j += 3 {
			x := (*stack)[j+0]
			y := (*stack)[j+1]
			i := (*stack)[j+2]
			if i < 0 {
				failed++
				continue
			}

			r := (*srcReg)[i]
			d2 := int32(0xffff)
			area := chf.Areas[i]
			s := &chf.Spans[i]

			for dir := int32(0); dir < 4; dir++ {
				if GetCon(s, dir) == NotConnected {
					continue
				}
				ax := x + GetDirOffsetX(dir)
				ay := y + GetDirOffsetY(dir)
				ai := int32(chf.Cells[ax+ay*w].Index) + GetCon(s, dir)
				if chf.Areas[ai] != area {
					continue
				}
				if (*srcReg)[ai] > 0 && ((*srcReg)[ai]&BorderReg) == 0 {
					if int32((*srcDist)[ai])+2 < d2 {
						r = (*srcReg)[ai]
						d2 = int32((*srcDist)[ai]) + 2
					}
				}
			}
			if r != 0 {
				(*stack)[j+2] = -1
				(*dstReg)[i] = r
				(*dstDist)[i] = uint16(d2)
			} else {
				failed++
			}
		}

		*srcReg, *dstReg = *dstReg, *srcReg
		*srcDist, *dstDist = *dstDist, *srcDist
		swapped = !swapped

		if failed*3 == len(*stack) {
			break
		}

		if level > 0 {
			iter++
			if iter >= maxIter {
				break
			}
		}
	}

	return swapped
}

func sortCellsByLevel(startLevel int32, chf *CompactHeightfield, srcReg []uint16,
	nbStacks int32, stacks [][]int32, logLevelsPerStack uint16) {
	w := chf.Width
	h := chf.Height
	start := uint16(startLevel) >> logLevelsPerStack

	for j := int32(0); j < nbStacks; j++ {
		stacks[j] = stacks[j][:0]
	}

	for y := int32(0); y < h; y++ {
		for x := int32(0); x < w; x++ {
			c := chf.Cells[x+y*w]
			i := int32(c.Index)
			for ni := int32(c.Index) + int32(c.Count); i < ni; i++ {
				if chf.Areas[i] == NullArea || srcReg[i] != 0 {
					continue
				}

				lvl := chf.Dist[i] >> logLevelsPerStack
				sID := int32(start) - int32(lvl)
				if sID >= nbStacks {
					continue
				}
				if sID < 0 {
					sID = 0
				}

				stacks[sID] = append(stacks[sID], x, y, i)
			}
		}
	}
}

func appendStacks(srcStack, dstStack []int32, srcReg []uint16) []int32 {
	for j := 0; j < len(srcStack); j += 3 {
		i := srcStack[j+2]
		if i < 0 || srcReg[i] != 0 {
			continue
		}
		dstStack = append(dstStack, srcStack[j:j+3]...)
	}
	return dstStack
}

// Region tracks the spans, adjacency and floor overlaps discovered for one
// region id while mergeAndFilterRegions consolidates the raw sweep/flood
// output into the final region set.
type Region struct {
	SpanCount        int32
	ID               uint16
	AreaType         uint8
	Remap, Visited   bool
	Overlap          bool
	ConnectsToBorder bool
	YMin, YMax       uint16
	Connections      []int32
	Floors           []int32
}

func newRegion(i int) *Region {
	return &Region{
		ID:   uint16(i),
		YMin: 0xffff,
		YMax: 0,
	}
}

func (reg *Region) removeAdjacentNeighbours() {
	for i := 0; i < len(reg.Connections) && len(reg.Connections) > 1; {
		ni := (i + 1) % len(reg.Connections)
		if reg.Connections[i] == reg.Connections[ni] {
			for j := i; j < len(reg.Connections)-1; j++ {
				reg.Connections[j] = reg.Connections[j+1]
			}
			reg.Connections = reg.Connections[:len(reg.Connections)-1]
		} else {
			i++
		}
	}
}

func (reg *Region) replaceNeighbour(oldID, newID uint16) {
	var neiChanged bool
	for i := range reg.Connections {
		if reg.Connections[i] == int32(oldID) {
			reg.Connections[i] = int32(newID)
			neiChanged = true
		}
	}
	for i := range reg.Floors {
		if reg.Floors[i] == int32(oldID) {
			reg.Floors[i] = int32(newID)
		}
	}
	if neiChanged {
		reg.removeAdjacentNeighbours()
	}
}

func (reg *Region) canMergeWithRegion(reg2 *Region) bool {
	if reg.AreaType != reg2.AreaType {
		return false
	}
	n := 0
	for i := 0; i < len(reg.Connections); i++ {
		if reg.Connections[i] == int32(reg2.ID) {
			n++
		}
	}
	if n > 1 {
		return false
	}
	for i := 0; i < len(reg.Floors); i++ {
		if reg.Floors[i] == int32(reg2.ID) {
			return false
		}
	}
	return true
}

func (reg *Region) addUniqueFloorRegion(n int32) {
	for i := 0; i < len(reg.Floors); i++ {
		if reg.Floors[i] == n {
			return
		}
	}
	reg.Floors = append(reg.Floors, n)
}

func mergeRegions(rega, regb *Region) bool {
	aid := rega.ID
	bid := regb.ID

	acon := make([]int32, len(rega.Connections))
	copy(acon, rega.Connections)
	bcon := regb.Connections

	insa := int32(-1)
	for i := 0; i < len(acon); i++ {
		if acon[i] == int32(bid) {
			insa = int32(i)
			break
		}
	}
	if insa == -1 {
		return false
	}

	insb := int32(-1)
	for i := 0; i < len(bcon); i++ {
		if bcon[i] == int32(aid) {
			insb = int32(i)
			break
		}
	}
	if insb == -1 {
		return false
	}

	rega.Connections = make([]int32, 0, len(acon)+len(bcon))
	for i, ni := int32(0), int32(len(acon)); i < ni-1; i++ {
		rega.Connections = append(rega.Connections, acon[(insa+1+i)%ni])
	}
	for i, ni := int32(0), int32(len(bcon)); i < ni-1; i++ {
		rega.Connections = append(rega.Connections, bcon[(insb+1+i)%ni])
	}

	rega.removeAdjacentNeighbours()

	for j := 0; j < len(regb.Floors); j++ {
		rega.addUniqueFloorRegion(regb.Floors[j])
	}
	rega.SpanCount += regb.SpanCount
	regb.SpanCount = 0
	regb.Connections = regb.Connections[:0]

	return true
}

func (reg *Region) isConnectedToBorder() bool {
	for _, conn := range reg.Connections {
		if conn == 0 {
			return true
		}
	}
	return false
}

func isSolidEdge(chf *CompactHeightfield, srcReg []uint16, x, y, i, dir int32) bool {
	s := &chf.Spans[i]
	var r uint16
	if GetCon(s, dir) != NotConnected {
		ax := x + GetDirOffsetX(dir)
		ay := y + GetDirOffsetY(dir)
		ai := int32(chf.Cells[ax+ay*chf.Width].Index) + GetCon(s, dir)
		r = srcReg[ai]
	}
	return r != srcReg[i]
}

func walkContour(x, y, i, dir int32, chf *CompactHeightfield, srcReg []uint16, cont *[]int32) {
	startDir := dir
	starti := i

	ss := &chf.Spans[i]
	var curReg uint16
	if GetCon(ss, dir) != NotConnected {
		ax := x + GetDirOffsetX(dir)
		ay := y + GetDirOffsetY(dir)
		ai := int32(chf.Cells[ax+ay*chf.Width].Index) + GetCon(ss, dir)
		curReg = srcReg[ai]
	}
	*cont = append(*cont, int32(curReg))

	for iter := 0; iter < 40000; iter++ {
		s := &chf.Spans[i]

		if isSolidEdge(chf, srcReg, x, y, i, dir) {
			var r uint16
			if GetCon(s, dir) != NotConnected {
				ax := x + GetDirOffsetX(dir)
				ay := y + GetDirOffsetY(dir)
				ai := int32(chf.Cells[ax+ay*chf.Width].Index) + GetCon(s, dir)
				r = srcReg[ai]
			}
			if r != curReg {
				curReg = r
				*cont = append(*cont, int32(curReg))
			}
			dir = (dir + 1) & 0x3
		} else {
			ni := int32(-1)
			nx := x + GetDirOffsetX(dir)
			ny := y + GetDirOffsetY(dir)
			if GetCon(s, dir) != NotConnected {
				ni = int32(chf.Cells[nx+ny*chf.Width].Index) + GetCon(s, dir)
			}
			if ni == -1 {
				return
			}
			x = nx
			y = ny
			i = ni
			dir = (dir + 3) & 0x3
		}

		if starti == i && startDir == dir {
			break
		}
	}

	if len(*cont) > 1 {
		for j := 0; j < len(*cont); {
			nj := (j + 1) % len(*cont)
			if (*cont)[j] == (*cont)[nj] {
				for k := j; k < len(*cont)-1; k++ {
					(*cont)[k] = (*cont)[k+1]
				}
				*cont = (*cont)[:len(*cont)-1]
			} else {
				j++
			}
		}
	}
}

func mergeAndFilterRegions(ctx *Context, minRegionArea, mergeRegionSize int32,
	maxRegionID *uint16, chf *CompactHeightfield, srcReg []uint16, overlaps *[]int32) bool {
	w := chf.Width
	h := chf.Height

	nreg := (*maxRegionID) + 1
	regions := make([]*Region, nreg)
	for ridx := range regions {
		regions[ridx] = newRegion(ridx)
	}

	for y := int32(0); y < h; y++ {
		for x := int32(0); x < w; x++ {
			c := &chf.Cells[x+y*w]
			i2 := int32(c.Index)
			for ni := int32(c.Index) + int32(c.Count); i2 < ni; i2++ {
				r := srcReg[i2]
				if r == 0 || r >= nreg {
					continue
				}

				reg := regions[r]
				reg.SpanCount++

				for j0 := int32(c.Index); j0 < ni; j0++ {
					if i2 == j0 {
						continue
					}
					floorID := srcReg[j0]
					if floorID == 0 || floorID >= nreg {
						continue
					}
					if floorID == r {
						reg.Overlap = true
					}
					reg.addUniqueFloorRegion(int32(floorID))
				}

				if len(reg.Connections) > 0 {
					continue
				}

				reg.AreaType = chf.Areas[i2]

				ndir := int32(-1)
				for dir := int32(0); dir < 4; dir++ {
					if isSolidEdge(chf, srcReg, x, y, i2, dir) {
						ndir = dir
						break
					}
				}

				if ndir != -1 {
					walkContour(x, y, i2, ndir, chf, srcReg, &reg.Connections)
				}
			}
		}
	}

	stack := make([]int32, 0, 32)
	trace := make([]int32, 0, 32)
	for i3 := uint16(0); i3 < nreg; i3++ {
		reg := regions[i3]
		if reg.ID == 0 || (reg.ID&BorderReg) != 0 {
			continue
		}
		if reg.SpanCount == 0 || reg.Visited {
			continue
		}

		connectsToBorder := false
		spanCount := int32(0)
		stack = stack[:0]
		trace = trace[:0]

		reg.Visited = true
		stack = append(stack, int32(i3))

		for len(stack) > 0 {
			ri := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			creg := regions[ri]
			spanCount += creg.SpanCount
			trace = append(trace, ri)

			for j1 := 0; j1 < len(creg.Connections); j1++ {
				if (creg.Connections[j1] & int32(BorderReg)) != 0 {
					connectsToBorder = true
					continue
				}
				neireg := regions[creg.Connections[j1]]
				if neireg.Visited {
					continue
				}
				if neireg.ID == 0 || (neireg.ID&BorderReg) != 0 {
					continue
				}
				stack = append(stack, int32(neireg.ID))
				neireg.Visited = true
			}
		}

		if spanCount < minRegionArea && !connectsToBorder {
			for j2 := 0; j2 < len(trace); j2++ {
				regions[trace[j2]].SpanCount = 0
				regions[trace[j2]].ID = 0
			}
		}
	}

	for {
		mergeCount := 0
		for i4 := uint16(0); i4 < nreg; i4++ {
			reg := regions[i4]
			if reg.ID == 0 || (reg.ID&BorderReg) != 0 || reg.Overlap || reg.SpanCount == 0 {
				continue
			}

			if reg.SpanCount > mergeRegionSize && reg.isConnectedToBorder() {
				continue
			}

			smallest := int32(0xfffffff)
			mergeID := reg.ID
			for j3 := 0; j3 < len(reg.Connections); j3++ {
				if (reg.Connections[j3] & int32(BorderReg)) != 0 {
					continue
				}
				mreg := regions[reg.Connections[j3]]
				if mreg.ID == 0 || (mreg.ID&BorderReg) != 0 || mreg.Overlap {
					continue
				}
				if mreg.SpanCount < smallest && reg.canMergeWithRegion(mreg) && mreg.canMergeWithRegion(reg) {
					smallest = mreg.SpanCount
					mergeID = mreg.ID
				}
			}
			if mergeID != reg.ID {
				oldID := reg.ID
				target := regions[mergeID]

				if mergeRegions(target, reg) {
					for j4 := uint16(0); j4 < nreg; j4++ {
						if regions[j4].ID == 0 || (regions[j4].ID&BorderReg) != 0 {
							continue
						}
						if regions[j4].ID == oldID {
							regions[j4].ID = mergeID
						}
						regions[j4].replaceNeighbour(oldID, mergeID)
					}
					mergeCount++
				}
			}
		}
		if mergeCount == 0 {
			break
		}
	}

	for i5 := uint16(0); i5 < nreg; i5++ {
		regions[i5].Remap = false
		if regions[i5].ID == 0 || (regions[i5].ID&BorderReg) != 0 {
			continue
		}
		regions[i5].Remap = true
	}

	var regIDGen uint16
	for i6 := uint16(0); i6 < nreg; i6++ {
		if !regions[i6].Remap {
			continue
		}
		oldID := regions[i6].ID
		regIDGen++
		newID := regIDGen
		for j5 := i6; j5 < nreg; j5++ {
			if regions[j5].ID == oldID {
				regions[j5].ID = newID
				regions[j5].Remap = false
			}
		}
	}
	*maxRegionID = regIDGen

	for i7 := int32(0); i7 < chf.SpanCount; i7++ {
		if (srcReg[i7] & BorderReg) == 0 {
			srcReg[i7] = regions[srcReg[i7]].ID
		}
	}

	for i8 := uint16(0); i8 < nreg; i8++ {
		if regions[i8].Overlap {
			*overlaps = append(*overlaps, int32(regions[i8].ID))
		}
	}

	return true
}

const nullNeighbour uint16 = 0xffff

type sweepSpan struct {
	rid uint16
	id  uint16
	ns  uint16
	nei uint16
}
