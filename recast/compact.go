package recast

// BuildCompactHeightfield builds a CompactHeightfield from hf, discarding
// unwalkable spans (NullArea) and condensing the remaining spans into a
// dense, per-column packed array with precomputed 4-directional neighbor
// links.
//
// A span's connection in a direction is valid only when the vertical
// overlap between the span and its candidate neighbor is at least
// walkableHeight cells and the step between their floors is at most
// walkableClimb cells; otherwise the direction is left unconnected
// (NotConnected).
func BuildCompactHeightfield(ctx *Context, walkableHeight, walkableClimb int32, hf *Heightfield) (*CompactHeightfield, bool) {
	ctx.StartTimer(TimerBuildCompactHeightfield)
	defer ctx.StopTimer(TimerBuildCompactHeightfield)

	w := hf.Width
	h := hf.Height

	spanCount := int32(0)
	for y := int32(0); y < h; y++ {
		for x := int32(0); x < w; x++ {
			for si := hf.ColumnHead(x, y); si != nilSpan; si = hf.NextSpan(si) {
				if hf.SpanAt(si).Area != NullArea {
					spanCount++
				}
			}
		}
	}

	chf := &CompactHeightfield{
		Width:          w,
		Height:         h,
		SpanCount:      spanCount,
		WalkableHeight: walkableHeight,
		WalkableClimb:  walkableClimb,
		MaxRegions:     0,
		BMin:           hf.BMin,
		BMax:           hf.BMax,
		Cs:             hf.Cs,
		Ch:             hf.Ch,
		Cells:          make([]CompactCell, w*h),
		Spans:          make([]CompactSpan, spanCount),
		Areas:          make([]uint8, spanCount),
	}
	chf.BMax[1] += float32(walkableHeight) * hf.Ch

	idx := uint32(0)
	for y := int32(0); y < h; y++ {
		for x := int32(0); x < w; x++ {
			si := hf.ColumnHead(x, y)
			if si == nilSpan {
				continue
			}
			c := &chf.Cells[x+y*w]
			c.Index = idx
			c.Count = 0

			for ; si != nilSpan; si = hf.NextSpan(si) {
				s := hf.SpanAt(si)
				if s.Area == NullArea {
					continue
				}

				bot := int32(s.Max)
				var top int32
				if ni := hf.NextSpan(si); ni != nilSpan {
					top = int32(hf.SpanAt(ni).Min)
				} else {
					top = 0x7fffffff
				}

				cs := &chf.Spans[idx]
				cs.Y = uint16(int32Clamp(bot, 0, 0xffff))
				cs.H = uint8(iMin(top-bot, 0xff))
				chf.Areas[idx] = s.Area

				idx++
				c.Count++
			}
		}
	}

	// Find neighbor connections.
	const maxLayers = NotConnected - 1
	tooHighNeighbour := int32(0)
	for y := int32(0); y < h; y++ {
		for x := int32(0); x < w; x++ {
			c := &chf.Cells[x+y*w]
			for i := int32(c.Index); i < int32(c.Index)+int32(c.Count); i++ {
				s := &chf.Spans[i]

				for dir := int32(0); dir < 4; dir++ {
					SetCon(s, dir, NotConnected)
					nx := x + GetDirOffsetX(dir)
					ny := y + GetDirOffsetY(dir)
					if nx < 0 || ny < 0 || nx >= w || ny >= h {
						continue
					}

					nc := &chf.Cells[nx+ny*w]
					for k := int32(nc.Index); k < int32(nc.Index)+int32(nc.Count); k++ {
						ns := &chf.Spans[k]

						bot := iMax(int32(s.Y), int32(ns.Y))
						top := iMin(int32(s.Y)+int32(s.H), int32(ns.Y)+int32(ns.H))

						if (top-bot) >= walkableHeight && iAbs(int32(ns.Y)-int32(s.Y)) <= walkableClimb {
							lidx := k - int32(nc.Index)
							if lidx < 0 || int32(lidx) > maxLayers {
								tooHighNeighbour = iMax(tooHighNeighbour, lidx)
								continue
							}
							SetCon(s, dir, lidx)
							break
						}
					}
				}
			}
		}
	}

	if tooHighNeighbour > maxLayers {
		ctx.Errorf("BuildCompactHeightfield: Heightfield has too many layers %d (max: %d)", tooHighNeighbour, maxLayers)
	}

	return chf, true
}
