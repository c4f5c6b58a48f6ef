package recast

// ErodeWalkableArea shrinks the walkable area of chf away from
// obstructions and unwalkable boundaries by radius cells: any span whose
// distance to the nearest non-walkable cell is less than radius is cleared
// to NullArea. It is normally called immediately after compaction, before
// region partitioning, so that regions keep a safety margin matching the
// agent's radius.
func ErodeWalkableArea(ctx *Context, radius int32, chf *CompactHeightfield) bool {
	ctx.StartTimer(TimerErodeArea)
	defer ctx.StopTimer(TimerErodeArea)

	w := chf.Width
	h := chf.Height

	dist := make([]uint8, chf.SpanCount)
	for i := range dist {
		dist[i] = 0xff
	}

	// Mark boundary cells: any non-walkable span, or any walkable span with
	// a missing or non-walkable neighbor, starts at distance 0.
	for y := int32(0); y < h; y++ {
		for x := int32(0); x < w; x++ {
			c := chf.Cells[x+y*w]
			ni := int32(c.Index) + int32(c.Count)
			for i := int32(c.Index); i < ni; i++ {
				if chf.Areas[i] == NullArea {
					dist[i] = 0
					continue
				}
				s := &chf.Spans[i]
				nc := int32(0)
				for dir := int32(0); dir < 4; dir++ {
					if GetCon(s, dir) != NotConnected {
						nx := x + GetDirOffsetX(dir)
						ny := y + GetDirOffsetY(dir)
						nidx := int32(chf.Cells[nx+ny*w].Index) + GetCon(s, dir)
						if chf.Areas[nidx] != NullArea {
							nc++
						}
					}
				}
				if nc != 4 {
					dist[i] = 0
				}
			}
		}
	}

	var nd uint8

	// Pass 1: propagate distance from the -X/-Z corner.
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
					nd = uint8(iMin(int32(dist[ai])+2, 255))
					if nd < dist[i] {
						dist[i] = nd
					}
					if GetCon(as, 3) != NotConnected {
						aax := ax + GetDirOffsetX(3)
						aay := ay + GetDirOffsetY(3)
						aai := int32(chf.Cells[aax+aay*w].Index) + GetCon(as, 3)
						nd = uint8(iMin(int32(dist[aai])+3, 255))
						if nd < dist[i] {
							dist[i] = nd
						}
					}
				}

				if GetCon(s, 3) != NotConnected {
					ax := x + GetDirOffsetX(3)
					ay := y + GetDirOffsetY(3)
					ai := int32(chf.Cells[ax+ay*w].Index) + GetCon(s, 3)
					as := &chf.Spans[ai]
					nd = uint8(iMin(int32(dist[ai])+2, 255))
					if nd < dist[i] {
						dist[i] = nd
					}
					if GetCon(as, 2) != NotConnected {
						aax := ax + GetDirOffsetX(2)
						aay := ay + GetDirOffsetY(2)
						aai := int32(chf.Cells[aax+aay*w].Index) + GetCon(as, 2)
						nd = uint8(iMin(int32(dist[aai])+3, 255))
						if nd < dist[i] {
							dist[i] = nd
						}
					}
				}
			}
		}
	}

	// Pass 2: propagate distance from the +X/+Z corner.
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
					nd = uint8(iMin(int32(dist[ai])+2, 255))
					if nd < dist[i] {
						dist[i] = nd
					}
					if GetCon(as, 1) != NotConnected {
						aax := ax + GetDirOffsetX(1)
						aay := ay + GetDirOffsetY(1)
						aai := int32(chf.Cells[aax+aay*w].Index) + GetCon(as, 1)
						nd = uint8(iMin(int32(dist[aai])+3, 255))
						if nd < dist[i] {
							dist[i] = nd
						}
					}
				}

				if GetCon(s, 1) != NotConnected {
					ax := x + GetDirOffsetX(1)
					ay := y + GetDirOffsetY(1)
					ai := int32(chf.Cells[ax+ay*w].Index) + GetCon(s, 1)
					as := &chf.Spans[ai]
					nd = uint8(iMin(int32(dist[ai])+2, 255))
					if nd < dist[i] {
						dist[i] = nd
					}
					if GetCon(as, 0) != NotConnected {
						aax := ax + GetDirOffsetX(0)
						aay := ay + GetDirOffsetY(0)
						aai := int32(chf.Cells[aax+aay*w].Index) + GetCon(as, 0)
						nd = uint8(iMin(int32(dist[aai])+3, 255))
						if nd < dist[i] {
							dist[i] = nd
						}
					}
				}
			}
		}
	}

	thr := uint8(iMin(radius*2, 255))
	for i := int32(0); i < chf.SpanCount; i++ {
		if dist[i] < thr {
			chf.Areas[i] = NullArea
		}
	}

	return true
}
