package recast

// FilterLowHangingWalkableObstacles allows walkable regions to flow over
// low-lying obstacles such as curbs and up onto structures such as
// stairways: for every column, a non-walkable span whose top is within
// walkableClimb cells of the walkable span directly below it inherits that
// span's area.
//
// Call FilterLedgeSpans after this filter; it overrides this filter's
// effect where the two disagree.
func FilterLowHangingWalkableObstacles(ctx *Context, walkableClimb int32, solid *Heightfield) {
	ctx.StartTimer(TimerFilterLowObstacles)
	defer ctx.StopTimer(TimerFilterLowObstacles)

	w := solid.Width
	h := solid.Height

	for y := int32(0); y < h; y++ {
		for x := int32(0); x < w; x++ {
			var prevSi int32 = nilSpan
			previousWalkable := false
			previousArea := NullArea

			for si := solid.ColumnHead(x, y); si != nilSpan; si = solid.NextSpan(si) {
				s := solid.SpanAt(si)
				walkable := s.Area != NullArea
				if !walkable && previousWalkable {
					ps := solid.SpanAt(prevSi)
					if iAbs(int32(s.Max)-int32(ps.Max)) <= walkableClimb {
						s.Area = previousArea
					}
				}
				previousWalkable = walkable
				previousArea = s.Area
				prevSi = si
			}
		}
	}
}

// FilterLedgeSpans clears the area of every span that is a ledge: one with
// at least one cardinal neighbor whose accessible top differs from the
// current span's top by more than walkableClimb, or with no traversable
// neighbor in some direction at all. This removes the effect of
// conservative voxelization so the resulting mesh does not float over
// drop-offs.
func FilterLedgeSpans(ctx *Context, walkableHeight, walkableClimb int32, solid *Heightfield) {
	ctx.StartTimer(TimerFilterBorder)
	defer ctx.StopTimer(TimerFilterBorder)

	w := solid.Width
	h := solid.Height
	const maxHeight = 0xffff

	for y := int32(0); y < h; y++ {
		for x := int32(0); x < w; x++ {
			for si := solid.ColumnHead(x, y); si != nilSpan; si = solid.NextSpan(si) {
				s := solid.SpanAt(si)
				if s.Area == NullArea {
					continue
				}

				bot := int32(s.Max)
				top := int32(maxHeight)
				if ni := solid.NextSpan(si); ni != nilSpan {
					top = int32(solid.SpanAt(ni).Min)
				}

				minh := int32(maxHeight)
				asmin := s.Max
				asmax := s.Max

				for dir := int32(0); dir < 4; dir++ {
					dx := x + GetDirOffsetX(dir)
					dy := y + GetDirOffsetY(dir)

					if dx < 0 || dy < 0 || dx >= w || dy >= h {
						minh = iMin(minh, -walkableClimb-bot)
						continue
					}

					nsi := solid.ColumnHead(dx, dy)
					nbot := -walkableClimb
					ntop := int32(maxHeight)
					if nsi != nilSpan {
						ntop = int32(solid.SpanAt(nsi).Min)
					}
					if iMin(top, ntop)-iMax(bot, nbot) > walkableHeight {
						minh = iMin(minh, nbot-bot)
					}

					for ; nsi != nilSpan; nsi = solid.NextSpan(nsi) {
						ns := solid.SpanAt(nsi)
						nbot = int32(ns.Max)
						ntop = int32(maxHeight)
						if nni := solid.NextSpan(nsi); nni != nilSpan {
							ntop = int32(solid.SpanAt(nni).Min)
						}
						if iMin(top, ntop)-iMax(bot, nbot) > walkableHeight {
							minh = iMin(minh, nbot-bot)
							if iAbs(nbot-bot) <= walkableClimb {
								if nbot < int32(asmin) {
									asmin = uint16(nbot)
								}
								if nbot > int32(asmax) {
									asmax = uint16(nbot)
								}
							}
						}
					}
				}

				if minh < -walkableClimb {
					s.Area = NullArea
				} else if int32(asmax-asmin) > walkableClimb {
					s.Area = NullArea
				}
			}
		}
	}
}

// FilterWalkableLowHeightSpans clears the area of every span whose head
// room — the gap to the next span stacked above it in the same column — is
// less than walkableHeight cells, since an agent of that height cannot
// stand there.
func FilterWalkableLowHeightSpans(ctx *Context, walkableHeight int32, solid *Heightfield) {
	ctx.StartTimer(TimerFilterWalkable)
	defer ctx.StopTimer(TimerFilterWalkable)

	w := solid.Width
	h := solid.Height
	const maxHeight = 0xffff

	for y := int32(0); y < h; y++ {
		for x := int32(0); x < w; x++ {
			for si := solid.ColumnHead(x, y); si != nilSpan; si = solid.NextSpan(si) {
				s := solid.SpanAt(si)
				if s.Area == NullArea {
					continue
				}
				bot := int32(s.Max)
				top := int32(maxHeight)
				if ni := solid.NextSpan(si); ni != nilSpan {
					top = int32(solid.SpanAt(ni).Min)
				}
				if top-bot < walkableHeight {
					s.Area = NullArea
				}
			}
		}
	}
}

// MedianFilterWalkableArea replaces every walkable compact span's area id
// with the median of itself and its up-to-eight same-level neighbors. This
// smooths single-voxel area-id noise left over from rasterization without
// altering which spans are walkable. It must run after compaction, before
// the region builder.
func MedianFilterWalkableArea(ctx *Context, chf *CompactHeightfield) bool {
	ctx.StartTimer(TimerMedianArea)
	defer ctx.StopTimer(TimerMedianArea)

	areas := make([]uint8, chf.SpanCount)
	for i := range areas {
		areas[i] = 0xff
	}

	for y := int32(0); y < chf.Height; y++ {
		for x := int32(0); x < chf.Width; x++ {
			c := chf.Cells[x+y*chf.Width]
			for i := int32(c.Index); i < int32(c.Index)+int32(c.Count); i++ {
				s := &chf.Spans[i]
				if chf.Areas[i] == NullArea {
					areas[i] = chf.Areas[i]
					continue
				}

				var nei [9]uint8
				for j := 0; j < 9; j++ {
					nei[j] = chf.Areas[i]
				}

				for dir := int32(0); dir < 4; dir++ {
					if GetCon(s, dir) == NotConnected {
						continue
					}
					ax := x + GetDirOffsetX(dir)
					ay := y + GetDirOffsetY(dir)
					ai := int32(chf.Cells[ax+ay*chf.Width].Index) + GetCon(s, dir)
					if chf.Areas[ai] != NullArea {
						nei[dir*2+0] = chf.Areas[ai]
					}

					as := &chf.Spans[ai]
					dir2 := (dir + 1) & 0x3
					if GetCon(as, dir2) == NotConnected {
						continue
					}
					ax2 := ax + GetDirOffsetX(dir2)
					ay2 := ay + GetDirOffsetY(dir2)
					ai2 := int32(chf.Cells[ax2+ay2*chf.Width].Index) + GetCon(as, dir2)
					if chf.Areas[ai2] != NullArea {
						nei[dir*2+1] = chf.Areas[ai2]
					}
				}
				sortUint8_9(&nei)
				areas[i] = nei[4]
			}
		}
	}

	copy(chf.Areas, areas)
	return true
}

// sortUint8_9 sorts a fixed 9-element array in place with a small insertion
// sort; the array is always this size (one span plus its eight neighbors)
// so a general-purpose sort would be needless overhead.
func sortUint8_9(a *[9]uint8) {
	for i := 1; i < 9; i++ {
		v := a[i]
		j := i - 1
		for j >= 0 && a[j] > v {
			a[j+1] = a[j]
			j--
		}
		a[j+1] = v
	}
}
