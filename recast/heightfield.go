package recast

// Span represents a vertical interval of occupied voxels within a single
// heightfield column. Spans are allocated from a Heightfield's arena and
// referenced by index rather than by pointer: growing the arena never
// invalidates an existing index, and a freed span simply rejoins the
// index-chained free list.
type Span struct {
	Min, Max uint16 // [Min, Max) extent, in cell units.
	Area     uint8
	next     int32 // index of the next higher span in the column, or -1.
}

const nilSpan int32 = -1

// Heightfield is a dynamic, per-column representation of obstructed space.
// It is the output of the rasterizer and the input to the walkability
// filters and the compactor.
type Heightfield struct {
	Width, Height int32
	BMin, BMax    [3]float32
	Cs, Ch        float32

	cols     []int32 // per-column head span index, width*height, or nilSpan.
	spans    []Span  // arena of all spans ever allocated for this heightfield.
	freeHead int32   // index of the first free span, or nilSpan.
}

// NewHeightfield returns an empty, uninitialized Heightfield. Call Create
// before use.
func NewHeightfield() *Heightfield {
	return &Heightfield{freeHead: nilSpan}
}

// Create initializes hf's dimensions and bounds, allocating the per-column
// span-head table. See Config for the meaning of the parameters.
func (hf *Heightfield) Create(width, height int32, bmin, bmax [3]float32, cs, ch float32) bool {
	hf.Width = width
	hf.Height = height
	hf.BMin = bmin
	hf.BMax = bmax
	hf.Cs = cs
	hf.Ch = ch
	hf.freeHead = nilSpan

	n := int(width * height)
	if n <= 0 {
		return false
	}
	hf.cols = make([]int32, n)
	for i := range hf.cols {
		hf.cols[i] = nilSpan
	}
	return true
}

// SpanAt returns the span stored at arena index i. It panics if i is out of
// range; callers walk spans via column-head/next indices obtained from this
// Heightfield, which are always in range.
func (hf *Heightfield) SpanAt(i int32) *Span { return &hf.spans[i] }

// ColumnHead returns the arena index of the lowest span in column (x, y), or
// nilSpan if the column is empty.
func (hf *Heightfield) ColumnHead(x, y int32) int32 { return hf.cols[x+y*hf.Width] }

// NextSpan returns the arena index of the span stacked immediately above i,
// or nilSpan.
func (hf *Heightfield) NextSpan(i int32) int32 { return hf.spans[i].next }

func (hf *Heightfield) allocSpan() int32 {
	if hf.freeHead != nilSpan {
		i := hf.freeHead
		hf.freeHead = hf.spans[i].next
		return i
	}
	hf.spans = append(hf.spans, Span{})
	return int32(len(hf.spans) - 1)
}

func (hf *Heightfield) freeSpan(i int32) {
	hf.spans[i].next = hf.freeHead
	hf.freeHead = i
}

// addSpan inserts a new span [smin, smax) tagged area into column (x, y),
// merging it with any existing span it touches or overlaps. Spans whose
// tops differ by no more than flagMergeThr cells have their area ids
// resolved by taking the larger id, so that a thin walkable step fused with
// a thicker obstacle below does not lose its walkable classification.
func (hf *Heightfield) addSpan(x, y int32, smin, smax uint16, area uint8, flagMergeThr int32) bool {
	idx := x + y*hf.Width

	s := hf.allocSpan()
	hf.spans[s] = Span{Min: smin, Max: smax, Area: area, next: nilSpan}

	if hf.cols[idx] == nilSpan {
		hf.cols[idx] = s
		return true
	}

	prev := nilSpan
	cur := hf.cols[idx]

	for cur != nilSpan {
		c := &hf.spans[cur]
		if c.Min > hf.spans[s].Max {
			// cur starts after the new span ends: insertion point found.
			break
		} else if c.Max < hf.spans[s].Min {
			// cur ends before the new span starts: keep walking.
			prev = cur
			cur = c.next
			continue
		}

		ns := &hf.spans[s]
		if c.Min < ns.Min {
			ns.Min = c.Min
		}
		if c.Max > ns.Max {
			ns.Max = c.Max
		}
		if iAbs(int32(ns.Max)-int32(c.Max)) <= flagMergeThr {
			if c.Area > ns.Area {
				ns.Area = c.Area
			}
		}
		next := c.next
		hf.freeSpan(cur)
		if prev != nilSpan {
			hf.spans[prev].next = next
		} else {
			hf.cols[idx] = next
		}
		cur = next
	}

	if prev != nilSpan {
		hf.spans[s].next = hf.spans[prev].next
		hf.spans[prev].next = s
	} else {
		hf.spans[s].next = hf.cols[idx]
		hf.cols[idx] = s
	}
	return true
}

// CompactCell indexes the range of a column's spans within a
// CompactHeightfield's flat Spans array.
type CompactCell struct {
	Index uint32 // Index of the first span in the column.
	Count uint8  // Number of spans in the column.
}

// CompactSpan represents a span of unobstructed space within a
// CompactHeightfield: the open volume above a walkable surface, up to the
// next obstruction (or the column ceiling).
type CompactSpan struct {
	Y   uint16 // Bottom of the open space, measured from the heightfield base.
	Reg uint16 // Region id, or NullRegion if unassigned.
	Con uint32 // Four 6-bit packed neighbor connection indices.
	H   uint8  // Height of the open space above Y.
}

// CompactHeightfield is the dense, flat, neighbor-linked form of a
// Heightfield, restricted to walkable open space. It is the input to the
// region builder and the contour tracer.
type CompactHeightfield struct {
	Width, Height                int32
	SpanCount                    int32
	WalkableHeight, WalkableClimb int32
	BorderSize                   int32
	MaxDistance                  uint16
	MaxRegions                   uint16
	BMin, BMax                   [3]float32
	Cs, Ch                       float32

	Cells []CompactCell
	Spans []CompactSpan
	Dist  []uint16
	Areas []uint8
}
