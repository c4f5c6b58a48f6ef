package recast

// Span height is stored in a 16-bit cell unit; this bounds the vertical
// extent addressable by a single Span or CompactSpan.
const (
	spanHeightBits      = 16
	SpanMaxHeight int32 = (1 << spanHeightBits) - 1
)

// NullArea is the area id assigned to a span that is not walkable.
const NullArea uint8 = 0

// WalkableArea is the default area id of a walkable span. It is also the
// maximum area id recognized by the region and contour stages.
const WalkableArea uint8 = 63

// NotConnected is stored in a CompactSpan's neighbor slot when that
// direction has no connected neighbor.
const NotConnected int32 = 0x3f

// NullIdx marks an unused vertex or neighbor slot in a PolyMesh.
const NullIdx uint16 = 0xffff

// NullRegion is the region id of a span that has not been assigned to any
// region yet.
const NullRegion uint16 = 0

// MultipleRegions marks a polygon assembled from contour fragments that
// belonged to more than one source region; such a polygon must not be used
// as a height-sampling seed since its footprint may overlap a neighbor.
const MultipleRegions uint16 = 0

// BorderReg flags a region that touches the tile border; such regions are
// never merged away by the region filter pass.
const BorderReg uint16 = 0x8000

// regionIDMask extracts the region id proper, discarding the BorderReg flag.
const regionIDMask uint16 = 0x1fff

// Contour vertex region-id flags. The low bits of a contour vertex's 4th
// component carry the neighbor region id (see ContourRegMask); the high
// bits carry these flags.
const (
	BorderVertex int32 = 0x10000
	AreaBorder   int32 = 0x20000

	// ContourRegMask extracts the plain region id from a contour vertex.
	ContourRegMask int32 = 0xffff
)

// Contour build flags, passed to BuildContours.
const (
	ContourTessWallEdges int32 = 0x01 // Tessellate solid (impassable) edges.
	ContourTessAreaEdges int32 = 0x02 // Tessellate edges between differing areas.
)

// Portal edge encoding: a PolyMesh neighbor slot with the high bit set
// encodes a tile-boundary portal instead of an in-tile neighbor polygon;
// bits 13-14 carry the portal direction (0=-X, 1=+Z, 2=+X, 3=-Z).
const (
	portalFlag     uint16 = 0x8000
	portalDirMask  uint16 = 0x6000
	portalDirShift        = 13
)
