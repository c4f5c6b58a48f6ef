package recast

import "errors"

// MaxVertsPerPolygon is the upper bound on Config.MaxVertsPerPoly accepted
// by the runtime path-query layer that eventually consumes a PolyMesh.
const MaxVertsPerPolygon = 6

// Config specifies a configuration to use when performing Recast builds.
// Its fields are tagged for YAML so a build settings file can be read or
// written directly with yaml.v2.
type Config struct {
	// The width of the field along the x-axis.
	// [Limit: >= 0] [Units: vx]
	Width int32 `yaml:"width"`

	// The height of the field along the z-axis.
	// [Limit: >= 0] [Units: vx]
	Height int32 `yaml:"height"`

	// The width/height size of tile's on the xz-plane.
	// [Limit: >= 0] [Units: vx]
	TileSize int32 `yaml:"tile_size"`

	// The size of the non-navigable border around the heightfield.
	// [Limit: >=0] [Units: vx]
	BorderSize int32 `yaml:"border_size"`

	// The xz-plane cell size to use for fields.
	// [Limit: > 0] [Units: wu]
	Cs float32 `yaml:"cell_size"`

	// The y-axis cell size to use for fields.
	// [Limit: > 0] [Units: wu]
	Ch float32 `yaml:"cell_height"`

	// The minimum bounds of the field's AABB. [(x, y, z)] [Units: wu]
	BMin [3]float32 `yaml:"bmin"`

	// The maximum bounds of the field's AABB. [(x, y, z)] [Units: wu]
	BMax [3]float32 `yaml:"bmax"`

	// The maximum slope that is considered walkable.
	// [Limits: 0 <= value <= 90] [Units: Degrees]
	WalkableSlopeAngle float32 `yaml:"walkable_slope_angle"`

	// Minimum floor to 'ceiling' height that will still allow the
	// floor area to be considered walkable. [Limit: >= 3] [Units: vx]
	WalkableHeight int32 `yaml:"walkable_height"`

	// Maximum ledge height that is considered to still be
	// traversable. [Limit: >=0] [Units: vx]
	WalkableClimb int32 `yaml:"walkable_climb"`

	// The distance to erode/shrink the walkable area of the
	// heightfield away from obstructions. [Limit: >=1] [Units: vx]
	WalkableRadius int32 `yaml:"walkable_radius"`

	// The maximum allowed length for contour edges along the border
	// of the mesh. [Limit: >=0] [Units: vx]
	MaxEdgeLen int32 `yaml:"max_edge_len"`

	// The maximum distance a simplfied contour's border edges should
	// deviate the original raw contour. [Limit: >=0] [Units: vx]
	MaxSimplificationError float32 `yaml:"max_simplification_error"`

	// The minimum number of cells allowed to form isolated island
	// areas.  [Limit: >=0] [Units: vx]
	MinRegionArea int32 `yaml:"min_region_area"`

	// Any regions with a span count smaller than this value will, if
	// possible, be merged with larger regions.
	// [Limit: >=0] [Units: vx]
	MergeRegionArea int32 `yaml:"merge_region_area"`

	// The maximum number of vertices allowed for polygons generated
	// during the contour to polygon conversion process. [Limit: >= 3]
	MaxVertsPerPoly int32 `yaml:"max_verts_per_poly"`

	// Sets the sampling distance to use when generating the detail
	// mesh. (For height detail only.)
	// [Limits: 0 or >= 0.9] [Units: wu]
	DetailSampleDist float32 `yaml:"detail_sample_dist"`

	// The maximum distance the detail mesh surface should deviate
	// from heightfield data. (For height detail only.)
	// [Limit: >=0] [Units: wu]
	DetailSampleMaxError float32 `yaml:"detail_sample_max_error"`
}

// DefaultConfig returns a Config prefilled with values reasonable for a
// human-scale agent, suitable as a starting point for a build settings file.
func DefaultConfig() *Config {
	return &Config{
		Cs:                     0.3,
		Ch:                     0.2,
		WalkableSlopeAngle:     45,
		WalkableHeight:         10,
		WalkableClimb:          4,
		WalkableRadius:         2,
		MaxEdgeLen:             12,
		MaxSimplificationError: 1.3,
		MinRegionArea:          8,
		MergeRegionArea:        20,
		MaxVertsPerPoly:        MaxVertsPerPolygon,
		DetailSampleDist:       6,
		DetailSampleMaxError:   1,
	}
}

// Validate checks cfg against the constraints every downstream stage
// relies on, returning the first violation found. A Config that fails
// validation must not be passed to any build stage.
func (cfg *Config) Validate() error {
	switch {
	case cfg.Cs <= 0:
		return errors.New("recast: Cs must be > 0")
	case cfg.Ch <= 0:
		return errors.New("recast: Ch must be > 0")
	case cfg.BMin[0] > cfg.BMax[0] || cfg.BMin[1] > cfg.BMax[1] || cfg.BMin[2] > cfg.BMax[2]:
		return errors.New("recast: BMin must be <= BMax elementwise")
	case cfg.WalkableHeight < 3:
		return errors.New("recast: WalkableHeight must be >= 3")
	case cfg.WalkableClimb < 0:
		return errors.New("recast: WalkableClimb must be >= 0")
	case cfg.WalkableSlopeAngle < 0 || cfg.WalkableSlopeAngle > 90:
		return errors.New("recast: WalkableSlopeAngle must be in [0, 90] degrees")
	case cfg.MinRegionArea < 0:
		return errors.New("recast: MinRegionArea must be >= 0")
	case cfg.MergeRegionArea < 0:
		return errors.New("recast: MergeRegionArea must be >= 0")
	case cfg.MaxVertsPerPoly < 3 || cfg.MaxVertsPerPoly > MaxVertsPerPolygon:
		return errors.New("recast: MaxVertsPerPoly must be in [3, MaxVertsPerPolygon]")
	}
	return nil
}
