package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/waypointfield/navbake/recast"
)

var (
	cfgPathVal        string
	inputVal          string
	scaleVal          float32
	detailDeadlineVal time.Duration
	detailPolyBudget  time.Duration
)

// buildCmd represents the build command.
var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "bake a navigation mesh from input geometry",
	Long: `Load triangle geometry from an OBJ file, run it through the
rasterize / filter / region / contour / polygonize / detail pipeline, and
report the resulting mesh's stats.`,
	Run: runBuild,
}

func init() {
	RootCmd.AddCommand(buildCmd)

	buildCmd.Flags().StringVar(&cfgPathVal, "config", "navbake.yml", "build settings file")
	buildCmd.Flags().StringVar(&inputVal, "input", "", "input geometry OBJ file (required)")
	buildCmd.Flags().Float32Var(&scaleVal, "scale", 1.0, "uniform scale applied to input vertices")
	buildCmd.Flags().DurationVar(&detailDeadlineVal, "detail-deadline", 0,
		"wall-clock budget for the detail mesh stage as a whole, e.g. 30s (0 disables)")
	buildCmd.Flags().DurationVar(&detailPolyBudget, "detail-poly-budget", 0,
		"wall-clock budget a single polygon's detail sampling may take, e.g. 500ms (0 disables)")
}

func runBuild(cmd *cobra.Command, args []string) {
	if inputVal == "" {
		fmt.Println("error: --input is required")
		return
	}

	cfg, err := loadConfigFile(cfgPathVal)
	if err != nil {
		fmt.Printf("using default build settings (%v)\n", err)
		cfg = recast.DefaultConfig()
	}

	geom, err := recast.LoadInputGeom(inputVal, scaleVal)
	check(err)

	if cfg.BMin == ([3]float32{}) && cfg.BMax == ([3]float32{}) {
		cfg.BMin, cfg.BMax = geom.CalcBounds()
	}
	cfg.Width, cfg.Height = recast.CalcGridSize(cfg.BMin, cfg.BMax, cfg.Cs)

	areas := make([]uint8, geom.TriCount)
	recast.MarkWalkableTriangles(cfg.WalkableSlopeAngle, geom.Verts, geom.Tris, geom.TriCount, areas)

	var deadline *recast.Deadline
	if detailDeadlineVal > 0 || detailPolyBudget > 0 {
		deadline = &recast.Deadline{PerPolygon: detailPolyBudget}
		if detailDeadlineVal > 0 {
			deadline.At = time.Now().Add(detailDeadlineVal)
		}
	}

	ctx := recast.NewContext(true)
	result, ok := recast.Bake(ctx, cfg, geom.Verts, geom.Tris, areas, deadline)
	if !ok {
		fmt.Println("build failed, see log below")
		dumpLog(ctx)
		return
	}

	fmt.Printf("%s: %d verts, %d tris -> %d voxels (%dx%d)\n",
		geom.Filename, geom.VertCount, geom.TriCount, cfg.Width*cfg.Height, cfg.Width, cfg.Height)
	fmt.Printf("poly mesh: %d verts, %d polys\n", result.PolyMesh.NVerts, result.PolyMesh.NPolys)
	fmt.Printf("detail mesh: %d verts, %d tris\n", result.PolyMeshDetail.NVerts, result.PolyMeshDetail.NTris)
	if result.PolyMeshDetail.Truncated {
		fmt.Println("detail mesh: truncated, deadline exceeded before every polygon was sampled")
	}
	dumpLog(ctx)
}

func dumpLog(ctx *recast.Context) {
	for i := 0; i < ctx.LogCount(); i++ {
		fmt.Println(ctx.LogText(int32(i)))
	}
}
