package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/waypointfield/navbake/recast"
)

var infosScaleVal float32

// infosCmd represents the infos command.
var infosCmd = &cobra.Command{
	Use:   "infos OBJFILE",
	Short: "show infos about input geometry",
	Long: `Read a triangle geometry file and print its vertex/triangle count
and bounding box, without running the bake pipeline.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		geom, err := recast.LoadInputGeom(args[0], infosScaleVal)
		check(err)

		bmin, bmax := geom.CalcBounds()
		fmt.Printf("file:     %s\n", geom.Filename)
		fmt.Printf("verts:    %d\n", geom.VertCount)
		fmt.Printf("tris:     %d\n", geom.TriCount)
		fmt.Printf("bounds:   [%.3f %.3f %.3f] - [%.3f %.3f %.3f]\n",
			bmin[0], bmin[1], bmin[2], bmax[0], bmax[1], bmax[2])
	},
}

func init() {
	RootCmd.AddCommand(infosCmd)
	infosCmd.Flags().Float32Var(&infosScaleVal, "scale", 1.0, "uniform scale applied to input vertices")
}
