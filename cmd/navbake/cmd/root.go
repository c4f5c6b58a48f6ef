package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// RootCmd represents the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use:   "navbake",
	Short: "bake navigation meshes from level geometry",
	Long: `navbake turns level geometry into a navigation mesh:
	- load triangle geometry from OBJ,
	- run it through the rasterize/filter/region/contour/poly pipeline,
	- report the resulting mesh's stats,
	- read or write build settings as YAML.`,
}

// Execute adds all child commands to RootCmd and runs it. Called once from
// main.main.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
