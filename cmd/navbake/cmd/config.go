package cmd

import (
	"fmt"
	"io/ioutil"
	"os"

	"github.com/spf13/cobra"
	yaml "gopkg.in/yaml.v2"

	"github.com/waypointfield/navbake/recast"
)

// configCmd represents the config command.
var configCmd = &cobra.Command{
	Use:   "config [FILE]",
	Short: "create a build settings file",
	Long: `Create a build settings file in YAML format, prefilled with default values.

If FILE is not provided, 'navbake.yml' is used.`,
	Run: func(cmd *cobra.Command, args []string) {
		path := "navbake.yml"
		if len(args) >= 1 {
			path = args[0]
		}

		ok, err := confirmIfExists(path, fmt.Sprintf("file %s already exists, overwrite? [y/N]", path))
		if !ok {
			if err == nil {
				fmt.Println("aborted by user")
			} else {
				fmt.Println("aborted:", err)
			}
			return
		}

		buf, err := yaml.Marshal(recast.DefaultConfig())
		check(err)
		check(ioutil.WriteFile(path, buf, 0644))
		fmt.Printf("build settings written to %q\n", path)
	},
}

func init() {
	RootCmd.AddCommand(configCmd)
}

func loadConfigFile(path string) (*recast.Config, error) {
	buf, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := recast.DefaultConfig()
	if err := yaml.Unmarshal(buf, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func check(err error) {
	if err != nil {
		fmt.Println("error:", err)
		os.Exit(1)
	}
}
