package main

import "github.com/waypointfield/navbake/cmd/navbake/cmd"

func main() {
	cmd.Execute()
}
