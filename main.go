package main

import (
	"github.com/geos-esm/jedi-bundle/cmd"
)

func main() {
	// Execute the root command.
	cmd.Execute()
}
