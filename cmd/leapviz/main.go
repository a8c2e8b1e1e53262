// Package main provides the LeapViz command-line tool.
package main

import (
	"os"

	"github.com/leapstack-labs/leapviz/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
