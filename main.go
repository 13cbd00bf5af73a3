package main

import (
	"os"

	"github.com/devarispbrown/stackshift/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
