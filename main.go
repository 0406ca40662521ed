package main

import (
	"os"

	"github.com/probelab/evalmatrix/cmd"
)

func main() {
	if err := cmd.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
