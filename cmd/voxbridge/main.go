package main

import (
	"os"

	"github.com/lukasbauer/voxbridge/cmd/voxbridge/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
