package main

import (
	"os"

	"github.com/localnerve/jam-build-appstore/cmd/storectl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
