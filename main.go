package main

import (
	"os"

	"github.com/jorro/reelstats/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
