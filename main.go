package main

import (
	"os"

	"github.com/naka-gawa/repo-health/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
