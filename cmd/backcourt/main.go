package main

import (
	"os"

	"github.com/oddslab/backcourt/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
