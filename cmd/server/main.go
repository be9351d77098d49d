package main

import (
	"os"

	"github.com/godilite/program-recommender/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
