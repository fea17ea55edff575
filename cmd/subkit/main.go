package main

import (
	"os"

	"github.com/subtitlekit/subkit/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
