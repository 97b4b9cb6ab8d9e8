package main

import (
	"os"

	"github.com/nmehta/dpdpacheck/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
