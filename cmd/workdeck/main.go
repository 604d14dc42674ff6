// Package main provides the entry point for the workdeck CLI.
package main

import (
	"os"

	"github.com/randalmurphal/workdeck/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
