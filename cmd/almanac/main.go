package main

import (
	"os"

	"github.com/wonny/almanac/cmd/almanac/commands"
)

// main is the entry point for the almanac CLI
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
