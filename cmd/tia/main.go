// Package main is the entry point for the tia CLI.
package main

import (
	"os"

	"github.com/NicDom/tia/cmd/tia/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
