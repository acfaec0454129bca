// Package main is the entry point for the planctl CLI.
package main

import (
	"os"

	"github.com/davidbz/gamehost/cmd/planctl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
