// Package main is the entry point for the folio admin CLI.
package main

import (
	"os"

	"folio/cmd/folioctl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
