// main is the entry point for the pulse CLI.
package main

import (
	"github.com/n8n-pulse/pulse/cmd"
	"github.com/n8n-pulse/pulse/internal/contract"
	"github.com/n8n-pulse/pulse/internal/snapcache"
)

func main() {
	err := cmd.Execute()

	// Close before exiting so sqlite releases its file lock even when the
	// command failed.
	snapcache.Close()

	if err != nil {
		contract.LogFatal("Command failed", err)
	}
}
