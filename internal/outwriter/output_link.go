package outwriter

import (
	"fmt"
	"io"

	"github.com/n8n-pulse/pulse/internal/contract"
	"github.com/n8n-pulse/pulse/schema"
)

// PrintPlaygroundState outputs a decoded playground state as JSON.
func PrintPlaygroundState(st schema.PlaygroundState, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSON(w, st)
	}, "State written")
}

// PrintShareLink outputs a shareable playground link. An empty link means the
// state is the default and there is no base URL to fall back to.
func PrintShareLink(link string, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		if link == "" {
			_, err := fmt.Fprintln(w, "(default state, nothing to encode)")
			return err
		}
		_, err := fmt.Fprintln(w, link)
		return err
	}, "Link written")
}
