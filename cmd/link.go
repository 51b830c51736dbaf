package cmd

import (
	"github.com/spf13/cobra"

	"github.com/n8n-pulse/pulse/core"
	"github.com/n8n-pulse/pulse/internal/contract"
)

// linkCmd groups the playground link utilities.
var linkCmd = &cobra.Command{
	Use:   "link",
	Short: "Encode and decode shareable playground links",
	Long: `Work with the playground's URL state format.

decode parses a query string or full URL into the selection it represents,
applying the documented defaults for anything missing or malformed.
encode canonicalizes a query string: defaults are omitted, unknown
parameters are dropped, and only the active mode's parameters survive.

Subcommands:
  decode - Print the selection a link encodes, as JSON
  encode - Print the canonical shareable link

Examples:
  # What does this link select?
  pulse link decode "https://n8n.io/playground?mode=ranking&rs=events-by-region"

  # Canonical link for a metric comparison
  pulse link encode "m=github-stars,forum-members&r=1y" --share-base-url https://n8n.io/playground`,
}

// linkDecodeCmd prints the decoded playground state.
var linkDecodeCmd = &cobra.Command{
	Use:     "decode <query-or-url>",
	Short:   "Decode a playground link into its selection",
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		if err := core.ExecutePulseLinkDecode(cfg, args[0]); err != nil {
			contract.LogFatal("Cannot decode link", err)
		}
	},
}

// linkEncodeCmd prints the canonical shareable link.
var linkEncodeCmd = &cobra.Command{
	Use:     "encode <query-or-url>",
	Short:   "Canonicalize a query string into a shareable link",
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		if err := core.ExecutePulseLinkEncode(cfg, args[0], contract.NopLinkPublisher{}); err != nil {
			contract.LogFatal("Cannot encode link", err)
		}
	},
}
