package cmd

import (
	"github.com/spf13/cobra"

	"github.com/n8n-pulse/pulse/core"
	"github.com/n8n-pulse/pulse/internal/contract"
)

// rankCmd prints a sorted ranking table.
var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Show a sorted ranking of a categorical source",
	Long: `Rank the rows of a ranking source by one of its fields.

Examples:
  # Top creators by template count (default source and sort)
  pulse rank

  # Top 5 creators by total views
  pulse rank --sort-by views -l 5

  # German creators only
  pulse rank --group DE

  # Cities by events hosted
  pulse rank --source events-by-region --sort-by events`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecutePulseRanking(rootCtx, cfg, ldr); err != nil {
			contract.LogFatal("Cannot load ranking", err)
		}
	},
}
