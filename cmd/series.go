package cmd

import (
	"github.com/spf13/cobra"

	"github.com/n8n-pulse/pulse/core"
	"github.com/n8n-pulse/pulse/internal/contract"
)

// seriesCmd loads and prints metric time series.
var seriesCmd = &cobra.Command{
	Use:   "series",
	Short: "Load one or more metric time series",
	Long: `Load up to 4 metric series and print them side by side.

Transforms:
  --change   period-over-period deltas instead of cumulative values
  --percent  percent change relative to each series' first point
  --overlap  trim all series to the date range they share
  --range    relative window measured back from today

Examples:
  # GitHub stars, monthly, whole history
  pulse series -m github-stars

  # Compare forum and Discord growth over the last year
  pulse series -m forum-members,discord-members -r 1y --overlap --percent

  # Monthly new stars as CSV
  pulse series -m github-stars --change --output csv`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecutePulseSeries(rootCtx, cfg, ldr); err != nil {
			contract.LogFatal("Cannot load series", err)
		}
	},
}
