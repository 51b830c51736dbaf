package cmd

import (
	"github.com/spf13/cobra"

	"github.com/n8n-pulse/pulse/core"
	"github.com/n8n-pulse/pulse/internal/contract"
)

// metricsCmd lists every metric the registry knows about.
var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "List all available community metrics",
	Long: `Show every metric in the registry with its owning source.

No data files are read - this is purely informational.

Includes the date each metric has been reliably measured since, so you can
tell backfilled history apart from measured history.

Examples:
  # List all metrics
  pulse metrics

  # Machine-readable listing
  pulse metrics --output json`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecutePulseMetrics(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot list metrics", err)
		}
	},
}
