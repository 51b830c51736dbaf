package cmd

import (
	"github.com/spf13/cobra"

	"github.com/n8n-pulse/pulse/core"
	"github.com/n8n-pulse/pulse/internal/contract"
)

// predictCmd forecasts milestone crossing dates.
var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Forecast when a metric reaches a milestone",
	Long: `Fit a trend against a metric's recent monthly history and forecast
when it crosses a milestone value.

Without --target, the next 3 values of the milestone ladder
(1K, 2K, 2.5K, 5K, 10K, ... 1M) above the current value are forecast.
Each forecast carries a confidence rating derived from fit quality and
sample size; predictions further than 2 years out are suppressed.

Examples:
  # Next milestones for GitHub stars
  pulse predict -m github-stars

  # When do we reach 100k forum members?
  pulse predict -m forum-members --target 100000`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecutePulsePredict(rootCtx, cfg, ldr); err != nil {
			contract.LogFatal("Cannot run prediction", err)
		}
	},
}
