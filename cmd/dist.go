package cmd

import (
	"github.com/spf13/cobra"

	"github.com/n8n-pulse/pulse/core"
	"github.com/n8n-pulse/pulse/internal/contract"
)

// distCmd prints a histogram of one distribution field.
var distCmd = &cobra.Command{
	Use:   "dist",
	Short: "Show the distribution of a categorical field",
	Long: `Histogram one field of a distribution source.

Pre-binned fields are shown as shipped; raw fields are binned with
Sturges' rule. Summary statistics (average, median, max, total) are
printed under the table.

Examples:
  # Node counts per template (default source and field)
  pulse dist

  # Views per template
  pulse dist --source template-categories --field views-per-template`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecutePulseDistribution(rootCtx, cfg, ldr); err != nil {
			contract.LogFatal("Cannot load distribution", err)
		}
	},
}
