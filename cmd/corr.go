package cmd

import (
	"github.com/spf13/cobra"

	"github.com/n8n-pulse/pulse/core"
	"github.com/n8n-pulse/pulse/internal/contract"
)

// corrCmd projects a correlation source onto two axes.
var corrCmd = &cobra.Command{
	Use:   "corr",
	Short: "Correlate two fields of a categorical source",
	Long: `Project each row of a correlation source onto two numeric axes and
report the Pearson correlation coefficient. Rows where either coordinate is
missing or not finite are dropped.

With --trend an ordinary least squares line is fitted and its slope,
intercept and R-squared are reported alongside.

Examples:
  # Template views vs inserts (default axes)
  pulse corr

  # Does template complexity drive usage?
  pulse corr --x-field nodes --y-field inserts --trend`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecutePulseCorrelation(rootCtx, cfg, ldr); err != nil {
			contract.LogFatal("Cannot load correlation", err)
		}
	},
}
