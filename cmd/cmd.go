// Package cmd defines the command-line interface for pulse.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/n8n-pulse/pulse/internal/contract"
	"github.com/n8n-pulse/pulse/schema"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(metricsCmd)
	rootCmd.AddCommand(seriesCmd)
	rootCmd.AddCommand(distCmd)
	rootCmd.AddCommand(rankCmd)
	rootCmd.AddCommand(corrCmd)
	rootCmd.AddCommand(predictCmd)
	rootCmd.AddCommand(linkCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the link subcommands to the parent link command
	linkCmd.AddCommand(linkEncodeCmd)
	linkCmd.AddCommand(linkDecodeCmd)

	// Add the cache subcommands to the parent cache command
	cacheCmd.AddCommand(cacheClearCmd)
	cacheCmd.AddCommand(cacheStatusCmd)

	// Bind all persistent flags of rootCmd to Viper. Command flags are bound
	// at run time in sharedSetup because subcommands reuse flag names.
	rootCmd.PersistentFlags().String("data-dir", contract.DefaultDataDir, "Local directory holding the community data files")
	rootCmd.PersistentFlags().String("base-url", "", "Remote origin serving the data files; overrides --data-dir")
	rootCmd.PersistentFlags().String("share-base-url", "", "Base URL prepended to encoded playground links")
	rootCmd.PersistentFlags().StringP("output", "o", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no)")
	rootCmd.PersistentFlags().String("cache-backend", string(schema.SQLiteBackend), "Snapshot backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("cache-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("cache-ttl", "6h", "How long a stored snapshot stays fresh")
	rootCmd.PersistentFlags().String("http-timeout", "30s", "Timeout for remote data fetches")
	rootCmd.PersistentFlags().StringP("granularity", "g", "", "Period length: daily, weekly, or monthly (default: per source)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	seriesCmd.Flags().StringP("metric", "m", "", "Comma-separated metric ids (max 4)")
	seriesCmd.Flags().StringP("range", "r", string(schema.RangeAll), "Relative window: 1m, 3m, 6m, 1y, 2y, or all")
	seriesCmd.Flags().Bool("change", false, "Show period-over-period deltas instead of cumulative values")
	seriesCmd.Flags().Bool("percent", false, "Normalize each series to percent change from its first point")
	seriesCmd.Flags().Bool("overlap", false, "Trim all series to their common date range")

	distCmd.Flags().String("source", "", "Distribution source id")
	distCmd.Flags().String("field", "", "Field to histogram (default: the source's first field)")

	rankCmd.Flags().String("source", "", "Ranking source id")
	rankCmd.Flags().String("sort-by", "", "Field to sort by (default: the source's first field)")
	rankCmd.Flags().String("dir", string(schema.SortDesc), "Sort direction: asc or desc")
	rankCmd.Flags().String("group", "", "Keep only rows in this group")
	rankCmd.Flags().IntP("limit", "l", schema.DefaultRankingLimit, "Number of rows to display")

	corrCmd.Flags().String("source", "", "Correlation source id")
	corrCmd.Flags().String("x-field", "", "X axis field (default: the source's first field)")
	corrCmd.Flags().String("y-field", "", "Y axis field (default: the source's second field)")
	corrCmd.Flags().Bool("trend", false, "Fit and report an OLS trend line")

	predictCmd.Flags().StringP("metric", "m", "", "Metric id to forecast")
	predictCmd.Flags().Float64("target", 0, "Milestone value (default: the next 3 ladder milestones)")
}
