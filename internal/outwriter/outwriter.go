// Package outwriter has output and writer logic.
package outwriter

import (
	"github.com/n8n-pulse/pulse/internal/contract"
	"github.com/n8n-pulse/pulse/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the
// command layer.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteSeries prints loaded metric series using the configured output format.
func (ow *OutWriter) WriteSeries(series []*schema.MetricSeries, cfg *contract.Config) error {
	return PrintSeriesResults(series, cfg)
}

// WriteDistribution prints a distribution using the configured output format.
func (ow *OutWriter) WriteDistribution(data *schema.DistributionData, field schema.DistributionField, cfg *contract.Config) error {
	return PrintDistributionResults(data, field, cfg)
}

// WriteRanking prints a ranking using the configured output format.
func (ow *OutWriter) WriteRanking(sourceID string, data *schema.RankingData, fields []schema.RankingField, cfg *contract.Config) error {
	return PrintRankingResults(sourceID, data, fields, cfg)
}

// WriteCorrelation prints correlation points using the configured output format.
func (ow *OutWriter) WriteCorrelation(points []schema.CorrelationPoint, summary CorrelationSummary, cfg *contract.Config) error {
	return PrintCorrelationResults(points, summary, cfg)
}

// WritePredictions prints milestone predictions using the configured output format.
func (ow *OutWriter) WritePredictions(metric schema.MetricWithSource, preds []schema.MilestonePrediction, cfg *contract.Config) error {
	return PrintPredictionResults(metric, preds, cfg)
}

// WriteMetrics prints the metric catalog using the configured output format.
func (ow *OutWriter) WriteMetrics(metrics []schema.MetricWithSource, cfg *contract.Config) error {
	return PrintMetricsList(metrics, cfg)
}
