// Package core has the command-level orchestration joining the registry,
// loader, transforms and output writers.
package core

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/n8n-pulse/pulse/core/loader"
	"github.com/n8n-pulse/pulse/core/predict"
	"github.com/n8n-pulse/pulse/core/registry"
	"github.com/n8n-pulse/pulse/core/state"
	"github.com/n8n-pulse/pulse/core/stats"
	"github.com/n8n-pulse/pulse/internal/contract"
	"github.com/n8n-pulse/pulse/internal/outwriter"
	"github.com/n8n-pulse/pulse/schema"
)

// ExecutePulseMetrics prints the metric catalog. No data files are read.
func ExecutePulseMetrics(_ context.Context, cfg *contract.Config) error {
	ow := outwriter.NewOutWriter()
	return ow.WriteMetrics(registry.AllMetrics(), cfg)
}

// ExecutePulseSeries loads the selected metrics, applies the requested
// range filter and transforms, and prints the result.
// It serves as the main entry point for the 'series' command.
func ExecutePulseSeries(ctx context.Context, cfg *contract.Config, l *loader.Loader) error {
	if len(cfg.Metrics) == 0 {
		return errors.New("--metric is required")
	}

	series := l.LoadMultipleMetrics(ctx, cfg.Metrics, cfg.Granularity)
	if len(series) == 0 {
		return fmt.Errorf("no data loaded for metrics %s", strings.Join(cfg.Metrics, ", "))
	}

	window := state.Window(cfg.Range)
	for _, s := range series {
		s.Points = loader.FilterByDateRange(s.Points, window)
		if s.Metric.ExcludeZero {
			s.Points = loader.ApplyExcludeZero(s.Points)
		}
	}

	if cfg.Overlap {
		pointSets := make([][]schema.TimeSeriesPoint, len(series))
		for i, s := range series {
			pointSets[i] = s.Points
		}
		overlap := loader.FindOverlappingRange(pointSets)
		for _, s := range series {
			s.Points = loader.FilterByDateRange(s.Points, overlap)
		}
	}

	for _, s := range series {
		switch {
		case cfg.Change:
			s.Points = loader.ToPeriodChange(s.Points)
		case cfg.Percent:
			s.Points = loader.NormalizeToPercentChange(s.Points)
		}
	}

	ow := outwriter.NewOutWriter()
	return ow.WriteSeries(series, cfg)
}

// ExecutePulseDistribution loads one histogram field of a distribution
// source and prints it with its summary statistics.
func ExecutePulseDistribution(ctx context.Context, cfg *contract.Config, l *loader.Loader) error {
	sourceID := cfg.Source
	if sourceID == "" {
		sourceID = schema.DefaultDistSource
	}
	src, ok := registry.CategoricalSourceByID(sourceID)
	if !ok || len(src.DistributionFields) == 0 {
		return fmt.Errorf("unknown distribution source %q", sourceID)
	}

	field := src.DistributionFields[0]
	if cfg.Field != "" {
		found := false
		for _, f := range src.DistributionFields {
			if f.ID == cfg.Field {
				field = f
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("unknown field %q for source %q", cfg.Field, sourceID)
		}
	}

	data := l.LoadDistribution(ctx, sourceID, field.ID)
	if data == nil {
		return fmt.Errorf("failed to load distribution %q", sourceID)
	}

	ow := outwriter.NewOutWriter()
	return ow.WriteDistribution(data, field, cfg)
}

// ExecutePulseRanking loads a ranking source, applies sort, group filter and
// limit, and prints the rows.
func ExecutePulseRanking(ctx context.Context, cfg *contract.Config, l *loader.Loader) error {
	sourceID := cfg.Source
	if sourceID == "" {
		sourceID = schema.DefaultRankSource
	}
	src, ok := registry.CategoricalSourceByID(sourceID)
	if !ok || len(src.RankingFields) == 0 {
		return fmt.Errorf("unknown ranking source %q", sourceID)
	}

	sortBy := cfg.SortBy
	if sortBy == "" {
		sortBy = src.RankingFields[0].ID
	} else if !rankingFieldExists(src, sortBy) {
		return fmt.Errorf("unknown sort field %q for source %q", sortBy, sourceID)
	}

	data := l.LoadRanking(ctx, sourceID)
	if data == nil {
		return fmt.Errorf("failed to load ranking %q", sourceID)
	}

	loader.SortRanking(data, sortBy, cfg.SortDir)
	if cfg.Group != "" {
		data = loader.FilterRankingByGroup(data, cfg.Group)
	}
	if cfg.Limit > 0 {
		data = loader.LimitRanking(data, cfg.Limit)
	}

	ow := outwriter.NewOutWriter()
	return ow.WriteRanking(sourceID, data, src.RankingFields, cfg)
}

func rankingFieldExists(src *schema.CategoricalSource, fieldID string) bool {
	for _, f := range src.RankingFields {
		if f.ID == fieldID {
			return true
		}
	}
	return false
}

// ExecutePulseCorrelation projects two fields of a correlation source into
// scatter points, computes Pearson r and, when requested, an OLS trend line.
func ExecutePulseCorrelation(ctx context.Context, cfg *contract.Config, l *loader.Loader) error {
	sourceID := cfg.Source
	if sourceID == "" {
		sourceID = schema.DefaultCorrSource
	}
	src, ok := registry.CategoricalSourceByID(sourceID)
	if !ok || len(src.CorrelationFields) < 2 {
		return fmt.Errorf("unknown correlation source %q", sourceID)
	}

	xField, err := correlationFieldOrDefault(src, cfg.XField, 0)
	if err != nil {
		return err
	}
	yField, err := correlationFieldOrDefault(src, cfg.YField, 1)
	if err != nil {
		return err
	}

	points := l.LoadCorrelation(ctx, sourceID, xField.ID, yField.ID)
	if len(points) == 0 {
		return fmt.Errorf("no correlation data for %q", sourceID)
	}

	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	for i, p := range points {
		xs[i] = p.X
		ys[i] = p.Y
	}

	summary := outwriter.CorrelationSummary{
		XLabel: xField.Label,
		YLabel: yField.Label,
		R:      stats.PearsonCorrelation(xs, ys),
	}
	if cfg.Trend {
		fitPoints := make([]stats.Point, len(points))
		for i, p := range points {
			fitPoints[i] = stats.Point{X: p.X, Y: p.Y}
		}
		if reg := stats.LinearRegression(fitPoints); reg != nil {
			summary.HasFit = true
			summary.Slope = reg.Slope
			summary.Interc = reg.Intercept
			summary.RSquare = reg.RSquared
		}
	}

	ow := outwriter.NewOutWriter()
	return ow.WriteCorrelation(points, summary, cfg)
}

func correlationFieldOrDefault(src *schema.CategoricalSource, fieldID string, fallback int) (*schema.CorrelationField, error) {
	if fieldID == "" {
		return &src.CorrelationFields[fallback], nil
	}
	for i := range src.CorrelationFields {
		if src.CorrelationFields[i].ID == fieldID {
			return &src.CorrelationFields[i], nil
		}
	}
	return nil, fmt.Errorf("unknown correlation field %q for source %q", fieldID, src.ID)
}

// ExecutePulsePredict forecasts when the selected metric crosses the target
// milestone, or each of the next ladder milestones when no target is given.
func ExecutePulsePredict(ctx context.Context, cfg *contract.Config, l *loader.Loader) error {
	if len(cfg.Metrics) == 0 {
		return errors.New("--metric is required")
	}
	metricID := cfg.Metrics[0]

	// Predictions always fit against monthly values so the day-per-index
	// conversion stays uniform across sources.
	data := l.LoadMetricData(ctx, metricID, schema.Monthly)
	if data == nil {
		return fmt.Errorf("failed to load metric %q", metricID)
	}

	points := data.Points
	if data.Metric.ExcludeZero {
		points = loader.ApplyExcludeZero(points)
	}

	var targets []float64
	if cfg.Target > 0 {
		targets = []float64{cfg.Target}
	} else {
		current := 0.0
		if len(points) > 0 {
			current = points[len(points)-1].Value
		}
		targets = predict.NextMilestones(current)
	}
	if len(targets) == 0 {
		return fmt.Errorf("no milestones above the current value of %q", metricID)
	}

	preds := make([]schema.MilestonePrediction, 0, len(targets))
	for _, target := range targets {
		preds = append(preds, predict.PredictMilestone(points, target, predict.Options{}))
	}

	ow := outwriter.NewOutWriter()
	return ow.WritePredictions(data.Metric, preds, cfg)
}

// ExecutePulseLinkDecode parses a query string or full URL into the
// playground state and prints it as JSON.
func ExecutePulseLinkDecode(cfg *contract.Config, raw string) error {
	return outwriter.PrintPlaygroundState(state.Decode(stripToQuery(raw)), cfg)
}

// ExecutePulseLinkEncode canonicalizes a query string into a shareable link
// against the configured base URL and hands it to the publisher.
func ExecutePulseLinkEncode(cfg *contract.Config, raw string, publisher contract.LinkPublisher) error {
	st := state.Decode(stripToQuery(raw))
	link := state.ShareURL(cfg.ShareBaseURL, st)
	if err := state.Publish(publisher, link); err != nil {
		return fmt.Errorf("failed to publish link: %w", err)
	}
	return outwriter.PrintShareLink(link, cfg)
}

// stripToQuery accepts either a bare query string or a full URL.
func stripToQuery(raw string) string {
	if i := strings.Index(raw, "?"); i >= 0 {
		return raw[i+1:]
	}
	return raw
}
