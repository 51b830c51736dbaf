// Package parquet exports pulse data to Parquet files using
// github.com/parquet-go/parquet-go, so series and rankings can be loaded into
// Spark, DuckDB, Pandas and other columnar tools.
package parquet

import (
	"fmt"
	"os"
	"sort"

	"github.com/parquet-go/parquet-go"

	"github.com/n8n-pulse/pulse/schema"
)

// SeriesRow is one time-series observation in the export layout.
type SeriesRow struct {
	// MetricID is the registry id of the metric
	MetricID string `parquet:"metric_id,snappy"`

	// MetricLabel is the display label of the metric
	MetricLabel string `parquet:"metric_label,snappy"`

	// SourceID is the id of the data source the metric belongs to
	SourceID string `parquet:"source_id,snappy"`

	// Granularity is the period size of the series (daily, weekly, monthly)
	Granularity string `parquet:"granularity,snappy"`

	// Date is the observation date in its normalized string form
	Date string `parquet:"date,snappy"`

	// Value is the observed value
	Value float64 `parquet:"value,snappy"`
}

// RankingRow is one ranked entity in the export layout.
type RankingRow struct {
	// SourceID is the id of the categorical source
	SourceID string `parquet:"source_id,snappy"`

	// Label is the entity's display label
	Label string `parquet:"label,snappy"`

	// Group is the entity's group attribute (nullable)
	Group *string `parquet:"group,optional,snappy"`

	// Field is the ranked field id
	Field string `parquet:"field,snappy"`

	// Value is the entity's value for the field
	Value float64 `parquet:"value,snappy"`
}

// ConvertSeries flattens metric series into export rows.
func ConvertSeries(series []*schema.MetricSeries) []SeriesRow {
	var rows []SeriesRow
	for _, s := range series {
		if s == nil {
			continue
		}
		for _, p := range s.Points {
			rows = append(rows, SeriesRow{
				MetricID:    s.Metric.ID,
				MetricLabel: s.Metric.Label,
				SourceID:    s.Metric.SourceID,
				Granularity: string(s.Granularity),
				Date:        p.Date,
				Value:       p.Value,
			})
		}
	}
	return rows
}

// ConvertRanking flattens ranking rows into export rows, one per field value.
func ConvertRanking(sourceID string, data *schema.RankingData) []RankingRow {
	if data == nil {
		return nil
	}
	var rows []RankingRow
	for _, r := range data.Rows {
		var group *string
		if r.Group != "" {
			g := r.Group
			group = &g
		}
		fields := make([]string, 0, len(r.Values))
		for field := range r.Values {
			fields = append(fields, field)
		}
		sort.Strings(fields)
		for _, field := range fields {
			rows = append(rows, RankingRow{
				SourceID: sourceID,
				Label:    r.Label,
				Group:    group,
				Field:    field,
				Value:    r.Values[field],
			})
		}
	}
	return rows
}

// WriteSeriesParquet writes series rows to a Parquet file.
func WriteSeriesParquet(data []SeriesRow, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteRankingParquet writes ranking rows to a Parquet file.
func WriteRankingParquet(data []RankingRow, outputPath string) error {
	return writeParquet(data, outputPath)
}

// writeParquet writes records to a Parquet file using struct schema inference.
func writeParquet[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// The schema is derived from the struct tags
	writer := parquet.NewGenericWriter[T](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	return nil
}
