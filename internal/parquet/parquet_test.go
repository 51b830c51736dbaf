package parquet

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pschema "github.com/n8n-pulse/pulse/schema"
)

func TestSeriesRowStructTags(t *testing.T) {
	// Verify struct tags are properly defined for parquet schema inference
	schema := parquet.SchemaOf(new(SeriesRow))
	require.NotNil(t, schema)

	expectedColumns := []string{
		"metric_id",
		"metric_label",
		"source_id",
		"granularity",
		"date",
		"value",
	}
	for _, colName := range expectedColumns {
		_, ok := schema.Lookup(colName)
		require.True(t, ok, "Column %s should exist in schema", colName)
	}
}

func TestRankingRowStructTags(t *testing.T) {
	schema := parquet.SchemaOf(new(RankingRow))
	require.NotNil(t, schema)

	expectedColumns := []string{"source_id", "label", "group", "field", "value"}
	for _, colName := range expectedColumns {
		_, ok := schema.Lookup(colName)
		require.True(t, ok, "Column %s should exist in schema", colName)
	}
}

func TestConvertSeries(t *testing.T) {
	series := []*pschema.MetricSeries{
		nil,
		{
			Metric: pschema.MetricWithSource{
				MetricDefinition: pschema.MetricDefinition{ID: "github-stars", Label: "GitHub Stars"},
				SourceID:         "github",
			},
			Granularity: pschema.Monthly,
			Points: []pschema.TimeSeriesPoint{
				{Date: "2024-01", Value: 100},
				{Date: "2024-02", Value: 150},
			},
		},
	}

	rows := ConvertSeries(series)
	require.Len(t, rows, 2)
	assert.Equal(t, "github-stars", rows[0].MetricID)
	assert.Equal(t, "github", rows[0].SourceID)
	assert.Equal(t, "monthly", rows[0].Granularity)
	assert.Equal(t, "2024-01", rows[0].Date)
	assert.Equal(t, 100.0, rows[0].Value)
}

func TestConvertRanking(t *testing.T) {
	data := &pschema.RankingData{
		Rows: []pschema.RankingRow{
			{Label: "ada", Group: "DE", Values: map[string]float64{"views": 9000, "templates": 12}},
			{Label: "lin", Values: map[string]float64{"views": 2500}},
		},
	}

	rows := ConvertRanking("creator-leaderboard", data)
	require.Len(t, rows, 3)

	// Field keys are emitted in sorted order per row.
	assert.Equal(t, "templates", rows[0].Field)
	assert.Equal(t, "views", rows[1].Field)
	require.NotNil(t, rows[0].Group)
	assert.Equal(t, "DE", *rows[0].Group)
	assert.Nil(t, rows[2].Group)
	assert.Equal(t, "creator-leaderboard", rows[2].SourceID)

	assert.Nil(t, ConvertRanking("x", nil))
}

func TestWriteSeriesParquet(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "series.parquet")

	data := []SeriesRow{
		{MetricID: "github-stars", MetricLabel: "GitHub Stars", SourceID: "github", Granularity: "monthly", Date: "2024-01", Value: 100},
		{MetricID: "github-stars", MetricLabel: "GitHub Stars", SourceID: "github", Granularity: "monthly", Date: "2024-02", Value: 150},
	}
	require.NoError(t, WriteSeriesParquet(data, outputPath))

	info, err := os.Stat(outputPath)
	require.NoError(t, err)
	assert.Positive(t, info.Size())

	// Read it back to verify round trip
	file, err := os.Open(outputPath)
	require.NoError(t, err)
	defer func() { _ = file.Close() }()

	rows, err := parquet.Read[SeriesRow](file, info.Size())
	require.NoError(t, err)
	assert.Equal(t, data, rows)
}

func TestWriteRankingParquet(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "ranking.parquet")

	group := "DE"
	data := []RankingRow{
		{SourceID: "creator-leaderboard", Label: "ada", Group: &group, Field: "views", Value: 9000},
	}
	require.NoError(t, WriteRankingParquet(data, outputPath))

	info, err := os.Stat(outputPath)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestWriteParquetBadPath(t *testing.T) {
	err := WriteSeriesParquet(nil, filepath.Join(t.TempDir(), "missing", "out.parquet"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create output file")
}
