// Package schema has configs, models and shared helpers for all parts of pulse.
package schema

// TimeSeriesPoint is a single observation in a metric's history.
// Dates stay opaque sortable strings in one of three canonical forms
// (YYYY-MM-DD, YYYY-MM, YYYY-Www) until a consumer needs arithmetic,
// at which point ParseFlexibleDate converts them to a time.Time.
type TimeSeriesPoint struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

// MetricDefinition describes one numeric time series available to consumers.
// It is pure data interpreted by the loader; adding a metric never requires
// new loading code.
type MetricDefinition struct {
	ID    string `json:"id"`    // Globally unique key across the whole registry
	Label string `json:"label"` // Display name
	Color string `json:"color"` // Display hint for chart renderers

	// Path is either a dot-delimited location of a nested array within the
	// source JSON (e.g. "timeline.monthly"), or the name of the numeric field
	// to read from each element of the granularity arrays.
	Path string `json:"path"`

	ValueKey string `json:"valueKey,omitempty"` // Field read from each element when Path is dotted (default "value")
	DateKey  string `json:"dateKey,omitempty"`  // Date field per element (default "date")

	// ExcludeZero marks 0 as a "not yet measured" sentinel rather than a real
	// observation. The loader never enforces this; display consumers apply
	// loader.ApplyExcludeZero when the flag is set.
	ExcludeZero bool `json:"excludeZero,omitempty"`

	File          string `json:"file,omitempty"`          // Optional override of the owning source's file
	MeasuredSince string `json:"measuredSince,omitempty"` // Optional override of the owning source's MeasuredSince
}

// DataSource is a named group of related metrics backed by one default file.
type DataSource struct {
	ID                 string             `json:"id"`
	Label              string             `json:"label"`
	File               string             `json:"file"`
	Type               SourceType         `json:"type"`
	Granularities      []Granularity      `json:"granularities"`
	DefaultGranularity Granularity        `json:"defaultGranularity"`
	HistoryStart       string             `json:"historyStart"`  // Earliest date with any data, possibly estimated
	MeasuredSince      string             `json:"measuredSince"` // Earliest date considered reliably measured
	Metrics            []MetricDefinition `json:"metrics"`
}

// HasGranularity reports whether the backing file provides the granularity.
func (s *DataSource) HasGranularity(g Granularity) bool {
	for _, have := range s.Granularities {
		if have == g {
			return true
		}
	}
	return false
}

// MetricWithSource is a metric annotated with its owning source, as returned
// by registry lookups.
type MetricWithSource struct {
	MetricDefinition
	SourceID    string `json:"sourceId"`
	SourceLabel string `json:"sourceLabel"`
}

// MetricSeries is one realized metric series.
type MetricSeries struct {
	Metric      MetricWithSource  `json:"metric"`
	Granularity Granularity       `json:"granularity"`
	Points      []TimeSeriesPoint `json:"points"`
}

// DistributionField names one histogrammable series within a categorical file.
type DistributionField struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	DataPath string `json:"dataPath"`           // Dotted path to the value array, empty for the source root
	ValueKey string `json:"valueKey"`           // Value to bin, or the pre-computed bin value
	LabelKey string `json:"labelKey,omitempty"` // Optional display label per row
	CountKey string `json:"countKey,omitempty"` // Set when the data is already pre-binned
}

// RankingField names one sortable row attribute within a categorical file.
type RankingField struct {
	ID    string     `json:"id"`
	Label string     `json:"label"`
	Key   string     `json:"key"`
	Type  RankedType `json:"type"`
}

// CorrelationField names one row attribute usable as a scatter axis.
type CorrelationField struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Key   string `json:"key"`
}

// CategoricalSource describes a non-time-series dataset (a distribution,
// ranking, or correlation table) living in one JSON file.
type CategoricalSource struct {
	ID       string          `json:"id"`
	Label    string          `json:"label"`
	File     string          `json:"file"`
	SizeHint SizeHint        `json:"sizeHint"` // Governs eager vs lazy load in UI consumers
	DataType CategoricalType `json:"dataType"`

	DataPath     string `json:"dataPath,omitempty"`     // Location of the row array, empty for the source root
	LabelField   string `json:"labelField,omitempty"`   // Row attribute supplying the display label
	GroupByField string `json:"groupByField,omitempty"` // Row attribute supplying the group

	DistributionFields []DistributionField `json:"distributionFields,omitempty"`
	RankingFields      []RankingField      `json:"rankingFields,omitempty"`
	CorrelationFields  []CorrelationField  `json:"correlationFields,omitempty"`
}

// RankingRow is one realized row of a ranking dataset.
type RankingRow struct {
	Label    string             `json:"label"`
	Values   map[string]float64 `json:"values"`
	Group    string             `json:"group,omitempty"`
	Metadata map[string]string  `json:"metadata,omitempty"`
}

// RankingData is the realized form of a ranking source.
type RankingData struct {
	Rows   []RankingRow `json:"rows"`
	Groups []string     `json:"groups"` // Sorted, deduplicated group labels for filter UIs
}

// CorrelationPoint is one projected scatter point.
type CorrelationPoint struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Label string  `json:"label"`
	Group string  `json:"group,omitempty"`
}

// HistogramBin is one bin of a realized distribution.
type HistogramBin struct {
	Label string  `json:"label"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Count int     `json:"count"`
}

// DistributionStats are the aggregate statistics shown alongside a histogram.
type DistributionStats struct {
	Average float64 `json:"average"`
	Median  float64 `json:"median"`
	Max     float64 `json:"max"`
	Total   float64 `json:"total"`
}

// DistributionData is the realized form of one distribution field.
type DistributionData struct {
	Bins  []HistogramBin    `json:"bins"`
	Stats DistributionStats `json:"stats"`
}

// MilestonePrediction is the result of fitting a trend against a target value.
// Created fresh per prediction request; never persisted.
type MilestonePrediction struct {
	Milestone     float64    `json:"milestone"`
	PredictedDate string     `json:"predictedDate,omitempty"` // YYYY-MM-DD, empty when no crossing is forecast
	DaysUntil     int        `json:"daysUntil,omitempty"`     // 0 when PredictedDate is empty
	Confidence    Confidence `json:"confidence"`
	GrowthPerDay  float64    `json:"growthPerDay"`
	CurrentValue  float64    `json:"currentValue"`
	PointsUsed    int        `json:"pointsUsed"`
	RSquared      float64    `json:"rSquared"`
}

// DateRange is a half-open filter window in YYYY-MM granularity.
// A nil *DateRange means "no filter".
type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}
