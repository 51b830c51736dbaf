package schema

// PlaygroundState is the complete, serializable playground selection.
// Mode is the discriminant; exactly the payload matching Mode is non-nil.
// State is pure data produced fresh from a query string and discarded on
// each transition, so equality is plain struct comparison per payload.
type PlaygroundState struct {
	Mode         Mode               `json:"mode"`
	TimeSeries   *TimeSeriesState   `json:"timeseries,omitempty"`
	Distribution *DistributionState `json:"distribution,omitempty"`
	Ranking      *RankingState      `json:"ranking,omitempty"`
	Correlation  *CorrelationState  `json:"correlation,omitempty"`
}

// TimeSeriesState holds the selection for the time-series view.
type TimeSeriesState struct {
	Metrics   []string    `json:"metrics"` // At most MaxSelectedMetrics entries
	Range     RangePreset `json:"range"`
	ChartType ChartType   `json:"chartType"`
	DataMode  DataMode    `json:"dataMode"`
}

// DistributionState holds the selection for the distribution view.
type DistributionState struct {
	Source string    `json:"source"`
	Field  string    `json:"field"`
	Scale  ScaleType `json:"scale"`
}

// RankingState holds the selection for the ranking view.
type RankingState struct {
	Source  string  `json:"source"`
	SortBy  string  `json:"sortBy"`
	SortDir SortDir `json:"sortDir"`
	Filter  string  `json:"filter"` // Group filter, empty for all groups
	Limit   int     `json:"limit"`
}

// CorrelationState holds the selection for the correlation view.
type CorrelationState struct {
	Source     string `json:"source"`
	XField     string `json:"xField"`
	YField     string `json:"yField"`
	ColorField string `json:"colorField"` // Optional grouping attribute, empty for none
	Trend      bool   `json:"trend"`
}

// Documented defaults for every decodable field. Decoding any malformed,
// missing or out-of-enum parameter silently falls back to these.
const (
	DefaultMode         = TimeSeriesMode
	DefaultMetricID     = "github-stars"
	DefaultRange        = RangeAll
	DefaultChartType    = LineChart
	DefaultDataMode     = CumulativeData
	DefaultDistSource   = "template-categories"
	DefaultScale        = LinearScale
	DefaultRankSource   = "creator-leaderboard"
	DefaultSortDir      = SortDesc
	DefaultRankingLimit = 20
	DefaultCorrSource   = "template-stats"
)

// Source-dependent selections (distribution field, ranking sort key,
// correlation axes) default to "", which consumers resolve as the source's
// first declared field.

// DefaultDistributionState returns the distribution selection decoded from an
// empty parameter group.
func DefaultDistributionState() *DistributionState {
	return &DistributionState{Source: DefaultDistSource, Scale: DefaultScale}
}

// DefaultRankingState returns the ranking selection decoded from an empty
// parameter group.
func DefaultRankingState() *RankingState {
	return &RankingState{Source: DefaultRankSource, SortDir: DefaultSortDir, Limit: DefaultRankingLimit}
}

// DefaultCorrelationState returns the correlation selection decoded from an
// empty parameter group.
func DefaultCorrelationState() *CorrelationState {
	return &CorrelationState{Source: DefaultCorrSource}
}

// DefaultTimeSeriesState returns the state decoded from an empty query string.
func DefaultTimeSeriesState() *TimeSeriesState {
	return &TimeSeriesState{
		Metrics:   []string{DefaultMetricID},
		Range:     DefaultRange,
		ChartType: DefaultChartType,
		DataMode:  DefaultDataMode,
	}
}

// DefaultPlaygroundState returns the complete default state.
func DefaultPlaygroundState() PlaygroundState {
	return PlaygroundState{
		Mode:       DefaultMode,
		TimeSeries: DefaultTimeSeriesState(),
	}
}
