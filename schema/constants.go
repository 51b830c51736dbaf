package schema

// Custom string types for type safety.
type (
	// Granularity is the period length of a time series.
	Granularity string

	// SourceType distinguishes time-series sources from categorical ones.
	SourceType string

	// CategoricalType is the shape of a categorical dataset.
	CategoricalType string

	// SizeHint estimates the size of a categorical file.
	SizeHint string

	// Mode is the playground view mode.
	Mode string

	// RangePreset is a relative date-range filter measured back from now.
	RangePreset string

	// ChartType is the time-series rendering style.
	ChartType string

	// DataMode selects cumulative values or period-over-period deltas.
	DataMode string

	// ScaleType is the distribution axis scale.
	ScaleType string

	// SortDir is a ranking sort direction.
	SortDir string

	// RankedType is the value type of a ranking field.
	RankedType string

	// Confidence rates how trustworthy a milestone prediction is.
	Confidence string

	// OutputMode represents the format of CLI output.
	OutputMode string

	// CacheBackend represents the database backend for snapshot caching.
	CacheBackend string
)

// All granularities supported by backing files.
const (
	Daily   Granularity = "daily"
	Weekly  Granularity = "weekly"
	Monthly Granularity = "monthly"
)

// All source types.
const (
	SourceTimeSeries  SourceType = "timeseries"
	SourceCategorical SourceType = "categorical"
)

// All categorical dataset shapes.
const (
	DistributionType CategoricalType = "distribution"
	RankingType      CategoricalType = "ranking"
	CorrelationType  CategoricalType = "correlation"
)

// All size hints.
const (
	SmallSize  SizeHint = "small"
	MediumSize SizeHint = "medium"
	LargeSize  SizeHint = "large"
)

// All playground modes.
const (
	TimeSeriesMode   Mode = "timeseries" // default
	DistributionMode Mode = "distribution"
	RankingMode      Mode = "ranking"
	CorrelationMode  Mode = "correlation"
)

// All range presets.
const (
	Range1M  RangePreset = "1m"
	Range3M  RangePreset = "3m"
	Range6M  RangePreset = "6m"
	Range1Y  RangePreset = "1y"
	Range2Y  RangePreset = "2y"
	RangeAll RangePreset = "all" // default, no filter
)

// All chart types.
const (
	LineChart ChartType = "line" // default
	AreaChart ChartType = "area"
)

// All data modes.
const (
	CumulativeData DataMode = "cumulative" // default
	ChangeData     DataMode = "change"
)

// All scale types.
const (
	LinearScale ScaleType = "linear" // default
	LogScale    ScaleType = "log"
)

// All sort directions.
const (
	SortAsc  SortDir = "asc"
	SortDesc SortDir = "desc" // default
)

// All ranking value types.
const (
	NumberValue     RankedType = "number"
	PercentageValue RankedType = "percentage"
)

// All confidence ratings.
const (
	HighConfidence   Confidence = "high"
	MediumConfidence Confidence = "medium"
	LowConfidence    Confidence = "low"
)

// All output modes supported.
const (
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	CSVOut     OutputMode = "csv"
	ParquetOut OutputMode = "parquet"
)

// All cache backends supported.
const (
	SQLiteBackend     CacheBackend = "sqlite" // default
	MySQLBackend      CacheBackend = "mysql"
	PostgreSQLBackend CacheBackend = "postgresql"
	NoneBackend       CacheBackend = "none"
)

// MaxSelectedMetrics caps how many metrics a time-series view may select.
const MaxSelectedMetrics = 4

// ValidRangePresets lists all valid range presets.
var ValidRangePresets = map[RangePreset]struct{}{
	Range1M:  {},
	Range3M:  {},
	Range6M:  {},
	Range1Y:  {},
	Range2Y:  {},
	RangeAll: {},
}

// ValidModes lists all valid playground modes.
var ValidModes = map[Mode]struct{}{
	TimeSeriesMode:   {},
	DistributionMode: {},
	RankingMode:      {},
	CorrelationMode:  {},
}

// ValidChartTypes lists all valid chart types.
var ValidChartTypes = map[ChartType]struct{}{
	LineChart: {},
	AreaChart: {},
}

// ValidDataModes lists all valid data modes.
var ValidDataModes = map[DataMode]struct{}{
	CumulativeData: {},
	ChangeData:     {},
}

// ValidScaleTypes lists all valid scale types.
var ValidScaleTypes = map[ScaleType]struct{}{
	LinearScale: {},
	LogScale:    {},
}

// ValidSortDirs lists all valid sort directions.
var ValidSortDirs = map[SortDir]struct{}{
	SortAsc:  {},
	SortDesc: {},
}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut:    {},
	JSONOut:    {},
	CSVOut:     {},
	ParquetOut: {},
}

// ValidCacheBackends lists all valid cache backends.
var ValidCacheBackends = map[CacheBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}
