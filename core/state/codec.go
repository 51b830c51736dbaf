// Package state maps the playground selection to and from a compact query
// string, so every view is shareable as a URL. Decoding is total: malformed,
// missing, or out-of-enum parameters silently fall back to documented
// defaults and unknown parameters are ignored. Encoding omits every field
// equal to its default and emits only the parameter group relevant to the
// current mode, keeping shared URLs short.
package state

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/n8n-pulse/pulse/internal/contract"
	"github.com/n8n-pulse/pulse/schema"
)

// Query parameter names. Per-mode groups are strictly disjoint so a decoded
// state never carries another mode's leftovers.
const (
	paramMode = "mode"

	paramMetrics   = "m" // comma-joined metric ids, max schema.MaxSelectedMetrics
	paramRange     = "r"
	paramChartType = "t"
	paramDataMode  = "d"

	paramDistSource = "ds"
	paramDistField  = "df"
	paramDistScale  = "dscale"

	paramRankSource = "rs"
	paramRankSort   = "rsort"
	paramRankDir    = "rdir"
	paramRankFilter = "rfilter"
	paramRankLimit  = "rlimit"

	paramCorrSource = "cs"
	paramCorrX      = "cx"
	paramCorrY      = "cy"
	paramCorrColor  = "ccolor"
	paramCorrTrend  = "ctrend"
)

// Decode reconstructs a playground state from a raw query string. It never
// fails; the worst input decodes to the default state.
func Decode(query string) schema.PlaygroundState {
	query = strings.TrimPrefix(query, "?")
	// ParseQuery reports the first bad pair but still returns the rest.
	values, _ := url.ParseQuery(query)

	mode := schema.Mode(values.Get(paramMode))
	if _, ok := schema.ValidModes[mode]; !ok {
		mode = schema.DefaultMode
	}

	s := schema.PlaygroundState{Mode: mode}
	switch mode {
	case schema.DistributionMode:
		s.Distribution = decodeDistribution(values)
	case schema.RankingMode:
		s.Ranking = decodeRanking(values)
	case schema.CorrelationMode:
		s.Correlation = decodeCorrelation(values)
	default:
		s.TimeSeries = decodeTimeSeries(values)
	}
	return s
}

func decodeTimeSeries(values url.Values) *schema.TimeSeriesState {
	ts := schema.DefaultTimeSeriesState()

	if raw := values.Get(paramMetrics); raw != "" {
		var metrics []string
		for _, id := range strings.Split(raw, ",") {
			if id = strings.TrimSpace(id); id != "" {
				metrics = append(metrics, id)
			}
		}
		// Enforce the selection cap here so no caller ever sees more.
		if len(metrics) > schema.MaxSelectedMetrics {
			metrics = metrics[:schema.MaxSelectedMetrics]
		}
		if len(metrics) > 0 {
			ts.Metrics = metrics
		}
	}

	if r := schema.RangePreset(values.Get(paramRange)); r != "" {
		if _, ok := schema.ValidRangePresets[r]; ok {
			ts.Range = r
		}
	}
	if t := schema.ChartType(values.Get(paramChartType)); t != "" {
		if _, ok := schema.ValidChartTypes[t]; ok {
			ts.ChartType = t
		}
	}
	if d := schema.DataMode(values.Get(paramDataMode)); d != "" {
		if _, ok := schema.ValidDataModes[d]; ok {
			ts.DataMode = d
		}
	}
	return ts
}

func decodeDistribution(values url.Values) *schema.DistributionState {
	d := schema.DefaultDistributionState()
	if src := values.Get(paramDistSource); src != "" {
		d.Source = src
	}
	d.Field = values.Get(paramDistField)
	if sc := schema.ScaleType(values.Get(paramDistScale)); sc != "" {
		if _, ok := schema.ValidScaleTypes[sc]; ok {
			d.Scale = sc
		}
	}
	return d
}

func decodeRanking(values url.Values) *schema.RankingState {
	r := schema.DefaultRankingState()
	if src := values.Get(paramRankSource); src != "" {
		r.Source = src
	}
	r.SortBy = values.Get(paramRankSort)
	if dir := schema.SortDir(values.Get(paramRankDir)); dir != "" {
		if _, ok := schema.ValidSortDirs[dir]; ok {
			r.SortDir = dir
		}
	}
	r.Filter = values.Get(paramRankFilter)
	if n, err := strconv.Atoi(values.Get(paramRankLimit)); err == nil && n > 0 {
		r.Limit = n
	}
	return r
}

func decodeCorrelation(values url.Values) *schema.CorrelationState {
	c := schema.DefaultCorrelationState()
	if src := values.Get(paramCorrSource); src != "" {
		c.Source = src
	}
	c.XField = values.Get(paramCorrX)
	c.YField = values.Get(paramCorrY)
	c.ColorField = values.Get(paramCorrColor)
	c.Trend = values.Get(paramCorrTrend) == "1"
	return c
}

// Encode serializes a state to a query string without the leading "?".
// The default state encodes to the empty string.
func Encode(s schema.PlaygroundState) string {
	values := url.Values{}
	if s.Mode != schema.DefaultMode {
		values.Set(paramMode, string(s.Mode))
	}

	switch s.Mode {
	case schema.DistributionMode:
		encodeDistribution(values, s.Distribution)
	case schema.RankingMode:
		encodeRanking(values, s.Ranking)
	case schema.CorrelationMode:
		encodeCorrelation(values, s.Correlation)
	default:
		encodeTimeSeries(values, s.TimeSeries)
	}
	return values.Encode()
}

func encodeTimeSeries(values url.Values, ts *schema.TimeSeriesState) {
	if ts == nil {
		return
	}
	metrics := ts.Metrics
	if len(metrics) > schema.MaxSelectedMetrics {
		metrics = metrics[:schema.MaxSelectedMetrics]
	}
	if len(metrics) > 0 && !(len(metrics) == 1 && metrics[0] == schema.DefaultMetricID) {
		values.Set(paramMetrics, strings.Join(metrics, ","))
	}
	if ts.Range != schema.DefaultRange && ts.Range != "" {
		values.Set(paramRange, string(ts.Range))
	}
	if ts.ChartType != schema.DefaultChartType && ts.ChartType != "" {
		values.Set(paramChartType, string(ts.ChartType))
	}
	if ts.DataMode != schema.DefaultDataMode && ts.DataMode != "" {
		values.Set(paramDataMode, string(ts.DataMode))
	}
}

func encodeDistribution(values url.Values, d *schema.DistributionState) {
	if d == nil {
		return
	}
	if d.Source != schema.DefaultDistSource && d.Source != "" {
		values.Set(paramDistSource, d.Source)
	}
	if d.Field != "" {
		values.Set(paramDistField, d.Field)
	}
	if d.Scale != schema.DefaultScale && d.Scale != "" {
		values.Set(paramDistScale, string(d.Scale))
	}
}

func encodeRanking(values url.Values, r *schema.RankingState) {
	if r == nil {
		return
	}
	if r.Source != schema.DefaultRankSource && r.Source != "" {
		values.Set(paramRankSource, r.Source)
	}
	if r.SortBy != "" {
		values.Set(paramRankSort, r.SortBy)
	}
	if r.SortDir != schema.DefaultSortDir && r.SortDir != "" {
		values.Set(paramRankDir, string(r.SortDir))
	}
	if r.Filter != "" {
		values.Set(paramRankFilter, r.Filter)
	}
	if r.Limit != schema.DefaultRankingLimit && r.Limit > 0 {
		values.Set(paramRankLimit, strconv.Itoa(r.Limit))
	}
}

func encodeCorrelation(values url.Values, c *schema.CorrelationState) {
	if c == nil {
		return
	}
	if c.Source != schema.DefaultCorrSource && c.Source != "" {
		values.Set(paramCorrSource, c.Source)
	}
	if c.XField != "" {
		values.Set(paramCorrX, c.XField)
	}
	if c.YField != "" {
		values.Set(paramCorrY, c.YField)
	}
	if c.ColorField != "" {
		values.Set(paramCorrColor, c.ColorField)
	}
	if c.Trend {
		values.Set(paramCorrTrend, "1")
	}
}

// ShareURL renders a full shareable link against a base URL. An empty base
// yields just the query string.
func ShareURL(base string, s schema.PlaygroundState) string {
	query := Encode(s)
	if base == "" {
		return query
	}
	if query == "" {
		return base
	}
	return base + "?" + query
}

// Publish hands a shareable link to the environment's surface (address bar,
// clipboard). A nil publisher means no surface exists and is a silent no-op,
// never an error.
func Publish(p contract.LinkPublisher, link string) error {
	if p == nil {
		return nil
	}
	return p.Publish(link)
}

// rangeMonths maps each preset to how many months back it reaches.
var rangeMonths = map[schema.RangePreset]int{
	schema.Range1M: 1,
	schema.Range3M: 3,
	schema.Range6M: 6,
	schema.Range1Y: 12,
	schema.Range2Y: 24,
}

// WindowAt computes the YYYY-MM filter window for a preset measured back from
// the given instant. RangeAll and unknown presets mean "no filter" (nil).
func WindowAt(preset schema.RangePreset, now time.Time) *schema.DateRange {
	months, ok := rangeMonths[preset]
	if !ok {
		return nil
	}
	return &schema.DateRange{
		Start: schema.FormatMonth(now.AddDate(0, -months, 0)),
		End:   schema.FormatMonth(now),
	}
}

// Window computes the filter window for a preset measured back from now.
func Window(preset schema.RangePreset) *schema.DateRange {
	return WindowAt(preset, time.Now().UTC())
}
