package loader

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/n8n-pulse/pulse/schema"
)

// weeksPerMonth approximates how many ISO weeks a month spans. The mapping
// month = ceil(week / 4.33) is intentionally approximate: chart alignment
// across granularities relies on it, so it must not be replaced with a
// calendar-exact conversion.
const weeksPerMonth = 4.33

// NormalizeDateFormat canonicalizes YYYY-MM-DD and YYYY-Www dates down to
// YYYY-MM for cross-granularity comparison. Already-monthly and unrecognized
// inputs pass through unchanged.
func NormalizeDateFormat(date string) string {
	if len(date) == 10 && date[4] == '-' && date[7] == '-' {
		return date[:7]
	}
	if i := strings.Index(date, "-W"); i == 4 {
		week, err := strconv.Atoi(date[i+2:])
		if err != nil || week < 1 {
			return date
		}
		month := int(math.Ceil(float64(week) / weeksPerMonth))
		if month > 12 {
			month = 12
		}
		return fmt.Sprintf("%s-%02d", date[:4], month)
	}
	return date
}

// FindOverlappingRange intersects the date coverage of all the given series:
// [max of starts, min of ends] in YYYY-MM granularity, aligning multi-metric
// charts to comparable windows. It returns nil when any series is empty or
// the intersection is inverted.
func FindOverlappingRange(series [][]schema.TimeSeriesPoint) *schema.DateRange {
	if len(series) == 0 {
		return nil
	}

	var start, end string
	for _, s := range series {
		if len(s) == 0 {
			return nil
		}
		first := NormalizeDateFormat(s[0].Date)
		last := NormalizeDateFormat(s[len(s)-1].Date)
		if start == "" || first > start {
			start = first
		}
		if end == "" || last < end {
			end = last
		}
	}

	if start > end {
		return nil
	}
	return &schema.DateRange{Start: start, End: end}
}

// FilterByDateRange keeps the points whose normalized date falls inside the
// window, inclusive on both ends. A nil range keeps everything.
func FilterByDateRange(points []schema.TimeSeriesPoint, r *schema.DateRange) []schema.TimeSeriesPoint {
	if r == nil {
		return points
	}
	filtered := make([]schema.TimeSeriesPoint, 0, len(points))
	for _, p := range points {
		d := NormalizeDateFormat(p.Date)
		if (r.Start == "" || d >= r.Start) && (r.End == "" || d <= r.End) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

// NormalizeToPercentChange rebases every value to its percent delta from the
// first point. A zero first value disables rebasing and returns the input
// unchanged, to avoid division by zero.
func NormalizeToPercentChange(points []schema.TimeSeriesPoint) []schema.TimeSeriesPoint {
	if len(points) == 0 || points[0].Value == 0 {
		return points
	}
	base := points[0].Value
	rebased := make([]schema.TimeSeriesPoint, len(points))
	for i, p := range points {
		rebased[i] = schema.TimeSeriesPoint{
			Date:  p.Date,
			Value: (p.Value - base) / base * 100,
		}
	}
	return rebased
}

// ToPeriodChange converts a cumulative series to period-over-period deltas by
// subtracting each point from its predecessor. Fewer than 2 points pass
// through unchanged.
func ToPeriodChange(points []schema.TimeSeriesPoint) []schema.TimeSeriesPoint {
	if len(points) < 2 {
		return points
	}
	deltas := make([]schema.TimeSeriesPoint, 0, len(points)-1)
	for i := 1; i < len(points); i++ {
		deltas = append(deltas, schema.TimeSeriesPoint{
			Date:  points[i].Date,
			Value: points[i].Value - points[i-1].Value,
		})
	}
	return deltas
}

// dualAxisRatio is the spread between per-series maxima beyond which one
// shared y-axis stops being readable.
const dualAxisRatio = 10

// NeedsDualAxis reports whether the ratio between the largest and smallest
// per-series maxima exceeds 10x, signaling the renderer should use two
// y-axes. Fewer than two series, or a non-positive smallest maximum, never
// need a second axis.
func NeedsDualAxis(series [][]schema.TimeSeriesPoint) bool {
	if len(series) < 2 {
		return false
	}

	largest := math.Inf(-1)
	smallest := math.Inf(1)
	for _, s := range series {
		if len(s) == 0 {
			continue
		}
		maxV := s[0].Value
		for _, p := range s[1:] {
			if p.Value > maxV {
				maxV = p.Value
			}
		}
		if maxV > largest {
			largest = maxV
		}
		if maxV < smallest {
			smallest = maxV
		}
	}

	if smallest <= 0 || math.IsInf(largest, -1) || math.IsInf(smallest, 1) {
		return false
	}
	return largest/smallest > dualAxisRatio
}

// ApplyExcludeZero drops zero-valued points from a series. Metrics declaring
// ExcludeZero use 0 as a "not yet measured" sentinel; display consumers call
// this explicitly; the loader itself never removes zeros.
func ApplyExcludeZero(points []schema.TimeSeriesPoint) []schema.TimeSeriesPoint {
	filtered := make([]schema.TimeSeriesPoint, 0, len(points))
	for _, p := range points {
		if p.Value != 0 {
			filtered = append(filtered, p)
		}
	}
	return filtered
}
