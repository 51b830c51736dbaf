package loader

import (
	"strings"

	"github.com/n8n-pulse/pulse/schema"
)

// ExtractTimeSeries realizes a metric's series from a decoded backing file.
//
// When the metric path is dotted it names a nested array (e.g.
// "timeline.monthly") whose elements carry the value under ValueKey; the
// granularity argument is ignored because the path already selects a period.
// Otherwise the path names the numeric field to read from each element of
// rawData[granularity].
//
// Missing granularity data is a normal, silent case: an absent key, a
// non-array, or malformed elements yield an empty (or shorter) result, never
// an error. Zero values are kept; ExcludeZero is a display hint applied by
// ApplyExcludeZero, not here.
func ExtractTimeSeries(rawData any, metric *schema.MetricDefinition, granularity schema.Granularity) []schema.TimeSeriesPoint {
	dateKey := metric.DateKey
	if dateKey == "" {
		dateKey = "date"
	}

	if strings.Contains(metric.Path, ".") {
		valueKey := metric.ValueKey
		if valueKey == "" {
			valueKey = "value"
		}
		return mapElements(walkPath(rawData, metric.Path), dateKey, valueKey)
	}

	obj, ok := rawData.(map[string]any)
	if !ok {
		return nil
	}
	return mapElements(obj[string(granularity)], dateKey, metric.Path)
}

// mapElements projects an array of objects to time series points, skipping
// elements without a string date and a numeric value.
func mapElements(node any, dateKey, valueKey string) []schema.TimeSeriesPoint {
	arr, ok := node.([]any)
	if !ok {
		return nil
	}

	points := make([]schema.TimeSeriesPoint, 0, len(arr))
	for _, el := range arr {
		obj, ok := el.(map[string]any)
		if !ok {
			continue
		}
		date, ok := asString(obj[dateKey])
		if !ok || date == "" {
			continue
		}
		value, ok := asFloat(obj[valueKey])
		if !ok {
			continue
		}
		points = append(points, schema.TimeSeriesPoint{Date: date, Value: value})
	}
	return points
}
