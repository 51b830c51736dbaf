// Package registry is the single point of truth mapping every metric and
// categorical dataset a consumer can pick to the file and JSON path where its
// numbers live. It is pure data plus lookups: no I/O, no side effects. New
// backing files produced by the fetch scripts are wired in by extending the
// catalog, never by new loading code.
package registry

import "github.com/n8n-pulse/pulse/schema"

// AllMetrics flattens every source's metrics into one sequence, each entry
// annotated with its owning source. The ordering is total and stable: source
// declaration order, then metric declaration order.
func AllMetrics() []schema.MetricWithSource {
	var all []schema.MetricWithSource
	for i := range Sources {
		src := &Sources[i]
		for _, m := range src.Metrics {
			all = append(all, schema.MetricWithSource{
				MetricDefinition: m,
				SourceID:         src.ID,
				SourceLabel:      src.Label,
			})
		}
	}
	return all
}

// MetricByID returns the metric and its owning source, or ok=false when the
// id is unknown. It never panics; callers are expected to handle absence.
func MetricByID(id string) (*schema.MetricDefinition, *schema.DataSource, bool) {
	for i := range Sources {
		src := &Sources[i]
		for j := range src.Metrics {
			if src.Metrics[j].ID == id {
				return &src.Metrics[j], src, true
			}
		}
	}
	return nil, nil, false
}

// SourceByID returns the data source with the given id, or ok=false.
func SourceByID(id string) (*schema.DataSource, bool) {
	for i := range Sources {
		if Sources[i].ID == id {
			return &Sources[i], true
		}
	}
	return nil, false
}

// CategoricalSourceByID returns the categorical source with the given id,
// or ok=false.
func CategoricalSourceByID(id string) (*schema.CategoricalSource, bool) {
	for i := range CategoricalSources {
		if CategoricalSources[i].ID == id {
			return &CategoricalSources[i], true
		}
	}
	return nil, false
}

// CategoricalSourcesByType returns all categorical sources of the given
// shape, in declaration order.
func CategoricalSourcesByType(t schema.CategoricalType) []*schema.CategoricalSource {
	var matched []*schema.CategoricalSource
	for i := range CategoricalSources {
		if CategoricalSources[i].DataType == t {
			matched = append(matched, &CategoricalSources[i])
		}
	}
	return matched
}

// MetricFile resolves the backing file for a metric, honoring the per-metric
// override.
func MetricFile(m *schema.MetricDefinition, src *schema.DataSource) string {
	if m.File != "" {
		return m.File
	}
	return src.File
}

// MetricMeasuredSince resolves the measured-since date for a metric, honoring
// the per-metric override.
func MetricMeasuredSince(m *schema.MetricDefinition, src *schema.DataSource) string {
	if m.MeasuredSince != "" {
		return m.MeasuredSince
	}
	return src.MeasuredSince
}
