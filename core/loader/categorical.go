package loader

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/n8n-pulse/pulse/core/registry"
	"github.com/n8n-pulse/pulse/core/stats"
	"github.com/n8n-pulse/pulse/internal/contract"
	"github.com/n8n-pulse/pulse/schema"
)

// LoadDistribution realizes one distribution field of a categorical source.
// Pre-binned data (CountKey declared) is consumed directly; raw values are
// binned with Sturges' rule. Unknown ids, fetch failures, and empty value
// sets all return nil.
func (l *Loader) LoadDistribution(ctx context.Context, sourceID, fieldID string) *schema.DistributionData {
	src, ok := registry.CategoricalSourceByID(sourceID)
	if !ok || src.DataType != schema.DistributionType {
		contract.Warnf("unknown distribution source %q", sourceID)
		return nil
	}

	field, ok := distributionField(src, fieldID)
	if !ok {
		contract.Warnf("source %q has no distribution field %q", sourceID, fieldID)
		return nil
	}

	root, err := l.fetchFile(ctx, src.File)
	if err != nil {
		contract.Warnf("failed to load %s: %v", src.File, err)
		return nil
	}

	rows := rowsAt(root, field.DataPath, src.DataPath)
	if field.CountKey != "" {
		return preBinnedDistribution(rows, field)
	}
	return binnedDistribution(rows, field)
}

// distributionField resolves a field id, defaulting to the first declared
// field when id is empty.
func distributionField(src *schema.CategoricalSource, fieldID string) (*schema.DistributionField, bool) {
	if len(src.DistributionFields) == 0 {
		return nil, false
	}
	if fieldID == "" {
		return &src.DistributionFields[0], true
	}
	for i := range src.DistributionFields {
		if src.DistributionFields[i].ID == fieldID {
			return &src.DistributionFields[i], true
		}
	}
	return nil, false
}

// preBinnedDistribution consumes rows the build scripts already bucketed.
// Aggregate stats re-expand counts into a virtual value list so the median
// matches what binning the raw values would have produced.
func preBinnedDistribution(rows []any, field *schema.DistributionField) *schema.DistributionData {
	var bins []schema.HistogramBin
	var virtual []float64
	var total float64

	for _, el := range rows {
		obj, ok := el.(map[string]any)
		if !ok {
			continue
		}
		value, ok := asFloat(obj[field.ValueKey])
		if !ok {
			continue
		}
		countF, ok := asFloat(obj[field.CountKey])
		if !ok || countF < 0 {
			continue
		}
		count := int(countF)

		label := fmt.Sprintf("%g", value)
		if field.LabelKey != "" {
			if s, ok := asString(obj[field.LabelKey]); ok {
				label = s
			}
		}

		bins = append(bins, schema.HistogramBin{Label: label, Min: value, Max: value, Count: count})
		for range count {
			virtual = append(virtual, value)
		}
		total += value * countF
	}

	if len(virtual) == 0 {
		return nil
	}

	summary := stats.CalculateStats(virtual)
	return &schema.DistributionData{
		Bins: bins,
		Stats: schema.DistributionStats{
			Average: summary.Mean,
			Median:  summary.Median,
			Max:     summary.Max,
			Total:   total,
		},
	}
}

// binnedDistribution bins raw row values with Sturges' rule.
func binnedDistribution(rows []any, field *schema.DistributionField) *schema.DistributionData {
	var values []float64
	for _, el := range rows {
		obj, ok := el.(map[string]any)
		if !ok {
			continue
		}
		if v, ok := asFloat(obj[field.ValueKey]); ok {
			values = append(values, v)
		}
	}
	if len(values) == 0 {
		return nil
	}

	var total float64
	for _, v := range values {
		total += v
	}

	rawBins := stats.CreateHistogramBins(values, stats.AutoBinCount)
	bins := make([]schema.HistogramBin, len(rawBins))
	for i, b := range rawBins {
		bins[i] = schema.HistogramBin{
			Label: fmt.Sprintf("%g–%g", b.Min, b.Max),
			Min:   b.Min,
			Max:   b.Max,
			Count: b.Count,
		}
	}

	summary := stats.CalculateStats(values)
	return &schema.DistributionData{
		Bins: bins,
		Stats: schema.DistributionStats{
			Average: summary.Mean,
			Median:  summary.Median,
			Max:     summary.Max,
			Total:   total,
		},
	}
}

// LoadRanking realizes a ranking source as a flat row list. Rows come either
// from a plain row array or from an object keyed by category name mapping to
// arrays of rows, in which case the key becomes the group (and the label,
// when the row itself has none).
func (l *Loader) LoadRanking(ctx context.Context, sourceID string) *schema.RankingData {
	src, ok := registry.CategoricalSourceByID(sourceID)
	if !ok || src.DataType != schema.RankingType {
		contract.Warnf("unknown ranking source %q", sourceID)
		return nil
	}

	root, err := l.fetchFile(ctx, src.File)
	if err != nil {
		contract.Warnf("failed to load %s: %v", src.File, err)
		return nil
	}

	node := root
	if src.DataPath != "" {
		node = walkPath(root, src.DataPath)
	}

	var data schema.RankingData
	groups := make(map[string]struct{})

	appendRow := func(obj map[string]any, impliedGroup string) {
		row := schema.RankingRow{
			Label:  impliedGroup,
			Values: make(map[string]float64, len(src.RankingFields)),
			Group:  impliedGroup,
		}
		if src.LabelField != "" {
			if s, ok := asString(obj[src.LabelField]); ok {
				row.Label = s
			}
		}
		if src.GroupByField != "" {
			if s, ok := asString(obj[src.GroupByField]); ok {
				row.Group = s
			}
		}
		for _, f := range src.RankingFields {
			if v, ok := asFloat(obj[f.Key]); ok {
				row.Values[f.ID] = v
			}
		}
		if row.Label == "" {
			return
		}
		if row.Group != "" {
			groups[row.Group] = struct{}{}
		}
		data.Rows = append(data.Rows, row)
	}

	switch typed := node.(type) {
	case []any:
		for _, el := range typed {
			if obj, ok := el.(map[string]any); ok {
				appendRow(obj, "")
			}
		}
	case map[string]any:
		keys := make([]string, 0, len(typed))
		for k := range typed {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			arr, ok := typed[k].([]any)
			if !ok {
				continue
			}
			for _, el := range arr {
				if obj, ok := el.(map[string]any); ok {
					appendRow(obj, k)
				}
			}
		}
	default:
		return nil
	}

	data.Groups = make([]string, 0, len(groups))
	for g := range groups {
		data.Groups = append(data.Groups, g)
	}
	sort.Strings(data.Groups)
	return &data
}

// LoadCorrelation projects each row of a correlation source onto two axes,
// silently dropping rows where either coordinate is not a finite number.
func (l *Loader) LoadCorrelation(ctx context.Context, sourceID, xFieldID, yFieldID string) []schema.CorrelationPoint {
	src, ok := registry.CategoricalSourceByID(sourceID)
	if !ok || src.DataType != schema.CorrelationType {
		contract.Warnf("unknown correlation source %q", sourceID)
		return nil
	}

	xField, ok := correlationField(src, xFieldID, 0)
	if !ok {
		contract.Warnf("source %q has no correlation field %q", sourceID, xFieldID)
		return nil
	}
	yField, ok := correlationField(src, yFieldID, 1)
	if !ok {
		contract.Warnf("source %q has no correlation field %q", sourceID, yFieldID)
		return nil
	}

	root, err := l.fetchFile(ctx, src.File)
	if err != nil {
		contract.Warnf("failed to load %s: %v", src.File, err)
		return nil
	}

	var points []schema.CorrelationPoint
	for _, el := range rowsAt(root, "", src.DataPath) {
		obj, ok := el.(map[string]any)
		if !ok {
			continue
		}
		x, okX := asFloat(obj[xField.Key])
		y, okY := asFloat(obj[yField.Key])
		if !okX || !okY || !isFinite(x) || !isFinite(y) {
			continue
		}
		p := schema.CorrelationPoint{X: x, Y: y}
		if src.LabelField != "" {
			p.Label, _ = asString(obj[src.LabelField])
		}
		if src.GroupByField != "" {
			p.Group, _ = asString(obj[src.GroupByField])
		}
		points = append(points, p)
	}
	return points
}

// correlationField resolves a field id, defaulting to the field at fallback
// index when id is empty.
func correlationField(src *schema.CategoricalSource, fieldID string, fallback int) (*schema.CorrelationField, bool) {
	if fieldID == "" {
		if fallback < len(src.CorrelationFields) {
			return &src.CorrelationFields[fallback], true
		}
		return nil, false
	}
	for i := range src.CorrelationFields {
		if src.CorrelationFields[i].ID == fieldID {
			return &src.CorrelationFields[i], true
		}
	}
	return nil, false
}

// rowsAt resolves the row array for a field, preferring the field's own path
// over the source default. The source root itself may be the array.
func rowsAt(root any, fieldPath, sourcePath string) []any {
	path := fieldPath
	if path == "" {
		path = sourcePath
	}
	node := root
	if path != "" {
		node = walkPath(root, path)
	}
	arr, ok := node.([]any)
	if !ok {
		return nil
	}
	return arr
}

// isFinite rejects NaN and infinities.
func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// SortRanking orders rows by one field in place; rows missing the field sort
// last regardless of direction.
func SortRanking(data *schema.RankingData, fieldID string, dir schema.SortDir) {
	if data == nil {
		return
	}
	sort.SliceStable(data.Rows, func(i, j int) bool {
		vi, okI := data.Rows[i].Values[fieldID]
		vj, okJ := data.Rows[j].Values[fieldID]
		if okI != okJ {
			return okI
		}
		if dir == schema.SortAsc {
			return vi < vj
		}
		return vi > vj
	})
}

// FilterRankingByGroup keeps rows in the given group; empty keeps everything.
func FilterRankingByGroup(data *schema.RankingData, group string) *schema.RankingData {
	if data == nil || group == "" {
		return data
	}
	filtered := &schema.RankingData{Groups: data.Groups}
	for _, row := range data.Rows {
		if row.Group == group {
			filtered.Rows = append(filtered.Rows, row)
		}
	}
	return filtered
}

// LimitRanking truncates to the first n rows; n <= 0 keeps everything.
func LimitRanking(data *schema.RankingData, n int) *schema.RankingData {
	if data == nil || n <= 0 || len(data.Rows) <= n {
		return data
	}
	return &schema.RankingData{Rows: data.Rows[:n], Groups: data.Groups}
}
