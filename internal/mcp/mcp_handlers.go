package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/n8n-pulse/pulse/core/loader"
	"github.com/n8n-pulse/pulse/core/predict"
	"github.com/n8n-pulse/pulse/core/registry"
	"github.com/n8n-pulse/pulse/core/state"
	"github.com/n8n-pulse/pulse/internal/contract"
	"github.com/n8n-pulse/pulse/schema"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	loader  *loader.Loader
}

func (h *toolHandler) handleListMetrics(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	jsonData, _ := json.MarshalIndent(registry.AllMetrics(), "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetMetricSeries(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	metricID := request.GetString("metric", "")
	granularity := schema.Granularity(request.GetString("granularity", string(h.baseCfg.Granularity)))

	data := h.loader.LoadMetricData(ctx, metricID, granularity)
	if data == nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load metric %q", metricID)), nil
	}

	if preset := schema.RangePreset(request.GetString("range", "")); preset != "" {
		data.Points = loader.FilterByDateRange(data.Points, state.Window(preset))
	}
	// Sentinel zeros must go before the delta transform, or a single
	// unmeasured period turns into two bogus deltas around it.
	if data.Metric.ExcludeZero {
		data.Points = loader.ApplyExcludeZero(data.Points)
	}
	if request.GetString("data_mode", "") == string(schema.ChangeData) {
		data.Points = loader.ToPeriodChange(data.Points)
	}

	jsonData, _ := json.MarshalIndent(data, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetDistribution(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sourceID := request.GetString("source", "")
	fieldID := request.GetString("field", "")

	data := h.loader.LoadDistribution(ctx, sourceID, fieldID)
	if data == nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load distribution %q", sourceID)), nil
	}

	jsonData, _ := json.MarshalIndent(data, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetRanking(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sourceID := request.GetString("source", "")

	data := h.loader.LoadRanking(ctx, sourceID)
	if data == nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load ranking %q", sourceID)), nil
	}

	sortBy := request.GetString("sort_by", "")
	if sortBy == "" {
		if src, ok := registry.CategoricalSourceByID(sourceID); ok && len(src.RankingFields) > 0 {
			sortBy = src.RankingFields[0].ID
		}
	}
	dir := schema.SortDir(request.GetString("dir", string(schema.SortDesc)))
	loader.SortRanking(data, sortBy, dir)

	if group := request.GetString("group", ""); group != "" {
		data = loader.FilterRankingByGroup(data, group)
	}
	if limit := request.GetInt("limit", 0); limit > 0 {
		data = loader.LimitRanking(data, limit)
	}

	jsonData, _ := json.MarshalIndent(data, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handlePredictMilestone(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	metricID := request.GetString("metric", "")

	data := h.loader.LoadMetricData(ctx, metricID, schema.Monthly)
	if data == nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load metric %q", metricID)), nil
	}

	points := data.Points
	if data.Metric.ExcludeZero {
		points = loader.ApplyExcludeZero(points)
	}

	var targets []float64
	if target := request.GetFloat("target", 0); target > 0 {
		targets = []float64{target}
	} else {
		current := 0.0
		if len(points) > 0 {
			current = points[len(points)-1].Value
		}
		targets = predict.NextMilestones(current)
	}

	preds := make([]schema.MilestonePrediction, 0, len(targets))
	for _, target := range targets {
		preds = append(preds, predict.PredictMilestone(points, target, predict.Options{}))
	}

	payload := struct {
		Metric      string                       `json:"metric"`
		Predictions []schema.MilestonePrediction `json:"predictions"`
	}{Metric: metricID, Predictions: preds}

	jsonData, _ := json.MarshalIndent(payload, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
