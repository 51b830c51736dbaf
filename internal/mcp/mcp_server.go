// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/n8n-pulse/pulse/core/loader"
	"github.com/n8n-pulse/pulse/internal/contract"
)

// NewMCPServer initializes and configures the Pulse MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, l *loader.Loader) *server.MCPServer {
	s := server.NewMCPServer(
		"Pulse Analytics Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		loader:  l,
	}

	// --- 1. Tool: list_metrics ---
	s.AddTool(mcp.NewTool("list_metrics",
		mcp.WithDescription("List every community metric in the catalog with its data source."),
	), h.handleListMetrics)

	// --- 2. Tool: get_metric_series ---
	s.AddTool(mcp.NewTool("get_metric_series",
		mcp.WithDescription("Load the time series for a community metric, optionally windowed and transformed."),
		mcp.WithString("metric", mcp.Description("Metric id from the catalog (e.g. 'github-stars')."), mcp.Required()),
		mcp.WithString("granularity", mcp.Description("Period size (daily, weekly, monthly). Defaults to the source's default."), mcp.Enum("daily", "weekly", "monthly")),
		mcp.WithString("range", mcp.Description("Range preset (1m, 3m, 6m, 1y, 2y, all). Defaults to 'all'."), mcp.Enum("1m", "3m", "6m", "1y", "2y", "all")),
		mcp.WithString("data_mode", mcp.Description("Cumulative values or period-over-period change."), mcp.Enum("cumulative", "change")),
	), h.handleGetMetricSeries)

	// --- 3. Tool: get_distribution ---
	s.AddTool(mcp.NewTool("get_distribution",
		mcp.WithDescription("Compute a histogram over a categorical source field."),
		mcp.WithString("source", mcp.Description("Categorical source id (e.g. 'template-categories')."), mcp.Required()),
		mcp.WithString("field", mcp.Description("Field id within the source. Defaults to the first declared field.")),
	), h.handleGetDistribution)

	// --- 4. Tool: get_ranking ---
	s.AddTool(mcp.NewTool("get_ranking",
		mcp.WithDescription("Load a ranked leaderboard from a categorical source."),
		mcp.WithString("source", mcp.Description("Ranking source id (e.g. 'creator-leaderboard')."), mcp.Required()),
		mcp.WithString("sort_by", mcp.Description("Field id to sort by. Defaults to the first declared field.")),
		mcp.WithString("dir", mcp.Description("Sort direction."), mcp.Enum("asc", "desc")),
		mcp.WithString("group", mcp.Description("Only include rows in this group.")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of rows returned.")),
	), h.handleGetRanking)

	// --- 5. Tool: predict_milestone ---
	s.AddTool(mcp.NewTool("predict_milestone",
		mcp.WithDescription("Predict when a metric will reach a milestone using linear regression over recent history."),
		mcp.WithString("metric", mcp.Description("Metric id from the catalog."), mcp.Required()),
		mcp.WithNumber("target", mcp.Description("Milestone value. Omit to predict the next milestones on the standard ladder.")),
	), h.handlePredictMilestone)

	return s
}

// StartMCPServer starts the Pulse MCP server on stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, l *loader.Loader) error {
	s := NewMCPServer(baseCfg, l)
	return server.ServeStdio(s)
}
