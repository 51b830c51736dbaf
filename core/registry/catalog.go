package registry

import "github.com/n8n-pulse/pulse/schema"

// Sources catalogs every time-series dataset, in display order. Metric ids
// are globally unique across the whole catalog; schema tests enforce this.
var Sources = []schema.DataSource{
	{
		ID:                 "github",
		Label:              "GitHub",
		File:               "data/github-history.json",
		Type:               schema.SourceTimeSeries,
		Granularities:      []schema.Granularity{schema.Daily, schema.Weekly, schema.Monthly},
		DefaultGranularity: schema.Monthly,
		HistoryStart:       "2019-06",
		MeasuredSince:      "2023-01",
		Metrics: []schema.MetricDefinition{
			{ID: "github-stars", Label: "GitHub Stars", Color: "#ea4b71", Path: "stars"},
			{ID: "github-forks", Label: "GitHub Forks", Color: "#f97316", Path: "forks"},
			{ID: "github-contributors", Label: "GitHub Contributors", Color: "#8b5cf6", Path: "contributors", ExcludeZero: true},
			{ID: "github-open-issues", Label: "Open Issues", Color: "#64748b", Path: "openIssues", ExcludeZero: true, MeasuredSince: "2024-03"},
		},
	},
	{
		ID:                 "forum",
		Label:              "Community Forum",
		File:               "data/forum-history.json",
		Type:               schema.SourceTimeSeries,
		Granularities:      []schema.Granularity{schema.Daily, schema.Monthly},
		DefaultGranularity: schema.Monthly,
		HistoryStart:       "2019-10",
		MeasuredSince:      "2023-06",
		Metrics: []schema.MetricDefinition{
			{ID: "forum-members", Label: "Forum Members", Color: "#10b981", Path: "members"},
			{ID: "forum-topics", Label: "Forum Topics", Color: "#0ea5e9", Path: "topics"},
			{ID: "forum-posts", Label: "Forum Posts", Color: "#6366f1", Path: "posts"},
			{ID: "forum-solutions", Label: "Accepted Solutions", Color: "#f59e0b", Path: "solutions", ExcludeZero: true},
		},
	},
	{
		ID:                 "npm",
		Label:              "npm",
		File:               "data/npm-history.json",
		Type:               schema.SourceTimeSeries,
		Granularities:      []schema.Granularity{schema.Weekly, schema.Monthly},
		DefaultGranularity: schema.Weekly,
		HistoryStart:       "2019-06",
		MeasuredSince:      "2022-01",
		Metrics: []schema.MetricDefinition{
			{ID: "npm-downloads", Label: "npm Downloads", Color: "#dc2626", Path: "downloads"},
		},
	},
	{
		ID:                 "discord",
		Label:              "Discord",
		File:               "data/discord-history.json",
		Type:               schema.SourceTimeSeries,
		Granularities:      []schema.Granularity{schema.Daily, schema.Monthly},
		DefaultGranularity: schema.Daily,
		HistoryStart:       "2024-01",
		MeasuredSince:      "2024-01",
		Metrics: []schema.MetricDefinition{
			{ID: "discord-members", Label: "Discord Members", Color: "#5865f2", Path: "members"},
			{ID: "discord-online", Label: "Discord Online", Color: "#23a559", Path: "online", ExcludeZero: true},
		},
	},
	{
		ID:                 "bluesky",
		Label:              "Bluesky",
		File:               "data/bluesky-history.json",
		Type:               schema.SourceTimeSeries,
		Granularities:      []schema.Granularity{schema.Daily, schema.Monthly},
		DefaultGranularity: schema.Daily,
		HistoryStart:       "2024-11",
		MeasuredSince:      "2024-11",
		Metrics: []schema.MetricDefinition{
			{ID: "bluesky-followers", Label: "Bluesky Followers", Color: "#1185fe", Path: "followers"},
			{ID: "bluesky-posts", Label: "Bluesky Posts", Color: "#7dd3fc", Path: "posts"},
		},
	},
	{
		ID:                 "reddit",
		Label:              "Reddit",
		File:               "data/reddit-history.json",
		Type:               schema.SourceTimeSeries,
		Granularities:      []schema.Granularity{schema.Daily, schema.Monthly},
		DefaultGranularity: schema.Daily,
		HistoryStart:       "2023-03",
		MeasuredSince:      "2023-03",
		Metrics: []schema.MetricDefinition{
			{ID: "reddit-subscribers", Label: "Reddit Subscribers", Color: "#ff4500", Path: "subscribers"},
			{ID: "reddit-active", Label: "Reddit Active Users", Color: "#ff8717", Path: "activeUsers", ExcludeZero: true},
		},
	},
	{
		ID:                 "events",
		Label:              "Community Events",
		File:               "data/events-history.json",
		Type:               schema.SourceTimeSeries,
		Granularities:      []schema.Granularity{schema.Monthly},
		DefaultGranularity: schema.Monthly,
		HistoryStart:       "2023-09",
		MeasuredSince:      "2023-09",
		Metrics: []schema.MetricDefinition{
			// The events file nests its arrays under timeline.* and keys each
			// element by month rather than date.
			{ID: "events-hosted", Label: "Events Hosted", Color: "#e879f9", Path: "timeline.monthly", ValueKey: "events", DateKey: "month"},
			{ID: "events-attendees", Label: "Event Attendees", Color: "#c026d3", Path: "timeline.monthly", ValueKey: "attendees", DateKey: "month", ExcludeZero: true},
		},
	},
	{
		ID:                 "ambassadors",
		Label:              "Ambassadors",
		File:               "data/ambassadors-history.json",
		Type:               schema.SourceTimeSeries,
		Granularities:      []schema.Granularity{schema.Monthly},
		DefaultGranularity: schema.Monthly,
		HistoryStart:       "2024-06",
		MeasuredSince:      "2024-06",
		Metrics: []schema.MetricDefinition{
			{ID: "ambassadors-active", Label: "Active Ambassadors", Color: "#14b8a6", Path: "active"},
		},
	},
	{
		ID:                 "templates",
		Label:              "Template Gallery",
		File:               "data/templates-history.json",
		Type:               schema.SourceTimeSeries,
		Granularities:      []schema.Granularity{schema.Weekly, schema.Monthly},
		DefaultGranularity: schema.Monthly,
		HistoryStart:       "2022-07",
		MeasuredSince:      "2024-01",
		Metrics: []schema.MetricDefinition{
			{ID: "templates-published", Label: "Templates Published", Color: "#eab308", Path: "templates"},
			// Creator counts ship in the creators file even though the metric
			// belongs to the templates group.
			{ID: "creators-total", Label: "Template Creators", Color: "#84cc16", Path: "creators", File: "data/creators-history.json"},
		},
	},
}

// CategoricalSources catalogs every non-time-series dataset.
var CategoricalSources = []schema.CategoricalSource{
	{
		ID:         "template-categories",
		Label:      "Templates by Category",
		File:       "data/templates.json",
		SizeHint:   schema.LargeSize,
		DataType:   schema.DistributionType,
		DataPath:   "templates",
		LabelField: "name",
		DistributionFields: []schema.DistributionField{
			// Pre-binned: the build script already buckets node counts.
			{ID: "nodes-per-template", Label: "Nodes per Template", DataPath: "nodeBuckets", ValueKey: "nodes", LabelKey: "label", CountKey: "count"},
			// Raw values binned at load time.
			{ID: "views-per-template", Label: "Views per Template", DataPath: "templates", ValueKey: "views"},
			{ID: "inserts-per-template", Label: "Inserts per Template", DataPath: "templates", ValueKey: "inserts"},
		},
	},
	{
		ID:           "creator-leaderboard",
		Label:        "Creator Leaderboard",
		File:         "data/creators.json",
		SizeHint:     schema.MediumSize,
		DataType:     schema.RankingType,
		DataPath:     "creators",
		LabelField:   "username",
		GroupByField: "country",
		RankingFields: []schema.RankingField{
			{ID: "templates", Label: "Templates", Key: "templateCount", Type: schema.NumberValue},
			{ID: "views", Label: "Views", Key: "totalViews", Type: schema.NumberValue},
			{ID: "inserts", Label: "Inserts", Key: "totalInserts", Type: schema.NumberValue},
			{ID: "growth", Label: "30d Growth", Key: "monthlyGrowth", Type: schema.PercentageValue},
		},
	},
	{
		ID:           "events-by-region",
		Label:        "Events by Region",
		File:         "data/events.json",
		SizeHint:     schema.SmallSize,
		DataType:     schema.RankingType,
		DataPath:     "byRegion", // object keyed by region, each mapping to rows
		LabelField:   "city",
		GroupByField: "region",
		RankingFields: []schema.RankingField{
			{ID: "events", Label: "Events", Key: "events", Type: schema.NumberValue},
			{ID: "attendees", Label: "Attendees", Key: "attendees", Type: schema.NumberValue},
		},
	},
	{
		ID:           "template-stats",
		Label:        "Template Performance",
		File:         "data/templates.json",
		SizeHint:     schema.LargeSize,
		DataType:     schema.CorrelationType,
		DataPath:     "templates",
		LabelField:   "name",
		GroupByField: "category",
		CorrelationFields: []schema.CorrelationField{
			{ID: "views", Label: "Views", Key: "views"},
			{ID: "inserts", Label: "Inserts", Key: "inserts"},
			{ID: "nodes", Label: "Node Count", Key: "nodeCount"},
			{ID: "age", Label: "Days Since Publish", Key: "ageDays"},
		},
	},
}
