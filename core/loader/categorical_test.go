package loader

import (
	"context"
	"testing"

	"github.com/n8n-pulse/pulse/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const templatesFile = `{
	"nodeBuckets": [
		{"label": "1-5", "nodes": 3, "count": 2},
		{"label": "6-10", "nodes": 8, "count": 1},
		{"label": "11+", "nodes": 14, "count": 0}
	],
	"templates": [
		{"name": "Sync CRM", "category": "sales", "views": 100, "inserts": 20, "nodeCount": 4, "ageDays": 120},
		{"name": "Slack Digest", "category": "communication", "views": 400, "inserts": 60, "nodeCount": 9, "ageDays": 300},
		{"name": "Broken Row", "category": "sales", "views": "n/a", "inserts": 5, "nodeCount": 2, "ageDays": 10},
		{"name": "Lead Scoring", "category": "sales", "views": 250, "inserts": 31, "nodeCount": 12, "ageDays": 45}
	]
}`

const creatorsFile = `{
	"creators": [
		{"username": "ada", "country": "DE", "templateCount": 12, "totalViews": 9000, "totalInserts": 700, "monthlyGrowth": 4.2},
		{"username": "lin", "country": "SG", "templateCount": 30, "totalViews": 2500, "totalInserts": 310, "monthlyGrowth": 9.9},
		{"username": "rui", "country": "DE", "templateCount": 7, "totalViews": 12000, "totalInserts": 950}
	]
}`

const eventsFile = `{
	"byRegion": {
		"emea": [
			{"city": "Berlin", "events": 12, "attendees": 480},
			{"city": "London", "events": 9, "attendees": 300}
		],
		"apac": [
			{"city": "Singapore", "events": 4, "attendees": 150}
		]
	}
}`

func newCategoricalLoader() *Loader {
	l, _ := newTestLoader(map[string]string{
		"data/templates.json": templatesFile,
		"data/creators.json":  creatorsFile,
		"data/events.json":    eventsFile,
	})
	return l
}

func TestLoadDistributionPreBinned(t *testing.T) {
	l := newCategoricalLoader()

	dist := l.LoadDistribution(context.Background(), "template-categories", "nodes-per-template")
	require.NotNil(t, dist)

	require.Len(t, dist.Bins, 3)
	assert.Equal(t, "1-5", dist.Bins[0].Label)
	assert.Equal(t, 2, dist.Bins[0].Count)
	assert.Equal(t, 0, dist.Bins[2].Count)

	// Virtual value list is {3, 3, 8}.
	assert.InDelta(t, 14.0/3, dist.Stats.Average, 1e-9)
	assert.Equal(t, 3.0, dist.Stats.Median)
	assert.Equal(t, 8.0, dist.Stats.Max)
	assert.Equal(t, 14.0, dist.Stats.Total)
}

func TestLoadDistributionRawValues(t *testing.T) {
	l := newCategoricalLoader()

	dist := l.LoadDistribution(context.Background(), "template-categories", "views-per-template")
	require.NotNil(t, dist)

	// The non-numeric views row is dropped, leaving {100, 400, 250}.
	total := 0
	for _, b := range dist.Bins {
		total += b.Count
	}
	assert.Equal(t, 3, total)
	assert.Equal(t, 400.0, dist.Stats.Max)
	assert.Equal(t, 750.0, dist.Stats.Total)
	assert.Equal(t, 250.0, dist.Stats.Median)
}

func TestLoadDistributionDefaultsToFirstField(t *testing.T) {
	l := newCategoricalLoader()
	dist := l.LoadDistribution(context.Background(), "template-categories", "")
	require.NotNil(t, dist)
	assert.Equal(t, "1-5", dist.Bins[0].Label)
}

func TestLoadDistributionAbsence(t *testing.T) {
	l := newCategoricalLoader()
	assert.Nil(t, l.LoadDistribution(context.Background(), "nope", ""))
	assert.Nil(t, l.LoadDistribution(context.Background(), "template-categories", "nope"))
	// Ranking sources are not distributions.
	assert.Nil(t, l.LoadDistribution(context.Background(), "creator-leaderboard", ""))
}

func TestLoadRankingRowArray(t *testing.T) {
	l := newCategoricalLoader()

	data := l.LoadRanking(context.Background(), "creator-leaderboard")
	require.NotNil(t, data)
	require.Len(t, data.Rows, 3)

	assert.Equal(t, "ada", data.Rows[0].Label)
	assert.Equal(t, "DE", data.Rows[0].Group)
	assert.Equal(t, 12.0, data.Rows[0].Values["templates"])
	assert.Equal(t, []string{"DE", "SG"}, data.Groups)

	// rui has no monthlyGrowth; the field is simply absent.
	_, ok := data.Rows[2].Values["growth"]
	assert.False(t, ok)
}

func TestLoadRankingObjectOfArrays(t *testing.T) {
	l := newCategoricalLoader()

	data := l.LoadRanking(context.Background(), "events-by-region")
	require.NotNil(t, data)
	require.Len(t, data.Rows, 3)

	// Keys iterate sorted, so apac rows come first.
	assert.Equal(t, "Singapore", data.Rows[0].Label)
	assert.Equal(t, "apac", data.Rows[0].Group)
	assert.Equal(t, "Berlin", data.Rows[1].Label)
	assert.Equal(t, []string{"apac", "emea"}, data.Groups)
}

func TestRankingHelpers(t *testing.T) {
	l := newCategoricalLoader()
	data := l.LoadRanking(context.Background(), "creator-leaderboard")
	require.NotNil(t, data)

	t.Run("sort desc", func(t *testing.T) {
		SortRanking(data, "views", schema.SortDesc)
		assert.Equal(t, "rui", data.Rows[0].Label)
	})

	t.Run("sort asc puts missing fields last", func(t *testing.T) {
		SortRanking(data, "growth", schema.SortAsc)
		assert.Equal(t, "rui", data.Rows[2].Label)
	})

	t.Run("group filter", func(t *testing.T) {
		de := FilterRankingByGroup(data, "DE")
		require.NotNil(t, de)
		assert.Len(t, de.Rows, 2)
		assert.Equal(t, data.Groups, de.Groups)
	})

	t.Run("limit", func(t *testing.T) {
		top := LimitRanking(data, 2)
		assert.Len(t, top.Rows, 2)
		assert.Same(t, data, LimitRanking(data, 0))
		assert.Same(t, data, LimitRanking(data, 99))
	})
}

func TestLoadCorrelation(t *testing.T) {
	l := newCategoricalLoader()

	t.Run("projects finite rows", func(t *testing.T) {
		points := l.LoadCorrelation(context.Background(), "template-stats", "views", "inserts")
		require.Len(t, points, 3, "the row with non-numeric views must be dropped")
		assert.Equal(t, schema.CorrelationPoint{X: 100, Y: 20, Label: "Sync CRM", Group: "sales"}, points[0])
	})

	t.Run("defaults to the first two fields", func(t *testing.T) {
		points := l.LoadCorrelation(context.Background(), "template-stats", "", "")
		require.Len(t, points, 3)
		assert.Equal(t, 100.0, points[0].X)
		assert.Equal(t, 20.0, points[0].Y)
	})

	t.Run("absence", func(t *testing.T) {
		assert.Nil(t, l.LoadCorrelation(context.Background(), "nope", "", ""))
		assert.Nil(t, l.LoadCorrelation(context.Background(), "template-stats", "bogus", ""))
	})
}
