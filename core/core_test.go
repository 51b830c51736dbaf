package core_test

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/n8n-pulse/pulse/core"
	"github.com/n8n-pulse/pulse/core/loader"
	"github.com/n8n-pulse/pulse/internal/contract"
	"github.com/n8n-pulse/pulse/internal/outwriter"
	"github.com/n8n-pulse/pulse/schema"
)

var fixtureFiles = map[string]string{
	"data/github-history.json": `{
		"monthly": [
			{"date": "2024-01", "stars": 1000},
			{"date": "2024-02", "stars": 1100},
			{"date": "2024-03", "stars": 1250},
			{"date": "2024-04", "stars": 1400},
			{"date": "2024-05", "stars": 1600}
		]
	}`,
	"data/templates.json": `{
		"templates": [
			{"name": "Slack Digest", "category": "Comms", "views": 100, "inserts": 10, "nodeCount": 4, "ageDays": 120},
			{"name": "CRM Sync", "category": "Sales", "views": 200, "inserts": 20, "nodeCount": 9, "ageDays": 300},
			{"name": "Lead Scoring", "category": "Sales", "views": 300, "inserts": 30, "nodeCount": 14, "ageDays": 60}
		],
		"nodeBuckets": [
			{"label": "1-5", "nodes": 3, "count": 10},
			{"label": "6-10", "nodes": 8, "count": 4}
		]
	}`,
	"data/creators.json": `{
		"creators": [
			{"username": "ada", "country": "DE", "templateCount": 12, "totalViews": 9000, "totalInserts": 700, "monthlyGrowth": 4.1},
			{"username": "rui", "country": "SG", "templateCount": 30, "totalViews": 12000, "totalInserts": 1500, "monthlyGrowth": 2.5}
		]
	}`,
}

func fixtureLoader() *loader.Loader {
	return loader.New(contract.FetcherFunc(func(_ context.Context, path string) ([]byte, error) {
		body, ok := fixtureFiles[path]
		if !ok {
			return nil, fmt.Errorf("no such file: %s", path)
		}
		return []byte(body), nil
	}))
}

// jsonConfig returns a config that writes JSON to a temp file so tests can
// read the result back.
func jsonConfig(t *testing.T) (*contract.Config, string) {
	t.Helper()
	out := filepath.Join(t.TempDir(), "out.json")
	return &contract.Config{
		Output:      schema.JSONOut,
		OutputFile:  out,
		Precision:   1,
		Granularity: schema.Monthly,
		SortDir:     schema.SortDesc,
	}, out
}

func readJSON(t *testing.T, path string, v any) {
	t.Helper()
	body, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(body, v))
}

func TestExecutePulseMetrics(t *testing.T) {
	cfg, out := jsonConfig(t)
	require.NoError(t, core.ExecutePulseMetrics(context.Background(), cfg))

	var metrics []schema.MetricWithSource
	readJSON(t, out, &metrics)
	ids := make(map[string]bool)
	for _, m := range metrics {
		ids[m.ID] = true
	}
	assert.True(t, ids["github-stars"])
	assert.True(t, ids["creators-total"])
}

func TestExecutePulseSeries(t *testing.T) {
	ctx := context.Background()
	l := fixtureLoader()

	t.Run("requires metric", func(t *testing.T) {
		cfg, _ := jsonConfig(t)
		err := core.ExecutePulseSeries(ctx, cfg, l)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "--metric is required")
	})

	t.Run("no loadable metric", func(t *testing.T) {
		cfg, _ := jsonConfig(t)
		cfg.Metrics = []string{"bogus"}
		assert.Error(t, core.ExecutePulseSeries(ctx, cfg, l))
	})

	t.Run("cumulative", func(t *testing.T) {
		cfg, out := jsonConfig(t)
		cfg.Metrics = []string{"github-stars"}
		require.NoError(t, core.ExecutePulseSeries(ctx, cfg, l))

		var series []*schema.MetricSeries
		readJSON(t, out, &series)
		require.Len(t, series, 1)
		require.Len(t, series[0].Points, 5)
		assert.Equal(t, 1000.0, series[0].Points[0].Value)
	})

	t.Run("period change", func(t *testing.T) {
		cfg, out := jsonConfig(t)
		cfg.Metrics = []string{"github-stars"}
		cfg.Change = true
		require.NoError(t, core.ExecutePulseSeries(ctx, cfg, l))

		var series []*schema.MetricSeries
		readJSON(t, out, &series)
		require.Len(t, series, 1)
		require.Len(t, series[0].Points, 4)
		assert.Equal(t, 100.0, series[0].Points[0].Value)
	})
}

func TestExecutePulseDistribution(t *testing.T) {
	ctx := context.Background()
	l := fixtureLoader()

	t.Run("unknown source", func(t *testing.T) {
		cfg, _ := jsonConfig(t)
		cfg.Source = "bogus"
		assert.Error(t, core.ExecutePulseDistribution(ctx, cfg, l))
	})

	t.Run("unknown field", func(t *testing.T) {
		cfg, _ := jsonConfig(t)
		cfg.Field = "bogus"
		assert.Error(t, core.ExecutePulseDistribution(ctx, cfg, l))
	})

	t.Run("default source and field", func(t *testing.T) {
		cfg, out := jsonConfig(t)
		require.NoError(t, core.ExecutePulseDistribution(ctx, cfg, l))

		var payload struct {
			Field string                   `json:"field"`
			Data  *schema.DistributionData `json:"data"`
		}
		readJSON(t, out, &payload)
		assert.Equal(t, "nodes-per-template", payload.Field)
		require.Len(t, payload.Data.Bins, 2)
		assert.Equal(t, 10, payload.Data.Bins[0].Count)
	})
}

func TestExecutePulseRanking(t *testing.T) {
	ctx := context.Background()
	l := fixtureLoader()

	t.Run("unknown sort field", func(t *testing.T) {
		cfg, _ := jsonConfig(t)
		cfg.SortBy = "bogus"
		assert.Error(t, core.ExecutePulseRanking(ctx, cfg, l))
	})

	t.Run("sorted and limited", func(t *testing.T) {
		cfg, out := jsonConfig(t)
		cfg.SortBy = "views"
		cfg.Limit = 1
		require.NoError(t, core.ExecutePulseRanking(ctx, cfg, l))

		var payload struct {
			Source string              `json:"source"`
			Data   *schema.RankingData `json:"data"`
		}
		readJSON(t, out, &payload)
		assert.Equal(t, "creator-leaderboard", payload.Source)
		require.Len(t, payload.Data.Rows, 1)
		assert.Equal(t, "rui", payload.Data.Rows[0].Label)
	})
}

func TestExecutePulseCorrelation(t *testing.T) {
	ctx := context.Background()
	l := fixtureLoader()

	t.Run("unknown axis field", func(t *testing.T) {
		cfg, _ := jsonConfig(t)
		cfg.XField = "bogus"
		assert.Error(t, core.ExecutePulseCorrelation(ctx, cfg, l))
	})

	t.Run("default axes with trend", func(t *testing.T) {
		cfg, out := jsonConfig(t)
		cfg.Trend = true
		require.NoError(t, core.ExecutePulseCorrelation(ctx, cfg, l))

		var payload struct {
			Summary outwriter.CorrelationSummary `json:"summary"`
			Points  []schema.CorrelationPoint    `json:"points"`
		}
		readJSON(t, out, &payload)
		require.Len(t, payload.Points, 3)
		assert.Equal(t, "Views", payload.Summary.XLabel)
		assert.Equal(t, "Inserts", payload.Summary.YLabel)
		assert.InDelta(t, 1.0, payload.Summary.R, 1e-9)
		require.True(t, payload.Summary.HasFit)
		assert.InDelta(t, 0.1, payload.Summary.Slope, 1e-9)
	})
}

func TestExecutePulsePredict(t *testing.T) {
	ctx := context.Background()
	l := fixtureLoader()

	t.Run("unknown metric", func(t *testing.T) {
		cfg, _ := jsonConfig(t)
		cfg.Metrics = []string{"bogus"}
		assert.Error(t, core.ExecutePulsePredict(ctx, cfg, l))
	})

	t.Run("explicit target", func(t *testing.T) {
		cfg, out := jsonConfig(t)
		cfg.Metrics = []string{"github-stars"}
		cfg.Target = 2000
		require.NoError(t, core.ExecutePulsePredict(ctx, cfg, l))

		var payload struct {
			Metric      string                       `json:"metric"`
			Predictions []schema.MilestonePrediction `json:"predictions"`
		}
		readJSON(t, out, &payload)
		assert.Equal(t, "github-stars", payload.Metric)
		require.Len(t, payload.Predictions, 1)
		assert.Equal(t, 2000.0, payload.Predictions[0].Milestone)
		assert.Equal(t, 1600.0, payload.Predictions[0].CurrentValue)
	})

	t.Run("ladder default", func(t *testing.T) {
		cfg, out := jsonConfig(t)
		cfg.Metrics = []string{"github-stars"}
		require.NoError(t, core.ExecutePulsePredict(ctx, cfg, l))

		var payload struct {
			Predictions []schema.MilestonePrediction `json:"predictions"`
		}
		readJSON(t, out, &payload)
		require.Len(t, payload.Predictions, 3)
		assert.Equal(t, 2000.0, payload.Predictions[0].Milestone)
		assert.Equal(t, 2500.0, payload.Predictions[1].Milestone)
		assert.Equal(t, 5000.0, payload.Predictions[2].Milestone)
	})
}

// capturingPublisher records published links for assertions.
type capturingPublisher struct {
	links []string
}

func (p *capturingPublisher) Publish(url string) error {
	p.links = append(p.links, url)
	return nil
}

func TestExecutePulseLink(t *testing.T) {
	t.Run("decode full URL", func(t *testing.T) {
		cfg, out := jsonConfig(t)
		require.NoError(t, core.ExecutePulseLinkDecode(cfg, "https://n8n.io/playground?mode=ranking&rs=events-by-region"))

		var st schema.PlaygroundState
		readJSON(t, out, &st)
		assert.Equal(t, schema.RankingMode, st.Mode)
		require.NotNil(t, st.Ranking)
		assert.Equal(t, "events-by-region", st.Ranking.Source)
	})

	t.Run("encode canonicalizes", func(t *testing.T) {
		cfg, out := jsonConfig(t)
		cfg.ShareBaseURL = "https://n8n.io/playground"
		pub := &capturingPublisher{}
		require.NoError(t, core.ExecutePulseLinkEncode(cfg, "r=3m&m=forum-posts&d=change&unknown=1", pub))

		want := "https://n8n.io/playground?d=change&m=forum-posts&r=3m"
		require.Len(t, pub.links, 1)
		assert.Equal(t, want, pub.links[0])

		body, err := os.ReadFile(out)
		require.NoError(t, err)
		assert.Equal(t, want+"\n", string(body))
	})
}
