package state

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/n8n-pulse/pulse/schema"
)

func TestDecodeEmptyQuery(t *testing.T) {
	for _, query := range []string{"", "?", "&", "garbage=%zz"} {
		s := Decode(query)
		assert.Equal(t, schema.TimeSeriesMode, s.Mode, query)
		require.NotNil(t, s.TimeSeries, query)
		assert.Equal(t, []string{schema.DefaultMetricID}, s.TimeSeries.Metrics)
		assert.Equal(t, schema.RangeAll, s.TimeSeries.Range)
		assert.Equal(t, schema.LineChart, s.TimeSeries.ChartType)
		assert.Equal(t, schema.CumulativeData, s.TimeSeries.DataMode)
		assert.Nil(t, s.Distribution, query)
		assert.Nil(t, s.Ranking, query)
		assert.Nil(t, s.Correlation, query)
	}
}

func TestDecodeTimeSeries(t *testing.T) {
	s := Decode("m=github-stars,npm-downloads&r=6m&t=area&d=change")
	require.NotNil(t, s.TimeSeries)
	assert.Equal(t, []string{"github-stars", "npm-downloads"}, s.TimeSeries.Metrics)
	assert.Equal(t, schema.Range6M, s.TimeSeries.Range)
	assert.Equal(t, schema.AreaChart, s.TimeSeries.ChartType)
	assert.Equal(t, schema.ChangeData, s.TimeSeries.DataMode)
}

func TestDecodeClampsMetricSelection(t *testing.T) {
	s := Decode("m=a,b,c,d,e,f")
	require.NotNil(t, s.TimeSeries)
	assert.Equal(t, []string{"a", "b", "c", "d"}, s.TimeSeries.Metrics)
}

func TestDecodeInvalidEnumsFallBack(t *testing.T) {
	s := Decode("mode=heatmap&r=7q&t=pie&d=sideways")
	assert.Equal(t, schema.TimeSeriesMode, s.Mode)
	require.NotNil(t, s.TimeSeries)
	assert.Equal(t, schema.RangeAll, s.TimeSeries.Range)
	assert.Equal(t, schema.LineChart, s.TimeSeries.ChartType)
	assert.Equal(t, schema.CumulativeData, s.TimeSeries.DataMode)
}

func TestDecodeIgnoresUnknownParams(t *testing.T) {
	s := Decode("r=1y&utm_source=newsletter&foo=bar")
	require.NotNil(t, s.TimeSeries)
	assert.Equal(t, schema.Range1Y, s.TimeSeries.Range)
}

func TestDecodeModePayloads(t *testing.T) {
	t.Run("distribution", func(t *testing.T) {
		s := Decode("mode=distribution&ds=template-categories&df=views-per-template&dscale=log")
		assert.Equal(t, schema.DistributionMode, s.Mode)
		require.NotNil(t, s.Distribution)
		assert.Equal(t, "template-categories", s.Distribution.Source)
		assert.Equal(t, "views-per-template", s.Distribution.Field)
		assert.Equal(t, schema.LogScale, s.Distribution.Scale)
		assert.Nil(t, s.TimeSeries)
	})

	t.Run("ranking", func(t *testing.T) {
		s := Decode("mode=ranking&rs=events-by-region&rsort=attendees&rdir=asc&rfilter=emea&rlimit=5")
		assert.Equal(t, schema.RankingMode, s.Mode)
		require.NotNil(t, s.Ranking)
		assert.Equal(t, "events-by-region", s.Ranking.Source)
		assert.Equal(t, "attendees", s.Ranking.SortBy)
		assert.Equal(t, schema.SortAsc, s.Ranking.SortDir)
		assert.Equal(t, "emea", s.Ranking.Filter)
		assert.Equal(t, 5, s.Ranking.Limit)
	})

	t.Run("ranking bad limit keeps default", func(t *testing.T) {
		for _, limit := range []string{"abc", "-3", "0", ""} {
			s := Decode("mode=ranking&rlimit=" + limit)
			require.NotNil(t, s.Ranking)
			assert.Equal(t, schema.DefaultRankingLimit, s.Ranking.Limit, limit)
		}
	})

	t.Run("correlation", func(t *testing.T) {
		s := Decode("mode=correlation&cs=template-stats&cx=nodes&cy=views&ccolor=age&ctrend=1")
		assert.Equal(t, schema.CorrelationMode, s.Mode)
		require.NotNil(t, s.Correlation)
		assert.Equal(t, "template-stats", s.Correlation.Source)
		assert.Equal(t, "nodes", s.Correlation.XField)
		assert.Equal(t, "views", s.Correlation.YField)
		assert.Equal(t, "age", s.Correlation.ColorField)
		assert.True(t, s.Correlation.Trend)
	})
}

func TestDecodeDropsForeignModeParams(t *testing.T) {
	// Ranking params alongside a distribution mode never leak into state.
	s := Decode("mode=distribution&rs=creator-leaderboard&rlimit=3")
	assert.Nil(t, s.Ranking)
	require.NotNil(t, s.Distribution)
	assert.Equal(t, schema.DefaultDistSource, s.Distribution.Source)
}

func TestEncodeDefaultsToEmpty(t *testing.T) {
	assert.Equal(t, "", Encode(schema.DefaultPlaygroundState()))
}

func TestEncodeOmitsDefaults(t *testing.T) {
	s := schema.DefaultPlaygroundState()
	s.TimeSeries.Range = schema.Range3M
	assert.Equal(t, "r=3m", Encode(s))

	s.TimeSeries.Metrics = []string{"forum-posts", "discord-members"}
	s.TimeSeries.DataMode = schema.ChangeData
	assert.Equal(t, "d=change&m=forum-posts%2Cdiscord-members&r=3m", Encode(s))
}

func TestEncodeEmitsOnlyActiveModeGroup(t *testing.T) {
	s := schema.PlaygroundState{
		Mode: schema.RankingMode,
		Ranking: &schema.RankingState{
			Source:  "events-by-region",
			SortBy:  "events",
			SortDir: schema.SortDesc,
			Limit:   schema.DefaultRankingLimit,
		},
		// A stray payload from a previous mode must not be serialized.
		TimeSeries: schema.DefaultTimeSeriesState(),
	}
	got := Encode(s)
	assert.Equal(t, "mode=ranking&rs=events-by-region&rsort=events", got)
}

func TestRoundTrip(t *testing.T) {
	queries := []string{
		"",
		"r=1m&t=area",
		"d=change&m=github-forks%2Cnpm-downloads",
		"df=nodes-per-template&dscale=log&mode=distribution",
		"mode=ranking&rdir=asc&rfilter=DE&rlimit=5&rsort=views",
		"ccolor=age&ctrend=1&cx=inserts&cy=views&mode=correlation",
	}
	for _, q := range queries {
		decoded := Decode(q)
		assert.Equal(t, q, Encode(decoded), q)
		// Encoding is a fixed point under decode.
		assert.Equal(t, decoded, Decode(Encode(decoded)), q)
	}
}

func TestShareURL(t *testing.T) {
	s := schema.DefaultPlaygroundState()
	assert.Equal(t, "https://pulse.example.com/play", ShareURL("https://pulse.example.com/play", s))

	s.TimeSeries.Range = schema.Range1Y
	assert.Equal(t, "https://pulse.example.com/play?r=1y", ShareURL("https://pulse.example.com/play", s))
	assert.Equal(t, "r=1y", ShareURL("", s))
}

type recordingPublisher struct {
	links []string
	err   error
}

func (p *recordingPublisher) Publish(link string) error {
	p.links = append(p.links, link)
	return p.err
}

func TestPublish(t *testing.T) {
	assert.NoError(t, Publish(nil, "anything"))

	pub := &recordingPublisher{}
	require.NoError(t, Publish(pub, "https://x/?r=6m"))
	assert.Equal(t, []string{"https://x/?r=6m"}, pub.links)

	pub.err = errors.New("clipboard unavailable")
	assert.Error(t, Publish(pub, "again"))
}

func TestWindowAt(t *testing.T) {
	now := time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		preset schema.RangePreset
		start  string
	}{
		{schema.Range1M, "2025-02"},
		{schema.Range3M, "2024-12"},
		{schema.Range6M, "2024-09"},
		{schema.Range1Y, "2024-03"},
		{schema.Range2Y, "2023-03"},
	}
	for _, tc := range tests {
		t.Run(string(tc.preset), func(t *testing.T) {
			window := WindowAt(tc.preset, now)
			require.NotNil(t, window)
			assert.Equal(t, tc.start, window.Start)
			assert.Equal(t, "2025-03", window.End)
		})
	}

	assert.Nil(t, WindowAt(schema.RangeAll, now))
	assert.Nil(t, WindowAt("bogus", now))
}
