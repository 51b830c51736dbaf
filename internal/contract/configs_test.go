package contract

import (
	"testing"
	"time"

	"github.com/n8n-pulse/pulse/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validInput returns a raw input that passes validation.
func validInput() *ConfigRawInput {
	return &ConfigRawInput{
		Output:       "text",
		Precision:    1,
		CacheBackend: "sqlite",
	}
}

func TestProcessAndValidateDefaults(t *testing.T) {
	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, validInput()))

	assert.Equal(t, DefaultDataDir, cfg.DataDir)
	assert.Equal(t, schema.TextOut, cfg.Output)
	assert.Equal(t, DefaultCacheTTL, cfg.CacheTTL)
	assert.Equal(t, DefaultHTTPWait, cfg.HTTPTimeout)
	assert.True(t, cfg.UseColors)
	assert.Empty(t, cfg.Granularity)
	assert.Equal(t, schema.RangeAll, cfg.Range)
	assert.Equal(t, schema.SortDesc, cfg.SortDir)
}

func TestProcessAndValidateRejectsBadEnums(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*ConfigRawInput)
	}{
		{"bad output", func(in *ConfigRawInput) { in.Output = "xml" }},
		{"bad backend", func(in *ConfigRawInput) { in.CacheBackend = "redis" }},
		{"bad granularity", func(in *ConfigRawInput) { in.Granularity = "hourly" }},
		{"bad ttl", func(in *ConfigRawInput) { in.CacheTTL = "soon" }},
		{"negative ttl", func(in *ConfigRawInput) { in.CacheTTL = "-1h" }},
		{"bad precision", func(in *ConfigRawInput) { in.Precision = 42 }},
		{"bad range", func(in *ConfigRawInput) { in.Range = "4m" }},
		{"bad dir", func(in *ConfigRawInput) { in.Dir = "sideways" }},
		{"negative limit", func(in *ConfigRawInput) { in.Limit = -1 }},
		{"negative target", func(in *ConfigRawInput) { in.Target = -100 }},
		{"change and percent", func(in *ConfigRawInput) { in.Change = true; in.Percent = true }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validInput()
			tc.mutate(in)
			assert.Error(t, ProcessAndValidate(&Config{}, in))
		})
	}
}

func TestProcessAndValidateParsing(t *testing.T) {
	in := validInput()
	in.BaseURL = "https://pulse.example.org/"
	in.CacheTTL = "90m"
	in.Granularity = "weekly"
	in.Color = "no"

	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, in))

	assert.Equal(t, "https://pulse.example.org", cfg.BaseURL)
	assert.Equal(t, 90*time.Minute, cfg.CacheTTL)
	assert.Equal(t, schema.Weekly, cfg.Granularity)
	assert.False(t, cfg.UseColors)
}

func TestProcessAndValidateCommandSelections(t *testing.T) {
	in := validInput()
	in.Metric = " github-stars, forum-posts ,,npm-downloads "
	in.Range = "6m"
	in.Dir = "asc"
	in.Limit = 5

	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, in))

	assert.Equal(t, []string{"github-stars", "forum-posts", "npm-downloads"}, cfg.Metrics)
	assert.Equal(t, schema.Range6M, cfg.Range)
	assert.Equal(t, schema.SortAsc, cfg.SortDir)
	assert.Equal(t, 5, cfg.Limit)
}

func TestProcessAndValidateClampsMetrics(t *testing.T) {
	in := validInput()
	in.Metric = "a,b,c,d,e,f"

	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, in))
	assert.Equal(t, []string{"a", "b", "c", "d"}, cfg.Metrics)
}
