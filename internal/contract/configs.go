package contract

import (
	"fmt"
	"strings"
	"time"

	"github.com/n8n-pulse/pulse/schema"
)

// Default values for configuration.
const (
	DefaultPrecision = 1
	DefaultDataDir   = "."
	DefaultCacheTTL  = 6 * time.Hour
	DefaultHTTPWait  = 30 * time.Second
)

// Config holds the runtime configuration for pulse commands.
// This struct remains the "final, validated" config.
type Config struct {
	DataDir      string // Local directory holding the fetched JSON files
	BaseURL      string // Remote origin serving the JSON files; overrides DataDir when set
	ShareBaseURL string // Base URL prepended to encoded playground links

	Output     schema.OutputMode
	OutputFile string
	Precision  int
	Width      int // Terminal width override (0 = auto-detect)
	UseColors  bool

	CacheBackend   schema.CacheBackend
	CacheDBConnect string // Please use env var as this is plaintext
	CacheTTL       time.Duration

	HTTPTimeout time.Duration

	// Granularity applies to series and predict commands; empty selects each
	// source's default.
	Granularity schema.Granularity

	// Command selections populated from subcommand flags. Zero values mean
	// "use the command's default".
	Metrics []string
	Range   schema.RangePreset
	Change  bool
	Percent bool
	Overlap bool

	Source string
	Field  string

	SortBy  string
	SortDir schema.SortDir
	Group   string
	Limit   int

	XField string
	YField string
	Trend  bool

	Target float64
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	DataDir      string `mapstructure:"data-dir"`
	BaseURL      string `mapstructure:"base-url"`
	ShareBaseURL string `mapstructure:"share-base-url"`

	Output     string `mapstructure:"output"`
	OutputFile string `mapstructure:"output-file"`
	Precision  int    `mapstructure:"precision"`
	Width      int    `mapstructure:"width"`
	Color      string `mapstructure:"color"`

	CacheBackend   string `mapstructure:"cache-backend"`
	CacheDBConnect string `mapstructure:"cache-db-connect"`
	CacheTTL       string `mapstructure:"cache-ttl"`

	HTTPTimeout string `mapstructure:"http-timeout"`

	Granularity string `mapstructure:"granularity"`

	Metric  string `mapstructure:"metric"`
	Range   string `mapstructure:"range"`
	Change  bool   `mapstructure:"change"`
	Percent bool   `mapstructure:"percent"`
	Overlap bool   `mapstructure:"overlap"`

	Source string `mapstructure:"source"`
	Field  string `mapstructure:"field"`

	SortBy string `mapstructure:"sort-by"`
	Dir    string `mapstructure:"dir"`
	Group  string `mapstructure:"group"`
	Limit  int    `mapstructure:"limit"`

	XField string `mapstructure:"x-field"`
	YField string `mapstructure:"y-field"`
	Trend  bool   `mapstructure:"trend"`

	Target float64 `mapstructure:"target"`
}

// ProcessAndValidate converts raw input into the final validated config.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	cfg.DataDir = input.DataDir
	if cfg.DataDir == "" {
		cfg.DataDir = DefaultDataDir
	}
	cfg.BaseURL = strings.TrimRight(input.BaseURL, "/")
	cfg.ShareBaseURL = input.ShareBaseURL

	output := schema.OutputMode(input.Output)
	if _, ok := schema.ValidOutputModes[output]; !ok {
		return fmt.Errorf("invalid output mode %q: must be text, json, csv, or parquet", input.Output)
	}
	cfg.Output = output
	cfg.OutputFile = input.OutputFile

	if input.Precision < 0 || input.Precision > 10 {
		return fmt.Errorf("invalid precision %d: must be between 0 and 10", input.Precision)
	}
	cfg.Precision = input.Precision
	cfg.Width = input.Width
	cfg.UseColors = !strings.EqualFold(input.Color, "no")

	backend := schema.CacheBackend(input.CacheBackend)
	if _, ok := schema.ValidCacheBackends[backend]; !ok {
		return fmt.Errorf("invalid cache backend %q: must be sqlite, mysql, postgresql, or none", input.CacheBackend)
	}
	cfg.CacheBackend = backend
	cfg.CacheDBConnect = input.CacheDBConnect

	ttl, err := parseDurationOrDefault(input.CacheTTL, DefaultCacheTTL)
	if err != nil {
		return fmt.Errorf("invalid cache-ttl: %w", err)
	}
	cfg.CacheTTL = ttl

	timeout, err := parseDurationOrDefault(input.HTTPTimeout, DefaultHTTPWait)
	if err != nil {
		return fmt.Errorf("invalid http-timeout: %w", err)
	}
	cfg.HTTPTimeout = timeout

	if input.Granularity != "" {
		g := schema.Granularity(input.Granularity)
		if g != schema.Daily && g != schema.Weekly && g != schema.Monthly {
			return fmt.Errorf("invalid granularity %q: must be daily, weekly, or monthly", input.Granularity)
		}
		cfg.Granularity = g
	}

	return processCommandSelections(cfg, input)
}

// processCommandSelections validates the per-command flag values. Commands
// read only the fields their flags populate, so unrelated zero values are
// harmless.
func processCommandSelections(cfg *Config, input *ConfigRawInput) error {
	for _, id := range strings.Split(input.Metric, ",") {
		if id = strings.TrimSpace(id); id != "" {
			cfg.Metrics = append(cfg.Metrics, id)
		}
	}
	if len(cfg.Metrics) > schema.MaxSelectedMetrics {
		cfg.Metrics = cfg.Metrics[:schema.MaxSelectedMetrics]
	}

	if input.Change && input.Percent {
		return fmt.Errorf("--change and --percent are mutually exclusive")
	}
	cfg.Change = input.Change
	cfg.Percent = input.Percent
	cfg.Overlap = input.Overlap

	cfg.Range = schema.RangeAll
	if input.Range != "" {
		r := schema.RangePreset(input.Range)
		if _, ok := schema.ValidRangePresets[r]; !ok {
			return fmt.Errorf("invalid range %q: must be 1m, 3m, 6m, 1y, 2y, or all", input.Range)
		}
		cfg.Range = r
	}

	cfg.Source = input.Source
	cfg.Field = input.Field

	cfg.SortBy = input.SortBy
	cfg.SortDir = schema.SortDesc
	if input.Dir != "" {
		dir := schema.SortDir(input.Dir)
		if _, ok := schema.ValidSortDirs[dir]; !ok {
			return fmt.Errorf("invalid dir %q: must be asc or desc", input.Dir)
		}
		cfg.SortDir = dir
	}
	cfg.Group = input.Group
	if input.Limit < 0 {
		return fmt.Errorf("invalid limit %d: must not be negative", input.Limit)
	}
	cfg.Limit = input.Limit

	cfg.XField = input.XField
	cfg.YField = input.YField
	cfg.Trend = input.Trend

	if input.Target < 0 {
		return fmt.Errorf("invalid target %v: must not be negative", input.Target)
	}
	cfg.Target = input.Target

	return nil
}

// parseDurationOrDefault parses a duration string, treating empty as the default.
func parseDurationOrDefault(s string, def time.Duration) (time.Duration, error) {
	if strings.TrimSpace(s) == "" {
		return def, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("duration must not be negative: %s", s)
	}
	return d, nil
}
