// Package loader is the query engine: it translates registry entries into
// realized, chart-ready data. Backing files are fetched once per session and
// decoded JSON is cached for the lifetime of the Loader; concurrent first
// requests for the same file share a single in-flight fetch. Failures never
// escape as errors: a bad metric yields no data and a log line, and must
// never blank a whole chart.
package loader

import (
	"context"
	"encoding/json"
	"strings"
	"sync"

	"github.com/n8n-pulse/pulse/core/registry"
	"github.com/n8n-pulse/pulse/internal/contract"
	"github.com/n8n-pulse/pulse/schema"
)

// Loader caches decoded backing files and answers metric queries.
type Loader struct {
	fetcher contract.Fetcher

	mu      sync.Mutex
	flights map[string]*flight
}

// flight is one fetch-and-decode of a backing file. The first requester
// creates it and closes done; every later requester for the same path waits
// on done and shares the outcome, including a failed one. Files only change
// via out-of-band rebuilds, so entries are never invalidated within a session.
type flight struct {
	done chan struct{}
	root any
	err  error
}

// New returns a Loader reading through the given fetcher.
func New(fetcher contract.Fetcher) *Loader {
	return &Loader{
		fetcher: fetcher,
		flights: make(map[string]*flight),
	}
}

// fetchFile returns the decoded JSON root for a registry file path.
func (l *Loader) fetchFile(ctx context.Context, path string) (any, error) {
	l.mu.Lock()
	f, ok := l.flights[path]
	if !ok {
		f = &flight{done: make(chan struct{})}
		l.flights[path] = f
		l.mu.Unlock()

		body, err := l.fetcher.Fetch(ctx, path)
		if err != nil {
			f.err = err
		} else {
			f.err = json.Unmarshal(body, &f.root)
		}
		close(f.done)
		return f.root, f.err
	}
	l.mu.Unlock()

	select {
	case <-f.done:
		return f.root, f.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// LoadMetricData resolves a metric id and realizes its series. An unknown id,
// fetch failure, or missing data all log a warning and return nil rather than
// an error. A granularity the source does not provide falls back to the
// source's default, with a warning.
func (l *Loader) LoadMetricData(ctx context.Context, metricID string, granularity schema.Granularity) *schema.MetricSeries {
	metric, src, ok := registry.MetricByID(metricID)
	if !ok {
		contract.Warnf("unknown metric id %q", metricID)
		return nil
	}

	if granularity == "" {
		granularity = src.DefaultGranularity
	} else if !src.HasGranularity(granularity) {
		contract.Warnf("source %q has no %s data, using %s", src.ID, granularity, src.DefaultGranularity)
		granularity = src.DefaultGranularity
	}

	file := registry.MetricFile(metric, src)
	root, err := l.fetchFile(ctx, file)
	if err != nil {
		contract.Warnf("failed to load %s for metric %q: %v", file, metricID, err)
		return nil
	}

	resolved := *metric
	resolved.MeasuredSince = registry.MetricMeasuredSince(metric, src)
	return &schema.MetricSeries{
		Metric: schema.MetricWithSource{
			MetricDefinition: resolved,
			SourceID:         src.ID,
			SourceLabel:      src.Label,
		},
		Granularity: granularity,
		Points:      ExtractTimeSeries(root, metric, granularity),
	}
}

// LoadMultipleMetrics loads all ids concurrently and returns the successfully
// loaded ones in input order. Partial results are expected: one bad metric
// never fails the rest.
func (l *Loader) LoadMultipleMetrics(ctx context.Context, metricIDs []string, granularity schema.Granularity) []*schema.MetricSeries {
	results := make([]*schema.MetricSeries, len(metricIDs))

	var wg sync.WaitGroup
	for i, id := range metricIDs {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			results[i] = l.LoadMetricData(ctx, id, granularity)
		}(i, id)
	}
	wg.Wait()

	loaded := make([]*schema.MetricSeries, 0, len(results))
	for _, r := range results {
		if r != nil {
			loaded = append(loaded, r)
		}
	}
	return loaded
}

// walkPath follows a dot-delimited path through nested JSON objects.
// Any missing or non-object step yields nil.
func walkPath(root any, dotted string) any {
	node := root
	for _, part := range strings.Split(dotted, ".") {
		obj, ok := node.(map[string]any)
		if !ok {
			return nil
		}
		node = obj[part]
	}
	return node
}

// asFloat coerces a decoded JSON value to a float64. JSON null and non-number
// values report ok=false, which is how "value missing" points get dropped.
func asFloat(v any) (float64, bool) {
	f, ok := v.(float64)
	return f, ok
}

// asString coerces a decoded JSON value to a string.
func asString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}
