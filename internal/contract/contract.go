// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import "context"

// Fetcher retrieves the raw bytes of a backing JSON file by its registry
// path. Implementations cover local data directories and HTTP origins; the
// loader never knows which one it is talking to, which keeps the query
// engine testable with in-memory fakes.
type Fetcher interface {
	Fetch(ctx context.Context, path string) ([]byte, error)
}

// FetcherFunc adapts a plain function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, path string) ([]byte, error)

// Fetch implements Fetcher.
func (f FetcherFunc) Fetch(ctx context.Context, path string) ([]byte, error) {
	return f(ctx, path)
}

// LinkPublisher receives a shareable playground URL. It stands in for the
// browser-side address-bar replacement and clipboard write: environments
// without such a surface use NopLinkPublisher, which succeeds silently.
type LinkPublisher interface {
	Publish(url string) error
}

// NopLinkPublisher is the no-surface LinkPublisher.
type NopLinkPublisher struct{}

// Publish implements LinkPublisher by doing nothing.
func (NopLinkPublisher) Publish(string) error { return nil }

// SnapshotStore persists fetched JSON documents between CLI runs so repeat
// invocations can serve data without re-hitting the network.
type SnapshotStore interface {
	// Get returns the stored document, its revision id and the unix time it
	// was stored. A miss is reported through the error.
	Get(path string) ([]byte, string, int64, error)

	// Set stores or replaces the document for a path.
	Set(path string, body []byte, revision string, timestamp int64) error

	// Status reports backend health and entry counts.
	Status() (SnapshotStatus, error)

	Close() error
}

// SnapshotStatus describes the state of a snapshot store.
type SnapshotStatus struct {
	Backend      string `json:"backend"`
	Connected    bool   `json:"connected"`
	TotalEntries int    `json:"totalEntries"`
	OldestUnix   int64  `json:"oldestUnix,omitempty"`
	NewestUnix   int64  `json:"newestUnix,omitempty"`
}
