// Package fetcher provides the data-file fetchers behind the loader: a local
// directory fetcher for checked-out data files and an HTTP fetcher that reads
// through the snapshot store so repeat runs skip the network.
package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/n8n-pulse/pulse/internal/contract"
)

// DirFetcher serves data files from a local directory.
type DirFetcher struct {
	root string
}

var _ contract.Fetcher = &DirFetcher{} // Compile-time check

// NewDirFetcher returns a fetcher rooted at the given directory.
func NewDirFetcher(root string) *DirFetcher {
	return &DirFetcher{root: root}
}

// Fetch reads a data file relative to the root. Paths escaping the root are
// rejected.
func (f *DirFetcher) Fetch(_ context.Context, path string) ([]byte, error) {
	clean := filepath.Clean(filepath.FromSlash(path))
	if filepath.IsAbs(clean) || strings.HasPrefix(clean, "..") {
		return nil, fmt.Errorf("path is outside data directory: %s", path)
	}
	body, err := os.ReadFile(filepath.Join(f.root, clean))
	if err != nil {
		return nil, fmt.Errorf("failed to read data file %s: %w", path, err)
	}
	return body, nil
}

// HTTPFetcher retrieves data files from an HTTP origin, reading through a
// snapshot store. Fresh snapshots short-circuit the network entirely; when
// the origin is unreachable a stale snapshot is served with a warning rather
// than failing the run.
type HTTPFetcher struct {
	baseURL string
	client  *http.Client
	store   contract.SnapshotStore
	ttl     time.Duration
	now     func() time.Time
}

var _ contract.Fetcher = &HTTPFetcher{} // Compile-time check

// NewHTTPFetcher returns a fetcher against the given base URL. A nil store
// disables snapshot reads and writes.
func NewHTTPFetcher(baseURL string, timeout time.Duration, store contract.SnapshotStore, ttl time.Duration) *HTTPFetcher {
	return &HTTPFetcher{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		store:   store,
		ttl:     ttl,
		now:     time.Now,
	}
}

// Fetch implements contract.Fetcher.
func (f *HTTPFetcher) Fetch(ctx context.Context, path string) ([]byte, error) {
	var stale []byte
	var haveStale bool

	if f.store != nil {
		body, _, storedAt, err := f.store.Get(path)
		if err == nil {
			if f.now().Sub(time.Unix(storedAt, 0)) < f.ttl {
				return body, nil
			}
			stale, haveStale = body, true
		}
	}

	body, err := f.download(ctx, path)
	if err != nil {
		if haveStale {
			contract.Warnf("serving stale snapshot for %s: %v", path, err)
			return stale, nil
		}
		return nil, err
	}

	if f.store != nil {
		if err := f.store.Set(path, body, uuid.NewString(), f.now().Unix()); err != nil {
			contract.Warnf("failed to store snapshot for %s: %v", path, err)
		}
	}
	return body, nil
}

func (f *HTTPFetcher) download(ctx context.Context, path string) ([]byte, error) {
	url := f.baseURL + "/" + strings.TrimLeft(path, "/")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", url, err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d fetching %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response for %s: %w", url, err)
	}
	return body, nil
}
