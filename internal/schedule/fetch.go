package schedule

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	appLog "openday/internal/log"
)

// cacheEntry holds HTTP cache metadata for a single CSV URL.
type cacheEntry struct {
	URL          string    `json:"url"`
	ETag         string    `json:"etag,omitempty"`
	LastModified string    `json:"last_modified,omitempty"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Fetcher retrieves the schedule CSV from a local path or an HTTP URL.
// URL sources use conditional GETs (ETag / Last-Modified) backed by a
// disk cache, and fall back to the cached body when the network or the
// origin fails, so an already-seen schedule keeps serving.
type Fetcher struct {
	client   *http.Client
	cacheDir string
}

// NewFetcher creates a Fetcher with the given cache base directory.
func NewFetcher(cacheDir string) *Fetcher {
	if cacheDir == "" {
		// Caller should set this explicitly; fall back to a relative dir
		// so that development runs without root permissions.
		cacheDir = "./cache/csv"
	}
	return &Fetcher{
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
		cacheDir: cacheDir,
	}
}

// Fetch returns the raw CSV body for the given source. fromCache is true
// when a previously stored body was reused (304 or network fallback).
// Local paths are read directly and never cached.
func (f *Fetcher) Fetch(ctx context.Context, source string) (body []byte, fromCache bool, err error) {
	if source == "" {
		return nil, false, errors.New("schedule source is empty")
	}

	if !strings.Contains(source, "://") {
		data, err := os.ReadFile(source)
		if err != nil {
			return nil, false, err
		}
		return data, false, nil
	}

	return f.fetchURL(ctx, source)
}

func (f *Fetcher) fetchURL(ctx context.Context, url string) ([]byte, bool, error) {
	cachePath := f.cachePathForURL(url)
	if err := os.MkdirAll(cachePath, 0o700); err != nil {
		return nil, false, err
	}

	meta, _ := f.loadCacheMeta(cachePath)
	cachedBody, _ := f.loadCacheBody(cachePath)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, false, err
	}

	// Conditional headers from cache metadata.
	if meta.ETag != "" {
		req.Header.Set("If-None-Match", meta.ETag)
	}
	if meta.LastModified != "" {
		req.Header.Set("If-Modified-Since", meta.LastModified)
	}

	appLog.Info("schedule fetch start", "url", redactURL(url))

	resp, err := f.client.Do(req)
	if err != nil {
		// Network error; if we have a cached body, fall back to it.
		if len(cachedBody) > 0 {
			appLog.Error("schedule fetch network error, using cached body", err, "url", redactURL(url))
			return cachedBody, true, nil
		}
		return nil, false, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		body, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			return nil, false, readErr
		}

		newMeta := cacheEntry{
			URL:          url,
			ETag:         resp.Header.Get("ETag"),
			LastModified: resp.Header.Get("Last-Modified"),
		}
		if err := f.saveCache(cachePath, newMeta, body); err != nil {
			// Log but still return the freshly fetched body.
			appLog.Error("schedule cache save failed", err, "url", redactURL(url))
		}

		appLog.Info("schedule fetch success", "url", redactURL(url), "bytes", len(body))
		return body, false, nil

	case http.StatusNotModified:
		if len(cachedBody) == 0 {
			// 304 but no cached body: treat as error.
			return nil, false, errors.New("received 304 Not Modified but no cached body available")
		}
		appLog.Info("schedule fetch not modified; using cache", "url", redactURL(url))
		return cachedBody, true, nil

	default:
		if len(cachedBody) > 0 {
			appLog.Error("schedule fetch non-OK, using cached body", errors.New(resp.Status), "url", redactURL(url), "status", resp.StatusCode)
			return cachedBody, true, nil
		}
		return nil, false, errors.New(resp.Status)
	}
}

func (f *Fetcher) cachePathForURL(url string) string {
	sum := sha256.Sum256([]byte(url))
	// Use first 16 hex chars as directory name.
	return filepath.Join(f.cacheDir, hex.EncodeToString(sum[:8]))
}

func (f *Fetcher) loadCacheMeta(cachePath string) (cacheEntry, error) {
	var meta cacheEntry
	data, err := os.ReadFile(filepath.Join(cachePath, "meta.json"))
	if err != nil {
		return meta, err
	}
	if err := json.Unmarshal(data, &meta); err != nil {
		return cacheEntry{}, err
	}
	return meta, nil
}

func (f *Fetcher) loadCacheBody(cachePath string) ([]byte, error) {
	return os.ReadFile(filepath.Join(cachePath, "body.csv"))
}

func (f *Fetcher) saveCache(cachePath string, meta cacheEntry, body []byte) error {
	// Write body first so meta never points at missing body.
	if err := os.WriteFile(filepath.Join(cachePath, "body.csv"), body, 0o600); err != nil {
		return err
	}

	meta.UpdatedAt = time.Now().UTC()
	data, err := json.MarshalIndent(&meta, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(cachePath, "meta.json"), data, 0o600)
}

// redactURL hides query strings and paths of a source URL for logging.
func redactURL(u string) string {
	const redactedSuffix = "/...(redacted)"

	i := strings.Index(u, "://")
	if i == -1 {
		return "csv://...(redacted)"
	}

	j := i + 3
	for j < len(u) && u[j] != '/' {
		j++
	}
	return u[:j] + redactedSuffix
}
