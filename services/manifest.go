package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"sort"
)

// Manifest is the deployment manifest document: a generation timestamp plus
// the set of files the deployment is expected to serve.
type Manifest struct {
	GeneratedAtUTC string                  `json:"generated_at_utc"`
	Files          map[string]ManifestFile `json:"files"`
}

// ManifestFile holds the recorded size of one manifest entry.
type ManifestFile struct {
	Bytes int64 `json:"bytes"`
}

// ProbeResult is the reachability outcome for one manifest entry.
type ProbeResult struct {
	Path  string
	Bytes int64
	OK    bool
}

// LoadManifest reads and parses the manifest document from disk.
func LoadManifest(path string) (Manifest, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, fmt.Errorf("read manifest: %w", err)
	}
	var m Manifest
	if err := json.Unmarshal(raw, &m); err != nil {
		return Manifest{}, fmt.Errorf("parse manifest: %w", err)
	}
	return m, nil
}

// ProbeFiles checks each manifest entry with an uncached GET against baseURL.
// Probe failures mark the entry unreachable but are otherwise ignored; the
// diagnostics panel is informational only. Results come back sorted by path
// so the panel renders stably.
func ProbeFiles(ctx context.Context, client *http.Client, baseURL string, m Manifest) []ProbeResult {
	results := make([]ProbeResult, 0, len(m.Files))
	for path, meta := range m.Files {
		results = append(results, ProbeResult{
			Path:  path,
			Bytes: meta.Bytes,
			OK:    probe(ctx, client, baseURL+"/"+path),
		})
	}
	sort.Slice(results, func(i, j int) bool { return results[i].Path < results[j].Path })
	return results
}

func probe(ctx context.Context, client *http.Client, url string) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false
	}
	req.Header.Set("Cache-Control", "no-store")

	resp, err := client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.StatusCode >= 200 && resp.StatusCode < 300
}
