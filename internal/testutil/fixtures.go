// Package testutil provides test helper utilities for bandhu tests.
package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

// TempFiles creates a temporary directory with the given files and returns its path.
// Files is a map of relative path -> content. Directories are created as needed.
// The directory is automatically cleaned up when the test finishes.
func TempFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()

	for relPath, content := range files {
		absPath := filepath.Join(dir, relPath)
		if err := os.MkdirAll(filepath.Dir(absPath), 0755); err != nil {
			t.Fatalf("creating directory for %s: %v", relPath, err)
		}
		if err := os.WriteFile(absPath, []byte(content), 0644); err != nil {
			t.Fatalf("writing %s: %v", relPath, err)
		}
	}

	return dir
}

// Backend is a fake recruiting backend for tests. Handlers are keyed by
// endpoint path; unregistered paths return 404. Requests records every
// path hit, in order.
type Backend struct {
	Server   *httptest.Server
	Requests []string

	handlers map[string]http.HandlerFunc
}

// NewBackend starts a fake backend. The server is shut down when the
// test finishes.
func NewBackend(t *testing.T) *Backend {
	t.Helper()

	b := &Backend{handlers: make(map[string]http.HandlerFunc)}
	b.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.Requests = append(b.Requests, r.URL.Path)
		if h, ok := b.handlers[r.URL.Path]; ok {
			h(w, r)
			return
		}
		http.NotFound(w, r)
	}))
	t.Cleanup(b.Server.Close)

	return b
}

// URL returns the fake backend's base URL.
func (b *Backend) URL() string {
	return b.Server.URL
}

// Handle registers a handler for the given endpoint path.
func (b *Backend) Handle(path string, h http.HandlerFunc) {
	b.handlers[path] = h
}

// HandleJSON registers a handler that replies 200 with the given value
// marshalled as JSON.
func (b *Backend) HandleJSON(path string, v any) {
	b.Handle(path, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(v)
	})
}

// HandleError registers a handler that replies with the given status
// and an {"error": msg} body.
func (b *Backend) HandleError(path string, status int, msg string) {
	b.Handle(path, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
	})
}

// Hits returns how many times the given path was requested.
func (b *Backend) Hits(path string) int {
	n := 0
	for _, p := range b.Requests {
		if p == path {
			n++
		}
	}
	return n
}

// CandidateCSV is a small candidates file used by upload tests.
const CandidateCSV = "name,match_score,skills\nAsha,95,\"Python, SQL\"\nRavi,82,Python\n"

// JobDescriptionText is a minimal job description used by upload tests.
const JobDescriptionText = "Senior Engineer: 5+ years building distributed systems."
