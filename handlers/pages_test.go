// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/danielhkuo/pitch-roast/models"
	"github.com/danielhkuo/pitch-roast/testutil"
)

func TestHealth(t *testing.T) {
	w := httptest.NewRecorder()
	Health(w, testutil.MakeRequest("GET", "/api/health", nil, nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.HealthResponse
	testutil.AssertJSON(t, w, &resp)

	if resp.Status != "ok" {
		t.Errorf("Expected status 'ok', got '%s'", resp.Status)
	}
	if _, err := time.Parse(time.RFC3339Nano, resp.Timestamp); err != nil {
		t.Errorf("Expected ISO 8601 timestamp, got '%s': %v", resp.Timestamp, err)
	}
}

func TestPages(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, FormPage), []byte("<h1>Judge Form</h1>"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, DashboardPage), []byte("<h1>Dashboard</h1>"), 0o644); err != nil {
		t.Fatal(err)
	}

	h := NewPageHandler(dir)

	tests := []struct {
		name     string
		handler  http.HandlerFunc
		path     string
		contains string
	}{
		{"form", h.Form, "/", "Judge Form"},
		{"dashboard", h.Dashboard, "/dashboard", "Dashboard"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			tt.handler(w, testutil.MakeRequest("GET", tt.path, nil, nil))
			testutil.AssertStatus(t, w, http.StatusOK)

			if !strings.Contains(w.Body.String(), tt.contains) {
				t.Errorf("Expected body to contain '%s', got '%s'", tt.contains, w.Body.String())
			}
			if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
				t.Errorf("Expected HTML content type, got '%s'", ct)
			}
		})
	}
}

func TestPages_Missing(t *testing.T) {
	h := NewPageHandler(t.TempDir())

	w := httptest.NewRecorder()
	h.Dashboard(w, testutil.MakeRequest("GET", "/dashboard", nil, nil))
	testutil.AssertStatus(t, w, http.StatusNotFound)
}
