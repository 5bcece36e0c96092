// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"path/filepath"
	"time"

	"github.com/danielhkuo/pitch-roast/middleware"
	"github.com/danielhkuo/pitch-roast/models"
)

// Page file names served from the static directory
const (
	FormPage      = "judge-form.html"
	DashboardPage = "judge-dashboard.html"
)

// Health handles GET /api/health
func Health(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, models.HealthResponse{
		Status:    models.StatusOK,
		Timestamp: time.Now().Format(time.RFC3339Nano),
	})
}

// PageHandler serves the judge form and dashboard
type PageHandler struct {
	dir string
}

func NewPageHandler(dir string) *PageHandler {
	return &PageHandler{dir: dir}
}

// Form handles GET /
func (h *PageHandler) Form(w http.ResponseWriter, r *http.Request) {
	http.ServeFile(w, r, filepath.Join(h.dir, FormPage))
}

// Dashboard handles GET /dashboard
func (h *PageHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	http.ServeFile(w, r, filepath.Join(h.dir, DashboardPage))
}
