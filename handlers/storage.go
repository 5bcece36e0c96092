// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/danielhkuo/pitch-roast/judge"
	"github.com/danielhkuo/pitch-roast/middleware"
	"github.com/danielhkuo/pitch-roast/models"
)

type StorageHandler struct {
	svc *judge.Service
}

func NewStorageHandler(svc *judge.Service) *StorageHandler {
	return &StorageHandler{svc: svc}
}

// decodeRequest reads the JSON body field by field. A missing or malformed
// body is treated as an empty object, and a field of the wrong type is
// treated as absent without affecting the others.
func decodeRequest(r *http.Request) models.StorageRequest {
	var fields map[string]json.RawMessage
	if err := middleware.ParseJSONBody(r, &fields); err != nil {
		slog.Debug("treating request body as empty", "path", r.URL.Path, "error", err)
		return models.StorageRequest{}
	}

	var req models.StorageRequest
	decodeField(r, fields, "key", &req.Key)
	decodeField(r, fields, "prefix", &req.Prefix)
	decodeField(r, fields, "value", &req.Value)
	decodeField(r, fields, "includeValues", &req.IncludeValues)
	return req
}

func decodeField(r *http.Request, fields map[string]json.RawMessage, name string, dst any) {
	raw, ok := fields[name]
	if !ok {
		return
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		slog.Debug("ignoring request field", "path", r.URL.Path, "field", name, "error", err)
	}
}

// writeError maps service errors onto HTTP responses
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, judge.ErrMissingKey):
		middleware.ErrorResponse(w, http.StatusBadRequest, "Key required")
	case errors.Is(err, judge.ErrMissingKeyOrValue):
		middleware.ErrorResponse(w, http.StatusBadRequest, "Key and value required")
	case errors.Is(err, judge.ErrInvalidJSON):
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON value")
	case errors.Is(err, judge.ErrSaveFailed):
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save data")
	default:
		slog.Error("unexpected storage error", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Storage error")
	}
}

// List handles POST /api/storage/list
func (h *StorageHandler) List(w http.ResponseWriter, r *http.Request) {
	req := decodeRequest(r)
	resp := h.svc.List(r.Context(), req.Prefix, req.IncludeValues.Truthy())
	middleware.JSONResponse(w, http.StatusOK, resp)
}

// ListQuery handles GET /api/storage/list?prefix=...&includeValues=true
func (h *StorageHandler) ListQuery(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	includeValues := strings.EqualFold(query.Get("includeValues"), "true")
	resp := h.svc.List(r.Context(), query.Get("prefix"), includeValues)
	middleware.JSONResponse(w, http.StatusOK, resp)
}

// Get handles POST /api/storage/get
func (h *StorageHandler) Get(w http.ResponseWriter, r *http.Request) {
	req := decodeRequest(r)
	resp, err := h.svc.Get(r.Context(), req.Key)
	if err != nil {
		writeError(w, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, resp)
}

// Set handles POST /api/storage/set
func (h *StorageHandler) Set(w http.ResponseWriter, r *http.Request) {
	req := decodeRequest(r)
	resp, err := h.svc.Set(r.Context(), req.Key, req.Value)
	if err != nil {
		writeError(w, err)
		return
	}

	slog.Info("value stored", "key", req.Key, "bucket", judge.Route(req.Key).String())
	middleware.JSONResponse(w, http.StatusOK, resp)
}

// Delete handles POST /api/storage/delete
func (h *StorageHandler) Delete(w http.ResponseWriter, r *http.Request) {
	req := decodeRequest(r)
	resp, err := h.svc.Delete(r.Context(), req.Key)
	if err != nil {
		writeError(w, err)
		return
	}

	slog.Info("key deleted", "key", req.Key)
	middleware.JSONResponse(w, http.StatusOK, resp)
}

// ListRedXs handles POST /api/red-x/list
func (h *StorageHandler) ListRedXs(w http.ResponseWriter, r *http.Request) {
	req := decodeRequest(r)
	resp := h.svc.ListRedXs(r.Context(), req.Prefix)
	middleware.JSONResponse(w, http.StatusOK, resp)
}
