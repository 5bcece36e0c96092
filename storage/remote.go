// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/danielhkuo/pitch-roast/models"
)

// maxResponseBytes caps how much of a KV response is read.
const maxResponseBytes = 32 << 20

// RemoteStore keeps the document as one record of a KV REST service.
//
// The service speaks a minimal protocol:
//
//	GET  <url>/get/<record>  -> {"result": "<document JSON>"}
//	POST <url>/set/<record>  <- {"value": "<document JSON>"}
//
// Both requests carry "Authorization: Bearer <token>". The record value is
// the document serialized as a string, so it is decoded twice on load.
type RemoteStore struct {
	baseURL string
	token   string
	record  string
	client  *http.Client
}

func NewRemoteStore(baseURL, token, record string, timeout time.Duration) *RemoteStore {
	return &RemoteStore{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		record:  record,
		client:  &http.Client{Timeout: timeout},
	}
}

func (s *RemoteStore) Name() string { return "kv" }

func (s *RemoteStore) configured() bool {
	return s.baseURL != "" && s.token != ""
}

func (s *RemoteStore) endpoint(op string) string {
	return s.baseURL + "/" + op + "/" + url.PathEscape(s.record)
}

// Load fetches the record. An absent or empty record yields an empty
// document.
func (s *RemoteStore) Load(ctx context.Context) (*models.Database, error) {
	if !s.configured() {
		return nil, ErrNotConfigured
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.endpoint("get"), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build KV request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.token)

	body, err := s.do(req)
	if err != nil {
		return nil, err
	}

	result := gjson.GetBytes(body, "result")
	switch {
	case !result.Exists(), result.Type == gjson.Null:
		return models.NewDatabase(), nil
	case result.Type != gjson.String:
		return nil, fmt.Errorf("KV result for %q is %s, not a string", s.record, result.Type)
	case result.Str == "":
		return models.NewDatabase(), nil
	}

	doc, err := models.ParseDatabase([]byte(result.Str))
	if err != nil {
		return nil, fmt.Errorf("failed to parse KV record %q: %w", s.record, err)
	}
	return doc, nil
}

// Save writes the whole document to the record.
func (s *RemoteStore) Save(ctx context.Context, doc *models.Database) error {
	if !s.configured() {
		return ErrNotConfigured
	}

	encoded, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}
	payload, err := json.Marshal(map[string]string{"value": string(encoded)})
	if err != nil {
		return fmt.Errorf("failed to encode KV payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint("set"), bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build KV request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.token)
	req.Header.Set("Content-Type", "application/json")

	_, err = s.do(req)
	return err
}

func (s *RemoteStore) do(req *http.Request) ([]byte, error) {
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("KV %s failed: %w", req.Method, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read KV response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("KV %s returned %s", req.Method, resp.Status)
	}
	return body, nil
}

func (s *RemoteStore) Close() error {
	s.client.CloseIdleConnections()
	return nil
}
