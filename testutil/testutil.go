// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/danielhkuo/pitch-roast/cliparse"
	"github.com/danielhkuo/pitch-roast/judge"
	"github.com/danielhkuo/pitch-roast/models"
	"github.com/danielhkuo/pitch-roast/storage"
)

// TestToken is the bearer token accepted by FakeKV
const TestToken = "test-kv-token"

// SetupTestStore creates a file store in a fresh temp directory
func SetupTestStore(t *testing.T) *storage.FileStore {
	t.Helper()
	return storage.NewFileStore(filepath.Join(t.TempDir(), cliparse.DefaultDataFile))
}

// SetupTestService creates a service over a fresh file store
func SetupTestService(t *testing.T) (*judge.Service, *storage.FileStore) {
	t.Helper()
	store := SetupTestStore(t)
	return judge.NewService(store, false), store
}

// GetTestConfig returns a standard test configuration
func GetTestConfig(t *testing.T) cliparse.Config {
	t.Helper()
	return cliparse.Config{
		Port:       5000,
		Backend:    cliparse.BackendFile,
		DataFile:   filepath.Join(t.TempDir(), cliparse.DefaultDataFile),
		RecordName: cliparse.DefaultRecordName,
		KVTimeout:  time.Second,
		StaticDir:  t.TempDir(),
		LogLevel:   "info",
	}
}

// SeedDocument writes doc to store, failing the test on error
func SeedDocument(t *testing.T, store storage.Store, doc *models.Database) {
	t.Helper()
	if err := store.Save(context.Background(), doc); err != nil {
		t.Fatalf("Failed to seed document: %v", err)
	}
}

// LoadDocument reads the stored document, failing the test on error
func LoadDocument(t *testing.T, store storage.Store) *models.Database {
	t.Helper()
	doc, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("Failed to load document: %v", err)
	}
	return doc
}

// FakeKV is an in-memory KV REST service speaking the get/set protocol
type FakeKV struct {
	*httptest.Server

	mu      sync.Mutex
	records map[string]string
	gets    int
	sets    int

	status int    // when non-zero, returned for every request
	raw    string // when set, returned as the body of every get
}

// NewFakeKV starts a FakeKV that requires TestToken
func NewFakeKV(t *testing.T) *FakeKV {
	t.Helper()

	kv := &FakeKV{records: make(map[string]string)}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /get/{name}", kv.handleGet)
	mux.HandleFunc("POST /set/{name}", kv.handleSet)

	kv.Server = httptest.NewServer(kv.authorize(mux))
	t.Cleanup(kv.Close)
	return kv
}

func (kv *FakeKV) authorize(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+TestToken {
			http.Error(w, `{"error":"Unauthorized"}`, http.StatusUnauthorized)
			return
		}
		kv.mu.Lock()
		status := kv.status
		kv.mu.Unlock()
		if status != 0 {
			http.Error(w, `{"error":"forced"}`, status)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (kv *FakeKV) handleGet(w http.ResponseWriter, r *http.Request) {
	kv.mu.Lock()
	defer kv.mu.Unlock()
	kv.gets++

	w.Header().Set("Content-Type", "application/json")
	if kv.raw != "" {
		w.Write([]byte(kv.raw))
		return
	}

	resp := map[string]any{"result": nil}
	if v, ok := kv.records[r.PathValue("name")]; ok {
		resp["result"] = v
	}
	json.NewEncoder(w).Encode(resp)
}

func (kv *FakeKV) handleSet(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Value string `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, `{"error":"bad body"}`, http.StatusBadRequest)
		return
	}

	kv.mu.Lock()
	defer kv.mu.Unlock()
	kv.sets++
	kv.records[r.PathValue("name")] = body.Value

	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"result":"OK"}`))
}

// Record returns the raw stored value for name
func (kv *FakeKV) Record(name string) (string, bool) {
	kv.mu.Lock()
	defer kv.mu.Unlock()
	v, ok := kv.records[name]
	return v, ok
}

// PutRecord stores a raw value for name
func (kv *FakeKV) PutRecord(name, value string) {
	kv.mu.Lock()
	defer kv.mu.Unlock()
	kv.records[name] = value
}

// SetStatus forces every subsequent request to fail with status
func (kv *FakeKV) SetStatus(status int) {
	kv.mu.Lock()
	defer kv.mu.Unlock()
	kv.status = status
}

// SetRaw makes every get answer with body instead of the stored record
func (kv *FakeKV) SetRaw(body string) {
	kv.mu.Lock()
	defer kv.mu.Unlock()
	kv.raw = body
}

// Counts returns how many gets and sets were served
func (kv *FakeKV) Counts() (gets, sets int) {
	kv.mu.Lock()
	defer kv.mu.Unlock()
	return kv.gets, kv.sets
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	switch b := body.(type) {
	case nil:
		req = httptest.NewRequest(method, path, nil)
	case string:
		// Raw body, sent as-is
		req = httptest.NewRequest(method, path, strings.NewReader(b))
		req.Header.Set("Content-Type", "application/json")
	default:
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
