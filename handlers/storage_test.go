// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/danielhkuo/pitch-roast/judge"
	"github.com/danielhkuo/pitch-roast/models"
	"github.com/danielhkuo/pitch-roast/storage"
	"github.com/danielhkuo/pitch-roast/testutil"
)

func setupStorageHandler(t *testing.T) *StorageHandler {
	t.Helper()
	svc, _ := testutil.SetupTestService(t)
	return NewStorageHandler(svc)
}

func doSet(t *testing.T, h *StorageHandler, key string, value any) {
	t.Helper()
	w := httptest.NewRecorder()
	h.Set(w, testutil.MakeRequest("POST", "/api/storage/set", map[string]any{"key": key, "value": value}, nil))
	testutil.AssertStatus(t, w, http.StatusOK)
}

func TestSet(t *testing.T) {
	tests := []struct {
		name           string
		body           any
		expectedStatus int
		expectedError  string
	}{
		{
			name:           "submission",
			body:           map[string]any{"key": "submission_1", "value": `{"score":9}`},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "red x",
			body:           map[string]any{"key": "judge1_x_pitch3", "value": "red"},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "generic",
			body:           map[string]any{"key": "theme", "value": "dark"},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "generic non-string value",
			body:           map[string]any{"key": "round", "value": 2},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "missing key",
			body:           map[string]any{"value": "x"},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Key and value required",
		},
		{
			name:           "empty key",
			body:           map[string]any{"key": "", "value": "x"},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Key and value required",
		},
		{
			name:           "null value",
			body:           map[string]any{"key": "k", "value": nil},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Key and value required",
		},
		{
			name:           "invalid submission JSON",
			body:           map[string]any{"key": "submission_x", "value": "not json"},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Invalid JSON value",
		},
		{
			name:           "malformed body",
			body:           `{"key": "k", "value":`,
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Key and value required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := setupStorageHandler(t)

			w := httptest.NewRecorder()
			h.Set(w, testutil.MakeRequest("POST", "/api/storage/set", tt.body, nil))

			testutil.AssertStatus(t, w, tt.expectedStatus)

			if tt.expectedError != "" {
				var resp models.ErrorResponse
				testutil.AssertJSON(t, w, &resp)
				if resp.Error != tt.expectedError {
					t.Errorf("Expected error '%s', got '%s'", tt.expectedError, resp.Error)
				}
				return
			}

			var resp models.SuccessResponse
			testutil.AssertJSON(t, w, &resp)
			if !resp.Success {
				t.Error("Expected success: true")
			}
		})
	}
}

func TestGet(t *testing.T) {
	h := setupStorageHandler(t)
	doSet(t, h, "submission_42", `{"score":9}`)
	doSet(t, h, "judge1_x_pitch3", "red")

	t.Run("round trip", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.Get(w, testutil.MakeRequest("POST", "/api/storage/get", map[string]string{"key": "submission_42"}, nil))
		testutil.AssertStatus(t, w, http.StatusOK)

		var resp models.GetResponse
		testutil.AssertJSON(t, w, &resp)
		if resp.Value == nil {
			t.Fatal("Expected a value")
		}
		got, err := models.ParseValue(*resp.Value)
		if err != nil {
			t.Fatalf("Value is not JSON text: %v", err)
		}
		want, _ := models.ParseValue(`{"score":9}`)
		if !got.Equal(want) {
			t.Errorf("Expected %s, got %s", want.Encode(), *resp.Value)
		}
	})

	t.Run("red x reads as null", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.Get(w, testutil.MakeRequest("POST", "/api/storage/get", map[string]string{"key": "judge1_x_pitch3"}, nil))
		testutil.AssertStatus(t, w, http.StatusOK)

		if body := w.Body.String(); body != "{\"value\":null}\n" {
			t.Errorf("Expected null value, got %s", body)
		}
	})

	t.Run("missing key", func(t *testing.T) {
		for _, body := range []any{map[string]string{}, nil, "not json", map[string]any{"key": nil}} {
			w := httptest.NewRecorder()
			h.Get(w, testutil.MakeRequest("POST", "/api/storage/get", body, nil))
			testutil.AssertStatus(t, w, http.StatusBadRequest)

			var resp models.ErrorResponse
			testutil.AssertJSON(t, w, &resp)
			if resp.Error != "Key required" {
				t.Errorf("Expected 'Key required', got '%s'", resp.Error)
			}
		}
	})
}

func TestDelete(t *testing.T) {
	h := setupStorageHandler(t)
	doSet(t, h, "submission_1", `{"score":3}`)

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		h.Delete(w, testutil.MakeRequest("POST", "/api/storage/delete", map[string]string{"key": "submission_1"}, nil))
		testutil.AssertStatus(t, w, http.StatusOK)

		var resp models.SuccessResponse
		testutil.AssertJSON(t, w, &resp)
		if !resp.Success {
			t.Errorf("Delete #%d: expected success", i+1)
		}
	}

	w := httptest.NewRecorder()
	h.Get(w, testutil.MakeRequest("POST", "/api/storage/get", map[string]string{"key": "submission_1"}, nil))
	var got models.GetResponse
	testutil.AssertJSON(t, w, &got)
	if got.Value != nil {
		t.Errorf("Expected deleted key to read as null, got %s", *got.Value)
	}

	w = httptest.NewRecorder()
	h.Delete(w, testutil.MakeRequest("POST", "/api/storage/delete", map[string]string{}, nil))
	testutil.AssertStatus(t, w, http.StatusBadRequest)
}

func TestList(t *testing.T) {
	h := setupStorageHandler(t)
	doSet(t, h, "a1", "one")
	doSet(t, h, "a2", "two")
	doSet(t, h, "b1", "three")
	doSet(t, h, "a_x_j1", "red")

	t.Run("prefix filter", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.List(w, testutil.MakeRequest("POST", "/api/storage/list", map[string]string{"prefix": "a"}, nil))
		testutil.AssertStatus(t, w, http.StatusOK)

		var resp models.ListResponse
		testutil.AssertJSON(t, w, &resp)
		if !reflect.DeepEqual(resp.Keys, []string{"a1", "a2", "a_x_j1"}) {
			t.Errorf("Unexpected keys %v", resp.Keys)
		}
		if resp.Items != nil {
			t.Errorf("Expected no items, got %v", resp.Items)
		}
	})

	t.Run("include values", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.List(w, testutil.MakeRequest("POST", "/api/storage/list", map[string]any{"prefix": "a", "includeValues": true}, nil))
		testutil.AssertStatus(t, w, http.StatusOK)

		var resp models.ListResponse
		testutil.AssertJSON(t, w, &resp)
		want := []models.ListItem{
			{Key: "a1", Value: `"one"`},
			{Key: "a2", Value: `"two"`},
			{Key: "a_x_j1", Value: "red"},
		}
		if !reflect.DeepEqual(resp.Items, want) {
			t.Errorf("Expected items %+v, got %+v", want, resp.Items)
		}
	})

	t.Run("empty body lists everything", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.List(w, testutil.MakeRequest("POST", "/api/storage/list", nil, nil))
		testutil.AssertStatus(t, w, http.StatusOK)

		var resp models.ListResponse
		testutil.AssertJSON(t, w, &resp)
		if len(resp.Keys) != 4 {
			t.Errorf("Expected 4 keys, got %v", resp.Keys)
		}
	})

	t.Run("query parameters", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.ListQuery(w, testutil.MakeRequest("GET", "/api/storage/list?prefix=b&includeValues=TRUE", nil, nil))
		testutil.AssertStatus(t, w, http.StatusOK)

		var resp models.ListResponse
		testutil.AssertJSON(t, w, &resp)
		if !reflect.DeepEqual(resp.Keys, []string{"b1"}) {
			t.Errorf("Unexpected keys %v", resp.Keys)
		}
		if len(resp.Items) != 1 || resp.Items[0].Value != `"three"` {
			t.Errorf("Unexpected items %+v", resp.Items)
		}
	})

	t.Run("query without includeValues", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.ListQuery(w, testutil.MakeRequest("GET", "/api/storage/list?includeValues=yes", nil, nil))

		var resp models.ListResponse
		testutil.AssertJSON(t, w, &resp)
		if resp.Items != nil {
			t.Errorf("Only 'true' enables values, got %+v", resp.Items)
		}
	})
}

func TestListRedXs(t *testing.T) {
	h := setupStorageHandler(t)
	doSet(t, h, "submission_p1", `{"score":1}`)
	doSet(t, h, "p1_x_j1", "red")
	doSet(t, h, "p2_x_j1", "red")

	w := httptest.NewRecorder()
	h.ListRedXs(w, testutil.MakeRequest("POST", "/api/red-x/list", map[string]string{"prefix": "p1"}, nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.ListResponse
	testutil.AssertJSON(t, w, &resp)
	if !reflect.DeepEqual(resp.Keys, []string{"p1_x_j1"}) {
		t.Errorf("Unexpected keys %v", resp.Keys)
	}
}

func TestSetInvalidJSONDoesNotMutate(t *testing.T) {
	svc, store := testutil.SetupTestService(t)
	h := NewStorageHandler(svc)
	doSet(t, h, "submission_keep", `{"score":5}`)

	w := httptest.NewRecorder()
	h.Set(w, testutil.MakeRequest("POST", "/api/storage/set", map[string]string{"key": "submission_x", "value": "not json"}, nil))
	testutil.AssertStatus(t, w, http.StatusBadRequest)

	doc := testutil.LoadDocument(t, store)
	if !reflect.DeepEqual(doc.Submissions.Keys(), []string{"submission_keep"}) {
		t.Errorf("Document was mutated: %v", doc.Submissions.Keys())
	}
}

func TestSetStrictSaveFailure(t *testing.T) {
	kv := testutil.NewFakeKV(t)
	kv.SetStatus(http.StatusServiceUnavailable)

	cfg := testutil.GetTestConfig(t)
	cfg.KVURL = kv.URL
	cfg.KVToken = testutil.TestToken

	for _, strict := range []bool{false, true} {
		store := storage.NewRemoteStore(cfg.KVURL, cfg.KVToken, cfg.RecordName, cfg.KVTimeout)
		h := NewStorageHandler(judge.NewService(store, strict))

		w := httptest.NewRecorder()
		h.Set(w, testutil.MakeRequest("POST", "/api/storage/set", map[string]string{"key": "submission_1", "value": "{}"}, nil))

		if strict {
			testutil.AssertStatus(t, w, http.StatusInternalServerError)
		} else {
			testutil.AssertStatus(t, w, http.StatusOK)
		}
	}
}

func TestWrongTypedFieldOnlyVoidsItself(t *testing.T) {
	h := setupStorageHandler(t)
	doSet(t, h, "a1", "one")
	doSet(t, h, "b1", "two")

	t.Run("set ignores bad prefix", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.Set(w, testutil.MakeRequest("POST", "/api/storage/set",
			map[string]any{"key": "submission_1", "value": "{}", "prefix": 5}, nil))
		testutil.AssertStatus(t, w, http.StatusOK)
	})

	t.Run("list keeps prefix despite bad key", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.List(w, testutil.MakeRequest("POST", "/api/storage/list",
			map[string]any{"prefix": "a", "key": 7}, nil))
		testutil.AssertStatus(t, w, http.StatusOK)

		var resp models.ListResponse
		testutil.AssertJSON(t, w, &resp)
		if !reflect.DeepEqual(resp.Keys, []string{"a1"}) {
			t.Errorf("Expected [a1], got %v", resp.Keys)
		}
	})

	t.Run("bad key reads as missing", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.Get(w, testutil.MakeRequest("POST", "/api/storage/get",
			map[string]any{"key": []string{"a1"}}, nil))
		testutil.AssertStatus(t, w, http.StatusBadRequest)
	})

	t.Run("non-object body is empty", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.List(w, testutil.MakeRequest("POST", "/api/storage/list", `["a"]`, nil))
		testutil.AssertStatus(t, w, http.StatusOK)

		var resp models.ListResponse
		testutil.AssertJSON(t, w, &resp)
		if len(resp.Keys) != 3 {
			t.Errorf("Expected all 3 keys, got %v", resp.Keys)
		}
	})
}
