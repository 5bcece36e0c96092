// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package judge

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/danielhkuo/pitch-roast/models"
	"github.com/danielhkuo/pitch-roast/storage"
)

var (
	ErrMissingKey        = errors.New("key required")
	ErrMissingKeyOrValue = errors.New("key and value required")
	ErrInvalidJSON       = errors.New("invalid JSON value")
	ErrSaveFailed        = errors.New("failed to save document")
)

// Bucket names the mapping a key is written to.
type Bucket int

const (
	// BucketSubmission: "submission_" keys, value parsed as JSON
	BucketSubmission Bucket = iota
	// BucketRedX: keys containing "_x_", value kept as text
	BucketRedX
	// BucketGeneric: everything else, stored in submissions as sent
	BucketGeneric
)

func (b Bucket) String() string {
	switch b {
	case BucketSubmission:
		return "submission"
	case BucketRedX:
		return "red_x"
	case BucketGeneric:
		return "generic"
	}
	return "unknown"
}

// Route decides which bucket a key belongs to. The first matching rule
// wins, so "submission_a_x_b" is a submission.
func Route(key string) Bucket {
	switch {
	case strings.HasPrefix(key, models.SubmissionPrefix):
		return BucketSubmission
	case strings.Contains(key, models.RedXMarker):
		return BucketRedX
	default:
		return BucketGeneric
	}
}

// Service implements the storage operations on top of a Store. Each call
// loads the full document and mutations save it back whole; there is no
// locking, so concurrent writers race and the last save wins.
type Service struct {
	store      storage.Store
	strictSave bool
}

// NewService creates a Service. With strictSave, mutations whose save fails
// return ErrSaveFailed; otherwise save failures are only logged.
func NewService(store storage.Store, strictSave bool) *Service {
	return &Service{store: store, strictSave: strictSave}
}

// load never fails: a backend error is logged and an empty document used.
func (s *Service) load(ctx context.Context) *models.Database {
	doc, err := s.store.Load(ctx)
	if err != nil {
		slog.Warn("document load failed, using empty document",
			"backend", s.store.Name(),
			"error", err,
		)
		return models.NewDatabase()
	}
	if doc == nil {
		return models.NewDatabase()
	}
	return doc
}

func (s *Service) save(ctx context.Context, doc *models.Database) error {
	err := s.store.Save(ctx, doc)
	if err == nil {
		return nil
	}

	slog.Error("document save failed",
		"backend", s.store.Name(),
		"error", err,
	)
	if s.strictSave {
		return fmt.Errorf("%w: %v", ErrSaveFailed, err)
	}
	return nil
}

// List returns keys from submissions then red_xs that start with prefix.
// A key present in both is reported once, from submissions. With
// includeValues, submission values are returned as JSON text and red-X
// values as stored.
func (s *Service) List(ctx context.Context, prefix string, includeValues bool) models.ListResponse {
	doc := s.load(ctx)

	resp := models.ListResponse{Keys: []string{}}
	if includeValues {
		resp.Items = []models.ListItem{}
	}

	seen := make(map[string]bool)
	for _, key := range doc.Submissions.Keys() {
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		seen[key] = true
		resp.Keys = append(resp.Keys, key)
		if includeValues {
			v, _ := doc.Submissions.Get(key)
			resp.Items = append(resp.Items, models.ListItem{Key: key, Value: v.Encode()})
		}
	}

	for _, key := range doc.RedXs.Keys() {
		if !strings.HasPrefix(key, prefix) || seen[key] {
			continue
		}
		resp.Keys = append(resp.Keys, key)
		if includeValues {
			v, _ := doc.RedXs.Get(key)
			resp.Items = append(resp.Items, models.ListItem{Key: key, Value: v})
		}
	}

	return resp
}

// ListRedXs returns red_xs keys that start with prefix.
func (s *Service) ListRedXs(ctx context.Context, prefix string) models.ListResponse {
	doc := s.load(ctx)

	resp := models.ListResponse{Keys: []string{}}
	for _, key := range doc.RedXs.Keys() {
		if strings.HasPrefix(key, prefix) {
			resp.Keys = append(resp.Keys, key)
		}
	}
	return resp
}

// Get returns a submissions value as JSON text, or a nil value when the key
// is absent. red_xs is not consulted.
func (s *Service) Get(ctx context.Context, key string) (models.GetResponse, error) {
	if key == "" {
		return models.GetResponse{}, ErrMissingKey
	}

	doc := s.load(ctx)
	v, ok := doc.Submissions.Get(key)
	if !ok {
		return models.GetResponse{}, nil
	}
	text := v.Encode()
	return models.GetResponse{Value: &text}, nil
}

// Set stores value under key according to Route:
//
//   - submission keys: value must be a string of valid JSON; the parsed
//     value is stored
//   - red-X keys: value is stored as text in red_xs
//   - generic keys: value is stored in submissions exactly as sent
func (s *Service) Set(ctx context.Context, key string, value *models.Value) (models.SuccessResponse, error) {
	if key == "" || value == nil || value.IsNull() {
		return models.SuccessResponse{}, ErrMissingKeyOrValue
	}

	bucket := Route(key)

	// Validate before loading so a bad value never touches the store.
	var parsed models.Value
	if bucket == BucketSubmission {
		text, ok := value.Str()
		if !ok {
			return models.SuccessResponse{}, ErrInvalidJSON
		}
		var err error
		parsed, err = models.ParseValue(text)
		if err != nil {
			return models.SuccessResponse{}, ErrInvalidJSON
		}
	}

	doc := s.load(ctx)
	switch bucket {
	case BucketSubmission:
		doc.Submissions.Set(key, parsed)
	case BucketRedX:
		doc.RedXs.Set(key, value.Text())
	default:
		doc.Submissions.Set(key, *value)
	}

	if err := s.save(ctx, doc); err != nil {
		return models.SuccessResponse{}, err
	}

	slog.Debug("key stored", "key", key, "bucket", bucket.String())
	return models.SuccessResponse{Success: true}, nil
}

// Delete removes key from submissions and from red_xs, saving after each
// removal. Deleting a missing key succeeds.
func (s *Service) Delete(ctx context.Context, key string) (models.SuccessResponse, error) {
	if key == "" {
		return models.SuccessResponse{}, ErrMissingKey
	}

	doc := s.load(ctx)

	if doc.Submissions.Delete(key) {
		if err := s.save(ctx, doc); err != nil {
			return models.SuccessResponse{}, err
		}
	}

	if doc.RedXs.Delete(key) {
		if err := s.save(ctx, doc); err != nil {
			return models.SuccessResponse{}, err
		}
	}

	return models.SuccessResponse{Success: true}, nil
}
