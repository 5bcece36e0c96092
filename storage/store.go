// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/danielhkuo/pitch-roast/cliparse"
	"github.com/danielhkuo/pitch-roast/db"
	"github.com/danielhkuo/pitch-roast/models"
)

// ErrNotConfigured is returned by a backend that was selected without the
// settings it needs to reach its store.
var ErrNotConfigured = errors.New("storage backend not configured")

// Store loads and saves the whole judging document.
//
// Load returns a nil Database together with an error on failure; callers
// decide whether to fall back to an empty document. A missing document is
// not a failure: Load returns an empty Database.
//
// Save replaces the stored document. Concurrent writers are not
// coordinated, so the last Save wins for the entire document.
type Store interface {
	Name() string
	Load(ctx context.Context) (*models.Database, error)
	Save(ctx context.Context, doc *models.Database) error
	Close() error
}

// Open builds the Store selected by the configuration. In auto mode the KV
// REST backend is used when both its URL and token are set, and the local
// file otherwise.
func Open(ctx context.Context, cfg cliparse.Config) (Store, error) {
	backend := cfg.Backend
	if backend == "" || backend == cliparse.BackendAuto {
		backend = cliparse.BackendFile
		if cfg.HasKVCredentials() {
			backend = cliparse.BackendKV
		}
	}

	switch backend {
	case cliparse.BackendFile:
		return NewFileStore(cfg.DataFile), nil

	case cliparse.BackendKV:
		if !cfg.HasKVCredentials() {
			slog.Warn("KV backend selected without credentials; reads return an empty document and saves fail")
		}
		return NewRemoteStore(cfg.KVURL, cfg.KVToken, cfg.RecordName, cfg.KVTimeout), nil

	case cliparse.BackendSQLite, cliparse.BackendPostgres:
		conn, err := db.Open(backend, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		return NewSQLStore(conn, backend, cfg.RecordName), nil

	case cliparse.BackendRedis:
		return NewRedisStore(ctx, cfg.RedisURL, cfg.RecordName)
	}

	return nil, fmt.Errorf("unknown storage backend %q", backend)
}
