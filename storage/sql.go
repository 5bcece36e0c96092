// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/danielhkuo/pitch-roast/db"
	"github.com/danielhkuo/pitch-roast/models"
)

type sqlQueries struct {
	load string
	save string
}

// SQLite and lib/pq disagree on placeholder syntax.
var dialects = map[string]sqlQueries{
	db.TypeSQLite: {
		load: `SELECT body FROM judge_document WHERE name = ?`,
		save: `
			INSERT INTO judge_document (name, body, updated_at)
			VALUES (?, ?, ?)
			ON CONFLICT (name) DO UPDATE
			SET body = excluded.body, updated_at = excluded.updated_at
		`,
	},
	db.TypePostgres: {
		load: `SELECT body FROM judge_document WHERE name = $1`,
		save: `
			INSERT INTO judge_document (name, body, updated_at)
			VALUES ($1, $2, $3)
			ON CONFLICT (name) DO UPDATE
			SET body = excluded.body, updated_at = excluded.updated_at
		`,
	},
}

// SQLStore keeps the document as one row of the judge_document table.
type SQLStore struct {
	db      *sql.DB
	dbType  string
	record  string
	queries sqlQueries
}

// NewSQLStore wraps an open connection whose schema already exists (see
// db.Open). dbType is db.TypeSQLite or db.TypePostgres.
func NewSQLStore(conn *sql.DB, dbType, record string) *SQLStore {
	q, ok := dialects[dbType]
	if !ok {
		q = dialects[db.TypePostgres]
	}
	return &SQLStore{db: conn, dbType: dbType, record: record, queries: q}
}

func (s *SQLStore) Name() string { return s.dbType }

// Load reads the record's row. No row yields an empty document.
func (s *SQLStore) Load(ctx context.Context) (*models.Database, error) {
	var body string
	err := s.db.QueryRowContext(ctx, s.queries.load, s.record).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return models.NewDatabase(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query document %q: %w", s.record, err)
	}

	doc, err := models.ParseDatabase([]byte(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse document %q: %w", s.record, err)
	}
	return doc, nil
}

// Save upserts the record's row.
func (s *SQLStore) Save(ctx context.Context, doc *models.Database) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}

	_, err = s.db.ExecContext(ctx, s.queries.save, s.record, string(body), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to save document %q: %w", s.record, err)
	}
	return nil
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}
