// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens SQL databases used as a document backend and creates their
schema.

# Opening

Open picks the driver for the type, pings, and creates the schema:

	conn, err := db.Open(db.TypeSQLite, "judge.db")
	conn, err := db.Open(db.TypePostgres, "postgres://...")

SQLite uses modernc.org/sqlite (pure Go); PostgreSQL uses lib/pq.

# Schema Creation

CreateSchema is safe to call multiple times - uses IF NOT EXISTS.

# Tables

  - judge_document: one row per record name holding the serialized
    judging document (name, body, updated_at)
*/
package db
