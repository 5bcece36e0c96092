// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Pitch Roast judge server.

Pitch Roast backs a pitch-competition judging form and dashboard with a
small key-value API. Judges' scores are stored as submissions, disqualifying
flags as red Xs, and the whole document is persisted to one backend.

# Starting the Server

With no configuration the server listens on port 5000 and keeps its data in
judge_data.json in the working directory:

	go run .

Use a KV REST service when its credentials are present:

	KV_REST_API_URL=https://... KV_REST_API_TOKEN=... go run .

Or pick a backend with flags:

	go run . -p 8080 -b sqlite -d judge.db

A .env file in the working directory is loaded first, if present.

# Configuration

  - PORT (-p): Server port (default: 5000)
  - STORAGE_BACKEND (-b): auto, file, kv, sqlite, postgres or redis
  - DATA_FILE (-f): JSON data file (default: judge_data.json)
  - KV_REST_API_URL, KV_REST_API_TOKEN: KV REST credentials
  - DATABASE_URL (-d): SQLite path or PostgreSQL connection string
  - REDIS_URL (--redis-url): Redis connection URL
  - STATIC_DIR (-s): Directory holding the judge pages (default: .)
  - STRICT_SAVE (--strict-save): Return 500 when a save fails
  - LOG_LEVEL (--log-level): debug, info, warn or error

# Architecture

  - handlers: HTTP request handlers (storage, pages, health)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - judge: Key routing and document operations
  - storage: File, KV REST, SQL and Redis backends
  - models: Ordered document, JSON values, request/response types
  - db: Schema creation for the SQL backends
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
