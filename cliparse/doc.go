// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# CLI Flags

	-p             Server port
	-b             Storage backend
	-f             JSON data file
	-d             Database URL (sqlite path or postgres DSN)
	-s             Static page directory
	--kv-url       KV REST API URL
	--kv-token     KV REST API token
	--kv-timeout   KV request timeout
	--record       Record name holding the document
	--redis-url    Redis URL
	--strict-save  Fail requests whose save fails
	--log-level    Log level

# Environment Variables

Flags fall back to environment variables:

	PORT              → -p
	STORAGE_BACKEND   → -b
	DATA_FILE         → -f
	DATABASE_URL      → -d
	STATIC_DIR        → -s
	KV_REST_API_URL   → --kv-url
	KV_REST_API_TOKEN → --kv-token
	KV_TIMEOUT        → --kv-timeout
	KV_RECORD         → --record
	REDIS_URL         → --redis-url
	STRICT_SAVE       → --strict-save
	LOG_LEVEL         → --log-level

CLI flags take precedence over environment variables.

# Validation

ParseFlags returns an error when:

  - PORT, KV_TIMEOUT or STRICT_SAVE cannot be parsed
  - the backend name is unknown
  - sqlite or postgres is selected without a database URL
  - redis is selected without a Redis URL

Missing KV credentials are not an error: the auto backend then uses the
data file.
*/
package cliparse
