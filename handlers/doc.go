// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Pitch Roast API.

# Handler Types

  - StorageHandler: key-value operations backed by a judge.Service
  - PageHandler: the judge form and dashboard pages
  - Health: liveness check

Handlers are created via constructor functions:

	storageHandler := handlers.NewStorageHandler(svc)
	pageHandler := handlers.NewPageHandler(cfg.StaticDir)

# Storage Endpoints

	POST /api/storage/list   → List ({prefix, includeValues})
	GET  /api/storage/list   → ListQuery (?prefix=&includeValues=true)
	POST /api/storage/get    → Get ({key})
	POST /api/storage/set    → Set ({key, value})
	POST /api/storage/delete → Delete ({key})
	POST /api/red-x/list     → ListRedXs ({prefix})

A missing or malformed request body is treated as {}. Validation errors
come back as 400 with {"error": "..."}:

	Key required
	Key and value required
	Invalid JSON value

# Save Failures

A failed save is logged and the request still succeeds, unless the server
runs with strict saves, in which case it answers 500.
*/
package handlers
