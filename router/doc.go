// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Pitch Roast judge API.

# Route Registration

NewRouter creates a handler with all endpoints, wrapped in CORS:

	handler := router.NewRouter(svc, cfg)

# Endpoints

Health:

	GET /api/health

Storage:

	POST /api/storage/list   - Keys by prefix, optionally with values
	GET  /api/storage/list   - Same, from ?prefix=&includeValues=true
	POST /api/storage/get    - Read a submission
	POST /api/storage/set    - Write a submission, red X or plain key
	POST /api/storage/delete - Remove a key from every mapping

Red X markers:

	POST /api/red-x/list

Pages, served from cfg.StaticDir:

	GET /          - judge-form.html
	GET /dashboard - judge-dashboard.html

Any other path gets 404. Every route answers OPTIONS preflight requests
with 200 through the CORS middleware.
*/
package router
