// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /api/health", middleware.WithLogging(handler))

Each request gets an ID, taken from X-Request-ID or generated, which is
echoed in the response and attached to the start and completion log lines
along with status, response size and duration_ms.

# CORS Middleware

Allow the judge pages to call the API from any origin:

	server := http.Server{
		Handler: middleware.CORS(mux),
	}

Allows methods GET, POST, OPTIONS. Preflight requests are answered with 200.

# JSON Helpers

Write JSON responses:

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "Key required")

Parse JSON request bodies:

	var req models.StorageRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		// treat as an empty request
	}

# Client IP Extraction

Get the original client IP (handles X-Forwarded-For, X-Real-IP):

	ip := middleware.GetClientIP(r)

Logged as "remote" on every request.
*/
package middleware
