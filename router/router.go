// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/pitch-roast/cliparse"
	"github.com/danielhkuo/pitch-roast/handlers"
	"github.com/danielhkuo/pitch-roast/judge"
	"github.com/danielhkuo/pitch-roast/middleware"
)

func NewRouter(svc *judge.Service, cfg cliparse.Config) http.Handler {
	mux := http.NewServeMux()

	// Initialize handlers
	storageHandler := handlers.NewStorageHandler(svc)
	pageHandler := handlers.NewPageHandler(cfg.StaticDir)

	// Health check
	mux.HandleFunc("GET /api/health", middleware.WithLogging(handlers.Health))

	// Storage operations
	mux.HandleFunc("POST /api/storage/list", middleware.WithLogging(storageHandler.List))
	mux.HandleFunc("GET /api/storage/list", middleware.WithLogging(storageHandler.ListQuery))
	mux.HandleFunc("POST /api/storage/get", middleware.WithLogging(storageHandler.Get))
	mux.HandleFunc("POST /api/storage/set", middleware.WithLogging(storageHandler.Set))
	mux.HandleFunc("POST /api/storage/delete", middleware.WithLogging(storageHandler.Delete))

	// Red X markers
	mux.HandleFunc("POST /api/red-x/list", middleware.WithLogging(storageHandler.ListRedXs))

	// Judge pages
	mux.HandleFunc("GET /{$}", middleware.WithLogging(pageHandler.Form))
	mux.HandleFunc("GET /dashboard", middleware.WithLogging(pageHandler.Dashboard))

	return middleware.CORS(mux)
}
