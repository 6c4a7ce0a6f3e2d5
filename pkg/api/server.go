// Package api exposes the LinkedVault REST API: account registration and
// login, table lifecycle, positional record operations and per-user
// history, all scoped to the authenticated caller.
package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Router builds the full route table for the server.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Prometheus metrics endpoint (unprotected for scraping)
	r.Handle("/metrics", promhttp.Handler())

	// Health check (unprotected for probes)
	r.Get("/health", s.metrics.InstrumentHandler("GET", "/health", s.handleHealth))

	// Account endpoints issue the tokens the rest of the API requires
	r.Post("/auth/register", s.metrics.InstrumentHandler("POST", "/auth/register", s.handleRegister))
	r.Post("/auth/login", s.metrics.InstrumentHandler("POST", "/auth/login", s.handleLogin))

	// Bearer token authentication for everything else
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(authMiddleware(s.tokens))

		// Table lifecycle
		r.Post("/tables", s.metrics.InstrumentHandler("POST", "/api/v1/tables", s.handleCreateTable))
		r.Get("/tables", s.metrics.InstrumentHandler("GET", "/api/v1/tables", s.handleListTables))
		r.Delete("/tables/{tableID}", s.metrics.InstrumentHandler("DELETE", "/api/v1/tables/{tableID}", s.handleDeleteTable))

		// Record operations
		r.Get("/tables/{tableID}/records", s.metrics.InstrumentHandler("GET", "/api/v1/tables/{tableID}/records", s.handleListRecords))
		r.Post("/tables/{tableID}/records", s.metrics.InstrumentHandler("POST", "/api/v1/tables/{tableID}/records", s.handleInsertRecord))
		r.Get("/tables/{tableID}/records/reversed", s.metrics.InstrumentHandler("GET", "/api/v1/tables/{tableID}/records/reversed", s.handleReversedRecords))
		r.Get("/tables/{tableID}/records/{id}", s.metrics.InstrumentHandler("GET", "/api/v1/tables/{tableID}/records/{id}", s.handleGetRecord))
		r.Put("/tables/{tableID}/records/{id}", s.metrics.InstrumentHandler("PUT", "/api/v1/tables/{tableID}/records/{id}", s.handleUpdateRecord))
		r.Delete("/tables/{tableID}/records/{id}", s.metrics.InstrumentHandler("DELETE", "/api/v1/tables/{tableID}/records/{id}", s.handleDeleteRecord))
		r.Post("/tables/{tableID}/reverse", s.metrics.InstrumentHandler("POST", "/api/v1/tables/{tableID}/reverse", s.handleReverseTable))

		// Search and bulk transfer
		r.Get("/tables/{tableID}/search", s.metrics.InstrumentHandler("GET", "/api/v1/tables/{tableID}/search", s.handleSearchRecords))
		r.Get("/tables/{tableID}/export", s.metrics.InstrumentHandler("GET", "/api/v1/tables/{tableID}/export", s.handleExportCSV))
		r.Post("/tables/{tableID}/import", s.metrics.InstrumentHandler("POST", "/api/v1/tables/{tableID}/import", s.handleImportCSV))

		// Audit trail
		r.Get("/history", s.metrics.InstrumentHandler("GET", "/api/v1/history", s.handleHistory))
	})

	return r
}

// StartServer binds the router and serves until the listener fails.
func (s *Server) StartServer() error {
	addr := fmt.Sprintf("%s:%d", s.config.Bind, s.config.Port)
	s.logger.Info("starting LinkedVault REST API server", "addr", addr)
	return http.ListenAndServe(addr, s.Router())
}
