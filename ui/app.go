// Package ui exposes the wrangling pipeline over HTTP: upload a
// spreadsheet, get back the column mapping, fetch the comparison report.
package ui

import (
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"gowrangle/app"
)

// App represents the HTTP application
type App struct {
	router   *chi.Mux
	wrangler *app.WranglerService
}

// Config holds HTTP application configuration
type Config struct {
	Port string
}

// NewApp creates the HTTP application around a wrangler service
func NewApp(wrangler *app.WranglerService) *App {
	a := &App{
		router:   chi.NewRouter(),
		wrangler: wrangler,
	}
	a.setupRoutes()
	return a
}

// setupRoutes configures all HTTP routes
func (a *App) setupRoutes() {
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)

	a.router.Get("/healthz", a.handleHealth)

	a.router.Post("/api/datasets/upload", a.handleUpload)
	a.router.Get("/api/mappings", a.handleListMappings)
	a.router.Get("/api/mappings/{id}", a.handleGetMapping)
	a.router.Get("/api/mappings/{id}/report", a.handleMappingReport)
	a.router.Get("/api/mappings/{id}/report.csv", a.handleMappingReportCSV)
}

// Router exposes the route tree for tests
func (a *App) Router() http.Handler {
	return a.router
}

// Start runs the HTTP server on the configured port
func (a *App) Start(config Config) error {
	addr := fmt.Sprintf(":%s", config.Port)
	log.Printf("[UI] Listening on %s", addr)
	return http.ListenAndServe(addr, a.router)
}
