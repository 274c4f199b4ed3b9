// Package monitor provides the HTTP inspection surface for a built field
// layout: JSON query endpoints for localization collaborators to cross-check
// against, plus debug visualisations of the fiducial set.
package monitor

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/banshee-data/fieldlayout/internal/field"
	"github.com/banshee-data/fieldlayout/internal/monitoring"
)

// WebServer serves read-only queries against one immutable layout. The
// layout never changes after construction, so handlers need no locking.
type WebServer struct {
	address    string
	layout     *field.Layout
	instanceID string
	server     *http.Server
}

// WebServerConfig contains configuration options for the web server
type WebServerConfig struct {
	Address string
	Layout  *field.Layout
}

// NewWebServer creates a web server for the provided layout.
func NewWebServer(config WebServerConfig) *WebServer {
	ws := &WebServer{
		address:    config.Address,
		layout:     config.Layout,
		instanceID: uuid.New().String(),
	}
	ws.server = &http.Server{
		Addr:    ws.address,
		Handler: ws.setupRoutes(),
	}
	return ws
}

// Handler exposes the route mux, mainly for tests.
func (ws *WebServer) Handler() http.Handler {
	return ws.server.Handler
}

// setupRoutes configures the HTTP routes and handlers
func (ws *WebServer) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", ws.handleHealth)
	mux.HandleFunc("/api/field", ws.handleField)
	mux.HandleFunc("/api/field/fiducials", ws.handleFiducials)
	mux.HandleFunc("/api/field/fiducial", ws.handleFiducial)
	mux.HandleFunc("/api/field/elements", ws.handleElements)
	mux.HandleFunc("/api/field/element", ws.handleElementPose)
	mux.HandleFunc("/api/field/mirror", ws.handleMirror)
	mux.HandleFunc("/api/field/nearest", ws.handleNearest)
	mux.HandleFunc("/debug/field/map", ws.handleFieldMap)
	return mux
}

// Start begins the HTTP server and blocks until the context is cancelled,
// then shuts the server down.
func (ws *WebServer) Start(ctx context.Context) error {
	go func() {
		monitoring.Logf("starting layout server on %s (layout %s)", ws.address, ws.layout.Name())
		if err := ws.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			monitoring.Logf("layout server failed: %v", err)
		}
	}()

	<-ctx.Done()
	monitoring.Logf("shutting down layout server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()

	if err := ws.server.Shutdown(shutdownCtx); err != nil {
		monitoring.Logf("layout server shutdown error: %v", err)
		if err := ws.server.Close(); err != nil {
			monitoring.Logf("layout server force close error: %v", err)
		}
	}
	return nil
}
