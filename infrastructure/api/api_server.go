package api

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/helixml/ftsq"
	"github.com/helixml/ftsq/infrastructure/api/middleware"
	v1 "github.com/helixml/ftsq/infrastructure/api/v1"
)

// APIServer provides an HTTP API backed by an ftsq Client.
type APIServer struct {
	client *ftsq.Client

	mu       sync.Mutex
	server   *Server
	shutdown bool
}

// NewAPIServer creates a new APIServer wired to the given Client.
func NewAPIServer(client *ftsq.Client) *APIServer {
	return &APIServer{client: client}
}

// mountRoutes wires up the health check and all v1 routes.
func (a *APIServer) mountRoutes(router chi.Router) {
	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		middleware.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(chimiddleware.Timeout(30 * time.Second))
		r.Mount("/tables", v1.NewTablesRouter(a.client).Routes())
		r.Mount("/capabilities", v1.NewCapabilitiesRouter(a.client).Routes())
	})
}

// ListenAndServe starts the HTTP server on the given address and blocks
// until it is shut down. It returns nil at once if Shutdown already ran.
func (a *APIServer) ListenAndServe(addr string) error {
	server := NewServer(addr, a.client.Logger())
	a.mountRoutes(server.Router())

	a.mu.Lock()
	if a.shutdown {
		a.mu.Unlock()
		return nil
	}
	a.server = &server
	a.mu.Unlock()

	return server.Start()
}

// Shutdown gracefully shuts down the server.
func (a *APIServer) Shutdown(ctx context.Context) error {
	a.mu.Lock()
	a.shutdown = true
	server := a.server
	a.mu.Unlock()

	if server == nil {
		return nil
	}
	return server.Shutdown(ctx)
}

// Handler returns the fully wired router for use with custom servers
// and tests.
func (a *APIServer) Handler() http.Handler {
	server := NewServer("", a.client.Logger())
	a.mountRoutes(server.Router())
	return server.Router()
}
