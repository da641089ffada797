// Package web provides the JSON HTTP API for the assessment engine. The
// admin UI is an external caller of this API; no markup is rendered here.
package web

import (
	"database/sql"
	"fmt"
	"net/http"

	"github.com/jsteiner/grundwerk/internal/logging"
	"github.com/jsteiner/grundwerk/internal/notary"
	"github.com/jsteiner/grundwerk/internal/phase"
	"github.com/jsteiner/grundwerk/internal/property"
)

// Server is the API HTTP server.
type Server struct {
	props  *property.Repository
	phases *phase.Repository
	appts  *notary.Service
	mux    *http.ServeMux
}

// NewServer creates an API server with the given database.
func NewServer(db *sql.DB) *Server {
	s := &Server{
		props:  property.NewRepository(db),
		phases: phase.NewRepository(db),
		appts:  notary.NewService(notary.NewRepository(db)),
		mux:    http.NewServeMux(),
	}

	s.mux.HandleFunc("/health", s.handleHealth)
	s.mux.HandleFunc("/api/properties", s.handleProperties)
	s.mux.HandleFunc("/api/properties/", s.handlePropertyRoute)
	s.mux.HandleFunc("/api/estimate", s.handleEstimate)

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	logging.RequestLogger(s.mux).ServeHTTP(w, r)
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe(port int) error {
	addr := fmt.Sprintf(":%d", port)
	fmt.Printf("Starting API on http://localhost%s\n", addr)
	return http.ListenAndServe(addr, s)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	apiJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
}
