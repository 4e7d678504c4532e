// Package api exposes the trail catalog and plan generation over HTTP.
package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"hikesim/internal/plan"
	"hikesim/internal/trail"
)

// Server holds the repositories the handlers need.
type Server struct {
	trails *trail.Repository
	plans  *plan.Repository
}

// NewServer creates a Server over the given repositories.
func NewServer(trails *trail.Repository, plans *plan.Repository) *Server {
	return &Server{trails: trails, plans: plans}
}

// Handler builds the routed handler with CORS, request IDs, and request
// logging applied in that order.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/health", s.handleHealth).Methods("GET")
	r.HandleFunc("/trails", s.handleListTrails).Methods("GET")
	r.HandleFunc("/trails/{id}", s.handleGetTrail).Methods("GET")
	r.HandleFunc("/plans/generate", s.handleGeneratePlan).Methods("POST")

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	return c.Handler(requestIDMiddleware(loggingMiddleware(r)))
}
