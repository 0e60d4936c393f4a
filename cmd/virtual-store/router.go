package main

import (
	"net/http"

	"github.com/gorilla/mux"
)

// setupRoutes configures the store routes.
func (s *server) setupRoutes() *mux.Router {
	router := mux.NewRouter()

	router.HandleFunc("/", s.homeHandler).Methods("GET")
	router.HandleFunc("/products", s.listProductsHandler).Methods("GET")
	router.HandleFunc("/buy/{productId:[0-9]+}", s.buyProductHandler).Methods("POST")
	router.Handle("/metrics", s.metricsHandler()).Methods("GET")

	// Health check endpoints
	router.HandleFunc("/health", s.healthHandler).Methods("GET")
	router.HandleFunc("/ready", s.readyHandler).Methods("GET")

	return router
}

// handler wraps the router in the middleware chain. Middleware sits outside
// the router so unmatched routes and 405s are timed and logged too.
func (s *server) handler() http.Handler {
	var h http.Handler = s.setupRoutes()
	h = s.rateLimitMiddleware(h)
	h = s.corsMiddleware(h)
	h = requestIDMiddleware(h)
	return s.timingMiddleware(h)
}
