// Package rest wires the HTTP routes for the digest API.
package rest

import (
	"net/http"

	"newsagg-backend/application/services"
	"newsagg-backend/interfaces/http/rest/handlers"
	"newsagg-backend/interfaces/http/rest/middleware"
	"newsagg-backend/pkg/auth"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// Router creates and configures the HTTP router
type Router struct {
	digestService *services.DigestService
	validator     *auth.JWTValidator
	enableCORS    bool
	logger        *zap.Logger
}

// NewRouter creates a new router instance
func NewRouter(
	digestService *services.DigestService,
	validator *auth.JWTValidator,
	enableCORS bool,
	logger *zap.Logger,
) *Router {
	return &Router{
		digestService: digestService,
		validator:     validator,
		enableCORS:    enableCORS,
		logger:        logger,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() *chi.Mux {
	router := chi.NewRouter()

	// Global middleware
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Logger(rt.logger))

	if rt.enableCORS {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"http://localhost:3000", "https://*.newsagg.app"},
			AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	// Health check
	router.Get("/health", rt.healthCheck)

	// API routes
	router.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Authenticate(rt.validator, rt.logger))

		r.Route("/digests", func(r chi.Router) {
			digestHandler := handlers.NewDigestHandler(rt.digestService, rt.logger)
			r.Post("/", digestHandler.StoreDigest)
			r.Get("/", digestHandler.ListDigests)
			r.Get("/{digestID}", digestHandler.GetDigest)
			r.Delete("/{digestID}", digestHandler.DeleteDigest)
		})
	})

	return router
}

// healthCheck reports liveness only; it does not touch the backing stores.
func (rt *Router) healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
