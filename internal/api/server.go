// Package api provides the HTTP API server and handlers for LibraSys.
package api

import (
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/librasys/librasys-server/internal/service"
	"github.com/librasys/librasys-server/internal/store"
)

// Services groups the business logic services used by the API server.
type Services struct {
	Auth      *service.AuthService
	Catalog   *service.CatalogService
	Account   *service.AccountService
	Stats     *service.StatsService
	Assistant *service.AssistantService
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	store    *store.Store
	services *Services
	router   *chi.Mux
	api      huma.API
	logger   *slog.Logger
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(st *store.Store, services *Services, serverName string, logger *slog.Logger) *Server {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))

	// The catalog UI is a browser app served from its own origin.
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	humaConfig := huma.DefaultConfig(serverName, "1.0.0")
	humaConfig.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {
			Type:         "http",
			Scheme:       "bearer",
			BearerFormat: "PASETO",
		},
	}

	api := humachi.New(router, humaConfig)
	RegisterErrorHandler()

	s := &Server{
		store:    st,
		services: services,
		router:   router,
		api:      api,
		logger:   logger,
	}

	s.registerHealthRoutes()
	s.registerAuthRoutes()
	s.registerCatalogRoutes()
	s.registerAccountRoutes()
	s.registerStatsRoutes()
	s.registerAssistantRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
