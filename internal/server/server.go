// Package server provides the HTTP server and routing for the advisor API.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/aristath/advisor/internal/clients/marketdata"
	"github.com/aristath/advisor/internal/config"
	"github.com/aristath/advisor/internal/domain"
	advicehandlers "github.com/aristath/advisor/internal/modules/advice/handlers"
	"github.com/aristath/advisor/internal/modules/goals"
	goalshandlers "github.com/aristath/advisor/internal/modules/goals/handlers"
	insightshandlers "github.com/aristath/advisor/internal/modules/insights/handlers"
	markethandlers "github.com/aristath/advisor/internal/modules/market/handlers"
	"github.com/aristath/advisor/internal/modules/portfolio"
	portfoliohandlers "github.com/aristath/advisor/internal/modules/portfolio/handlers"
	"github.com/aristath/advisor/internal/modules/profile"
	profilehandlers "github.com/aristath/advisor/internal/modules/profile/handlers"
	"github.com/aristath/advisor/internal/modules/recommendations"
	recommendationshandlers "github.com/aristath/advisor/internal/modules/recommendations/handlers"
)

// Config holds server configuration
type Config struct {
	Log     zerolog.Logger
	Cfg     *config.Config
	Port    int
	DevMode bool

	ProfileService    *profile.Service
	HealthScorer      *profile.HealthScorer
	GoalPlanner       *goals.Planner
	PortfolioAnalyzer *portfolio.Analyzer
	Engine            *recommendations.Engine
	Market            *marketdata.Client
	Advice            domain.AdviceProvider
}

// Server represents the HTTP server
type Server struct {
	router         *chi.Mux
	server         *http.Server
	log            zerolog.Logger
	cfg            Config
	systemHandlers *SystemHandlers
}

// New creates a new HTTP server
func New(cfg Config) *Server {
	s := &Server{
		router:         chi.NewRouter(),
		log:            cfg.Log.With().Str("component", "server").Logger(),
		cfg:            cfg,
		systemHandlers: NewSystemHandlers(cfg.Log),
	}

	s.setupMiddleware(cfg.DevMode)
	s.setupRoutes()

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Router exposes the configured routes, primarily for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// setupMiddleware configures middleware
func (s *Server) setupMiddleware(devMode bool) {
	// Recovery from panics
	s.router.Use(middleware.Recoverer)

	// Request ID
	s.router.Use(middleware.RequestID)

	// Real IP
	s.router.Use(middleware.RealIP)

	// Logging
	s.router.Use(s.loggingMiddleware)

	// CORS
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Compress responses
	if !devMode {
		s.router.Use(middleware.Compress(5))
	}
}

// setupRoutes configures all routes
func (s *Server) setupRoutes() {
	// Health check at the root for load balancers
	s.router.Get("/health", s.handleHealth)

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)

		r.Route("/system", func(r chi.Router) {
			r.Get("/info", s.systemHandlers.HandleSystemInfo)
		})

		profileHandler := profilehandlers.NewHandler(s.cfg.ProfileService, s.cfg.HealthScorer, s.log)
		profileHandler.RegisterRoutes(r)

		insightsHandler := insightshandlers.NewHandler(s.log)
		insightsHandler.RegisterRoutes(r)

		portfolioHandler := portfoliohandlers.NewHandler(s.cfg.PortfolioAnalyzer, s.log)
		portfolioHandler.RegisterRoutes(r)

		goalsHandler := goalshandlers.NewHandler(s.cfg.GoalPlanner, s.log)
		goalsHandler.RegisterRoutes(r)

		recommendationsHandler := recommendationshandlers.NewHandler(s.cfg.Engine, s.log)
		recommendationsHandler.RegisterRoutes(r)

		marketHandler := markethandlers.NewHandler(s.cfg.Market, s.log)
		marketHandler.RegisterRoutes(r)

		adviceHandler := advicehandlers.NewHandler(s.cfg.Advice, s.log)
		adviceHandler.RegisterRoutes(r)
	})
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.log.Info().Int("port", s.cfg.Port).Msg("Starting HTTP server")
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}

// loggingMiddleware logs HTTP requests
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("duration_ms", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("HTTP request")
	})
}
