// Package main is the entry point for the advisor service, a personal
// finance dashboard backend. It scores financial health, analyzes
// portfolios, plans goals, recommends products, serves market data, and
// answers questions through a conversational advisor.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aristath/advisor/internal/clientdata"
	"github.com/aristath/advisor/internal/clients/advisor"
	"github.com/aristath/advisor/internal/clients/marketdata"
	"github.com/aristath/advisor/internal/config"
	"github.com/aristath/advisor/internal/database"
	"github.com/aristath/advisor/internal/modules/goals"
	"github.com/aristath/advisor/internal/modules/portfolio"
	"github.com/aristath/advisor/internal/modules/profile"
	"github.com/aristath/advisor/internal/modules/recommendations"
	"github.com/aristath/advisor/internal/scheduler"
	"github.com/aristath/advisor/internal/server"
	"github.com/aristath/advisor/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fallbackLog := logger.New(logger.Config{
			Level:  "info",
			Pretty: true,
		})
		fallbackLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: true,
	})

	log.Info().Msg("Starting advisor service")

	// Catalog database: reference data, reseeded on every start.
	catalogDB, err := database.New(database.Config{
		Path:    cfg.CatalogDBPath(),
		Profile: database.ProfileStandard,
		Name:    "catalog",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open catalog database")
	}
	defer catalogDB.Close()

	// Cache database: ephemeral market data with stale fallback.
	cacheDB, err := database.New(database.Config{
		Path:    cfg.CacheDBPath(),
		Profile: database.ProfileCache,
		Name:    "cache",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open cache database")
	}
	defer cacheDB.Close()

	catalog := recommendations.NewCatalogRepository(catalogDB.Conn())
	if err := catalog.InitSchema(); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize catalog schema")
	}
	if err := catalog.Seed(); err != nil {
		log.Fatal().Err(err).Msg("Failed to seed product catalog")
	}

	cacheRepo := clientdata.NewRepository(cacheDB.Conn())
	if err := cacheRepo.InitSchema(); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize cache schema")
	}

	market := marketdata.NewClient(cfg.MarketDataBaseURL, cacheRepo, log)

	if cfg.AnthropicAPIKey == "" {
		log.Warn().Msg("ANTHROPIC_API_KEY not configured - advice requests will return errors")
	}
	advice := advisor.NewClient(cfg.AnthropicAPIKey, cfg.AnthropicModel, log)

	srv := server.New(server.Config{
		Log:               log,
		Cfg:               cfg,
		Port:              cfg.Port,
		DevMode:           cfg.DevMode,
		ProfileService:    profile.NewService(),
		HealthScorer:      profile.NewHealthScorer(),
		GoalPlanner:       goals.NewPlanner(log),
		PortfolioAnalyzer: portfolio.NewAnalyzer(market, log),
		Engine:            recommendations.NewEngine(catalog, log),
		Market:            market,
		Advice:            advice,
	})

	// Background jobs: pre-warm the market caches and purge long-expired
	// entries once a day.
	sched := scheduler.New(log)
	refreshJob := scheduler.NewMarketRefreshJob(market, log)
	if err := sched.AddJob(cfg.MarketRefreshSchedule, refreshJob); err != nil {
		log.Fatal().Err(err).Str("schedule", cfg.MarketRefreshSchedule).Msg("Failed to register market refresh job")
	}
	if err := sched.AddJob("@daily", scheduler.NewCachePurgeJob(cacheRepo, log)); err != nil {
		log.Fatal().Err(err).Msg("Failed to register cache purge job")
	}
	sched.Start()
	defer sched.Stop()

	// Warm the caches immediately so the first dashboard load is fast.
	go func() {
		if err := sched.RunNow(refreshJob); err != nil {
			log.Warn().Err(err).Msg("Initial market cache warm-up failed")
		}
	}()

	go func() {
		if err := srv.Start(); err != nil {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	log.Info().Int("port", cfg.Port).Msg("Server started successfully")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}
