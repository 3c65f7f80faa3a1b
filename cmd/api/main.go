package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/pickwise/pickwise-backend/internal/adapters/cache"
	"github.com/pickwise/pickwise-backend/internal/adapters/database"
	"github.com/pickwise/pickwise-backend/internal/adapters/engine"
	"github.com/pickwise/pickwise-backend/internal/adapters/identity"
	"github.com/pickwise/pickwise-backend/internal/api/handlers"
	"github.com/pickwise/pickwise-backend/internal/api/routes"
	"github.com/pickwise/pickwise-backend/internal/application/services"
	"github.com/pickwise/pickwise-backend/internal/domain/providers"
	"github.com/pickwise/pickwise-backend/internal/infrastructure/clients/engineapi"
	"github.com/pickwise/pickwise-backend/internal/infrastructure/clients/postgres"
	"github.com/pickwise/pickwise-backend/internal/infrastructure/clients/redis"
	"github.com/pickwise/pickwise-backend/internal/infrastructure/observability"
	"github.com/pickwise/pickwise-backend/pkg/config"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	observability.InitLogger(cfg.OTEL.ServiceName, os.Getenv("APP_ENV"))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(
			ctx,
			cfg.OTEL.ServiceName,
			cfg.OTEL.ServiceVersion,
			cfg.OTEL.Endpoint,
		)
		if err != nil {
			log.Warn().Err(err).Msg("failed to set up OpenTelemetry")
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					log.Error().Err(err).Msg("error shutting down OpenTelemetry")
				}
			}()
			log.Info().Msg("OpenTelemetry initialized")
		}
	}

	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize metrics")
	}

	// Initialize database client
	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize PostgreSQL client")
	}
	defer pgClient.Close()
	log.Info().Msg("PostgreSQL client initialized")

	// Initialize Redis client. The application works without it; rate limiting
	// falls back to an in-process limiter.
	var cacheProvider providers.CacheProvider
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		log.Warn().Err(err).Msg("failed to initialize Redis client, continuing without cache")
	} else {
		defer redisClient.Close()
		cacheProvider = cache.NewRedisAdapter(redisClient)
		log.Info().Msg("Redis client initialized")
	}

	// Initialize engine client
	engineClient, err := engineapi.NewClient(&cfg.Engine)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize engine client")
	}

	// Initialize adapters
	sessionAdapter := database.NewSessionAdapter(pgClient)
	historyAdapter := database.NewHistoryAdapter(pgClient)
	profileAdapter := database.NewProfileAdapter(pgClient)
	questionAdapter := engine.NewQuestionAdapter(engineClient)
	searchAdapter := engine.NewSearchAdapter(engineClient)
	identityVerifier := identity.NewHTTPVerifier(&cfg.Identity)
	if cfg.Identity.URL == "" {
		log.Warn().Msg("IDENTITY_URL is not set; requests will run with degraded anonymous identities")
	}

	// Initialize services
	tokenService := services.NewTokenService(identityVerifier)
	sessionService := services.NewSessionService(questionAdapter, sessionAdapter, cfg.Session)
	historyService := services.NewHistoryService(historyAdapter, cfg.History.Cap)
	profileService := services.NewProfileService(profileAdapter)
	searchService := services.NewSearchService(searchAdapter, sessionAdapter, profileAdapter, historyService, metrics)

	// Initialize handlers
	sessionHandler := handlers.NewSessionHandler(sessionService, searchService, tokenService, cacheProvider, metrics)
	historyHandler := handlers.NewHistoryHandler(historyService, tokenService)
	profileHandler := handlers.NewProfileHandler(profileService, tokenService)

	// Set up router
	router := routes.NewRouter(sessionHandler, historyHandler, profileHandler, metrics)
	handler := router.SetupRoutes()

	// Create HTTP server
	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info().Str("addr", serverAddr).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("server shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("error during server shutdown")
	}

	log.Info().Msg("server stopped")
}
