package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"campaigner/internal/agents"
	"campaigner/internal/auth"
	"campaigner/internal/config"
	"campaigner/internal/handler"
	"campaigner/internal/middleware"
	"campaigner/internal/repository"
	"campaigner/internal/service/agent"
	"campaigner/internal/service/studio"
	"campaigner/internal/service/studio/history"
	"campaigner/internal/service/studio/render"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Setup structured logging
	logger, closeLog, err := config.NewLogger(cfg, "server")
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	defer closeLog()
	slog.SetDefault(logger) // Set as default logger

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"agent_provider", cfg.AgentProvider,
		"history_backend", cfg.HistoryBackend,
	)

	ctx := context.Background()

	// Agent roster (embedded YAML) with optional id overrides
	registry, err := agents.NewRegistry()
	if err != nil {
		log.Fatalf("Failed to load agent roster: %v", err)
	}
	registry.Override(cfg.ContentAgentID, cfg.ImageAgentID)
	logger.Info("agent roster loaded",
		"content_agent", registry.ContentAgent().ID,
		"image_agent", registry.ImageAgent().ID,
		"agents", len(registry.List()),
	)

	// History slot and store
	slot, closeSlot, err := repository.OpenSlot(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("Failed to open history slot: %v", err)
	}
	defer closeSlot()

	historyStore := history.NewStore(slot, cfg.HistoryKey, cfg.HistoryCap, logger)
	historyStore.Load(ctx)
	logger.Info("history loaded", "entries", historyStore.Len())

	// Agent transport
	transport, err := agent.NewTransport(cfg, registry, logger)
	if err != nil {
		log.Fatalf("Failed to create agent transport: %v", err)
	}

	// Workflow
	workflow := studio.NewService(transport, historyStore, registry, studio.Config{
		ContentAgentID: registry.ContentAgent().ID,
		ImageAgentID:   registry.ImageAgent().ID,
		ClearDelay:     cfg.StatusClearDelay,
	}, logger)

	// Optional bearer auth
	var verifier auth.TokenVerifier
	if cfg.AuthJWKSURL != "" {
		jwtVerifier, err := auth.NewJWTVerifier(cfg.AuthJWKSURL, cfg.AuthAudience, logger)
		if err != nil {
			log.Fatalf("Failed to create JWT verifier: %v", err)
		}
		defer jwtVerifier.Close()
		verifier = jwtVerifier
	} else {
		logger.Warn("AUTH_JWKS_URL not set, API is unauthenticated")
	}

	// Routes
	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, handler.Handlers{
		Studio:  handler.NewStudioHandler(workflow, render.NewMarkdownRenderer(), logger),
		History: handler.NewHistoryHandler(workflow, logger),
		Agents:  handler.NewAgentsHandler(registry, workflow, logger),
	})

	// Build middleware chain
	var h http.Handler = mux

	// Apply middleware in reverse order (they wrap each other)
	// Order: CORS → Recovery → RequestLogger → Auth → Routes
	h = middleware.Auth(verifier, logger)(h)
	h = middleware.RequestLogger(logger)(h)
	h = middleware.Recovery(logger)(h)

	// CORS - Must be before auth to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
	})
	h = corsHandler.Handler(h)

	// Create HTTP server. Phase calls block for the agent's whole run, so the
	// write timeout sits above the transport deadline.
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      h,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.AgentTimeout + 30*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
}
