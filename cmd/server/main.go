package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"manachat.ai/manachat/internal/api"
	"manachat.ai/manachat/internal/app"
	"manachat.ai/manachat/internal/auth"
	"manachat.ai/manachat/internal/catalog"
	"manachat.ai/manachat/internal/config"
	"manachat.ai/manachat/internal/core"
	"manachat.ai/manachat/internal/store"
)

func main() {
	// Load configuration
	config.LoadConfig()
	setupLogger(config.AppConfig.LogLevel)

	log.Info().
		Str("model", config.AppConfig.ChatModel).
		Str("db", config.AppConfig.DatabaseURL).
		Msg("starting manachat")

	// Initialize the record store
	records, err := store.NewRecordStore(config.AppConfig.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize record store")
	}
	defer records.Close()

	// Initialize LLM service
	llmService, err := core.NewLLMService(context.Background())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize LLM service")
	}
	defer llmService.Close()

	// Wire the state core: catalog, chat engine, view controller
	personaCatalog := catalog.NewCatalog(records)
	chatEngine := core.NewChatEngine(records, personaCatalog, llmService)
	controller := app.NewController(records, personaCatalog, chatEngine)
	gate := auth.NewGate(config.AppConfig.AdminEmail)

	// Initialize API Handler and Router
	apiHandler := api.NewAPIHandler(controller, personaCatalog, chatEngine, gate)
	router := api.NewRouter(apiHandler)

	// Start HTTP server
	serverAddr := fmt.Sprintf(":%s", config.AppConfig.HTTPPort)

	srv := &http.Server{
		Addr:         serverAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 0, // Streaming sockets stay open as long as the exchange runs
		IdleTimeout:  120 * time.Second,
	}

	// Graceful shutdown handling
	go func() {
		log.Info().Str("addr", serverAddr).Msg("starting server, press Ctrl+C to quit")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Str("addr", serverAddr).Msg("could not listen")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exiting gracefully")
}

func setupLogger(level string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	switch strings.ToLower(level) {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}
