package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mindflow/mindflow/internal/api"
	"github.com/mindflow/mindflow/internal/config"
	"github.com/mindflow/mindflow/internal/db"
	"github.com/mindflow/mindflow/internal/logger"
	"github.com/mindflow/mindflow/internal/reports"
	"github.com/mindflow/mindflow/internal/repository/sqlite"
	"github.com/mindflow/mindflow/internal/store"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration: %v", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	log.Info("===========================================")
	log.Info("MindFlow Server Starting")
	log.Info("===========================================")
	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("maze_word_target=%d", cfg.MazeWordTarget)
	log.Debug("memorize_seconds=%d", cfg.MemorizeSeconds)

	// Open database
	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	// Load templates
	log.Debug("loading templates")
	tmpl, err := api.LoadTemplates()
	if err != nil {
		log.Error("failed to load templates: %v", err)
		os.Exit(1)
	}
	log.Debug("templates loaded successfully")

	// Initialize repositories and services
	playerRepo := sqlite.NewPlayerRepository(database)
	testSessionRepo := sqlite.NewTestSessionRepository(database)
	gameSessionRepo := sqlite.NewGameSessionRepository(database)

	aggregator := store.New(playerRepo, testSessionRepo, gameSessionRepo,
		store.WithMazeWordTarget(cfg.MazeWordTarget),
		store.WithMemorizeDuration(time.Duration(cfg.MemorizeSeconds)*time.Second),
	)
	reportService := reports.NewService(playerRepo, testSessionRepo, gameSessionRepo)

	srv := &api.Server{
		Aggregator: aggregator,
		Reports:    reportService,
		Templates:  tmpl,
	}

	// Configure HTTP server
	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start HTTP server
	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	log.Info("===========================================")
	log.Info("MindFlow Server Stopped")
	log.Info("===========================================")
}
