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
	"github.com/tickoff/tickoff-be/internal/api"
	"github.com/tickoff/tickoff-be/internal/auth"
	"github.com/tickoff/tickoff-be/internal/backup"
	"github.com/tickoff/tickoff-be/internal/config"
	"github.com/tickoff/tickoff-be/internal/logger"
	"github.com/tickoff/tickoff-be/internal/services"
	"github.com/tickoff/tickoff-be/internal/storage"
	"github.com/tickoff/tickoff-be/internal/websocket"
)

func main() {
	logger.Init()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// A missing signing secret is a misconfiguration, not a runtime
	// error; refuse to start.
	tokens, err := auth.NewTokenManager(cfg.JWTSecret)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize token manager")
	}

	// Set up the store
	var store storage.Store
	switch cfg.StoreBackend {
	case "json":
		store, err = storage.NewJSONFileStore(cfg.DatabasePath)
	case "sqlite":
		store, err = storage.NewSQLiteStore(cfg.DatabasePath)
	default:
		log.Fatal().Str("backend", cfg.StoreBackend).Msg("Unknown store backend")
	}
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize store")
	}
	defer store.Close()

	// Set up the task event hub
	hub := websocket.NewHub()
	go hub.Run()

	// Set up services
	userService := services.NewUserService(store)
	taskService := services.NewTaskService(store, hub)

	// Periodic snapshots only make sense for the file-backed store.
	var backupSvc *backup.Service
	if cfg.StoreBackend == "json" {
		backupSvc = backup.NewService(cfg.DatabasePath, cfg.BackupPath, cfg.BackupKeep)
		if err := backupSvc.Start(cfg.BackupSchedule); err != nil {
			log.Fatal().Err(err).Msg("Failed to start backup scheduler")
		}
	}

	// Set up router
	router := api.NewRouter(tokens, hub, userService, taskService)

	// Set up server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.ServerPort),
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		log.Info().Int("port", cfg.ServerPort).Msg("Server starting")
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("ListenAndServe()")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	if backupSvc != nil {
		backupSvc.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exiting")
}
