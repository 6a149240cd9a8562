package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"chatlink_backend/database"
	"chatlink_backend/internal/config"
	"chatlink_backend/internal/logger"
	"chatlink_backend/internal/routes"
	"chatlink_backend/internal/services"
	"chatlink_backend/internal/storage"
	"chatlink_backend/pkg/apperrors"
)

const shutdownTimeout = 10 * time.Second

// Run boots the application: config, logging, DB, migrations, router,
// then serves until SIGINT/SIGTERM and drains in-flight requests.
func Run() {
	config.LoadConfig()
	cfg := config.GetConfig()

	logger.Init(cfg.Server.Env)
	apperrors.SetDebug(cfg.Server.Env != "production")

	// TranslateError turns driver-specific duplicate key failures into
	// gorm.ErrDuplicatedKey, which the contact pair index relies on.
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		logger.Fatal("failed to connect to database", "error", err)
	}

	if err := database.Migrate(db); err != nil {
		logger.Fatal("failed to run migrations", "error", err)
	}

	store, err := storage.NewStorage(storage.Config{
		BasePath: cfg.Storage.BasePath,
		BaseURL:  cfg.Storage.BaseURL,
	})
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}

	svc := services.NewServiceContainer(store)
	router := routes.SetupRouter(db, svc)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("server listening", "addr", addr, "env", cfg.Server.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
}
