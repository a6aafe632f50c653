package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kavia-common/gym-backend/internal/auth"
	"github.com/kavia-common/gym-backend/internal/config"
	"github.com/kavia-common/gym-backend/internal/database"
	"github.com/kavia-common/gym-backend/internal/models"
	"github.com/kavia-common/gym-backend/internal/repository"
	"github.com/kavia-common/gym-backend/internal/server"
	"github.com/kavia-common/gym-backend/internal/ws"
)

func main() {
	ensureEnvFile()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	db, err := database.Open(context.Background(), cfg.Database)
	if err != nil {
		logger.Error("failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() {
		db.Close()
	}()

	if err := database.Migrate(context.Background(), db); err != nil {
		logger.Error("failed to apply schema", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := seedAdmin(context.Background(), cfg.Admin, repository.NewUserRepository(db), logger); err != nil {
		logger.Error("failed to seed admin user", slog.String("error", err.Error()))
		os.Exit(1)
	}

	hub := ws.NewHub()
	e := server.New(cfg, logger, db, hub)
	httpServer := server.NewHTTPServer(cfg.Server, e)

	go func() {
		if err := e.StartServer(httpServer); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server failed", slog.String("error", err.Error()))
		}
	}()

	logger.Info("server started", slog.String("addr", httpServer.Addr))

	shutdownSignal := make(chan os.Signal, 1)
	signal.Notify(shutdownSignal, syscall.SIGINT, syscall.SIGTERM)
	<-shutdownSignal

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	hub.CloseAll()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", slog.String("error", err.Error()))
	}
}

// seedAdmin создает администратора из переменных окружения, если его еще нет.
func seedAdmin(ctx context.Context, cfg config.AdminConfig, users *repository.UserRepository, logger *slog.Logger) error {
	if cfg.Email == "" {
		return nil
	}

	passwordHash, err := auth.HashPassword(cfg.Password)
	if err != nil {
		return err
	}

	_, err = users.Create(ctx, cfg.Email, passwordHash, "Administrator", models.RoleAdmin)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			logger.Info("admin user already exists", slog.String("email", cfg.Email))
			return nil
		}
		return err
	}

	logger.Info("admin user created", slog.String("email", cfg.Email))
	return nil
}

func ensureEnvFile() {
	if os.Getenv("ENV_FILE") != "" {
		return
	}

	if _, err := os.Stat(".env"); err == nil {
		_ = os.Setenv("ENV_FILE", ".env")
		return
	}

	if _, err := os.Stat("../.env"); err == nil {
		_ = os.Setenv("ENV_FILE", "../.env")
	}
}
