package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/aruna-2201/zidio-prj/internal/config"
	"github.com/aruna-2201/zidio-prj/internal/server"
	"github.com/aruna-2201/zidio-prj/internal/storage/postgres"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	loadLocalEnv(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("load config", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	store, err := postgres.NewStore(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("init database", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	if err := seedRoles(ctx, store, logger); err != nil {
		logger.Error("seed roles", "error", err)
		os.Exit(1)
	}

	srv := server.New(cfg, store, logger)

	go func() {
		logger.Info("job portal backend listening", "addr", cfg.HTTPAddress())
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server error", "error", err)
			os.Exit(1)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.Error("graceful shutdown error", "error", err)
	}
}

// seedRoles inserts the fixed role set once, on first boot against an empty
// database. Roles are immutable reference data afterwards.
func seedRoles(ctx context.Context, store *postgres.Store, logger *slog.Logger) error {
	count, err := store.CountRoles(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	if err := store.SeedDefaultRoles(ctx); err != nil {
		return err
	}
	logger.Info("seeded default roles")
	return nil
}

func loadLocalEnv(logger *slog.Logger) {
	if err := godotenv.Load(); err != nil {
		logger.Info("no .env file found; relying on existing environment")
	}
}
