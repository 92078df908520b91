package main

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"messmate/internal/api"
	"messmate/internal/auth"
	"messmate/internal/config"
	"messmate/internal/service"
	"messmate/internal/storage/sqlite"
	"messmate/pkg/logging"
)

func main() {
	// Missing .env is fine, real deployments set env directly.
	_ = godotenv.Load()

	logging.Setup()
	logger := slog.Default()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		logger.Error("failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	logger.Info("storage initialized", "database", cfg.DBPath)

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)
	authenticator := auth.NewPasswordAuthenticator(store)

	server := api.NewServer(jwtManager, api.Services{
		Auth:        service.NewAuthService(authenticator, jwtManager, store, logger),
		Mess:        service.NewMessService(store, logger),
		Meals:       service.NewMealService(store, logger),
		Ledger:      service.NewLedgerService(store, logger),
		Members:     service.NewMemberService(store, logger),
		Assignments: service.NewAssignmentService(store, logger),
	}, logger)

	logger.Info("server starting", "addr", cfg.Addr())
	if err := server.Start(cfg.Addr()); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
