package main

import (
	"context"
	"errors"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/PeuAlmeidaDev/mindforge-backend/internal/api"
	"github.com/PeuAlmeidaDev/mindforge-backend/internal/constants"
	"github.com/PeuAlmeidaDev/mindforge-backend/internal/engine"
	"github.com/PeuAlmeidaDev/mindforge-backend/internal/logging"
	"github.com/PeuAlmeidaDev/mindforge-backend/internal/storage"

	"github.com/joho/godotenv"
)

func main() {
	// .env is optional; deployments set the environment directly.
	_ = godotenv.Load()
	logging.Init(os.Getenv(constants.EnvLogLevel), os.Getenv(constants.EnvLogPretty) == "1")
	checkEnvVars([]string{constants.EnvSessionSecret})

	// Load game configuration file (required). Path may be provided via
	// GAME_CONFIG_PATH env var or defaults to ./mindforge_config.json in the
	// current working directory.
	configPath := os.Getenv(constants.EnvGameConfigPath)
	if configPath == "" {
		configPath = "./mindforge_config.json"
	}
	cfg := loadConfigOrExit(configPath)

	// Allow the DB path to be configured via DATABASE_PATH. Default to a
	// `data/` directory inside the backend module for local development.
	dbPath := os.Getenv(constants.EnvDatabasePath)
	if dbPath == "" {
		dbPath = "./data/mindforge.db"
	}
	db, err := storage.OpenAndMigrate(dbPath, cfg.Seed)
	if err != nil {
		logging.Fatal("Failed to initialize database", err, nil)
	}
	repo := storage.NewSQLiteRepository(db)

	shutdownTracing := setupTracing()

	// One locked random source feeds both battle spawning and the engine so
	// tests can swap in a scripted roller at a single seam.
	rolls := engine.NewRoller(rand.New(rand.NewSource(time.Now().UnixNano())))
	eng := engine.NewWithRoller(rolls)

	handler := api.NewGameHandler(repo, eng, rolls)
	authHandler := api.NewAuthHandler(repo, rolls, cfg.NewUser)

	router := buildRouter(repo, handler, authHandler)

	addr := cfg.ServerAddress
	if p := os.Getenv(constants.EnvPort); p != "" {
		addr = ":" + p
	}
	srv := &http.Server{
		Addr:    addr,
		Handler: corsHandler(router),
	}

	go func() {
		logging.Info("Server started", logging.Fields{constants.LogFieldAddr: addr})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal("Failed to start server", err, nil)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()
	stop()

	logging.Info("Shutting down", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.Error("Server shutdown failed", err, nil)
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		logging.Error("Tracing shutdown failed", err, nil)
	}
}

func checkEnvVars(vars []string) {
	for _, v := range vars {
		if os.Getenv(v) == "" {
			logging.Fatal("Required environment variable not set", nil, logging.Fields{"var": v})
		}
	}
}
