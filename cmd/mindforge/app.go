package main

import (
	"context"
	"net/http"
	"os"
	"strings"

	"github.com/PeuAlmeidaDev/mindforge-backend/internal/config"
	"github.com/PeuAlmeidaDev/mindforge-backend/internal/constants"
	"github.com/PeuAlmeidaDev/mindforge-backend/internal/logging"
	"github.com/PeuAlmeidaDev/mindforge-backend/internal/telemetry"

	"github.com/rs/cors"
)

func loadConfigOrExit(path string) *config.LoadedConfig {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		logging.Fatal("Missing or invalid game configuration", err, logging.Fields{
			"config_path": path,
			"hint":        "create a mindforge_config.json with 'house_list', 'skill_list' and 'enemy_list' arrays and optional keys: new_user, server.address",
		})
	}
	return cfg
}

// setupTracing wires the OTLP exporter when an endpoint is configured. The
// server runs fine without tracing, so failures only warn.
func setupTracing() func(context.Context) error {
	if os.Getenv(constants.EnvOTLPEndpoint) == "" {
		return func(context.Context) error { return nil }
	}
	shutdown, err := telemetry.Setup(context.Background())
	if err != nil {
		logging.Error("Failed to set up tracing, continuing without it", err, nil)
		return func(context.Context) error { return nil }
	}
	return shutdown
}

// corsHandler wraps the router with CORS rules. Origins come from the
// ALLOWED_ORIGINS env var (comma-separated); unset means any origin, which
// suits local development.
func corsHandler(h http.Handler) http.Handler {
	origins := []string{"*"}
	if env := os.Getenv(constants.EnvAllowedOrigins); env != "" {
		origins = strings.Split(env, ",")
		for i := range origins {
			origins[i] = strings.TrimSpace(origins[i])
		}
	}
	c := cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})
	return c.Handler(h)
}
