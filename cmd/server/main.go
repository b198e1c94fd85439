// Package main provides the entry point for the promptops API server.
package main

import (
	"log/slog"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	"github.com/promptops-dev/promptops/domain/deployments"
	"github.com/promptops-dev/promptops/domain/health"
	"github.com/promptops-dev/promptops/domain/prompts"
	"github.com/promptops-dev/promptops/domain/versions"
	"github.com/promptops-dev/promptops/internal/cache"
	"github.com/promptops-dev/promptops/internal/config"
	"github.com/promptops-dev/promptops/internal/database"
	"github.com/promptops-dev/promptops/internal/server"
	"github.com/promptops-dev/promptops/pkg/logger"
)

func main() {
	// Load .env files if present (for local development)
	// Load() won't overwrite existing vars, Overload() will
	_ = godotenv.Load(".env")
	_ = godotenv.Overload(".env.local")

	fx.New(
		fx.WithLogger(func(log *slog.Logger) fxevent.Logger {
			return &fxevent.SlogLogger{Logger: log}
		}),

		// Infrastructure modules
		logger.Module,
		config.Module,
		database.Module,
		cache.Module,
		server.Module,

		// Domain modules
		health.Module,
		versions.Module,
		deployments.Module,
		prompts.Module,
	).Run()
}
