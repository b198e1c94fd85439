// Package main runs database migrations against the configured PostgreSQL
// instance. Usage: migrate [-down | -status]
package main

import (
	"context"
	"database/sql"
	"flag"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"go.uber.org/zap"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/promptops-dev/promptops/internal/config"
	"github.com/promptops-dev/promptops/internal/migrate"
)

func main() {
	down := flag.Bool("down", false, "roll back the last migration instead of migrating up")
	status := flag.Bool("status", false, "print migration status and exit")
	flag.Parse()

	_ = godotenv.Load(".env")
	_ = godotenv.Overload(".env.local")

	logger, err := zap.NewProduction()
	if err != nil {
		os.Exit(1)
	}
	defer logger.Sync()

	cfg, err := config.NewConfig(slog.Default())
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}

	sqldb, err := sql.Open("pgx", cfg.Database.DSN())
	if err != nil {
		logger.Fatal("failed to open database", zap.Error(err))
	}
	db := bun.NewDB(sqldb, pgdialect.New())
	defer db.Close()

	migrator := migrate.NewMigrator(db, logger)
	ctx := context.Background()

	switch {
	case *status:
		err = migrator.Status(ctx)
	case *down:
		err = migrator.Down(ctx)
	default:
		err = migrator.Up(ctx)
	}
	if err != nil {
		logger.Fatal("migration failed", zap.Error(err))
	}
}
