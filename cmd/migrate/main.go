package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"

	"github.com/JeanneDioso/storefront/internal/config"
	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
)

// Applies pending schema migrations, then exits. Run before starting the API.
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		logger.Error("failed to open database", slog.Any("error", err))
		os.Exit(1)
	}
	defer db.Close()

	dir := "migrations"
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}

	if err := goose.UpContext(context.Background(), db, dir); err != nil {
		logger.Error("migration failed", slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("migrations applied")
}
