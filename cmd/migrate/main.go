package main

import (
	"errors"

	"codeberg.org/actas/server/internal/config"
	"codeberg.org/actas/server/internal/logger"
	"codeberg.org/actas/server/internal/storage"
)

func main() {
	flags := config.ParseMigrateFlags()

	dsn, err := config.LoadDatabaseURL()
	if err != nil {
		logger.Fatal("failed to load configuration", "error", err)
	}

	logger.Info("running migrations", "direction", flags.Direction, "steps", flags.Steps)

	if err := storage.Migrate(dsn, flags.Direction, flags.Steps); err != nil {
		if errors.Is(err, storage.ErrNoChange) {
			logger.Info("database already at target version")
			return
		}

		logger.Fatal("migration failed", "error", err)
	}

	logger.Info("migrations applied")
}
