// Command migrate applies the database schema without starting the server.
// Useful in deploy pipelines where migrations run before the new version
// takes traffic.
package main

import (
	"flag"
	"os"

	"github.com/farmstock/backend/internal/infrastructure/config"
	"github.com/farmstock/backend/internal/infrastructure/logger"
	"github.com/farmstock/backend/internal/infrastructure/persistence"
	"go.uber.org/zap"
)

func main() {
	var logLevel string
	flag.StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	flag.Parse()

	log := logger.New(logger.Config{
		Level:  logLevel,
		Format: "console",
		Output: "stdout",
	})
	defer logger.Sync(log)

	cfg, err := config.Load()
	if err != nil {
		log.Error("failed to load configuration", zap.Error(err))
		os.Exit(1)
	}

	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		log.Error("failed to connect to database", zap.Error(err))
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Error("migration failed", zap.Error(err))
		os.Exit(1)
	}

	log.Info("migrations applied",
		zap.String("host", cfg.Database.Host),
		zap.String("database", cfg.Database.DBName),
	)
}
