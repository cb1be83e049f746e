// cmd/migrate/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"creator-wallet/internal/config"
	"creator-wallet/internal/util"
	"creator-wallet/pkg/db"
)

func main() {
	cmd := flag.String("cmd", "up", "migration command: up|down|status|version|redo|reset")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	util.InitLogger(cfg.LogLevel)
	logger := util.GetLogger().With("cmd", *cmd)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	database, err := db.NewPostgresDB(ctx, cfg.Database())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer database.Close()

	logger.Info("Running migrations")
	if err := db.Migrate(ctx, database.DB, *cmd, flag.Args()...); err != nil {
		logger.Error("Migration failed", "error", err)
		database.Close()
		os.Exit(1)
	}
	logger.Info("Migrations finished")
}
