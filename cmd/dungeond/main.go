// Command dungeond serves the dungeon generator over WebSocket.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/snickbit/dungeon/internal/config"
	"github.com/snickbit/dungeon/internal/database"
	"github.com/snickbit/dungeon/internal/logger"
	"github.com/snickbit/dungeon/internal/server"
)

func main() {
	configFile := flag.String("config", "data/dungeond.yaml", "Path to config YAML file")
	address := flag.String("address", "", "Listen address (overrides config)")
	flag.Parse()

	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config %s: %v\n", *configFile, err)
		os.Exit(1)
	}
	if *address != "" {
		cfg.Server.Address = *address
	}

	logger.Initialize(cfg.Logging.ApplyEnv())
	logger.Info("Starting dungeon service")

	srv := server.NewServer(cfg.Server, cfg.Generator.Options)

	if cfg.Storage.Enabled {
		db, err := openArchive(cfg.Storage)
		if err != nil {
			logger.Error("Failed to open dungeon archive", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		srv.SetDatabase(db)
		logger.Info("Dungeon archive enabled", "driver", cfg.Storage.Driver)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-stop:
		logger.Info("Shutting down", "signal", sig.String())
		srv.Close()
	case err := <-errCh:
		if err != nil {
			logger.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}
}

func openArchive(cfg config.StorageConfig) (*database.Database, error) {
	if cfg.Driver == string(database.DialectPostgres) {
		return database.OpenPostgres(cfg.DSN)
	}
	return database.Open(cfg.Path)
}
