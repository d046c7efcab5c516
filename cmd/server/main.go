package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/manolaz/mosaic/internal/config"
	"github.com/manolaz/mosaic/internal/infrastructure/monitoring"
	"github.com/manolaz/mosaic/internal/server"
)

// version is stamped at build time via -ldflags.
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Logger for startup, before the configured logger exists.
	startupLogger, _ := monitoring.NewZapLogger(&config.LogConfig{Level: "info"})

	cfg, err := config.LoadConfig(startupLogger)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	appLogger, err := monitoring.NewZapLogger(&cfg.Log)
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}

	if err := server.Run(ctx, cfg, appLogger, version); err != nil {
		appLogger.Fatal(context.Background(), "server exited", err)
	}
}
