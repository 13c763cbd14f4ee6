package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"steamdeals/scanner/internal/config"
	"steamdeals/scanner/internal/container"

	log "github.com/sirupsen/logrus"
)

func main() {
	runIngest := flag.Bool("ingest", false, "load the app catalog and exit")
	flag.Parse()

	log.Info("Starting Steam deals scanner...")

	// Load configuration using viper
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	log.Info("Configuration loaded successfully")

	// Initialize container with all dependencies
	app, err := container.New(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize container: %v", err)
	}
	defer app.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *runIngest {
		if err := app.Ingest(ctx); err != nil {
			log.Fatalf("Catalog ingest failed: %v", err)
		}
		log.Info("Catalog ingest finished successfully")
		return
	}

	if err := app.Run(ctx); err != nil {
		log.Fatalf("Application exited with error: %v", err)
	}

	log.Info("Application finished successfully")
}
