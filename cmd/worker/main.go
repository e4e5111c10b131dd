package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sahilKumar1122/pr-pilot/internal/analyzer"
	"github.com/sahilKumar1122/pr-pilot/internal/config"
	"github.com/sahilKumar1122/pr-pilot/internal/inference"
	"github.com/sahilKumar1122/pr-pilot/internal/logger"
	"github.com/sahilKumar1122/pr-pilot/internal/store"
	githubvcs "github.com/sahilKumar1122/pr-pilot/internal/vcs/github"
	"github.com/sahilKumar1122/pr-pilot/internal/worker"
)

// Global variables for configuration and services
var (
	cfg      *config.Config
	log      *logger.Logger
	statuses *store.StatusStore
	srv      *worker.Server
)

func main() {
	if err := initialize(); err != nil {
		fmt.Fprintf(os.Stderr, "Initialization error: %v\n", err)
		os.Exit(1)
	}

	if err := srv.Start(); err != nil {
		log.Fatal("Failed to start worker", err)
	}

	waitForShutdown()
}

func initialize() error {
	var err error

	// Load configuration
	cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	log = logger.New(cfg.Log.Level, cfg.Log.Format)
	log.Info("Starting PR Pilot analysis worker")

	// Open the job status store
	statuses, err = store.Open(cfg.Store.DSN)
	if err != nil {
		return fmt.Errorf("failed to open job status store: %w", err)
	}

	// Wire the analysis pipeline
	vcs := githubvcs.NewClient(cfg.GitHub.Token)
	cascade := inference.NewCascade(inference.NewClient(cfg.HuggingFace), log)
	orchestrator := analyzer.New(vcs, cascade, log)
	handler := worker.New(orchestrator, vcs, statuses, log)

	srv, err = worker.NewServer(cfg.Queue, handler, log)
	if err != nil {
		return fmt.Errorf("failed to create worker server: %w", err)
	}

	return nil
}

func waitForShutdown() {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	log.Info("Received shutdown signal")
	srv.Shutdown()

	if err := statuses.Close(); err != nil {
		log.Error("Error closing job status store", err)
	}

	log.Info("Application stopped")
}
