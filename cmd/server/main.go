package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/metabo-score-server/internal/api"
	"github.com/metabo-score-server/internal/config"
	"github.com/metabo-score-server/internal/service"
)

func main() {
	configManager, err := config.NewManager()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := configManager.Validate(); err != nil {
		log.Fatalf("Configuration validation failed: %v", err)
	}

	cfg := configManager.GetConfig()
	logger := newLogger(cfg.Logging.Level, cfg.Logging.Format)

	registry, err := service.NewDefaultCutoffRegistry()
	if err != nil {
		logger.WithError(err).Fatal("Cutoff table configuration is invalid")
	}

	engine, err := service.NewScoringEngine(logger, registry, service.ScoringBands{
		DomainMild:     cfg.Scoring.DomainBandMild,
		DomainModerate: cfg.Scoring.DomainBandModerate,
		DomainSevere:   cfg.Scoring.DomainBandSevere,
		RiskMild:       cfg.Scoring.RiskBandMild,
		RiskModerate:   cfg.Scoring.RiskBandModerate,
		RiskHigh:       cfg.Scoring.RiskBandHigh,
	})
	if err != nil {
		logger.WithError(err).Fatal("Failed to build scoring engine")
	}

	server, err := api.NewServer(logger, cfg, engine, registry)
	if err != nil {
		logger.WithError(err).Fatal("Failed to build server")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		logger.Info("Shutdown signal received, gracefully shutting down...")
		cancel()
	}()

	logger.WithFields(logrus.Fields{
		"host": cfg.Server.Host,
		"port": cfg.Server.Port,
	}).Info("Starting metabolic health score server")

	if err := server.Start(ctx); err != nil {
		logger.WithError(err).Fatal("Server failed")
	}

	logger.Info("Server stopped")
}

// newLogger builds the process logger from configuration.
func newLogger(level, format string) *logrus.Logger {
	logger := logrus.New()

	parsed, err := logrus.ParseLevel(strings.ToLower(level))
	if err != nil {
		parsed = logrus.InfoLevel
	}
	logger.SetLevel(parsed)

	if format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	return logger
}
