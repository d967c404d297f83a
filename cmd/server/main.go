// Package main provides the entry point for the BacBo prediction service.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/bacbo-predictor/internal/config"
	"github.com/yourusername/bacbo-predictor/internal/database"
	"github.com/yourusername/bacbo-predictor/internal/engine"
	"github.com/yourusername/bacbo-predictor/internal/health"
	"github.com/yourusername/bacbo-predictor/internal/logger"
	"github.com/yourusername/bacbo-predictor/internal/metrics"
	"github.com/yourusername/bacbo-predictor/internal/repository"
	"github.com/yourusername/bacbo-predictor/internal/scheduler"
	"github.com/yourusername/bacbo-predictor/internal/server"
	"github.com/yourusername/bacbo-predictor/internal/session"
)

func main() {
	var (
		configPath = flag.String("config", "config/config.yaml", "Path to config file")
		healthPort = flag.Int("health-port", 8080, "Health check server port")
	)
	flag.Parse()

	// Load configuration
	cfg, err := config.LoadWithDefaults(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Load AWS secrets if enabled
	if os.Getenv("AWS_SECRETS_ENABLED") == "true" {
		region := os.Getenv("AWS_REGION")
		secretName := os.Getenv("AWS_SECRET_NAME")
		if region == "" || secretName == "" {
			log.Fatalf("AWS_REGION and AWS_SECRET_NAME environment variables must be set when AWS_SECRETS_ENABLED is true")
		}
		if err := config.LoadSecretsFromAWS(cfg, region, secretName); err != nil {
			log.Fatalf("Failed to load secrets: %v", err)
		}
	}

	// Validate configuration
	if err := config.Validate(cfg); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Set up logging
	appLog := logger.NewLogger(cfg.App.LogLevel, cfg.App.Environment)
	appLog.WithFields(logrus.Fields{
		"environment": cfg.App.Environment,
		"log_level":   cfg.App.LogLevel,
	}).Info("BacBo prediction service starting")

	metrics.InitRegistry()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize persistence when enabled
	var (
		db    *database.DB
		repos *repository.Repositories
	)
	if cfg.Features.PersistenceEnabled {
		db, err = database.Initialize(ctx, &cfg.Database)
		if err != nil {
			appLog.WithError(err).Fatal("Failed to connect to database")
		}
		defer db.Close()

		repos, err = repository.NewRepositories(db)
		if err != nil {
			appLog.WithError(err).Fatal("Failed to create repositories")
		}
		appLog.Info("Database connection established")
	}

	// Initialize session registry
	var rounds repository.RoundRepository
	if repos != nil {
		rounds = repos.Round
	}
	sessions := session.NewManager(cfg.Session, engine.FromConfig(&cfg.Engine), appLog, rounds)

	// Start health check server
	var pinger health.DatabasePinger
	if db != nil {
		pinger = db
	}
	healthServer := health.NewServer(health.Config{
		ServiceName: cfg.App.Name,
		Port:        *healthPort,
		Logger:      appLog,
		DB:          pinger,
		Sessions:    sessions,
	})
	if err := healthServer.Start(ctx); err != nil {
		appLog.WithError(err).Fatal("Failed to start health server")
	}

	// Start metrics server
	if cfg.Metrics.Enabled {
		startMetricsServer(ctx, cfg, appLog)
	}

	// Start API server
	apiServer := server.New(cfg.Server, appLog, sessions)
	if err := apiServer.Start(ctx); err != nil {
		appLog.WithError(err).Fatal("Failed to start API server")
	}

	// Start snapshot scheduler when enabled
	var sched *scheduler.Scheduler
	if cfg.Snapshots.Enabled && repos != nil {
		sched = scheduler.NewScheduler(sessions, repos.StatsSnapshot, appLog)
		if err := sched.ScheduleSnapshots(cfg.Snapshots.Schedule); err != nil {
			appLog.WithError(err).Fatal("Failed to schedule stats snapshots")
		}
		sched.Start()
	}

	healthServer.SetReady(true)
	appLog.WithFields(logrus.Fields{
		"port":        cfg.Server.Port,
		"persistence": cfg.Features.PersistenceEnabled,
		"snapshots":   cfg.Snapshots.Enabled,
	}).Info("Service is running")

	// Wait for shutdown signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	sig := <-sigChan
	appLog.WithField("signal", sig).Info("Shutdown signal received")

	healthServer.SetReady(false)
	cancel()

	if sched != nil {
		sched.Stop()
	}
	if err := apiServer.Shutdown(); err != nil {
		appLog.WithError(err).Error("Error during API server shutdown")
	}

	// Give background goroutines time to cleanup
	time.Sleep(1 * time.Second)

	appLog.Info("BacBo prediction service shut down successfully")
}

// startMetricsServer exposes the Prometheus registry on its own port.
func startMetricsServer(ctx context.Context, cfg *config.Config, appLog *logrus.Logger) {
	mux := http.NewServeMux()
	mux.Handle(cfg.Metrics.Path, metrics.Handler())

	metricsServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Metrics.Port),
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		appLog.WithField("port", cfg.Metrics.Port).Info("Metrics server starting")
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLog.WithError(err).Error("Metrics server error")
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = metricsServer.Shutdown(shutdownCtx)
	}()
}
