package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"expensemanager/internal/shared/config"
	"expensemanager/internal/shared/logger"
	"expensemanager/internal/shared/telemetry"
)

const shutdownTimeout = 30 * time.Second

func main() {
	// A missing .env is fine outside local development
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}

	log := logger.New(cfg.Env, cfg.LogLevel)
	if err := run(cfg, log); err != nil {
		log.WithError(err).Fatal("Application error")
	}
}

func run(cfg *config.Config, log *logrus.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Telemetry.Enabled {
		shutdownTelemetry, err := telemetry.Init(ctx, telemetry.Config{
			ServiceName:  cfg.Telemetry.ServiceName,
			Environment:  cfg.Env,
			OTLPEndpoint: cfg.Telemetry.OTLPEndpoint,
			MetricsPort:  cfg.Telemetry.MetricsPort,
		}, log)
		defer func() {
			flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdownTelemetry(flushCtx); err != nil {
				log.WithError(err).Error("Failed to shut down telemetry")
			}
		}()
		if err != nil {
			return err
		}
	}

	deps, err := NewDependencies(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer deps.Close()

	handler := SetupRoutes(deps, cfg, log)

	errCh := make(chan error, 1)
	srv, redirectSrv := StartServers(NewServerConfigFromConfig(handler, cfg), log, errCh)

	select {
	case <-ctx.Done():
	case err := <-errCh:
		GracefulShutdown(srv, redirectSrv, shutdownTimeout, log)
		return err
	}

	GracefulShutdown(srv, redirectSrv, shutdownTimeout, log)
	return nil
}
