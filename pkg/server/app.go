package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"SimMarket/internal/domain/repository"
	"SimMarket/internal/scheduler"
	pkgch "SimMarket/pkg/clickhouse"
	"SimMarket/pkg/config"
	xhttp "SimMarket/pkg/http"
	pkgkafka "SimMarket/pkg/kafka"
	applogger "SimMarket/pkg/logger"
	pkgredis "SimMarket/pkg/redis"
)

// App encapsulates the entire application lifecycle.
type App struct {
	cfg         *config.Config
	logger      *applogger.Logger
	scheduler   *scheduler.Scheduler
	httpHandler xhttp.Handler
	httpServer  *xhttp.Server

	store       repository.StockStore
	redisClient *pkgredis.Client
	producer    *pkgkafka.Producer
	chClient    *pkgch.Client
}

// New creates a new App instance with all dependencies.
func New(
	cfg *config.Config,
	logger *applogger.Logger,
	sched *scheduler.Scheduler,
	handler xhttp.Handler,
	store repository.StockStore,
	redisClient *pkgredis.Client,
	producer *pkgkafka.Producer,
	chClient *pkgch.Client,
) *App {
	return &App{
		cfg:         cfg,
		logger:      logger,
		scheduler:   sched,
		httpHandler: handler,
		store:       store,
		redisClient: redisClient,
		producer:    producer,
		chClient:    chClient,
	}
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	// Ship aggregated error logs to Kafka when a producer is available.
	if a.producer != nil && a.cfg.Kafka.LogsTopic != "" {
		a.logger.AddCollector(&applogger.CollectionConfig{
			TimeInterval:   time.Minute,
			CountThreshold: 100,
			Topic:          a.cfg.Kafka.LogsTopic,
			Publisher:      a.producer,
		})
	}

	a.httpServer = xhttp.NewServer(a.httpHandler,
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
	)

	a.scheduler.Start()

	if err := a.httpServer.Start(); err != nil {
		a.logger.Error("http server start error", applogger.Error(err))
		return err
	}
	a.logger.Info("engine started",
		applogger.String("env", a.cfg.Environment),
		applogger.Int("port", a.cfg.Server.Port),
		applogger.String("store", a.cfg.Store.Type),
	)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.logger.Info("shutdown signal received")
	return a.shutdown()
}

// shutdown gracefully stops all services.
func (a *App) shutdown() error {
	// Stop the scheduler first so no sweep runs against closing stores.
	a.scheduler.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		a.logger.Error("http shutdown error", applogger.Error(err))
	}

	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.logger.Warn("store close error", applogger.Error(err))
		}
	}
	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warn("redis close error", applogger.Error(err))
		}
	}
	if a.chClient != nil {
		if err := a.chClient.Close(); err != nil {
			a.logger.Warn("clickhouse close error", applogger.Error(err))
		}
	}

	// Flush the log collector before closing the producer it publishes to.
	a.logger.RemoveCollector()
	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			a.logger.Warn("kafka producer close error", applogger.Error(err))
		}
	}

	a.logger.Info("shutdown complete")
	return nil
}
