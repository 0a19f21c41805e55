package di

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"SimMarket/internal/domain/repository"
	"SimMarket/internal/handler/api"
	"SimMarket/internal/handler/ws"
	"SimMarket/internal/market"
	internalrepo "SimMarket/internal/repository"
	"SimMarket/internal/scheduler"
	"SimMarket/internal/usecase"
	pkgch "SimMarket/pkg/clickhouse"
	"SimMarket/pkg/config"
	xhttp "SimMarket/pkg/http"
	pkgkafka "SimMarket/pkg/kafka"
	applogger "SimMarket/pkg/logger"
	"SimMarket/pkg/metrics"
	pkgredis "SimMarket/pkg/redis"
	"SimMarket/pkg/server"

	"github.com/labstack/echo/v4"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	return applogger.New(&applogger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideCalendar builds the trading calendar from config.
func ProvideCalendar(cfg *config.Config) (*market.Calendar, error) {
	cal, err := market.NewCalendar(cfg.Market.Open, cfg.Market.Close, cfg.Market.Holidays)
	if err != nil {
		return nil, fmt.Errorf("trading calendar: %w", err)
	}
	return cal, nil
}

// ProvideRand seeds the generator's randomness source.
func ProvideRand() usecase.Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// ProvideTickGenerator creates the synthetic price step generator.
func ProvideTickGenerator(cfg *config.Config, rnd usecase.Rand) *usecase.TickGenerator {
	return usecase.NewTickGenerator(usecase.GeneratorConfig{
		MinChange:   cfg.Engine.MinChange,
		MaxChange:   cfg.Engine.MaxChange,
		TrendChange: cfg.Engine.TrendChange,
	}, rnd)
}

// ProvideRedisClient creates a Redis client, or nil when the store type
// is not redis.
func ProvideRedisClient(cfg *config.Config) (*pkgredis.Client, error) {
	if cfg.Store.Type != "redis" {
		return nil, nil
	}
	client, err := pkgredis.NewClient(
		pkgredis.WithAddr(cfg.Store.Redis.Host, cfg.Store.Redis.Port),
		pkgredis.WithCredentials(cfg.Store.Redis.Password),
		pkgredis.WithDB(cfg.Store.Redis.DB),
	)
	if err != nil {
		return nil, fmt.Errorf("redis client: %w", err)
	}
	return client, nil
}

// ProvideStockStore selects the stock store backend from config.
func ProvideStockStore(cfg *config.Config, redisClient *pkgredis.Client) (repository.StockStore, error) {
	switch cfg.Store.Type {
	case "redis":
		return internalrepo.NewRedisStockStore(redisClient.Redis(), cfg.Store.Redis.Prefix), nil
	case "memory":
		return internalrepo.NewMemoryStockStore(), nil
	default:
		return nil, fmt.Errorf("unknown store type %q", cfg.Store.Type)
	}
}

// ProvideKafkaProducer creates a Kafka producer, or nil when Kafka is
// disabled.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	if !cfg.Kafka.Enabled {
		return nil, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithBatchSize(cfg.Kafka.Producer.BatchSize),
		pkgkafka.WithBatchBytes(cfg.Kafka.Producer.BatchBytes),
		pkgkafka.WithBatchTimeout(cfg.Kafka.Producer.Linger),
		pkgkafka.WithTimeouts(cfg.Kafka.Producer.WriteTimeout, cfg.Kafka.Producer.ReadTimeout),
		pkgkafka.WithMaxAttempts(cfg.Kafka.Producer.MaxAttempts),
		pkgkafka.WithAsync(cfg.Kafka.Producer.Async),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, nil
}

// ProvideTickPublisher creates the Kafka tick publisher, or nil when no
// producer is configured.
func ProvideTickPublisher(producer *pkgkafka.Producer, cfg *config.Config) repository.TickPublisher {
	if producer == nil {
		return nil
	}
	return internalrepo.NewKafkaTickPublisher(producer, cfg.Kafka.Topic)
}

// ProvideClickHouseClient creates a ClickHouse client and prepares the
// rollup archive schema, or nil when ClickHouse is disabled.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	if !cfg.ClickHouse.Enabled {
		return nil, nil
	}
	client, err := pkgch.NewClient(
		pkgch.WithHost(cfg.ClickHouse.Host),
		pkgch.WithPort(cfg.ClickHouse.Port),
		pkgch.WithDatabase(cfg.ClickHouse.Database),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithMaxConnections(10, 5),
		pkgch.WithHTTP(cfg.ClickHouse.UseHTTP),
		pkgch.WithAsyncInsert(cfg.ClickHouse.AsyncInsert, cfg.ClickHouse.WaitForAsync),
		pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout, cfg.ClickHouse.WriteTimeout),
		pkgch.WithMaxExecutionTime(cfg.ClickHouse.MaxExecutionTime),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db := cfg.ClickHouse.Database
	if err := client.InitSchema(ctx, []string{
		fmt.Sprintf("CREATE DATABASE IF NOT EXISTS %s", db),
		fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s.candles_10m (symbol String, ts DateTime, open Float64, high Float64, low Float64, close Float64) ENGINE=MergeTree ORDER BY (symbol, ts)", db),
	}); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("clickhouse schema: %w", err)
	}

	return client, nil
}

// ProvideCandleArchive creates the rollup candle archive, or nil when
// ClickHouse is disabled.
func ProvideCandleArchive(chClient *pkgch.Client, cfg *config.Config) repository.CandleArchive {
	if chClient == nil {
		return nil
	}
	return internalrepo.NewClickHouseArchive(chClient.DB(), cfg.ClickHouse.Database+".candles_10m")
}

// ProvideSweeper creates the sweep use case over all registered stocks.
func ProvideSweeper(
	store repository.StockStore,
	gen *usecase.TickGenerator,
	rnd usecase.Rand,
	pub repository.TickPublisher,
	archive repository.CandleArchive,
	m repository.Metrics,
	cal *market.Calendar,
	logger *applogger.Logger,
	cfg *config.Config,
) *usecase.Sweeper {
	return usecase.NewSweeper(store, gen, rnd, pub, archive, m, cal, logger, cfg.Market.GateGeneration)
}

// ProvideScheduler creates the cron scheduler with all jobs registered.
func ProvideScheduler(cfg *config.Config, sweeper *usecase.Sweeper, logger *applogger.Logger) (*scheduler.Scheduler, error) {
	s := scheduler.New(context.Background(), sweeper, logger)
	if err := s.RegisterAll(cfg.Schedule.TickCron, cfg.Schedule.RollupCron, cfg.Schedule.ResetCron); err != nil {
		return nil, err
	}
	return s, nil
}

// ProvideSnapshotUseCase creates the snapshot read use case.
func ProvideSnapshotUseCase(store repository.StockStore) *usecase.SnapshotUseCase {
	return usecase.NewSnapshotUseCase(store)
}

// routes registers the REST API and the WebSocket stream together.
type routes struct {
	api *api.StocksEchoHandler
	ws  *ws.StreamHandler
}

func (r *routes) RegisterRoutes(e *echo.Echo) {
	r.api.RegisterRoutes(e)
	r.ws.RegisterRoutes(e)
}

// ProvideHTTPHandler creates the combined HTTP handler.
func ProvideHTTPHandler(logger *applogger.Logger, snaps *usecase.SnapshotUseCase, cal *market.Calendar, cfg *config.Config) xhttp.Handler {
	return &routes{
		api: api.NewStocksEchoHandler(logger, snaps),
		ws: ws.NewStreamHandler(logger, snaps, cal, ws.StreamConfig{
			Interval:    cfg.Push.Interval,
			RecheckGate: cfg.Market.GatePushRecheck,
		}),
	}
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	logger *applogger.Logger,
	sched *scheduler.Scheduler,
	handler xhttp.Handler,
	store repository.StockStore,
	redisClient *pkgredis.Client,
	producer *pkgkafka.Producer,
	chClient *pkgch.Client,
) *server.App {
	return server.New(cfg, logger, sched, handler, store, redisClient, producer, chClient)
}
