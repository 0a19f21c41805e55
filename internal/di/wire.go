//go:build wireinject
// +build wireinject

package di

import (
	"SimMarket/pkg/config"
	"SimMarket/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Ambient
		ProvideLogger,
		ProvideMetrics,

		// Engine
		ProvideCalendar,
		ProvideRand,
		ProvideTickGenerator,

		// Infrastructure clients
		ProvideRedisClient,
		ProvideKafkaProducer,
		ProvideClickHouseClient,

		// Repositories
		ProvideStockStore,
		ProvideTickPublisher,
		ProvideCandleArchive,

		// Use cases
		ProvideSweeper,
		ProvideSnapshotUseCase,
		ProvideScheduler,

		// Transport
		ProvideHTTPHandler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
