//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"

	"welfared/internal"
	"welfared/internal/board"
	"welfared/internal/controllers"
	"welfared/internal/providers"
	"welfared/internal/services"
	"welfared/internal/structures"
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewInstrumentedCacheProvider,
		providers.NewMetricsProvider,

		services.NewAggregatorService,
		board.NewParser,
		board.NewValidator,
		board.NewZstdCompressor,
		board.NewFiler,
		board.NewOutputGenerator,
		board.NewFileWatcher,
		board.NewProcessor,
		board.NewFileManager,
		board.NewScheduler,
		controllers.NewBoardController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil
}
