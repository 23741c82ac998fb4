package components

import (
	"goeat-api/internal/infra/cache"
	"goeat-api/internal/pkg/clock"
	"goeat-api/internal/usecase/commands"
	"goeat-api/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewUserQueries,
		queries.NewRestaurantQueries,
		queries.NewDealQueries,
		queries.NewEventQueries,
		queries.NewReservationQueries,
		queries.NewReviewQueries,
		queries.NewVideoQueries,
	),
	// Hot read paths get a TTL cache in front of them.
	fx.Decorate(cache.NewCachedRestaurantQueries),
	fx.Decorate(cache.NewCachedDealQueries),
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewAuthCommands,
		commands.NewRestaurantCommands,
		commands.NewDealCommands,
		commands.NewEventCommands,
		commands.NewReservationCommands,
		commands.NewReviewCommands,
		commands.NewVideoCommands,
	),
)
