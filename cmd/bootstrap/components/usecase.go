package components

import (
	"github.com/maysqunaibi/strollers-mvp/internal/pkg/clock"
	"github.com/maysqunaibi/strollers-mvp/internal/usecase"
	"github.com/maysqunaibi/strollers-mvp/internal/usecase/commands"
	"github.com/maysqunaibi/strollers-mvp/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewAuthCommands,
		commands.NewPaymentCommands,
		commands.NewReturnCommands,
		commands.NewRentalCommands,
		commands.NewOrderCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewOperatorQueries,
		queries.NewOrderQueries,
		queries.NewPaymentQueries,
		queries.NewCatalogQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)
