package components

import (
	"context"

	"testdrive-hub/internal/pkg/config"
	"testdrive-hub/internal/usecase"
	"testdrive-hub/internal/usecase/commands"
	"testdrive-hub/internal/usecase/queries"
	"testdrive-hub/internal/usecase/store"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	store.NewRequestStore,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewTestDriveUseCase,
		commands.NewDraftUseCase,
		NewCompletionSweeper,
	),
	fx.Invoke(func(*commands.CompletionSweeper) {}),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewTestDriveQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)

func NewCompletionSweeper(lc fx.Lifecycle, cmds commands.TestDriveCommands, cfg config.Config) *commands.CompletionSweeper {
	s := commands.NewCompletionSweeper(cmds, cfg.Booking.SweepInterval)
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			s.Start(ctx)
			return nil
		},
		OnStop: func(_ context.Context) error {
			s.Stop()
			return nil
		},
	})
	return s
}
