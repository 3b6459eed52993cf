package components

import (
	"testdrive-hub/internal/handler"
	"testdrive-hub/internal/handler/api"
	"testdrive-hub/internal/handler/middleware"
	"testdrive-hub/internal/infra/metrics"
	"testdrive-hub/internal/pkg/config"
	"testdrive-hub/internal/usecase/commands"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewTestDriveHandler,
		NewDraftHandler,
		middleware.NewAuthMiddleware,
		NewRouterDeps,
	),
	fx.Invoke(handler.NewRouter),
)

func NewDraftHandler(cmds commands.DraftCommands, cfg config.Config) *api.DraftHandler {
	return api.NewDraftHandler(cmds, cfg.Cookie, cfg.Draft.TTL)
}

func NewRouterDeps(td *api.TestDriveHandler, d *api.DraftHandler, auth *middleware.AuthMiddleware, m *metrics.PrometheusRecorder) handler.Deps {
	return handler.Deps{
		TestDrive: td,
		Draft:     d,
		Auth:      auth,
		Metrics:   m,
	}
}
