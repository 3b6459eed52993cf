package bootstrap

import (
	"testdrive-hub/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	JWTModule,
	components.PersistenceModule,
	components.DraftModule,
	components.NotifyModule,
	components.UseCaseModule,
	components.HandlerModule,
)
