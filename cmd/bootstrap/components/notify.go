package components

import (
	"context"
	"log/slog"

	"testdrive-hub/internal/infra/notify"
	"testdrive-hub/internal/infra/repository"
	"testdrive-hub/internal/pkg/config"
	"testdrive-hub/internal/usecase/shared"

	"go.uber.org/fx"
)

const deliveryConcurrency = 5

var NotifyModule = fx.Module("notify",
	fx.Provide(
		NewNotifier,
	),
)

func NewNotifier(lc fx.Lifecycle, cfg config.Config, outbox *repository.NotificationOutbox, logger *slog.Logger) shared.Notifier {
	switch cfg.Notify.Backend {
	case config.NotifyBackendAsynq:
		return newAsynqNotifier(lc, cfg, logger)
	case config.NotifyBackendOutbox:
		if outbox != nil {
			return outbox
		}
		logger.Warn("Notification outbox needs the postgres store; logging notifications instead")
		return notify.NewLogNotifier(logger)
	default:
		return notify.NewLogNotifier(logger)
	}
}

// newAsynqNotifier enqueues notifications and runs the worker that delivers them.
// Delivery goes to the log until a mail sender is configured.
func newAsynqNotifier(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) shared.Notifier {
	client := notify.NewAsynqClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	server := notify.NewDeliveryServer(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Notify.Queue, deliveryConcurrency)
	mux := notify.NewDeliveryMux(notify.NewLogNotifier(logger))

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			return server.Start(mux)
		},
		OnStop: func(_ context.Context) error {
			server.Shutdown()
			return client.Close()
		},
	})
	return notify.NewAsynqNotifier(client, cfg.Notify.Queue)
}
