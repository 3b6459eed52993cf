package components

import (
	"context"

	"testdrive-hub/internal/infra/draftstore"
	"testdrive-hub/internal/infra/metrics"
	"testdrive-hub/internal/pkg/clock"
	"testdrive-hub/internal/pkg/config"
	"testdrive-hub/internal/usecase/drafts"
	"testdrive-hub/internal/usecase/shared"

	"go.uber.org/fx"
)

var DraftModule = fx.Module("drafts",
	fx.Provide(
		func() *metrics.PrometheusRecorder {
			return metrics.NewPrometheusRecorder(nil)
		},
		fx.Annotate(
			func(r *metrics.PrometheusRecorder) *metrics.PrometheusRecorder { return r },
			fx.As(new(shared.Metrics)),
		),
		NewDraftRepository,
		NewDraftStore,
		NewAutosaver,
	),
)

func NewDraftRepository(lc fx.Lifecycle, cfg config.Config) (shared.DraftRepository, error) {
	switch cfg.Draft.Backend {
	case config.DraftBackendRedis:
		rdb, err := draftstore.ConnectRedis(context.Background(), cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return nil, err
		}
		lc.Append(fx.Hook{
			OnStop: func(_ context.Context) error {
				return rdb.Close()
			},
		})
		return draftstore.NewRedisStore(rdb), nil
	default:
		store, err := draftstore.OpenBadger(cfg.Draft.BadgerDir)
		if err != nil {
			return nil, err
		}
		lc.Append(fx.Hook{
			OnStop: func(_ context.Context) error {
				return store.Close()
			},
		})
		return store, nil
	}
}

func NewDraftStore(repo shared.DraftRepository, cfg config.Config, clk clock.Clock, m shared.Metrics) *drafts.Store {
	return drafts.NewStore(repo, cfg.Draft.TTL, clk, m)
}

// NewAutosaver flushes pending autosaves on shutdown, before the draft backend closes.
func NewAutosaver(lc fx.Lifecycle, store *drafts.Store, cfg config.Config) *drafts.Autosaver {
	a := drafts.NewAutosaver(store, cfg.Draft.DebounceWindow)
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			a.Close(ctx)
			return nil
		},
	})
	return a
}
