package components

import (
	"context"
	"log/slog"

	"testdrive-hub/internal/domain/testdrive"
	"testdrive-hub/internal/infra/memstore"
	"testdrive-hub/internal/infra/pgquery"
	"testdrive-hub/internal/infra/repository"
	"testdrive-hub/internal/pkg/clock"
	"testdrive-hub/internal/pkg/config"
	"testdrive-hub/internal/usecase/shared"

	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		clock.NewRealClock,
		NewPersistence,
	),
)

type Persistence struct {
	fx.Out

	Requests    shared.RequestRepository
	Vehicles    shared.VehicleDirectory
	Idempotency shared.IdempotencyRepository
	// Outbox is nil for the in-memory backend.
	Outbox *repository.NotificationOutbox
}

type vehicleSeeder interface {
	Upsert(ctx context.Context, v testdrive.VehicleData) error
}

func NewPersistence(lc fx.Lifecycle, cfg config.Config, clk clock.Clock) (Persistence, error) {
	switch cfg.Store.Backend {
	case config.StoreBackendMemory:
		vehicles := memstore.NewVehicleDirectory()
		if err := seedVehicles(cfg.Store.VehicleSeedFile, vehicles); err != nil {
			return Persistence{}, err
		}
		slog.Info("Using in-memory request store")
		return Persistence{
			Requests:    memstore.NewRequestRepository(),
			Vehicles:    vehicles,
			Idempotency: memstore.NewIdempotencyRepository(clk),
		}, nil
	default:
		pool, err := NewDB(lc, cfg)
		if err != nil {
			return Persistence{}, err
		}
		q := pgquery.New()
		vehicles := repository.NewVehicleRepository(q, pool)
		if err := seedVehicles(cfg.Store.VehicleSeedFile, vehicles); err != nil {
			return Persistence{}, err
		}
		return Persistence{
			Requests:    repository.NewTestDriveRepository(q, pool, cfg.Booking.Location()),
			Vehicles:    vehicles,
			Idempotency: repository.NewIdempotencyRepository(q, pool),
			Outbox:      repository.NewNotificationOutbox(q, pool),
		}, nil
	}
}

func seedVehicles(path string, dst vehicleSeeder) error {
	if path == "" {
		return nil
	}
	vehicles, err := memstore.LoadVehicleSeed(path)
	if err != nil {
		return err
	}
	for _, v := range vehicles {
		if err := dst.Upsert(context.Background(), v); err != nil {
			return err
		}
	}
	slog.Info("Vehicle seed loaded", "file", path, "count", len(vehicles))
	return nil
}
