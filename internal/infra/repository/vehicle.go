package repository

import (
	"context"

	"testdrive-hub/internal/domain/testdrive"
	"testdrive-hub/internal/infra"
	"testdrive-hub/internal/infra/db"
	"testdrive-hub/internal/infra/pgquery"
	"testdrive-hub/internal/infra/repository/converter"
)

type VehicleQueries interface {
	GetVehicle(ctx context.Context, db db.DBTX, id string) (pgquery.Vehicle, error)
	UpsertVehicle(ctx context.Context, db db.DBTX, arg pgquery.UpsertVehicleParams) error
}

// VehicleRepository reads the local copy of listing data owned by the catalogue service.
type VehicleRepository struct {
	queries VehicleQueries
	db      db.DBTX
}

func NewVehicleRepository(queries VehicleQueries, db db.DBTX) *VehicleRepository {
	return &VehicleRepository{
		queries: queries,
		db:      db,
	}
}

func (r *VehicleRepository) FindByID(ctx context.Context, id string) (testdrive.VehicleData, error) {
	row, err := r.queries.GetVehicle(ctx, r.db, id)
	if err != nil {
		return testdrive.VehicleData{}, infra.WrapRepoErr("failed to get vehicle", err)
	}
	return converter.VehicleFromRow(row), nil
}

// Upsert loads seed data; listings are otherwise written by the catalogue service.
func (r *VehicleRepository) Upsert(ctx context.Context, v testdrive.VehicleData) error {
	if err := r.queries.UpsertVehicle(ctx, r.db, converter.VehicleToUpsertParams(v)); err != nil {
		return infra.WrapRepoErr("failed to upsert vehicle", err)
	}
	return nil
}
