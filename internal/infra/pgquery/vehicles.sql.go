package pgquery

import (
	"context"

	"testdrive-hub/internal/infra/db"
)

const getVehicle = `
SELECT id, title, price_cents, seller_email, seller_name, created_at, updated_at
FROM vehicles
WHERE id = $1`

func (q *Queries) GetVehicle(ctx context.Context, db db.DBTX, id string) (Vehicle, error) {
	row := db.QueryRow(ctx, getVehicle, id)
	var i Vehicle
	err := row.Scan(
		&i.ID,
		&i.Title,
		&i.PriceCents,
		&i.SellerEmail,
		&i.SellerName,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const upsertVehicle = `
INSERT INTO vehicles (id, title, price_cents, seller_email, seller_name)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (id) DO UPDATE SET
	title = EXCLUDED.title,
	price_cents = EXCLUDED.price_cents,
	seller_email = EXCLUDED.seller_email,
	seller_name = EXCLUDED.seller_name,
	updated_at = now()`

type UpsertVehicleParams struct {
	ID          string
	Title       string
	PriceCents  int64
	SellerEmail string
	SellerName  string
}

func (q *Queries) UpsertVehicle(ctx context.Context, db db.DBTX, arg UpsertVehicleParams) error {
	_, err := db.Exec(ctx, upsertVehicle,
		arg.ID,
		arg.Title,
		arg.PriceCents,
		arg.SellerEmail,
		arg.SellerName,
	)
	return err
}
