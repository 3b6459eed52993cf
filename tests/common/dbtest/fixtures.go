//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// DBLike is satisfied by both *pgxpool.Pool and pgx.Tx.
type DBLike interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// CreateTestVehicle lists a vehicle for the given seller and returns its id.
func CreateTestVehicle(t *testing.T, db DBLike, id, title, sellerEmail, sellerName string) string {
	t.Helper()

	ctx := context.Background()
	_, err := db.Exec(ctx, `
		INSERT INTO vehicles (id, title, price_cents, seller_email, seller_name) VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET title = EXCLUDED.title, seller_email = EXCLUDED.seller_email, seller_name = EXCLUDED.seller_name`,
		id, title, int64(1500000_00), sellerEmail, sellerName)
	require.NoError(t, err)

	return id
}

func RequestStatus(t *testing.T, db DBLike, id uuid.UUID) string {
	t.Helper()

	var status string
	err := db.QueryRow(context.Background(), "SELECT status FROM test_drive_requests WHERE id = $1", id).Scan(&status)
	require.NoError(t, err)
	return status
}

func CountRows(t *testing.T, db DBLike, table string) int {
	t.Helper()

	var n int
	err := db.QueryRow(context.Background(), "SELECT count(*) FROM "+table).Scan(&n)
	require.NoError(t, err)
	return n
}

// inserts basic reference data needed by tests
func SeedReferenceData(pool *pgxpool.Pool) error {
	ctx := context.Background()

	_, err := pool.Exec(ctx, `
		INSERT INTO vehicles (id, title, price_cents, seller_email, seller_name) VALUES
		    ('veh-001', '2019 Toyota Prius S', 198000000, 'seller@example.com', 'Taro Yamada'),
		    ('veh-002', '2021 Honda Fit e:HEV', 215000000, 'dealer@example.com', 'Kanto Motors')
		ON CONFLICT (id) DO NOTHING;
	`)
	if err != nil {
		return err
	}

	return nil
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables and reseeds reference data
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	if _, err := pool.Exec(ctx, sqlAny.(string)); err != nil {
		return err
	}

	return SeedReferenceData(pool)
}
