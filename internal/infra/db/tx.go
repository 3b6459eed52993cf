package db

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"testdrive-hub/internal/pkg/errs"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrTxBegin            = errs.New("failed to begin transaction")
	ErrTxCommit           = errs.New("failed to commit transaction")
	ErrTxRetriesExhausted = errs.New("transaction failed after retries")
)

const (
	defaultTxAttempts = 4
	txBackoffStep     = 50 * time.Millisecond
)

// InTx runs fn in one transaction. fn's error rolls it back and is returned as is.
func InTx(ctx context.Context, conn TxBeginner, fn func(tx DBTX) error) error {
	tx, err := conn.Begin(ctx)
	if err != nil {
		return errs.Mark(err, ErrTxBegin)
	}
	defer func() {
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			slog.WarnContext(ctx, "transaction rollback failed", "error", rbErr)
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return errs.Mark(err, ErrTxCommit)
	}
	return nil
}

// InTxRetrying reruns the whole transaction after serialization failures and deadlocks.
func InTxRetrying(ctx context.Context, conn TxBeginner, fn func(tx DBTX) error) error {
	var err error
	for attempt := 1; attempt <= defaultTxAttempts; attempt++ {
		if err = InTx(ctx, conn, fn); err == nil || !retryable(err) {
			return err
		}
		if attempt == defaultTxAttempts {
			break
		}

		wait := time.Duration(attempt) * txBackoffStep
		slog.WarnContext(ctx, "retrying transaction", "attempt", attempt, "wait", wait, "error", err)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
	return errs.Mark(err, ErrTxRetriesExhausted)
}

func retryable(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	// serialization_failure, deadlock_detected
	return pgErr.Code == "40001" || pgErr.Code == "40P01"
}
