package infra

import (
	"errors"
	"log/slog"

	"testdrive-hub/internal/pkg/errs"
	"testdrive-hub/internal/pkg/pgconv"

	"github.com/jackc/pgx/v5/pgconn"
)

type RepositoryErrorKind string

type RepositoryError struct {
	Kind RepositoryErrorKind
	msg  string
	err  error // wrapped low-level error
}

func (e RepositoryError) Error() string {
	if e.err != nil {
		return string(e.Kind) + ": " + e.msg + ": " + e.err.Error()
	}
	return string(e.Kind) + ": " + e.msg
}

func (e RepositoryError) Unwrap() error {
	return e.err
}

// WrapRepoErr classifies err unless an explicit kind is given, logs it and wraps it with a stack.
func WrapRepoErr(msg string, err error, kind ...RepositoryErrorKind) error {
	k := classify(err)
	if len(kind) > 0 {
		k = kind[0]
	}

	if k == KindNotFound || k == KindConflict {
		slog.Debug("Repository error: "+msg, slog.String("kind", string(k)))
	} else {
		slog.Error("Repository error: "+msg, slog.String("kind", string(k)), slog.Any("error", err))
	}

	if err != nil {
		err = errs.Wrap(err, msg)
	}
	return RepositoryError{Kind: k, msg: msg, err: err}
}

func classify(err error) RepositoryErrorKind {
	if pgconv.IsNoRows(err) {
		return KindNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return KindDuplicateKey
		case "23503":
			return KindForeignKeyViolated
		case "40001", "40P01":
			return KindConflict
		}
	}
	return KindDBFailure
}

func IsKind(err error, kind RepositoryErrorKind) bool {
	var e RepositoryError
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// Infrastructure-specific error kinds
const (
	KindNotFound           RepositoryErrorKind = "NOT_FOUND"
	KindDBFailure          RepositoryErrorKind = "DB_FAILURE"
	KindDuplicateKey       RepositoryErrorKind = "DUPLICATE_KEY"
	KindForeignKeyViolated RepositoryErrorKind = "FOREIGN_KEY_VIOLATED"
	// KindConflict means a conditional write found the row in another state.
	KindConflict RepositoryErrorKind = "CONFLICT"
)
