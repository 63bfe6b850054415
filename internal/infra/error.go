package infra

import (
	"context"
	"errors"
	"log/slog"

	"hotel-booking-core/internal/pkg/errs"

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

func WrapRepoErr(slogger *slog.Logger, kind RepositoryErrorKind, msg string, err error) error {
	logArgs := []any{
		slog.String("kind", string(kind)),
	}
	if err != nil {
		logArgs = append(logArgs, slog.String("error", err.Error()))
	}

	if kind == KindNotFound || kind == KindStaleWrite {
		slogger.Debug("Repository error: "+msg, logArgs...)
	} else {
		slogger.Error("Repository error: "+msg, logArgs...)
	}

	if err != nil {
		err = errs.Wrap(err, msg)
	}

	return RepositoryError{Kind: kind, msg: msg, err: err}
}

func NewRepoErr(kind RepositoryErrorKind, msg string) error {
	return RepositoryError{Kind: kind, msg: msg}
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
	KindUnavailable        RepositoryErrorKind = "UNAVAILABLE"
	KindStaleWrite         RepositoryErrorKind = "STALE_WRITE"
)

const (
	pgErrUniqueViolation     = "23505"
	pgErrForeignKeyViolation = "23503"
)

// ClassifyPgError maps a driver error onto a repository error kind.
// Timeouts and connection failures count as unavailable.
func ClassifyPgError(err error) RepositoryErrorKind {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return KindUnavailable
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgErrUniqueViolation:
			return KindDuplicateKey
		case pgErrForeignKeyViolation:
			return KindForeignKeyViolated
		}
		// class 08: connection exception, class 57: operator intervention
		if len(pgErr.Code) == 5 && (pgErr.Code[:2] == "08" || pgErr.Code[:2] == "57") {
			return KindUnavailable
		}
		return KindDBFailure
	}
	if pgconn.SafeToRetry(err) || pgconn.Timeout(err) {
		return KindUnavailable
	}
	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return KindUnavailable
	}
	return KindDBFailure
}

// ToDomainError translates repository errors into the shared taxonomy.
// notFound is returned in place of KindNotFound so callers keep their own
// entity-specific sentinel.
func ToDomainError(err error, notFound error) error {
	switch {
	case err == nil:
		return nil
	case IsKind(err, KindNotFound):
		return notFound
	case IsKind(err, KindUnavailable), errors.Is(err, context.DeadlineExceeded):
		return errs.Mark(err, errs.ErrStoreUnavailable)
	case IsKind(err, KindStaleWrite):
		return errs.Mark(err, errs.ErrInvalidStateTransition)
	default:
		return err
	}
}
