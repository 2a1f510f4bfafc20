package errors

import (
	"context"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// MapDBError maps database errors to AppError instances.
// It handles the error patterns the ingestion pipeline can hit:
// - Unique constraint violations → Conflict
// - Foreign key violations → Conflict
// - Context timeouts/cancellations → Timeout/Canceled
//
// pgx.ErrNoRows is passed through untouched: the upsert path branches on it
// and must see the sentinel, not a wrapper.
//
// If the error is not a recognized database error, it returns the original error.
func MapDBError(err error) error {
	if err == nil {
		return nil
	}

	// Check for context errors first
	if errors.Is(err, context.DeadlineExceeded) {
		return &AppError{
			Code:    ErrCodeTimeout,
			Message: "store operation timed out",
			Cause:   err,
		}
	}
	if errors.Is(err, context.Canceled) {
		return &AppError{
			Code:    ErrCodeCanceled,
			Message: "store operation was canceled",
			Cause:   err,
		}
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return err
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return mapPgError(pgErr)
	}

	return err
}

// mapPgError maps PostgreSQL-specific errors to AppError instances.
func mapPgError(pgErr *pgconn.PgError) error {
	switch pgErr.Code {
	case pgerrcode.UniqueViolation:
		return &AppError{
			Code:    ErrCodeConflict,
			Message: "unique constraint violated on " + constraintLabel(pgErr),
			Cause:   pgErr,
		}
	case pgerrcode.ForeignKeyViolation:
		return &AppError{
			Code:    ErrCodeConflict,
			Message: "foreign key constraint violated on " + constraintLabel(pgErr),
			Cause:   pgErr,
		}
	case pgerrcode.NotNullViolation:
		return &AppError{
			Code:    ErrCodeConflict,
			Message: "not-null constraint violated on " + constraintLabel(pgErr),
			Cause:   pgErr,
		}
	default:
		return &AppError{
			Code:    ErrCodeInternal,
			Message: "database error",
			Cause:   pgErr,
		}
	}
}

func constraintLabel(pgErr *pgconn.PgError) string {
	switch {
	case pgErr.ConstraintName != "":
		return pgErr.ConstraintName
	case pgErr.ColumnName != "":
		return pgErr.ColumnName
	case pgErr.TableName != "":
		return pgErr.TableName
	default:
		return "unknown constraint"
	}
}
