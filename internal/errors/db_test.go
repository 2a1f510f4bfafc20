package errors

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestMapDBError_NilError(t *testing.T) {
	if err := MapDBError(nil); err != nil {
		t.Errorf("MapDBError(nil) = %v, want nil", err)
	}
}

func TestMapDBError_ContextErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode ErrorCode
	}{
		{
			name:     "deadline exceeded",
			err:      context.DeadlineExceeded,
			wantCode: ErrCodeTimeout,
		},
		{
			name:     "canceled",
			err:      context.Canceled,
			wantCode: ErrCodeCanceled,
		},
		{
			name:     "wrapped deadline exceeded",
			err:      fmt.Errorf("query: %w", context.DeadlineExceeded),
			wantCode: ErrCodeTimeout,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapDBError(tt.err)
			if GetCode(got) != tt.wantCode {
				t.Errorf("MapDBError(%v) code = %v, want %v", tt.err, GetCode(got), tt.wantCode)
			}
			if !errors.Is(got, tt.err) {
				t.Error("mapped error should preserve the cause chain")
			}
		})
	}
}

func TestMapDBError_NoRowsPassesThrough(t *testing.T) {
	got := MapDBError(pgx.ErrNoRows)
	if !errors.Is(got, pgx.ErrNoRows) {
		t.Errorf("MapDBError(pgx.ErrNoRows) = %v, want the sentinel preserved", got)
	}
	var appErr *AppError
	if errors.As(got, &appErr) {
		t.Error("pgx.ErrNoRows must not be wrapped; callers branch on the sentinel")
	}
}

func TestMapDBError_PgErrors(t *testing.T) {
	tests := []struct {
		name        string
		pgErr       *pgconn.PgError
		wantCode    ErrorCode
		wantMessage string
	}{
		{
			name: "unique violation names the constraint",
			pgErr: &pgconn.PgError{
				Code:           pgerrcode.UniqueViolation,
				ConstraintName: "job_postings_external_id_key",
			},
			wantCode:    ErrCodeConflict,
			wantMessage: "job_postings_external_id_key",
		},
		{
			name: "foreign key violation",
			pgErr: &pgconn.PgError{
				Code:           pgerrcode.ForeignKeyViolation,
				ConstraintName: "job_postings_company_id_fkey",
			},
			wantCode:    ErrCodeConflict,
			wantMessage: "job_postings_company_id_fkey",
		},
		{
			name: "not-null violation falls back to column name",
			pgErr: &pgconn.PgError{
				Code:       pgerrcode.NotNullViolation,
				ColumnName: "name",
			},
			wantCode:    ErrCodeConflict,
			wantMessage: "name",
		},
		{
			name: "unrecognized pg error is internal",
			pgErr: &pgconn.PgError{
				Code: pgerrcode.SerializationFailure,
			},
			wantCode:    ErrCodeInternal,
			wantMessage: "database error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapDBError(fmt.Errorf("exec: %w", tt.pgErr))
			if GetCode(got) != tt.wantCode {
				t.Errorf("code = %v, want %v", GetCode(got), tt.wantCode)
			}
			if !strings.Contains(got.Error(), tt.wantMessage) {
				t.Errorf("message %q does not mention %q", got.Error(), tt.wantMessage)
			}
		})
	}
}

func TestMapDBError_UnrecognizedErrorPassesThrough(t *testing.T) {
	plain := errors.New("driver hiccup")
	if got := MapDBError(plain); got != plain {
		t.Errorf("MapDBError(%v) = %v, want the original error", plain, got)
	}
}
