package data

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5"

	"github.com/the11job/jobs-ingest/internal/domain/model"
	apperrors "github.com/the11job/jobs-ingest/internal/errors"
)

// CompanyRepo resolves free-text employer names to canonical company rows,
// creating one on first sighting. The UNIQUE constraint on companies.name
// is the final arbiter under concurrent inserts.
type CompanyRepo struct {
	logger *slog.Logger
}

// NewCompanyRepo creates a new CompanyRepo.
func NewCompanyRepo(logger *slog.Logger) *CompanyRepo {
	if logger == nil {
		logger = slog.Default()
	}
	return &CompanyRepo{logger: logger}
}

// ResolveTx maps an employer name to a company id inside the caller's
// transaction. The name is normalized first (trimmed, blank replaced by
// the unknown placeholder); lookups and inserts always see the canonical
// form, so repeated resolution of equal names converges on one row.
//
// A concurrent insert of the same name cannot abort the batch: the insert
// uses ON CONFLICT DO NOTHING, and when another transaction won the race
// the resolver re-queries and returns the existing row.
func (r *CompanyRepo) ResolveTx(ctx context.Context, tx pgx.Tx, rawName string) (int64, error) {
	name := model.NormalizeCompanyName(rawName)

	id, err := r.findByName(ctx, tx, name)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, apperrors.MapDBError(err)
	}

	err = tx.QueryRow(ctx,
		`INSERT INTO companies (name) VALUES ($1) ON CONFLICT (name) DO NOTHING RETURNING id`,
		name,
	).Scan(&id)
	switch {
	case err == nil:
		r.logger.InfoContext(ctx, "registered new company", "name", name)
		return id, nil
	case errors.Is(err, pgx.ErrNoRows):
		// Lost the race: another transaction created the row between our
		// lookup and insert. Return the winner's id.
		id, err = r.findByName(ctx, tx, name)
		if err != nil {
			return 0, apperrors.MapDBError(err)
		}
		return id, nil
	default:
		return 0, apperrors.MapDBError(err)
	}
}

func (r *CompanyRepo) findByName(ctx context.Context, tx pgx.Tx, name string) (int64, error) {
	var id int64
	err := tx.QueryRow(ctx, `SELECT id FROM companies WHERE name = $1`, name).Scan(&id)
	return id, err
}
