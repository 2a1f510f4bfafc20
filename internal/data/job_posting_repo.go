package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"

	"github.com/the11job/jobs-ingest/internal/data/pgxutil"
	"github.com/the11job/jobs-ingest/internal/domain/model"
	apperrors "github.com/the11job/jobs-ingest/internal/errors"
)

// JobPostingRepo applies batches of job drafts to the store. One batch is
// one fetched page and runs as one transaction: a failed record rolls back
// the whole page, never leaving a partial batch behind.
type JobPostingRepo struct {
	db        *sql.DB
	companies *CompanyRepo
	logger    *slog.Logger
}

// NewJobPostingRepo creates a new JobPostingRepo.
func NewJobPostingRepo(db *sql.DB, companies *CompanyRepo, logger *slog.Logger) *JobPostingRepo {
	if logger == nil {
		logger = slog.Default()
	}
	return &JobPostingRepo{db: db, companies: companies, logger: logger}
}

// ApplyBatch upserts one page of drafts inside a single transaction,
// keyed by external id: known postings have all mutable fields
// overwritten, unknown ones are inserted. Drafts without an external id
// cannot be keyed and are skipped without aborting the page.
func (r *JobPostingRepo) ApplyBatch(ctx context.Context, drafts []model.JobDraft) (model.UpsertSummary, error) {
	var summary model.UpsertSummary

	err := pgxutil.WithPgxTx(ctx, r.db, func(tx pgx.Tx) error {
		// Per-batch name→id cache: each distinct employer hits the store
		// once per page. Correctness does not depend on it; the UNIQUE
		// constraint backs the resolver either way.
		companyIDs := make(map[string]int64)

		for _, draft := range drafts {
			if draft.ExternalID == "" {
				r.logger.WarnContext(ctx, "skipping draft without external id", "title", draft.Title)
				summary.Skipped++
				continue
			}

			name := model.NormalizeCompanyName(draft.CompanyName)
			companyID, ok := companyIDs[name]
			if !ok {
				var resolveErr error
				companyID, resolveErr = r.companies.ResolveTx(ctx, tx, name)
				if resolveErr != nil {
					return resolveErr
				}
				companyIDs[name] = companyID
			}

			inserted, upsertErr := r.upsertOne(ctx, tx, draft, companyID)
			if upsertErr != nil {
				return fmt.Errorf("upsert posting %s: %w", draft.ExternalID, apperrors.MapDBError(upsertErr))
			}
			if inserted {
				summary.Inserted++
			} else {
				summary.Updated++
			}
		}
		return nil
	})
	if err != nil {
		return model.UpsertSummary{}, err
	}
	return summary, nil
}

// upsertOne looks up an existing posting by external id and either
// overwrites its mutable fields or inserts a new row. The external id and
// surrogate id are never touched on update.
func (r *JobPostingRepo) upsertOne(
	ctx context.Context,
	tx pgx.Tx,
	draft model.JobDraft,
	companyID int64,
) (inserted bool, err error) {
	var id int64
	err = tx.QueryRow(ctx,
		`SELECT id FROM job_postings WHERE external_id = $1`, draft.ExternalID,
	).Scan(&id)

	switch {
	case err == nil:
		_, err = tx.Exec(ctx, `
			UPDATE job_postings SET
				company_id = $2,
				title = $3,
				work_address = $4,
				job_category_name = $5,
				education_requirement = $6,
				career_requirement = $7,
				registration_date = $8,
				expiration_date = $9,
				detail_url = $10
			WHERE id = $1`,
			id,
			companyID,
			draft.Title,
			draft.WorkAddress,
			draft.JobCategoryName,
			draft.EducationRequirement,
			draft.CareerRequirement,
			draft.RegistrationDate,
			draft.ExpirationDate,
			draft.DetailURL,
		)
		return false, err

	case errors.Is(err, pgx.ErrNoRows):
		_, err = tx.Exec(ctx, `
			INSERT INTO job_postings (
				external_id, company_id, title, work_address, job_category_name,
				education_requirement, career_requirement, registration_date,
				expiration_date, detail_url
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			draft.ExternalID,
			companyID,
			draft.Title,
			draft.WorkAddress,
			draft.JobCategoryName,
			draft.EducationRequirement,
			draft.CareerRequirement,
			draft.RegistrationDate,
			draft.ExpirationDate,
			draft.DetailURL,
		)
		return true, err

	default:
		return false, err
	}
}
