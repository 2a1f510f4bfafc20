package ingest

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/the11job/jobs-ingest/internal/domain/model"
	"github.com/the11job/jobs-ingest/internal/seouljob"
)

// Fetcher fetches one raw page window from the upstream API. A successful
// call with no body is reported as seouljob.ErrEmptyResponse.
type Fetcher interface {
	FetchPage(ctx context.Context, start, end int) ([]byte, error)
}

// Store applies one page of drafts as a single atomic batch.
type Store interface {
	ApplyBatch(ctx context.Context, drafts []model.JobDraft) (model.UpsertSummary, error)
}

// Summary reports the terminal state of one ingestion run. Counts reflect
// pages committed before any failure; committed pages are never rolled
// back retroactively.
type Summary struct {
	Processed int
	Inserted  int
	Updated   int
	Skipped   int
	Total     int
	Calls     int
	Succeeded bool
}

// RunnerOptions holds the dependencies for creating a Runner.
type RunnerOptions struct {
	Fetcher Fetcher
	Store   Store
	Mapper  Mapper

	// PageSize is the window width per API call.
	PageSize int
	// MaxCalls is the safety ceiling on API calls per run.
	MaxCalls int
	// CallDelay paces successive fetches.
	CallDelay time.Duration

	Logger *slog.Logger
}

// Runner drives the pagination loop: fetch, parse, map, upsert, decide.
// Pages are processed strictly in index order; the run is sequential.
type Runner struct {
	fetcher  Fetcher
	store    Store
	mapper   Mapper
	pageSize int
	maxCalls int
	limiter  *rate.Limiter
	logger   *slog.Logger
}

// NewRunner creates a new ingestion runner with the given options.
func NewRunner(opts RunnerOptions) (*Runner, error) {
	if opts.Fetcher == nil {
		return nil, errors.New("fetcher is required")
	}
	if opts.Store == nil {
		return nil, errors.New("store is required")
	}
	if opts.PageSize < 1 {
		opts.PageSize = 1000
	}
	if opts.MaxCalls < 1 {
		opts.MaxCalls = 1000
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	// One token per call delay; the bucket starts full so the first fetch
	// is not delayed. Zero delay disables pacing.
	limit := rate.Inf
	if opts.CallDelay > 0 {
		limit = rate.Every(opts.CallDelay)
	}

	return &Runner{
		fetcher:  opts.Fetcher,
		store:    opts.Store,
		mapper:   opts.Mapper,
		pageSize: opts.PageSize,
		maxCalls: opts.MaxCalls,
		limiter:  rate.NewLimiter(limit, 1),
		logger:   opts.Logger,
	}, nil
}

// runState threads the loop's counters through each iteration. There is
// no shared mutable state outside it; the terminal Summary is derived
// from its final value.
type runState struct {
	calls     int
	processed int
	inserted  int
	updated   int
	skipped   int
	total     int
}

func (s runState) summary(succeeded bool) Summary {
	return Summary{
		Processed: s.processed,
		Inserted:  s.inserted,
		Updated:   s.updated,
		Skipped:   s.skipped,
		Total:     s.total,
		Calls:     s.calls,
		Succeeded: succeeded,
	}
}

// Run executes one ingestion pass and returns its summary. The error is
// non-nil exactly when Summary.Succeeded is false; counts then cover the
// pages committed before the failure.
func (r *Runner) Run(ctx context.Context) (Summary, error) {
	logger := r.logger.With("run_id", uuid.NewString())
	logger.InfoContext(ctx, "ingestion run starting", "page_size", r.pageSize, "max_calls", r.maxCalls)

	var state runState
	for {
		// Inter-call pacing per the upstream usage policy. The limiter's
		// bucket starts full, so only calls after the first wait.
		if err := r.limiter.Wait(ctx); err != nil {
			return r.fail(ctx, logger, state, err)
		}

		start := state.calls*r.pageSize + 1
		end := start + r.pageSize - 1
		logger.InfoContext(ctx, "fetching page", "start", start, "end", end, "call", state.calls+1)

		raw, err := r.fetcher.FetchPage(ctx, start, end)
		if errors.Is(err, seouljob.ErrEmptyResponse) {
			return r.finish(ctx, logger, state, "empty response, treating as end of data")
		}
		if err != nil {
			return r.fail(ctx, logger, state, err)
		}
		state.calls++

		env, err := seouljob.Parse(raw)
		if err != nil {
			// Malformed envelopes are fatal to the whole run, unlike
			// malformed field values inside a record.
			return r.fail(ctx, logger, state, err)
		}
		page := env.Page()

		if state.calls == 1 {
			total, ok := env.TotalCount()
			if !ok {
				logger.WarnContext(ctx, "total count missing or malformed, treating as zero",
					"raw", env.ListTotalCount)
			}
			if env.Result.Code != "" {
				logger.InfoContext(ctx, "upstream result",
					"code", env.Result.Code, "message", env.Result.Message)
			}
			state.total = total
			if state.total == 0 {
				return r.finish(ctx, logger, state, "upstream reports no data")
			}
		}

		if len(page.Records) == 0 {
			return r.finish(ctx, logger, state, "page carried no records, treating as end of data")
		}

		drafts := make([]model.JobDraft, 0, len(page.Records))
		for _, row := range page.Records {
			drafts = append(drafts, r.mapper.ToDraft(row))
		}

		upserted, err := r.store.ApplyBatch(ctx, drafts)
		if err != nil {
			return r.fail(ctx, logger, state, err)
		}
		state.processed += len(page.Records)
		state.inserted += upserted.Inserted
		state.updated += upserted.Updated
		state.skipped += upserted.Skipped

		logger.InfoContext(ctx, "page committed",
			"records", len(page.Records),
			"inserted", upserted.Inserted,
			"updated", upserted.Updated,
			"skipped", upserted.Skipped,
			"processed", state.processed,
			"total", state.total,
		)

		if state.processed >= state.total {
			return r.finish(ctx, logger, state, "all records processed")
		}
		if state.calls >= r.maxCalls {
			logger.WarnContext(ctx, "call ceiling reached before exhausting data",
				"calls", state.calls, "processed", state.processed, "total", state.total)
			return r.finish(ctx, logger, state, "call ceiling reached")
		}
	}
}

func (r *Runner) finish(ctx context.Context, logger *slog.Logger, state runState, reason string) (Summary, error) {
	summary := state.summary(true)
	logger.InfoContext(ctx, "ingestion run done",
		"reason", reason,
		"processed", summary.Processed,
		"inserted", summary.Inserted,
		"updated", summary.Updated,
		"skipped", summary.Skipped,
		"total", summary.Total,
		"calls", summary.Calls,
	)
	return summary, nil
}

func (r *Runner) fail(ctx context.Context, logger *slog.Logger, state runState, err error) (Summary, error) {
	summary := state.summary(false)
	logger.ErrorContext(ctx, "ingestion run failed",
		"error", err,
		"processed", summary.Processed,
		"inserted", summary.Inserted,
		"updated", summary.Updated,
		"total", summary.Total,
		"calls", summary.Calls,
	)
	return summary, err
}
