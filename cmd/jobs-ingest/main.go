// Command jobs-ingest runs one ingestion pass over the Seoul open-API
// job dataset: paginated fetch, normalization, and idempotent upsert
// into Postgres. Scheduling recurring runs belongs to the caller (cron,
// systemd timer, etc.).
package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/the11job/jobs-ingest/config"
	"github.com/the11job/jobs-ingest/internal/adapters/runlock"
	"github.com/the11job/jobs-ingest/internal/bootstrap"
	"github.com/the11job/jobs-ingest/internal/data"
	"github.com/the11job/jobs-ingest/internal/ingest"
	"github.com/the11job/jobs-ingest/internal/seouljob"
)

func main() {
	ctx := context.Background()
	logger := bootstrap.InitLogger()
	if err := run(ctx, logger); err != nil {
		logger.ErrorContext(ctx, "fatal error", "error", err)
		os.Exit(1) //nolint:forbidigo // Main entrypoint should exit with non-zero status on fatal errors.
	}
}

func run(ctx context.Context, logger *slog.Logger) error {
	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		return err
	}
	if err = bootstrap.ValidateConfig(&cfg); err != nil {
		return err
	}

	logger.InfoContext(ctx, "starting ingestion service",
		"dev", cfg.IsDev,
		"db_host", cfg.Postgres.Host,
		"db_name", cfg.Postgres.Name,
		"endpoint", cfg.SeoulAPI.Endpoint,
		"page_size", cfg.Ingest.PageSize,
	)

	// A stop signal cancels the context; the in-flight page finishes or
	// aborts inside its own transaction, so no partial batch survives.
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := bootstrap.ConnectDB(cfg.Postgres, logger)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			logger.ErrorContext(ctx, "close database failed", "error", cerr)
		}
	}()

	redisClient, err := bootstrap.ConnectRedis(cfg.Redis, logger)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer func() {
			if cerr := redisClient.Close(); cerr != nil {
				logger.ErrorContext(ctx, "close redis failed", "error", cerr)
			}
		}()
	}

	if cfg.Postgres.RunMigrationsOnStart {
		if err = bootstrap.RunMigrations(ctx, db, logger); err != nil {
			return err
		}
	} else {
		logger.InfoContext(ctx, "skipping database migrations on startup", "reason", "disabled via config")
	}

	if redisClient != nil {
		lock := runlock.New(redisClient, cfg.Lock.Key, cfg.Lock.TTL)
		if err = lock.Acquire(ctx); err != nil {
			if errors.Is(err, runlock.ErrHeld) {
				logger.WarnContext(ctx, "another ingestion run holds the lock", "key", cfg.Lock.Key)
			}
			return err
		}
		defer func() {
			// Release outlives a canceled run context.
			releaseCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if rerr := lock.Release(releaseCtx); rerr != nil {
				logger.ErrorContext(ctx, "release ingestion lock failed", "error", rerr)
			}
		}()
	}

	runner, err := wireRunner(&cfg, db, logger)
	if err != nil {
		return err
	}

	summary, err := runner.Run(ctx)
	logger.InfoContext(ctx, "ingestion summary",
		"succeeded", summary.Succeeded,
		"processed", summary.Processed,
		"inserted", summary.Inserted,
		"updated", summary.Updated,
		"skipped", summary.Skipped,
		"total", summary.Total,
		"calls", summary.Calls,
	)
	return err
}

func wireRunner(cfg *config.AppConfig, db *sql.DB, logger *slog.Logger) (*ingest.Runner, error) {
	client, err := seouljob.NewClient(seouljob.Config{
		BaseURL:      cfg.SeoulAPI.BaseURL,
		Key:          cfg.SeoulAPI.Key,
		Endpoint:     cfg.SeoulAPI.Endpoint,
		Timeout:      cfg.SeoulAPI.Timeout,
		Retries:      cfg.SeoulAPI.Retries,
		MaxBodyBytes: cfg.SeoulAPI.MaxBodyBytes,
	})
	if err != nil {
		return nil, err
	}

	companies := data.NewCompanyRepo(logger)
	store := data.NewJobPostingRepo(db, companies, logger)

	return ingest.NewRunner(ingest.RunnerOptions{
		Fetcher:   client,
		Store:     store,
		Mapper:    ingest.Mapper{DetailURLPrefix: cfg.Ingest.DetailURLPrefix},
		PageSize:  cfg.Ingest.PageSize,
		MaxCalls:  cfg.Ingest.MaxCalls,
		CallDelay: cfg.Ingest.CallDelay,
		Logger:    logger,
	})
}
