package versions

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/uptrace/bun"

	"github.com/promptops-dev/promptops/internal/database"
	"github.com/promptops-dev/promptops/pkg/apperror"
	"github.com/promptops-dev/promptops/pkg/logger"
)

// Repository handles database operations for version nodes
type Repository struct {
	db  bun.IDB
	log *slog.Logger
}

// NewRepository creates a new versions repository
func NewRepository(db bun.IDB, log *slog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With(logger.Scope("versions.repo")),
	}
}

// GetByHash returns the version with the given hash, or nil when absent
func (r *Repository) GetByHash(ctx context.Context, hash string) (*PromptVersion, error) {
	var v PromptVersion

	err := r.db.NewSelect().
		Model(&v).
		Where("hash = ?", hash).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.log.Error("failed to get version by hash", logger.Error(err), slog.String("hash", hash))
		return nil, apperror.ErrDatabase.WithInternal(err)
	}

	return &v, nil
}

// GetByID returns the version with the given id, or nil when absent
func (r *Repository) GetByID(ctx context.Context, id string) (*PromptVersion, error) {
	var v PromptVersion

	err := r.db.NewSelect().
		Model(&v).
		Where("id = ?", id).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.log.Error("failed to get version by id", logger.Error(err), slog.String("id", id))
		return nil, apperror.ErrDatabase.WithInternal(err)
	}

	return &v, nil
}

// Head returns the most recently created version overall, or nil when the
// store is empty
func (r *Repository) Head(ctx context.Context) (*PromptVersion, error) {
	var v PromptVersion

	err := r.db.NewSelect().
		Model(&v).
		Order("created_at DESC").
		Limit(1).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.log.Error("failed to get head version", logger.Error(err))
		return nil, apperror.ErrDatabase.WithInternal(err)
	}

	return &v, nil
}

// Create inserts a new version node. The unique constraint on hash is the
// sole arbiter under concurrency: when two commits race with identical
// content, the loser re-reads and returns the winner's row.
func (r *Repository) Create(ctx context.Context, tx bun.IDB, v *PromptVersion) (*PromptVersion, error) {
	if tx == nil {
		tx = r.db
	}

	_, err := tx.NewInsert().
		Model(v).
		Returning("id, created_at").
		Exec(ctx)

	if err == nil {
		return v, nil
	}

	if database.IsUniqueViolation(err) {
		// Lost the race. Read from the base connection: the winner's
		// transaction has committed, ours may be poisoned.
		winner, readErr := r.GetByHash(ctx, v.Hash)
		if readErr != nil {
			return nil, readErr
		}
		if winner == nil {
			r.log.Error("unique violation but winner not found", slog.String("hash", v.Hash))
			return nil, apperror.ErrDatabase.WithInternal(err)
		}
		return winner, nil
	}

	r.log.Error("failed to create version", logger.Error(err), slog.String("hash", v.Hash))
	return nil, apperror.ErrDatabase.WithInternal(err)
}

// RecordCommitEvent appends a lineage event for a commit call
func (r *Repository) RecordCommitEvent(ctx context.Context, tx bun.IDB, ev *CommitEvent) error {
	if tx == nil {
		tx = r.db
	}

	_, err := tx.NewInsert().
		Model(ev).
		Exec(ctx)

	if err != nil {
		r.log.Error("failed to record commit event", logger.Error(err), slog.String("hash", ev.VersionHash))
		return apperror.ErrDatabase.WithInternal(err)
	}

	return nil
}

// CommitEvents returns the lineage events for a version hash, newest first
func (r *Repository) CommitEvents(ctx context.Context, hash string, limit int) ([]CommitEvent, error) {
	var events []CommitEvent

	q := r.db.NewSelect().
		Model(&events).
		Where("version_hash = ?", hash).
		Order("created_at DESC")

	if limit > 0 {
		q = q.Limit(limit)
	}

	if err := q.Scan(ctx); err != nil {
		r.log.Error("failed to list commit events", logger.Error(err), slog.String("hash", hash))
		return nil, apperror.ErrDatabase.WithInternal(err)
	}

	return events, nil
}

// BeginTx starts a transaction wrapped so Rollback is safe after Commit
func (r *Repository) BeginTx(ctx context.Context) (*database.SafeTx, error) {
	tx, err := database.BeginSafeTx(ctx, r.db)
	if err != nil {
		r.log.Error("failed to begin transaction", logger.Error(err))
		return nil, apperror.ErrDatabase.WithInternal(err)
	}
	return tx, nil
}
