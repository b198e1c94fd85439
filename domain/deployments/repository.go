package deployments

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

// Repository handles database operations for deployments
type Repository struct {
	db  bun.IDB
	log *slog.Logger
}

// NewRepository creates a new deployments repository
func NewRepository(db bun.IDB, log *slog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With(logger.Scope("deployments.repo")),
	}
}

// GetActive returns the active deployment for an environment, or nil when
// none exists
func (r *Repository) GetActive(ctx context.Context, environment string) (*Deployment, error) {
	var d Deployment

	err := r.db.NewSelect().
		Model(&d).
		Where("environment = ?", environment).
		Where("is_active = ?", true).
		Order("deployed_at DESC").
		Limit(1).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.log.Error("failed to get active deployment", logger.Error(err), slog.String("environment", environment))
		return nil, apperror.ErrDatabase.WithInternal(err)
	}

	return &d, nil
}

// GetActiveWithVersion returns the active deployment with its version row
// loaded, or nil when none exists
func (r *Repository) GetActiveWithVersion(ctx context.Context, environment string) (*Deployment, error) {
	var d Deployment

	err := r.db.NewSelect().
		Model(&d).
		Relation("Version").
		Where("d.environment = ?", environment).
		Where("d.is_active = ?", true).
		Order("d.deployed_at DESC").
		Limit(1).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.log.Error("failed to get active deployment", logger.Error(err), slog.String("environment", environment))
		return nil, apperror.ErrDatabase.WithInternal(err)
	}

	return &d, nil
}

// GetActiveForUpdate locks and returns the active deployment row for an
// environment within tx, or nil when none exists. The row lock serializes
// concurrent deploys and rollbacks on the same environment.
func (r *Repository) GetActiveForUpdate(ctx context.Context, tx bun.Tx, environment string) (*Deployment, error) {
	var d Deployment

	err := tx.NewSelect().
		Model(&d).
		Where("environment = ?", environment).
		Where("is_active = ?", true).
		For("UPDATE").
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.log.Error("failed to lock active deployment", logger.Error(err), slog.String("environment", environment))
		return nil, apperror.ErrDatabase.WithInternal(err)
	}

	return &d, nil
}

// GetLatestExcluding returns the most recent deployment for an environment
// other than the given row, or nil when none exists. Used to pick the
// rollback target.
func (r *Repository) GetLatestExcluding(ctx context.Context, tx bun.IDB, environment, excludeID string) (*Deployment, error) {
	if tx == nil {
		tx = r.db
	}

	var d Deployment

	err := tx.NewSelect().
		Model(&d).
		Where("environment = ?", environment).
		Where("id != ?", excludeID).
		Order("deployed_at DESC").
		Limit(1).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.log.Error("failed to get previous deployment", logger.Error(err), slog.String("environment", environment))
		return nil, apperror.ErrDatabase.WithInternal(err)
	}

	return &d, nil
}

// DeactivateActive flips is_active off for every active row in the
// environment. Must run inside the same transaction as the insert that
// replaces it, so the partial unique index never sees two active rows.
func (r *Repository) DeactivateActive(ctx context.Context, tx bun.Tx, environment string) error {
	_, err := tx.NewUpdate().
		Model((*Deployment)(nil)).
		Set("is_active = ?", false).
		Where("environment = ?", environment).
		Where("is_active = ?", true).
		Exec(ctx)

	if err != nil {
		r.log.Error("failed to deactivate deployments", logger.Error(err), slog.String("environment", environment))
		return apperror.ErrDatabase.WithInternal(err)
	}

	return nil
}

// Insert appends a deployment row. Raw constraint errors pass through so
// the service can classify retryable conflicts.
func (r *Repository) Insert(ctx context.Context, tx bun.Tx, d *Deployment) error {
	_, err := tx.NewInsert().
		Model(d).
		Returning("id, deployed_at").
		Exec(ctx)
	return err
}

// History returns deployments for an environment, most recent first,
// with version rows loaded
func (r *Repository) History(ctx context.Context, environment string, limit int) ([]Deployment, error) {
	var ds []Deployment

	q := r.db.NewSelect().
		Model(&ds).
		Relation("Version").
		Where("d.environment = ?", environment).
		Order("d.deployed_at DESC")

	if limit > 0 {
		q = q.Limit(limit)
	}

	if err := q.Scan(ctx); err != nil {
		r.log.Error("failed to list deployment history", logger.Error(err), slog.String("environment", environment))
		return nil, apperror.ErrDatabase.WithInternal(err)
	}

	return ds, nil
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
