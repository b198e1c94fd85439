package deployments

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	retry "github.com/avast/retry-go/v4"

	"github.com/promptops-dev/promptops/domain/versions"
	"github.com/promptops-dev/promptops/internal/cache"
	"github.com/promptops-dev/promptops/internal/database"
	"github.com/promptops-dev/promptops/pkg/apperror"
	"github.com/promptops-dev/promptops/pkg/logger"
)

const (
	// DefaultHistoryLimit is the default page size for deployment history
	DefaultHistoryLimit = 10
	// MaxHistoryLimit is the maximum page size for deployment history
	MaxHistoryLimit = 100

	// transaction retry policy for serialization conflicts on the
	// per-environment active row
	retryAttempts = 3
	retryDelay    = 50 * time.Millisecond
)

// Service owns the active-version-per-environment invariant
type Service struct {
	repo     *Repository
	versions *versions.Repository
	cache    *cache.Cache
	log      *slog.Logger
}

// NewService creates a new deployments service
func NewService(repo *Repository, versionsRepo *versions.Repository, c *cache.Cache, log *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		versions: versionsRepo,
		cache:    c,
		log:      log.With(logger.Scope("deployments.svc")),
	}
}

// Deploy makes the given version the active deployment for an environment.
// The deactivate-and-insert runs as one transaction, serialized per
// environment by the row lock on the active row and backstopped by the
// partial unique index; on a serialization conflict the whole transaction
// retries from fresh reads. Re-deploying the already-active version still
// appends a row: deployments are an audit trail, not deduplicated content.
func (s *Service) Deploy(ctx context.Context, environment, versionHash, actor string) (*Deployment, error) {
	if !IsValidEnvironment(environment) {
		return nil, apperror.ErrBadRequest.WithMessage(
			fmt.Sprintf("unknown environment %q, must be one of %v", environment, ValidEnvironments))
	}

	version, err := s.versions.GetByHash(ctx, versionHash)
	if err != nil {
		return nil, err
	}
	if version == nil {
		return nil, apperror.NewNotFound("version", versionHash)
	}

	var deployment *Deployment
	err = retry.Do(
		func() error {
			var attemptErr error
			deployment, attemptErr = s.activate(ctx, &Deployment{
				VersionID:   version.ID,
				Environment: environment,
				DeployedBy:  actor,
				IsActive:    true,
				Action:      ActionDeploy,
			})
			return attemptErr
		},
		retry.Attempts(retryAttempts),
		retry.Delay(retryDelay),
		retry.RetryIf(database.IsRetryable),
		retry.LastErrorOnly(true),
		retry.Context(ctx),
	)
	if err != nil {
		return nil, s.wrapStoreError(err)
	}

	// Invalidation runs after commit: a racing read may briefly repopulate
	// the old value, bounded by the cache TTL.
	s.cache.Invalidate(ctx, environment)

	s.log.Info("version deployed",
		slog.String("environment", environment),
		slog.String("hash", version.ShortHash()),
		slog.String("actor", actor),
	)

	deployment.Version = version
	return deployment, nil
}

// Rollback reactivates the previously deployed version for an environment.
// It appends a new deployment row referencing the prior version rather than
// flipping old rows, so the table stays append-only and repeated rollbacks
// toggle between the two most recent versions.
func (s *Service) Rollback(ctx context.Context, environment string) (*Deployment, error) {
	if !IsValidEnvironment(environment) {
		return nil, apperror.ErrBadRequest.WithMessage(
			fmt.Sprintf("unknown environment %q, must be one of %v", environment, ValidEnvironments))
	}

	var deployment *Deployment
	var rolledBackFrom string

	err := retry.Do(
		func() error {
			tx, err := s.repo.BeginTx(ctx)
			if err != nil {
				return err
			}
			defer tx.Rollback()

			current, err := s.repo.GetActiveForUpdate(ctx, tx.Tx, environment)
			if err != nil {
				return err
			}
			if current == nil {
				return apperror.NewInvalidState("no active deployment")
			}

			previous, err := s.repo.GetLatestExcluding(ctx, tx.Tx, environment, current.ID)
			if err != nil {
				return err
			}
			if previous == nil {
				return apperror.NewInvalidState("no previous deployment")
			}

			if err := s.repo.DeactivateActive(ctx, tx.Tx, environment); err != nil {
				return err
			}

			d := &Deployment{
				VersionID:   previous.VersionID,
				Environment: environment,
				DeployedBy:  "system",
				IsActive:    true,
				Action:      ActionRollback,
			}
			if err := s.repo.Insert(ctx, tx.Tx, d); err != nil {
				return err
			}

			if err := tx.Commit(); err != nil {
				return err
			}

			deployment = d
			rolledBackFrom = current.VersionID
			return nil
		},
		retry.Attempts(retryAttempts),
		retry.Delay(retryDelay),
		retry.RetryIf(database.IsRetryable),
		retry.LastErrorOnly(true),
		retry.Context(ctx),
	)
	if err != nil {
		return nil, s.wrapStoreError(err)
	}

	s.cache.Invalidate(ctx, environment)

	// Best effort: the row is already committed, a failed load only costs
	// the response its version details.
	if v, verr := s.versions.GetByID(ctx, deployment.VersionID); verr == nil {
		deployment.Version = v
	}

	s.log.Info("deployment rolled back",
		slog.String("environment", environment),
		slog.String("from_version_id", rolledBackFrom),
		slog.String("to_version_id", deployment.VersionID),
	)

	return deployment, nil
}

// activate performs the atomic swap for a deploy: lock the active row,
// deactivate it, append the replacement.
func (s *Service) activate(ctx context.Context, d *Deployment) (*Deployment, error) {
	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if _, err := s.repo.GetActiveForUpdate(ctx, tx.Tx, d.Environment); err != nil {
		return nil, err
	}

	if err := s.repo.DeactivateActive(ctx, tx.Tx, d.Environment); err != nil {
		return nil, err
	}

	if err := s.repo.Insert(ctx, tx.Tx, d); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return d, nil
}

// GetActive returns the active deployment for an environment
func (s *Service) GetActive(ctx context.Context, environment string) (*Deployment, error) {
	if !IsValidEnvironment(environment) {
		return nil, apperror.ErrBadRequest.WithMessage(
			fmt.Sprintf("unknown environment %q, must be one of %v", environment, ValidEnvironments))
	}

	d, err := s.repo.GetActiveWithVersion(ctx, environment)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, apperror.ErrNotFound.WithMessage(
			fmt.Sprintf("no active deployment for environment: %s", environment))
	}
	return d, nil
}

// History returns the deployment audit trail for an environment,
// most recent first
func (s *Service) History(ctx context.Context, environment string, limit int) ([]Deployment, error) {
	if !IsValidEnvironment(environment) {
		return nil, apperror.ErrBadRequest.WithMessage(
			fmt.Sprintf("unknown environment %q, must be one of %v", environment, ValidEnvironments))
	}

	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}

	return s.repo.History(ctx, environment, limit)
}

// wrapStoreError keeps typed errors intact and wraps everything else as a
// database failure
func (s *Service) wrapStoreError(err error) error {
	var appErr *apperror.Error
	if errors.As(err, &appErr) {
		return appErr
	}
	s.log.Error("deployment transaction failed", logger.Error(err))
	return apperror.ErrDatabase.WithInternal(err)
}
