package prompts

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/promptops-dev/promptops/domain/deployments"
	"github.com/promptops-dev/promptops/internal/cache"
	"github.com/promptops-dev/promptops/internal/config"
	"github.com/promptops-dev/promptops/pkg/apperror"
	"github.com/promptops-dev/promptops/pkg/logger"
)

// Service serves the active prompt for an environment, cache-first.
type Service struct {
	deployments *deployments.Repository
	cache       *cache.Cache
	cfg         *config.Config
	log         *slog.Logger
}

func NewService(repo *deployments.Repository, c *cache.Cache, cfg *config.Config, log *slog.Logger) *Service {
	return &Service{
		deployments: repo,
		cache:       c,
		cfg:         cfg,
		log:         log.With(logger.Scope("prompts.service")),
	}
}

// GetActive returns the prompt currently deployed to environment. The
// cached copy wins when present; a miss falls through to the database
// and repopulates the cache. A stale or corrupt cache entry is treated
// as a miss, never as an error.
func (s *Service) GetActive(ctx context.Context, environment, name string) (*Snapshot, error) {
	if !deployments.IsValidEnvironment(environment) {
		return nil, apperror.ErrBadRequest.WithMessage("unknown environment: " + environment)
	}

	if raw, ok := s.cache.Lookup(ctx, environment, name); ok {
		var snap Snapshot
		if err := json.Unmarshal(raw, &snap); err == nil {
			return &snap, nil
		}
		s.log.WarnContext(ctx, "discarding undecodable cache entry",
			slog.String("environment", environment), slog.String("name", name))
	}

	dep, err := s.deployments.GetActiveWithVersion(ctx, environment)
	if err != nil {
		return nil, err
	}
	if dep == nil || dep.Version == nil {
		return nil, apperror.ErrNotFound.WithMessage("no active prompt found for environment: " + environment)
	}

	snap := NewSnapshot(dep)

	if raw, err := json.Marshal(snap); err == nil {
		s.cache.Populate(ctx, environment, name, raw, s.cfg.Cache.TTL)
	}

	return snap, nil
}
