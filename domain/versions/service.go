package versions

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/promptops-dev/promptops/pkg/apperror"
	"github.com/promptops-dev/promptops/pkg/logger"
)

const (
	// DefaultHistoryLimit is the default number of versions returned by History
	DefaultHistoryLimit = 10
	// MaxHistoryLimit is the maximum number of versions returned by History
	MaxHistoryLimit = 100
)

// Service implements the content-addressable version store
type Service struct {
	repo *Repository
	log  *slog.Logger
}

// NewService creates a new versions service
func NewService(repo *Repository, log *slog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log.With(logger.Scope("versions.svc")),
	}
}

// CommitParams carries everything a commit call supplies
type CommitParams struct {
	Content  string
	Metadata map[string]any
	Tags     []string
	Author   string
	Message  string
	ParentID *string
}

// Commit stores a new version node, or returns the existing node when the
// computed hash already exists. Idempotent on hash: a dedup hit ignores the
// supplied parent, tags and message for the node itself, but the commit
// event log still records what the caller intended, so lineage is never
// silently dropped.
func (s *Service) Commit(ctx context.Context, p CommitParams) (*PromptVersion, error) {
	content := strings.TrimSpace(p.Content)
	if content == "" {
		return nil, apperror.NewValidation("content must not be empty")
	}

	var parentHash *string
	if p.ParentID != nil {
		if _, err := uuid.Parse(*p.ParentID); err != nil {
			return nil, apperror.NewValidation("parent_id must be a valid UUID")
		}
		parent, err := s.repo.GetByID(ctx, *p.ParentID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, apperror.NewNotFound("parent version", *p.ParentID)
		}
		parentHash = &parent.Hash
	}

	hash := ComputeHash(content, p.Metadata)

	event := &CommitEvent{
		VersionHash: hash,
		ParentHash:  parentHash,
		Author:      p.Author,
		Message:     p.Message,
	}

	existing, err := s.repo.GetByHash(ctx, hash)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if err := s.repo.RecordCommitEvent(ctx, nil, event); err != nil {
			return nil, err
		}
		s.log.Debug("commit deduplicated",
			slog.String("hash", existing.ShortHash()),
			slog.String("author", p.Author),
		)
		return existing, nil
	}

	metadata := make(map[string]any, len(p.Metadata)+1)
	for k, v := range p.Metadata {
		metadata[k] = v
	}
	metadata[MetaCommitMessage] = p.Message

	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}

	node := &PromptVersion{
		Hash:     hash,
		Content:  content,
		Metadata: metadata,
		Tags:     tags,
		Author:   p.Author,
		ParentID: p.ParentID,
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	created, err := s.repo.Create(ctx, tx.Tx, node)
	if err != nil {
		return nil, err
	}

	if created != node {
		// Lost a concurrent race with identical content. Our transaction is
		// aborted by the constraint violation; record the event standalone.
		tx.Rollback()
		if err := s.repo.RecordCommitEvent(ctx, nil, event); err != nil {
			return nil, err
		}
		return created, nil
	}

	if err := s.repo.RecordCommitEvent(ctx, tx.Tx, event); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		s.log.Error("failed to commit transaction", logger.Error(err))
		return nil, apperror.ErrDatabase.WithInternal(err)
	}

	s.log.Info("version committed",
		slog.String("hash", node.ShortHash()),
		slog.String("author", p.Author),
	)

	return node, nil
}

// GetByHash returns the version node for a hash
func (s *Service) GetByHash(ctx context.Context, hash string) (*PromptVersion, error) {
	v, err := s.repo.GetByHash(ctx, hash)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, apperror.NewNotFound("version", hash)
	}
	return v, nil
}

// History walks the parent chain newest-first, starting from startID or
// from the most recently created node when startID is empty. The walk
// stops at limit nodes or at a node with no parent, and a visited guard
// makes it terminate even on corrupted parent chains.
func (s *Service) History(ctx context.Context, startID string, limit int) ([]PromptVersion, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}

	var current *PromptVersion
	var err error

	if startID != "" {
		if _, uerr := uuid.Parse(startID); uerr != nil {
			return nil, apperror.NewValidation("start_id must be a valid UUID")
		}
		current, err = s.repo.GetByID(ctx, startID)
		if err != nil {
			return nil, err
		}
		if current == nil {
			return nil, apperror.NewNotFound("version", startID)
		}
	} else {
		current, err = s.repo.Head(ctx)
		if err != nil {
			return nil, err
		}
	}

	history := []PromptVersion{}
	visited := make(map[string]bool)

	for current != nil && len(history) < limit {
		if visited[current.ID] {
			s.log.Warn("cycle detected in parent chain", slog.String("id", current.ID))
			break
		}
		visited[current.ID] = true
		history = append(history, *current)

		if current.ParentID == nil {
			break
		}
		current, err = s.repo.GetByID(ctx, *current.ParentID)
		if err != nil {
			return nil, err
		}
	}

	return history, nil
}

// Lineage returns the commit events recorded for a version hash, newest
// first. Events exist even for deduplicated commits, so this is the full
// record of commit intent for the content.
func (s *Service) Lineage(ctx context.Context, hash string, limit int) ([]CommitEvent, error) {
	v, err := s.repo.GetByHash(ctx, hash)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, apperror.NewNotFound("version", hash)
	}

	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}

	return s.repo.CommitEvents(ctx, hash, limit)
}

// Diff computes the unified diff between two versions identified by hash
func (s *Service) Diff(ctx context.Context, hashA, hashB string) (*DiffResult, error) {
	a, err := s.repo.GetByHash(ctx, hashA)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, apperror.NewNotFound("version", hashA)
	}

	b, err := s.repo.GetByHash(ctx, hashB)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, apperror.NewNotFound("version", hashB)
	}

	return ComputeDiff(a, b)
}
