package activity

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/nexbasket/backend/internal/domain/activity"
	"go.uber.org/zap"
)

// RecentLimit caps how many feed entries the dashboard shows
const RecentLimit = 10

// Entry is an activity feed entry in API responses
type Entry struct {
	ID        uuid.UUID  `json:"id"`
	Type      string     `json:"type"`
	Message   string     `json:"message"`
	ActorID   *uuid.UUID `json:"actorId,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

// CountsInvalidator drops cached dashboard aggregates after a mutation
// that skews them
type CountsInvalidator interface {
	InvalidateCounts(ctx context.Context)
}

// Service records and serves the admin activity feed
type Service struct {
	repo        activity.Repository
	logger      *zap.Logger
	invalidator CountsInvalidator
}

// NewService creates a new activity service
func NewService(repo activity.Repository, logger *zap.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger.Named("activity"),
	}
}

// SetCountsInvalidator registers the cache to drop on each recorded
// mutation. Wired at startup; the report service is built after the
// services that record into the feed.
func (s *Service) SetCountsInvalidator(inv CountsInvalidator) {
	s.invalidator = inv
}

// Record appends an entry to the feed. Recording is best effort: a
// failure here must never fail the operation being recorded, so errors
// are logged and swallowed.
func (s *Service) Record(ctx context.Context, activityType activity.Type, message string, actorID, subjectID *uuid.UUID) {
	entry, err := activity.New(activityType, message, actorID, subjectID)
	if err != nil {
		s.logger.Warn("Dropping malformed activity entry",
			zap.String("type", activityType.String()),
			zap.Error(err),
		)
		return
	}

	if err := s.repo.Save(ctx, entry); err != nil {
		s.logger.Warn("Failed to persist activity entry",
			zap.String("type", activityType.String()),
			zap.Error(err),
		)
	}

	// The mutation behind this entry already happened, so stale
	// dashboard counts are dropped even if persisting the entry failed.
	if s.invalidator != nil {
		s.invalidator.InvalidateCounts(ctx)
	}
}

// Recent returns the newest feed entries, newest first
func (s *Service) Recent(ctx context.Context) ([]Entry, error) {
	entries, err := s.repo.FindRecent(ctx, RecentLimit)
	if err != nil {
		return nil, err
	}

	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		out = append(out, Entry{
			ID:        e.ID,
			Type:      e.Type.String(),
			Message:   e.Message,
			ActorID:   e.ActorID,
			CreatedAt: e.CreatedAt,
		})
	}
	return out, nil
}
