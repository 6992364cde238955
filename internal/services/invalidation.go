package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	redisbus "github.com/campusforge/matchengine-backend/internal/clients/redis"
	"github.com/campusforge/matchengine-backend/internal/platform/apierr"
	"github.com/campusforge/matchengine-backend/internal/platform/logger"
	"github.com/campusforge/matchengine-backend/internal/repos"
	"github.com/campusforge/matchengine-backend/internal/types"
)

// InvalidationResult reports one invalidation trigger. Queued can be lower
// than Staled when some pairs already had unprocessed queue items.
type InvalidationResult struct {
	Staled int `json:"staled"`
	Queued int `json:"queued"`
}

// InvalidationService is the explicit event → stale → enqueue pipeline.
// Each trigger runs stale-flagging and enqueueing as one transaction: no
// stale row may exist without a corresponding queue entry.
type InvalidationService interface {
	InvalidateStudentScores(ctx context.Context, studentID uuid.UUID, reason string) (*InvalidationResult, error)
	InvalidateListingScores(ctx context.Context, listingID uuid.UUID, reason string) (*InvalidationResult, error)
	// InvalidateAll is the admin-triggered global recompute: every cached
	// row goes stale and is enqueued at maximum priority.
	InvalidateAll(ctx context.Context) (*InvalidationResult, error)
}

type invalidationService struct {
	db     *gorm.DB
	scores repos.MatchScoreRepo
	queue  repos.RecomputeQueueRepo
	bus    redisbus.InvalidationBus
	log    *logger.Logger
}

// NewInvalidationService accepts a nil bus; eventing is optional.
func NewInvalidationService(db *gorm.DB, scores repos.MatchScoreRepo, queue repos.RecomputeQueueRepo, bus redisbus.InvalidationBus, baseLog *logger.Logger) InvalidationService {
	return &invalidationService{
		db:     db,
		scores: scores,
		queue:  queue,
		bus:    bus,
		log:    baseLog.With("service", "InvalidationService"),
	}
}

func (s *invalidationService) InvalidateStudentScores(ctx context.Context, studentID uuid.UUID, reason string) (*InvalidationResult, error) {
	if studentID == uuid.Nil {
		return nil, apierr.Validation("student_required", "student id required")
	}
	result, err := s.invalidate(ctx, reason, types.ReasonPriority(reason), func(tx *gorm.DB) ([]repos.ScorePair, error) {
		return s.scores.MarkStaleByStudent(ctx, tx, studentID)
	})
	if err != nil {
		return nil, err
	}
	s.publish(ctx, redisbus.InvalidationEvent{
		Reason: reason, StudentID: studentID,
		Pairs: result.Staled, Queued: result.Queued, At: time.Now().UTC(),
	})
	return result, nil
}

func (s *invalidationService) InvalidateListingScores(ctx context.Context, listingID uuid.UUID, reason string) (*InvalidationResult, error) {
	if listingID == uuid.Nil {
		return nil, apierr.Validation("listing_required", "listing id required")
	}
	result, err := s.invalidate(ctx, reason, types.ReasonPriority(reason), func(tx *gorm.DB) ([]repos.ScorePair, error) {
		return s.scores.MarkStaleByListing(ctx, tx, listingID)
	})
	if err != nil {
		return nil, err
	}
	s.publish(ctx, redisbus.InvalidationEvent{
		Reason: reason, ListingID: listingID,
		Pairs: result.Staled, Queued: result.Queued, At: time.Now().UTC(),
	})
	return result, nil
}

func (s *invalidationService) InvalidateAll(ctx context.Context) (*InvalidationResult, error) {
	result, err := s.invalidate(ctx, types.ReasonAdminGlobal, types.PriorityMax, func(tx *gorm.DB) ([]repos.ScorePair, error) {
		return s.scores.MarkAllStale(ctx, tx)
	})
	if err != nil {
		return nil, err
	}
	s.publish(ctx, redisbus.InvalidationEvent{
		Reason: types.ReasonAdminGlobal,
		Pairs:  result.Staled, Queued: result.Queued, At: time.Now().UTC(),
	})
	return result, nil
}

func (s *invalidationService) invalidate(ctx context.Context, reason string, priority int, markStale func(tx *gorm.DB) ([]repos.ScorePair, error)) (*InvalidationResult, error) {
	result := &InvalidationResult{}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		pairs, err := markStale(tx)
		if err != nil {
			return err
		}
		result.Staled = len(pairs)
		queued, err := s.queue.Enqueue(ctx, tx, pairs, reason, priority)
		if err != nil {
			return err
		}
		result.Queued = queued
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("Scores invalidated", "reason", reason, "staled", result.Staled, "queued", result.Queued)
	return result, nil
}

// publish is best-effort: a dead bus never fails the invalidation, which
// has already committed.
func (s *invalidationService) publish(ctx context.Context, event redisbus.InvalidationEvent) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Publish(ctx, event); err != nil {
		s.log.Warn("Failed to publish invalidation event", "reason", event.Reason, "error", err)
	}
}
