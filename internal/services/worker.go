package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/campusforge/matchengine-backend/internal/platform/logger"
	"github.com/campusforge/matchengine-backend/internal/repos"
)

// DrainResult reports one bounded drain pass. Failed items remain queued
// for a later pass; Remaining counts what is still pending afterwards.
type DrainResult struct {
	Processed int   `json:"processed"`
	Failed    int   `json:"failed"`
	Remaining int64 `json:"remaining"`
}

// WorkerService drains the recomputation queue in bounded batches. It has
// no background loop of its own: callers invoke Drain from an API call or a
// scheduled job, and repeated or concurrent invocation is safe because each
// item is retired individually after its recomputation commits.
type WorkerService interface {
	Drain(ctx context.Context, batchSize int) (*DrainResult, error)
}

type workerService struct {
	db     *gorm.DB
	queue  repos.RecomputeQueueRepo
	engine EngineService
	log    *logger.Logger
}

func NewWorkerService(db *gorm.DB, queue repos.RecomputeQueueRepo, engine EngineService, baseLog *logger.Logger) WorkerService {
	return &workerService{
		db:     db,
		queue:  queue,
		engine: engine,
		log:    baseLog.With("service", "WorkerService"),
	}
}

func (s *workerService) Drain(ctx context.Context, batchSize int) (*DrainResult, error) {
	items, err := s.queue.NextBatch(ctx, nil, batchSize)
	if err != nil {
		return nil, err
	}

	result := &DrainResult{}
	for _, item := range items {
		if ctx.Err() != nil {
			break
		}
		// One failed item never blocks the rest of the batch: it stays
		// queued for retry and the pass moves on.
		if _, err := s.engine.RecomputePair(ctx, item.StudentID, item.ListingID); err != nil {
			result.Failed++
			s.log.Warn("Queue item recomputation failed",
				"item_id", item.ID, "student_id", item.StudentID,
				"listing_id", item.ListingID, "reason", item.Reason, "error", err)
			continue
		}
		if err := s.queue.MarkProcessed(ctx, nil, item.ID); err != nil {
			result.Failed++
			s.log.Warn("Failed to mark queue item processed", "item_id", item.ID, "error", err)
			continue
		}
		result.Processed++
	}

	remaining, err := s.queue.CountPending(ctx, nil)
	if err != nil {
		return result, err
	}
	result.Remaining = remaining

	s.log.Info("Queue drained", "processed", result.Processed, "failed", result.Failed, "remaining", result.Remaining)
	return result, nil
}
