package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/campusforge/matchengine-backend/internal/platform/logger"
	"github.com/campusforge/matchengine-backend/internal/types"
)

type RecomputeQueueRepo interface {
	// Enqueue inserts one work item per pair, skipping pairs that already
	// have an unprocessed item. Returns the number actually inserted.
	Enqueue(ctx context.Context, tx *gorm.DB, pairs []ScorePair, reason string, priority int) (int, error)
	NextBatch(ctx context.Context, tx *gorm.DB, limit int) ([]*types.RecomputeQueueItem, error)
	MarkProcessed(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
	DeletePendingForPair(ctx context.Context, tx *gorm.DB, studentID, listingID uuid.UUID) error
	CountPending(ctx context.Context, tx *gorm.DB) (int64, error)
	PendingForStudent(ctx context.Context, tx *gorm.DB, studentID uuid.UUID) ([]*types.RecomputeQueueItem, error)
}

type recomputeQueueRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRecomputeQueueRepo(db *gorm.DB, baseLog *logger.Logger) RecomputeQueueRepo {
	return &recomputeQueueRepo{db: db, log: baseLog.With("repo", "RecomputeQueueRepo")}
}

func (r *recomputeQueueRepo) Enqueue(ctx context.Context, tx *gorm.DB, pairs []ScorePair, reason string, priority int) (int, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(pairs) == 0 {
		return 0, nil
	}

	now := time.Now().UTC()
	inserted := 0
	for _, pair := range pairs {
		if pair.StudentID == uuid.Nil || pair.ListingID == uuid.Nil {
			continue
		}
		var count int64
		if err := transaction.WithContext(ctx).
			Model(&types.RecomputeQueueItem{}).
			Where("student_id = ? AND listing_id = ? AND processed_at IS NULL", pair.StudentID, pair.ListingID).
			Count(&count).Error; err != nil {
			return inserted, err
		}
		if count > 0 {
			continue
		}
		item := &types.RecomputeQueueItem{
			ID:        uuid.New(),
			StudentID: pair.StudentID,
			ListingID: pair.ListingID,
			Reason:    reason,
			Priority:  priority,
			QueuedAt:  now,
		}
		if err := transaction.WithContext(ctx).Create(item).Error; err != nil {
			return inserted, err
		}
		inserted++
	}
	return inserted, nil
}

func (r *recomputeQueueRepo) NextBatch(ctx context.Context, tx *gorm.DB, limit int) ([]*types.RecomputeQueueItem, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if limit <= 0 {
		limit = 50
	}
	var items []*types.RecomputeQueueItem
	if err := transaction.WithContext(ctx).
		Where("processed_at IS NULL").
		Order("priority DESC, queued_at ASC").
		Limit(limit).
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// MarkProcessed stamps the item. Processed items stay in the table as
// immutable history.
func (r *recomputeQueueRepo) MarkProcessed(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if id == uuid.Nil {
		return nil
	}
	now := time.Now().UTC()
	return transaction.WithContext(ctx).
		Model(&types.RecomputeQueueItem{}).
		Where("id = ? AND processed_at IS NULL", id).
		Update("processed_at", &now).Error
}

// DeletePendingForPair drops unprocessed items for a pair. Used when a
// forced recompute makes queued work redundant; processed history is never
// touched.
func (r *recomputeQueueRepo) DeletePendingForPair(ctx context.Context, tx *gorm.DB, studentID, listingID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if studentID == uuid.Nil || listingID == uuid.Nil {
		return nil
	}
	return transaction.WithContext(ctx).
		Where("student_id = ? AND listing_id = ? AND processed_at IS NULL", studentID, listingID).
		Delete(&types.RecomputeQueueItem{}).Error
}

func (r *recomputeQueueRepo) CountPending(ctx context.Context, tx *gorm.DB) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var count int64
	err := transaction.WithContext(ctx).
		Model(&types.RecomputeQueueItem{}).
		Where("processed_at IS NULL").
		Count(&count).Error
	return count, err
}

func (r *recomputeQueueRepo) PendingForStudent(ctx context.Context, tx *gorm.DB, studentID uuid.UUID) ([]*types.RecomputeQueueItem, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var items []*types.RecomputeQueueItem
	if studentID == uuid.Nil {
		return items, nil
	}
	if err := transaction.WithContext(ctx).
		Where("student_id = ? AND processed_at IS NULL", studentID).
		Order("priority DESC, queued_at ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
