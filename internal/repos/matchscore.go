package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/campusforge/matchengine-backend/internal/platform/logger"
	"github.com/campusforge/matchengine-backend/internal/types"
)

// ScorePair identifies one (student, listing) cache row.
type ScorePair struct {
	StudentID uuid.UUID
	ListingID uuid.UUID
}

// RankOpts filters ranked cache reads.
type RankOpts struct {
	TenantID uuid.UUID
	MinScore float64
	Limit    int
}

type MatchScoreRepo interface {
	Get(ctx context.Context, tx *gorm.DB, studentID, listingID uuid.UUID) (*types.MatchScore, error)
	Upsert(ctx context.Context, tx *gorm.DB, row *types.MatchScore) error
	RankedByStudent(ctx context.Context, tx *gorm.DB, studentID uuid.UUID, opts RankOpts) ([]*types.MatchScore, error)
	RankedByListing(ctx context.Context, tx *gorm.DB, listingID uuid.UUID, opts RankOpts) ([]*types.MatchScore, error)
	MarkStaleByStudent(ctx context.Context, tx *gorm.DB, studentID uuid.UUID) ([]ScorePair, error)
	MarkStaleByListing(ctx context.Context, tx *gorm.DB, listingID uuid.UUID) ([]ScorePair, error)
	MarkAllStale(ctx context.Context, tx *gorm.DB) ([]ScorePair, error)
}

type matchScoreRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMatchScoreRepo(db *gorm.DB, baseLog *logger.Logger) MatchScoreRepo {
	return &matchScoreRepo{db: db, log: baseLog.With("repo", "MatchScoreRepo")}
}

func (r *matchScoreRepo) Get(ctx context.Context, tx *gorm.DB, studentID, listingID uuid.UUID) (*types.MatchScore, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if studentID == uuid.Nil || listingID == uuid.Nil {
		return nil, nil
	}
	var row types.MatchScore
	err := transaction.WithContext(ctx).
		Where("student_id = ? AND listing_id = ?", studentID, listingID).
		Limit(1).
		Find(&row).Error
	if err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, nil
	}
	return &row, nil
}

// Upsert writes the cache row keyed on (student_id, listing_id). Last
// writer wins; scores are advisory, not ledgers.
func (r *matchScoreRepo) Upsert(ctx context.Context, tx *gorm.DB, row *types.MatchScore) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if row == nil || row.StudentID == uuid.Nil || row.ListingID == uuid.Nil {
		return nil
	}
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	row.UpdatedAt = time.Now().UTC()
	return transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "student_id"}, {Name: "listing_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"tenant_id", "composite", "signals", "config_version", "stale", "computed_at", "updated_at",
			}),
		}).
		Create(row).Error
}

func (r *matchScoreRepo) RankedByStudent(ctx context.Context, tx *gorm.DB, studentID uuid.UUID, opts RankOpts) ([]*types.MatchScore, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.MatchScore
	if studentID == uuid.Nil {
		return results, nil
	}
	q := transaction.WithContext(ctx).
		Where("student_id = ? AND composite >= ?", studentID, opts.MinScore).
		Order("composite DESC")
	if opts.TenantID != uuid.Nil {
		q = q.Where("tenant_id = ?", opts.TenantID)
	}
	if opts.Limit > 0 {
		q = q.Limit(opts.Limit)
	}
	if err := q.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *matchScoreRepo) RankedByListing(ctx context.Context, tx *gorm.DB, listingID uuid.UUID, opts RankOpts) ([]*types.MatchScore, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.MatchScore
	if listingID == uuid.Nil {
		return results, nil
	}
	q := transaction.WithContext(ctx).
		Where("listing_id = ? AND composite >= ?", listingID, opts.MinScore).
		Order("composite DESC")
	if opts.TenantID != uuid.Nil {
		q = q.Where("tenant_id = ?", opts.TenantID)
	}
	if opts.Limit > 0 {
		q = q.Limit(opts.Limit)
	}
	if err := q.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *matchScoreRepo) MarkStaleByStudent(ctx context.Context, tx *gorm.DB, studentID uuid.UUID) ([]ScorePair, error) {
	if studentID == uuid.Nil {
		return nil, nil
	}
	return r.markStale(ctx, tx, "student_id = ?", studentID)
}

func (r *matchScoreRepo) MarkStaleByListing(ctx context.Context, tx *gorm.DB, listingID uuid.UUID) ([]ScorePair, error) {
	if listingID == uuid.Nil {
		return nil, nil
	}
	return r.markStale(ctx, tx, "listing_id = ?", listingID)
}

func (r *matchScoreRepo) MarkAllStale(ctx context.Context, tx *gorm.DB) ([]ScorePair, error) {
	return r.markStale(ctx, tx, "1 = 1")
}

// markStale flips the flag and returns the affected pairs so the caller can
// enqueue matching work items inside the same transaction.
func (r *matchScoreRepo) markStale(ctx context.Context, tx *gorm.DB, cond string, args ...interface{}) ([]ScorePair, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var rows []*types.MatchScore
	if err := transaction.WithContext(ctx).
		Select("id", "student_id", "listing_id").
		Where(cond, args...).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}

	if err := transaction.WithContext(ctx).
		Model(&types.MatchScore{}).
		Where(cond, args...).
		Updates(map[string]interface{}{"stale": true, "updated_at": time.Now().UTC()}).Error; err != nil {
		return nil, err
	}

	pairs := make([]ScorePair, 0, len(rows))
	for _, row := range rows {
		pairs = append(pairs, ScorePair{StudentID: row.StudentID, ListingID: row.ListingID})
	}
	return pairs, nil
}
