package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/campusforge/matchengine-backend/internal/platform/logger"
	"github.com/campusforge/matchengine-backend/internal/types"
)

// StudentRepo is the engine's read-only view of the profile, schedule,
// engagement and rating stores. Writes to those stores happen elsewhere;
// their write paths carry the invalidation-hook obligation.
type StudentRepo interface {
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.StudentProfile, error)
	ListByTenant(ctx context.Context, tx *gorm.DB, tenantID uuid.UUID) ([]*types.StudentProfile, error)
	ListAddressable(ctx context.Context, tx *gorm.DB, listing *types.Listing) ([]*types.StudentProfile, error)
	Availability(ctx context.Context, tx *gorm.DB, studentID uuid.UUID) ([]types.AvailabilityEntry, error)
	Engagements(ctx context.Context, tx *gorm.DB, studentID uuid.UUID) ([]types.Engagement, error)
	Seasons(ctx context.Context, tx *gorm.DB, studentID uuid.UUID) ([]types.SportSeason, error)
	Ratings(ctx context.Context, tx *gorm.DB, studentID uuid.UUID) ([]types.Rating, error)
}

type studentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewStudentRepo(db *gorm.DB, baseLog *logger.Logger) StudentRepo {
	return &studentRepo{db: db, log: baseLog.With("repo", "StudentRepo")}
}

func (r *studentRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.StudentProfile, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if id == uuid.Nil {
		return nil, nil
	}
	var row types.StudentProfile
	err := transaction.WithContext(ctx).
		Preload("Skills").
		Where("id = ?", id).
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

func (r *studentRepo) ListByTenant(ctx context.Context, tx *gorm.DB, tenantID uuid.UUID) ([]*types.StudentProfile, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.StudentProfile
	if tenantID == uuid.Nil {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Preload("Skills").
		Where("tenant_id = ?", tenantID).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// ListAddressable returns the student population that can see the listing
// at all given its visibility scope. Tenant-only listings reach their own
// tenant; network and open listings reach everyone the engine knows about,
// with the network signal grading the affinity.
func (r *studentRepo) ListAddressable(ctx context.Context, tx *gorm.DB, listing *types.Listing) ([]*types.StudentProfile, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.StudentProfile
	if listing == nil {
		return results, nil
	}
	q := transaction.WithContext(ctx).Preload("Skills")
	if listing.Visibility == types.VisibilityTenant {
		q = q.Where("tenant_id = ?", listing.TenantID)
	}
	if err := q.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *studentRepo) Availability(ctx context.Context, tx *gorm.DB, studentID uuid.UUID) ([]types.AvailabilityEntry, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []types.AvailabilityEntry
	if studentID == uuid.Nil {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("student_id = ?", studentID).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *studentRepo) Engagements(ctx context.Context, tx *gorm.DB, studentID uuid.UUID) ([]types.Engagement, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []types.Engagement
	if studentID == uuid.Nil {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("student_id = ?", studentID).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *studentRepo) Seasons(ctx context.Context, tx *gorm.DB, studentID uuid.UUID) ([]types.SportSeason, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []types.SportSeason
	if studentID == uuid.Nil {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("student_id = ?", studentID).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *studentRepo) Ratings(ctx context.Context, tx *gorm.DB, studentID uuid.UUID) ([]types.Rating, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []types.Rating
	if studentID == uuid.Nil {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("student_id = ?", studentID).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
