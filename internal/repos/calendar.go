package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/campusforge/matchengine-backend/internal/platform/logger"
	"github.com/campusforge/matchengine-backend/internal/types"
)

// CalendarRepo reads the tenant academic calendar.
type CalendarRepo interface {
	EntriesByTenant(ctx context.Context, tx *gorm.DB, tenantID uuid.UUID) ([]types.AcademicCalendarEntry, error)
}

type calendarRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCalendarRepo(db *gorm.DB, baseLog *logger.Logger) CalendarRepo {
	return &calendarRepo{db: db, log: baseLog.With("repo", "CalendarRepo")}
}

func (r *calendarRepo) EntriesByTenant(ctx context.Context, tx *gorm.DB, tenantID uuid.UUID) ([]types.AcademicCalendarEntry, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []types.AcademicCalendarEntry
	if tenantID == uuid.Nil {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("start_date ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
