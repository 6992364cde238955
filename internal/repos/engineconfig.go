package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/campusforge/matchengine-backend/internal/platform/logger"
	"github.com/campusforge/matchengine-backend/internal/types"
)

type EngineConfigRepo interface {
	GetByTenant(ctx context.Context, tx *gorm.DB, tenantID uuid.UUID) (*types.MatchEngineConfig, error)
	Upsert(ctx context.Context, tx *gorm.DB, cfg *types.MatchEngineConfig) error
}

type engineConfigRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewEngineConfigRepo(db *gorm.DB, baseLog *logger.Logger) EngineConfigRepo {
	return &engineConfigRepo{db: db, log: baseLog.With("repo", "EngineConfigRepo")}
}

func (r *engineConfigRepo) GetByTenant(ctx context.Context, tx *gorm.DB, tenantID uuid.UUID) (*types.MatchEngineConfig, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if tenantID == uuid.Nil {
		return nil, nil
	}
	var row types.MatchEngineConfig
	err := transaction.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
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

func (r *engineConfigRepo) Upsert(ctx context.Context, tx *gorm.DB, cfg *types.MatchEngineConfig) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if cfg == nil || cfg.TenantID == uuid.Nil {
		return nil
	}
	if cfg.ID == uuid.Nil {
		cfg.ID = uuid.New()
	}
	return transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "tenant_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"weight_temporal", "weight_skills", "weight_sustainability",
				"weight_growth", "weight_trust", "weight_network",
				"score_floor", "result_cap",
				"sport_season_enabled", "network_boost_enabled",
				"version", "updated_at",
			}),
		}).
		Create(cfg).Error
}
