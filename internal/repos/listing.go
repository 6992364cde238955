package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/campusforge/matchengine-backend/internal/platform/logger"
	"github.com/campusforge/matchengine-backend/internal/types"
)

// ListingRepo is the engine's read-only view of the listing store.
type ListingRepo interface {
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Listing, error)
	ListByCompany(ctx context.Context, tx *gorm.DB, companyID uuid.UUID) ([]*types.Listing, error)
	CompaniesByOwner(ctx context.Context, tx *gorm.DB, ownerUserID uuid.UUID) ([]*types.Company, error)
}

type listingRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewListingRepo(db *gorm.DB, baseLog *logger.Logger) ListingRepo {
	return &listingRepo{db: db, log: baseLog.With("repo", "ListingRepo")}
}

func (r *listingRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Listing, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if id == uuid.Nil {
		return nil, nil
	}
	var row types.Listing
	err := transaction.WithContext(ctx).
		Preload("RequiredSkills").
		Preload("Company").
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

func (r *listingRepo) ListByCompany(ctx context.Context, tx *gorm.DB, companyID uuid.UUID) ([]*types.Listing, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.Listing
	if companyID == uuid.Nil {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Preload("RequiredSkills").
		Where("company_id = ?", companyID).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *listingRepo) CompaniesByOwner(ctx context.Context, tx *gorm.DB, ownerUserID uuid.UUID) ([]*types.Company, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.Company
	if ownerUserID == uuid.Nil {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("owner_user_id = ?", ownerUserID).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
