package services

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/campusforge/matchengine-backend/internal/domain/signals"
	"github.com/campusforge/matchengine-backend/internal/platform/apierr"
	"github.com/campusforge/matchengine-backend/internal/platform/logger"
	"github.com/campusforge/matchengine-backend/internal/repos"
	"github.com/campusforge/matchengine-backend/internal/types"
)

// attractivenessConcurrency bounds the population sweep.
const attractivenessConcurrency = 8

// AttractivenessResult answers "how appealing is this listing to the
// addressable talent pool", computed from the Skills and Network signals
// evaluated listing-side. Pure read-side; nothing is written.
type AttractivenessResult struct {
	ListingID  uuid.UUID `json:"listing_id"`
	Score      float64   `json:"score"` // mean affinity across the population
	AboveFloor int       `json:"above_floor"`
	Population int       `json:"population"`
}

// CompanyAttractiveness aggregates AttractivenessResult across all of one
// company owner's listings.
type CompanyAttractiveness struct {
	OwnerUserID          uuid.UUID `json:"owner_user_id"`
	MeanScore            float64   `json:"mean_score"`
	Listings             int       `json:"listings"`
	HighAffinityStudents int       `json:"high_affinity_students"`
}

type AttractivenessService interface {
	ComputeAttractivenessScore(ctx context.Context, listingID uuid.UUID) (*AttractivenessResult, error)
	GetCompanyAttractiveness(ctx context.Context, ownerUserID uuid.UUID) (*CompanyAttractiveness, error)
}

type attractivenessService struct {
	db       *gorm.DB
	students repos.StudentRepo
	listings repos.ListingRepo
	config   ConfigService
	log      *logger.Logger
}

func NewAttractivenessService(db *gorm.DB, students repos.StudentRepo, listings repos.ListingRepo, config ConfigService, baseLog *logger.Logger) AttractivenessService {
	return &attractivenessService{
		db:       db,
		students: students,
		listings: listings,
		config:   config,
		log:      baseLog.With("service", "AttractivenessService"),
	}
}

func (s *attractivenessService) ComputeAttractivenessScore(ctx context.Context, listingID uuid.UUID) (*AttractivenessResult, error) {
	if listingID == uuid.Nil {
		return nil, apierr.Validation("listing_required", "listing id required")
	}
	listing, err := s.listings.GetByID(ctx, nil, listingID)
	if err != nil {
		return nil, err
	}
	if listing == nil {
		return nil, apierr.NotFound("listing_not_found", "listing %s not found", listingID)
	}
	return s.scoreListing(ctx, listing)
}

func (s *attractivenessService) scoreListing(ctx context.Context, listing *types.Listing) (*AttractivenessResult, error) {
	cfg, err := s.config.Resolve(ctx, listing.TenantID)
	if err != nil {
		return nil, err
	}
	population, err := s.students.ListAddressable(ctx, nil, listing)
	if err != nil {
		return nil, err
	}

	result := &AttractivenessResult{ListingID: listing.ID, Population: len(population)}
	if len(population) == 0 {
		return result, nil
	}

	// Affinity is the floor-relevant slice of the composite: Skills and
	// Network, renormalized to their combined weight.
	weightSkills := cfg.WeightSkills
	weightNetwork := cfg.WeightNetwork
	if weightSkills+weightNetwork <= 0 {
		weightSkills, weightNetwork = 1, 1
	}

	var mu sync.Mutex
	var sum float64
	var aboveFloor int

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(attractivenessConcurrency)
	for _, student := range population {
		student := student
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}
			skills := signals.Skills(student.Skills, listing.RequiredSkills)
			network := signals.Network(student, listing, cfg.NetworkBoostEnabled)
			affinity := (weightSkills*skills.Value + weightNetwork*network.Value) / (weightSkills + weightNetwork)

			mu.Lock()
			sum += affinity
			if affinity >= cfg.ScoreFloor {
				aboveFloor++
			}
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result.Score = sum / float64(len(population))
	result.AboveFloor = aboveFloor
	return result, nil
}

func (s *attractivenessService) GetCompanyAttractiveness(ctx context.Context, ownerUserID uuid.UUID) (*CompanyAttractiveness, error) {
	if ownerUserID == uuid.Nil {
		return nil, apierr.Validation("owner_required", "owner user id required")
	}
	companies, err := s.listings.CompaniesByOwner(ctx, nil, ownerUserID)
	if err != nil {
		return nil, err
	}
	if len(companies) == 0 {
		return nil, apierr.NotFound("company_not_found", "no company for user %s", ownerUserID)
	}

	agg := &CompanyAttractiveness{OwnerUserID: ownerUserID}
	var scoreSum float64
	for _, company := range companies {
		listings, err := s.listings.ListByCompany(ctx, nil, company.ID)
		if err != nil {
			return nil, err
		}
		for _, listing := range listings {
			res, err := s.scoreListing(ctx, listing)
			if err != nil {
				return nil, err
			}
			agg.Listings++
			agg.HighAffinityStudents += res.AboveFloor
			scoreSum += res.Score
		}
	}
	if agg.Listings > 0 {
		agg.MeanScore = scoreSum / float64(agg.Listings)
	}
	return agg, nil
}
