package services

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/campusforge/matchengine-backend/internal/platform/apierr"
	"github.com/campusforge/matchengine-backend/internal/platform/logger"
	"github.com/campusforge/matchengine-backend/internal/repos"
	"github.com/campusforge/matchengine-backend/internal/types"
)

// RankOpts filters a ranked cache read. MinScore below the tenant's score
// floor is raised to the floor; Limit above the tenant's result cap is
// capped.
type RankOpts struct {
	TenantID uuid.UUID
	MinScore float64
	Limit    int
}

// RankingService serves ranked match queries from the score cache only.
// It never triggers computation: a missing pair is simply absent until a
// recomputation populates it.
type RankingService interface {
	GetStudentMatches(ctx context.Context, studentID uuid.UUID, opts RankOpts) ([]*types.MatchScore, error)
	GetListingMatches(ctx context.Context, listingID uuid.UUID, opts RankOpts) ([]*types.MatchScore, error)
}

type rankingService struct {
	db     *gorm.DB
	scores repos.MatchScoreRepo
	config ConfigService
	log    *logger.Logger
}

func NewRankingService(db *gorm.DB, scores repos.MatchScoreRepo, config ConfigService, baseLog *logger.Logger) RankingService {
	return &rankingService{
		db:     db,
		scores: scores,
		config: config,
		log:    baseLog.With("service", "RankingService"),
	}
}

func (s *rankingService) GetStudentMatches(ctx context.Context, studentID uuid.UUID, opts RankOpts) ([]*types.MatchScore, error) {
	repoOpts, err := s.effectiveOpts(ctx, opts)
	if err != nil {
		return nil, err
	}
	if studentID == uuid.Nil {
		return nil, apierr.Validation("student_required", "student id required")
	}
	return s.scores.RankedByStudent(ctx, nil, studentID, repoOpts)
}

func (s *rankingService) GetListingMatches(ctx context.Context, listingID uuid.UUID, opts RankOpts) ([]*types.MatchScore, error) {
	repoOpts, err := s.effectiveOpts(ctx, opts)
	if err != nil {
		return nil, err
	}
	if listingID == uuid.Nil {
		return nil, apierr.Validation("listing_required", "listing id required")
	}
	return s.scores.RankedByListing(ctx, nil, listingID, repoOpts)
}

func (s *rankingService) effectiveOpts(ctx context.Context, opts RankOpts) (repos.RankOpts, error) {
	if opts.MinScore < 0 || opts.MinScore > 100 {
		return repos.RankOpts{}, apierr.Validation("min_score", "min score %.2f out of range [0,100]", opts.MinScore)
	}
	if opts.Limit < 0 {
		return repos.RankOpts{}, apierr.Validation("limit", "limit %d must be non-negative", opts.Limit)
	}

	cfg, err := s.config.Resolve(ctx, opts.TenantID)
	if err != nil {
		return repos.RankOpts{}, err
	}

	minScore := opts.MinScore
	if minScore < cfg.ScoreFloor {
		minScore = cfg.ScoreFloor
	}
	limit := opts.Limit
	if limit == 0 || limit > cfg.ResultCap {
		limit = cfg.ResultCap
	}
	return repos.RankOpts{
		TenantID: opts.TenantID,
		MinScore: minScore,
		Limit:    limit,
	}, nil
}
