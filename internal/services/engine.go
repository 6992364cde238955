package services

import (
	"context"
	"encoding/json"
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/campusforge/matchengine-backend/internal/domain/signals"
	"github.com/campusforge/matchengine-backend/internal/platform/apierr"
	"github.com/campusforge/matchengine-backend/internal/platform/logger"
	"github.com/campusforge/matchengine-backend/internal/repos"
	"github.com/campusforge/matchengine-backend/internal/types"
)

// compositePrecision is the number of decimals kept on the composite score.
const compositePrecision = 2

// ComputeOpts controls one forced-or-cached match computation.
type ComputeOpts struct {
	// TenantID selects whose config governs the computation. Zero falls
	// back to the listing's owning tenant.
	TenantID uuid.UUID
	// ForceRecompute bypasses the cache and drops any pending queue item
	// for the pair.
	ForceRecompute bool
}

// MatchResult is the structured outcome of a match computation.
type MatchResult struct {
	StudentID     uuid.UUID             `json:"student_id"`
	ListingID     uuid.UUID             `json:"listing_id"`
	Score         float64               `json:"score"`
	Breakdown     types.SignalBreakdown `json:"breakdown"`
	ConfigVersion int                   `json:"config_version"`
	ComputedAt    time.Time             `json:"computed_at"`
	FromCache     bool                  `json:"from_cache"`
}

// EngineService is the composite scorer. ComputeMatch is the caller-facing
// "recompute now or use the cache" entry; RecomputePair is the queue
// worker's forced entry that leaves the queue itself untouched so the
// drained item can be retired as processed history.
type EngineService interface {
	ComputeMatch(ctx context.Context, studentID, listingID uuid.UUID, opts ComputeOpts) (*MatchResult, error)
	RecomputePair(ctx context.Context, studentID, listingID uuid.UUID) (*MatchResult, error)
}

type engineService struct {
	db       *gorm.DB
	students repos.StudentRepo
	listings repos.ListingRepo
	calendar repos.CalendarRepo
	scores   repos.MatchScoreRepo
	queue    repos.RecomputeQueueRepo
	config   ConfigService
	log      *logger.Logger
}

func NewEngineService(db *gorm.DB, students repos.StudentRepo, listings repos.ListingRepo, calendar repos.CalendarRepo, scores repos.MatchScoreRepo, queue repos.RecomputeQueueRepo, config ConfigService, baseLog *logger.Logger) EngineService {
	return &engineService{
		db:       db,
		students: students,
		listings: listings,
		calendar: calendar,
		scores:   scores,
		queue:    queue,
		config:   config,
		log:      baseLog.With("service", "EngineService"),
	}
}

func (s *engineService) ComputeMatch(ctx context.Context, studentID, listingID uuid.UUID, opts ComputeOpts) (*MatchResult, error) {
	return s.compute(ctx, studentID, listingID, opts, opts.ForceRecompute)
}

func (s *engineService) RecomputePair(ctx context.Context, studentID, listingID uuid.UUID) (*MatchResult, error) {
	return s.compute(ctx, studentID, listingID, ComputeOpts{ForceRecompute: true}, false)
}

func (s *engineService) compute(ctx context.Context, studentID, listingID uuid.UUID, opts ComputeOpts, clearPending bool) (*MatchResult, error) {
	if studentID == uuid.Nil || listingID == uuid.Nil {
		return nil, apierr.Validation("pair_required", "student and listing ids are required")
	}

	listing, err := s.listings.GetByID(ctx, nil, listingID)
	if err != nil {
		return nil, err
	}
	if listing == nil {
		return nil, apierr.NotFound("listing_not_found", "listing %s not found", listingID)
	}

	tenantID := opts.TenantID
	if tenantID == uuid.Nil {
		tenantID = listing.TenantID
	}
	cfg, err := s.config.Resolve(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	if !opts.ForceRecompute {
		cached, err := s.scores.Get(ctx, nil, studentID, listingID)
		if err != nil {
			return nil, err
		}
		if cached != nil && !cached.Stale && cached.ConfigVersion == cfg.Version {
			breakdown, err := cached.Breakdown()
			if err != nil {
				return nil, err
			}
			return &MatchResult{
				StudentID:     studentID,
				ListingID:     listingID,
				Score:         cached.Composite,
				Breakdown:     *breakdown,
				ConfigVersion: cached.ConfigVersion,
				ComputedAt:    cached.ComputedAt,
				FromCache:     true,
			}, nil
		}
	}

	student, err := s.students.GetByID(ctx, nil, studentID)
	if err != nil {
		return nil, err
	}
	if student == nil {
		return nil, apierr.NotFound("student_not_found", "student %s not found", studentID)
	}

	breakdown, err := s.runSignals(ctx, student, listing, &cfg)
	if err != nil {
		return nil, err
	}

	composite := roundTo(compositeOf(breakdown, &cfg), compositePrecision)
	now := time.Now().UTC()

	row := &types.MatchScore{
		StudentID:     studentID,
		ListingID:     listingID,
		TenantID:      listing.TenantID,
		Composite:     composite,
		ConfigVersion: cfg.Version,
		Stale:         false,
		ComputedAt:    now,
	}
	if err := row.SetBreakdown(breakdown); err != nil {
		return nil, err
	}

	// Sub-floor results are stored too; the floor only filters ranked reads.
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.scores.Upsert(ctx, tx, row); err != nil {
			return err
		}
		if clearPending {
			return s.queue.DeletePendingForPair(ctx, tx, studentID, listingID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Debug("Match computed",
		"student_id", studentID, "listing_id", listingID,
		"composite", composite, "config_version", cfg.Version,
		"defaulted", breakdown.DefaultedSignals)

	return &MatchResult{
		StudentID:     studentID,
		ListingID:     listingID,
		Score:         composite,
		Breakdown:     *breakdown,
		ConfigVersion: cfg.Version,
		ComputedAt:    now,
	}, nil
}

// runSignals loads the contextual data and evaluates all six calculators.
// Individual signals never fail; a calculator without data reports its
// neutral default and lands in DefaultedSignals.
func (s *engineService) runSignals(ctx context.Context, student *types.StudentProfile, listing *types.Listing, cfg *types.MatchEngineConfig) (*types.SignalBreakdown, error) {
	calendar, err := s.calendar.EntriesByTenant(ctx, nil, student.TenantID)
	if err != nil {
		return nil, err
	}
	seasons, err := s.students.Seasons(ctx, nil, student.ID)
	if err != nil {
		return nil, err
	}
	manual, err := s.students.Availability(ctx, nil, student.ID)
	if err != nil {
		return nil, err
	}
	engagements, err := s.students.Engagements(ctx, nil, student.ID)
	if err != nil {
		return nil, err
	}
	ratings, err := s.students.Ratings(ctx, nil, student.ID)
	if err != nil {
		return nil, err
	}
	var reputation float64
	if listing.Company != nil {
		reputation = listing.Company.Reputation
	}

	results := map[string]signals.Result{
		types.SignalTemporal:       signals.Temporal(listing, calendar, seasons, manual, cfg.SportSeasonEnabled),
		types.SignalSkills:         signals.Skills(student.Skills, listing.RequiredSkills),
		types.SignalSustainability: signals.Sustainability(engagements),
		types.SignalGrowth:         signals.Growth(student.Skills, listing.RequiredSkills, listing.Difficulty),
		types.SignalTrust:          signals.Trust(ratings, reputation),
		types.SignalNetwork:        signals.Network(student, listing, cfg.NetworkBoostEnabled),
	}

	var breakdown types.SignalBreakdown
	for _, name := range types.SignalNames {
		res := results[name]
		score, err := toSignalScore(res)
		if err != nil {
			return nil, err
		}
		switch name {
		case types.SignalTemporal:
			breakdown.Temporal = score
		case types.SignalSkills:
			breakdown.Skills = score
		case types.SignalSustainability:
			breakdown.Sustainability = score
		case types.SignalGrowth:
			breakdown.Growth = score
		case types.SignalTrust:
			breakdown.Trust = score
		case types.SignalNetwork:
			breakdown.Network = score
		}
		if res.Defaulted {
			breakdown.DefaultedSignals = append(breakdown.DefaultedSignals, name)
		}
	}
	return &breakdown, nil
}

func toSignalScore(res signals.Result) (types.SignalScore, error) {
	score := types.SignalScore{Value: res.Value, Defaulted: res.Defaulted}
	if res.Evidence != nil {
		raw, err := json.Marshal(res.Evidence)
		if err != nil {
			return types.SignalScore{}, err
		}
		score.Evidence = raw
	}
	return score, nil
}

func compositeOf(b *types.SignalBreakdown, cfg *types.MatchEngineConfig) float64 {
	var sum float64
	for _, name := range types.SignalNames {
		score, _ := b.ByName(name)
		sum += cfg.Weight(name) * score.Value
	}
	return sum
}

func roundTo(v float64, decimals int) float64 {
	factor := math.Pow(10, float64(decimals))
	return math.Round(v*factor) / factor
}
