package services

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/campusforge/matchengine-backend/internal/platform/apierr"
	"github.com/campusforge/matchengine-backend/internal/types"
)

// seedRankedListing computes three rows with distinct composites for one
// listing: a full match, a same-tenant student with no skills, and a
// foreign-tenant student with no skills.
func seedRankedListing(t *testing.T, env *testEnv, tenantID uuid.UUID) (*types.Listing, []uuid.UUID) {
	t.Helper()
	ctx := context.Background()
	listing := seedListing(t, env.db, tenantID)

	full := seedStudent(t, env.db, tenantID)
	bare := &types.StudentProfile{ID: uuid.New(), TenantID: tenantID, DisplayName: "Bare"}
	foreign := &types.StudentProfile{ID: uuid.New(), TenantID: uuid.New(), DisplayName: "Foreign"}
	for _, s := range []*types.StudentProfile{bare, foreign} {
		if err := env.db.Create(s).Error; err != nil {
			t.Fatalf("seed student: %v", err)
		}
	}

	ids := []uuid.UUID{full.ID, bare.ID, foreign.ID}
	for _, id := range ids {
		if _, err := env.engine.ComputeMatch(ctx, id, listing.ID, ComputeOpts{}); err != nil {
			t.Fatalf("ComputeMatch: %v", err)
		}
	}
	return listing, ids
}

func TestGetListingMatchesOrderedAboveFloor(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	tenantID := uuid.New()
	listing, ids := seedRankedListing(t, env, tenantID)

	rows, err := env.ranking.GetListingMatches(ctx, listing.ID, RankOpts{TenantID: tenantID})
	if err != nil {
		t.Fatalf("GetListingMatches: %v", err)
	}
	// 90.00, 57.00 and 48.00 under default weights; all clear the 40 floor.
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(rows))
	}
	for i := 1; i < len(rows); i++ {
		if rows[i].Composite > rows[i-1].Composite {
			t.Fatalf("rows not ordered: %v before %v", rows[i-1].Composite, rows[i].Composite)
		}
	}
	if rows[0].StudentID != ids[0] || rows[0].Composite != 90.00 {
		t.Fatalf("top row = student %s score %v, want the full match at 90.00", rows[0].StudentID, rows[0].Composite)
	}
}

func TestGetListingMatchesMinScoreAndLimit(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	tenantID := uuid.New()
	listing, _ := seedRankedListing(t, env, tenantID)

	rows, err := env.ranking.GetListingMatches(ctx, listing.ID, RankOpts{TenantID: tenantID, MinScore: 50})
	if err != nil {
		t.Fatalf("GetListingMatches: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows above 50 = %d, want 2", len(rows))
	}

	rows, err = env.ranking.GetListingMatches(ctx, listing.ID, RankOpts{TenantID: tenantID, Limit: 1})
	if err != nil {
		t.Fatalf("GetListingMatches: %v", err)
	}
	if len(rows) != 1 || rows[0].Composite != 90.00 {
		t.Fatalf("limit 1 returned %d rows (top %v), want the single best", len(rows), rows)
	}
}

func TestGetStudentMatchesUsesResultCap(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	tenantID := uuid.New()
	student := seedStudent(t, env.db, tenantID)
	for i := 0; i < 3; i++ {
		listing := seedListing(t, env.db, tenantID)
		if _, err := env.engine.ComputeMatch(ctx, student.ID, listing.ID, ComputeOpts{}); err != nil {
			t.Fatalf("ComputeMatch: %v", err)
		}
	}

	update := ConfigUpdate{
		WeightTemporal: 0.25, WeightSkills: 0.30, WeightSustainability: 0.15,
		WeightGrowth: 0.10, WeightTrust: 0.10, WeightNetwork: 0.10,
		ScoreFloor: 40, ResultCap: 2,
		SportSeasonEnabled: true, NetworkBoostEnabled: true,
	}
	if _, err := env.config.Update(ctx, tenantID, update); err != nil {
		t.Fatalf("Update: %v", err)
	}

	rows, err := env.ranking.GetStudentMatches(ctx, student.ID, RankOpts{TenantID: tenantID, Limit: 10})
	if err != nil {
		t.Fatalf("GetStudentMatches: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want the tenant cap of 2", len(rows))
	}
}

func TestRankingRejectsBadOpts(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	if _, err := env.ranking.GetStudentMatches(ctx, uuid.New(), RankOpts{MinScore: 120}); !apierr.IsKind(err, apierr.KindValidation) {
		t.Fatalf("min score 120: err = %v, want validation", err)
	}
	if _, err := env.ranking.GetListingMatches(ctx, uuid.New(), RankOpts{Limit: -1}); !apierr.IsKind(err, apierr.KindValidation) {
		t.Fatalf("negative limit: err = %v, want validation", err)
	}
	if _, err := env.ranking.GetStudentMatches(ctx, uuid.Nil, RankOpts{}); !apierr.IsKind(err, apierr.KindValidation) {
		t.Fatalf("nil student: err = %v, want validation", err)
	}
}
