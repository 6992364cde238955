package services

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/campusforge/matchengine-backend/internal/platform/apierr"
	"github.com/campusforge/matchengine-backend/internal/types"
)

func TestComputeAttractivenessScore(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	tenantID := uuid.New()
	listing := seedListing(t, env.db, tenantID)

	// One full-skill match, one skill-less student, and a foreign-tenant
	// student the tenant-scoped listing cannot reach.
	seedStudent(t, env.db, tenantID)
	bare := &types.StudentProfile{ID: uuid.New(), TenantID: tenantID, DisplayName: "Bare"}
	foreign := &types.StudentProfile{ID: uuid.New(), TenantID: uuid.New(), DisplayName: "Foreign"}
	for _, s := range []*types.StudentProfile{bare, foreign} {
		if err := env.db.Create(s).Error; err != nil {
			t.Fatalf("seed student: %v", err)
		}
	}

	res, err := env.attractiveness.ComputeAttractivenessScore(ctx, listing.ID)
	if err != nil {
		t.Fatalf("ComputeAttractivenessScore: %v", err)
	}
	if res.Population != 2 {
		t.Fatalf("population = %d, want 2 addressable students", res.Population)
	}
	// Full match: skills 100, network 100 -> affinity 100. Bare: skills 0,
	// network 100 -> (0.30*0 + 0.10*100) / 0.40 = 25. Mean 62.5, one above
	// the 40 floor.
	if res.Score != 62.5 {
		t.Fatalf("score = %v, want 62.5", res.Score)
	}
	if res.AboveFloor != 1 {
		t.Fatalf("above floor = %d, want 1", res.AboveFloor)
	}
}

func TestComputeAttractivenessScoreEmptyPopulation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	listing := seedListing(t, env.db, uuid.New())

	res, err := env.attractiveness.ComputeAttractivenessScore(ctx, listing.ID)
	if err != nil {
		t.Fatalf("ComputeAttractivenessScore: %v", err)
	}
	if res.Population != 0 || res.Score != 0 || res.AboveFloor != 0 {
		t.Fatalf("result = %+v, want zeros for an empty population", res)
	}
}

func TestGetCompanyAttractiveness(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	tenantID := uuid.New()
	seedStudent(t, env.db, tenantID)
	first := seedListing(t, env.db, tenantID)

	second := &types.Listing{
		ID:           uuid.New(),
		TenantID:     tenantID,
		CompanyID:    first.CompanyID,
		Title:        "Data Internship",
		Visibility:   types.VisibilityTenant,
		WindowStart:  testDayPtr("2027-01-15"),
		WindowEnd:    testDayPtr("2027-04-15"),
		HoursPerWeek: 10,
		Difficulty:   3,
		CapacityMax:  1,
	}
	if err := env.db.Create(second).Error; err != nil {
		t.Fatalf("seed second listing: %v", err)
	}
	skill := types.ListingSkill{
		ID: uuid.New(), ListingID: second.ID,
		Name: "sql", Category: "engineering",
		Tier: types.SkillTierRequired, MinProficiency: 2,
	}
	if err := env.db.Create(&skill).Error; err != nil {
		t.Fatalf("seed second listing skill: %v", err)
	}

	agg, err := env.attractiveness.GetCompanyAttractiveness(ctx, first.Company.OwnerUserID)
	if err != nil {
		t.Fatalf("GetCompanyAttractiveness: %v", err)
	}
	if agg.Listings != 2 {
		t.Fatalf("listings = %d, want 2", agg.Listings)
	}
	// The seeded student covers both listings fully: affinity 100 each.
	if agg.MeanScore != 100 {
		t.Fatalf("mean score = %v, want 100", agg.MeanScore)
	}
	if agg.HighAffinityStudents != 2 {
		t.Fatalf("high affinity = %d, want the student counted per listing", agg.HighAffinityStudents)
	}
}

func TestGetCompanyAttractivenessUnknownOwner(t *testing.T) {
	env := newTestEnv(t)

	if _, err := env.attractiveness.GetCompanyAttractiveness(context.Background(), uuid.New()); !apierr.IsKind(err, apierr.KindNotFound) {
		t.Fatalf("unknown owner: err = %v, want not-found", err)
	}
	if _, err := env.attractiveness.ComputeAttractivenessScore(context.Background(), uuid.New()); !apierr.IsKind(err, apierr.KindNotFound) {
		t.Fatalf("unknown listing: err = %v, want not-found", err)
	}
}
