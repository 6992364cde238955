package signals

import (
	"testing"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/campusforge/matchengine-backend/internal/types"
)

func TestSustainability(t *testing.T) {
	cases := []struct {
		name          string
		engagements   []types.Engagement
		want          float64
		wantDefaulted bool
	}{
		{
			name:          "no_history_neutral",
			engagements:   nil,
			want:          NeutralSustainability,
			wantDefaulted: true,
		},
		{
			name: "perfect_record",
			engagements: []types.Engagement{
				{Status: types.EngagementStatusCompleted},
				{Status: types.EngagementStatusCompleted},
			},
			want: 100,
		},
		{
			name: "half_abandoned",
			engagements: []types.Engagement{
				{Status: types.EngagementStatusCompleted},
				{Status: types.EngagementStatusAbandoned},
			},
			want: 50,
		},
		{
			name: "active_load_discount",
			engagements: []types.Engagement{
				{Status: types.EngagementStatusCompleted},
				{Status: types.EngagementStatusActive},
				{Status: types.EngagementStatusActive},
			},
			want: 80,
		},
		{
			name: "load_penalty_capped",
			engagements: []types.Engagement{
				{Status: types.EngagementStatusCompleted},
				{Status: types.EngagementStatusActive},
				{Status: types.EngagementStatusActive},
				{Status: types.EngagementStatusActive},
				{Status: types.EngagementStatusActive},
				{Status: types.EngagementStatusActive},
			},
			want: 70,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Sustainability(tc.engagements)
			if got.Value != tc.want {
				t.Fatalf("value=%v, want %v", got.Value, tc.want)
			}
			if got.Defaulted != tc.wantDefaulted {
				t.Fatalf("defaulted=%v, want %v", got.Defaulted, tc.wantDefaulted)
			}
			if got.Value < 0 || got.Value > 100 {
				t.Fatalf("value=%v out of [0,100]", got.Value)
			}
		})
	}
}

func TestGrowth(t *testing.T) {
	skills := []types.StudentSkill{
		{Name: "go", Category: "engineering", Proficiency: 2},
		{Name: "sql", Category: "engineering", Proficiency: 2},
	}
	listingSkills := []types.ListingSkill{
		{Name: "go", Category: "engineering"},
	}

	cases := []struct {
		name          string
		difficulty    int
		want          float64
		wantDefaulted bool
	}{
		{name: "ideal_stretch", difficulty: 3, want: 100},
		{name: "level_pegging", difficulty: 2, want: 60},
		{name: "overreach", difficulty: 5, want: 20},
		{name: "unset_difficulty_neutral", difficulty: 0, want: NeutralGrowth, wantDefaulted: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Growth(skills, listingSkills, tc.difficulty)
			if got.Value != tc.want {
				t.Fatalf("difficulty=%d: value=%v, want %v", tc.difficulty, got.Value, tc.want)
			}
			if got.Defaulted != tc.wantDefaulted {
				t.Fatalf("defaulted=%v, want %v", got.Defaulted, tc.wantDefaulted)
			}
		})
	}

	t.Run("triviality_clamped_to_zero", func(t *testing.T) {
		expert := []types.StudentSkill{{Name: "go", Category: "engineering", Proficiency: 5}}
		got := Growth(expert, listingSkills, 1)
		if got.Value != 0 {
			t.Fatalf("value=%v, want 0", got.Value)
		}
	})
}

func TestTrust(t *testing.T) {
	cases := []struct {
		name          string
		ratings       []types.Rating
		reputation    float64
		want          float64
		wantDefaulted bool
	}{
		{name: "nothing_neutral", want: NeutralTrust, wantDefaulted: true},
		{name: "student_only", ratings: []types.Rating{{Score: 4}}, want: 80},
		{name: "company_only", reputation: 3, want: 60},
		{
			name:       "blended",
			ratings:    []types.Rating{{Score: 5}, {Score: 3}},
			reputation: 5,
			want:       0.6*80 + 0.4*100,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Trust(tc.ratings, tc.reputation)
			if got.Value != tc.want {
				t.Fatalf("value=%v, want %v", got.Value, tc.want)
			}
			if got.Defaulted != tc.wantDefaulted {
				t.Fatalf("defaulted=%v, want %v", got.Defaulted, tc.wantDefaulted)
			}
		})
	}
}

func TestNetwork(t *testing.T) {
	tenantA := uuid.New()
	tenantB := uuid.New()
	tenantC := uuid.New()

	partnered := &types.StudentProfile{
		TenantID:         tenantA,
		PartnerTenantIDs: datatypes.JSON([]byte(`["` + tenantB.String() + `"]`)),
	}

	cases := []struct {
		name         string
		student      *types.StudentProfile
		listing      *types.Listing
		boostEnabled bool
		want         float64
		wantRelation string
	}{
		{
			name:         "same_tenant",
			student:      partnered,
			listing:      &types.Listing{TenantID: tenantA, Visibility: types.VisibilityTenant},
			boostEnabled: true,
			want:         100,
			wantRelation: NetworkRelationSameTenant,
		},
		{
			name:         "partnered_network",
			student:      partnered,
			listing:      &types.Listing{TenantID: tenantB, Visibility: types.VisibilityNetwork},
			boostEnabled: true,
			want:         70,
			wantRelation: NetworkRelationPartnered,
		},
		{
			name:         "open_listing",
			student:      partnered,
			listing:      &types.Listing{TenantID: tenantC, Visibility: types.VisibilityOpen},
			boostEnabled: true,
			want:         40,
			wantRelation: NetworkRelationOpen,
		},
		{
			name:         "unreachable_tenant_only",
			student:      partnered,
			listing:      &types.Listing{TenantID: tenantC, Visibility: types.VisibilityTenant},
			boostEnabled: true,
			want:         10,
			wantRelation: NetworkRelationUnreachable,
		},
		{
			name:         "boost_disabled_flattens",
			student:      partnered,
			listing:      &types.Listing{TenantID: tenantA, Visibility: types.VisibilityTenant},
			boostEnabled: false,
			want:         NeutralNetwork,
			wantRelation: NetworkRelationDisabled,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Network(tc.student, tc.listing, tc.boostEnabled)
			if got.Value != tc.want {
				t.Fatalf("value=%v, want %v", got.Value, tc.want)
			}
			ev := got.Evidence.(NetworkEvidence)
			if ev.Relation != tc.wantRelation {
				t.Fatalf("relation=%q, want %q", ev.Relation, tc.wantRelation)
			}
		})
	}
}
