package signals

import (
	"encoding/json"

	"github.com/google/uuid"

	"github.com/campusforge/matchengine-backend/internal/types"
)

const (
	NetworkRelationSameTenant  = "same_tenant"
	NetworkRelationPartnered   = "partnered"
	NetworkRelationOpen        = "open"
	NetworkRelationUnreachable = "unreachable"
	NetworkRelationDisabled    = "disabled"
)

var networkScores = map[string]float64{
	NetworkRelationSameTenant:  100,
	NetworkRelationPartnered:   70,
	NetworkRelationOpen:        40,
	NetworkRelationUnreachable: 10,
}

type NetworkEvidence struct {
	Relation          string `json:"relation"`
	StudentTenantID   string `json:"student_tenant_id,omitempty"`
	ListingTenantID   string `json:"listing_tenant_id,omitempty"`
	ListingVisibility string `json:"listing_visibility,omitempty"`
}

func (NetworkEvidence) signalEvidence() {}

// NetworkRelation classifies the institutional affinity between a student
// and a listing: same tenant, partnered network, open/discoverable, or
// unreachable given the listing's visibility.
func NetworkRelation(student *types.StudentProfile, listing *types.Listing) string {
	if student == nil || listing == nil {
		return NetworkRelationUnreachable
	}
	if student.TenantID == listing.TenantID {
		return NetworkRelationSameTenant
	}
	if listing.Visibility != types.VisibilityTenant && isPartnerTenant(student, listing.TenantID) {
		return NetworkRelationPartnered
	}
	if listing.Visibility == types.VisibilityOpen {
		return NetworkRelationOpen
	}
	return NetworkRelationUnreachable
}

func isPartnerTenant(student *types.StudentProfile, tenantID uuid.UUID) bool {
	if len(student.PartnerTenantIDs) == 0 {
		return false
	}
	var ids []string
	if err := json.Unmarshal(student.PartnerTenantIDs, &ids); err != nil {
		return false
	}
	want := tenantID.String()
	for _, id := range ids {
		if id == want {
			return true
		}
	}
	return false
}

// Network scores institutional affinity. When the tenant has the network
// boost disabled the signal flattens to its neutral value so it stops
// differentiating candidates.
func Network(student *types.StudentProfile, listing *types.Listing, boostEnabled bool) Result {
	ev := NetworkEvidence{}
	if student != nil {
		ev.StudentTenantID = student.TenantID.String()
	}
	if listing != nil {
		ev.ListingTenantID = listing.TenantID.String()
		ev.ListingVisibility = listing.Visibility
	}

	if !boostEnabled {
		ev.Relation = NetworkRelationDisabled
		return Result{Value: NeutralNetwork, Evidence: ev}
	}

	ev.Relation = NetworkRelation(student, listing)
	return Result{Value: networkScores[ev.Relation], Evidence: ev}
}
