package signals

import (
	"github.com/campusforge/matchengine-backend/internal/types"
)

// Blend shares when both sides have data: the student's track record
// outweighs the company's reputation.
const (
	trustStudentShare = 0.6
	trustCompanyShare = 0.4
)

type TrustEvidence struct {
	RatingCount       int     `json:"rating_count"`
	MeanRating        float64 `json:"mean_rating"`        // 0..5
	CompanyReputation float64 `json:"company_reputation"` // 0..5
}

func (TrustEvidence) signalEvidence() {}

// Trust blends the student's aggregate received rating with the listing
// company's reputation, both on a 0..5 scale. With neither present it
// scores the neutral default; with one side present, that side stands alone.
func Trust(ratings []types.Rating, companyReputation float64) Result {
	ev := TrustEvidence{RatingCount: len(ratings), CompanyReputation: companyReputation}

	if len(ratings) > 0 {
		var sum float64
		for _, r := range ratings {
			sum += r.Score
		}
		ev.MeanRating = sum / float64(len(ratings))
	}

	studentScore := ev.MeanRating * 20
	companyScore := companyReputation * 20

	switch {
	case len(ratings) == 0 && companyReputation <= 0:
		return Result{Value: NeutralTrust, Defaulted: true, Evidence: ev}
	case len(ratings) == 0:
		return Result{Value: clamp(companyScore), Evidence: ev}
	case companyReputation <= 0:
		return Result{Value: clamp(studentScore), Evidence: ev}
	default:
		return Result{Value: clamp(trustStudentShare*studentScore + trustCompanyShare*companyScore), Evidence: ev}
	}
}
