package signals

import (
	"strings"

	"github.com/campusforge/matchengine-backend/internal/types"
)

// Importance tier weights for listing skills.
const (
	tierWeightRequired   = 3.0
	tierWeightPreferred  = 2.0
	tierWeightNiceToHave = 1.0
)

// belowMinimumCredit is the credit for a held skill whose proficiency sits
// under the listing's minimum: half the tier weight.
const belowMinimumCredit = 0.5

type SkillsEvidence struct {
	ListedSkills    int      `json:"listed_skills"`
	MatchedFull     int      `json:"matched_full"`
	MatchedPartial  int      `json:"matched_partial"`
	MissingSkills   []string `json:"missing_skills,omitempty"`
	WeightedEarned  float64  `json:"weighted_earned"`
	WeightedMaximum float64  `json:"weighted_maximum"`
}

func (SkillsEvidence) signalEvidence() {}

func tierWeight(tier string) float64 {
	switch tier {
	case types.SkillTierRequired:
		return tierWeightRequired
	case types.SkillTierPreferred:
		return tierWeightPreferred
	case types.SkillTierNiceToHave:
		return tierWeightNiceToHave
	default:
		return tierWeightRequired
	}
}

// Skills scores tier-weighted coverage of the listing's skill requirements.
// Meeting the minimum proficiency earns full tier weight, holding the skill
// below minimum earns half, missing it earns nothing. A listing with no
// skill requirements scores the neutral default.
func Skills(studentSkills []types.StudentSkill, listingSkills []types.ListingSkill) Result {
	if len(listingSkills) == 0 {
		return Result{Value: NeutralSkills, Defaulted: true, Evidence: SkillsEvidence{}}
	}

	held := make(map[string]int, len(studentSkills))
	for _, s := range studentSkills {
		held[strings.ToLower(s.Name)] = s.Proficiency
	}

	ev := SkillsEvidence{ListedSkills: len(listingSkills)}
	for _, want := range listingSkills {
		weight := tierWeight(want.Tier)
		ev.WeightedMaximum += weight
		proficiency, ok := held[strings.ToLower(want.Name)]
		switch {
		case !ok:
			ev.MissingSkills = append(ev.MissingSkills, want.Name)
		case proficiency >= want.MinProficiency:
			ev.MatchedFull++
			ev.WeightedEarned += weight
		default:
			ev.MatchedPartial++
			ev.WeightedEarned += weight * belowMinimumCredit
		}
	}

	return Result{Value: clamp(ev.WeightedEarned / ev.WeightedMaximum * 100), Evidence: ev}
}
