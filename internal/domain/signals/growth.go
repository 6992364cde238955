package signals

import (
	"math"
	"strings"

	"github.com/campusforge/matchengine-backend/internal/types"
)

// The growth curve peaks at a stretch of one proficiency level and falls off
// linearly on both sides: overreach and triviality are penalized alike.
const (
	idealStretch   = 1.0
	stretchFalloff = 40.0
)

type GrowthEvidence struct {
	MeanProficiency  float64 `json:"mean_proficiency"`
	Difficulty       int     `json:"difficulty"`
	Stretch          float64 `json:"stretch"`
	SkillsConsidered int     `json:"skills_considered"`
}

func (GrowthEvidence) signalEvidence() {}

// Growth rewards a moderate stretch between the student's current level in
// the listing's skill categories and the listing difficulty. Unset
// difficulty or a student with no skills scores the neutral default.
func Growth(studentSkills []types.StudentSkill, listingSkills []types.ListingSkill, difficulty int) Result {
	if difficulty <= 0 || len(studentSkills) == 0 {
		return Result{Value: NeutralGrowth, Defaulted: true, Evidence: GrowthEvidence{Difficulty: difficulty}}
	}

	categories := make(map[string]bool, len(listingSkills))
	for _, s := range listingSkills {
		categories[strings.ToLower(s.Category)] = true
	}

	var sum float64
	var count int
	for _, s := range studentSkills {
		if len(categories) > 0 && !categories[strings.ToLower(s.Category)] {
			continue
		}
		sum += float64(s.Proficiency)
		count++
	}
	if count == 0 {
		// Nothing in the listing's categories; fall back to the whole skill set.
		for _, s := range studentSkills {
			sum += float64(s.Proficiency)
			count++
		}
	}

	mean := sum / float64(count)
	stretch := float64(difficulty) - mean
	value := 100 - stretchFalloff*math.Abs(stretch-idealStretch)

	ev := GrowthEvidence{
		MeanProficiency:  mean,
		Difficulty:       difficulty,
		Stretch:          stretch,
		SkillsConsidered: count,
	}
	return Result{Value: clamp(value), Evidence: ev}
}
