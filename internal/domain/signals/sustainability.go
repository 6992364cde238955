package signals

import (
	"github.com/campusforge/matchengine-backend/internal/types"
)

// Each concurrent active engagement costs this many points, capped so load
// alone can never zero out a strong completion record.
const (
	activeLoadPenalty    = 10.0
	activeLoadPenaltyCap = 30.0
)

type SustainabilityEvidence struct {
	Completed       int     `json:"completed"`
	Abandoned       int     `json:"abandoned"`
	Active          int     `json:"active"`
	CompletionRatio float64 `json:"completion_ratio"`
	LoadPenalty     float64 `json:"load_penalty"`
}

func (SustainabilityEvidence) signalEvidence() {}

// Sustainability estimates follow-through from the completed/abandoned
// history, discounted by current active load. An empty history scores the
// neutral default (new student, not a flight risk) with the load discount
// still applied.
func Sustainability(engagements []types.Engagement) Result {
	ev := SustainabilityEvidence{}
	for _, e := range engagements {
		switch e.Status {
		case types.EngagementStatusCompleted:
			ev.Completed++
		case types.EngagementStatusAbandoned:
			ev.Abandoned++
		case types.EngagementStatusActive:
			ev.Active++
		}
	}

	ev.LoadPenalty = activeLoadPenalty * float64(ev.Active)
	if ev.LoadPenalty > activeLoadPenaltyCap {
		ev.LoadPenalty = activeLoadPenaltyCap
	}

	finished := ev.Completed + ev.Abandoned
	if finished == 0 {
		return Result{
			Value:     clamp(NeutralSustainability - ev.LoadPenalty),
			Defaulted: true,
			Evidence:  ev,
		}
	}

	ev.CompletionRatio = float64(ev.Completed) / float64(finished)
	return Result{Value: clamp(ev.CompletionRatio*100 - ev.LoadPenalty), Evidence: ev}
}
