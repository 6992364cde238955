package signals

import (
	"github.com/campusforge/matchengine-backend/internal/domain/availability"
	"github.com/campusforge/matchengine-backend/internal/types"
)

type TemporalEvidence struct {
	WindowWeeks        int     `json:"window_weeks"`
	WeeksAvailable     int     `json:"weeks_available"`
	OverlapFraction    float64 `json:"overlap_fraction"`
	MeanEffectiveHours float64 `json:"mean_effective_hours"`
	RequiredHours      float64 `json:"required_hours"`
	MeanCapacityRatio  float64 `json:"mean_capacity_ratio"`
}

func (TemporalEvidence) signalEvidence() {}

// Temporal overlaps the student's effective free time with the listing's
// active window. A listing without a window scores the neutral default; a
// window the student cannot cover at all scores 0.
func Temporal(listing *types.Listing, calendar []types.AcademicCalendarEntry, seasons []types.SportSeason, manual []types.AvailabilityEntry, seasonAware bool) Result {
	if listing == nil || listing.WindowStart == nil || listing.WindowEnd == nil {
		return Result{Value: NeutralTemporal, Defaulted: true, Evidence: TemporalEvidence{}}
	}

	window := availability.Window(*listing.WindowStart, *listing.WindowEnd, calendar, seasons, manual, seasonAware)
	if window.TotalWeeks() == 0 {
		return Result{Value: NeutralTemporal, Defaulted: true, Evidence: TemporalEvidence{}}
	}

	required := listing.HoursPerWeek
	var ratioSum float64
	for _, week := range window.Weeks {
		if required <= 0 {
			if week.EffectiveHours > 0 {
				ratioSum += 1
			}
			continue
		}
		ratio := week.EffectiveHours / required
		if ratio > 1 {
			ratio = 1
		}
		ratioSum += ratio
	}
	meanRatio := ratioSum / float64(window.TotalWeeks())

	ev := TemporalEvidence{
		WindowWeeks:        window.TotalWeeks(),
		WeeksAvailable:     window.WeeksAvailable,
		OverlapFraction:    window.OverlapFraction(),
		MeanEffectiveHours: window.MeanEffective,
		RequiredHours:      required,
		MeanCapacityRatio:  meanRatio,
	}
	return Result{Value: clamp(window.OverlapFraction() * meanRatio * 100), Evidence: ev}
}
