// Package availability computes a student's effective free hours per week
// by netting academic-term load and sport-season load against manually
// entered schedule windows.
package availability

import (
	"time"

	"github.com/campusforge/matchengine-backend/internal/types"
)

// Weekly free-hours baselines by term priority. A manual availability entry
// covering a week replaces the baseline outright; season load is subtracted
// from whichever figure applies.
const (
	BaselineLightHours   = 40 // breaks, reading weeks
	BaselineRegularHours = 25
	BaselineHeavyHours   = 12 // exam and capstone periods

	// A travel day is a lost day, not just the hours on the bus.
	HoursPerTravelDay = 8
)

// WeekSummary describes one week of the evaluated window.
type WeekSummary struct {
	Start          time.Time
	BaselineHours  float64
	SeasonLoad     float64
	EffectiveHours float64
	ManualOverride bool
}

// WindowSummary aggregates week summaries across a listing window.
type WindowSummary struct {
	Weeks          []WeekSummary
	MeanEffective  float64
	WeeksAvailable int // weeks with any free hours at all
}

func (w WindowSummary) TotalWeeks() int { return len(w.Weeks) }

// OverlapFraction is the share of the window's weeks in which the student
// has any effective free time.
func (w WindowSummary) OverlapFraction() float64 {
	if len(w.Weeks) == 0 {
		return 0
	}
	return float64(w.WeeksAvailable) / float64(len(w.Weeks))
}

func covers(start, end, day time.Time) bool {
	return !day.Before(start) && !day.After(end)
}

// TermBaseline returns the free-hours baseline for a given day from the
// tenant calendar. Days outside every calendar entry count as regular load.
func TermBaseline(day time.Time, calendar []types.AcademicCalendarEntry) float64 {
	baseline := BaselineRegularHours
	for _, entry := range calendar {
		if !covers(entry.StartDate, entry.EndDate, day) {
			continue
		}
		switch entry.Priority {
		case types.TermPriorityLight:
			baseline = BaselineLightHours
		case types.TermPriorityHeavy:
			baseline = BaselineHeavyHours
		default:
			baseline = BaselineRegularHours
		}
	}
	return float64(baseline)
}

// manualHours sums hours from manual entries covering the day. The second
// return reports whether any entry applied.
func manualHours(day time.Time, entries []types.AvailabilityEntry) (float64, bool) {
	var total float64
	found := false
	for _, e := range entries {
		if covers(e.StartDate, e.EndDate, day) {
			total += e.HoursPerWeek
			found = true
		}
	}
	return total, found
}

// SeasonLoad returns the weekly hours consumed by active sport seasons on
// the given day: practice plus competition plus travel-day burden.
func SeasonLoad(day time.Time, seasons []types.SportSeason) float64 {
	var load float64
	for _, s := range seasons {
		if s.SeasonType == types.SeasonTypeOffseason {
			continue
		}
		if covers(s.StartDate, s.EndDate, day) {
			load += s.PracticeHoursPerWeek + s.CompetitionHoursPerWeek + s.TravelDaysPerWeek*HoursPerTravelDay
		}
	}
	return load
}

// EffectiveWeeklyHours nets season load against the manual override or term
// baseline for the week containing day. Never negative.
func EffectiveWeeklyHours(day time.Time, calendar []types.AcademicCalendarEntry, seasons []types.SportSeason, manual []types.AvailabilityEntry, seasonAware bool) WeekSummary {
	baseline, overridden := manualHours(day, manual)
	if !overridden {
		baseline = TermBaseline(day, calendar)
	}
	var load float64
	if seasonAware {
		load = SeasonLoad(day, seasons)
	}
	effective := baseline - load
	if effective < 0 {
		effective = 0
	}
	return WeekSummary{
		Start:          day,
		BaselineHours:  baseline,
		SeasonLoad:     load,
		EffectiveHours: effective,
		ManualOverride: overridden,
	}
}

// Window walks a listing window week by week and summarizes the student's
// effective availability across it.
func Window(start, end time.Time, calendar []types.AcademicCalendarEntry, seasons []types.SportSeason, manual []types.AvailabilityEntry, seasonAware bool) WindowSummary {
	var out WindowSummary
	if end.Before(start) {
		return out
	}
	var total float64
	for day := start; !day.After(end); day = day.AddDate(0, 0, 7) {
		week := EffectiveWeeklyHours(day, calendar, seasons, manual, seasonAware)
		out.Weeks = append(out.Weeks, week)
		total += week.EffectiveHours
		if week.EffectiveHours > 0 {
			out.WeeksAvailable++
		}
	}
	out.MeanEffective = total / float64(len(out.Weeks))
	return out
}
