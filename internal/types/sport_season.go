package types

import (
	"time"

	"github.com/google/uuid"
)

const (
	SeasonTypeRegular   = "regular"
	SeasonTypePlayoffs  = "playoffs"
	SeasonTypeOffseason = "offseason"
)

// SportSeason records the weekly load an athlete carries while the season
// window is active. Travel days convert to lost hours in the availability
// model.
type SportSeason struct {
	ID                      uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	StudentID               uuid.UUID       `gorm:"type:uuid;not null;index" json:"student_id"`
	Student                 *StudentProfile `gorm:"constraint:OnDelete:CASCADE;foreignKey:StudentID;references:ID" json:"student,omitempty"`
	Sport                   string          `gorm:"column:sport;not null" json:"sport"`
	SeasonType              string          `gorm:"column:season_type;not null;default:'regular'" json:"season_type"`
	StartDate               time.Time       `gorm:"type:date;not null" json:"start_date"`
	EndDate                 time.Time       `gorm:"type:date;not null" json:"end_date"`
	PracticeHoursPerWeek    float64         `gorm:"column:practice_hours_per_week;not null;default:0" json:"practice_hours_per_week"`
	CompetitionHoursPerWeek float64         `gorm:"column:competition_hours_per_week;not null;default:0" json:"competition_hours_per_week"`
	TravelDaysPerWeek       float64         `gorm:"column:travel_days_per_week;not null;default:0" json:"travel_days_per_week"`
	CreatedAt               time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt               time.Time       `gorm:"not null" json:"updated_at"`
}

func (SportSeason) TableName() string { return "sport_season" }
