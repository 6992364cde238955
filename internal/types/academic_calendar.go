package types

import (
	"time"

	"github.com/google/uuid"
)

const (
	TermTypeSemester = "semester"
	TermTypeQuarter  = "quarter"
	TermTypeBreak    = "break"
)

// Term priority buckets. Each maps to a weekly free-hours baseline used by
// the availability model: light periods (breaks) leave the most room, heavy
// periods (exams, capstone weeks) the least.
const (
	TermPriorityLight   = "light"
	TermPriorityRegular = "regular"
	TermPriorityHeavy   = "heavy"
)

type AcademicCalendarEntry struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	TenantID  uuid.UUID `gorm:"type:uuid;not null;index" json:"tenant_id"`
	Name      string    `gorm:"column:name;not null" json:"name"`
	TermType  string    `gorm:"column:term_type;not null;default:'semester'" json:"term_type"`
	Priority  string    `gorm:"column:priority;not null;default:'regular'" json:"priority"`
	StartDate time.Time `gorm:"type:date;not null" json:"start_date"`
	EndDate   time.Time `gorm:"type:date;not null" json:"end_date"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (AcademicCalendarEntry) TableName() string { return "academic_calendar_entry" }
