package types

import (
	"time"

	"github.com/google/uuid"
)

// Rating is a corporate-side review of a student after an engagement.
type Rating struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	StudentID uuid.UUID `gorm:"type:uuid;not null;index" json:"student_id"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;index" json:"company_id"`
	Score     float64   `gorm:"column:score;not null" json:"score"` // 0..5
	Comment   string    `gorm:"column:comment" json:"comment,omitempty"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (Rating) TableName() string { return "rating" }
