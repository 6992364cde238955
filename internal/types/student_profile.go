package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type StudentProfile struct {
	ID               uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	TenantID         uuid.UUID      `gorm:"type:uuid;not null;index" json:"tenant_id"`
	DisplayName      string         `gorm:"column:display_name;not null" json:"display_name"`
	PartnerTenantIDs datatypes.JSON `gorm:"type:jsonb;column:partner_tenant_ids" json:"partner_tenant_ids"`
	Skills           []StudentSkill `gorm:"foreignKey:StudentID;references:ID" json:"skills,omitempty"`
	CreatedAt        time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt        time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (StudentProfile) TableName() string { return "student_profile" }

type StudentSkill struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	StudentID   uuid.UUID       `gorm:"type:uuid;not null;index:idx_student_skill,unique" json:"student_id"`
	Student     *StudentProfile `gorm:"constraint:OnDelete:CASCADE;foreignKey:StudentID;references:ID" json:"student,omitempty"`
	Name        string          `gorm:"column:name;not null;index:idx_student_skill,unique" json:"name"`
	Category    string          `gorm:"column:category;not null;index" json:"category"`
	Proficiency int             `gorm:"column:proficiency;not null" json:"proficiency"` // 1..5
	CreatedAt   time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"not null" json:"updated_at"`
}

func (StudentSkill) TableName() string { return "student_skill" }

// AvailabilityEntry is a manually entered weekly-hours declaration for a
// date window. When one covers a week it overrides the calendar baseline.
type AvailabilityEntry struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	StudentID     uuid.UUID       `gorm:"type:uuid;not null;index" json:"student_id"`
	Student       *StudentProfile `gorm:"constraint:OnDelete:CASCADE;foreignKey:StudentID;references:ID" json:"student,omitempty"`
	StartDate     time.Time       `gorm:"type:date;not null" json:"start_date"`
	EndDate       time.Time       `gorm:"type:date;not null" json:"end_date"`
	HoursPerWeek  float64         `gorm:"column:hours_per_week;not null" json:"hours_per_week"`
	Note          string          `gorm:"column:note" json:"note,omitempty"`
	CreatedAt     time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"not null" json:"updated_at"`
}

func (AvailabilityEntry) TableName() string { return "availability_entry" }

const (
	EngagementStatusActive    = "active"
	EngagementStatusCompleted = "completed"
	EngagementStatusAbandoned = "abandoned"
)

type Engagement struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	StudentID  uuid.UUID       `gorm:"type:uuid;not null;index" json:"student_id"`
	Student    *StudentProfile `gorm:"constraint:OnDelete:CASCADE;foreignKey:StudentID;references:ID" json:"student,omitempty"`
	ListingID  uuid.UUID       `gorm:"type:uuid;not null;index" json:"listing_id"`
	Status     string          `gorm:"column:status;not null;default:'active'" json:"status"`
	StartedAt  time.Time       `gorm:"column:started_at;not null" json:"started_at"`
	EndedAt    *time.Time      `gorm:"column:ended_at" json:"ended_at,omitempty"`
	CreatedAt  time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time       `gorm:"not null" json:"updated_at"`
}

func (Engagement) TableName() string { return "engagement" }
