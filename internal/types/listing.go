package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	VisibilityTenant  = "tenant"
	VisibilityNetwork = "network"
	VisibilityOpen    = "open"
)

type Listing struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	TenantID       uuid.UUID      `gorm:"type:uuid;not null;index" json:"tenant_id"`
	CompanyID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"company_id"`
	Company        *Company       `gorm:"foreignKey:CompanyID;references:ID" json:"company,omitempty"`
	Title          string         `gorm:"column:title;not null" json:"title"`
	Visibility     string         `gorm:"column:visibility;not null;default:'tenant'" json:"visibility"`
	WindowStart    *time.Time     `gorm:"column:window_start" json:"window_start,omitempty"`
	WindowEnd      *time.Time     `gorm:"column:window_end" json:"window_end,omitempty"`
	HoursPerWeek   float64        `gorm:"column:hours_per_week;not null;default:0" json:"hours_per_week"`
	Deadline       *time.Time     `gorm:"column:deadline" json:"deadline,omitempty"`
	Difficulty     int            `gorm:"column:difficulty;not null;default:0" json:"difficulty"` // 1..5, 0 unset
	CapacityMax    int            `gorm:"column:capacity_max;not null;default:1" json:"capacity_max"`
	Accepted       int            `gorm:"column:accepted;not null;default:0" json:"accepted"`
	RequiredSkills []ListingSkill `gorm:"foreignKey:ListingID;references:ID" json:"required_skills,omitempty"`
	CreatedAt      time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Listing) TableName() string { return "listing" }

const (
	SkillTierRequired   = "required"
	SkillTierPreferred  = "preferred"
	SkillTierNiceToHave = "nice_to_have"
)

type ListingSkill struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ListingID      uuid.UUID `gorm:"type:uuid;not null;index:idx_listing_skill,unique" json:"listing_id"`
	Name           string    `gorm:"column:name;not null;index:idx_listing_skill,unique" json:"name"`
	Category       string    `gorm:"column:category;not null" json:"category"`
	Tier           string    `gorm:"column:tier;not null;default:'required'" json:"tier"`
	MinProficiency int       `gorm:"column:min_proficiency;not null;default:1" json:"min_proficiency"`
	CreatedAt      time.Time `gorm:"not null" json:"created_at"`
}

func (ListingSkill) TableName() string { return "listing_skill" }
