package types

import (
	"time"

	"github.com/google/uuid"
)

// Invalidation reasons. The reason travels with the queue item so history
// stays auditable.
const (
	ReasonSkillChange    = "skill_change"
	ReasonScheduleChange = "schedule_change"
	ReasonListingChange  = "listing_change"
	ReasonRatingChange   = "rating_change"
	ReasonSeasonChange   = "season_change"
	ReasonConfigChange   = "config_change"
	ReasonAdminGlobal    = "admin_global"
)

// PriorityMax is reserved for admin-triggered global recomputes.
const PriorityMax = 100

var reasonPriority = map[string]int{
	ReasonSkillChange:    60,
	ReasonListingChange:  50,
	ReasonScheduleChange: 40,
	ReasonSeasonChange:   40,
	ReasonRatingChange:   30,
	ReasonConfigChange:   70,
	ReasonAdminGlobal:    PriorityMax,
}

// ReasonPriority maps an invalidation reason to its queue priority.
// Unknown reasons get the lowest routine priority rather than failing.
func ReasonPriority(reason string) int {
	if p, ok := reasonPriority[reason]; ok {
		return p
	}
	return 10
}

// RecomputeQueueItem is one durable unit of pending score refresh work.
// Processed items are immutable history; dequeue order is priority
// descending, then queuedAt ascending.
type RecomputeQueueItem struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	StudentID   uuid.UUID  `gorm:"type:uuid;not null;index" json:"student_id"`
	ListingID   uuid.UUID  `gorm:"type:uuid;not null;index" json:"listing_id"`
	Reason      string     `gorm:"column:reason;not null" json:"reason"`
	Priority    int        `gorm:"column:priority;not null;index" json:"priority"`
	QueuedAt    time.Time  `gorm:"column:queued_at;not null;index" json:"queued_at"`
	ProcessedAt *time.Time `gorm:"column:processed_at;index" json:"processed_at,omitempty"`
}

func (RecomputeQueueItem) TableName() string { return "recompute_queue_item" }

func (i *RecomputeQueueItem) Processed() bool { return i.ProcessedAt != nil }
