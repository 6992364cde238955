package types

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	SignalTemporal       = "temporal"
	SignalSkills         = "skills"
	SignalSustainability = "sustainability"
	SignalGrowth         = "growth"
	SignalTrust          = "trust"
	SignalNetwork        = "network"
)

// SignalNames in canonical order.
var SignalNames = []string{
	SignalTemporal, SignalSkills, SignalSustainability,
	SignalGrowth, SignalTrust, SignalNetwork,
}

// SignalScore is one persisted sub-score. Evidence keeps the calculator's
// typed payload as raw JSON; Defaulted marks signals that fell back to their
// neutral value for lack of data.
type SignalScore struct {
	Value     float64         `json:"value"`
	Defaulted bool            `json:"defaulted,omitempty"`
	Evidence  json.RawMessage `json:"evidence,omitempty"`
}

type SignalBreakdown struct {
	Temporal       SignalScore `json:"temporal"`
	Skills         SignalScore `json:"skills"`
	Sustainability SignalScore `json:"sustainability"`
	Growth         SignalScore `json:"growth"`
	Trust          SignalScore `json:"trust"`
	Network        SignalScore `json:"network"`

	// DefaultedSignals lists signal names that used their neutral default,
	// so callers can tell "data missing" from "genuinely low".
	DefaultedSignals []string `json:"defaulted_signals,omitempty"`
}

// ByName returns the sub-score for a canonical signal name.
func (b *SignalBreakdown) ByName(name string) (SignalScore, bool) {
	switch name {
	case SignalTemporal:
		return b.Temporal, true
	case SignalSkills:
		return b.Skills, true
	case SignalSustainability:
		return b.Sustainability, true
	case SignalGrowth:
		return b.Growth, true
	case SignalTrust:
		return b.Trust, true
	case SignalNetwork:
		return b.Network, true
	default:
		return SignalScore{}, false
	}
}

// MatchScore is the cached compatibility row for one (student, listing)
// pair. A non-stale row is reproducible by rerunning the scorer under the
// same config version; once Stale is set only a successful recomputation
// clears it.
type MatchScore struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	StudentID     uuid.UUID      `gorm:"type:uuid;not null;index:idx_student_listing,unique;index" json:"student_id"`
	ListingID     uuid.UUID      `gorm:"type:uuid;not null;index:idx_student_listing,unique;index" json:"listing_id"`
	TenantID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"tenant_id"`
	Composite     float64        `gorm:"column:composite;not null;index" json:"composite"`
	Signals       datatypes.JSON `gorm:"type:jsonb;column:signals" json:"signals"`
	ConfigVersion int            `gorm:"column:config_version;not null" json:"config_version"`
	Stale         bool           `gorm:"column:stale;not null;default:false;index" json:"stale"`
	ComputedAt    time.Time      `gorm:"column:computed_at;not null" json:"computed_at"`
	CreatedAt     time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"not null" json:"updated_at"`
}

func (MatchScore) TableName() string { return "match_score" }

func (m *MatchScore) Breakdown() (*SignalBreakdown, error) {
	var b SignalBreakdown
	if len(m.Signals) == 0 {
		return &b, nil
	}
	if err := json.Unmarshal(m.Signals, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

func (m *MatchScore) SetBreakdown(b *SignalBreakdown) error {
	raw, err := json.Marshal(b)
	if err != nil {
		return err
	}
	m.Signals = datatypes.JSON(raw)
	return nil
}
