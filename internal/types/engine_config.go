package types

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// WeightSumTolerance bounds how far the six signal weights may drift from
// 1.0 before a config is rejected. Weights are never silently normalized.
const WeightSumTolerance = 0.01

// MatchEngineConfig holds one tenant's scoring configuration. A nil tenant
// override resolves to DefaultEngineConfig. Version increments on every
// accepted update; cached scores remember the version they were computed
// under.
type MatchEngineConfig struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	TenantID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"tenant_id"`

	WeightTemporal       float64 `gorm:"column:weight_temporal;not null" json:"weight_temporal" yaml:"weight_temporal"`
	WeightSkills         float64 `gorm:"column:weight_skills;not null" json:"weight_skills" yaml:"weight_skills"`
	WeightSustainability float64 `gorm:"column:weight_sustainability;not null" json:"weight_sustainability" yaml:"weight_sustainability"`
	WeightGrowth         float64 `gorm:"column:weight_growth;not null" json:"weight_growth" yaml:"weight_growth"`
	WeightTrust          float64 `gorm:"column:weight_trust;not null" json:"weight_trust" yaml:"weight_trust"`
	WeightNetwork        float64 `gorm:"column:weight_network;not null" json:"weight_network" yaml:"weight_network"`

	ScoreFloor float64 `gorm:"column:score_floor;not null" json:"score_floor" yaml:"score_floor"`
	ResultCap  int     `gorm:"column:result_cap;not null" json:"result_cap" yaml:"result_cap"`

	SportSeasonEnabled  bool `gorm:"column:sport_season_enabled;not null;default:true" json:"sport_season_enabled" yaml:"sport_season_enabled"`
	NetworkBoostEnabled bool `gorm:"column:network_boost_enabled;not null;default:true" json:"network_boost_enabled" yaml:"network_boost_enabled"`

	Version   int       `gorm:"column:version;not null;default:1" json:"version"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (MatchEngineConfig) TableName() string { return "match_engine_config" }

func (c *MatchEngineConfig) WeightSum() float64 {
	return c.WeightTemporal + c.WeightSkills + c.WeightSustainability +
		c.WeightGrowth + c.WeightTrust + c.WeightNetwork
}

// WeightsValid reports whether the six weights sum to 1.0 within tolerance.
func (c *MatchEngineConfig) WeightsValid() bool {
	return math.Abs(c.WeightSum()-1.0) <= WeightSumTolerance
}

func (c *MatchEngineConfig) Weight(signal string) float64 {
	switch signal {
	case SignalTemporal:
		return c.WeightTemporal
	case SignalSkills:
		return c.WeightSkills
	case SignalSustainability:
		return c.WeightSustainability
	case SignalGrowth:
		return c.WeightGrowth
	case SignalTrust:
		return c.WeightTrust
	case SignalNetwork:
		return c.WeightNetwork
	default:
		return 0
	}
}

// DefaultEngineConfig returns the documented system defaults. Callers get a
// fresh copy each time; the defaults are not shared mutable state.
func DefaultEngineConfig() MatchEngineConfig {
	return MatchEngineConfig{
		WeightTemporal:       0.25,
		WeightSkills:         0.30,
		WeightSustainability: 0.15,
		WeightGrowth:         0.10,
		WeightTrust:          0.10,
		WeightNetwork:        0.10,
		ScoreFloor:           40,
		ResultCap:            50,
		SportSeasonEnabled:   true,
		NetworkBoostEnabled:  true,
		Version:              1,
	}
}
