package services

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/campusforge/matchengine-backend/internal/platform/apierr"
	"github.com/campusforge/matchengine-backend/internal/platform/logger"
	"github.com/campusforge/matchengine-backend/internal/repos"
	"github.com/campusforge/matchengine-backend/internal/types"
)

// ConfigUpdate is a full replacement of a tenant's tunables. Partial
// updates are not supported: the weight-sum invariant is only checkable on
// the whole set.
type ConfigUpdate struct {
	WeightTemporal       float64 `yaml:"weight_temporal"`
	WeightSkills         float64 `yaml:"weight_skills"`
	WeightSustainability float64 `yaml:"weight_sustainability"`
	WeightGrowth         float64 `yaml:"weight_growth"`
	WeightTrust          float64 `yaml:"weight_trust"`
	WeightNetwork        float64 `yaml:"weight_network"`
	ScoreFloor           float64 `yaml:"score_floor"`
	ResultCap            int     `yaml:"result_cap"`
	SportSeasonEnabled   bool    `yaml:"sport_season_enabled"`
	NetworkBoostEnabled  bool    `yaml:"network_boost_enabled"`
}

type ConfigService interface {
	// Resolve returns the tenant's config or the system defaults when no
	// override exists. A zero tenant id resolves straight to defaults.
	Resolve(ctx context.Context, tenantID uuid.UUID) (types.MatchEngineConfig, error)
	// Update validates and persists a full tenant override, bumping the
	// config version. Invalid updates are rejected without touching state.
	Update(ctx context.Context, tenantID uuid.UUID, update ConfigUpdate) (types.MatchEngineConfig, error)
}

type configService struct {
	repo     repos.EngineConfigRepo
	defaults types.MatchEngineConfig
	log      *logger.Logger
}

func NewConfigService(repo repos.EngineConfigRepo, baseLog *logger.Logger) ConfigService {
	log := baseLog.With("service", "ConfigService")
	return &configService{
		repo:     repo,
		defaults: loadDefaults(log),
		log:      log,
	}
}

// loadDefaults starts from the documented code defaults and applies the
// optional MATCH_ENGINE_DEFAULTS_FILE yaml override. A file that fails
// validation is ignored with a warning rather than taking the engine down.
func loadDefaults(log *logger.Logger) types.MatchEngineConfig {
	defaults := types.DefaultEngineConfig()

	path := strings.TrimSpace(os.Getenv("MATCH_ENGINE_DEFAULTS_FILE"))
	if path == "" {
		return defaults
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		log.Warn("Failed to read engine defaults file, using code defaults", "path", path, "error", err)
		return defaults
	}
	candidate := defaults
	if err := yaml.Unmarshal(raw, &candidate); err != nil {
		log.Warn("Failed to parse engine defaults file, using code defaults", "path", path, "error", err)
		return defaults
	}
	if err := validateConfig(&candidate); err != nil {
		log.Warn("Engine defaults file failed validation, using code defaults", "path", path, "error", err)
		return defaults
	}
	log.Info("Loaded engine defaults override", "path", path)
	return candidate
}

func validateConfig(cfg *types.MatchEngineConfig) error {
	if !cfg.WeightsValid() {
		return apierr.Validation("weights_sum", "signal weights sum to %.4f, want 1.0 ± %.2f", cfg.WeightSum(), types.WeightSumTolerance)
	}
	for _, w := range []float64{
		cfg.WeightTemporal, cfg.WeightSkills, cfg.WeightSustainability,
		cfg.WeightGrowth, cfg.WeightTrust, cfg.WeightNetwork,
	} {
		if w < 0 || w > 1 {
			return apierr.Validation("weight_range", "signal weight %.4f out of range [0,1]", w)
		}
	}
	if cfg.ScoreFloor < 0 || cfg.ScoreFloor > 100 {
		return apierr.Validation("score_floor", "score floor %.2f out of range [0,100]", cfg.ScoreFloor)
	}
	if cfg.ResultCap < 1 || cfg.ResultCap > 500 {
		return apierr.Validation("result_cap", "result cap %d out of range [1,500]", cfg.ResultCap)
	}
	return nil
}

func (s *configService) Resolve(ctx context.Context, tenantID uuid.UUID) (types.MatchEngineConfig, error) {
	if tenantID == uuid.Nil {
		return s.defaults, nil
	}
	row, err := s.repo.GetByTenant(ctx, nil, tenantID)
	if err != nil {
		return types.MatchEngineConfig{}, err
	}
	if row == nil {
		return s.defaults, nil
	}
	return *row, nil
}

func (s *configService) Update(ctx context.Context, tenantID uuid.UUID, update ConfigUpdate) (types.MatchEngineConfig, error) {
	if tenantID == uuid.Nil {
		return types.MatchEngineConfig{}, apierr.Validation("tenant_required", "tenant id required for config update")
	}

	existing, err := s.repo.GetByTenant(ctx, nil, tenantID)
	if err != nil {
		return types.MatchEngineConfig{}, err
	}

	next := types.MatchEngineConfig{
		TenantID:             tenantID,
		WeightTemporal:       update.WeightTemporal,
		WeightSkills:         update.WeightSkills,
		WeightSustainability: update.WeightSustainability,
		WeightGrowth:         update.WeightGrowth,
		WeightTrust:          update.WeightTrust,
		WeightNetwork:        update.WeightNetwork,
		ScoreFloor:           update.ScoreFloor,
		ResultCap:            update.ResultCap,
		SportSeasonEnabled:   update.SportSeasonEnabled,
		NetworkBoostEnabled:  update.NetworkBoostEnabled,
		// Defaults count as version 1, so the first override starts at 2
		// and cached rows computed under defaults stop short-circuiting.
		Version:   s.defaults.Version + 1,
		UpdatedAt: time.Now().UTC(),
	}
	if existing != nil {
		next.ID = existing.ID
		next.CreatedAt = existing.CreatedAt
		next.Version = existing.Version + 1
	}

	if err := validateConfig(&next); err != nil {
		return types.MatchEngineConfig{}, err
	}

	if err := s.repo.Upsert(ctx, nil, &next); err != nil {
		return types.MatchEngineConfig{}, err
	}
	s.log.Info("Engine config updated", "tenant_id", tenantID, "version", next.Version)
	return next, nil
}
