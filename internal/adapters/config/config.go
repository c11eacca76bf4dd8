package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"

	coreerrors "github.com/selivandex/destiny-core/pkg/errors"
	"github.com/selivandex/destiny-core/pkg/models"
)

// Hour-pillar boundary policies. The Zi branch traditionally opens at 23:00;
// some almanac traditions keep the civil-midnight day boundary instead.
// The choice is a standards-level constant, never a call-site decision.
const (
	HourBoundaryZi23     = "zi23"
	HourBoundaryMidnight = "midnight"
)

// Solar-term month-boundary rounding policies
const (
	TermBoundaryExact = "exact" // compare against the computed term instant
	TermBoundaryDay   = "day"   // whole-day granularity, almanac compatible
)

// Config represents engine configuration
type Config struct {
	Standards CalculationStandards `envconfig:"STANDARDS"`
	Fusion    FusionWeights        `envconfig:"FUSION"`
	Cache     CacheConfig          `envconfig:"CACHE"`
	Timing    TimingConfig         `envconfig:"TIMING"`
	Logging   LoggingConfig        `envconfig:"LOGGING"`
}

// CalculationStandards is the single process-wide calculation convention set.
// Loaded once, treated as immutable; its Version() participates in every
// cache key so a standards change invalidates all cached results.
type CalculationStandards struct {
	HouseSystem  string `envconfig:"HOUSE_SYSTEM" default:"placidus"`
	NodeType     string `envconfig:"NODE_TYPE" default:"mean"`
	HourBoundary string `envconfig:"HOUR_BOUNDARY" default:"zi23"`
	TermBoundary string `envconfig:"TERM_BOUNDARY" default:"exact"`
	BaseTimezone string `envconfig:"BASE_TIMEZONE" default:"Asia/Seoul"`
}

// Version returns the standards tag embedded in cache keys
func (s CalculationStandards) Version() string {
	return fmt.Sprintf("v1|%s|%s|%s|%s", s.HouseSystem, s.NodeType, s.HourBoundary, s.TermBoundary)
}

// HouseSystemModel returns the parsed house system
func (s CalculationStandards) HouseSystemModel() models.HouseSystem {
	return models.HouseSystem(s.HouseSystem)
}

// NodeTypeModel returns the parsed node type
func (s CalculationStandards) NodeTypeModel() models.NodeType {
	return models.NodeType(s.NodeType)
}

// LayerWeights holds the per-layer weights for one domain; must sum to 1.0
type LayerWeights struct {
	Element      float64 `envconfig:"ELEMENT" default:"0.25"`
	SibsinPlanet float64 `envconfig:"SIBSIN_PLANET" default:"0.25"`
	Timing       float64 `envconfig:"TIMING" default:"0.20"`
	Relation     float64 `envconfig:"RELATION" default:"0.15"`
	House        float64 `envconfig:"HOUSE" default:"0.15"`
}

// Sum returns the total layer weight
func (w LayerWeights) Sum() float64 {
	return w.Element + w.SibsinPlanet + w.Timing + w.Relation + w.House
}

// Of returns the weight for a layer
func (w LayerWeights) Of(layer models.Layer) float64 {
	switch layer {
	case models.LayerElement:
		return w.Element
	case models.LayerSibsinPlanet:
		return w.SibsinPlanet
	case models.LayerTiming:
		return w.Timing
	case models.LayerRelation:
		return w.Relation
	case models.LayerHouse:
		return w.House
	}
	return 0
}

// FusionWeights configures the fusion matrix aggregation
type FusionWeights struct {
	Love   LayerWeights `envconfig:"LOVE"`
	Career LayerWeights `envconfig:"CAREER"`
	Health LayerWeights `envconfig:"HEALTH"`
	Karma  LayerWeights `envconfig:"KARMA"`

	// Second-level weights for the overall aggregate
	DomainLove   float64 `envconfig:"DOMAIN_LOVE" default:"0.25"`
	DomainCareer float64 `envconfig:"DOMAIN_CAREER" default:"0.25"`
	DomainHealth float64 `envconfig:"DOMAIN_HEALTH" default:"0.25"`
	DomainKarma  float64 `envconfig:"DOMAIN_KARMA" default:"0.25"`
}

// ForDomain returns the layer weights for a domain
func (f FusionWeights) ForDomain(d models.InsightDomain) LayerWeights {
	switch d {
	case models.DomainLove:
		return f.Love
	case models.DomainCareer:
		return f.Career
	case models.DomainHealth:
		return f.Health
	default:
		return f.Karma
	}
}

// DomainWeight returns the overall-aggregate weight for a domain
func (f FusionWeights) DomainWeight(d models.InsightDomain) float64 {
	switch d {
	case models.DomainLove:
		return f.DomainLove
	case models.DomainCareer:
		return f.DomainCareer
	case models.DomainHealth:
		return f.DomainHealth
	default:
		return f.DomainKarma
	}
}

// CacheConfig sizes the memoization stores
type CacheConfig struct {
	PillarCapacity int           `envconfig:"PILLAR_CAPACITY" default:"512"`
	ChartCapacity  int           `envconfig:"CHART_CAPACITY" default:"512"`
	ReportCapacity int           `envconfig:"REPORT_CAPACITY" default:"256"`
	TTL            time.Duration `envconfig:"TTL" default:"24h"`
}

// TimingConfig tunes the range-scan engine
type TimingConfig struct {
	Parallelism int `envconfig:"PARALLELISM" default:"0"` // 0 = NumCPU
	BatchSize   int `envconfig:"BATCH_SIZE" default:"32"`
}

// LoggingConfig configures the global logger
type LoggingConfig struct {
	Level string `envconfig:"LEVEL" default:"info"`
	File  string `envconfig:"FILE" default:""`
}

// Load reads configuration from environment with DESTINY_ prefix
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("destiny", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Default returns the validated default configuration without touching the
// environment; library consumers start here.
func Default() *Config {
	cfg := &Config{
		Standards: CalculationStandards{
			HouseSystem:  "placidus",
			NodeType:     "mean",
			HourBoundary: HourBoundaryZi23,
			TermBoundary: TermBoundaryExact,
			BaseTimezone: "Asia/Seoul",
		},
		Fusion: FusionWeights{
			Love:         defaultLayerWeights(),
			Career:       defaultLayerWeights(),
			Health:       defaultLayerWeights(),
			Karma:        defaultLayerWeights(),
			DomainLove:   0.25,
			DomainCareer: 0.25,
			DomainHealth: 0.25,
			DomainKarma:  0.25,
		},
		Cache: CacheConfig{
			PillarCapacity: 512,
			ChartCapacity:  512,
			ReportCapacity: 256,
			TTL:            24 * time.Hour,
		},
		Timing:  TimingConfig{Parallelism: 0, BatchSize: 32},
		Logging: LoggingConfig{Level: "info"},
	}
	return cfg
}

func defaultLayerWeights() LayerWeights {
	return LayerWeights{Element: 0.25, SibsinPlanet: 0.25, Timing: 0.20, Relation: 0.15, House: 0.15}
}

// Weight sums are validated here, at load time, not per call: weights are
// static for the process lifetime.
const weightTolerance = 0.001

// Validate checks standards enums and fusion weight sums
func (c *Config) Validate() error {
	switch c.Standards.HouseSystem {
	case string(models.HousePlacidus), string(models.HouseWholeSign):
	default:
		return coreerrors.Configuration(fmt.Sprintf("unknown house system %q", c.Standards.HouseSystem))
	}

	switch c.Standards.NodeType {
	case string(models.NodeMean), string(models.NodeTrue):
	default:
		return coreerrors.Configuration(fmt.Sprintf("unknown node type %q", c.Standards.NodeType))
	}

	switch c.Standards.HourBoundary {
	case HourBoundaryZi23, HourBoundaryMidnight:
	default:
		return coreerrors.Configuration(fmt.Sprintf("unknown hour boundary policy %q", c.Standards.HourBoundary))
	}

	switch c.Standards.TermBoundary {
	case TermBoundaryExact, TermBoundaryDay:
	default:
		return coreerrors.Configuration(fmt.Sprintf("unknown term boundary policy %q", c.Standards.TermBoundary))
	}

	if _, err := time.LoadLocation(c.Standards.BaseTimezone); err != nil {
		return coreerrors.Configuration(fmt.Sprintf("unknown base timezone %q", c.Standards.BaseTimezone))
	}

	for _, d := range models.Domains {
		w := c.Fusion.ForDomain(d)
		sum := w.Sum()
		if sum < 1-weightTolerance || sum > 1+weightTolerance {
			return coreerrors.Configuration(
				fmt.Sprintf("layer weights for domain %s sum to %.4f, want 1.0", d, sum))
		}
		// Readings without a birth time drop the house layer; the rest
		// must still carry weight or such inputs become unscorable
		if sum-w.House < weightTolerance {
			return coreerrors.Configuration(
				fmt.Sprintf("domain %s puts all layer weight on the house layer", d))
		}
	}

	domainSum := c.Fusion.DomainLove + c.Fusion.DomainCareer + c.Fusion.DomainHealth + c.Fusion.DomainKarma
	if domainSum < 1-weightTolerance || domainSum > 1+weightTolerance {
		return coreerrors.Configuration(
			fmt.Sprintf("domain weights sum to %.4f, want 1.0", domainSum))
	}

	if c.Cache.PillarCapacity <= 0 || c.Cache.ChartCapacity <= 0 || c.Cache.ReportCapacity <= 0 {
		return coreerrors.Configuration("cache capacities must be positive")
	}

	return nil
}
