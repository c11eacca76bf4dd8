package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// InsightDomain is one scored life area
type InsightDomain string

const (
	DomainLove   InsightDomain = "love"
	DomainCareer InsightDomain = "career"
	DomainHealth InsightDomain = "health"
	DomainKarma  InsightDomain = "karma"
)

// Domains lists every insight domain in report order
var Domains = []InsightDomain{DomainLove, DomainCareer, DomainHealth, DomainKarma}

// Layer is one analytical layer of the fusion matrix
type Layer string

const (
	LayerElement      Layer = "element"
	LayerSibsinPlanet Layer = "sibsin_planet"
	LayerTiming       Layer = "timing"
	LayerRelation     Layer = "relation"
	LayerHouse        Layer = "house"
)

// Layers lists every matrix layer in evaluation order
var Layers = []Layer{LayerElement, LayerSibsinPlanet, LayerTiming, LayerRelation, LayerHouse}

// Factor is one named contribution inside a matrix cell
type Factor struct {
	Name         string          `json:"name"`
	Contribution decimal.Decimal `json:"contribution"` // signed delta applied to the sub-score
	Note         string          `json:"note,omitempty"`
}

// MatrixCell is the score for one (domain, layer) pair
type MatrixCell struct {
	Domain  InsightDomain   `json:"domain"`
	Layer   Layer           `json:"layer"`
	Score   decimal.Decimal `json:"score"` // 0..100
	Factors []Factor        `json:"factors,omitempty"`
}

// DomainAnalysis aggregates one domain's cells into a weighted score
type DomainAnalysis struct {
	Domain   InsightDomain   `json:"domain"`
	Score    decimal.Decimal `json:"score"` // 0..100
	Grade    Grade           `json:"grade"`
	Cells    []MatrixCell    `json:"cells"`
	Keywords []string        `json:"keywords,omitempty"`
}

// TimingAnalysis summarizes the current temporal overlay used as context
type TimingAnalysis struct {
	ReferenceTime  time.Time       `json:"reference_time"`
	TransitScore   decimal.Decimal `json:"transit_score"`
	ActiveTransits []string        `json:"active_transits,omitempty"`
}

// ProfileSummary carries denormalized pillar and chart highlights for
// downstream rendering; the core never reads it back
type ProfileSummary struct {
	DayMaster        Stem                `json:"day_master"`
	DayMasterElement Element             `json:"day_master_element"`
	Pillars          FourPillars         `json:"pillars"`
	ElementBalance   map[Element]float64 `json:"element_balance"`
	SunSign          ZodiacSign          `json:"sun_sign"`
	MoonSign         ZodiacSign          `json:"moon_sign"`
	AscendantSign    *ZodiacSign         `json:"ascendant_sign,omitempty"` // nil when time unknown
	Daeun            []LuckCycle         `json:"daeun,omitempty"`
}

// FusionReport is the complete fused reading. Immutable once computed;
// a changed input or standards version produces a new report.
type FusionReport struct {
	Cells            []MatrixCell                     `json:"cells"`
	DomainAnalyses   map[InsightDomain]DomainAnalysis `json:"domain_analyses"`
	Overall          decimal.Decimal                  `json:"overall"` // 0..100
	OverallGrade     Grade                            `json:"overall_grade"`
	Timing           TimingAnalysis                   `json:"timing"`
	Profile          ProfileSummary                   `json:"profile"`
	Degraded         bool                             `json:"degraded"` // true when hour data was unavailable
	StandardsVersion string                           `json:"standards_version"`
}
