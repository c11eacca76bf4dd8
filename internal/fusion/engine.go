// Package fusion combines pillar analysis and chart data into the weighted
// domain/layer score matrix. Same inputs and standards always produce
// bit-identical output; that property is what makes hash-keyed caching of
// reports valid.
package fusion

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/selivandex/destiny-core/internal/adapters/config"
	coreerrors "github.com/selivandex/destiny-core/pkg/errors"
	"github.com/selivandex/destiny-core/pkg/models"
)

// Modifier is one bounded context adjustment applied to a sub-score.
// Additive deltas are capped at ±15 points, multipliers to [0.85, 1.15];
// the score is re-clamped to [0, 100] after every step so a modifier chain
// can never silently escape bounds.
type Modifier struct {
	Name       string
	Additive   decimal.Decimal
	Multiplier decimal.Decimal // ignored when zero
}

var (
	maxAdditive   = decimal.NewFromInt(15)
	minMultiplier = decimal.NewFromFloat(0.85)
	maxMultiplier = decimal.NewFromFloat(1.15)
)

// ApplyModifiers runs a modifier chain over a score, clamping after each
// adjustment, and reports the applied deltas as factors.
func ApplyModifiers(score decimal.Decimal, mods []Modifier) (decimal.Decimal, []models.Factor) {
	var factors []models.Factor

	for _, m := range mods {
		if !m.Additive.IsZero() {
			add := m.Additive
			if add.GreaterThan(maxAdditive) {
				add = maxAdditive
			} else if add.LessThan(maxAdditive.Neg()) {
				add = maxAdditive.Neg()
			}
			before := score
			score = models.ClampScore(score.Add(add))
			factors = append(factors, models.Factor{Name: m.Name, Contribution: score.Sub(before)})
		}

		if !m.Multiplier.IsZero() {
			mul := m.Multiplier
			if mul.LessThan(minMultiplier) {
				mul = minMultiplier
			} else if mul.GreaterThan(maxMultiplier) {
				mul = maxMultiplier
			}
			before := score
			score = models.ClampScore(score.Mul(mul))
			factors = append(factors, models.Factor{Name: m.Name, Contribution: score.Sub(before)})
		}
	}

	return score, factors
}

// Context carries the temporal overlay for a fusion run. Now is an explicit
// input: the engine never reads the wall clock.
type Context struct {
	Now       time.Time
	Transit   *models.AstrologyChart
	Modifiers []Modifier
}

// Engine computes fusion reports under one weight configuration
type Engine struct {
	weights   config.FusionWeights
	standards *config.CalculationStandards
}

// NewEngine creates a fusion engine; weights were validated at config load
func NewEngine(weights config.FusionWeights, standards *config.CalculationStandards) *Engine {
	return &Engine{weights: weights, standards: standards}
}

// Compute builds the full fusion report from pillar analysis and chart
func (e *Engine) Compute(an models.PillarAnalysis, chart models.AstrologyChart, fctx Context) (models.FusionReport, error) {
	degraded := an.Pillars.Hour == nil || !chart.HasHouses

	layers := make([]models.Layer, 0, len(models.Layers))
	for _, l := range models.Layers {
		if l == models.LayerHouse && degraded {
			continue // house projection needs an exact birth time
		}
		layers = append(layers, l)
	}

	report := models.FusionReport{
		DomainAnalyses:   make(map[models.InsightDomain]models.DomainAnalysis, len(models.Domains)),
		Degraded:         degraded,
		StandardsVersion: e.standards.Version(),
	}

	overall := decimal.Zero
	transitTotal := decimal.Zero
	transitNames := map[string]bool{}

	for _, domain := range models.Domains {
		weights := e.weights.ForDomain(domain)

		// Renormalize over the layers actually present so a degraded run
		// still aggregates to a 0-100 score
		weightSum := 0.0
		for _, l := range layers {
			weightSum += weights.Of(l)
		}
		if weightSum <= 0 {
			return models.FusionReport{}, coreerrors.Configuration(
				fmt.Sprintf("no scorable layer weight for domain %s", domain))
		}

		domainScore := decimal.Zero
		cells := make([]models.MatrixCell, 0, len(layers))

		for _, layer := range layers {
			score, factors := e.scoreCell(layer, an, chart, fctx, domain)

			score, modFactors := ApplyModifiers(score, fctx.Modifiers)
			factors = append(factors, modFactors...)

			cell := models.MatrixCell{Domain: domain, Layer: layer, Score: score, Factors: factors}
			cells = append(cells, cell)
			report.Cells = append(report.Cells, cell)

			w := models.NewDecimal(weights.Of(layer) / weightSum)
			domainScore = domainScore.Add(score.Mul(w))

			if layer == models.LayerTiming {
				transitTotal = transitTotal.Add(score)
				for _, f := range factors {
					if f.Name != "no_transit_context" && !f.Contribution.IsZero() {
						transitNames[f.Name] = true
					}
				}
			}
		}

		domainScore = models.ClampScore(domainScore)
		report.DomainAnalyses[domain] = models.DomainAnalysis{
			Domain: domain,
			Score:  domainScore,
			Grade:  models.GradeOf(models.ToFloat64(domainScore)),
			Cells:  cells,
		}

		overall = overall.Add(domainScore.Mul(models.NewDecimal(e.weights.DomainWeight(domain))))
	}

	report.Overall = models.ClampScore(overall)
	report.OverallGrade = models.GradeOf(models.ToFloat64(report.Overall))
	report.Timing = e.timingAnalysis(fctx, transitTotal, transitNames)
	report.Profile = buildProfile(an, chart)

	return report, nil
}

func (e *Engine) scoreCell(layer models.Layer, an models.PillarAnalysis, chart models.AstrologyChart, fctx Context, domain models.InsightDomain) (decimal.Decimal, []models.Factor) {
	switch layer {
	case models.LayerElement:
		return scoreElementLayer(an, domain)
	case models.LayerSibsinPlanet:
		return scoreSibsinPlanetLayer(an, chart, domain)
	case models.LayerTiming:
		return scoreTimingLayer(chart, fctx.Transit, domain)
	case models.LayerRelation:
		return scoreRelationLayer(an)
	default:
		return scoreHouseLayer(chart, domain)
	}
}

func (e *Engine) timingAnalysis(fctx Context, transitTotal decimal.Decimal, names map[string]bool) models.TimingAnalysis {
	avg := transitTotal.Div(decimal.NewFromInt(int64(len(models.Domains))))

	var active []string
	for name := range names {
		active = append(active, name)
	}
	sort.Strings(active)

	return models.TimingAnalysis{
		ReferenceTime:  fctx.Now,
		TransitScore:   models.ClampScore(avg),
		ActiveTransits: active,
	}
}

func buildProfile(an models.PillarAnalysis, chart models.AstrologyChart) models.ProfileSummary {
	profile := models.ProfileSummary{
		DayMaster:        an.Pillars.DayMaster(),
		DayMasterElement: an.Pillars.DayMaster().Element(),
		Pillars:          an.Pillars,
		ElementBalance:   an.ElementCount,
		Daeun:            an.Daeun,
	}

	if sun, ok := chart.Position(models.Sun); ok {
		profile.SunSign = sun.Sign
	}
	if moon, ok := chart.Position(models.Moon); ok {
		profile.MoonSign = moon.Sign
	}
	if chart.HasHouses {
		sign := models.SignOf(chart.Ascendant)
		profile.AscendantSign = &sign
	}

	return profile
}
