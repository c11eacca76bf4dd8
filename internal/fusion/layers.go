package fusion

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/selivandex/destiny-core/pkg/models"
)

// Layer scorers are pure functions: (pillar analysis, chart, domain) in,
// 0-100 sub-score with factor breakdown out. No randomness, no clock.

var baseScore = decimal.NewFromInt(50)

// domainTargetElement returns each domain's key element relative to the day
// master: career keys on the controlling element (officer star), love on
// the controlled one (wealth star), health on the day master's own element,
// karma on the generating one (resource star).
func domainTargetElement(dm models.Element, domain models.InsightDomain) models.Element {
	switch domain {
	case models.DomainCareer:
		return models.Element((int(dm) + 3) % 5)
	case models.DomainLove:
		return models.Element((int(dm) + 2) % 5)
	case models.DomainHealth:
		return dm
	default: // karma
		return models.Element((int(dm) + 4) % 5)
	}
}

// Element-layer scoring constants
var (
	balancePenaltyPerUnit = decimal.NewFromInt(40) // per unit of total share deviation
	targetShareBonusMax   = decimal.NewFromInt(20)
)

// scoreElementLayer rates the five-element distribution: evenness of the
// overall balance plus the weight of the domain's target element
func scoreElementLayer(an models.PillarAnalysis, domain models.InsightDomain) (decimal.Decimal, []models.Factor) {
	total := 0.0
	for _, e := range models.Elements {
		total += an.ElementCount[e]
	}
	if total == 0 {
		return baseScore, nil
	}

	deviation := 0.0
	for _, e := range models.Elements {
		share := an.ElementCount[e] / total
		diff := share - 0.2
		if diff < 0 {
			diff = -diff
		}
		deviation += diff
	}

	target := domainTargetElement(an.Pillars.DayMaster().Element(), domain)
	targetShare := an.ElementCount[target] / total

	penalty := balancePenaltyPerUnit.Mul(models.NewDecimal(deviation))
	bonus := targetShareBonusMax.Mul(models.NewDecimal(targetShare * 5)) // share 0.2 = full bonus

	score := models.ClampScore(decimal.NewFromInt(70).Sub(penalty))
	score = models.ClampScore(score.Add(models.ClampScore(bonus).Div(decimal.NewFromInt(2))))

	factors := []models.Factor{
		{Name: "element_balance", Contribution: penalty.Neg(), Note: fmt.Sprintf("deviation %.2f", deviation)},
		{Name: "target_element_" + target.String(), Contribution: bonus, Note: fmt.Sprintf("share %.2f", targetShare)},
	}
	return score, factors
}

// Domain planet affinities for the sibsin-planet layer
var domainPlanets = map[models.InsightDomain][]models.Body{
	models.DomainLove:   {models.Venus, models.Moon},
	models.DomainCareer: {models.Saturn, models.Sun},
	models.DomainHealth: {models.Mars, models.Moon},
	models.DomainKarma:  {models.Pluto, models.LunarNode},
}

// Domain sibsin affinities: presence of these stars supports the domain
var domainSibsin = map[models.InsightDomain][]models.Sibsin{
	models.DomainLove:   {models.SibsinJeongjae, models.SibsinPyeonjae, models.SibsinJeonggwan},
	models.DomainCareer: {models.SibsinJeonggwan, models.SibsinPyeongwan, models.SibsinJeongin},
	models.DomainHealth: {models.SibsinBigyeon, models.SibsinSiksin},
	models.DomainKarma:  {models.SibsinPyeonin, models.SibsinJeongin},
}

// Sibsin-planet layer scoring constants
var (
	sibsinPresenceBonus   = decimal.NewFromInt(8)
	harmoniousAspectBonus = decimal.NewFromInt(6)
	hardAspectPenalty     = decimal.NewFromInt(5)
	retrogradePenalty     = decimal.NewFromInt(4)
)

// scoreSibsinPlanetLayer fuses the pillar-side star presence with the
// chart-side condition of the domain's planets
func scoreSibsinPlanetLayer(an models.PillarAnalysis, chart models.AstrologyChart, domain models.InsightDomain) (decimal.Decimal, []models.Factor) {
	score := baseScore
	var factors []models.Factor

	for _, want := range domainSibsin[domain] {
		for _, got := range an.Sibsin {
			if got == want {
				score = models.ClampScore(score.Add(sibsinPresenceBonus))
				factors = append(factors, models.Factor{
					Name:         "sibsin_" + want.String(),
					Contribution: sibsinPresenceBonus,
				})
				break
			}
		}
	}

	for _, body := range domainPlanets[domain] {
		pos, ok := chart.Position(body)
		if !ok {
			continue
		}

		if pos.Retrograde {
			score = models.ClampScore(score.Sub(retrogradePenalty))
			factors = append(factors, models.Factor{
				Name:         body.String() + "_retrograde",
				Contribution: retrogradePenalty.Neg(),
			})
		}

		for _, asp := range chart.AspectsOf(body) {
			switch asp.Kind {
			case models.AspectTrine, models.AspectSextile:
				score = models.ClampScore(score.Add(harmoniousAspectBonus))
				factors = append(factors, models.Factor{
					Name:         fmt.Sprintf("%s_%s", body, asp.Kind),
					Contribution: harmoniousAspectBonus,
				})
			case models.AspectSquare, models.AspectOpposition:
				score = models.ClampScore(score.Sub(hardAspectPenalty))
				factors = append(factors, models.Factor{
					Name:         fmt.Sprintf("%s_%s", body, asp.Kind),
					Contribution: hardAspectPenalty.Neg(),
				})
			}
		}
	}

	return score, factors
}

// Relation layer scoring constants
var (
	harmonyBonus      = decimal.NewFromInt(8)
	clashPenalty      = decimal.NewFromInt(8)
	punishmentPenalty = decimal.NewFromInt(6)
	harmPenalty       = decimal.NewFromInt(4)
)

// scoreRelationLayer rates the harmony/conflict structure of the pillar set
func scoreRelationLayer(an models.PillarAnalysis) (decimal.Decimal, []models.Factor) {
	score := baseScore
	var factors []models.Factor

	add := func(name string, delta decimal.Decimal) {
		score = models.ClampScore(score.Add(delta))
		factors = append(factors, models.Factor{Name: name, Contribution: delta})
	}

	for _, rel := range an.Relations {
		switch rel.Kind {
		case models.RelationSixHarmony, models.RelationThreeHarmony, models.RelationStemCombine:
			add(string(rel.Kind), harmonyBonus)
		case models.RelationClash:
			add(string(rel.Kind), clashPenalty.Neg())
		case models.RelationPunishment:
			add(string(rel.Kind), punishmentPenalty.Neg())
		case models.RelationHarm:
			add(string(rel.Kind), harmPenalty.Neg())
		}
	}

	return score, factors
}

// Domain house affinities for the house layer
var domainHouses = map[models.InsightDomain][]int{
	models.DomainLove:   {5, 7},
	models.DomainCareer: {2, 6, 10},
	models.DomainHealth: {1, 6, 12},
	models.DomainKarma:  {4, 8, 12},
}

var (
	beneficInHouseBonus   = decimal.NewFromInt(10)
	maleficInHousePenalty = decimal.NewFromInt(7)
	luminaryInHouseBonus  = decimal.NewFromInt(6)
)

// scoreHouseLayer rates occupancy of the domain's houses; callable only
// when the chart carries houses
func scoreHouseLayer(chart models.AstrologyChart, domain models.InsightDomain) (decimal.Decimal, []models.Factor) {
	score := baseScore
	var factors []models.Factor

	inDomainHouse := func(h int) bool {
		for _, dh := range domainHouses[domain] {
			if dh == h {
				return true
			}
		}
		return false
	}

	for _, body := range models.Bodies {
		pos, ok := chart.Position(body)
		if !ok || !inDomainHouse(pos.House) {
			continue
		}

		var delta decimal.Decimal
		switch body {
		case models.Venus, models.Jupiter:
			delta = beneficInHouseBonus
		case models.Mars, models.Saturn, models.Pluto:
			delta = maleficInHousePenalty.Neg()
		case models.Sun, models.Moon:
			delta = luminaryInHouseBonus
		default:
			continue
		}

		score = models.ClampScore(score.Add(delta))
		factors = append(factors, models.Factor{
			Name:         fmt.Sprintf("%s_in_house_%d", body, pos.House),
			Contribution: delta,
		})
	}

	return score, factors
}

// Timing layer scoring constants
var (
	transitHarmonyBonus = decimal.NewFromInt(7)
	transitHardPenalty  = decimal.NewFromInt(6)
)

// Natal anchor points the timing layer watches per domain
var domainTimingAnchors = map[models.InsightDomain][]models.Body{
	models.DomainLove:   {models.Venus, models.Moon},
	models.DomainCareer: {models.Sun, models.Saturn},
	models.DomainHealth: {models.Sun, models.Mars},
	models.DomainKarma:  {models.Moon, models.LunarNode},
}

// Slow-moving transit bodies considered against natal anchors
var transitBodies = []models.Body{models.Jupiter, models.Saturn}

// scoreTimingLayer rates current transits against natal anchor points.
// Without transit context it stays neutral and says so.
func scoreTimingLayer(natal models.AstrologyChart, transit *models.AstrologyChart, domain models.InsightDomain) (decimal.Decimal, []models.Factor) {
	if transit == nil {
		return baseScore, []models.Factor{{Name: "no_transit_context", Contribution: decimal.Zero}}
	}

	score := baseScore
	var factors []models.Factor

	for _, tb := range transitBodies {
		tp, ok := transit.Position(tb)
		if !ok {
			continue
		}
		for _, nb := range domainTimingAnchors[domain] {
			np, ok := natal.Position(nb)
			if !ok {
				continue
			}

			kind, matched := classifyTransitAngle(tp.Longitude, np.Longitude)
			if !matched {
				continue
			}

			name := fmt.Sprintf("transit_%s_%s_natal_%s", tb, kind, nb)
			switch kind {
			case models.AspectTrine, models.AspectSextile, models.AspectConjunction:
				score = models.ClampScore(score.Add(transitHarmonyBonus))
				factors = append(factors, models.Factor{Name: name, Contribution: transitHarmonyBonus})
			default:
				score = models.ClampScore(score.Sub(transitHardPenalty))
				factors = append(factors, models.Factor{Name: name, Contribution: transitHardPenalty.Neg()})
			}
		}
	}

	return score, factors
}

// Transit orbs are tighter than natal ones
const transitOrb = 3.0

var transitAngles = []struct {
	kind  models.AspectKind
	angle float64
}{
	{models.AspectConjunction, 0},
	{models.AspectSextile, 60},
	{models.AspectSquare, 90},
	{models.AspectTrine, 120},
	{models.AspectOpposition, 180},
}

func classifyTransitAngle(a, b float64) (models.AspectKind, bool) {
	sep := a - b
	for sep < 0 {
		sep += 360
	}
	for sep >= 360 {
		sep -= 360
	}
	if sep > 180 {
		sep = 360 - sep
	}

	for _, ta := range transitAngles {
		d := sep - ta.angle
		if d < 0 {
			d = -d
		}
		if d <= transitOrb {
			return ta.kind, true
		}
	}
	return "", false
}
