package timing

import (
	"fmt"
	"math"

	"github.com/selivandex/destiny-core/pkg/models"
)

// Event-to-domain mapping: each event type is judged primarily through one
// fusion domain's natal score
var eventDomain = map[models.EventType]models.InsightDomain{
	models.EventCareer:       models.DomainCareer,
	models.EventContract:     models.DomainCareer,
	models.EventWealth:       models.DomainCareer,
	models.EventRelationship: models.DomainLove,
	models.EventHealth:       models.DomainHealth,
	models.EventStudy:        models.DomainKarma,
	models.EventTravel:       models.DomainKarma,
}

// Planetary significator per event type, used for day and hour rulership
var eventPlanet = map[models.EventType]models.Body{
	models.EventCareer:       models.Saturn,
	models.EventRelationship: models.Venus,
	models.EventHealth:       models.Mars,
	models.EventWealth:       models.Jupiter,
	models.EventStudy:        models.Mercury,
	models.EventTravel:       models.Mercury,
	models.EventContract:     models.Mercury,
}

// Mansion electional tables. Indices follow the Gak-first ordering of
// models.LunarMansion; the sets come from the classical "auspicious for"
// assignments, reduced to the seven event types supported here.
var favorableMansions = map[models.EventType][]models.LunarMansion{
	models.EventCareer:       {0, 3, 11, 13, 21, 25},
	models.EventRelationship: {3, 4, 9, 15, 24, 26},
	models.EventHealth:       {1, 7, 14, 19, 22},
	models.EventWealth:       {0, 8, 13, 17, 21},
	models.EventStudy:        {5, 10, 16, 20, 27},
	models.EventTravel:       {2, 6, 12, 18, 23},
	models.EventContract:     {0, 4, 13, 17, 26},
}

var unfavorableMansions = map[models.EventType][]models.LunarMansion{
	models.EventCareer:       {6, 10, 18},
	models.EventRelationship: {5, 11, 22},
	models.EventHealth:       {4, 9, 27},
	models.EventWealth:       {2, 10, 23},
	models.EventStudy:        {1, 12, 19},
	models.EventTravel:       {7, 11, 24},
	models.EventContract:     {6, 14, 20},
}

// Factor weight and confidence constants. Weights are signed score deltas;
// confidences express how much trust each overlay carries and feed the
// combined confidence, never the score.
const (
	domainBaselineScale    = 0.4 // (domain score - 50) * scale
	domainBaselineConf     = 0.90
	mansionWeight          = 8.0
	mansionConf            = 0.80
	phaseWeight            = 6.0
	phaseMismatchWeight    = -3.0
	phaseConf              = 0.85
	dayRulerWeight         = 6.0
	dayRulerConf           = 0.75
	hourRulerWeight        = 4.0
	hourRulerConf          = 0.70
	transitBonusWeight     = 7.0
	transitPenaltyWeight   = -6.0
	transitConf            = 0.80
	termTransitionWeight   = -4.0
	termTransitionConf     = 0.80
	progressionWeight      = 5.0
	progressionConf        = 0.60
	neutralConfidence      = 0.5
	degradedConfidenceCap  = 0.85
	progressionHorizonDays = 180
)

func mansionFactor(ev models.EventType, m models.LunarMansion) *models.CausalFactor {
	for _, fm := range favorableMansions[ev] {
		if fm == m {
			return &models.CausalFactor{
				Name:       "lunar_mansion",
				Weight:     mansionWeight,
				Confidence: mansionConf,
				Note:       fmt.Sprintf("%s favorable for %s", m, ev),
			}
		}
	}
	for _, um := range unfavorableMansions[ev] {
		if um == m {
			return &models.CausalFactor{
				Name:       "lunar_mansion",
				Weight:     -mansionWeight,
				Confidence: mansionConf,
				Note:       fmt.Sprintf("%s unfavorable for %s", m, ev),
			}
		}
	}
	return nil
}

// phaseFactor favors the waxing half for initiating events and the waning
// half for health matters (recovery, treatment)
func phaseFactor(ev models.EventType, p models.LunarPhase) models.CausalFactor {
	wantWaxing := ev != models.EventHealth

	w := phaseMismatchWeight
	if waxing(p) == wantWaxing {
		w = phaseWeight
	}
	return models.CausalFactor{
		Name:       "lunar_phase",
		Weight:     w,
		Confidence: phaseConf,
		Note:       string(p),
	}
}

// CombineConfidence merges per-factor confidences into one value via a
// geometric mean weighted by each factor's absolute score weight. The
// formula is order-independent: shuffling the factor list cannot change
// the result.
func CombineConfidence(factors []models.CausalFactor) float64 {
	var logSum, weightSum float64
	for _, f := range factors {
		w := math.Abs(f.Weight)
		if w == 0 || f.Confidence <= 0 {
			continue
		}
		logSum += w * math.Log(f.Confidence)
		weightSum += w
	}
	if weightSum == 0 {
		return neutralConfidence
	}
	return math.Exp(logSum / weightSum)
}
