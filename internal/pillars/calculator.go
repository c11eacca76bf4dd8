// Package pillars computes the four sexagenary pillars and their derived
// relations from a resolved birth instant. Everything here is fixed cyclical
// arithmetic and table lookups; the only policy input is the standards set.
package pillars

import (
	"fmt"
	"math"

	"github.com/selivandex/destiny-core/internal/adapters/config"
	"github.com/selivandex/destiny-core/internal/calendar"
	"github.com/selivandex/destiny-core/internal/ephemeris"
	"github.com/selivandex/destiny-core/pkg/errors"
	"github.com/selivandex/destiny-core/pkg/models"
)

// dayGanzhiOffset anchors the day cycle: JDN 2451545 (2000-01-01) is
// Mu-O, sexagenary index 54, so index = (JDN + 49) mod 60.
const dayGanzhiOffset = 49

// yearGanzhiOffset anchors the year cycle: 1984 (= 4 mod 60 ... 1984-4)
// was Gapja, so index = (year - 4) mod 60.
const yearGanzhiOffset = 4

// Branch index of the In (tiger) month, the first month of the solar year
const firstMonthBranch = 2

// Calculator computes pillars under one standards set
type Calculator struct {
	standards *config.CalculationStandards
}

// NewCalculator creates a pillar calculator
func NewCalculator(standards *config.CalculationStandards) *Calculator {
	return &Calculator{standards: standards}
}

// Compute derives the four pillars for a resolved instant. The hour pillar
// is omitted when birth time is unknown.
func (c *Calculator) Compute(res calendar.Resolved) (models.FourPillars, error) {
	day := c.dayPillar(res)
	year := models.PillarFromGanzhi(res.SajuYear - yearGanzhiOffset)
	month := monthPillar(year.Stem, res.MonthIdx)

	fp := models.FourPillars{Year: year, Month: month, Day: day}

	if res.TimeKnown {
		hp := hourPillar(day.Stem, res.Local.Hour())
		fp.Hour = &hp
	}

	for _, p := range fp.Pillars() {
		if !p.Stem.Valid() || !p.Branch.Valid() {
			return models.FourPillars{}, errors.UnknownStemBranch(
				fmt.Sprintf("pillar out of table range: stem=%d branch=%d", p.Stem, p.Branch))
		}
	}

	return fp, nil
}

// dayPillar applies the configured day-boundary policy before the mod-60
// lookup. Under the zi23 policy a birth at or after 23:00 local belongs to
// the following day's Ja hour, so the day advances with it.
func (c *Calculator) dayPillar(res calendar.Resolved) models.Pillar {
	y, m, d := res.Local.Date()
	if c.standards.HourBoundary == config.HourBoundaryZi23 && res.TimeKnown && res.Local.Hour() == 23 {
		next := res.Local.AddDate(0, 0, 1)
		y, m, d = next.Date()
	}

	jdn := ephemeris.JulianDayNumber(y, int(m), d)
	return models.PillarFromGanzhi(jdn + dayGanzhiOffset)
}

// monthPillar combines the solar-term month index with the five-tigers stem
// table: the In-month stem repeats on a five-year cycle keyed by year stem.
func monthPillar(yearStem models.Stem, monthIdx int) models.Pillar {
	branch := models.Branch((firstMonthBranch + monthIdx) % 12)
	stem := models.Stem(((int(yearStem)%5)*2 + 2 + monthIdx) % 10)
	return models.Pillar{Stem: stem, Branch: branch}
}

// hourPillar buckets the local hour into 2-hour branches and applies the
// five-rats stem table keyed by day stem
func hourPillar(dayStem models.Stem, hour int) models.Pillar {
	branch := models.Branch(((hour + 1) / 2) % 12)
	stem := models.Stem(((int(dayStem)%5)*2 + int(branch)) % 10)
	return models.Pillar{Stem: stem, Branch: branch}
}

// Weights of hidden stems in the element distribution: pillar stems count
// in full, a branch's primary hidden stem most, the minor stems least.
const (
	stemWeight          = 1.0
	primaryHiddenWeight = 0.7
	minorHiddenWeight   = 0.2
)

// Analyze derives the relational data for a pillar set: hidden stems,
// sibsin, twelve stages, pairwise relations, element distribution and the
// luck-cycle sequence.
func (c *Calculator) Analyze(res calendar.Resolved, fp models.FourPillars, gender models.Gender) models.PillarAnalysis {
	ps := fp.Pillars()
	dayMaster := fp.DayMaster()

	hidden := make(map[models.Branch][]models.Stem, len(ps))
	for _, p := range ps {
		if _, ok := hidden[p.Branch]; !ok {
			hidden[p.Branch] = HiddenStemsOf(p.Branch)
		}
	}

	sibsin := make([]models.Sibsin, 0, len(ps))
	stages := make([]models.TwelveStage, 0, len(ps))
	for i, p := range ps {
		if i != 2 { // day pillar stem is the reference itself
			sibsin = append(sibsin, SibsinOf(dayMaster, p.Stem))
		}
		stages = append(stages, TwelveStageOf(dayMaster, p.Branch))
	}

	return models.PillarAnalysis{
		Pillars:      fp,
		HiddenStems:  hidden,
		Sibsin:       sibsin,
		Stages:       stages,
		Relations:    detectRelations(ps),
		ElementCount: elementDistribution(ps),
		Daeun:        c.daeun(res, fp, gender),
	}
}

// detectRelations scans every pillar pair for branch and stem relations
func detectRelations(ps []models.Pillar) []models.BranchRelation {
	var out []models.BranchRelation

	addElem := func(kind models.RelationKind, i, j int, el models.Element) {
		e := el
		out = append(out, models.BranchRelation{Kind: kind, A: i, B: j, Element: &e})
	}
	add := func(kind models.RelationKind, i, j int) {
		out = append(out, models.BranchRelation{Kind: kind, A: i, B: j})
	}

	for i := 0; i < len(ps); i++ {
		for j := i + 1; j < len(ps); j++ {
			a, b := ps[i].Branch, ps[j].Branch

			for _, p := range sixHarmonyPairs {
				if (p.a == a && p.b == b) || (p.a == b && p.b == a) {
					addElem(models.RelationSixHarmony, i, j, p.element)
				}
			}
			if el, ok := inSameTriad(a, b); ok {
				addElem(models.RelationThreeHarmony, i, j, el)
			}
			if isClash(a, b) || isClash(b, a) {
				add(models.RelationClash, i, j)
			}
			for _, p := range punishmentPairs {
				if (p[0] == a && p[1] == b) || (p[0] == b && p[1] == a) {
					add(models.RelationPunishment, i, j)
				}
			}
			for _, p := range harmPairs {
				if (p[0] == a && p[1] == b) || (p[0] == b && p[1] == a) {
					add(models.RelationHarm, i, j)
				}
			}

			sa, sb := ps[i].Stem, ps[j].Stem
			for _, p := range stemCombinePairs {
				if (p.a == sa && p.b == sb) || (p.a == sb && p.b == sa) {
					addElem(models.RelationStemCombine, i, j, p.element)
				}
			}
		}
	}

	return out
}

// elementDistribution counts elements across stems and hidden stems
func elementDistribution(ps []models.Pillar) map[models.Element]float64 {
	dist := make(map[models.Element]float64, 5)
	for _, p := range ps {
		dist[p.Stem.Element()] += stemWeight
		for k, hs := range HiddenStemsOf(p.Branch) {
			if k == 0 {
				dist[hs.Element()] += primaryHiddenWeight
			} else {
				dist[hs.Element()] += minorHiddenWeight
			}
		}
	}
	return dist
}

// Luck-cycle constants: three days to the adjacent jeol equal one year of
// entry age; eight cycles of ten years each are produced.
const (
	daysPerDaeunYear = 3.0
	daeunCycles      = 8
)

// daeun derives the 10-year luck cycles: direction from year-stem polarity
// crossed with gender, entry age from the distance to the adjacent jeol.
func (c *Calculator) daeun(res calendar.Resolved, fp models.FourPillars, gender models.Gender) []models.LuckCycle {
	forward := (fp.Year.Stem.Polarity() == models.Yang) == (gender == models.GenderMale)

	var days float64
	if forward {
		days = calendar.NextMajorTerm(res.Instant).Sub(res.Instant).Hours() / 24
	} else {
		days = res.Instant.Sub(calendar.PrevMajorTerm(res.Instant)).Hours() / 24
	}

	startAge := int(math.Round(days / daysPerDaeunYear))
	if startAge < 1 {
		startAge = 1
	}

	base := fp.Month.GanzhiIndex()
	step := 1
	if !forward {
		step = -1
	}

	cycles := make([]models.LuckCycle, 0, daeunCycles)
	for i := 1; i <= daeunCycles; i++ {
		cycles = append(cycles, models.LuckCycle{
			StartAge: startAge + (i-1)*10,
			Pillar:   models.PillarFromGanzhi(base + step*i),
		})
	}
	return cycles
}
