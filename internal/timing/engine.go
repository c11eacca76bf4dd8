// Package timing scores candidate days for life events by stacking
// calendrical and astrological overlays (lunar mansion, phase, planetary
// rulers, transits, progressions) on top of the natal fusion baseline.
package timing

import (
	"context"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/selivandex/destiny-core/internal/adapters/config"
	"github.com/selivandex/destiny-core/internal/calendar"
	"github.com/selivandex/destiny-core/internal/ephemeris"
	coreerrors "github.com/selivandex/destiny-core/pkg/errors"
	"github.com/selivandex/destiny-core/pkg/logger"
	"github.com/selivandex/destiny-core/pkg/models"
	"github.com/selivandex/destiny-core/pkg/worker"
)

// Natal bundles the precomputed birth data a scan runs against. The caller
// resolves and caches it once; the scan itself never recomputes natal data.
type Natal struct {
	Input    models.BirthInput
	Birth    time.Time
	Location *time.Location
	Analysis models.PillarAnalysis
	Chart    models.AstrologyChart
	Report   models.FusionReport
}

// maxScanDays bounds a single range scan to two years
const maxScanDays = 731

// Engine runs event-timing scans over date ranges
type Engine struct {
	src ephemeris.Source
	cfg config.TimingConfig
}

// New creates a timing engine over an ephemeris source
func New(src ephemeris.Source, cfg config.TimingConfig) *Engine {
	return &Engine{src: src, cfg: cfg}
}

// Scan evaluates every day in [from, to] for the event type and returns the
// graded daily results with merged optimal and avoid periods. Days are
// evaluated independently over a bounded worker pool; the output order is
// always chronological regardless of parallelism.
func (e *Engine) Scan(ctx context.Context, natal Natal, ev models.EventType, from, to time.Time) (models.EventTimingResult, error) {
	domain, ok := eventDomain[ev]
	if !ok {
		return models.EventTimingResult{}, coreerrors.InvalidDate(fmt.Sprintf("unsupported event type %q", ev))
	}

	loc := natal.Location
	if loc == nil {
		loc = time.UTC
	}
	start := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, loc)
	end := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, loc)

	if end.Before(start) {
		return models.EventTimingResult{}, coreerrors.InvalidDate("date range end precedes start")
	}
	days := int(end.Sub(start).Hours()/24) + 1
	if days > maxScanDays {
		return models.EventTimingResult{}, coreerrors.InvalidDate(
			fmt.Sprintf("date range spans %d days, limit is %d", days, maxScanDays))
	}

	logger.Debug("event timing scan",
		zap.String("event", string(ev)),
		zap.String("domain", string(domain)),
		zap.Int("days", days),
	)

	baseline := models.ToFloat64(natal.Report.DomainAnalyses[domain].Score)
	useProgression := days > progressionHorizonDays

	// Days run in batches; cancellation is re-checked between batches so a
	// long scan lets go of the pool promptly
	batch := e.cfg.BatchSize
	if batch <= 0 {
		batch = days
	}
	daily := make([]models.DailyTiming, 0, days)
	for offset := 0; offset < days; offset += batch {
		if err := ctx.Err(); err != nil {
			return models.EventTimingResult{}, err
		}
		n := batch
		if offset+n > days {
			n = days - offset
		}
		first := offset
		part, err := worker.Map(ctx, e.cfg.Parallelism, n, func(ctx context.Context, i int) (models.DailyTiming, error) {
			return e.evaluateDay(natal, ev, domain, start.AddDate(0, 0, first+i), baseline, useProgression)
		})
		if err != nil {
			return models.EventTimingResult{}, err
		}
		daily = append(daily, part...)
	}

	result := models.EventTimingResult{
		EventType: ev,
		From:      start,
		To:        end,
		Daily:     daily,
		Degraded:  !natal.Input.TimeKnown(),
	}
	result.Optimal, result.Avoid = buildPeriods(daily)

	best := 0
	for i := range daily {
		if daily[i].Score > daily[best].Score {
			best = i
		}
	}
	result.Grade = daily[best].Grade
	result.Confidence = daily[best].Confidence
	result.Factors = daily[best].Factors

	return result, nil
}

// Week scans the seven days starting at weekStart
func (e *Engine) Week(ctx context.Context, natal Natal, ev models.EventType, weekStart time.Time) (models.EventTimingResult, error) {
	return e.Scan(ctx, natal, ev, weekStart, weekStart.AddDate(0, 0, 6))
}

// evaluateDay builds the overlay factor stack for one candidate day. All
// lookups reference local noon; the result depends only on the inputs.
func (e *Engine) evaluateDay(natal Natal, ev models.EventType, domain models.InsightDomain, date time.Time, baseline float64, useProgression bool) (models.DailyTiming, error) {
	ref := time.Date(date.Year(), date.Month(), date.Day(), 12, 0, 0, 0, date.Location())

	sun, err := e.src.Lookup(models.Sun, ref)
	if err != nil {
		return models.DailyTiming{}, fmt.Errorf("sun lookup for %s failed: %w", date.Format("2006-01-02"), err)
	}
	moon, err := e.src.Lookup(models.Moon, ref)
	if err != nil {
		return models.DailyTiming{}, fmt.Errorf("moon lookup for %s failed: %w", date.Format("2006-01-02"), err)
	}

	mansion := MansionOf(moon.Longitude)
	phase := PhaseOf(moon.Longitude, sun.Longitude)
	dayRuler := DayRulerOf(ref)
	hourRuler := HourRulerOf(ref, natal.Input.Latitude, natal.Input.Longitude)

	factors := []models.CausalFactor{{
		Name:       "natal_domain_baseline",
		Weight:     (baseline - 50) * domainBaselineScale,
		Confidence: domainBaselineConf,
		Note:       string(domain),
	}}

	if mf := mansionFactor(ev, mansion); mf != nil {
		factors = append(factors, *mf)
	}
	factors = append(factors, phaseFactor(ev, phase))

	significator := eventPlanet[ev]
	if dayRuler == significator {
		factors = append(factors, models.CausalFactor{
			Name:       "planetary_day_ruler",
			Weight:     dayRulerWeight,
			Confidence: dayRulerConf,
			Note:       significator.String(),
		})
	}
	if hourRuler == significator {
		factors = append(factors, models.CausalFactor{
			Name:       "planetary_hour_ruler",
			Weight:     hourRulerWeight,
			Confidence: hourRulerConf,
			Note:       significator.String(),
		})
	}

	tf, err := e.transitFactors(natal, ev, ref)
	if err != nil {
		return models.DailyTiming{}, err
	}
	factors = append(factors, tf...)

	if f := termTransitionFactor(ref); f != nil {
		factors = append(factors, *f)
	}

	if useProgression {
		pf, err := e.progressionFactor(natal, ref)
		if err != nil {
			return models.DailyTiming{}, err
		}
		if pf != nil {
			factors = append(factors, *pf)
		}
	}

	score := 50.0
	for _, f := range factors {
		score += f.Weight
	}
	if score < 0 {
		score = 0
	} else if score > 100 {
		score = 100
	}

	confidence := CombineConfidence(factors)
	if !natal.Input.TimeKnown() {
		confidence = math.Min(confidence, degradedConfidenceCap)
	}

	return models.DailyTiming{
		Date:               date,
		Score:              score,
		Grade:              models.GradeOf(score),
		Confidence:         confidence,
		Mansion:            mansion,
		Phase:              phase,
		PlanetaryDayRuler:  dayRuler,
		PlanetaryHourRuler: &hourRuler,
		Factors:            factors,
	}, nil
}

// Slow transits checked against natal anchors during a scan
var scanTransitBodies = []models.Body{models.Jupiter, models.Saturn}

// transitFactors rates the day's Jupiter and Saturn positions against the
// natal luminaries and the event's significator
func (e *Engine) transitFactors(natal Natal, ev models.EventType, ref time.Time) ([]models.CausalFactor, error) {
	anchors := []models.Body{models.Sun, models.Moon}
	if sig := eventPlanet[ev]; sig != models.Sun && sig != models.Moon {
		anchors = append(anchors, sig)
	}

	var factors []models.CausalFactor
	for _, tb := range scanTransitBodies {
		tp, err := e.src.Lookup(tb, ref)
		if err != nil {
			return nil, fmt.Errorf("transit lookup for %s failed: %w", tb, err)
		}

		for _, nb := range anchors {
			np, ok := natal.Chart.Position(nb)
			if !ok {
				continue
			}
			kind, matched := classifyScanAngle(tp.Longitude, np.Longitude)
			if !matched {
				continue
			}

			w := transitPenaltyWeight
			switch kind {
			case models.AspectConjunction, models.AspectTrine, models.AspectSextile:
				w = transitBonusWeight
			}
			factors = append(factors, models.CausalFactor{
				Name:       fmt.Sprintf("transit_%s_%s_natal_%s", tb, kind, nb),
				Weight:     w,
				Confidence: transitConf,
			})
		}
	}
	return factors, nil
}

// termTransitionFactor penalizes days within a day of a jeol boundary;
// month-energy handovers are poor footing for elections
func termTransitionFactor(ref time.Time) *models.CausalFactor {
	next := calendar.NextMajorTerm(ref)
	prev := calendar.PrevMajorTerm(ref)

	const window = 24 * time.Hour
	if next.Sub(ref) > window && ref.Sub(prev) > window {
		return nil
	}
	return &models.CausalFactor{
		Name:       "solar_term_transition",
		Weight:     termTransitionWeight,
		Confidence: termTransitionConf,
	}
}

// progressionFactor rates the secondary-progressed Moon against the natal
// Sun; only consulted for ranges long enough for the progressed Moon to move
func (e *Engine) progressionFactor(natal Natal, ref time.Time) (*models.CausalFactor, error) {
	progressed := ProgressedInstant(natal.Birth, ref)

	pm, err := e.src.Lookup(models.Moon, progressed)
	if err != nil {
		return nil, fmt.Errorf("progressed moon lookup failed: %w", err)
	}
	sun, ok := natal.Chart.Position(models.Sun)
	if !ok {
		return nil, nil
	}

	kind, matched := classifyScanAngle(pm.Longitude, sun.Longitude)
	if !matched {
		return nil, nil
	}

	w := -progressionWeight
	switch kind {
	case models.AspectConjunction, models.AspectTrine, models.AspectSextile:
		w = progressionWeight
	}
	return &models.CausalFactor{
		Name:       fmt.Sprintf("progressed_moon_%s_natal_sun", kind),
		Weight:     w,
		Confidence: progressionConf,
	}, nil
}

// scanOrb is the aspect orb for scan overlays, tighter than natal orbs
const scanOrb = 3.0

var scanAngles = []struct {
	kind  models.AspectKind
	angle float64
}{
	{models.AspectConjunction, 0},
	{models.AspectSextile, 60},
	{models.AspectSquare, 90},
	{models.AspectTrine, 120},
	{models.AspectOpposition, 180},
}

func classifyScanAngle(a, b float64) (models.AspectKind, bool) {
	sep := normalize360(a - b)
	if sep > 180 {
		sep = 360 - sep
	}
	for _, sa := range scanAngles {
		d := math.Abs(sep - sa.angle)
		if d <= scanOrb {
			return sa.kind, true
		}
	}
	return "", false
}

// buildPeriods merges contiguous qualifying days into periods: grades S and
// A+ form optimal periods, grade D forms avoid periods
func buildPeriods(daily []models.DailyTiming) (optimal, avoid []models.Period) {
	flush := func(dst *[]models.Period, run []models.DailyTiming) {
		if len(run) == 0 {
			return
		}
		p := models.Period{
			Start:     run[0].Date,
			End:       run[len(run)-1].Date,
			Grade:     run[0].Grade,
			PeakScore: run[0].Score,
		}
		for _, d := range run[1:] {
			if d.Grade.Rank() > p.Grade.Rank() {
				p.Grade = d.Grade
			}
			if d.Score > p.PeakScore {
				p.PeakScore = d.Score
			}
		}
		*dst = append(*dst, p)
	}

	var optRun, avoidRun []models.DailyTiming
	for _, d := range daily {
		if d.Grade.Rank() >= models.GradeAPlus.Rank() {
			optRun = append(optRun, d)
		} else {
			flush(&optimal, optRun)
			optRun = nil
		}
		if d.Grade == models.GradeD {
			avoidRun = append(avoidRun, d)
		} else {
			flush(&avoid, avoidRun)
			avoidRun = nil
		}
	}
	flush(&optimal, optRun)
	flush(&avoid, avoidRun)

	return optimal, avoid
}
