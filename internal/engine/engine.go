// Package engine wires the calculation stages into the public reading and
// timing operations, with hash-keyed memoization in front of each stage.
package engine

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/selivandex/destiny-core/internal/adapters/config"
	"github.com/selivandex/destiny-core/internal/astro"
	"github.com/selivandex/destiny-core/internal/calendar"
	"github.com/selivandex/destiny-core/internal/ephemeris"
	"github.com/selivandex/destiny-core/internal/fusion"
	"github.com/selivandex/destiny-core/internal/pillars"
	"github.com/selivandex/destiny-core/internal/timing"
	"github.com/selivandex/destiny-core/pkg/cache"
	"github.com/selivandex/destiny-core/pkg/logger"
	"github.com/selivandex/destiny-core/pkg/models"
)

// Engine is the top-level façade over the calculation pipeline. All methods
// are safe for concurrent use; the stages are stateless and the caches lock
// internally.
type Engine struct {
	cfg *config.Config
	src ephemeris.Source

	resolver *calendar.Resolver
	pillars  *pillars.Calculator
	astro    *astro.Calculator
	fusion   *fusion.Engine
	timing   *timing.Engine

	analyses *cache.LRU[string, models.PillarAnalysis]
	charts   *cache.LRU[string, models.AstrologyChart]
	reports  *cache.LRU[string, models.FusionReport]
}

// New builds the engine from a validated configuration
func New(cfg *config.Config) *Engine {
	src := ephemeris.NewAnalytic(cfg.Standards.NodeTypeModel())

	return &Engine{
		cfg:      cfg,
		src:      src,
		resolver: calendar.NewResolver(&cfg.Standards),
		pillars:  pillars.NewCalculator(&cfg.Standards),
		astro:    astro.NewCalculator(src, &cfg.Standards),
		fusion:   fusion.NewEngine(cfg.Fusion, &cfg.Standards),
		timing:   timing.New(src, cfg.Timing),
		analyses: cache.New[string, models.PillarAnalysis](cfg.Cache.PillarCapacity, cfg.Cache.TTL),
		charts:   cache.New[string, models.AstrologyChart](cfg.Cache.ChartCapacity, cfg.Cache.TTL),
		reports:  cache.New[string, models.FusionReport](cfg.Cache.ReportCapacity, cfg.Cache.TTL),
	}
}

// key derives the cache key for an input under the active standards; the
// standards version is part of every key so a convention change can never
// serve stale results.
func (e *Engine) key(in models.BirthInput, parts ...any) (string, error) {
	vals := append([]any{in, e.cfg.Standards.Version()}, parts...)
	return cache.InputHash(vals...)
}

// ComputePillars resolves the input and returns the full pillar analysis
func (e *Engine) ComputePillars(ctx context.Context, in models.BirthInput) (models.PillarAnalysis, error) {
	if err := ctx.Err(); err != nil {
		return models.PillarAnalysis{}, err
	}

	key, err := e.key(in, "pillars")
	if err != nil {
		return models.PillarAnalysis{}, err
	}

	memo := cache.Memoize(e.analyses, func(string) (models.PillarAnalysis, error) {
		res, err := e.resolver.ResolveInstant(in)
		if err != nil {
			return models.PillarAnalysis{}, err
		}
		fp, err := e.pillars.Compute(res)
		if err != nil {
			return models.PillarAnalysis{}, err
		}
		return e.pillars.Analyze(res, fp, in.Gender), nil
	})
	return memo(key)
}

// ComputeChart resolves the input and returns the astrological chart
func (e *Engine) ComputeChart(ctx context.Context, in models.BirthInput) (models.AstrologyChart, error) {
	if err := ctx.Err(); err != nil {
		return models.AstrologyChart{}, err
	}

	key, err := e.key(in, "chart")
	if err != nil {
		return models.AstrologyChart{}, err
	}

	memo := cache.Memoize(e.charts, func(string) (models.AstrologyChart, error) {
		res, err := e.resolver.ResolveInstant(in)
		if err != nil {
			return models.AstrologyChart{}, err
		}
		return e.astro.Compute(res.Instant, in.Latitude, in.Longitude, res.TimeKnown)
	})
	return memo(key)
}

// ComputeReading produces the fusion report for a birth input with the
// transit overlay evaluated at now. The cache key buckets now by hour:
// the transit bodies considered move slowly enough that finer keys would
// only fragment the cache.
func (e *Engine) ComputeReading(ctx context.Context, in models.BirthInput, now time.Time) (models.FusionReport, error) {
	if err := ctx.Err(); err != nil {
		return models.FusionReport{}, err
	}

	bucket := now.UTC().Truncate(time.Hour)
	key, err := e.key(in, "reading", bucket.Format(time.RFC3339))
	if err != nil {
		return models.FusionReport{}, err
	}

	memo := cache.Memoize(e.reports, func(string) (models.FusionReport, error) {
		return e.reading(ctx, in, now, true)
	})
	return memo(key)
}

// reading runs the resolve/pillars/chart/fusion pipeline. withTransit
// selects whether the timing layer sees current positions or stays neutral.
func (e *Engine) reading(ctx context.Context, in models.BirthInput, now time.Time, withTransit bool) (models.FusionReport, error) {
	an, err := e.ComputePillars(ctx, in)
	if err != nil {
		return models.FusionReport{}, err
	}
	chart, err := e.ComputeChart(ctx, in)
	if err != nil {
		return models.FusionReport{}, err
	}

	fctx := fusion.Context{Now: now}
	if withTransit {
		transit, err := e.transitChart(now)
		if err != nil {
			return models.FusionReport{}, err
		}
		fctx.Transit = transit
	}

	report, err := e.fusion.Compute(an, chart, fctx)
	if err != nil {
		return models.FusionReport{}, err
	}

	logger.Debug("reading computed",
		zap.String("overall_grade", string(report.OverallGrade)),
		zap.Bool("degraded", report.Degraded),
	)
	return report, nil
}

// transitChart builds a positions-only chart for the reference instant;
// transits have no birthplace, so houses are never projected
func (e *Engine) transitChart(now time.Time) (*models.AstrologyChart, error) {
	positions := make(map[models.Body]models.PlanetPosition, len(models.Bodies))
	for _, body := range models.Bodies {
		pos, err := e.src.Lookup(body, now)
		if err != nil {
			return nil, err
		}
		positions[body] = models.PlanetPosition{
			Body:       body,
			Longitude:  pos.Longitude,
			Latitude:   pos.Latitude,
			Distance:   pos.Distance,
			Speed:      pos.Speed,
			Retrograde: pos.Speed < 0,
			Sign:       models.SignOf(pos.Longitude),
		}
	}
	return &models.AstrologyChart{Positions: positions}, nil
}

// natal assembles the timing engine's precomputed natal bundle. The report
// inside is the transit-free baseline: scans supply their own per-day
// overlays and must not inherit today's transits.
func (e *Engine) natal(ctx context.Context, in models.BirthInput) (timing.Natal, error) {
	res, err := e.resolver.ResolveInstant(in)
	if err != nil {
		return timing.Natal{}, err
	}

	key, err := e.key(in, "natal")
	if err != nil {
		return timing.Natal{}, err
	}
	memo := cache.Memoize(e.reports, func(string) (models.FusionReport, error) {
		return e.reading(ctx, in, res.Instant, false)
	})
	report, err := memo(key)
	if err != nil {
		return timing.Natal{}, err
	}

	an, err := e.ComputePillars(ctx, in)
	if err != nil {
		return timing.Natal{}, err
	}
	chart, err := e.ComputeChart(ctx, in)
	if err != nil {
		return timing.Natal{}, err
	}

	return timing.Natal{
		Input:    in,
		Birth:    res.Instant,
		Location: res.Location,
		Analysis: an,
		Chart:    chart,
		Report:   report,
	}, nil
}

// FindOptimalEventTiming scans [from, to] for the best days to undertake
// the event and returns graded daily results with optimal and avoid periods
func (e *Engine) FindOptimalEventTiming(ctx context.Context, in models.BirthInput, ev models.EventType, from, to time.Time) (models.EventTimingResult, error) {
	natal, err := e.natal(ctx, in)
	if err != nil {
		return models.EventTimingResult{}, err
	}
	return e.timing.Scan(ctx, natal, ev, from, to)
}

// FindWeeklyOptimalTiming scans the seven days starting at weekStart
func (e *Engine) FindWeeklyOptimalTiming(ctx context.Context, in models.BirthInput, ev models.EventType, weekStart time.Time) (models.EventTimingResult, error) {
	natal, err := e.natal(ctx, in)
	if err != nil {
		return models.EventTimingResult{}, err
	}
	return e.timing.Week(ctx, natal, ev, weekStart)
}
