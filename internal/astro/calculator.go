// Package astro computes the astrological chart for a birth instant and
// place: geocentric positions via the ephemeris collaborator, house cusps
// under the configured system, and pairwise aspect classification.
package astro

import (
	"fmt"
	"time"

	"github.com/selivandex/destiny-core/internal/adapters/config"
	"github.com/selivandex/destiny-core/internal/ephemeris"
	"github.com/selivandex/destiny-core/pkg/models"
)

// Calculator computes charts under one standards set
type Calculator struct {
	src       ephemeris.Source
	standards *config.CalculationStandards
}

// NewCalculator creates a chart calculator over an ephemeris source
func NewCalculator(src ephemeris.Source, standards *config.CalculationStandards) *Calculator {
	return &Calculator{src: src, standards: standards}
}

// Compute builds the chart for an instant and coordinates. When timeKnown
// is false the house projection is skipped: cusps depend on the exact
// rising degree, which an unknown birth time cannot supply.
func (c *Calculator) Compute(instant time.Time, latitude, longitude float64, timeKnown bool) (models.AstrologyChart, error) {
	positions := make(map[models.Body]models.PlanetPosition, len(models.Bodies))

	for _, body := range models.Bodies {
		pos, err := c.src.Lookup(body, instant)
		if err != nil {
			// Propagated, not retried; the caller decides fallback
			return models.AstrologyChart{}, fmt.Errorf("ephemeris lookup for %s failed: %w", body, err)
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

	chart := models.AstrologyChart{
		Positions:   positions,
		Aspects:     classifyAspects(positions),
		HouseSystem: c.standards.HouseSystemModel(),
	}

	if timeKnown {
		jd := ephemeris.JulianDay(instant)
		houses := computeHouses(chart.HouseSystem, jd, latitude, longitude)

		chart.Houses = houses.cusps
		chart.Ascendant = houses.ascendant
		chart.Midheaven = houses.midheaven
		chart.HasHouses = true

		for body, pos := range positions {
			pos.House = houseOf(pos.Longitude, houses.cusps)
			positions[body] = pos
		}
	}

	return chart, nil
}
