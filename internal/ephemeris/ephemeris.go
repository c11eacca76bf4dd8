// Package ephemeris is the bundled position data source for the engine.
// Positions come from truncated analytic series (solar theory, principal
// lunar terms, planetary mean elements with a Kepler solve), accurate to a
// few arcminutes across the supported range, sufficient for sign, house,
// aspect and solar-term work. Pure table math: no I/O, no retries.
package ephemeris

import (
	"fmt"
	"time"

	"github.com/selivandex/destiny-core/pkg/errors"
	"github.com/selivandex/destiny-core/pkg/models"
)

// Supported year range; requests outside fail hard rather than extrapolate
// silently.
const (
	MinYear = 1800
	MaxYear = 2200
)

// Position is a geocentric ecliptic-of-date position
type Position struct {
	Longitude float64 // degrees [0, 360)
	Latitude  float64 // degrees
	Distance  float64 // AU
	Speed     float64 // degrees/day in longitude, negative = retrograde
}

// Source resolves positions for celestial bodies. The analytic
// implementation below is the bundled default; tests substitute fakes.
type Source interface {
	Lookup(body models.Body, instant time.Time) (Position, error)
}

// Analytic is the bundled in-process ephemeris
type Analytic struct {
	nodeType models.NodeType
}

// NewAnalytic creates the bundled ephemeris source
func NewAnalytic(nodeType models.NodeType) *Analytic {
	return &Analytic{nodeType: nodeType}
}

// speedStep is the half-window for the symmetric finite difference, days
const speedStep = 0.5

// Lookup resolves the geocentric position of a body at the given instant
func (a *Analytic) Lookup(body models.Body, instant time.Time) (Position, error) {
	if err := a.checkRange(instant); err != nil {
		return Position{}, err
	}

	jd := JulianDay(instant)

	lon, lat, dist, err := a.position(body, jd)
	if err != nil {
		return Position{}, err
	}

	lonBefore, _, _, err := a.position(body, jd-speedStep)
	if err != nil {
		return Position{}, err
	}
	lonAfter, _, _, err := a.position(body, jd+speedStep)
	if err != nil {
		return Position{}, err
	}

	speed := angleDiff(lonAfter, lonBefore) / (2 * speedStep)

	return Position{
		Longitude: normalize360(lon),
		Latitude:  lat,
		Distance:  dist,
		Speed:     speed,
	}, nil
}

func (a *Analytic) position(body models.Body, jd float64) (lon, lat, dist float64, err error) {
	switch body {
	case models.Sun:
		lon, dist = solarPosition(jd)
		return lon, 0, dist, nil
	case models.Moon:
		lon, lat, dist = lunarPosition(jd)
		return lon, lat, dist, nil
	case models.LunarNode:
		if a.nodeType == models.NodeTrue {
			return trueNodeLongitude(jd), 0, meanLunarDistanceAU, nil
		}
		return meanNodeLongitude(jd), 0, meanLunarDistanceAU, nil
	case models.Mercury, models.Venus, models.Mars, models.Jupiter,
		models.Saturn, models.Uranus, models.Neptune, models.Pluto:
		lon, lat, dist = planetPosition(body, jd)
		return lon, lat, dist, nil
	default:
		return 0, 0, 0, errors.EphemerisUnavailable(fmt.Sprintf("no theory for body %v", body))
	}
}

func (a *Analytic) checkRange(instant time.Time) error {
	year := instant.UTC().Year()
	if year < MinYear || year > MaxYear {
		return errors.EphemerisUnavailable(
			fmt.Sprintf("instant %s outside supported range %d-%d", instant.UTC().Format(time.RFC3339), MinYear, MaxYear))
	}
	return nil
}

// mean Earth-Moon distance in AU, used as the node's nominal distance
const meanLunarDistanceAU = 0.00257

// angleDiff returns a-b normalized into (-180, 180]
func angleDiff(a, b float64) float64 {
	d := normalize360(a - b)
	if d > 180 {
		d -= 360
	}
	return d
}

func normalize360(d float64) float64 {
	d -= 360 * float64(int(d/360))
	if d < 0 {
		d += 360
	}
	return d
}
