package timing

import (
	"math"
	"time"

	"github.com/selivandex/destiny-core/internal/ephemeris"
	"github.com/selivandex/destiny-core/pkg/models"
)

// mansionSpan divides the lunar path into 28 equal mansions from 0° Aries.
// Traditional mansions are unequal; the equal division is the documented
// convention here and is what the scoring tables are calibrated against.
const mansionSpan = 360.0 / 28.0

// MansionOf maps a lunar ecliptic longitude to its mansion
func MansionOf(moonLongitude float64) models.LunarMansion {
	lon := normalize360(moonLongitude)
	idx := int(lon / mansionSpan)
	if idx > 27 {
		idx = 27
	}
	return models.LunarMansion(idx)
}

// PhaseOf classifies the Moon-Sun elongation into eight phases
func PhaseOf(moonLongitude, sunLongitude float64) models.LunarPhase {
	elong := normalize360(moonLongitude - sunLongitude)
	switch {
	case elong < 22.5:
		return models.PhaseNewMoon
	case elong < 67.5:
		return models.PhaseWaxingCrescent
	case elong < 112.5:
		return models.PhaseFirstQuarter
	case elong < 157.5:
		return models.PhaseWaxingGibbous
	case elong < 202.5:
		return models.PhaseFullMoon
	case elong < 247.5:
		return models.PhaseWaningGibbous
	case elong < 292.5:
		return models.PhaseLastQuarter
	default:
		return models.PhaseWaningCrescent
	}
}

// waxing reports whether the phase belongs to the growing half of the cycle
func waxing(p models.LunarPhase) bool {
	switch p {
	case models.PhaseNewMoon, models.PhaseWaxingCrescent, models.PhaseFirstQuarter, models.PhaseWaxingGibbous:
		return true
	}
	return false
}

// Chaldean order, slowest to fastest; planetary hours walk this cycle
var chaldeanOrder = []models.Body{
	models.Saturn, models.Jupiter, models.Mars, models.Sun,
	models.Venus, models.Mercury, models.Moon,
}

// Weekday rulers: Sunday = Sun, Monday = Moon, ...
var dayRulers = [7]models.Body{
	models.Sun, models.Moon, models.Mars, models.Mercury,
	models.Jupiter, models.Venus, models.Saturn,
}

// DayRulerOf returns the planetary ruler of the local weekday
func DayRulerOf(local time.Time) models.Body {
	return dayRulers[int(local.Weekday())]
}

// HourRulerOf returns the planetary hour ruler at the given local instant.
// The day is split into 12 unequal hours from sunrise to sunset and 12 from
// sunset to the next sunrise, starting from the weekday's ruler.
func HourRulerOf(local time.Time, latitude, longitude float64) models.Body {
	sunrise, sunset := approximateSunTimes(local, latitude, longitude)

	dayStart := sunrise
	ruler := DayRulerOf(local)
	if local.Before(sunrise) {
		// Still the previous planetary day
		prev := local.AddDate(0, 0, -1)
		sunrise, sunset = approximateSunTimes(prev, latitude, longitude)
		dayStart = sunrise
		ruler = DayRulerOf(prev)
	}

	var hourIdx int
	if local.Before(sunset) && !local.Before(dayStart) {
		dayLen := sunset.Sub(dayStart)
		if dayLen <= 0 {
			dayLen = 12 * time.Hour
		}
		hourIdx = int(local.Sub(dayStart) * 12 / dayLen)
	} else {
		nextSunrise := dayStart.Add(24 * time.Hour)
		nightLen := nextSunrise.Sub(sunset)
		if nightLen <= 0 {
			nightLen = 12 * time.Hour
		}
		hourIdx = 12 + int(local.Sub(sunset)*12/nightLen)
	}
	if hourIdx < 0 {
		hourIdx = 0
	}
	if hourIdx > 23 {
		hourIdx = 23
	}

	// Find the weekday ruler's slot in the Chaldean cycle
	start := 0
	for i, b := range chaldeanOrder {
		if b == ruler {
			start = i
			break
		}
	}
	return chaldeanOrder[(start+hourIdx)%7]
}

// Sun altitude defining rise/set, including refraction
const sunriseZenith = 90.833

// approximateSunTimes estimates local sunrise and sunset for the date via
// the solar declination; a few minutes of error is acceptable for hour
// rulership.
func approximateSunTimes(local time.Time, latitude, longitude float64) (sunrise, sunset time.Time) {
	noon := time.Date(local.Year(), local.Month(), local.Day(), 12, 0, 0, 0, local.Location())
	jd := ephemeris.JulianDay(noon)

	decl := solarDeclination(jd)

	latR := deg2rad(latitude)
	declR := deg2rad(decl)

	cosH := (math.Cos(deg2rad(sunriseZenith)) - math.Sin(latR)*math.Sin(declR)) /
		(math.Cos(latR) * math.Cos(declR))
	if cosH > 1 {
		cosH = 1 // polar night: collapse to noon
	} else if cosH < -1 {
		cosH = -1 // midnight sun
	}
	hourAngle := rad2deg(math.Acos(cosH)) // degrees

	halfDay := time.Duration(hourAngle / 15 * float64(time.Hour))

	// Shift solar noon by the offset between the mean local solar meridian
	// and the civil timezone
	_, tzOffset := noon.Zone()
	solarNoonShift := time.Duration((float64(tzOffset)/3600 - longitude/15) * float64(time.Hour))

	solarNoon := noon.Add(solarNoonShift)
	return solarNoon.Add(-halfDay), solarNoon.Add(halfDay)
}

// solarDeclination returns the Sun's declination in degrees
func solarDeclination(jd float64) float64 {
	lon := ephemeris.ApparentSolarLongitude(jd)
	eps := ephemeris.MeanObliquity(jd)
	return rad2deg(math.Asin(math.Sin(deg2rad(eps)) * math.Sin(deg2rad(lon))))
}

// progressionRate is the classic day-per-year secondary progression
const progressionRate = 365.2425

// ProgressedInstant maps a target date onto the progressed birth instant:
// one day after birth per year of life
func ProgressedInstant(birth, target time.Time) time.Time {
	ageDays := target.Sub(birth).Hours() / 24
	progressedDays := ageDays / progressionRate
	return birth.Add(time.Duration(progressedDays * 24 * float64(time.Hour)))
}

func normalize360(d float64) float64 {
	d -= 360 * float64(int(d/360))
	if d < 0 {
		d += 360
	}
	return d
}

func deg2rad(d float64) float64 { return d * math.Pi / 180 }
func rad2deg(r float64) float64 { return r * 180 / math.Pi }
