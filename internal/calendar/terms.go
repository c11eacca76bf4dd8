package calendar

import (
	"time"

	"github.com/selivandex/destiny-core/internal/ephemeris"
)

// The 24 solar terms indexed from Ipchun (立春, solar longitude 315°);
// term k begins when the Sun's apparent longitude reaches 315° + 15°·k.
// Even indices are the jeol (節) month boundaries, odd the jungi (中氣).
var TermNames = [24]string{
	"ipchun", "usu", "gyeongchip", "chunbun", "cheongmyeong", "gogu",
	"ipha", "soman", "mangjong", "haji", "soseo", "daeseo",
	"ipchu", "cheoseo", "baengno", "chubun", "hallo", "sanggang",
	"ipdong", "soseol", "daeseol", "dongji", "sohan", "daehan",
}

// TermLongitude returns the target solar longitude of term k in degrees
func TermLongitude(k int) float64 {
	return normalize360(315 + 15*float64(k%24))
}

// meanTropicalStep is the mean day count between adjacent terms
const meanTropicalStep = 365.2422 / 24

// TermInstant locates the UTC instant when term k of the solar year
// beginning in Gregorian year y starts. k may exceed 23 to address terms of
// following years.
func TermInstant(year, k int) time.Time {
	year += k / 24
	k = k % 24
	if k < 0 {
		k += 24
		year--
	}

	// Initial guess: Ipchun falls near Feb 4
	jd := ephemeris.JulianDay(time.Date(year, time.February, 4, 0, 0, 0, 0, time.UTC)) +
		float64(k)*meanTropicalStep

	target := TermLongitude(k)
	for i := 0; i < 8; i++ {
		lon := ephemeris.ApparentSolarLongitude(jd)
		delta := angleDiff(target, lon)
		if delta < 1e-7 && delta > -1e-7 {
			break
		}
		// The Sun advances ~0.9856°/day
		jd += delta / 0.98565
	}

	return ephemeris.FromJulianDay(jd)
}

// TermIndexAt returns the index of the term interval containing the given
// Julian day (0 = Ipchun..Usu) along with the solar year the interval's
// Ipchun belongs to.
func TermIndexAt(jd float64) (index int, solarYear int) {
	lon := ephemeris.ApparentSolarLongitude(jd)
	index = int(normalize360(lon-315) / 15)
	if index > 23 {
		index = 23
	}

	t := ephemeris.FromJulianDay(jd)
	solarYear = t.Year()
	// Before this civil year's Ipchun the interval belongs to the prior
	// solar year (terms 22/23 are Sohan/Daehan of the old year)
	ipchun := TermInstant(solarYear, 0)
	if t.Before(ipchun) {
		solarYear--
	}
	return index, solarYear
}

// NextMajorTerm returns the first jeol (even-index term) strictly after t
func NextMajorTerm(t time.Time) time.Time {
	jd := ephemeris.JulianDay(t)
	idx, year := TermIndexAt(jd)
	// Advance to the next even index
	next := idx + 1
	if next%2 != 0 {
		next++
	}
	for {
		ti := TermInstant(year, next)
		if ti.After(t) {
			return ti
		}
		next += 2
	}
}

// PrevMajorTerm returns the latest jeol at or before t
func PrevMajorTerm(t time.Time) time.Time {
	jd := ephemeris.JulianDay(t)
	idx, year := TermIndexAt(jd)
	prev := idx - idx%2
	for {
		ti := TermInstant(year, prev)
		if !ti.After(t) {
			return ti
		}
		prev -= 2
	}
}

func normalize360(d float64) float64 {
	d -= 360 * float64(int(d/360))
	if d < 0 {
		d += 360
	}
	return d
}

func angleDiff(a, b float64) float64 {
	d := normalize360(a - b)
	if d > 180 {
		d -= 360
	}
	return d
}
