package ephemeris

import (
	"math"
	"time"
)

// J2000 is the Julian day of the standard epoch 2000 January 1.5 TT
const J2000 = 2451545.0

// JulianDay converts a civil instant to its Julian day (UT). The ΔT
// difference between UT and TT (~1 minute in the modern era) is below the
// series truncation error and is not applied.
func JulianDay(t time.Time) float64 {
	u := t.UTC()
	y := u.Year()
	m := int(u.Month())
	d := float64(u.Day()) +
		float64(u.Hour())/24 +
		float64(u.Minute())/1440 +
		float64(u.Second())/86400 +
		float64(u.Nanosecond())/86400e9

	if m <= 2 {
		y--
		m += 12
	}

	a := y / 100
	b := 2 - a + a/4

	return math.Floor(365.25*float64(y+4716)) +
		math.Floor(30.6001*float64(m+1)) +
		d + float64(b) - 1524.5
}

// FromJulianDay converts a Julian day back to a UTC instant
func FromJulianDay(jd float64) time.Time {
	z, f := math.Modf(jd + 0.5)

	a := z
	if z >= 2299161 {
		alpha := math.Floor((z - 1867216.25) / 36524.25)
		a = z + 1 + alpha - math.Floor(alpha/4)
	}

	b := a + 1524
	c := math.Floor((b - 122.1) / 365.25)
	d := math.Floor(365.25 * c)
	e := math.Floor((b - d) / 30.6001)

	day := b - d - math.Floor(30.6001*e) + f

	month := e - 1
	if e >= 14 {
		month = e - 13
	}
	year := c - 4716
	if month <= 2 {
		year = c - 4715
	}

	dayInt, dayFrac := math.Modf(day)
	seconds := dayFrac * 86400

	return time.Date(int(year), time.Month(month), int(dayInt), 0, 0, 0, 0, time.UTC).
		Add(time.Duration(seconds * float64(time.Second)))
}

// JulianDayNumber returns the integer day number for the civil date
// containing the given local calendar day (the JD at noon of that date)
func JulianDayNumber(year, month, day int) int {
	if month <= 2 {
		year--
		month += 12
	}
	a := year / 100
	b := 2 - a + a/4
	return int(math.Floor(365.25*float64(year+4716))) +
		int(math.Floor(30.6001*float64(month+1))) +
		day + b - 1524
}

// JulianCenturies returns centuries since J2000 for a Julian day
func JulianCenturies(jd float64) float64 {
	return (jd - J2000) / 36525
}

// GreenwichSiderealTime returns the Greenwich mean sidereal time in degrees
func GreenwichSiderealTime(jd float64) float64 {
	t := JulianCenturies(jd)
	gmst := 280.46061837 +
		360.98564736629*(jd-J2000) +
		0.000387933*t*t -
		t*t*t/38710000
	return normalize360(gmst)
}

// MeanObliquity returns the mean obliquity of the ecliptic in degrees
func MeanObliquity(jd float64) float64 {
	t := JulianCenturies(jd)
	return 23.43929111 - (46.8150*t+0.00059*t*t-0.001813*t*t*t)/3600
}

func deg2rad(d float64) float64 { return d * math.Pi / 180 }
func rad2deg(r float64) float64 { return r * 180 / math.Pi }
