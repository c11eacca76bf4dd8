package ephemeris

import "math"

// solarPosition returns the Sun's apparent geocentric ecliptic longitude
// (degrees, of date) and distance (AU) from the truncated solar theory.
func solarPosition(jd float64) (lon, dist float64) {
	t := JulianCenturies(jd)

	// Geometric mean longitude and mean anomaly
	l0 := 280.46646 + 36000.76983*t + 0.0003032*t*t
	m := 357.52911 + 35999.05029*t - 0.0001537*t*t
	mr := deg2rad(m)

	// Equation of center
	c := (1.914602-0.004817*t-0.000014*t*t)*math.Sin(mr) +
		(0.019993-0.000101*t)*math.Sin(2*mr) +
		0.000289*math.Sin(3*mr)

	trueLon := l0 + c

	// Aberration and nutation give the apparent longitude
	omega := 125.04 - 1934.136*t
	apparent := trueLon - 0.00569 - 0.00478*math.Sin(deg2rad(omega))

	// Radius vector
	e := 0.016708634 - 0.000042037*t - 0.0000001267*t*t
	v := m + c
	dist = 1.000001018 * (1 - e*e) / (1 + e*math.Cos(deg2rad(v)))

	return normalize360(apparent), dist
}

// ApparentSolarLongitude exposes the apparent solar longitude for solar-term
// boundary searches
func ApparentSolarLongitude(jd float64) float64 {
	lon, _ := solarPosition(jd)
	return lon
}

// nutationInLongitude returns Δψ in degrees (principal terms)
func nutationInLongitude(jd float64) float64 {
	t := JulianCenturies(jd)
	omega := deg2rad(125.04452 - 1934.136261*t)
	lSun := deg2rad(280.4665 + 36000.7698*t)
	lMoon := deg2rad(218.3165 + 481267.8813*t)

	dpsi := -17.20*math.Sin(omega) -
		1.32*math.Sin(2*lSun) -
		0.23*math.Sin(2*lMoon) +
		0.21*math.Sin(2*omega)
	return dpsi / 3600
}
