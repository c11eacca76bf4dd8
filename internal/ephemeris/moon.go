package ephemeris

import "math"

// Fundamental lunar arguments in degrees at Julian centuries t
func lunarArguments(t float64) (lp, d, m, mp, f float64) {
	// Mean longitude
	lp = 218.3164477 + 481267.88123421*t - 0.0015786*t*t + t*t*t/538841
	// Mean elongation from the Sun
	d = 297.8501921 + 445267.1114034*t - 0.0018819*t*t + t*t*t/545868
	// Sun's mean anomaly
	m = 357.5291092 + 35999.0502909*t - 0.0001536*t*t
	// Moon's mean anomaly
	mp = 134.9633964 + 477198.8675055*t + 0.0087414*t*t + t*t*t/69699
	// Argument of latitude
	f = 93.2720950 + 483202.0175233*t - 0.0036539*t*t - t*t*t/3526000
	return
}

// Principal periodic terms: coefficients (degrees) against multiples of
// (D, M, M', F). Truncated at ~0.01° which keeps the Moon within a few
// arcminutes over the supported range.
var lunarLongitudeTerms = []struct {
	d, m, mp, f int
	coeff       float64
}{
	{0, 0, 1, 0, 6.288774},
	{2, 0, -1, 0, 1.274027},
	{2, 0, 0, 0, 0.658314},
	{0, 0, 2, 0, 0.213618},
	{0, 1, 0, 0, -0.185116},
	{0, 0, 0, 2, -0.114332},
	{2, 0, -2, 0, 0.058793},
	{2, -1, -1, 0, 0.057066},
	{2, 0, 1, 0, 0.053322},
	{2, -1, 0, 0, 0.045758},
	{0, 1, -1, 0, -0.040923},
	{1, 0, 0, 0, -0.034720},
	{0, 1, 1, 0, -0.030383},
	{2, 0, 0, -2, 0.015327},
	{0, 0, 1, 2, -0.012528},
	{0, 0, 1, -2, 0.010980},
	{4, 0, -1, 0, 0.010675},
	{0, 0, 3, 0, 0.010034},
	{4, 0, -2, 0, 0.008548},
	{2, 1, -1, 0, -0.007888},
	{2, 1, 0, 0, -0.006766},
	{1, 0, -1, 0, -0.005163},
	{1, 1, 0, 0, 0.004987},
	{2, -1, 1, 0, 0.004036},
}

var lunarLatitudeTerms = []struct {
	d, m, mp, f int
	coeff       float64
}{
	{0, 0, 0, 1, 5.128122},
	{0, 0, 1, 1, 0.280602},
	{0, 0, 1, -1, 0.277693},
	{2, 0, 0, -1, 0.173237},
	{2, 0, -1, 1, 0.055413},
	{2, 0, -1, -1, 0.046271},
	{2, 0, 0, 1, 0.032573},
	{0, 0, 2, 1, 0.017198},
	{2, 0, 1, -1, 0.009266},
	{0, 0, 2, -1, 0.008822},
}

var lunarDistanceTerms = []struct {
	d, m, mp, f int
	coeff       float64 // kilometers
}{
	{0, 0, 1, 0, -20905.355},
	{2, 0, -1, 0, -3699.111},
	{2, 0, 0, 0, -2955.968},
	{0, 0, 2, 0, -569.925},
	{2, -1, -1, 0, 48.888},
	{2, 0, 1, 0, -246.158},
	{2, -1, 0, 0, -152.138},
	{0, 1, -1, 0, -170.733},
	{1, 0, 0, 0, -204.586},
	{0, 1, 1, 0, -129.620},
}

const kmPerAU = 149597870.7

// lunarPosition returns the Moon's geocentric ecliptic longitude and
// latitude (degrees, of date) and distance (AU)
func lunarPosition(jd float64) (lon, lat, dist float64) {
	t := JulianCenturies(jd)
	lp, d, m, mp, f := lunarArguments(t)

	// Eccentricity damping of solar-anomaly terms
	e := 1 - 0.002516*t - 0.0000074*t*t

	sumL := 0.0
	for _, term := range lunarLongitudeTerms {
		arg := deg2rad(float64(term.d)*d + float64(term.m)*m + float64(term.mp)*mp + float64(term.f)*f)
		c := term.coeff
		if term.m == 1 || term.m == -1 {
			c *= e
		} else if term.m == 2 || term.m == -2 {
			c *= e * e
		}
		sumL += c * math.Sin(arg)
	}

	sumB := 0.0
	for _, term := range lunarLatitudeTerms {
		arg := deg2rad(float64(term.d)*d + float64(term.m)*m + float64(term.mp)*mp + float64(term.f)*f)
		c := term.coeff
		if term.m == 1 || term.m == -1 {
			c *= e
		}
		sumB += c * math.Sin(arg)
	}

	sumR := 385000.56 // km
	for _, term := range lunarDistanceTerms {
		arg := deg2rad(float64(term.d)*d + float64(term.m)*m + float64(term.mp)*mp + float64(term.f)*f)
		c := term.coeff
		if term.m == 1 || term.m == -1 {
			c *= e
		}
		sumR += c * math.Cos(arg)
	}

	lon = normalize360(lp + sumL + nutationInLongitude(jd))
	lat = sumB
	dist = sumR / kmPerAU
	return
}

// meanNodeLongitude returns the mean ascending node of the lunar orbit
func meanNodeLongitude(jd float64) float64 {
	t := JulianCenturies(jd)
	omega := 125.0445479 - 1934.1362891*t + 0.0020754*t*t + t*t*t/467441
	return normalize360(omega)
}

// trueNodeLongitude applies the principal periodic corrections to the mean
// node
func trueNodeLongitude(jd float64) float64 {
	t := JulianCenturies(jd)
	_, d, m, mp, f := lunarArguments(t)

	omega := meanNodeLongitude(jd) -
		1.4979*math.Sin(deg2rad(2*(d-f))) -
		0.1500*math.Sin(deg2rad(m)) -
		0.1226*math.Sin(deg2rad(2*d)) +
		0.1176*math.Sin(deg2rad(2*f)) -
		0.0801*math.Sin(deg2rad(2*(mp-f)))
	return normalize360(omega)
}
