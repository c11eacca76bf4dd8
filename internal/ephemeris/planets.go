package ephemeris

import (
	"math"

	"github.com/selivandex/destiny-core/pkg/models"
)

// Keplerian mean elements at J2000 with per-century rates: semi-major axis
// (AU), eccentricity, inclination, mean longitude, longitude of perihelion,
// longitude of ascending node (degrees). Earth entry is the Earth-Moon
// barycenter, used to reduce heliocentric positions to geocentric.
type meanElements struct {
	a, aDot   float64
	e, eDot   float64
	i, iDot   float64
	l, lDot   float64
	pi, piDot float64
	om, omDot float64
}

var earthElements = meanElements{
	1.00000261, 0.00000562, 0.01671123, -0.00004392, -0.00001531, -0.01294668,
	100.46457166, 35999.37244981, 102.93768193, 0.32327364, 0.0, 0.0,
}

var planetElements = map[models.Body]meanElements{
	models.Mercury: {0.38709927, 0.00000037, 0.20563593, 0.00001906, 7.00497902, -0.00594749,
		252.25032350, 149472.67411175, 77.45779628, 0.16047689, 48.33076593, -0.12534081},
	models.Venus: {0.72333566, 0.00000390, 0.00677672, -0.00004107, 3.39467605, -0.00078890,
		181.97909950, 58517.81538729, 131.60246718, 0.00268329, 76.67984255, -0.27769418},
	models.Mars: {1.52371034, 0.00001847, 0.09339410, 0.00007882, 1.84969142, -0.00813131,
		-4.55343205, 19140.30268499, -23.94362959, 0.44441088, 49.55953891, -0.29257343},
	models.Jupiter: {5.20288700, -0.00011607, 0.04838624, -0.00013253, 1.30439695, -0.00183714,
		34.39644051, 3034.74612775, 14.72847983, 0.21252668, 100.47390909, 0.20469106},
	models.Saturn: {9.53667594, -0.00125060, 0.05386179, -0.00050991, 2.48599187, 0.00193609,
		49.95424423, 1222.49362201, 92.59887831, -0.41897216, 113.66242448, -0.28867794},
	models.Uranus: {19.18916464, -0.00196176, 0.04725744, -0.00004397, 0.77263783, -0.00242939,
		313.23810451, 428.48202785, 170.95427630, 0.40805281, 74.01692503, 0.04240589},
	models.Neptune: {30.06992276, 0.00026291, 0.00859048, 0.00005105, 1.77004347, 0.00035372,
		-55.12002969, 218.45945325, 44.96476227, -0.32241464, 131.78422574, -0.00508664},
	models.Pluto: {39.48211675, -0.00031596, 0.24882730, 0.00005170, 17.14001206, 0.00004818,
		238.92903833, 145.20780515, 224.06891629, -0.04062942, 110.30393684, -0.01183482},
}

// planetPosition returns a planet's geocentric ecliptic-of-date longitude,
// latitude (degrees) and distance (AU)
func planetPosition(body models.Body, jd float64) (lon, lat, dist float64) {
	t := JulianCenturies(jd)

	px, py, pz := heliocentricRect(planetElements[body], t)
	ex, ey, ez := heliocentricRect(earthElements, t)

	gx := px - ex
	gy := py - ey
	gz := pz - ez

	lon = rad2deg(math.Atan2(gy, gx))
	lat = rad2deg(math.Atan2(gz, math.Hypot(gx, gy)))
	dist = math.Sqrt(gx*gx + gy*gy + gz*gz)

	// Elements are referred to the J2000 ecliptic; rotate longitude to the
	// ecliptic of date through general precession.
	lon += precessionInLongitude(t)

	return normalize360(lon), lat, dist
}

// heliocentricRect computes rectangular J2000 ecliptic coordinates from
// mean elements at Julian centuries t
func heliocentricRect(el meanElements, t float64) (x, y, z float64) {
	a := el.a + el.aDot*t
	e := el.e + el.eDot*t
	i := deg2rad(el.i + el.iDot*t)
	l := el.l + el.lDot*t
	pi := el.pi + el.piDot*t
	om := deg2rad(el.om + el.omDot*t)

	// Argument of perihelion and mean anomaly
	w := deg2rad(pi) - om
	m := deg2rad(normalize360(l - pi))

	ea := solveKepler(m, e)

	// Position in the orbital plane
	xp := a * (math.Cos(ea) - e)
	yp := a * math.Sqrt(1-e*e) * math.Sin(ea)

	cw, sw := math.Cos(w), math.Sin(w)
	co, so := math.Cos(om), math.Sin(om)
	ci, si := math.Cos(i), math.Sin(i)

	x = (cw*co-sw*so*ci)*xp + (-sw*co-cw*so*ci)*yp
	y = (cw*so+sw*co*ci)*xp + (-sw*so+cw*co*ci)*yp
	z = (sw*si)*xp + (cw*si)*yp
	return
}

// solveKepler iterates E - e·sinE = M by Newton's method
func solveKepler(m, e float64) float64 {
	ea := m
	if e > 0.8 {
		ea = math.Pi
	}
	for k := 0; k < 12; k++ {
		delta := (ea - e*math.Sin(ea) - m) / (1 - e*math.Cos(ea))
		ea -= delta
		if math.Abs(delta) < 1e-9 {
			break
		}
	}
	return ea
}

// precessionInLongitude is the accumulated general precession since J2000
// in degrees (5029.1"/century to first order)
func precessionInLongitude(t float64) float64 {
	return (5029.0966*t + 1.11113*t*t) / 3600
}
