package astro

import (
	"math"

	"github.com/selivandex/destiny-core/internal/ephemeris"
	"github.com/selivandex/destiny-core/pkg/models"
)

// Placidus semi-arc division is undefined where the ecliptic can be
// circumpolar; beyond this latitude the calculator falls back to whole-sign.
const placidusLatitudeLimit = 66.5

// houseResult carries the projected cusps plus the angles
type houseResult struct {
	cusps     [12]float64
	ascendant float64
	midheaven float64
}

// computeHouses projects house cusps for the instant and place under the
// requested system
func computeHouses(system models.HouseSystem, jd, latitude, longitude float64) houseResult {
	ramc := normalize360(ephemeris.GreenwichSiderealTime(jd) + longitude)
	eps := ephemeris.MeanObliquity(jd)

	asc := ascendantLongitude(ramc, eps, latitude)
	mc := midheavenLongitude(ramc, eps)

	if system == models.HousePlacidus && math.Abs(latitude) < placidusLatitudeLimit {
		return houseResult{
			cusps:     placidusCusps(ramc, eps, latitude, asc, mc),
			ascendant: asc,
			midheaven: mc,
		}
	}

	return houseResult{
		cusps:     wholeSignCusps(asc),
		ascendant: asc,
		midheaven: mc,
	}
}

// ascendantLongitude returns the rising ecliptic degree
func ascendantLongitude(ramc, eps, latitude float64) float64 {
	ramcR := deg2rad(ramc)
	epsR := deg2rad(eps)
	latR := deg2rad(latitude)

	asc := math.Atan2(
		math.Cos(ramcR),
		-(math.Sin(ramcR)*math.Cos(epsR) + math.Tan(latR)*math.Sin(epsR)),
	)
	return normalize360(rad2deg(asc))
}

// midheavenLongitude returns the culminating ecliptic degree
func midheavenLongitude(ramc, eps float64) float64 {
	ramcR := deg2rad(ramc)
	epsR := deg2rad(eps)
	mc := math.Atan2(math.Sin(ramcR), math.Cos(ramcR)*math.Cos(epsR))
	return normalize360(rad2deg(mc))
}

// placidusCusps solves the intermediate cusps by iterating the semi-arc
// condition: cusp n sits where the meridian distance equals the stated
// fraction of the point's own diurnal (or nocturnal) semi-arc.
func placidusCusps(ramc, eps, latitude, asc, mc float64) [12]float64 {
	var cusps [12]float64
	cusps[0] = asc // house 1
	cusps[9] = mc  // house 10

	cusps[10] = placidusIterate(ramc, eps, latitude, 30, 1.0/3.0, true)   // house 11
	cusps[11] = placidusIterate(ramc, eps, latitude, 60, 2.0/3.0, true)   // house 12
	cusps[1] = placidusIterate(ramc, eps, latitude, 120, 2.0/3.0, false)  // house 2
	cusps[2] = placidusIterate(ramc, eps, latitude, 150, 1.0/3.0, false)  // house 3

	// Opposite cusps
	cusps[3] = normalize360(cusps[9] + 180)  // house 4
	cusps[4] = normalize360(cusps[10] + 180) // house 5
	cusps[5] = normalize360(cusps[11] + 180) // house 6
	cusps[6] = normalize360(cusps[0] + 180)  // house 7
	cusps[7] = normalize360(cusps[1] + 180)  // house 8
	cusps[8] = normalize360(cusps[2] + 180)  // house 9

	return cusps
}

// placidusIterate solves one intermediate cusp. offset is the initial
// right-ascension guess east of the MC; fraction the semi-arc fraction;
// diurnal selects the day or night arc.
func placidusIterate(ramc, eps, latitude, offset, fraction float64, diurnal bool) float64 {
	epsR := deg2rad(eps)
	latR := deg2rad(latitude)

	ra := ramc + offset
	for i := 0; i < 24; i++ {
		// Ecliptic point crossing this right ascension
		lon := alignQuadrant(
			rad2deg(math.Atan2(math.Sin(deg2rad(ra)), math.Cos(deg2rad(ra))*math.Cos(epsR))), ra)
		dec := math.Asin(math.Sin(epsR) * math.Sin(deg2rad(lon)))

		x := -math.Tan(latR) * math.Tan(dec)
		if x < -1 {
			x = -1
		} else if x > 1 {
			x = 1
		}
		semiArc := rad2deg(math.Acos(x)) // diurnal semi-arc

		if diurnal {
			ra = ramc + fraction*semiArc
		} else {
			ra = ramc + 180 - fraction*(180-semiArc)
		}
	}

	lon := rad2deg(math.Atan2(math.Sin(deg2rad(ra)), math.Cos(deg2rad(ra))*math.Cos(epsR)))
	return normalize360(alignQuadrant(lon, ra))
}

// alignQuadrant keeps the ecliptic longitude in the same quadrant cycle as
// the right ascension it was derived from
func alignQuadrant(lon, ra float64) float64 {
	lon = normalize360(lon)
	ra = normalize360(ra)
	if math.Abs(lon-ra) > 90 {
		if lon < ra {
			lon += 180
		} else {
			lon -= 180
		}
	}
	return normalize360(lon)
}

// wholeSignCusps assigns each house to a full sign starting from the
// ascendant's sign
func wholeSignCusps(asc float64) [12]float64 {
	var cusps [12]float64
	start := math.Floor(asc/30) * 30
	for i := 0; i < 12; i++ {
		cusps[i] = normalize360(start + float64(i)*30)
	}
	return cusps
}

// houseOf locates a longitude among the cusps (1..12)
func houseOf(lon float64, cusps [12]float64) int {
	for h := 0; h < 12; h++ {
		lo := cusps[h]
		hi := cusps[(h+1)%12]
		if within(lon, lo, hi) {
			return h + 1
		}
	}
	return 12
}

// within tests lo <= lon < hi on the circle
func within(lon, lo, hi float64) bool {
	lon = normalize360(lon - lo)
	span := normalize360(hi - lo)
	if span == 0 {
		span = 360
	}
	return lon < span
}

func deg2rad(d float64) float64 { return d * math.Pi / 180 }
func rad2deg(r float64) float64 { return r * 180 / math.Pi }
