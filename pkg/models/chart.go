package models

// Body identifies a celestial body in the ephemeris
type Body int

const (
	Sun Body = iota
	Moon
	Mercury
	Venus
	Mars
	Jupiter
	Saturn
	Uranus
	Neptune
	Pluto
	LunarNode
)

var bodyNames = [...]string{
	"sun", "moon", "mercury", "venus", "mars", "jupiter",
	"saturn", "uranus", "neptune", "pluto", "lunar_node",
}

func (b Body) String() string { return bodyNames[int(b)] }

// Bodies lists every body a chart carries, in display order
var Bodies = []Body{Sun, Moon, Mercury, Venus, Mars, Jupiter, Saturn, Uranus, Neptune, Pluto, LunarNode}

// ZodiacSign is one of the 12 signs, 0 = Aries
type ZodiacSign int

var signNames = [12]string{
	"aries", "taurus", "gemini", "cancer", "leo", "virgo",
	"libra", "scorpio", "sagittarius", "capricorn", "aquarius", "pisces",
}

func (z ZodiacSign) String() string { return signNames[int(z)] }

// SignOf maps an ecliptic longitude in degrees to its zodiac sign
func SignOf(longitude float64) ZodiacSign {
	lon := normalizeDegrees(longitude)
	return ZodiacSign(int(lon / 30))
}

func normalizeDegrees(d float64) float64 {
	d -= 360 * float64(int(d/360))
	if d < 0 {
		d += 360
	}
	return d
}

// PlanetPosition is the computed geocentric position of one body
type PlanetPosition struct {
	Body       Body       `json:"body"`
	Longitude  float64    `json:"longitude"` // ecliptic of date, degrees [0, 360)
	Latitude   float64    `json:"latitude"`  // ecliptic, degrees
	Distance   float64    `json:"distance"`  // AU (Moon: Earth radii scale not used; AU)
	Speed      float64    `json:"speed"`     // degrees/day in longitude
	Retrograde bool       `json:"retrograde"`
	Sign       ZodiacSign `json:"sign"`
	House      int        `json:"house,omitempty"` // 1..12, 0 when houses unavailable
}

// AspectKind classifies the angular relation between two bodies
type AspectKind string

const (
	AspectConjunction AspectKind = "conjunction" // 0°
	AspectSextile     AspectKind = "sextile"     // 60°
	AspectSquare      AspectKind = "square"      // 90°
	AspectTrine       AspectKind = "trine"       // 120°
	AspectOpposition  AspectKind = "opposition"  // 180°
)

// Aspect records one classified pairwise angle
type Aspect struct {
	A        Body       `json:"a"`
	B        Body       `json:"b"`
	Kind     AspectKind `json:"kind"`
	Angle    float64    `json:"angle"` // exact separation, degrees
	Orb      float64    `json:"orb"`   // deviation from the aspect angle
	Applying bool       `json:"applying"`
}

// HouseSystem selects the house projection method
type HouseSystem string

const (
	HousePlacidus  HouseSystem = "placidus"
	HouseWholeSign HouseSystem = "whole_sign"
)

// NodeType selects mean vs true lunar node
type NodeType string

const (
	NodeMean NodeType = "mean"
	NodeTrue NodeType = "true"
)

// AstrologyChart is the computed chart for a birth instant and place
type AstrologyChart struct {
	Positions   map[Body]PlanetPosition `json:"positions"`
	Houses      [12]float64             `json:"houses,omitempty"` // cusp longitudes, index 0 = house 1
	Ascendant   float64                 `json:"ascendant"`
	Midheaven   float64                 `json:"midheaven"`
	Aspects     []Aspect                `json:"aspects"`
	HouseSystem HouseSystem             `json:"house_system"`
	HasHouses   bool                    `json:"has_houses"` // false when birth time unknown
}

// Position returns the stored position for a body
func (c AstrologyChart) Position(b Body) (PlanetPosition, bool) {
	p, ok := c.Positions[b]
	return p, ok
}

// AspectsOf returns every aspect involving the given body
func (c AstrologyChart) AspectsOf(b Body) []Aspect {
	var out []Aspect
	for _, a := range c.Aspects {
		if a.A == b || a.B == b {
			out = append(out, a)
		}
	}
	return out
}
