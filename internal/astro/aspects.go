package astro

import (
	"math"

	"github.com/selivandex/destiny-core/pkg/models"
)

// Aspect orb tolerances in degrees, declared once; these are the global
// interpretation standard, not per-call options.
const (
	OrbConjunction = 8.0
	OrbOpposition  = 8.0
	OrbTrine       = 6.0
	OrbSquare      = 6.0
	OrbSextile     = 4.0
)

var aspectTable = []struct {
	kind  models.AspectKind
	angle float64
	orb   float64
}{
	{models.AspectConjunction, 0, OrbConjunction},
	{models.AspectSextile, 60, OrbSextile},
	{models.AspectSquare, 90, OrbSquare},
	{models.AspectTrine, 120, OrbTrine},
	{models.AspectOpposition, 180, OrbOpposition},
}

// classifyAspects detects every pairwise aspect between the given positions
func classifyAspects(positions map[models.Body]models.PlanetPosition) []models.Aspect {
	var out []models.Aspect

	for i := 0; i < len(models.Bodies); i++ {
		for j := i + 1; j < len(models.Bodies); j++ {
			a, okA := positions[models.Bodies[i]]
			b, okB := positions[models.Bodies[j]]
			if !okA || !okB {
				continue
			}

			sep := math.Abs(angleDiff(a.Longitude, b.Longitude))
			for _, asp := range aspectTable {
				orb := sep - asp.angle
				if math.Abs(orb) > asp.orb {
					continue
				}

				out = append(out, models.Aspect{
					A:        a.Body,
					B:        b.Body,
					Kind:     asp.kind,
					Angle:    sep,
					Orb:      math.Abs(orb),
					Applying: isApplying(a, b, asp.angle),
				})
				break
			}
		}
	}

	return out
}

// isApplying reports whether the separation is closing toward the exact
// aspect angle: the signed orb and its rate of change have opposite signs.
func isApplying(a, b models.PlanetPosition, aspectAngle float64) bool {
	sep := angleDiff(a.Longitude, b.Longitude)
	rate := a.Speed - b.Speed

	orb := math.Abs(sep) - aspectAngle
	var orbRate float64
	if sep >= 0 {
		orbRate = rate
	} else {
		orbRate = -rate
	}
	return orb*orbRate < 0
}

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
