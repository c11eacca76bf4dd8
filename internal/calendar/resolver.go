// Package calendar resolves raw birth input into an absolute instant plus
// its calendrical context: solar date, lunisolar date, Julian day and the
// containing solar-term interval.
package calendar

import (
	"fmt"
	"time"

	"github.com/selivandex/destiny-core/internal/adapters/config"
	"github.com/selivandex/destiny-core/internal/ephemeris"
	"github.com/selivandex/destiny-core/pkg/errors"
	"github.com/selivandex/destiny-core/pkg/models"
)

// unknownTimeHour is the assumed clock time when birth time is not supplied;
// the hour pillar is still omitted downstream, this only anchors the day.
const unknownTimeHour = 12

// Resolved is the calendrical resolution of one birth input
type Resolved struct {
	Instant   time.Time      // absolute instant, UTC
	Local     time.Time      // same instant in the birth timezone
	Location  *time.Location
	TimeKnown bool
	JulianDay float64

	SolarYear  int
	SolarMonth int
	SolarDay   int
	Lunar      LunarDate

	TermIndex int       // 0 = Ipchun interval
	TermEntry time.Time // start of the containing term interval
	SajuYear  int       // Ipchun-anchored year for the year pillar
	MonthIdx  int       // 0 = In (tiger) month, from the jeol boundaries
}

// Resolver converts birth input to Resolved under one standards set
type Resolver struct {
	standards *config.CalculationStandards
}

// NewResolver creates a resolver for the given calculation standards
func NewResolver(standards *config.CalculationStandards) *Resolver {
	return &Resolver{standards: standards}
}

// ResolveInstant validates the input and resolves it into an absolute
// instant with calendrical context. Validation failures surface immediately;
// nothing downstream runs on partially resolved input.
func (r *Resolver) ResolveInstant(in models.BirthInput) (Resolved, error) {
	if err := in.Validate(); err != nil {
		return Resolved{}, err
	}

	loc, err := time.LoadLocation(in.Timezone)
	if err != nil {
		return Resolved{}, errors.InvalidDate(fmt.Sprintf("unrecognized timezone %q", in.Timezone))
	}

	date, _ := time.Parse("2006-01-02", in.Date)
	year, month, day := date.Year(), int(date.Month()), date.Day()

	var lunar LunarDate
	if in.Calendar == models.CalendarLunar {
		lunar = LunarDate{Year: year, Month: month, Day: day, LeapMonth: in.LeapMonth}
		year, month, day, err = LunarToSolar(lunar)
		if err != nil {
			return Resolved{}, err
		}
	} else {
		lunar, err = SolarToLunar(year, month, day)
		if err != nil {
			return Resolved{}, err
		}
	}

	hour, minute := unknownTimeHour, 0
	if in.Time != nil {
		parsed, _ := time.Parse("15:04", *in.Time)
		hour, minute = parsed.Hour(), parsed.Minute()
	}

	// time.Date applies the location's historical offset and DST rules
	local := time.Date(year, time.Month(month), day, hour, minute, 0, 0, loc)
	instant := local.UTC()
	jd := ephemeris.JulianDay(instant)

	// Month-boundary policy: exact compares the true instant against term
	// times; day collapses the comparison to local noon of the birth date,
	// matching day-granularity almanacs.
	termRef := instant
	if r.standards.TermBoundary == config.TermBoundaryDay {
		termRef = time.Date(year, time.Month(month), day, 12, 0, 0, 0, loc).UTC()
	}
	termJD := ephemeris.JulianDay(termRef)

	termIdx, solarYear := TermIndexAt(termJD)

	return Resolved{
		Instant:    instant,
		Local:      local,
		Location:   loc,
		TimeKnown:  in.Time != nil,
		JulianDay:  jd,
		SolarYear:  year,
		SolarMonth: month,
		SolarDay:   day,
		Lunar:      lunar,
		TermIndex:  termIdx,
		TermEntry:  TermInstant(solarYear, termIdx),
		SajuYear:   solarYear,
		MonthIdx:   termIdx / 2,
	}, nil
}
