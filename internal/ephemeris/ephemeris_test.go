package ephemeris

import (
	"math"
	"testing"
	"time"

	coreerrors "github.com/selivandex/destiny-core/pkg/errors"
	"github.com/selivandex/destiny-core/pkg/models"
)

func TestJulianDay(t *testing.T) {
	cases := []struct {
		instant time.Time
		want    float64
	}{
		{time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC), 2451545.0},
		{time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC), 2451179.5},
		{time.Date(1987, 4, 10, 0, 0, 0, 0, time.UTC), 2446895.5},
	}
	for _, c := range cases {
		if got := JulianDay(c.instant); math.Abs(got-c.want) > 1e-6 {
			t.Errorf("JulianDay(%s) = %f, want %f", c.instant, got, c.want)
		}
	}
}

func TestJulianDayNumber(t *testing.T) {
	if got := JulianDayNumber(2000, 1, 1); got != 2451545 {
		t.Errorf("JDN(2000-01-01) = %d, want 2451545", got)
	}
	// 1949-10-01 is 18354 days before 2000-01-01
	if got := JulianDayNumber(1949, 10, 1); got != 2451545-18354 {
		t.Errorf("JDN(1949-10-01) = %d, want %d", got, 2451545-18354)
	}
}

func TestFromJulianDayRoundTrip(t *testing.T) {
	instants := []time.Time{
		time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC),
		time.Date(1950, 6, 15, 3, 30, 0, 0, time.UTC),
		time.Date(2024, 2, 29, 23, 59, 0, 0, time.UTC),
	}
	for _, in := range instants {
		out := FromJulianDay(JulianDay(in))
		if d := out.Sub(in); d > time.Second || d < -time.Second {
			t.Errorf("round trip of %s drifted by %s", in, d)
		}
	}
}

func TestApparentSolarLongitudeAtCardinalPoints(t *testing.T) {
	cases := []struct {
		name    string
		instant time.Time
		want    float64
	}{
		{"2000 march equinox", time.Date(2000, 3, 20, 7, 35, 0, 0, time.UTC), 0},
		{"2000 june solstice", time.Date(2000, 6, 21, 1, 48, 0, 0, time.UTC), 90},
		{"2000 september equinox", time.Date(2000, 9, 22, 17, 28, 0, 0, time.UTC), 180},
		{"2000 december solstice", time.Date(2000, 12, 21, 13, 37, 0, 0, time.UTC), 270},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			lon := ApparentSolarLongitude(JulianDay(c.instant))
			if d := math.Abs(angleDiff(lon, c.want)); d > 0.05 {
				t.Errorf("longitude %f, want %f within 0.05°", lon, c.want)
			}
		})
	}
}

func TestLookupSun(t *testing.T) {
	src := NewAnalytic(models.NodeMean)

	pos, err := src.Lookup(models.Sun, time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}

	// The Sun sits near 280° in early January
	if pos.Longitude < 278 || pos.Longitude > 282 {
		t.Errorf("sun longitude %f outside early-January window", pos.Longitude)
	}
	// ~0.98-1.02°/day, never retrograde
	if pos.Speed < 0.9 || pos.Speed > 1.1 {
		t.Errorf("sun speed %f outside plausible range", pos.Speed)
	}
	if pos.Distance < 0.98 || pos.Distance > 1.02 {
		t.Errorf("sun distance %f AU outside plausible range", pos.Distance)
	}
}

func TestLookupMoon(t *testing.T) {
	src := NewAnalytic(models.NodeMean)

	pos, err := src.Lookup(models.Moon, time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}

	if pos.Speed < 11 || pos.Speed > 15.5 {
		t.Errorf("moon speed %f outside 11-15.5°/day", pos.Speed)
	}
	if math.Abs(pos.Latitude) > 5.4 {
		t.Errorf("moon latitude %f exceeds orbital inclination bound", pos.Latitude)
	}
}

func TestLookupAllBodies(t *testing.T) {
	src := NewAnalytic(models.NodeMean)
	instant := time.Date(1990, 7, 15, 6, 0, 0, 0, time.UTC)

	for _, body := range models.Bodies {
		pos, err := src.Lookup(body, instant)
		if err != nil {
			t.Fatalf("lookup %s failed: %v", body, err)
		}
		if pos.Longitude < 0 || pos.Longitude >= 360 {
			t.Errorf("%s longitude %f not normalized", body, pos.Longitude)
		}
		if pos.Distance <= 0 {
			t.Errorf("%s distance %f must be positive", body, pos.Distance)
		}
	}
}

func TestMeanNodeNearJ2000(t *testing.T) {
	src := NewAnalytic(models.NodeMean)

	pos, err := src.Lookup(models.LunarNode, time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	// Mean node at J2000 sits at 125.04°
	if d := math.Abs(angleDiff(pos.Longitude, 125.04)); d > 0.5 {
		t.Errorf("mean node %f, want near 125.04", pos.Longitude)
	}
	// The node regresses
	if pos.Speed >= 0 {
		t.Errorf("node speed %f should be negative", pos.Speed)
	}
}

func TestNodeTypesDiffer(t *testing.T) {
	instant := time.Date(1995, 3, 10, 0, 0, 0, 0, time.UTC)

	mean, err := NewAnalytic(models.NodeMean).Lookup(models.LunarNode, instant)
	if err != nil {
		t.Fatal(err)
	}
	truth, err := NewAnalytic(models.NodeTrue).Lookup(models.LunarNode, instant)
	if err != nil {
		t.Fatal(err)
	}

	d := math.Abs(angleDiff(mean.Longitude, truth.Longitude))
	if d > 2.5 {
		t.Errorf("mean/true node separation %f exceeds oscillation bound", d)
	}
}

func TestLookupOutsideSupportedRange(t *testing.T) {
	src := NewAnalytic(models.NodeMean)

	_, err := src.Lookup(models.Sun, time.Date(1500, 1, 1, 0, 0, 0, 0, time.UTC))
	if !coreerrors.IsCode(err, coreerrors.CodeEphemerisUnavailable) {
		t.Errorf("expected EPHEMERIS_UNAVAILABLE, got %v", err)
	}

	_, err = src.Lookup(models.Sun, time.Date(2300, 1, 1, 0, 0, 0, 0, time.UTC))
	if !coreerrors.IsCode(err, coreerrors.CodeEphemerisUnavailable) {
		t.Errorf("expected EPHEMERIS_UNAVAILABLE, got %v", err)
	}
}
