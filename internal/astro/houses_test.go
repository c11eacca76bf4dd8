package astro

import (
	"math"
	"testing"
	"time"

	"github.com/selivandex/destiny-core/internal/ephemeris"
	"github.com/selivandex/destiny-core/pkg/models"
)

func TestWholeSignCusps(t *testing.T) {
	cusps := wholeSignCusps(95.5) // ascendant in cancer

	if cusps[0] != 90 {
		t.Errorf("first cusp %f, want sign start 90", cusps[0])
	}
	for i := 1; i < 12; i++ {
		gap := normalize360(cusps[i] - cusps[i-1])
		if gap != 30 {
			t.Errorf("cusp %d gap %f, want exactly 30", i, gap)
		}
	}
}

func TestPlacidusCusps(t *testing.T) {
	jd := ephemeris.JulianDay(time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC))
	res := computeHouses(models.HousePlacidus, jd, 37.5665, 126.978)

	t.Run("angles anchor the quadrants", func(t *testing.T) {
		if res.cusps[0] != res.ascendant {
			t.Errorf("cusp 1 %f should equal ascendant %f", res.cusps[0], res.ascendant)
		}
		if res.cusps[9] != res.midheaven {
			t.Errorf("cusp 10 %f should equal midheaven %f", res.cusps[9], res.midheaven)
		}
	})

	t.Run("opposite cusps are 180 apart", func(t *testing.T) {
		for i := 0; i < 6; i++ {
			d := math.Abs(angleDiff(res.cusps[i]+180, res.cusps[i+6]))
			if d > 1e-6 {
				t.Errorf("cusps %d and %d not opposite: %f vs %f", i+1, i+7, res.cusps[i], res.cusps[i+6])
			}
		}
	})

	t.Run("cusps ascend around the circle", func(t *testing.T) {
		for i := 0; i < 12; i++ {
			gap := normalize360(res.cusps[(i+1)%12] - res.cusps[i])
			if gap <= 0 || gap >= 120 {
				t.Errorf("gap after cusp %d is %f, implausible", i+1, gap)
			}
		}
	})
}

func TestPlacidusPolarFallback(t *testing.T) {
	jd := ephemeris.JulianDay(time.Date(2000, 6, 21, 0, 0, 0, 0, time.UTC))
	res := computeHouses(models.HousePlacidus, jd, 72.0, -40.0) // above the latitude limit

	// Whole-sign fallback: every cusp on a sign boundary
	for i, c := range res.cusps {
		if math.Mod(c, 30) != 0 {
			t.Fatalf("polar chart cusp %d = %f, expected whole-sign fallback", i+1, c)
		}
	}
}

func TestHouseOf(t *testing.T) {
	var cusps [12]float64
	for i := range cusps {
		cusps[i] = float64(i * 30)
	}

	cases := []struct {
		lon  float64
		want int
	}{
		{0, 1},
		{15, 1},
		{30, 2},
		{359.99, 12},
		{345, 12},
	}
	for _, c := range cases {
		if got := houseOf(c.lon, cusps); got != c.want {
			t.Errorf("houseOf(%f) = %d, want %d", c.lon, got, c.want)
		}
	}

	t.Run("house spanning 0 degrees", func(t *testing.T) {
		var shifted [12]float64
		for i := range shifted {
			shifted[i] = normalize360(float64(i*30) + 345)
		}
		// House 1 runs 345..15
		if got := houseOf(350, shifted); got != 1 {
			t.Errorf("houseOf(350) = %d, want 1", got)
		}
		if got := houseOf(5, shifted); got != 1 {
			t.Errorf("houseOf(5) = %d, want 1", got)
		}
	})
}
