package calendar

import (
	"testing"

	coreerrors "github.com/selivandex/destiny-core/pkg/errors"
)

func TestSolarToLunarKnownDates(t *testing.T) {
	cases := []struct {
		name    string
		y, m, d int
		want    LunarDate
	}{
		{"lunar new year 2000", 2000, 2, 5, LunarDate{Year: 2000, Month: 1, Day: 1}},
		{"lunar new year 2024", 2024, 2, 10, LunarDate{Year: 2024, Month: 1, Day: 1}},
		{"epoch", 1900, 1, 31, LunarDate{Year: 1900, Month: 1, Day: 1}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := SolarToLunar(c.y, c.m, c.d)
			if err != nil {
				t.Fatalf("conversion failed: %v", err)
			}
			if got != c.want {
				t.Errorf("got %+v, want %+v", got, c.want)
			}
		})
	}
}

func TestLunarSolarRoundTrip(t *testing.T) {
	dates := [][3]int{
		{1950, 3, 14},
		{1987, 11, 2},
		{2000, 1, 1},
		{2033, 8, 25},
		{2099, 12, 31},
	}

	for _, d := range dates {
		lunar, err := SolarToLunar(d[0], d[1], d[2])
		if err != nil {
			t.Fatalf("solar→lunar %v failed: %v", d, err)
		}
		y, m, day, err := LunarToSolar(lunar)
		if err != nil {
			t.Fatalf("lunar→solar %+v failed: %v", lunar, err)
		}
		if y != d[0] || m != d[1] || day != d[2] {
			t.Errorf("round trip of %v gave %d-%d-%d", d, y, m, day)
		}
	}
}

func TestLunarToSolarValidation(t *testing.T) {
	t.Run("year outside table", func(t *testing.T) {
		_, _, _, err := LunarToSolar(LunarDate{Year: 1880, Month: 1, Day: 1})
		if !coreerrors.IsCode(err, coreerrors.CodeInvalidDate) {
			t.Errorf("expected INVALID_DATE, got %v", err)
		}
	})

	t.Run("leap month that does not exist", func(t *testing.T) {
		// 2000 has no leap month 1
		_, _, _, err := LunarToSolar(LunarDate{Year: 2000, Month: 1, Day: 1, LeapMonth: true})
		if !coreerrors.IsCode(err, coreerrors.CodeInvalidDate) {
			t.Errorf("expected INVALID_DATE, got %v", err)
		}
	})

	t.Run("day beyond month length", func(t *testing.T) {
		_, _, _, err := LunarToSolar(LunarDate{Year: 2000, Month: 1, Day: 30})
		// Lunar months have 29 or 30 days; day 31 always fails
		_, _, _, err31 := LunarToSolar(LunarDate{Year: 2000, Month: 1, Day: 31})
		if err != nil && !coreerrors.IsCode(err, coreerrors.CodeInvalidDate) {
			t.Errorf("unexpected error kind: %v", err)
		}
		if !coreerrors.IsCode(err31, coreerrors.CodeInvalidDate) {
			t.Errorf("expected INVALID_DATE for day 31, got %v", err31)
		}
	})

	t.Run("month out of range", func(t *testing.T) {
		_, _, _, err := LunarToSolar(LunarDate{Year: 2000, Month: 13, Day: 1})
		if !coreerrors.IsCode(err, coreerrors.CodeInvalidDate) {
			t.Errorf("expected INVALID_DATE, got %v", err)
		}
	})
}

func TestLeapMonthRoundTrip(t *testing.T) {
	// 2020 has a leap month 4
	y, m, d, err := LunarToSolar(LunarDate{Year: 2020, Month: 4, Day: 1, LeapMonth: true})
	if err != nil {
		t.Fatalf("leap month conversion failed: %v", err)
	}

	back, err := SolarToLunar(y, m, d)
	if err != nil {
		t.Fatalf("reverse conversion failed: %v", err)
	}
	if !back.LeapMonth || back.Month != 4 || back.Day != 1 || back.Year != 2020 {
		t.Errorf("leap month lost in round trip: %+v", back)
	}
}
