package pillars

import (
	"testing"

	"github.com/selivandex/destiny-core/internal/adapters/config"
	"github.com/selivandex/destiny-core/internal/calendar"
	"github.com/selivandex/destiny-core/pkg/models"
)

func strPtr(s string) *string { return &s }

func resolve(t *testing.T, std *config.CalculationStandards, in models.BirthInput) calendar.Resolved {
	t.Helper()
	res, err := calendar.NewResolver(std).ResolveInstant(in)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	return res
}

func seoulBirth(date, clock string) models.BirthInput {
	in := models.BirthInput{
		Date:      date,
		Latitude:  37.5665,
		Longitude: 126.978,
		Timezone:  "Asia/Seoul",
		Calendar:  models.CalendarSolar,
		Gender:    models.GenderMale,
	}
	if clock != "" {
		in.Time = strPtr(clock)
	}
	return in
}

func TestComputeSeoulMillennium(t *testing.T) {
	std := &config.Default().Standards
	calc := NewCalculator(std)

	fp, err := calc.Compute(resolve(t, std, seoulBirth("2000-01-01", "08:30")))
	if err != nil {
		t.Fatalf("compute failed: %v", err)
	}

	// 2000-01-01 precedes Ipchun: year pillar is still Gi-Myo (1999)
	if got := fp.Year.GanzhiIndex(); got != 15 {
		t.Errorf("year pillar %s (index %d), want Gi-Myo (15)", fp.Year, got)
	}
	// Ja month of the Gi year is Byeong-Ja
	if fp.Month.Stem != 2 || fp.Month.Branch != 0 {
		t.Errorf("month pillar %s, want Byeong-Ja", fp.Month)
	}
	// 2000-01-01 is the Mu-O day, sexagenary index 54
	if got := fp.Day.GanzhiIndex(); got != 54 {
		t.Errorf("day pillar %s (index %d), want Mu-O (54)", fp.Day, got)
	}
	// 08:30 on a Mu day is the Byeong-Jin hour
	if fp.Hour == nil {
		t.Fatal("hour pillar missing")
	}
	if fp.Hour.Stem != 2 || fp.Hour.Branch != 4 {
		t.Errorf("hour pillar %s, want Byeong-Jin", fp.Hour)
	}
}

func TestDayPillarSixtyDayCycle(t *testing.T) {
	std := &config.Default().Standards
	calc := NewCalculator(std)

	base, err := calc.Compute(resolve(t, std, seoulBirth("2000-03-01", "10:00")))
	if err != nil {
		t.Fatal(err)
	}
	later, err := calc.Compute(resolve(t, std, seoulBirth("2000-04-30", "10:00"))) // +60 days
	if err != nil {
		t.Fatal(err)
	}

	if base.Day != later.Day {
		t.Errorf("day pillar should repeat after 60 days: %s vs %s", base.Day, later.Day)
	}
}

func TestDayPillarZi23Boundary(t *testing.T) {
	t.Run("zi23 advances the day at 23:00", func(t *testing.T) {
		std := &config.Default().Standards // zi23
		calc := NewCalculator(std)

		at2250, err := calc.Compute(resolve(t, std, seoulBirth("2000-01-01", "22:50")))
		if err != nil {
			t.Fatal(err)
		}
		at2310, err := calc.Compute(resolve(t, std, seoulBirth("2000-01-01", "23:10")))
		if err != nil {
			t.Fatal(err)
		}
		nextDay, err := calc.Compute(resolve(t, std, seoulBirth("2000-01-02", "01:00")))
		if err != nil {
			t.Fatal(err)
		}

		if at2310.Day != nextDay.Day {
			t.Errorf("23:10 birth should carry the next day pillar: got %s, next day is %s",
				at2310.Day, nextDay.Day)
		}
		if at2250.Day == at2310.Day {
			t.Error("day pillar should change at the 23:00 boundary")
		}
	})

	t.Run("midnight policy keeps the civil day", func(t *testing.T) {
		std := config.Default().Standards
		std.HourBoundary = config.HourBoundaryMidnight
		calc := NewCalculator(&std)

		at2310, err := calc.Compute(resolve(t, &std, seoulBirth("2000-01-01", "23:10")))
		if err != nil {
			t.Fatal(err)
		}
		if got := at2310.Day.GanzhiIndex(); got != 54 {
			t.Errorf("midnight policy day pillar index %d, want 54", got)
		}
	})
}

func TestComputeWithoutTime(t *testing.T) {
	std := &config.Default().Standards
	calc := NewCalculator(std)

	fp, err := calc.Compute(resolve(t, std, seoulBirth("2000-01-01", "")))
	if err != nil {
		t.Fatal(err)
	}
	if fp.Hour != nil {
		t.Error("hour pillar must be nil when birth time is unknown")
	}
	if got := fp.Day.GanzhiIndex(); got != 54 {
		t.Errorf("day pillar index %d, want 54", got)
	}
}

func TestAnalyze(t *testing.T) {
	std := &config.Default().Standards
	calc := NewCalculator(std)

	res := resolve(t, std, seoulBirth("2000-01-01", "08:30"))
	fp, err := calc.Compute(res)
	if err != nil {
		t.Fatal(err)
	}

	an := calc.Analyze(res, fp, models.GenderMale)

	if len(an.Sibsin) != 3 {
		t.Errorf("expected 3 sibsin entries (non-day stems), got %d", len(an.Sibsin))
	}
	if len(an.Stages) != 4 {
		t.Errorf("expected 4 twelve-stage entries, got %d", len(an.Stages))
	}
	if len(an.Daeun) != 8 {
		t.Errorf("expected 8 luck cycles, got %d", len(an.Daeun))
	}

	total := 0.0
	for _, e := range models.Elements {
		total += an.ElementCount[e]
	}
	if total <= 0 {
		t.Error("element distribution must be populated")
	}

	t.Run("deterministic", func(t *testing.T) {
		an2 := calc.Analyze(res, fp, models.GenderMale)
		if len(an2.Relations) != len(an.Relations) {
			t.Fatal("relation detection must be deterministic")
		}
		for i := range an.Relations {
			if an.Relations[i] != an2.Relations[i] &&
				(an.Relations[i].Kind != an2.Relations[i].Kind ||
					an.Relations[i].A != an2.Relations[i].A ||
					an.Relations[i].B != an2.Relations[i].B) {
				t.Fatalf("relation %d differs between runs", i)
			}
		}
	})
}

func TestDaeunDirection(t *testing.T) {
	std := &config.Default().Standards
	calc := NewCalculator(std)

	res := resolve(t, std, seoulBirth("2000-01-01", "08:30"))
	fp, err := calc.Compute(res)
	if err != nil {
		t.Fatal(err)
	}
	monthIdx := fp.Month.GanzhiIndex()

	// Year stem Gi (yin) + male: cycles run backward from the month pillar
	male := calc.daeun(res, fp, models.GenderMale)
	if got := male[0].Pillar.GanzhiIndex(); got != (monthIdx-1+60)%60 {
		t.Errorf("yin-year male should step backward: first cycle %d, month %d", got, monthIdx)
	}

	// Same chart for a female runs forward
	female := calc.daeun(res, fp, models.GenderFemale)
	if got := female[0].Pillar.GanzhiIndex(); got != (monthIdx+1)%60 {
		t.Errorf("yin-year female should step forward: first cycle %d, month %d", got, monthIdx)
	}

	for i := 1; i < len(male); i++ {
		if male[i].StartAge != male[i-1].StartAge+10 {
			t.Errorf("luck cycles must be 10 years apart, got %d then %d",
				male[i-1].StartAge, male[i].StartAge)
		}
	}
}

func TestHiddenStemsTable(t *testing.T) {
	cases := []struct {
		branch models.Branch
		want   []models.Stem
	}{
		{0, []models.Stem{9}},       // Ja hides Gye
		{2, []models.Stem{0, 2, 4}}, // In hides Gap, Byeong, Mu
		{6, []models.Stem{3, 5}},    // O hides Jeong, Gi
		{11, []models.Stem{8, 0}},   // Hae hides Im, Gap
	}
	for _, c := range cases {
		got := HiddenStemsOf(c.branch)
		if len(got) != len(c.want) {
			t.Errorf("branch %d: %v, want %v", c.branch, got, c.want)
			continue
		}
		for i := range got {
			if got[i] != c.want[i] {
				t.Errorf("branch %d: %v, want %v", c.branch, got, c.want)
				break
			}
		}
	}

	t.Run("returned slice is a copy", func(t *testing.T) {
		s := HiddenStemsOf(2)
		s[0] = 9
		if HiddenStemsOf(2)[0] != 0 {
			t.Error("mutating the returned slice must not corrupt the table")
		}
	})
}

func TestSibsinOf(t *testing.T) {
	// Day master Gap (yang wood)
	cases := []struct {
		other models.Stem
		want  models.Sibsin
	}{
		{0, models.SibsinBigyeon},   // Gap: same element, same polarity
		{1, models.SibsinGeopjae},   // Eul: same element, opposite polarity
		{2, models.SibsinSiksin},    // Byeong: generated, same polarity
		{3, models.SibsinSanggwan},  // Jeong
		{4, models.SibsinPyeonjae},  // Mu: controlled, same polarity
		{5, models.SibsinJeongjae},  // Gi
		{6, models.SibsinPyeongwan}, // Gyeong: controlling, same polarity
		{7, models.SibsinJeonggwan}, // Sin
		{8, models.SibsinPyeonin},   // Im: generating, same polarity
		{9, models.SibsinJeongin},   // Gye
	}
	for _, c := range cases {
		if got := SibsinOf(0, c.other); got != c.want {
			t.Errorf("SibsinOf(Gap, %d) = %s, want %s", c.other, got, c.want)
		}
	}
}

func TestTwelveStageOf(t *testing.T) {
	// Gap is born at Hae and peaks at Myo
	if got := TwelveStageOf(0, 11); got != models.StageJangsaeng {
		t.Errorf("Gap over Hae = %s, want jangsaeng", got)
	}
	if got := TwelveStageOf(0, 3); got != models.StageJewang {
		t.Errorf("Gap over Myo = %s, want jewang", got)
	}
	// Yin stems walk backward: Eul is born at O, so Sa is its bath stage
	if got := TwelveStageOf(1, 5); got != models.StageMokyok {
		t.Errorf("Eul over Sa = %s, want mokyok", got)
	}
}
