package models

import (
	"testing"

	coreerrors "github.com/selivandex/destiny-core/pkg/errors"
)

func strPtr(s string) *string { return &s }

func TestBirthInputValidate(t *testing.T) {
	valid := BirthInput{
		Date:      "2000-01-01",
		Time:      strPtr("08:30"),
		Latitude:  37.5665,
		Longitude: 126.978,
		Timezone:  "Asia/Seoul",
		Calendar:  CalendarSolar,
		Gender:    GenderMale,
	}

	t.Run("valid input passes", func(t *testing.T) {
		if err := valid.Validate(); err != nil {
			t.Fatalf("valid input rejected: %v", err)
		}
	})

	t.Run("latitude out of range", func(t *testing.T) {
		in := valid
		in.Latitude = 91
		err := in.Validate()
		if !coreerrors.IsCode(err, coreerrors.CodeInvalidCoordinates) {
			t.Errorf("expected INVALID_COORDINATES, got %v", err)
		}
	})

	t.Run("longitude out of range", func(t *testing.T) {
		in := valid
		in.Longitude = -200
		if err := in.Validate(); !coreerrors.IsCode(err, coreerrors.CodeInvalidCoordinates) {
			t.Errorf("expected INVALID_COORDINATES, got %v", err)
		}
	})

	t.Run("malformed date", func(t *testing.T) {
		in := valid
		in.Date = "2000-13-45"
		if err := in.Validate(); !coreerrors.IsCode(err, coreerrors.CodeInvalidDate) {
			t.Errorf("expected INVALID_DATE, got %v", err)
		}
	})

	t.Run("malformed time", func(t *testing.T) {
		in := valid
		in.Time = strPtr("25:99")
		if err := in.Validate(); !coreerrors.IsCode(err, coreerrors.CodeInvalidDate) {
			t.Errorf("expected INVALID_DATE, got %v", err)
		}
	})

	t.Run("leap month on solar calendar", func(t *testing.T) {
		in := valid
		in.LeapMonth = true
		if err := in.Validate(); !coreerrors.IsCode(err, coreerrors.CodeInvalidDate) {
			t.Errorf("expected INVALID_DATE, got %v", err)
		}
	})

	t.Run("unknown calendar", func(t *testing.T) {
		in := valid
		in.Calendar = "julian"
		if err := in.Validate(); !coreerrors.IsCode(err, coreerrors.CodeInvalidDate) {
			t.Errorf("expected INVALID_DATE, got %v", err)
		}
	})

	t.Run("nil time is allowed", func(t *testing.T) {
		in := valid
		in.Time = nil
		if err := in.Validate(); err != nil {
			t.Errorf("unknown time should validate: %v", err)
		}
		if in.TimeKnown() {
			t.Error("TimeKnown should be false for nil time")
		}
	})
}
