package models

import (
	"fmt"
	"time"

	"github.com/selivandex/destiny-core/pkg/errors"
)

// CalendarType selects how BirthInput.Date is interpreted
type CalendarType string

const (
	CalendarSolar CalendarType = "solar"
	CalendarLunar CalendarType = "lunar"
)

// Gender affects direction of the luck-cycle sequence
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// BirthInput represents raw birth data as supplied by the caller.
// Time is nil when the birth time is unknown; consumers must branch on
// presence instead of relying on a sentinel value.
type BirthInput struct {
	Date      string       `json:"date"`           // YYYY-MM-DD in the selected calendar
	Time      *string      `json:"time,omitempty"` // HH:MM local, nil = unknown
	Latitude  float64      `json:"latitude"`
	Longitude float64      `json:"longitude"`
	Timezone  string       `json:"timezone"` // IANA identifier, e.g. "Asia/Seoul"
	Calendar  CalendarType `json:"calendar"`
	LeapMonth bool         `json:"leap_month,omitempty"` // lunar calendar only
	Gender    Gender       `json:"gender"`
}

// TimeKnown reports whether an exact birth time was supplied
func (b BirthInput) TimeKnown() bool {
	return b.Time != nil
}

// Validate checks ranges and formats before any computation starts
func (b BirthInput) Validate() error {
	if b.Latitude < -90 || b.Latitude > 90 {
		return errors.InvalidCoordinates(fmt.Sprintf("latitude %.4f out of range [-90, 90]", b.Latitude))
	}
	if b.Longitude < -180 || b.Longitude > 180 {
		return errors.InvalidCoordinates(fmt.Sprintf("longitude %.4f out of range [-180, 180]", b.Longitude))
	}

	if _, err := time.Parse("2006-01-02", b.Date); err != nil {
		return errors.InvalidDate(fmt.Sprintf("date %q is not a valid YYYY-MM-DD date", b.Date))
	}
	if b.Time != nil {
		if _, err := time.Parse("15:04", *b.Time); err != nil {
			return errors.InvalidDate(fmt.Sprintf("time %q is not a valid HH:MM time", *b.Time))
		}
	}

	switch b.Calendar {
	case CalendarSolar, CalendarLunar:
	default:
		return errors.InvalidDate(fmt.Sprintf("unknown calendar type %q", b.Calendar))
	}
	if b.Calendar == CalendarSolar && b.LeapMonth {
		return errors.InvalidDate("leap_month flag is only valid for lunar dates")
	}

	switch b.Gender {
	case GenderMale, GenderFemale:
	default:
		return errors.InvalidDate(fmt.Sprintf("unknown gender %q", b.Gender))
	}

	return nil
}
