package calendar

import (
	"fmt"
	"time"

	"github.com/selivandex/destiny-core/pkg/errors"
)

// Lunisolar calendar data for 1900-2100, one packed word per year:
// bits 4..15 flag 30-day months (bit 15 = month 1), bits 0..3 hold the leap
// month number (0 = none), bit 16 flags a 30-day leap month.
var lunarInfo = [201]int{
	0x04bd8, 0x04ae0, 0x0a570, 0x054d5, 0x0d260, 0x0d950, 0x16554, 0x056a0, 0x09ad0, 0x055d2, // 1900-1909
	0x04ae0, 0x0a5b6, 0x0a4d0, 0x0d250, 0x1d255, 0x0b540, 0x0d6a0, 0x0ada2, 0x095b0, 0x14977, // 1910-1919
	0x04970, 0x0a4b0, 0x0b4b5, 0x06a50, 0x06d40, 0x1ab54, 0x02b60, 0x09570, 0x052f2, 0x04970, // 1920-1929
	0x06566, 0x0d4a0, 0x0ea50, 0x06e95, 0x05ad0, 0x02b60, 0x186e3, 0x092e0, 0x1c8d7, 0x0c950, // 1930-1939
	0x0d4a0, 0x1d8a6, 0x0b550, 0x056a0, 0x1a5b4, 0x025d0, 0x092d0, 0x0d2b2, 0x0a950, 0x0b557, // 1940-1949
	0x06ca0, 0x0b550, 0x15355, 0x04da0, 0x0a5b0, 0x14573, 0x052b0, 0x0a9a8, 0x0e950, 0x06aa0, // 1950-1959
	0x0aea6, 0x0ab50, 0x04b60, 0x0aae4, 0x0a570, 0x05260, 0x0f263, 0x0d950, 0x05b57, 0x056a0, // 1960-1969
	0x096d0, 0x04dd5, 0x04ad0, 0x0a4d0, 0x0d4d4, 0x0d250, 0x0d558, 0x0b540, 0x0b5a0, 0x195a6, // 1970-1979
	0x095b0, 0x049b0, 0x0a974, 0x0a4b0, 0x0b27a, 0x06a50, 0x06d40, 0x0af46, 0x0ab60, 0x09570, // 1980-1989
	0x04af5, 0x04970, 0x064b0, 0x074a3, 0x0ea50, 0x06b58, 0x055c0, 0x0ab60, 0x096d5, 0x092e0, // 1990-1999
	0x0c960, 0x0d954, 0x0d4a0, 0x0da50, 0x07552, 0x056a0, 0x0abb7, 0x025d0, 0x092d0, 0x0cab5, // 2000-2009
	0x0a950, 0x0b4a0, 0x0baa4, 0x0ad50, 0x055d9, 0x04ba0, 0x0a5b0, 0x15176, 0x052b0, 0x0a930, // 2010-2019
	0x07954, 0x06aa0, 0x0ad50, 0x05b52, 0x04b60, 0x0a6e6, 0x0a4e0, 0x0d260, 0x0ea65, 0x0d530, // 2020-2029
	0x05aa0, 0x076a3, 0x096d0, 0x04afb, 0x04ad0, 0x0a4d0, 0x1d0b6, 0x0d250, 0x0d520, 0x0dd45, // 2030-2039
	0x0b5a0, 0x056d0, 0x055b2, 0x049b0, 0x0a577, 0x0a4b0, 0x0aa50, 0x1b255, 0x06d20, 0x0ada0, // 2040-2049
	0x14b63, 0x09370, 0x049f8, 0x04970, 0x064b0, 0x168a6, 0x0ea50, 0x06b20, 0x1a6c4, 0x0aae0, // 2050-2059
	0x0a2e0, 0x0d2e3, 0x0c960, 0x0d557, 0x0d4a0, 0x0da50, 0x05d55, 0x056a0, 0x0a6d0, 0x055d4, // 2060-2069
	0x052d0, 0x0a9b8, 0x0a950, 0x0b4a0, 0x0b6a6, 0x0ad50, 0x055a0, 0x0aba4, 0x0a5b0, 0x052b0, // 2070-2079
	0x0b273, 0x06930, 0x07337, 0x06aa0, 0x0ad50, 0x14b55, 0x04b60, 0x0a570, 0x054e4, 0x0d160, // 2080-2089
	0x0e968, 0x0d520, 0x0daa0, 0x16aa6, 0x056d0, 0x04ae0, 0x0a9d4, 0x0a2d0, 0x0d150, 0x0f252, // 2090-2099
	0x0d520, // 2100
}

const (
	lunarMinYear = 1900
	lunarMaxYear = 2100
)

// Solar date of lunar 1900-01-01
var lunarEpoch = time.Date(1900, time.January, 31, 0, 0, 0, 0, time.UTC)

// LunarDate is a lunisolar calendar date
type LunarDate struct {
	Year      int  `json:"year"`
	Month     int  `json:"month"`
	Day       int  `json:"day"`
	LeapMonth bool `json:"leap_month"`
}

func (d LunarDate) String() string {
	leap := ""
	if d.LeapMonth {
		leap = " (leap)"
	}
	return fmt.Sprintf("%04d-%02d-%02d%s", d.Year, d.Month, d.Day, leap)
}

// leapMonthOf returns the leap month number for a lunar year, 0 when none
func leapMonthOf(year int) int {
	return lunarInfo[year-lunarMinYear] & 0xf
}

// leapMonthDays returns the length of the leap month, 0 when no leap month
func leapMonthDays(year int) int {
	if leapMonthOf(year) == 0 {
		return 0
	}
	if lunarInfo[year-lunarMinYear]&0x10000 != 0 {
		return 30
	}
	return 29
}

// monthDays returns the length of regular month m (1..12)
func monthDays(year, m int) int {
	if lunarInfo[year-lunarMinYear]&(0x8000>>(m-1)) != 0 {
		return 30
	}
	return 29
}

// yearDays returns the total day count of a lunar year
func yearDays(year int) int {
	days := 0
	for m := 1; m <= 12; m++ {
		days += monthDays(year, m)
	}
	return days + leapMonthDays(year)
}

// LunarToSolar converts a lunisolar date to the corresponding solar date.
// The leap flag must match the year's actual leap month.
func LunarToSolar(d LunarDate) (year, month, day int, err error) {
	if d.Year < lunarMinYear || d.Year > lunarMaxYear {
		return 0, 0, 0, errors.InvalidDate(
			fmt.Sprintf("lunar year %d outside supported range %d-%d", d.Year, lunarMinYear, lunarMaxYear))
	}
	if d.Month < 1 || d.Month > 12 {
		return 0, 0, 0, errors.InvalidDate(fmt.Sprintf("lunar month %d out of range", d.Month))
	}
	if d.LeapMonth && leapMonthOf(d.Year) != d.Month {
		return 0, 0, 0, errors.InvalidDate(
			fmt.Sprintf("lunar year %d has no leap month %d", d.Year, d.Month))
	}

	maxDay := monthDays(d.Year, d.Month)
	if d.LeapMonth {
		maxDay = leapMonthDays(d.Year)
	}
	if d.Day < 1 || d.Day > maxDay {
		return 0, 0, 0, errors.InvalidDate(
			fmt.Sprintf("lunar date %s does not exist (month has %d days)", d, maxDay))
	}

	offset := 0
	for y := lunarMinYear; y < d.Year; y++ {
		offset += yearDays(y)
	}

	leap := leapMonthOf(d.Year)
	for m := 1; m < d.Month; m++ {
		offset += monthDays(d.Year, m)
		if m == leap {
			offset += leapMonthDays(d.Year)
		}
	}
	// The leap month follows its numbered regular month
	if d.LeapMonth {
		offset += monthDays(d.Year, d.Month)
	}

	offset += d.Day - 1

	solar := lunarEpoch.AddDate(0, 0, offset)
	return solar.Year(), int(solar.Month()), solar.Day(), nil
}

// SolarToLunar converts a solar date to its lunisolar representation
func SolarToLunar(year, month, day int) (LunarDate, error) {
	target := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	offset := int(target.Sub(lunarEpoch).Hours() / 24)
	if offset < 0 {
		return LunarDate{}, errors.InvalidDate(
			fmt.Sprintf("solar date %04d-%02d-%02d precedes lunar table start", year, month, day))
	}

	ly := lunarMinYear
	for ly <= lunarMaxYear {
		yd := yearDays(ly)
		if offset < yd {
			break
		}
		offset -= yd
		ly++
	}
	if ly > lunarMaxYear {
		return LunarDate{}, errors.InvalidDate(
			fmt.Sprintf("solar date %04d-%02d-%02d beyond lunar table end", year, month, day))
	}

	leap := leapMonthOf(ly)
	for m := 1; m <= 12; m++ {
		md := monthDays(ly, m)
		if offset < md {
			return LunarDate{Year: ly, Month: m, Day: offset + 1}, nil
		}
		offset -= md

		if m == leap {
			ld := leapMonthDays(ly)
			if offset < ld {
				return LunarDate{Year: ly, Month: m, Day: offset + 1, LeapMonth: true}, nil
			}
			offset -= ld
		}
	}

	// Unreachable: offset was reduced below the year's total length above
	return LunarDate{}, errors.InvalidDate("lunar table inconsistency")
}
