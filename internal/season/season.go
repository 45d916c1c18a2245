// Package season provides pure calendar helpers for birthday and holiday
// windows. Every function takes an explicit now so date-dependent behavior
// stays deterministic under test.
package season

import (
	"math"
	"time"

	"github.com/hollyoak/starjar/internal/model"
)

// IsBirthdayMonth reports whether now falls in the child's birth month.
// A child without a recorded birth month is never in a birthday month.
func IsBirthdayMonth(child model.Child, now time.Time) bool {
	if child.BirthMonth == nil {
		return false
	}
	return int(now.Month()) == *child.BirthMonth
}

// IsBirthdaySeason reports whether now falls in the birth month or the month
// immediately before it. December wraps to a January birthday.
func IsBirthdaySeason(child model.Child, now time.Time) bool {
	if child.BirthMonth == nil {
		return false
	}
	month := int(now.Month())
	birth := *child.BirthMonth
	if month == birth {
		return true
	}
	prev := birth - 1
	if prev == 0 {
		prev = 12
	}
	return month == prev
}

// IsChristmasSeason reports whether now is in the run-up to Christmas:
// any day in November, or December 1-24.
func IsChristmasSeason(now time.Time) bool {
	switch now.Month() {
	case time.November:
		return true
	case time.December:
		return now.Day() <= 24
	}
	return false
}

// DaysUntilBirthday returns the number of days until the 1st of the child's
// birth month, rolling to next year if that date has passed. Returns nil if
// the child has no recorded birth month.
func DaysUntilBirthday(child model.Child, now time.Time) *int {
	if child.BirthMonth == nil {
		return nil
	}
	target := time.Date(now.Year(), time.Month(*child.BirthMonth), 1, 0, 0, 0, 0, now.Location())
	if target.Before(startOfDay(now)) {
		target = target.AddDate(1, 0, 0)
	}
	days := daysBetween(now, target)
	return &days
}

// DaysUntilChristmas returns the number of days until the next December 25.
func DaysUntilChristmas(now time.Time) int {
	target := time.Date(now.Year(), time.December, 25, 0, 0, 0, 0, now.Location())
	if target.Before(startOfDay(now)) {
		target = target.AddDate(1, 0, 0)
	}
	return daysBetween(now, target)
}

// WeekStart returns the Monday 00:00:00 opening the ISO week containing t.
func WeekStart(t time.Time) time.Time {
	day := startOfDay(t)
	offset := int(day.Weekday()-time.Monday+7) % 7
	return day.AddDate(0, 0, -offset)
}

// MonthStart returns the first instant of the month containing t.
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// daysBetween counts calendar days from the start of from's day to to.
// Rounding absorbs the DST hour either side of a clock change.
func daysBetween(from, to time.Time) int {
	return int(math.Round(to.Sub(startOfDay(from)).Hours() / 24))
}
