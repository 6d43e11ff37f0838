// Package expiry parses DD/MM/YYYY expiration dates and classifies them
// against the current time.
package expiry

import (
	"regexp"
	"strconv"
	"time"
)

// Layout is the textual date format used by stored products.
const Layout = "02/01/2006"

var datePattern = regexp.MustCompile(`^\d{2}/\d{2}/\d{4}$`)

// Status is the expiration risk of a product.
type Status string

const (
	StatusOK           Status = "ok"
	StatusExpiringSoon Status = "expiring_soon"
	StatusExpired      Status = "expired"
)

// Parse converts DD/MM/YYYY text to midnight of that day in loc.
// It reports false for any other shape and for days that do not exist.
func Parse(text string, loc *time.Location) (time.Time, bool) {
	if !datePattern.MatchString(text) {
		return time.Time{}, false
	}
	day, _ := strconv.Atoi(text[0:2])
	month, _ := strconv.Atoi(text[3:5])
	year, _ := strconv.Atoi(text[6:10])
	if loc == nil {
		loc = time.Local
	}

	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, loc)
	// time.Date normalizes overflow, so 31/02 comes back as a March date.
	if t.Day() != day || int(t.Month()) != month || t.Year() != year {
		return time.Time{}, false
	}
	return t, true
}

// Format renders t as DD/MM/YYYY.
func Format(t time.Time) string {
	return t.Format(Layout)
}

// AddMonths moves t by n calendar months keeping the clock time. The day of
// month is clamped to the last day of the target month.
func AddMonths(t time.Time, n int) time.Time {
	year, month, day := t.Date()
	target := time.Date(year, month+time.Month(n), 1, 0, 0, 0, 0, t.Location())
	if last := daysIn(target.Year(), target.Month(), t.Location()); day > last {
		day = last
	}
	hour, minute, sec := t.Clock()
	return time.Date(target.Year(), target.Month(), day, hour, minute, sec, t.Nanosecond(), t.Location())
}

func daysIn(year int, month time.Month, loc *time.Location) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
}

// Midnight returns the start of the day of t.
func Midnight(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// Classify reports the expiration status of text relative to now.
// Missing or unparseable dates are always StatusOK.
func Classify(text *string, now time.Time) Status {
	if text == nil {
		return StatusOK
	}
	date, ok := Parse(*text, now.Location())
	if !ok {
		return StatusOK
	}
	if date.Before(Midnight(now)) {
		return StatusExpired
	}
	if !date.After(AddMonths(now, 1)) {
		return StatusExpiringSoon
	}
	return StatusOK
}
