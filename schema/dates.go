package schema

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// The three canonical textual date forms carried by backing files.
var (
	dayRe   = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`)
	monthRe = regexp.MustCompile(`^(\d{4})-(\d{2})$`)
	weekRe  = regexp.MustCompile(`^(\d{4})-W(\d{1,2})$`)
)

// ParseFlexibleDate converts a canonical date string to a UTC instant.
// YYYY-MM-DD parses exactly; YYYY-MM resolves to mid-month (day 15) so that
// monthly points sort and subtract sensibly; YYYY-Www resolves to week*7 days
// after Jan 1, an approximation that keeps weekly points evenly spaced rather
// than calendar-exact.
func ParseFlexibleDate(s string) (time.Time, error) {
	if m := dayRe.FindStringSubmatch(s); m != nil {
		return time.Parse("2006-01-02", s)
	}
	if m := monthRe.FindStringSubmatch(s); m != nil {
		year, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		if month < 1 || month > 12 {
			return time.Time{}, fmt.Errorf("invalid month in date: %s", s)
		}
		return time.Date(year, time.Month(month), 15, 0, 0, 0, 0, time.UTC), nil
	}
	if m := weekRe.FindStringSubmatch(s); m != nil {
		year, _ := strconv.Atoi(m[1])
		week, _ := strconv.Atoi(m[2])
		jan1 := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
		return jan1.AddDate(0, 0, week*7), nil
	}
	return time.Time{}, fmt.Errorf("unrecognized date format: %s", s)
}

// FormatDay renders an instant as YYYY-MM-DD.
func FormatDay(t time.Time) string {
	return t.Format("2006-01-02")
}

// FormatMonth renders an instant as YYYY-MM.
func FormatMonth(t time.Time) string {
	return t.Format("2006-01")
}
