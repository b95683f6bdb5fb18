// Package dates provides a calendar-day value type used by the analytics and
// calendar engines. A Day carries no time of day and no zone, so arithmetic
// on it is exact and comparison is plain integer comparison.
package dates

import (
	"fmt"
	"time"
)

// Layout is the wire format of a Day.
const Layout = "2006-01-02"

const secondsPerDay = 24 * 60 * 60

// Day is a calendar day counted from 1970-01-01.
type Day int

// New returns the day for the given civil date. Out-of-range values are
// normalized the same way time.Date does, so month 13 is January of the next year.
func New(year int, month time.Month, day int) Day {
	unix := time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Unix()
	d := unix / secondsPerDay
	if unix%secondsPerDay < 0 {
		d--
	}
	return Day(d)
}

// FromTime returns the calendar day t falls on in its own location.
func FromTime(t time.Time) Day {
	y, m, d := t.Date()
	return New(y, m, d)
}

// Parse reads a Day in YYYY-MM-DD form.
func Parse(s string) (Day, error) {
	t, err := time.Parse(Layout, s)
	if err != nil {
		return 0, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return FromTime(t), nil
}

// MustParse is Parse for literals known to be valid.
func MustParse(s string) Day {
	d, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Time returns midnight UTC of the day.
func (d Day) Time() time.Time {
	return time.Unix(int64(d)*secondsPerDay, 0).UTC()
}

// Date returns the civil components of the day.
func (d Day) Date() (int, time.Month, int) {
	return d.Time().Date()
}

func (d Day) Year() int {
	y, _, _ := d.Date()
	return y
}

func (d Day) Month() time.Month {
	_, m, _ := d.Date()
	return m
}

func (d Day) DayOfMonth() int {
	_, _, dd := d.Date()
	return dd
}

// Weekday returns the day of week; 1970-01-01 was a Thursday.
func (d Day) Weekday() time.Weekday {
	w := (int(d) + int(time.Thursday)) % 7
	if w < 0 {
		w += 7
	}
	return time.Weekday(w)
}

func (d Day) AddDays(n int) Day {
	return d + Day(n)
}

// Sub returns the number of days from other to d.
func (d Day) Sub(other Day) int {
	return int(d - other)
}

func (d Day) Before(other Day) bool { return d < other }

func (d Day) After(other Day) bool { return d > other }

// StartOfWeek returns the Sunday on or before d.
func (d Day) StartOfWeek() Day {
	return d - Day(d.Weekday())
}

// EndOfWeek returns the Saturday on or after d.
func (d Day) EndOfWeek() Day {
	return d.StartOfWeek() + 6
}

func (d Day) StartOfMonth() Day {
	y, m, _ := d.Date()
	return New(y, m, 1)
}

func (d Day) EndOfMonth() Day {
	y, m, _ := d.Date()
	return New(y, m+1, 1) - 1
}

// SameMonth reports whether d and other share year and month.
func (d Day) SameMonth(other Day) bool {
	y1, m1, _ := d.Date()
	y2, m2, _ := other.Date()
	return y1 == y2 && m1 == m2
}

func (d Day) String() string {
	return d.Time().Format(Layout)
}

func (d Day) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Day) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// DaysInMonth returns the length of the month after normalization.
func DaysInMonth(year int, month time.Month) int {
	return int(New(year, month+1, 1) - New(year, month, 1))
}

// Range returns every day from start to end inclusive.
func Range(start, end Day) []Day {
	if end < start {
		return nil
	}
	out := make([]Day, 0, end-start+1)
	for d := start; d <= end; d++ {
		out = append(out, d)
	}
	return out
}
