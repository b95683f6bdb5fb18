package dates

import "time"

// Clock supplies "now" to the engines. Location decides which calendar day
// "now" falls on.
type Clock struct {
	Now      func() time.Time
	Location *time.Location
}

// SystemClock reads the wall clock in loc (UTC when nil).
func SystemClock(loc *time.Location) Clock {
	if loc == nil {
		loc = time.UTC
	}
	return Clock{Now: time.Now, Location: loc}
}

// FixedClock always reports t, evaluated in t's location.
func FixedClock(t time.Time) Clock {
	return Clock{
		Now:      func() time.Time { return t },
		Location: t.Location(),
	}
}

// Today returns the current calendar day.
func (c Clock) Today() Day {
	now := time.Now
	if c.Now != nil {
		now = c.Now
	}
	loc := c.Location
	if loc == nil {
		loc = time.UTC
	}
	return FromTime(now().In(loc))
}
