package clock

import "time"

// DateLayout renders a calendar date the way the persisted generation-date key
// stores it, e.g. "Mon Jan 01 2024".
const DateLayout = "Mon Jan 02 2006"

// Clock provides the current time. Inject a fake in tests to control day
// rollover and the fallback timestamp.
type Clock interface {
	Now() time.Time
}

// System is the wall clock in the local time zone
type System struct{}

// Now returns time.Now()
func (System) Now() time.Time {
	return time.Now()
}

// DateString formats t's calendar date in its own location
func DateString(t time.Time) string {
	return t.Format(DateLayout)
}

// Today returns the current date string for c
func Today(c Clock) string {
	return DateString(c.Now())
}
