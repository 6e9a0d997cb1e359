package zmanim

import (
	"fmt"
	"math"
	"time"
)

const (
	// secondsPerDay is the length of a civil day without leap seconds.
	secondsPerDay = 24 * 60 * 60
	// hoursPerDay is used to turn a day fraction into hours.
	hoursPerDay = 24.0
)

// TimeOfDay is a local clock time with no date attached.
// It is always interpreted as "today" in the zone of the run.
type TimeOfDay struct {
	// Hour is in [0, 23].
	Hour int
	// Minute is in [0, 59].
	Minute int
	// Second is in [0, 59].
	Second int
}

// TimeOfDayFromFraction converts a fraction of a day into a clock time.
// Fractions outside [0, 1) wrap around midnight. Sub-second parts are truncated.
func TimeOfDayFromFraction(frac float64) TimeOfDay {
	frac = math.Mod(frac, 1)
	if frac < 0 {
		frac++
	}

	// Adding 1 to a tiny negative value can round up to exactly 1.
	if frac >= 1 || math.IsNaN(frac) {
		frac = 0
	}

	hours := hoursPerDay * frac
	h := int(hours)
	minutes := (hours - float64(h)) * 60
	m := int(minutes)
	s := int((minutes - float64(m)) * 60)

	return TimeOfDay{Hour: h, Minute: m, Second: s}
}

// TimeOfDayFromTime takes the clock part of t in its own location.
func TimeOfDayFromTime(t time.Time) TimeOfDay {
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute(), Second: t.Second()}
}

// Seconds returns the number of seconds since midnight.
func (t TimeOfDay) Seconds() int {
	return t.Hour*3600 + t.Minute*60 + t.Second
}

// Add shifts the clock time by d, wrapping around midnight.
func (t TimeOfDay) Add(d time.Duration) TimeOfDay {
	total := (t.Seconds() + int(d/time.Second)) % secondsPerDay
	if total < 0 {
		total += secondsPerDay
	}

	return TimeOfDay{
		Hour:   total / 3600,
		Minute: total % 3600 / 60,
		Second: total % 60,
	}
}

// On places the clock time on the calendar day of day, in day's location.
func (t TimeOfDay) On(day time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour, t.Minute, t.Second, 0, day.Location())
}

// Before reports whether t is earlier in the day than other.
func (t TimeOfDay) Before(other TimeOfDay) bool {
	return t.Seconds() < other.Seconds()
}

// String renders the time as HH:MM, dropping seconds.
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// Clock renders the time as HH:MM:SS.
func (t TimeOfDay) Clock() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second)
}
