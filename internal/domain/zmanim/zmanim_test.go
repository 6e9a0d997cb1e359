package zmanim

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestTimeOfDayFromFraction verifies conversion and wrapping around midnight.
func TestTimeOfDayFromFraction(t *testing.T) {
	t.Parallel()

	require.Equal(t, TimeOfDay{Hour: 12}, TimeOfDayFromFraction(0.5))
	require.Equal(t, TimeOfDay{Hour: 18}, TimeOfDayFromFraction(0.75))

	// Past midnight and before midnight wrap into the same day.
	require.Equal(t, TimeOfDay{Hour: 6}, TimeOfDayFromFraction(1.25))
	require.Equal(t, TimeOfDay{Hour: 18}, TimeOfDayFromFraction(-0.25))

	// Tiny negative fractions must not produce hour 24.
	got := TimeOfDayFromFraction(-1e-18)
	require.Less(t, got.Hour, 24)

	got = TimeOfDayFromFraction(math.NaN())
	require.Equal(t, TimeOfDay{}, got)
}

// TestTimeOfDayAdd checks the fixed candle-lighting offset and wraparound.
func TestTimeOfDayAdd(t *testing.T) {
	t.Parallel()

	sunset := TimeOfDay{Hour: 19, Minute: 10}
	require.Equal(t, TimeOfDay{Hour: 18, Minute: 52}, sunset.Add(-18*time.Minute))

	early := TimeOfDay{Minute: 10}
	require.Equal(t, TimeOfDay{Hour: 23, Minute: 52}, early.Add(-18*time.Minute))

	late := TimeOfDay{Hour: 23, Minute: 59, Second: 30}
	require.Equal(t, TimeOfDay{Second: 30}, late.Add(time.Minute))
}

// TestTimeOfDayFormatting ensures HH:MM output drops seconds instead of rounding.
func TestTimeOfDayFormatting(t *testing.T) {
	t.Parallel()

	tod := TimeOfDay{Hour: 7, Minute: 5, Second: 59}
	require.Equal(t, "07:05", tod.String())
	require.Equal(t, "07:05:59", tod.Clock())
	require.Equal(t, 7*3600+5*60+59, tod.Seconds())
}

// TestTimeOfDayOn places a clock time on the calendar day of a reference instant.
func TestTimeOfDayOn(t *testing.T) {
	t.Parallel()

	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	day := time.Date(2024, time.September, 13, 16, 50, 0, 0, loc)
	got := TimeOfDay{Hour: 19, Minute: 7, Second: 38}.On(day)

	require.Equal(t, time.Date(2024, time.September, 13, 19, 7, 38, 0, loc), got)
	require.Equal(t, TimeOfDayFromTime(got), TimeOfDay{Hour: 19, Minute: 7, Second: 38})
	require.True(t, TimeOfDay{Hour: 1}.Before(TimeOfDay{Hour: 2}))
}

// TestCoordinateValid rejects out-of-range and non-finite components.
func TestCoordinateValid(t *testing.T) {
	t.Parallel()

	require.True(t, Coordinate{Latitude: 40.71, Longitude: -74.01}.Valid())
	require.True(t, Coordinate{Latitude: -90, Longitude: 180}.Valid())
	require.False(t, Coordinate{Latitude: 91, Longitude: 0}.Valid())
	require.False(t, Coordinate{Latitude: 0, Longitude: -180.5}.Valid())
	require.False(t, Coordinate{Latitude: math.NaN(), Longitude: 0}.Valid())
	require.False(t, Coordinate{Latitude: 0, Longitude: math.Inf(1)}.Valid())
	require.Equal(t, "40.7100,-74.0100", Coordinate{Latitude: 40.71, Longitude: -74.01}.String())
}

// TestNormalizeLongitude wraps longitudes derived from extreme UTC offsets.
func TestNormalizeLongitude(t *testing.T) {
	t.Parallel()

	require.InDelta(t, 45.0, NormalizeLongitude(45), 1e-9)
	require.InDelta(t, -150.0, NormalizeLongitude(210), 1e-9)
	require.InDelta(t, 165.0, NormalizeLongitude(-195), 1e-9)
	require.InDelta(t, 180.0, NormalizeLongitude(180), 1e-9)
}

// TestParseTriggers documents the permissive trigger mapping.
func TestParseTriggers(t *testing.T) {
	t.Parallel()

	require.Equal(t, PauseAtCandleLighting, ParsePauseTrigger("candle-lighting"))
	require.Equal(t, PauseAtCandleLighting, ParsePauseTrigger(" Candle-Lighting "))
	require.Equal(t, PauseAtSunset, ParsePauseTrigger("shkia"))
	require.Equal(t, PauseAtSunset, ParsePauseTrigger("whatever"))
	require.Equal(t, PauseAtSunset, ParsePauseTrigger(""))

	require.Equal(t, ResumeAtHavdalah, ParseResumeTrigger("havdalah"))
	require.Equal(t, ResumeAtHavdalah, ParseResumeTrigger("HAVDALAH"))
	require.Equal(t, ResumeAtTzait, ParseResumeTrigger("tzait"))
	require.Equal(t, ResumeAtTzait, ParseResumeTrigger("rabbeinu-tam"))
}

// TestPhase checks names and the active flag.
func TestPhase(t *testing.T) {
	t.Parallel()

	require.Equal(t, "BEFORE_WINDOW", PhaseBeforeWindow.String())
	require.Equal(t, "IN_WINDOW", PhaseInWindow.String())
	require.Equal(t, "AFTER_WINDOW", PhaseAfterWindow.String())
	require.Equal(t, "UNKNOWN", Phase(42).String())

	require.True(t, Result{Phase: PhaseInWindow}.IsActive())
	require.False(t, Result{Phase: PhaseAfterWindow}.IsActive())
}
