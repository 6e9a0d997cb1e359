package solar

import (
	"math"
	"time"

	"github.com/oshokin/shabbat-check/internal/domain/zmanim"
)

const (
	// SunsetZenith accounts for refraction and the apparent solar radius.
	SunsetZenith = 90.833
	// NightfallZenith is the sun 6° below the horizon.
	NightfallZenith = 96.0

	// unixEpochJulianDay is the Julian day of 1970-01-01T00:00:00Z.
	unixEpochJulianDay = 2440587.5
	// j2000JulianDay is the Julian day of the J2000.0 epoch.
	j2000JulianDay = 2451545.0
	// daysPerJulianCentury is the length of a Julian century.
	daysPerJulianCentury = 36525.0
	// secondsPerDay converts Unix seconds into days.
	secondsPerDay = 86400.0
	// minutesPerDay converts minutes into a day fraction.
	minutesPerDay = 1440.0
	// minutesPerDegree is how long the sun takes to move one degree of hour angle.
	minutesPerDegree = 4.0
)

// Times holds the clock times of both events for one calendar day.
type Times struct {
	// Sunset is the sunset-equivalent event.
	Sunset zmanim.TimeOfDay
	// Nightfall is the nightfall-equivalent event.
	Nightfall zmanim.TimeOfDay
}

// Position is the part of the solar geometry that does not depend on the observer.
type Position struct {
	// Declination of the sun in degrees.
	Declination float64
	// EquationOfTime in minutes.
	EquationOfTime float64
}

// NOAA is the closed-form solar calculator.
type NOAA struct{}

// Name identifies the engine in cross-check output.
func (NOAA) Name() string {
	return "noaa"
}

// Compute returns sunset and nightfall for the calendar day of at, as seen from coord.
// The UTC offset of at is used for the local clock, so at must already be in the
// target location for daylight saving to be honored.
func (NOAA) Compute(coord zmanim.Coordinate, at time.Time) Times {
	_, offsetSeconds := at.Zone()
	offsetMinutes := float64(offsetSeconds) / 60

	pos := PositionAt(JulianDay(at))

	noon := (720 - minutesPerDegree*coord.Longitude - pos.EquationOfTime + offsetMinutes) / minutesPerDay

	sunset := noon + HourAngle(coord.Latitude, pos.Declination, SunsetZenith)*minutesPerDegree/minutesPerDay
	nightfall := noon + HourAngle(coord.Latitude, pos.Declination, NightfallZenith)*minutesPerDegree/minutesPerDay

	return Times{
		Sunset:    zmanim.TimeOfDayFromFraction(sunset),
		Nightfall: zmanim.TimeOfDayFromFraction(nightfall),
	}
}

// JulianDay converts an instant into a fractional Julian day.
func JulianDay(t time.Time) float64 {
	return float64(t.Unix())/secondsPerDay + float64(t.Nanosecond())/(secondsPerDay*1e9) + unixEpochJulianDay
}

// PositionAt evaluates solar declination and the equation of time at a Julian day.
func PositionAt(julianDay float64) Position {
	jc := (julianDay - j2000JulianDay) / daysPerJulianCentury

	meanAnomaly := 357.52911 + jc*(35999.05029-0.0001537*jc)
	meanLongitude := math.Mod(280.46646+jc*(36000.76983+jc*0.0003032), 360)
	eccentricity := 0.016708634 - jc*(0.000042037+0.0001537*jc)

	meanObliquity := 23 + (26+(21.448-jc*(46.815+jc*(0.00059-jc*0.001813)))/60)/60
	omega := 125.04 - 1934.136*jc
	obliquity := meanObliquity + 0.00256*cosd(omega)

	y := math.Pow(tand(obliquity/2), 2)

	center := sind(meanAnomaly)*(1.914602-jc*(0.004817+0.000014*jc)) +
		sind(2*meanAnomaly)*(0.019993-0.000101*jc) +
		sind(3*meanAnomaly)*0.000289

	trueLongitude := meanLongitude + center
	apparentLongitude := trueLongitude - 0.00569 - 0.00478*sind(omega)

	declination := degrees(math.Asin(sind(obliquity) * sind(apparentLongitude)))

	eqTime := 4 * degrees(
		y*sind(2*meanLongitude)-
			2*eccentricity*sind(meanAnomaly)+
			4*eccentricity*y*sind(meanAnomaly)*cosd(2*meanLongitude)-
			0.5*y*y*sind(4*meanLongitude)-
			1.25*eccentricity*eccentricity*sind(2*meanAnomaly),
	)

	return Position{
		Declination:    declination,
		EquationOfTime: eqTime,
	}
}

// HourAngle returns the hour angle in degrees at which the sun reaches zenith.
// The cosine argument is clamped to [-1, 1]: under midnight sun the result is 180°,
// under polar night it is 0°.
func HourAngle(latitude, declination, zenith float64) float64 {
	cosHA := (cosd(zenith) - sind(latitude)*sind(declination)) / (cosd(latitude) * cosd(declination))

	switch {
	case math.IsNaN(cosHA):
		cosHA = 1
	case cosHA > 1:
		cosHA = 1
	case cosHA < -1:
		cosHA = -1
	}

	return degrees(math.Acos(cosHA))
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }

func degrees(rad float64) float64 { return rad * 180 / math.Pi }

func sind(deg float64) float64 { return math.Sin(radians(deg)) }

func cosd(deg float64) float64 { return math.Cos(radians(deg)) }

func tand(deg float64) float64 { return math.Tan(radians(deg)) }
