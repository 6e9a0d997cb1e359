// Package solar computes the two solar events the pause window depends on.
//
// NOAA is a single-pass, closed-form implementation of the NOAA/Meeus solar
// position formulas: it returns the local clock time of sunset (zenith
// 90.833°) and nightfall (zenith 96°) for the calendar day of a given instant.
// SunCalc and GoSunrise wrap third-party engines and are used only to
// cross-check the NOAA result. Cache memoizes any Calculator per minute for
// long-running callers.
package solar
