package zmanim

import "strings"

// PauseTrigger selects which event opens the window.
type PauseTrigger string

const (
	// PauseAtSunset opens the window at sunset (shkia).
	PauseAtSunset PauseTrigger = "shkia"
	// PauseAtCandleLighting opens the window a fixed offset before sunset.
	PauseAtCandleLighting PauseTrigger = "candle-lighting"
)

// ParsePauseTrigger maps a configured value to a trigger.
// Only "candle-lighting" is recognized, in any case; everything else means sunset.
func ParsePauseTrigger(s string) PauseTrigger {
	if strings.EqualFold(strings.TrimSpace(s), string(PauseAtCandleLighting)) {
		return PauseAtCandleLighting
	}

	return PauseAtSunset
}

// ResumeTrigger selects which event closes the window.
type ResumeTrigger string

const (
	// ResumeAtTzait closes the window at nightfall.
	ResumeAtTzait ResumeTrigger = "tzait"
	// ResumeAtHavdalah is accepted as a name but resolves to nightfall as well.
	ResumeAtHavdalah ResumeTrigger = "havdalah"
)

// ParseResumeTrigger maps a configured value to a trigger.
// Unknown values fall back to tzait; every trigger resolves to nightfall.
func ParseResumeTrigger(s string) ResumeTrigger {
	if strings.EqualFold(strings.TrimSpace(s), string(ResumeAtHavdalah)) {
		return ResumeAtHavdalah
	}

	return ResumeAtTzait
}
