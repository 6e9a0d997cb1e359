package window

import (
	"time"

	"github.com/oshokin/shabbat-check/internal/domain/zmanim"
	"github.com/oshokin/shabbat-check/internal/solar"
)

const (
	// CandleLightingOffset is how long before sunset candle lighting falls.
	CandleLightingOffset = 18 * time.Minute
	// PauseDay is the weekday the window opens.
	PauseDay = time.Friday
	// ResumeDay is the weekday the window closes.
	ResumeDay = time.Saturday
)

// Input is everything Evaluate needs.
type Input struct {
	// Now is the evaluated instant in the configured location.
	Now time.Time
	// Pause selects the opening event.
	Pause zmanim.PauseTrigger
	// Resume selects the closing event.
	Resume zmanim.ResumeTrigger
	// Times are today's solar events.
	Times solar.Times
}

// CandleLighting returns sunset minus CandleLightingOffset.
func CandleLighting(sunset zmanim.TimeOfDay) zmanim.TimeOfDay {
	return sunset.Add(-CandleLightingOffset)
}

// PauseAt picks the opening boundary for a trigger.
func PauseAt(trigger zmanim.PauseTrigger, sunset zmanim.TimeOfDay) zmanim.TimeOfDay {
	if trigger == zmanim.PauseAtCandleLighting {
		return CandleLighting(sunset)
	}

	return sunset
}

// ResumeAt picks the closing boundary. Every trigger resolves to nightfall.
func ResumeAt(_ zmanim.ResumeTrigger, nightfall zmanim.TimeOfDay) zmanim.TimeOfDay {
	return nightfall
}

// Evaluate computes both boundaries and where in the week Now falls.
func Evaluate(in *Input) zmanim.Result {
	result := zmanim.Result{
		PauseAt:  PauseAt(in.Pause, in.Times.Sunset),
		ResumeAt: ResumeAt(in.Resume, in.Times.Nightfall),
		Phase:    zmanim.PhaseBeforeWindow,
	}

	// Compare full instants so seconds count, exactly like the boundaries.
	switch in.Now.Weekday() {
	case PauseDay:
		if !in.Now.Before(result.PauseAt.On(in.Now)) {
			result.Phase = zmanim.PhaseInWindow
		}
	case ResumeDay:
		if in.Now.Before(result.ResumeAt.On(in.Now)) {
			result.Phase = zmanim.PhaseInWindow
		} else {
			result.Phase = zmanim.PhaseAfterWindow
		}
	default:
		// Sunday through Thursday.
	}

	return result
}
