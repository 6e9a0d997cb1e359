package solar

import (
	"time"

	"github.com/nathan-osman/go-sunrise"
	"github.com/sixdouglas/suncalc"

	"github.com/oshokin/shabbat-check/internal/domain/zmanim"
)

// maxReferenceSkew bounds how far a reference event may sit from local noon
// before it is treated as "no event" (polar days make some engines return garbage).
const maxReferenceSkew = 36 * time.Hour

// Reference is an event pair produced by a third-party engine.
// A zero Nightfall means the engine does not compute a 6° event.
type Reference struct {
	// Engine names the library that produced the values.
	Engine string
	// Sunset is the sunset instant in the location of the query.
	Sunset time.Time
	// Nightfall is the civil dusk instant in the location of the query.
	Nightfall time.Time
}

// Referencer produces reference events for the calendar day of an instant.
type Referencer interface {
	Name() string
	Reference(coord zmanim.Coordinate, at time.Time) Reference
}

// DefaultReferencers returns every reference engine in display order.
func DefaultReferencers() []Referencer {
	return []Referencer{
		SunCalc{},
		GoSunrise{},
	}
}

// SunCalc wraps github.com/sixdouglas/suncalc, whose "sunset" uses -0.833°
// and "dusk" uses -6°, matching both zeniths.
type SunCalc struct{}

// Name identifies the engine.
func (SunCalc) Name() string {
	return "suncalc"
}

// Reference evaluates suncalc around local noon of at's calendar day.
func (s SunCalc) Reference(coord zmanim.Coordinate, at time.Time) Reference {
	noon := localNoon(at)
	times := suncalc.GetTimes(noon, coord.Latitude, coord.Longitude)

	return Reference{
		Engine:    s.Name(),
		Sunset:    sane(times["sunset"].Value, noon),
		Nightfall: sane(times["dusk"].Value, noon),
	}
}

// GoSunrise wraps github.com/nathan-osman/go-sunrise, which only reports sunrise and sunset.
type GoSunrise struct{}

// Name identifies the engine.
func (GoSunrise) Name() string {
	return "go-sunrise"
}

// Reference evaluates go-sunrise for at's calendar day.
func (g GoSunrise) Reference(coord zmanim.Coordinate, at time.Time) Reference {
	noon := localNoon(at)
	_, set := sunrise.SunriseSunset(coord.Latitude, coord.Longitude, at.Year(), at.Month(), at.Day())

	return Reference{
		Engine: g.Name(),
		Sunset: sane(set, noon),
	}
}

// localNoon returns 12:00 on at's calendar day in at's location.
func localNoon(at time.Time) time.Time {
	return time.Date(at.Year(), at.Month(), at.Day(), 12, 0, 0, 0, at.Location())
}

// sane converts v into noon's location or returns zero when v is missing or implausible.
func sane(v, noon time.Time) time.Time {
	if v.IsZero() {
		return time.Time{}
	}

	diff := v.Sub(noon)
	if diff < -maxReferenceSkew || diff > maxReferenceSkew {
		return time.Time{}
	}

	return v.In(noon.Location())
}
