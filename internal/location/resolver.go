package location

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/oshokin/shabbat-check/internal/domain/zmanim"
	"github.com/oshokin/shabbat-check/internal/logger"
)

// Source names the strategy that produced a coordinate.
type Source string

const (
	// SourceExplicit means latitude and longitude came from the configuration.
	SourceExplicit Source = "explicit"
	// SourceTable means the zone was found in the static table.
	SourceTable Source = "table"
	// SourceUTCOffset means the longitude was derived from the zone's UTC offset.
	SourceUTCOffset Source = "utc-offset"
	// SourceDefault means nothing else worked and the fixed default was used.
	SourceDefault Source = "default"
)

const (
	// OffsetLatitude is the latitude assumed when only the UTC offset is known.
	// It is an approximation with no correction mechanism.
	OffsetLatitude = 30.0
	// degreesPerHour is how much longitude one hour of UTC offset spans.
	degreesPerHour = 15.0
)

// DefaultCoordinate is used when the zone cannot be loaded at all (New York).
//
//nolint:gochecknoglobals // Immutable value.
var DefaultCoordinate = zmanim.Coordinate{Latitude: 40.71, Longitude: -74.01}

// Request carries everything a strategy may look at.
type Request struct {
	// Timezone is the IANA zone identifier.
	Timezone string
	// Latitude is the raw configured latitude, empty when absent.
	Latitude string
	// Longitude is the raw configured longitude, empty when absent.
	Longitude string
	// At is the instant whose UTC offset drives offset-based derivation.
	At time.Time
}

// Resolution is a coordinate together with the strategy that produced it.
type Resolution struct {
	zmanim.Coordinate

	// Source is the strategy that won.
	Source Source
}

// Strategy is one step of the fallback chain.
type Strategy interface {
	// Source names the strategy.
	Source() Source
	// Resolve returns a coordinate and true, or false to let the next strategy try.
	Resolve(req *Request) (zmanim.Coordinate, bool)
}

// Resolver walks an ordered list of strategies.
type Resolver struct {
	// strategies are tried in order, first success wins.
	strategies []Strategy
}

// NewResolver creates a resolver over the given strategies, or the default chain when none are given.
func NewResolver(strategies ...Strategy) *Resolver {
	if len(strategies) == 0 {
		strategies = DefaultStrategies()
	}

	return &Resolver{
		strategies: strategies,
	}
}

// DefaultStrategies returns explicit → table → UTC offset → fixed default.
func DefaultStrategies() []Strategy {
	return []Strategy{
		Explicit{},
		Table{},
		UTCOffset{},
		Default{},
	}
}

// Resolve returns the first coordinate any strategy produces.
// If every strategy declines, DefaultCoordinate is returned.
func (r *Resolver) Resolve(ctx context.Context, req *Request) Resolution {
	for _, s := range r.strategies {
		coord, ok := s.Resolve(req)
		if !ok {
			logger.DebugKV(ctx, "Location strategy declined", "strategy", s.Source(), "timezone", req.Timezone)

			continue
		}

		res := Resolution{Coordinate: coord, Source: s.Source()}

		switch res.Source {
		case SourceUTCOffset, SourceDefault:
			logger.WarnKV(ctx, "Approximate coordinates in use, set latitude/longitude for accuracy",
				"timezone", req.Timezone, "source", res.Source, "coordinate", coord.String())
		default:
			logger.DebugKV(ctx, "Location resolved", "source", res.Source, "coordinate", coord.String())
		}

		return res
	}

	return Resolution{Coordinate: DefaultCoordinate, Source: SourceDefault}
}

// Explicit uses configured coordinates when both parse as finite, in-range floats.
type Explicit struct{}

// Source implements Strategy.
func (Explicit) Source() Source { return SourceExplicit }

// Resolve implements Strategy.
func (Explicit) Resolve(req *Request) (zmanim.Coordinate, bool) {
	if req.Latitude == "" || req.Longitude == "" {
		return zmanim.Coordinate{}, false
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(req.Latitude), 64)
	if err != nil {
		return zmanim.Coordinate{}, false
	}

	lon, err := strconv.ParseFloat(strings.TrimSpace(req.Longitude), 64)
	if err != nil {
		return zmanim.Coordinate{}, false
	}

	coord := zmanim.Coordinate{Latitude: lat, Longitude: lon}

	return coord, coord.Valid()
}

// Table looks the zone up in the static city table.
type Table struct{}

// Source implements Strategy.
func (Table) Source() Source { return SourceTable }

// Resolve implements Strategy.
func (Table) Resolve(req *Request) (zmanim.Coordinate, bool) {
	return Known(req.Timezone)
}

// UTCOffset derives longitude from the zone's offset at req.At, with latitude fixed at OffsetLatitude.
type UTCOffset struct{}

// Source implements Strategy.
func (UTCOffset) Source() Source { return SourceUTCOffset }

// Resolve implements Strategy.
func (UTCOffset) Resolve(req *Request) (zmanim.Coordinate, bool) {
	loc, err := time.LoadLocation(req.Timezone)
	if err != nil {
		return zmanim.Coordinate{}, false
	}

	_, offsetSeconds := req.At.In(loc).Zone()
	offsetHours := float64(offsetSeconds) / 3600

	return zmanim.Coordinate{
		Latitude:  OffsetLatitude,
		Longitude: zmanim.NormalizeLongitude(offsetHours * degreesPerHour),
	}, true
}

// Default always succeeds with DefaultCoordinate.
type Default struct{}

// Source implements Strategy.
func (Default) Source() Source { return SourceDefault }

// Resolve implements Strategy.
func (Default) Resolve(*Request) (zmanim.Coordinate, bool) {
	return DefaultCoordinate, true
}
