// Package location turns a timezone identifier and optional explicit
// coordinates into a concrete Coordinate.
//
// Resolution is an ordered chain of strategies, tried in turn until one
// succeeds: explicit coordinates, a static zone table, a longitude derived
// from the zone's current UTC offset, and finally a fixed default. The chain
// never fails; accuracy degrades instead.
package location
