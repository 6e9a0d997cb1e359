package location

import "github.com/oshokin/shabbat-check/internal/domain/zmanim"

// zoneCoordinates maps well-known IANA zones to a representative city.
//
//nolint:gochecknoglobals // Read-only lookup table.
var zoneCoordinates = map[string]zmanim.Coordinate{
	"America/New_York":    {Latitude: 40.71, Longitude: -74.01},
	"America/Chicago":     {Latitude: 41.88, Longitude: -87.63},
	"America/Denver":      {Latitude: 39.74, Longitude: -104.99},
	"America/Los_Angeles": {Latitude: 34.05, Longitude: -118.24},
	"America/Phoenix":     {Latitude: 33.45, Longitude: -112.07},
	"America/Detroit":     {Latitude: 42.33, Longitude: -83.05},
	"America/Toronto":     {Latitude: 43.65, Longitude: -79.38},
	"America/Vancouver":   {Latitude: 49.28, Longitude: -123.12},
	"America/Mexico_City": {Latitude: 19.43, Longitude: -99.13},
	"America/Sao_Paulo":   {Latitude: -23.55, Longitude: -46.63},
	"Europe/London":       {Latitude: 51.51, Longitude: -0.13},
	"Europe/Paris":        {Latitude: 48.86, Longitude: 2.35},
	"Europe/Berlin":       {Latitude: 52.52, Longitude: 13.41},
	"Europe/Amsterdam":    {Latitude: 52.37, Longitude: 4.89},
	"Asia/Jerusalem":      {Latitude: 31.78, Longitude: 35.22},
	"Asia/Tel_Aviv":       {Latitude: 32.09, Longitude: 34.78},
	"Australia/Sydney":    {Latitude: -33.87, Longitude: 151.21},
	"Australia/Melbourne": {Latitude: -37.81, Longitude: 144.96},
	"Pacific/Auckland":    {Latitude: -36.85, Longitude: 174.76},
	"UTC":                 {Latitude: 51.51, Longitude: 0.0},
}

// Known reports the table coordinate for zone, if listed.
func Known(zone string) (zmanim.Coordinate, bool) {
	c, ok := zoneCoordinates[zone]

	return c, ok
}
