package location

import (
	"context"
	"math"
)

// Coordinate is a WGS84 latitude/longitude pair.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Valid reports whether the coordinate is a real point on the globe.
// NaN values (e.g. from a failed parse) are invalid.
func (c Coordinate) Valid() bool {
	if math.IsNaN(c.Latitude) || math.IsNaN(c.Longitude) {
		return false
	}
	return c.Latitude >= -90 && c.Latitude <= 90 &&
		c.Longitude >= -180 && c.Longitude <= 180
}

// TruckLocation is a resolved truck position plus the contact metadata that
// travels with it.
type TruckLocation struct {
	Coordinate
	Address  string
	Phone    string
	ImageURL string
}

// Source resolves a truck's current location. A truck with no known location
// returns ok=false; that is never an error condition.
type Source interface {
	Lookup(ctx context.Context, truckID string) (*TruckLocation, bool)
}
