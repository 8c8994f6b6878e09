package kernel

import (
	"fmt"

	"foodcourt/internal/pkg/errs"
	"foodcourt/internal/pkg/guard"
)

const (
	// LongitudeMin is the minimum valid longitude in degrees.
	LongitudeMin = -180.0
	// LongitudeMax is the maximum valid longitude in degrees.
	LongitudeMax = 180.0
	// LatitudeMin is the minimum valid latitude in degrees.
	LatitudeMin = -90.0
	// LatitudeMax is the maximum valid latitude in degrees.
	LatitudeMax = 90.0
)

// ErrGeoPointIsNotConstructed is returned when attempting to use an improperly
// initialized GeoPoint. GeoPoints must be created via the NewGeoPoint constructor.
var ErrGeoPointIsNotConstructed = errs.NewValueIsRequiredError(
	"geo point must be created via NewGeoPoint constructor")

// GeoPoint is an immutable WGS84 coordinate pair (longitude, latitude) in degrees.
// It is used for restaurant origins, order destinations and live driver positions.
// The zero value is invalid and fails validation - use the constructor.
//
// Example:
//
//	point, err := kernel.NewGeoPoint(-46.6333, -23.5505)
//	if err != nil {
//	    // handle out-of-range coordinates
//	}
type GeoPoint struct { //nolint:recvcheck //using for validation
	lng   float64
	lat   float64
	guard guard.ConstructorGuard
}

// NewGeoPoint creates a GeoPoint with the given longitude and latitude.
// Longitude must be within [-180, 180] and latitude within [-90, 90],
// otherwise a ValueIsOutOfRangeError is returned.
func NewGeoPoint(lng float64, lat float64) (GeoPoint, error) {
	point := GeoPoint{
		guard: guard.NewConstructorGuard(),
	}

	if lng < LongitudeMin || lng > LongitudeMax {
		return GeoPoint{}, errs.NewValueIsOutOfRangeError("lng", lng, LongitudeMin, LongitudeMax)
	}
	if lat < LatitudeMin || lat > LatitudeMax {
		return GeoPoint{}, errs.NewValueIsOutOfRangeError("lat", lat, LatitudeMin, LatitudeMax)
	}

	point.lng = lng
	point.lat = lat
	return point, nil
}

// Validate checks that the GeoPoint was created through the constructor.
func (p GeoPoint) Validate() error {
	return p.guard.Validate(ErrGeoPointIsNotConstructed)
}

// Lng returns the longitude in degrees.
func (p GeoPoint) Lng() float64 {
	return p.lng
}

// Lat returns the latitude in degrees.
func (p GeoPoint) Lat() float64 {
	return p.lat
}

// IsEqual compares two points by exact coordinate equality.
func (p GeoPoint) IsEqual(other GeoPoint) bool {
	return p.lng == other.lng && p.lat == other.lat
}

// String returns a "lng,lat" representation suitable for logs and routing URLs.
func (p GeoPoint) String() string {
	return fmt.Sprintf("%g,%g", p.lng, p.lat)
}
