package ports

import (
	"context"
	"errors"

	"foodcourt/internal/core/domain/model/kernel"
)

// ErrUpstreamUnavailable is returned by outbound collaborators when the remote
// service cannot be reached within the configured budget. Callers on the quote
// path degrade to a fixed-fee-only estimate instead of failing the request.
var ErrUpstreamUnavailable = errors.New("upstream service unavailable")

// GeoService resolves addresses to coordinates and measures driving distance.
// Implementations must honor context deadlines; a failed call yields
// ErrUpstreamUnavailable.
type GeoService interface {
	// Geocode resolves a free-form address to a coordinate point.
	Geocode(ctx context.Context, address string) (kernel.GeoPoint, error)

	// DrivingDistanceKm returns the driving distance between two points
	// in kilometers.
	DrivingDistanceKm(ctx context.Context, from, to kernel.GeoPoint) (float64, error)
}
