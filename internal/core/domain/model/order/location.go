package order

import (
	"time"

	"foodcourt/internal/core/domain/model/kernel"
	"foodcourt/internal/pkg/errs"
	"foodcourt/internal/pkg/guard"
)

// ErrDestinationIsNotConstructed is returned when a Destination was not created
// via NewDestination.
var ErrDestinationIsNotConstructed = errs.NewValueIsRequiredError(
	"destination must be created via NewDestination constructor")

// Destination is the delivery target of an order: a geocoded point plus the
// human-readable address label it was resolved from. Fixed at order creation.
type Destination struct { //nolint:recvcheck //using for validation
	point kernel.GeoPoint
	label string

	guard guard.ConstructorGuard
}

// NewDestination creates a validated destination. The label is optional.
func NewDestination(point kernel.GeoPoint, label string) (Destination, error) {
	if err := point.Validate(); err != nil {
		return Destination{}, err
	}

	return Destination{
		point: point,
		label: label,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate checks that the destination was created through the constructor.
func (d Destination) Validate() error {
	return d.guard.Validate(ErrDestinationIsNotConstructed)
}

// Point returns the geocoded delivery coordinates.
func (d Destination) Point() kernel.GeoPoint {
	return d.point
}

// Label returns the human-readable address label.
func (d Destination) Label() string {
	return d.label
}

// ErrDriverLocationIsNotConstructed is returned when a DriverLocation was not
// created via NewDriverLocation.
var ErrDriverLocationIsNotConstructed = errs.NewValueIsRequiredError(
	"driver location must be created via NewDriverLocation constructor")

// DriverLocation is the last reported position of the assigned driver.
// It is overwritten on every update; no history is retained.
type DriverLocation struct { //nolint:recvcheck //using for validation
	point      kernel.GeoPoint
	observedAt time.Time

	guard guard.ConstructorGuard
}

// NewDriverLocation creates a validated driver location observation.
func NewDriverLocation(point kernel.GeoPoint, observedAt time.Time) (DriverLocation, error) {
	if err := point.Validate(); err != nil {
		return DriverLocation{}, err
	}
	if observedAt.IsZero() {
		return DriverLocation{}, errs.NewValueIsRequiredError("observedAt")
	}

	return DriverLocation{
		point:      point,
		observedAt: observedAt,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate checks that the driver location was created through the constructor.
func (l DriverLocation) Validate() error {
	return l.guard.Validate(ErrDriverLocationIsNotConstructed)
}

// Point returns the reported coordinates.
func (l DriverLocation) Point() kernel.GeoPoint {
	return l.point
}

// ObservedAt returns when the position was reported.
func (l DriverLocation) ObservedAt() time.Time {
	return l.observedAt
}
