package restaurant

import (
	"errors"
	"fmt"

	"foodcourt/internal/core/domain/model/kernel"
	"foodcourt/internal/pkg/errs"
)

// ErrRestaurantIsNotConstructed is returned when a Restaurant instance was not
// created through the NewRestaurant or RestoreRestaurant factory methods.
var ErrRestaurantIsNotConstructed = errors.New(
	"Restaurant must be created via NewRestaurant or RestoreRestaurant")

// Restaurant is the selling side of the marketplace: a named storefront owned
// by a user account, with a pickup origin used for route distance and a
// two-part delivery fee schedule.
//
// ordersCount, ratingsCount and ratingsSum are derived counters maintained
// transactionally alongside the order writes that change them. They are never
// recomputed by scanning orders.
type Restaurant struct {
	id      kernel.UUID
	ownerID kernel.UUID

	name        string
	description string

	origin kernel.GeoPoint

	fixedFee float64
	perKmFee float64

	ordersCount  int64
	ratingsCount int64
	ratingsSum   int64

	isConstructed bool
}

// NewRestaurant creates a new restaurant with zeroed counters.
//
// Requires valid identifiers, a non-empty name, a valid origin point and
// non-negative fee components.
func NewRestaurant(
	id kernel.UUID,
	ownerID kernel.UUID,
	name string,
	description string,
	origin kernel.GeoPoint,
	fixedFee float64,
	perKmFee float64,
) (*Restaurant, error) {
	r := &Restaurant{isConstructed: true}

	if err := errors.Join(
		r.setID(id),
		r.setOwnerID(ownerID),
		r.setName(name),
		r.setOrigin(origin),
		r.setFees(fixedFee, perKmFee),
	); err != nil {
		return nil, err
	}

	r.description = description
	return r, nil
}

// RestoreRestaurantParams carries every persisted attribute needed to rebuild
// a restaurant aggregate from storage.
type RestoreRestaurantParams struct {
	ID           kernel.UUID
	OwnerID      kernel.UUID
	Name         string
	Description  string
	Origin       kernel.GeoPoint
	FixedFee     float64
	PerKmFee     float64
	OrdersCount  int64
	RatingsCount int64
	RatingsSum   int64
}

// RestoreRestaurant reconstructs a restaurant aggregate from persistence.
func RestoreRestaurant(p RestoreRestaurantParams) (*Restaurant, error) {
	if err := errors.Join(
		p.ID.Validate(),
		p.OwnerID.Validate(),
		p.Origin.Validate(),
	); err != nil {
		return nil, err
	}

	return &Restaurant{
		id:            p.ID,
		ownerID:       p.OwnerID,
		name:          p.Name,
		description:   p.Description,
		origin:        p.Origin,
		fixedFee:      p.FixedFee,
		perKmFee:      p.PerKmFee,
		ordersCount:   p.OrdersCount,
		ratingsCount:  p.RatingsCount,
		ratingsSum:    p.RatingsSum,
		isConstructed: true,
	}, nil
}

// Validate ensures the Restaurant instance was properly constructed through a factory.
func (r *Restaurant) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrRestaurantIsNotConstructed
	}
	return nil
}

// IsEqual compares two restaurants by their unique identifiers.
func (r *Restaurant) IsEqual(other *Restaurant) bool {
	return other != nil && r.id.IsEqual(other.id)
}

// ID returns the restaurant's unique identifier.
func (r *Restaurant) ID() kernel.UUID {
	return r.id
}

// OwnerID returns the identifier of the owning user account.
func (r *Restaurant) OwnerID() kernel.UUID {
	return r.ownerID
}

// Name returns the storefront display name.
func (r *Restaurant) Name() string {
	return r.name
}

// Description returns the optional storefront description.
func (r *Restaurant) Description() string {
	return r.description
}

// Origin returns the pickup point used for route distance.
func (r *Restaurant) Origin() kernel.GeoPoint {
	return r.origin
}

// FixedFee returns the flat component of the delivery fee.
func (r *Restaurant) FixedFee() float64 {
	return r.fixedFee
}

// PerKmFee returns the per-kilometer component of the delivery fee.
func (r *Restaurant) PerKmFee() float64 {
	return r.perKmFee
}

// OrdersCount returns the number of orders ever placed with the restaurant.
func (r *Restaurant) OrdersCount() int64 {
	return r.ordersCount
}

// RatingsCount returns the number of ratings received.
func (r *Restaurant) RatingsCount() int64 {
	return r.ratingsCount
}

// RatingsSum returns the running sum of all rating scores.
func (r *Restaurant) RatingsSum() int64 {
	return r.ratingsSum
}

// RatingAverage returns the mean rating score, or 0 when unrated.
func (r *Restaurant) RatingAverage() float64 {
	if r.ratingsCount == 0 {
		return 0
	}
	return float64(r.ratingsSum) / float64(r.ratingsCount)
}

func (r *Restaurant) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.id = id
	return nil
}

func (r *Restaurant) setOwnerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("ownerId", err)
	}
	r.ownerID = id
	return nil
}

func (r *Restaurant) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	r.name = name
	return nil
}

func (r *Restaurant) setOrigin(origin kernel.GeoPoint) error {
	if err := origin.Validate(); err != nil {
		return err
	}
	r.origin = origin
	return nil
}

func (r *Restaurant) setFees(fixedFee, perKmFee float64) error {
	if fixedFee < 0 {
		return errs.NewValueIsInvalidErrorWithCause("fixedFee",
			fmt.Errorf("%g is negative", fixedFee))
	}
	if perKmFee < 0 {
		return errs.NewValueIsInvalidErrorWithCause("perKmFee",
			fmt.Errorf("%g is negative", perKmFee))
	}
	r.fixedFee = fixedFee
	r.perKmFee = perKmFee
	return nil
}
