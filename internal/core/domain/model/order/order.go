package order

import (
	"errors"
	"fmt"
	"time"

	"foodcourt/internal/core/domain/model/kernel"
	"foodcourt/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// the NewOrder or RestoreOrder factory methods.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

	// ErrOrderIsClosed is returned when an operation requires a non-terminal order,
	// such as assigning a driver to an order that was already closed.
	ErrOrderIsClosed = errors.New("order is already closed")

	// ErrOrderIsNotClosed is returned when rating an order that has not reached
	// the Closed state yet.
	ErrOrderIsNotClosed = errors.New("only closed orders can be rated")

	// ErrOrderIsAlreadyRated is returned on a second rating attempt.
	ErrOrderIsAlreadyRated = errors.New("order has already been rated")

	// ErrOrderNotAssignedToDriver is returned when a driver location update comes
	// from a caller that is not the order's assigned driver.
	ErrOrderNotAssignedToDriver = errors.New("order is not assigned to this driver")
)

// Order is the central aggregate of the marketplace: a customer's purchase from
// a restaurant, moving through the delivery lifecycle until it is closed,
// optionally rated, and finally archived into history.
//
// Invariants maintained by the aggregate:
//   - Status only ever moves forward along the lifecycle chain
//   - closedAt is stamped exactly once, when Closed is first reached
//   - driverLocation is writable only by the assigned driver
//   - a rating is attached at most once, and only after Closed
//   - archivedAt, once set, never changes
//
// Line items and customer identity fields are snapshotted at creation and
// immutable afterwards. Orders are never hard-deleted.
type Order struct {
	id           kernel.UUID
	restaurantID kernel.UUID

	// customerID is optional at the model level; the API surface requires a
	// customer session for creation.
	customerID    *kernel.UUID
	customerName  string
	customerEmail string

	lineItems []LineItem

	// total is supplied at creation and trusted as authoritative; the server
	// does not recompute it from line items.
	total float64

	status Status

	driverName     *string
	driverUserID   *kernel.UUID
	driverLocation *DriverLocation

	destination *Destination

	createdAt  time.Time
	closedAt   *time.Time
	archivedAt *time.Time

	rating  *Rating
	ratedAt *time.Time

	// version supports optimistic concurrency control in the store.
	version int64

	isConstructed bool
}

// NewOrder creates a new order in Awaiting status.
//
// Requires a valid order and restaurant identifier, at least one valid line
// item and a non-negative total. Customer identity and destination are
// optional. The line item slice is copied.
func NewOrder(
	id kernel.UUID,
	restaurantID kernel.UUID,
	customerID *kernel.UUID,
	customerName string,
	customerEmail string,
	lineItems []LineItem,
	total float64,
	destination *Destination,
	now time.Time,
) (*Order, error) {
	o := &Order{
		status:        Awaiting,
		version:       1,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setRestaurantID(restaurantID),
		o.setCustomer(customerID, customerName, customerEmail),
		o.setLineItems(lineItems),
		o.setTotal(total),
		o.setDestination(destination),
	); err != nil {
		return nil, err
	}

	o.createdAt = now
	return o, nil
}

// RestoreOrderParams carries every persisted attribute needed to rebuild an
// order aggregate from storage.
type RestoreOrderParams struct {
	ID             kernel.UUID
	RestaurantID   kernel.UUID
	CustomerID     *kernel.UUID
	CustomerName   string
	CustomerEmail  string
	LineItems      []LineItem
	Total          float64
	Status         Status
	DriverName     *string
	DriverUserID   *kernel.UUID
	DriverLocation *DriverLocation
	Destination    *Destination
	CreatedAt      time.Time
	ClosedAt       *time.Time
	ArchivedAt     *time.Time
	Rating         *Rating
	RatedAt        *time.Time
	Version        int64
}

// RestoreOrder reconstructs an order aggregate from persistence.
// Validates identifiers and the status value; trusts the remaining persisted
// state as it was produced by a validated aggregate in the first place.
func RestoreOrder(p RestoreOrderParams) (*Order, error) {
	if err := errors.Join(
		p.ID.Validate(),
		p.RestaurantID.Validate(),
		p.Status.Validate(),
	); err != nil {
		return nil, err
	}

	if p.Version < 1 {
		return nil, errs.NewVersionIsInvalidError("order version",
			fmt.Errorf("%d is not a valid version", p.Version))
	}

	return &Order{
		id:             p.ID,
		restaurantID:   p.RestaurantID,
		customerID:     p.CustomerID,
		customerName:   p.CustomerName,
		customerEmail:  p.CustomerEmail,
		lineItems:      append([]LineItem(nil), p.LineItems...),
		total:          p.Total,
		status:         p.Status,
		driverName:     p.DriverName,
		driverUserID:   p.DriverUserID,
		driverLocation: p.DriverLocation,
		destination:    p.Destination,
		createdAt:      p.CreatedAt,
		closedAt:       p.ClosedAt,
		archivedAt:     p.ArchivedAt,
		rating:         p.Rating,
		ratedAt:        p.RatedAt,
		version:        p.Version,
		isConstructed:  true,
	}, nil
}

// Validate ensures the Order instance was properly constructed through a factory.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// RestaurantID returns the identifier of the restaurant the order was placed with.
func (o *Order) RestaurantID() kernel.UUID {
	return o.restaurantID
}

// CustomerID returns the owning customer's identifier, or nil for anonymous orders.
func (o *Order) CustomerID() *kernel.UUID {
	return o.customerID
}

// CustomerName returns the customer display name snapshotted at creation.
func (o *Order) CustomerName() string {
	return o.customerName
}

// CustomerEmail returns the customer email snapshotted at creation.
func (o *Order) CustomerEmail() string {
	return o.customerEmail
}

// LineItems returns a copy of the snapshotted line items.
func (o *Order) LineItems() []LineItem {
	return append([]LineItem(nil), o.lineItems...)
}

// Total returns the order total as supplied at creation.
func (o *Order) Total() float64 {
	return o.total
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// DriverName returns the assigned driver's display name, or nil.
func (o *Order) DriverName() *string {
	return o.driverName
}

// DriverUserID returns the assigned driver's user identifier, or nil.
func (o *Order) DriverUserID() *kernel.UUID {
	return o.driverUserID
}

// DriverLocation returns the driver's last reported position, or nil.
func (o *Order) DriverLocation() *DriverLocation {
	return o.driverLocation
}

// Destination returns the delivery destination, or nil.
func (o *Order) Destination() *Destination {
	return o.destination
}

// CreatedAt returns when the order was created.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// ClosedAt returns when the order first reached Closed, or nil.
func (o *Order) ClosedAt() *time.Time {
	return o.closedAt
}

// ArchivedAt returns when the order was archived, or nil while active.
func (o *Order) ArchivedAt() *time.Time {
	return o.archivedAt
}

// Rating returns the customer's rating, or nil if not rated.
func (o *Order) Rating() *Rating {
	return o.rating
}

// RatedAt returns when the rating was submitted, or nil.
func (o *Order) RatedAt() *time.Time {
	return o.ratedAt
}

// Version returns the optimistic concurrency version as loaded from the store.
func (o *Order) Version() int64 {
	return o.version
}

// BumpVersion increments the optimistic concurrency version. Called by the
// store after a successful guarded write so the in-memory aggregate matches
// the persisted row.
func (o *Order) BumpVersion() {
	o.version++
}

// IsArchived reports whether the order has been moved to history.
func (o *Order) IsArchived() bool {
	return o.archivedAt != nil
}

// Advance moves the order one step forward in the lifecycle chain.
//
// On a Closed order it returns (false, nil): advancing past the end of the
// chain is an idempotent no-op, never an error. When the transition lands on
// Closed for the first time, closedAt is stamped with now.
//
// The returned bool reports whether the order was actually mutated, so the
// caller can skip a redundant store write.
func (o *Order) Advance(now time.Time) (bool, error) {
	if o.status == Closed {
		return false, nil
	}

	next, err := o.status.Next()
	if err != nil {
		return false, err
	}

	o.status = next
	if next == Closed && o.closedAt == nil {
		closedAt := now
		o.closedAt = &closedAt
	}

	return true, nil
}

// AssignDriver binds a driver to the order and forces status to EnRoute.
//
// Either or both of driverName and driverUserID may be provided; fields that
// are nil are left unchanged, so re-assignment can update one without
// clobbering the other. The status override is deliberate: assignment from
// Ready or an already EnRoute state is allowed. A Closed order cannot be
// re-assigned, as that would move status backward.
func (o *Order) AssignDriver(driverName *string, driverUserID *kernel.UUID) error {
	if o.status == Closed {
		return ErrOrderIsClosed
	}

	if driverUserID != nil {
		if err := driverUserID.Validate(); err != nil {
			return err
		}
		id := *driverUserID
		o.driverUserID = &id
	}
	if driverName != nil {
		name := *driverName
		o.driverName = &name
	}

	o.status = EnRoute
	return nil
}

// UpdateDriverLocation overwrites the driver's reported position.
//
// The caller must be the order's assigned driver; any other caller gets
// ErrOrderNotAssignedToDriver and the order is left unmodified. The previous
// observation is discarded - no location history is retained.
func (o *Order) UpdateDriverLocation(driverID kernel.UUID, point kernel.GeoPoint, now time.Time) error {
	if err := driverID.Validate(); err != nil {
		return err
	}
	if o.driverUserID == nil || !o.driverUserID.IsEqual(driverID) {
		return ErrOrderNotAssignedToDriver
	}

	loc, err := NewDriverLocation(point, now)
	if err != nil {
		return err
	}

	o.driverLocation = &loc
	return nil
}

// Archive moves the order into history by stamping archivedAt.
//
// Idempotent: a second call leaves archivedAt at its first-set value and
// returns false so the caller can skip the store write. This absorbs the race
// between an explicit archive action and the deferred auto-archive timer.
func (o *Order) Archive(now time.Time) bool {
	if o.archivedAt != nil {
		return false
	}

	archivedAt := now
	o.archivedAt = &archivedAt
	return true
}

// Rate attaches the customer's one-time rating to a closed order.
//
// Fails with ErrOrderIsNotClosed before the order reaches Closed and with
// ErrOrderIsAlreadyRated on a second attempt. The caller is responsible for
// registering the score against the restaurant's aggregate counters in the
// same transaction.
func (o *Order) Rate(score int, comment string, now time.Time) error {
	if o.status != Closed {
		return ErrOrderIsNotClosed
	}
	if o.ratedAt != nil {
		return ErrOrderIsAlreadyRated
	}

	rating, err := NewRating(score, comment)
	if err != nil {
		return err
	}

	ratedAt := now
	o.rating = &rating
	o.ratedAt = &ratedAt
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setRestaurantID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("restaurantId", err)
	}
	o.restaurantID = id
	return nil
}

func (o *Order) setCustomer(id *kernel.UUID, name string, email string) error {
	if id != nil {
		if err := id.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause("customerId", err)
		}
		customerID := *id
		o.customerID = &customerID
	}
	o.customerName = name
	o.customerEmail = email
	return nil
}

func (o *Order) setLineItems(items []LineItem) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("lineItems")
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	o.lineItems = append([]LineItem(nil), items...)
	return nil
}

func (o *Order) setTotal(total float64) error {
	if total < 0 {
		return errs.NewValueIsInvalidErrorWithCause("total",
			fmt.Errorf("%g is negative", total))
	}
	o.total = total
	return nil
}

func (o *Order) setDestination(destination *Destination) error {
	if destination == nil {
		return nil
	}
	if err := destination.Validate(); err != nil {
		return err
	}
	dest := *destination
	o.destination = &dest
	return nil
}
