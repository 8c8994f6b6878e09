package queries

import (
	"errors"

	"foodcourt/internal/core/domain/model/kernel"
	"foodcourt/internal/pkg/errs"
	"foodcourt/internal/pkg/guard"
)

// ErrGetDriverOrdersQueryIsNotConstructed is returned when a
// GetDriverOrdersQuery was not created via NewGetDriverOrdersQuery.
var ErrGetDriverOrdersQueryIsNotConstructed = errors.New(
	"GetDriverOrdersQuery must be created via NewGetDriverOrdersQuery constructor",
)

// GetDriverOrdersQuery retrieves the orders currently assigned to a driver in
// Ready or EnRoute status.
type GetDriverOrdersQuery struct { //nolint:recvcheck //using for validation
	driverUserID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetDriverOrdersQuery creates a query for a driver's worklist.
func NewGetDriverOrdersQuery(driverUserID kernel.UUID) (GetDriverOrdersQuery, error) {
	if err := driverUserID.Validate(); err != nil {
		return GetDriverOrdersQuery{}, errs.NewValueIsInvalidErrorWithCause("driverUserId", err)
	}

	return GetDriverOrdersQuery{
		driverUserID: driverUserID,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetDriverOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetDriverOrdersQueryIsNotConstructed)
}

// DriverUserID returns the calling driver's identifier.
func (q GetDriverOrdersQuery) DriverUserID() kernel.UUID {
	return q.driverUserID
}
