package order

import (
	"fmt"

	"foodcourt/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a strictly forward-moving state machine:
//
//	Awaiting ──> Preparing ──> Ready ──> EnRoute ──> Closed
//
// Closed is terminal. Advancing a Closed order is an idempotent no-op,
// never an error. Transitions are defined by an explicit table rather than
// positional arithmetic, so an illegal state can never be produced by
// stepping past the end of a list.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Awaiting is the initial status of a freshly created order,
	// waiting for the restaurant to start preparing it.
	Awaiting

	// Preparing indicates the restaurant is preparing the order.
	Preparing

	// Ready indicates the order is ready for pickup by a driver.
	Ready

	// EnRoute indicates a driver is delivering the order.
	EnRoute

	// Closed indicates the order was delivered. This is the terminal state.
	Closed
)

// getStatusStrings returns a map of Status values to their wire representations.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "UNKNOWN",
		Awaiting:  "AWAITING",
		Preparing: "PREPARING",
		Ready:     "READY",
		EnRoute:   "EN_ROUTE",
		Closed:    "CLOSED",
	}
}

// getNextStatuses returns the explicit transition table for Advance.
// Closed maps to itself: advancing past the end of the chain is a no-op.
func getNextStatuses() map[Status]Status {
	return map[Status]Status{
		Awaiting:  Preparing,
		Preparing: Ready,
		Ready:     EnRoute,
		EnRoute:   Closed,
		Closed:    Closed,
	}
}

// Validate checks if the Status value is one of the five named states.
// Unknown (0) and any other values are invalid.
func (s Status) Validate() error {
	if s < Awaiting || s > Closed {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire name of the status ("AWAITING", "PREPARING", "READY",
// "EN_ROUTE", "CLOSED"), or "UNKNOWN" for invalid values.
// Implements fmt.Stringer and is safe to call on any Status value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// StatusFromString parses a wire status name back into a Status value.
// Returns an error for names outside the five valid states.
func StatusFromString(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if str == s && status != Unknown {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid",
		fmt.Errorf("%q is not a valid status name", s))
}

// Next returns the status that follows s in the lifecycle chain.
//
// Valid transitions:
//   - Awaiting -> Preparing
//   - Preparing -> Ready
//   - Ready -> EnRoute
//   - EnRoute -> Closed
//   - Closed -> Closed (idempotent tail, no error)
//
// Returns an error only for Unknown or out-of-range values.
func (s Status) Next() (Status, error) {
	next, ok := getNextStatuses()[s]
	if !ok {
		return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%s has no next status", s.String()))
	}
	return next, nil
}

// Before reports whether s precedes other in the lifecycle ordering.
// Used to enforce that status values observed over time never move backward.
func (s Status) Before(other Status) bool {
	return s < other
}
