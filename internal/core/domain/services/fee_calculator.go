package services

import (
	"fmt"
	"math"

	"foodcourt/internal/pkg/errs"
)

// FeeCalculator is a domain service computing the delivery fee for an order
// from a restaurant's fee schedule and the driving distance to the customer.
//
// Business rules:
//   - fee = fixedFee + perKmFee * distanceKm, rounded to 2 decimal places
//   - All three inputs must be non-negative
//   - A zero distance yields the fixed fee alone; this is also the degraded
//     fallback when the routing collaborator is unavailable
//
// Example usage:
//
//	calc := NewFeeCalculator()
//	fee, err := calc.Calculate(5, 2, 3.5)
//	// fee == 12.00
type FeeCalculator struct{}

// NewFeeCalculator creates a new FeeCalculator instance.
func NewFeeCalculator() FeeCalculator {
	return FeeCalculator{}
}

// Calculate computes the rounded delivery fee.
//
// Returns a validation error when any input is negative.
func (FeeCalculator) Calculate(fixedFee, perKmFee, distanceKm float64) (float64, error) {
	if fixedFee < 0 {
		return 0, errs.NewValueIsInvalidErrorWithCause("fixedFee",
			fmt.Errorf("%g is negative", fixedFee))
	}
	if perKmFee < 0 {
		return 0, errs.NewValueIsInvalidErrorWithCause("perKmFee",
			fmt.Errorf("%g is negative", perKmFee))
	}
	if distanceKm < 0 {
		return 0, errs.NewValueIsInvalidErrorWithCause("distanceKm",
			fmt.Errorf("%g is negative", distanceKm))
	}

	return math.Round((fixedFee+perKmFee*distanceKm)*100) / 100, nil
}
