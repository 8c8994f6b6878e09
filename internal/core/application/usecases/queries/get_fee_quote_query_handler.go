package queries

import (
	"context"
	"errors"

	"foodcourt/internal/core/domain/services"
	"foodcourt/internal/core/ports"
)

// GetFeeQuoteQueryHandler estimates delivery fees ahead of order placement.
//
// The address is geocoded and routed against the restaurant's origin through
// the geo collaborator. When the collaborator is unavailable the quote
// degrades to the fixed fee with a zero distance and the Degraded flag set,
// rather than failing the request.
type GetFeeQuoteQueryHandler struct {
	restaurantRepo ports.RestaurantRepository
	geo            ports.GeoService
	calc           services.FeeCalculator
}

// NewGetFeeQuoteQueryHandler creates a handler for fee quote queries.
func NewGetFeeQuoteQueryHandler(
	restaurantRepo ports.RestaurantRepository,
	geo ports.GeoService,
	calc services.FeeCalculator,
) GetFeeQuoteQueryHandler {
	return GetFeeQuoteQueryHandler{
		restaurantRepo: restaurantRepo,
		geo:            geo,
		calc:           calc,
	}
}

// Handle computes the fee estimate for the query's address.
func (h GetFeeQuoteQueryHandler) Handle(
	ctx context.Context,
	query GetFeeQuoteQuery,
) (GetFeeQuoteQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetFeeQuoteQueryResponse{}, err
	}

	r, err := h.restaurantRepo.Get(ctx, query.RestaurantID())
	if err != nil {
		return GetFeeQuoteQueryResponse{}, err
	}

	destination, err := h.geo.Geocode(ctx, query.Address())
	if err != nil {
		if errors.Is(err, ports.ErrUpstreamUnavailable) {
			return h.degraded(r.FixedFee())
		}
		return GetFeeQuoteQueryResponse{}, err
	}

	distanceKm, err := h.geo.DrivingDistanceKm(ctx, r.Origin(), destination)
	if err != nil {
		if errors.Is(err, ports.ErrUpstreamUnavailable) {
			return h.degraded(r.FixedFee())
		}
		return GetFeeQuoteQueryResponse{}, err
	}

	fee, err := h.calc.Calculate(r.FixedFee(), r.PerKmFee(), distanceKm)
	if err != nil {
		return GetFeeQuoteQueryResponse{}, err
	}

	lng, lat := destination.Lng(), destination.Lat()
	return GetFeeQuoteQueryResponse{
		Fee:        fee,
		DistanceKm: distanceKm,
		Lng:        &lng,
		Lat:        &lat,
	}, nil
}

func (h GetFeeQuoteQueryHandler) degraded(fixedFee float64) (GetFeeQuoteQueryResponse, error) {
	fee, err := h.calc.Calculate(fixedFee, 0, 0)
	if err != nil {
		return GetFeeQuoteQueryResponse{}, err
	}
	return GetFeeQuoteQueryResponse{Fee: fee, Degraded: true}, nil
}
