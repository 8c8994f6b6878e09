package queries_test

import (
	"context"
	"errors"
	"testing"

	"foodcourt/internal/core/application/usecases/queries"
	"foodcourt/internal/core/domain/model/kernel"
	"foodcourt/internal/core/domain/model/restaurant"
	"foodcourt/internal/core/domain/services"
	"foodcourt/internal/core/ports"
	"foodcourt/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRestaurantReader struct{ mock.Mock }

func (m *MockRestaurantReader) Add(ctx context.Context, r *restaurant.Restaurant) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockRestaurantReader) Update(ctx context.Context, r *restaurant.Restaurant) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockRestaurantReader) Get(ctx context.Context, id kernel.UUID) (*restaurant.Restaurant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*restaurant.Restaurant), args.Error(1)
}

func (m *MockRestaurantReader) GetByOwner(ctx context.Context, ownerID kernel.UUID) (*restaurant.Restaurant, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*restaurant.Restaurant), args.Error(1)
}

func (m *MockRestaurantReader) IncrementOrdersCount(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRestaurantReader) RegisterRating(ctx context.Context, id kernel.UUID, score int) error {
	args := m.Called(ctx, id, score)
	return args.Error(0)
}

type MockGeoService struct{ mock.Mock }

func (m *MockGeoService) Geocode(ctx context.Context, address string) (kernel.GeoPoint, error) {
	args := m.Called(ctx, address)
	return args.Get(0).(kernel.GeoPoint), args.Error(1)
}

func (m *MockGeoService) DrivingDistanceKm(ctx context.Context, from, to kernel.GeoPoint) (float64, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).(float64), args.Error(1)
}

func quoteRestaurant(t *testing.T) *restaurant.Restaurant {
	t.Helper()
	origin, err := kernel.NewGeoPoint(-46.63, -23.55)
	require.NoError(t, err)
	r, err := restaurant.NewRestaurant(
		kernel.NewUUID(), kernel.NewUUID(), "Pizzaria", "", origin, 5, 2)
	require.NoError(t, err)
	return r
}

func TestGetFeeQuoteQueryHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	r := quoteRestaurant(t)
	query, err := queries.NewGetFeeQuoteQuery(r.ID(), "Av. Paulista 1000")
	require.NoError(t, err)

	destination, err := kernel.NewGeoPoint(-46.65, -23.56)
	require.NoError(t, err)

	restaurantRepo := new(MockRestaurantReader)
	geo := new(MockGeoService)
	restaurantRepo.On("Get", mock.Anything, r.ID()).Return(r, nil).Once()
	geo.On("Geocode", mock.Anything, "Av. Paulista 1000").Return(destination, nil).Once()
	geo.On("DrivingDistanceKm", mock.Anything, r.Origin(), destination).Return(3.5, nil).Once()

	h := queries.NewGetFeeQuoteQueryHandler(restaurantRepo, geo, services.NewFeeCalculator())
	resp, err := h.Handle(ctx, query)
	require.NoError(t, err)

	assert.Equal(t, 12.00, resp.Fee)
	assert.Equal(t, 3.5, resp.DistanceKm)
	assert.False(t, resp.Degraded)
	require.NotNil(t, resp.Lng)
	assert.Equal(t, -46.65, *resp.Lng)
	geo.AssertExpectations(t)
}

func TestGetFeeQuoteQueryHandler_Handle_DegradesOnGeocodeFailure(t *testing.T) {
	ctx := t.Context()
	r := quoteRestaurant(t)
	query, err := queries.NewGetFeeQuoteQuery(r.ID(), "Av. Paulista 1000")
	require.NoError(t, err)

	restaurantRepo := new(MockRestaurantReader)
	geo := new(MockGeoService)
	restaurantRepo.On("Get", mock.Anything, r.ID()).Return(r, nil).Once()
	geo.On("Geocode", mock.Anything, "Av. Paulista 1000").
		Return(kernel.GeoPoint{}, ports.ErrUpstreamUnavailable).Once()

	h := queries.NewGetFeeQuoteQueryHandler(restaurantRepo, geo, services.NewFeeCalculator())
	resp, err := h.Handle(ctx, query)
	require.NoError(t, err)

	assert.Equal(t, 5.00, resp.Fee, "fixed fee only")
	assert.Zero(t, resp.DistanceKm)
	assert.True(t, resp.Degraded)
	assert.Nil(t, resp.Lng)
	geo.AssertNotCalled(t, "DrivingDistanceKm", mock.Anything, mock.Anything, mock.Anything)
}

func TestGetFeeQuoteQueryHandler_Handle_DegradesOnRoutingFailure(t *testing.T) {
	ctx := t.Context()
	r := quoteRestaurant(t)
	query, err := queries.NewGetFeeQuoteQuery(r.ID(), "Av. Paulista 1000")
	require.NoError(t, err)

	destination, err := kernel.NewGeoPoint(-46.65, -23.56)
	require.NoError(t, err)

	restaurantRepo := new(MockRestaurantReader)
	geo := new(MockGeoService)
	restaurantRepo.On("Get", mock.Anything, r.ID()).Return(r, nil).Once()
	geo.On("Geocode", mock.Anything, "Av. Paulista 1000").Return(destination, nil).Once()
	geo.On("DrivingDistanceKm", mock.Anything, r.Origin(), destination).
		Return(0.0, ports.ErrUpstreamUnavailable).Once()

	h := queries.NewGetFeeQuoteQueryHandler(restaurantRepo, geo, services.NewFeeCalculator())
	resp, err := h.Handle(ctx, query)
	require.NoError(t, err)
	assert.True(t, resp.Degraded)
	assert.Equal(t, 5.00, resp.Fee)
}

func TestGetFeeQuoteQueryHandler_Handle_UnknownRestaurant(t *testing.T) {
	ctx := t.Context()
	restaurantID := kernel.NewUUID()
	query, err := queries.NewGetFeeQuoteQuery(restaurantID, "Av. Paulista 1000")
	require.NoError(t, err)

	restaurantRepo := new(MockRestaurantReader)
	geo := new(MockGeoService)
	restaurantRepo.On("Get", mock.Anything, restaurantID).
		Return(nil, errs.NewObjectNotFoundError("restaurantId", restaurantID)).Once()

	h := queries.NewGetFeeQuoteQueryHandler(restaurantRepo, geo, services.NewFeeCalculator())
	_, err = h.Handle(ctx, query)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestGetFeeQuoteQueryHandler_Handle_OtherGeoErrorsPropagate(t *testing.T) {
	ctx := t.Context()
	r := quoteRestaurant(t)
	query, err := queries.NewGetFeeQuoteQuery(r.ID(), "Av. Paulista 1000")
	require.NoError(t, err)

	restaurantRepo := new(MockRestaurantReader)
	geo := new(MockGeoService)
	restaurantRepo.On("Get", mock.Anything, r.ID()).Return(r, nil).Once()
	geo.On("Geocode", mock.Anything, "Av. Paulista 1000").
		Return(kernel.GeoPoint{}, errors.New("malformed response")).Once()

	h := queries.NewGetFeeQuoteQueryHandler(restaurantRepo, geo, services.NewFeeCalculator())
	_, err = h.Handle(ctx, query)
	require.Error(t, err)
}

func TestNewGetFeeQuoteQuery_Validation(t *testing.T) {
	_, err := queries.NewGetFeeQuoteQuery(kernel.UUID{}, "Av. Paulista 1000")
	require.Error(t, err)

	_, err = queries.NewGetFeeQuoteQuery(kernel.NewUUID(), "")
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}
