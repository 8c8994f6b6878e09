package commands_test

import (
	"testing"
	"time"

	"foodcourt/internal/core/application/usecases/commands"
	"foodcourt/internal/core/domain/model/kernel"
	"foodcourt/internal/core/domain/model/order"
	"foodcourt/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func closedOrderFor(t *testing.T, customerID kernel.UUID) *order.Order {
	t.Helper()
	item, err := order.NewLineItem("Pizza", 2, 30)
	require.NoError(t, err)
	o, err := order.NewOrder(
		kernel.NewUUID(), kernel.NewUUID(), &customerID, "Maria", "maria@example.com",
		[]order.LineItem{item}, 65, nil, time.Now(),
	)
	require.NoError(t, err)
	for range 4 {
		_, err = o.Advance(time.Now())
		require.NoError(t, err)
	}
	return o
}

func TestRateOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	customerID := kernel.NewUUID()
	aggregate := closedOrderFor(t, customerID)

	cmd, err := commands.NewRateOrderCommand(aggregate.ID(), customerID, 5, "excelente")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	restaurantRepo := new(MockRestaurantRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		orderRepo.On("Update", mock.Anything, aggregate).Return(nil).Once(),
		uow.On("RestaurantRepository").Return(restaurantRepo).Once(),
		restaurantRepo.On("RegisterRating", mock.Anything, aggregate.RestaurantID(), 5).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewRateOrderCommandHandler(factory)
	rated, err := h.Handle(ctx, cmd)
	require.NoError(t, err)

	require.NotNil(t, rated.Rating())
	assert.Equal(t, 5, rated.Rating().Score())
	orderRepo.AssertExpectations(t)
	restaurantRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestRateOrderCommandHandler_Handle_ForeignOrderIsNotFound(t *testing.T) {
	ctx := t.Context()
	aggregate := closedOrderFor(t, kernel.NewUUID())
	stranger := kernel.NewUUID()

	cmd, err := commands.NewRateOrderCommand(aggregate.ID(), stranger, 5, "")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewRateOrderCommandHandler(factory)
	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	assert.Nil(t, aggregate.Rating(), "foreign rating must not mutate the order")
}

func TestRateOrderCommandHandler_Handle_SecondRatingFails(t *testing.T) {
	ctx := t.Context()
	customerID := kernel.NewUUID()
	aggregate := closedOrderFor(t, customerID)
	require.NoError(t, aggregate.Rate(4, "", time.Now()))

	cmd, err := commands.NewRateOrderCommand(aggregate.ID(), customerID, 5, "")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewRateOrderCommandHandler(factory)
	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, order.ErrOrderIsAlreadyRated)
	orderRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}
