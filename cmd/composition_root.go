package cmd

import (
	"foodcourt/internal/adapters/out/postgres"
	"foodcourt/internal/core/application/events"
	"foodcourt/internal/core/application/usecases/commands"
	"foodcourt/internal/core/application/usecases/queries"
	"foodcourt/internal/core/domain/services"
	"foodcourt/internal/core/ports"

	"gorm.io/gorm"
)

// CompositionRoot wires adapters into use case handlers. The publisher is
// the process-wide event fan-out built in main; every handler that emits
// events shares it.
type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory ports.UnitOfWorkFactory
	publisher  events.Publisher
	geoService ports.GeoService
}

// NewCompositionRoot creates the composition root for the given adapters.
func NewCompositionRoot(
	_ Config,
	gormDB *gorm.DB,
	publisher events.Publisher,
	geoService ports.GeoService,
) CompositionRoot {
	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		publisher:  publisher,
		geoService: geoService,
	}
}

// OrderRepository returns a repository bound to the shared connection, for
// the read side and background jobs.
func (c *CompositionRoot) OrderRepository() ports.OrderRepository {
	return c.uowFactory.Create().OrderRepository()
}

// RestaurantRepository returns a repository bound to the shared connection.
func (c *CompositionRoot) RestaurantRepository() ports.RestaurantRepository {
	return c.uowFactory.Create().RestaurantRepository()
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateAdvanceOrderCommandHandler() commands.AdvanceOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAdvanceOrderCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateAssignDriverCommandHandler() commands.AssignDriverCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAssignDriverCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateUpdateDriverLocationCommandHandler() commands.UpdateDriverLocationCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateDriverLocationCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateArchiveOrderCommandHandler() commands.ArchiveOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewArchiveOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateAutoArchiveOrderCommandHandler() commands.AutoArchiveOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAutoArchiveOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateRateOrderCommandHandler() commands.RateOrderCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewRateOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateGetActiveOrdersQueryHandler() queries.GetActiveOrdersQueryHandler {
	return queries.NewGetActiveOrdersQueryHandler(c.OrderRepository())
}

func (c *CompositionRoot) CreateGetOrderHistoryQueryHandler() queries.GetOrderHistoryQueryHandler {
	return queries.NewGetOrderHistoryQueryHandler(c.OrderRepository())
}

func (c *CompositionRoot) CreateGetReviewsQueryHandler() queries.GetReviewsQueryHandler {
	return queries.NewGetReviewsQueryHandler(c.OrderRepository())
}

func (c *CompositionRoot) CreateGetDriverOrdersQueryHandler() queries.GetDriverOrdersQueryHandler {
	return queries.NewGetDriverOrdersQueryHandler(c.OrderRepository())
}

func (c *CompositionRoot) CreateGetCustomerOrdersQueryHandler() queries.GetCustomerOrdersQueryHandler {
	return queries.NewGetCustomerOrdersQueryHandler(c.OrderRepository())
}

func (c *CompositionRoot) CreateGetFeeQuoteQueryHandler() queries.GetFeeQuoteQueryHandler {
	return queries.NewGetFeeQuoteQueryHandler(
		c.RestaurantRepository(), c.geoService, services.FeeCalculator{})
}

// FuncOrderUoWFactory adapts a plain function to the order-scoped unit of
// work factory the command handlers expect.
type FuncOrderUoWFactory func() commands.OrderUoW

// Create calls the wrapped function.
func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

// FuncUoWFactory adapts a plain function to the two-repository unit of work
// factory the command handlers expect.
type FuncUoWFactory func() commands.UoW

// Create calls the wrapped function.
func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
