package postgres_test

import (
	"context"
	"sync"
	"testing"
	"time"

	postgres_adapter "foodcourt/internal/adapters/out/postgres"
	"foodcourt/internal/adapters/out/postgres/orderrepo"
	"foodcourt/internal/adapters/out/postgres/restaurantrepo"
	"foodcourt/internal/core/domain/model/kernel"
	"foodcourt/internal/core/domain/model/order"
	"foodcourt/internal/core/domain/model/restaurant"
	"foodcourt/internal/core/ports"
	"foodcourt/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite exercises the GORM-based Unit of Work
// against a real PostgreSQL database.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(&orderrepo.OrderDTO{}, &restaurantrepo.RestaurantDTO{})
	suite.Require().NoError(err)

	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders, restaurants").Error
	suite.Require().NoError(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) newRestaurant() *restaurant.Restaurant {
	origin, err := kernel.NewGeoPoint(-46.63, -23.55)
	suite.Require().NoError(err)
	r, err := restaurant.NewRestaurant(
		kernel.NewUUID(), kernel.NewUUID(), "Pizzaria", "forno a lenha", origin, 5, 2)
	suite.Require().NoError(err)
	return r
}

func (suite *UnitOfWorkIntegrationTestSuite) newOrder(restaurantID kernel.UUID) *order.Order {
	item, err := order.NewLineItem("Pizza", 2, 30)
	suite.Require().NoError(err)
	customerID := kernel.NewUUID()
	o, err := order.NewOrder(
		kernel.NewUUID(), restaurantID, &customerID, "Maria", "maria@example.com",
		[]order.LineItem{item}, 65, nil, time.Now().UTC().Truncate(time.Microsecond))
	suite.Require().NoError(err)
	return o
}

func (suite *UnitOfWorkIntegrationTestSuite) TestTransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx), "repeated begin must be safe")
	suite.Require().NoError(uow.Commit(ctx))

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Rollback(ctx))

	suite.Require().Error(uow.Commit(ctx), "commit without transaction must fail")
	suite.Require().Error(uow.Rollback(ctx), "rollback without transaction must fail")
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommitPersistsAcrossRepositories() {
	ctx := context.Background()
	r := suite.newRestaurant()
	o := suite.newOrder(r.ID())

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.RestaurantRepository().Add(ctx, r))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	suite.Require().NoError(uow.RestaurantRepository().IncrementOrdersCount(ctx, r.ID()))
	suite.Require().NoError(uow.Commit(ctx))

	check := suite.factory.Create()
	stored, err := check.OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.True(stored.IsEqual(o))
	suite.Equal(order.Awaiting, stored.Status())
	suite.Equal("Maria", stored.CustomerName())
	suite.Len(stored.LineItems(), 1)
	suite.Equal("Pizza", stored.LineItems()[0].Name())

	storedRestaurant, err := check.RestaurantRepository().Get(ctx, r.ID())
	suite.Require().NoError(err)
	suite.EqualValues(1, storedRestaurant.OrdersCount())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollbackDiscardsChanges() {
	ctx := context.Background()
	r := suite.newRestaurant()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.RestaurantRepository().Add(ctx, r))
	suite.Require().NoError(uow.Rollback(ctx))

	check := suite.factory.Create()
	_, err := check.RestaurantRepository().Get(ctx, r.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestOptimisticLockingRejectsStaleWrite() {
	ctx := context.Background()
	r := suite.newRestaurant()
	o := suite.newOrder(r.ID())

	setup := suite.factory.Create()
	suite.Require().NoError(setup.Begin(ctx))
	suite.Require().NoError(setup.RestaurantRepository().Add(ctx, r))
	suite.Require().NoError(setup.OrderRepository().Add(ctx, o))
	suite.Require().NoError(setup.Commit(ctx))

	// Two loads of the same row at version 1.
	first, err := suite.factory.Create().OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)
	second, err := suite.factory.Create().OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)

	winner := suite.factory.Create()
	suite.Require().NoError(winner.Begin(ctx))
	_, err = first.Advance(time.Now().UTC())
	suite.Require().NoError(err)
	suite.Require().NoError(winner.OrderRepository().Update(ctx, first))
	suite.Require().NoError(winner.Commit(ctx))
	suite.EqualValues(2, first.Version())

	loser := suite.factory.Create()
	suite.Require().NoError(loser.Begin(ctx))
	_, err = second.Advance(time.Now().UTC())
	suite.Require().NoError(err)
	err = loser.OrderRepository().Update(ctx, second)
	suite.Require().ErrorIs(err, errs.ErrVersionIsInvalid)
	suite.Require().NoError(loser.Rollback(ctx))

	// The winner's write stands: exactly one advance took effect.
	stored, err := suite.factory.Create().OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Preparing, stored.Status())
	suite.EqualValues(2, stored.Version())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestScopedLookupsHideForeignOrders() {
	ctx := context.Background()
	r := suite.newRestaurant()
	o := suite.newOrder(r.ID())

	setup := suite.factory.Create()
	suite.Require().NoError(setup.Begin(ctx))
	suite.Require().NoError(setup.RestaurantRepository().Add(ctx, r))
	suite.Require().NoError(setup.OrderRepository().Add(ctx, o))
	suite.Require().NoError(setup.Commit(ctx))

	repo := suite.factory.Create().OrderRepository()

	found, err := repo.GetForRestaurant(ctx, o.ID(), r.ID())
	suite.Require().NoError(err)
	suite.True(found.IsEqual(o))

	_, err = repo.GetForRestaurant(ctx, o.ID(), kernel.NewUUID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound, "foreign restaurant must see not-found")

	_, err = repo.GetForDriver(ctx, o.ID(), kernel.NewUUID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound, "unassigned driver must see not-found")
}

func (suite *UnitOfWorkIntegrationTestSuite) TestDriverLocationRoundTrip() {
	ctx := context.Background()
	r := suite.newRestaurant()
	o := suite.newOrder(r.ID())
	driverID := kernel.NewUUID()
	suite.Require().NoError(o.AssignDriver(nil, &driverID))

	point, err := kernel.NewGeoPoint(-46.65, -23.56)
	suite.Require().NoError(err)
	observedAt := time.Now().UTC().Truncate(time.Microsecond)
	suite.Require().NoError(o.UpdateDriverLocation(driverID, point, observedAt))

	setup := suite.factory.Create()
	suite.Require().NoError(setup.Begin(ctx))
	suite.Require().NoError(setup.OrderRepository().Add(ctx, o))
	suite.Require().NoError(setup.Commit(ctx))

	stored, err := suite.factory.Create().OrderRepository().GetForDriver(ctx, o.ID(), driverID)
	suite.Require().NoError(err)
	suite.Require().NotNil(stored.DriverLocation())
	suite.True(stored.DriverLocation().Point().IsEqual(point))
	suite.Equal(order.EnRoute, stored.Status())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestGetClosedUnarchived() {
	ctx := context.Background()
	r := suite.newRestaurant()

	closed := suite.newOrder(r.ID())
	for range 4 {
		_, err := closed.Advance(time.Now().UTC().Truncate(time.Microsecond))
		suite.Require().NoError(err)
	}

	archived := suite.newOrder(r.ID())
	for range 4 {
		_, err := archived.Advance(time.Now().UTC().Truncate(time.Microsecond))
		suite.Require().NoError(err)
	}
	suite.True(archived.Archive(time.Now().UTC().Truncate(time.Microsecond)))

	active := suite.newOrder(r.ID())

	setup := suite.factory.Create()
	suite.Require().NoError(setup.Begin(ctx))
	for _, o := range []*order.Order{closed, archived, active} {
		suite.Require().NoError(setup.OrderRepository().Add(ctx, o))
	}
	suite.Require().NoError(setup.Commit(ctx))

	pending, err := suite.factory.Create().OrderRepository().GetClosedUnarchived(ctx)
	suite.Require().NoError(err)
	suite.Require().Len(pending, 1)
	suite.True(pending[0].IsEqual(closed))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestActiveKeepsClosedOrdersUntilArchived() {
	ctx := context.Background()
	r := suite.newRestaurant()

	open := suite.newOrder(r.ID())

	closed := suite.newOrder(r.ID())
	for range 4 {
		_, err := closed.Advance(time.Now().UTC().Truncate(time.Microsecond))
		suite.Require().NoError(err)
	}

	archived := suite.newOrder(r.ID())
	for range 4 {
		_, err := archived.Advance(time.Now().UTC().Truncate(time.Microsecond))
		suite.Require().NoError(err)
	}
	suite.True(archived.Archive(time.Now().UTC().Truncate(time.Microsecond)))

	setup := suite.factory.Create()
	suite.Require().NoError(setup.Begin(ctx))
	for _, o := range []*order.Order{open, closed, archived} {
		suite.Require().NoError(setup.OrderRepository().Add(ctx, o))
	}
	suite.Require().NoError(setup.Commit(ctx))

	repo := suite.factory.Create().OrderRepository()

	// A closed order stays on the dashboard until it is archived.
	active, err := repo.GetActiveForRestaurant(ctx, r.ID())
	suite.Require().NoError(err)
	suite.Require().Len(active, 2)
	activeIDs := []kernel.UUID{active[0].ID(), active[1].ID()}
	suite.Contains(activeIDs, open.ID())
	suite.Contains(activeIDs, closed.ID())

	// Only archival moves an order into history.
	history, err := repo.GetHistoryForRestaurant(ctx, r.ID(), ports.HistoryFilter{})
	suite.Require().NoError(err)
	suite.Require().Len(history, 1)
	suite.True(history[0].IsEqual(archived))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCountersSurviveConcurrentWriters() {
	ctx := context.Background()
	r := suite.newRestaurant()

	setup := suite.factory.Create()
	suite.Require().NoError(setup.Begin(ctx))
	suite.Require().NoError(setup.RestaurantRepository().Add(ctx, r))
	suite.Require().NoError(setup.Commit(ctx))

	const writers = 20

	var wg sync.WaitGroup
	errCh := make(chan error, writers*2)
	for range writers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			repo := suite.factory.Create().RestaurantRepository()
			errCh <- repo.IncrementOrdersCount(ctx, r.ID())
			errCh <- repo.RegisterRating(ctx, r.ID(), 5)
		}()
	}
	wg.Wait()
	close(errCh)
	for err := range errCh {
		suite.Require().NoError(err)
	}

	stored, err := suite.factory.Create().RestaurantRepository().Get(ctx, r.ID())
	suite.Require().NoError(err)
	suite.EqualValues(writers, stored.OrdersCount(), "no increment may be lost")
	suite.EqualValues(writers, stored.RatingsCount())
	suite.EqualValues(writers*5, stored.RatingsSum())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRegisterRatingAccumulates() {
	ctx := context.Background()
	r := suite.newRestaurant()

	setup := suite.factory.Create()
	suite.Require().NoError(setup.Begin(ctx))
	suite.Require().NoError(setup.RestaurantRepository().Add(ctx, r))
	suite.Require().NoError(setup.Commit(ctx))

	repo := suite.factory.Create().RestaurantRepository()
	suite.Require().NoError(repo.RegisterRating(ctx, r.ID(), 5))
	suite.Require().NoError(repo.RegisterRating(ctx, r.ID(), 4))

	stored, err := repo.Get(ctx, r.ID())
	suite.Require().NoError(err)
	suite.EqualValues(2, stored.RatingsCount())
	suite.EqualValues(9, stored.RatingsSum())
	suite.InDelta(4.5, stored.RatingAverage(), 1e-9)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestHistoryFilters() {
	ctx := context.Background()
	r := suite.newRestaurant()

	item, err := order.NewLineItem("Pizza", 1, 30)
	suite.Require().NoError(err)

	mkArchived := func(name, email string, total float64) *order.Order {
		customerID := kernel.NewUUID()
		o, orderErr := order.NewOrder(
			kernel.NewUUID(), r.ID(), &customerID, name, email,
			[]order.LineItem{item}, total, nil,
			time.Now().UTC().Truncate(time.Microsecond))
		suite.Require().NoError(orderErr)
		for range 4 {
			_, orderErr = o.Advance(time.Now().UTC().Truncate(time.Microsecond))
			suite.Require().NoError(orderErr)
		}
		suite.Require().True(o.Archive(time.Now().UTC().Truncate(time.Microsecond)))
		return o
	}

	maria := mkArchived("Maria Silva", "maria@example.com", 65)
	joao := mkArchived("Joao Souza", "joao@example.com", 30)

	setup := suite.factory.Create()
	suite.Require().NoError(setup.Begin(ctx))
	suite.Require().NoError(setup.OrderRepository().Add(ctx, maria))
	suite.Require().NoError(setup.OrderRepository().Add(ctx, joao))
	suite.Require().NoError(setup.Commit(ctx))

	repo := suite.factory.Create().OrderRepository()

	bySubstring, err := repo.GetHistoryForRestaurant(ctx, r.ID(), ports.HistoryFilter{Query: "MARIA"})
	suite.Require().NoError(err)
	suite.Require().Len(bySubstring, 1)
	suite.True(bySubstring[0].IsEqual(maria))

	minTotal := 50.0
	byTotal, err := repo.GetHistoryForRestaurant(ctx, r.ID(), ports.HistoryFilter{MinTotal: &minTotal})
	suite.Require().NoError(err)
	suite.Require().Len(byTotal, 1)
	suite.True(byTotal[0].IsEqual(maria))

	all, err := repo.GetHistoryForRestaurant(ctx, r.ID(), ports.HistoryFilter{})
	suite.Require().NoError(err)
	suite.Len(all, 2)
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration tests in short mode")
	}
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
