package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"marketplace/internal/adapters/out/postgres/orderrepo"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate interface{}) {
	m.Called(id, aggregate)
}

// OrderRepositoryIntegrationTestSuite verifies order persistence against a
// real PostgreSQL instance, item line snapshots included.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.OrderItemDTO{}))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders, order_items").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.repository = orderrepo.NewGormOrderRepository(suite.db, suite.tracker)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAddAndGet_RoundTripWithItems() {
	ctx := context.Background()

	testOrder := suite.createTestOrder()
	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Once()

	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	retrieved, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)

	suite.Equal(testOrder.ID(), retrieved.ID())
	suite.Equal(testOrder.OrderNumber(), retrieved.OrderNumber())
	suite.Equal(order.StatusPending, retrieved.Status())
	suite.Equal(testOrder.Subtotal(), retrieved.Subtotal())
	suite.Equal(testOrder.Tax(), retrieved.Tax())
	suite.Equal(testOrder.Total(), retrieved.Total())
	suite.Nil(retrieved.DriverID())

	suite.Require().Len(retrieved.Items(), 2)
	suite.Equal("Grilled chicken", retrieved.Items()[0].Name())
	suite.Equal(2, retrieved.Items()[0].Quantity())
	suite.Equal("Spring rolls", retrieved.Items()[1].Name())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NonExistentOrder_ReturnsNotFoundError() {
	retrieved, err := suite.repository.Get(context.Background(), kernel.NewUUID())

	suite.Nil(retrieved)
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_PersistsStatusAndDriver() {
	ctx := context.Background()
	suite.tracker.On("TrackAggregate", mock.AnythingOfType("kernel.UUID"), mock.Anything).Times(2)

	testOrder := suite.createTestOrder()
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	driverID := kernel.NewUUID()
	suite.Require().NoError(testOrder.Confirm())
	suite.Require().NoError(testOrder.AssignDriver(driverID))
	suite.Require().NoError(suite.repository.Update(ctx, testOrder))

	retrieved, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)

	suite.Equal(order.StatusConfirmed, retrieved.Status())
	suite.Require().NotNil(retrieved.DriverID())
	suite.Equal(driverID, *retrieved.DriverID())
	suite.Len(retrieved.Items(), 2, "update must not rewrite or drop item lines")

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_NonExistentOrder_ReturnsError() {
	err := suite.repository.Update(context.Background(), suite.createTestOrder())

	suite.Require().Error(err)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetFirstAwaitingAssignment_ReturnsOldest() {
	ctx := context.Background()
	suite.tracker.On("TrackAggregate", mock.AnythingOfType("kernel.UUID"), mock.Anything).Times(3)

	older := suite.createTestOrderAt(time.Now().UTC().Add(-time.Hour))
	suite.Require().NoError(older.Confirm())
	suite.Require().NoError(suite.repository.Add(ctx, older))

	newer := suite.createTestOrderAt(time.Now().UTC())
	suite.Require().NoError(newer.Confirm())
	suite.Require().NoError(suite.repository.Add(ctx, newer))

	// Pending order never enters the backlog.
	pending := suite.createTestOrderAt(time.Now().UTC().Add(-2 * time.Hour))
	suite.Require().NoError(suite.repository.Add(ctx, pending))

	retrieved, err := suite.repository.GetFirstAwaitingAssignment(ctx)
	suite.Require().NoError(err)

	suite.Equal(older.ID(), retrieved.ID())
	suite.True(retrieved.IsAwaitingAssignment())
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetFirstAwaitingAssignment_SkipsOrdersWithDriver() {
	ctx := context.Background()
	suite.tracker.On("TrackAggregate", mock.AnythingOfType("kernel.UUID"), mock.Anything).Once()

	taken := suite.createTestOrder()
	suite.Require().NoError(taken.Confirm())
	suite.Require().NoError(taken.AssignDriver(kernel.NewUUID()))
	suite.Require().NoError(suite.repository.Add(ctx, taken))

	retrieved, err := suite.repository.GetFirstAwaitingAssignment(ctx)

	suite.Nil(retrieved)
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
}

// createTestOrder creates a two-line order placed now.
func (suite *OrderRepositoryIntegrationTestSuite) createTestOrder() *order.Order {
	return suite.createTestOrderAt(time.Now().UTC())
}

func (suite *OrderRepositoryIntegrationTestSuite) createTestOrderAt(createdAt time.Time) *order.Order {
	chickenPrice, err := kernel.NewMoney(1000)
	suite.Require().NoError(err)
	chicken, err := order.NewItem(kernel.NewUUID(), "Grilled chicken", chickenPrice, 2)
	suite.Require().NoError(err)

	rollsPrice, err := kernel.NewMoney(500)
	suite.Require().NoError(err)
	rolls, err := order.NewItem(kernel.NewUUID(), "Spring rolls", rollsPrice, 1)
	suite.Require().NoError(err)

	fee, err := kernel.NewMoney(250)
	suite.Require().NoError(err)
	location, err := kernel.NewGeoPoint(6.1725, 1.2314)
	suite.Require().NoError(err)

	testOrder, err := order.NewOrder(
		kernel.NewUUID(),
		kernel.NewUUID(),
		kernel.NewUUID(),
		[]*order.Item{chicken, rolls},
		fee,
		"12 Rue du Commerce",
		location,
		"ring the bell",
		createdAt,
	)
	suite.Require().NoError(err)
	return testOrder
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
