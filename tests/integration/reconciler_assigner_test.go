package integration

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/conterGui/Aconchego-Pap/internal/common"
	"github.com/conterGui/Aconchego-Pap/internal/events"
	"github.com/conterGui/Aconchego-Pap/internal/models"
	"github.com/conterGui/Aconchego-Pap/internal/repositories"
	"github.com/conterGui/Aconchego-Pap/internal/services"
	"github.com/conterGui/Aconchego-Pap/testhelpers"
)

// PostgresIntegrationTestSuite runs checkout and table assignment against a real database.
type PostgresIntegrationTestSuite struct {
	suite.Suite
	db           *testhelpers.TestDB
	orderRepo    repositories.OrderRepository
	orders       services.OrderService
	reservations services.ReservationService
}

func (suite *PostgresIntegrationTestSuite) SetupTest() {
	suite.db = testhelpers.SetupTestDB(suite.T())

	productRepo := repositories.NewProductRepo(suite.db.Pool)
	suite.orderRepo = repositories.NewOrderRepo(suite.db.Pool)
	suite.orders = services.NewOrderService(suite.orderRepo, productRepo,
		services.NewLogNotificationService(), events.NewNoopPublisher())
	suite.reservations = services.NewReservationService(
		repositories.NewTableRepo(suite.db.Pool),
		repositories.NewReservationRepo(suite.db.Pool),
	)
}

func (suite *PostgresIntegrationTestSuite) TearDownTest() {
	if suite.db != nil {
		suite.db.Cleanup()
	}
}

func (suite *PostgresIntegrationTestSuite) TestPlaceOrder_PersistsCatalogPrices() {
	ctx := context.Background()
	espresso := testhelpers.SetupTestProduct(suite.T(), suite.db, "Espresso", "4.50")
	cake := testhelpers.SetupTestProduct(suite.T(), suite.db, "Bolo de cenoura", "7.25")

	order, err := suite.orders.PlaceOrder(ctx, models.PlaceOrderInput{
		Customer: models.CustomerInfo{Name: "Ana", Email: "ana@example.com", Address: "Rua A, 1", City: "Lisboa"},
		Lines: []models.OrderLine{
			{ProductID: espresso.ID, Quantity: 2},
			{ProductID: cake.ID, Quantity: 1},
		},
	})
	suite.Require().NoError(err)

	stored, err := suite.orderRepo.GetByID(ctx, order.ID)
	suite.Require().NoError(err)
	suite.True(stored.TotalAmount.Equal(decimal.RequireFromString("16.25")), "total %s", stored.TotalAmount)
	suite.Len(stored.Items, 2)
	suite.Equal(models.OrderStatusPending, stored.Status)
}

func (suite *PostgresIntegrationTestSuite) TestPlaceOrder_UnknownProductWritesNothing() {
	ctx := context.Background()
	espresso := testhelpers.SetupTestProduct(suite.T(), suite.db, "Espresso", "4.50")

	_, err := suite.orders.PlaceOrder(ctx, models.PlaceOrderInput{
		Customer: models.CustomerInfo{Name: "Ana", Email: "ana@example.com", Address: "Rua A, 1", City: "Lisboa"},
		Lines: []models.OrderLine{
			{ProductID: espresso.ID, Quantity: 1},
			{ProductID: uuid.New(), Quantity: 1},
		},
	})
	suite.Require().Error(err)

	orders, err := suite.orderRepo.List(ctx, models.OrderFilter{Limit: 10})
	suite.Require().NoError(err)
	suite.Empty(orders)
}

func (suite *PostgresIntegrationTestSuite) TestReserve_ConcurrentRequestsNeverShareATable() {
	ctx := context.Background()
	const requests = 20

	var wg sync.WaitGroup
	var mu sync.Mutex
	tables := map[int]int{}
	rejected := 0

	for i := 0; i < requests; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			assignment, err := suite.reservations.Reserve(ctx, models.ReservationRequest{
				ClientName: fmt.Sprintf("Cliente %d", n),
				People:     2,
				Day:        models.DaySabado,
				Time:       "19:00",
			})
			mu.Lock()
			defer mu.Unlock()
			if errors.Is(err, common.ErrNoTableAvailable) {
				rejected++
				return
			}
			suite.NoError(err)
			if assignment != nil {
				tables[assignment.Table.ID]++
			}
		}(i)
	}
	wg.Wait()

	suite.Len(tables, 13)
	suite.Equal(requests-13, rejected)
	for id, count := range tables {
		suite.Equal(1, count, "table %d booked twice", id)
	}
}

func (suite *PostgresIntegrationTestSuite) TestCancel_FreesTheTable() {
	ctx := context.Background()
	slot := models.Slot{Day: models.DayQuarta, Time: "10:00"}

	first, err := suite.reservations.Reserve(ctx, models.ReservationRequest{ClientName: "Rui", People: 6, Day: slot.Day, Time: slot.Time})
	suite.Require().NoError(err)

	suite.Require().NoError(suite.reservations.Cancel(ctx, first.Reservation.ID))
	suite.Require().NoError(suite.reservations.Cancel(ctx, first.Reservation.ID))

	again, err := suite.reservations.Reserve(ctx, models.ReservationRequest{ClientName: "Rita", People: 6, Day: slot.Day, Time: slot.Time})
	suite.Require().NoError(err)
	suite.Equal(first.Table.ID, again.Table.ID)
}

func TestPostgresIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(PostgresIntegrationTestSuite))
}
