package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/conterGui/Aconchego-Pap/internal/common"
	"github.com/conterGui/Aconchego-Pap/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// floorPlan mirrors the seeded café layout.
func floorPlan() []models.Table {
	capacities := []int{2, 2, 4, 4, 2, 4, 6, 6, 4, 2, 4, 4, 2}
	tables := make([]models.Table, len(capacities))
	for i, c := range capacities {
		tables[i] = models.Table{ID: i + 1, Capacity: c, Shape: "round"}
	}
	return tables
}

type ReservationServiceTestSuite struct {
	suite.Suite
	tableRepo *MockTableRepository
	resRepo   *memReservationRepo
	service   ReservationService
	ctx       context.Context
}

func (suite *ReservationServiceTestSuite) SetupTest() {
	suite.tableRepo = new(MockTableRepository)
	suite.tableRepo.On("List", mock.Anything).Return(floorPlan(), nil)
	suite.resRepo = newMemReservationRepo()
	suite.service = NewReservationService(suite.tableRepo, suite.resRepo)
	suite.ctx = context.Background()
}

func TestReservationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReservationServiceTestSuite))
}

func (suite *ReservationServiceTestSuite) reserve(name string, people int, day models.Day, at models.TimeSlot) (*models.Assignment, error) {
	return suite.service.Reserve(suite.ctx, models.ReservationRequest{ClientName: name, People: people, Day: day, Time: at})
}

func (suite *ReservationServiceTestSuite) TestReserve_SmallestSufficientTable() {
	a, err := suite.reserve("Ana", 4, models.DaySexta, "20:00")

	suite.Require().NoError(err)
	suite.Equal(3, a.Table.ID)
	suite.Equal(4, a.Table.Capacity)
	suite.Equal("Ana", a.Reservation.ClientName)
	suite.Equal(models.Slot{Day: models.DaySexta, Time: "20:00"}, a.Reservation.Slot())
}

func (suite *ReservationServiceTestSuite) TestReserve_FillsSlotThenReportsNoTable() {
	// Six tables seat exactly four; later parties spill onto the two 6-seaters.
	var ids []int
	for i := 0; i < 8; i++ {
		a, err := suite.reserve(fmt.Sprintf("Party %d", i), 4, models.DaySexta, "20:00")
		suite.Require().NoError(err)
		ids = append(ids, a.Table.ID)
	}
	suite.Equal([]int{3, 4, 6, 9, 11, 12, 7, 8}, ids)

	_, err := suite.reserve("Late", 4, models.DaySexta, "20:00")
	suite.ErrorIs(err, common.ErrNoTableAvailable)

	// Other slots are unaffected.
	a, err := suite.reserve("Late", 4, models.DaySexta, "19:00")
	suite.NoError(err)
	suite.Equal(3, a.Table.ID)
}

func (suite *ReservationServiceTestSuite) TestReserve_PartyLargerThanAnyTable() {
	_, err := suite.reserve("Big group", 7, models.DaySabado, "12:00")
	suite.ErrorIs(err, common.ErrNoTableAvailable)
}

func (suite *ReservationServiceTestSuite) TestReserve_CancelFreesTable() {
	first, err := suite.reserve("Ana", 6, models.DayDomingo, "10:00")
	suite.Require().NoError(err)
	suite.Equal(7, first.Table.ID)
	second, err := suite.reserve("Bruno", 5, models.DayDomingo, "10:00")
	suite.Require().NoError(err)
	suite.Equal(8, second.Table.ID)

	_, err = suite.reserve("Carla", 6, models.DayDomingo, "10:00")
	suite.ErrorIs(err, common.ErrNoTableAvailable)

	suite.Require().NoError(suite.service.Cancel(suite.ctx, first.Reservation.ID))
	// Cancel is idempotent.
	suite.Require().NoError(suite.service.Cancel(suite.ctx, first.Reservation.ID))

	third, err := suite.reserve("Carla", 6, models.DayDomingo, "10:00")
	suite.NoError(err)
	suite.Equal(7, third.Table.ID)
}

func (suite *ReservationServiceTestSuite) TestReserve_InvalidSlot() {
	_, err := suite.reserve("Ana", 2, models.Day("Segunda"), "10:00")
	suite.ErrorIs(err, common.ErrInvalidSlot)

	_, err = suite.reserve("Ana", 2, models.DaySexta, "21:00")
	suite.ErrorIs(err, common.ErrInvalidSlot)

	_, err = suite.reserve("Ana", 2, models.DaySexta, "10:30")
	suite.ErrorIs(err, common.ErrInvalidSlot)
}

func (suite *ReservationServiceTestSuite) TestReserve_ValidatesRequest() {
	_, err := suite.reserve("   ", 2, models.DaySexta, "10:00")
	var ve *common.ValidationError
	suite.Require().True(errors.As(err, &ve))
	suite.Equal("client_name", ve.Field)

	_, err = suite.reserve("Ana", 0, models.DaySexta, "10:00")
	suite.Require().True(errors.As(err, &ve))
	suite.Equal("people", ve.Field)
}

func (suite *ReservationServiceTestSuite) TestReserve_ConcurrentRequestsNeverDoubleBook() {
	var wg sync.WaitGroup
	results := make(chan error, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := suite.reserve(fmt.Sprintf("Guest %d", i), 2, models.DayQuinta, "15:00")
			results <- err
		}(i)
	}
	wg.Wait()
	close(results)

	booked, rejected := 0, 0
	for err := range results {
		switch {
		case err == nil:
			booked++
		case errors.Is(err, common.ErrNoTableAvailable):
			rejected++
		default:
			suite.Failf("unexpected error", "%v", err)
		}
	}
	suite.Equal(13, booked)
	suite.Equal(7, rejected)

	slot := models.Slot{Day: models.DayQuinta, Time: "15:00"}
	reservations, err := suite.resRepo.ListBySlot(suite.ctx, slot)
	suite.Require().NoError(err)
	seen := map[int]bool{}
	for _, r := range reservations {
		suite.False(seen[r.TableID], "table %d booked twice", r.TableID)
		seen[r.TableID] = true
	}
}

func (suite *ReservationServiceTestSuite) TestAvailability_PartitionsFloorPlan() {
	a, err := suite.reserve("Ana", 4, models.DaySexta, "20:00")
	suite.Require().NoError(err)
	_, err = suite.reserve("Rui", 2, models.DaySexta, "20:00")
	suite.Require().NoError(err)
	_, err = suite.reserve("Eva", 2, models.DaySexta, "18:00")
	suite.Require().NoError(err)

	avail, err := suite.service.Availability(suite.ctx, models.Slot{Day: models.DaySexta, Time: "20:00"})
	suite.Require().NoError(err)

	suite.Len(avail.Reserved, 2)
	suite.Len(avail.Free, 11)
	suite.Equal(1, avail.Reserved[0].Table.ID)
	suite.Equal(a.Table.ID, avail.Reserved[1].Table.ID)
	suite.Equal("Ana", avail.Reserved[1].Reservation.ClientName)
	for _, t := range avail.Free {
		suite.NotEqual(1, t.ID)
		suite.NotEqual(3, t.ID)
	}
}

func (suite *ReservationServiceTestSuite) TestCancelBySlot() {
	a, err := suite.reserve("Ana", 2, models.DayQuarta, "09:00")
	suite.Require().NoError(err)

	slot := a.Reservation.Slot()
	suite.NoError(suite.service.CancelBySlot(suite.ctx, a.Table.ID, slot))
	suite.NoError(suite.service.CancelBySlot(suite.ctx, a.Table.ID, slot))

	avail, err := suite.service.Availability(suite.ctx, slot)
	suite.Require().NoError(err)
	suite.Empty(avail.Reserved)

	suite.ErrorIs(suite.service.CancelBySlot(suite.ctx, 1, models.Slot{Day: models.DayQuarta, Time: "07:00"}), common.ErrInvalidSlot)
}

func TestReserve_TwoTableFloor(t *testing.T) {
	tables := &MockTableRepository{}
	tables.On("List", mock.Anything).Return([]models.Table{{ID: 1, Capacity: 2}, {ID: 2, Capacity: 4}}, nil)
	svc := NewReservationService(tables, newMemReservationRepo())
	req := models.ReservationRequest{ClientName: "Ana", People: 3, Day: models.DaySexta, Time: "20:00"}

	a, err := svc.Reserve(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 2, a.Table.ID)

	_, err = svc.Reserve(context.Background(), req)
	assert.ErrorIs(t, err, common.ErrNoTableAvailable)
}

func TestReserve_RetriesWhenTableTakenConcurrently(t *testing.T) {
	tables := &MockTableRepository{}
	tables.On("List", mock.Anything).Return([]models.Table{
		{ID: 1, Capacity: 2}, {ID: 2, Capacity: 2}, {ID: 3, Capacity: 4},
	}, nil)
	reservations := &MockReservationRepository{}
	slot := models.Slot{Day: models.DaySabado, Time: "13:00"}
	reservations.On("ListBySlot", mock.Anything, slot).Return([]*models.Reservation{}, nil)
	reservations.On("Create", mock.Anything, mock.MatchedBy(func(r *models.Reservation) bool { return r.TableID == 1 })).
		Return(fmt.Errorf("table 1: %w", common.ErrSlotTaken)).Once()
	reservations.On("Create", mock.Anything, mock.MatchedBy(func(r *models.Reservation) bool { return r.TableID == 2 })).
		Return(nil).Once()

	svc := NewReservationService(tables, reservations)
	a, err := svc.Reserve(context.Background(), models.ReservationRequest{ClientName: "Ana", People: 2, Day: slot.Day, Time: slot.Time})

	require.NoError(t, err)
	assert.Equal(t, 2, a.Table.ID)
	assert.NotEqual(t, uuid.Nil, a.Reservation.ID)
	reservations.AssertExpectations(t)
}

func TestPickTable(t *testing.T) {
	tables := []models.Table{{ID: 5, Capacity: 6}, {ID: 3, Capacity: 4}, {ID: 1, Capacity: 2}, {ID: 2, Capacity: 2}, {ID: 4, Capacity: 4}}

	cases := []struct {
		name   string
		people int
		taken  map[int]bool
		want   int
		found  bool
	}{
		{"exact fit", 2, nil, 1, true},
		{"rounds up", 3, nil, 3, true},
		{"skips taken", 3, map[int]bool{3: true}, 4, true},
		{"all sufficient taken", 5, map[int]bool{5: true}, 0, false},
		{"too many", 7, nil, 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := pickTable(tables, tc.people, tc.taken)
			assert.Equal(t, tc.found, ok)
			if ok {
				assert.Equal(t, tc.want, got.ID)
			}
		})
	}
}
