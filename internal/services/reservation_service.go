package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/conterGui/Aconchego-Pap/internal/common"
	"github.com/conterGui/Aconchego-Pap/internal/models"
	"github.com/conterGui/Aconchego-Pap/internal/repositories"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const maxClientName = 100

type ReservationService interface {
	Reserve(ctx context.Context, req models.ReservationRequest) (*models.Assignment, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Reservation, error)
	List(ctx context.Context, filter models.ReservationFilter) ([]*models.Reservation, error)
	Availability(ctx context.Context, slot models.Slot) (*models.SlotAvailability, error)
	// Cancel and CancelBySlot are idempotent: a missing reservation is not an error.
	Cancel(ctx context.Context, id uuid.UUID) error
	CancelBySlot(ctx context.Context, tableID int, slot models.Slot) error
	Tables(ctx context.Context) ([]models.Table, error)
}

type reservationService struct {
	tableRepo       repositories.TableRepository
	reservationRepo repositories.ReservationRepository
}

func NewReservationService(tableRepo repositories.TableRepository, reservationRepo repositories.ReservationRepository) ReservationService {
	return &reservationService{
		tableRepo:       tableRepo,
		reservationRepo: reservationRepo,
	}
}

func validateSlot(slot models.Slot) error {
	if !slot.Day.IsValid() {
		return fmt.Errorf("%w: unknown day %q", common.ErrInvalidSlot, slot.Day)
	}
	if !slot.Time.IsValid() {
		return fmt.Errorf("%w: unknown time %q", common.ErrInvalidSlot, slot.Time)
	}
	return nil
}

// pickTable returns the free table with the smallest sufficient capacity, lowest id first on ties.
func pickTable(tables []models.Table, people int, taken map[int]bool) (models.Table, bool) {
	var best models.Table
	found := false
	for _, t := range tables {
		if t.Capacity < people || taken[t.ID] {
			continue
		}
		if !found || t.Capacity < best.Capacity || (t.Capacity == best.Capacity && t.ID < best.ID) {
			best = t
			found = true
		}
	}
	return best, found
}

// Reserve assigns a table for the party. The insert relies on the (table, day, time)
// uniqueness constraint; losing a race to another writer excludes that table and re-selects.
func (s *reservationService) Reserve(ctx context.Context, req models.ReservationRequest) (*models.Assignment, error) {
	name := strings.TrimSpace(req.ClientName)
	if err := common.ValidateRequiredString(name, "client_name"); err != nil {
		return nil, err
	}
	if err := common.ValidateMaxLength(name, "client_name", maxClientName); err != nil {
		return nil, err
	}
	if req.People < 1 {
		return nil, common.NewValidationError("people", "must be at least 1")
	}
	slot := models.Slot{Day: req.Day, Time: req.Time}
	if err := validateSlot(slot); err != nil {
		return nil, err
	}

	tables, err := s.tableRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load tables: %w", err)
	}
	existing, err := s.reservationRepo.ListBySlot(ctx, slot)
	if err != nil {
		return nil, fmt.Errorf("failed to load reservations for %s: %w", slot, err)
	}
	taken := make(map[int]bool, len(existing))
	for _, r := range existing {
		taken[r.TableID] = true
	}

	for {
		table, ok := pickTable(tables, req.People, taken)
		if !ok {
			return nil, fmt.Errorf("%d people at %s: %w", req.People, slot, common.ErrNoTableAvailable)
		}

		reservation := &models.Reservation{
			ID:         uuid.New(),
			TableID:    table.ID,
			ClientName: name,
			People:     req.People,
			Day:        slot.Day,
			Time:       slot.Time,
		}
		err := s.reservationRepo.Create(ctx, reservation)
		if errors.Is(err, common.ErrSlotTaken) {
			log.Info().Int("table_id", table.ID).Str("slot", slot.String()).Msg("Table taken concurrently, choosing another")
			taken[table.ID] = true
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to create reservation: %w", err)
		}

		log.Info().Str("reservation_id", reservation.ID.String()).Int("table_id", table.ID).Int("people", req.People).Str("slot", slot.String()).Msg("Reservation created")
		return &models.Assignment{Reservation: reservation, Table: table}, nil
	}
}

func (s *reservationService) GetByID(ctx context.Context, id uuid.UUID) (*models.Reservation, error) {
	return s.reservationRepo.GetByID(ctx, id)
}

func (s *reservationService) List(ctx context.Context, filter models.ReservationFilter) ([]*models.Reservation, error) {
	if filter.Day != nil && !filter.Day.IsValid() {
		return nil, fmt.Errorf("%w: unknown day %q", common.ErrInvalidSlot, *filter.Day)
	}
	if filter.Time != nil && !filter.Time.IsValid() {
		return nil, fmt.Errorf("%w: unknown time %q", common.ErrInvalidSlot, *filter.Time)
	}
	return s.reservationRepo.List(ctx, filter)
}

// Availability splits the floor plan into reserved and free tables for one slot. It writes nothing.
func (s *reservationService) Availability(ctx context.Context, slot models.Slot) (*models.SlotAvailability, error) {
	if err := validateSlot(slot); err != nil {
		return nil, err
	}
	tables, err := s.tableRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	reservations, err := s.reservationRepo.ListBySlot(ctx, slot)
	if err != nil {
		return nil, err
	}

	byTable := make(map[int]*models.Reservation, len(reservations))
	for _, r := range reservations {
		byTable[r.TableID] = r
	}

	result := &models.SlotAvailability{
		Slot:     slot,
		Reserved: []models.TableStatus{},
		Free:     []models.Table{},
	}
	for _, t := range tables {
		if r, ok := byTable[t.ID]; ok {
			result.Reserved = append(result.Reserved, models.TableStatus{Table: t, Reservation: r})
		} else {
			result.Free = append(result.Free, t)
		}
	}
	return result, nil
}

func (s *reservationService) Cancel(ctx context.Context, id uuid.UUID) error {
	removed, err := s.reservationRepo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to cancel reservation: %w", err)
	}
	log.Info().Str("reservation_id", id.String()).Bool("removed", removed).Msg("Reservation cancelled")
	return nil
}

func (s *reservationService) CancelBySlot(ctx context.Context, tableID int, slot models.Slot) error {
	if tableID < 1 {
		return common.NewValidationError("table_id", "must be a positive integer")
	}
	if err := validateSlot(slot); err != nil {
		return err
	}
	removed, err := s.reservationRepo.DeleteBySlot(ctx, tableID, slot)
	if err != nil {
		return fmt.Errorf("failed to cancel reservation: %w", err)
	}
	log.Info().Int("table_id", tableID).Str("slot", slot.String()).Bool("removed", removed).Msg("Reservation cancelled")
	return nil
}

func (s *reservationService) Tables(ctx context.Context) ([]models.Table, error) {
	return s.tableRepo.List(ctx)
}
