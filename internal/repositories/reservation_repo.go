package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/conterGui/Aconchego-Pap/internal/common"
	"github.com/conterGui/Aconchego-Pap/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type ReservationRepository interface {
	// Create inserts the reservation, returning common.ErrSlotTaken when the (table, day, time) triple is already booked.
	Create(ctx context.Context, reservation *models.Reservation) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Reservation, error)
	ListBySlot(ctx context.Context, slot models.Slot) ([]*models.Reservation, error)
	List(ctx context.Context, filter models.ReservationFilter) ([]*models.Reservation, error)
	// Delete and DeleteBySlot report whether a row was removed; a missing row is not an error.
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	DeleteBySlot(ctx context.Context, tableID int, slot models.Slot) (bool, error)
}

type reservationRepo struct {
	db Database
}

func NewReservationRepo(db Database) ReservationRepository {
	return &reservationRepo{db: db}
}

const reservationColumns = `id, table_id, client_name, people, day, time_slot, created_at`

// weekdayOrder sorts by week position rather than alphabetically.
const weekdayOrder = `array_position(ARRAY['Quarta', 'Quinta', 'Sexta', 'Sábado', 'Domingo'], day)`

func scanReservation(row pgx.Row) (*models.Reservation, error) {
	res := &models.Reservation{}
	var day, slot string
	if err := row.Scan(&res.ID, &res.TableID, &res.ClientName, &res.People, &day, &slot, &res.CreatedAt); err != nil {
		return nil, err
	}
	res.Day = models.Day(day)
	res.Time = models.TimeSlot(slot)
	return res, nil
}

func (r *reservationRepo) Create(ctx context.Context, reservation *models.Reservation) error {
	query := `
		INSERT INTO reservations (id, table_id, client_name, people, day, time_slot, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		ON CONFLICT (table_id, day, time_slot) DO NOTHING
		RETURNING created_at
	`
	err := r.db.QueryRow(ctx, query, reservation.ID, reservation.TableID, reservation.ClientName, reservation.People,
		string(reservation.Day), string(reservation.Time)).Scan(&reservation.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("table %d at %s: %w", reservation.TableID, reservation.Slot(), common.ErrSlotTaken)
	}
	return err
}

func (r *reservationRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Reservation, error) {
	res, err := scanReservation(r.db.QueryRow(ctx, `SELECT `+reservationColumns+` FROM reservations WHERE id = $1`, id))
	if err != nil {
		return nil, notFound(err, "reservation")
	}
	return res, nil
}

func (r *reservationRepo) ListBySlot(ctx context.Context, slot models.Slot) ([]*models.Reservation, error) {
	return r.List(ctx, models.ReservationFilter{Day: &slot.Day, Time: &slot.Time})
}

func (r *reservationRepo) List(ctx context.Context, filter models.ReservationFilter) ([]*models.Reservation, error) {
	var conditions []string
	var args []any
	if filter.Day != nil {
		args = append(args, string(*filter.Day))
		conditions = append(conditions, fmt.Sprintf("day = $%d", len(args)))
	}
	if filter.Time != nil {
		args = append(args, string(*filter.Time))
		conditions = append(conditions, fmt.Sprintf("time_slot = $%d", len(args)))
	}

	query := `SELECT ` + reservationColumns + ` FROM reservations`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY " + weekdayOrder + ", time_slot, table_id"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reservations := []*models.Reservation{}
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		reservations = append(reservations, res)
	}
	return reservations, rows.Err()
}

func (r *reservationRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM reservations WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *reservationRepo) DeleteBySlot(ctx context.Context, tableID int, slot models.Slot) (bool, error) {
	query := `DELETE FROM reservations WHERE table_id = $1 AND day = $2 AND time_slot = $3`
	tag, err := r.db.Exec(ctx, query, tableID, string(slot.Day), string(slot.Time))
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
