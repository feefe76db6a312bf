package handlers

import (
	"net/http"
	"strconv"

	"github.com/conterGui/Aconchego-Pap/internal/common"
	"github.com/conterGui/Aconchego-Pap/internal/models"
	"github.com/conterGui/Aconchego-Pap/internal/services"

	"github.com/labstack/echo/v4"
)

// ReservationHandlers handles the admin reservation desk and floor plan
type ReservationHandlers struct {
	reservationService services.ReservationService
}

func NewReservationHandlers(reservationService services.ReservationService) *ReservationHandlers {
	return &ReservationHandlers{reservationService: reservationService}
}

// CreateReservation handles POST /v1/admin/reservations
// @Summary Assign a table to a party
// @Tags admin-reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param reservation body models.ReservationRequest true "Party and slot"
// @Success 201 {object} models.Assignment
// @Failure 409 {object} common.ErrorResponse
// @Router /v1/admin/reservations [post]
func (h *ReservationHandlers) CreateReservation(c echo.Context) error {
	ctx := c.Request().Context()

	var req models.ReservationRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	assignment, err := h.reservationService.Reserve(ctx, req)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusCreated, assignment)
}

// ListReservations handles GET /v1/admin/reservations?day=&time=
func (h *ReservationHandlers) ListReservations(c echo.Context) error {
	ctx := c.Request().Context()

	var filter models.ReservationFilter
	if day := c.QueryParam("day"); day != "" {
		d := models.Day(day)
		filter.Day = &d
	}
	if at := c.QueryParam("time"); at != "" {
		t := models.TimeSlot(at)
		filter.Time = &t
	}

	reservations, err := h.reservationService.List(ctx, filter)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"reservations": reservations,
	})
}

// GetReservation handles GET /v1/admin/reservations/:id
func (h *ReservationHandlers) GetReservation(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendError(c, err)
	}
	reservation, err := h.reservationService.GetByID(ctx, id)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, reservation)
}

// Availability handles GET /v1/admin/reservations/availability?day=&time=
func (h *ReservationHandlers) Availability(c echo.Context) error {
	ctx := c.Request().Context()
	slot := slotFromQuery(c)

	availability, err := h.reservationService.Availability(ctx, slot)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, availability)
}

// CancelReservation handles DELETE /v1/admin/reservations/:id
func (h *ReservationHandlers) CancelReservation(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendError(c, err)
	}
	if err := h.reservationService.Cancel(ctx, id); err != nil {
		return common.SendError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// CancelBySlot handles DELETE /v1/admin/reservations?table_id=&day=&time=
func (h *ReservationHandlers) CancelBySlot(c echo.Context) error {
	ctx := c.Request().Context()
	tableID, err := strconv.Atoi(c.QueryParam("table_id"))
	if err != nil {
		return common.SendValidationError(c, "table_id", "must be a positive integer")
	}
	if err := h.reservationService.CancelBySlot(ctx, tableID, slotFromQuery(c)); err != nil {
		return common.SendError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ListTables handles GET /v1/admin/tables
func (h *ReservationHandlers) ListTables(c echo.Context) error {
	ctx := c.Request().Context()
	tables, err := h.reservationService.Tables(ctx)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"tables": tables,
	})
}

func slotFromQuery(c echo.Context) models.Slot {
	return models.Slot{
		Day:  models.Day(c.QueryParam("day")),
		Time: models.TimeSlot(c.QueryParam("time")),
	}
}
