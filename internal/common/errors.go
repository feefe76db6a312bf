package common

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrProductUnavailable = errors.New("product unavailable")
	ErrNoTableAvailable   = errors.New("no table available")
	ErrInvalidSlot        = errors.New("invalid reservation slot")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrSlotTaken          = errors.New("table already reserved for this slot")
	ErrUnauthorized       = errors.New("unauthorized")
)

// ValidationError reports a missing or malformed input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// ProductUnavailableError names the product that blocked a checkout.
type ProductUnavailableError struct {
	ProductID string
	Reason    string
}

func (e *ProductUnavailableError) Error() string {
	return fmt.Sprintf("product %s unavailable: %s", e.ProductID, e.Reason)
}

func (e *ProductUnavailableError) Unwrap() error { return ErrProductUnavailable }

// SendError maps domain errors to the JSON error envelope. Unknown errors become a 500 with a generic message.
func SendError(c echo.Context, err error) error {
	var verr *ValidationError
	var perr *ProductUnavailableError
	switch {
	case errors.As(err, &verr):
		return SendValidationError(c, verr.Field, verr.Message)
	case errors.As(err, &perr):
		return c.JSON(http.StatusBadRequest, CreateErrorResponse("PRODUCT_UNAVAILABLE", "One or more products are unavailable",
			map[string]string{perr.ProductID: perr.Reason}))
	case errors.Is(err, ErrProductUnavailable):
		return c.JSON(http.StatusBadRequest, CreateErrorResponse("PRODUCT_UNAVAILABLE", "One or more products are unavailable", nil))
	case errors.Is(err, ErrInvalidSlot):
		return c.JSON(http.StatusBadRequest, CreateErrorResponse("INVALID_SLOT", err.Error(), nil))
	case errors.Is(err, ErrNoTableAvailable):
		return c.JSON(http.StatusConflict, CreateErrorResponse("NO_TABLE_AVAILABLE", "No table available for this party size and slot", nil))
	case errors.Is(err, ErrInvalidTransition):
		return c.JSON(http.StatusConflict, CreateErrorResponse("INVALID_TRANSITION", err.Error(), nil))
	case errors.Is(err, ErrNotFound):
		return c.JSON(http.StatusNotFound, CreateErrorResponse("NOT_FOUND", err.Error(), nil))
	case errors.Is(err, ErrUnauthorized):
		return SendUnauthorizedError(c)
	}
	log.Error().Err(err).Str("method", c.Request().Method).Str("path", c.Path()).Msg("Request failed")
	return SendServerError(c, "Internal server error")
}
