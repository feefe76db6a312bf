package handlers

import (
	"net/http"

	"github.com/conterGui/Aconchego-Pap/internal/common"
	"github.com/conterGui/Aconchego-Pap/internal/models"
	"github.com/conterGui/Aconchego-Pap/internal/services"

	"github.com/labstack/echo/v4"
)

// PlaceOrderRequest is the checkout payload. Any price or total the client sends is ignored.
type PlaceOrderRequest struct {
	models.CustomerInfo
	Items []models.OrderLine `json:"items"`
}

// OrderHandlers handles checkout and admin order management
type OrderHandlers struct {
	orderService services.OrderService
}

func NewOrderHandlers(orderService services.OrderService) *OrderHandlers {
	return &OrderHandlers{orderService: orderService}
}

// PlaceOrder handles POST /v1/orders
// @Summary Check out
// @Tags orders
// @Accept json
// @Produce json
// @Param order body PlaceOrderRequest true "Customer details and items"
// @Success 201 {object} models.Order
// @Failure 400 {object} common.ErrorResponse
// @Router /v1/orders [post]
func (h *OrderHandlers) PlaceOrder(c echo.Context) error {
	ctx := c.Request().Context()

	var req PlaceOrderRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	order, err := h.orderService.PlaceOrder(ctx, models.PlaceOrderInput{Customer: req.CustomerInfo, Lines: req.Items})
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusCreated, order)
}

// ListOrders handles GET /v1/admin/orders
func (h *OrderHandlers) ListOrders(c echo.Context) error {
	ctx := c.Request().Context()
	limit, offset := common.PaginationFromQuery(c)

	filter := models.OrderFilter{Limit: limit, Offset: offset}
	if status := c.QueryParam("status"); status != "" {
		s := models.OrderStatus(status)
		filter.Status = &s
	}

	orders, err := h.orderService.List(ctx, filter)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"orders": orders,
		"limit":  limit,
		"offset": offset,
	})
}

// GetOrder handles GET /v1/admin/orders/:id
func (h *OrderHandlers) GetOrder(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendError(c, err)
	}
	order, err := h.orderService.GetByID(ctx, id)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, order)
}

// UpdateOrderStatus handles PATCH /v1/admin/orders/:id/status
// @Summary Complete or cancel a pending order
// @Tags admin-orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Success 200 {object} models.Order
// @Failure 409 {object} common.ErrorResponse
// @Router /v1/admin/orders/{id}/status [patch]
func (h *OrderHandlers) UpdateOrderStatus(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendError(c, err)
	}

	var req struct {
		Status models.OrderStatus `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	order, err := h.orderService.UpdateStatus(ctx, id, req.Status)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, order)
}
