package handlers

import (
	"net/http"

	"github.com/conterGui/Aconchego-Pap/internal/common"
	"github.com/conterGui/Aconchego-Pap/internal/models"
	"github.com/conterGui/Aconchego-Pap/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// CartHandlers exposes server-side carts keyed by an opaque id
type CartHandlers struct {
	cartService services.CartService
}

func NewCartHandlers(cartService services.CartService) *CartHandlers {
	return &CartHandlers{cartService: cartService}
}

type cartItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// CreateCart handles POST /v1/carts
func (h *CartHandlers) CreateCart(c echo.Context) error {
	ctx := c.Request().Context()
	view, err := h.cartService.Create(ctx)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusCreated, view)
}

// GetCart handles GET /v1/carts/:id
func (h *CartHandlers) GetCart(c echo.Context) error {
	ctx := c.Request().Context()
	view, err := h.cartService.Get(ctx, c.Param("id"))
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, view)
}

// AddItem handles POST /v1/carts/:id/items
func (h *CartHandlers) AddItem(c echo.Context) error {
	ctx := c.Request().Context()

	var req cartItemRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	productID, err := common.ValidateUUID(req.ProductID, "product_id")
	if err != nil {
		return common.SendError(c, err)
	}

	view, err := h.cartService.AddItem(ctx, c.Param("id"), productID, req.Quantity)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, view)
}

// SetItemQuantity handles PUT /v1/carts/:id/items/:product_id
func (h *CartHandlers) SetItemQuantity(c echo.Context) error {
	ctx := c.Request().Context()
	productID, err := h.productParam(c)
	if err != nil {
		return common.SendError(c, err)
	}

	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	view, err := h.cartService.SetQuantity(ctx, c.Param("id"), productID, req.Quantity)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, view)
}

// RemoveItem handles DELETE /v1/carts/:id/items/:product_id
func (h *CartHandlers) RemoveItem(c echo.Context) error {
	ctx := c.Request().Context()
	productID, err := h.productParam(c)
	if err != nil {
		return common.SendError(c, err)
	}
	view, err := h.cartService.RemoveItem(ctx, c.Param("id"), productID)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, view)
}

// DeleteCart handles DELETE /v1/carts/:id
func (h *CartHandlers) DeleteCart(c echo.Context) error {
	ctx := c.Request().Context()
	if err := h.cartService.Delete(ctx, c.Param("id")); err != nil {
		return common.SendError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Checkout handles POST /v1/carts/:id/checkout
func (h *CartHandlers) Checkout(c echo.Context) error {
	ctx := c.Request().Context()

	var customer models.CustomerInfo
	if err := c.Bind(&customer); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	order, err := h.cartService.Checkout(ctx, c.Param("id"), customer)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusCreated, order)
}

func (h *CartHandlers) productParam(c echo.Context) (uuid.UUID, error) {
	return common.ValidateUUID(c.Param("product_id"), "product_id")
}
