package handlers

import (
	"net/http"

	"github.com/conterGui/Aconchego-Pap/internal/common"
	"github.com/conterGui/Aconchego-Pap/internal/services"

	"github.com/labstack/echo/v4"
)

// MenuHandlers serves the public, read-only catalog
type MenuHandlers struct {
	productService services.ProductService
}

func NewMenuHandlers(productService services.ProductService) *MenuHandlers {
	return &MenuHandlers{productService: productService}
}

// ListMenu handles GET /v1/menu
// @Summary List available menu items
// @Tags menu
// @Produce json
// @Param category query string false "cafes, bebidas, doces or especiais"
// @Success 200 {object} map[string]interface{}
// @Router /v1/menu [get]
func (h *MenuHandlers) ListMenu(c echo.Context) error {
	ctx := c.Request().Context()
	category := c.QueryParam("category")

	products, err := h.productService.Menu(ctx, category)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"products": products,
		"category": category,
	})
}

// GetMenuItem handles GET /v1/menu/:id
// @Summary Get one available menu item
// @Tags menu
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} models.Product
// @Router /v1/menu/{id} [get]
func (h *MenuHandlers) GetMenuItem(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendError(c, err)
	}
	product, err := h.productService.GetMenuItem(ctx, id)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, product)
}
