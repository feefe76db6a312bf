package handlers

import (
	"errors"
	"net/http"

	"github.com/conterGui/Aconchego-Pap/internal/common"
	"github.com/conterGui/Aconchego-Pap/internal/models"
	"github.com/conterGui/Aconchego-Pap/internal/services"

	"github.com/labstack/echo/v4"
)

// ProductHandlers handles admin HTTP requests for products
type ProductHandlers struct {
	productService services.ProductService
}

// NewProductHandlers creates a new product handlers instance
func NewProductHandlers(productService services.ProductService) *ProductHandlers {
	return &ProductHandlers{productService: productService}
}

// ListProducts handles GET /v1/admin/products
func (h *ProductHandlers) ListProducts(c echo.Context) error {
	ctx := c.Request().Context()
	limit, offset := common.PaginationFromQuery(c)

	filter := models.ProductFilter{Limit: limit, Offset: offset}
	if category := c.QueryParam("category"); category != "" {
		filter.Category = &category
	}
	filter.AvailableOnly = c.QueryParam("available") == "true"

	products, err := h.productService.List(ctx, filter)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"products": products,
		"limit":    limit,
		"offset":   offset,
	})
}

// CreateProduct handles POST /v1/admin/products
// @Summary Create a menu item
// @Tags admin-products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param product body models.ProductInput true "Product"
// @Success 201 {object} models.Product
// @Router /v1/admin/products [post]
func (h *ProductHandlers) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()

	var req models.ProductInput
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	product, err := h.productService.Create(ctx, req)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusCreated, product)
}

// GetProduct handles GET /v1/admin/products/:id
func (h *ProductHandlers) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendError(c, err)
	}
	product, err := h.productService.GetByID(ctx, id)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, product)
}

// UpdateProduct handles PUT /v1/admin/products/:id
func (h *ProductHandlers) UpdateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendError(c, err)
	}

	var req models.ProductInput
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	product, err := h.productService.Update(ctx, id, req)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, product)
}

// SetAvailability handles PATCH /v1/admin/products/:id/availability
func (h *ProductHandlers) SetAvailability(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendError(c, err)
	}

	var req struct {
		Available *bool `json:"available"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	if req.Available == nil {
		return common.SendValidationError(c, "available", "is required")
	}

	product, err := h.productService.SetAvailability(ctx, id, *req.Available)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, product)
}

// DeleteProduct handles DELETE /v1/admin/products/:id
func (h *ProductHandlers) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendError(c, err)
	}
	if err := h.productService.Delete(ctx, id); err != nil {
		return common.SendError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// UploadImage handles POST /v1/admin/products/:id/image (multipart field "image")
func (h *ProductHandlers) UploadImage(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendError(c, err)
	}

	file, err := c.FormFile("image")
	if err != nil {
		return common.SendValidationError(c, "image", "multipart file field 'image' is required")
	}
	src, err := file.Open()
	if err != nil {
		return common.SendClientError(c, "Unable to read uploaded file")
	}
	defer src.Close()

	product, err := h.productService.UploadImage(ctx, id, file.Filename, file.Header.Get("Content-Type"), src, file.Size)
	if errors.Is(err, services.ErrImageStorageDisabled) {
		return c.JSON(http.StatusServiceUnavailable, common.CreateErrorResponse("STORAGE_DISABLED", "Image storage is not configured", nil))
	}
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, product)
}
