package handlers

import (
	"context"
	"net/http"

	"github.com/conterGui/Aconchego-Pap/internal/common"
	"github.com/conterGui/Aconchego-Pap/internal/models"

	"github.com/labstack/echo/v4"
)

// DashboardProvider serves the admin dashboard figures.
type DashboardProvider interface {
	Dashboard(ctx context.Context) (*models.DashboardData, error)
	Refresh(ctx context.Context) (*models.DashboardData, error)
}

type DashboardHandlers struct {
	analytics DashboardProvider
}

func NewDashboardHandlers(analytics DashboardProvider) *DashboardHandlers {
	return &DashboardHandlers{analytics: analytics}
}

// GetDashboard handles GET /v1/admin/dashboard. ?refresh=true bypasses the cache.
func (h *DashboardHandlers) GetDashboard(c echo.Context) error {
	ctx := c.Request().Context()

	fetch := h.analytics.Dashboard
	if c.QueryParam("refresh") == "true" {
		fetch = h.analytics.Refresh
	}
	data, err := fetch(ctx)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, data)
}
