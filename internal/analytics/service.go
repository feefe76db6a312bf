package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/conterGui/Aconchego-Pap/internal/models"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

const (
	dashboardCacheTTL = 10 * time.Minute
	topProductsLimit  = 4
	recentOrdersLimit = 4
)

// OrderStats is the part of the order repository the dashboard reads.
type OrderStats interface {
	Revenue(ctx context.Context, since *time.Time) (decimal.Decimal, error)
	CountByStatus(ctx context.Context) (map[string]int, error)
	TopProducts(ctx context.Context, limit int) ([]models.TopProduct, error)
	List(ctx context.Context, filter models.OrderFilter) ([]*models.Order, error)
}

// DashboardCache stores the computed dashboard between refreshes.
type DashboardCache interface {
	GetDashboard(ctx context.Context) (*models.DashboardData, error)
	SetDashboard(ctx context.Context, data *models.DashboardData, ttl time.Duration) error
}

// Service handles calculation and caching of the admin dashboard
type Service struct {
	orders OrderStats
	cache  DashboardCache
	now    func() time.Time
}

func NewService(orders OrderStats, cache DashboardCache) *Service {
	return &Service{
		orders: orders,
		cache:  cache,
		now:    time.Now,
	}
}

// Dashboard serves the cached figures, computing them on a miss.
func (s *Service) Dashboard(ctx context.Context) (*models.DashboardData, error) {
	cached, err := s.cache.GetDashboard(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("Dashboard cache read failed")
	} else if cached != nil {
		return cached, nil
	}
	return s.Refresh(ctx)
}

// Refresh recomputes the dashboard and replaces the cached copy.
func (s *Service) Refresh(ctx context.Context) (*models.DashboardData, error) {
	data, err := s.Calculate(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.cache.SetDashboard(ctx, data, dashboardCacheTTL); err != nil {
		log.Warn().Err(err).Msg("Dashboard cache write failed")
	}
	return data, nil
}

// Calculate reads the figures straight from the order store. Cancelled orders do not count as revenue.
func (s *Service) Calculate(ctx context.Context) (*models.DashboardData, error) {
	now := s.now().UTC()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	total, err := s.orders.Revenue(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate total revenue: %w", err)
	}
	monthly, err := s.orders.Revenue(ctx, &monthStart)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate monthly revenue: %w", err)
	}
	counts, err := s.orders.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count orders: %w", err)
	}
	top, err := s.orders.TopProducts(ctx, topProductsLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to rank products: %w", err)
	}
	recent, err := s.orders.List(ctx, models.OrderFilter{Limit: recentOrdersLimit})
	if err != nil {
		return nil, fmt.Errorf("failed to load recent orders: %w", err)
	}

	return &models.DashboardData{
		TotalRevenue:   total,
		MonthlyRevenue: monthly,
		OrderCounts:    counts,
		TopProducts:    top,
		RecentOrders:   recent,
		GeneratedAt:    now,
	}, nil
}
