package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TopProduct is a product ranked by units sold in non-cancelled orders.
type TopProduct struct {
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	UnitsSold   int             `json:"units_sold"`
	Revenue     decimal.Decimal `json:"revenue"`
}

// DashboardData is the back-office overview.
type DashboardData struct {
	TotalRevenue   decimal.Decimal `json:"total_revenue"`
	MonthlyRevenue decimal.Decimal `json:"monthly_revenue"`
	OrderCounts    map[string]int  `json:"order_counts"`
	TopProducts    []TopProduct    `json:"top_products"`
	RecentOrders   []*Order        `json:"recent_orders"`
	GeneratedAt    time.Time       `json:"generated_at"`
}
