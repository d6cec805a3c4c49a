package repository

import (
	"context"
	"time"

	"stallhub/internal/model"
)

// AnalyticsFilter selects orders created in [From, To), optionally for one business.
// Timezone names the zone days are bucketed in.
type AnalyticsFilter struct {
	BusinessID string
	From       time.Time
	To         time.Time
	Timezone   string
}

// AnalyticsRepository runs the read-only aggregate queries behind the dashboards.
// Revenue figures only count fulfilled orders.
type AnalyticsRepository interface {
	OrdersByStatus(ctx context.Context, f AnalyticsFilter) (map[model.OrderStatus]int, error)
	Revenue(ctx context.Context, f AnalyticsFilter) (orders int, revenueCents int64, err error)
	DailyRevenue(ctx context.Context, f AnalyticsFilter) ([]model.DailyRevenue, error)
	TopProducts(ctx context.Context, f AnalyticsFilter, limit int) ([]model.ProductSales, error)
	RevenueByBusiness(ctx context.Context, f AnalyticsFilter, limit int) ([]model.BusinessRevenue, error)
}
