package model

import "time"

// DateRange is a half-open interval [From, To).
type DateRange struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// DailyRevenue is one point of the revenue series.
type DailyRevenue struct {
	Day          string `json:"day"`
	Orders       int    `json:"orders"`
	RevenueCents int64  `json:"revenue_cents"`
}

// ProductSales aggregates sold quantity of one product.
type ProductSales struct {
	ProductID    string `json:"product_id"`
	Name         string `json:"name"`
	Quantity     int    `json:"quantity"`
	RevenueCents int64  `json:"revenue_cents"`
}

// BusinessRevenue aggregates fulfilled revenue of one business.
type BusinessRevenue struct {
	BusinessID   string `json:"business_id"`
	Name         string `json:"name"`
	Orders       int    `json:"orders"`
	RevenueCents int64  `json:"revenue_cents"`
}

// AnalyticsReport is returned by the admin and business dashboards.
// Revenue figures only count fulfilled orders.
type AnalyticsReport struct {
	Range             DateRange           `json:"range"`
	BusinessID        string              `json:"business_id,omitempty"`
	OrdersByStatus    map[OrderStatus]int `json:"orders_by_status"`
	OrderCount        int                 `json:"order_count"`
	RevenueCents      int64               `json:"revenue_cents"`
	AverageOrderCents int64               `json:"average_order_cents"`
	Daily             []DailyRevenue      `json:"daily"`
	TopProducts       []ProductSales      `json:"top_products"`
	Businesses        []BusinessRevenue   `json:"businesses,omitempty"`
	Totals            *PlatformTotals     `json:"totals,omitempty"`
}

// PlatformTotals are entity counts shown on the super-admin console.
type PlatformTotals struct {
	Users            int `json:"users"`
	ActiveUsers      int `json:"active_users"`
	Businesses       int `json:"businesses"`
	ActiveBusinesses int `json:"active_businesses"`
}
