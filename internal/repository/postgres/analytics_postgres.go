package postgres

import (
	"context"
	"database/sql"

	"stallhub/internal/database"
	"stallhub/internal/model"
	"stallhub/internal/repository"
)

// AnalyticsPostgres runs dashboard aggregates over the orders table.
type AnalyticsPostgres struct {
	db *sql.DB
}

func NewAnalyticsPostgres(db *sql.DB) *AnalyticsPostgres {
	return &AnalyticsPostgres{db: db}
}

var _ repository.AnalyticsRepository = (*AnalyticsPostgres)(nil)

// scope builds the common range and business conditions on the orders alias o.
func scope(f repository.AnalyticsFilter) *whereBuilder {
	w := &whereBuilder{}
	w.add(`o.created_at >= ?`, f.From)
	w.add(`o.created_at < ?`, f.To)
	if f.BusinessID != "" {
		w.add(`o.business_id = ?`, f.BusinessID)
	}
	return w
}

func fulfilledScope(f repository.AnalyticsFilter) *whereBuilder {
	w := scope(f)
	w.add(`o.status = ?`, string(model.OrderFulfilled))
	return w
}

func (r *AnalyticsPostgres) OrdersByStatus(ctx context.Context, f repository.AnalyticsFilter) (map[model.OrderStatus]int, error) {
	w := scope(f)
	q := `SELECT o.status, COUNT(*) FROM orders o` + w.String() + ` GROUP BY o.status`
	rows, err := database.Conn(ctx, r.db).QueryContext(ctx, q, w.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[model.OrderStatus]int)
	for rows.Next() {
		var (
			status model.OrderStatus
			n      int
		)
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		out[status] = n
	}
	return out, rows.Err()
}

func (r *AnalyticsPostgres) Revenue(ctx context.Context, f repository.AnalyticsFilter) (int, int64, error) {
	w := fulfilledScope(f)
	q := `SELECT COUNT(*), COALESCE(SUM(o.total_cents), 0) FROM orders o` + w.String()
	var (
		orders  int
		revenue int64
	)
	if err := database.Conn(ctx, r.db).QueryRowContext(ctx, q, w.args...).Scan(&orders, &revenue); err != nil {
		return 0, 0, err
	}
	return orders, revenue, nil
}

func (r *AnalyticsPostgres) DailyRevenue(ctx context.Context, f repository.AnalyticsFilter) ([]model.DailyRevenue, error) {
	tz := f.Timezone
	if tz == "" {
		tz = "UTC"
	}
	w := fulfilledScope(f)
	tzArg := w.next(tz)
	q := `SELECT to_char(o.created_at AT TIME ZONE ` + tzArg + `, 'YYYY-MM-DD') AS day,
		COUNT(*), COALESCE(SUM(o.total_cents), 0)
		FROM orders o` + w.String() + `
		GROUP BY day ORDER BY day`
	rows, err := database.Conn(ctx, r.db).QueryContext(ctx, q, w.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.DailyRevenue, 0)
	for rows.Next() {
		var d model.DailyRevenue
		if err := rows.Scan(&d.Day, &d.Orders, &d.RevenueCents); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *AnalyticsPostgres) TopProducts(ctx context.Context, f repository.AnalyticsFilter, limit int) ([]model.ProductSales, error) {
	w := fulfilledScope(f)
	q := `SELECT i.product_id, MAX(i.name), SUM(i.quantity), SUM(i.line_total_cents)
		FROM orders o
		CROSS JOIN LATERAL jsonb_to_recordset(o.items_json) AS i(product_id text, name text, quantity int, line_total_cents bigint)` +
		w.String() + `
		GROUP BY i.product_id
		ORDER BY SUM(i.quantity) DESC, i.product_id
		LIMIT ` + w.next(limit)
	rows, err := database.Conn(ctx, r.db).QueryContext(ctx, q, w.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.ProductSales, 0)
	for rows.Next() {
		var p model.ProductSales
		if err := rows.Scan(&p.ProductID, &p.Name, &p.Quantity, &p.RevenueCents); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *AnalyticsPostgres) RevenueByBusiness(ctx context.Context, f repository.AnalyticsFilter, limit int) ([]model.BusinessRevenue, error) {
	w := fulfilledScope(f)
	q := `SELECT o.business_id, COALESCE(MAX(b.name), ''), COUNT(*), COALESCE(SUM(o.total_cents), 0)
		FROM orders o
		LEFT JOIN businesses b ON b.id = o.business_id` +
		w.String() + `
		GROUP BY o.business_id
		ORDER BY SUM(o.total_cents) DESC, o.business_id
		LIMIT ` + w.next(limit)
	rows, err := database.Conn(ctx, r.db).QueryContext(ctx, q, w.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.BusinessRevenue, 0)
	for rows.Next() {
		var b model.BusinessRevenue
		if err := rows.Scan(&b.BusinessID, &b.Name, &b.Orders, &b.RevenueCents); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
