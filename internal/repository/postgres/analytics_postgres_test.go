package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stallhub/internal/model"
	"stallhub/internal/repository"
)

func TestAnalyticsPostgres(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewAnalyticsPostgres(db)
	ctx := context.Background()
	to := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)
	from := to.AddDate(0, 0, -30)
	f := repository.AnalyticsFilter{BusinessID: "b-1", From: from, To: to, Timezone: "Asia/Jakarta"}

	t.Run("orders by status", func(t *testing.T) {
		mock.ExpectQuery(`SELECT o.status, COUNT\(\*\) FROM orders o WHERE (.+) GROUP BY o.status`).
			WithArgs(from, to, "b-1").
			WillReturnRows(sqlmock.NewRows([]string{"status", "count"}).
				AddRow("pending", 3).
				AddRow("fulfilled", 10))

		got, err := repo.OrdersByStatus(ctx, f)
		require.NoError(t, err)
		assert.Equal(t, map[model.OrderStatus]int{model.OrderPending: 3, model.OrderFulfilled: 10}, got)
	})

	t.Run("revenue", func(t *testing.T) {
		mock.ExpectQuery(`SELECT COUNT\(\*\), COALESCE\(SUM\(o.total_cents\), 0\) FROM orders o WHERE`).
			WithArgs(from, to, "b-1", "fulfilled").
			WillReturnRows(sqlmock.NewRows([]string{"count", "sum"}).AddRow(10, 25000))

		n, rev, err := repo.Revenue(ctx, f)
		require.NoError(t, err)
		assert.Equal(t, 10, n)
		assert.Equal(t, int64(25000), rev)
	})

	t.Run("daily in timezone", func(t *testing.T) {
		mock.ExpectQuery(`AT TIME ZONE \$5`).
			WithArgs(from, to, "b-1", "fulfilled", "Asia/Jakarta").
			WillReturnRows(sqlmock.NewRows([]string{"day", "count", "sum"}).
				AddRow("2025-03-01", 4, 10000).
				AddRow("2025-03-02", 6, 15000))

		days, err := repo.DailyRevenue(ctx, f)
		require.NoError(t, err)
		require.Len(t, days, 2)
		assert.Equal(t, "2025-03-02", days[1].Day)
	})

	t.Run("top products", func(t *testing.T) {
		mock.ExpectQuery(`jsonb_to_recordset\(o.items_json\)(.+)LIMIT \$5`).
			WithArgs(from, to, "b-1", "fulfilled", 5).
			WillReturnRows(sqlmock.NewRows([]string{"product_id", "name", "qty", "sum"}).
				AddRow("p-1", "Laksa", 30, 37500))

		top, err := repo.TopProducts(ctx, f, 5)
		require.NoError(t, err)
		assert.Equal(t, []model.ProductSales{{ProductID: "p-1", Name: "Laksa", Quantity: 30, RevenueCents: 37500}}, top)
	})

	t.Run("revenue by business platform wide", func(t *testing.T) {
		pf := repository.AnalyticsFilter{From: from, To: to}
		mock.ExpectQuery(`LEFT JOIN businesses b (.+) GROUP BY o.business_id`).
			WithArgs(from, to, "fulfilled", 10).
			WillReturnRows(sqlmock.NewRows([]string{"business_id", "name", "count", "sum"}).
				AddRow("b-1", "Night Market", 10, 25000))

		rows, err := repo.RevenueByBusiness(ctx, pf, 10)
		require.NoError(t, err)
		assert.Len(t, rows, 1)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
