package postgres

import (
	"context"
	"database/sql"
	"time"

	"stallhub/internal/database"
	"stallhub/internal/model"
	"stallhub/internal/repository"
)

const orderColumns = `id, number, business_id, stall_id, customer_id, customer_name, status, items_json,
	subtotal_cents, tax_cents, total_cents, notes, cancel_reason, created_at, updated_at`

// OrderPostgres is a PostgreSQL implementation of repository.OrderRepository.
type OrderPostgres struct {
	db *sql.DB
}

func NewOrderPostgres(db *sql.DB) *OrderPostgres {
	return &OrderPostgres{db: db}
}

var _ repository.OrderRepository = (*OrderPostgres)(nil)

func scanOrder(s rowScanner) (*model.Order, error) {
	var (
		o     model.Order
		items []byte
	)
	if err := s.Scan(&o.ID, &o.Number, &o.BusinessID, &o.StallID, &o.CustomerID, &o.CustomerName,
		&o.Status, &items, &o.SubtotalCents, &o.TaxCents, &o.TotalCents, &o.Notes, &o.CancelReason,
		&o.CreatedAt, &o.UpdatedAt); err != nil {
		return nil, err
	}
	if err := unmarshalJSON(items, &o.Items); err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderPostgres) Create(ctx context.Context, o *model.Order) error {
	items, err := marshalJSON(o.Items)
	if err != nil {
		return err
	}
	const q = `
		INSERT INTO orders (id, number, business_id, stall_id, customer_id, customer_name, status, items_json,
		                    subtotal_cents, tax_cents, total_cents, notes, cancel_reason, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8::jsonb, $9, $10, $11, $12, $13, $14, $15)
	`
	_, err = database.Conn(ctx, r.db).ExecContext(ctx, q,
		o.ID, o.Number, o.BusinessID, o.StallID, o.CustomerID, o.CustomerName, o.Status, items,
		o.SubtotalCents, o.TaxCents, o.TotalCents, o.Notes, o.CancelReason, o.CreatedAt, o.UpdatedAt)
	return mapWriteError(err)
}

func (r *OrderPostgres) FindByID(ctx context.Context, id string) (*model.Order, error) {
	q := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	return scanOrder(database.Conn(ctx, r.db).QueryRowContext(ctx, q, id))
}

func (r *OrderPostgres) UpdateStatus(ctx context.Context, id string, from, to model.OrderStatus, cancelReason string, at time.Time) error {
	const q = `
		UPDATE orders
		SET status = $3, cancel_reason = CASE WHEN $4 = '' THEN cancel_reason ELSE $4 END, updated_at = $5
		WHERE id = $1 AND status = $2
	`
	err := expectAffected(database.Conn(ctx, r.db).ExecContext(ctx, q, id, from, to, cancelReason, at))
	if IsNoRowsError(err) {
		return repository.ErrStale
	}
	return err
}

func (r *OrderPostgres) List(ctx context.Context, f repository.OrderFilter) (*repository.PageResult[model.Order], error) {
	var w whereBuilder
	if f.CustomerID != "" {
		w.add(`customer_id = ?`, f.CustomerID)
	}
	if f.BusinessID != "" {
		w.add(`business_id = ?`, f.BusinessID)
	}
	if f.StallID != "" {
		w.add(`stall_id = ?`, f.StallID)
	}
	if len(f.StallIDs) > 0 {
		w.add(`stall_id = ANY(?)`, f.StallIDs)
	}
	if f.Status != "" {
		w.add(`status = ?`, f.Status)
	}

	conn := database.Conn(ctx, r.db)

	var total int
	if err := conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM orders`+w.String(), w.args...).Scan(&total); err != nil {
		return nil, err
	}

	q := `SELECT ` + orderColumns + ` FROM orders` + w.String() +
		` ORDER BY created_at DESC, id DESC LIMIT ` + w.next(f.Page.Limit) + ` OFFSET ` + w.next(f.Page.Offset)
	rows, err := conn.QueryContext(ctx, q, w.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &repository.PageResult[model.Order]{Items: items, Total: total}, nil
}

func (r *OrderPostgres) AddEvent(ctx context.Context, e *model.OrderEvent) error {
	const q = `
		INSERT INTO order_status_events (id, order_id, from_status, to_status, actor_id, reason, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := database.Conn(ctx, r.db).ExecContext(ctx, q,
		e.ID, e.OrderID, e.FromStatus, e.ToStatus, e.ActorID, e.Reason, e.CreatedAt)
	return mapWriteError(err)
}

func (r *OrderPostgres) Events(ctx context.Context, orderID string) ([]model.OrderEvent, error) {
	const q = `
		SELECT id, order_id, from_status, to_status, actor_id, reason, created_at
		FROM order_status_events
		WHERE order_id = $1
		ORDER BY created_at, id
	`
	rows, err := database.Conn(ctx, r.db).QueryContext(ctx, q, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.OrderEvent, 0)
	for rows.Next() {
		var e model.OrderEvent
		if err := rows.Scan(&e.ID, &e.OrderID, &e.FromStatus, &e.ToStatus, &e.ActorID, &e.Reason, &e.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, e)
	}
	return items, rows.Err()
}
