package postgres

import (
	"context"
	"database/sql"

	"stallhub/internal/database"
	"stallhub/internal/model"
	"stallhub/internal/repository"
)

// CartPostgres stores one row per user with the lines in items_json.
type CartPostgres struct {
	db *sql.DB
}

func NewCartPostgres(db *sql.DB) *CartPostgres {
	return &CartPostgres{db: db}
}

var _ repository.CartRepository = (*CartPostgres)(nil)

func (r *CartPostgres) Get(ctx context.Context, userID string) (*model.Cart, error) {
	const q = `SELECT user_id, COALESCE(business_id::text, ''), items_json, updated_at FROM carts WHERE user_id = $1`
	var (
		c     model.Cart
		items []byte
	)
	if err := database.Conn(ctx, r.db).QueryRowContext(ctx, q, userID).
		Scan(&c.UserID, &c.BusinessID, &items, &c.UpdatedAt); err != nil {
		return nil, err
	}
	if err := unmarshalJSON(items, &c.Items); err != nil {
		return nil, err
	}
	if c.Items == nil {
		c.Items = []model.CartItem{}
	}
	return &c, nil
}

func (r *CartPostgres) Save(ctx context.Context, c *model.Cart) error {
	items := c.Items
	if items == nil {
		items = []model.CartItem{}
	}
	raw, err := marshalJSON(items)
	if err != nil {
		return err
	}
	var businessID sql.NullString
	if c.BusinessID != "" {
		businessID = sql.NullString{String: c.BusinessID, Valid: true}
	}

	const q = `
		INSERT INTO carts (user_id, business_id, items_json, updated_at)
		VALUES ($1, $2, $3::jsonb, $4)
		ON CONFLICT (user_id) DO UPDATE
		SET business_id = EXCLUDED.business_id, items_json = EXCLUDED.items_json, updated_at = EXCLUDED.updated_at
	`
	_, err = database.Conn(ctx, r.db).ExecContext(ctx, q, c.UserID, businessID, raw, c.UpdatedAt)
	return mapWriteError(err)
}

// Delete is idempotent: deleting a missing cart is not an error.
func (r *CartPostgres) Delete(ctx context.Context, userID string) error {
	_, err := database.Conn(ctx, r.db).ExecContext(ctx, `DELETE FROM carts WHERE user_id = $1`, userID)
	return err
}
