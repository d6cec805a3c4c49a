package postgres

import (
	"context"
	"database/sql"

	"stallhub/internal/database"
	"stallhub/internal/model"
	"stallhub/internal/repository"
)

const productColumns = `id, business_id, stall_id, name, description, category, price_cents, available, image_key, created_at, updated_at`

// ProductPostgres is a PostgreSQL implementation of repository.ProductRepository.
type ProductPostgres struct {
	db *sql.DB
}

func NewProductPostgres(db *sql.DB) *ProductPostgres {
	return &ProductPostgres{db: db}
}

var _ repository.ProductRepository = (*ProductPostgres)(nil)

func scanProduct(s rowScanner) (*model.Product, error) {
	var p model.Product
	if err := s.Scan(&p.ID, &p.BusinessID, &p.StallID, &p.Name, &p.Description, &p.Category,
		&p.PriceCents, &p.Available, &p.ImageKey, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProductPostgres) Create(ctx context.Context, p *model.Product) error {
	const q = `
		INSERT INTO products (id, business_id, stall_id, name, description, category, price_cents, available, image_key, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := database.Conn(ctx, r.db).ExecContext(ctx, q,
		p.ID, p.BusinessID, p.StallID, p.Name, p.Description, p.Category,
		p.PriceCents, p.Available, p.ImageKey, p.CreatedAt, p.UpdatedAt)
	return mapWriteError(err)
}

func (r *ProductPostgres) FindByID(ctx context.Context, id string) (*model.Product, error) {
	q := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	return scanProduct(database.Conn(ctx, r.db).QueryRowContext(ctx, q, id))
}

func (r *ProductPostgres) Update(ctx context.Context, p *model.Product) error {
	const q = `
		UPDATE products
		SET name = $2, description = $3, category = $4, price_cents = $5, available = $6, image_key = $7, updated_at = $8
		WHERE id = $1
	`
	return expectAffected(database.Conn(ctx, r.db).ExecContext(ctx, q,
		p.ID, p.Name, p.Description, p.Category, p.PriceCents, p.Available, p.ImageKey, p.UpdatedAt))
}

func (r *ProductPostgres) Delete(ctx context.Context, id string) error {
	return expectAffected(database.Conn(ctx, r.db).ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id))
}

func (r *ProductPostgres) ListByStall(ctx context.Context, stallID string, availableOnly bool) ([]model.Product, error) {
	q := `SELECT ` + productColumns + ` FROM products WHERE stall_id = $1`
	if availableOnly {
		q += ` AND available`
	}
	q += ` ORDER BY category, name, id`

	rows, err := database.Conn(ctx, r.db).QueryContext(ctx, q, stallID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *p)
	}
	return items, rows.Err()
}
