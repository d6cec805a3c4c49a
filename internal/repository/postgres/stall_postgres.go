package postgres

import (
	"context"
	"database/sql"

	"stallhub/internal/database"
	"stallhub/internal/model"
	"stallhub/internal/repository"
)

const stallColumns = `id, business_id, name, description, active, sort_order, created_at, updated_at`

// StallPostgres is a PostgreSQL implementation of repository.StallRepository.
type StallPostgres struct {
	db *sql.DB
}

func NewStallPostgres(db *sql.DB) *StallPostgres {
	return &StallPostgres{db: db}
}

var _ repository.StallRepository = (*StallPostgres)(nil)

func scanStall(s rowScanner) (*model.Stall, error) {
	var st model.Stall
	if err := s.Scan(&st.ID, &st.BusinessID, &st.Name, &st.Description, &st.Active,
		&st.SortOrder, &st.CreatedAt, &st.UpdatedAt); err != nil {
		return nil, err
	}
	return &st, nil
}

func (r *StallPostgres) Create(ctx context.Context, s *model.Stall) error {
	const q = `
		INSERT INTO stalls (id, business_id, name, description, active, sort_order, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := database.Conn(ctx, r.db).ExecContext(ctx, q,
		s.ID, s.BusinessID, s.Name, s.Description, s.Active, s.SortOrder, s.CreatedAt, s.UpdatedAt)
	return mapWriteError(err)
}

func (r *StallPostgres) FindByID(ctx context.Context, id string) (*model.Stall, error) {
	q := `SELECT ` + stallColumns + ` FROM stalls WHERE id = $1`
	return scanStall(database.Conn(ctx, r.db).QueryRowContext(ctx, q, id))
}

func (r *StallPostgres) Update(ctx context.Context, s *model.Stall) error {
	const q = `
		UPDATE stalls SET name = $2, description = $3, active = $4, sort_order = $5, updated_at = $6
		WHERE id = $1
	`
	return expectAffected(database.Conn(ctx, r.db).ExecContext(ctx, q,
		s.ID, s.Name, s.Description, s.Active, s.SortOrder, s.UpdatedAt))
}

func (r *StallPostgres) Delete(ctx context.Context, id string) error {
	return expectAffected(database.Conn(ctx, r.db).ExecContext(ctx, `DELETE FROM stalls WHERE id = $1`, id))
}

func (r *StallPostgres) ListByBusiness(ctx context.Context, businessID string, activeOnly bool) ([]model.Stall, error) {
	q := `SELECT ` + stallColumns + ` FROM stalls WHERE business_id = $1`
	if activeOnly {
		q += ` AND active`
	}
	q += ` ORDER BY sort_order, name, id`

	rows, err := database.Conn(ctx, r.db).QueryContext(ctx, q, businessID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Stall, 0)
	for rows.Next() {
		s, err := scanStall(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *s)
	}
	return items, rows.Err()
}
