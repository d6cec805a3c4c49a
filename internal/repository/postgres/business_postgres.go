package postgres

import (
	"context"
	"database/sql"

	"stallhub/internal/database"
	"stallhub/internal/model"
	"stallhub/internal/repository"
)

const businessColumns = `id, slug, name, description, owner_id, active, settings_json, created_at, updated_at`

// BusinessPostgres is a PostgreSQL implementation of repository.BusinessRepository.
type BusinessPostgres struct {
	db *sql.DB
}

func NewBusinessPostgres(db *sql.DB) *BusinessPostgres {
	return &BusinessPostgres{db: db}
}

var _ repository.BusinessRepository = (*BusinessPostgres)(nil)

func scanBusiness(s rowScanner) (*model.Business, error) {
	var (
		b        model.Business
		settings []byte
	)
	if err := s.Scan(&b.ID, &b.Slug, &b.Name, &b.Description, &b.OwnerID, &b.Active,
		&settings, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, err
	}
	b.Settings = model.DefaultBusinessSettings()
	if err := unmarshalJSON(settings, &b.Settings); err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BusinessPostgres) Create(ctx context.Context, b *model.Business) error {
	settings, err := marshalJSON(b.Settings)
	if err != nil {
		return err
	}
	const q = `
		INSERT INTO businesses (id, slug, name, description, owner_id, active, settings_json, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7::jsonb, $8, $9)
	`
	_, err = database.Conn(ctx, r.db).ExecContext(ctx, q,
		b.ID, b.Slug, b.Name, b.Description, b.OwnerID, b.Active, settings, b.CreatedAt, b.UpdatedAt)
	return mapWriteError(err)
}

func (r *BusinessPostgres) FindByID(ctx context.Context, id string) (*model.Business, error) {
	q := `SELECT ` + businessColumns + ` FROM businesses WHERE id = $1`
	return scanBusiness(database.Conn(ctx, r.db).QueryRowContext(ctx, q, id))
}

func (r *BusinessPostgres) FindBySlug(ctx context.Context, slug string) (*model.Business, error) {
	q := `SELECT ` + businessColumns + ` FROM businesses WHERE slug = $1`
	return scanBusiness(database.Conn(ctx, r.db).QueryRowContext(ctx, q, slug))
}

func (r *BusinessPostgres) Update(ctx context.Context, b *model.Business) error {
	settings, err := marshalJSON(b.Settings)
	if err != nil {
		return err
	}
	const q = `
		UPDATE businesses
		SET slug = $2, name = $3, description = $4, owner_id = $5, active = $6, settings_json = $7::jsonb, updated_at = $8
		WHERE id = $1
	`
	return expectAffected(database.Conn(ctx, r.db).ExecContext(ctx, q,
		b.ID, b.Slug, b.Name, b.Description, b.OwnerID, b.Active, settings, b.UpdatedAt))
}

func (r *BusinessPostgres) Delete(ctx context.Context, id string) error {
	return expectAffected(database.Conn(ctx, r.db).ExecContext(ctx, `DELETE FROM businesses WHERE id = $1`, id))
}

func (r *BusinessPostgres) List(ctx context.Context, f repository.BusinessFilter) (*repository.PageResult[model.Business], error) {
	var w whereBuilder
	if f.ActiveOnly {
		w.add(`active = ?`, true)
	}
	if f.Search != "" {
		p := likePattern(f.Search)
		w.add(`(name ILIKE ? OR slug ILIKE ?)`, p, p)
	}

	conn := database.Conn(ctx, r.db)

	var total int
	if err := conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM businesses`+w.String(), w.args...).Scan(&total); err != nil {
		return nil, err
	}

	q := `SELECT ` + businessColumns + ` FROM businesses` + w.String() +
		` ORDER BY name, id LIMIT ` + w.next(f.Page.Limit) + ` OFFSET ` + w.next(f.Page.Offset)
	rows, err := conn.QueryContext(ctx, q, w.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Business, 0)
	for rows.Next() {
		b, err := scanBusiness(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &repository.PageResult[model.Business]{Items: items, Total: total}, nil
}

func (r *BusinessPostgres) Count(ctx context.Context) (int, int, error) {
	const q = `SELECT COUNT(*), COUNT(*) FILTER (WHERE active) FROM businesses`
	var total, active int
	if err := database.Conn(ctx, r.db).QueryRowContext(ctx, q).Scan(&total, &active); err != nil {
		return 0, 0, err
	}
	return total, active, nil
}
