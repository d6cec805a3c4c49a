package postgres

import (
	"context"
	"database/sql"
	"strings"

	"stallhub/internal/database"
	"stallhub/internal/model"
	"stallhub/internal/repository"
)

const userColumns = `id, email, name, phone, password_hash, roles_json, active, email_verified, last_login_at, created_at, updated_at`

// UserPostgres is a PostgreSQL implementation of repository.UserRepository.
type UserPostgres struct {
	db *sql.DB
}

func NewUserPostgres(db *sql.DB) *UserPostgres {
	return &UserPostgres{db: db}
}

var _ repository.UserRepository = (*UserPostgres)(nil)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(s rowScanner) (*model.User, error) {
	var (
		u     model.User
		roles []byte
		last  sql.NullTime
	)
	if err := s.Scan(&u.ID, &u.Email, &u.Name, &u.Phone, &u.PasswordHash, &roles,
		&u.Active, &u.EmailVerified, &last, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	if err := unmarshalJSON(roles, &u.Roles); err != nil {
		return nil, err
	}
	u.LastLoginAt = timePtr(last)
	return &u, nil
}

func (r *UserPostgres) Create(ctx context.Context, u *model.User) error {
	roles, err := marshalJSON(u.Roles)
	if err != nil {
		return err
	}
	const q = `
		INSERT INTO users (id, email, name, phone, password_hash, roles_json, active, email_verified, last_login_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6::jsonb, $7, $8, $9, $10, $11)
	`
	_, err = database.Conn(ctx, r.db).ExecContext(ctx, q,
		u.ID, strings.ToLower(u.Email), u.Name, u.Phone, u.PasswordHash, roles,
		u.Active, u.EmailVerified, nullTime(u.LastLoginAt), u.CreatedAt, u.UpdatedAt,
	)
	return mapWriteError(err)
}

func (r *UserPostgres) FindByID(ctx context.Context, id string) (*model.User, error) {
	q := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(database.Conn(ctx, r.db).QueryRowContext(ctx, q, id))
}

func (r *UserPostgres) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	q := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return scanUser(database.Conn(ctx, r.db).QueryRowContext(ctx, q, strings.ToLower(email)))
}

func (r *UserPostgres) Update(ctx context.Context, u *model.User) error {
	roles, err := marshalJSON(u.Roles)
	if err != nil {
		return err
	}
	const q = `
		UPDATE users
		SET email = $2, name = $3, phone = $4, password_hash = $5, roles_json = $6::jsonb,
		    active = $7, email_verified = $8, last_login_at = $9, updated_at = $10
		WHERE id = $1
	`
	return expectAffected(database.Conn(ctx, r.db).ExecContext(ctx, q,
		u.ID, strings.ToLower(u.Email), u.Name, u.Phone, u.PasswordHash, roles,
		u.Active, u.EmailVerified, nullTime(u.LastLoginAt), u.UpdatedAt,
	))
}

func (r *UserPostgres) Delete(ctx context.Context, id string) error {
	return expectAffected(database.Conn(ctx, r.db).ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id))
}

func (r *UserPostgres) List(ctx context.Context, f repository.UserFilter) (*repository.PageResult[model.User], error) {
	var w whereBuilder
	if f.Search != "" {
		p := likePattern(f.Search)
		w.add(`(email ILIKE ? OR name ILIKE ?)`, p, p)
	}
	if f.Role != "" {
		filter, err := marshalJSON([]model.RoleAssignment{{Role: f.Role}})
		if err != nil {
			return nil, err
		}
		w.add(`roles_json @> ?::jsonb`, filter)
	}
	if f.Active != nil {
		w.add(`active = ?`, *f.Active)
	}

	conn := database.Conn(ctx, r.db)

	var total int
	if err := conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`+w.String(), w.args...).Scan(&total); err != nil {
		return nil, err
	}

	q := `SELECT ` + userColumns + ` FROM users` + w.String() +
		` ORDER BY created_at DESC, id DESC LIMIT ` + w.next(f.Page.Limit) + ` OFFSET ` + w.next(f.Page.Offset)
	rows, err := conn.QueryContext(ctx, q, w.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &repository.PageResult[model.User]{Items: items, Total: total}, nil
}

func (r *UserPostgres) ListByBusiness(ctx context.Context, businessID string) ([]model.User, error) {
	filter, err := marshalJSON([]map[string]string{{"business_id": businessID}})
	if err != nil {
		return nil, err
	}
	q := `SELECT ` + userColumns + ` FROM users WHERE roles_json @> $1::jsonb ORDER BY name, id`
	rows, err := database.Conn(ctx, r.db).QueryContext(ctx, q, filter)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *u)
	}
	return items, rows.Err()
}

func (r *UserPostgres) Count(ctx context.Context) (int, int, error) {
	const q = `SELECT COUNT(*), COUNT(*) FILTER (WHERE active) FROM users`
	var total, active int
	if err := database.Conn(ctx, r.db).QueryRowContext(ctx, q).Scan(&total, &active); err != nil {
		return 0, 0, err
	}
	return total, active, nil
}
