package postgres

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"stallhub/internal/database"
	"stallhub/internal/model"
	"stallhub/internal/repository"
)

const magicLinkColumns = `id, user_id, email, token_hash, code_hash, purpose, attempts, expires_at, used_at, created_at`

// MagicLinkPostgres is a PostgreSQL implementation of repository.MagicLinkRepository.
type MagicLinkPostgres struct {
	db *sql.DB
}

func NewMagicLinkPostgres(db *sql.DB) *MagicLinkPostgres {
	return &MagicLinkPostgres{db: db}
}

var _ repository.MagicLinkRepository = (*MagicLinkPostgres)(nil)

func scanMagicLink(s rowScanner) (*model.MagicLink, error) {
	var (
		ml   model.MagicLink
		used sql.NullTime
	)
	if err := s.Scan(&ml.ID, &ml.UserID, &ml.Email, &ml.TokenHash, &ml.CodeHash, &ml.Purpose,
		&ml.Attempts, &ml.ExpiresAt, &used, &ml.CreatedAt); err != nil {
		return nil, err
	}
	ml.UsedAt = timePtr(used)
	return &ml, nil
}

func (r *MagicLinkPostgres) Create(ctx context.Context, ml *model.MagicLink) error {
	const q = `
		INSERT INTO magic_links (id, user_id, email, token_hash, code_hash, purpose, attempts, expires_at, used_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := database.Conn(ctx, r.db).ExecContext(ctx, q,
		ml.ID, ml.UserID, strings.ToLower(ml.Email), ml.TokenHash, ml.CodeHash, ml.Purpose,
		ml.Attempts, ml.ExpiresAt, nullTime(ml.UsedAt), ml.CreatedAt)
	return mapWriteError(err)
}

func (r *MagicLinkPostgres) FindByTokenHash(ctx context.Context, tokenHash string) (*model.MagicLink, error) {
	q := `SELECT ` + magicLinkColumns + ` FROM magic_links WHERE token_hash = $1`
	return scanMagicLink(database.Conn(ctx, r.db).QueryRowContext(ctx, q, tokenHash))
}

func (r *MagicLinkPostgres) FindLatestUnused(ctx context.Context, email string) (*model.MagicLink, error) {
	q := `SELECT ` + magicLinkColumns + ` FROM magic_links
		WHERE email = $1 AND used_at IS NULL
		ORDER BY created_at DESC, id DESC
		LIMIT 1`
	return scanMagicLink(database.Conn(ctx, r.db).QueryRowContext(ctx, q, strings.ToLower(email)))
}

func (r *MagicLinkPostgres) IncrementAttempts(ctx context.Context, id string, max int) error {
	err := expectAffected(database.Conn(ctx, r.db).ExecContext(ctx,
		`UPDATE magic_links SET attempts = attempts + 1 WHERE id = $1 AND attempts < $2`, id, max))
	if IsNoRowsError(err) {
		return repository.ErrStale
	}
	return err
}

func (r *MagicLinkPostgres) MarkUsed(ctx context.Context, id string, at time.Time) error {
	err := expectAffected(database.Conn(ctx, r.db).ExecContext(ctx,
		`UPDATE magic_links SET used_at = $2 WHERE id = $1 AND used_at IS NULL`, id, at))
	if IsNoRowsError(err) {
		return repository.ErrStale
	}
	return err
}

func (r *MagicLinkPostgres) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	res, err := database.Conn(ctx, r.db).ExecContext(ctx, `DELETE FROM magic_links WHERE expires_at < $1`, before)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
