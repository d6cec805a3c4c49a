package repository

import (
	"context"
	"time"

	"stallhub/internal/model"
)

type MagicLinkRepository interface {
	Create(ctx context.Context, ml *model.MagicLink) error
	FindByTokenHash(ctx context.Context, tokenHash string) (*model.MagicLink, error)
	// FindLatestUnused returns the newest link for email that has not been redeemed.
	FindLatestUnused(ctx context.Context, email string) (*model.MagicLink, error)
	// IncrementAttempts records a code guess while fewer than max were made;
	// once the link is locked it returns ErrStale.
	IncrementAttempts(ctx context.Context, id string, max int) error
	// MarkUsed redeems the link once; a second call returns ErrStale.
	MarkUsed(ctx context.Context, id string, at time.Time) error
	// DeleteExpired removes links that expired before the given time.
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}
