package repository

import (
	"context"

	"stallhub/internal/model"
)

type CartRepository interface {
	// Get returns sql.ErrNoRows when the user never had a cart.
	Get(ctx context.Context, userID string) (*model.Cart, error)
	// Save upserts the cart of c.UserID.
	Save(ctx context.Context, c *model.Cart) error
	Delete(ctx context.Context, userID string) error
}
