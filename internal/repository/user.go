package repository

import (
	"context"

	"stallhub/internal/model"
)

// UserFilter narrows user listings. Zero values match everything.
type UserFilter struct {
	Search string
	Role   model.RoleName
	Active *bool
	Page   PageQuery
}

type UserRepository interface {
	// Create inserts u. A taken email yields ErrDuplicate.
	Create(ctx context.Context, u *model.User) error
	FindByID(ctx context.Context, id string) (*model.User, error)
	// FindByEmail matches the lower-cased email.
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	// Update writes every mutable column of u.
	Update(ctx context.Context, u *model.User) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f UserFilter) (*PageResult[model.User], error)
	// ListByBusiness returns users holding any role scoped to the business.
	ListByBusiness(ctx context.Context, businessID string) ([]model.User, error)
	// Count returns the number of users and of active users.
	Count(ctx context.Context) (total int, active int, err error)
}
