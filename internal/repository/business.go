package repository

import (
	"context"

	"stallhub/internal/model"
)

// BusinessFilter narrows business listings.
type BusinessFilter struct {
	Search     string
	ActiveOnly bool
	Page       PageQuery
}

type BusinessRepository interface {
	// Create inserts b. A taken slug yields ErrDuplicate.
	Create(ctx context.Context, b *model.Business) error
	FindByID(ctx context.Context, id string) (*model.Business, error)
	FindBySlug(ctx context.Context, slug string) (*model.Business, error)
	Update(ctx context.Context, b *model.Business) error
	// Delete removes the business; stalls and products go with it.
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f BusinessFilter) (*PageResult[model.Business], error)
	Count(ctx context.Context) (total int, active int, err error)
}

type StallRepository interface {
	Create(ctx context.Context, s *model.Stall) error
	FindByID(ctx context.Context, id string) (*model.Stall, error)
	Update(ctx context.Context, s *model.Stall) error
	Delete(ctx context.Context, id string) error
	// ListByBusiness orders by sort_order then name.
	ListByBusiness(ctx context.Context, businessID string, activeOnly bool) ([]model.Stall, error)
}

type ProductRepository interface {
	Create(ctx context.Context, p *model.Product) error
	FindByID(ctx context.Context, id string) (*model.Product, error)
	Update(ctx context.Context, p *model.Product) error
	Delete(ctx context.Context, id string) error
	// ListByStall orders by category then name.
	ListByStall(ctx context.Context, stallID string, availableOnly bool) ([]model.Product, error)
}
