package repository

import (
	"context"
	"time"

	"stallhub/internal/model"
)

// OrderFilter narrows order listings. Empty fields match everything;
// StallIDs matches an order at any of the listed stalls.
type OrderFilter struct {
	CustomerID string
	BusinessID string
	StallID    string
	StallIDs   []string
	Status     model.OrderStatus
	Page       PageQuery
}

type OrderRepository interface {
	// Create inserts o. A taken order number yields ErrDuplicate.
	Create(ctx context.Context, o *model.Order) error
	FindByID(ctx context.Context, id string) (*model.Order, error)
	// UpdateStatus moves the order from one status to another only if it is still
	// in from; otherwise it returns ErrStale.
	UpdateStatus(ctx context.Context, id string, from, to model.OrderStatus, cancelReason string, at time.Time) error
	// List orders newest first.
	List(ctx context.Context, f OrderFilter) (*PageResult[model.Order], error)
	AddEvent(ctx context.Context, e *model.OrderEvent) error
	// Events returns the status history oldest first.
	Events(ctx context.Context, orderID string) ([]model.OrderEvent, error)
}
