package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"stallhub/internal/model"
	"stallhub/internal/service"
)

type MockCartService struct {
	mock.Mock
}

func cartView(args mock.Arguments) (*model.CartView, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CartView), args.Error(1)
}

func (m *MockCartService) Get(ctx context.Context, p model.Principal) (*model.CartView, error) {
	return cartView(m.Called(ctx, p))
}

func (m *MockCartService) AddItem(ctx context.Context, p model.Principal, in service.CartItemInput) (*model.CartView, error) {
	return cartView(m.Called(ctx, p, in))
}

func (m *MockCartService) UpdateItem(ctx context.Context, p model.Principal, productID string, in service.CartLineUpdate) (*model.CartView, error) {
	return cartView(m.Called(ctx, p, productID, in))
}

func (m *MockCartService) RemoveItem(ctx context.Context, p model.Principal, productID string) (*model.CartView, error) {
	return cartView(m.Called(ctx, p, productID))
}

func (m *MockCartService) Clear(ctx context.Context, p model.Principal) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

type MockOrderService struct {
	mock.Mock
}

func orders(args mock.Arguments) ([]model.Order, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Order), args.Error(1)
}

func order(args mock.Arguments) (*model.Order, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func orderPage(args mock.Arguments) (*service.Page[model.Order], error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Page[model.Order]), args.Error(1)
}

func (m *MockOrderService) Checkout(ctx context.Context, p model.Principal, notes string) ([]model.Order, error) {
	return orders(m.Called(ctx, p, notes))
}

func (m *MockOrderService) Place(ctx context.Context, p model.Principal, items []service.PlaceItem, notes string) ([]model.Order, error) {
	return orders(m.Called(ctx, p, items, notes))
}

func (m *MockOrderService) Get(ctx context.Context, p model.Principal, id string) (*model.Order, error) {
	return order(m.Called(ctx, p, id))
}

func (m *MockOrderService) ListMine(ctx context.Context, p model.Principal, q service.OrderQuery) (*service.Page[model.Order], error) {
	return orderPage(m.Called(ctx, p, q))
}

func (m *MockOrderService) ListForBusiness(ctx context.Context, p model.Principal, businessID string, q service.OrderQuery) (*service.Page[model.Order], error) {
	return orderPage(m.Called(ctx, p, businessID, q))
}

func (m *MockOrderService) UpdateStatus(ctx context.Context, p model.Principal, id string, to model.OrderStatus, reason string) (*model.Order, error) {
	return order(m.Called(ctx, p, id, to, reason))
}

func (m *MockOrderService) Cancel(ctx context.Context, p model.Principal, id string, reason string) (*model.Order, error) {
	return order(m.Called(ctx, p, id, reason))
}

func (m *MockOrderService) Events(ctx context.Context, p model.Principal, id string) ([]model.OrderEvent, error) {
	args := m.Called(ctx, p, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.OrderEvent), args.Error(1)
}
