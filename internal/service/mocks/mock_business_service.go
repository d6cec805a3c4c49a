package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"stallhub/internal/model"
	"stallhub/internal/service"
)

type MockBusinessService struct {
	mock.Mock
}

func business(args mock.Arguments) (*model.Business, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Business), args.Error(1)
}

func (m *MockBusinessService) Create(ctx context.Context, p model.Principal, in service.BusinessInput) (*model.Business, error) {
	return business(m.Called(ctx, p, in))
}

func (m *MockBusinessService) Get(ctx context.Context, p model.Principal, idOrSlug string) (*model.Business, error) {
	return business(m.Called(ctx, p, idOrSlug))
}

func (m *MockBusinessService) List(ctx context.Context, p model.Principal, q service.BusinessQuery) (*service.Page[model.Business], error) {
	args := m.Called(ctx, p, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Page[model.Business]), args.Error(1)
}

func (m *MockBusinessService) Update(ctx context.Context, p model.Principal, id string, in service.BusinessUpdate) (*model.Business, error) {
	return business(m.Called(ctx, p, id, in))
}

func (m *MockBusinessService) Delete(ctx context.Context, p model.Principal, id string) error {
	args := m.Called(ctx, p, id)
	return args.Error(0)
}

func (m *MockBusinessService) AddStaff(ctx context.Context, p model.Principal, businessID string, in service.StaffInput) (*model.User, error) {
	args := m.Called(ctx, p, businessID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockBusinessService) ListStaff(ctx context.Context, p model.Principal, businessID string) ([]model.User, error) {
	args := m.Called(ctx, p, businessID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

type MockStallService struct {
	mock.Mock
}

func stall(args mock.Arguments) (*model.Stall, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Stall), args.Error(1)
}

func (m *MockStallService) Create(ctx context.Context, p model.Principal, businessID string, in service.StallInput) (*model.Stall, error) {
	return stall(m.Called(ctx, p, businessID, in))
}

func (m *MockStallService) Get(ctx context.Context, p model.Principal, id string) (*model.Stall, error) {
	return stall(m.Called(ctx, p, id))
}

func (m *MockStallService) ListByBusiness(ctx context.Context, p model.Principal, businessID string) ([]model.Stall, error) {
	args := m.Called(ctx, p, businessID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Stall), args.Error(1)
}

func (m *MockStallService) Update(ctx context.Context, p model.Principal, id string, in service.StallUpdate) (*model.Stall, error) {
	return stall(m.Called(ctx, p, id, in))
}

func (m *MockStallService) Delete(ctx context.Context, p model.Principal, id string) error {
	args := m.Called(ctx, p, id)
	return args.Error(0)
}

type MockProductService struct {
	mock.Mock
}

func product(args mock.Arguments) (*model.Product, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductService) Create(ctx context.Context, p model.Principal, stallID string, in service.ProductInput) (*model.Product, error) {
	return product(m.Called(ctx, p, stallID, in))
}

func (m *MockProductService) Get(ctx context.Context, p model.Principal, id string) (*model.Product, error) {
	return product(m.Called(ctx, p, id))
}

func (m *MockProductService) ListByStall(ctx context.Context, p model.Principal, stallID string) ([]model.Product, error) {
	args := m.Called(ctx, p, stallID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockProductService) Update(ctx context.Context, p model.Principal, id string, in service.ProductUpdate) (*model.Product, error) {
	return product(m.Called(ctx, p, id, in))
}

func (m *MockProductService) Delete(ctx context.Context, p model.Principal, id string) error {
	args := m.Called(ctx, p, id)
	return args.Error(0)
}

func (m *MockProductService) UploadImage(ctx context.Context, p model.Principal, id string, img service.ImageUpload) (*model.Product, error) {
	return product(m.Called(ctx, p, id, img))
}
