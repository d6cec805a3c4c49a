package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"stallhub/internal/model"
	"stallhub/internal/monitor"
	"stallhub/internal/service"
)

type MockAnalyticsService struct {
	mock.Mock
}

func report(args mock.Arguments) (*model.AnalyticsReport, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AnalyticsReport), args.Error(1)
}

func (m *MockAnalyticsService) Platform(ctx context.Context, p model.Principal, r model.DateRange) (*model.AnalyticsReport, error) {
	return report(m.Called(ctx, p, r))
}

func (m *MockAnalyticsService) Business(ctx context.Context, p model.Principal, businessID string, r model.DateRange) (*model.AnalyticsReport, error) {
	return report(m.Called(ctx, p, businessID, r))
}

type MockAdminService struct {
	mock.Mock
}

func user(args mock.Arguments) (*model.User, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockAdminService) ListUsers(ctx context.Context, p model.Principal, q service.UserQuery) (*service.Page[model.User], error) {
	args := m.Called(ctx, p, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Page[model.User]), args.Error(1)
}

func (m *MockAdminService) SetActive(ctx context.Context, p model.Principal, userID string, active bool) (*model.User, error) {
	return user(m.Called(ctx, p, userID, active))
}

func (m *MockAdminService) SetRoles(ctx context.Context, p model.Principal, userID string, roles []model.RoleAssignment) (*model.User, error) {
	return user(m.Called(ctx, p, userID, roles))
}

func (m *MockAdminService) DeleteUser(ctx context.Context, p model.Principal, userID string) error {
	args := m.Called(ctx, p, userID)
	return args.Error(0)
}

func (m *MockAdminService) ListBusinesses(ctx context.Context, p model.Principal, q service.BusinessQuery) (*service.Page[model.Business], error) {
	args := m.Called(ctx, p, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Page[model.Business]), args.Error(1)
}

func (m *MockAdminService) System(ctx context.Context, p model.Principal) (*monitor.Snapshot, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*monitor.Snapshot), args.Error(1)
}

func (m *MockAdminService) EnsureSuperAdmin(ctx context.Context, email, password string) error {
	args := m.Called(ctx, email, password)
	return args.Error(0)
}
