package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"stallhub/internal/model"
	"stallhub/internal/repository"
)

type MockMagicLinkRepository struct {
	mock.Mock
}

func (m *MockMagicLinkRepository) Create(ctx context.Context, ml *model.MagicLink) error {
	args := m.Called(ctx, ml)
	return args.Error(0)
}

func (m *MockMagicLinkRepository) FindByTokenHash(ctx context.Context, tokenHash string) (*model.MagicLink, error) {
	args := m.Called(ctx, tokenHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.MagicLink), args.Error(1)
}

func (m *MockMagicLinkRepository) FindLatestUnused(ctx context.Context, email string) (*model.MagicLink, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.MagicLink), args.Error(1)
}

func (m *MockMagicLinkRepository) IncrementAttempts(ctx context.Context, id string, max int) error {
	args := m.Called(ctx, id, max)
	return args.Error(0)
}

func (m *MockMagicLinkRepository) MarkUsed(ctx context.Context, id string, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

func (m *MockMagicLinkRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	args := m.Called(ctx, before)
	return args.Get(0).(int64), args.Error(1)
}

type MockAnalyticsRepository struct {
	mock.Mock
}

func (m *MockAnalyticsRepository) OrdersByStatus(ctx context.Context, f repository.AnalyticsFilter) (map[model.OrderStatus]int, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[model.OrderStatus]int), args.Error(1)
}

func (m *MockAnalyticsRepository) Revenue(ctx context.Context, f repository.AnalyticsFilter) (int, int64, error) {
	args := m.Called(ctx, f)
	return args.Int(0), args.Get(1).(int64), args.Error(2)
}

func (m *MockAnalyticsRepository) DailyRevenue(ctx context.Context, f repository.AnalyticsFilter) ([]model.DailyRevenue, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.DailyRevenue), args.Error(1)
}

func (m *MockAnalyticsRepository) TopProducts(ctx context.Context, f repository.AnalyticsFilter, limit int) ([]model.ProductSales, error) {
	args := m.Called(ctx, f, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ProductSales), args.Error(1)
}

func (m *MockAnalyticsRepository) RevenueByBusiness(ctx context.Context, f repository.AnalyticsFilter, limit int) ([]model.BusinessRevenue, error) {
	args := m.Called(ctx, f, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.BusinessRevenue), args.Error(1)
}
