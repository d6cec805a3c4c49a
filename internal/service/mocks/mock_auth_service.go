package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"stallhub/internal/model"
	"stallhub/internal/service"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) authResult(args mock.Arguments) (*service.AuthResult, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AuthResult), args.Error(1)
}

func (m *MockAuthService) Signup(ctx context.Context, in service.SignupInput) (*service.AuthResult, error) {
	return m.authResult(m.Called(ctx, in))
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*service.AuthResult, error) {
	return m.authResult(m.Called(ctx, email, password))
}

func (m *MockAuthService) RequestMagicLink(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

func (m *MockAuthService) VerifyMagicLink(ctx context.Context, token string) (*service.AuthResult, error) {
	return m.authResult(m.Called(ctx, token))
}

func (m *MockAuthService) VerifyCode(ctx context.Context, email, code string) (*service.AuthResult, error) {
	return m.authResult(m.Called(ctx, email, code))
}

func (m *MockAuthService) Me(ctx context.Context, p model.Principal) (*model.User, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockAuthService) SetPassword(ctx context.Context, p model.Principal, current, next string) error {
	args := m.Called(ctx, p, current, next)
	return args.Error(0)
}

func (m *MockAuthService) Invite(ctx context.Context, in service.InviteInput) (*model.User, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockAuthService) PurgeExpiredLinks(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}
