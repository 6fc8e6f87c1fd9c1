package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/verisalt/srp-auth-server/internal/models"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, req models.RegisterRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockAuthService) InitiateLogin(ctx context.Context, req models.LoginInitRequest) (*models.LoginInitResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*models.LoginInitResponse)
	return resp, args.Error(1)
}

func (m *MockAuthService) VerifyLogin(ctx context.Context, req models.LoginVerifyRequest) (*models.LoginVerifyResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*models.LoginVerifyResponse)
	return resp, args.Error(1)
}

func (m *MockAuthService) ConfirmLogin(ctx context.Context, req models.LoginConfirmRequest) (*models.LoginConfirmResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*models.LoginConfirmResponse)
	return resp, args.Error(1)
}
