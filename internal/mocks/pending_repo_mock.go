package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/verisalt/srp-auth-server/internal/models"
)

type MockPendingLoginRepository struct {
	mock.Mock
}

func (m *MockPendingLoginRepository) StorePendingLogin(ctx context.Context, pending *models.PendingLogin) error {
	args := m.Called(ctx, pending)
	return args.Error(0)
}

func (m *MockPendingLoginRepository) PopPendingLogin(ctx context.Context, username string) (*models.PendingLogin, error) {
	args := m.Called(ctx, username)
	pending, _ := args.Get(0).(*models.PendingLogin)
	return pending, args.Error(1)
}

func (m *MockPendingLoginRepository) DeletePendingLogin(ctx context.Context, username string) error {
	args := m.Called(ctx, username)
	return args.Error(0)
}
