package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/verisalt/srp-auth-server/internal/models"
)

type MockCredentialRepository struct {
	mock.Mock
}

func (m *MockCredentialRepository) CreateCredential(ctx context.Context, cred *models.Credential) error {
	args := m.Called(ctx, cred)
	return args.Error(0)
}

func (m *MockCredentialRepository) GetCredential(ctx context.Context, username string) (*models.Credential, error) {
	args := m.Called(ctx, username)
	cred, _ := args.Get(0).(*models.Credential)
	return cred, args.Error(1)
}
