package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/verisalt/srp-auth-server/internal/models"
)

type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) StoreSession(ctx context.Context, session *models.Session) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockSessionRepository) GetSession(ctx context.Context, sessionID string) (*models.Session, error) {
	args := m.Called(ctx, sessionID)
	session, _ := args.Get(0).(*models.Session)
	return session, args.Error(1)
}

func (m *MockSessionRepository) DeleteSession(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}
